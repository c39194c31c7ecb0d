package scores

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DjangoClawd/superbowl-boxes/internal/models"
)

var testMatchup = [2]Team{
	{Abbreviation: "KC", Name: "Kansas City Chiefs"},
	{Abbreviation: "PHI", Name: "Philadelphia Eagles"},
}

func feedJSON(state string, completed bool, period int, kcScore, phiScore string) string {
	return fmt.Sprintf(`{
		"events": [
			{
				"name": "Kansas City Chiefs at Philadelphia Eagles",
				"status": {
					"type": {"state": %q, "completed": %v},
					"period": %d,
					"displayClock": "7:33"
				},
				"competitions": [
					{
						"competitors": [
							{"team": {"abbreviation": "KC", "displayName": "Kansas City Chiefs"}, "score": %q},
							{"team": {"abbreviation": "PHI", "displayName": "Philadelphia Eagles"}, "score": %q}
						]
					}
				]
			}
		]
	}`, state, completed, period, kcScore, phiScore)
}

func fetchFrom(t *testing.T, body string, status int) (*models.GameScore, error) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, testMatchup[0], testMatchup[1])
	return client.Fetch(context.Background())
}

func TestFetchLiveGame(t *testing.T) {
	score, err := fetchFrom(t, feedJSON("in", false, 2, "14", "10"), http.StatusOK)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if score.TeamA != 14 || score.TeamB != 10 {
		t.Errorf("Scores = %d/%d, want 14/10", score.TeamA, score.TeamB)
	}
	if !score.IsLive {
		t.Error("Expected IsLive")
	}
	if score.Quarter != 2 {
		t.Errorf("Quarter = %d, want 2", score.Quarter)
	}
	if score.TimeRemaining != "7:33" {
		t.Errorf("TimeRemaining = %q, want 7:33", score.TimeRemaining)
	}
	if score.LastUpdated == 0 {
		t.Error("Expected LastUpdated to be set")
	}
}

func TestFetchClampsOvertimePeriod(t *testing.T) {
	score, err := fetchFrom(t, feedJSON("in", false, 5, "28", "28"), http.StatusOK)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if score.Quarter != 4 {
		t.Errorf("Quarter = %d, want 4 for overtime", score.Quarter)
	}
}

func TestFetchCompletedGame(t *testing.T) {
	score, err := fetchFrom(t, feedJSON("post", true, 4, "31", "28"), http.StatusOK)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if score.IsLive {
		t.Error("Completed game should not be live")
	}
	if score.Quarter != models.QuarterFinal {
		t.Errorf("Quarter = %d, want final", score.Quarter)
	}
}

func TestFetchPregame(t *testing.T) {
	score, err := fetchFrom(t, feedJSON("pre", false, 0, "0", "0"), http.StatusOK)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if score.Quarter != models.QuarterPregame {
		t.Errorf("Quarter = %d, want pregame", score.Quarter)
	}
	if score.IsLive {
		t.Error("Pregame should not be live")
	}
}

func TestFetchFindsSuperBowlByName(t *testing.T) {
	body := `{
		"events": [
			{
				"name": "Super Bowl LIX",
				"status": {"type": {"state": "in", "completed": false}, "period": 1, "displayClock": "15:00"},
				"competitions": [
					{
						"competitors": [
							{"team": {"abbreviation": "KC", "displayName": "Kansas City Chiefs"}, "score": "3"},
							{"team": {"abbreviation": "PHI", "displayName": "Philadelphia Eagles"}, "score": "0"}
						]
					}
				]
			}
		]
	}`
	var feed feedResponse
	if err := json.Unmarshal([]byte(body), &feed); err != nil {
		t.Fatalf("failed to decode fixture: %v", err)
	}
	client := NewClient("", Team{Abbreviation: "XX", Name: "Nobody"}, Team{Abbreviation: "YY", Name: "Noone"})
	score, err := client.parse(&feed, time.Unix(1700000000, 0))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if score.TeamA != 0 || score.TeamB != 0 {
		t.Errorf("Unmatched teams should score 0/0, got %d/%d", score.TeamA, score.TeamB)
	}
	if !score.IsLive || score.Quarter != 1 {
		t.Errorf("Score = %+v, want live quarter 1", score)
	}
}

func TestFetchGameNotFound(t *testing.T) {
	if _, err := fetchFrom(t, `{"events": []}`, http.StatusOK); err == nil {
		t.Fatal("Expected error for empty feed")
	}
}

func TestFetchBadStatus(t *testing.T) {
	if _, err := fetchFrom(t, "", http.StatusServiceUnavailable); err == nil {
		t.Fatal("Expected error for non-200 status")
	}
}
