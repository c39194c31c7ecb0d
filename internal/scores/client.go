// Package scores fetches live game scores from the ESPN scoreboard feed and
// fans them out to subscribers. The pool engine never calls this package; it
// exists so the presentation layer has a score to show and so an admin can
// see when a quarter has ended.
package scores

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/DjangoClawd/superbowl-boxes/internal/models"
)

// DefaultFeedURL is the unofficial but reliable ESPN NFL scoreboard endpoint.
const DefaultFeedURL = "https://site.api.espn.com/apis/site/v2/sports/football/nfl/scoreboard"

// Team identifies one side of the matchup in the feed.
type Team struct {
	Abbreviation string
	Name         string
}

// Client fetches and parses the scoreboard feed for one matchup.
type Client struct {
	httpClient *http.Client
	url        string
	teamA      Team
	teamB      Team
}

// NewClient creates a feed client for the given matchup. An empty url uses
// the default ESPN endpoint.
func NewClient(url string, teamA, teamB Team) *Client {
	if url == "" {
		url = DefaultFeedURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		url:        url,
		teamA:      teamA,
		teamB:      teamB,
	}
}

// Feed response shapes, trimmed to the fields we read.
type feedResponse struct {
	Events []feedEvent `json:"events"`
}

type feedEvent struct {
	Name   string `json:"name"`
	Status struct {
		Type struct {
			State     string `json:"state"`
			Completed bool   `json:"completed"`
		} `json:"type"`
		Period       int    `json:"period"`
		DisplayClock string `json:"displayClock"`
	} `json:"status"`
	Competitions []struct {
		Competitors []struct {
			Team struct {
				Abbreviation string `json:"abbreviation"`
				DisplayName  string `json:"displayName"`
			} `json:"team"`
			Score string `json:"score"`
		} `json:"competitors"`
	} `json:"competitions"`
}

// Fetch retrieves the scoreboard and extracts the configured matchup.
// It returns an error if the feed is unreachable or the game is not listed.
func (c *Client) Fetch(ctx context.Context) (*models.GameScore, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scores: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("score feed returned status %d", resp.StatusCode)
	}

	var feed feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to decode score feed: %w", err)
	}
	return c.parse(&feed, time.Now())
}

func (c *Client) parse(feed *feedResponse, now time.Time) (*models.GameScore, error) {
	event := c.findGame(feed)
	if event == nil || len(event.Competitions) == 0 {
		return nil, fmt.Errorf("game not found in feed")
	}

	score := &models.GameScore{
		TimeRemaining: event.Status.DisplayClock,
		LastUpdated:   now.Unix(),
	}
	for _, comp := range event.Competitions[0].Competitors {
		points, _ := strconv.Atoi(comp.Score)
		abbr := strings.ToUpper(comp.Team.Abbreviation)
		switch {
		case abbr == strings.ToUpper(c.teamA.Abbreviation) || strings.Contains(comp.Team.DisplayName, c.teamA.Name):
			score.TeamA = points
		case abbr == strings.ToUpper(c.teamB.Abbreviation) || strings.Contains(comp.Team.DisplayName, c.teamB.Name):
			score.TeamB = points
		}
	}

	state := event.Status.Type.State
	score.IsLive = state == "in"
	switch {
	case score.IsLive:
		score.Quarter = min(max(event.Status.Period, 1), 4)
	case event.Status.Type.Completed || state == "post":
		score.Quarter = models.QuarterFinal
	default:
		score.Quarter = models.QuarterPregame
	}
	return score, nil
}

// findGame locates the configured matchup by team names, falling back to any
// event billed as the Super Bowl.
func (c *Client) findGame(feed *feedResponse) *feedEvent {
	for i := range feed.Events {
		name := strings.ToLower(feed.Events[i].Name)
		if strings.Contains(name, strings.ToLower(c.teamA.Name)) &&
			strings.Contains(name, strings.ToLower(c.teamB.Name)) {
			return &feed.Events[i]
		}
		if strings.Contains(name, "super bowl") {
			return &feed.Events[i]
		}
	}
	return nil
}
