package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DjangoClawd/superbowl-boxes/internal/models"
	"github.com/DjangoClawd/superbowl-boxes/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "sbboxes-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testGroup() *models.Group {
	return &models.Group{
		Name:                "Office Pool",
		Team1:               "Kansas City Chiefs",
		Team2:               "Philadelphia Eagles",
		PricePerSquare:      0.1,
		Currency:            models.CurrencySOL,
		Visibility:          models.VisibilityPublic,
		Payouts:             models.DefaultPayouts,
		NumberRandomization: models.RandomizationFixed,
		GridSize:            models.GridStandard,
		Creator:             "wallet-creator",
		CreatorName:         "Casey",
		CreatorDisplay:      "wall...ator",
		Status:              models.StatusOpen,
		Squares:             emptySquares(100),
	}
}

func emptySquares(n int) []models.Square {
	squares := make([]models.Square, n)
	for i := range squares {
		squares[i].Index = i
	}
	return squares
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateGroup generates ID and CreatedAt", func(t *testing.T) {
		group := testGroup()
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if group.ID == "" {
			t.Error("Expected group ID to be generated")
		}
		if group.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetGroup retrieves complete group", func(t *testing.T) {
		original := testGroup()
		original.InviteCode = "ABC123"
		original.Visibility = models.VisibilityPrivate
		original.Squares[7] = models.Square{Index: 7, Owner: "wallet-a", OwnerDisplay: "wall...et-a", PurchasedAt: 1700000100}
		original.Squares[42] = models.Square{Index: 42, Owner: "wallet-b", OwnerDisplay: "wall...et-b", PurchasedAt: 1700000200}
		original.Numbers.Q1 = &models.NumberAssignment{
			RowNumbers: []int{3, 1, 4, 7, 5, 9, 2, 6, 8, 0},
			ColNumbers: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
			AssignedAt: 1700000300,
		}
		original.Numbers.Current = original.Numbers.Q1
		winning := 33
		original.QuarterResults = []models.QuarterResult{{
			Quarter:            1,
			TeamAScore:         17,
			TeamBScore:         13,
			TeamADigit:         7,
			TeamBDigit:         3,
			WinningSquareIndex: &winning,
			WinnerWallet:       "wallet-a",
			PrizeAmount:        1.9,
		}}
		original.Status = models.StatusLive
		original.LockedAt = 1700000300

		if err := store.CreateGroup(ctx, original); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		got, err := store.GetGroup(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}

		if got.Name != original.Name || got.Team1 != original.Team1 || got.Team2 != original.Team2 {
			t.Errorf("Group fields = %q/%q/%q, want %q/%q/%q",
				got.Name, got.Team1, got.Team2, original.Name, original.Team1, original.Team2)
		}
		if got.InviteCode != "ABC123" {
			t.Errorf("InviteCode = %q, want ABC123", got.InviteCode)
		}
		if got.Status != models.StatusLive || got.LockedAt != 1700000300 {
			t.Errorf("Status/LockedAt = %v/%v, want live/1700000300", got.Status, got.LockedAt)
		}
		if len(got.Squares) != 100 {
			t.Fatalf("Expected 100 squares, got %d", len(got.Squares))
		}
		if got.Squares[7].Owner != "wallet-a" || got.Squares[42].Owner != "wallet-b" {
			t.Errorf("Owned squares not restored: %+v, %+v", got.Squares[7], got.Squares[42])
		}
		if got.Squares[0].Owned() {
			t.Errorf("Square 0 should be empty, got %+v", got.Squares[0])
		}
		if got.Numbers.Q1 == nil || got.Numbers.Current == nil {
			t.Fatal("Expected Q1 and Current assignments to be restored")
		}
		if got.Numbers.Q1.RowNumbers[0] != 3 || got.Numbers.Q1.AssignedAt != 1700000300 {
			t.Errorf("Q1 assignment = %+v", got.Numbers.Q1)
		}
		if len(got.QuarterResults) != 1 {
			t.Fatalf("Expected 1 quarter result, got %d", len(got.QuarterResults))
		}
		r := got.QuarterResults[0]
		if r.WinningSquareIndex == nil || *r.WinningSquareIndex != 33 || r.WinnerWallet != "wallet-a" {
			t.Errorf("Quarter result = %+v", r)
		}
	})

	t.Run("GetGroup returns ErrNotFound for missing id", func(t *testing.T) {
		if _, err := store.GetGroup(ctx, "no-such-id"); err != storage.ErrNotFound {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("PutGroup overwrites the whole record", func(t *testing.T) {
		group := testGroup()
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		group.Squares[3] = models.Square{Index: 3, Owner: "wallet-c", PurchasedAt: 1700000400}
		group.Status = models.StatusFull
		if err := store.PutGroup(ctx, group); err != nil {
			t.Fatalf("PutGroup failed: %v", err)
		}

		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if got.Status != models.StatusFull {
			t.Errorf("Status = %v, want full", got.Status)
		}
		if !got.Squares[3].Owned() {
			t.Error("Expected square 3 to be owned after update")
		}

		// A second put with the square cleared drops the child row.
		group.Squares[3] = models.Square{Index: 3}
		if err := store.PutGroup(ctx, group); err != nil {
			t.Fatalf("PutGroup failed: %v", err)
		}
		got, err = store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if got.Squares[3].Owned() {
			t.Errorf("Expected square 3 to be empty after rewrite, got %+v", got.Squares[3])
		}
	})

	t.Run("PutGroup returns ErrNotFound for missing id", func(t *testing.T) {
		group := testGroup()
		group.ID = "no-such-id"
		if err := store.PutGroup(ctx, group); err != storage.ErrNotFound {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("GetGroupByInviteCode is case-insensitive", func(t *testing.T) {
		group := testGroup()
		group.Visibility = models.VisibilityPrivate
		group.InviteCode = "XY7K2Q"
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		for _, code := range []string{"XY7K2Q", "xy7k2q", "Xy7K2q"} {
			got, err := store.GetGroupByInviteCode(ctx, code)
			if err != nil {
				t.Fatalf("GetGroupByInviteCode(%q) failed: %v", code, err)
			}
			if got.ID != group.ID {
				t.Errorf("GetGroupByInviteCode(%q) = %s, want %s", code, got.ID, group.ID)
			}
		}

		if _, err := store.GetGroupByInviteCode(ctx, "NOPE99"); err != storage.ErrNotFound {
			t.Errorf("Expected ErrNotFound for unknown code, got %v", err)
		}
	})

	t.Run("DeleteGroup reports existence", func(t *testing.T) {
		group := testGroup()
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		deleted, err := store.DeleteGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}
		if !deleted {
			t.Error("Expected DeleteGroup to report true for existing group")
		}
		if _, err := store.GetGroup(ctx, group.ID); err != storage.ErrNotFound {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}

		deleted, err = store.DeleteGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}
		if deleted {
			t.Error("Expected DeleteGroup to report false for missing group")
		}
	})
}

func TestListPublicGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := testGroup()
	older.Name = "Older Public"
	older.CreatedAt = 1700000000
	newer := testGroup()
	newer.Name = "Newer Public"
	newer.CreatedAt = 1700005000
	private := testGroup()
	private.Name = "Private"
	private.Visibility = models.VisibilityPrivate
	private.InviteCode = "PRIV01"
	done := testGroup()
	done.Name = "Completed"
	done.Status = models.StatusCompleted

	for _, g := range []*models.Group{older, newer, private, done} {
		if err := store.CreateGroup(ctx, g); err != nil {
			t.Fatalf("CreateGroup(%s) failed: %v", g.Name, err)
		}
	}

	groups, err := store.ListPublicGroups(ctx)
	if err != nil {
		t.Fatalf("ListPublicGroups failed: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(groups))
	}
	if groups[0].Name != "Newer Public" || groups[1].Name != "Older Public" {
		t.Errorf("Expected newest first, got %s then %s", groups[0].Name, groups[1].Name)
	}
}

func TestReducedGridSquares(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := testGroup()
	group.GridSize = models.GridReduced
	group.Squares = emptySquares(25)
	group.Squares[24] = models.Square{Index: 24, Owner: "wallet-z", PurchasedAt: 1700000500}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	got, err := store.GetGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if len(got.Squares) != 25 {
		t.Fatalf("Expected 25 squares for reduced grid, got %d", len(got.Squares))
	}
	if got.Squares[24].Owner != "wallet-z" {
		t.Errorf("Square 24 = %+v, want wallet-z", got.Squares[24])
	}
}
