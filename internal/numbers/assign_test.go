package numbers

import (
	"testing"
	"time"

	"github.com/DjangoClawd/superbowl-boxes/internal/models"
)

// assertPermutation fails unless digits is exactly the digits 0-9, each once.
func assertPermutation(t *testing.T, digits []int) {
	t.Helper()
	if len(digits) != 10 {
		t.Fatalf("expected 10 digits, got %d", len(digits))
	}
	var seen [10]bool
	for _, d := range digits {
		if d < 0 || d > 9 {
			t.Fatalf("digit %d out of range", d)
		}
		if seen[d] {
			t.Fatalf("digit %d repeated in %v", d, digits)
		}
		seen[d] = true
	}
}

func TestGenerateStandardGrid(t *testing.T) {
	now := time.Unix(1700000000, 0)

	for trial := 0; trial < 200; trial++ {
		a := Generate(models.GridStandard, now)
		assertPermutation(t, a.RowNumbers)
		assertPermutation(t, a.ColNumbers)
		if a.AssignedAt != now.Unix() {
			t.Fatalf("assignedAt = %d, want %d", a.AssignedAt, now.Unix())
		}
	}
}

func TestGenerateReducedGridKeepsPairs(t *testing.T) {
	now := time.Unix(1700000000, 0)

	for trial := 0; trial < 200; trial++ {
		a := Generate(models.GridReduced, now)
		for _, digits := range [][]int{a.RowNumbers, a.ColNumbers} {
			assertPermutation(t, digits)
			// Consecutive positions must hold one of the canonical pairs.
			for i := 0; i < 10; i += 2 {
				lo, hi := digits[i], digits[i+1]
				if hi != lo+1 || lo%2 != 0 {
					t.Fatalf("positions %d,%d hold (%d,%d), not a canonical pair in %v",
						i, i+1, lo, hi, digits)
				}
			}
		}
	}
}

// TestGenerateCoverage checks that the shuffle actually moves digits around:
// over many trials every digit should appear in every position at least once.
// A biased or constant shuffle fails this with overwhelming probability.
func TestGenerateCoverage(t *testing.T) {
	now := time.Now()
	const trials = 2000

	var counts [10][10]int
	for trial := 0; trial < trials; trial++ {
		a := Generate(models.GridStandard, now)
		for pos, d := range a.RowNumbers {
			counts[pos][d]++
		}
	}

	for pos := 0; pos < 10; pos++ {
		for d := 0; d < 10; d++ {
			if counts[pos][d] == 0 {
				t.Errorf("digit %d never appeared at position %d in %d trials", d, pos, trials)
			}
		}
	}
}

func TestGenerateIndependentRowsAndCols(t *testing.T) {
	now := time.Now()

	// Rows and columns are drawn independently; across a handful of trials
	// they must not always coincide.
	same := 0
	const trials = 50
	for trial := 0; trial < trials; trial++ {
		a := Generate(models.GridStandard, now)
		equal := true
		for i := range a.RowNumbers {
			if a.RowNumbers[i] != a.ColNumbers[i] {
				equal = false
				break
			}
		}
		if equal {
			same++
		}
	}
	if same == trials {
		t.Fatal("row and column permutations were identical in every trial")
	}
}

func TestConfigFallsBackToStandard(t *testing.T) {
	cfg := Config("")
	if cfg.TotalSquares != 100 || cfg.Width != 10 {
		t.Errorf("empty grid size: got %+v, want the standard grid", cfg)
	}
	cfg = Config("7x7")
	if cfg.TotalSquares != 100 {
		t.Errorf("unknown grid size: got %+v, want the standard grid", cfg)
	}
	cfg = Config(models.GridReduced)
	if cfg.TotalSquares != 25 || cfg.Width != 5 || cfg.DigitsPerLine != 2 {
		t.Errorf("reduced grid: got %+v", cfg)
	}
}
