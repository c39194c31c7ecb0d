package numbers

import (
	"math/rand/v2"
	"time"

	"github.com/DjangoClawd/superbowl-boxes/internal/models"
)

// Generate produces a fresh random number assignment for the given grid size.
// Row and column permutations are drawn independently; any of the possible
// orderings is equally likely.
func Generate(size models.GridSize, now time.Time) *models.NumberAssignment {
	cfg := Config(size)
	return &models.NumberAssignment{
		RowNumbers: shuffledDigits(cfg),
		ColNumbers: shuffledDigits(cfg),
		AssignedAt: now.Unix(),
	}
}

// shuffledDigits returns the digits 0-9 in random order. On the standard grid
// each digit moves independently; on the reduced grid the five fixed pairs are
// shuffled as units and flattened back into a 10-long sequence, so digit
// lookups stay simple index lookups.
func shuffledDigits(cfg GridConfig) []int {
	if cfg.DigitsPerLine == 1 {
		digits := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
		shuffle(digits)
		return digits
	}

	pairs := digitPairs
	shuffle(pairs[:])
	digits := make([]int, 0, 10)
	for _, p := range pairs {
		digits = append(digits, p[0], p[1])
	}
	return digits
}

// shuffle is a Fisher-Yates shuffle.
func shuffle[T any](s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rand.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
