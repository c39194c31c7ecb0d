package numbers

import (
	"fmt"

	"github.com/DjangoClawd/superbowl-boxes/internal/models"
)

// Lookup maps score digits to grid lines for one number assignment. It is
// built once per assignment so that reduced-grid resolution (digit to pair to
// permuted pair position) is a plain table read rather than repeated index
// scans.
type Lookup struct {
	width   int
	rowLine [10]int
	colLine [10]int
}

// NewLookup builds the digit-to-line tables for an assignment on the given
// grid size. It returns an error if either permutation is malformed (wrong
// length, or not covering every digit exactly once).
func NewLookup(a *models.NumberAssignment, size models.GridSize) (*Lookup, error) {
	cfg := Config(size)
	l := &Lookup{width: cfg.Width}
	if err := fillLines(&l.rowLine, a.RowNumbers, cfg); err != nil {
		return nil, fmt.Errorf("row numbers: %w", err)
	}
	if err := fillLines(&l.colLine, a.ColNumbers, cfg); err != nil {
		return nil, fmt.Errorf("col numbers: %w", err)
	}
	return l, nil
}

func fillLines(lines *[10]int, digits []int, cfg GridConfig) error {
	if len(digits) != 10 {
		return fmt.Errorf("expected 10 digits, got %d", len(digits))
	}
	var seen [10]bool
	for i, d := range digits {
		if d < 0 || d > 9 {
			return fmt.Errorf("digit %d out of range", d)
		}
		if seen[d] {
			return fmt.Errorf("digit %d repeated", d)
		}
		seen[d] = true
		lines[d] = i / cfg.DigitsPerLine
	}
	return nil
}

// RowLine returns the grid row line for a team-A score digit.
func (l *Lookup) RowLine(digit int) int {
	return l.rowLine[digit]
}

// ColLine returns the grid column line for a team-B score digit.
func (l *Lookup) ColLine(digit int) int {
	return l.colLine[digit]
}

// WinningSquare resolves a pair of score digits to the flat square index,
// row line times grid width plus column line.
func (l *Lookup) WinningSquare(teamADigit, teamBDigit int) int {
	return l.rowLine[teamADigit]*l.width + l.colLine[teamBDigit]
}
