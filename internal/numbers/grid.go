// Package numbers generates the random digit assignments for a squares grid
// and resolves score digits back to grid cells.
package numbers

import "github.com/DjangoClawd/superbowl-boxes/internal/models"

// GridConfig describes the shape of one grid size.
type GridConfig struct {
	Size         models.GridSize
	Width        int
	TotalSquares int

	// DigitsPerLine is 1 for the standard grid and 2 for the reduced grid,
	// where each line covers a fixed pair of digits.
	DigitsPerLine int
}

// digitPairs are the fixed groupings used by the reduced grid. The pairs are
// permuted as units; the digits inside a pair never separate.
var digitPairs = [5][2]int{{0, 1}, {2, 3}, {4, 5}, {6, 7}, {8, 9}}

var gridConfigs = map[models.GridSize]GridConfig{
	models.GridStandard: {Size: models.GridStandard, Width: 10, TotalSquares: 100, DigitsPerLine: 1},
	models.GridReduced:  {Size: models.GridReduced, Width: 5, TotalSquares: 25, DigitsPerLine: 2},
}

// Config returns the configuration for size. Unknown or empty sizes fall back
// to the standard grid, matching how legacy records without a grid size are
// read.
func Config(size models.GridSize) GridConfig {
	if cfg, ok := gridConfigs[size]; ok {
		return cfg
	}
	return gridConfigs[models.GridStandard]
}
