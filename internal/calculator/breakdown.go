// Package calculator computes prize breakdowns for a squares pool. All
// functions are pure; currency amounts are float64 with no internal rounding,
// display formatting being the caller's concern.
package calculator

import (
	"fmt"

	"github.com/DjangoClawd/superbowl-boxes/internal/models"
)

// PlatformFeePercent is the fixed cut taken off the top of every pool.
const PlatformFeePercent = 5.0

// MaxCreatorFeePercent bounds the configurable creator fee.
const MaxCreatorFeePercent = 15.0

// Breakdown is the full split of a collected pool: the two fees, the
// remaining prize pool, and each quarter's share of it.
type Breakdown struct {
	PlatformFee float64 `json:"platformFee"`
	CreatorFee  float64 `json:"creatorFee"`
	PrizePool   float64 `json:"prizePool"`
	Q1          float64 `json:"q1"`
	Q2          float64 `json:"q2"`
	Q3          float64 `json:"q3"`
	Q4          float64 `json:"q4"`
}

// Quarter returns the prize for quarter q (1-4).
func (b *Breakdown) Quarter(q int) float64 {
	switch q {
	case 1:
		return b.Q1
	case 2:
		return b.Q2
	case 3:
		return b.Q3
	case 4:
		return b.Q4
	}
	return 0
}

// CalculateBreakdown splits totalPool according to the payout settings.
// The platform fee comes off the top, the creator fee off the remainder, and
// the quarter percentages are normalized against their own sum, so platform
// fee + creator fee + four quarter prizes always reconstruct the total pool.
//
// A zero quarter-percentage sum would divide by zero; such settings are
// rejected by ValidatePayouts at group creation, but the guard is kept here
// so the function is safe standalone.
func CalculateBreakdown(totalPool float64, payouts models.PayoutSettings) (*Breakdown, error) {
	quarterTotal := payouts.Q1 + payouts.Q2 + payouts.Q3 + payouts.Q4
	if quarterTotal == 0 {
		return nil, fmt.Errorf("quarter percentages sum to zero")
	}

	platformFee := totalPool * PlatformFeePercent / 100
	afterPlatform := totalPool - platformFee
	creatorFee := afterPlatform * payouts.CreatorFee / 100
	prizePool := afterPlatform - creatorFee

	return &Breakdown{
		PlatformFee: platformFee,
		CreatorFee:  creatorFee,
		PrizePool:   prizePool,
		Q1:          prizePool * payouts.Q1 / quarterTotal,
		Q2:          prizePool * payouts.Q2 / quarterTotal,
		Q3:          prizePool * payouts.Q3 / quarterTotal,
		Q4:          prizePool * payouts.Q4 / quarterTotal,
	}, nil
}

// ValidatePayouts checks payout settings at configuration time.
func ValidatePayouts(payouts models.PayoutSettings) error {
	if payouts.CreatorFee < 0 || payouts.CreatorFee > MaxCreatorFeePercent {
		return fmt.Errorf("creator fee must be between 0%% and %g%%", MaxCreatorFeePercent)
	}
	if payouts.Q1 < 0 || payouts.Q2 < 0 || payouts.Q3 < 0 || payouts.Q4 < 0 {
		return fmt.Errorf("prize percentages cannot be negative")
	}
	if payouts.Q1+payouts.Q2+payouts.Q3+payouts.Q4 <= 0 {
		return fmt.Errorf("prize distribution cannot be zero")
	}
	return nil
}
