// Package service implements the pool lifecycle engine: group creation,
// square purchase, number locking, quarter-result recording, and payout
// marking. Every operation is a synchronous read-modify-write of one group
// record; the caller gets back the fully updated snapshot.
//
// The engine does not authorize: admin operations (lock, relock, record,
// mark paid, delete) are expected to be gated by the caller comparing the
// requesting wallet to Group.Creator.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/DjangoClawd/superbowl-boxes/internal/calculator"
	"github.com/DjangoClawd/superbowl-boxes/internal/models"
	"github.com/DjangoClawd/superbowl-boxes/internal/numbers"
	"github.com/DjangoClawd/superbowl-boxes/internal/storage"
)

// Default team labels for groups that do not name their own matchup.
const (
	DefaultTeam1 = "Kansas City Chiefs"  // rows
	DefaultTeam2 = "Philadelphia Eagles" // columns
)

// PoolService orchestrates the pool state machine over an injected store.
// Timestamps come from the injected clock so tests can pin them.
type PoolService struct {
	store storage.Store
	clock clockwork.Clock
}

// NewPoolService creates a new PoolService with the given storage backend
// and clock.
func NewPoolService(store storage.Store, clock clockwork.Clock) *PoolService {
	return &PoolService{store: store, clock: clock}
}

// CreateGroupInput carries the creator-supplied settings for a new group.
type CreateGroupInput struct {
	Name                string                     `json:"name"`
	Team1               string                     `json:"team1"`
	Team2               string                     `json:"team2"`
	PricePerSquare      float64                    `json:"pricePerSquare"`
	Currency            models.Currency            `json:"currency"`
	Visibility          models.Visibility          `json:"visibility"`
	Payouts             models.PayoutSettings      `json:"payouts"`
	NumberRandomization models.NumberRandomization `json:"numberRandomization"`
	GridSize            models.GridSize            `json:"gridSize"`
	CreatorName         string                     `json:"creatorName"`
}

// CreateGroup validates the input, allocates a new group in the open state
// with an all-unowned square grid, persists it, and returns the snapshot.
func (s *PoolService) CreateGroup(ctx context.Context, input CreateGroupInput, creatorWallet string) (*models.Group, error) {
	if err := s.validateCreate(&input, creatorWallet); err != nil {
		return nil, err
	}

	cfg := numbers.Config(input.GridSize)
	squares := make([]models.Square, cfg.TotalSquares)
	for i := range squares {
		squares[i].Index = i
	}

	group := &models.Group{
		Name:                input.Name,
		Team1:               input.Team1,
		Team2:               input.Team2,
		PricePerSquare:      input.PricePerSquare,
		Currency:            input.Currency,
		Visibility:          input.Visibility,
		Payouts:             input.Payouts,
		NumberRandomization: input.NumberRandomization,
		GridSize:            cfg.Size,
		Creator:             creatorWallet,
		CreatorName:         input.CreatorName,
		CreatorDisplay:      models.ShortenWallet(creatorWallet),
		CreatedAt:           s.clock.Now().Unix(),
		Squares:             squares,
		Status:              models.StatusOpen,
	}
	if group.Visibility == models.VisibilityPrivate {
		group.InviteCode = models.NewInviteCode()
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	groupsCreated.Inc()
	slog.Info("Group created",
		"group_id", group.ID,
		"grid_size", group.GridSize,
		"visibility", group.Visibility,
	)
	return group, nil
}

func (s *PoolService) validateCreate(input *CreateGroupInput, creatorWallet string) error {
	if creatorWallet == "" {
		return fmt.Errorf("%w: creator wallet required", ErrValidation)
	}
	if input.Name == "" {
		return fmt.Errorf("%w: name required", ErrValidation)
	}
	if input.PricePerSquare <= 0 {
		return fmt.Errorf("%w: price per square must be positive", ErrValidation)
	}
	if err := calculator.ValidatePayouts(input.Payouts); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	switch input.Currency {
	case models.CurrencySOL, models.CurrencyUSDC:
	case "":
		input.Currency = models.CurrencySOL
	default:
		return fmt.Errorf("%w: unknown currency %q", ErrValidation, input.Currency)
	}
	switch input.Visibility {
	case models.VisibilityPublic, models.VisibilityPrivate:
	case "":
		input.Visibility = models.VisibilityPublic
	default:
		return fmt.Errorf("%w: unknown visibility %q", ErrValidation, input.Visibility)
	}
	switch input.NumberRandomization {
	case models.RandomizationFixed, models.RandomizationPerHalf, models.RandomizationPerQuarter:
	case "":
		input.NumberRandomization = models.RandomizationFixed
	default:
		return fmt.Errorf("%w: unknown number randomization %q", ErrValidation, input.NumberRandomization)
	}
	switch input.GridSize {
	case models.GridStandard, models.GridReduced:
	case "":
		input.GridSize = models.GridStandard
	default:
		return fmt.Errorf("%w: unknown grid size %q", ErrValidation, input.GridSize)
	}

	if input.Team1 == "" {
		input.Team1 = DefaultTeam1
	}
	if input.Team2 == "" {
		input.Team2 = DefaultTeam2
	}
	if input.CreatorName == "" {
		input.CreatorName = "Anonymous"
	}
	return nil
}

// GetGroup returns the current snapshot of a group.
func (s *PoolService) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	return s.store.GetGroup(ctx, groupID)
}

// GetGroupByInviteCode looks a private group up by its invite code,
// case-insensitively.
func (s *PoolService) GetGroupByInviteCode(ctx context.Context, code string) (*models.Group, error) {
	return s.store.GetGroupByInviteCode(ctx, code)
}

// ListPublicGroups returns public groups that are still open or in progress.
func (s *PoolService) ListPublicGroups(ctx context.Context) ([]*models.Group, error) {
	return s.store.ListPublicGroups(ctx)
}

// PurchaseSquares assigns the requested square indices to the buyer. The
// batch is best-effort per index, not a transaction: indices that are out of
// range or already owned are skipped silently, and re-requesting an owned
// index never changes its owner or timestamp. Returns ErrPoolLocked once the
// group has left the open/full states.
func (s *PoolService) PurchaseSquares(ctx context.Context, groupID string, indices []int, buyerWallet string) (*models.Group, error) {
	if buyerWallet == "" {
		return nil, fmt.Errorf("%w: buyer wallet required", ErrValidation)
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.Status != models.StatusOpen && group.Status != models.StatusFull {
		return nil, ErrPoolLocked
	}

	display := models.ShortenWallet(buyerWallet)
	now := s.clock.Now().Unix()
	assigned := 0
	for _, idx := range indices {
		if idx < 0 || idx >= len(group.Squares) || group.Squares[idx].Owned() {
			continue
		}
		group.Squares[idx] = models.Square{
			Index:        idx,
			Owner:        buyerWallet,
			OwnerDisplay: display,
			PurchasedAt:  now,
		}
		assigned++
	}

	if group.FilledSquares() == len(group.Squares) && group.Status == models.StatusOpen {
		group.Status = models.StatusFull
	}

	if err := s.store.PutGroup(ctx, group); err != nil {
		slog.Error("PurchaseSquares failed", "group_id", groupID, "error", err)
		return nil, fmt.Errorf("failed to save group: %w", err)
	}

	squaresPurchased.Add(float64(assigned))
	slog.Info("Squares purchased",
		"group_id", groupID,
		"requested", len(indices),
		"assigned", assigned,
		"filled", group.FilledSquares(),
		"status", group.Status,
	)
	return group, nil
}

// LockGroup assigns numbers according to the group's randomization mode and
// closes the pool to further purchases. Locking twice is rejected; an admin
// who wants to re-roll must call RelockGroup explicitly.
func (s *PoolService) LockGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.Locked() {
		return nil, ErrAlreadyLocked
	}

	s.assignNumbers(group)
	group.Status = models.StatusLocked
	group.LockedAt = s.clock.Now().Unix()

	if err := s.store.PutGroup(ctx, group); err != nil {
		slog.Error("LockGroup failed", "group_id", groupID, "error", err)
		return nil, fmt.Errorf("failed to save group: %w", err)
	}

	slog.Info("Group locked",
		"group_id", groupID,
		"randomization", group.NumberRandomization,
		"filled", group.FilledSquares(),
	)
	return group, nil
}

// RelockGroup re-rolls the number assignments of an already-locked group.
// It is refused once any quarter result has been recorded, because a re-roll
// would retroactively change who won.
func (s *PoolService) RelockGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.Locked() {
		return nil, ErrNotLocked
	}
	if len(group.QuarterResults) > 0 {
		return nil, ErrResultsRecorded
	}

	s.assignNumbers(group)
	group.LockedAt = s.clock.Now().Unix()

	if err := s.store.PutGroup(ctx, group); err != nil {
		slog.Error("RelockGroup failed", "group_id", groupID, "error", err)
		return nil, fmt.Errorf("failed to save group: %w", err)
	}

	slog.Info("Group relocked", "group_id", groupID)
	return group, nil
}

// assignNumbers fills the number slots per the randomization mode: fixed
// shares one assignment across all quarters, per-half one per half, and
// per-quarter four independent ones. Current starts at q1's assignment.
func (s *PoolService) assignNumbers(group *models.Group) {
	now := s.clock.Now()
	first := numbers.Generate(group.GridSize, now)

	switch group.NumberRandomization {
	case models.RandomizationPerHalf:
		second := numbers.Generate(group.GridSize, now)
		group.Numbers = models.NumberSet{Current: first, Q1: first, Q2: first, Q3: second, Q4: second}
	case models.RandomizationPerQuarter:
		group.Numbers = models.NumberSet{
			Current: first,
			Q1:      first,
			Q2:      numbers.Generate(group.GridSize, now),
			Q3:      numbers.Generate(group.GridSize, now),
			Q4:      numbers.Generate(group.GridSize, now),
		}
	default: // fixed
		group.Numbers = models.NumberSet{Current: first, Q1: first, Q2: first, Q3: first, Q4: first}
	}
}

// SetCurrentQuarter points the displayed numbers at an already-generated
// quarter slot. Used by per-half and per-quarter groups between periods.
func (s *PoolService) SetCurrentQuarter(ctx context.Context, groupID string, quarter int) (*models.Group, error) {
	if quarter < 1 || quarter > 4 {
		return nil, fmt.Errorf("%w: quarter must be 1-4, got %d", ErrValidation, quarter)
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	assignment := group.Numbers.Quarter(quarter)
	if assignment == nil {
		return nil, ErrNumbersNotAssigned
	}

	group.Numbers.Current = assignment
	if err := s.store.PutGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to save group: %w", err)
	}
	return group, nil
}

// RecordQuarterResult records the score at the end of a quarter, resolves the
// winning square for that quarter's numbers, and computes the prize from the
// pool collected so far. Recording an already-recorded quarter overwrites it.
// Quarter 4 completes the group; earlier quarters move it to live unless it
// is already completed (status never regresses).
func (s *PoolService) RecordQuarterResult(ctx context.Context, groupID string, quarter, teamAScore, teamBScore int) (*models.Group, error) {
	if quarter < 1 || quarter > 4 {
		return nil, fmt.Errorf("%w: quarter must be 1-4, got %d", ErrValidation, quarter)
	}
	if teamAScore < 0 || teamBScore < 0 {
		return nil, fmt.Errorf("%w: scores cannot be negative", ErrValidation)
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	assignment := group.Numbers.Quarter(quarter)
	if assignment == nil {
		return nil, ErrNumbersNotAssigned
	}

	teamADigit := teamAScore % 10
	teamBDigit := teamBScore % 10

	result := models.QuarterResult{
		Quarter:    quarter,
		TeamAScore: teamAScore,
		TeamBScore: teamBScore,
		TeamADigit: teamADigit,
		TeamBDigit: teamBDigit,
	}

	lookup, err := numbers.NewLookup(assignment, group.GridSize)
	if err != nil {
		// Malformed assignment; the result is still recorded, just without a
		// resolved square.
		slog.Warn("Winning square lookup failed", "group_id", groupID, "quarter", quarter, "error", err)
	} else {
		idx := lookup.WinningSquare(teamADigit, teamBDigit)
		result.WinningSquareIndex = &idx
		if idx >= 0 && idx < len(group.Squares) {
			result.WinnerWallet = group.Squares[idx].Owner
		}
	}

	breakdown, err := calculator.CalculateBreakdown(group.TotalPool(), group.Payouts)
	if err != nil {
		return nil, fmt.Errorf("failed to compute prize: %w", err)
	}
	result.PrizeAmount = breakdown.Quarter(quarter)

	group.UpsertResult(result)

	if quarter == 4 {
		group.Status = models.StatusCompleted
	} else if group.Status != models.StatusCompleted {
		group.Status = models.StatusLive
	}

	// Pre-reveal next period's numbers for modes that rotate them.
	if quarter < 4 && group.NumberRandomization != models.RandomizationFixed {
		if next := group.Numbers.Quarter(quarter + 1); next != nil {
			group.Numbers.Current = next
		}
	}

	if err := s.store.PutGroup(ctx, group); err != nil {
		slog.Error("RecordQuarterResult failed", "group_id", groupID, "error", err)
		return nil, fmt.Errorf("failed to save group: %w", err)
	}

	resultsRecorded.Inc()
	slog.Info("Quarter result recorded",
		"group_id", groupID,
		"quarter", quarter,
		"team_a", teamAScore,
		"team_b", teamBScore,
		"winner", result.WinnerWallet,
		"prize", result.PrizeAmount,
		"status", group.Status,
	)
	return group, nil
}

// MarkPaidOut flags a quarter's prize as paid and attaches the transaction
// reference. If the quarter has no recorded result yet this is a no-op: the
// stored record is left untouched.
func (s *PoolService) MarkPaidOut(ctx context.Context, groupID string, quarter int, txSignature string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	result := group.Result(quarter)
	if result == nil {
		slog.Warn("MarkPaidOut skipped, no result for quarter", "group_id", groupID, "quarter", quarter)
		return group, nil
	}

	result.PaidOut = true
	result.PaidOutAt = s.clock.Now().Unix()
	result.TxSignature = txSignature

	if err := s.store.PutGroup(ctx, group); err != nil {
		slog.Error("MarkPaidOut failed", "group_id", groupID, "error", err)
		return nil, fmt.Errorf("failed to save group: %w", err)
	}

	payoutsMarked.Inc()
	slog.Info("Quarter paid out", "group_id", groupID, "quarter", quarter, "tx", txSignature)
	return group, nil
}

// DeleteGroup removes a group entirely, reporting whether it existed.
func (s *PoolService) DeleteGroup(ctx context.Context, groupID string) (bool, error) {
	existed, err := s.store.DeleteGroup(ctx, groupID)
	if err != nil {
		slog.Error("DeleteGroup failed", "group_id", groupID, "error", err)
		return false, err
	}
	if existed {
		slog.Info("Group deleted", "group_id", groupID)
	}
	return existed, nil
}

// PrizeSummary is the full money picture for a group at its current fill.
type PrizeSummary struct {
	Total float64 `json:"total"`
	calculator.Breakdown
}

// GetPrizeSummary runs the prize breakdown over the pool collected so far.
func (s *PoolService) GetPrizeSummary(ctx context.Context, groupID string) (*PrizeSummary, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	breakdown, err := calculator.CalculateBreakdown(group.TotalPool(), group.Payouts)
	if err != nil {
		return nil, fmt.Errorf("failed to compute breakdown: %w", err)
	}
	return &PrizeSummary{Total: group.TotalPool(), Breakdown: *breakdown}, nil
}
