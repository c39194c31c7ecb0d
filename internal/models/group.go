package models

// Visibility controls whether a group is listed publicly or reachable only
// through its invite code.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Currency is the unit squares are priced in.
type Currency string

const (
	CurrencySOL  Currency = "SOL"
	CurrencyUSDC Currency = "USDC"
)

// NumberRandomization governs how many independent number assignments a lock
// generates and when each becomes current.
type NumberRandomization string

const (
	// RandomizationFixed reuses one assignment for the whole game.
	RandomizationFixed NumberRandomization = "fixed"
	// RandomizationPerHalf generates one assignment per half: q1/q2 share one,
	// q3/q4 share another.
	RandomizationPerHalf NumberRandomization = "per-half"
	// RandomizationPerQuarter generates four independent assignments.
	RandomizationPerQuarter NumberRandomization = "per-quarter"
)

// GridSize selects the square count and digit-grouping scheme.
type GridSize string

const (
	// GridStandard is the classic 100-square grid, one digit per line.
	GridStandard GridSize = "10x10"
	// GridReduced is a 25-square grid where each line covers a fixed pair of
	// digits ({0,1}, {2,3}, {4,5}, {6,7}, {8,9}).
	GridReduced GridSize = "5x5"
)

// Status labels where a group is in its lifecycle. It only ever advances:
// open -> full -> locked -> live -> completed.
type Status string

const (
	StatusOpen      Status = "open"
	StatusFull      Status = "full"
	StatusLocked    Status = "locked"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
)

// PayoutSettings holds the configurable percentages for a group. Quarter
// percentages need not sum to 100; they are normalized relative to each other
// when the prize breakdown is computed. CreatorFee must be within [0, 15].
type PayoutSettings struct {
	Q1         float64 `json:"q1"`
	Q2         float64 `json:"q2"`
	Q3         float64 `json:"q3"`
	Q4         float64 `json:"q4"`
	CreatorFee float64 `json:"creatorFee"`
}

// DefaultPayouts is the suggested distribution for new groups.
var DefaultPayouts = PayoutSettings{Q1: 20, Q2: 20, Q3: 20, Q4: 30, CreatorFee: 10}

// Square is one grid cell. Owner is empty until the square is purchased;
// once set it is never cleared or reassigned.
type Square struct {
	Index        int    `json:"index"`
	Owner        string `json:"owner,omitempty"`
	OwnerDisplay string `json:"ownerDisplay,omitempty"`
	PurchasedAt  int64  `json:"purchasedAt,omitempty"`
}

// Owned reports whether the square has been purchased.
func (s Square) Owned() bool {
	return s.Owner != ""
}

// NumberAssignment is one pair of digit permutations. RowNumbers[i] is the
// score digit for grid row line i (reduced grids flatten their digit pairs
// into the same 10-long shape, two digits per line).
type NumberAssignment struct {
	RowNumbers []int `json:"rowNumbers"`
	ColNumbers []int `json:"colNumbers"`
	AssignedAt int64 `json:"assignedAt"`
}

// NumberSet holds the assignments for each quarter plus the one currently
// shown on the grid. All slots are nil until the group is locked; after
// locking, Current always equals one of Q1..Q4.
type NumberSet struct {
	Current *NumberAssignment `json:"current"`
	Q1      *NumberAssignment `json:"q1"`
	Q2      *NumberAssignment `json:"q2"`
	Q3      *NumberAssignment `json:"q3"`
	Q4      *NumberAssignment `json:"q4"`
}

// Quarter returns the assignment slot for quarter q (1-4), or nil for an
// out-of-range quarter.
func (n *NumberSet) Quarter(q int) *NumberAssignment {
	switch q {
	case 1:
		return n.Q1
	case 2:
		return n.Q2
	case 3:
		return n.Q3
	case 4:
		return n.Q4
	}
	return nil
}

// SetQuarter stores an assignment in the slot for quarter q (1-4).
func (n *NumberSet) SetQuarter(q int, a *NumberAssignment) {
	switch q {
	case 1:
		n.Q1 = a
	case 2:
		n.Q2 = a
	case 3:
		n.Q3 = a
	case 4:
		n.Q4 = a
	}
}

// Group is one pool instance. It is persisted and re-read as a whole record;
// there is no partial update below this granularity.
type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Team1 labels the rows, Team2 the columns.
	Team1 string `json:"team1"`
	Team2 string `json:"team2"`

	PricePerSquare      float64             `json:"pricePerSquare"`
	Currency            Currency            `json:"currency"`
	Visibility          Visibility          `json:"visibility"`
	InviteCode          string              `json:"inviteCode,omitempty"`
	Payouts             PayoutSettings      `json:"payouts"`
	NumberRandomization NumberRandomization `json:"numberRandomization"`
	GridSize            GridSize            `json:"gridSize"`

	Creator        string `json:"creator"`
	CreatorName    string `json:"creatorName"`
	CreatorDisplay string `json:"creatorDisplay"`
	CreatedAt      int64  `json:"createdAt"`

	// Squares is index-addressed and always exactly the grid's square count.
	Squares []Square `json:"squares"`

	Numbers        NumberSet       `json:"numbers"`
	QuarterResults []QuarterResult `json:"quarterResults"`

	Status   Status `json:"status"`
	LockedAt int64  `json:"lockedAt,omitempty"`
}

// FilledSquares counts the purchased squares.
func (g *Group) FilledSquares() int {
	n := 0
	for _, sq := range g.Squares {
		if sq.Owned() {
			n++
		}
	}
	return n
}

// TotalPool is the amount collected so far: filled squares times price.
func (g *Group) TotalPool() float64 {
	return float64(g.FilledSquares()) * g.PricePerSquare
}

// Result returns the recorded result for quarter q, or nil if none exists.
func (g *Group) Result(q int) *QuarterResult {
	for i := range g.QuarterResults {
		if g.QuarterResults[i].Quarter == q {
			return &g.QuarterResults[i]
		}
	}
	return nil
}

// UpsertResult records a quarter result, replacing any existing entry for the
// same quarter. At most one entry per quarter ever exists.
func (g *Group) UpsertResult(r QuarterResult) {
	for i := range g.QuarterResults {
		if g.QuarterResults[i].Quarter == r.Quarter {
			g.QuarterResults[i] = r
			return
		}
	}
	g.QuarterResults = append(g.QuarterResults, r)
}

// Locked reports whether numbers have ever been assigned.
func (g *Group) Locked() bool {
	return g.LockedAt != 0
}
