package models

// QuarterResult is the recorded score snapshot for one quarter. Recording the
// same quarter again overwrites the previous entry rather than duplicating it.
type QuarterResult struct {
	Quarter    int `json:"quarter"`
	TeamAScore int `json:"teamAScore"`
	TeamBScore int `json:"teamBScore"`

	// Score digits, teamAScore mod 10 and teamBScore mod 10.
	TeamADigit int `json:"teamADigit"`
	TeamBDigit int `json:"teamBDigit"`

	// WinningSquareIndex is nil only when the digit lookup failed (malformed
	// assignment). An unowned winning square still has its index populated;
	// WinnerWallet is empty in that case.
	WinningSquareIndex *int   `json:"winningSquareIndex"`
	WinnerWallet       string `json:"winnerWallet,omitempty"`

	PrizeAmount float64 `json:"prizeAmount"`

	PaidOut     bool   `json:"paidOut"`
	PaidOutAt   int64  `json:"paidOutAt,omitempty"`
	TxSignature string `json:"txSignature,omitempty"`
}
