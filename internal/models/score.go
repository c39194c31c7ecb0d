package models

// Game score quarter markers. Quarters 1-4 are regulation play.
const (
	QuarterPregame = 0
	QuarterFinal   = 5
)

// GameScore is a live score snapshot from the external feed. The engine only
// consumes the two scores and the quarter; the rest is display context.
type GameScore struct {
	TeamA         int    `json:"teamA"`
	TeamB         int    `json:"teamB"`
	Quarter       int    `json:"quarter"` // 0 = not started, 5 = final
	TimeRemaining string `json:"timeRemaining"`
	IsLive        bool   `json:"isLive"`
	LastUpdated   int64  `json:"lastUpdated"`
}
