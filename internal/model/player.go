package model

import (
	"chessroom/internal/chess"
)

// Player is a participant known to the matchmaking queue.
type Player struct {
	ID string
}

// ClientPlayer is the per-seat view sent to front-ends.
type ClientPlayer struct {
	ID    string      `json:"name"`
	Color chess.Color `json:"color"`
}

// MatchFoundEvent tells a queued player which room it was paired into
// and which color it plays.
type MatchFoundEvent struct {
	GameID string      `json:"gameId"`
	Color  chess.Color `json:"color"`
}
