package model

import (
	"chessroom/internal/chess"
)

// MoveRequest is the move a client asks for: a square pair plus an
// optional promotion choice. Special-move flags are never supplied by
// the client; the engine resolves them from the square pair.
type MoveRequest struct {
	From      chess.Square    `json:"from"`
	To        chess.Square    `json:"to"`
	Promotion chess.PieceType `json:"promotion,omitempty"`
}

// RookMove is the secondary rook relocation of a castle, kept in the
// history so clients can animate it.
type RookMove struct {
	From chess.Square `json:"from"`
	To   chess.Square `json:"to"`
}

// Ply is one applied half-move as recorded in a room's history.
type Ply struct {
	Piece     chess.Piece     `json:"piece"`
	From      chess.Square    `json:"from"`
	To        chess.Square    `json:"to"`
	Captured  *chess.Piece    `json:"captured,omitempty"`
	Promotion chess.PieceType `json:"promotion,omitempty"`
	EnPassant bool            `json:"enPassant,omitempty"`
	RookMove  *RookMove       `json:"rookMove,omitempty"`
}
