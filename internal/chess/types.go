package chess

import "fmt"

// BoardSize is the side length of the board.
const BoardSize = 8

// Color identifies a side.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opponent returns the opposite color.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// PieceType identifies a kind of chess piece. The zero value means
// "no piece" and doubles as the empty-square marker on a Board.
type PieceType string

const (
	NoPieceType PieceType = ""
	Pawn        PieceType = "pawn"
	Knight      PieceType = "knight"
	Bishop      PieceType = "bishop"
	Rook        PieceType = "rook"
	Queen       PieceType = "queen"
	King        PieceType = "king"
)

// Letter returns the conventional piece letter ("N" for knight, empty
// for a pawn). Used for logging only.
func (p PieceType) Letter() string {
	switch p {
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	return ""
}

// Square addresses a board cell by rank and file. Rank 0 is black's
// home rank (rank 8 in algebraic notation), file 0 is the a-file.
type Square struct {
	Rank int `json:"rank"`
	File int `json:"file"`
}

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool {
	return s.Rank >= 0 && s.Rank < BoardSize && s.File >= 0 && s.File < BoardSize
}

// String returns the algebraic name of the square ("e4"), or "-" for an
// invalid square.
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", rune('a'+s.File), rune('8'-s.Rank))
}

// Piece is a piece type plus the side it belongs to. The zero value is
// "no piece".
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}
