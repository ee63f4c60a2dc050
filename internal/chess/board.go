package chess

// backRankOrder is the standard back-rank piece order for both colors.
var backRankOrder = [BoardSize]PieceType{
	Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook,
}

// Board is an 8x8 grid of pieces. It manages placement only and has no
// rule knowledge; legality is the responsibility of Rules and Game.
//
// Board is a plain value type: assigning one copies the whole grid,
// which is what the legality filter relies on when probing moves.
type Board struct {
	grid [BoardSize][BoardSize]Piece
}

// NewBoard returns a board holding the standard starting position.
func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// At returns the piece on sq. ok is false when the square is empty or
// off the board.
func (b *Board) At(sq Square) (Piece, bool) {
	if !sq.Valid() {
		return Piece{}, false
	}
	p := b.grid[sq.Rank][sq.File]
	return p, p.Type != NoPieceType
}

// HasPieceAt reports whether sq holds a piece. Invalid squares read as
// empty so callers can probe the board edge without a bounds branch.
func (b *Board) HasPieceAt(sq Square) bool {
	return sq.Valid() && b.grid[sq.Rank][sq.File].Type != NoPieceType
}

// HasColorAt reports whether sq holds a piece of the given color.
func (b *Board) HasColorAt(sq Square, c Color) bool {
	if !sq.Valid() {
		return false
	}
	p := b.grid[sq.Rank][sq.File]
	return p.Type != NoPieceType && p.Color == c
}

// MovePiece relocates whatever sits on m.From to m.To, overwriting any
// occupant of the destination. It performs no legality checks.
func (b *Board) MovePiece(m Move) {
	if !m.From.Valid() || !m.To.Valid() {
		return
	}
	b.grid[m.To.Rank][m.To.File] = b.grid[m.From.Rank][m.From.File]
	b.grid[m.From.Rank][m.From.File] = Piece{}
}

// SetPiece places a piece on sq, replacing any prior occupant. Placing
// the zero Piece clears the square. Invalid squares are a no-op.
func (b *Board) SetPiece(sq Square, p Piece) {
	if sq.Valid() {
		b.grid[sq.Rank][sq.File] = p
	}
}

// ClearSquare removes any piece from sq.
func (b *Board) ClearSquare(sq Square) {
	b.SetPiece(sq, Piece{})
}

// Clear empties every square.
func (b *Board) Clear() {
	b.grid = [BoardSize][BoardSize]Piece{}
}

// Reset restores the standard starting position: black on ranks 0-1,
// white on ranks 6-7.
func (b *Board) Reset() {
	b.Clear()
	for file := 0; file < BoardSize; file++ {
		b.grid[0][file] = Piece{Type: backRankOrder[file], Color: Black}
		b.grid[1][file] = Piece{Type: Pawn, Color: Black}
		b.grid[6][file] = Piece{Type: Pawn, Color: White}
		b.grid[7][file] = Piece{Type: backRankOrder[file], Color: White}
	}
}
