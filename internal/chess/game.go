package chess

// Game is the capability surface a front-end drives: the input layer
// requests moves by square pair and the rendering layer reads board and
// status. Any implementation can be substituted behind it.
type Game interface {
	// NewGame resets to the standard starting position, white to move,
	// no previous move, all four castling rights held.
	NewGame()

	// MakeMove validates the candidate against the legal-move set and,
	// on a match, applies the engine's resolved version of it. It
	// reports false, leaving all state untouched, when no legal move
	// shares the candidate's source and destination.
	MakeMove(candidate Move) bool

	SideToMove() Color
	Board() Board
	LegalMoves() []Move

	IsCheck() bool
	IsCheckmate() bool
	IsStalemate() bool
	IsGameOver() bool
}

// ChessGame is the standard-rules Game implementation. It owns the
// board, the side to move, the previous move (for en-passant) and the
// castling rights, and mutates them only through MakeMove.
//
// A ChessGame is not safe for concurrent use; callers own sequencing.
type ChessGame struct {
	board      Board
	rules      Rules
	sideToMove Color
	lastMove   *Move
	rights     CastlingRights
}

var _ Game = (*ChessGame)(nil)

// NewChessGame returns a game at the starting position.
func NewChessGame() *ChessGame {
	g := &ChessGame{}
	g.NewGame()
	return g
}

// NewGame implements Game. It is re-invocable at any point.
func (g *ChessGame) NewGame() {
	g.board.Reset()
	g.sideToMove = White
	g.lastMove = nil
	g.rights = AllCastlingRights()
}

// MakeMove implements Game. Matching ignores any flags on the
// candidate: the input layer cannot be trusted to know whether a square
// pair is secretly a castle or an en-passant capture, so the engine's
// own resolved move is the one executed. Only the candidate's promotion
// choice is honored.
func (g *ChessGame) MakeMove(candidate Move) bool {
	moves := g.rules.LegalMoves(&g.board, g.sideToMove, g.lastMove, g.rights)

	var resolved Move
	found := false
	for _, m := range moves {
		if m.Matches(candidate) {
			resolved = m
			found = true
			break
		}
	}
	if !found {
		return false
	}
	resolved.Promotion = candidate.Promotion

	g.applyMove(resolved)
	g.updateCastlingRights(resolved)

	last := resolved
	g.lastMove = &last
	g.sideToMove = g.sideToMove.Opponent()
	return true
}

// applyMove performs the board mutation: en-passant victim removal
// first, then the main relocation, then the castling rook relocation
// and any promotion.
func (g *ChessGame) applyMove(m Move) {
	if m.EnPassant {
		// The captured pawn sits on the square the capturer left its
		// rank toward, not on the destination.
		g.board.ClearSquare(Square{Rank: m.From.Rank, File: m.To.File})
	}

	g.board.MovePiece(m)

	if m.Castling {
		// The rook relocation is keyed on the king's destination file:
		// 6 means kingside (h->f), 2 means queenside (a->d).
		rank := m.From.Rank
		switch m.To.File {
		case 6:
			g.board.MovePiece(Move{From: Square{Rank: rank, File: 7}, To: Square{Rank: rank, File: 5}})
		case 2:
			g.board.MovePiece(Move{From: Square{Rank: rank, File: 0}, To: Square{Rank: rank, File: 3}})
		}
	}

	g.promoteIfNeeded(m)
}

// promoteIfNeeded replaces a pawn arriving on the far rank with the
// requested promotion piece, defaulting to a queen when the caller
// supplied none or an invalid choice.
func (g *ChessGame) promoteIfNeeded(m Move) {
	piece, ok := g.board.At(m.To)
	if !ok || piece.Type != Pawn {
		return
	}
	lastRank := BoardSize - 1
	if piece.Color == White {
		lastRank = 0
	}
	if m.To.Rank != lastRank {
		return
	}
	promoted := m.Promotion
	switch promoted {
	case Knight, Bishop, Rook, Queen:
	default:
		promoted = Queen
	}
	g.board.SetPiece(m.To, Piece{Type: promoted, Color: piece.Color})
}

// updateCastlingRights revokes rights after a move has been applied: a
// king arriving anywhere revokes both of its color's rights, and a
// move touching a rook home square (as origin or destination) revokes
// that single right. The destination case covers a rook being captured
// on its home square.
func (g *ChessGame) updateCastlingRights(m Move) {
	if piece, ok := g.board.At(m.To); ok && piece.Type == King {
		g.rights.Revoke(g.sideToMove)
	}
	g.revokeIfRookHome(m.From)
	g.revokeIfRookHome(m.To)
}

func (g *ChessGame) revokeIfRookHome(sq Square) {
	switch sq {
	case Square{Rank: 7, File: 0}:
		g.rights.WhiteQueenside = false
	case Square{Rank: 7, File: 7}:
		g.rights.WhiteKingside = false
	case Square{Rank: 0, File: 0}:
		g.rights.BlackQueenside = false
	case Square{Rank: 0, File: 7}:
		g.rights.BlackKingside = false
	}
}

// SideToMove implements Game.
func (g *ChessGame) SideToMove() Color {
	return g.sideToMove
}

// Board implements Game. It returns a copy; mutating it does not affect
// the game.
func (g *ChessGame) Board() Board {
	return g.board
}

// LegalMoves implements Game.
func (g *ChessGame) LegalMoves() []Move {
	return g.rules.LegalMoves(&g.board, g.sideToMove, g.lastMove, g.rights)
}

// LastMove returns the most recently applied move in its fully-resolved
// form. ok is false before the first move of a game.
func (g *ChessGame) LastMove() (Move, bool) {
	if g.lastMove == nil {
		return Move{}, false
	}
	return *g.lastMove, true
}

// CastlingRights returns the rights still held.
func (g *ChessGame) CastlingRights() CastlingRights {
	return g.rights
}

// IsCheck implements Game.
func (g *ChessGame) IsCheck() bool {
	return g.rules.IsCheck(&g.board, g.sideToMove)
}

// IsCheckmate implements Game.
func (g *ChessGame) IsCheckmate() bool {
	return g.rules.IsCheckmate(&g.board, g.sideToMove, g.lastMove, g.rights)
}

// IsStalemate implements Game.
func (g *ChessGame) IsStalemate() bool {
	return g.rules.IsStalemate(&g.board, g.sideToMove, g.lastMove, g.rights)
}

// IsGameOver implements Game.
func (g *ChessGame) IsGameOver() bool {
	return g.IsCheckmate() || g.IsStalemate()
}
