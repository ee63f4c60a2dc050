package chess

// Rules answers legality questions about a position. It is stateless:
// every query receives the board and game state it needs and nothing is
// cached between calls.
//
// Generation is pseudo-legal-then-filter. Candidates that satisfy a
// piece's movement pattern are accepted only if applying them to a copy
// of the board leaves the mover's king unattacked. The whole-board copy
// per candidate is deliberate: it keeps the filter free of pin and
// double-check special cases.
type Rules struct{}

var knightOffsets = [8][2]int{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

// allDirections holds the four rook directions followed by the four
// bishop directions. Slider attack detection relies on that split.
var allDirections = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

var (
	rookDirections   = allDirections[:4]
	bishopDirections = allDirections[4:]
)

// LegalMoves generates every legal move for side. lastMove is the move
// most recently applied to the position (nil for none) and is consulted
// only for en-passant eligibility.
func (ru Rules) LegalMoves(board *Board, side Color, lastMove *Move, rights CastlingRights) []Move {
	moves := make([]Move, 0, 64)
	for r := 0; r < BoardSize; r++ {
		for f := 0; f < BoardSize; f++ {
			from := Square{Rank: r, File: f}
			piece, ok := board.At(from)
			if !ok || piece.Color != side {
				continue
			}
			switch piece.Type {
			case Pawn:
				moves = generatePawnMoves(moves, board, from, side, lastMove)
			case Knight:
				moves = generateKnightMoves(moves, board, from, side)
			case Bishop:
				moves = generateSlidingMoves(moves, board, from, side, bishopDirections)
			case Rook:
				moves = generateSlidingMoves(moves, board, from, side, rookDirections)
			case Queen:
				moves = generateSlidingMoves(moves, board, from, side, allDirections[:])
			case King:
				moves = generateKingMoves(moves, board, from, side, rights)
			}
		}
	}
	return moves
}

// IsCheck reports whether side's king is attacked. A position with no
// king for side reads as not in check; the engine accepts arbitrary
// board setups and a missing king is degenerate, not fatal.
func (ru Rules) IsCheck(board *Board, side Color) bool {
	king, ok := findKing(board, side)
	return ok && isSquareAttacked(board, king, side.Opponent())
}

// IsCheckmate reports whether side is in check with no legal moves.
func (ru Rules) IsCheckmate(board *Board, side Color, lastMove *Move, rights CastlingRights) bool {
	return ru.IsCheck(board, side) && len(ru.LegalMoves(board, side, lastMove, rights)) == 0
}

// IsStalemate reports whether side is not in check but has no legal moves.
func (ru Rules) IsStalemate(board *Board, side Color, lastMove *Move, rights CastlingRights) bool {
	return !ru.IsCheck(board, side) && len(ru.LegalMoves(board, side, lastMove, rights)) == 0
}

// findKing scans the board for side's king.
func findKing(board *Board, side Color) (Square, bool) {
	for r := 0; r < BoardSize; r++ {
		for f := 0; f < BoardSize; f++ {
			sq := Square{Rank: r, File: f}
			if piece, ok := board.At(sq); ok && piece.Type == King && piece.Color == side {
				return sq, true
			}
		}
	}
	return Square{}, false
}

// pawnForward is the rank delta a pawn of the given color advances by.
// White pawns move toward rank 0, black pawns toward rank 7.
func pawnForward(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

func isAttackedByPawn(board *Board, target Square, attacker Color) bool {
	// An attacking pawn sits one rank behind the target relative to its
	// own direction of travel.
	behind := -pawnForward(attacker)
	for _, df := range [2]int{-1, 1} {
		sq := Square{Rank: target.Rank + behind, File: target.File + df}
		if piece, ok := board.At(sq); ok && piece.Type == Pawn && piece.Color == attacker {
			return true
		}
	}
	return false
}

func isAttackedByKnight(board *Board, target Square, attacker Color) bool {
	for _, d := range knightOffsets {
		sq := Square{Rank: target.Rank + d[0], File: target.File + d[1]}
		if piece, ok := board.At(sq); ok && piece.Type == Knight && piece.Color == attacker {
			return true
		}
	}
	return false
}

// isAttackedBySlider walks the eight rays from target outward, stopping
// at the first occupant of each. The adjacent enemy king counts as a
// distance-1 slide.
func isAttackedBySlider(board *Board, target Square, attacker Color) bool {
	for i, d := range allDirections {
		diagonal := i >= 4
		distance := 1
		r, f := target.Rank+d[0], target.File+d[1]
		for {
			sq := Square{Rank: r, File: f}
			if !sq.Valid() {
				break
			}
			if piece, ok := board.At(sq); ok {
				if piece.Color == attacker {
					if distance == 1 && piece.Type == King {
						return true
					}
					if !diagonal && (piece.Type == Rook || piece.Type == Queen) {
						return true
					}
					if diagonal && (piece.Type == Bishop || piece.Type == Queen) {
						return true
					}
				}
				break
			}
			distance++
			r += d[0]
			f += d[1]
		}
	}
	return false
}

func isSquareAttacked(board *Board, target Square, attacker Color) bool {
	return isAttackedByPawn(board, target, attacker) ||
		isAttackedByKnight(board, target, attacker) ||
		isAttackedBySlider(board, target, attacker)
}

// isMoveLegal applies the move to a copy of the board, including the
// en-passant victim removal, and checks the mover's king is safe. A
// side with no king has no legal moves.
func isMoveLegal(board *Board, m Move, side Color) bool {
	probe := *board
	probe.MovePiece(m)
	if m.EnPassant {
		probe.ClearSquare(Square{Rank: m.From.Rank, File: m.To.File})
	}
	king, ok := findKing(&probe, side)
	if !ok {
		return false
	}
	return !isSquareAttacked(&probe, king, side.Opponent())
}

func appendIfLegal(moves []Move, board *Board, from, to Square, side Color) []Move {
	m := Move{From: from, To: to}
	if isMoveLegal(board, m, side) {
		moves = append(moves, m)
	}
	return moves
}

func generatePawnMoves(moves []Move, board *Board, from Square, side Color, lastMove *Move) []Move {
	forward := pawnForward(side)
	startRank := 1
	if side == White {
		startRank = 6
	}
	enemy := side.Opponent()

	// Push one, and two from the starting rank if both squares are free.
	one := Square{Rank: from.Rank + forward, File: from.File}
	if one.Valid() && !board.HasPieceAt(one) {
		moves = appendIfLegal(moves, board, from, one, side)
		two := Square{Rank: from.Rank + 2*forward, File: from.File}
		if from.Rank == startRank && two.Valid() && !board.HasPieceAt(two) {
			moves = appendIfLegal(moves, board, from, two, side)
		}
	}

	// Diagonal captures.
	for _, df := range [2]int{-1, 1} {
		target := Square{Rank: from.Rank + forward, File: from.File + df}
		if board.HasColorAt(target, enemy) {
			moves = appendIfLegal(moves, board, from, target, side)
		}
	}

	// En-passant: the previous move was an enemy pawn double push landing
	// beside this pawn. The destination is the square the enemy pawn
	// jumped over; its removal is handled as a secondary effect.
	if lastMove != nil {
		landed, ok := board.At(lastMove.To)
		if ok && landed.Type == Pawn && landed.Color == enemy &&
			abs(lastMove.From.Rank-lastMove.To.Rank) == 2 &&
			from.Rank == lastMove.To.Rank && abs(from.File-lastMove.To.File) == 1 {
			passed := (lastMove.From.Rank + lastMove.To.Rank) / 2
			ep := Move{
				From:      from,
				To:        Square{Rank: passed, File: lastMove.To.File},
				EnPassant: true,
			}
			if isMoveLegal(board, ep, side) {
				moves = append(moves, ep)
			}
		}
	}
	return moves
}

func generateKnightMoves(moves []Move, board *Board, from Square, side Color) []Move {
	for _, d := range knightOffsets {
		to := Square{Rank: from.Rank + d[0], File: from.File + d[1]}
		if !to.Valid() || board.HasColorAt(to, side) {
			continue
		}
		moves = appendIfLegal(moves, board, from, to, side)
	}
	return moves
}

func generateSlidingMoves(moves []Move, board *Board, from Square, side Color, directions [][2]int) []Move {
	for _, d := range directions {
		r, f := from.Rank+d[0], from.File+d[1]
		for {
			to := Square{Rank: r, File: f}
			if !to.Valid() {
				break
			}
			if piece, ok := board.At(to); ok {
				if piece.Color != side {
					moves = appendIfLegal(moves, board, from, to, side)
				}
				break
			}
			moves = appendIfLegal(moves, board, from, to, side)
			r += d[0]
			f += d[1]
		}
	}
	return moves
}

func generateKingMoves(moves []Move, board *Board, from Square, side Color, rights CastlingRights) []Move {
	enemy := side.Opponent()
	for dr := -1; dr <= 1; dr++ {
		for df := -1; df <= 1; df++ {
			if dr == 0 && df == 0 {
				continue
			}
			to := Square{Rank: from.Rank + dr, File: from.File + df}
			if !to.Valid() || board.HasColorAt(to, side) {
				continue
			}
			moves = appendIfLegal(moves, board, from, to, side)
		}
	}

	// Castling. The king must stand on its home square and not be in
	// check. The destination is covered by the legality filter, but the
	// transit square has to be checked here since the filter only looks
	// at the final position.
	homeRank := 0
	if side == White {
		homeRank = 7
	}
	if from.Rank != homeRank || from.File != 4 {
		return moves
	}
	if isSquareAttacked(board, from, enemy) {
		return moves
	}

	if rights.Kingside(side) {
		rook, ok := board.At(Square{Rank: homeRank, File: 7})
		if ok && rook.Type == Rook && rook.Color == side &&
			!board.HasPieceAt(Square{Rank: homeRank, File: 5}) &&
			!board.HasPieceAt(Square{Rank: homeRank, File: 6}) &&
			!isSquareAttacked(board, Square{Rank: homeRank, File: 5}, enemy) &&
			!isSquareAttacked(board, Square{Rank: homeRank, File: 6}, enemy) {
			castle := Move{From: from, To: Square{Rank: homeRank, File: 6}, Castling: true}
			if isMoveLegal(board, castle, side) {
				moves = append(moves, castle)
			}
		}
	}

	if rights.Queenside(side) {
		rook, ok := board.At(Square{Rank: homeRank, File: 0})
		if ok && rook.Type == Rook && rook.Color == side &&
			!board.HasPieceAt(Square{Rank: homeRank, File: 1}) &&
			!board.HasPieceAt(Square{Rank: homeRank, File: 2}) &&
			!board.HasPieceAt(Square{Rank: homeRank, File: 3}) &&
			!isSquareAttacked(board, Square{Rank: homeRank, File: 2}, enemy) &&
			!isSquareAttacked(board, Square{Rank: homeRank, File: 3}, enemy) {
			castle := Move{From: from, To: Square{Rank: homeRank, File: 2}, Castling: true}
			if isMoveLegal(board, castle, side) {
				moves = append(moves, castle)
			}
		}
	}
	return moves
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
