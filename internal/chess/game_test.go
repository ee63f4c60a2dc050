package chess

import "testing"

// mustMove applies from-to and fails the test if the engine rejects it.
func mustMove(t *testing.T, g *ChessGame, from, to string) {
	t.Helper()
	if !g.MakeMove(Move{From: coord(from), To: coord(to)}) {
		t.Fatalf("move %s-%s rejected", from, to)
	}
}

func TestNewGameState(t *testing.T) {
	g := NewChessGame()

	if g.SideToMove() != White {
		t.Errorf("side to move = %s, want white", g.SideToMove())
	}
	if _, ok := g.LastMove(); ok {
		t.Error("a fresh game should have no last move")
	}
	if g.CastlingRights() != AllCastlingRights() {
		t.Errorf("castling rights = %+v, want all held", g.CastlingRights())
	}
	if g.Board() != *NewBoard() {
		t.Error("board does not match the starting position")
	}
	if g.IsCheck() || g.IsCheckmate() || g.IsStalemate() || g.IsGameOver() {
		t.Error("fresh game should have no terminal or check state")
	}
}

func TestNewGameResetsAfterPlay(t *testing.T) {
	g := NewChessGame()
	mustMove(t, g, "e2", "e4")
	mustMove(t, g, "e7", "e5")
	mustMove(t, g, "g1", "f3")

	g.NewGame()

	if g.Board() != *NewBoard() {
		t.Error("NewGame did not restore the starting position")
	}
	if g.SideToMove() != White {
		t.Errorf("side to move after reset = %s, want white", g.SideToMove())
	}
	if _, ok := g.LastMove(); ok {
		t.Error("last move should be cleared by NewGame")
	}
	if g.CastlingRights() != AllCastlingRights() {
		t.Error("castling rights should be restored by NewGame")
	}
}

func TestIllegalMoveLeavesStateUntouched(t *testing.T) {
	g := NewChessGame()
	before := g.Board()

	tests := []struct {
		name string
		move Move
	}{
		{"empty source", Move{From: coord("e4"), To: coord("e5")}},
		{"pawn sideways", Move{From: coord("e2"), To: coord("d3")}},
		{"opponent piece", Move{From: coord("e7"), To: coord("e5")}},
		{"off the board", Move{From: Square{Rank: 6, File: 4}, To: Square{Rank: 6, File: 8}}},
		{"blocked rook", Move{From: coord("a1"), To: coord("a5")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if g.MakeMove(tt.move) {
				t.Fatal("illegal move was accepted")
			}
			if g.Board() != before {
				t.Error("board changed after a rejected move")
			}
			if g.SideToMove() != White {
				t.Error("side to move changed after a rejected move")
			}
		})
	}
}

func TestEnPassantRoundTrip(t *testing.T) {
	g := NewChessGame()
	mustMove(t, g, "e2", "e4")
	mustMove(t, g, "a7", "a6")
	mustMove(t, g, "e4", "e5")
	mustMove(t, g, "d7", "d5")

	// Request the bare square pair with no flags set; matching must
	// resolve it to the en-passant capture regardless.
	if !g.MakeMove(Move{From: coord("e5"), To: coord("d6")}) {
		t.Fatal("en-passant capture e5xd6 rejected")
	}

	board := g.Board()
	if piece, ok := board.At(coord("d6")); !ok || piece != (Piece{Type: Pawn, Color: White}) {
		t.Errorf("d6 = %+v, want white pawn", piece)
	}
	if board.HasPieceAt(coord("d5")) {
		t.Error("captured black pawn should be removed from d5")
	}
	if board.HasPieceAt(coord("e5")) {
		t.Error("e5 should be vacated by the capturing pawn")
	}

	last, ok := g.LastMove()
	if !ok || !last.EnPassant {
		t.Errorf("last move = %+v, want the resolved en-passant move", last)
	}
}

func TestEnPassantExpiresAfterOneMove(t *testing.T) {
	g := NewChessGame()
	mustMove(t, g, "e2", "e4")
	mustMove(t, g, "a7", "a6")
	mustMove(t, g, "e4", "e5")
	mustMove(t, g, "d7", "d5")
	// Decline the capture; play elsewhere on both sides.
	mustMove(t, g, "b1", "c3")
	mustMove(t, g, "a6", "a5")

	if g.MakeMove(Move{From: coord("e5"), To: coord("d6")}) {
		t.Error("en-passant capture should only be available on the following half-move")
	}
}

func TestKingsideCastling(t *testing.T) {
	g := NewChessGame()
	mustMove(t, g, "g1", "f3")
	mustMove(t, g, "a7", "a6")
	mustMove(t, g, "e2", "e3")
	mustMove(t, g, "b7", "b6")
	mustMove(t, g, "f1", "e2")
	mustMove(t, g, "c7", "c6")

	// Bare square pair again: the caller does not flag the castle.
	if !g.MakeMove(Move{From: coord("e1"), To: coord("g1")}) {
		t.Fatal("kingside castle rejected")
	}

	board := g.Board()
	if piece, ok := board.At(coord("g1")); !ok || piece != (Piece{Type: King, Color: White}) {
		t.Errorf("g1 = %+v, want white king", piece)
	}
	if piece, ok := board.At(coord("f1")); !ok || piece != (Piece{Type: Rook, Color: White}) {
		t.Errorf("f1 = %+v, want relocated rook", piece)
	}
	if board.HasPieceAt(coord("h1")) {
		t.Error("h1 should be vacated by the castling rook")
	}
	if board.HasPieceAt(coord("e1")) {
		t.Error("e1 should be vacated by the king")
	}

	// The king moved, so both white rights are gone; black's are intact.
	rights := g.CastlingRights()
	if rights.WhiteKingside || rights.WhiteQueenside {
		t.Errorf("white rights after castling = %+v, want both revoked", rights)
	}
	if !rights.BlackKingside || !rights.BlackQueenside {
		t.Errorf("black rights disturbed: %+v", rights)
	}

	last, ok := g.LastMove()
	if !ok || !last.Castling {
		t.Errorf("last move = %+v, want the resolved castling move", last)
	}
}

func TestRookExcursionRevokesRightForever(t *testing.T) {
	g := NewChessGame()
	mustMove(t, g, "a2", "a4")
	mustMove(t, g, "h7", "h6")
	mustMove(t, g, "a1", "a2")
	mustMove(t, g, "h6", "h5")
	mustMove(t, g, "a2", "a1")
	mustMove(t, g, "g7", "g6")

	rights := g.CastlingRights()
	if rights.WhiteQueenside {
		t.Error("queenside right must stay revoked after the rook returns home")
	}
	if !rights.WhiteKingside {
		t.Error("kingside right should be unaffected")
	}
}

func TestRookCaptureOnHomeSquareRevokesRight(t *testing.T) {
	g := NewChessGame()
	g.board.Clear()
	g.board.SetPiece(coord("e1"), Piece{Type: King, Color: White})
	g.board.SetPiece(coord("h1"), Piece{Type: Rook, Color: White})
	g.board.SetPiece(coord("h8"), Piece{Type: Rook, Color: Black})
	g.board.SetPiece(coord("e8"), Piece{Type: King, Color: Black})
	g.sideToMove = Black

	mustMove(t, g, "h8", "h1")

	rights := g.CastlingRights()
	if rights.WhiteKingside {
		t.Error("white kingside right must be revoked when the rook is captured at home")
	}
	if rights.BlackKingside {
		t.Error("black kingside right must be revoked when the rook leaves home")
	}
	if !rights.WhiteQueenside || !rights.BlackQueenside {
		t.Errorf("queenside rights disturbed: %+v", rights)
	}
}

func TestPromotionDefaultsToQueen(t *testing.T) {
	g := NewChessGame()
	g.board.Clear()
	g.board.SetPiece(coord("a7"), Piece{Type: Pawn, Color: White})
	g.board.SetPiece(coord("e1"), Piece{Type: King, Color: White})
	g.board.SetPiece(coord("e8"), Piece{Type: King, Color: Black})

	mustMove(t, g, "a7", "a8")

	board := g.Board()
	if piece, ok := board.At(coord("a8")); !ok || piece != (Piece{Type: Queen, Color: White}) {
		t.Errorf("a8 = %+v, want promoted white queen", piece)
	}
}

func TestPromotionHonorsChoice(t *testing.T) {
	tests := []struct {
		name   string
		choice PieceType
		want   PieceType
	}{
		{"knight", Knight, Knight},
		{"rook", Rook, Rook},
		{"bishop", Bishop, Bishop},
		{"invalid choice falls back to queen", King, Queen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewChessGame()
			g.board.Clear()
			g.board.SetPiece(coord("a7"), Piece{Type: Pawn, Color: White})
			g.board.SetPiece(coord("e1"), Piece{Type: King, Color: White})
			g.board.SetPiece(coord("e8"), Piece{Type: King, Color: Black})

			if !g.MakeMove(Move{From: coord("a7"), To: coord("a8"), Promotion: tt.choice}) {
				t.Fatal("promotion move rejected")
			}
			board := g.Board()
			if piece, _ := board.At(coord("a8")); piece.Type != tt.want {
				t.Errorf("promoted to %s, want %s", piece.Type, tt.want)
			}
		})
	}
}

func TestFoolsMate(t *testing.T) {
	g := NewChessGame()
	mustMove(t, g, "f2", "f3")
	mustMove(t, g, "e7", "e5")
	mustMove(t, g, "g2", "g4")
	mustMove(t, g, "d8", "h4")

	if !g.IsCheck() {
		t.Error("white should be in check")
	}
	if !g.IsCheckmate() {
		t.Error("position should be checkmate")
	}
	if g.IsStalemate() {
		t.Error("checkmate must not read as stalemate")
	}
	if !g.IsGameOver() {
		t.Error("game should be over")
	}
	if len(g.LegalMoves()) != 0 {
		t.Error("checkmated side should have no legal moves")
	}
}

// TestGameCapabilityInterface drives a game purely through the Game
// interface, the way a front-end would.
func TestGameCapabilityInterface(t *testing.T) {
	var g Game = NewChessGame()

	if g.SideToMove() != White {
		t.Fatalf("side to move = %s, want white", g.SideToMove())
	}
	if !g.MakeMove(Move{From: coord("e2"), To: coord("e4")}) {
		t.Fatal("e2-e4 rejected")
	}
	if g.MakeMove(Move{From: coord("e4"), To: coord("e5")}) {
		t.Error("white piece must not move on black's turn")
	}
	if len(g.LegalMoves()) == 0 {
		t.Error("black should have moves")
	}
	if g.IsGameOver() {
		t.Error("game should not be over")
	}

	g.NewGame()
	if g.Board() != *NewBoard() {
		t.Error("reset through the interface should restore the start position")
	}
}

func TestSideToMoveAlternates(t *testing.T) {
	g := NewChessGame()
	moves := [][2]string{{"e2", "e4"}, {"e7", "e5"}, {"g1", "f3"}, {"b8", "c6"}}
	want := []Color{Black, White, Black, White}
	for i, mv := range moves {
		mustMove(t, g, mv[0], mv[1])
		if g.SideToMove() != want[i] {
			t.Fatalf("after move %d side to move = %s, want %s", i+1, g.SideToMove(), want[i])
		}
	}
}
