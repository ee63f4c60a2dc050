package chess

// Move describes a piece relocation from one square to another.
//
// Promotion, EnPassant and Castling describe how a matching move is
// executed; they are not part of a move's identity. A caller only has
// to supply From and To (and optionally a promotion choice) when
// requesting a move, and the engine substitutes its own fully-flagged
// version of the matching legal move.
type Move struct {
	From      Square    `json:"from"`
	To        Square    `json:"to"`
	Promotion PieceType `json:"promotion,omitempty"`
	EnPassant bool      `json:"enPassant,omitempty"`
	Castling  bool      `json:"castling,omitempty"`
}

// Matches reports whether the two moves share source and destination.
func (m Move) Matches(other Move) bool {
	return m.From == other.From && m.To == other.To
}

// IsSpecial reports whether executing the move has effects beyond the
// plain relocation (castling rook move, en-passant removal, promotion).
func (m Move) IsSpecial() bool {
	return m.Castling || m.EnPassant || m.Promotion != NoPieceType
}

// CastlingRights tracks per-color, per-flank castling eligibility.
// Rights only ever transition from held to revoked.
type CastlingRights struct {
	WhiteKingside  bool `json:"whiteKingside"`
	WhiteQueenside bool `json:"whiteQueenside"`
	BlackKingside  bool `json:"blackKingside"`
	BlackQueenside bool `json:"blackQueenside"`
}

// AllCastlingRights returns the rights held at the start of a game.
func AllCastlingRights() CastlingRights {
	return CastlingRights{
		WhiteKingside:  true,
		WhiteQueenside: true,
		BlackKingside:  true,
		BlackQueenside: true,
	}
}

// Kingside reports whether the given color may still castle kingside.
func (cr CastlingRights) Kingside(c Color) bool {
	if c == White {
		return cr.WhiteKingside
	}
	return cr.BlackKingside
}

// Queenside reports whether the given color may still castle queenside.
func (cr CastlingRights) Queenside(c Color) bool {
	if c == White {
		return cr.WhiteQueenside
	}
	return cr.BlackQueenside
}

// Revoke removes both rights for the given color.
func (cr *CastlingRights) Revoke(c Color) {
	if c == White {
		cr.WhiteKingside = false
		cr.WhiteQueenside = false
	} else {
		cr.BlackKingside = false
		cr.BlackQueenside = false
	}
}
