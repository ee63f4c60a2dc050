package model

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"chessroom/internal/chess"
	"chessroom/internal/ws"

	"github.com/gofiber/websocket/v2"
)

// Room resolution strings sent to clients.
const (
	ResolveCheckmate   = "checkmate"
	ResolveStalemate   = "stalemate"
	ResolveResignation = "resignation"
)

// RoomConnections holds the live sockets for a single room.
type RoomConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewRoomConnections() *RoomConnections {
	return &RoomConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

// Room pairs one chess game with its seated players, spectators and
// bookkeeping: captured pieces, move history and the terminal result.
// The rules themselves live in the chess package; the room only decides
// who may move and records what happened.
type Room struct {
	ID          string
	mu          sync.Mutex
	game        *chess.ChessGame
	white       ClientPlayer
	black       ClientPlayer
	captured    CapturedPieces
	history     []Ply
	resolve     string
	connections *RoomConnections
}

// CapturedPieces lists, per side, the pieces that side has captured.
type CapturedPieces struct {
	White []chess.Piece `json:"white"`
	Black []chess.Piece `json:"black"`
}

// RoomPlayers is the pair of seats as sent to clients.
type RoomPlayers struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

// RoomState is the full client-facing snapshot of a room. Board cells
// are nil for empty squares.
type RoomState struct {
	Board           [][]*chess.Piece     `json:"board"`
	ToMove          chess.Color          `json:"toMove"`
	MoveHistory     []Ply                `json:"moveHistory"`
	CapturedPieces  CapturedPieces       `json:"capturedPieces"`
	IsCheck         bool                 `json:"isCheck"`
	LegalMoves      []chess.Move         `json:"legalMoves"`
	EnPassantTarget *chess.Square        `json:"enPassantTarget"`
	LastMove        *chess.Move          `json:"lastMove"`
	CastlingRights  chess.CastlingRights `json:"castlingRights"`
	Resolve         *string              `json:"resolve"`
	Players         RoomPlayers          `json:"players"`
}

func NewRoom(id string) *Room {
	return &Room{
		ID:          id,
		game:        chess.NewChessGame(),
		connections: NewRoomConnections(),
	}
}

// AddPlayer seats a player on the first free seat, white first, and
// returns the assigned color.
func (r *Room) AddPlayer(playerID string) (chess.Color, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.white.ID == playerID || r.black.ID == playerID {
		return "", errors.New("player already seated")
	}
	if r.white.ID == "" {
		r.white = ClientPlayer{ID: playerID, Color: chess.White}
		return chess.White, nil
	}
	if r.black.ID == "" {
		r.black = ClientPlayer{ID: playerID, Color: chess.Black}
		return chess.Black, nil
	}
	return "", errors.New("game is full")
}

func (r *Room) IsPlayerInGame(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.seatColor(playerID)
	return ok
}

// CanSpectate reports whether the room still has a free seat; anyone
// may watch until both seats are taken.
func (r *Room) CanSpectate() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.canSpectate()
}

func (r *Room) canSpectate() bool {
	return r.white.ID == "" || r.black.ID == ""
}

// seatColor returns the color playerID is seated as. Callers hold r.mu.
func (r *Room) seatColor(playerID string) (chess.Color, bool) {
	if playerID == "" {
		return "", false
	}
	switch playerID {
	case r.white.ID:
		return chess.White, true
	case r.black.ID:
		return chess.Black, true
	}
	return "", false
}

// MakeMove validates that the request comes from the seated player
// whose turn it is, hands the square pair to the engine and, on
// success, records the ply and any terminal result.
func (r *Room) MakeMove(playerID string, req MoveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.resolve != "" {
		return errors.New("game is over")
	}
	seat, ok := r.seatColor(playerID)
	if !ok {
		return errors.New("player not in game")
	}
	if seat != r.game.SideToMove() {
		return errors.New("not your turn")
	}

	before := r.game.Board()
	mover := r.game.SideToMove()
	if !r.game.MakeMove(chess.Move{From: req.From, To: req.To, Promotion: req.Promotion}) {
		return errors.New("illegal move")
	}

	resolved, _ := r.game.LastMove()
	r.recordPly(&before, mover, resolved)

	// Terminal state is judged for the side now to move.
	switch {
	case r.game.IsCheckmate():
		r.resolve = ResolveCheckmate
	case r.game.IsStalemate():
		r.resolve = ResolveStalemate
	}

	go r.broadcastState()
	return nil
}

// recordPly appends the applied move to the history and books any
// capture to the moving side. before is the board as it stood when the
// move was requested.
func (r *Room) recordPly(before *chess.Board, mover chess.Color, resolved chess.Move) {
	piece, _ := before.At(resolved.From)

	ply := Ply{
		Piece:     piece,
		From:      resolved.From,
		To:        resolved.To,
		EnPassant: resolved.EnPassant,
	}

	victimSquare := resolved.To
	if resolved.EnPassant {
		// The en-passant victim sits beside the capturer, not on the
		// destination square.
		victimSquare = chess.Square{Rank: resolved.From.Rank, File: resolved.To.File}
	}
	if victim, ok := before.At(victimSquare); ok && victim.Color != mover {
		v := victim
		ply.Captured = &v
		if mover == chess.White {
			r.captured.White = append(r.captured.White, v)
		} else {
			r.captured.Black = append(r.captured.Black, v)
		}
	}

	if resolved.Castling {
		rank := resolved.From.Rank
		switch resolved.To.File {
		case 6:
			ply.RookMove = &RookMove{
				From: chess.Square{Rank: rank, File: 7},
				To:   chess.Square{Rank: rank, File: 5},
			}
		case 2:
			ply.RookMove = &RookMove{
				From: chess.Square{Rank: rank, File: 0},
				To:   chess.Square{Rank: rank, File: 3},
			}
		}
	}

	if piece.Type == chess.Pawn {
		after := r.game.Board()
		if landed, ok := after.At(resolved.To); ok && landed.Type != chess.Pawn {
			ply.Promotion = landed.Type
		}
	}

	r.history = append(r.history, ply)
}

// Resign ends the game in favor of the opponent.
func (r *Room) Resign(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.resolve != "" {
		return errors.New("game is over")
	}
	if _, ok := r.seatColor(playerID); !ok {
		return errors.New("player not in game")
	}
	r.resolve = ResolveResignation

	go r.broadcastState()
	return nil
}

// State returns the client-facing snapshot of the room.
func (r *Room) State() RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buildState()
}

func (r *Room) buildState() RoomState {
	board := r.game.Board()
	rows := make([][]*chess.Piece, chess.BoardSize)
	for rank := 0; rank < chess.BoardSize; rank++ {
		rows[rank] = make([]*chess.Piece, chess.BoardSize)
		for file := 0; file < chess.BoardSize; file++ {
			if piece, ok := board.At(chess.Square{Rank: rank, File: file}); ok {
				p := piece
				rows[rank][file] = &p
			}
		}
	}

	state := RoomState{
		Board:          rows,
		ToMove:         r.game.SideToMove(),
		MoveHistory:    append([]Ply(nil), r.history...),
		CapturedPieces: r.captured,
		IsCheck:        r.game.IsCheck(),
		LegalMoves:     r.game.LegalMoves(),
		CastlingRights: r.game.CastlingRights(),
		Players:        RoomPlayers{White: r.white, Black: r.black},
	}

	if last, ok := r.game.LastMove(); ok {
		lm := last
		state.LastMove = &lm
		state.EnPassantTarget = enPassantTarget(&board, last)
	}
	if r.resolve != "" {
		resolve := r.resolve
		state.Resolve = &resolve
	}
	return state
}

// enPassantTarget returns the square an en-passant capture would land
// on, if the last move was a double pawn push, else nil.
func enPassantTarget(board *chess.Board, last chess.Move) *chess.Square {
	piece, ok := board.At(last.To)
	if !ok || piece.Type != chess.Pawn {
		return nil
	}
	diff := last.To.Rank - last.From.Rank
	if diff != 2 && diff != -2 {
		return nil
	}
	return &chess.Square{Rank: (last.From.Rank + last.To.Rank) / 2, File: last.To.File}
}

// ErrDuplicateConnection means the player already has a live socket in
// the room; the newcomer must be refused, not the original.
var ErrDuplicateConnection = errors.New("player already has a live connection")

// RegisterConnection attaches a socket to the room. A player keeps at
// most one connection; a second attempt is rejected with
// ErrDuplicateConnection and the registered socket stays untouched.
func (r *Room) RegisterConnection(playerID string, conn *websocket.Conn) error {
	r.mu.Lock()
	_, seated := r.seatColor(playerID)
	authorized := seated || r.canSpectate()
	r.mu.Unlock()

	if !authorized {
		return errors.New("not authorized to join this game")
	}

	r.connections.mu.Lock()
	if _, exists := r.connections.connections[playerID]; exists {
		r.connections.mu.Unlock()
		return ErrDuplicateConnection
	}
	r.connections.connections[playerID] = conn
	r.connections.mu.Unlock()

	go r.broadcastState()
	return nil
}

// UnregisterConnection detaches a player's socket. The entry is removed
// only when conn is the registered one, so tearing down a refused
// duplicate cannot evict the connection that came first.
func (r *Room) UnregisterConnection(playerID string, conn *websocket.Conn) {
	r.connections.mu.Lock()
	defer r.connections.mu.Unlock()
	if current, ok := r.connections.connections[playerID]; ok && current == conn {
		delete(r.connections.connections, playerID)
	}
}

// broadcastState pushes the current snapshot to every connection.
// Connections that fail to write are dropped.
func (r *Room) broadcastState() {
	state := r.State()
	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("room %s: marshal state: %v", r.ID, err)
		return
	}
	msg := ws.Message{
		Type:    ws.MessageTypeGameState,
		Payload: json.RawMessage(payload),
	}

	r.connections.mu.Lock()
	defer r.connections.mu.Unlock()
	for playerID, conn := range r.connections.connections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("room %s: send state to %s: %v", r.ID, playerID, err)
			delete(r.connections.connections, playerID)
		}
	}
}
