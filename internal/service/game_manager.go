package service

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"chessroom/internal/chess"
	"chessroom/internal/model"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gofiber/websocket/v2"
)

// matchmakingInterval is how often the pairing loop checks the queue.
const matchmakingInterval = time.Second

// GameManager owns every live room plus the matchmaking queue. All
// room lookup goes through it.
type GameManager struct {
	rooms            map[string]*model.Room
	queue            *model.Queue
	matchingChannels map[string]chan string
	pendingMatches   map[string]string // playerID -> event payload awaiting a poll
	mu               sync.RWMutex
}

func NewGameManager() *GameManager {
	gm := &GameManager{
		rooms:            make(map[string]*model.Room),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
		pendingMatches:   make(map[string]string),
	}

	go gm.processMatchmaking()

	return gm
}

// NewRoomID returns a human-readable room identifier ("wiggly-mole")
// that is not currently in use.
func (gm *GameManager) NewRoomID() string {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	for {
		id := petname.Generate(2, "-")
		if _, exists := gm.rooms[id]; !exists {
			return id
		}
	}
}

func (gm *GameManager) CreateRoom(roomID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.rooms[roomID]; exists {
		return errors.New("game already exists")
	}

	gm.rooms[roomID] = model.NewRoom(roomID)
	return nil
}

func (gm *GameManager) GetRoom(roomID string) (*model.Room, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	room, exists := gm.rooms[roomID]
	if !exists {
		return nil, errors.New("game not found")
	}
	return room, nil
}

func (gm *GameManager) AddPlayerToRoom(roomID, playerID string) (chess.Color, error) {
	room, err := gm.GetRoom(roomID)
	if err != nil {
		return "", err
	}
	return room.AddPlayer(playerID)
}

func (gm *GameManager) GetRoomState(roomID string) (model.RoomState, error) {
	room, err := gm.GetRoom(roomID)
	if err != nil {
		return model.RoomState{}, err
	}
	return room.State(), nil
}

func (gm *GameManager) MakeMove(roomID, playerID string, req model.MoveRequest) error {
	room, err := gm.GetRoom(roomID)
	if err != nil {
		return err
	}
	return room.MakeMove(playerID, req)
}

func (gm *GameManager) Resign(roomID, playerID string) error {
	room, err := gm.GetRoom(roomID)
	if err != nil {
		return err
	}
	return room.Resign(playerID)
}

func (gm *GameManager) RegisterConnection(roomID, playerID string, conn *websocket.Conn) error {
	room, err := gm.GetRoom(roomID)
	if err != nil {
		return err
	}
	return room.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(roomID, playerID string, conn *websocket.Conn) {
	room, err := gm.GetRoom(roomID)
	if err != nil {
		return
	}
	room.UnregisterConnection(playerID, conn)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	return gm.queue.AddPlayer(model.Player{ID: playerID})
}

func (gm *GameManager) LeaveMatchmaking(playerID string) {
	gm.queue.RemovePlayer(playerID)
}

// RegisterMatchmakingChannel registers the channel a waiting player
// receives its match-found event on. A stale channel for the same
// player is closed and replaced. An event that arrived while the
// player had no channel registered is delivered right away.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch

	if payload, ok := gm.pendingMatches[playerID]; ok {
		gm.deliverLocked(playerID, payload)
	}
}

func (gm *GameManager) UnregisterMatchmakingChannel(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	// The channel is closed by whoever created it, not here.
	delete(gm.matchingChannels, playerID)
}

// processMatchmaking pairs queued players on a fixed tick. Each pair
// gets a fresh room; both players are seated and notified over their
// registered channels.
func (gm *GameManager) processMatchmaking() {
	ticker := time.NewTicker(matchmakingInterval)
	defer ticker.Stop()

	for range ticker.C {
		gm.matchPending()
	}
}

func (gm *GameManager) matchPending() {
	for {
		first, second, ok := gm.queue.NextPair()
		if !ok {
			return
		}

		roomID := gm.NewRoomID()
		room := model.NewRoom(roomID)

		firstColor, err := room.AddPlayer(first.ID)
		if err != nil {
			log.Printf("matchmaking: seat %s: %v", first.ID, err)
			continue
		}
		secondColor, err := room.AddPlayer(second.ID)
		if err != nil {
			log.Printf("matchmaking: seat %s: %v", second.ID, err)
			continue
		}

		gm.mu.Lock()
		gm.rooms[roomID] = room
		gm.notifyLocked(first.ID, model.MatchFoundEvent{GameID: roomID, Color: firstColor})
		gm.notifyLocked(second.ID, model.MatchFoundEvent{GameID: roomID, Color: secondColor})
		gm.mu.Unlock()

		log.Printf("matchmaking: paired %s and %s into %s", first.ID, second.ID, roomID)
	}
}

// notifyLocked serializes a match-found event and hands it off for
// delivery. Callers hold gm.mu.
func (gm *GameManager) notifyLocked(playerID string, event model.MatchFoundEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("matchmaking: marshal event: %v", err)
		return
	}
	gm.deliverLocked(playerID, string(payload))
}

// deliverLocked pushes an event payload to the player's registered
// channel and retires the channel. A player with no channel, or one
// whose channel cannot take the send, keeps the payload parked in
// pendingMatches until the next RegisterMatchmakingChannel picks it
// up, so a match found between polls is never lost. Callers hold gm.mu.
func (gm *GameManager) deliverLocked(playerID, payload string) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		gm.pendingMatches[playerID] = payload
		return
	}
	select {
	case ch <- payload:
		delete(gm.matchingChannels, playerID)
		close(ch)
		delete(gm.pendingMatches, playerID)
	default:
		gm.pendingMatches[playerID] = payload
	}
}
