package service

import (
	"fmt"

	"chessroom/internal/chess"
	"chessroom/internal/model"

	"github.com/gofiber/websocket/v2"
)

// GameService is the thin facade the controllers talk to.
type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	roomID := gs.gameManager.NewRoomID()

	if err := gs.gameManager.CreateRoom(roomID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return roomID, nil
}

func (gs *GameService) JoinGame(roomID, playerID string) (chess.Color, error) {
	return gs.gameManager.AddPlayerToRoom(roomID, playerID)
}

func (gs *GameService) GetGameState(roomID string) (model.RoomState, error) {
	return gs.gameManager.GetRoomState(roomID)
}

func (gs *GameService) HandleMove(roomID, playerID string, req model.MoveRequest) error {
	return gs.gameManager.MakeMove(roomID, playerID, req)
}

func (gs *GameService) HandleResign(roomID, playerID string) error {
	return gs.gameManager.Resign(roomID, playerID)
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) LeaveMatchmaking(playerID string) {
	gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) RegisterConnection(roomID, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(roomID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(roomID, playerID string, conn *websocket.Conn) {
	gs.gameManager.UnregisterConnection(roomID, playerID, conn)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID)
}
