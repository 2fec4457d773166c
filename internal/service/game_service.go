package service

import (
	"github.com/benbeisheim/chess/internal/model"
	"github.com/benbeisheim/chess/internal/ws"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	return gs.gameManager.CreateGame(nil)
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return "", err
	}
	return session.AddPlayer(playerID)
}

func (gs *GameService) GetGameState(gameID string) (GameState, error) {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return GameState{}, err
	}
	return session.State(), nil
}

// ValidMoves returns the destinations of the piece on square, e.g. "e2".
func (gs *GameService) ValidMoves(gameID string, square string) ([]model.Position, error) {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return nil, err
	}
	pos, err := model.CoordsToPosition(square)
	if err != nil {
		return nil, err
	}
	return session.ValidMoves(pos)
}

// ParseMove converts a client move into squares and a promotion piece.
func ParseMove(p ws.MovePayload) (model.Move, error) {
	from, err := model.CoordsToPosition(p.From)
	if err != nil {
		return model.Move{}, err
	}
	to, err := model.CoordsToPosition(p.To)
	if err != nil {
		return model.Move{}, err
	}
	m := model.Move{From: from, To: to}
	if p.Promotion != "" {
		if m.Promotion, err = model.ParsePromotion(p.Promotion); err != nil {
			return model.Move{}, err
		}
	}
	return m, nil
}

func (gs *GameService) HandleMove(gameID string, playerID string, p ws.MovePayload) (model.Ply, error) {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return model.Ply{}, err
	}
	m, err := ParseMove(p)
	if err != nil {
		return model.Ply{}, err
	}
	return session.MakeMove(playerID, m)
}

func (gs *GameService) Resign(gameID string, playerID string) error {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return err
	}
	return session.Resign(playerID)
}

func (gs *GameService) OfferDraw(gameID string, playerID string) error {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return err
	}
	return session.OfferDraw(playerID)
}

func (gs *GameService) AnswerDraw(gameID string, playerID string, accept bool) error {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return err
	}
	return session.AnswerDraw(playerID, accept)
}

func (gs *GameService) SaveGame(gameID string) (string, error) {
	return gs.gameManager.SaveGame(gameID)
}

func (gs *GameService) LoadGame(saveID string) (string, error) {
	return gs.gameManager.LoadGame(saveID)
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) LeaveMatchmaking(playerID string) bool {
	return gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn Conn) error {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return err
	}
	return session.RegisterConnection(playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn Conn) {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return
	}
	session.UnregisterConnection(playerID, conn)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID, ch)
}
