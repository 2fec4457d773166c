package service

import (
	"fmt"
	"sync"

	"github.com/benbeisheim/chess/internal/model"
	"github.com/benbeisheim/chess/internal/ws"
)

// Conn is the part of a websocket connection a session writes to.
type Conn interface {
	WriteJSON(v any) error
}

// The connections for a specific game
type sessionConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.Mutex
}

// Session is one hosted game: the rules state, the two seated players, their
// clocks and everyone watching.
type Session struct {
	ID          string
	mu          sync.Mutex
	game        *model.Game
	white       model.ClientPlayer
	black       model.ClientPlayer
	whiteClock  *model.Clock
	blackClock  *model.Clock
	connections *sessionConnections
}

type GameState struct {
	ID             string              `json:"id"`
	Board          model.BoardSnapshot `json:"board"`
	ToMove         model.Color         `json:"toMove"`
	IsCheck        bool                `json:"isCheck"`
	Outcome        model.Outcome       `json:"outcome"`
	DrawOffer      model.Color         `json:"drawOffer,omitempty"`
	MoveHistory    []model.Ply         `json:"moveHistory"`
	LastMove       *model.Ply          `json:"lastMove"`
	CapturedPieces CapturedPieces      `json:"capturedPieces"`
	Players        Players             `json:"players"`
}

type Players struct {
	White model.ClientPlayer `json:"white"`
	Black model.ClientPlayer `json:"black"`
}

// CapturedPieces lists the pieces each side has taken.
type CapturedPieces struct {
	White []model.PieceType `json:"white"`
	Black []model.PieceType `json:"black"`
}

func NewSession(id string, game *model.Game) *Session {
	if game == nil {
		game = model.NewGame()
	}
	return &Session{
		ID:          id,
		game:        game,
		white:       model.ClientPlayer{Color: model.White},
		black:       model.ClientPlayer{Color: model.Black},
		whiteClock:  model.NewClock(),
		blackClock:  model.NewClock(),
		connections: &sessionConnections{connections: make(map[string]Conn)},
	}
}

// AddPlayer seats playerID in the first free color. A player already seated
// gets their color back.
func (s *Session) AddPlayer(playerID string) (model.Color, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.colorOf(playerID); ok {
		return c, nil
	}
	var color model.Color
	switch {
	case s.white.ID == "":
		s.white.ID = playerID
		color = model.White
	case s.black.ID == "":
		s.black.ID = playerID
		color = model.Black
	default:
		return "", ErrGameFull
	}
	log.Info("player seated", "game", s.ID, "player", playerID, "color", color)
	if s.white.ID != "" && s.black.ID != "" && !s.game.Outcome().Over() {
		s.clockFor(s.game.ToMove()).Start()
	}
	return color, nil
}

func (s *Session) colorOf(playerID string) (model.Color, bool) {
	switch {
	case playerID == "":
		return "", false
	case s.white.ID == playerID:
		return model.White, true
	case s.black.ID == playerID:
		return model.Black, true
	}
	return "", false
}

func (s *Session) clockFor(c model.Color) *model.Clock {
	if c == model.White {
		return s.whiteClock
	}
	return s.blackClock
}

// State returns what clients are shown.
func (s *Session) State() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

func (s *Session) state() GameState {
	history := s.game.History()
	captured := CapturedPieces{White: []model.PieceType{}, Black: []model.PieceType{}}
	for _, ply := range history {
		if ply.Captured == nil {
			continue
		}
		if ply.Color == model.White {
			captured.White = append(captured.White, ply.Captured.Type)
		} else {
			captured.Black = append(captured.Black, ply.Captured.Type)
		}
	}

	white, black := s.white, s.black
	white.TimeUsed = s.whiteClock.Used().Milliseconds()
	black.TimeUsed = s.blackClock.Used().Milliseconds()

	return GameState{
		ID:             s.ID,
		Board:          s.game.Board().Snapshot(),
		ToMove:         s.game.ToMove(),
		IsCheck:        s.game.IsCheck(),
		Outcome:        s.game.Outcome(),
		DrawOffer:      s.game.DrawOffer(),
		MoveHistory:    history,
		LastMove:       s.game.LastMove(),
		CapturedPieces: captured,
		Players:        Players{White: white, Black: black},
	}
}

// ValidMoves returns the legal destinations of the piece on pos.
func (s *Session) ValidMoves(pos model.Position) ([]model.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.ValidMoves(pos)
}

// Snapshot returns the game for saving.
func (s *Session) Snapshot() model.GameSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

// MakeMove plays m for playerID, who must hold the side to move.
func (s *Session) MakeMove(playerID string, m model.Move) (model.Ply, error) {
	s.mu.Lock()
	color, ok := s.colorOf(playerID)
	if !ok {
		s.mu.Unlock()
		return model.Ply{}, ErrNotAPlayer
	}
	if color != s.game.ToMove() {
		s.mu.Unlock()
		return model.Ply{}, fmt.Errorf("%w: %s to move", model.ErrNotYourTurn, s.game.ToMove())
	}

	ply, err := s.game.MakeMove(m)
	if err != nil {
		s.mu.Unlock()
		return model.Ply{}, err
	}
	s.clockFor(color).Stop()
	if !s.game.Outcome().Over() {
		s.clockFor(color.Opponent()).Start()
	} else {
		log.Info("game over", "game", s.ID, "outcome", s.game.Outcome().String())
	}
	state := s.state()
	s.mu.Unlock()

	s.broadcast(state)
	return ply, nil
}

// Resign ends the game with playerID's side losing.
func (s *Session) Resign(playerID string) error {
	return s.act(playerID, func(c model.Color) error {
		return s.game.Resign(c)
	})
}

// OfferDraw records playerID's offer. If the opponent already offered, the
// game is drawn instead.
func (s *Session) OfferDraw(playerID string) error {
	return s.act(playerID, func(c model.Color) error {
		if s.game.DrawOffer() == c.Opponent() {
			return s.game.AcceptDraw(c)
		}
		return s.game.OfferDraw(c)
	})
}

// AnswerDraw accepts or declines the opponent's pending offer.
func (s *Session) AnswerDraw(playerID string, accept bool) error {
	return s.act(playerID, func(c model.Color) error {
		if accept {
			return s.game.AcceptDraw(c)
		}
		return s.game.DeclineDraw(c)
	})
}

// act runs fn for a seated player's color, then stops the clocks if the game
// ended and tells everyone.
func (s *Session) act(playerID string, fn func(model.Color) error) error {
	s.mu.Lock()
	color, ok := s.colorOf(playerID)
	if !ok {
		s.mu.Unlock()
		return ErrNotAPlayer
	}
	if err := fn(color); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.game.Outcome().Over() {
		s.whiteClock.Stop()
		s.blackClock.Stop()
		log.Info("game over", "game", s.ID, "outcome", s.game.Outcome().String())
	}
	state := s.state()
	s.mu.Unlock()

	s.broadcast(state)
	return nil
}

// RegisterConnection adds a watcher. Seated players and anyone while a seat
// is free may watch; a second connection for the same player is refused with
// ErrAlreadyConnected and left for the caller to close.
func (s *Session) RegisterConnection(playerID string, conn Conn) error {
	s.mu.Lock()
	_, seated := s.colorOf(playerID)
	authorized := seated || s.white.ID == "" || s.black.ID == ""
	state := s.state()
	s.mu.Unlock()

	if !authorized {
		return ErrNotAPlayer
	}

	s.connections.mu.Lock()
	if _, exists := s.connections.connections[playerID]; exists {
		s.connections.mu.Unlock()
		log.Warn("duplicate connection refused", "game", s.ID, "player", playerID)
		return ErrAlreadyConnected
	}
	s.connections.connections[playerID] = conn
	s.connections.mu.Unlock()
	log.Debug("connection registered", "game", s.ID, "player", playerID)

	s.broadcast(state)
	return nil
}

// UnregisterConnection drops playerID's connection if conn is still the
// registered one.
func (s *Session) UnregisterConnection(playerID string, conn Conn) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()

	if current, ok := s.connections.connections[playerID]; ok && current == conn {
		delete(s.connections.connections, playerID)
		log.Debug("connection unregistered", "game", s.ID, "player", playerID)
	}
}

func (s *Session) broadcast(state GameState) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		log.Error("failed to encode state", "game", s.ID, "error", err)
		return
	}

	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	for playerID, conn := range s.connections.connections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warn("dropping connection", "game", s.ID, "player", playerID, "error", err)
			delete(s.connections.connections, playerID)
		}
	}
}
