package service

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/benbeisheim/chess/internal/model"
	"github.com/google/uuid"
)

var log = slog.Default().With("package", "service")

// SaveStore keeps saved games by slot.
type SaveStore interface {
	Save(slot string, snap model.GameSnapshot) error
	LoadGame(slot string) (*model.Game, error)
}

type GameManager struct {
	sessions         map[string]*Session
	queue            *model.Queue
	matchingChannels map[string]chan string
	store            SaveStore
	mu               sync.RWMutex
	stop             chan struct{}
	done             chan struct{}
}

// NewGameManager returns a manager that pairs queued players every
// matchInterval. A zero interval leaves pairing to explicit MatchPlayers
// calls. store may be nil, which disables saving.
func NewGameManager(store SaveStore, matchInterval time.Duration) *GameManager {
	gm := &GameManager{
		sessions:         make(map[string]*Session),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
		store:            store,
		stop:             make(chan struct{}),
		done:             make(chan struct{}),
	}

	if matchInterval > 0 {
		go gm.processMatchmaking(matchInterval)
	} else {
		close(gm.done)
	}
	return gm
}

// Close stops the matchmaking loop.
func (gm *GameManager) Close() {
	select {
	case <-gm.stop:
	default:
		close(gm.stop)
	}
	<-gm.done
}

func (gm *GameManager) processMatchmaking(interval time.Duration) {
	defer close(gm.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-gm.stop:
			return
		case <-ticker.C:
			gm.MatchPlayers()
		}
	}
}

// MatchPlayers seats the queued players in new games, two at a time, and
// tells each one where to go.
func (gm *GameManager) MatchPlayers() {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	for {
		player1, player2, ok := gm.queue.GetNextPair()
		if !ok {
			return
		}

		gameID := uuid.New().String()
		session := NewSession(gameID, nil)
		p1Color, err := session.AddPlayer(player1.ID)
		if err != nil {
			log.Error("error adding player to game", "player", player1.ID, "error", err)
			continue
		}
		p2Color, err := session.AddPlayer(player2.ID)
		if err != nil {
			log.Error("error adding player to game", "player", player2.ID, "error", err)
			continue
		}
		gm.sessions[gameID] = session
		log.Info("match made", "game", gameID, "white", player1.ID, "black", player2.ID)

		gm.notifyMatch(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color})
		gm.notifyMatch(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: p2Color})
	}
}

// notifyMatch sends event on playerID's channel and closes it. Callers hold
// gm.mu.
func (gm *GameManager) notifyMatch(playerID string, event model.MatchFoundEvent) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		log.Warn("matched player has no listener", "player", playerID, "game", event.GameID)
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Error("failed to encode match event", "error", err)
		return
	}
	select {
	case ch <- string(data):
	default:
		log.Warn("failed to send match event", "player", playerID)
	}
	delete(gm.matchingChannels, playerID)
	close(ch)
}

// RegisterMatchmakingChannel sets where playerID's match event is sent. A
// previous channel for the player is closed.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, ok := gm.matchingChannels[playerID]; ok {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
}

// UnregisterMatchmakingChannel forgets playerID's channel without closing
// it.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if current, ok := gm.matchingChannels[playerID]; ok && current == ch {
		delete(gm.matchingChannels, playerID)
	}
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if err := gm.queue.AddPlayer(model.Player{ID: playerID}); err != nil {
		return err
	}
	log.Debug("player queued", "player", playerID, "waiting", gm.queue.Size())
	return nil
}

func (gm *GameManager) LeaveMatchmaking(playerID string) bool {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return gm.queue.Remove(playerID)
}

// CreateGame hosts game under a new ID; a nil game starts from the opening
// position.
func (gm *GameManager) CreateGame(game *model.Game) (string, error) {
	gameID := uuid.New().String()

	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.sessions[gameID]; exists {
		return "", ErrGameExists
	}
	gm.sessions[gameID] = NewSession(gameID, game)
	log.Info("game created", "game", gameID)
	return gameID, nil
}

func (gm *GameManager) GetSession(gameID string) (*Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	session, exists := gm.sessions[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return session, nil
}

// SaveGame stores the game under a new save ID.
func (gm *GameManager) SaveGame(gameID string) (string, error) {
	if gm.store == nil {
		return "", ErrSavesDisabled
	}
	session, err := gm.GetSession(gameID)
	if err != nil {
		return "", err
	}
	saveID := uuid.New().String()
	if err := gm.store.Save(saveID, session.Snapshot()); err != nil {
		return "", fmt.Errorf("save game %s: %w", gameID, err)
	}
	return saveID, nil
}

// LoadGame hosts the game saved under saveID as a new session.
func (gm *GameManager) LoadGame(saveID string) (string, error) {
	if gm.store == nil {
		return "", ErrSavesDisabled
	}
	game, err := gm.store.LoadGame(saveID)
	if err != nil {
		return "", err
	}
	return gm.CreateGame(game)
}
