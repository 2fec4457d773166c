package controller

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/chess/internal/service"
	"github.com/benbeisheim/chess/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// safeConn serializes writes to one connection; the session broadcast and
// the read loop both write.
type safeConn struct {
	mu sync.Mutex
	*websocket.Conn
}

func (c *safeConn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteJSON(v)
}

type jsonWriter interface {
	WriteJSON(v any) error
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals("playerID").(string)
	conn := &safeConn{Conn: c}

	if err := wsc.gameService.RegisterConnection(gameID, playerID, conn); err != nil {
		log.Warn("failed to register connection", "game", gameID, "player", playerID, "error", err)
		wsc.sendError(conn, err.Error())
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, conn)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debug("read error", "game", gameID, "player", playerID, "error", err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debug("parse error", "error", err)
			wsc.sendError(conn, "malformed message")
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			log.Debug("handle error", "type", msg.Type, "error", err)
			wsc.sendError(conn, err.Error())
		}
	}
}

// handleMessage applies one client message. Successful actions reach every
// client through the session's state broadcast.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		_, err := wsc.gameService.HandleMove(gameID, playerID, move)
		return err

	case ws.MessageTypeResign:
		return wsc.gameService.Resign(gameID, playerID)

	case ws.MessageTypeDrawOffer:
		return wsc.gameService.OfferDraw(gameID, playerID)

	case ws.MessageTypeDraw:
		var answer ws.DrawPayload
		if err := json.Unmarshal(msg.Payload, &answer); err != nil {
			return err
		}
		return wsc.gameService.AnswerDraw(gameID, playerID, answer.Accept)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// HandleMatchmaking queues the player and waits for a match, then sends a
// matchFound message and closes.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID, _ := c.Locals("playerID").(string)
	ch := make(chan string, 1)
	wsc.gameService.RegisterMatchmakingChannel(playerID, ch)
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID, ch)

	if err := wsc.gameService.JoinMatchmaking(playerID); err != nil {
		wsc.sendError(c, err.Error())
		return
	}

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case event, ok := <-ch:
		if !ok {
			wsc.sendError(c, "matchmaking superseded by another connection")
			return
		}
		if err := c.WriteJSON(ws.Message{
			Type:    ws.MessageTypeMatchFound,
			Payload: json.RawMessage(event),
		}); err != nil {
			log.Warn("failed to send match", "player", playerID, "error", err)
		}
	case <-gone:
		wsc.gameService.LeaveMatchmaking(playerID)
		log.Debug("left matchmaking", "player", playerID)
	}
}

// Helper method to send error messages
func (wsc *WebSocketController) sendError(c jsonWriter, errorMsg string) {
	if err := c.WriteJSON(ws.ErrorMessage(errorMsg)); err != nil {
		log.Debug("failed to send error", "error", err)
	}
}
