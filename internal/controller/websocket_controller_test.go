package controller

import (
	"errors"
	"testing"

	"github.com/benbeisheim/chess/internal/model"
	"github.com/benbeisheim/chess/internal/service"
	"github.com/benbeisheim/chess/internal/ws"
)

func TestHandleMessage(t *testing.T) {
	gm := service.NewGameManager(nil, 0)
	defer gm.Close()
	gs := service.NewGameService(gm)
	wsc := NewWebSocketController(gs)

	gameID, err := gs.CreateGame()
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{"alice", "bob"} {
		if _, err := gs.JoinGame(gameID, p); err != nil {
			t.Fatal(err)
		}
	}

	mustMessage := func(typ ws.MessageType, payload any) ws.Message {
		msg, err := ws.NewMessage(typ, payload)
		if err != nil {
			t.Fatal(err)
		}
		return msg
	}

	if err := wsc.handleMessage(gameID, "alice", mustMessage(ws.MessageTypeMove, ws.MovePayload{From: "e2", To: "e4"})); err != nil {
		t.Fatalf("move: %v", err)
	}
	err = wsc.handleMessage(gameID, "alice", mustMessage(ws.MessageTypeMove, ws.MovePayload{From: "d2", To: "d4"}))
	if !errors.Is(err, model.ErrNotYourTurn) {
		t.Errorf("second white move: %v", err)
	}
	if err := wsc.handleMessage(gameID, "bob", mustMessage(ws.MessageTypeDrawOffer, nil)); err != nil {
		t.Fatalf("draw offer: %v", err)
	}
	if err := wsc.handleMessage(gameID, "alice", mustMessage(ws.MessageTypeDraw, ws.DrawPayload{Accept: false})); err != nil {
		t.Fatalf("decline: %v", err)
	}
	if err := wsc.handleMessage(gameID, "bob", mustMessage(ws.MessageTypeResign, nil)); err != nil {
		t.Fatalf("resign: %v", err)
	}
	if err := wsc.handleMessage(gameID, "bob", ws.Message{Type: "castle"}); err == nil {
		t.Error("unknown message type accepted")
	}

	state, err := gs.GetGameState(gameID)
	if err != nil {
		t.Fatal(err)
	}
	if state.Outcome.Kind != model.OutcomeResignation || state.Outcome.Winner != model.White {
		t.Errorf("outcome = %+v", state.Outcome)
	}
}
