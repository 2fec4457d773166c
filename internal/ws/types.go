package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove       MessageType = "move"
	MessageTypeGameState  MessageType = "gameState"
	MessageTypeDrawOffer  MessageType = "drawOffer"
	MessageTypeResign     MessageType = "resign"
	MessageTypeDraw       MessageType = "draw"
	MessageTypeMatchFound MessageType = "matchFound"
	MessageTypeError      MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MovePayload is a move as clients send it: squares in text form ("e2") and
// an optional promotion piece ("q" or "queen").
type MovePayload struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

// DrawPayload answers a pending draw offer.
type DrawPayload struct {
	Accept bool `json:"accept"`
}

// ErrorPayload carries a failure back to the client that caused it.
type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage encodes payload into a message of type t. A nil payload leaves
// the payload empty.
func NewMessage(t MessageType, payload any) (Message, error) {
	if payload == nil {
		return Message{Type: t}, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}

// ErrorMessage builds an error message for text.
func ErrorMessage(text string) Message {
	raw, _ := json.Marshal(ErrorPayload{Error: text})
	return Message{Type: MessageTypeError, Payload: raw}
}
