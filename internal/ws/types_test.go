package ws

import (
	"encoding/json"
	"testing"
)

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage(MessageTypeMove, MovePayload{From: "e2", To: "e4"})
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"type":"move","payload":{"from":"e2","to":"e4"}}`; string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}

	msg, err = NewMessage(MessageTypeResign, nil)
	if err != nil {
		t.Fatal(err)
	}
	data, _ = json.Marshal(msg)
	if want := `{"type":"resign"}`; string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestErrorMessage(t *testing.T) {
	msg := ErrorMessage(`bad "move"`)
	var p ErrorPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if msg.Type != MessageTypeError || p.Error != `bad "move"` {
		t.Errorf("msg = %+v", msg)
	}
}
