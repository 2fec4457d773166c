// Package cli runs a two-player game in the terminal.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/benbeisheim/chess/internal/model"
)

var ErrUnknownCommand = errors.New("unknown command")

type CommandKind string

const (
	CommandSquare CommandKind = "square"
	CommandResign CommandKind = "resign"
	CommandDraw   CommandKind = "draw"
	CommandSave   CommandKind = "save"
	CommandLoad   CommandKind = "load"
	CommandDelete CommandKind = "delete"
	CommandQuit   CommandKind = "quit"
)

// Command is one line of player input: a square or a named command.
type Command struct {
	Kind   CommandKind
	Square model.Position
}

var namedCommands = map[string]CommandKind{
	"resign": CommandResign,
	"draw":   CommandDraw,
	"save":   CommandSave,
	"load":   CommandLoad,
	"delete": CommandDelete,
	"quit":   CommandQuit,
	"exit":   CommandQuit,
}

// ParseCommand reads a square such as "e4" or one of the named commands.
// Case and surrounding space are ignored.
func ParseCommand(text string) (Command, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if kind, ok := namedCommands[text]; ok {
		return Command{Kind: kind}, nil
	}
	pos, err := model.CoordsToPosition(text)
	if err != nil {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, text)
	}
	return Command{Kind: CommandSquare, Square: pos}, nil
}

// parseYesNo accepts y, yes, n and no.
func parseYesNo(text string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	}
	return false, false
}
