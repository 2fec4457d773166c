package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/benbeisheim/chess/internal/display"
	"github.com/benbeisheim/chess/internal/model"
	"github.com/benbeisheim/chess/internal/storage"
)

var log = slog.Default().With("package", "cli")

var errQuit = errors.New("quit")

// GameStore keeps a saved game per slot.
type GameStore interface {
	Save(slot string, snap model.GameSnapshot) error
	LoadGame(slot string) (*model.Game, error)
	List() ([]storage.SaveInfo, error)
	Delete(slot string) error
}

// Session runs one game between two players sharing a terminal.
type Session struct {
	game  *model.Game
	view  display.View
	input Prompter
	store GameStore
	slot  string
}

// NewSession starts from game, or a new game when game is nil. Saves go to
// slot until another game is loaded. store may be nil, in which case save,
// load and delete are refused.
func NewSession(game *model.Game, view display.View, input Prompter, store GameStore, slot string) *Session {
	if game == nil {
		game = model.NewGame()
	}
	return &Session{game: game, view: view, input: input, store: store, slot: slot}
}

func (s *Session) Game() *model.Game {
	return s.game
}

// Run plays until the game ends, a player quits or the input closes.
func (s *Session) Run(ctx context.Context) error {
	err := s.loop(ctx)
	if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
		log.Info("session ended by player", "plies", len(s.game.History()))
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.render(nil, nil); err != nil {
		return err
	}
	return s.say("Game over: %s.", s.game.Outcome())
}

func (s *Session) loop(ctx context.Context) error {
	var pending *Command
	for !s.game.Outcome().Over() {
		if err := ctx.Err(); err != nil {
			return err
		}

		cmd := pending
		pending = nil
		if cmd == nil {
			if err := s.render(nil, nil); err != nil {
				return err
			}
			if s.game.IsCheck() {
				if err := s.say("%s is in check.", title(s.game.ToMove())); err != nil {
					return err
				}
			}
			c, err := s.promptCommand(fmt.Sprintf("%s to move, choose a piece or command", title(s.game.ToMove())))
			if err != nil {
				return err
			}
			cmd = &c
		}

		next, err := s.handle(*cmd)
		if err != nil {
			return err
		}
		pending = next
	}
	return nil
}

// handle runs cmd. A command typed while choosing a destination is returned
// to be handled in turn.
func (s *Session) handle(cmd Command) (*Command, error) {
	color := s.game.ToMove()
	switch cmd.Kind {
	case CommandQuit:
		return nil, errQuit
	case CommandResign:
		if err := s.game.Resign(color); err != nil {
			return nil, err
		}
		return nil, nil
	case CommandDraw:
		return nil, s.offerDraw(color)
	case CommandSave:
		return nil, s.save()
	case CommandLoad:
		return nil, s.load()
	case CommandDelete:
		return nil, s.deleteSave()
	}
	return s.turn(cmd.Square)
}

// turn moves the piece on from, letting the player switch to another of
// their pieces before choosing a destination.
func (s *Session) turn(from model.Position) (*Command, error) {
	color := s.game.ToMove()
	for {
		if !s.game.Board().ValidPieceSelection(color, from) {
			return nil, s.say("There is no %s piece on %s.", color, from)
		}
		piece := s.game.Board().Lookup(from)
		moves := s.game.Board().ValidMoves(piece)
		if len(moves) == 0 {
			return nil, s.say("The %s on %s has no legal moves.", piece.Type, from)
		}

		if err := s.render(moves, &from); err != nil {
			return nil, err
		}
		cmd, err := s.promptCommand(fmt.Sprintf("Move the %s on %s to", piece.Type, from))
		if err != nil {
			return nil, err
		}
		if cmd.Kind != CommandSquare {
			return &cmd, nil
		}
		if s.game.Board().ValidPieceSelection(color, cmd.Square) {
			from = cmd.Square
			continue
		}
		if !slices.Contains(moves, cmd.Square) {
			if err := s.say("The %s on %s cannot move to %s.", piece.Type, from, cmd.Square); err != nil {
				return nil, err
			}
			continue
		}
		return nil, s.move(model.Move{From: from, To: cmd.Square})
	}
}

func (s *Session) move(m model.Move) error {
	if s.game.NeedsPromotion(m) {
		promotion, err := s.promptPromotion()
		if err != nil {
			return err
		}
		m.Promotion = promotion
	}
	ply, err := s.game.MakeMove(m)
	if err != nil {
		return s.say("%v", err)
	}
	log.Debug("move played", "notation", ply.Notation)
	return s.say("%s played %s.", title(ply.Color), ply.Notation)
}

func (s *Session) promptPromotion() (model.PieceType, error) {
	for {
		answer, err := s.input.Prompt("Promote to (q, r, b, n)")
		if err != nil {
			return "", err
		}
		pt, err := model.ParsePromotion(answer)
		if err == nil {
			return pt, nil
		}
		if err := s.say("Choose q, r, b or n."); err != nil {
			return "", err
		}
	}
}

func (s *Session) offerDraw(color model.Color) error {
	if err := s.game.OfferDraw(color); err != nil {
		return err
	}
	opponent := color.Opponent()
	for {
		answer, err := s.input.Prompt(fmt.Sprintf("%s offers a draw. %s, accept? (y/n)", title(color), title(opponent)))
		if err != nil {
			return err
		}
		accept, ok := parseYesNo(answer)
		if !ok {
			continue
		}
		if accept {
			return s.game.AcceptDraw(opponent)
		}
		if err := s.game.DeclineDraw(opponent); err != nil {
			return err
		}
		return s.say("Draw declined.")
	}
}

func (s *Session) save() error {
	if s.store == nil {
		return s.say("Saving is not available.")
	}
	if err := s.store.Save(s.slot, s.game.Snapshot()); err != nil {
		log.Error("save failed", "slot", s.slot, "error", err)
		return s.say("Could not save: %v", err)
	}
	return s.say("Game saved to %q.", s.slot)
}

func (s *Session) load() error {
	if s.store == nil {
		return s.say("Loading is not available.")
	}
	slot, ok, err := s.chooseSlot("Load which game")
	if err != nil || !ok {
		return err
	}
	g, err := s.store.LoadGame(slot)
	if err != nil {
		log.Warn("load failed", "slot", slot, "error", err)
		return s.say("Could not load: %v", err)
	}
	s.game = g
	s.slot = slot
	return s.say("Game loaded from %q.", slot)
}

func (s *Session) deleteSave() error {
	if s.store == nil {
		return s.say("Deleting is not available.")
	}
	slot, ok, err := s.chooseSlot("Delete which game")
	if err != nil || !ok {
		return err
	}
	if err := s.store.Delete(slot); err != nil {
		log.Warn("delete failed", "slot", slot, "error", err)
		return s.say("Could not delete: %v", err)
	}
	return s.say("Deleted %q.", slot)
}

// chooseSlot lists the saved games and asks for one; a blank answer picks
// the current slot. ok is false when there is nothing to choose.
func (s *Session) chooseSlot(question string) (string, bool, error) {
	saves, err := s.store.List()
	if err != nil {
		log.Error("listing saves failed", "error", err)
		return "", false, s.say("Could not list saved games: %v", err)
	}
	if len(saves) == 0 {
		return "", false, s.say("No saved games.")
	}
	names := make([]string, 0, len(saves))
	for _, info := range saves {
		names = append(names, fmt.Sprintf("%s (%s)", info.Slot, info.SavedAt.Local().Format("2006-01-02 15:04")))
	}
	if err := s.say("Saved games: %s.", strings.Join(names, ", ")); err != nil {
		return "", false, err
	}
	answer, err := s.input.Prompt(fmt.Sprintf("%s? (Enter for %s)", question, s.slot))
	if err != nil {
		return "", false, err
	}
	if answer == "" {
		return s.slot, true, nil
	}
	return answer, true, nil
}

func (s *Session) promptCommand(question string) (Command, error) {
	for {
		answer, err := s.input.Prompt(question)
		if err != nil {
			return Command{}, err
		}
		cmd, err := ParseCommand(answer)
		if err == nil {
			return cmd, nil
		}
		if err := s.say("Enter a square like e2, or resign, draw, save, load, delete or quit."); err != nil {
			return Command{}, err
		}
	}
}

func (s *Session) render(highlights []model.Position, selected *model.Position) error {
	return s.view.Render(s.game.Board().Snapshot(), highlights, selected)
}

func (s *Session) say(format string, args ...any) error {
	return s.view.Message(fmt.Sprintf(format, args...))
}

func title(c model.Color) string {
	if c == model.White {
		return "White"
	}
	return "Black"
}
