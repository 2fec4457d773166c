package storage

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/benbeisheim/chess/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func playedGame(t *testing.T) *model.Game {
	t.Helper()
	g := model.NewGame()
	for _, m := range []string{"e2e4", "c7c5", "g1f3"} {
		from, _ := model.CoordsToPosition(m[:2])
		to, _ := model.CoordsToPosition(m[2:])
		if _, err := g.MakeMove(model.Move{From: from, To: to}); err != nil {
			t.Fatalf("move %s: %v", m, err)
		}
	}
	return g
}

func TestSaveAndLoadGame(t *testing.T) {
	s := newTestStore(t)
	saved := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return saved }

	g := playedGame(t)
	if err := s.Save("club night", g.Snapshot()); err != nil {
		t.Fatal(err)
	}

	rec, err := s.Load("club night")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Slot != "club night" || !rec.SavedAt.Equal(saved) {
		t.Errorf("record = %+v", rec)
	}

	restored, err := s.LoadGame("club night")
	if err != nil {
		t.Fatal(err)
	}
	if restored.ToMove() != model.Black {
		t.Errorf("to move = %s", restored.ToMove())
	}
	if got := len(restored.History()); got != 3 {
		t.Errorf("history = %d plies", got)
	}
	b8, _ := model.CoordsToPosition("b8")
	c6, _ := model.CoordsToPosition("c6")
	if _, err := restored.MakeMove(model.Move{From: b8, To: c6}); err != nil {
		t.Errorf("restored game cannot continue: %v", err)
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save("slot", model.NewGame().Snapshot()); err != nil {
		t.Fatal(err)
	}
	if err := s.Save("slot", playedGame(t).Snapshot()); err != nil {
		t.Fatal(err)
	}
	rec, err := s.Load("slot")
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.Snapshot.History) != 3 {
		t.Errorf("slot holds %d plies, want the later save", len(rec.Snapshot.History))
	}
}

func TestMissingAndInvalidSlots(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Load("nothing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("load: %v", err)
	}
	if err := s.Delete("nothing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete: %v", err)
	}
	for _, slot := range []string{"", "  ", "a/b"} {
		if err := s.Save(slot, model.NewGame().Snapshot()); !errors.Is(err, ErrInvalidSlot) {
			t.Errorf("save %q: %v", slot, err)
		}
	}
}

func TestListAndDelete(t *testing.T) {
	s := newTestStore(t)
	for _, slot := range []string{"b", "a", "c"} {
		if err := s.Save(slot, model.NewGame().Snapshot()); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Delete("b"); err != nil {
		t.Fatal(err)
	}

	saves, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	var slots []string
	for _, info := range saves {
		slots = append(slots, info.Slot)
	}
	if len(slots) != 2 || slots[0] != "a" || slots[1] != "c" {
		t.Errorf("slots = %v", slots)
	}
}

func TestOpenPersistsAcrossReopen(t *testing.T) {
	dir, err := DatabaseDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save("keep", playedGame(t).Snapshot()); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, err := s.LoadGame("keep"); err != nil {
		t.Errorf("reopened store lost the game: %v", err)
	}
}

func TestDataDirHonoursXDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_DATA_HOME only applies on linux")
	}
	root := t.TempDir()
	t.Setenv("XDG_DATA_HOME", root)
	dir, err := DataDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(root, appName); dir != want {
		t.Errorf("dir = %s, want %s", dir, want)
	}
}
