// Package storage keeps saved games in a BadgerDB database, one JSON record
// per named slot.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/benbeisheim/chess/internal/model"
	"github.com/dgraph-io/badger/v4"
)

var log = slog.Default().With("package", "storage")

var (
	ErrNotFound    = errors.New("no saved game in slot")
	ErrInvalidSlot = errors.New("invalid slot name")
)

const gamePrefix = "game/"

// Record is what a slot holds.
type Record struct {
	Slot     string             `json:"slot"`
	SavedAt  time.Time          `json:"saved_at"`
	Snapshot model.GameSnapshot `json:"snapshot"`
}

// SaveInfo describes a slot without its game.
type SaveInfo struct {
	Slot    string    `json:"slot"`
	SavedAt time.Time `json:"saved_at"`
}

// Store wraps BadgerDB for saved games. It is safe for concurrent use.
type Store struct {
	db  *badger.DB
	now func() time.Time
}

// Open opens, or creates, the database in dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	return open(opts)
}

// OpenInMemory returns a store that keeps nothing on disk.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open saved games: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func slotKey(slot string) ([]byte, error) {
	slot = strings.TrimSpace(slot)
	if slot == "" || strings.ContainsAny(slot, "/\x00") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	return []byte(gamePrefix + slot), nil
}

// Save writes snap to slot, replacing what was there.
func (s *Store) Save(slot string, snap model.GameSnapshot) error {
	key, err := slotKey(slot)
	if err != nil {
		return err
	}
	data, err := json.Marshal(Record{
		Slot:     strings.TrimSpace(slot),
		SavedAt:  s.now().UTC(),
		Snapshot: snap,
	})
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
	if err != nil {
		return err
	}
	log.Info("game saved", "slot", slot, "plies", len(snap.History))
	return nil
}

// Load returns the record in slot, or ErrNotFound.
func (s *Store) Load(slot string) (Record, error) {
	key, err := slotKey(slot)
	if err != nil {
		return Record{}, err
	}

	var rec Record
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: %q", ErrNotFound, slot)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	return rec, err
}

// LoadGame restores the game saved in slot.
func (s *Store) LoadGame(slot string) (*model.Game, error) {
	rec, err := s.Load(slot)
	if err != nil {
		return nil, err
	}
	return model.GameFromSnapshot(rec.Snapshot)
}

// List returns every saved slot in key order.
func (s *Store) List() ([]SaveInfo, error) {
	var saves []SaveInfo
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(gamePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var info SaveInfo
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &info)
			})
			if err != nil {
				return err
			}
			saves = append(saves, info)
		}
		return nil
	})
	return saves, err
}

// Delete removes slot. Deleting an empty slot returns ErrNotFound.
func (s *Store) Delete(slot string) error {
	key, err := slotKey(slot)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: %q", ErrNotFound, slot)
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}
