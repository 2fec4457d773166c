package model

import (
	"fmt"
	"slices"
)

// BoardSnapshot is a detached copy of every square, indexed [file][rank].
type BoardSnapshot [8][8]*Piece

func (b *Board) Snapshot() BoardSnapshot {
	var s BoardSnapshot
	for file := range b.squares {
		for rank, p := range b.squares[file] {
			if p != nil {
				s[file][rank] = p.clone()
			}
		}
	}
	return s
}

// Lookup returns the piece on pos, or nil.
func (s BoardSnapshot) Lookup(pos Position) *Piece {
	if !pos.OnBoard() {
		return nil
	}
	return s[pos.File][pos.Rank]
}

// BoardFromSnapshot rebuilds a board, move states included.
func BoardFromSnapshot(s BoardSnapshot) (*Board, error) {
	b := NewBoard()
	kings := map[Color]int{}
	for file := range s {
		for rank, p := range s[file] {
			if p == nil {
				continue
			}
			pos := Position{File: file, Rank: rank}
			if !p.Type.Valid() || !p.Color.Valid() {
				return nil, fmt.Errorf("%w: bad piece on %s", ErrInvalidSnapshot, pos)
			}
			if p.Position != pos {
				return nil, fmt.Errorf("%w: piece on %s claims %s", ErrInvalidSnapshot, pos, p.Position)
			}
			if p.State > Moved || (p.State == DoubleStepped && p.Type != Pawn) {
				return nil, fmt.Errorf("%w: bad move state on %s", ErrInvalidSnapshot, pos)
			}
			if p.Type == King {
				kings[p.Color]++
			}
			b.Place(p.clone(), pos)
		}
	}
	if kings[White] > 1 || kings[Black] > 1 {
		return nil, fmt.Errorf("%w: more than one king per side", ErrInvalidSnapshot)
	}
	return b, nil
}

// GameSnapshot is everything a saved game needs to resume.
type GameSnapshot struct {
	Board     BoardSnapshot `json:"board"`
	ToMove    Color         `json:"toMove"`
	Outcome   Outcome       `json:"outcome"`
	DrawOffer Color         `json:"drawOffer,omitempty"`
	History   []Ply         `json:"history,omitempty"`
}

func (g *Game) Snapshot() GameSnapshot {
	return GameSnapshot{
		Board:     g.board.Snapshot(),
		ToMove:    g.toMove,
		Outcome:   g.outcome,
		DrawOffer: g.drawOffer,
		History:   slices.Clone(g.history),
	}
}

func GameFromSnapshot(s GameSnapshot) (*Game, error) {
	if !s.ToMove.Valid() {
		return nil, fmt.Errorf("%w: side to move %q", ErrInvalidSnapshot, s.ToMove)
	}
	board, err := BoardFromSnapshot(s.Board)
	if err != nil {
		return nil, err
	}
	return &Game{
		board:     board,
		toMove:    s.ToMove,
		outcome:   s.Outcome,
		drawOffer: s.DrawOffer,
		history:   slices.Clone(s.History),
	}, nil
}
