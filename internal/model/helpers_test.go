package model

import (
	"slices"
	"testing"
)

// boardFromDiagram builds a board from eight rows, rank 8 first. Upper case
// is white, lower case black, '.' empty. Kings and rooks on their home
// squares and pawns on their start rank are unmoved; everything else has
// moved.
func boardFromDiagram(t *testing.T, rows ...string) *Board {
	t.Helper()
	if len(rows) != 8 {
		t.Fatalf("diagram needs 8 rows, got %d", len(rows))
	}
	types := map[rune]PieceType{'k': King, 'q': Queen, 'r': Rook, 'b': Bishop, 'n': Knight, 'p': Pawn}
	b := NewBoard()
	for i, row := range rows {
		if len(row) != 8 {
			t.Fatalf("row %d has %d squares", i, len(row))
		}
		rank := 7 - i
		for file, r := range row {
			if r == '.' {
				continue
			}
			color := Black
			lower := r
			if r >= 'A' && r <= 'Z' {
				color = White
				lower = r + ('a' - 'A')
			}
			pt, ok := types[lower]
			if !ok {
				t.Fatalf("unknown piece %q", r)
			}
			pos := Position{File: file, Rank: rank}
			p := NewPiece(pt, color, pos)
			if !startsUnmoved(p) {
				p.State = Moved
			}
			b.Place(p, pos)
		}
	}
	return b
}

func startsUnmoved(p *Piece) bool {
	home := 0
	if p.Color == Black {
		home = 7
	}
	switch p.Type {
	case King:
		return p.Position == Position{File: 4, Rank: home}
	case Rook:
		return p.Position.Rank == home && (p.Position.File == 0 || p.Position.File == 7)
	case Pawn:
		if p.Color == White {
			return p.Position.Rank == 1
		}
		return p.Position.Rank == 6
	}
	return false
}

func pos(t *testing.T, text string) Position {
	t.Helper()
	p, err := CoordsToPosition(text)
	if err != nil {
		t.Fatalf("bad square %q: %v", text, err)
	}
	return p
}

func squares(t *testing.T, texts ...string) []Position {
	t.Helper()
	out := make([]Position, 0, len(texts))
	for _, s := range texts {
		out = append(out, pos(t, s))
	}
	sortPositions(out)
	return out
}

func coords(pairs ...[2]int) []Position {
	out := make([]Position, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, Position{File: p[0], Rank: p[1]})
	}
	return out
}

func assertPositions(t *testing.T, got, want []Position) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func mustMove(t *testing.T, g *Game, from, to string) Ply {
	t.Helper()
	ply, err := g.MakeMove(Move{From: pos(t, from), To: pos(t, to)})
	if err != nil {
		t.Fatalf("move %s%s: %v", from, to, err)
	}
	return ply
}

func gameWith(t *testing.T, b *Board, toMove Color) *Game {
	t.Helper()
	g, err := GameFromSnapshot(GameSnapshot{Board: b.Snapshot(), ToMove: toMove})
	if err != nil {
		t.Fatalf("game from snapshot: %v", err)
	}
	return g
}
