package model

import "testing"

func TestMoveSearch(t *testing.T) {
	tests := []struct {
		name    string
		start   Position
		dir     Direction
		blocker *Position
		want    []Position
	}{
		{
			name:  "up, nothing above",
			start: Position{0, 0},
			dir:   Up,
			want:  coords([2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3}, [2]int{0, 4}, [2]int{0, 5}, [2]int{0, 6}, [2]int{0, 7}),
		},
		{
			name:    "up, piece above",
			start:   Position{0, 0},
			dir:     Up,
			blocker: &Position{0, 6},
			want:    coords([2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3}, [2]int{0, 4}, [2]int{0, 5}),
		},
		{
			name:  "down, nothing below",
			start: Position{0, 7},
			dir:   Down,
			want:  coords([2]int{0, 6}, [2]int{0, 5}, [2]int{0, 4}, [2]int{0, 3}, [2]int{0, 2}, [2]int{0, 1}, [2]int{0, 0}),
		},
		{
			name:    "down, piece below",
			start:   Position{0, 7},
			dir:     Down,
			blocker: &Position{0, 1},
			want:    coords([2]int{0, 6}, [2]int{0, 5}, [2]int{0, 4}, [2]int{0, 3}, [2]int{0, 2}),
		},
		{
			name:  "left, nothing leftward",
			start: Position{7, 0},
			dir:   Left,
			want:  coords([2]int{6, 0}, [2]int{5, 0}, [2]int{4, 0}, [2]int{3, 0}, [2]int{2, 0}, [2]int{1, 0}, [2]int{0, 0}),
		},
		{
			name:    "left, piece leftward",
			start:   Position{7, 0},
			dir:     Left,
			blocker: &Position{1, 0},
			want:    coords([2]int{6, 0}, [2]int{5, 0}, [2]int{4, 0}, [2]int{3, 0}, [2]int{2, 0}),
		},
		{
			name:    "right, piece rightward",
			start:   Position{0, 0},
			dir:     Right,
			blocker: &Position{7, 0},
			want:    coords([2]int{1, 0}, [2]int{2, 0}, [2]int{3, 0}, [2]int{4, 0}, [2]int{5, 0}, [2]int{6, 0}),
		},
		{
			name:  "off the board immediately",
			start: Position{0, 0},
			dir:   DownLeft,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard()
			if tt.blocker != nil {
				b.Place(NewPiece(Pawn, White, *tt.blocker), *tt.blocker)
			}
			assertPositions(t, b.MoveSearch(tt.start, tt.dir.Transform(), 0), tt.want)
		})
	}
}

func TestMoveSearchStepLimit(t *testing.T) {
	b := NewBoard()
	got := b.MoveSearch(Position{3, 3}, Up.Transform(), 2)
	assertPositions(t, got, coords([2]int{3, 4}, [2]int{3, 5}))
}

func TestAttackSearch(t *testing.T) {
	start := Position{0, 0}

	t.Run("no enemy", func(t *testing.T) {
		b := NewBoard()
		assertPositions(t, b.AttackSearch(start, White, Up.Transform(), 0), nil)
	})

	t.Run("enemy on the ray", func(t *testing.T) {
		b := NewBoard()
		b.Place(NewPiece(Rook, Black, Position{}), Position{0, 5})
		assertPositions(t, b.AttackSearch(start, White, Up.Transform(), 0), coords([2]int{0, 5}))
	})

	t.Run("enemy behind an ally", func(t *testing.T) {
		b := NewBoard()
		b.Place(NewPiece(Rook, Black, Position{}), Position{0, 5})
		b.Place(NewPiece(Pawn, White, Position{}), Position{0, 4})
		assertPositions(t, b.AttackSearch(start, White, Up.Transform(), 0), nil)
	})

	t.Run("enemy beyond the step limit", func(t *testing.T) {
		b := NewBoard()
		b.Place(NewPiece(Rook, Black, Position{}), Position{0, 2})
		assertPositions(t, b.AttackSearch(start, White, Up.Transform(), 1), nil)
	})
}
