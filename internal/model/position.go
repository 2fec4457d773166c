package model

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Position addresses one square. File 0-7 maps to a-h, Rank 0-7 to 1-8.
type Position struct {
	File int `json:"file"`
	Rank int `json:"rank"`
}

func (p Position) OnBoard() bool {
	return p.File >= 0 && p.File < 8 && p.Rank >= 0 && p.Rank < 8
}

func (p Position) String() string {
	return fmt.Sprintf("%c%d", 'a'+p.File, p.Rank+1)
}

func (p Position) getFileNotation() string {
	return fmt.Sprintf("%c", 'a'+p.File)
}

// CoordsToPosition maps text such as "e4" or "E4" to a Position.
func CoordsToPosition(text string) (Position, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if len(text) != 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, text)
	}
	file, rank := text[0], text[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, text)
	}
	return Position{File: int(file - 'a'), Rank: int(rank - '1')}, nil
}

func comparePositions(a, b Position) int {
	if c := cmp.Compare(a.File, b.File); c != 0 {
		return c
	}
	return cmp.Compare(a.Rank, b.Rank)
}

// sortPositions orders candidates by file, then rank.
func sortPositions(positions []Position) {
	slices.SortFunc(positions, comparePositions)
}
