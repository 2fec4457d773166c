// Package display draws board snapshots for the terminal client.
package display

import (
	"github.com/benbeisheim/chess/internal/model"
)

// Renderer draws a board with the squares a selected piece may move to.
// selected is nil when nothing is selected.
type Renderer interface {
	Render(snapshot model.BoardSnapshot, highlights []model.Position, selected *model.Position) error
}

// View is a Renderer that can also show a line of text to the players.
type View interface {
	Renderer
	Message(text string) error
}

var unicodeGlyphs = map[model.Color]map[model.PieceType]rune{
	model.White: {
		model.King:   '♔',
		model.Queen:  '♕',
		model.Rook:   '♖',
		model.Bishop: '♗',
		model.Knight: '♘',
		model.Pawn:   '♙',
	},
	model.Black: {
		model.King:   '♚',
		model.Queen:  '♛',
		model.Rook:   '♜',
		model.Bishop: '♝',
		model.Knight: '♞',
		model.Pawn:   '♟',
	},
}

var asciiGlyphs = map[model.PieceType]rune{
	model.King:   'k',
	model.Queen:  'q',
	model.Rook:   'r',
	model.Bishop: 'b',
	model.Knight: 'n',
	model.Pawn:   'p',
}

// Glyph returns the character drawn for p. ASCII glyphs are upper case for
// white, lower case for black.
func Glyph(p *model.Piece, ascii bool) rune {
	if p == nil {
		return ' '
	}
	if !ascii {
		return unicodeGlyphs[p.Color][p.Type]
	}
	r := asciiGlyphs[p.Type]
	if p.Color == model.White {
		r -= 'a' - 'A'
	}
	return r
}

// squareMarks classifies every square for drawing.
type squareMark uint8

const (
	markNone squareMark = iota
	markTarget
	markSelected
)

func marks(highlights []model.Position, selected *model.Position) [8][8]squareMark {
	var m [8][8]squareMark
	for _, p := range highlights {
		if p.OnBoard() {
			m[p.File][p.Rank] = markTarget
		}
	}
	if selected != nil && selected.OnBoard() {
		m[selected.File][selected.Rank] = markSelected
	}
	return m
}

const fileLabels = "abcdefgh"
