package display

import (
	"bufio"
	"fmt"
	"io"

	"github.com/benbeisheim/chess/internal/model"
)

// TextRenderer prints the board as lines of text, rank 8 at the top. Each
// square is three characters wide: a selected piece is wrapped in brackets,
// a capturable piece in parentheses and an empty target square is an
// asterisk.
type TextRenderer struct {
	w     io.Writer
	ascii bool
}

func NewTextRenderer(w io.Writer, ascii bool) *TextRenderer {
	return &TextRenderer{w: w, ascii: ascii}
}

func (r *TextRenderer) Render(snapshot model.BoardSnapshot, highlights []model.Position, selected *model.Position) error {
	m := marks(highlights, selected)
	bw := bufio.NewWriter(r.w)

	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(bw, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			p := snapshot[file][rank]
			bw.WriteString(r.cell(p, m[file][rank]))
		}
		fmt.Fprintf(bw, " %d\n", rank+1)
	}
	bw.WriteString("  ")
	for _, f := range fileLabels {
		fmt.Fprintf(bw, " %c ", f)
	}
	bw.WriteString("\n")
	return bw.Flush()
}

func (r *TextRenderer) cell(p *model.Piece, mark squareMark) string {
	if p == nil {
		if mark == markTarget {
			return " * "
		}
		return " . "
	}
	g := Glyph(p, r.ascii)
	switch mark {
	case markSelected:
		return fmt.Sprintf("[%c]", g)
	case markTarget:
		return fmt.Sprintf("(%c)", g)
	}
	return fmt.Sprintf(" %c ", g)
}

func (r *TextRenderer) Message(text string) error {
	_, err := fmt.Fprintln(r.w, text)
	return err
}
