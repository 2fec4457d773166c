package display

import (
	"strconv"

	"github.com/benbeisheim/chess/internal/model"
	"github.com/gdamore/tcell/v2"
)

// Theme holds the colors the screen renderer paints with.
type Theme struct {
	Light    tcell.Color
	Dark     tcell.Color
	Target   tcell.Color
	Selected tcell.Color
	White    tcell.Color
	Black    tcell.Color
	Text     tcell.Color
}

var DefaultTheme = Theme{
	Light:    tcell.NewRGBColor(240, 217, 181),
	Dark:     tcell.NewRGBColor(181, 136, 99),
	Target:   tcell.NewRGBColor(130, 151, 105),
	Selected: tcell.NewRGBColor(246, 246, 105),
	White:    tcell.ColorWhite,
	Black:    tcell.ColorBlack,
	Text:     tcell.ColorSilver,
}

const (
	cellWidth     = 3
	boardLeft     = 2
	boardTop      = 1
	statusLines   = 4
	statusTop     = boardTop + 8 + 2
	glyphInCell   = 1
	rightLabelCol = boardLeft + 8*cellWidth + 1
)

// PromptRow is the first screen row below the status lines.
const PromptRow = statusTop + statusLines

// ScreenRenderer draws the board on a tcell screen, rank 8 at the top, with
// a few lines of status text underneath.
type ScreenRenderer struct {
	screen tcell.Screen
	theme  Theme
	ascii  bool
	status []string
}

func NewScreenRenderer(screen tcell.Screen, theme Theme, ascii bool) *ScreenRenderer {
	return &ScreenRenderer{screen: screen, theme: theme, ascii: ascii}
}

func (r *ScreenRenderer) Render(snapshot model.BoardSnapshot, highlights []model.Position, selected *model.Position) error {
	m := marks(highlights, selected)
	r.screen.Clear()
	label := tcell.StyleDefault.Foreground(r.theme.Text)

	for rank := 7; rank >= 0; rank-- {
		y := boardTop + 7 - rank
		r.drawText(0, y, strconv.Itoa(rank+1), label)
		r.drawText(rightLabelCol, y, strconv.Itoa(rank+1), label)
		for file := 0; file < 8; file++ {
			x := boardLeft + file*cellWidth
			style := r.squareStyle(file, rank, m[file][rank])
			p := snapshot[file][rank]
			if p != nil {
				fg := r.theme.White
				if p.Color == model.Black {
					fg = r.theme.Black
				}
				style = style.Foreground(fg).Bold(true)
			}
			for i := 0; i < cellWidth; i++ {
				ch := ' '
				if i == glyphInCell {
					ch = Glyph(p, r.ascii)
				}
				r.screen.SetContent(x+i, y, ch, nil, style)
			}
		}
	}
	for file, f := range fileLabels {
		r.screen.SetContent(boardLeft+file*cellWidth+glyphInCell, boardTop+8, f, nil, label)
	}
	for i, line := range r.status {
		r.drawText(0, statusTop+i, line, label)
	}
	r.screen.Show()
	return nil
}

func (r *ScreenRenderer) squareStyle(file, rank int, mark squareMark) tcell.Style {
	bg := r.theme.Dark
	if (file+rank)%2 == 1 {
		bg = r.theme.Light
	}
	switch mark {
	case markTarget:
		bg = r.theme.Target
	case markSelected:
		bg = r.theme.Selected
	}
	return tcell.StyleDefault.Background(bg)
}

func (r *ScreenRenderer) drawText(x, y int, text string, style tcell.Style) {
	for _, ch := range text {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

// Message appends a status line, keeping the most recent few, and redraws
// the status area.
func (r *ScreenRenderer) Message(text string) error {
	r.status = append(r.status, text)
	if len(r.status) > statusLines {
		r.status = r.status[len(r.status)-statusLines:]
	}
	label := tcell.StyleDefault.Foreground(r.theme.Text)
	w, _ := r.screen.Size()
	for i := 0; i < statusLines; i++ {
		for x := 0; x < w; x++ {
			r.screen.SetContent(x, statusTop+i, ' ', nil, tcell.StyleDefault)
		}
		if i < len(r.status) {
			r.drawText(0, statusTop+i, r.status[i], label)
		}
	}
	r.screen.Show()
	return nil
}
