package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Prompter asks a question and returns the answer. It returns io.EOF when
// the player closes the input.
type Prompter interface {
	Prompt(question string) (string, error)
}

// LinePrompter reads answers a line at a time.
type LinePrompter struct {
	r *bufio.Reader
	w io.Writer
}

func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{r: bufio.NewReader(r), w: w}
}

func (p *LinePrompter) Prompt(question string) (string, error) {
	fmt.Fprintf(p.w, "%s: ", question)
	line, err := p.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ScreenPrompter reads answers from key events on a tcell screen, echoing
// them on one row.
type ScreenPrompter struct {
	screen tcell.Screen
	row    int
}

func NewScreenPrompter(screen tcell.Screen, row int) *ScreenPrompter {
	return &ScreenPrompter{screen: screen, row: row}
}

func (p *ScreenPrompter) Prompt(question string) (string, error) {
	var answer []rune
	p.draw(question, answer)
	for {
		switch ev := p.screen.PollEvent().(type) {
		case nil:
			return "", io.EOF
		case *tcell.EventResize:
			p.screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEnter:
				return strings.TrimSpace(string(answer)), nil
			case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyCtrlD:
				return "", io.EOF
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if len(answer) > 0 {
					answer = answer[:len(answer)-1]
				}
			case tcell.KeyRune:
				answer = append(answer, ev.Rune())
			}
		}
		p.draw(question, answer)
	}
}

func (p *ScreenPrompter) draw(question string, answer []rune) {
	w, _ := p.screen.Size()
	for x := 0; x < w; x++ {
		p.screen.SetContent(x, p.row, ' ', nil, tcell.StyleDefault)
	}
	x := 0
	for _, ch := range question + ": " + string(answer) {
		p.screen.SetContent(x, p.row, ch, nil, tcell.StyleDefault)
		x++
	}
	p.screen.ShowCursor(x, p.row)
	p.screen.Show()
}
