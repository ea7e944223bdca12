package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

const (
	gutterGap    = "  "
	truncateTail = "…"
)

type styles struct {
	prompt *color.Color
	gutter *color.Color
	err    *color.Color
	info   *color.Color
}

func newStyles(enabled bool) styles {
	s := styles{
		prompt: color.New(color.FgCyan, color.Bold),
		gutter: color.New(color.FgHiBlack),
		err:    color.New(color.FgHiRed),
		info:   color.New(color.FgGreen),
	}
	// Enabled styles defer to color.NoColor, which honors NO_COLOR.
	if !enabled {
		for _, c := range []*color.Color{s.prompt, s.gutter, s.err, s.info} {
			c.DisableColor()
		}
	}
	return s
}

func (e *Editor) printPrompt() {
	e.styles.prompt.Fprint(e.out, e.config.UI.Prompt)
}

func (e *Editor) printError(msg string) {
	e.styles.err.Fprintln(e.out, msg)
}

func (e *Editor) printInfo(f string, a ...any) {
	e.styles.info.Fprintln(e.out, fmt.Sprintf(f, a...))
}

// render prints every line with its one-based number. Continuation lines
// of a multi-line entry get a blank gutter.
func (e *Editor) render() {
	e.refreshSize()

	numWidth := len(strconv.Itoa(e.buffer.LineCount()))
	textWidth := e.getTextWidth(numWidth)

	for i, line := range e.buffer.Lines() {
		number := fmt.Sprintf("%*d", numWidth, displayNumber(i))
		for j, part := range strings.Split(line, "\n") {
			if j > 0 {
				number = strings.Repeat(" ", numWidth)
			}
			e.styles.gutter.Fprint(e.out, number)
			fmt.Fprintf(e.out, "%s%s\n", gutterGap, e.fit(part, textWidth))
		}
	}
}

// getTextWidth returns the columns left for text, or 0 when output is
// not a sized terminal.
func (e *Editor) getTextWidth(numWidth int) int {
	if e.termWidth <= 0 {
		return 0
	}
	textWidth := e.termWidth - numWidth - len(gutterGap)
	if textWidth < 1 {
		return 1
	}
	return textWidth
}

func (e *Editor) fit(s string, width int) string {
	if width <= 0 || !e.config.UI.TruncateLines {
		return s
	}
	return runewidth.Truncate(s, width, truncateTail)
}
