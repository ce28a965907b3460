// Package pager implements the REPL driver's "--More--" output paging (spec
// §4.G), ported from original_source/src/ocli_rl.c's display_buf_more:
// SPACE advances a full page, RET advances one line, any other key aborts
// the remaining output.
package pager

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Pager wraps lines to a terminal width and pauses every page, prompting
// "--More--" and reading a single control byte from in.
type Pager struct {
	Out    io.Writer
	In     io.Reader
	Width  int // terminal columns; 0 disables wrapping
	Height int // rows per page before prompting; 0 disables paging entirely
}

// New builds a Pager sized to width x height (typically the terminal's
// current dimensions).
func New(out io.Writer, in io.Reader, width, height int) *Pager {
	return &Pager{Out: out, In: in, Width: width, Height: height}
}

// errAborted is returned by Show when the user pressed anything other than
// SPACE or RET at a "--More--" prompt.
var errAborted = fmt.Errorf("pager: output aborted by user")

// Show writes text to p.Out, a screenful at a time, using
// github.com/mattn/go-runewidth to compute each line's display width for
// wrapping — the original C pager counted raw bytes, which misjudges any
// multi-byte help text; wrapping by display width is the one deliberate
// upgrade over original_source here.
func (p *Pager) Show(text string) error {
	lines := p.wrap(text)
	if p.Height <= 0 {
		for _, l := range lines {
			fmt.Fprintln(p.Out, l)
		}
		return nil
	}

	reader := bufio.NewReader(p.In)
	shown := 0
	for i, l := range lines {
		fmt.Fprintln(p.Out, l)
		shown++
		if shown < p.Height || i == len(lines)-1 {
			continue
		}
		shown = 0
		fmt.Fprint(p.Out, "--More--")
		b, err := reader.ReadByte()
		fmt.Fprint(p.Out, "\r        \r") // erase the prompt
		if err != nil {
			return nil
		}
		switch b {
		case ' ':
			// full page
		case '\r', '\n':
			shown = p.Height - 1 // advance by one line only next round
		default:
			return errAborted
		}
	}
	return nil
}

// wrap splits text into terminal lines, breaking any line wider than
// p.Width at the nearest word boundary under the limit.
func (p *Pager) wrap(text string) []string {
	var out []string
	for _, raw := range strings.Split(text, "\n") {
		if p.Width <= 0 || runewidth.StringWidth(raw) <= p.Width {
			out = append(out, raw)
			continue
		}
		out = append(out, wrapLine(raw, p.Width)...)
	}
	return out
}

func wrapLine(line string, width int) []string {
	var out []string
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{line}
	}
	cur := words[0]
	curW := runewidth.StringWidth(cur)
	for _, w := range words[1:] {
		ww := runewidth.StringWidth(w)
		if curW+1+ww > width {
			out = append(out, cur)
			cur = w
			curW = ww
			continue
		}
		cur += " " + w
		curW += 1 + ww
	}
	out = append(out, cur)
	return out
}
