// Package repl implements the thin REPL driver around an *engine.Engine
// (spec §4.G), grounded in original_source/src/ocli_rl.c and the teacher's
// cmd/jink/main.go raw-mode read loop.
//
// Line editing here is deliberately simple — a flat byte buffer with
// backspace, Ctrl-C, Ctrl-D, Tab-complete and '?'-help — with no arrow-key
// history or cursor movement. ocli_rl.c's real readline equivalent handles
// both; reproducing them was cut to keep this package to its one job
// (driving Matcher/Engine from a raw terminal), documented here rather than
// silently dropped.
package repl

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/diggerwu/ocli/engine"
	"github.com/diggerwu/ocli/highlighter"
	"github.com/diggerwu/ocli/pager"
	"github.com/diggerwu/ocli/syntax"
)

var (
	debug   bool
	debugMu sync.RWMutex
)

// SetDebug enables or disables debug output to stderr, matching the
// teacher's terminal.SetDebug/IsDebug pattern, generalized to this package.
func SetDebug(enabled bool) {
	debugMu.Lock()
	defer debugMu.Unlock()
	debug = enabled
}

func IsDebug() bool {
	debugMu.RLock()
	defer debugMu.RUnlock()
	return debug
}

// Driver wraps an *engine.Engine with a raw-terminal read loop, a prompt,
// an idle timeout, Tab-completion, '?'-help, and output highlighting
// (spec §4.G).
type Driver struct {
	Engine *engine.Engine

	view        syntax.View
	promptFn    func() string
	idleTimeout time.Duration
	eofCommand  string
	echo        bool
	theme       *highlighter.Theme

	in  *os.File
	out io.Writer
}

// New builds a Driver with the library defaults: 300s idle timeout (spec
// §5), echo on, the default color theme, stdin/stdout.
func New(e *engine.Engine) *Driver {
	return &Driver{
		Engine:      e,
		promptFn:    func() string { return "> " },
		idleTimeout: 300 * time.Second,
		echo:        true,
		theme:       highlighter.DefaultTheme(),
		in:          os.Stdin,
		out:         os.Stdout,
	}
}

func (d *Driver) SetView(v syntax.View)      { d.view = v }
func (d *Driver) GetView() syntax.View       { return d.view }
func (d *Driver) SetPrompt(p string)         { d.promptFn = func() string { return p } }
func (d *Driver) SetPromptFunc(f func() string) { d.promptFn = f }
func (d *Driver) SetIdleTimeout(dur time.Duration) { d.idleTimeout = dur }
func (d *Driver) SetEOFCommand(cmd string)   { d.eofCommand = cmd }
func (d *Driver) SetEcho(on bool)            { d.echo = on }
func (d *Driver) SetTheme(t *highlighter.Theme) { d.theme = t }
func (d *Driver) SetIO(in *os.File, out io.Writer) {
	d.in, d.out = in, out
}

// RunREPL puts the terminal into raw mode and drives the read/eval loop
// until EOF, an idle timeout, or SIGINT/SIGTERM (spec §4.G).
func (d *Driver) RunREPL() error {
	fd := int(d.in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("repl: entering raw mode: %w", err)
	}
	restore := func() {
		if err := term.Restore(fd, oldState); err != nil && IsDebug() {
			fmt.Fprintf(os.Stderr, "[DEBUG] repl: restoring terminal: %v\n", err)
		}
	}
	defer restore()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	type readResult struct {
		b   byte
		err error
	}
	reads := make(chan readResult)
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := d.in.Read(buf)
			if n > 0 {
				reads <- readResult{b: buf[0]}
			}
			if err != nil {
				reads <- readResult{err: err}
				return
			}
		}
	}()

	var line []byte
	d.writePrompt(line)
	for {
		select {
		case sig := <-sigCh:
			restore()
			return fmt.Errorf("repl: terminated by %v", sig)

		case r := <-reads:
			if r.err != nil {
				if r.err == io.EOF {
					return nil
				}
				return r.err
			}
			if done, err := d.handleByte(&line, r.b); done {
				return err
			}

		case <-time.After(d.idleTimeout):
			fmt.Fprint(d.out, "\r\nIdle timeout exceeded.\r\n")
			return nil
		}
	}
}

// handleByte processes one input byte against the in-progress line buffer.
// done reports whether the REPL loop should exit (EOF / eof_command typed).
func (d *Driver) handleByte(line *[]byte, b byte) (done bool, err error) {
	switch b {
	case '\r', '\n':
		fmt.Fprint(d.out, "\r\n")
		text := string(*line)
		*line = (*line)[:0]
		if d.eofCommand != "" && strings.TrimSpace(text) == d.eofCommand {
			return true, nil
		}
		if strings.TrimSpace(text) != "" {
			d.execute(text)
		}
		d.writePrompt(*line)

	case 3: // Ctrl-C
		fmt.Fprint(d.out, "^C\r\n")
		*line = (*line)[:0]
		d.writePrompt(*line)

	case 4: // Ctrl-D
		if len(*line) == 0 {
			fmt.Fprint(d.out, "\r\n")
			return true, nil
		}

	case 127, 8: // Backspace / DEL
		if len(*line) > 0 {
			*line = (*line)[:len(*line)-1]
			fmt.Fprint(d.out, "\b \b")
		}

	case '\t':
		d.completeLine(line)

	case '?':
		d.helpLine(string(*line))
		d.writePrompt(*line)

	default:
		*line = append(*line, b)
		if d.echo {
			fmt.Fprint(d.out, string(b))
		}
	}
	return false, nil
}

func (d *Driver) writePrompt(line []byte) {
	fmt.Fprint(d.out, d.promptFn())
	if len(line) > 0 {
		fmt.Fprint(d.out, string(line))
	}
}

func (d *Driver) execute(line string) {
	st, err := d.Engine.ParseAndExecute(line, d.view)
	if st.Ok() {
		if err != nil && IsDebug() {
			fmt.Fprintf(os.Stderr, "[DEBUG] repl: command callback error: %v\n", err)
		}
		return
	}
	fmt.Fprintln(d.out, highlighter.RenderErrorLine(d.theme, st.Error()))
}

func (d *Driver) completeLine(line *[]byte) {
	text := string(*line)
	completions := d.Engine.Complete(text, len(text), d.view)
	switch len(completions) {
	case 0:
		fmt.Fprint(d.out, "\a") // bell: nothing to complete
	case 1:
		suffix := completionSuffix(text, completions[0])
		*line = append(*line, suffix...)
		fmt.Fprint(d.out, suffix)
	default:
		fmt.Fprint(d.out, "\r\n")
		fmt.Fprintln(d.out, strings.Join(completions, "  "))
		d.writePrompt(*line)
	}
}

func (d *Driver) helpLine(text string) {
	entries := d.Engine.Help(text, len(text), d.view)
	rendered := make([]string, len(entries))
	for i, e := range entries {
		rendered[i] = highlighter.RenderHelpEntry(d.theme, e)
	}
	fmt.Fprint(d.out, "\r\n")
	d.page(strings.Join(rendered, "\n"))
}

// page shows text through a pager sized to the controlling terminal,
// falling back to an unpaged write when the size can't be determined (spec
// §4.G "long help/manual output pages like --More--").
func (d *Driver) page(text string) {
	w, h := d.termSize()
	p := pager.New(d.out, d.in, w, h)
	if err := p.Show(text); err != nil && IsDebug() {
		fmt.Fprintf(os.Stderr, "[DEBUG] repl: pager: %v\n", err)
	}
}

func (d *Driver) termSize() (width, height int) {
	width, height, err := term.GetSize(int(d.in.Fd()))
	if err != nil {
		return 0, 0
	}
	return width, height
}

// ManualPage renders a command's manual entry through the pager, the same
// rendering path the REPL uses for built-in '?' help (spec §4.E "man").
func (d *Driver) ManualPage(name string) error {
	text, err := d.Engine.ManualPage(name, d.view)
	if err != nil {
		return err
	}
	d.page(text)
	return nil
}

// completionSuffix returns the bytes to append to line so its last partial
// word becomes full, given a chosen completion word.
func completionSuffix(line, full string) string {
	i := strings.LastIndexAny(line, " ")
	partial := line[i+1:]
	if !strings.HasPrefix(full, partial) {
		return ""
	}
	return full[len(partial):] + " "
}
