package repl

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/diggerwu/ocli/engine"
	"github.com/diggerwu/ocli/lexkind"
	"github.com/diggerwu/ocli/syntax"
)

func newTestDriver(t *testing.T) (*Driver, *bytes.Buffer) {
	t.Helper()
	e := engine.New()
	symbols := syntax.NewSymbolTable([]*syntax.Symbol{
		syntax.Keyword("ping", "send an echo request"),
		syntax.Variable("HOST_IP", lexkind.IPAddr, "DST_HOST", "destination address"),
	})
	tree := e.CreateCommand("ping", symbols, func(args []syntax.Arg, doFlag bool) error {
		return nil
	})
	if err := e.AddSyntaxAndManual(tree, "ping HOST_IP", syntax.ViewAll, syntax.DO); err != nil {
		t.Fatalf("AddSyntaxAndManual: %v", err)
	}

	d := New(e)
	var out bytes.Buffer
	d.out = &out
	d.in = os.Stdin // not a tty under `go test`; termSize() degrades to 0,0
	return d, &out
}

func TestNewDriverDefaults(t *testing.T) {
	d, _ := newTestDriver(t)
	if d.idleTimeout != 300*time.Second {
		t.Errorf("idleTimeout = %v, want 300s", d.idleTimeout)
	}
	if !d.echo {
		t.Error("expected echo on by default")
	}
	if d.promptFn() != "> " {
		t.Errorf("default prompt = %q", d.promptFn())
	}
}

func TestSettersApply(t *testing.T) {
	d, _ := newTestDriver(t)
	d.SetPrompt("router# ")
	d.SetIdleTimeout(5 * time.Second)
	d.SetEOFCommand("exit")
	d.SetEcho(false)
	d.SetView(syntax.ViewEnable)

	if d.promptFn() != "router# " {
		t.Errorf("prompt = %q", d.promptFn())
	}
	if d.idleTimeout != 5*time.Second {
		t.Errorf("idleTimeout = %v", d.idleTimeout)
	}
	if d.eofCommand != "exit" {
		t.Errorf("eofCommand = %q", d.eofCommand)
	}
	if d.echo {
		t.Error("expected echo off")
	}
	if d.GetView() != syntax.ViewEnable {
		t.Errorf("GetView = %v", d.GetView())
	}
}

func TestHandleByteBuildsLineAndExecutesOnEnter(t *testing.T) {
	d, out := newTestDriver(t)
	d.SetView(syntax.ViewAll)

	var line []byte
	for _, b := range []byte("ping 10.0.0.1") {
		if done, _ := d.handleByte(&line, b); done {
			t.Fatal("unexpected early exit")
		}
	}
	if done, _ := d.handleByte(&line, '\r'); done {
		t.Fatal("enter should not end the session")
	}
	if len(line) != 0 {
		t.Errorf("line not cleared after enter: %q", line)
	}
	if strings.Contains(out.String(), "Parsing error") {
		t.Errorf("valid command reported as an error: %q", out.String())
	}
}

func TestHandleByteReportsParseErrors(t *testing.T) {
	d, out := newTestDriver(t)
	d.SetView(syntax.ViewAll)

	var line []byte
	for _, b := range []byte("ping not-an-ip") {
		d.handleByte(&line, b)
	}
	d.handleByte(&line, '\r')

	if !strings.Contains(out.String(), "'not-an-ip': No match") {
		t.Errorf("expected an error mentioning the failing input, got %q", out.String())
	}
}

func TestHandleByteBackspaceRemovesLastRune(t *testing.T) {
	d, _ := newTestDriver(t)
	var line []byte
	d.handleByte(&line, 'a')
	d.handleByte(&line, 'b')
	d.handleByte(&line, 127)
	if string(line) != "a" {
		t.Errorf("line = %q, want %q", line, "a")
	}
}

func TestHandleByteCtrlCClearsLine(t *testing.T) {
	d, out := newTestDriver(t)
	var line []byte
	d.handleByte(&line, 'x')
	d.handleByte(&line, 3)
	if len(line) != 0 {
		t.Errorf("expected Ctrl-C to clear the line, got %q", line)
	}
	if !strings.Contains(out.String(), "^C") {
		t.Errorf("expected ^C echoed, got %q", out.String())
	}
}

func TestHandleByteCtrlDOnEmptyLineEndsSession(t *testing.T) {
	d, _ := newTestDriver(t)
	var line []byte
	done, err := d.handleByte(&line, 4)
	if !done || err != nil {
		t.Errorf("expected Ctrl-D on an empty line to end the session cleanly, got done=%v err=%v", done, err)
	}
}

func TestHandleByteCtrlDMidLineIsIgnored(t *testing.T) {
	d, _ := newTestDriver(t)
	var line []byte
	d.handleByte(&line, 'x')
	done, _ := d.handleByte(&line, 4)
	if done {
		t.Error("Ctrl-D mid-line should not end the session")
	}
}

func TestHandleByteEnterMatchesEOFCommand(t *testing.T) {
	d, _ := newTestDriver(t)
	d.SetEOFCommand("exit")
	var line []byte
	for _, b := range []byte("exit") {
		d.handleByte(&line, b)
	}
	done, err := d.handleByte(&line, '\r')
	if !done || err != nil {
		t.Errorf("typing the eof command should end the session, got done=%v err=%v", done, err)
	}
}

func TestHelpLineRendersEntries(t *testing.T) {
	d, out := newTestDriver(t)
	d.SetView(syntax.ViewAll)
	d.helpLine("ping ")
	if !strings.Contains(out.String(), "HOST_IP") && !strings.Contains(out.String(), "destination") {
		t.Errorf("expected help output to mention the variable or its help text, got %q", out.String())
	}
}

func TestCompleteLineSingleMatchAppendsSuffix(t *testing.T) {
	d, out := newTestDriver(t)
	d.SetView(syntax.ViewAll)
	line := []byte("pin")
	d.completeLine(&line)
	if string(line) != "ping " {
		t.Errorf("line = %q, want %q", line, "ping ")
	}
	if !strings.Contains(out.String(), "g ") {
		t.Errorf("expected the completed suffix echoed, got %q", out.String())
	}
}

func TestCompletionSuffix(t *testing.T) {
	if got := completionSuffix("pin", "ping"); got != "g " {
		t.Errorf("completionSuffix = %q", got)
	}
	if got := completionSuffix("cmd a", "alpha"); got != "lpha " {
		t.Errorf("completionSuffix = %q", got)
	}
	if got := completionSuffix("cmd b", "alpha"); got != "" {
		t.Errorf("completionSuffix should be empty on mismatch, got %q", got)
	}
}
