package engine

import (
	"testing"

	"github.com/diggerwu/ocli/lexkind"
	"github.com/diggerwu/ocli/syntax"
)

func TestParseAndExecuteDispatchesCallback(t *testing.T) {
	e := New()
	called := false
	var gotArgs []syntax.Arg
	symbols := syntax.NewSymbolTable([]*syntax.Symbol{
		syntax.Keyword("ping", ""),
		syntax.Variable("HOST_IP", lexkind.IPAddr, "DST_HOST", ""),
	})
	tree := e.CreateCommand("ping", symbols, func(args []syntax.Arg, doFlag bool) error {
		called = true
		gotArgs = args
		return nil
	})
	if err := e.AddSyntax(tree, "ping HOST_IP", syntax.ViewAll, syntax.DO); err != nil {
		t.Fatalf("AddSyntax: %v", err)
	}

	st, err := e.ParseAndExecute("ping 10.0.0.1", syntax.ViewEnable)
	if err != nil {
		t.Fatalf("ParseAndExecute error: %v", err)
	}
	if !st.Ok() {
		t.Fatalf("status not ok: %+v", st)
	}
	if !called {
		t.Fatal("expected callback to be invoked")
	}
	if len(gotArgs) != 1 || gotArgs[0].Value != "10.0.0.1" {
		t.Errorf("gotArgs = %+v", gotArgs)
	}
}

func TestMultipleEnginesAreIsolated(t *testing.T) {
	e1 := New()
	e2 := New()

	symbols := syntax.NewSymbolTable([]*syntax.Symbol{syntax.Keyword("reload", "")})
	tree1 := e1.CreateCommand("reload", symbols, nil)
	if err := e1.AddSyntax(tree1, "reload", syntax.ViewAll, syntax.DO); err != nil {
		t.Fatalf("AddSyntax on e1: %v", err)
	}

	if _, ok := e2.Reg.Get("reload"); ok {
		t.Fatal("e2 should not see a command registered only on e1")
	}

	if err := e1.RegisterCustomLex(lexkind.CustomBase, "PROTO", func(s string) bool { return s == "tcp" || s == "udp" }, "", ""); err != nil {
		t.Fatalf("RegisterCustomLex on e1: %v", err)
	}
	if e2.Lex.Classify(lexkind.CustomBase, "tcp") {
		t.Fatal("e2's lexical registry should not see e1's custom kind registration")
	}
}

func TestManBuiltinCompletesCommandNames(t *testing.T) {
	e := New()
	symbols := syntax.NewSymbolTable([]*syntax.Symbol{syntax.Keyword("reload", "Reload the system")})
	tree := e.CreateCommand("reload", symbols, nil)
	if err := e.AddSyntaxAndManual(tree, "reload", syntax.ViewAll, syntax.DO); err != nil {
		t.Fatalf("AddSyntaxAndManual: %v", err)
	}

	got := e.Complete("man ", len("man "), syntax.ViewEnable)
	found := false
	for _, c := range got {
		if c == "reload" {
			found = true
		}
	}
	if !found {
		t.Errorf("Complete(\"man \") = %v, want to include \"reload\"", got)
	}

	page, err := e.ManualPage("reload", syntax.ViewEnable)
	if err != nil {
		t.Fatalf("ManualPage: %v", err)
	}
	if page != "reload" {
		t.Errorf("ManualPage = %q, want %q", page, "reload")
	}
}

func TestUndoDispatch(t *testing.T) {
	e := New()
	var lastDo bool
	symbols := syntax.NewSymbolTable([]*syntax.Symbol{syntax.Keyword("shutdown", "")})
	tree := e.CreateCommand("shutdown", symbols, func(args []syntax.Arg, doFlag bool) error {
		lastDo = doFlag
		return nil
	})
	if err := e.AddSyntax(tree, "shutdown", syntax.ViewConfig, syntax.DO|syntax.UNDO); err != nil {
		t.Fatalf("AddSyntax: %v", err)
	}

	if st, err := e.ParseAndExecute("shutdown", syntax.ViewConfig); err != nil || !st.Ok() || !lastDo {
		t.Fatalf("DO dispatch: status=%+v err=%v lastDo=%v", st, err, lastDo)
	}
	if st, err := e.ParseAndExecute("no shutdown", syntax.ViewConfig); err != nil || !st.Ok() || lastDo {
		t.Fatalf("UNDO dispatch: status=%+v err=%v lastDo=%v", st, err, lastDo)
	}
}
