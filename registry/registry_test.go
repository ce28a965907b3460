package registry

import (
	"testing"

	"github.com/diggerwu/ocli/syntax"
)

func noopCallback(args []syntax.Arg, doFlag bool) error { return nil }

func newPingSymbols() *syntax.SymbolTable {
	return syntax.NewSymbolTable([]*syntax.Symbol{
		syntax.Keyword("ping", "ping utility"),
	})
}

func TestCreateCommandIsIdempotent(t *testing.T) {
	r := New()
	first := r.CreateCommand("ping", newPingSymbols(), noopCallback)
	second := r.CreateCommand("ping", newPingSymbols(), noopCallback)
	if first != second {
		t.Fatal("expected a duplicate CreateCommand to return the existing tree")
	}
	if len(r.All()) != 1 {
		t.Fatalf("All() = %v, want exactly one entry", r.All())
	}
}

func TestMatchExactNameShortCircuits(t *testing.T) {
	r := New()
	tree := r.CreateCommand("ping", newPingSymbols(), noopCallback)
	if err := syntax.AddSyntax(tree, "ping", syntax.ViewAll, syntax.DO); err != nil {
		t.Fatalf("AddSyntax: %v", err)
	}
	r.CreateCommand("ping-flood", newPingSymbols(), noopCallback)

	count, match := r.Match("ping", syntax.ViewAll, syntax.DO)
	if count != 1 || match != tree {
		t.Fatalf("Match(\"ping\") = (%d, %v), want exact match to win over the prefix-sharing sibling", count, match)
	}
}

func TestMatchPrefixAmbiguity(t *testing.T) {
	r := New()
	t1 := r.CreateCommand("show", newPingSymbols(), noopCallback)
	t2 := r.CreateCommand("shutdown", newPingSymbols(), noopCallback)
	if err := syntax.AddSyntax(t1, "show", syntax.ViewAll, syntax.DO); err != nil {
		t.Fatalf("AddSyntax: %v", err)
	}
	if err := syntax.AddSyntax(t2, "shutdown", syntax.ViewAll, syntax.DO); err != nil {
		t.Fatalf("AddSyntax: %v", err)
	}

	count, _ := r.Match("sh", syntax.ViewAll, syntax.DO)
	if count != 2 {
		t.Errorf("Match(\"sh\") count = %d, want 2", count)
	}
}

func TestMatchFiltersByView(t *testing.T) {
	r := New()
	tree := r.CreateCommand("configure", newPingSymbols(), noopCallback)
	if err := syntax.AddSyntax(tree, "configure", syntax.ViewEnable, syntax.DO); err != nil {
		t.Fatalf("AddSyntax: %v", err)
	}

	if count, _ := r.Match("configure", syntax.ViewBasic, syntax.DO); count != 0 {
		t.Errorf("expected no match outside ViewEnable, got count=%d", count)
	}
	if count, _ := r.Match("configure", syntax.ViewEnable, syntax.DO); count != 1 {
		t.Errorf("expected a match inside ViewEnable, got count=%d", count)
	}
}

func TestNamesAndAll(t *testing.T) {
	r := New()
	t1 := r.CreateCommand("zeta", newPingSymbols(), noopCallback)
	t2 := r.CreateCommand("alpha", newPingSymbols(), noopCallback)
	if err := syntax.AddSyntax(t1, "zeta", syntax.ViewEnable, syntax.DO); err != nil {
		t.Fatalf("AddSyntax: %v", err)
	}
	if err := syntax.AddSyntax(t2, "alpha", syntax.ViewBasic, syntax.DO); err != nil {
		t.Fatalf("AddSyntax: %v", err)
	}

	all := r.All()
	if len(all) != 2 || all[0] != "alpha" || all[1] != "zeta" {
		t.Errorf("All() = %v, want sorted [alpha zeta]", all)
	}

	names := r.Names(syntax.ViewBasic, syntax.DO)
	if len(names) != 1 || names[0] != "alpha" {
		t.Errorf("Names(ViewBasic) = %v, want [alpha]", names)
	}
}

func TestGetUnknownName(t *testing.T) {
	r := New()
	if _, ok := r.Get("nope"); ok {
		t.Error("expected Get on an unregistered name to report not-found")
	}
}
