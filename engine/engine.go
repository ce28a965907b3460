// Package engine composes the lexical registry, syntax compiler, command
// registry and matcher into the single application-facing type (spec §9,
// "Engine as explicit value"): never a package-level singleton, so a
// process can host more than one independently-configured CLI at once.
package engine

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/diggerwu/ocli/lexkind"
	"github.com/diggerwu/ocli/matcher"
	"github.com/diggerwu/ocli/registry"
	"github.com/diggerwu/ocli/syntax"
)

// Engine is the library's entry point (spec §6). All registration methods
// are setup-phase-only and undocumented for concurrent use; Parse/Complete/
// Help are guarded by parseMu per spec §5's "single in-flight parse per
// registry" rule.
type Engine struct {
	Lex     *lexkind.Registry
	Reg     *registry.Registry
	Match   *matcher.Matcher
	parseMu sync.Mutex
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithUndoKeyword overrides the default "no" undo literal.
func WithUndoKeyword(kw string) Option {
	return func(e *Engine) { e.Reg.UndoKeyword = kw }
}

// WithManualKeyword overrides the default "man" manual-page literal.
func WithManualKeyword(kw string) Option {
	return func(e *Engine) { e.Reg.ManualKeyword = kw }
}

// WithEthIfnum binds a fixed ETH_IFNAME bound instead of live netlink
// discovery — mainly for tests and non-Linux platforms.
func WithEthIfnum(n int) Option {
	return func(e *Engine) { e.Lex.BindInterfaceInventory(n) }
}

// New builds an Engine preloaded with every built-in lexical kind and the
// `man` built-in command (spec §4.E "built-in commands", ported from
// original_source/src/cmd_built_in.c).
func New(opts ...Option) *Engine {
	lex := lexkind.NewRegistry()
	lex.BindInterfaceInventory(lexkind.DiscoverEthIfnum(lexkind.DefaultLinkLister()))
	reg := registry.New()
	e := &Engine{Lex: lex, Reg: reg, Match: matcher.New(lex, reg)}
	for _, opt := range opts {
		opt(e)
	}
	e.registerBuiltins()
	return e
}

// RegisterCustomLex installs an application-defined lexical kind (spec
// §4.A), in the custom id range.
func (e *Engine) RegisterCustomLex(id lexkind.Kind, name string, pred lexkind.Predicate, help, completionPrefix string) error {
	return e.Lex.RegisterCustom(id, name, pred, help, completionPrefix)
}

// CreateCommand registers a new top-level command name (spec §4.E).
func (e *Engine) CreateCommand(name string, symbols *syntax.SymbolTable, callback syntax.CommandFunc) *syntax.CommandTree {
	return e.Reg.CreateCommand(name, symbols, callback)
}

// AddSyntax compiles one pattern into tree (spec §4.D).
func (e *Engine) AddSyntax(tree *syntax.CommandTree, pattern string, views syntax.View, dirs syntax.Direction) error {
	return syntax.AddSyntax(tree, pattern, views, dirs)
}

// AddSyntaxAndManual is AddSyntax plus a recorded manual line (spec §4.D).
func (e *Engine) AddSyntaxAndManual(tree *syntax.CommandTree, pattern string, views syntax.View, dirs syntax.Direction) error {
	return syntax.AddSyntaxAndManual(tree, pattern, views, dirs)
}

// GraftSyntax appends pattern under every matching leaf (spec §4.D
// "sprout_cmd_syntax").
func (e *Engine) GraftSyntax(tree *syntax.CommandTree, pattern string, views syntax.View, dirs syntax.Direction) error {
	return syntax.GraftSyntax(tree, pattern, views, dirs)
}

// SetCompletionHelper attaches an application-supplied completion function
// to every node in tree bound to argLabel (spec §3 "arg_helper"). A single
// label may appear on several prefix-shared node instances (one per branch
// the variable was compiled into), so every occurrence is bound.
func (e *Engine) SetCompletionHelper(tree *syntax.CommandTree, argLabel string, helper func(partial string, limit int) []string) {
	seen := make(map[*syntax.Node]bool)
	var walk func(*syntax.Node)
	walk = func(n *syntax.Node) {
		if n == nil || seen[n] {
			return
		}
		seen[n] = true
		if n.Kind == syntax.KindVar && n.ArgLabel == argLabel {
			n.ArgHelper = helper
		}
		for _, b := range n.Branches {
			walk(b)
		}
	}
	walk(tree.Root)
}

// ParseAndExecute parses line and, on success, invokes the matched
// command's callback (spec §4.F step 7 / §6).
func (e *Engine) ParseAndExecute(line string, view syntax.View) (*matcher.ParseStatus, error) {
	e.parseMu.Lock()
	defer e.parseMu.Unlock()

	st := e.Match.Parse(line, view)
	if !st.Ok() {
		return st, st
	}
	if st.Tree == nil || st.Tree.Callback == nil {
		return st, nil
	}
	return st, st.Tree.Callback(st.Args, st.Direction == syntax.DO)
}

// Complete returns the completion set for line at cursor under view (spec §4.F).
func (e *Engine) Complete(line string, cursor int, view syntax.View) []string {
	e.parseMu.Lock()
	defer e.parseMu.Unlock()
	return e.Match.Complete(line, cursor, view)
}

// Help returns the help set for line at cursor under view (spec §4.F).
func (e *Engine) Help(line string, cursor int, view syntax.View) []string {
	e.parseMu.Lock()
	defer e.parseMu.Unlock()
	return e.Match.Help(line, cursor, view)
}

// ManualPage renders the registered manual lines for name, filtered to
// those whose view mask intersects view — the `man` built-in's behavior,
// split out so callers building their own output format can call it
// directly instead of only through ParseAndExecute.
func (e *Engine) ManualPage(name string, view syntax.View) (string, error) {
	tree, ok := e.Reg.Get(name)
	if !ok {
		return "", fmt.Errorf("engine: no such command %q", name)
	}
	var lines []string
	for _, m := range tree.Manual {
		if m.ViewMask&view != 0 {
			lines = append(lines, m.Line)
		}
	}
	if len(lines) == 0 {
		return fmt.Sprintf("%s: no manual entry for the current view", name), nil
	}
	return strings.Join(lines, "\n"), nil
}

// registerBuiltins installs `man <command>` (spec §4.E, ported from
// original_source/src/cmd_built_in.c). The undo keyword itself is not a
// registered command — Matcher.Parse recognizes it by direct comparison
// before any registry lookup — but `man` dispatches like any other command,
// using the MANUAL_ARG="_CMD_" trick from the original: a WORDS-typed
// variable whose completion helper lists every registered command name.
func (e *Engine) registerBuiltins() {
	symbols := syntax.NewSymbolTable([]*syntax.Symbol{
		syntax.Keyword(e.Reg.ManualKeyword, "Display the manual page for a command"),
		syntax.Variable("_CMD_", lexkind.Words, "_CMD_", "Command name"),
	})
	tree := e.Reg.CreateCommand(e.Reg.ManualKeyword, symbols, nil)
	if err := syntax.AddSyntax(tree, e.Reg.ManualKeyword+" _CMD_", syntax.ViewAll, syntax.DO); err != nil {
		panic(fmt.Sprintf("engine: built-in %q pattern failed to compile: %v", e.Reg.ManualKeyword, err))
	}
	e.SetCompletionHelper(tree, "_CMD_", func(partial string, limit int) []string {
		names := e.Reg.All()
		sort.Strings(names)
		if limit > 0 && len(names) > limit {
			names = names[:limit]
		}
		return names
	})
}
