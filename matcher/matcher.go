package matcher

import (
	"sort"
	"strings"

	"github.com/diggerwu/ocli/lexkind"
	"github.com/diggerwu/ocli/registry"
	"github.com/diggerwu/ocli/syntax"
	"github.com/diggerwu/ocli/token"
)

// Matcher walks a command tree one token at a time. It holds no per-call
// state of its own — opt-used marks live in a map local to each Parse /
// Complete / Help call — so a single Matcher is safe to reuse and to share
// across goroutines behind the caller's own lock (spec §4.F, §9).
type Matcher struct {
	Lex *lexkind.Registry
	Reg *registry.Registry
}

func New(lex *lexkind.Registry, reg *registry.Registry) *Matcher {
	return &Matcher{Lex: lex, Reg: reg}
}

// Parse implements spec §4.F's seven-step algorithm: resolve the command
// name (switching direction on the undo keyword), then walk tokens against
// the reachable node set, binding variable values as it goes.
func (m *Matcher) Parse(line string, view syntax.View) *ParseStatus {
	toks := token.Tokenize(line)
	if len(toks) == 0 {
		return &ParseStatus{ErrCode: Incomplete}
	}

	dir := syntax.DO
	cmdIdx := 0
	if m.Reg.UndoKeyword != "" && keywordMatches(m.Reg.UndoKeyword, toks[0].Value) {
		dir = syntax.UNDO
		cmdIdx = 1
		if len(toks) == 1 {
			return &ParseStatus{ErrCode: Incomplete, Direction: dir}
		}
	}

	count, tree := m.Reg.Match(toks[cmdIdx].Value, view, dir)
	if count == 0 {
		return m.fail(NoMatch, dir, toks[cmdIdx], cmdIdx)
	}
	if count > 1 {
		return m.fail(Ambiguous, dir, toks[cmdIdx], cmdIdx)
	}

	cur := tree.Root
	used := make(map[*syntax.Node]bool)
	var args []syntax.Arg

	idx := cmdIdx + 1
	for ; idx < len(toks); idx++ {
		tk := toks[idx]
		candidates := reachableFrom(cur, used)
		if len(candidates) == 0 {
			return m.fail(TooManyArgs, dir, tk, idx)
		}
		chosen, n := m.resolveCandidate(candidates, tk.Value, view, dir)
		switch {
		case n == 0:
			if cur.IsLeafReachableUnder(view, dir) {
				return m.fail(TooManyArgs, dir, tk, idx)
			}
			return m.fail(NoMatch, dir, tk, idx)
		case n > 1:
			return m.fail(Ambiguous, dir, tk, idx)
		}
		if chosen.Kind == syntax.KindVar && chosen.ArgLabel != "" {
			args = append(args, syntax.Arg{Name: chosen.ArgLabel, Value: tk.Value})
		}
		markUsed(chosen, used)
		cur = chosen
	}

	if !cur.IsLeafReachableUnder(view, dir) {
		return &ParseStatus{ErrCode: Incomplete, Direction: dir, Tree: tree, Args: args}
	}
	return &ParseStatus{ErrCode: OK, Direction: dir, Tree: tree, Args: args}
}

func (m *Matcher) fail(code ErrCode, dir syntax.Direction, tk token.Token, idx int) *ParseStatus {
	return &ParseStatus{
		ErrCode:            code,
		Direction:          dir,
		FailingTokenIndex:  idx,
		FailingTokenOffset: tk.Start,
		FailingToken:       tk.Value,
	}
}

// Complete implements spec §4.F's completion-set computation: tokenize the
// line up to cursor, walk as far as unambiguous tokens allow, then return
// every candidate's display text (keyword literal, or a variable's arg label,
// falling back to its kind's display name when it has none)
// filtered by whatever partial word sits under the cursor.
func (m *Matcher) Complete(line string, cursor int, view syntax.View) []string {
	toks := token.Tokenize(line)
	toks = toks[:countTokensBefore(toks, cursor)]

	partial := ""
	if n := len(toks); n > 0 && toks[n-1].End >= cursor && toks[n-1].Start < cursor {
		partial = toks[n-1].Value
		toks = toks[:n-1]
	}

	if len(toks) == 0 {
		return m.filterNames(m.commandNames(view, syntax.DO), partial)
	}

	dir := syntax.DO
	cmdIdx := 0
	if keywordMatches(m.Reg.UndoKeyword, toks[0].Value) {
		dir = syntax.UNDO
		cmdIdx = 1
		if len(toks) == 1 {
			return m.filterNames(m.commandNames(view, dir), partial)
		}
	}

	_, tree := m.Reg.Match(toks[cmdIdx].Value, view, dir)
	if tree == nil {
		return nil
	}

	cur := tree.Root
	used := make(map[*syntax.Node]bool)
	for _, tk := range toks[cmdIdx+1:] {
		candidates := reachableFrom(cur, used)
		chosen, n := m.resolveCandidate(candidates, tk.Value, view, dir)
		if n != 1 {
			return nil
		}
		markUsed(chosen, used)
		cur = chosen
	}

	candidates := reachableFrom(cur, used)
	var names []string
	for _, c := range candidates {
		if !c.Admits(view, dir) {
			continue
		}
		if c.Kind == syntax.KindVar && c.ArgHelper != nil {
			names = append(names, c.ArgHelper(partial, maxCompletions)...)
			continue
		}
		names = append(names, displayText(m.Lex, c))
	}
	sort.Strings(names)
	return m.filterNames(names, partial)
}

// maxCompletions caps how many suggestions an ArgHelper is asked to produce.
const maxCompletions = 50

// Help implements spec §4.F's help computation: same walk as Complete, but
// returns "token — help text" pairs instead of bare completion words.
func (m *Matcher) Help(line string, cursor int, view syntax.View) []string {
	toks := token.Tokenize(line)
	toks = toks[:countTokensBefore(toks, cursor)]

	dir := syntax.DO
	cmdIdx := 0
	if len(toks) > 0 && keywordMatches(m.Reg.UndoKeyword, toks[0].Value) {
		dir = syntax.UNDO
		cmdIdx = 1
	}

	var cur *syntax.Node
	used := make(map[*syntax.Node]bool)
	if len(toks) <= cmdIdx {
		var out []string
		for _, name := range m.commandNames(view, dir) {
			out = append(out, name)
		}
		return out
	}
	_, tree := m.Reg.Match(toks[cmdIdx].Value, view, dir)
	if tree == nil {
		return nil
	}
	cur = tree.Root
	for _, tk := range toks[cmdIdx+1:] {
		candidates := reachableFrom(cur, used)
		chosen, n := m.resolveCandidate(candidates, tk.Value, view, dir)
		if n != 1 {
			return nil
		}
		markUsed(chosen, used)
		cur = chosen
	}

	var out []string
	for _, c := range reachableFrom(cur, used) {
		if !c.Admits(view, dir) {
			continue
		}
		help := c.HelpText
		if help == "" && c.Kind == syntax.KindVar {
			help = m.Lex.Help(c.VarKind)
		}
		out = append(out, displayText(m.Lex, c)+" — "+help)
	}
	if cur.IsLeafReachableUnder(view, dir) {
		out = append(out, "<cr>")
	}
	return out
}

func (m *Matcher) filterNames(names []string, partial string) []string {
	if partial == "" {
		return names
	}
	var out []string
	for _, n := range names {
		if strings.HasPrefix(n, partial) {
			out = append(out, n)
		}
	}
	return out
}

func (m *Matcher) commandNames(view syntax.View, dir syntax.Direction) []string {
	names := m.Reg.Names(view, dir)
	if dir == syntax.DO && m.Reg.UndoKeyword != "" {
		names = append([]string{m.Reg.UndoKeyword}, names...)
	}
	return names
}

func countTokensBefore(toks []token.Token, cursor int) int {
	n := 0
	for _, tk := range toks {
		if tk.Start < cursor {
			n++
		}
	}
	return n
}

// resolveCandidate picks the single best match for tok among candidates.
// Keyword candidates are tried first (an exact match short-circuits;
// otherwise an unambiguous abbreviation wins); only when no keyword
// candidate matches at all do variable candidates get classified. Per spec
// §4.F, two or more equally good keyword matches are ambiguous; among
// variable candidates the first in branch order wins, since a pattern with
// two variables both admitting the same token is an authoring choice this
// matcher does not second-guess.
func (m *Matcher) resolveCandidate(candidates []*syntax.Node, tok string, view syntax.View, dir syntax.Direction) (*syntax.Node, int) {
	var kwMatches []*syntax.Node
	for _, c := range candidates {
		if c.Kind != syntax.KindKeyword || !c.Admits(view, dir) {
			continue
		}
		if c.Keyword == tok {
			return c, 1
		}
		if strings.HasPrefix(c.Keyword, tok) {
			kwMatches = append(kwMatches, c)
		}
	}
	switch len(kwMatches) {
	case 0:
		// fall through to variable candidates
	case 1:
		return kwMatches[0], 1
	default:
		return nil, len(kwMatches)
	}

	for _, c := range candidates {
		if c.Kind != syntax.KindVar || !c.Admits(view, dir) {
			continue
		}
		if m.classifyVar(c, tok) {
			return c, 1
		}
	}
	return nil, 0
}

func (m *Matcher) classifyVar(n *syntax.Node, tok string) bool {
	if n.VarRange.Set {
		return m.Lex.ClassifyRanged(n.VarKind, tok, n.VarRange)
	}
	return m.Lex.Classify(n.VarKind, tok)
}

func keywordMatches(full, tok string) bool {
	return tok != "" && strings.HasPrefix(full, tok)
}

func displayText(lex *lexkind.Registry, n *syntax.Node) string {
	if n.Kind == syntax.KindKeyword {
		return n.Keyword
	}
	if n.ArgLabel != "" {
		return n.ArgLabel
	}
	return lex.DisplayName(n.VarKind)
}

// markUsed records chosen as consumed for this parse: any-order option
// elements mark themselves (so reachableFrom won't re-offer them), and every
// member of an alternation group the chosen node belongs to is marked too,
// since picking one eliminates its mutually-exclusive siblings.
func markUsed(chosen *syntax.Node, used map[*syntax.Node]bool) {
	if chosen.OptHeadBackref != nil {
		used[chosen] = true
	}
	for _, sib := range chosen.AltMembers {
		used[sib] = true
	}
}

// reachableFrom computes the set of nodes a token can next match from
// position n (spec §4.F "Reachability"): n's own branches, with OPT_HEAD and
// OPT_END pseudo-nodes traversed transparently (they never consume a token
// themselves), plus — when n is itself an any-order option element — the
// other not-yet-used elements and the end of that same option, so the group
// can be re-entered in any order until it closes.
func reachableFrom(n *syntax.Node, used map[*syntax.Node]bool) []*syntax.Node {
	var out []*syntax.Node
	seen := make(map[*syntax.Node]bool)
	var expand func(b *syntax.Node)
	expand = func(b *syntax.Node) {
		if b == nil || seen[b] {
			return
		}
		seen[b] = true
		switch b.Kind {
		case syntax.KindLeaf:
			return
		case syntax.KindOptHead:
			for _, c := range b.Branches {
				if used[c] {
					continue
				}
				expand(c)
			}
		case syntax.KindOptEnd:
			for _, c := range b.Branches {
				expand(c)
			}
		default:
			out = append(out, b)
		}
	}

	for _, b := range n.Branches {
		if used[b] {
			continue
		}
		expand(b)
	}

	if n.OptHeadBackref != nil {
		head := n.OptHeadBackref
		for _, c := range head.Branches {
			if c == n || used[c] {
				continue
			}
			expand(c)
		}
	}

	return out
}
