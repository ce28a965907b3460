package syntax

import (
	"fmt"
	"strings"
)

// Compile-time errors (spec §4.D "Error handling at compile time").
var (
	ErrNestedOption     = fmt.Errorf("syntax: nested option group")
	ErrNestedAlt        = fmt.Errorf("syntax: nested alternation group")
	ErrEmptyOption      = fmt.Errorf("syntax: empty option group")
	ErrEmptyAlt         = fmt.Errorf("syntax: empty alternation group")
	ErrMissingOr        = fmt.Errorf("syntax: missing '|' in alternation")
	ErrStarOutsideOpt   = fmt.Errorf("syntax: '*' outside an option group")
	ErrUnknownSymbol    = fmt.Errorf("syntax: unknown symbol")
	ErrUnclosedOption   = fmt.Errorf("syntax: unclosed option group")
	ErrUnclosedAlt      = fmt.Errorf("syntax: unclosed alternation group")
	ErrUnexpectedClose  = fmt.Errorf("syntax: unexpected closing bracket")
	ErrTooManyAltChoice = fmt.Errorf("syntax: alternation exceeds MaxChoices")
	ErrTooManyOptChoice = fmt.Errorf("syntax: option group exceeds MaxChoices")
	ErrBranchOverflow   = fmt.Errorf("syntax: branch slot overflow")
	// ErrDirtyTree resolves spec §9's Open Question: the compiler refuses to
	// proceed if a prior compile on this tree aborted mid-group, rather than
	// silently continuing with leftover state.
	ErrDirtyTree = fmt.Errorf("syntax: tree has unresolved state from a previously aborted compile")
)

const (
	// MaxBranch mirrors original_source/src/ocli.h's MAX_BRANCH_NUM.
	MaxBranch = 80
	// MaxChoices mirrors MAX_CHOICES: the cap on both ALT and any-order OPT
	// element counts.
	MaxChoices = 16
)

// trackState is the compiler's per-call pattern-scan state — the
// reimplementation of original_source/src/ocli_core.c's track_syntax_char /
// is_spec / in_alt globals. It is allocated fresh by CompilePattern and
// never stored on CommandTree or Engine, which is how spec §9's Open
// Question is resolved: there is no cross-pattern staleness to guard
// against, because there is nothing shared to go stale.
type trackState struct {
	openOption bool
	openAlt    bool
}

// groupFrame tracks one open "[...]" group during compilation.
type groupFrame struct {
	optHeads  []*Node // one per base the group was opened from
	skipBases []*Node // pre-option bases, rejoined at close (the option may be omitted)
	anyOrder  bool
	elemCount int
	altEldest     []*Node   // ALT: the first alternative's children, one per base, for back-referencing
	membersByBase [][]*Node // ALT: every alternative's child, grouped by base index, for AltMembers
}

// CompilePattern compiles one pattern string against tree, per spec §4.D.
// It is the shared core of AddSyntax / AddSyntaxAndManual / GraftSyntax.
// graftBases, when non-nil, grows the pattern from those bases (used by
// GraftSyntax) instead of from tree.Root.
func CompilePattern(tree *CommandTree, pattern string, views View, dirs Direction, graftBases []*Node) ([]*Node, error) {
	if tree.dirty {
		return nil, ErrDirtyTree
	}

	tokens := strings.Fields(pattern)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("syntax: empty pattern")
	}

	frontier := graftBases
	startIdx := 0
	if frontier == nil {
		// The first token must name the tree's own command (sequence always
		// begins at root); growToken from the root.
		frontier = []*Node{tree.Root}
		if tokens[0] != tree.Name {
			return nil, fmt.Errorf("%w: pattern must begin with %q", ErrUnknownSymbol, tree.Name)
		}
		tree.Root.orMask(views, dirs)
		startIdx = 1
	}

	st := &trackState{}
	var stack []*groupFrame

	finish := func(err error) ([]*Node, error) {
		if err != nil {
			if st.openOption || st.openAlt {
				tree.dirty = true
			}
			return nil, err
		}
		return frontier, nil
	}

	for i := startIdx; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok {
		case "[":
			if st.openOption {
				return finish(ErrNestedOption)
			}
			st.openOption = true
			anyOrder := false
			if i+1 < len(tokens) && tokens[i+1] == "*" {
				anyOrder = true
				i++
			}
			heads := make([]*Node, len(frontier))
			for bi, base := range frontier {
				heads[bi] = growPseudo(base, KindOptHead, views, dirs)
				heads[bi].AnyOrder = anyOrder
			}
			stack = append(stack, &groupFrame{optHeads: heads, skipBases: frontier, anyOrder: anyOrder})
			frontier = heads

		case "]":
			if !st.openOption || len(stack) == 0 {
				return finish(ErrUnexpectedClose)
			}
			fr := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			st.openOption = false
			if fr.elemCount == 0 {
				return finish(ErrEmptyOption)
			}
			if fr.anyOrder && fr.elemCount > MaxChoices {
				return finish(ErrTooManyOptChoice)
			}
			// For a sequential option, OptEnd chains after the last element
			// reached in each base's branch (frontier already holds those).
			// For an any-order option, every element is reachable in any
			// order and the group may also be skipped entirely, so OptEnd is
			// attached directly to OptHead — both "skip" (from OptHead) and
			// "re-enter after consuming one element" (matcher's reachability
			// rule, via OptHeadBackref) resolve to the same OptEnd.
			var ends []*Node
			if fr.anyOrder {
				for _, head := range fr.optHeads {
					end := growPseudo(head, KindOptEnd, views, dirs)
					end.OptHeadBackref = head
					ends = append(ends, end)
				}
			} else {
				for bi, base := range frontier {
					end := growPseudo(base, KindOptEnd, views, dirs)
					end.OptHeadBackref = fr.optHeads[bi%len(fr.optHeads)]
					ends = append(ends, end)
				}
			}
			frontier = append(ends, fr.skipBases...)

		case "{":
			if st.openAlt {
				return finish(ErrNestedAlt)
			}
			st.openAlt = true
			stack = append(stack, &groupFrame{skipBases: frontier})

		case "|":
			if !st.openAlt {
				// Outside any ALT, '|' is a regular word per spec §4.D note.
				// Treated here as an unknown-symbol error since this grammar
				// has no bare '|' keyword in practice; left distinguishable
				// from ErrMissingOr for callers that want to allow it.
				return finish(fmt.Errorf("%w: bare '|' outside alternation", ErrUnknownSymbol))
			}

		case "}":
			if !st.openAlt || len(stack) == 0 {
				return finish(ErrUnexpectedClose)
			}
			fr := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			st.openAlt = false
			if fr.elemCount == 0 {
				return finish(ErrEmptyAlt)
			}
			if fr.elemCount > MaxChoices {
				return finish(ErrTooManyAltChoice)
			}
			for _, members := range fr.membersByBase {
				for _, m := range members {
					m.AltMembers = members
				}
			}

		case "*":
			return finish(ErrStarOutsideOpt)

		default:
			sym, ok := tree.Symbols.Lookup(tok)
			if !ok {
				return finish(fmt.Errorf("%w: %q", ErrUnknownSymbol, tok))
			}

			if st.openAlt && len(stack) > 0 {
				fr := stack[len(stack)-1]
				var elems []*Node
				for _, base := range fr.skipBases {
					elems = append(elems, growSymbol(base, sym, views, dirs))
				}
				fr.elemCount++
				if fr.membersByBase == nil {
					fr.membersByBase = make([][]*Node, len(fr.skipBases))
				}
				for i, c := range elems {
					c.AltOrder = fr.elemCount
					if i < len(fr.membersByBase) {
						fr.membersByBase[i] = append(fr.membersByBase[i], c)
					}
					if fr.elemCount == 1 {
						continue
					}
					if i < len(fr.altEldest) {
						c.AltHeadBackref = fr.altEldest[i]
					}
				}
				if fr.elemCount == 1 {
					fr.altEldest = elems
					frontier = elems
				} else {
					frontier = append(frontier, elems...)
				}
				continue
			}

			if st.openOption && len(stack) > 0 {
				fr := stack[len(stack)-1]
				if fr.anyOrder {
					var elems []*Node
					for _, head := range fr.optHeads {
						e := growSymbol(head, sym, views, dirs)
						e.OptHeadBackref = head
						elems = append(elems, e)
					}
					fr.elemCount++
					frontier = elems
					continue
				}
			}

			var next []*Node
			for _, base := range frontier {
				next = append(next, growSymbol(base, sym, views, dirs))
			}
			if len(stack) > 0 {
				stack[len(stack)-1].elemCount++
			}
			frontier = next
		}

		if len(frontier) > MaxBranch {
			return finish(ErrBranchOverflow)
		}
	}

	if st.openOption {
		return finish(ErrUnclosedOption)
	}
	if st.openAlt {
		return finish(ErrUnclosedAlt)
	}

	for _, base := range frontier {
		attachLeaf(base, views, dirs)
	}

	return finish(nil)
}

// growSymbol finds-or-creates a child of base matching sym, ORing the view
// mask on reuse (spec §4.D step 1, "Reuse yields prefix sharing").
func growSymbol(base *Node, sym *Symbol, views View, dirs Direction) *Node {
	for _, c := range base.Branches {
		if compareNode(c, sym) {
			c.orMask(views, dirs)
			return c
		}
	}
	n := &Node{Depth: base.Depth + 1, ArgLabel: sym.ArgLabel, HelpText: sym.Help}
	switch sym.SymKind {
	case SymKeyword:
		n.Kind = KindKeyword
		n.Keyword = sym.Name
	case SymVariable:
		n.Kind = KindVar
		n.VarKind = sym.LexKind
		n.VarRange = sym.Range
	}
	n.orMask(views, dirs)
	base.Branches = append(base.Branches, n)
	return n
}

// growPseudo finds-or-creates a structural pseudo-node child (OptHead/OptEnd).
func growPseudo(base *Node, kind NodeKind, views View, dirs Direction) *Node {
	for _, c := range base.Branches {
		if c.Kind == kind {
			c.orMask(views, dirs)
			return c
		}
	}
	n := &Node{Kind: kind, Depth: base.Depth + 1}
	n.orMask(views, dirs)
	base.Branches = append(base.Branches, n)
	return n
}

// attachLeaf creates or reuses a Leaf child under base, ORing the mask
// (spec §4.D step 4).
func attachLeaf(base *Node, views View, dirs Direction) *Node {
	for _, c := range base.Branches {
		if c.Kind == KindLeaf {
			c.orMask(views, dirs)
			return c
		}
	}
	leaf := NewLeaf(base.Depth + 1)
	leaf.orMask(views, dirs)
	base.Branches = append(base.Branches, leaf)
	return leaf
}
