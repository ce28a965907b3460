package syntax

import "github.com/diggerwu/ocli/lexkind"

// NodeKind is the tagged-sum discriminant for Node, per spec §9
// ("A tagged sum of node kinds with payload per variant is the natural
// representation"). Only Keyword, Var, Leaf, OptHead, and OptEnd persist
// past compilation; ALT_HEAD/ALT_OR/ALT_END/OPT_ANY are compile-time-only
// bookkeeping folded into AltOrder/AltHeadBackref/anyOrder on the
// structural nodes above.
type NodeKind int

const (
	KindKeyword NodeKind = iota
	KindVar
	KindLeaf
	KindOptHead
	KindOptEnd
)

// Direction is a bitmask over {DO, UNDO}, spec §6.
type Direction uint8

const (
	DO Direction = 1 << iota
	UNDO
)

// View is a 32-bit bitmask over application-defined views, spec §6.
type View uint32

const (
	ViewBasic  View = 0x1
	ViewEnable View = 0x2
	ViewConfig View = 0x4
	ViewAll    View = 0xFFFF
)

// Node is a node in the syntax tree (spec §3 "Match node").
type Node struct {
	Kind NodeKind

	Keyword string        // KindKeyword
	VarKind lexkind.Kind  // KindVar
	VarRange lexkind.Range // KindVar

	DoViewMask, UndoViewMask View

	ArgLabel, HelpText string
	Depth              int

	Branches []*Node

	// Back-reference to the matching OptHead, set on OptEnd nodes and on the
	// element children of an any-order OptHead.
	OptHeadBackref *Node
	// AnyOrder is set on an OptHead created for a "[* ...]" group; its direct
	// element children carry OptHeadBackref pointing back here so the
	// matcher's reachability rule can re-enter the group after consuming one
	// element (spec §4.F "Reachability").
	AnyOrder bool

	// AltOrder is >=1 for ALT siblings (the symbol-level alternation from
	// "{ a | b | c }"); 0 for ordinary nodes. The eldest sibling (AltOrder==1)
	// owns no extra state beyond being first; younger siblings reference it.
	AltOrder       int
	AltHeadBackref *Node
	// AltMembers is set (to the same shared slice, including itself) on every
	// member of an alternation group once the group closes, so the matcher
	// can mark every mutually-exclusive sibling used in one step (spec §4.F
	// "choosing one ALT member marks its whole group").
	AltMembers []*Node

	// ArgHelper is an application-supplied completion function attached via
	// Engine.SetCompletionHelper (spec §3 "arg_helper").
	ArgHelper func(partial string, limit int) []string
}

// NewLeaf creates a terminal node carrying only view masks (spec §3 "Leaf").
func NewLeaf(depth int) *Node {
	return &Node{Kind: KindLeaf, Depth: depth}
}

// IsLeafReachableUnder reports whether a Leaf is reachable from n without
// consuming another token, under the given view/direction — the success
// condition for Matcher step 7. OPT_HEAD and OPT_END are transparent (they
// never consume a token); a Leaf sitting just past a closed option group is
// still "here" for this check, so it recurses through those two kinds only.
func (n *Node) IsLeafReachableUnder(v View, dir Direction) bool {
	if leafReachable(n, v, dir, make(map[*Node]bool)) {
		return true
	}
	// n is itself an any-order option element (spec §4.F "Reachability"):
	// it carries no branches of its own, so whether stopping here is valid
	// is really a question about its OPT_HEAD's shared OPT_END.
	if n.OptHeadBackref != nil {
		return leafReachable(n.OptHeadBackref, v, dir, make(map[*Node]bool))
	}
	return false
}

func leafReachable(n *Node, v View, dir Direction, seen map[*Node]bool) bool {
	if n == nil || seen[n] {
		return false
	}
	seen[n] = true
	for _, b := range n.Branches {
		switch b.Kind {
		case KindLeaf:
			if leafAdmits(b, v, dir) {
				return true
			}
		case KindOptHead, KindOptEnd:
			if leafReachable(b, v, dir, seen) {
				return true
			}
		}
	}
	return false
}

func leafAdmits(leaf *Node, v View, dir Direction) bool {
	if dir&DO != 0 && leaf.DoViewMask&v != 0 {
		return true
	}
	if dir&UNDO != 0 && leaf.UndoViewMask&v != 0 {
		return true
	}
	return false
}

// Admits reports whether this node's view mask for the given direction
// includes v (spec §4.F "Availability filter").
func (n *Node) Admits(v View, dir Direction) bool {
	if dir == DO {
		return n.DoViewMask&v != 0
	}
	return n.UndoViewMask&v != 0
}

func (n *Node) orMask(v View, dir Direction) {
	if dir&DO != 0 {
		n.DoViewMask |= v
	}
	if dir&UNDO != 0 {
		n.UndoViewMask |= v
	}
}

// compareNode reports whether an existing child matches the symbol being
// grown, enabling prefix-sharing reuse (spec §4.D step 1, "compare_node").
func compareNode(n *Node, sym *Symbol) bool {
	switch sym.SymKind {
	case SymKeyword:
		return n.Kind == KindKeyword && n.Keyword == sym.Name
	case SymVariable:
		return n.Kind == KindVar && n.VarKind == sym.LexKind && n.ArgLabel == sym.ArgLabel
	default:
		return false
	}
}
