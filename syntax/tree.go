package syntax

// CommandFunc is invoked on a successful parse (spec §4.F step 7 / §6).
// args is the ordered (arg_label, value) binding vector; doFlag reports the
// matched direction (true = DO, false = UNDO).
type CommandFunc func(args []Arg, doFlag bool) error

// Arg is one (arg_label, value) binding (spec §9 "Variable-argument
// callback binding": "Model this as an ordered map or a slice of labeled
// pairs; iterate by label.").
type Arg struct {
	Name  string
	Value string
}

// ManualEntry is one rendered manual line, indexed by the view mask under
// which it applies (spec §4.D "add_cmd_easily").
type ManualEntry struct {
	ViewMask View
	Line     string
}

// CommandTree is a named top-level entry (spec §3 "Command tree").
type CommandTree struct {
	Name     string
	Root     *Node
	Callback CommandFunc
	Manual   []ManualEntry
	Symbols  *SymbolTable

	// dirty is set when a CompilePattern call on this tree aborts mid-group.
	// Resolves spec §9's Open Question: rather than silently continuing with
	// stale compiler state, the next compile on this tree refuses outright
	// (ErrDirtyTree) until the application fixes the pattern.
	dirty bool
}

// NewCommandTree creates the tree's root keyword node. Invariant (spec §3):
// root_node.kind == KEYWORD && root_node.keyword == name.
func NewCommandTree(name string, symbols *SymbolTable, callback CommandFunc) *CommandTree {
	return &CommandTree{
		Name:     name,
		Root:     &Node{Kind: KindKeyword, Keyword: name, Depth: 0},
		Callback: callback,
		Symbols:  symbols,
	}
}
