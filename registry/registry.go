// Package registry implements the command registry (spec §4.E): a
// lexicographically ordered catalog of command trees, addressable by
// command-name prefix under a view/direction filter.
package registry

import (
	"sort"
	"strings"
	"sync"

	"github.com/diggerwu/ocli/syntax"
)

// Registry is the command catalog. At most one entry per name (spec §4.E).
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]*syntax.CommandTree
	ordered []string // kept sorted

	// UndoKeyword / ManualKeyword are the configurable literals from spec §6
	// ("The undo keyword (default 'no'...) and the manual keyword (default
	// 'man'...) are build-time constants visible at pattern-author level").
	UndoKeyword   string
	ManualKeyword string
}

func New() *Registry {
	return &Registry{
		byName:        make(map[string]*syntax.CommandTree),
		UndoKeyword:   "no",
		ManualKeyword: "man",
	}
}

// CreateCommand inserts a new command tree once; a duplicate name returns
// the existing entry (spec §4.E "create_cmd_tree... duplicate creation
// returns the existing entry").
func (r *Registry) CreateCommand(name string, symbols *syntax.SymbolTable, callback syntax.CommandFunc) *syntax.CommandTree {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byName[name]; ok {
		return existing
	}
	tree := syntax.NewCommandTree(name, symbols, callback)
	r.byName[name] = tree
	r.ordered = append(r.ordered, name)
	sort.Strings(r.ordered)
	return tree
}

// Get returns the tree for an exact name, if any.
func (r *Registry) Get(name string) (*syntax.CommandTree, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byName[name]
	return t, ok
}

// Match implements get_cmd_tree (spec §4.E): returns the number of entries
// whose command name has prefix as a prefix and whose root node admits view
// under direction; when more than zero are found, also returns the first
// matching entry. An exact name match short-circuits to count 1.
func (r *Registry) Match(prefix string, view syntax.View, dir syntax.Direction) (int, *syntax.CommandTree) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.byName[prefix]; ok && t.Root.Admits(view, dir) {
		return 1, t
	}

	count := 0
	var first *syntax.CommandTree
	for _, name := range r.ordered {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		t := r.byName[name]
		if !t.Root.Admits(view, dir) {
			continue
		}
		count++
		if first == nil {
			first = t
		}
	}
	return count, first
}

// Names returns every registered command name admitting view under dir,
// sorted. Used by the matcher's undo/manual completion special-cases
// (spec §4.F "Completion set").
func (r *Registry) Names(view syntax.View, dir syntax.Direction) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for _, name := range r.ordered {
		t := r.byName[name]
		if t.Root.Admits(view, dir) {
			out = append(out, name)
		}
	}
	return out
}

// All returns every registered tree name, in sorted order, regardless of
// view/direction — used by `man` command-name completion.
func (r *Registry) All() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.ordered))
	copy(out, r.ordered)
	return out
}
