// Package syntax implements the syntax compiler (spec §4.D): it ingests
// pattern strings per command and builds a prefix-shared match tree with
// option/alternative scaffolding and view masks.
package syntax

import "github.com/diggerwu/ocli/lexkind"

// SymbolKind distinguishes the three symbol flavors from spec §3.
type SymbolKind int

const (
	SymKeyword SymbolKind = iota
	SymVariable
	SymReserved
)

// ReservedRune enumerates the six grammar characters from
// original_source/src/symbol.c's sym_reserv[] table.
type ReservedRune byte

const (
	RuneOptOpen  ReservedRune = '['
	RuneOptStar  ReservedRune = '*'
	RuneOptClose ReservedRune = ']'
	RuneAltOpen  ReservedRune = '{'
	RuneAltOr    ReservedRune = '|'
	RuneAltClose ReservedRune = '}'
)

// Symbol is the author-facing declaration of a keyword or typed variable
// (spec §3 "Symbol").
type Symbol struct {
	Name     string
	SymKind  SymbolKind
	LexKind  lexkind.Kind // valid when SymKind == SymVariable
	Range    lexkind.Range
	ArgLabel string
	Help     string
}

// Keyword declares a literal keyword symbol.
func Keyword(name, help string) *Symbol {
	return &Symbol{Name: name, SymKind: SymKeyword, Help: help}
}

// Variable declares a typed variable symbol bound to a lexical kind.
func Variable(name string, kind lexkind.Kind, argLabel, help string) *Symbol {
	return &Symbol{Name: name, SymKind: SymVariable, LexKind: kind, ArgLabel: argLabel, Help: help}
}

// RangedVariable declares a typed variable symbol with an inclusive numeric
// range, for Int/Decimal kinds (spec §3, "A symbol MAY carry numeric range
// bounds").
func RangedVariable(name string, kind lexkind.Kind, min, max int, argLabel, help string) *Symbol {
	return &Symbol{Name: name, SymKind: SymVariable, LexKind: kind, Range: lexkind.Range{Min: min, Max: max, Set: true}, ArgLabel: argLabel, Help: help}
}

// SymbolTable stores per-command-tree symbol declarations, looked up by
// name (spec §4.C).
type SymbolTable struct {
	byName map[string]*Symbol
}

func NewSymbolTable(symbols []*Symbol) *SymbolTable {
	t := &SymbolTable{byName: make(map[string]*Symbol, len(symbols))}
	for _, s := range symbols {
		t.byName[s.Name] = s
	}
	return t
}

func (t *SymbolTable) Lookup(name string) (*Symbol, bool) {
	s, ok := t.byName[name]
	return s, ok
}
