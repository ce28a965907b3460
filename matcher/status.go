// Package matcher implements the incremental matcher (spec §4.F): turn a
// tokenized line plus a command registry into either a dispatchable match, a
// completion set, or a structured parse error.
package matcher

import (
	"fmt"

	"github.com/diggerwu/ocli/syntax"
	"github.com/diggerwu/ocli/token"
)

// ErrCode classifies why a parse did not reach a dispatchable leaf, per spec
// §4.F "Result codes".
type ErrCode int

const (
	OK ErrCode = iota
	NoMatch
	Ambiguous
	Incomplete
	TooManyArgs
)

func (c ErrCode) String() string {
	switch c {
	case OK:
		return "OK"
	case NoMatch:
		return "No match"
	case Ambiguous:
		return "Ambiguous match"
	case Incomplete:
		return "Incomplete match"
	case TooManyArgs:
		return "Too many arguments"
	default:
		return "unknown error"
	}
}

// ParseStatus is the result of Matcher.Parse (spec §4.F "Parse").
type ParseStatus struct {
	ErrCode   ErrCode
	Direction syntax.Direction

	Tree *syntax.CommandTree
	Args []syntax.Arg

	// FailingTokenIndex/FailingTokenOffset/FailingToken locate where parsing
	// stopped making progress, for a caret under the readline cursor.
	FailingTokenIndex  int
	FailingTokenOffset int
	FailingToken       string
}

// Error satisfies the error interface so ParseStatus can be returned/wrapped
// directly by callers that only care about success vs. failure.
func (s *ParseStatus) Error() string {
	if s.ErrCode == OK {
		return ""
	}
	return fmt.Sprintf("Parsing error at word[%d] '%s': %s", s.FailingTokenIndex, s.FailingToken, s.ErrCode)
}

// Ok reports whether the parse reached a dispatchable leaf.
func (s *ParseStatus) Ok() bool { return s.ErrCode == OK }

// tokenAt is a small helper bundling a token.Token with its index, used while
// walking the input.
type tokenAt struct {
	token.Token
	idx int
}
