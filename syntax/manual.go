package syntax

import (
	"regexp"
	"strings"
)

var (
	spaceRun          = regexp.MustCompile(`\s+`)
	spaceInsideOpen   = regexp.MustCompile(`([\[{])\s+`)
	spaceBeforeClose  = regexp.MustCompile(`\s+([\]}])`)
	spaceAroundPipe   = regexp.MustCompile(`\s*\|\s*`)
)

// FormatManualLine collapses a pattern into the compact display form used by
// add_cmd_easily (spec §4.D): whitespace runs collapsed, spaces eliminated
// immediately inside [/{ and before ]/}, and around |.
func FormatManualLine(pattern string) string {
	s := spaceRun.ReplaceAllString(strings.TrimSpace(pattern), " ")
	s = spaceInsideOpen.ReplaceAllString(s, "$1")
	s = spaceBeforeClose.ReplaceAllString(s, "$1")
	s = spaceAroundPipe.ReplaceAllString(s, "|")
	return s
}

// AddSyntax compiles pattern into tree (spec §4.D). It returns only the
// compile error; CompilePattern itself returns the leaf-attachment frontier.
func AddSyntax(tree *CommandTree, pattern string, views View, dirs Direction) error {
	_, err := CompilePattern(tree, pattern, views, dirs, nil)
	return err
}

// AddSyntaxAndManual compiles pattern and records its formatted manual line,
// prefixed per spec §4.D's add_cmd_easily rule: "[UNDO] " when both
// directions are enabled, "UNDO " when only undo.
func AddSyntaxAndManual(tree *CommandTree, pattern string, views View, dirs Direction) error {
	if err := AddSyntax(tree, pattern, views, dirs); err != nil {
		return err
	}
	line := FormatManualLine(pattern)
	switch {
	case dirs&DO != 0 && dirs&UNDO != 0:
		line = "[UNDO] " + line
	case dirs&UNDO != 0:
		line = "UNDO " + line
	}
	tree.Manual = append(tree.Manual, ManualEntry{ViewMask: views, Line: line})
	return nil
}

// GraftSyntax grafts a new token sequence under every leaf whose view mask
// matches viewMask (spec §4.D "sprout_cmd_syntax"), used to append dynamic
// suffixes to already-built trees.
func GraftSyntax(tree *CommandTree, pattern string, views View, dirs Direction) error {
	bases := collectMatchingLeaves(tree.Root, views, dirs, make(map[*Node]bool))
	if len(bases) == 0 {
		return nil
	}
	// A grafted-past leaf keeps Kind == KindLeaf (it is still valid
	// "command complete here" for its original masks) but gains Branches for
	// the appended continuation, a narrow, documented relaxation of the
	// "leaf branches are empty" invariant for grafted nodes specifically.
	_, err := CompilePattern(tree, pattern, views, dirs, bases)
	return err
}

func collectMatchingLeaves(n *Node, views View, dirs Direction, seen map[*Node]bool) []*Node {
	if n == nil || seen[n] {
		return nil
	}
	seen[n] = true
	var out []*Node
	if n.Kind == KindLeaf && n.Admits(views, dirs) {
		out = append(out, n)
	}
	for _, b := range n.Branches {
		out = append(out, collectMatchingLeaves(b, views, dirs, seen)...)
	}
	return out
}
