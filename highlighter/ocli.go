package highlighter

import "strings"

// RenderHelpEntry colorizes one "token — help text" line from
// Matcher.Help/Engine.Help: a literal keyword renders in RoleKeyword's
// color, an ALL_CAPS variable placeholder in RoleValue's, "<cr>" dimmed as
// RoleStateNeutral, and trailing help text in RoleComment's.
func RenderHelpEntry(theme *Theme, line string) string {
	if theme == nil {
		theme = DefaultTheme()
	}
	token, rest, hasHelp := strings.Cut(line, " — ")

	var colored string
	switch {
	case token == "<cr>":
		colored = theme.GetColor(RoleStateNeutral) + token + Reset
	case isPlaceholder(token):
		colored = theme.GetColor(RoleValue) + token + Reset
	default:
		colored = theme.GetColor(RoleKeyword) + token + Reset
	}

	if !hasHelp {
		return colored
	}
	return colored + " — " + theme.GetColor(RoleComment) + rest + Reset
}

// RenderErrorLine colorizes a parse-error message in the theme's "bad
// state" color (RoleStateBad) rather than introducing a separate error
// palette.
func RenderErrorLine(theme *Theme, msg string) string {
	if theme == nil {
		theme = DefaultTheme()
	}
	return Bold + theme.GetColor(RoleStateBad) + msg + Reset
}

// isPlaceholder reports whether tok looks like an ocli ALL_CAPS variable
// placeholder (e.g. HOST_IP, COUNT) rather than a literal keyword.
func isPlaceholder(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if r >= 'a' && r <= 'z' {
			return false
		}
	}
	return true
}
