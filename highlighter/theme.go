package highlighter

import "strconv"

// ANSI color codes
const (
	Reset     = "\033[0m"
	Bold      = "\033[1m"
	Dim       = "\033[2m"
	Italic    = "\033[3m"
	Underline = "\033[4m"

	// Foreground colors
	Black   = "\033[30m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"

	// Bright foreground colors
	BrightBlack   = "\033[90m"
	BrightRed     = "\033[91m"
	BrightGreen   = "\033[92m"
	BrightYellow  = "\033[93m"
	BrightBlue    = "\033[94m"
	BrightMagenta = "\033[95m"
	BrightCyan    = "\033[96m"
	BrightWhite   = "\033[97m"

	// 256-color mode
	Color256Prefix = "\033[38;5;"
	Color256Suffix = "m"
)

// Color256 returns an ANSI escape for 256-color mode
func Color256(n int) string {
	return Color256Prefix + strconv.Itoa(n) + Color256Suffix
}

// RGB returns an ANSI escape for true color mode
func RGB(r, g, b int) string {
	return "\033[38;2;" + strconv.Itoa(r) + ";" + strconv.Itoa(g) + ";" + strconv.Itoa(b) + "m"
}

// Role identifies the semantic kind of a rendered token (spec §4.G help/error
// rendering): a literal keyword, an ALL_CAPS placeholder value, help/comment
// text, the dimmed "<cr>" marker, or an error message.
type Role int

const (
	RoleKeyword Role = iota
	RoleValue
	RoleComment
	RoleStateNeutral
	RoleStateBad
)

// Palette defines the semantic colors used to build a theme. Each theme
// provides its own palette, and buildTheme maps these onto Role.
type Palette struct {
	Keyword  string // literal command tokens
	Value    string // ALL_CAPS variable placeholders
	Comment  string // help text, dimmed "<cr>"
	StateBad string // parse-error messages
}

// buildTheme creates a Theme from a Palette by mapping semantic colors to
// rendering roles.
func buildTheme(p Palette) *Theme {
	return &Theme{
		colors: map[Role]string{
			RoleKeyword:      p.Keyword,
			RoleValue:        p.Value,
			RoleComment:      Italic + p.Comment,
			RoleStateNeutral: Dim + p.Comment,
			RoleStateBad:     Bold + p.StateBad,
		},
	}
}

// Theme defines ANSI color mappings for each rendering role.
// Use ThemeByName() to get a theme by name, or create custom themes
// by modifying an existing theme with SetColor().
type Theme struct {
	colors map[Role]string
}

// DefaultTheme returns the default theme (Tokyo Night)
func DefaultTheme() *Theme {
	return TokyoNightTheme()
}

// TokyoNightTheme returns a Tokyo Night inspired theme
func TokyoNightTheme() *Theme {
	comment := RGB(86, 95, 137)  // #565f89
	red := RGB(247, 118, 142)    // #f7768e
	yellow := RGB(224, 175, 104) // #e0af68
	cyan := RGB(125, 207, 255)   // #7dcfff

	return buildTheme(Palette{
		Keyword:  yellow,
		Value:    cyan,
		Comment:  comment,
		StateBad: red,
	})
}

// VibrantTheme returns a vibrant color theme (original default)
func VibrantTheme() *Theme {
	return buildTheme(Palette{
		Keyword:  Yellow,
		Value:    BrightCyan,
		Comment:  Dim + BrightBlack,
		StateBad: BrightRed,
	})
}

// SolarizedDarkTheme returns a Solarized Dark theme
func SolarizedDarkTheme() *Theme {
	base01 := Color256(240) // comments
	orange := Color256(166)
	red := Color256(160)
	cyan := Color256(37)

	return buildTheme(Palette{
		Keyword:  orange,
		Value:    cyan,
		Comment:  base01,
		StateBad: red,
	})
}

// MonokaiTheme returns a Monokai-inspired theme
func MonokaiTheme() *Theme {
	orange := Color256(208)
	cyan := Color256(81)
	gray := Color256(242)
	red := Color256(196)

	return buildTheme(Palette{
		Keyword:  orange,
		Value:    cyan,
		Comment:  gray,
		StateBad: red,
	})
}

// NordTheme returns a Nord theme
func NordTheme() *Theme {
	nord8 := Color256(110)  // frost - light blue
	nord11 := Color256(167) // aurora - red
	nord12 := Color256(173) // aurora - orange
	nordComment := Color256(60)

	return buildTheme(Palette{
		Keyword:  nord12,
		Value:    nord8,
		Comment:  nordComment,
		StateBad: nord11,
	})
}

// CatppuccinMochaTheme returns a Catppuccin Mocha theme
// https://github.com/catppuccin/catppuccin
func CatppuccinMochaTheme() *Theme {
	overlay0 := RGB(108, 112, 134) // #6c7086
	red := RGB(243, 139, 168)      // #f38ba8
	yellow := RGB(249, 226, 175)   // #f9e2af
	sky := RGB(137, 220, 235)      // #89dceb

	return buildTheme(Palette{
		Keyword:  yellow,
		Value:    sky,
		Comment:  overlay0,
		StateBad: red,
	})
}

// DraculaTheme returns the popular Dracula color scheme
// https://draculatheme.com
func DraculaTheme() *Theme {
	comment := RGB(98, 114, 164) // #6272a4
	cyan := RGB(139, 233, 253)   // #8be9fd
	orange := RGB(255, 184, 108) // #ffb86c
	red := RGB(255, 85, 85)      // #ff5555

	return buildTheme(Palette{
		Keyword:  orange,
		Value:    cyan,
		Comment:  comment,
		StateBad: red,
	})
}

// GruvboxDarkTheme returns the Gruvbox Dark color scheme
// https://github.com/morhetz/gruvbox
func GruvboxDarkTheme() *Theme {
	comment := RGB(146, 131, 116) // #928374
	red := RGB(251, 73, 52)       // #fb4934
	aqua := RGB(142, 192, 124)    // #8ec07c
	orange := RGB(254, 128, 25)   // #fe8019

	return buildTheme(Palette{
		Keyword:  orange,
		Value:    aqua,
		Comment:  comment,
		StateBad: red,
	})
}

// OneDarkTheme returns the Atom One Dark color scheme
// https://github.com/atom/one-dark-syntax
func OneDarkTheme() *Theme {
	comment := RGB(92, 99, 112)  // #5c6370
	red := RGB(224, 108, 117)    // #e06c75
	yellow := RGB(229, 192, 123) // #e5c07b
	cyan := RGB(86, 182, 194)    // #56b6c2

	return buildTheme(Palette{
		Keyword:  yellow,
		Value:    cyan,
		Comment:  comment,
		StateBad: red,
	})
}

// GetColor returns the color string for a rendering role
func (t *Theme) GetColor(role Role) string {
	if color, ok := t.colors[role]; ok {
		return color
	}
	return ""
}

// ThemeNames returns a list of available theme names.
func ThemeNames() []string {
	return []string{"tokyonight", "vibrant", "solarized", "monokai", "nord", "catppuccin", "dracula", "gruvbox", "onedark"}
}

// ThemeByName returns a theme by its name. Returns DefaultTheme for unknown names.
// Supported names: tokyonight, vibrant, solarized, monokai, nord, catppuccin, dracula, gruvbox, onedark
func ThemeByName(name string) *Theme {
	switch name {
	case "tokyonight", "tokyo-night", "tokyo":
		return TokyoNightTheme()
	case "vibrant":
		return VibrantTheme()
	case "solarized":
		return SolarizedDarkTheme()
	case "monokai":
		return MonokaiTheme()
	case "nord":
		return NordTheme()
	case "catppuccin", "catppuccin-mocha", "mocha":
		return CatppuccinMochaTheme()
	case "dracula":
		return DraculaTheme()
	case "gruvbox", "gruvbox-dark":
		return GruvboxDarkTheme()
	case "onedark", "one-dark":
		return OneDarkTheme()
	default:
		return DefaultTheme()
	}
}

// SetColor allows customizing a color for a rendering role
func (t *Theme) SetColor(role Role, color string) {
	t.colors[role] = color
}
