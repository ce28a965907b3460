// ocli-demo is a port of original_source/example/democli.c: a minimal
// network-device-style CLI built on the engine/repl packages, showing view
// transitions (enable/configure/exit), an interface/ip configuration
// subtree, a ping command, and a custom lexical kind.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/diggerwu/ocli/config"
	"github.com/diggerwu/ocli/engine"
	"github.com/diggerwu/ocli/highlighter"
	"github.com/diggerwu/ocli/lexkind"
	"github.com/diggerwu/ocli/repl"
	"github.com/diggerwu/ocli/syntax"
)

// version is set via ldflags at build time.
var version = "dev"

// viewInterface extends the library's three built-in views with a fourth,
// application-defined one — interface.c's INTERFACE_VIEW, entered by
// "interface <name>" and left by "exit".
const viewInterface syntax.View = 0x8

const usage = `ocli-demo - a sample hierarchical CLI built on libocli

USAGE:
    ocli-demo                       Start the interactive shell
    ocli-demo -config ocli.yaml     Start with a config file
    ocli-demo -preview-themes       Print a help-line sample in every theme

OPTIONS:
    -config <path>        YAML bootstrap config (see config.Default for defaults)
    -theme <name>          Color theme for help/error rendering
    -preview-themes        Print a sample rendering in every built-in theme and exit
    -debug                 Enable debug logging to stderr
    -v, --version          Show version
`

func main() {
	var (
		configPath     string
		themeName      string
		previewThemes  bool
		debug          bool
		showVersion    bool
	)
	flag.StringVar(&configPath, "config", "", "YAML bootstrap config path")
	flag.StringVar(&themeName, "theme", "", "Color theme override")
	flag.BoolVar(&previewThemes, "preview-themes", false, "Print a sample rendering in every theme and exit")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&showVersion, "v", false, "Show version (shorthand)")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if showVersion {
		fmt.Printf("ocli-demo version %s\n", version)
		return
	}
	if previewThemes {
		previewAllThemes()
		return
	}

	repl.SetDebug(debug)

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ocli-demo: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if themeName != "" {
		cfg.Theme = themeName
	}

	app := newDemoApp(cfg)
	d := repl.New(app.engine)
	d.SetIdleTimeout(cfg.IdleTimeout)
	d.SetEOFCommand("exit")
	d.SetTheme(highlighter.ThemeByName(strings.ToLower(cfg.Theme)))
	d.SetView(syntax.ViewBasic)
	app.driver = d
	app.refreshPrompt()

	if err := d.RunREPL(); err != nil {
		fmt.Fprintf(os.Stderr, "ocli-demo: %v\n", err)
		os.Exit(1)
	}
}

func previewAllThemes() {
	for _, name := range highlighter.ThemeNames() {
		t := highlighter.ThemeByName(name)
		fmt.Printf("--- %s ---\n", name)
		fmt.Println(highlighter.RenderHelpEntry(t, "interface IFNAME — Ethernet interface name"))
		fmt.Println(highlighter.RenderHelpEntry(t, "<cr> — "))
		fmt.Println(highlighter.RenderErrorLine(t, "ocli-demo: no match for \"bogus\" at position 0"))
		fmt.Println()
	}
}
