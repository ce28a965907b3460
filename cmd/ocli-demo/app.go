package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/diggerwu/ocli/config"
	"github.com/diggerwu/ocli/engine"
	"github.com/diggerwu/ocli/lexkind"
	"github.com/diggerwu/ocli/repl"
	"github.com/diggerwu/ocli/syntax"
)

// ifindexKind is the custom lexical kind this demo registers itself,
// mirroring original_source/example/mylex.c's LEX_IFINDEX: a natural
// number with no leading zero, except "0" itself.
const ifindexKind lexkind.Kind = lexkind.CustomBase

// demoApp holds the one piece of state the democli.c port needs beyond the
// engine itself: which interface "interface IFNAME" most recently selected,
// consulted by "ip address" (interface.c's cur_ifname).
type demoApp struct {
	engine    *engine.Engine
	driver    *repl.Driver
	curIfname string
}

func newDemoApp(cfg *config.Config) *demoApp {
	app := &demoApp{}

	ethIfnum := cfg.EthIfnum
	if ethIfnum <= 0 {
		ethIfnum = lexkind.DiscoverEthIfnum(lexkind.DefaultLinkLister())
	}

	app.engine = engine.New(
		engine.WithUndoKeyword(cfg.UndoKeyword),
		engine.WithManualKeyword(cfg.ManualKeyword),
		engine.WithEthIfnum(ethIfnum),
	)

	if err := app.engine.RegisterCustomLex(ifindexKind, "IFINDEX", isIfindex,
		"Interface index", ""); err != nil {
		fmt.Fprintf(os.Stderr, "ocli-demo: registering IFINDEX: %v\n", err)
	}

	app.registerSysCommands()
	app.registerInterfaceCommands()
	app.registerNetUtilCommands()

	return app
}

// isIfindex mirrors original_source/example/mylex.c's is_ifindex. It isn't
// wired to anything in this demo's own command tree (ETH_IFNAME already
// covers interface naming) — it exists to exercise RegisterCustomLex the
// way mylex_init does.
func isIfindex(s string) bool {
	if s == "" {
		return false
	}
	if s == "0" {
		return true
	}
	if s[0] < '1' || s[0] > '9' {
		return false
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// refreshPrompt sets the driver's prompt from the current view, ported from
// sys.c's set_democli_prompt.
func (app *demoApp) refreshPrompt() {
	host, err := os.Hostname()
	if err != nil {
		host = "ocli-demo"
	}
	switch app.driver.GetView() {
	case syntax.ViewBasic:
		app.driver.SetPrompt(host + "> ")
	case syntax.ViewEnable:
		app.driver.SetPrompt(host + "# ")
	case syntax.ViewConfig:
		app.driver.SetPrompt(host + "-cfg# ")
	case viewInterface:
		app.driver.SetPrompt(host + "-" + app.curIfname + "# ")
	}
}

// --- sys.c: enable / configure terminal / exit -----------------------------

func (app *demoApp) registerSysCommands() {
	e := app.engine

	enableSyms := syntax.NewSymbolTable([]*syntax.Symbol{
		syntax.Keyword("enable", "Enabled view access"),
		syntax.Keyword("password", "Change the enable password"),
	})
	enableTree := e.CreateCommand("enable", enableSyms, app.cmdEnable)
	mustAdd(e, enableTree, "enable", syntax.ViewBasic, syntax.DO)
	mustAdd(e, enableTree, "enable password", syntax.ViewEnable, syntax.DO)

	configSyms := syntax.NewSymbolTable([]*syntax.Symbol{
		syntax.Keyword("configure", "Configure view access"),
		syntax.Keyword("terminal", "Terminal mode"),
	})
	configTree := e.CreateCommand("configure", configSyms, app.cmdConfigure)
	mustAdd(e, configTree, "configure terminal", syntax.ViewEnable, syntax.DO)

	exitSyms := syntax.NewSymbolTable([]*syntax.Symbol{
		syntax.Keyword("exit", "Exit the current view"),
	})
	exitTree := e.CreateCommand("exit", exitSyms, app.cmdExit)
	mustAdd(e, exitTree, "exit", syntax.ViewAll, syntax.DO)
}

func (app *demoApp) cmdEnable(args []syntax.Arg, doFlag bool) error {
	view := app.driver.GetView()
	setPasswd := false
	for _, a := range args {
		if a.Name == "password" {
			setPasswd = true
		}
	}

	if view == syntax.ViewBasic {
		// The original prompts interactively for a password via a second
		// readline call; this driver's RunREPL already owns the one stdin
		// reader goroutine, so a nested blocking read here would race it.
		// For demo purposes "enable" grants access directly instead.
		fmt.Println("Demo mode: skipping the interactive password prompt, granting enable access.")
		app.driver.SetView(syntax.ViewEnable)
		app.refreshPrompt()
	} else if view == syntax.ViewEnable && setPasswd {
		fmt.Println("This is only a demo; no password will actually be changed.")
	}
	return nil
}

func (app *demoApp) cmdConfigure(args []syntax.Arg, doFlag bool) error {
	if app.driver.GetView() == syntax.ViewEnable {
		app.driver.SetView(syntax.ViewConfig)
		app.refreshPrompt()
	}
	return nil
}

func (app *demoApp) cmdExit(args []syntax.Arg, doFlag bool) error {
	switch app.driver.GetView() {
	case syntax.ViewBasic:
		// Root view: "exit" ends the session, same as the EOF command.
		os.Exit(0)
	case syntax.ViewEnable:
		app.driver.SetView(syntax.ViewBasic)
	case syntax.ViewConfig:
		app.driver.SetView(syntax.ViewEnable)
	case viewInterface:
		app.driver.SetView(syntax.ViewConfig)
	}
	app.refreshPrompt()
	return nil
}

// --- interface.c: interface IFNAME / ip address ----------------------------

func (app *demoApp) registerInterfaceCommands() {
	e := app.engine

	ifaceSyms := syntax.NewSymbolTable([]*syntax.Symbol{
		syntax.Keyword("interface", "Configure an interface"),
		syntax.Variable("IFNAME", lexkind.EthIfname, "IFNAME", "Ethernet interface name"),
	})
	ifaceTree := e.CreateCommand("interface", ifaceSyms, app.cmdInterface)
	mustAdd(e, ifaceTree, "interface IFNAME", syntax.ViewConfig, syntax.DO)

	ipSyms := syntax.NewSymbolTable([]*syntax.Symbol{
		syntax.Keyword("ip", "IP configuration"),
		syntax.Keyword("address", "Set the IP address"),
		syntax.Variable("IP_ADDR", lexkind.IPAddr, "IP_ADDR", "IP address"),
		syntax.Variable("NET_MASK", lexkind.IPMask, "NET_MASK", "Network mask"),
	})
	ipTree := e.CreateCommand("ip", ipSyms, app.cmdIPAddress)
	mustAdd(e, ipTree, "ip address IP_ADDR NET_MASK", viewInterface, syntax.DO)
}

func (app *demoApp) cmdInterface(args []syntax.Arg, doFlag bool) error {
	var ifname string
	for _, a := range args {
		if a.Name == "IFNAME" {
			ifname = a.Value
		}
	}
	if ifname != "" && app.driver.GetView() == syntax.ViewConfig {
		app.curIfname = ifname
		app.driver.SetView(viewInterface)
		app.refreshPrompt()
	}
	return nil
}

func (app *demoApp) cmdIPAddress(args []syntax.Arg, doFlag bool) error {
	var addr, mask string
	for _, a := range args {
		switch a.Name {
		case "IP_ADDR":
			addr = a.Value
		case "NET_MASK":
			mask = a.Value
		}
	}
	if app.curIfname != "" && addr != "" && mask != "" {
		fmt.Println("This is a demo of IP address configuration; nothing is actually applied.")
		fmt.Printf("You would run: ifconfig %s %s netmask %s\n", app.curIfname, addr, mask)
	}
	return nil
}

// --- netutils.c: ping / trace-route ----------------------------------------

func (app *demoApp) registerNetUtilCommands() {
	e := app.engine

	syms := syntax.NewSymbolTable([]*syntax.Symbol{
		syntax.Keyword("ping", "Ping utility"),
		syntax.Keyword("-c", "Set the echo request count"),
		syntax.RangedVariable("COUNT", lexkind.Int, 1, 100, "REQ_COUNT", "<1-100> count of requests"),
		syntax.Keyword("-s", "Set the packet size"),
		syntax.RangedVariable("SIZE", lexkind.Int, 22, 2000, "PKT_SIZE", "<22-2000> size of packet"),
		syntax.Variable("HOST", lexkind.DomainName, "DST_HOST", "Destination domain name"),
		syntax.Variable("HOST_IP", lexkind.IPAddr, "DST_HOST", "Destination IP address"),
		syntax.Keyword("from", "Set the ping source address"),
		syntax.Variable("IFADDR", lexkind.IPAddr, "LOCAL_ADDR", "Interface IP address"),
		syntax.Keyword("trace-route", "Trace route utility"),
	})

	pingTree := e.CreateCommand("ping", syms, app.cmdPing)
	mustAdd(e, pingTree, "ping [ -c COUNT ] [ -s SIZE ] { HOST | HOST_IP } [ from IFADDR ]",
		syntax.ViewAll, syntax.DO)

	traceTree := e.CreateCommand("trace-route", syms, app.cmdTrace)
	mustAdd(e, traceTree, "trace-route { HOST | HOST_IP }", syntax.ViewEnable, syntax.DO)
}

func (app *demoApp) cmdPing(args []syntax.Arg, doFlag bool) error {
	reqCount, pktSize := 5, 56
	var dstHost, localAddr string
	for _, a := range args {
		switch a.Name {
		case "REQ_COUNT":
			reqCount, _ = strconv.Atoi(a.Value)
		case "PKT_SIZE":
			pktSize, _ = strconv.Atoi(a.Value)
		case "DST_HOST":
			dstHost = a.Value
		case "LOCAL_ADDR":
			localAddr = a.Value
		}
	}
	fmt.Printf("This is a demo; it would run:\n  ping -c %d -s %d", reqCount, pktSize)
	if localAddr != "" {
		fmt.Printf(" -I %s", localAddr)
	}
	fmt.Printf(" %s\n", dstHost)
	return nil
}

func (app *demoApp) cmdTrace(args []syntax.Arg, doFlag bool) error {
	var dstHost string
	for _, a := range args {
		if a.Name == "DST_HOST" {
			dstHost = a.Value
		}
	}
	fmt.Printf("This is a demo; it would run:\n  traceroute -n %s\n", dstHost)
	return nil
}

func mustAdd(e *engine.Engine, tree *syntax.CommandTree, pattern string, views syntax.View, dirs syntax.Direction) {
	if err := e.AddSyntaxAndManual(tree, pattern, views, dirs); err != nil {
		fmt.Fprintf(os.Stderr, "ocli-demo: adding syntax %q: %v\n", pattern, err)
		os.Exit(1)
	}
}
