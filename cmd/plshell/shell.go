package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/jose-rZM/PLShell/lr"
	"github.com/jose-rZM/PLShell/session"
	"github.com/pterm/pterm"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// errUsage signals a command called with wrong arguments.
var errUsage = errors.New("usage")

// command is an entry of the command table of a shell.
type command struct {
	args string // argument synopsis
	help string
	run  func(sh *Shell, args string) error
}

// Shell is our interpreter object. It holds a session and the table of
// commands it understands.
type Shell struct {
	session  *session.Session
	out      io.Writer // narrations go here
	teach    bool
	commands map[string]command
}

// NewShell creates a shell with an empty session, narrating to stdout.
func NewShell() *Shell {
	sh := &Shell{
		session: session.New(),
		out:     os.Stdout,
	}
	sh.commands = map[string]command{
		"help":    {"", "list commands", (*Shell).help},
		"load":    {"<file>", "load a grammar file", (*Shell).load},
		"gdebug":  {"", "show the grammar and its symbols", (*Shell).gdebug},
		"first":   {"<symbols>", "FIRST set of a sequence of symbols", (*Shell).first},
		"follow":  {"<non-terminal>", "FOLLOW set of a non-terminal", (*Shell).follow},
		"pred":    {"<non-terminal> <symbols>", "prediction symbols of a rule", (*Shell).pred},
		"ll1":     {"", "LL(1) table", (*Shell).ll1},
		"closure": {"<item>[; <item>...]", "closure of a set of items, e.g. 'E -> E . + T'", (*Shell).closure},
		"goto":    {"<state> <symbol>", "goto set of a state of the canonical collection", (*Shell).gotoState},
		"items":   {"", "canonical collection of LR(0) items", (*Shell).items},
		"slr":     {"", "SLR(1) ACTION and GOTO tables", (*Shell).slr},
		"cfsm":    {"<file.dot>", "write the CFSM in Graphviz format", (*Shell).cfsm},
		"lex":     {"<text>", "tokenize text with the terminal patterns", (*Shell).lex},
		"teach":   {"on|off", "explain every step", (*Shell).teachMode},
		"trace":   {"<level>", "set trace level [Debug|Info|Error]", (*Shell).trace},
		"exit":    {"", "leave the shell", nil},
		"quit":    {"", "leave the shell", nil},
	}
	return sh
}

func (sh *Shell) narrator() lr.Narrator {
	if sh.teach {
		return lr.NarrateTo(sh.out)
	}
	return lr.Quiet
}

func (sh *Shell) commandNames() []string {
	names := maps.Keys(sh.commands)
	slices.Sort(names)
	return names
}

func (sh *Shell) completer() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(sh.commands))
	for _, name := range sh.commandNames() {
		switch name {
		case "teach":
			items = append(items, readline.PcItem(name, readline.PcItem("on"), readline.PcItem("off")))
		case "trace":
			items = append(items, readline.PcItem(name, readline.PcItem("Debug"),
				readline.PcItem("Info"), readline.PcItem("Error")))
		default:
			items = append(items, readline.PcItem(name))
		}
	}
	return readline.NewPrefixCompleter(items...)
}

func (sh *Shell) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if line = strings.TrimSpace(line); line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, err := sh.Eval(line); err != nil {
			pterm.Error.Println(fmt.Sprintf("%s:%d: %v", filename, lineno, err))
		}
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading init file: %v", err)
	}
}

// REPL starts interactive mode.
func (sh *Shell) REPL(repl *readline.Instance) {
	for {
		line, err := repl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := sh.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Eval executes a command, given on a line by itself.
func (sh *Shell) Eval(line string) (bool, error) {
	line = strings.TrimSpace(line)
	name, args := line, ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		name, args = line[:i], strings.TrimSpace(line[i+1:])
	}
	cmd, ok := sh.commands[name]
	if !ok {
		return false, fmt.Errorf("unknown command %q, try 'help'", name)
	}
	if cmd.run == nil {
		return true, nil
	}
	tracer().Debugf("command %s(%q)", name, args)
	if err := cmd.run(sh, args); err != nil {
		if errors.Is(err, errUsage) {
			return false, fmt.Errorf("%w: %s %s", errUsage, name, cmd.args)
		}
		return false, err
	}
	return false, nil
}

// --- Commands --------------------------------------------------------------

func (sh *Shell) help(string) error {
	data := pterm.TableData{{"command", "arguments", "description"}}
	for _, name := range sh.commandNames() {
		cmd := sh.commands[name]
		data = append(data, []string{name, cmd.args, cmd.help})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func (sh *Shell) load(args string) error {
	if args == "" {
		return errUsage
	}
	if err := sh.session.LoadFile(args); err != nil {
		return err
	}
	g := sh.session.Grammar()
	pterm.Info.Println(fmt.Sprintf("Grammar %s loaded, %d rules, axiom %s", g.Name, g.RuleCount(), g.Axiom()))
	return nil
}

func (sh *Shell) gdebug(string) error {
	g := sh.session.Grammar()
	if g == nil {
		return session.ErrNoGrammar
	}
	return renderGrammar(g)
}

func (sh *Shell) first(args string) error {
	if args == "" {
		return errUsage
	}
	names, err := sh.session.Split(strings.Join(strings.Fields(args), ""))
	if err != nil {
		return err
	}
	F, err := sh.session.TraceFirst(names, sh.narrator())
	if err != nil {
		return err
	}
	pterm.Info.Println(fmt.Sprintf("First(%s) = %v", strings.Join(names, " "), F))
	return nil
}

func (sh *Shell) follow(args string) error {
	if args == "" || strings.ContainsAny(args, " \t") {
		return errUsage
	}
	F, err := sh.session.TraceFollow(args, sh.narrator())
	if err != nil {
		return err
	}
	pterm.Info.Println(fmt.Sprintf("Follow(%s) = %v", args, F))
	return nil
}

func (sh *Shell) pred(args string) error {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return errUsage
	}
	A := fields[0]
	names, err := sh.session.Split(strings.Join(fields[1:], ""))
	if err != nil {
		return err
	}
	P, err := sh.session.TracePredictionSymbols(A, names, sh.narrator())
	if err != nil {
		return err
	}
	pterm.Info.Println(fmt.Sprintf("Prediction symbols of %s -> %s: %v", A, strings.Join(names, " "), P))
	return nil
}

func (sh *Shell) ll1(string) error {
	table, isLL1, err := sh.session.BuildLL1Table()
	if sh.teach && err == nil {
		table, isLL1, err = sh.session.TraceLL1Table(sh.narrator())
	}
	if err != nil {
		return err
	}
	if err := renderLL1Table(table); err != nil {
		return err
	}
	if isLL1 {
		pterm.Success.Println("Grammar is LL(1)")
		return nil
	}
	pterm.Warning.Println("Grammar is not LL(1), conflicts:")
	for _, c := range table.Conflicts() {
		pterm.Println("  " + c.String())
	}
	return nil
}

func (sh *Shell) closure(args string) error {
	if args == "" {
		return errUsage
	}
	var items []lr.Item
	for _, text := range strings.Split(args, ";") {
		if strings.TrimSpace(text) == "" {
			continue
		}
		i, err := sh.session.ParseItem(text)
		if err != nil {
			return err
		}
		items = append(items, i)
	}
	C, err := sh.session.TraceClosure(sh.narrator(), items...)
	if err != nil {
		return err
	}
	printItems("Closure", C)
	return nil
}

func (sh *Shell) gotoState(args string) error {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return errUsage
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return errUsage
	}
	cfsm, err := sh.session.CFSM()
	if err != nil {
		return err
	}
	state := cfsm.State(id)
	if state == nil {
		return fmt.Errorf("no state I%d, states are I0 to I%d", id, cfsm.Size()-1)
	}
	G, err := sh.session.TraceGoto(state.Items(), fields[1], sh.narrator())
	if err != nil {
		return err
	}
	if G.Empty() {
		pterm.Info.Println(fmt.Sprintf("goto(I%d, %s) is empty", id, fields[1]))
		return nil
	}
	for _, s := range cfsm.States() {
		if s.Items().Equals(G) {
			printItems(fmt.Sprintf("goto(I%d, %s) = I%d", id, fields[1], s.ID), G)
			return nil
		}
	}
	printItems(fmt.Sprintf("goto(I%d, %s)", id, fields[1]), G)
	return nil
}

func (sh *Shell) items(string) error {
	all, err := sh.session.TraceAllItems(sh.narrator())
	if err != nil {
		return err
	}
	cfsm, _ := sh.session.CFSM()
	if err := renderCFSM(cfsm); err != nil {
		return err
	}
	pterm.Info.Println(fmt.Sprintf("%d states, %d distinct items", cfsm.Size(), all.Size()))
	return nil
}

func (sh *Shell) slr(string) error {
	lrgen, isSLR1, err := sh.session.SLR1()
	if err != nil {
		return err
	}
	if err := renderSLRTables(lrgen); err != nil {
		return err
	}
	if isSLR1 {
		pterm.Success.Println("Grammar is SLR(1)")
		return nil
	}
	pterm.Warning.Println("Grammar is not SLR(1), conflicts:")
	for _, c := range lrgen.Conflicts() {
		pterm.Println("  " + c.String())
	}
	return nil
}

func (sh *Shell) cfsm(args string) error {
	if args == "" {
		return errUsage
	}
	cfsm, err := sh.session.CFSM()
	if err != nil {
		return err
	}
	f, err := os.Create(args)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := cfsm.ToGraphViz(f); err != nil {
		return err
	}
	pterm.Info.Println(fmt.Sprintf("CFSM with %d states written to %s", cfsm.Size(), args))
	return nil
}

func (sh *Shell) lex(args string) error {
	tokens, err := sh.session.Lex(args, func(e error) {
		pterm.Error.Println(e.Error())
	})
	if err != nil {
		return err
	}
	data := pterm.TableData{{"token", "lexeme", "from", "to", "length"}}
	for _, token := range tokens {
		name := "?"
		if A := sh.session.TokenSymbol(token); A != nil {
			name = A.Name
		}
		span := token.Span()
		data = append(data, []string{name, token.Lexeme(), strconv.FormatUint(span.From(), 10),
			strconv.FormatUint(span.To(), 10), strconv.FormatUint(span.Len(), 10)})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func (sh *Shell) teachMode(args string) error {
	switch args {
	case "on":
		sh.teach = true
	case "off":
		sh.teach = false
	default:
		return errUsage
	}
	pterm.Info.Println("Teaching mode is " + args)
	return nil
}

func (sh *Shell) trace(args string) error {
	if args == "" {
		return errUsage
	}
	level := setTraceLevel(args)
	pterm.Info.Println(fmt.Sprintf("Trace level is %v", level))
	return nil
}
