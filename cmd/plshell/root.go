package main

import (
	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	trace   *string
	init    *string
	history *string
}{}

var rootCmd = &cobra.Command{
	Use:   "plshell [grammar-file]",
	Short: "Explore context-free grammars interactively",
	Long: `plshell computes FIRST and FOLLOW sets, LL(1) tables, LR(0) item sets
and SLR(1) tables for a grammar loaded from a file, optionally explaining
every step.`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runShell,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootFlags.trace = rootCmd.PersistentFlags().StringP("trace", "t", "Error", "trace level [Debug|Info|Error]")
	rootFlags.init = rootCmd.Flags().String("init", "", "file of shell commands to execute at start")
	rootFlags.history = rootCmd.Flags().String("history", "", "file to keep the command history in")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setup does what every sub-command needs: display and tracing.
func setup() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	setTraceLevel(*rootFlags.trace)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setTraceLevel(l string) tracing.TraceLevel {
	level := tracing.TraceLevelFromString(l)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
	return level
}

func runShell(cmd *cobra.Command, args []string) error {
	setup()
	pterm.Info.Println("Welcome to PLShell") // colored welcome message
	sh := NewShell()
	if len(args) > 0 {
		if _, err := sh.Eval("load " + args[0]); err != nil {
			pterm.Error.Println(err.Error())
		}
	}
	sh.loadInitFile(*rootFlags.init)
	repl, err := readline.NewEx(&readline.Config{
		Prompt:          "plshell> ",
		HistoryFile:     *rootFlags.history,
		AutoComplete:    sh.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer repl.Close()
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	sh.REPL(repl)
	return nil
}
