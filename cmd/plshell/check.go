package main

import (
	"fmt"

	"github.com/jose-rZM/PLShell/session"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "check grammar-file",
		Short:   "Tell if a grammar is LL(1) and SLR(1)",
		Example: `  plshell check expr.txt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runCheck,
	}
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	setup()
	s := session.New()
	if err := s.LoadFile(args[0]); err != nil {
		return fmt.Errorf("cannot load %s: %w", args[0], err)
	}
	table, isLL1, err := s.BuildLL1Table()
	if err != nil {
		return err
	}
	if isLL1 {
		pterm.Success.Println("Grammar is LL(1)")
	} else {
		pterm.Warning.Println("Grammar is not LL(1)")
		for _, c := range table.Conflicts() {
			pterm.Println("  " + c.String())
		}
	}
	lrgen, isSLR1, err := s.SLR1()
	if err != nil {
		return err
	}
	if isSLR1 {
		pterm.Success.Println(fmt.Sprintf("Grammar is SLR(1), CFSM has %d states", lrgen.CFSM().Size()))
	} else {
		pterm.Warning.Println("Grammar is not SLR(1)")
		for _, c := range lrgen.Conflicts() {
			pterm.Println("  " + c.String())
		}
	}
	return nil
}
