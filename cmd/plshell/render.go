package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jose-rZM/PLShell/lr"
	"github.com/jose-rZM/PLShell/lr/ll1"
	"github.com/pterm/pterm"
)

// renderGrammar prints the rules of g as a tree, grouped by non-terminal,
// followed by the symbol table.
func renderGrammar(g *lr.Grammar) error {
	ll := pterm.LeveledList{
		pterm.LeveledListItem{Level: 0, Text: fmt.Sprintf("%s (axiom %s)", g.Name, g.Axiom())},
	}
	if start := g.StartRule(); start != nil {
		ll = append(ll, pterm.LeveledListItem{Level: 1, Text: fmt.Sprintf("0: %v", start)})
	}
	g.EachNonTerminal(func(A *lr.Symbol) {
		ll = append(ll, pterm.LeveledListItem{Level: 1, Text: A.Name})
		for _, r := range g.RulesFor(A) {
			ll = append(ll, pterm.LeveledListItem{Level: 2, Text: fmt.Sprintf("%d: %v", r.Serial, r)})
		}
	})
	root := pterm.NewTreeFromLeveledList(ll)
	if err := pterm.DefaultTree.WithRoot(root).Render(); err != nil {
		return err
	}
	data := pterm.TableData{{"id", "symbol", "kind", "pattern"}}
	g.Symbols().Each(func(A *lr.Symbol) {
		data = append(data, []string{strconv.Itoa(A.ID), A.Name, A.Kind.String(), A.Pattern})
	})
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// renderLL1Table prints one row per non-terminal and one column per terminal.
// Cells list the consequents of the rules predicted.
func renderLL1Table(t *ll1.Table) error {
	cols := t.Columns()
	header := []string{""}
	for _, la := range cols {
		header = append(header, la.Name)
	}
	data := pterm.TableData{header}
	for _, A := range t.Rows() {
		row := []string{A.Name}
		for _, la := range cols {
			var cell []string
			for _, r := range t.Cell(A, la) {
				cell = append(cell, strings.Join(r.Consequent(), " "))
			}
			row = append(row, strings.Join(cell, " | "))
		}
		data = append(data, row)
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printItems(title string, S *lr.ItemSet) {
	pterm.Info.Println(title)
	for _, i := range S.Items() {
		pterm.Println("    " + i.String())
	}
}

// renderCFSM prints the states of the canonical collection with their items.
func renderCFSM(cfsm *lr.CFSM) error {
	ll := pterm.LeveledList{
		pterm.LeveledListItem{Level: 0, Text: "canonical collection of " + cfsm.Grammar().Name},
	}
	for _, state := range cfsm.States() {
		label := fmt.Sprintf("I%d", state.ID)
		if state.Accept {
			label += " (accept)"
		}
		ll = append(ll, pterm.LeveledListItem{Level: 1, Text: label})
		for _, i := range state.Items().Items() {
			ll = append(ll, pterm.LeveledListItem{Level: 2, Text: i.String()})
		}
	}
	root := pterm.NewTreeFromLeveledList(ll)
	return pterm.DefaultTree.WithRoot(root).Render()
}

// renderSLRTables prints ACTION and GOTO side by side: terminals first,
// then non-terminals.
func renderSLRTables(lrgen *lr.TableGenerator) error {
	g := lrgen.CFSM().Grammar()
	actions, gotos := lrgen.ActionTable(), lrgen.GotoTable()
	terminals, nonterminals := g.Terminals(), g.NonTerminals()
	header := []string{"state"}
	for _, A := range terminals {
		header = append(header, A.Name)
	}
	for _, A := range nonterminals {
		header = append(header, A.Name)
	}
	data := pterm.TableData{header}
	for state := 0; state < actions.Rows(); state++ {
		row := []string{strconv.Itoa(state)}
		for _, A := range terminals {
			row = append(row, actionCell(actions.Values(state, A), gotos.Value(state, A)))
		}
		for _, A := range nonterminals {
			cell := ""
			if to := gotos.Value(state, A); to != gotos.NullValue() {
				cell = strconv.Itoa(int(to))
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func actionCell(values []int32, target int32) string {
	cell := make([]string, 0, len(values))
	for _, v := range values {
		switch {
		case v == lr.ShiftAction:
			cell = append(cell, fmt.Sprintf("s%d", target))
		case v == lr.AcceptAction:
			cell = append(cell, "acc")
		case v > 0:
			cell = append(cell, fmt.Sprintf("r%d", v))
		}
	}
	return strings.Join(cell, "/")
}
