/*
Package ll1 builds predictive parsing tables for grammars.

For every non-terminal A and each production A → α of A, the table holds
the production in cell (A, t) for every terminal t of the prediction set
of A → α. A grammar is LL(1) if no cell holds more than one production.
Tables are built for every grammar; conflicting cells keep all of their
productions and are reported by Conflicts.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package ll1

import (
	"fmt"
	"strings"

	"github.com/jose-rZM/PLShell/lr"
	"github.com/jose-rZM/PLShell/lr/sparse"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'plshell.ll1'.
func tracer() tracing.Trace {
	return tracing.Select("plshell.ll1")
}

// Table is an LL(1) parsing table. Rows are non-terminals, columns are
// terminals including EOL.
type Table struct {
	g         *lr.Grammar
	matrix    *sparse.IntMatrix // (non-terminal ID, terminal ID) → rule serials
	conflicts []Conflict
}

// Conflict is a table cell holding more than one production.
type Conflict struct {
	NonTerminal *lr.Symbol
	Lookahead   *lr.Symbol
	Rules       []*lr.Rule
}

func (c Conflict) String() string {
	rules := make([]string, len(c.Rules))
	for i, r := range c.Rules {
		rules[i] = r.String()
	}
	return fmt.Sprintf("M[%s, %s] = { %s }", c.NonTerminal.Name, c.Lookahead.Name,
		strings.Join(rules, " | "))
}

// Build creates the LL(1) table for the grammar of an analysis. It returns
// the table and whether the grammar is LL(1).
func Build(ga *lr.LRAnalysis) (*Table, bool) {
	return BuildTraced(ga, lr.Quiet)
}

// BuildTraced is like Build, narrating the prediction set of every
// production and every cell entry.
func BuildTraced(ga *lr.LRAnalysis, n lr.Narrator) (*Table, bool) {
	if n == nil {
		n = lr.Quiet
	}
	g := ga.Grammar()
	st := g.Symbols()
	t := &Table{
		g:      g,
		matrix: sparse.NewIntMatrix(st.Size(), st.Size(), sparse.DefaultNullValue),
	}
	g.EachNonTerminal(func(A *lr.Symbol) {
		for _, r := range g.RulesFor(A) {
			P := ga.TracePredictionSymbols(A, r.RHS(), n)
			for _, la := range P.Symbols() {
				if !t.matrix.Add(A.ID, la.ID, int32(r.Serial)) {
					continue
				}
				n.Narrate(1, "M[%s, %s] := %v", A.Name, la.Name, r)
				if len(t.matrix.Values(A.ID, la.ID)) > 1 {
					n.Narrate(2, "conflict: M[%s, %s] already holds a production", A.Name, la.Name)
				}
			}
		}
	})
	t.matrix.Each(func(i, j int, serials []int32) {
		if len(serials) < 2 {
			return
		}
		c := Conflict{
			NonTerminal: st.Symbol(i),
			Lookahead:   st.Symbol(j),
			Rules:       t.rules(serials),
		}
		tracer().Infof("LL(1) conflict %v", c)
		t.conflicts = append(t.conflicts, c)
	})
	tracer().Debugf("LL(1) table for %s has %d entries, %d conflicts", g.Name,
		t.matrix.ValueCount(), len(t.conflicts))
	return t, t.IsLL1()
}

func (t *Table) rules(serials []int32) []*lr.Rule {
	rules := make([]*lr.Rule, 0, len(serials))
	for _, s := range serials {
		if r := t.g.Rule(int(s)); r != nil {
			rules = append(rules, r)
		}
	}
	return rules
}

// Grammar returns the grammar the table has been built for.
func (t *Table) Grammar() *lr.Grammar {
	return t.g
}

// Cell returns the productions in cell (A, la), in order of insertion.
// It returns nil for empty cells and for symbols not suited as row or
// column.
func (t *Table) Cell(A, la *lr.Symbol) []*lr.Rule {
	if A == nil || la == nil || A.IsTerminal() || !la.IsTerminal() || la.IsEpsilon() {
		return nil
	}
	if A.ID < 0 || A.ID >= t.matrix.M() || la.ID >= t.matrix.N() {
		return nil
	}
	return t.rules(t.matrix.Values(A.ID, la.ID))
}

// Conflicts returns all cells with more than one production, ordered by
// non-terminal, then by terminal.
func (t *Table) Conflicts() []Conflict {
	return t.conflicts
}

// IsLL1 is true if no cell holds more than one production.
func (t *Table) IsLL1() bool {
	return len(t.conflicts) == 0
}

// Rows returns the non-terminals of the grammar in order of symbol ID.
func (t *Table) Rows() []*lr.Symbol {
	return t.g.NonTerminals()
}

// Columns returns the terminals of the grammar in order of symbol ID,
// EOL included.
func (t *Table) Columns() []*lr.Symbol {
	return t.g.Terminals()
}
