package lr

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClosureOfStartItem(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Alternatives")
	b.LHS("S").N("A").End()
	b.LHS("S").N("B").End()
	b.LHS("A").T("a").End()
	b.LHS("B").T("b").End()
	g, err := b.Grammar()
	require.NoError(t, err)
	ga := Analysis(g)
	C := ga.Closure(NewItemSet(StartItem(g)))
	assert.Equal(t, 5, C.Size())
	assert.Equal(t, "{ [S' -> • S], [S -> • A], [S -> • B], [A -> • a], [B -> • b] }", C.String())
	var buf bytes.Buffer
	assert.True(t, ga.TraceClosure(NewItemSet(StartItem(g)), NarrateTo(&buf)).Equals(C))
	assert.Contains(t, buf.String(), "[A -> • a]")
}

func TestItems(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Items")
	b.LHS("S").T("a").N("A").End()
	b.LHS("A").Epsilon()
	g, err := b.Grammar()
	require.NoError(t, err)
	i, err := NewItem(g.Rule(1), 0)
	require.NoError(t, err)
	assert.Equal(t, "a", i.PeekSymbol().Name)
	assert.False(t, i.IsComplete())
	i = i.Advance().Advance()
	assert.True(t, i.IsComplete())
	assert.Nil(t, i.PeekSymbol())
	assert.Equal(t, i, i.Advance())
	assert.Equal(t, "[S -> a A •]", i.String())
	eps, err := NewItem(g.Rule(2), 0)
	require.NoError(t, err)
	assert.True(t, eps.IsComplete())
	assert.Nil(t, eps.PeekSymbol())
	_, err = NewItem(g.Rule(1), 3)
	assert.Error(t, err)
}

func TestGoto(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	ga := Analysis(g)
	I0 := ga.Closure(NewItemSet(StartItem(g)))
	I1 := ga.Goto(I0, lookup(t, g, "E"))
	assert.Equal(t, "{ [E' -> E •], [E -> E • + T] }", I1.String())
	I4 := ga.Goto(I0, lookup(t, g, "("))
	assert.Equal(t, 7, I4.Size())
	assert.True(t, ga.Goto(I0, lookup(t, g, ")")).Empty())
	assert.True(t, ga.Goto(I0, nil).Empty())
}

func TestExpressionCFSM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	lrgen := NewTableGenerator(Analysis(g))
	lrgen.CreateTables()
	assert.Equal(t, 12, lrgen.CFSM().Size())
	assert.False(t, lrgen.HasConflicts)
	assert.Empty(t, lrgen.Conflicts())
	acc := lrgen.AcceptingStates()
	require.Len(t, acc, 1)
	eol := lookup(t, g, EOL)
	assert.Equal(t, int32(AcceptAction), lrgen.ActionTable().Value(acc[0], eol))
	S0 := lrgen.CFSM().S0
	E := lookup(t, g, "E")
	assert.Equal(t, int32(acc[0]), lrgen.GotoTable().Value(S0.ID, E))
	assert.Equal(t, int32(ShiftAction), lrgen.ActionTable().Value(S0.ID, lookup(t, g, "id")))
	assert.Equal(t, 20, lrgen.CFSM().AllItems().Size())
	//
	var buf bytes.Buffer
	require.NoError(t, lrgen.CFSM().ToGraphViz(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "digraph {"))
	assert.Contains(t, buf.String(), `E' -\> E •`)
}

func TestConfluence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	ga := Analysis(g)
	bfs := NewTableGenerator(ga).CFSM()
	dfs := NewTableGenerator(ga, DepthFirst()).CFSM()
	require.Equal(t, bfs.Size(), dfs.Size())
	byItems := make(map[string]*CFSMState)
	for _, s := range dfs.States() {
		byItems[s.Items().String()] = s
	}
	for _, s := range bfs.States() {
		d, ok := byItems[s.Items().String()]
		require.True(t, ok, "state %v missing in depth-first CFSM", s.Items())
		for _, A := range s.Items().symbolsAfterDot(g.Symbols()) {
			t1, t2 := bfs.Transition(s, A), dfs.Transition(d, A)
			require.NotNil(t, t1)
			require.NotNil(t, t2)
			assert.True(t, t1.Items().Equals(t2.Items()), "goto(%d, %s) differs", s.ID, A)
		}
	}
}

func TestSLR1Conflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Assignments")
	b.LHS("S").N("L").T("=").N("R").End()
	b.LHS("S").N("R").End()
	b.LHS("L").T("*").N("R").End()
	b.LHS("L").T("id").End()
	b.LHS("R").N("L").End()
	g, err := b.Grammar()
	require.NoError(t, err)
	lrgen := NewTableGenerator(Analysis(g))
	lrgen.CreateTables()
	assert.True(t, lrgen.HasConflicts)
	require.Len(t, lrgen.Conflicts(), 1)
	c := lrgen.Conflicts()[0]
	assert.Equal(t, "=", c.Lookahead.Name)
	assert.True(t, c.IsShiftReduce())
	assert.ElementsMatch(t, []int32{ShiftAction, 5}, c.Actions)
}

func TestEpsilonReduce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Nullable")
	b.LHS("S").N("A").T("b").End()
	b.LHS("A").Epsilon()
	g, err := b.Grammar()
	require.NoError(t, err)
	lrgen := NewTableGenerator(Analysis(g))
	lrgen.CreateTables()
	assert.False(t, lrgen.HasConflicts)
	S0 := lrgen.CFSM().S0
	assert.Equal(t, []int32{2}, lrgen.ActionTable().Values(S0.ID, lookup(t, g, "b")))
	var buf bytes.Buffer
	assert.Equal(t, lrgen.CFSM().Size(), lrgen.TraceCFSM(NarrateTo(&buf)).Size())
	assert.Contains(t, buf.String(), "I0 = ")
}

func TestNoEpsilonAfterDot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.lr")
	defer teardown()
	//
	g := NewGrammar("EpsilonInBody", nil)
	for _, name := range []string{"a", "b"} {
		_, err := g.Symbols().DeclareTerminal(name, name)
		require.NoError(t, err)
	}
	_, err := g.Symbols().DeclareNonTerminal("S")
	require.NoError(t, err)
	g.SetAxiom("S")
	require.NoError(t, g.AddRule("S", "aEPSILONb"))
	require.NoError(t, g.Validate())
	assert.Equal(t, "S -> a b", g.Rule(1).String())
	lrgen := NewTableGenerator(Analysis(g))
	lrgen.CreateTables()
	cfsm := lrgen.CFSM()
	assert.Equal(t, 4, cfsm.Size())
	eps := g.Symbols().Symbol(EpsilonID)
	for _, s := range cfsm.States() {
		for _, i := range s.Items().Items() {
			if A := i.PeekSymbol(); A != nil {
				assert.False(t, A.IsEpsilon(), "state %d has item %v", s.ID, i)
			}
		}
		assert.Empty(t, lrgen.ActionTable().Values(s.ID, eps), "ACTION[%d, EPSILON]", s.ID)
		assert.Nil(t, cfsm.Transition(s, eps))
	}
}
