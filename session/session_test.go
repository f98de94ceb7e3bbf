package session

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jose-rZM/PLShell/lr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exprGrammar = `terminal id [a-z]+;
terminal plus \+;
terminal times \*;
terminal lpar \(;
terminal rpar \);
start with E;
;
E -> E plus T;
E -> T;
T -> T times F;
T -> F;
F -> lpar E rpar;
F -> id;
;
`

const assignGrammar = `terminal id [a-z]+;
terminal eq =;
terminal star \*;
start with S;
;
S -> L eq R;
S -> R;
L -> star R;
L -> id;
R -> L;
`

func writeGrammar(t *testing.T, name, src string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func loaded(t *testing.T, src string) *Session {
	s := New()
	require.NoError(t, s.LoadFile(writeGrammar(t, "g.txt", src)))
	return s
}

func TestEmptySession(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.session")
	defer teardown()
	//
	s := New()
	_, err := s.First([]string{"E"})
	assert.True(t, errors.Is(err, ErrNoGrammar))
	_, _, err = s.SLR1()
	assert.True(t, errors.Is(err, ErrNoGrammar))
	_, err = s.Split("E")
	assert.True(t, errors.Is(err, ErrNoGrammar))
}

func TestLoadIsAtomic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.session")
	defer teardown()
	//
	s := loaded(t, exprGrammar)
	g := s.Grammar()
	err := s.LoadFile(writeGrammar(t, "broken.txt", "terminal a a;\nstart with S;\n;\nS -> a b;\n"))
	assert.True(t, errors.Is(err, lr.ErrCannotTokenize))
	assert.Same(t, g, s.Grammar())
	err = s.LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
	assert.Same(t, g, s.Grammar())
	//
	require.NoError(t, s.LoadFile(writeGrammar(t, "assign.txt", assignGrammar)))
	assert.Equal(t, "assign.txt", s.Grammar().Name)
	_, isSLR1, err := s.SLR1()
	require.NoError(t, err)
	assert.False(t, isSLR1)
}

func TestSetQueries(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.session")
	defer teardown()
	//
	s := loaded(t, exprGrammar)
	_, err := s.Split("Eplus T")
	assert.True(t, errors.Is(err, lr.ErrCannotTokenize))
	names, err := s.Split("EplusT")
	require.NoError(t, err)
	assert.Equal(t, []string{"E", "plus", "T"}, names)
	F, err := s.First(names)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"lpar", "id"}, F.Names())
	F, err = s.First([]string{"E", "nonsense"})
	require.NoError(t, err)
	assert.True(t, F.IsEmpty())
	F, err = s.Follow("T")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"$", "plus", "times", "rpar"}, F.Names())
	F, err = s.Follow("X")
	require.NoError(t, err)
	assert.True(t, F.IsEmpty())
	P, err := s.PredictionSymbols("F", []string{"id"})
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, P.Names())
	//
	var buf bytes.Buffer
	F, err = s.TraceFollow("F", lr.NarrateTo(&buf))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"$", "plus", "times", "rpar"}, F.Names())
	assert.Contains(t, buf.String(), "Follow")
}

func TestLL1Verdicts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.session")
	defer teardown()
	//
	s := loaded(t, exprGrammar)
	table, isLL1, err := s.BuildLL1Table()
	require.NoError(t, err)
	assert.False(t, isLL1) // left recursion
	assert.NotEmpty(t, table.Conflicts())
	_, isSLR1, err := s.SLR1()
	require.NoError(t, err)
	assert.True(t, isSLR1)
}

func TestNilNarratorIsQuiet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.session")
	defer teardown()
	//
	s := loaded(t, exprGrammar)
	F, err := s.TraceFirst([]string{"T"}, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"lpar", "id"}, F.Names())
	F, err = s.TraceFollow("E", nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"$", "plus", "rpar"}, F.Names())
	_, err = s.TracePredictionSymbols("F", []string{"id"}, nil)
	require.NoError(t, err)
	_, _, err = s.TraceLL1Table(nil)
	require.NoError(t, err)
	start, err := s.ParseItem("E' -> . E")
	require.NoError(t, err)
	C, err := s.TraceClosure(nil, start)
	require.NoError(t, err)
	G, err := s.TraceGoto(C, "E", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, G.Size())
	all, err := s.TraceAllItems(nil)
	require.NoError(t, err)
	assert.Equal(t, 20, all.Size())
}

func TestItemsAndGoto(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.session")
	defer teardown()
	//
	s := loaded(t, exprGrammar)
	start, err := s.ParseItem("E' -> . E")
	require.NoError(t, err)
	assert.Equal(t, 0, start.Rule().Serial)
	i, err := s.ParseItem("E -> E • plus T")
	require.NoError(t, err)
	assert.Equal(t, 1, i.Dot())
	assert.Equal(t, "plus", i.PeekSymbol().Name)
	_, err = s.ParseItem("E -> plus . E")
	assert.True(t, errors.Is(err, ErrBadItem))
	_, err = s.ParseItem("E plus T")
	assert.True(t, errors.Is(err, ErrBadItem))
	//
	I0, err := s.Closure(start)
	require.NoError(t, err)
	assert.Equal(t, 7, I0.Size())
	I1, err := s.Goto(I0, "E")
	require.NoError(t, err)
	assert.Equal(t, 2, I1.Size())
	empty, err := s.Goto(I0, "unknown")
	require.NoError(t, err)
	assert.True(t, empty.Empty())
	all, err := s.AllItems()
	require.NoError(t, err)
	assert.Equal(t, 20, all.Size())
	cfsm, err := s.CFSM()
	require.NoError(t, err)
	assert.Equal(t, 12, cfsm.Size())
}

func TestEpsilonItem(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.session")
	defer teardown()
	//
	s := loaded(t, "terminal b b;\nstart with S;\n;\nS -> A b;\nA ->;\n")
	i, err := s.ParseItem("A -> .")
	require.NoError(t, err)
	assert.True(t, i.IsComplete())
	j, err := s.ParseItem("A -> . EPSILON")
	require.NoError(t, err)
	assert.Equal(t, i, j)
}

func TestLex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.session")
	defer teardown()
	//
	s := loaded(t, exprGrammar)
	tokens, err := s.Lex("a + (b*c)", nil)
	require.NoError(t, err)
	var names []string
	for _, token := range tokens {
		names = append(names, s.TokenSymbol(token).Name)
	}
	assert.Equal(t, []string{"id", "plus", "lpar", "id", "times", "id", "rpar", "$"}, names)
}
