package lr

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func splitGrammar(t *testing.T) *Grammar {
	st := NewSymbolTable()
	for _, name := range []string{"a", "b", "ab"} {
		_, err := st.DeclareTerminal(name, QuotePattern(name))
		require.NoError(t, err)
	}
	_, err := st.DeclareNonTerminal("A")
	require.NoError(t, err)
	return NewGrammar("split", st)
}

func names(syms []*Symbol) []string {
	n := make([]string, len(syms))
	for i, A := range syms {
		n[i] = A.Name
	}
	return n
}

func TestSplitMaximalMunch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.lr")
	defer teardown()
	//
	g := splitGrammar(t)
	tests := []struct {
		input    string
		expected []string
	}{
		{"ab", []string{"ab"}},
		{"aba", []string{"ab", "a"}},
		{"aab", []string{"a", "ab"}},
		{"abA", []string{"ab", "A"}},
		{"ba$", []string{"b", "a", "$"}},
		{"EPSILON", []string{"EPSILON"}},
	}
	for _, test := range tests {
		syms, err := g.Split(test.input)
		if assert.NoError(t, err, test.input) {
			assert.Equal(t, test.expected, names(syms), test.input)
		}
	}
	for _, input := range []string{"abc", "", "  ", "x a", "a b", " a", "ab\t"} {
		_, err := g.Split(input)
		assert.True(t, errors.Is(err, ErrCannotTokenize), "expected %q not to split", input)
	}
}

func TestAddProduction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.lr")
	defer teardown()
	//
	g := splitGrammar(t)
	g.SetAxiom("A")
	require.NoError(t, g.AddProduction("A", []string{"a", "A"}))
	require.NoError(t, g.AddProduction("A", nil))
	require.NoError(t, g.AddProduction("A", []string{"a", "A"}))
	assert.Equal(t, 2, g.RuleCount())
	assert.True(t, g.Rule(2).IsEpsilon())
	assert.True(t, g.HasEmptyProduction("A"))
	err := g.AddProduction("A", []string{"c"})
	assert.True(t, errors.Is(err, ErrUndeclared))
	err = g.AddProduction("B", []string{"a"})
	assert.True(t, errors.Is(err, ErrUndeclared))
	assert.NoError(t, g.Validate())
	//
	rules := g.FilterRulesByConsequent("A")
	require.Len(t, rules, 1)
	assert.Equal(t, "A -> a A", rules[0].String())
}

func TestEpsilonInConsequent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.lr")
	defer teardown()
	//
	g := splitGrammar(t)
	g.SetAxiom("A")
	require.NoError(t, g.AddProduction("A", []string{"a", Epsilon, "A"}))
	require.NoError(t, g.AddRule("A", "EPSILONbEPSILON"))
	require.NoError(t, g.AddProduction("A", []string{Epsilon, Epsilon}))
	assert.Equal(t, "A -> a A", g.Rule(1).String())
	assert.Equal(t, "A -> b", g.Rule(2).String())
	assert.True(t, g.Rule(3).IsEpsilon())
	require.NoError(t, g.AddProduction("A", []string{"a", "A"}))
	assert.Equal(t, 3, g.RuleCount())
}

func TestStartRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Primes")
	b.LHS("S").N("S'").End()
	b.LHS("S'").T("a").End()
	g, err := b.Grammar()
	require.NoError(t, err)
	start := g.StartRule()
	require.NotNil(t, start)
	assert.Equal(t, 0, start.Serial)
	assert.Equal(t, "S''", start.LHS.Name)
	assert.Equal(t, "S", start.RHS()[0].Name)
	assert.False(t, g.Symbols().Contains("S''"))
}

func TestValidate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.lr")
	defer teardown()
	//
	g := NewGrammar("invalid", nil)
	assert.True(t, errors.Is(g.Validate(), ErrInvalidGrammar))
	g.Symbols().DeclareNonTerminal("S")
	g.Symbols().DeclareNonTerminal("B")
	g.SetAxiom("S")
	require.NoError(t, g.AddRule("S", "B"))
	err := g.Validate()
	assert.True(t, errors.Is(err, ErrInvalidGrammar))
	assert.Contains(t, err.Error(), `"B"`)
}
