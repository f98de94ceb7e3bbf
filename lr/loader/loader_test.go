package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jose-rZM/PLShell/lr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exprGrammar = `terminal id [a-zA-Z_][a-zA-Z_0-9]*;
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

func TestLoadExpressionGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.loader")
	defer teardown()
	//
	g, err := Load("expr", strings.NewReader(exprGrammar))
	require.NoError(t, err)
	assert.Equal(t, "expr", g.Name)
	assert.Equal(t, "E", g.Axiom().Name)
	assert.Equal(t, 6, g.RuleCount())
	assert.Equal(t, "E -> E plus T", g.Rule(1).String())
	assert.Equal(t, "F -> lpar E rpar", g.Rule(5).String())
	id, ok := g.Symbols().Lookup("id")
	require.True(t, ok)
	assert.True(t, id.IsTerminal())
	assert.Equal(t, "[a-zA-Z_][a-zA-Z_0-9]*", id.Pattern)
	assert.True(t, g.Symbols().IsNonTerminal("T"))
}

func TestLoadEpsilonAndEndOfInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.loader")
	defer teardown()
	//
	src := "terminal b b;\nstart with S;\n;\nS -> A b;\nA ->;"
	g, err := Load("eps", strings.NewReader(src))
	require.NoError(t, err)
	assert.True(t, g.HasEmptyProduction("A"))
	assert.False(t, g.HasEmptyProduction("S"))
	ga := lr.Analysis(g)
	A, _ := g.Symbols().Lookup("A")
	assert.Equal(t, []string{"b"}, ga.Follow(A).Names())
}

func TestLoadSplitsWithoutSpaces(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.loader")
	defer teardown()
	//
	src := "terminal a a;\nterminal b b;\nterminal ab ab;\nstart with S;\n;\nS -> a b;\nS -> b a;\n"
	g, err := Load("munch", strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"ab"}, g.Rule(1).Consequent())
	assert.Equal(t, []string{"b", "a"}, g.Rule(2).Consequent())
}

func TestLoadRejectsMalformedInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.loader")
	defer teardown()
	//
	tests := []struct {
		name string
		src  string
		err  error
	}{
		{"garbage header", "terminal a a;\nfoo bar;\n;\nS -> a;\n", ErrSyntax},
		{"missing semicolon", "terminal a a;\nstart with S;\n;\nS -> a\n", ErrSyntax},
		{"two start lines", "terminal a a;\nstart with S;\nstart with T;\n;\nS -> a;\n", ErrSyntax},
		{"no start line", "terminal a a;\n;\nS -> a;\n", ErrSyntax},
		{"unterminated header", "terminal a a;\nstart with S;\n", ErrSyntax},
		{"unknown symbol", "terminal a a;\nstart with S;\n;\nS -> a c;\n", lr.ErrCannotTokenize},
		{"terminal as antecedent", "terminal a a;\nstart with S;\n;\nS -> a;\na -> S;\n", lr.ErrRedeclared},
		{"reserved name", "terminal EPSILON e;\nstart with S;\n;\nS -> EPSILON;\n", lr.ErrRedeclared},
		{"axiom without rules", "terminal a a;\nstart with X;\n;\nS -> a;\n", lr.ErrInvalidGrammar},
	}
	for _, test := range tests {
		g, err := Load(test.name, strings.NewReader(test.src))
		assert.Nil(t, g, test.name)
		if assert.Error(t, err, test.name) {
			assert.True(t, errors.Is(err, test.err), "%s: unexpected error %v", test.name, err)
		}
	}
}

func TestLoadFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.loader")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "expr.txt")
	require.NoError(t, os.WriteFile(path, []byte(exprGrammar), 0644))
	g, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "expr.txt", g.Name)
	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
