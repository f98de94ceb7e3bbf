package scanner

import (
	"testing"

	"github.com/jose-rZM/PLShell/lr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func makeGrammar(t *testing.T) *lr.Grammar {
	b := lr.NewGrammarBuilder("Sums")
	b.Terminal("if", "if")
	b.Terminal("id", "[a-z]+")
	b.Terminal("num", "[0-9]+")
	b.Terminal("plus", `\+`)
	b.LHS("S").T("if").T("id").End()
	b.LHS("S").N("E").End()
	b.LHS("E").T("num").T("plus").T("num").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestLexerTokenizes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.scanner")
	defer teardown()
	//
	g := makeGrammar(t)
	lx, err := NewLexer(g)
	if err != nil {
		t.Fatal(err)
	}
	tokens, err := lx.Tokenize("12 +\t3", func(e error) {
		t.Errorf("unexpected scanner error: %v", e)
	})
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{"num", "plus", "num", "$"}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, have %d", len(expected), len(tokens))
	}
	for i, token := range tokens {
		t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
		if name := lx.Symbol(token).Name; name != expected[i] {
			t.Errorf("expected token #%d to be %s, is %s", i, expected[i], name)
		}
	}
	if tokens[2].Lexeme() != "3" || tokens[2].Span().From() != 5 {
		t.Errorf("expected 3rd token to be '3' at position 5, is %q at %d",
			tokens[2].Lexeme(), tokens[2].Span().From())
	}
}

func TestLexerPrefersFirstTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.scanner")
	defer teardown()
	//
	g := makeGrammar(t)
	lx, err := NewLexer(g)
	if err != nil {
		t.Fatal(err)
	}
	tokens, _ := lx.Tokenize("if iffy", nil)
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, have %d", len(tokens))
	}
	if lx.Symbol(tokens[0]).Name != "if" || lx.Symbol(tokens[1]).Name != "id" {
		t.Errorf("expected 'if id', have '%s %s'", lx.Symbol(tokens[0]).Name, lx.Symbol(tokens[1]).Name)
	}
}

func TestLexerReportsUnmatchedInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.scanner")
	defer teardown()
	//
	g := makeGrammar(t)
	lx, err := NewLexer(g)
	if err != nil {
		t.Fatal(err)
	}
	errcnt := 0
	tokens, _ := lx.Tokenize("1 # 2", func(e error) {
		errcnt++
	})
	if errcnt == 0 {
		t.Errorf("expected an error for '#'")
	}
	last := tokens[len(tokens)-1]
	if int(last.TokType()) != lr.EOLID {
		t.Errorf("expected token sequence to end with EOL, ends with %q", last.Lexeme())
	}
}

func TestMalformedPattern(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.scanner")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Broken")
	b.Terminal("x", "[a-")
	b.LHS("S").T("x").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewLexer(g); err == nil {
		t.Errorf("expected malformed pattern to fail compilation")
	}
}

func TestCollectSpans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "plshell.scanner")
	defer teardown()
	//
	g := makeGrammar(t)
	lx, err := NewLexer(g)
	if err != nil {
		t.Fatal(err)
	}
	sc, err := lx.Scanner("if abc")
	if err != nil {
		t.Fatal(err)
	}
	tokens := Collect(sc, nil)
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, have %d", len(tokens))
	}
	span := tokens[1].Span()
	if span.From() != 3 || span.To() != 6 || span.Len() != 3 {
		t.Errorf("expected 'abc' to span (3…6), has %v", span)
	}
	eol := tokens[2].Span()
	if lx.Symbol(tokens[2]).Name != lr.EOL || eol.From() != 6 || eol.Len() != 0 {
		t.Errorf("expected empty EOL token at 6, is %s at %v", lx.Symbol(tokens[2]), eol)
	}
}
