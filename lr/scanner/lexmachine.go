package scanner

import (
	"fmt"

	"github.com/jose-rZM/PLShell"
	"github.com/jose-rZM/PLShell/lr"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// Lexer is a lexmachine DFA recognizing the terminals of a grammar.
type Lexer struct {
	lexer *lexmachine.Lexer
	g     *lr.Grammar
	eol   *lr.Symbol
}

// NewLexer compiles the patterns of all terminals of g. EPSILON, EOL and
// terminals without a pattern do not take part.
//
// NewLexer will return an error if a pattern is malformed or compiling the
// DFA failed.
func NewLexer(g *lr.Grammar) (*Lexer, error) {
	eol, _ := g.Symbols().Lookup(lr.EOL)
	lx := &Lexer{lexer: lexmachine.NewLexer(), g: g, eol: eol}
	lx.lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
	for _, A := range g.Terminals() {
		if A.IsEOL() {
			continue
		}
		if A.Pattern == "" {
			tracer().Infof("terminal %s has no pattern, will not be recognized", A.Name)
			continue
		}
		lx.lexer.Add([]byte(A.Pattern), MakeToken(A.Name, A.ID))
	}
	if err := lx.lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, fmt.Errorf("cannot compile terminal patterns of %s: %w", g.Name, err)
	}
	return lx, nil
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lx *Lexer) Scanner(input string) (*LMScanner, error) {
	s, err := lx.lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &LMScanner{scanner: s, eol: lx.eol, end: uint64(len(input)), Error: logError}, nil
}

// Tokenize splits input into tokens, up to and including the final EOL
// token. Unmatched input is reported to onError, if not nil, and skipped.
func (lx *Lexer) Tokenize(input string, onError func(error)) ([]plshell.Token, error) {
	sc, err := lx.Scanner(input)
	if err != nil {
		return nil, err
	}
	return Collect(sc, onError), nil
}

// Symbol returns the terminal a token stands for.
func (lx *Lexer) Symbol(token plshell.Token) *lr.Symbol {
	return lx.g.Symbols().Symbol(int(token.TokType()))
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	eol     *lr.Symbol
	end     uint64
	Error   func(error)
}

var _ Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// NextToken is part of the Tokenizer interface. At the end of input it
// returns an EOL token, again and again.
func (lms *LMScanner) NextToken() plshell.Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
			if ui.FailTC <= ui.StartTC {
				lms.scanner.TC = ui.StartTC + 1
			}
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return MakeDefaultToken(plshell.TokType(lms.eol.ID), lr.EOL, plshell.Span{lms.end, lms.end})
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("token %d = %q", token.Type, token.Lexeme)
	return DefaultToken{
		kind:   plshell.TokType(token.Type),
		lexeme: string(token.Lexeme),
		Val:    token.Value,
		span:   plshell.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
	}
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, name, m), nil
	}
}
