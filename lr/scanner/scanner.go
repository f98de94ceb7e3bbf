/*
Package scanner tokenizes input text with the terminals of a grammar.

Every terminal of a grammar carries a pattern. The lexer of this package
compiles the patterns of all terminals into a single DFA, using lexmachine,
and produces tokens whose type is the symbol ID of the matching terminal.
If more than one terminal matches the longest prefix of the input, the
terminal declared first wins. Whitespace between tokens is skipped. Every
token sequence ends with a token for EOL.

Pattern syntax is the one of lexmachine: character classes, grouping,
alternation and the operators *, + and ?.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package scanner

import (
	"github.com/jose-rZM/PLShell"
	"github.com/jose-rZM/PLShell/lr"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'plshell.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("plshell.scanner")
}

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() plshell.Token
	SetErrorHandler(func(error))
}

// Collect reads tokens from t up to and including the first EOL token.
// Errors are reported to onError, or logged if onError is nil.
func Collect(t Tokenizer, onError func(error)) []plshell.Token {
	t.SetErrorHandler(onError)
	var tokens []plshell.Token
	for {
		token := t.NextToken()
		tokens = append(tokens, token)
		if int(token.TokType()) == lr.EOLID {
			return tokens
		}
	}
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type.
type DefaultToken struct {
	kind   plshell.TokType
	lexeme string
	Val    interface{}
	span   plshell.Span
}

// MakeDefaultToken creates a token without a value.
func MakeDefaultToken(typ plshell.TokType, lexeme string, span plshell.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() plshell.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() plshell.Span {
	return t.span
}
