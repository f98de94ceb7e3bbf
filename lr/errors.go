package lr

import "errors"

// Errors returned by the grammar model. They are wrapped with details about
// the offending symbol or rule; test for them with errors.Is.
var (
	// ErrRedeclared signals a conflicting symbol declaration.
	ErrRedeclared = errors.New("symbol redeclared")
	// ErrUndeclared signals use of a symbol that has not been declared.
	ErrUndeclared = errors.New("symbol not declared")
	// ErrCannotTokenize signals a consequent string which cannot be split
	// into declared symbols.
	ErrCannotTokenize = errors.New("cannot tokenize")
	// ErrInvalidGrammar signals a grammar failing validation.
	ErrInvalidGrammar = errors.New("invalid grammar")
)
