package lr

import (
	"strings"
)

// GrammarBuilder is a helper to construct grammars in code. Create one with
// NewGrammarBuilder, then add rules:
//
//    b := lr.NewGrammarBuilder("G")
//    b.LHS("S").N("A").T("a").End()   // S  ->  A a
//    b.LHS("A").T("b").End()          // A  ->  b
//    b.LHS("A").Epsilon()             // A  ->
//    g, err := b.Grammar()
//
// Terminals introduced by T are declared with a pattern matching their name
// literally, unless they have been declared with Terminal before. The axiom is
// the LHS of the first rule, unless set with Start.
//
// The first error occurring during construction is kept and returned by
// Grammar.
type GrammarBuilder struct {
	g   *Grammar
	err error
}

// NewGrammarBuilder creates a builder for an empty grammar.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{g: NewGrammar(name, nil)}
}

// Terminal declares a terminal together with its recognition pattern.
func (b *GrammarBuilder) Terminal(name string, pattern string) *GrammarBuilder {
	if _, err := b.g.symbols.DeclareTerminal(name, pattern); err != nil {
		b.fail(err)
	}
	return b
}

// Start sets the axiom.
func (b *GrammarBuilder) Start(name string) *GrammarBuilder {
	b.g.SetAxiom(name)
	return b
}

// LHS starts a new rule for non-terminal name.
func (b *GrammarBuilder) LHS(name string) *RuleBuilder {
	if _, err := b.g.symbols.DeclareNonTerminal(name); err != nil {
		b.fail(err)
	}
	if b.g.axiom == "" {
		b.g.SetAxiom(name)
	}
	return &RuleBuilder{b: b, lhs: name}
}

// Grammar validates and returns the grammar under construction.
func (b *GrammarBuilder) Grammar() (*Grammar, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.g.Validate(); err != nil {
		return nil, err
	}
	b.g.Dump()
	return b.g, nil
}

func (b *GrammarBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// RuleBuilder collects the consequent of a rule. It is created by
// GrammarBuilder.LHS.
type RuleBuilder struct {
	b   *GrammarBuilder
	lhs string
	rhs []string
}

// N appends a non-terminal.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	if _, err := rb.b.g.symbols.DeclareNonTerminal(name); err != nil {
		rb.b.fail(err)
	}
	rb.rhs = append(rb.rhs, name)
	return rb
}

// T appends a terminal.
func (rb *RuleBuilder) T(name string) *RuleBuilder {
	if !rb.b.g.symbols.IsTerminal(name) {
		if _, err := rb.b.g.symbols.DeclareTerminal(name, QuotePattern(name)); err != nil {
			rb.b.fail(err)
		}
	}
	rb.rhs = append(rb.rhs, name)
	return rb
}

// End completes the rule.
func (rb *RuleBuilder) End() {
	if err := rb.b.g.AddProduction(rb.lhs, rb.rhs); err != nil {
		rb.b.fail(err)
	}
}

// Epsilon completes the rule as an epsilon-production.
func (rb *RuleBuilder) Epsilon() {
	rb.rhs = []string{Epsilon}
	rb.End()
}

// QuotePattern returns a pattern which matches lit literally.
func QuotePattern(lit string) string {
	var sb strings.Builder
	for _, r := range lit {
		if strings.ContainsRune(`\.*+?|()[]{}^$-`, r) {
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
