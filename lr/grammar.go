package lr

import (
	"fmt"
	"strings"
)

// === Rules =================================================================

// Rule is a production of a grammar, antecedent → consequent.
// A rule with an empty consequent is stored as [EPSILON].
//
// Rules are numbered: serial 0 is the augmented start rule S' → S, the rules
// of the grammar start at 1, in order of insertion.
type Rule struct {
	Serial int     // ordinal of this rule within its grammar
	LHS    *Symbol // antecedent, always a non-terminal
	rhs    []*Symbol
}

// RHS returns the consequent of a rule. Clients must not modify it.
func (r *Rule) RHS() []*Symbol {
	return r.rhs
}

// Consequent returns the names of the consequent symbols.
func (r *Rule) Consequent() []string {
	names := make([]string, len(r.rhs))
	for i, A := range r.rhs {
		names[i] = A.Name
	}
	return names
}

// IsEpsilon returns true if r is an empty production, i.e. A → EPSILON.
func (r *Rule) IsEpsilon() bool {
	return len(r.rhs) == 1 && r.rhs[0].IsEpsilon()
}

func (r *Rule) hasRHS(rhs []*Symbol) bool {
	if len(r.rhs) != len(rhs) {
		return false
	}
	for i, A := range rhs {
		if r.rhs[i] != A {
			return false
		}
	}
	return true
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s -> %s", r.LHS.Name, strings.Join(r.Consequent(), " "))
}

// === Grammar ===============================================================

// Grammar is a context-free grammar: a set of rules over the symbols of a
// symbol table, plus an axiom. The grammar owns its symbol table.
//
// A grammar is mutable while it is being built. Once it has been handed
// to an analysis, clients must not change it any more.
type Grammar struct {
	Name      string
	symbols   *SymbolTable
	axiom     string
	rules     []*Rule         // rules[0] is reserved for the start rule
	byLHS     map[int][]*Rule // rules per non-terminal ID
	startRule *Rule
}

// NewGrammar creates an empty grammar over a symbol table. If st is nil,
// a new symbol table will be created.
func NewGrammar(name string, st *SymbolTable) *Grammar {
	if st == nil {
		st = NewSymbolTable()
	}
	return &Grammar{
		Name:    name,
		symbols: st,
		rules:   []*Rule{nil},
		byLHS:   make(map[int][]*Rule),
	}
}

// Symbols returns the symbol table of g.
func (g *Grammar) Symbols() *SymbolTable {
	return g.symbols
}

// SetAxiom sets the start symbol. The axiom need not be declared yet, but
// Validate will insist on it being a non-terminal with productions.
func (g *Grammar) SetAxiom(name string) {
	g.axiom = name
	g.startRule = nil
}

// Axiom returns the start symbol, or nil if it is not set or not declared.
func (g *Grammar) Axiom() *Symbol {
	if A, ok := g.symbols.Lookup(g.axiom); ok && !A.IsTerminal() {
		return A
	}
	return nil
}

// StartRule returns the augmented start rule S' → S, where S is the axiom and
// S' is a synthetic symbol outside of the symbol table. It returns nil if
// there is no valid axiom.
func (g *Grammar) StartRule() *Rule {
	if g.startRule != nil {
		return g.startRule
	}
	S := g.Axiom()
	if S == nil {
		return nil
	}
	name := S.Name + "'"
	for g.symbols.Contains(name) {
		name += "'"
	}
	Sx := &Symbol{Name: name, ID: -1, Kind: NonTerminal}
	g.startRule = &Rule{Serial: 0, LHS: Sx, rhs: []*Symbol{S}}
	g.rules[0] = g.startRule
	return g.startRule
}

// Rule returns the rule with serial n, or nil. Rule(0) is the start rule.
func (g *Grammar) Rule(n int) *Rule {
	if n == 0 {
		return g.StartRule()
	}
	if n < 0 || n >= len(g.rules) {
		return nil
	}
	return g.rules[n]
}

// Rules returns the rules of g in order of serial, start rule excluded.
func (g *Grammar) Rules() []*Rule {
	return g.rules[1:]
}

// RuleCount returns the number of rules, start rule excluded.
func (g *Grammar) RuleCount() int {
	return len(g.rules) - 1
}

// RulesFor returns the productions of a non-terminal. For the synthetic
// start symbol it returns the start rule.
func (g *Grammar) RulesFor(A *Symbol) []*Rule {
	if A == nil {
		return nil
	}
	if A.ID < 0 {
		if start := g.StartRule(); start != nil && start.LHS == A {
			return []*Rule{start}
		}
		return nil
	}
	return g.byLHS[A.ID]
}

// AddProduction adds a rule antecedent → consequent. All symbols have to be
// declared, the antecedent as a non-terminal. An empty consequent is an
// epsilon-production, as is a consequent of EPSILONs only. EPSILON next to
// other symbols is dropped. Adding a rule a second time is a no-op.
func (g *Grammar) AddProduction(antecedent string, consequent []string) error {
	rhs := make([]*Symbol, 0, len(consequent))
	for _, name := range consequent {
		A, ok := g.symbols.Lookup(name)
		if !ok {
			return fmt.Errorf("%q in rule for %q: %w", name, antecedent, ErrUndeclared)
		}
		rhs = append(rhs, A)
	}
	_, err := g.addRule(antecedent, rhs)
	return err
}

// AddRule tokenizes a raw consequent string with Split and adds the
// resulting rule for antecedent.
func (g *Grammar) AddRule(antecedent string, consequent string) error {
	rhs, err := g.Split(consequent)
	if err != nil {
		return err
	}
	_, err = g.addRule(antecedent, rhs)
	return err
}

func (g *Grammar) addRule(antecedent string, rhs []*Symbol) (*Rule, error) {
	lhs, ok := g.symbols.Lookup(antecedent)
	if !ok {
		return nil, fmt.Errorf("antecedent %q: %w", antecedent, ErrUndeclared)
	}
	if lhs.IsTerminal() {
		return nil, fmt.Errorf("antecedent %q is a terminal: %w", antecedent, ErrInvalidGrammar)
	}
	rhs = withoutEpsilon(rhs)
	if len(rhs) == 0 {
		rhs = []*Symbol{g.symbols.Symbol(EpsilonID)}
	}
	for _, r := range g.byLHS[lhs.ID] {
		if r.hasRHS(rhs) {
			tracer().Debugf("rule %v already present", r)
			return r, nil
		}
	}
	r := &Rule{Serial: len(g.rules), LHS: lhs, rhs: append([]*Symbol(nil), rhs...)}
	g.rules = append(g.rules, r)
	g.byLHS[lhs.ID] = append(g.byLHS[lhs.ID], r)
	tracer().Debugf("%3d: %v", r.Serial, r)
	return r, nil
}

// withoutEpsilon drops EPSILON from a consequent. It stands for the empty
// string and never occurs between other symbols.
func withoutEpsilon(rhs []*Symbol) []*Symbol {
	syms := make([]*Symbol, 0, len(rhs))
	for _, A := range rhs {
		if !A.IsEpsilon() {
			syms = append(syms, A)
		}
	}
	return syms
}

// Split segments a string of concatenated symbol names into declared symbols.
// It uses maximal munch: at each position, the longest prefix which is a
// declared symbol is consumed. The input "EPSILON" results in [EPSILON].
//
// Split fails with ErrCannotTokenize if any part of s, whitespace included,
// is not a declared symbol. Clients accepting user input with blanks should
// remove them first.
func (g *Grammar) Split(s string) ([]*Symbol, error) {
	if s == Epsilon {
		return []*Symbol{g.symbols.Symbol(EpsilonID)}, nil
	}
	var syms []*Symbol
	start := 0
	for start < len(s) {
		var longest *Symbol
		end := start
		for la := start + 1; la <= len(s); la++ {
			if A, ok := g.symbols.Lookup(s[start:la]); ok {
				longest, end = A, la
			}
		}
		if longest == nil {
			return nil, fmt.Errorf("%q at offset %d: %w", s, start, ErrCannotTokenize)
		}
		syms = append(syms, longest)
		start = end
	}
	if len(syms) == 0 {
		return nil, fmt.Errorf("empty input: %w", ErrCannotTokenize)
	}
	return syms, nil
}

// HasEmptyProduction returns true if nt has a production nt → EPSILON.
func (g *Grammar) HasEmptyProduction(nt string) bool {
	A, ok := g.symbols.Lookup(nt)
	if !ok {
		return false
	}
	for _, r := range g.byLHS[A.ID] {
		if r.IsEpsilon() {
			return true
		}
	}
	return false
}

// FilterRulesByConsequent returns all rules with symbol occurring anywhere in
// their consequent, in order of serial.
func (g *Grammar) FilterRulesByConsequent(symbol string) []*Rule {
	var rules []*Rule
	for _, r := range g.Rules() {
		for _, A := range r.rhs {
			if A.Name == symbol {
				rules = append(rules, r)
				break
			}
		}
	}
	return rules
}

// EachNonTerminal calls f for every non-terminal, in order of symbol ID.
func (g *Grammar) EachNonTerminal(f func(A *Symbol)) {
	for _, A := range g.symbols.NonTerminals() {
		f(A)
	}
}

// EachSymbol calls f for every symbol usable after a dot, i.e. every symbol
// except EPSILON, in order of symbol ID.
func (g *Grammar) EachSymbol(f func(A *Symbol)) {
	g.symbols.Each(func(A *Symbol) {
		if !A.IsEpsilon() {
			f(A)
		}
	})
}

// Terminals returns the terminals usable as lookahead: every declared
// terminal plus EOL, EPSILON excluded.
func (g *Grammar) Terminals() []*Symbol {
	var T []*Symbol
	for _, A := range g.symbols.Terminals() {
		if !A.IsEpsilon() {
			T = append(T, A)
		}
	}
	return T
}

// NonTerminals returns the non-terminals of g in order of symbol ID.
func (g *Grammar) NonTerminals() []*Symbol {
	return g.symbols.NonTerminals()
}

// Validate checks that the axiom is a non-terminal with at least one
// production and that every non-terminal used in a consequent has
// productions. All problems found are reported in a single error wrapping
// ErrInvalidGrammar.
func (g *Grammar) Validate() error {
	var problems []string
	if g.axiom == "" {
		problems = append(problems, "no axiom set")
	} else if S := g.Axiom(); S == nil {
		problems = append(problems, fmt.Sprintf("axiom %q is not a non-terminal", g.axiom))
	} else if len(g.byLHS[S.ID]) == 0 {
		problems = append(problems, fmt.Sprintf("axiom %q has no productions", g.axiom))
	}
	for _, r := range g.Rules() {
		for _, A := range r.rhs {
			if !A.IsTerminal() && len(g.byLHS[A.ID]) == 0 {
				problems = append(problems,
					fmt.Sprintf("non-terminal %q in rule %d has no productions", A.Name, r.Serial))
			}
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidGrammar, strings.Join(problems, "; "))
	}
	return nil
}

// Dump is a debugging helper, tracing the rules of g.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s ---------------------", g.Name)
	if start := g.StartRule(); start != nil {
		tracer().Debugf("%3d: %v", 0, start)
	}
	for _, r := range g.Rules() {
		tracer().Debugf("%3d: %v", r.Serial, r)
	}
	tracer().Debugf("-----------------------------------")
}
