/*
Package session holds a loaded grammar together with every artifact
derived from it.

A Session starts out empty. Loading a grammar installs it as the current
snapshot; the analysis of the grammar is computed on load, tables are
built when first asked for. Loading is atomic: if a grammar cannot be
loaded, the previous snapshot stays in place.

Queries take symbol names. Names which are not declared in the current
grammar result in empty sets, not in errors. Every query has a traced
variant which narrates the steps of the algorithm to a lr.Narrator.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jose-rZM/PLShell"
	"github.com/jose-rZM/PLShell/lr"
	"github.com/jose-rZM/PLShell/lr/ll1"
	"github.com/jose-rZM/PLShell/lr/loader"
	"github.com/jose-rZM/PLShell/lr/scanner"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'plshell.session'.
func tracer() tracing.Trace {
	return tracing.Select("plshell.session")
}

var (
	// ErrNoGrammar signals a query without a grammar loaded.
	ErrNoGrammar = errors.New("no grammar loaded")
	// ErrBadItem signals item text which does not denote an item of the
	// current grammar.
	ErrBadItem = errors.New("not an item")
)

// Session is a grammar snapshot plus derived engines. The zero value is an
// empty session.
type Session struct {
	g     *lr.Grammar
	ga    *lr.LRAnalysis
	lrgen *lr.TableGenerator
	slr1  bool // tables of lrgen are built
	ll1   *ll1.Table
	lexer *scanner.Lexer
}

// New creates an empty session.
func New() *Session {
	return &Session{}
}

// Load validates g and installs it as the current grammar. Tables derived
// from a previous grammar are discarded. If g is not valid, the session is
// left unchanged.
func (s *Session) Load(g *lr.Grammar) error {
	if g == nil {
		return fmt.Errorf("cannot load nil grammar: %w", lr.ErrInvalidGrammar)
	}
	if err := g.Validate(); err != nil {
		return err
	}
	ga := lr.Analysis(g)
	*s = Session{g: g, ga: ga}
	tracer().Infof("grammar %s installed, %d rules", g.Name, g.RuleCount())
	return nil
}

// LoadFile reads a grammar file and installs its grammar. If the file
// cannot be read or loaded, the session is left unchanged.
func (s *Session) LoadFile(path string) error {
	g, err := loader.LoadFile(path)
	if err != nil {
		return err
	}
	return s.Load(g)
}

// Grammar returns the current grammar, or nil.
func (s *Session) Grammar() *lr.Grammar {
	return s.g
}

// Analysis returns the analysis of the current grammar, or nil.
func (s *Session) Analysis() *lr.LRAnalysis {
	return s.ga
}

func (s *Session) check() error {
	if s.g == nil {
		return ErrNoGrammar
	}
	return nil
}

// symbols looks up a sequence of names. ok is false if any of them is
// not declared.
func (s *Session) symbols(names []string) (syms []*lr.Symbol, ok bool) {
	syms = make([]*lr.Symbol, 0, len(names))
	for _, name := range names {
		A, found := s.g.Symbols().Lookup(name)
		if !found {
			tracer().Debugf("symbol %q not declared", name)
			return nil, false
		}
		syms = append(syms, A)
	}
	return syms, true
}

func (s *Session) empty() *lr.SymbolSet {
	return lr.NewSymbolSet(s.g.Symbols())
}

// Split segments a string of symbol names into declared names, by longest
// match. Every character of raw has to be part of a symbol.
func (s *Session) Split(raw string) ([]string, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	syms, err := s.g.Split(raw)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(syms))
	for i, A := range syms {
		names[i] = A.Name
	}
	return names, nil
}

// === Sets ==================================================================

// First returns FIRST of a sequence of symbols.
func (s *Session) First(sequence []string) (*lr.SymbolSet, error) {
	return s.TraceFirst(sequence, lr.Quiet)
}

// TraceFirst is like First, narrating every step.
func (s *Session) TraceFirst(sequence []string, n lr.Narrator) (*lr.SymbolSet, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	seq, ok := s.symbols(sequence)
	if !ok {
		return s.empty(), nil
	}
	return s.ga.TraceFirstOf(seq, n), nil
}

// Follow returns FOLLOW of a non-terminal.
func (s *Session) Follow(nonTerminal string) (*lr.SymbolSet, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	A, ok := s.g.Symbols().Lookup(nonTerminal)
	if !ok {
		return s.empty(), nil
	}
	return s.ga.Follow(A), nil
}

// TraceFollow is like Follow, narrating how the members of the set are
// found.
func (s *Session) TraceFollow(nonTerminal string, n lr.Narrator) (*lr.SymbolSet, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	A, ok := s.g.Symbols().Lookup(nonTerminal)
	if !ok {
		return s.empty(), nil
	}
	return s.ga.TraceFollow(A, n), nil
}

// PredictionSymbols returns the prediction set of the rule
// antecedent → consequent. The rule need not be part of the grammar.
func (s *Session) PredictionSymbols(antecedent string, consequent []string) (*lr.SymbolSet, error) {
	return s.TracePredictionSymbols(antecedent, consequent, lr.Quiet)
}

// TracePredictionSymbols is like PredictionSymbols, narrating every step.
func (s *Session) TracePredictionSymbols(antecedent string, consequent []string,
	n lr.Narrator) (*lr.SymbolSet, error) {
	//
	if err := s.check(); err != nil {
		return nil, err
	}
	A, ok := s.g.Symbols().Lookup(antecedent)
	if !ok || A.IsTerminal() {
		return s.empty(), nil
	}
	alpha, ok := s.symbols(consequent)
	if !ok {
		return s.empty(), nil
	}
	return s.ga.TracePredictionSymbols(A, alpha, n), nil
}

// === LL(1) =================================================================

// BuildLL1Table returns the LL(1) table of the current grammar and whether
// the grammar is LL(1).
func (s *Session) BuildLL1Table() (*ll1.Table, bool, error) {
	if err := s.check(); err != nil {
		return nil, false, err
	}
	if s.ll1 == nil {
		s.ll1, _ = ll1.Build(s.ga)
	}
	return s.ll1, s.ll1.IsLL1(), nil
}

// TraceLL1Table builds the LL(1) table anew, narrating every entry.
func (s *Session) TraceLL1Table(n lr.Narrator) (*ll1.Table, bool, error) {
	if err := s.check(); err != nil {
		return nil, false, err
	}
	var isLL1 bool
	s.ll1, isLL1 = ll1.BuildTraced(s.ga, n)
	return s.ll1, isLL1, nil
}

// === LR(0) =================================================================

// Closure returns the closure of a set of items.
func (s *Session) Closure(items ...lr.Item) (*lr.ItemSet, error) {
	return s.TraceClosure(lr.Quiet, items...)
}

// TraceClosure is like Closure, narrating every item added.
func (s *Session) TraceClosure(n lr.Narrator, items ...lr.Item) (*lr.ItemSet, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return s.ga.TraceClosure(lr.NewItemSet(items...), n), nil
}

// Goto returns the goto set of an item set for a symbol. The result is
// empty for symbols not declared.
func (s *Session) Goto(items *lr.ItemSet, symbol string) (*lr.ItemSet, error) {
	return s.TraceGoto(items, symbol, lr.Quiet)
}

// TraceGoto is like Goto, narrating the kernel and the closure.
func (s *Session) TraceGoto(items *lr.ItemSet, symbol string, n lr.Narrator) (*lr.ItemSet, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	X, ok := s.g.Symbols().Lookup(symbol)
	if !ok {
		return lr.NewItemSet(), nil
	}
	return s.ga.TraceGoto(items, X, n), nil
}

// CFSM returns the canonical collection of LR(0) item sets of the current
// grammar.
func (s *Session) CFSM() (*lr.CFSM, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return s.generator().CFSM(), nil
}

// AllItems returns the union of all item sets of the canonical collection.
func (s *Session) AllItems() (*lr.ItemSet, error) {
	return s.TraceAllItems(lr.Quiet)
}

// TraceAllItems computes the canonical collection anew, narrating every
// state found, and returns the union of its item sets.
func (s *Session) TraceAllItems(n lr.Narrator) (*lr.ItemSet, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	if n == nil || n == lr.Quiet {
		return s.generator().CFSM().AllItems(), nil
	}
	return s.generator().TraceCFSM(n).AllItems(), nil
}

// SLR1 returns a table generator holding the CFSM and the SLR(1) tables of
// the current grammar, and whether the grammar is SLR(1).
func (s *Session) SLR1() (*lr.TableGenerator, bool, error) {
	if err := s.check(); err != nil {
		return nil, false, err
	}
	lrgen := s.generator()
	if !s.slr1 {
		lrgen.CreateTables()
		s.slr1 = true
	}
	return lrgen, !lrgen.HasConflicts, nil
}

func (s *Session) generator() *lr.TableGenerator {
	if s.lrgen == nil {
		s.lrgen = lr.NewTableGenerator(s.ga)
	}
	return s.lrgen
}

// ParseItem reads an item of the current grammar from text like
//
//    A -> a • B c
//
// The dot may as well be written as '.', if '.' is not a symbol of the
// grammar. Whitespace is optional. The item [A → • EPSILON] may be written
// as "A -> •". The start item is written with the name of the synthetic
// start symbol, e.g. "S' -> • S".
func (s *Session) ParseItem(text string) (lr.Item, error) {
	if err := s.check(); err != nil {
		return lr.Item{}, err
	}
	parts := strings.SplitN(text, "->", 2)
	if len(parts) != 2 {
		return lr.Item{}, fmt.Errorf("%w: missing '->' in %q", ErrBadItem, text)
	}
	lhs := strings.TrimSpace(parts[0])
	dot := "•"
	if !strings.Contains(parts[1], dot) && !s.g.Symbols().Contains(".") {
		dot = "."
	}
	rhs := strings.SplitN(parts[1], dot, 2)
	if len(rhs) != 2 {
		return lr.Item{}, fmt.Errorf("%w: missing dot in %q", ErrBadItem, text)
	}
	prefix, err := s.splitOptional(rhs[0])
	if err != nil {
		return lr.Item{}, err
	}
	suffix, err := s.splitOptional(rhs[1])
	if err != nil {
		return lr.Item{}, err
	}
	for _, r := range s.rulesFor(lhs) {
		if r.IsEpsilon() && len(prefix)+len(suffix) == 0 {
			return lr.NewItem(r, 0)
		}
		if sameSymbols(r.RHS(), append(prefix, suffix...)) {
			return lr.NewItem(r, len(prefix))
		}
	}
	return lr.Item{}, fmt.Errorf("%w: no rule matches %q", ErrBadItem, text)
}

func (s *Session) rulesFor(lhs string) []*lr.Rule {
	if start := s.g.StartRule(); start != nil && start.LHS.Name == lhs {
		return []*lr.Rule{start}
	}
	A, ok := s.g.Symbols().Lookup(lhs)
	if !ok {
		return nil
	}
	return s.g.RulesFor(A)
}

// splitOptional is Split for possibly empty text with blanks, dropping
// EPSILON.
func (s *Session) splitOptional(text string) ([]*lr.Symbol, error) {
	text = strings.Join(strings.Fields(text), "")
	if text == "" {
		return nil, nil
	}
	syms, err := s.g.Split(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadItem, err)
	}
	if len(syms) == 1 && syms[0].IsEpsilon() {
		return nil, nil
	}
	return syms, nil
}

func sameSymbols(a, b []*lr.Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// === Lexer =================================================================

// Lex tokenizes input with the patterns of the terminals of the current
// grammar. Unmatched input is reported to onError and skipped. The token
// sequence ends with EOL.
func (s *Session) Lex(input string, onError func(error)) ([]plshell.Token, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	if s.lexer == nil {
		lx, err := scanner.NewLexer(s.g)
		if err != nil {
			return nil, err
		}
		s.lexer = lx
	}
	return s.lexer.Tokenize(input, onError)
}

// TokenSymbol returns the terminal a token produced by Lex stands for.
func (s *Session) TokenSymbol(token plshell.Token) *lr.Symbol {
	if s.g == nil {
		return nil
	}
	return s.g.Symbols().Symbol(int(token.TokType()))
}
