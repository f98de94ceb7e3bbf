package lr

import (
	"fmt"
)

// Names of the reserved symbols. Both exist in every symbol table without
// being declared.
const (
	Epsilon = "EPSILON" // the empty string
	EOL     = "$"       // end of input
)

// Symbol IDs of the reserved symbols.
const (
	EpsilonID = 0
	EOLID     = 1
)

// SymbolKind tells terminals from non-terminals.
type SymbolKind int8

// Kinds of grammar symbols.
const (
	Terminal SymbolKind = iota
	NonTerminal
)

func (k SymbolKind) String() string {
	if k == Terminal {
		return "TERMINAL"
	}
	return "NON TERMINAL"
}

// Symbol is a grammar symbol. Symbols are interned by a SymbolTable, which
// assigns every symbol a small integer ID. All set computations of this
// package work on IDs.
type Symbol struct {
	Name    string     // name as it appears in grammar rules
	ID      int        // index within the symbol table
	Kind    SymbolKind // terminal or non-terminal
	Pattern string     // recognition pattern of a terminal, opaque to the analysis
}

// IsTerminal returns true for terminals, including EPSILON and EOL.
func (A *Symbol) IsTerminal() bool {
	return A.Kind == Terminal
}

// IsEpsilon returns true if A is the reserved EPSILON symbol.
func (A *Symbol) IsEpsilon() bool {
	return A.ID == EpsilonID && A.Name == Epsilon
}

// IsEOL returns true if A is the reserved end-of-input symbol.
func (A *Symbol) IsEOL() bool {
	return A.ID == EOLID && A.Name == EOL
}

func (A *Symbol) String() string {
	return A.Name
}

// === Symbol Tables =========================================================

// SymbolTable interns terminal and non-terminal symbols. It acts as an arena:
// symbols are looked up by name or by ID and are never removed.
type SymbolTable struct {
	symbols []*Symbol
	index   map[string]int
}

// NewSymbolTable creates a symbol table holding just EPSILON and EOL.
func NewSymbolTable() *SymbolTable {
	st := &SymbolTable{
		symbols: make([]*Symbol, 0, 16),
		index:   make(map[string]int),
	}
	st.insert(Epsilon, Terminal, "")
	st.insert(EOL, Terminal, "")
	return st
}

func (st *SymbolTable) insert(name string, kind SymbolKind, pattern string) *Symbol {
	A := &Symbol{Name: name, ID: len(st.symbols), Kind: kind, Pattern: pattern}
	st.symbols = append(st.symbols, A)
	st.index[name] = A.ID
	return A
}

// DeclareTerminal declares a terminal, together with its recognition pattern.
// Declaring a terminal a second time replaces the pattern. It is an error to
// declare a name which is already known as a non-terminal, or to declare one
// of the reserved symbols.
func (st *SymbolTable) DeclareTerminal(name string, pattern string) (*Symbol, error) {
	return st.declare(name, Terminal, pattern)
}

// DeclareNonTerminal declares a non-terminal. Declaring it a second time is a
// no-op; it is an error if name is already known as a terminal.
func (st *SymbolTable) DeclareNonTerminal(name string) (*Symbol, error) {
	return st.declare(name, NonTerminal, "")
}

func (st *SymbolTable) declare(name string, kind SymbolKind, pattern string) (*Symbol, error) {
	if name == "" {
		return nil, fmt.Errorf("cannot declare symbol with empty name")
	}
	if name == Epsilon || name == EOL {
		return nil, fmt.Errorf("%q is reserved: %w", name, ErrRedeclared)
	}
	if A, ok := st.Lookup(name); ok {
		if A.Kind != kind {
			return nil, fmt.Errorf("%q already declared as %s: %w", name, A.Kind, ErrRedeclared)
		}
		if kind == Terminal {
			A.Pattern = pattern
		}
		return A, nil
	}
	A := st.insert(name, kind, pattern)
	tracer().Debugf("declared %s %q as #%d", kind, name, A.ID)
	return A, nil
}

// Contains checks if a symbol with the given name is known.
func (st *SymbolTable) Contains(name string) bool {
	_, ok := st.index[name]
	return ok
}

// Lookup finds a symbol by name.
func (st *SymbolTable) Lookup(name string) (*Symbol, bool) {
	if id, ok := st.index[name]; ok {
		return st.symbols[id], true
	}
	return nil, false
}

// Symbol returns the symbol with the given ID, or nil.
func (st *SymbolTable) Symbol(id int) *Symbol {
	if id < 0 || id >= len(st.symbols) {
		return nil
	}
	return st.symbols[id]
}

// IsTerminal is true for declared terminals, EPSILON and EOL.
func (st *SymbolTable) IsTerminal(name string) bool {
	A, ok := st.Lookup(name)
	return ok && A.IsTerminal()
}

// IsTerminalExcludingEpsilon is like IsTerminal, but false for EPSILON.
func (st *SymbolTable) IsTerminalExcludingEpsilon(name string) bool {
	return name != Epsilon && st.IsTerminal(name)
}

// IsNonTerminal is true for declared non-terminals.
func (st *SymbolTable) IsNonTerminal(name string) bool {
	A, ok := st.Lookup(name)
	return ok && !A.IsTerminal()
}

// Size returns the number of symbols, including the reserved ones.
func (st *SymbolTable) Size() int {
	return len(st.symbols)
}

// Each calls f for every symbol in order of ID.
func (st *SymbolTable) Each(f func(*Symbol)) {
	for _, A := range st.symbols {
		f(A)
	}
}

// Terminals returns all terminals in order of ID, EPSILON and EOL included.
func (st *SymbolTable) Terminals() []*Symbol {
	return st.filter(Terminal)
}

// NonTerminals returns all non-terminals in order of ID.
func (st *SymbolTable) NonTerminals() []*Symbol {
	return st.filter(NonTerminal)
}

func (st *SymbolTable) filter(kind SymbolKind) []*Symbol {
	r := make([]*Symbol, 0, len(st.symbols))
	for _, A := range st.symbols {
		if A.Kind == kind {
			r = append(r, A)
		}
	}
	return r
}
