package lr

import (
	"strings"

	"golang.org/x/tools/container/intsets"
)

// SymbolSet is a set of grammar symbols, used for FIRST, FOLLOW and
// prediction sets. Symbols are stored by ID; iteration order is the order of
// IDs, which makes output deterministic.
//
// A SymbolSet must not be copied by value.
type SymbolSet struct {
	st  *SymbolTable
	ids intsets.Sparse
}

// NewSymbolSet creates an empty set for symbols of st.
func NewSymbolSet(st *SymbolTable) *SymbolSet {
	return &SymbolSet{st: st}
}

// Add inserts a symbol; it returns true if the set changed.
func (S *SymbolSet) Add(A *Symbol) bool {
	return S.ids.Insert(A.ID)
}

// Has checks for a symbol.
func (S *SymbolSet) Has(A *Symbol) bool {
	return A != nil && S.ids.Has(A.ID)
}

// Contains checks for a symbol by name.
func (S *SymbolSet) Contains(name string) bool {
	if S.st == nil {
		return false
	}
	A, ok := S.st.Lookup(name)
	return ok && S.ids.Has(A.ID)
}

// Len returns the number of symbols in S.
func (S *SymbolSet) Len() int {
	return S.ids.Len()
}

// IsEmpty is true for the empty set.
func (S *SymbolSet) IsEmpty() bool {
	return S.ids.IsEmpty()
}

// UnionWith adds all symbols of T to S; it returns true if S changed.
func (S *SymbolSet) UnionWith(T *SymbolSet) bool {
	if T == nil {
		return false
	}
	return S.ids.UnionWith(&T.ids)
}

// Remove deletes a symbol; it returns true if the set changed.
func (S *SymbolSet) Remove(A *Symbol) bool {
	return S.ids.Remove(A.ID)
}

// Equals checks if S and T contain the same symbols.
func (S *SymbolSet) Equals(T *SymbolSet) bool {
	return S.ids.Equals(&T.ids)
}

// Intersects checks if S and T share a symbol.
func (S *SymbolSet) Intersects(T *SymbolSet) bool {
	return S.ids.Intersects(&T.ids)
}

// Copy returns a new set with the symbols of S.
func (S *SymbolSet) Copy() *SymbolSet {
	C := &SymbolSet{st: S.st}
	C.ids.Copy(&S.ids)
	return C
}

// IDs returns the symbol IDs in increasing order.
func (S *SymbolSet) IDs() []int {
	return S.ids.AppendTo(nil)
}

// Symbols returns the members of S in order of ID.
func (S *SymbolSet) Symbols() []*Symbol {
	ids := S.IDs()
	syms := make([]*Symbol, 0, len(ids))
	for _, id := range ids {
		if A := S.st.Symbol(id); A != nil {
			syms = append(syms, A)
		}
	}
	return syms
}

// Names returns the names of the members of S in order of ID.
func (S *SymbolSet) Names() []string {
	syms := S.Symbols()
	names := make([]string, len(syms))
	for i, A := range syms {
		names[i] = A.Name
	}
	return names
}

func (S *SymbolSet) String() string {
	if S.IsEmpty() {
		return "{ }"
	}
	return "{ " + strings.Join(S.Names(), " ") + " }"
}

// --- Helpers ---------------------------------------------------------------

func (S *SymbolSet) hasEpsilon() bool {
	return S.ids.Has(EpsilonID)
}

// withoutEpsilon returns a copy of S without EPSILON.
func (S *SymbolSet) withoutEpsilon() *SymbolSet {
	C := S.Copy()
	C.ids.Remove(EpsilonID)
	return C
}
