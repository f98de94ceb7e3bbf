package lr

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// === LR(0) Items ===========================================================

// Item is an LR(0) item, i.e. a rule with a dot marking parse progress:
//
//    E → E • + T
//
// Items are values. Two items are equal if they are for the same rule (rules
// are unique within a grammar) and have their dot at the same position.
// Items of different grammars must not be mixed.
type Item struct {
	rule *Rule
	dot  int
}

// StartItem returns the item [S' → • S] of the augmented start rule of g.
// It returns the zero Item if g has no valid axiom.
func StartItem(g *Grammar) Item {
	r := g.StartRule()
	if r == nil {
		return Item{}
	}
	return Item{rule: r}
}

// NewItem creates an item for rule r with the dot before position dot.
func NewItem(r *Rule, dot int) (Item, error) {
	if r == nil {
		return Item{}, fmt.Errorf("cannot create item for nil rule")
	}
	if dot < 0 || dot > len(r.rhs) || r.IsEpsilon() && dot > 0 {
		return Item{}, fmt.Errorf("dot position %d out of range for rule %v", dot, r)
	}
	return Item{rule: r, dot: dot}, nil
}

// Rule returns the rule of an item.
func (i Item) Rule() *Rule {
	return i.rule
}

// Dot returns the dot position.
func (i Item) Dot() int {
	return i.dot
}

// PeekSymbol returns the symbol immediately after the dot, or nil if the item
// is complete.
func (i Item) PeekSymbol() *Symbol {
	if i.IsComplete() {
		return nil
	}
	return i.rule.rhs[i.dot]
}

// IsComplete is true if the dot is at the end of the rule. The item of an
// epsilon-production [A → • EPSILON] is complete.
func (i Item) IsComplete() bool {
	return i.rule == nil || i.dot >= len(i.rule.rhs) || i.rule.IsEpsilon()
}

// Advance returns the item with the dot moved over the next symbol. Callers
// have to check IsComplete first; a complete item is returned unchanged.
func (i Item) Advance() Item {
	if i.IsComplete() {
		return i
	}
	return Item{rule: i.rule, dot: i.dot + 1}
}

// Prefix returns the symbols before the dot.
func (i Item) Prefix() []*Symbol {
	if i.rule == nil {
		return nil
	}
	return i.rule.rhs[:i.dot]
}

func (i Item) String() string {
	if i.rule == nil {
		return "[<none>]"
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "[%s ->", i.rule.LHS.Name)
	for n, A := range i.rule.rhs {
		if n == i.dot && !i.rule.IsEpsilon() {
			b.WriteString(" •")
		}
		b.WriteString(" ")
		b.WriteString(A.Name)
	}
	if i.IsComplete() {
		b.WriteString(" •")
	}
	b.WriteString("]")
	return b.String()
}

// itemKey is the structural identity of an item: antecedent, consequent and
// dot position.
type itemKey struct {
	LHS string
	RHS []string
	Dot int
}

func (i Item) key() itemKey {
	return itemKey{LHS: i.rule.LHS.Name, RHS: i.rule.Consequent(), Dot: i.dot}
}

// We need this for item sets. It sorts items by rule serial and dot.
func itemComparator(i1, i2 interface{}) int {
	a, b := i1.(Item), i2.(Item)
	if c := utils.IntComparator(a.rule.Serial, b.rule.Serial); c != 0 {
		return c
	}
	return utils.IntComparator(a.dot, b.dot)
}

// === Item Sets =============================================================

// ItemSet is a set of LR(0) items. Iteration is in order of rule serial,
// then dot position.
type ItemSet struct {
	set *treeset.Set
}

// NewItemSet creates an item set containing items.
func NewItemSet(items ...Item) *ItemSet {
	S := &ItemSet{set: treeset.NewWith(itemComparator)}
	S.Add(items...)
	return S
}

// Add inserts items into S. Items without a rule are ignored.
func (S *ItemSet) Add(items ...Item) {
	for _, i := range items {
		if i.rule != nil {
			S.set.Add(i)
		}
	}
}

// Contains checks for an item.
func (S *ItemSet) Contains(i Item) bool {
	return i.rule != nil && S.set.Contains(i)
}

// Size returns the number of items in S.
func (S *ItemSet) Size() int {
	return S.set.Size()
}

// Empty is true for an empty item set.
func (S *ItemSet) Empty() bool {
	return S.set.Empty()
}

// Items returns the items of S in order.
func (S *ItemSet) Items() []Item {
	vals := S.set.Values()
	items := make([]Item, len(vals))
	for n, x := range vals {
		items[n] = x.(Item)
	}
	return items
}

// Union adds all items of T to S.
func (S *ItemSet) Union(T *ItemSet) {
	S.set.Add(T.set.Values()...)
}

// Copy returns a new item set containing the items of S.
func (S *ItemSet) Copy() *ItemSet {
	C := NewItemSet()
	C.Union(S)
	return C
}

// Equals checks if S and T contain the same items.
func (S *ItemSet) Equals(T *ItemSet) bool {
	if S.Size() != T.Size() {
		return false
	}
	return S.set.Contains(T.set.Values()...)
}

// symbolsAfterDot collects the symbols which appear immediately after a dot.
func (S *ItemSet) symbolsAfterDot(st *SymbolTable) []*Symbol {
	syms := NewSymbolSet(st)
	for _, i := range S.Items() {
		if A := i.PeekSymbol(); A != nil {
			syms.Add(A)
		}
	}
	return syms.Symbols()
}

// fingerprint is a structural hash over the items of S. Equal item sets
// have equal fingerprints.
func (S *ItemSet) fingerprint() (string, error) {
	keys := struct {
		Items []itemKey
	}{
		Items: make([]itemKey, 0, S.Size()),
	}
	for _, i := range S.Items() {
		keys.Items = append(keys.Items, i.key())
	}
	return structhash.Hash(keys, 1)
}

func (S *ItemSet) String() string {
	if S.Empty() {
		return "{ }"
	}
	items := S.Items()
	s := make([]string, len(items))
	for n, i := range items {
		s[n] = i.String()
	}
	return "{ " + strings.Join(s, ", ") + " }"
}

// Dump is a debugging helper.
func (S *ItemSet) Dump() {
	for n, i := range S.Items() {
		tracer().Debugf("[%2d] %v", n+1, i)
	}
}
