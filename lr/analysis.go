package lr

// LRAnalysis is an analyser for a grammar. It computes FIRST and FOLLOW
// sets for every non-terminal. Create one with Analysis(g).
//
// The sets are computed once, for the grammar as it is at the time of the
// call. A grammar must not be changed after it has been analysed; create a
// new grammar and a new analysis instead.
type LRAnalysis struct {
	g            *Grammar
	first        map[int]*SymbolSet // FIRST per non-terminal ID
	follow       map[int]*SymbolSet // FOLLOW per non-terminal ID
	firstPasses  int
	followPasses int
}

// Analysis creates an analyser for grammar g and computes FIRST and FOLLOW
// sets.
func Analysis(g *Grammar) *LRAnalysis {
	return TraceAnalysis(g, Quiet)
}

// TraceAnalysis is like Analysis, but narrates the fixed-point passes.
func TraceAnalysis(g *Grammar, n Narrator) *LRAnalysis {
	n = orQuiet(n)
	ga := &LRAnalysis{g: g}
	ga.computeFirstSets(n)
	ga.computeFollowSets(n, nil)
	return ga
}

// Grammar returns the grammar this analysis is for.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// FirstPasses returns the number of passes the FIRST fixed point needed,
// including the final pass which did not change anything.
func (ga *LRAnalysis) FirstPasses() int {
	return ga.firstPasses
}

// FollowPasses returns the number of passes the FOLLOW fixed point needed,
// including the final pass which did not change anything.
func (ga *LRAnalysis) FollowPasses() int {
	return ga.followPasses
}

// === FIRST =================================================================

// First returns FIRST(A) for a non-terminal A, { A } for a terminal
// and the empty set for nil or symbols unknown to the grammar.
func (ga *LRAnalysis) First(A *Symbol) *SymbolSet {
	S := NewSymbolSet(ga.g.symbols)
	if A == nil {
		return S
	}
	if A.IsTerminal() {
		S.Add(A)
		return S
	}
	if F, ok := ga.first[A.ID]; ok {
		return F.Copy()
	}
	return S
}

// FirstOf returns FIRST of a sequence of symbols.
func (ga *LRAnalysis) FirstOf(seq []*Symbol) *SymbolSet {
	return ga.firstOf(seq, Quiet, 0)
}

// TraceFirstOf is like FirstOf, narrating every step.
func (ga *LRAnalysis) TraceFirstOf(seq []*Symbol, n Narrator) *SymbolSet {
	n = orQuiet(n)
	n.Narrate(0, "Process of finding First(%s):", symString(seq))
	S := ga.firstOf(seq, n, 1)
	n.Narrate(0, "Final First set: %v", S)
	return S
}

// firstOf computes FIRST of a sequence from the FIRST sets of non-terminals
// as currently stored in ga.first.
func (ga *LRAnalysis) firstOf(seq []*Symbol, n Narrator, depth int) *SymbolSet {
	S := NewSymbolSet(ga.g.symbols)
	if len(seq) == 0 || len(seq) == 1 && seq[0].IsEpsilon() {
		n.Narrate(depth, "- String %s derives the empty string: { %s }", symString(seq), Epsilon)
		S.ids.Insert(EpsilonID)
		return S
	}
	A := seq[0]
	if A.IsEpsilon() {
		n.Narrate(depth, "- Skipping %s, followed by %s", Epsilon, symString(seq[1:]))
		return ga.firstOf(seq[1:], n, depth)
	}
	if A.IsTerminal() {
		if A.IsEOL() {
			// the axiom is nullable: end of input stands for the empty string
			n.Narrate(depth, "- Found %s: the string may be empty, { %s }", EOL, Epsilon)
			S.ids.Insert(EpsilonID)
			return S
		}
		n.Narrate(depth, "- Found terminal %s: { %s }", A, A)
		S.Add(A)
		return S
	}
	F, ok := ga.first[A.ID]
	if !ok {
		n.Narrate(depth, "- %s has no FIRST set", A)
		return S
	}
	n.Narrate(depth, "- Non-terminal %s with FIRST(%s) = %v", A, A, F)
	S.UnionWith(F.withoutEpsilon())
	if F.hasEpsilon() {
		n.Narrate(depth, "  %s is nullable, deriving remaining symbols %s", A, symString(seq[1:]))
		S.UnionWith(ga.firstOf(seq[1:], n, depth+1))
	}
	if !isQuiet(n) {
		n.Narrate(depth, "  Current First set: %v", S)
	}
	return S
}

// TraceFirstSets recomputes the FIRST sets of all non-terminals, narrating
// every pass of the fixed point. It does not alter ga.
func (ga *LRAnalysis) TraceFirstSets(n Narrator) {
	n = orQuiet(n)
	scratch := &LRAnalysis{g: ga.g}
	scratch.computeFirstSets(n)
}

// computeFirstSets iterates FIRST(A) ⊇ First(α) for all rules A → α until a
// pass does not change any set. Every pass reads the sets as they were at the
// start of the pass and writes to a copy, so the outcome does not depend on
// the order of rules.
func (ga *LRAnalysis) computeFirstSets(n Narrator) {
	current := make(map[int]*SymbolSet)
	ga.g.EachNonTerminal(func(A *Symbol) {
		current[A.ID] = NewSymbolSet(ga.g.symbols)
	})
	ga.first = current
	n.Narrate(0, "Computing FIRST sets, starting with FIRST(A) = { } for every non-terminal A")
	for pass := 1; ; pass++ {
		next := copySets(current)
		for _, r := range ga.g.Rules() {
			F := ga.firstOf(r.rhs, Quiet, 0)
			if F.ids.Remove(EOLID) {
				F.ids.Insert(EpsilonID)
			}
			if next[r.LHS.ID].UnionWith(F) {
				n.Narrate(1, "pass %d: rule %v adds %v, FIRST(%s) = %v", pass, r, F, r.LHS, next[r.LHS.ID])
			}
		}
		changed := !equalSets(current, next)
		ga.first, current = next, next
		ga.firstPasses = pass
		if !changed {
			n.Narrate(0, "pass %d did not change any set, done", pass)
			break
		}
	}
	tracer().Debugf("FIRST sets complete after %d passes", ga.firstPasses)
}

// === FOLLOW ================================================================

// Follow returns FOLLOW(A), or the empty set if A is not a non-terminal
// of the grammar.
func (ga *LRAnalysis) Follow(A *Symbol) *SymbolSet {
	if A != nil {
		if F, ok := ga.follow[A.ID]; ok && !A.IsTerminal() {
			return F.Copy()
		}
	}
	return NewSymbolSet(ga.g.symbols)
}

// TraceFollow recomputes FOLLOW(A), narrating how its members are
// contributed. It does not alter ga.
func (ga *LRAnalysis) TraceFollow(A *Symbol, n Narrator) *SymbolSet {
	n = orQuiet(n)
	if A == nil || A.IsTerminal() {
		return NewSymbolSet(ga.g.symbols)
	}
	n.Narrate(0, "Process of finding Follow symbols of %s:", A)
	rules := ga.g.FilterRulesByConsequent(A.Name)
	if len(rules) == 0 {
		n.Narrate(1, "%s does not appear in any consequent", A)
	} else {
		n.Narrate(1, "%s appears in the consequent of:", A)
		for _, r := range rules {
			n.Narrate(2, "%v", r)
		}
	}
	scratch := &LRAnalysis{g: ga.g, first: ga.first}
	scratch.computeFollowSets(n, A)
	F := scratch.Follow(A)
	n.Narrate(0, "Final Follow(%s) = %v", A, F)
	return F
}

// TraceFollowSets recomputes the FOLLOW sets of all non-terminals, narrating
// every pass of the fixed point. It does not alter ga.
func (ga *LRAnalysis) TraceFollowSets(n Narrator) {
	n = orQuiet(n)
	scratch := &LRAnalysis{g: ga.g, first: ga.first}
	scratch.computeFollowSets(n, nil)
}

// computeFollowSets requires FIRST sets to be complete. If focus is not nil,
// only contributions to FOLLOW(focus) will be narrated.
func (ga *LRAnalysis) computeFollowSets(n Narrator, focus *Symbol) {
	tell := func(B *Symbol) bool {
		return focus == nil || focus == B
	}
	current := make(map[int]*SymbolSet)
	ga.g.EachNonTerminal(func(A *Symbol) {
		current[A.ID] = NewSymbolSet(ga.g.symbols)
	})
	if S := ga.g.Axiom(); S != nil {
		current[S.ID].Add(ga.g.symbols.Symbol(EOLID))
		if tell(S) {
			n.Narrate(1, "%s is the axiom, FOLLOW(%s) ⊇ { %s }", S, S, EOL)
		}
	}
	for pass := 1; ; pass++ {
		next := copySets(current)
		for _, r := range ga.g.Rules() {
			for i, B := range r.rhs {
				if B.IsTerminal() {
					continue
				}
				rest := r.rhs[i+1:]
				var F *SymbolSet
				if len(rest) == 0 {
					F = NewSymbolSet(ga.g.symbols)
					F.ids.Insert(EpsilonID)
				} else {
					F = ga.firstOf(rest, Quiet, 0)
				}
				if next[B.ID].UnionWith(F.withoutEpsilon()) && tell(B) {
					n.Narrate(1, "pass %d: in %v, add First(%s) \\ { %s } = %v to FOLLOW(%s)",
						pass, r, symString(rest), Epsilon, F.withoutEpsilon(), B)
				}
				if F.hasEpsilon() {
					if next[B.ID].UnionWith(current[r.LHS.ID]) && tell(B) {
						if len(rest) == 0 {
							n.Narrate(1, "pass %d: in %v, %s is at the end, add FOLLOW(%s) = %v to FOLLOW(%s)",
								pass, r, B, r.LHS, current[r.LHS.ID], B)
						} else {
							n.Narrate(1, "pass %d: in %v, %s ∈ First(%s), add FOLLOW(%s) = %v to FOLLOW(%s)",
								pass, r, Epsilon, symString(rest), r.LHS, current[r.LHS.ID], B)
						}
					}
				}
			}
		}
		changed := !equalSets(current, next)
		ga.follow, current = next, next
		ga.followPasses = pass
		if !changed {
			break
		}
	}
	tracer().Debugf("FOLLOW sets complete after %d passes", ga.followPasses)
}

// === Prediction symbols ====================================================

// PredictionSymbols returns the LL(1) selection set of rule A → α:
// First(α) if α is not nullable, else First(α) \ { EPSILON } ∪ FOLLOW(A).
func (ga *LRAnalysis) PredictionSymbols(A *Symbol, alpha []*Symbol) *SymbolSet {
	return ga.predictionSymbols(A, alpha, Quiet)
}

// TracePredictionSymbols is like PredictionSymbols, narrating every step.
func (ga *LRAnalysis) TracePredictionSymbols(A *Symbol, alpha []*Symbol, n Narrator) *SymbolSet {
	n = orQuiet(n)
	return ga.predictionSymbols(A, alpha, n)
}

func (ga *LRAnalysis) predictionSymbols(A *Symbol, alpha []*Symbol, n Narrator) *SymbolSet {
	n.Narrate(0, "Process of finding prediction symbols for the rule %s -> %s:", A, symString(alpha))
	F := ga.firstOf(alpha, Quiet, 0)
	n.Narrate(1, "1. First(%s) = %v", symString(alpha), F)
	if !F.hasEpsilon() {
		n.Narrate(1, "2. %s ∉ First(%s), prediction symbols are %v", Epsilon, symString(alpha), F)
		return F
	}
	P := F.withoutEpsilon()
	follow := ga.Follow(A)
	n.Narrate(1, "2. %s ∈ First(%s), add FOLLOW(%s) = %v", Epsilon, symString(alpha), A, follow)
	P.UnionWith(follow)
	n.Narrate(1, "3. Prediction symbols are %v", P)
	return P
}

// --- Helpers ---------------------------------------------------------------

func copySets(m map[int]*SymbolSet) map[int]*SymbolSet {
	c := make(map[int]*SymbolSet, len(m))
	for k, S := range m {
		c[k] = S.Copy()
	}
	return c
}

func equalSets(m1, m2 map[int]*SymbolSet) bool {
	if len(m1) != len(m2) {
		return false
	}
	for k, S := range m1 {
		T, ok := m2[k]
		if !ok || !S.Equals(T) {
			return false
		}
	}
	return true
}
