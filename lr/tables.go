package lr

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/jose-rZM/PLShell/lr/sparse"
)

// https://stackoverflow.com/questions/12968048/what-is-the-closure-of-a-left-recursive-lr0-item-with-epsilon-transitions
// https://www.cs.bgu.ac.il/~comp151/wiki.files/ps6.html#sec-2-7-3

// Actions for parser action tables. Reduce actions are encoded as the serial
// number of the rule to reduce, which is always > 0.
const (
	ShiftAction  = -1
	AcceptAction = -2
)

// === Closure and Goto-Set Operations =======================================

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.2.1 LR(0) Parsing

// Closure computes the closure of an item set: for every item with a
// non-terminal B after the dot, the items [B → • γ] of all B-rules are
// added, until nothing changes. S is not modified.
func (ga *LRAnalysis) Closure(S *ItemSet) *ItemSet {
	return ga.closure(S, Quiet)
}

// TraceClosure is like Closure, narrating every item added.
func (ga *LRAnalysis) TraceClosure(S *ItemSet, n Narrator) *ItemSet {
	n = orQuiet(n)
	n.Narrate(0, "Closure of %v:", S)
	C := ga.closure(S, n)
	n.Narrate(0, "Final closure: %v", C)
	return C
}

func (ga *LRAnalysis) closure(S *ItemSet, n Narrator) *ItemSet {
	C := S.Copy() // add start items to closure
	work := S.Items()
	for len(work) > 0 {
		item := work[0]
		work = work[1:]
		B := item.PeekSymbol() // get symbol B after dot
		if B == nil || B.IsTerminal() {
			continue
		}
		for _, r := range ga.g.RulesFor(B) {
			i := Item{rule: r}
			if C.Contains(i) {
				continue
			}
			n.Narrate(1, "%v has %s after the dot, adding %v", item, B.Name, i)
			C.Add(i)
			work = append(work, i)
		}
	}
	return C
}

// Goto computes the closure of the items of S which have X after the dot,
// with the dot moved over X. The result is empty if no item of S has X
// after the dot.
func (ga *LRAnalysis) Goto(S *ItemSet, X *Symbol) *ItemSet {
	return ga.gotoSet(S, X, Quiet)
}

// TraceGoto is like Goto, narrating the kernel and the closure.
func (ga *LRAnalysis) TraceGoto(S *ItemSet, X *Symbol, n Narrator) *ItemSet {
	n = orQuiet(n)
	if X == nil {
		return NewItemSet()
	}
	n.Narrate(0, "Goto(%v, %s):", S, X.Name)
	G := ga.gotoSet(S, X, n)
	n.Narrate(0, "Final goto set: %v", G)
	return G
}

func (ga *LRAnalysis) gotoSet(S *ItemSet, X *Symbol, n Narrator) *ItemSet {
	// for every item in S
	// if item in S:  N -> ... *X ...
	//     advance N -> ... X * ...
	kernel := NewItemSet()
	if X == nil {
		return kernel
	}
	for _, i := range S.Items() {
		if i.PeekSymbol() == X {
			ii := i.Advance()
			n.Narrate(1, "%v advances over %s to %v", i, X.Name, ii)
			kernel.Add(ii)
		}
	}
	if kernel.Empty() {
		return kernel
	}
	return ga.closure(kernel, n)
}

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     int      // serial ID of this state
	items  *ItemSet // configuration items within this state
	Accept bool     // is this an accepting state?
}

// CFSM edge between 2 states, directed and labeled with a grammar symbol
type cfsmEdge struct {
	from  *CFSMState
	to    *CFSMState
	label *Symbol
}

// Items returns the item set of a state. Clients must not modify it.
func (s *CFSMState) Items() *ItemSet {
	return s.items
}

// Dump is a debugging helper
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	s.items.Dump()
	tracer().Debugf("-------------------------")
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

func (s *CFSMState) containsCompletedStartRule() bool {
	for _, i := range s.items.Items() {
		if i.rule.Serial == 0 && i.IsComplete() {
			return true
		}
	}
	return false
}

// We need this for the set of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(c1.ID, c2.ID)
}

// CFSM is the characteristic finite state machine for a LR grammar, i.e. the
// LR(0) state diagram. Its states form the canonical collection of LR(0)
// item sets. Will be constructed by a TableGenerator.
type CFSM struct {
	g       *Grammar                // this CFSM is for Grammar g
	states  *treeset.Set            // all the states
	edges   *arraylist.List         // all the edges between states
	index   map[string][]*CFSMState // states by item set fingerprint
	S0      *CFSMState              // start state
	cfsmIds int                     // serial IDs for CFSM states
}

// create an empty (initial) CFSM automata.
func emptyCFSM(g *Grammar) *CFSM {
	return &CFSM{
		g:      g,
		states: treeset.NewWith(stateComparator),
		edges:  arraylist.New(),
		index:  make(map[string][]*CFSMState),
	}
}

// Add a state to the CFSM. Checks first if state is present; returns
// true if a new state has been created.
func (c *CFSM) addState(iset *ItemSet) (*CFSMState, bool) {
	s, fp := c.findStateByItems(iset)
	if s != nil {
		return s, false
	}
	s = &CFSMState{ID: c.cfsmIds, items: iset}
	c.cfsmIds++
	s.Accept = s.containsCompletedStartRule()
	c.states.Add(s)
	c.index[fp] = append(c.index[fp], s)
	return s, true
}

// Find a CFSM state by the contained item set.
func (c *CFSM) findStateByItems(iset *ItemSet) (*CFSMState, string) {
	fp, err := iset.fingerprint()
	if err != nil { // all states end up in one bucket
		tracer().Errorf("cannot fingerprint item set: %v", err)
		fp = ""
	}
	for _, s := range c.index[fp] {
		if s.items.Equals(iset) {
			return s, fp
		}
	}
	return nil, fp
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym *Symbol) *cfsmEdge {
	e := &cfsmEdge{from: s0, to: s1, label: sym}
	c.edges.Add(e)
	return e
}

func (c *CFSM) eachEdge(f func(e *cfsmEdge)) {
	it := c.edges.Iterator()
	for it.Next() {
		f(it.Value().(*cfsmEdge))
	}
}

// Grammar returns the grammar of this CFSM.
func (c *CFSM) Grammar() *Grammar {
	return c.g
}

// States returns all states, ordered by ID.
func (c *CFSM) States() []*CFSMState {
	vals := c.states.Values()
	states := make([]*CFSMState, len(vals))
	for i, x := range vals {
		states[i] = x.(*CFSMState)
	}
	return states
}

// State returns the state with a given ID, or nil.
func (c *CFSM) State(id int) *CFSMState {
	if id < 0 || id >= c.cfsmIds {
		return nil
	}
	return c.States()[id]
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return c.states.Size()
}

// Transition returns the target of the edge leaving s labeled with A, or nil.
func (c *CFSM) Transition(s *CFSMState, A *Symbol) *CFSMState {
	var target *CFSMState
	c.eachEdge(func(e *cfsmEdge) {
		if e.from == s && e.label == A {
			target = e.to
		}
	})
	return target
}

// AllItems returns the union of the item sets of all states.
func (c *CFSM) AllItems() *ItemSet {
	all := NewItemSet()
	for _, s := range c.States() {
		all.Union(s.items)
	}
	return all
}

// Dump is a debugging helper
func (c *CFSM) Dump() {
	for _, s := range c.States() {
		s.Dump()
	}
	c.eachEdge(func(e *cfsmEdge) {
		tracer().Debugf("s%03d --%s--> s%03d", e.from.ID, e.label.Name, e.to.ID)
	})
}

// ToGraphViz exports a CFSM in Graphviz Dot format.
func (c *CFSM) ToGraphViz(w io.Writer) error {
	var b bytes.Buffer
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.States() {
		fmt.Fprintf(&b, "s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s.items))
	}
	c.eachEdge(func(e *cfsmEdge) {
		fmt.Fprintf(&b, "s%03d -> s%03d [label=\"%s\"]\n", e.from.ID, e.to.ID,
			escapeDot(e.label.Name))
	})
	b.WriteString("}\n")
	_, err := w.Write(b.Bytes())
	return err
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

func forGraphviz(S *ItemSet) string {
	items := S.Items()
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = escapeDot(item.String())
	}
	return strings.Join(lines, "\\l") + "\\l"
}

var dotEscaper = strings.NewReplacer(`"`, `\"`, `<`, `\<`, `>`, `\>`,
	`{`, `\{`, `}`, `\}`, `|`, `\|`)

func escapeDot(s string) string {
	return dotEscaper.Replace(s)
}

// === Table Generator =======================================================

// TableGenerator is a generator object to construct LR parser tables.
// Clients usually create a Grammar G, then a LRAnalysis-object for G,
// and then a table generator. TableGenerator.CreateTables() constructs
// the CFSM and parser tables for an SLR(1) parser recognizing grammar G.
type TableGenerator struct {
	g            *Grammar
	ga           *LRAnalysis
	dfa          *CFSM
	gototable    *Table
	actiontable  *Table
	conflicts    []Conflict
	HasConflicts bool
	depthFirst   bool
}

// GeneratorOption configures a TableGenerator.
type GeneratorOption func(*TableGenerator)

// DepthFirst makes the CFSM construction process new states last-in
// first-out. The resulting automaton is the same up to renaming of states.
func DepthFirst() GeneratorOption {
	return func(lrgen *TableGenerator) {
		lrgen.depthFirst = true
	}
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *LRAnalysis, opts ...GeneratorOption) *TableGenerator {
	lrgen := &TableGenerator{}
	lrgen.g = ga.Grammar()
	lrgen.ga = ga
	for _, opt := range opts {
		opt(lrgen)
	}
	return lrgen
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// The CFSM will be created, if it has not been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = lrgen.buildCFSM(Quiet)
	}
	return lrgen.dfa
}

// TraceCFSM constructs the CFSM anew, narrating every state created.
func (lrgen *TableGenerator) TraceCFSM(n Narrator) *CFSM {
	n = orQuiet(n)
	lrgen.dfa = lrgen.buildCFSM(n)
	return lrgen.dfa
}

// GotoTable returns the GOTO table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously.
func (lrgen *TableGenerator) GotoTable() *Table {
	if lrgen.gototable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.gototable
}

// ActionTable returns the ACTION table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously.
func (lrgen *TableGenerator) ActionTable() *Table {
	if lrgen.actiontable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.actiontable
}

// CreateTables creates the necessary data structures for an SLR parser.
func (lrgen *TableGenerator) CreateTables() {
	lrgen.CFSM()
	lrgen.gototable = lrgen.BuildGotoTable()
	lrgen.actiontable, lrgen.HasConflicts = lrgen.BuildSLR1ActionTable()
}

// Conflicts returns the ACTION table cells holding more than one action.
// Clients have to call CreateTables() first.
func (lrgen *TableGenerator) Conflicts() []Conflict {
	return lrgen.conflicts
}

// AcceptingStates returns the IDs of all states of the CFSM containing the
// completed start item [S' → S •].
func (lrgen *TableGenerator) AcceptingStates() []int {
	acc := make([]int, 0, 1)
	for _, s := range lrgen.CFSM().States() {
		if s.Accept {
			acc = append(acc, s.ID)
		}
	}
	return acc
}

// Construct the characteristic finite state machine CFSM for a grammar.
func (lrgen *TableGenerator) buildCFSM(n Narrator) *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	G := lrgen.g
	cfsm := emptyCFSM(G)
	start := StartItem(G)
	if start.rule == nil {
		tracer().Errorf("grammar %s has no start rule, CFSM is empty", G.Name)
		return cfsm
	}
	closure0 := lrgen.ga.closure(NewItemSet(start), n)
	cfsm.S0, _ = cfsm.addState(closure0)
	n.Narrate(0, "I%d = %v", cfsm.S0.ID, closure0)
	work := []*CFSMState{cfsm.S0}
	for len(work) > 0 {
		var s *CFSMState
		if lrgen.depthFirst {
			s, work = work[len(work)-1], work[:len(work)-1]
		} else {
			s, work = work[0], work[1:]
		}
		for _, A := range s.items.symbolsAfterDot(G.symbols) {
			gotoset := lrgen.ga.gotoSet(s.items, A, Quiet)
			snew, isNew := cfsm.addState(gotoset)
			if isNew {
				n.Narrate(0, "I%d = goto(I%d, %s) = %v", snew.ID, s.ID, A.Name, gotoset)
				work = append(work, snew)
			} else {
				n.Narrate(1, "goto(I%d, %s) = I%d", s.ID, A.Name, snew.ID)
			}
			cfsm.addEdge(s, snew, A)
		}
	}
	tracer().Debugf("CFSM for %s has %d states", G.Name, cfsm.Size())
	return cfsm
}

// ===========================================================================

// BuildGotoTable builds the GOTO table (state × symbol → state). This is
// normally not called directly, but rather via CreateTables().
func (lrgen *TableGenerator) BuildGotoTable() *Table {
	dfa := lrgen.CFSM()
	gototable := newTable(lrgen.g.symbols, dfa.Size())
	tracer().Infof("GOTO table of size %d x %d", dfa.Size(), lrgen.g.symbols.Size())
	dfa.eachEdge(func(e *cfsmEdge) {
		gototable.set(e.from.ID, e.label, int32(e.to.ID))
	})
	return gototable
}

// BuildSLR1ActionTable constructs the SLR(1) Action table. This method is normally not called
// by clients, but rather via CreateTables(). It builds an action table including
// lookahead (using the FOLLOW-set created by the grammar analyzer).
//
// For every state and every item in it: if the item has a terminal immediately
// after the dot, we produce a shift entry. The completed start item produces
// an accept entry for EOL. Any other complete item [A → α •] produces a
// reduce entry for the rule for each terminal from FOLLOW(A).
//
// Every cell keeps all of its actions, thus allowing for shift/reduce- or
// reduce/reduce-conflicts. A second shift for the same terminal is not an
// additional action.
func (lrgen *TableGenerator) BuildSLR1ActionTable() (*Table, bool) {
	dfa := lrgen.CFSM()
	eol, _ := lrgen.g.symbols.Lookup(EOL)
	actions := newTable(lrgen.g.symbols, dfa.Size())
	tracer().Infof("ACTION table of size %d x %d", dfa.Size(), lrgen.g.symbols.Size())
	for _, state := range dfa.States() {
		tracer().Debugf("--- state %d --------------------------------", state.ID)
		for _, i := range state.items.Items() {
			A := i.PeekSymbol()
			switch {
			case A != nil && A.IsTerminal(): // create a shift entry
				actions.add(state.ID, A, ShiftAction)
				tracer().Debugf("    shift on %s", A.Name)
			case A != nil: // non-terminal, handled by GOTO table
			case i.rule.Serial == 0:
				actions.add(state.ID, eol, AcceptAction)
				tracer().Debugf("    accept on %s", EOL)
			default: // we are at the end of a rule
				lookaheads := lrgen.ga.Follow(i.rule.LHS)
				tracer().Debugf("    Follow(%v) = %v", i.rule.LHS, lookaheads)
				for _, la := range lookaheads.Symbols() {
					actions.add(state.ID, la, int32(i.rule.Serial))
					tracer().Debugf("    reduce_%d on %s", i.rule.Serial, la.Name)
				}
			}
		}
	}
	lrgen.conflicts = lrgen.conflicts[:0]
	actions.matrix.Each(func(s, j int, values []int32) {
		if len(values) > 1 {
			c := Conflict{
				State:     s,
				Lookahead: lrgen.g.symbols.Symbol(j),
				Actions:   append([]int32(nil), values...),
			}
			tracer().Infof("conflict in state %d on %s: %s", s, c.Lookahead.Name, c.actionsString())
			lrgen.conflicts = append(lrgen.conflicts, c)
		}
	})
	return actions, len(lrgen.conflicts) > 0
}

// Conflict is an ACTION table cell with more than one action.
type Conflict struct {
	State     int
	Lookahead *Symbol
	Actions   []int32
}

// IsShiftReduce is true if one of the actions is a shift.
func (c Conflict) IsShiftReduce() bool {
	for _, a := range c.Actions {
		if a == ShiftAction {
			return true
		}
	}
	return false
}

func (c Conflict) actionsString() string {
	s := make([]string, len(c.Actions))
	for i, a := range c.Actions {
		s[i] = ActionString(a)
	}
	return strings.Join(s, "/")
}

func (c Conflict) String() string {
	return fmt.Sprintf("state %d, lookahead %s: %s", c.State, c.Lookahead.Name, c.actionsString())
}

// ActionString is a short helper to stringify an action table entry.
func ActionString(v int32) string {
	switch {
	case v == AcceptAction:
		return "<accept>"
	case v == ShiftAction:
		return "<shift>"
	case v > 0:
		return fmt.Sprintf("<reduce %d>", v)
	}
	return "<none>"
}

// === Tables ================================================================

// Table is a parser table with one row per CFSM state and one column per
// grammar symbol, indexed by symbol ID. Every cell may hold more than one
// value.
type Table struct {
	matrix *sparse.IntMatrix
	st     *SymbolTable
}

func newTable(st *SymbolTable, rows int) *Table {
	return &Table{
		matrix: sparse.NewIntMatrix(rows, st.Size(), sparse.DefaultNullValue),
		st:     st,
	}
}

func (t *Table) add(state int, A *Symbol, val int32) {
	if A == nil || A.ID < 0 {
		panic(fmt.Sprintf("lr.Table.add() for symbol %v without a column", A))
	}
	t.matrix.Add(state, A.ID, val)
}

func (t *Table) set(state int, A *Symbol, val int32) {
	if A == nil || A.ID < 0 {
		panic(fmt.Sprintf("lr.Table.set() for symbol %v without a column", A))
	}
	t.matrix.Set(state, A.ID, val)
}

// NullValue is the value of empty cells.
func (t *Table) NullValue() int32 {
	return t.matrix.NullValue()
}

// Rows returns the number of rows, i.e. the number of CFSM states.
func (t *Table) Rows() int {
	return t.matrix.M()
}

// Value returns the first value of cell (state, A), or NullValue.
func (t *Table) Value(state int, A *Symbol) int32 {
	if A == nil || A.ID < 0 || A.ID >= t.matrix.N() || state < 0 || state >= t.matrix.M() {
		return t.matrix.NullValue()
	}
	return t.matrix.Value(state, A.ID)
}

// Values returns all values of cell (state, A), in order of insertion.
func (t *Table) Values(state int, A *Symbol) []int32 {
	if A == nil || A.ID < 0 || A.ID >= t.matrix.N() || state < 0 || state >= t.matrix.M() {
		return nil
	}
	return t.matrix.Values(state, A.ID)
}

// Each calls f for every non-empty cell, ordered by state, then by symbol ID.
func (t *Table) Each(f func(state int, A *Symbol, values []int32)) {
	t.matrix.Each(func(i, j int, values []int32) {
		f(i, t.st.Symbol(j), values)
	})
}
