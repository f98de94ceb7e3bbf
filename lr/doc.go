/*
Package lr implements the grammar model and the static analyses for LL(1)
and LR parsing.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals
carry a pattern, used by package scanner to recognize them in input text.
Grammars may contain epsilon-productions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a").End()     // S  ->  A a
    b.LHS("A").N("B").N("D").End()     // A  ->  B D
    b.LHS("B").T("b").End()            // B  ->  b
    b.LHS("B").Epsilon()               // B  ->
    b.LHS("D").T("d").End()            // D  ->  d
    b.LHS("D").Epsilon()               // D  ->
    g, err := b.Grammar()

This results in the following trivial grammar:

   g.Dump()

   0: S' -> S
   1: S -> A a
   2: A -> B D
   3: B -> b
   4: B -> EPSILON
   5: D -> d
   6: D -> EPSILON

Rule 0 is the augmented start rule. Its antecedent is not part of the
symbol table.

Grammars may as well be assembled from strings, using a symbol table
and Grammar.AddRule, which splits a consequent into symbols by longest
match against the declared names. Package loader reads grammars from text
files this way.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LRAnalysis object, which computes FIRST and
FOLLOW sets for the grammar by iterating to a fixed point.

    ga := lr.Analysis(g)  // analyser for grammar above
    ga.Grammar().EachNonTerminal(func(A *lr.Symbol) {
        fmt.Printf("FIRST(%s) = %v\n", A.Name, ga.First(A))
    })

    // Output:
    FIRST(S) = { a b d }
    FIRST(A) = { EPSILON b d }
    FIRST(B) = { EPSILON b }
    FIRST(D) = { EPSILON d }

Sets print their members in order of symbol ID, with EPSILON always first.
Every analysis has a traced variant (TraceFirstOf, TraceFollow, ...) which
narrates the steps of the algorithm to a Narrator. This is what the shell's
teaching mode shows.

Parser Construction

Using grammar analysis as input, a bottom-up parser can be constructed.
First a characteristic finite state machine (CFSM) is built from the
grammar. The CFSM will then be transformed into a GOTO table (LR(0)-table)
and an ACTION table for a SLR(1) parser. The CFSM will not be thrown away,
but is made available to the client.  This is intended
for debugging purposes. It can be exported to Graphviz's Dot-format.

Example:

    lrgen := lr.NewTableGenerator(ga)  // ga is an LRAnalysis, see above
    lrgen.CreateTables()               // construct LR parser tables
    if lrgen.HasConflicts {
        for _, c := range lrgen.Conflicts() {
            fmt.Println(c)
        }
    }

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'plshell.lr'.
func tracer() tracing.Trace {
	return tracing.Select("plshell.lr")
}
