/*
Command plshell is an interactive shell for exploring context-free grammars.

Users load a grammar from a file and then ask for FIRST and FOLLOW sets,
prediction symbols, the LL(1) table, closures and goto sets of LR(0)
items, the canonical collection and the SLR(1) tables. In teaching mode
every answer comes with a narration of the steps of the algorithm.

Usage:

    plshell [flags] [grammar-file]
    plshell check grammar-file

Type 'help' at the prompt for a list of commands.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'plshell.shell'
func tracer() tracing.Trace {
	return tracing.Select("plshell.shell")
}

// traceKeys are the keys of all packages of this module.
var traceKeys = []string{
	"plshell.shell",
	"plshell.session",
	"plshell.lr",
	"plshell.ll1",
	"plshell.loader",
	"plshell.scanner",
}
