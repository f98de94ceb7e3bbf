/*
Package plshell is a toolbox for exploring context-free grammars.

PLShell computes the sets and tables a parser generator needs and lets
users inspect them interactively. Package structure is as follows:

■ lr: Package lr implements the grammar model, FIRST/FOLLOW analysis, LR(0)
items with closure and goto, the characteristic finite state machine and
SLR(1) tables. Sub-packages provide LL(1) tables (ll1), a grammar file
loader (loader), a lexer for terminal patterns (scanner) and sparse table
storage (sparse).

■ session: Package session holds one loaded grammar together with every
artifact derived from it.

■ cmd/plshell: The interactive shell.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package plshell
