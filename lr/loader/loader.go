/*
Package loader reads grammars from text files.

A grammar file consists of a header and a body, separated by a line holding
a single semicolon. The header declares terminals together with their
recognition patterns and names the axiom:

    terminal id [a-zA-Z]+;
    terminal plus \+;
    start with E;
    ;
    E -> E plus T;
    E -> T;
    T -> id;
    T ->;

Body lines are productions. A production without symbols is an
epsilon-production. The body ends with another line holding a single
semicolon, or with the end of input. Every line has to match one of these
forms exactly; the first line which does not fails the load.

Names of symbols are made of letters, digits, underscores and quotes, not
starting with a digit. Within a consequent, whitespace carries no meaning:
the symbols are recognized by longest match against the declared names.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jose-rZM/PLShell/lr"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'plshell.loader'.
func tracer() tracing.Trace {
	return tracing.Select("plshell.loader")
}

// ErrSyntax signals a line of a grammar file which does not match the
// grammar file format.
var ErrSyntax = errors.New("grammar file syntax error")

const ident = `[a-zA-Z_'][a-zA-Z_0-9']*`

var (
	rxTerminal   = regexp.MustCompile(`^\s*terminal\s+(` + ident + `)\s+(.*);\s*$`)
	rxAxiom      = regexp.MustCompile(`^\s*start\s+with\s+(` + ident + `);\s*$`)
	rxEmptyRule  = regexp.MustCompile(`^\s*(` + ident + `)\s*->;\s*$`)
	rxRule       = regexp.MustCompile(`^\s*(` + ident + `)\s*->\s*([a-zA-Z_'][a-zA-Z_0-9\s$']*);\s*$`)
	rxTerminator = regexp.MustCompile(`^;\s*$`)
)

type production struct {
	lhs  string
	body string
	line int
}

type reader struct {
	scanner *bufio.Scanner
	lineno  int
	line    string
	st      *lr.SymbolTable
	axiom   string
	rules   []production
}

// Load reads a grammar from r. It returns the grammar only if the input has
// been read completely, every consequent could be split into declared
// symbols and the grammar is valid. name becomes the name of the grammar.
func Load(name string, r io.Reader) (*lr.Grammar, error) {
	rd := &reader{
		scanner: bufio.NewScanner(r),
		st:      lr.NewSymbolTable(),
	}
	if err := rd.readHeader(); err != nil {
		return nil, err
	}
	if err := rd.readBody(); err != nil {
		return nil, err
	}
	g, err := rd.grammar(name)
	if err != nil {
		return nil, err
	}
	tracer().Infof("loaded grammar %s with %d rules", name, g.RuleCount())
	return g, nil
}

// LoadFile reads a grammar from a file. The grammar is named after the file.
func LoadFile(path string) (*lr.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(filepath.Base(path), f)
}

// next reads the next line; it returns false at the end of input.
func (rd *reader) next() (bool, error) {
	if !rd.scanner.Scan() {
		return false, rd.scanner.Err()
	}
	rd.lineno++
	rd.line = strings.TrimRight(rd.scanner.Text(), "\r")
	return true, nil
}

func (rd *reader) syntaxError(what string) error {
	return fmt.Errorf("%w: line %d: %s: %q", ErrSyntax, rd.lineno, what, rd.line)
}

func (rd *reader) readHeader() error {
	for {
		ok, err := rd.next()
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: unexpected end of input in header", ErrSyntax)
		}
		if rxTerminator.MatchString(rd.line) {
			break
		}
		if m := rxTerminal.FindStringSubmatch(rd.line); m != nil {
			if _, err := rd.st.DeclareTerminal(m[1], m[2]); err != nil {
				return fmt.Errorf("line %d: %w", rd.lineno, err)
			}
			tracer().Debugf("terminal %s = /%s/", m[1], m[2])
		} else if m := rxAxiom.FindStringSubmatch(rd.line); m != nil {
			if rd.axiom != "" {
				return rd.syntaxError("second start line")
			}
			rd.axiom = m[1]
		} else {
			return rd.syntaxError("expected terminal declaration or start line")
		}
	}
	if rd.axiom == "" {
		return fmt.Errorf("%w: header has no start line", ErrSyntax)
	}
	return nil
}

func (rd *reader) readBody() error {
	for {
		ok, err := rd.next()
		if err != nil {
			return err
		}
		if !ok || rxTerminator.MatchString(rd.line) {
			return nil
		}
		if m := rxRule.FindStringSubmatch(rd.line); m != nil {
			body := strings.Join(strings.Fields(m[2]), "")
			rd.rules = append(rd.rules, production{lhs: m[1], body: body, line: rd.lineno})
		} else if m := rxEmptyRule.FindStringSubmatch(rd.line); m != nil {
			rd.rules = append(rd.rules, production{lhs: m[1], body: lr.Epsilon, line: rd.lineno})
		} else {
			return rd.syntaxError("expected production")
		}
	}
}

// grammar declares every antecedent as a non-terminal, then adds the rules
// in order of appearance.
func (rd *reader) grammar(name string) (*lr.Grammar, error) {
	for _, p := range rd.rules {
		if _, err := rd.st.DeclareNonTerminal(p.lhs); err != nil {
			return nil, fmt.Errorf("line %d: %w", p.line, err)
		}
	}
	g := lr.NewGrammar(name, rd.st)
	g.SetAxiom(rd.axiom)
	for _, p := range rd.rules {
		if err := g.AddRule(p.lhs, p.body); err != nil {
			return nil, fmt.Errorf("line %d: %w", p.line, err)
		}
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	g.Dump()
	return g, nil
}
