package lr

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// Narrator receives a step-by-step narration of the algorithms of this
// package. Every algorithm is implemented once and reports its steps to a
// Narrator; the quiet variants use Quiet, which discards everything.
//
// depth is the nesting level of a step, e.g. the recursion depth of FIRST.
// Functions taking a Narrator treat nil like Quiet.
type Narrator interface {
	Narrate(depth int, format string, args ...interface{})
}

type quietNarrator struct{}

func (quietNarrator) Narrate(int, string, ...interface{}) {}

// Quiet is a Narrator which discards all narration.
var Quiet Narrator = quietNarrator{}

// NarrateTo returns a Narrator writing one indented line per step to w.
func NarrateTo(w io.Writer) Narrator {
	return writerNarrator{w: w}
}

type writerNarrator struct {
	w io.Writer
}

func (n writerNarrator) Narrate(depth int, format string, args ...interface{}) {
	fmt.Fprintf(n.w, "%s%s\n", indent(depth), fmt.Sprintf(format, args...))
}

// NarrateToTracer returns a Narrator which emits steps as Info traces.
func NarrateToTracer(t tracing.Trace) Narrator {
	return traceNarrator{t: t}
}

type traceNarrator struct {
	t tracing.Trace
}

func (n traceNarrator) Narrate(depth int, format string, args ...interface{}) {
	n.t.Infof(indent(depth)+format, args...)
}

func indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat("  ", depth)
}

func orQuiet(n Narrator) Narrator {
	if n == nil {
		return Quiet
	}
	return n
}

func isQuiet(n Narrator) bool {
	_, ok := n.(quietNarrator)
	return n == nil || ok
}

func symString(seq []*Symbol) string {
	if len(seq) == 0 {
		return Epsilon
	}
	names := make([]string, len(seq))
	for i, A := range seq {
		names[i] = A.Name
	}
	return strings.Join(names, " ")
}
