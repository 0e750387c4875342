package errors

import (
	"fmt"
	"strings"

	"github.com/pontaoski/she/types"
)

type Kind int

const (
	IllegalCharacter Kind = iota + 1
	ExpectedCharacter
	InvalidSyntax
	Runtime
	ResourceExhausted
)

func (k Kind) String() string {
	data := map[Kind]string{
		IllegalCharacter:  "Illegal Character",
		ExpectedCharacter: "Expected Character",
		InvalidSyntax:     "Invalid Syntax",
		Runtime:           "Runtime Error",
		ResourceExhausted: "Resource Exhausted",
	}
	return data[k]
}

// Reason narrows a Runtime error down to what went wrong.
type Reason int

const (
	Unspecified Reason = iota
	UndefinedName
	IllegalOperation
	DivisionByZero
	IndexOutOfBounds
	ArityMismatch
	TypeMismatch
	BadInput
	MisplacedControl
	ScriptLoad
)

func (r Reason) String() string {
	data := map[Reason]string{
		Unspecified:      "unspecified",
		UndefinedName:    "undefined name",
		IllegalOperation: "illegal operation",
		DivisionByZero:   "division by zero",
		IndexOutOfBounds: "index out of bounds",
		ArityMismatch:    "arity mismatch",
		TypeMismatch:     "type mismatch",
		BadInput:         "bad input",
		MisplacedControl: "misplaced control flow",
		ScriptLoad:       "script load failure",
	}
	return data[r]
}

// Frame is one entry of a runtime traceback.
type Frame struct {
	Name     string
	Position types.Position
}

type Error struct {
	Kind     Kind
	Reason   Reason
	Details  string
	Location types.Span
	// Trace runs from the outermost frame to the one that failed.
	Trace []Frame
}

var (
	ErrUndefinedName    = &Error{Kind: Runtime, Reason: UndefinedName}
	ErrIllegalOperation = &Error{Kind: Runtime, Reason: IllegalOperation}
	ErrDivisionByZero   = &Error{Kind: Runtime, Reason: DivisionByZero}
	ErrIndexOutOfBounds = &Error{Kind: Runtime, Reason: IndexOutOfBounds}
	ErrArityMismatch    = &Error{Kind: Runtime, Reason: ArityMismatch}
	ErrTypeMismatch     = &Error{Kind: Runtime, Reason: TypeMismatch}
	ErrBadInput         = &Error{Kind: Runtime, Reason: BadInput}
	ErrMisplacedControl = &Error{Kind: Runtime, Reason: MisplacedControl}
	ErrScriptLoad       = &Error{Kind: Runtime, Reason: ScriptLoad}
	ErrIllegalCharacter = &Error{Kind: IllegalCharacter}
	ErrExpectedChar     = &Error{Kind: ExpectedCharacter}
	ErrInvalidSyntax    = &Error{Kind: InvalidSyntax}
	ErrExhausted        = &Error{Kind: ResourceExhausted}
)

func NewIllegalChar(at types.Position, details string) *Error {
	return &Error{Kind: IllegalCharacter, Details: details, Location: types.SingleCharSpan(at)}
}

func NewExpectedChar(loc types.Span, details string) *Error {
	return &Error{Kind: ExpectedCharacter, Details: details, Location: loc}
}

func NewInvalidSyntax(loc types.Span, details string) *Error {
	return &Error{Kind: InvalidSyntax, Details: details, Location: loc}
}

func NewRuntime(reason Reason, loc types.Span, trace []Frame, format string, args ...interface{}) *Error {
	return &Error{
		Kind:     Runtime,
		Reason:   reason,
		Details:  fmt.Sprintf(format, args...),
		Location: loc,
		Trace:    trace,
	}
}

func NewExhausted(loc types.Span, trace []Frame, details string) *Error {
	return &Error{Kind: ResourceExhausted, Details: details, Location: loc, Trace: trace}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s. %s", e.Kind, e.Details, e.Location)
}

// Is matches sentinel errors by kind, and by reason when the target has one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Reason == Unspecified || t.Reason == e.Reason
}

// traceEdge is how many frames Render keeps at each end of a long trace.
const traceEdge = 8

// Render formats the error for humans: traceback for runtime errors, the
// kind and details, the file/line indicator and the offending source with
// carets under the span.
func (e *Error) Render() string {
	var b strings.Builder

	if len(e.Trace) > 0 {
		b.WriteString("Traceback (most recent call last):\n")
		for i, f := range e.Trace {
			if len(e.Trace) > 2*traceEdge && i >= traceEdge && i < len(e.Trace)-traceEdge {
				if i == traceEdge {
					fmt.Fprintf(&b, "  [%d more frames]\n", len(e.Trace)-2*traceEdge)
				}
				continue
			}
			fmt.Fprintf(&b, "  File %s, line %d, in %s\n", f.Position.Filename(), f.Position.Line, f.Name)
		}
	}

	fmt.Fprintf(&b, "%s: %s\n", e.Kind, e.Details)
	if len(e.Trace) == 0 {
		fmt.Fprintf(&b, "File %s, line %d\n", e.Location.From.Filename(), e.Location.From.Line)
	}
	b.WriteString(caretSnippet(e.Location))

	return strings.TrimRight(b.String(), "\n")
}

func caretSnippet(s types.Span) string {
	if s.From.Source == nil {
		return ""
	}
	text := s.From.Source.Text
	lines := strings.Split(text, "\n")

	from, to := s.From, s.To
	if to.Line < from.Line || (to.Line == from.Line && to.Column < from.Column) {
		to = from
	}

	var b strings.Builder
	for line := from.Line; line <= to.Line; line++ {
		if line < 1 || line > len(lines) {
			break
		}
		txt := strings.TrimRight(lines[line-1], "\r")
		width := len([]rune(txt))

		start := 1
		if line == from.Line {
			start = from.Column
		}
		end := width
		if line == to.Line {
			end = to.Column
		}
		if end < start {
			end = start
		}

		fmt.Fprintf(&b, "%s\n", strings.ReplaceAll(txt, "\t", " "))
		fmt.Fprintf(&b, "%s%s\n", strings.Repeat(" ", start-1), strings.Repeat("^", end-start+1))
	}

	return b.String()
}
