// Package shell runs the interactive read-eval-print loop.
package shell

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/coreos/pkg/capnslog"
	"github.com/peterh/liner"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/she/errors"
	"github.com/pontaoski/she/interp"
	"github.com/pontaoski/she/value"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/she", "shell")

// SourceName is the file name given to lines typed at the prompt.
const SourceName = "<stdin>"

// LineReader supplies input lines. *liner.State satisfies it.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

type historian interface {
	AppendHistory(item string)
}

type Shell struct {
	Interp  *interp.Interpreter
	Globals *value.SymbolTable
	Prompt  string
	Out     io.Writer
	Err     io.Writer
}

func New(in *interp.Interpreter, prompt string, out, errOut io.Writer) *Shell {
	return &Shell{
		Interp:  in,
		Globals: in.Globals(),
		Prompt:  prompt,
		Out:     out,
		Err:     errOut,
	}
}

// Loop reads lines from r until it reports io.EOF. Errors in a line are
// printed and do not end the loop; definitions persist between lines.
func (s *Shell) Loop(r LineReader) error {
	for {
		line, err := r.Prompt(s.Prompt)
		if err == io.EOF {
			fmt.Fprintln(s.Out)
			return nil
		}
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			return tracerr.Wrap(err)
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		if h, ok := r.(historian); ok {
			h.AppendHistory(line)
		}

		s.Line(line)
	}
}

// Line evaluates one line of input and echoes its result.
func (s *Shell) Line(line string) {
	result, err := s.Interp.Eval(s.Globals, SourceName, line)
	if err != nil {
		s.report(err)
		return
	}

	if quiet(line) {
		return
	}
	if echo := Echo(result); echo != "" {
		fmt.Fprintln(s.Out, echo)
	}
}

func (s *Shell) report(err error) {
	var e *errors.Error
	if stderrors.As(err, &e) {
		fmt.Fprintln(s.Err, e.Render())
		return
	}
	plog.Errorf("unexpected error: %v", err)
	fmt.Fprintln(s.Err, err)
}

// quiet reports lines whose output is their side effect.
func quiet(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "PRINT") || strings.HasPrefix(trimmed, "RUN(")
}

// Echo renders a program result the way the prompt shows it: a lone
// statement prints its own value, several print the whole list, and NULL
// prints nothing.
func Echo(result value.Value) string {
	list, ok := result.(*value.List)
	if !ok || len(list.Elements) != 1 {
		return result.Repr()
	}

	v := list.Elements[0]
	if v == value.Null {
		return ""
	}
	return v.Repr()
}
