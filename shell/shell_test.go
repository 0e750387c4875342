package shell

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/peterh/liner"

	"github.com/pontaoski/she/interp"
	"github.com/pontaoski/she/value"
)

type script struct {
	lines   []string
	prompts []string
	history []string
}

func (s *script) Prompt(p string) (string, error) {
	s.prompts = append(s.prompts, p)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	if line == "^C" {
		return "", liner.ErrPromptAborted
	}
	return line, nil
}

func (s *script) AppendHistory(item string) {
	s.history = append(s.history, item)
}

func run(t *testing.T, lines ...string) (out, errOut string, sc *script) {
	t.Helper()
	var o, e bytes.Buffer
	in := interp.New(interp.WithStdout(&o), interp.WithStdin(strings.NewReader("")))
	sh := New(in, "SHE > ", &o, &e)

	sc = &script{lines: lines}
	if err := sh.Loop(sc); err != nil {
		t.Fatal(err)
	}
	return o.String(), e.String(), sc
}

func TestLoopEchoes(t *testing.T) {
	out, errOut, _ := run(t,
		"1 + 2",
		`"hi"`,
		"1; 2",
		"IF 0 THEN 1",
		"",
		"   ",
		"[1, [2]]",
	)

	if errOut != "" {
		t.Errorf("unexpected errors: %q", errOut)
	}
	want := "3\n\"hi\"\n[1, 2]\n[1, [2]]\n\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestLoopQuietLines(t *testing.T) {
	out, _, _ := run(t, `PRINT("x")`, `PRINT_RET("y")`)

	if out != "x\ny\n\n" {
		t.Errorf("got %q", out)
	}
}

func TestLoopContinuesAfterErrors(t *testing.T) {
	out, errOut, _ := run(t,
		"VAR a = 5",
		"a / 0",
		"(1 +",
		"a * 2",
	)

	if !strings.Contains(errOut, "Runtime Error") || !strings.Contains(errOut, "Traceback") {
		t.Errorf("runtime error not rendered: %q", errOut)
	}
	if !strings.Contains(errOut, "Invalid Syntax") {
		t.Errorf("syntax error not rendered: %q", errOut)
	}
	if !strings.Contains(errOut, "File <stdin>, line 1") {
		t.Errorf("expected the source name in %q", errOut)
	}
	if out != "5\n10\n\n" {
		t.Errorf("definitions should persist across lines, got %q", out)
	}
}

func TestLoopHistoryAndAbort(t *testing.T) {
	out, _, sc := run(t, "1", "^C", "", "2")

	if out != "1\n2\n\n" {
		t.Errorf("got %q", out)
	}
	if strings.Join(sc.history, "|") != "1|2" {
		t.Errorf("history should hold non-blank lines, got %v", sc.history)
	}
	for _, p := range sc.prompts {
		if p != "SHE > " {
			t.Errorf("unexpected prompt %q", p)
		}
	}
}

func TestLoopSharesInputWithPrograms(t *testing.T) {
	var o, e bytes.Buffer
	sc := &script{lines: []string{"VAR x = INPUT()", "hello", "x", "INPUT_INT() + 1", "41", "INPUT()"}}
	in := interp.New(interp.WithStdout(&o), interp.WithLineReader(func() (string, error) {
		return sc.Prompt("")
	}))

	if err := New(in, "SHE > ", &o, &e).Loop(sc); err != nil {
		t.Fatal(err)
	}

	if e.String() != "" {
		t.Errorf("unexpected errors: %q", e.String())
	}
	want := "\"hello\"\n\"hello\"\n42\n\"\"\n\n"
	if o.String() != want {
		t.Errorf("got %q, want %q", o.String(), want)
	}
	if strings.Join(sc.history, "|") != "VAR x = INPUT()|x|INPUT_INT() + 1|INPUT()" {
		t.Errorf("input data should not enter the history, got %v", sc.history)
	}
}

func TestLoopSurvivesOversizedRepeat(t *testing.T) {
	out, errOut, _ := run(t, `"ab" * 5000000000000000000`, `"ab" * 2`)

	if !strings.Contains(errOut, "Runtime Error") {
		t.Errorf("expected a runtime error, got %q", errOut)
	}
	if out != "\"abab\"\n\n" {
		t.Errorf("the loop should continue after the error, got %q", out)
	}
}

func TestEcho(t *testing.T) {
	cases := []struct {
		v    value.Value
		want string
	}{
		{value.NewList(value.Null), ""},
		{value.NewList(value.False), "0"},
		{value.NewList(value.NewString("a")), `"a"`},
		{value.NewList(), "[]"},
		{value.NewList(value.Null, value.True), "[0, 1]"},
	}

	for _, c := range cases {
		if got := Echo(c.v); got != c.want {
			t.Errorf("Echo(%s) = %q, want %q", c.v.Repr(), got, c.want)
		}
	}
}
