package lexer

import (
	stderrors "errors"
	"testing"

	"github.com/alecthomas/repr"
	"github.com/pontaoski/she/errors"
	"github.com/pontaoski/she/types"
)

func kinds(toks []types.Token) []types.TokenKind {
	var ret []types.TokenKind
	for _, t := range toks {
		ret = append(ret, t.Kind)
	}
	return ret
}

func TestLexer(t *testing.T) {
	cases := []struct {
		in   string
		want []types.TokenKind
	}{
		{"1 + 2.5", []types.TokenKind{types.NUMBER, types.PLUS, types.NUMBER, types.EOF}},
		{"VAR a = [1, 2]", []types.TokenKind{types.KEYWORD, types.IDENT, types.EQ, types.LSQUARE, types.NUMBER, types.COMMA, types.NUMBER, types.RSQUARE, types.EOF}},
		{"a == b != c <= d >= e < f > g", []types.TokenKind{
			types.IDENT, types.EE, types.IDENT, types.NE, types.IDENT, types.LTE, types.IDENT,
			types.GTE, types.IDENT, types.LT, types.IDENT, types.GT, types.IDENT, types.EOF,
		}},
		{"FUN (x) -> x ^ 2 % 3", []types.TokenKind{
			types.KEYWORD, types.LPAREN, types.IDENT, types.RPAREN, types.ARROW,
			types.IDENT, types.POW, types.NUMBER, types.MOD, types.NUMBER, types.EOF,
		}},
		{"a; b\nc # trailing comment", []types.TokenKind{
			types.IDENT, types.NEWLINE, types.IDENT, types.NEWLINE, types.IDENT, types.EOF,
		}},
		{"", []types.TokenKind{types.EOF}},
	}

	for _, c := range cases {
		toks, err := Tokenize("<test>", c.in)
		if err != nil {
			t.Fatalf("%q: unexpected error %s", c.in, err)
		}
		got := kinds(toks)
		if repr.String(got) != repr.String(c.want) {
			t.Errorf("%q: got %s, want %s", c.in, repr.String(got), repr.String(c.want))
		}
	}
}

func TestLexerLiterals(t *testing.T) {
	toks, err := Tokenize("<test>", `foo_1 12.75 "a\"b\n\\" WHILE`)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"foo_1", "12.75", "a\"b\n\\", "WHILE", ""}
	for i, w := range want {
		if toks[i].Literal != w {
			t.Errorf("token %d: got literal %q, want %q", i, toks[i].Literal, w)
		}
	}
	if !toks[3].Is("WHILE") {
		t.Errorf("expected WHILE keyword, got %s", toks[3])
	}
}

func TestLexerSecondDotEndsNumber(t *testing.T) {
	_, err := Tokenize("<test>", "1.2.3")
	if !stderrors.Is(err, errors.ErrIllegalCharacter) {
		t.Fatalf("expected illegal character error, got %v", err)
	}
}

func TestLexerPositions(t *testing.T) {
	toks, err := Tokenize("<test>", "ab\n  cde")
	if err != nil {
		t.Fatal(err)
	}

	first, second := toks[0].Location, toks[2].Location
	if first.From.Line != 1 || first.From.Column != 1 || first.To.Column != 2 {
		t.Errorf("bad span for first ident: %s", first)
	}
	if second.From.Line != 2 || second.From.Column != 3 || second.To.Column != 5 {
		t.Errorf("bad span for second ident: %s", second)
	}
	if second.From.Offset != 5 {
		t.Errorf("bad offset %d", second.From.Offset)
	}
}

func TestLexerIllegalCharacter(t *testing.T) {
	_, err := Tokenize("<test>", "1 + @ 2")

	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("expected *errors.Error, got %v", err)
	}
	if e.Kind != errors.IllegalCharacter {
		t.Fatalf("got kind %s", e.Kind)
	}
	if e.Location.From.Column != 5 || e.Location.To.Column != 5 || e.Location.From.Offset != 4 {
		t.Errorf("error not positioned at '@': %s", e.Location)
	}
}

func TestLexerNonASCIIDigit(t *testing.T) {
	_, err := Tokenize("<test>", "1 + \u0661")

	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("expected *errors.Error, got %v", err)
	}
	if e.Kind != errors.IllegalCharacter {
		t.Fatalf("got kind %s: %s", e.Kind, e.Details)
	}
	if e.Location.From.Column != 5 || e.Location.From.Offset != 4 {
		t.Errorf("error not positioned at the digit: %s", e.Location)
	}
}

func TestLexerExpectedCharacter(t *testing.T) {
	for _, in := range []string{"a ! b", `"unterminated`} {
		_, err := Tokenize("<test>", in)
		if !stderrors.Is(err, errors.ErrExpectedChar) {
			t.Errorf("%q: expected an expected-character error, got %v", in, err)
		}
	}
}

func TestLexerDeterministic(t *testing.T) {
	src := "FOR i = 0 TO 10 STEP 2 THEN PRINT(i)"
	a, _ := Tokenize("<test>", src)
	b, _ := Tokenize("<test>", src)
	if repr.String(a) != repr.String(b) {
		t.Fatal("tokenizing twice gave different results")
	}
}
