package types

import (
	"fmt"
)

// Source is a named unit of program text.
type Source struct {
	Name string
	Text string
}

type Position struct {
	Offset int
	Line   int
	Column int
	Source *Source
}

type Span struct {
	From Position
	To   Position
}

type TokenKind int

const (
	EOF TokenKind = iota
	ILLEGAL

	NUMBER
	STRING
	IDENT
	KEYWORD

	PLUS
	MINUS
	MUL
	DIV
	MOD
	POW
	EQ
	EE
	NE
	LT
	GT
	LTE
	GTE
	COMMA
	ARROW
	LPAREN
	RPAREN
	LSQUARE
	RSQUARE

	NEWLINE
)

func (t TokenKind) String() string {
	data := map[TokenKind]string{
		EOF:     "EOF",
		ILLEGAL: "ILLEGAL",
		NUMBER:  "NUMBER",
		STRING:  "STRING",
		IDENT:   "IDENT",
		KEYWORD: "KEYWORD",
		PLUS:    "PLUS",
		MINUS:   "MINUS",
		MUL:     "MUL",
		DIV:     "DIV",
		MOD:     "MOD",
		POW:     "POW",
		EQ:      "EQ",
		EE:      "EE",
		NE:      "NE",
		LT:      "LT",
		GT:      "GT",
		LTE:     "LTE",
		GTE:     "GTE",
		COMMA:   "COMMA",
		ARROW:   "ARROW",
		LPAREN:  "LPAREN",
		RPAREN:  "RPAREN",
		LSQUARE: "LSQUARE",
		RSQUARE: "RSQUARE",
		NEWLINE: "NEWLINE",
	}
	return data[t]
}

// Keywords of the language. They lex as KEYWORD tokens with the word as literal.
var Keywords = map[string]bool{
	"VAR":      true,
	"AND":      true,
	"OR":       true,
	"NOT":      true,
	"IF":       true,
	"ELIF":     true,
	"ELSE":     true,
	"FOR":      true,
	"TO":       true,
	"STEP":     true,
	"WHILE":    true,
	"FUN":      true,
	"THEN":     true,
	"END":      true,
	"RETURN":   true,
	"CONTINUE": true,
	"BREAK":    true,
}

func (p Position) Filename() string {
	if p.Source == nil || p.Source.Name == "" {
		return "<unknown>"
	}
	return p.Source.Name
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename(), p.Line, p.Column)
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.From, s.To.Line, s.To.Column)
}

func SingleCharSpan(p Position) Span {
	return Span{p, p}
}

type Token struct {
	Kind     TokenKind
	Literal  string
	Location Span
}

// Is reports whether the token is the keyword kw.
func (t Token) Is(kw string) bool {
	return t.Kind == KEYWORD && t.Literal == kw
}

func (t Token) String() string {
	if t.Literal == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s:%s", t.Kind, t.Literal)
}
