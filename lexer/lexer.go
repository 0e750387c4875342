package lexer

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"github.com/pontaoski/she/errors"
	"github.com/pontaoski/she/types"
)

type Lexer struct {
	src    *types.Source
	pos    types.Position
	last   types.Position
	before types.Position
	reader *bufio.Reader
}

func NewLexer(src *types.Source) *Lexer {
	return &Lexer{
		src:    src,
		pos:    types.Position{Line: 1, Column: 1, Source: src},
		reader: bufio.NewReader(strings.NewReader(src.Text)),
	}
}

// Tokenize lexes text in full. The last token is always EOF.
func Tokenize(name, text string) ([]types.Token, error) {
	l := NewLexer(&types.Source{Name: name, Text: text})

	var toks []types.Token
	for {
		tok, err := l.Lex()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == types.EOF {
			return toks, nil
		}
	}
}

// read consumes one rune and returns the position it was found at.
func (l *Lexer) read() (rune, types.Position, bool) {
	r, size, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return 0, l.pos, false
		}
		panic(err)
	}

	at := l.pos
	l.before = l.last
	l.last = at
	l.pos.Offset += size
	if r == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}

	return r, at, true
}

func (l *Lexer) backup() {
	if err := l.reader.UnreadRune(); err != nil {
		panic(err)
	}

	l.pos = l.last
	l.last = l.before
}

// peek returns the next rune without consuming it.
func (l *Lexer) peek() (rune, bool) {
	r, _, ok := l.read()
	if !ok {
		return 0, false
	}
	l.backup()
	return r, true
}

func (l *Lexer) kinded(t types.TokenKind, lit string, from types.Position) types.Token {
	return types.Token{
		Kind:     t,
		Literal:  lit,
		Location: types.Span{From: from, To: l.last},
	}
}

func firstChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// digit accepts ASCII digits only; other Unicode digits are illegal.
func digit(r rune) bool {
	return '0' <= r && r <= '9'
}

func otherChar(r rune) bool {
	return firstChar(r) || digit(r)
}

func (l *Lexer) lexIdent(from types.Position, first rune) types.Token {
	lit := string(first)

	for {
		r, _, ok := l.read()
		if !ok {
			break
		}
		if !otherChar(r) {
			l.backup()
			break
		}
		lit += string(r)
	}

	if types.Keywords[lit] {
		return l.kinded(types.KEYWORD, lit, from)
	}
	return l.kinded(types.IDENT, lit, from)
}

func (l *Lexer) lexNumber(from types.Position, first rune) types.Token {
	lit := string(first)
	seenDot := false

	for {
		r, _, ok := l.read()
		if !ok {
			break
		}
		if r == '.' && !seenDot {
			seenDot = true
			lit += "."
			continue
		}
		if !digit(r) {
			l.backup()
			break
		}
		lit += string(r)
	}

	return l.kinded(types.NUMBER, lit, from)
}

var escapes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'"':  '"',
	'\\': '\\',
}

// lexString is called past the opening quote.
func (l *Lexer) lexString(from types.Position) (types.Token, error) {
	var lit strings.Builder
	escaped := false

	for {
		r, _, ok := l.read()
		if !ok {
			return types.Token{}, errors.NewExpectedChar(
				types.Span{From: from, To: l.last},
				"'\"' to close the string literal",
			)
		}

		switch {
		case escaped:
			if e, ok := escapes[r]; ok {
				lit.WriteRune(e)
			} else {
				lit.WriteRune(r)
			}
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			return l.kinded(types.STRING, lit.String(), from), nil
		default:
			lit.WriteRune(r)
		}
	}
}

// twoChar lexes an operator that may be followed by a second character.
func (l *Lexer) twoChar(from types.Position, first rune, single types.TokenKind, second rune, double types.TokenKind) types.Token {
	if r, ok := l.peek(); ok && r == second {
		l.read()
		return l.kinded(double, string(first)+string(second), from)
	}
	return l.kinded(single, string(first), from)
}

var singles = map[rune]types.TokenKind{
	'+': types.PLUS,
	'*': types.MUL,
	'/': types.DIV,
	'%': types.MOD,
	'^': types.POW,
	',': types.COMMA,
	'(': types.LPAREN,
	')': types.RPAREN,
	'[': types.LSQUARE,
	']': types.RSQUARE,
}

func (l *Lexer) Lex() (types.Token, error) {
	for {
		r, at, ok := l.read()
		if !ok {
			return types.Token{Kind: types.EOF, Location: types.SingleCharSpan(l.pos)}, nil
		}

		switch {
		case r == '\n' || r == ';':
			return l.kinded(types.NEWLINE, string(r), at), nil
		case r == '#':
			for {
				c, ok := l.peek()
				if !ok || c == '\n' {
					break
				}
				l.read()
			}
			continue
		case unicode.IsSpace(r):
			continue
		case digit(r):
			return l.lexNumber(at, r), nil
		case firstChar(r):
			return l.lexIdent(at, r), nil
		case r == '"':
			return l.lexString(at)
		}

		if kind, ok := singles[r]; ok {
			return l.kinded(kind, string(r), at), nil
		}

		switch r {
		case '-':
			return l.twoChar(at, r, types.MINUS, '>', types.ARROW), nil
		case '=':
			return l.twoChar(at, r, types.EQ, '=', types.EE), nil
		case '<':
			return l.twoChar(at, r, types.LT, '=', types.LTE), nil
		case '>':
			return l.twoChar(at, r, types.GT, '=', types.GTE), nil
		case '!':
			tok := l.twoChar(at, r, types.ILLEGAL, '=', types.NE)
			if tok.Kind == types.NE {
				return tok, nil
			}
			return types.Token{}, errors.NewExpectedChar(types.SingleCharSpan(at), "'=' (after '!')")
		}

		return types.Token{}, errors.NewIllegalChar(at, "'"+string(r)+"'")
	}
}
