package parser

import (
	"fmt"
	"strconv"

	"github.com/pontaoski/she/ast"
	"github.com/pontaoski/she/errors"
	"github.com/pontaoski/she/types"
)

type Parser struct {
	toks []types.Token
	idx  int
}

func NewParser(toks []types.Token) *Parser {
	return &Parser{toks: toks}
}

// Parse turns a token stream ending in EOF into the program's root list.
func Parse(toks []types.Token) (*ast.ListLiteral, error) {
	return NewParser(toks).Parse()
}

func (p *Parser) Parse() (root *ast.ListLiteral, err error) {
	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(*errors.Error)
			if !ok {
				panic(r)
			}
			root, err = nil, perr
		}
	}()

	root = p.parseStatements()
	if !p.PeekIs(types.EOF) {
		p.fail("an operator or the end of the statement")
	}

	return root, nil
}

func (p *Parser) Peek() types.Token {
	return p.peekAt(0)
}

func (p *Parser) peekAt(n int) types.Token {
	if len(p.toks) == 0 {
		return types.Token{Kind: types.EOF}
	}
	if p.idx+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.idx+n]
}

func (p *Parser) PeekIs(k ...types.TokenKind) bool {
	tok := p.Peek()
	for _, kind := range k {
		if tok.Kind == kind {
			return true
		}
	}

	return false
}

func (p *Parser) PeekKeyword(kw ...string) bool {
	tok := p.Peek()
	for _, w := range kw {
		if tok.Is(w) {
			return true
		}
	}

	return false
}

func (p *Parser) advance() types.Token {
	tok := p.Peek()
	if p.idx < len(p.toks) {
		p.idx++
	}
	return tok
}

// lastEnd is where the most recently consumed token ends.
func (p *Parser) lastEnd() types.Position {
	if p.idx == 0 {
		return p.Peek().Location.From
	}
	return p.toks[p.idx-1].Location.To
}

func (p *Parser) spanFrom(from types.Position) types.Span {
	return types.Span{From: from, To: p.lastEnd()}
}

func describe(tok types.Token) string {
	switch tok.Kind {
	case types.EOF:
		return "end of input"
	case types.NEWLINE:
		return "end of line"
	case types.KEYWORD:
		return tok.Literal
	case types.STRING:
		return strconv.Quote(tok.Literal)
	}
	return fmt.Sprintf("'%s'", tok.Literal)
}

func (p *Parser) fail(expected string) {
	tok := p.Peek()
	panic(errors.NewInvalidSyntax(tok.Location, fmt.Sprintf("expected %s, got %s", expected, describe(tok))))
}

func (p *Parser) LexExpecting(k types.TokenKind, what string) types.Token {
	if !p.PeekIs(k) {
		p.fail(what)
	}
	return p.advance()
}

func (p *Parser) expectKeyword(kw string) types.Token {
	if !p.PeekKeyword(kw) {
		p.fail(kw)
	}
	return p.advance()
}

func (p *Parser) skipNewlines() {
	for p.PeekIs(types.NEWLINE) {
		p.advance()
	}
}

func (p *Parser) atBlockEnd() bool {
	return p.PeekIs(types.EOF) || p.PeekKeyword("END", "ELIF", "ELSE")
}

// parseStatements reads newline separated statements up to EOF or a block
// terminator, which it leaves unconsumed.
func (p *Parser) parseStatements() *ast.ListLiteral {
	from := p.Peek().Location.From
	var statements []ast.Node

	p.skipNewlines()
	for !p.atBlockEnd() {
		statements = append(statements, p.parseStatement())

		if !p.PeekIs(types.NEWLINE) {
			break
		}
		p.skipNewlines()
	}

	return &ast.ListLiteral{Elements: statements, Pos: p.spanFrom(from)}
}

func (p *Parser) parseStatement() ast.Node {
	tok := p.Peek()

	switch {
	case tok.Is("RETURN"):
		p.advance()
		var val ast.Node
		if !p.PeekIs(types.NEWLINE) && !p.atBlockEnd() {
			val = p.parseExpr()
		}
		return &ast.Return{Value: val, Pos: p.spanFrom(tok.Location.From)}
	case tok.Is("CONTINUE"):
		p.advance()
		return &ast.Continue{Pos: tok.Location}
	case tok.Is("BREAK"):
		p.advance()
		return &ast.Break{Pos: tok.Location}
	}

	return p.parseExpr()
}

func (p *Parser) parseExpr() ast.Node {
	tok := p.Peek()

	if tok.Is("VAR") {
		p.advance()
		name := p.LexExpecting(types.IDENT, "an identifier")
		p.LexExpecting(types.EQ, "'='")
		return &ast.VarAssign{
			Name:    name.Literal,
			Value:   p.parseExpr(),
			Declare: true,
			Pos:     p.spanFrom(tok.Location.From),
		}
	}

	if tok.Kind == types.IDENT && p.peekAt(1).Kind == types.EQ {
		p.advance()
		p.advance()
		return &ast.VarAssign{
			Name:  tok.Literal,
			Value: p.parseExpr(),
			Pos:   p.spanFrom(tok.Location.From),
		}
	}

	return p.binOp(p.parseComparison, func(t types.Token) bool {
		return t.Is("AND") || t.Is("OR")
	})
}

func isKind(k ...types.TokenKind) func(types.Token) bool {
	return func(t types.Token) bool {
		for _, kind := range k {
			if t.Kind == kind {
				return true
			}
		}
		return false
	}
}

// binOp parses a left associative chain of operands joined by operators
// matching isOp.
func (p *Parser) binOp(operand func() ast.Node, isOp func(types.Token) bool) ast.Node {
	from := p.Peek().Location.From
	left := operand()

	for isOp(p.Peek()) {
		op := p.advance()
		right := operand()
		left = &ast.BinaryOp{Left: left, Op: op, Right: right, Pos: p.spanFrom(from)}
	}

	return left
}

func (p *Parser) parseComparison() ast.Node {
	return p.binOp(p.parseArith, isKind(types.EE, types.NE, types.LT, types.GT, types.LTE, types.GTE))
}

func (p *Parser) parseArith() ast.Node {
	return p.binOp(p.parseTerm, isKind(types.PLUS, types.MINUS))
}

func (p *Parser) parseTerm() ast.Node {
	return p.binOp(p.parseFactor, isKind(types.MUL, types.DIV, types.MOD))
}

func (p *Parser) parseFactor() ast.Node {
	tok := p.Peek()

	if tok.Kind == types.PLUS || tok.Kind == types.MINUS || tok.Is("NOT") {
		p.advance()
		operand := p.parseFactor()
		return &ast.UnaryOp{Op: tok, Operand: operand, Pos: p.spanFrom(tok.Location.From)}
	}

	return p.parsePower()
}

func (p *Parser) parsePower() ast.Node {
	from := p.Peek().Location.From
	left := p.parseCall()

	for p.PeekIs(types.POW) {
		op := p.advance()
		right := p.parseFactor()
		left = &ast.BinaryOp{Left: left, Op: op, Right: right, Pos: p.spanFrom(from)}
	}

	return left
}

func (p *Parser) parseCall() ast.Node {
	from := p.Peek().Location.From
	expr := p.parseAtom()

	for {
		switch {
		case p.PeekIs(types.LPAREN):
			p.advance()
			var args []ast.Node

			if !p.PeekIs(types.RPAREN) {
				for {
					args = append(args, p.parseExpr())
					if !p.PeekIs(types.COMMA) {
						break
					}
					p.advance()
				}
			}
			p.LexExpecting(types.RPAREN, "',' or ')'")

			expr = &ast.Call{Callee: expr, Args: args, Pos: p.spanFrom(from)}
		case p.PeekIs(types.LSQUARE):
			op := p.advance()
			index := p.parseExpr()
			p.LexExpecting(types.RSQUARE, "']'")

			expr = &ast.BinaryOp{Left: expr, Op: op, Right: index, Pos: p.spanFrom(from)}
		default:
			return expr
		}
	}
}

func (p *Parser) parseAtom() ast.Node {
	tok := p.Peek()

	switch tok.Kind {
	case types.NUMBER:
		p.advance()
		parsed, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			panic(errors.NewInvalidSyntax(tok.Location, fmt.Sprintf("malformed number %s", tok.Literal)))
		}
		return &ast.NumberLiteral{Value: parsed, Pos: tok.Location}
	case types.STRING:
		p.advance()
		return &ast.StringLiteral{Value: tok.Literal, Pos: tok.Location}
	case types.IDENT:
		p.advance()
		return &ast.VarAccess{Name: tok.Literal, Pos: tok.Location}
	case types.LPAREN:
		p.advance()
		expr := p.parseExpr()
		p.LexExpecting(types.RPAREN, "')'")
		return expr
	case types.LSQUARE:
		return p.parseList()
	case types.KEYWORD:
		switch tok.Literal {
		case "IF":
			return p.parseIf()
		case "FOR":
			return p.parseFor()
		case "WHILE":
			return p.parseWhile()
		case "FUN":
			return p.parseFunc()
		}
	}

	p.fail("a number, string, identifier, '+', '-', '(', '[', IF, FOR, WHILE or FUN")
	return nil
}

func (p *Parser) parseList() ast.Node {
	open := p.LexExpecting(types.LSQUARE, "'['")
	var elements []ast.Node

	if !p.PeekIs(types.RSQUARE) {
		for {
			elements = append(elements, p.parseExpr())
			if !p.PeekIs(types.COMMA) {
				break
			}
			p.advance()
		}
	}
	p.LexExpecting(types.RSQUARE, "',' or ']'")

	return &ast.ListLiteral{Elements: elements, Pos: p.spanFrom(open.Location.From)}
}

// parseBody reads what follows THEN or a function header: either a single
// statement on the same line, or a newline, a block of statements and END.
func (p *Parser) parseBody() (body ast.Node, block bool) {
	if p.PeekIs(types.NEWLINE) {
		body = p.parseStatements()
		p.expectKeyword("END")
		return body, true
	}
	return p.parseStatement(), false
}

func (p *Parser) parseIf() ast.Node {
	start := p.expectKeyword("IF")
	node := &ast.If{}

	for {
		cond := p.parseExpr()
		p.expectKeyword("THEN")

		if p.PeekIs(types.NEWLINE) {
			body := p.parseStatements()
			node.Cases = append(node.Cases, ast.IfCase{Condition: cond, Body: body})

			switch {
			case p.PeekKeyword("END"):
				p.advance()
			case p.PeekKeyword("ELIF"):
				p.advance()
				continue
			case p.PeekKeyword("ELSE"):
				p.advance()
				node.Else, _ = p.parseBody()
			default:
				p.fail("END, ELIF or ELSE")
			}
			break
		}

		node.Cases = append(node.Cases, ast.IfCase{Condition: cond, Body: p.parseStatement()})
		if p.PeekKeyword("ELIF") {
			p.advance()
			continue
		}
		if p.PeekKeyword("ELSE") {
			p.advance()
			node.Else, _ = p.parseBody()
		}
		break
	}

	node.Pos = p.spanFrom(start.Location.From)
	return node
}

func (p *Parser) parseFor() ast.Node {
	start := p.expectKeyword("FOR")
	name := p.LexExpecting(types.IDENT, "an identifier")
	p.LexExpecting(types.EQ, "'='")
	from := p.parseExpr()
	p.expectKeyword("TO")
	to := p.parseExpr()

	var step ast.Node
	if p.PeekKeyword("STEP") {
		p.advance()
		step = p.parseExpr()
	}
	p.expectKeyword("THEN")
	body, _ := p.parseBody()

	return &ast.For{
		Var:   name.Literal,
		Start: from,
		End:   to,
		Step:  step,
		Body:  body,
		Pos:   p.spanFrom(start.Location.From),
	}
}

func (p *Parser) parseWhile() ast.Node {
	start := p.expectKeyword("WHILE")
	cond := p.parseExpr()
	p.expectKeyword("THEN")
	body, _ := p.parseBody()

	return &ast.While{Condition: cond, Body: body, Pos: p.spanFrom(start.Location.From)}
}

func (p *Parser) parseFunc() ast.Node {
	start := p.expectKeyword("FUN")
	fn := &ast.FuncDef{}

	if p.PeekIs(types.IDENT) {
		fn.Name = p.advance().Literal
	}
	p.LexExpecting(types.LPAREN, "'('")

	if !p.PeekIs(types.RPAREN) {
		for {
			param := p.LexExpecting(types.IDENT, "an identifier")
			fn.Params = append(fn.Params, param.Literal)
			if !p.PeekIs(types.COMMA) {
				break
			}
			p.advance()
		}
	}
	p.LexExpecting(types.RPAREN, "',' or ')'")

	switch {
	case p.PeekIs(types.ARROW):
		p.advance()
		fn.Body = p.parseExpr()
		fn.ExprBody = true
	case p.PeekIs(types.NEWLINE):
		fn.Body = p.parseStatements()
		p.expectKeyword("END")
	default:
		p.fail("'->' or a new line")
	}

	fn.Pos = p.spanFrom(start.Location.From)
	return fn
}
