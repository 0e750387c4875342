// Package interp evaluates parsed programs. An Interpreter walks the AST
// against a value.Context; built-ins are bound to it by Globals.
package interp

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/coreos/pkg/capnslog"
	"github.com/pontaoski/she/ast"
	"github.com/pontaoski/she/errors"
	"github.com/pontaoski/she/lexer"
	"github.com/pontaoski/she/parser"
	"github.com/pontaoski/she/types"
	"github.com/pontaoski/she/value"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/she", "interp")

const DefaultMaxDepth = 1000

// LineFunc reads one line of input without its line ending. It returns
// io.EOF once input is exhausted.
type LineFunc func() (string, error)

type Interpreter struct {
	Stdout io.Writer
	// ReadLine feeds INPUT and INPUT_INT.
	ReadLine LineFunc
	// MaxDepth bounds nested calls and RUN scripts. Zero disables the check.
	MaxDepth int
}

type Option func(*Interpreter)

func WithStdout(w io.Writer) Option {
	return func(in *Interpreter) { in.Stdout = w }
}

func WithStdin(r io.Reader) Option {
	return func(in *Interpreter) { in.ReadLine = readerLines(r) }
}

// WithLineReader takes input from fn, for hosts that already own the
// input stream, such as a line editor.
func WithLineReader(fn LineFunc) Option {
	return func(in *Interpreter) { in.ReadLine = fn }
}

func readerLines(r io.Reader) LineFunc {
	br := bufio.NewReader(r)
	return func() (string, error) {
		line, err := br.ReadString('\n')
		if err == io.EOF && line != "" {
			err = nil
		}
		return strings.TrimRight(line, "\r\n"), err
	}
}

func WithMaxDepth(n int) Option {
	return func(in *Interpreter) { in.MaxDepth = n }
}

func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		Stdout:   os.Stdout,
		ReadLine: readerLines(os.Stdin),
		MaxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Eval runs text through the whole pipeline against globals and returns
// the program's root list, one element per statement.
func (in *Interpreter) Eval(globals *value.SymbolTable, name, text string) (value.Value, error) {
	return in.evalSource(nil, globals, name, text, types.Span{})
}

// Run is Eval for callers that only care about failure.
func (in *Interpreter) Run(globals *value.SymbolTable, name, text string) error {
	_, err := in.Eval(globals, name, text)
	return err
}

func (in *Interpreter) evalSource(parent *value.Context, table *value.SymbolTable, name, text string, at types.Span) (value.Value, error) {
	toks, err := lexer.Tokenize(name, text)
	if err != nil {
		return nil, err
	}

	root, err := parser.Parse(toks)
	if err != nil {
		return nil, err
	}

	ctx, err := in.enter("<program>", parent, table, at)
	if err != nil {
		return nil, err
	}

	return in.Evaluate(root, ctx)
}

type returnSignal struct {
	value value.Value
	pos   types.Span
}

func (r *returnSignal) Error() string { return "RETURN outside of a function" }

type loopSignal struct {
	brk bool
	pos types.Span
}

func (l *loopSignal) Error() string {
	if l.brk {
		return "BREAK outside of a loop"
	}
	return "CONTINUE outside of a loop"
}

// Evaluate evaluates node in ctx. RETURN, BREAK or CONTINUE escaping node
// are reported as runtime errors.
func (in *Interpreter) Evaluate(node ast.Node, ctx *value.Context) (value.Value, error) {
	v, err := in.eval(node, ctx)
	if err != nil {
		return nil, in.stray(ctx, err)
	}
	return v, nil
}

func (in *Interpreter) stray(ctx *value.Context, err error) error {
	var ret *returnSignal
	if stderrors.As(err, &ret) {
		return in.fail(ctx, ret.pos, errors.MisplacedControl, "%s", ret)
	}
	var loop *loopSignal
	if stderrors.As(err, &loop) {
		return in.fail(ctx, loop.pos, errors.MisplacedControl, "%s", loop)
	}
	return err
}

func trace(ctx *value.Context, at types.Position) []errors.Frame {
	var frames []errors.Frame
	pos := at
	for c := ctx; c != nil; c = c.Parent {
		frames = append([]errors.Frame{{Name: c.Name, Position: pos}}, frames...)
		pos = c.Entry
	}
	return frames
}

func (in *Interpreter) fail(ctx *value.Context, at types.Span, reason errors.Reason, format string, args ...interface{}) error {
	return errors.NewRuntime(reason, at, trace(ctx, at.From), format, args...)
}

// opError turns an operator table failure into a positioned runtime error.
func (in *Interpreter) opError(ctx *value.Context, at types.Span, err error) error {
	reason := errors.IllegalOperation
	switch {
	case stderrors.Is(err, value.ErrDivisionByZero):
		reason = errors.DivisionByZero
	case stderrors.Is(err, value.ErrIndexOutOfBounds):
		reason = errors.IndexOutOfBounds
	case stderrors.Is(err, value.ErrNotAnInteger):
		reason = errors.TypeMismatch
	case stderrors.Is(err, value.ErrRepeatTooLarge):
		reason = errors.BadInput
	}
	return in.fail(ctx, at, reason, "%s", err)
}

// enter creates the context for a call or script, enforcing MaxDepth.
func (in *Interpreter) enter(name string, parent *value.Context, table *value.SymbolTable, at types.Span) (*value.Context, error) {
	ctx := value.NewContext(name, parent, table, at.From)
	if in.MaxDepth > 0 && ctx.Depth > in.MaxDepth {
		return nil, errors.NewExhausted(at, trace(parent, at.From), fmt.Sprintf("maximum call depth of %d exceeded", in.MaxDepth))
	}
	return ctx, nil
}

var binaryOperators = map[types.TokenKind]value.Op{
	types.PLUS:    value.OpAdd,
	types.MINUS:   value.OpSub,
	types.MUL:     value.OpMul,
	types.DIV:     value.OpDiv,
	types.MOD:     value.OpMod,
	types.POW:     value.OpPow,
	types.EE:      value.OpEq,
	types.NE:      value.OpNe,
	types.LT:      value.OpLt,
	types.GT:      value.OpGt,
	types.LTE:     value.OpLe,
	types.GTE:     value.OpGe,
	types.LSQUARE: value.OpIndex,
}

var keywordOperators = map[string]value.Op{
	"AND": value.OpAnd,
	"OR":  value.OpOr,
}

var unaryOperators = map[types.TokenKind]value.Op{
	types.MINUS: value.OpNeg,
	types.PLUS:  value.OpPos,
}

func operator(tok types.Token, table map[types.TokenKind]value.Op) value.Op {
	if tok.Kind == types.KEYWORD {
		if tok.Literal == "NOT" {
			return value.OpNot
		}
		if op, ok := keywordOperators[tok.Literal]; ok {
			return op
		}
	}
	if op, ok := table[tok.Kind]; ok {
		return op
	}
	panic("unhandled operator " + tok.String())
}

func (in *Interpreter) eval(node ast.Node, ctx *value.Context) (value.Value, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return value.NewNumber(n.Value), nil
	case *ast.StringLiteral:
		return value.NewString(n.Value), nil
	case *ast.ListLiteral:
		elems := make([]value.Value, 0, len(n.Elements))
		for _, e := range n.Elements {
			v, err := in.eval(e, ctx)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		return value.NewList(elems...), nil
	case *ast.VarAccess:
		v, ok := ctx.Table.Get(n.Name)
		if !ok {
			return nil, in.fail(ctx, n.Pos, errors.UndefinedName, "'%s' is not defined", n.Name)
		}
		return v, nil
	case *ast.VarAssign:
		v, err := in.eval(n.Value, ctx)
		if err != nil {
			return nil, err
		}
		if n.Declare {
			ctx.Table.Define(n.Name, v)
		} else {
			ctx.Table.Set(n.Name, v)
		}
		return v, nil
	case *ast.BinaryOp:
		l, err := in.eval(n.Left, ctx)
		if err != nil {
			return nil, err
		}
		r, err := in.eval(n.Right, ctx)
		if err != nil {
			return nil, err
		}
		v, err := value.Binary(operator(n.Op, binaryOperators), l, r)
		if err != nil {
			return nil, in.opError(ctx, n.Pos, err)
		}
		return v, nil
	case *ast.UnaryOp:
		operand, err := in.eval(n.Operand, ctx)
		if err != nil {
			return nil, err
		}
		v, err := value.Unary(operator(n.Op, unaryOperators), operand)
		if err != nil {
			return nil, in.opError(ctx, n.Pos, err)
		}
		return v, nil
	case *ast.If:
		return in.evalIf(n, ctx)
	case *ast.For:
		return in.evalFor(n, ctx)
	case *ast.While:
		return in.evalWhile(n, ctx)
	case *ast.FuncDef:
		fn := &value.Function{
			Name:     n.Name,
			Params:   n.Params,
			Body:     n.Body,
			ExprBody: n.ExprBody,
			Closure:  ctx,
		}
		if n.Name != "" {
			ctx.Table.Define(n.Name, fn)
		}
		return fn, nil
	case *ast.Call:
		callee, err := in.eval(n.Callee, ctx)
		if err != nil {
			return nil, err
		}
		args := make([]value.Value, 0, len(n.Args))
		for _, a := range n.Args {
			v, err := in.eval(a, ctx)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		return in.call(callee, args, ctx, n.Pos)
	case *ast.Return:
		var v value.Value = value.Null
		if n.Value != nil {
			var err error
			if v, err = in.eval(n.Value, ctx); err != nil {
				return nil, err
			}
		}
		return nil, &returnSignal{value: v, pos: n.Pos}
	case *ast.Continue:
		return nil, &loopSignal{pos: n.Pos}
	case *ast.Break:
		return nil, &loopSignal{brk: true, pos: n.Pos}
	}

	panic(fmt.Sprintf("unhandled node %T", node))
}

func (in *Interpreter) evalIf(n *ast.If, ctx *value.Context) (value.Value, error) {
	for _, c := range n.Cases {
		cond, err := in.eval(c.Condition, ctx)
		if err != nil {
			return nil, err
		}
		if value.IsTrue(cond) {
			return in.eval(c.Body, ctx)
		}
	}

	if n.Else != nil {
		return in.eval(n.Else, ctx)
	}
	return value.Null, nil
}

func (in *Interpreter) number(node ast.Node, ctx *value.Context, what string) (float64, error) {
	v, err := in.eval(node, ctx)
	if err != nil {
		return 0, err
	}
	num, ok := v.(*value.Number)
	if !ok {
		return 0, in.fail(ctx, node.Span(), errors.TypeMismatch, "%s must be a number, got %s", what, v.Kind())
	}
	return num.Value, nil
}

// loopBody runs one iteration. done reports a BREAK; a nil value with
// done unset means the iteration was skipped by CONTINUE.
func (in *Interpreter) loopBody(body ast.Node, ctx *value.Context) (v value.Value, done bool, err error) {
	v, err = in.eval(body, ctx)
	if err != nil {
		var sig *loopSignal
		if stderrors.As(err, &sig) {
			return nil, sig.brk, nil
		}
		return nil, false, err
	}
	return v, false, nil
}

func (in *Interpreter) evalFor(n *ast.For, ctx *value.Context) (value.Value, error) {
	start, err := in.number(n.Start, ctx, "FOR start")
	if err != nil {
		return nil, err
	}
	end, err := in.number(n.End, ctx, "FOR end")
	if err != nil {
		return nil, err
	}
	step := 1.0
	if n.Step != nil {
		if step, err = in.number(n.Step, ctx, "FOR step"); err != nil {
			return nil, err
		}
		if step == 0 {
			return nil, in.fail(ctx, n.Step.Span(), errors.BadInput, "FOR step must not be zero")
		}
	}

	var results []value.Value
	for i := start; (step > 0 && i < end) || (step < 0 && i > end); i += step {
		ctx.Table.Define(n.Var, value.NewNumber(i))

		v, done, err := in.loopBody(n.Body, ctx)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		if v != nil {
			results = append(results, v)
		}
	}

	return value.NewList(results...), nil
}

func (in *Interpreter) evalWhile(n *ast.While, ctx *value.Context) (value.Value, error) {
	var results []value.Value
	for {
		cond, err := in.eval(n.Condition, ctx)
		if err != nil {
			return nil, err
		}
		if !value.IsTrue(cond) {
			break
		}

		v, done, err := in.loopBody(n.Body, ctx)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		if v != nil {
			results = append(results, v)
		}
	}

	return value.NewList(results...), nil
}

func checkArity(name string, params []string, args []value.Value) error {
	switch {
	case len(args) > len(params):
		return &errors.Error{Kind: errors.Runtime, Reason: errors.ArityMismatch,
			Details: fmt.Sprintf("%d too many args passed into %s", len(args)-len(params), name)}
	case len(args) < len(params):
		return &errors.Error{Kind: errors.Runtime, Reason: errors.ArityMismatch,
			Details: fmt.Sprintf("%d too few args passed into %s", len(params)-len(args), name)}
	}
	return nil
}

// locate fills in position and traceback for errors raised without one.
func (in *Interpreter) locate(ctx *value.Context, at types.Span, err error) error {
	var e *errors.Error
	if !stderrors.As(err, &e) {
		return in.fail(ctx, at, errors.Unspecified, "%s", err)
	}
	if e.Location.From.Source != nil {
		return err
	}
	located := *e
	located.Location = at
	located.Trace = trace(ctx, at.From)
	return &located
}

func (in *Interpreter) call(callee value.Value, args []value.Value, ctx *value.Context, at types.Span) (value.Value, error) {
	switch fn := callee.(type) {
	case *value.Function:
		if err := checkArity(fn.String(), fn.Params, args); err != nil {
			return nil, in.locate(ctx, at, err)
		}

		name := fn.Name
		if name == "" {
			name = "<anonymous>"
		}
		callCtx, err := in.enter(name, ctx, value.NewSymbolTable(fn.Closure.Table), at)
		if err != nil {
			return nil, err
		}
		for i, p := range fn.Params {
			callCtx.Table.Define(p, args[i])
		}
		plog.Debugf("calling %s at depth %d", name, callCtx.Depth)

		v, err := in.eval(fn.Body, callCtx)
		if err != nil {
			var ret *returnSignal
			if stderrors.As(err, &ret) {
				return ret.value, nil
			}
			return nil, in.stray(callCtx, err)
		}
		if fn.ExprBody {
			return v, nil
		}
		return value.Null, nil
	case *value.BuiltIn:
		if err := checkArity(fn.String(), fn.Params, args); err != nil {
			return nil, in.locate(ctx, at, err)
		}

		callCtx, err := in.enter(fn.Name, ctx, value.NewSymbolTable(ctx.Table), at)
		if err != nil {
			return nil, err
		}
		plog.Debugf("calling built-in %s at depth %d", fn.Name, callCtx.Depth)

		v, err := fn.Fn(callCtx, args)
		if err != nil {
			return nil, in.locate(callCtx, at, err)
		}
		return v, nil
	}

	return nil, in.fail(ctx, at, errors.IllegalOperation, "%s is not callable", callee.Kind())
}
