package value

import (
	stderrors "errors"
	"fmt"
	"math"
	"strings"
)

type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpEq
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
	OpAnd
	OpOr
	OpIndex

	OpNeg
	OpPos
	OpNot
)

func (o Op) String() string {
	data := map[Op]string{
		OpAdd:   "+",
		OpSub:   "-",
		OpMul:   "*",
		OpDiv:   "/",
		OpMod:   "%",
		OpPow:   "^",
		OpEq:    "==",
		OpNe:    "!=",
		OpLt:    "<",
		OpGt:    ">",
		OpLe:    "<=",
		OpGe:    ">=",
		OpAnd:   "AND",
		OpOr:    "OR",
		OpIndex: "[]",
		OpNeg:   "-",
		OpPos:   "+",
		OpNot:   "NOT",
	}
	return data[o]
}

var (
	ErrIllegalOperation = stderrors.New("illegal operation")
	ErrDivisionByZero   = stderrors.New("division by zero")
	ErrIndexOutOfBounds = stderrors.New("index out of bounds")
	ErrNotAnInteger     = stderrors.New("index must be an integer")
	ErrRepeatTooLarge   = stderrors.New("repeated string too large")
)

// MaxStringLen bounds the length of a string built by repetition.
const MaxStringLen = 1 << 24

type binaryKey struct {
	op          Op
	left, right Kind
}

type unaryKey struct {
	op   Op
	kind Kind
}

type binaryFunc func(l, r Value) (Value, error)
type unaryFunc func(v Value) (Value, error)

var allKinds = []Kind{NumberKind, StringKind, ListKind, FunctionKind, BuiltInKind}

var binaryOps = map[binaryKey]binaryFunc{}

var unaryOps = map[unaryKey]unaryFunc{
	{OpNeg, NumberKind}: func(v Value) (Value, error) { return NewNumber(-v.(*Number).Value), nil },
	{OpPos, NumberKind}: func(v Value) (Value, error) { return NewNumber(v.(*Number).Value), nil },
	{OpNot, NumberKind}: func(v Value) (Value, error) { return Bool(v.(*Number).Value == 0), nil },
}

func numbers(f func(a, b float64) (Value, error)) binaryFunc {
	return func(l, r Value) (Value, error) {
		return f(l.(*Number).Value, r.(*Number).Value)
	}
}

func strs(f func(a, b string) Value) binaryFunc {
	return func(l, r Value) (Value, error) {
		return f(l.(*String).Value, r.(*String).Value), nil
	}
}

func arith(f func(a, b float64) float64) binaryFunc {
	return numbers(func(a, b float64) (Value, error) {
		return NewNumber(f(a, b)), nil
	})
}

func compare(f func(a, b float64) bool) binaryFunc {
	return numbers(func(a, b float64) (Value, error) {
		return Bool(f(a, b)), nil
	})
}

func init() {
	num := func(op Op, f binaryFunc) { binaryOps[binaryKey{op, NumberKind, NumberKind}] = f }
	str := func(op Op, f binaryFunc) { binaryOps[binaryKey{op, StringKind, StringKind}] = f }

	num(OpAdd, arith(func(a, b float64) float64 { return a + b }))
	num(OpSub, arith(func(a, b float64) float64 { return a - b }))
	num(OpMul, arith(func(a, b float64) float64 { return a * b }))
	num(OpPow, arith(math.Pow))
	num(OpDiv, numbers(func(a, b float64) (Value, error) {
		if b == 0 {
			return nil, ErrDivisionByZero
		}
		return NewNumber(a / b), nil
	}))
	num(OpMod, numbers(func(a, b float64) (Value, error) {
		if b == 0 {
			return nil, ErrDivisionByZero
		}
		return NewNumber(math.Mod(a, b)), nil
	}))
	num(OpEq, compare(func(a, b float64) bool { return a == b }))
	num(OpNe, compare(func(a, b float64) bool { return a != b }))
	num(OpLt, compare(func(a, b float64) bool { return a < b }))
	num(OpGt, compare(func(a, b float64) bool { return a > b }))
	num(OpLe, compare(func(a, b float64) bool { return a <= b }))
	num(OpGe, compare(func(a, b float64) bool { return a >= b }))
	num(OpAnd, compare(func(a, b float64) bool { return a != 0 && b != 0 }))
	num(OpOr, compare(func(a, b float64) bool { return a != 0 || b != 0 }))

	str(OpAdd, strs(func(a, b string) Value { return NewString(a + b) }))
	str(OpEq, strs(func(a, b string) Value { return Bool(a == b) }))
	str(OpNe, strs(func(a, b string) Value { return Bool(a != b) }))
	str(OpLt, strs(func(a, b string) Value { return Bool(a < b) }))
	str(OpGt, strs(func(a, b string) Value { return Bool(a > b) }))
	str(OpLe, strs(func(a, b string) Value { return Bool(a <= b) }))
	str(OpGe, strs(func(a, b string) Value { return Bool(a >= b) }))
	binaryOps[binaryKey{OpMul, StringKind, NumberKind}] = stringRepeat

	for _, k := range allKinds {
		binaryOps[binaryKey{OpAdd, ListKind, k}] = listAppend
	}
	binaryOps[binaryKey{OpSub, ListKind, NumberKind}] = listRemove
	binaryOps[binaryKey{OpMul, ListKind, ListKind}] = listConcat
	binaryOps[binaryKey{OpIndex, ListKind, NumberKind}] = listIndex
}

func stringRepeat(l, r Value) (Value, error) {
	s, count := l.(*String).Value, r.(*Number).Value
	if math.IsNaN(count) || math.IsInf(count, 0) {
		return nil, fmt.Errorf("%w: count %v", ErrRepeatTooLarge, count)
	}
	if count < 1 || s == "" {
		return NewString(""), nil
	}
	if count > float64(MaxStringLen/len(s)) {
		return nil, fmt.Errorf("%w: %d characters repeated %v times", ErrRepeatTooLarge, len(s), count)
	}
	return NewString(strings.Repeat(s, int(count))), nil
}

// Index converts n to a position in a list of length size.
func Index(n float64, size int) (int, error) {
	if n != math.Trunc(n) {
		return 0, fmt.Errorf("%w, got %v", ErrNotAnInteger, n)
	}
	if n < 0 || n >= float64(size) {
		return 0, fmt.Errorf("%w: index %v, list length %d", ErrIndexOutOfBounds, n, size)
	}
	return int(n), nil
}

func listAppend(l, r Value) (Value, error) {
	src := l.(*List).Elements
	elems := make([]Value, 0, len(src)+1)
	elems = append(elems, src...)
	return NewList(append(elems, r)...), nil
}

func listRemove(l, r Value) (Value, error) {
	src := l.(*List).Elements
	i, err := Index(r.(*Number).Value, len(src))
	if err != nil {
		return nil, err
	}
	elems := make([]Value, 0, len(src)-1)
	elems = append(elems, src[:i]...)
	return NewList(append(elems, src[i+1:]...)...), nil
}

func listConcat(l, r Value) (Value, error) {
	a, b := l.(*List).Elements, r.(*List).Elements
	elems := make([]Value, 0, len(a)+len(b))
	elems = append(elems, a...)
	return NewList(append(elems, b...)...), nil
}

func listIndex(l, r Value) (Value, error) {
	elems := l.(*List).Elements
	i, err := Index(r.(*Number).Value, len(elems))
	if err != nil {
		return nil, err
	}
	return elems[i], nil
}

// Binary applies op to l and r. Combinations missing from the operator
// table fail with ErrIllegalOperation.
func Binary(op Op, l, r Value) (Value, error) {
	f, ok := binaryOps[binaryKey{op, l.Kind(), r.Kind()}]
	if !ok {
		return nil, fmt.Errorf("%w: %s %s %s", ErrIllegalOperation, l.Kind(), op, r.Kind())
	}
	return f(l, r)
}

func Unary(op Op, v Value) (Value, error) {
	f, ok := unaryOps[unaryKey{op, v.Kind()}]
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", ErrIllegalOperation, op, v.Kind())
	}
	return f(v)
}
