package value

import (
	stderrors "errors"
	"math"
	"testing"

	"github.com/pontaoski/she/types"
)

func TestBinaryNumbers(t *testing.T) {
	cases := []struct {
		op   Op
		a, b float64
		want float64
	}{
		{OpAdd, 1, 2, 3},
		{OpSub, 1, 2, -1},
		{OpMul, 3, 4, 12},
		{OpDiv, 7, 2, 3.5},
		{OpMod, 7, 3, 1},
		{OpMod, -7, 3, -1},
		{OpPow, 2, 10, 1024},
		{OpLt, 1, 2, 1},
		{OpGe, 1, 2, 0},
		{OpEq, 2, 2, 1},
		{OpNe, 2, 2, 0},
		{OpAnd, 1, 0, 0},
		{OpOr, 1, 0, 1},
	}

	for _, c := range cases {
		got, err := Binary(c.op, NewNumber(c.a), NewNumber(c.b))
		if err != nil {
			t.Errorf("%v %s %v: %s", c.a, c.op, c.b, err)
			continue
		}
		if n := got.(*Number).Value; n != c.want {
			t.Errorf("%v %s %v: got %v, want %v", c.a, c.op, c.b, n, c.want)
		}
	}
}

func TestComparisonsReturnSingletons(t *testing.T) {
	got, _ := Binary(OpLt, NewNumber(1), NewNumber(2))
	if got != True {
		t.Error("expected the True singleton")
	}
	got, _ = Binary(OpEq, NewString("a"), NewString("b"))
	if got != False {
		t.Error("expected the False singleton")
	}
	if Null == False {
		t.Error("Null and False must be distinct instances")
	}
}

func TestDivisionByZero(t *testing.T) {
	for _, op := range []Op{OpDiv, OpMod} {
		_, err := Binary(op, NewNumber(1), NewNumber(0))
		if !stderrors.Is(err, ErrDivisionByZero) {
			t.Errorf("%s: expected division by zero, got %v", op, err)
		}
	}
}

func TestStrings(t *testing.T) {
	got, _ := Binary(OpAdd, NewString("ab"), NewString("cd"))
	if got.String() != "abcd" {
		t.Errorf("concat gave %s", got)
	}
	got, _ = Binary(OpMul, NewString("ab"), NewNumber(3))
	if got.String() != "ababab" {
		t.Errorf("repeat gave %s", got)
	}
	got, _ = Binary(OpMul, NewString("ab"), NewNumber(-1))
	if got.String() != "" {
		t.Errorf("negative repeat gave %q", got)
	}
	got, _ = Binary(OpLt, NewString("apple"), NewString("banana"))
	if got != True {
		t.Error("expected lexicographic ordering")
	}
}

func TestStringRepeatBounds(t *testing.T) {
	for _, count := range []float64{5e18, float64(MaxStringLen), math.Inf(1), math.NaN()} {
		_, err := Binary(OpMul, NewString("ab"), NewNumber(count))
		if !stderrors.Is(err, ErrRepeatTooLarge) {
			t.Errorf("count %v: expected ErrRepeatTooLarge, got %v", count, err)
		}
	}

	got, err := Binary(OpMul, NewString(""), NewNumber(5e18))
	if err != nil || got.String() != "" {
		t.Errorf("repeating an empty string gave %q, %v", got, err)
	}
	_, err = Binary(OpMul, NewString("ab"), NewNumber(math.Inf(-1)))
	if !stderrors.Is(err, ErrRepeatTooLarge) {
		t.Errorf("negative infinity: expected ErrRepeatTooLarge, got %v", err)
	}
	got, err = Binary(OpMul, NewString("x"), NewNumber(float64(MaxStringLen)))
	if err != nil || len(got.String()) != MaxStringLen {
		t.Errorf("repeat up to the limit failed: %v", err)
	}
}

func TestIllegalOperations(t *testing.T) {
	fn := &Function{Name: "f"}
	cases := []struct {
		op   Op
		l, r Value
	}{
		{OpSub, NewString("a"), NewString("b")},
		{OpAdd, NewNumber(1), NewString("b")},
		{OpEq, NewNumber(1), NewString("1")},
		{OpAdd, fn, NewNumber(1)},
		{OpIndex, NewNumber(1), NewNumber(0)},
		{OpDiv, NewList(), NewNumber(0)},
	}

	for _, c := range cases {
		_, err := Binary(c.op, c.l, c.r)
		if !stderrors.Is(err, ErrIllegalOperation) {
			t.Errorf("%s %s %s: expected illegal operation, got %v", c.l.Kind(), c.op, c.r.Kind(), err)
		}
	}

	if _, err := Unary(OpNeg, NewString("a")); !stderrors.Is(err, ErrIllegalOperation) {
		t.Errorf("expected illegal operation for -string, got %v", err)
	}
}

func TestUnary(t *testing.T) {
	got, _ := Unary(OpNeg, NewNumber(3))
	if got.(*Number).Value != -3 {
		t.Errorf("negation gave %s", got)
	}
	if got, _ := Unary(OpNot, NewNumber(0)); got != True {
		t.Error("NOT 0 should be true")
	}
	if got, _ := Unary(OpNot, NewNumber(5)); got != False {
		t.Error("NOT 5 should be false")
	}
}

func TestLists(t *testing.T) {
	xs := NewList(NewNumber(1), NewNumber(2), NewNumber(3))

	added, _ := Binary(OpAdd, xs, NewString("x"))
	if added.Repr() != `[1, 2, 3, "x"]` || len(xs.Elements) != 3 {
		t.Errorf("append gave %s, original %s", added.Repr(), xs.Repr())
	}

	removed, _ := Binary(OpSub, xs, NewNumber(1))
	if removed.Repr() != "[1, 3]" || len(xs.Elements) != 3 {
		t.Errorf("remove gave %s, original %s", removed.Repr(), xs.Repr())
	}

	joined, _ := Binary(OpMul, xs, NewList(NewNumber(4)))
	if joined.Repr() != "[1, 2, 3, 4]" {
		t.Errorf("concat gave %s", joined.Repr())
	}

	nested, _ := Binary(OpAdd, xs, NewList())
	if nested.Repr() != "[1, 2, 3, []]" {
		t.Errorf("adding a list should nest it, got %s", nested.Repr())
	}

	elem, err := Binary(OpIndex, xs, NewNumber(2))
	if err != nil || elem.String() != "3" {
		t.Errorf("index gave %v, %v", elem, err)
	}

	for _, i := range []float64{-1, 3, 100} {
		if _, err := Binary(OpIndex, xs, NewNumber(i)); !stderrors.Is(err, ErrIndexOutOfBounds) {
			t.Errorf("index %v: expected out of bounds, got %v", i, err)
		}
	}
	if _, err := Binary(OpIndex, xs, NewNumber(0.5)); !stderrors.Is(err, ErrNotAnInteger) {
		t.Errorf("expected non-integer index error, got %v", err)
	}
}

func TestRendering(t *testing.T) {
	cases := []struct {
		v       Value
		display string
		repr    string
	}{
		{NewNumber(7), "7", "7"},
		{NewNumber(0.5), "0.5", "0.5"},
		{NewString("hi"), "hi", `"hi"`},
		{NewList(NewNumber(1), NewString("a")), "1, a", `[1, "a"]`},
		{&Function{Name: "f"}, "<function f>", "<function f>"},
		{&Function{}, "<function <anonymous>>", "<function <anonymous>>"},
		{&BuiltIn{Name: "print"}, "<built-in function print>", "<built-in function print>"},
	}

	for _, c := range cases {
		if c.v.String() != c.display {
			t.Errorf("display: got %q, want %q", c.v.String(), c.display)
		}
		if c.v.Repr() != c.repr {
			t.Errorf("repr: got %q, want %q", c.v.Repr(), c.repr)
		}
	}
}

func TestIsTrue(t *testing.T) {
	if IsTrue(Null) || IsTrue(NewString("")) || IsTrue(NewList()) {
		t.Error("empty values should be false")
	}
	if !IsTrue(NewNumber(-1)) || !IsTrue(NewString("x")) || !IsTrue(&BuiltIn{}) {
		t.Error("non-empty values should be true")
	}
}

func TestSymbolTable(t *testing.T) {
	global := NewSymbolTable(nil)
	global.Define("a", NewNumber(1))

	local := NewSymbolTable(global)
	if v, ok := local.Get("a"); !ok || v.String() != "1" {
		t.Fatal("lookup should walk to the parent")
	}

	local.Set("a", NewNumber(2))
	if v, _ := global.Get("a"); v.String() != "2" {
		t.Error("Set should assign where the name is owned")
	}

	local.Set("b", NewNumber(3))
	if _, ok := global.Get("b"); ok {
		t.Error("a new name should bind in the current table")
	}

	local.Define("a", NewNumber(9))
	if v, _ := global.Get("a"); v.String() != "2" {
		t.Error("Define should shadow, not assign")
	}
	if local.Root() != global || local.Parent() != global {
		t.Error("bad chain")
	}
}

func TestContextDepth(t *testing.T) {
	top := NewContext("<program>", nil, NewSymbolTable(nil), types.Position{})
	child := NewContext("f", top, NewSymbolTable(top.Table), types.Position{})
	if top.Depth != 0 || child.Depth != 1 {
		t.Errorf("depths %d, %d", top.Depth, child.Depth)
	}
}
