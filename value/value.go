// Package value holds the runtime data model: the closed set of value
// kinds, the operator table over them, and the scope chain they live in.
package value

import (
	"math"
	"strconv"
	"strings"

	"github.com/pontaoski/she/ast"
)

type Kind int

const (
	NumberKind Kind = iota
	StringKind
	ListKind
	FunctionKind
	BuiltInKind
)

func (k Kind) String() string {
	data := map[Kind]string{
		NumberKind:   "number",
		StringKind:   "string",
		ListKind:     "list",
		FunctionKind: "function",
		BuiltInKind:  "built-in function",
	}
	return data[k]
}

type Value interface {
	Kind() Kind
	// String is the display form used by PRINT.
	String() string
	// Repr is the form echoed by the shell.
	Repr() string
}

type Number struct {
	Value float64
}

type String struct {
	Value string
}

// List is shared by reference: every binding holding the same *List sees
// mutations made through any other.
type List struct {
	Elements []Value
}

type Function struct {
	Name     string
	Params   []string
	Body     ast.Node
	ExprBody bool
	// Closure is the context the function was defined in. Calls scope
	// their parameters under Closure.Table, not under the caller.
	Closure *Context
}

// NativeFunc implements a built-in. Arity is checked before it runs.
type NativeFunc func(ctx *Context, args []Value) (Value, error)

type BuiltIn struct {
	Name   string
	Params []string
	Fn     NativeFunc
}

var (
	Null  = &Number{0}
	False = &Number{0}
	True  = &Number{1}
	Pi    = &Number{math.Pi}
)

func NewNumber(v float64) *Number { return &Number{v} }
func NewString(v string) *String  { return &String{v} }

func NewList(elems ...Value) *List {
	return &List{Elements: elems}
}

func Bool(b bool) *Number {
	if b {
		return True
	}
	return False
}

func (v *Number) Kind() Kind   { return NumberKind }
func (v *String) Kind() Kind   { return StringKind }
func (v *List) Kind() Kind     { return ListKind }
func (v *Function) Kind() Kind { return FunctionKind }
func (v *BuiltIn) Kind() Kind  { return BuiltInKind }

func (v *Number) String() string {
	return strconv.FormatFloat(v.Value, 'f', -1, 64)
}

func (v *Number) Repr() string { return v.String() }

func (v *String) String() string { return v.Value }
func (v *String) Repr() string   { return strconv.Quote(v.Value) }

func (v *List) String() string {
	var elems []string
	for _, e := range v.Elements {
		elems = append(elems, e.String())
	}
	return strings.Join(elems, ", ")
}

func (v *List) Repr() string {
	var elems []string
	for _, e := range v.Elements {
		elems = append(elems, e.Repr())
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

func (v *Function) String() string {
	if v.Name == "" {
		return "<function <anonymous>>"
	}
	return "<function " + v.Name + ">"
}

func (v *Function) Repr() string { return v.String() }

func (v *BuiltIn) String() string { return "<built-in function " + v.Name + ">" }
func (v *BuiltIn) Repr() string   { return v.String() }

// IsTrue is the truth value used by IF and WHILE conditions.
func IsTrue(v Value) bool {
	switch v := v.(type) {
	case *Number:
		return v.Value != 0
	case *String:
		return v.Value != ""
	case *List:
		return len(v.Elements) > 0
	case *Function, *BuiltIn:
		return true
	}
	return false
}

// IsCallable reports whether v is a Function or a BuiltIn.
func IsCallable(v Value) bool {
	k := v.Kind()
	return k == FunctionKind || k == BuiltInKind
}
