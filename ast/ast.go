package ast

import "github.com/pontaoski/she/types"

//go:generate sh -c "cd ../tool && go run . ../ast/nodes.adt ../ast/nodes_gen.go ast"

// Node is implemented by the types listed in nodes.adt. Each carries its
// source span in a Pos field.
type Node interface {
	is_Node()
	Span() types.Span
}

type NumberLiteral struct {
	Value float64
	Pos   types.Span
}

type StringLiteral struct {
	Value string
	Pos   types.Span
}

// ListLiteral is also the root of every program and the body of block
// constructs: one element per statement.
type ListLiteral struct {
	Elements []Node
	Pos      types.Span
}

type VarAccess struct {
	Name string
	Pos  types.Span
}

// VarAssign with Declare set binds in the innermost scope (VAR x = ...);
// otherwise the assignment goes to the scope that already owns the name.
type VarAssign struct {
	Name    string
	Value   Node
	Declare bool
	Pos     types.Span
}

// BinaryOp covers arithmetic, comparison, logic and list indexing
// (Op is an LSQUARE token for xs[i]).
type BinaryOp struct {
	Left  Node
	Op    types.Token
	Right Node
	Pos   types.Span
}

type UnaryOp struct {
	Op      types.Token
	Operand Node
	Pos     types.Span
}

type IfCase struct {
	Condition Node
	Body      Node
}

type If struct {
	Cases []IfCase
	Else  Node
	Pos   types.Span
}

type For struct {
	Var   string
	Start Node
	End   Node
	Step  Node
	Body  Node
	Pos   types.Span
}

type While struct {
	Condition Node
	Body      Node
	Pos       types.Span
}

type FuncDef struct {
	Name     string
	Params   []string
	Body     Node
	ExprBody bool
	Pos      types.Span
}

type Call struct {
	Callee Node
	Args   []Node
	Pos    types.Span
}

type Return struct {
	Value Node
	Pos   types.Span
}

type Continue struct {
	Pos types.Span
}

type Break struct {
	Pos types.Span
}
