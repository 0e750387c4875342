package ast

import (
	"fmt"
	"strconv"
	"strings"
)

func nodeString(n Node) string {
	if n == nil {
		return ""
	}
	return n.(fmt.Stringer).String()
}

func (v *NumberLiteral) String() string {
	return strconv.FormatFloat(v.Value, 'f', -1, 64)
}

func (v *StringLiteral) String() string {
	return strconv.Quote(v.Value)
}

func (v *ListLiteral) String() string {
	var elems []string
	for _, e := range v.Elements {
		elems = append(elems, nodeString(e))
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

func (v *VarAccess) String() string {
	return v.Name
}

func (v *VarAssign) String() string {
	if v.Declare {
		return fmt.Sprintf("(VAR %s = %s)", v.Name, nodeString(v.Value))
	}
	return fmt.Sprintf("(%s = %s)", v.Name, nodeString(v.Value))
}

func (v *BinaryOp) String() string {
	if v.Op.Literal == "[" {
		return fmt.Sprintf("%s[%s]", nodeString(v.Left), nodeString(v.Right))
	}
	return fmt.Sprintf("(%s %s %s)", nodeString(v.Left), v.Op.Literal, nodeString(v.Right))
}

func (v *UnaryOp) String() string {
	if v.Op.Literal == "NOT" {
		return fmt.Sprintf("(NOT %s)", nodeString(v.Operand))
	}
	return fmt.Sprintf("(%s%s)", v.Op.Literal, nodeString(v.Operand))
}

func (v *If) String() string {
	var b strings.Builder
	for i, c := range v.Cases {
		kw := "ELIF"
		if i == 0 {
			kw = "IF"
		}
		fmt.Fprintf(&b, "%s %s THEN %s ", kw, nodeString(c.Condition), nodeString(c.Body))
	}
	if v.Else != nil {
		fmt.Fprintf(&b, "ELSE %s ", nodeString(v.Else))
	}
	return "(" + strings.TrimSpace(b.String()) + ")"
}

func (v *For) String() string {
	step := ""
	if v.Step != nil {
		step = " STEP " + nodeString(v.Step)
	}
	return fmt.Sprintf("(FOR %s = %s TO %s%s THEN %s)", v.Var, nodeString(v.Start), nodeString(v.End), step, nodeString(v.Body))
}

func (v *While) String() string {
	return fmt.Sprintf("(WHILE %s THEN %s)", nodeString(v.Condition), nodeString(v.Body))
}

func (v *FuncDef) String() string {
	head := "FUN"
	if v.Name != "" {
		head += " " + v.Name
	}
	head += "(" + strings.Join(v.Params, ", ") + ")"
	if v.ExprBody {
		return fmt.Sprintf("(%s -> %s)", head, nodeString(v.Body))
	}
	return fmt.Sprintf("(%s %s)", head, nodeString(v.Body))
}

func (v *Call) String() string {
	var args []string
	for _, a := range v.Args {
		args = append(args, nodeString(a))
	}
	return fmt.Sprintf("%s(%s)", nodeString(v.Callee), strings.Join(args, ", "))
}

func (v *Return) String() string {
	if v.Value == nil {
		return "RETURN"
	}
	return "RETURN " + nodeString(v.Value)
}

func (v *Continue) String() string { return "CONTINUE" }
func (v *Break) String() string    { return "BREAK" }
