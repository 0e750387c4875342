// Command nodegen writes the marker and span methods for closed sets of
// node types declared in an .adt file:
//
//	sum Node = NumberLiteral | StringLiteral | ... ;
//
// Every member is a pointer-receiver struct with a Pos types.Span field.
package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/alecthomas/participle"

	. "github.com/dave/jennifer/jen"
)

const typesPath = "github.com/pontaoski/she/types"

type SumDecls struct {
	Sums []*Sum `@@*`
}

type Sum struct {
	Name    string   `"sum" @Ident "="`
	Members []string `"|"? @Ident ( "|" @Ident )* ";"`
}

func GenerateMethods(pkgname string, t *SumDecls) string {
	f := NewFile(pkgname)
	f.HeaderComment("Code generated by nodegen from nodes.adt. DO NOT EDIT.")

	for _, sum := range t.Sums {
		for _, member := range sum.Members {
			recv := Id("v").Op("*").Id(member)

			f.Func().Params(recv.Clone()).Id("is_" + sum.Name).Params().Block()
			f.Func().Params(recv.Clone()).Id("Span").Params().Qual(typesPath, "Span").Block(
				Return(Id("v").Dot("Pos")),
			)
		}
	}

	return fmt.Sprintf("%#v", f)
}

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: nodegen IN.adt OUT.go PACKAGE")
		os.Exit(2)
	}

	parser := participle.MustBuild(&SumDecls{})

	in := os.Args[1]
	out := os.Args[2]
	pkgname := os.Args[3]

	inData, err := ioutil.ReadFile(in)
	if err != nil {
		panic(err)
	}

	decls := SumDecls{}
	err = parser.ParseBytes(inData, &decls)
	if err != nil {
		panic(err)
	}

	err = ioutil.WriteFile(out, []byte(GenerateMethods(pkgname, &decls)), 0o644)
	if err != nil {
		panic(err)
	}
}
