package value

import "github.com/pontaoski/she/types"

// Context is one execution frame. Parent links the caller and is only
// followed for tracebacks and depth accounting; names resolve through Table.
type Context struct {
	Name   string
	Parent *Context
	Table  *SymbolTable
	// Entry is where the frame was entered from, in the parent's source.
	Entry types.Position
	Depth int
}

func NewContext(name string, parent *Context, table *SymbolTable, entry types.Position) *Context {
	depth := 0
	if parent != nil {
		depth = parent.Depth + 1
	}

	return &Context{
		Name:   name,
		Parent: parent,
		Table:  table,
		Entry:  entry,
		Depth:  depth,
	}
}
