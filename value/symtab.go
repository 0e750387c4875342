package value

type SymbolTable struct {
	symbols map[string]Value
	parent  *SymbolTable
}

func NewSymbolTable(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{
		symbols: make(map[string]Value),
		parent:  parent,
	}
}

func (t *SymbolTable) Parent() *SymbolTable {
	return t.parent
}

// Root returns the outermost table of the chain, the global scope.
func (t *SymbolTable) Root() *SymbolTable {
	for t.parent != nil {
		t = t.parent
	}
	return t
}

func (t *SymbolTable) Get(name string) (Value, bool) {
	for s := t; s != nil; s = s.parent {
		if val, ok := s.symbols[name]; ok {
			return val, true
		}
	}

	return nil, false
}

// Set assigns to the innermost table already holding name, or binds it in
// t when no table in the chain does.
func (t *SymbolTable) Set(name string, v Value) {
	for s := t; s != nil; s = s.parent {
		if _, ok := s.symbols[name]; ok {
			s.symbols[name] = v
			return
		}
	}

	t.symbols[name] = v
}

// Define binds name in t itself, shadowing any outer binding.
func (t *SymbolTable) Define(name string, v Value) {
	t.symbols[name] = v
}

// Names lists the names bound directly in t.
func (t *SymbolTable) Names() []string {
	names := make([]string, 0, len(t.symbols))
	for name := range t.symbols {
		names = append(names, name)
	}
	return names
}
