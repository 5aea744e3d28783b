package glsl

type symbol struct {
	name     string
	typ      Type
	qual     Qualifier
	arrayLen int
	offset   int
	readonly bool
	konst    bool
	val      value
	sampler  int
}

func (s *symbol) size() int { return s.typ.Size() * max(s.arrayLen, 1) }

type scope struct {
	parent *scope
	syms   map[string]*symbol
}

func (c *compiler) push() {
	c.scope = &scope{parent: c.scope, syms: make(map[string]*symbol)}
}

func (c *compiler) pop() { c.scope = c.scope.parent }

func (c *compiler) lookup(name string) *symbol {
	for s := c.scope; s != nil; s = s.parent {
		if sym, ok := s.syms[name]; ok {
			return sym
		}
	}
	return nil
}

func (c *compiler) declare(pos Pos, sym *symbol) {
	if _, ok := c.scope.syms[sym.name]; ok {
		c.fail(pos, ErrType, "%s redeclared", sym.name)
	}
	c.scope.syms[sym.name] = sym
}

func (c *compiler) alloc(n int) int {
	if c.mem+n > MaxStorage {
		c.fail(Pos{}, ErrUnsupported, "variables exceed %d storage slots", MaxStorage)
	}
	off := c.mem
	c.mem += n
	return off
}

// function is a user-defined function.
type function struct {
	name    string
	ret     Type
	params  []Type
	dirs    []ParamDir
	slots   []int
	decl    *FuncDecl
	exec    execFn
	callees map[*function]bool
	called  bool
}

func (f *function) signature() string {
	s := f.name + "("
	for i, p := range f.params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ")"
}
