package glsl

func noop(*machine) ctrl { return ctrlNext }

func (c *compiler) stmt(s Stmt) execFn {
	switch s := s.(type) {
	case nil:
		return noop
	case *Block:
		c.push()
		defer c.pop()
		return c.list(s.List)
	case *DeclStmt:
		return c.localDecl(s.Decl)
	case *ExprStmt:
		x := c.expr(s.X)
		if x.arr != nil {
			return noop
		}
		xe := x.eval
		return func(m *machine) ctrl {
			xe(m)
			return ctrlNext
		}
	case *If:
		cond := c.condition(s.Cond)
		then, els := c.scoped(s.Then), c.scoped(s.Else)
		return func(m *machine) ctrl {
			if cond(m)[0] != 0 {
				return then(m)
			}
			return els(m)
		}
	case *For:
		c.push()
		defer c.pop()
		init := c.stmt(s.Init)
		cond := evalFn(func(*machine) value { return value{1} })
		if s.Cond != nil {
			cond = c.condition(s.Cond)
		}
		post := evalFn(func(*machine) value { return value{} })
		if s.Post != nil {
			post = c.value(s.Post).eval
		}
		c.loops++
		body := c.scoped(s.Body)
		c.loops--
		return loop(init, cond, post, body, false)
	case *While:
		cond := c.condition(s.Cond)
		c.loops++
		body := c.scoped(s.Body)
		c.loops--
		return loop(noop, cond, func(*machine) value { return value{} }, body, false)
	case *DoWhile:
		c.loops++
		body := c.scoped(s.Body)
		c.loops--
		cond := c.condition(s.Cond)
		return loop(noop, cond, func(*machine) value { return value{} }, body, true)
	case *Return:
		return c.ret(s)
	case *Break:
		if c.loops == 0 {
			c.fail(s.Pos, ErrSyntax, "break outside loop")
		}
		return func(*machine) ctrl { return ctrlBreak }
	case *Continue:
		if c.loops == 0 {
			c.fail(s.Pos, ErrSyntax, "continue outside loop")
		}
		return func(*machine) ctrl { return ctrlContinue }
	case *Discard:
		if !c.fragment {
			c.fail(s.Pos, ErrType, "discard in a vertex shader")
		}
		return func(m *machine) ctrl {
			m.discarded = true
			return ctrlDiscard
		}
	}
	c.fail(s.stmtPos(), ErrSyntax, "unexpected statement %T", s)
	return nil
}

// scoped compiles a sub-statement in its own scope.
func (c *compiler) scoped(s Stmt) execFn {
	c.push()
	defer c.pop()
	return c.stmt(s)
}

func (c *compiler) list(stmts []Stmt) execFn {
	fns := make([]execFn, 0, len(stmts))
	for _, s := range stmts {
		fns = append(fns, c.stmt(s))
	}
	return func(m *machine) ctrl {
		for _, f := range fns {
			if r := f(m); r != ctrlNext {
				return r
			}
			if m.discarded {
				return ctrlDiscard
			}
		}
		return ctrlNext
	}
}

func (c *compiler) condition(e Expr) evalFn {
	x := c.value(e)
	if x.typ != Bool {
		c.fail(x.pos, ErrType, "condition is %s, not bool", x.typ)
	}
	return x.eval
}

func loop(init execFn, cond, post evalFn, body execFn, bodyFirst bool) execFn {
	return func(m *machine) ctrl {
		if r := init(m); r != ctrlNext {
			return r
		}
		for i := 0; i < maxLoopIterations; i++ {
			if !(bodyFirst && i == 0) && cond(m)[0] == 0 {
				break
			}
			switch body(m) {
			case ctrlBreak:
				return ctrlNext
			case ctrlReturn:
				return ctrlReturn
			case ctrlDiscard:
				return ctrlDiscard
			}
			if m.discarded {
				return ctrlDiscard
			}
			post(m)
		}
		return ctrlNext
	}
}

func (c *compiler) ret(s *Return) execFn {
	want := Void
	if c.cur != nil {
		want = c.cur.ret
	}
	if s.X == nil {
		if want != Void {
			c.fail(s.Pos, ErrType, "missing return value")
		}
		return func(*machine) ctrl { return ctrlReturn }
	}
	if want == Void {
		c.fail(s.Pos, ErrType, "return value in void function")
	}
	x := c.convert(c.value(s.X), want)
	xe := x.eval
	return func(m *machine) ctrl {
		m.ret = xe(m)
		return ctrlReturn
	}
}

func (c *compiler) arrayLen(e Expr) int {
	if e == nil {
		return 0
	}
	n := c.value(e)
	if !n.konst || n.typ != Int {
		c.fail(n.pos, ErrType, "array size must be a constant int")
	}
	size := int(n.eval(nil)[0])
	if size <= 0 {
		c.fail(n.pos, ErrType, "array size must be positive")
	}
	if size > MaxArrayLen {
		c.fail(n.pos, ErrUnsupported, "array size %d exceeds %d", size, MaxArrayLen)
	}
	return size
}

func (c *compiler) localDecl(d *VarDecl) execFn {
	var fns []execFn
	for _, v := range d.Vars {
		if d.Type == Void || d.Type.IsSampler() {
			c.fail(v.Pos, ErrType, "local %s of type %s", v.Name, d.Type)
		}
		if d.Qual == QualConst {
			c.declare(v.Pos, c.constant(d.Type, v))
			continue
		}
		sym := &symbol{name: v.Name, typ: d.Type, arrayLen: c.arrayLen(v.ArrayLen), sampler: -1}
		sym.offset = c.alloc(sym.size())
		fns = append(fns, c.initializer(sym, v.Init))
		c.declare(v.Pos, sym)
	}
	return func(m *machine) ctrl {
		for _, f := range fns {
			f(m)
		}
		return ctrlNext
	}
}

// constant evaluates a const declaration at compile time.
func (c *compiler) constant(typ Type, v Declarator) *symbol {
	if v.ArrayLen != nil {
		c.fail(v.Pos, ErrUnsupported, "const array %s", v.Name)
	}
	if v.Init == nil {
		c.fail(v.Pos, ErrType, "const %s needs an initializer", v.Name)
	}
	x := c.convert(c.value(v.Init), typ)
	if !x.konst {
		c.fail(v.Pos, ErrType, "initializer of const %s is not constant", v.Name)
	}
	return &symbol{name: v.Name, typ: typ, konst: true, readonly: true, val: x.eval(nil), sampler: -1}
}

// initializer returns code that sets sym to init, or to zero without one.
func (c *compiler) initializer(sym *symbol, init Expr) execFn {
	off, n := sym.offset, sym.size()
	if init == nil {
		return func(m *machine) ctrl {
			clear(m.mem[off : off+n])
			return ctrlNext
		}
	}
	if sym.arrayLen > 0 {
		c.fail(init.exprPos(), ErrUnsupported, "array initializer for %s", sym.name)
	}
	x := c.convert(c.value(init), sym.typ)
	xe := x.eval
	return func(m *machine) ctrl {
		v := xe(m)
		copy(m.mem[off:off+n], v[:n])
		return ctrlNext
	}
}
