package glsl

func (c *compiler) call(call *Call) expr {
	if typ, ok := TypeByName(call.Name); ok {
		return c.construct(call, typ)
	}
	args := make([]expr, len(call.Args))
	for i, a := range call.Args {
		args[i] = c.expr(a)
		if args[i].arr != nil {
			c.fail(args[i].pos, ErrUnsupported, "array argument %s", args[i].arr.name)
		}
	}
	if fns := c.funcs[call.Name]; len(fns) > 0 {
		return c.userCall(call, fns, args)
	}
	if b, ok := builtins[call.Name]; ok {
		for _, a := range args {
			if a.typ == Void {
				c.fail(a.pos, ErrType, "void argument to %s", call.Name)
			}
		}
		r, ok := b(c, call.Pos, args)
		if !ok {
			c.fail(call.Pos, ErrType, "no overload of %s for %s", call.Name, argTypes(args))
		}
		return fold(r)
	}
	c.fail(call.Pos, ErrUndefined, "function %s", call.Name)
	return expr{}
}

func argTypes(args []expr) string {
	s := "("
	for i, a := range args {
		if i > 0 {
			s += ", "
		}
		s += a.typ.String()
	}
	return s + ")"
}

func (c *compiler) resolve(call *Call, fns []*function, args []expr) *function {
	for _, promoteInts := range []bool{false, true} {
	next:
		for _, fn := range fns {
			if len(fn.params) != len(args) {
				continue
			}
			for i, p := range fn.params {
				at := args[i].typ
				if at == p {
					continue
				}
				if promoteInts && fn.dirs[i] == DirIn && at.Base() == Int && p == at.withBase(Float) {
					continue
				}
				continue next
			}
			return fn
		}
	}
	c.fail(call.Pos, ErrType, "no overload of %s for %s", call.Name, argTypes(args))
	return nil
}

func (c *compiler) userCall(call *Call, fns []*function, args []expr) expr {
	fn := c.resolve(call, fns, args)
	fn.called = true
	if c.cur != nil {
		c.cur.callees[fn] = true
	}
	for i, dir := range fn.dirs {
		if dir != DirIn && args[i].slots == nil {
			c.fail(args[i].pos, ErrType, "argument %d of %s must be assignable", i+1, fn.name)
		}
	}
	n := len(args)
	evals := make([]evalFn, n)
	for i, a := range args {
		evals[i] = a.eval
	}
	slots, dirs := fn.slots, fn.dirs
	sizes := make([]int, n)
	for i, p := range fn.params {
		sizes[i] = p.Size()
	}
	return expr{pos: call.Pos, typ: fn.ret, eval: func(m *machine) value {
		var vals [maxParams]value
		for i, f := range evals {
			if dirs[i] != DirOut {
				vals[i] = f(m)
			}
		}
		for i, off := range slots {
			copy(m.mem[off:off+sizes[i]], vals[i][:sizes[i]])
		}
		m.ret = value{}
		fn.exec(m)
		ret := m.ret
		for i, dir := range dirs {
			if dir == DirIn {
				continue
			}
			var v value
			copy(v[:sizes[i]], m.mem[slots[i]:slots[i]+sizes[i]])
			args[i].store(m, v)
		}
		return ret
	}}
}

func convertComponent(v float32, base Type) float32 {
	switch base {
	case Int:
		return float32(int32(v))
	case Bool:
		return boolf(v != 0)
	}
	return v
}

func (c *compiler) construct(call *Call, typ Type) expr {
	if typ == Void || typ.IsSampler() {
		c.fail(call.Pos, ErrType, "cannot construct %s", typ)
	}
	if len(call.Args) == 0 {
		c.fail(call.Pos, ErrType, "%s constructor needs arguments", typ)
	}
	args := make([]expr, len(call.Args))
	konst := true
	for i, a := range call.Args {
		args[i] = c.value(a)
		if args[i].typ.IsSampler() {
			c.fail(args[i].pos, ErrType, "sampler in %s constructor", typ)
		}
		konst = konst && args[i].konst
	}
	base := typ.Base()
	n := typ.Size()
	r := expr{pos: call.Pos, typ: typ, konst: konst}

	switch {
	case typ.IsScalar():
		if len(args) != 1 {
			c.fail(call.Pos, ErrType, "%s constructor takes one argument", typ)
		}
		ae := args[0].eval
		r.eval = func(m *machine) value {
			return value{convertComponent(ae(m)[0], base)}
		}
		return fold(r)

	case len(args) == 1 && args[0].typ.IsScalar():
		ae := args[0].eval
		if typ.IsMatrix() {
			cols := typ.Columns()
			r.eval = func(m *machine) (v value) {
				d := ae(m)[0]
				for i := range cols {
					v[i*cols+i] = d
				}
				return v
			}
		} else {
			r.eval = func(m *machine) value {
				return splat(convertComponent(ae(m)[0], base))
			}
		}
		return fold(r)

	case typ.IsMatrix() && len(args) == 1 && args[0].typ.IsMatrix():
		ae := args[0].eval
		dst, src := typ.Columns(), args[0].typ.Columns()
		r.eval = func(m *machine) (v value) {
			s := ae(m)
			for col := range dst {
				for row := range dst {
					switch {
					case col < src && row < src:
						v[col*dst+row] = s[col*src+row]
					case col == row:
						v[col*dst+row] = 1
					}
				}
			}
			return v
		}
		return fold(r)
	}

	// Component-wise fill from every argument in order.
	total := 0
	for i, a := range args {
		if typ.IsMatrix() && a.typ.IsMatrix() {
			c.fail(a.pos, ErrType, "matrix argument in multi-argument %s constructor", typ)
		}
		if total >= n {
			c.fail(args[i].pos, ErrType, "too many arguments to %s constructor", typ)
		}
		total += a.typ.Size()
	}
	if total < n {
		c.fail(call.Pos, ErrType, "not enough data for %s constructor", typ)
	}
	evals := make([]evalFn, len(args))
	sizes := make([]int, len(args))
	for i, a := range args {
		evals[i], sizes[i] = a.eval, a.typ.Size()
	}
	r.eval = func(m *machine) (v value) {
		k := 0
		for i, f := range evals {
			src := f(m)
			for j := 0; j < sizes[i] && k < n; j++ {
				v[k] = convertComponent(src[j], base)
				k++
			}
		}
		return v
	}
	return fold(r)
}
