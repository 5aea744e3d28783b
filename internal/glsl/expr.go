package glsl

func (c *compiler) expr(e Expr) expr {
	switch e := e.(type) {
	case *Literal:
		return constExpr(e.Pos, e.Type, value{e.Value})
	case *Ident:
		sym := c.lookup(e.Name)
		if sym == nil {
			c.fail(e.Pos, ErrUndefined, "identifier %s", e.Name)
		}
		return c.varExpr(e.Pos, sym)
	case *Field:
		return c.swizzle(e)
	case *Index:
		return c.index(e)
	case *Unary:
		return c.unary(e)
	case *Binary:
		return c.binary(e)
	case *Assign:
		return c.assign(e)
	case *Ternary:
		return c.ternary(e)
	case *Call:
		return c.call(e)
	case *Sequence:
		list := make([]evalFn, len(e.List))
		var last expr
		for i, x := range e.List {
			last = c.value(x)
			list[i] = last.eval
		}
		return expr{pos: e.Pos, typ: last.typ, eval: func(m *machine) (v value) {
			for _, f := range list {
				v = f(m)
			}
			return v
		}}
	}
	c.fail(e.exprPos(), ErrSyntax, "unexpected expression %T", e)
	return expr{}
}

// value compiles e and rejects bare arrays and void results.
func (c *compiler) value(e Expr) expr {
	x := c.expr(e)
	if x.arr != nil {
		c.fail(x.pos, ErrUnsupported, "array %s used as a value", x.arr.name)
	}
	if x.typ == Void {
		c.fail(x.pos, ErrType, "void value used")
	}
	return x
}

func (c *compiler) varExpr(pos Pos, sym *symbol) expr {
	if sym.konst {
		return constExpr(pos, sym.typ, sym.val)
	}
	if sym.arrayLen > 0 {
		return expr{pos: pos, typ: sym.typ, arr: sym}
	}
	off, n := sym.offset, sym.typ.Size()
	e := expr{pos: pos, typ: sym.typ, eval: func(m *machine) (v value) {
		copy(v[:n], m.mem[off:off+n])
		return v
	}}
	if !sym.readonly {
		e.plain, e.base = true, off
		e.slots = func(_ *machine, idx *[16]int) {
			for i := range n {
				idx[i] = off + i
			}
		}
	}
	return e
}

var swizzleSets = [...]string{"xyzw", "rgba", "stpq"}

func parseSwizzle(name string, size int) ([]int, bool) {
	if len(name) == 0 || len(name) > 4 {
		return nil, false
	}
	for _, set := range swizzleSets {
		comps := make([]int, 0, len(name))
		for i := 0; i < len(name); i++ {
			k := indexByte(set, name[i])
			if k < 0 || k >= size {
				break
			}
			comps = append(comps, k)
		}
		if len(comps) == len(name) {
			return comps, true
		}
	}
	return nil, false
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

func (c *compiler) swizzle(f *Field) expr {
	x := c.value(f.X)
	if !x.typ.IsVector() {
		c.fail(f.Pos, ErrType, "cannot select .%s from %s", f.Name, x.typ)
	}
	comps, ok := parseSwizzle(f.Name, x.typ.Size())
	if !ok {
		c.fail(f.Pos, ErrType, "invalid swizzle .%s on %s", f.Name, x.typ)
	}
	xe := x.eval
	r := expr{pos: f.Pos, typ: vecOf(x.typ.Base(), len(comps)), konst: x.konst}
	r.eval = func(m *machine) (v value) {
		src := xe(m)
		for i, k := range comps {
			v[i] = src[k]
		}
		return v
	}
	seen := 0
	unique := true
	for _, k := range comps {
		if seen&(1<<k) != 0 {
			unique = false
		}
		seen |= 1 << k
	}
	if x.slots != nil && unique {
		xs := x.slots
		r.slots = func(m *machine, idx *[16]int) {
			var tmp [16]int
			xs(m, &tmp)
			for i, k := range comps {
				idx[i] = tmp[k]
			}
		}
	}
	return fold(r)
}

func (c *compiler) intIndex(e Expr) expr {
	i := c.value(e)
	if i.typ != Int {
		c.fail(i.pos, ErrType, "index must be int, not %s", i.typ)
	}
	return i
}

func (c *compiler) index(ix *Index) expr {
	x := c.expr(ix.X)
	i := c.intIndex(ix.Index)
	ie := i.eval

	limit := 0
	switch {
	case x.arr != nil:
		limit = x.arr.arrayLen
	case x.typ.IsVector():
		limit = x.typ.Size()
	case x.typ.IsMatrix():
		limit = x.typ.Columns()
	default:
		c.fail(ix.Pos, ErrType, "cannot index %s", x.typ)
	}
	if i.konst {
		if k := int(i.eval(nil)[0]); k < 0 || k >= limit {
			c.fail(ix.Pos, ErrType, "index %d out of range [0,%d)", k, limit)
		}
	}

	if sym := x.arr; sym != nil {
		base, n := sym.offset, sym.typ.Size()
		r := expr{pos: ix.Pos, typ: sym.typ}
		r.eval = func(m *machine) (v value) {
			o := base + clampIndex(ie(m)[0], limit)*n
			copy(v[:n], m.mem[o:o+n])
			return v
		}
		if !sym.readonly {
			r.slots = func(m *machine, idx *[16]int) {
				o := base + clampIndex(ie(m)[0], limit)*n
				for k := range n {
					idx[k] = o + k
				}
			}
		}
		return r
	}

	xe := x.eval
	if x.typ.IsVector() {
		r := expr{pos: ix.Pos, typ: x.typ.Base(), konst: x.konst && i.konst}
		r.eval = func(m *machine) value {
			return value{xe(m)[clampIndex(ie(m)[0], limit)]}
		}
		if xs := x.slots; xs != nil {
			r.slots = func(m *machine, idx *[16]int) {
				var tmp [16]int
				xs(m, &tmp)
				idx[0] = tmp[clampIndex(ie(m)[0], limit)]
			}
		}
		return fold(r)
	}

	rows := limit
	r := expr{pos: ix.Pos, typ: vecOf(Float, rows), konst: x.konst && i.konst}
	r.eval = func(m *machine) (v value) {
		src := xe(m)
		o := clampIndex(ie(m)[0], limit) * rows
		copy(v[:rows], src[o:o+rows])
		return v
	}
	if xs := x.slots; xs != nil {
		r.slots = func(m *machine, idx *[16]int) {
			var tmp [16]int
			xs(m, &tmp)
			o := clampIndex(ie(m)[0], limit) * rows
			for k := range rows {
				idx[k] = tmp[o+k]
			}
		}
	}
	return fold(r)
}

func (c *compiler) unary(u *Unary) expr {
	x := c.value(u.X)
	xe := x.eval
	n := x.typ.Size()
	switch u.Op {
	case "+":
		if !x.typ.isNumeric() {
			c.fail(u.Pos, ErrType, "unary + on %s", x.typ)
		}
		return x
	case "-":
		if !x.typ.isNumeric() {
			c.fail(u.Pos, ErrType, "unary - on %s", x.typ)
		}
		return fold(expr{pos: u.Pos, typ: x.typ, konst: x.konst, eval: func(m *machine) value {
			v := xe(m)
			for i := range n {
				v[i] = -v[i]
			}
			return v
		}})
	case "!":
		if x.typ != Bool {
			c.fail(u.Pos, ErrType, "! on %s", x.typ)
		}
		return fold(expr{pos: u.Pos, typ: Bool, konst: x.konst, eval: func(m *machine) value {
			return value{boolf(xe(m)[0] == 0)}
		}})
	}
	// ++ and --
	if x.slots == nil {
		c.fail(u.Pos, ErrType, "%s needs an assignable operand", u.Op)
	}
	if !x.typ.isNumeric() {
		c.fail(u.Pos, ErrType, "%s on %s", u.Op, x.typ)
	}
	delta := float32(1)
	if u.Op == "--" {
		delta = -1
	}
	postfix := u.Postfix
	return expr{pos: u.Pos, typ: x.typ, eval: func(m *machine) value {
		old := xe(m)
		nv := old
		for i := range n {
			nv[i] += delta
		}
		x.store(m, nv)
		if postfix {
			return old
		}
		return nv
	}}
}

// promote converts an int operand to float when the other one is float.
func promote(x, y expr) (expr, expr) {
	xb, yb := x.typ.Base(), y.typ.Base()
	switch {
	case xb == Int && yb == Float:
		x = retype(x, x.typ.withBase(Float))
	case xb == Float && yb == Int:
		y = retype(y, y.typ.withBase(Float))
	}
	return x, y
}

// retype reinterprets x as typ. Ints are stored as whole floats, so
// int to float needs no conversion.
func retype(x expr, typ Type) expr {
	return expr{pos: x.pos, typ: typ, eval: x.eval, konst: x.konst}
}

// convert adapts x to typ for assignment, initialization and returns.
func (c *compiler) convert(x expr, typ Type) expr {
	if x.typ == typ {
		return x
	}
	if x.typ.Base() == Int && typ.Base() == Float && !typ.IsMatrix() && x.typ.Size() == typ.Size() {
		return retype(x, typ)
	}
	c.fail(x.pos, ErrType, "cannot use %s as %s", x.typ, typ)
	return expr{}
}

func (c *compiler) binary(b *Binary) expr {
	x := c.value(b.X)
	y := c.value(b.Y)
	switch b.Op {
	case "+", "-", "*", "/", "%":
		return c.arith(b.Pos, b.Op, x, y)
	case "<", ">", "<=", ">=":
		x, y = promote(x, y)
		if !x.typ.IsScalar() || x.typ != y.typ || !x.typ.isNumeric() {
			c.fail(b.Pos, ErrType, "%s %s %s", x.typ, b.Op, y.typ)
		}
		xe, ye := x.eval, y.eval
		var f func(a, b float32) bool
		switch b.Op {
		case "<":
			f = func(a, b float32) bool { return a < b }
		case ">":
			f = func(a, b float32) bool { return a > b }
		case "<=":
			f = func(a, b float32) bool { return a <= b }
		default:
			f = func(a, b float32) bool { return a >= b }
		}
		return fold(expr{pos: b.Pos, typ: Bool, konst: x.konst && y.konst, eval: func(m *machine) value {
			return value{boolf(f(xe(m)[0], ye(m)[0]))}
		}})
	case "==", "!=":
		x, y = promote(x, y)
		if x.typ != y.typ || x.typ.IsSampler() {
			c.fail(b.Pos, ErrType, "%s %s %s", x.typ, b.Op, y.typ)
		}
		xe, ye := x.eval, y.eval
		n := x.typ.Size()
		want := b.Op == "=="
		return fold(expr{pos: b.Pos, typ: Bool, konst: x.konst && y.konst, eval: func(m *machine) value {
			a, bv := xe(m), ye(m)
			eq := true
			for i := range n {
				if a[i] != bv[i] {
					eq = false
					break
				}
			}
			return value{boolf(eq == want)}
		}})
	case "&&", "||", "^^":
		if x.typ != Bool || y.typ != Bool {
			c.fail(b.Pos, ErrType, "%s %s %s", x.typ, b.Op, y.typ)
		}
		xe, ye := x.eval, y.eval
		r := expr{pos: b.Pos, typ: Bool, konst: x.konst && y.konst}
		switch b.Op {
		case "&&":
			r.eval = func(m *machine) value {
				if xe(m)[0] == 0 {
					return value{0}
				}
				return value{boolf(ye(m)[0] != 0)}
			}
		case "||":
			r.eval = func(m *machine) value {
				if xe(m)[0] != 0 {
					return value{1}
				}
				return value{boolf(ye(m)[0] != 0)}
			}
		default:
			r.eval = func(m *machine) value {
				return value{boolf((xe(m)[0] != 0) != (ye(m)[0] != 0))}
			}
		}
		return fold(r)
	}
	c.fail(b.Pos, ErrSyntax, "unknown operator %s", b.Op)
	return expr{}
}

func arithOp(op string, integer bool) func(a, b float32) float32 {
	switch op {
	case "+":
		return func(a, b float32) float32 { return a + b }
	case "-":
		return func(a, b float32) float32 { return a - b }
	case "*":
		return func(a, b float32) float32 { return a * b }
	case "%":
		return func(a, b float32) float32 {
			if int32(b) == 0 {
				return 0
			}
			return float32(int32(a) % int32(b))
		}
	}
	if integer {
		return func(a, b float32) float32 {
			if int32(b) == 0 {
				return 0
			}
			return float32(int32(a) / int32(b))
		}
	}
	return func(a, b float32) float32 { return a / b }
}

func (c *compiler) arith(pos Pos, op string, x, y expr) expr {
	x, y = promote(x, y)
	if !x.typ.isNumeric() || !y.typ.isNumeric() || x.typ.Base() != y.typ.Base() {
		c.fail(pos, ErrType, "%s %s %s", x.typ, op, y.typ)
	}
	integer := x.typ.Base() == Int
	if op == "%" && !integer {
		c.fail(pos, ErrType, "%% needs int operands, have %s", x.typ)
	}
	konst := x.konst && y.konst
	xe, ye := x.eval, y.eval

	if op == "*" {
		switch {
		case x.typ.IsMatrix() && y.typ.IsMatrix():
			if x.typ != y.typ {
				c.fail(pos, ErrType, "%s * %s", x.typ, y.typ)
			}
			n := x.typ.Columns()
			return fold(expr{pos: pos, typ: x.typ, konst: konst, eval: func(m *machine) value {
				return matMul(xe(m), ye(m), n)
			}})
		case x.typ.IsMatrix() && y.typ.IsVector():
			n := x.typ.Columns()
			if y.typ.Size() != n {
				c.fail(pos, ErrType, "%s * %s", x.typ, y.typ)
			}
			return fold(expr{pos: pos, typ: y.typ, konst: konst, eval: func(m *machine) value {
				return matVec(xe(m), ye(m), n)
			}})
		case x.typ.IsVector() && y.typ.IsMatrix():
			n := y.typ.Columns()
			if x.typ.Size() != n {
				c.fail(pos, ErrType, "%s * %s", x.typ, y.typ)
			}
			return fold(expr{pos: pos, typ: x.typ, konst: konst, eval: func(m *machine) value {
				return vecMat(xe(m), ye(m), n)
			}})
		}
	}

	var typ Type
	switch {
	case x.typ == y.typ:
		typ = x.typ
	case x.typ.IsScalar():
		typ = y.typ
	case y.typ.IsScalar():
		typ = x.typ
	default:
		c.fail(pos, ErrType, "%s %s %s", x.typ, op, y.typ)
	}
	n := typ.Size()
	xs := x.typ.IsScalar() && n > 1
	ys := y.typ.IsScalar() && n > 1
	f := arithOp(op, integer)
	return fold(expr{pos: pos, typ: typ, konst: konst, eval: func(m *machine) (r value) {
		a, b := xe(m), ye(m)
		if xs {
			a = splat(a[0])
		}
		if ys {
			b = splat(b[0])
		}
		for i := range n {
			r[i] = f(a[i], b[i])
		}
		return r
	}})
}

func matMul(a, b value, n int) (r value) {
	for col := range n {
		for row := range n {
			var s float32
			for k := range n {
				s += a[k*n+row] * b[col*n+k]
			}
			r[col*n+row] = s
		}
	}
	return r
}

func matVec(a, v value, n int) (r value) {
	for row := range n {
		var s float32
		for col := range n {
			s += a[col*n+row] * v[col]
		}
		r[row] = s
	}
	return r
}

func vecMat(v, a value, n int) (r value) {
	for col := range n {
		var s float32
		for row := range n {
			s += v[row] * a[col*n+row]
		}
		r[col] = s
	}
	return r
}

func (c *compiler) assign(a *Assign) expr {
	l := c.expr(a.L)
	if l.arr != nil {
		c.fail(a.Pos, ErrUnsupported, "assignment to array %s", l.arr.name)
	}
	if l.slots == nil {
		c.fail(a.Pos, ErrType, "left side of %s is not assignable", a.Op)
	}
	r := c.value(a.R)
	if a.Op == "=" {
		r = c.convert(r, l.typ)
	} else {
		r = c.arith(a.Pos, a.Op[:1], l, r)
		if r.typ != l.typ {
			c.fail(a.Pos, ErrType, "%s %s %s changes type", l.typ, a.Op, r.typ)
		}
	}
	re := r.eval
	return expr{pos: a.Pos, typ: l.typ, eval: func(m *machine) value {
		v := re(m)
		l.store(m, v)
		return v
	}}
}

func (c *compiler) ternary(t *Ternary) expr {
	cond := c.value(t.Cond)
	if cond.typ != Bool {
		c.fail(t.Pos, ErrType, "condition is %s, not bool", cond.typ)
	}
	x, y := promote(c.value(t.Then), c.value(t.Else))
	if x.typ != y.typ {
		c.fail(t.Pos, ErrType, "branches are %s and %s", x.typ, y.typ)
	}
	ce, xe, ye := cond.eval, x.eval, y.eval
	return fold(expr{pos: t.Pos, typ: x.typ, konst: cond.konst && x.konst && y.konst, eval: func(m *machine) value {
		if ce(m)[0] != 0 {
			return xe(m)
		}
		return ye(m)
	}})
}
