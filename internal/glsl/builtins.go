package glsl

import "github.com/chewxy/math32"

// builtinFn type-checks args and returns the compiled call, or false when
// no overload matches.
type builtinFn func(c *compiler, pos Pos, args []expr) (expr, bool)

var builtins map[string]builtinFn

func init() {
	builtins = map[string]builtinFn{
		"radians":     genUnary(func(x float32) float32 { return x * math32.Pi / 180 }),
		"degrees":     genUnary(func(x float32) float32 { return x * 180 / math32.Pi }),
		"sin":         genUnary(math32.Sin),
		"cos":         genUnary(math32.Cos),
		"tan":         genUnary(math32.Tan),
		"asin":        genUnary(math32.Asin),
		"acos":        genUnary(math32.Acos),
		"exp":         genUnary(math32.Exp),
		"log":         genUnary(math32.Log),
		"exp2":        genUnary(math32.Exp2),
		"log2":        genUnary(math32.Log2),
		"sqrt":        genUnary(math32.Sqrt),
		"inversesqrt": genUnary(func(x float32) float32 { return 1 / math32.Sqrt(x) }),
		"abs":         genUnary(math32.Abs),
		"sign":        genUnary(sign),
		"floor":       genUnary(math32.Floor),
		"ceil":        genUnary(math32.Ceil),
		"fract":       genUnary(func(x float32) float32 { return x - math32.Floor(x) }),
		"pow":         genBinary(math32.Pow, false),
		"mod":         genBinary(mod, true),
		"min":         genBinary(math32.Min, true),
		"max":         genBinary(math32.Max, true),
		"atan":        atan,
		"clamp":       clamp,
		"mix":         mix,
		"step":        step,
		"smoothstep":  smoothstep,
		"length":      length,
		"distance":    distance,
		"dot":         dot,
		"cross":       cross,
		"normalize":   normalize,
		"faceforward": faceforward,
		"reflect":     reflect,
		"refract":     refract,

		"matrixCompMult":   matrixCompMult,
		"lessThan":         vecCompare(func(a, b float32) bool { return a < b }, false),
		"lessThanEqual":    vecCompare(func(a, b float32) bool { return a <= b }, false),
		"greaterThan":      vecCompare(func(a, b float32) bool { return a > b }, false),
		"greaterThanEqual": vecCompare(func(a, b float32) bool { return a >= b }, false),
		"equal":            vecCompare(func(a, b float32) bool { return a == b }, true),
		"notEqual":         vecCompare(func(a, b float32) bool { return a != b }, true),
		"any":              boolReduce(false),
		"all":              boolReduce(true),
		"not":              boolNot,

		"texture2D":     texture2D(false),
		"texture2DLod":  texture2D(false),
		"texture2DProj": texture2D(true),
	}
}

func sign(x float32) float32 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func mod(x, y float32) float32 { return x - y*math32.Floor(x/y) }

// floatArg promotes an int argument to float.
func floatArg(a expr) expr {
	if a.typ.Base() == Int {
		return retype(a, a.typ.withBase(Float))
	}
	return a
}

func allConst(args []expr) bool {
	for _, a := range args {
		if !a.konst {
			return false
		}
	}
	return true
}

func genUnary(f func(float32) float32) builtinFn {
	return func(_ *compiler, pos Pos, args []expr) (expr, bool) {
		if len(args) != 1 {
			return expr{}, false
		}
		x := floatArg(args[0])
		if !x.typ.isGenFloat() {
			return expr{}, false
		}
		xe, n := x.eval, x.typ.Size()
		return expr{pos: pos, typ: x.typ, konst: x.konst, eval: func(m *machine) value {
			v := xe(m)
			for i := range n {
				v[i] = f(v[i])
			}
			return v
		}}, true
	}
}

// genBinary builds f(genType, genType); scalarY also accepts f(genType, float).
func genBinary(f func(a, b float32) float32, scalarY bool) builtinFn {
	return func(_ *compiler, pos Pos, args []expr) (expr, bool) {
		if len(args) != 2 {
			return expr{}, false
		}
		x, y := floatArg(args[0]), floatArg(args[1])
		if !x.typ.isGenFloat() || (y.typ != x.typ && !(scalarY && y.typ == Float)) {
			return expr{}, false
		}
		xe, ye, n := x.eval, y.eval, x.typ.Size()
		broadcast := y.typ != x.typ
		return expr{pos: pos, typ: x.typ, konst: allConst(args), eval: func(m *machine) value {
			a, b := xe(m), ye(m)
			if broadcast {
				b = splat(b[0])
			}
			for i := range n {
				a[i] = f(a[i], b[i])
			}
			return a
		}}, true
	}
}

func atan(c *compiler, pos Pos, args []expr) (expr, bool) {
	if len(args) == 1 {
		return genUnary(math32.Atan)(c, pos, args)
	}
	return genBinary(math32.Atan2, false)(c, pos, args)
}

// ternaryArgs checks (genType, T, T) where T is genType or float and
// returns whether the trailing arguments must be broadcast.
func ternaryArgs(args []expr, lastOnly bool) ([3]expr, [3]bool, bool) {
	var out [3]expr
	var bc [3]bool
	if len(args) != 3 {
		return out, bc, false
	}
	for i := range args {
		out[i] = floatArg(args[i])
	}
	t := out[0].typ
	if !t.isGenFloat() {
		return out, bc, false
	}
	for i := 1; i < 3; i++ {
		switch {
		case out[i].typ == t:
		case out[i].typ == Float && (!lastOnly || i == 2):
			bc[i] = true
		default:
			return out, bc, false
		}
	}
	return out, bc, true
}

func ternary3(pos Pos, args []expr, lastOnly bool, f func(a, b, c float32) float32) (expr, bool) {
	a, bc, ok := ternaryArgs(args, lastOnly)
	if !ok {
		return expr{}, false
	}
	e0, e1, e2 := a[0].eval, a[1].eval, a[2].eval
	n := a[0].typ.Size()
	return expr{pos: pos, typ: a[0].typ, konst: allConst(args), eval: func(m *machine) value {
		x, y, z := e0(m), e1(m), e2(m)
		if bc[1] {
			y = splat(y[0])
		}
		if bc[2] {
			z = splat(z[0])
		}
		for i := range n {
			x[i] = f(x[i], y[i], z[i])
		}
		return x
	}}, true
}

func clamp(_ *compiler, pos Pos, args []expr) (expr, bool) {
	return ternary3(pos, args, false, func(x, lo, hi float32) float32 {
		return math32.Min(math32.Max(x, lo), hi)
	})
}

func mix(_ *compiler, pos Pos, args []expr) (expr, bool) {
	return ternary3(pos, args, true, func(x, y, a float32) float32 {
		return x*(1-a) + y*a
	})
}

func step(_ *compiler, pos Pos, args []expr) (expr, bool) {
	if len(args) != 2 {
		return expr{}, false
	}
	edge, x := floatArg(args[0]), floatArg(args[1])
	if !x.typ.isGenFloat() || (edge.typ != x.typ && edge.typ != Float) {
		return expr{}, false
	}
	ee, xe, n := edge.eval, x.eval, x.typ.Size()
	broadcast := edge.typ != x.typ
	return expr{pos: pos, typ: x.typ, konst: allConst(args), eval: func(m *machine) value {
		e, v := ee(m), xe(m)
		if broadcast {
			e = splat(e[0])
		}
		for i := range n {
			v[i] = boolf(v[i] >= e[i])
		}
		return v
	}}, true
}

func smoothstep(_ *compiler, pos Pos, args []expr) (expr, bool) {
	if len(args) != 3 {
		return expr{}, false
	}
	// smoothstep(edge0, edge1, x): the edges are genType or float.
	e0, e1, x := floatArg(args[0]), floatArg(args[1]), floatArg(args[2])
	if !x.typ.isGenFloat() || e0.typ != e1.typ || (e0.typ != x.typ && e0.typ != Float) {
		return expr{}, false
	}
	f0, f1, fx, n := e0.eval, e1.eval, x.eval, x.typ.Size()
	broadcast := e0.typ != x.typ
	return expr{pos: pos, typ: x.typ, konst: allConst(args), eval: func(m *machine) value {
		a, b, v := f0(m), f1(m), fx(m)
		if broadcast {
			a, b = splat(a[0]), splat(b[0])
		}
		for i := range n {
			t := (v[i] - a[i]) / (b[i] - a[i])
			t = math32.Min(math32.Max(t, 0), 1)
			v[i] = t * t * (3 - 2*t)
		}
		return v
	}}, true
}

func dotN(a, b value, n int) float32 {
	var s float32
	for i := range n {
		s += a[i] * b[i]
	}
	return s
}

func sameGenFloat(args []expr, count int) ([]expr, bool) {
	if len(args) != count {
		return nil, false
	}
	out := make([]expr, count)
	for i, a := range args {
		out[i] = floatArg(a)
		if !out[i].typ.isGenFloat() || out[i].typ != out[0].typ {
			return nil, false
		}
	}
	return out, true
}

func length(_ *compiler, pos Pos, args []expr) (expr, bool) {
	a, ok := sameGenFloat(args, 1)
	if !ok {
		return expr{}, false
	}
	xe, n := a[0].eval, a[0].typ.Size()
	return expr{pos: pos, typ: Float, konst: a[0].konst, eval: func(m *machine) value {
		v := xe(m)
		return value{math32.Sqrt(dotN(v, v, n))}
	}}, true
}

func distance(_ *compiler, pos Pos, args []expr) (expr, bool) {
	a, ok := sameGenFloat(args, 2)
	if !ok {
		return expr{}, false
	}
	xe, ye, n := a[0].eval, a[1].eval, a[0].typ.Size()
	return expr{pos: pos, typ: Float, konst: allConst(args), eval: func(m *machine) value {
		x, y := xe(m), ye(m)
		for i := range n {
			x[i] -= y[i]
		}
		return value{math32.Sqrt(dotN(x, x, n))}
	}}, true
}

func dot(_ *compiler, pos Pos, args []expr) (expr, bool) {
	a, ok := sameGenFloat(args, 2)
	if !ok {
		return expr{}, false
	}
	xe, ye, n := a[0].eval, a[1].eval, a[0].typ.Size()
	return expr{pos: pos, typ: Float, konst: allConst(args), eval: func(m *machine) value {
		return value{dotN(xe(m), ye(m), n)}
	}}, true
}

func cross(_ *compiler, pos Pos, args []expr) (expr, bool) {
	a, ok := sameGenFloat(args, 2)
	if !ok || a[0].typ != Vec3 {
		return expr{}, false
	}
	xe, ye := a[0].eval, a[1].eval
	return expr{pos: pos, typ: Vec3, konst: allConst(args), eval: func(m *machine) value {
		x, y := xe(m), ye(m)
		return value{
			x[1]*y[2] - x[2]*y[1],
			x[2]*y[0] - x[0]*y[2],
			x[0]*y[1] - x[1]*y[0],
		}
	}}, true
}

func normalizeN(v value, n int) value {
	l := math32.Sqrt(dotN(v, v, n))
	if l == 0 {
		return v
	}
	for i := range n {
		v[i] /= l
	}
	return v
}

func normalize(_ *compiler, pos Pos, args []expr) (expr, bool) {
	a, ok := sameGenFloat(args, 1)
	if !ok {
		return expr{}, false
	}
	xe, n := a[0].eval, a[0].typ.Size()
	return expr{pos: pos, typ: a[0].typ, konst: a[0].konst, eval: func(m *machine) value {
		return normalizeN(xe(m), n)
	}}, true
}

func faceforward(_ *compiler, pos Pos, args []expr) (expr, bool) {
	a, ok := sameGenFloat(args, 3)
	if !ok {
		return expr{}, false
	}
	ne, ie, re, n := a[0].eval, a[1].eval, a[2].eval, a[0].typ.Size()
	return expr{pos: pos, typ: a[0].typ, konst: allConst(args), eval: func(m *machine) value {
		nv := ne(m)
		if dotN(re(m), ie(m), n) < 0 {
			return nv
		}
		for i := range n {
			nv[i] = -nv[i]
		}
		return nv
	}}, true
}

func reflect(_ *compiler, pos Pos, args []expr) (expr, bool) {
	a, ok := sameGenFloat(args, 2)
	if !ok {
		return expr{}, false
	}
	ie, ne, n := a[0].eval, a[1].eval, a[0].typ.Size()
	return expr{pos: pos, typ: a[0].typ, konst: allConst(args), eval: func(m *machine) value {
		iv, nv := ie(m), ne(m)
		d := 2 * dotN(nv, iv, n)
		for i := range n {
			iv[i] -= d * nv[i]
		}
		return iv
	}}, true
}

func refract(_ *compiler, pos Pos, args []expr) (expr, bool) {
	if len(args) != 3 {
		return expr{}, false
	}
	a, ok := sameGenFloat(args[:2], 2)
	eta := floatArg(args[2])
	if !ok || eta.typ != Float {
		return expr{}, false
	}
	ie, ne, ee, n := a[0].eval, a[1].eval, eta.eval, a[0].typ.Size()
	return expr{pos: pos, typ: a[0].typ, konst: allConst(args), eval: func(m *machine) (r value) {
		iv, nv, e := ie(m), ne(m), ee(m)[0]
		d := dotN(nv, iv, n)
		k := 1 - e*e*(1-d*d)
		if k < 0 {
			return r
		}
		s := e*d + math32.Sqrt(k)
		for i := range n {
			r[i] = e*iv[i] - s*nv[i]
		}
		return r
	}}, true
}

func matrixCompMult(_ *compiler, pos Pos, args []expr) (expr, bool) {
	if len(args) != 2 || !args[0].typ.IsMatrix() || args[0].typ != args[1].typ {
		return expr{}, false
	}
	xe, ye, n := args[0].eval, args[1].eval, args[0].typ.Size()
	return expr{pos: pos, typ: args[0].typ, konst: allConst(args), eval: func(m *machine) value {
		x, y := xe(m), ye(m)
		for i := range n {
			x[i] *= y[i]
		}
		return x
	}}, true
}

func vecCompare(f func(a, b float32) bool, allowBool bool) builtinFn {
	return func(_ *compiler, pos Pos, args []expr) (expr, bool) {
		if len(args) != 2 || args[0].typ != args[1].typ || !args[0].typ.IsVector() {
			return expr{}, false
		}
		if args[0].typ.Base() == Bool && !allowBool {
			return expr{}, false
		}
		xe, ye, n := args[0].eval, args[1].eval, args[0].typ.Size()
		return expr{pos: pos, typ: vecOf(Bool, n), konst: allConst(args), eval: func(m *machine) (r value) {
			x, y := xe(m), ye(m)
			for i := range n {
				r[i] = boolf(f(x[i], y[i]))
			}
			return r
		}}, true
	}
}

func boolReduce(all bool) builtinFn {
	return func(_ *compiler, pos Pos, args []expr) (expr, bool) {
		if len(args) != 1 || !args[0].typ.IsVector() || args[0].typ.Base() != Bool {
			return expr{}, false
		}
		xe, n := args[0].eval, args[0].typ.Size()
		return expr{pos: pos, typ: Bool, konst: args[0].konst, eval: func(m *machine) value {
			v := xe(m)
			for i := range n {
				if (v[i] != 0) != all {
					return value{boolf(!all)}
				}
			}
			return value{boolf(all)}
		}}, true
	}
}

func boolNot(_ *compiler, pos Pos, args []expr) (expr, bool) {
	if len(args) != 1 || !args[0].typ.IsVector() || args[0].typ.Base() != Bool {
		return expr{}, false
	}
	xe, n := args[0].eval, args[0].typ.Size()
	return expr{pos: pos, typ: args[0].typ, konst: args[0].konst, eval: func(m *machine) value {
		v := xe(m)
		for i := range n {
			v[i] = boolf(v[i] == 0)
		}
		return v
	}}, true
}

// texture2D builds texture2D, texture2DLod and (proj) texture2DProj. The
// optional bias or lod argument is accepted and ignored: there are no
// mip levels.
func texture2D(proj bool) builtinFn {
	return func(_ *compiler, pos Pos, args []expr) (expr, bool) {
		if len(args) < 2 || len(args) > 3 || args[0].typ != Sampler2D {
			return expr{}, false
		}
		uv := floatArg(args[1])
		switch {
		case !proj && uv.typ != Vec2:
			return expr{}, false
		case proj && uv.typ != Vec3 && uv.typ != Vec4:
			return expr{}, false
		}
		if len(args) == 3 && floatArg(args[2]).typ != Float {
			return expr{}, false
		}
		se, ue := args[0].eval, uv.eval
		q := uv.typ.Size() - 1
		return expr{pos: pos, typ: Vec4, eval: func(m *machine) value {
			i := int(se(m)[0])
			c := ue(m)
			u, v := c[0], c[1]
			if proj && c[q] != 0 {
				u, v = u/c[q], v/c[q]
			}
			if i < 0 || i >= len(m.samplers) || m.samplers[i] == nil {
				return value{0, 0, 0, 1}
			}
			s := m.samplers[i].Sample(u, v)
			return value{s[0], s[1], s[2], s[3]}
		}}, true
	}
}
