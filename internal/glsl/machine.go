package glsl

// Sampler is the texture lookup behind a sampler2D uniform.
type Sampler interface {
	Sample(u, v float32) [4]float32
}

type ctrl uint8

const (
	ctrlNext ctrl = iota
	ctrlBreak
	ctrlContinue
	ctrlReturn
	ctrlDiscard
)

// maxLoopIterations bounds every single loop execution.
const maxLoopIterations = 1 << 20

// maxParams bounds the parameter count of user functions.
const maxParams = 16

// machine is the per-Unit execution state.
type machine struct {
	mem       []float32
	samplers  []Sampler
	ret       value
	discarded bool
}

type (
	evalFn  func(m *machine) value
	execFn  func(m *machine) ctrl
	slotsFn func(m *machine, idx *[16]int)
)

// expr is a type-checked, compiled expression.
type expr struct {
	pos  Pos
	typ  Type
	eval evalFn
	// slots locates the storage of an assignable expression; nil otherwise.
	slots slotsFn
	// plain marks a whole variable stored contiguously at base.
	plain bool
	base  int
	konst bool
	// arr is set for a bare array name, which must be indexed.
	arr *symbol
}

func (e expr) store(m *machine, v value) {
	n := e.typ.Size()
	if e.plain {
		copy(m.mem[e.base:e.base+n], v[:n])
		return
	}
	var idx [16]int
	e.slots(m, &idx)
	for i := range n {
		m.mem[idx[i]] = v[i]
	}
}

func constExpr(pos Pos, typ Type, v value) expr {
	return expr{pos: pos, typ: typ, konst: true, eval: func(*machine) value { return v }}
}

// fold evaluates a constant expression once.
func fold(e expr) expr {
	if !e.konst {
		return e
	}
	return constExpr(e.pos, e.typ, e.eval(&machine{}))
}

func splat(x float32) (v value) {
	for i := range v {
		v[i] = x
	}
	return v
}

func clampIndex(i float32, n int) int {
	k := int(i)
	if k < 0 {
		return 0
	}
	if k >= n {
		return n - 1
	}
	return k
}
