package glsl

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// ExportKind selects what an Export resolves to.
type ExportKind uint8

const (
	// ExportSetter writes a global variable from []float32.
	ExportSetter ExportKind = iota
	// ExportGetter reads a global variable.
	ExportGetter
	// ExportSampler binds a Sampler to a sampler2D uniform.
	ExportSampler
	// ExportEntry runs a void function without parameters.
	ExportEntry
)

// Export names a callable exposed by a Unit.
type Export struct {
	Name   string
	Kind   ExportKind
	Symbol string
}

// Options configure Compile.
type Options struct {
	Stage   gputypes.ShaderStage
	Exports []Export
}

// Storage limits enforced at compile time.
const (
	// MaxArrayLen is the largest accepted array size.
	MaxArrayLen = 4096
	// MaxStorage is the number of float32 slots a module's variables may
	// occupy in total.
	MaxStorage = 1 << 20
)

// Variable describes a global variable of a compiled module.
type Variable struct {
	Name      string
	Type      Type
	Qualifier Qualifier
	ArrayLen  int
}

type compiler struct {
	fragment bool
	mem      int
	samplers int
	scope    *scope
	globals  *scope
	funcs    map[string][]*function
	cur      *function
	loops    int
	init     []execFn
	reset    []execFn
	vars     []Variable
}

func (c *compiler) fail(pos Pos, kind error, format string, args ...any) {
	panic(bailout{errorf(pos, kind, format, args...)})
}

// Compile parses and compiles src for one shader stage.
func Compile(src string, opts Options) (*Module, error) {
	file, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return CompileFile(file, opts)
}

// CompileFile compiles a parsed translation unit.
func CompileFile(file *File, opts Options) (mod *Module, err error) {
	if opts.Stage != gputypes.ShaderStageVertex && opts.Stage != gputypes.ShaderStageFragment {
		return nil, fmt.Errorf("glsl: stage %v: %w", opts.Stage, ErrUnsupported)
	}
	if len(file.Order) == 0 {
		return nil, ErrEmptySource
	}
	c := &compiler{
		fragment: opts.Stage == gputypes.ShaderStageFragment,
		funcs:    make(map[string][]*function),
	}
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			mod, err = nil, b.err
		}
	}()
	c.push()
	c.globals = c.scope
	c.builtinVars()

	for _, fd := range file.Funcs {
		c.declareFunc(fd)
	}
	for _, item := range file.Order {
		switch item := item.(type) {
		case *VarDecl:
			c.global(item)
		case *FuncDecl:
			if item.Body != nil {
				c.funcBody(item)
			}
		}
	}
	for _, fns := range c.funcs {
		for _, fn := range fns {
			if fn.called && fn.exec == nil {
				c.fail(fn.decl.Pos, ErrUndefined, "function %s declared but not defined", fn.signature())
			}
		}
	}
	c.checkRecursion()

	mod = &Module{
		stage:    opts.Stage,
		memSize:  c.mem,
		samplers: c.samplers,
		init:     c.init,
		reset:    c.reset,
		vars:     c.vars,
	}
	for _, e := range opts.Exports {
		mod.exports = append(mod.exports, c.export(e))
	}
	return mod, nil
}

func (c *compiler) builtinVars() {
	add := func(name string, typ Type, readonly, output bool) *symbol {
		sym := &symbol{name: name, typ: typ, readonly: readonly, sampler: -1}
		sym.offset = c.alloc(typ.Size())
		c.declare(Pos{}, sym)
		if output {
			c.reset = append(c.reset, c.initializer(sym, nil))
		}
		return sym
	}
	if c.fragment {
		add("gl_FragCoord", Vec4, true, false)
		add("gl_FrontFacing", Bool, true, false)
		add("gl_PointCoord", Vec2, true, false)
		color := add("gl_FragColor", Vec4, false, true)
		c.declare(Pos{}, &symbol{name: "gl_FragData", typ: Vec4, arrayLen: 1, offset: color.offset, sampler: -1})
	} else {
		add("gl_Position", Vec4, false, true)
		add("gl_PointSize", Float, false, true)
	}
	for name, v := range map[string]float32{
		"gl_MaxVertexAttribs":             16,
		"gl_MaxVertexUniformVectors":      256,
		"gl_MaxVaryingVectors":            16,
		"gl_MaxVertexTextureImageUnits":   32,
		"gl_MaxCombinedTextureImageUnits": 32,
		"gl_MaxTextureImageUnits":         32,
		"gl_MaxFragmentUniformVectors":    256,
		"gl_MaxDrawBuffers":               1,
	} {
		c.declare(Pos{}, &symbol{name: name, typ: Int, konst: true, readonly: true, val: value{v}, sampler: -1})
	}
}

func (c *compiler) global(d *VarDecl) {
	switch d.Qual {
	case QualAttribute:
		if c.fragment {
			c.fail(d.Pos, ErrType, "attribute in a fragment shader")
		}
		fallthrough
	case QualVarying:
		if d.Type.Base() != Float {
			c.fail(d.Pos, ErrType, "%s of type %s", d.Qual, d.Type)
		}
	}
	if d.Type == Void {
		c.fail(d.Pos, ErrType, "variable of type void")
	}
	if d.Type.IsSampler() && d.Qual != QualUniform {
		c.fail(d.Pos, ErrType, "%s must be a uniform", d.Type)
	}
	for _, v := range d.Vars {
		if d.Qual == QualConst {
			c.declare(v.Pos, c.constant(d.Type, v))
			continue
		}
		sym := &symbol{name: v.Name, typ: d.Type, qual: d.Qual, arrayLen: c.arrayLen(v.ArrayLen), sampler: -1}
		if sym.arrayLen > 0 && (d.Qual == QualAttribute || d.Type.IsSampler()) {
			c.fail(v.Pos, ErrUnsupported, "%s array %s", d.Type, v.Name)
		}
		sym.offset = c.alloc(sym.size())
		switch d.Qual {
		case QualUniform, QualAttribute:
			sym.readonly = true
		case QualVarying:
			sym.readonly = c.fragment
		}
		if v.Init != nil && d.Qual != QualNone {
			c.fail(v.Pos, ErrType, "%s %s cannot have an initializer", d.Qual, v.Name)
		}
		if sym.typ.IsSampler() {
			sym.sampler = c.samplers
			c.samplers++
			off, idx := sym.offset, float32(sym.sampler)
			c.init = append(c.init, func(m *machine) ctrl {
				m.mem[off] = idx
				return ctrlNext
			})
		}
		if d.Qual == QualNone || (d.Qual == QualVarying && !c.fragment) {
			c.reset = append(c.reset, c.initializer(sym, v.Init))
		}
		c.declare(v.Pos, sym)
		c.vars = append(c.vars, Variable{Name: v.Name, Type: d.Type, Qualifier: d.Qual, ArrayLen: sym.arrayLen})
	}
}

func (c *compiler) declareFunc(fd *FuncDecl) {
	if len(fd.Params) > maxParams {
		c.fail(fd.Pos, ErrUnsupported, "%s has more than %d parameters", fd.Name, maxParams)
	}
	if _, ok := TypeByName(fd.Name); ok {
		c.fail(fd.Pos, ErrType, "function named after type %s", fd.Name)
	}
	fn := &function{name: fd.Name, ret: fd.Ret, decl: fd, callees: make(map[*function]bool)}
	for _, p := range fd.Params {
		if p.ArrayLen != nil {
			c.fail(p.Pos, ErrUnsupported, "array parameter %s", p.Name)
		}
		if p.Type == Void {
			c.fail(p.Pos, ErrType, "parameter of type void")
		}
		if p.Type.IsSampler() && p.Dir != DirIn {
			c.fail(p.Pos, ErrType, "sampler parameter %s must be in", p.Name)
		}
		fn.params = append(fn.params, p.Type)
		fn.dirs = append(fn.dirs, p.Dir)
	}
	for _, prev := range c.funcs[fd.Name] {
		if prev.signature() != fn.signature() {
			continue
		}
		if prev.ret != fn.ret {
			c.fail(fd.Pos, ErrType, "%s redeclared with return type %s", fn.signature(), fn.ret)
		}
		if fd.Body != nil {
			if prev.decl.Body != nil {
				c.fail(fd.Pos, ErrType, "%s redefined", fn.signature())
			}
			prev.decl = fd
		}
		for i := range fn.dirs {
			if prev.dirs[i] != fn.dirs[i] {
				c.fail(fd.Pos, ErrType, "%s redeclared with different qualifiers", fn.signature())
			}
		}
		return
	}
	c.funcs[fd.Name] = append(c.funcs[fd.Name], fn)
}

func (c *compiler) lookupFunc(fd *FuncDecl) *function {
	for _, fn := range c.funcs[fd.Name] {
		if fn.decl == fd {
			return fn
		}
	}
	return nil
}

func (c *compiler) funcBody(fd *FuncDecl) {
	fn := c.lookupFunc(fd)
	c.push()
	defer c.pop()
	c.cur = fn
	defer func() { c.cur = nil }()
	fn.slots = make([]int, len(fd.Params))
	for i, p := range fd.Params {
		sym := &symbol{name: p.Name, typ: p.Type, readonly: p.Const, sampler: -1}
		sym.offset = c.alloc(p.Type.Size())
		fn.slots[i] = sym.offset
		if p.Name != "" {
			c.declare(p.Pos, sym)
		}
	}
	body := c.list(fd.Body.List)
	fn.exec = body
}

func (c *compiler) checkRecursion() {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[*function]int)
	var visit func(fn *function)
	visit = func(fn *function) {
		switch state[fn] {
		case visiting:
			c.fail(fn.decl.Pos, ErrRecursion, "%s calls itself", fn.signature())
		case done:
			return
		}
		state[fn] = visiting
		for callee := range fn.callees {
			visit(callee)
		}
		state[fn] = done
	}
	for _, fns := range c.funcs {
		for _, fn := range fns {
			visit(fn)
		}
	}
}

type export struct {
	Export
	offset  int
	size    int
	sampler int
	fn      *function
}

func (c *compiler) export(e Export) export {
	out := export{Export: e}
	bad := func(format string, args ...any) {
		panic(bailout{&Error{Msg: e.Name + ": " + fmt.Sprintf(format, args...), Err: ErrExport}})
	}
	if e.Kind == ExportEntry {
		for _, fn := range c.funcs[e.Symbol] {
			if len(fn.params) == 0 {
				if fn.exec == nil {
					bad("function %s is not defined", e.Symbol)
				}
				if fn.ret != Void {
					bad("entry %s must return void", e.Symbol)
				}
				out.fn = fn
				return out
			}
		}
		bad("no function %s()", e.Symbol)
	}
	sym, ok := c.globals.syms[e.Symbol]
	if !ok {
		bad("no global %s", e.Symbol)
	}
	if sym.konst {
		bad("%s is a constant", e.Symbol)
	}
	out.offset, out.size, out.sampler = sym.offset, sym.size(), sym.sampler
	switch e.Kind {
	case ExportSampler:
		if sym.sampler < 0 {
			bad("%s is not a sampler", e.Symbol)
		}
	case ExportSetter:
		if sym.sampler >= 0 {
			bad("sampler %s needs a sampler export", e.Symbol)
		}
	case ExportGetter:
	default:
		bad("unknown export kind %d", e.Kind)
	}
	return out
}
