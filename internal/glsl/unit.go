package glsl

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Module is a compiled shader. It is immutable and may be instantiated
// any number of times.
type Module struct {
	stage    gputypes.ShaderStage
	memSize  int
	samplers int
	init     []execFn
	reset    []execFn
	exports  []export
	vars     []Variable
}

// Stage returns the shader stage the module was compiled for.
func (mod *Module) Stage() gputypes.ShaderStage { return mod.stage }

// Variables lists the user-declared globals in declaration order.
func (mod *Module) Variables() []Variable { return mod.vars }

// Instantiate allocates fresh variable storage and binds the exports to it.
func (mod *Module) Instantiate() *Unit {
	m := &machine{
		mem:      make([]float32, mod.memSize),
		samplers: make([]Sampler, mod.samplers),
	}
	for _, f := range mod.init {
		f(m)
	}
	u := newUnit()
	for _, e := range mod.exports {
		off, size := e.offset, e.size
		switch e.Kind {
		case ExportSetter:
			u.setters[e.Name] = func(v []float32) {
				copy(m.mem[off:off+size], v)
			}
		case ExportGetter:
			u.getters[e.Name] = func() []float32 {
				return m.mem[off : off+size : off+size]
			}
		case ExportSampler:
			idx := e.sampler
			u.samplers[e.Name] = func(s Sampler) { m.samplers[idx] = s }
		case ExportEntry:
			fn, reset := e.fn, mod.reset
			u.entries[e.Name] = func() bool {
				m.discarded = false
				for _, r := range reset {
					r(m)
				}
				fn.exec(m)
				return !m.discarded
			}
		}
	}
	return u
}

// Unit is an instantiated module, or several linked together, exposing its
// callables by name. A Unit is not safe for concurrent use.
type Unit struct {
	setters  map[string]func([]float32)
	getters  map[string]func() []float32
	samplers map[string]func(Sampler)
	entries  map[string]func() bool
}

func newUnit() *Unit {
	return &Unit{
		setters:  make(map[string]func([]float32)),
		getters:  make(map[string]func() []float32),
		samplers: make(map[string]func(Sampler)),
		entries:  make(map[string]func() bool),
	}
}

// Setter returns the named setter. It copies at most the variable's size
// from its argument.
func (u *Unit) Setter(name string) (func([]float32), bool) {
	f, ok := u.setters[name]
	return f, ok
}

// Getter returns the named getter. The returned slice aliases the unit's
// storage and is only valid until the next call into the unit.
func (u *Unit) Getter(name string) (func() []float32, bool) {
	f, ok := u.getters[name]
	return f, ok
}

// SamplerSetter returns the named sampler binder.
func (u *Unit) SamplerSetter(name string) (func(Sampler), bool) {
	f, ok := u.samplers[name]
	return f, ok
}

// Entry returns the named entry point. Calling it runs the function and
// reports false if the invocation was discarded.
func (u *Unit) Entry(name string) (func() bool, bool) {
	f, ok := u.entries[name]
	return f, ok
}

// Link merges units into one namespace. Setters and sampler binders that
// several units export under one name are fanned out to all of them;
// getters and entry points must be unique.
func Link(units ...*Unit) (*Unit, error) {
	out := newUnit()
	for _, u := range units {
		for name, f := range u.setters {
			if prev, ok := out.setters[name]; ok {
				out.setters[name] = func(v []float32) { prev(v); f(v) }
				continue
			}
			out.setters[name] = f
		}
		for name, f := range u.samplers {
			if prev, ok := out.samplers[name]; ok {
				out.samplers[name] = func(s Sampler) { prev(s); f(s) }
				continue
			}
			out.samplers[name] = f
		}
		for name, f := range u.getters {
			if _, ok := out.getters[name]; ok {
				return nil, fmt.Errorf("glsl: getter %s exported twice: %w", name, ErrExport)
			}
			out.getters[name] = f
		}
		for name, f := range u.entries {
			if _, ok := out.entries[name]; ok {
				return nil, fmt.Errorf("glsl: entry %s exported twice: %w", name, ErrExport)
			}
			out.entries[name] = f
		}
	}
	return out, nil
}
