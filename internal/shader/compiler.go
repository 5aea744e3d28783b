package shader

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/softgl/internal/cache"
	"github.com/gogpu/softgl/internal/glsl"
)

// Compiler turns assembled shader source into a compiled module.
type Compiler interface {
	Compile(src string, opts glsl.Options) (*glsl.Module, error)
}

// CompilerFunc adapts a function to Compiler.
type CompilerFunc func(src string, opts glsl.Options) (*glsl.Module, error)

// Compile calls f.
func (f CompilerFunc) Compile(src string, opts glsl.Options) (*glsl.Module, error) {
	return f(src, opts)
}

// Interpreter compiles with the embedded glsl interpreter.
var Interpreter Compiler = CompilerFunc(glsl.Compile)

type moduleKey struct {
	stage gputypes.ShaderStage
	src   string
}

// CachedCompiler memoizes successful compilations of another Compiler.
// Modules are immutable, so shaders with identical source and stage share
// one.
type CachedCompiler struct {
	next    Compiler
	modules *cache.Cache[moduleKey, *glsl.Module]
}

// NewCachedCompiler wraps next with an LRU of at most size modules.
func NewCachedCompiler(next Compiler, size int) *CachedCompiler {
	return &CachedCompiler{next: next, modules: cache.New[moduleKey, *glsl.Module](size)}
}

// Compile implements Compiler. The export list is derived from the source,
// so source and stage identify the result.
func (c *CachedCompiler) Compile(src string, opts glsl.Options) (*glsl.Module, error) {
	return c.modules.GetOrCompute(moduleKey{opts.Stage, src}, func() (*glsl.Module, error) {
		return c.next.Compile(src, opts)
	})
}

// Stats reports cache counters.
func (c *CachedCompiler) Stats() cache.Stats { return c.modules.Stats() }
