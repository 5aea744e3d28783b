package softgl

import (
	"log/slog"

	"github.com/gogpu/softgl/internal/shader"
)

// Defaults applied by New.
const (
	DefaultTextureUnits = 32
	DefaultShaderCache  = 64
)

// ContextOption configures a Context during creation.
//
// Example:
//
//	// Render into a 640x480 surface with depth and stencil.
//	s := softgl.NewSurface(640, 480, true, true)
//	ctx := softgl.New(softgl.WithSurface(s))
//
//	// Log compile and link diagnostics.
//	ctx := softgl.New(softgl.WithLogger(slog.Default()))
type ContextOption func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	logger         *slog.Logger
	surface        *Surface
	textureUnits   int
	shaderCache    int
	compiler       shader.Compiler
	strictTeardown bool
}

// defaultOptions returns the default context options.
func defaultOptions() contextOptions {
	return contextOptions{
		textureUnits:   DefaultTextureUnits,
		shaderCache:    DefaultShaderCache,
		compiler:       shader.Interpreter,
		strictTeardown: true,
	}
}

// WithLogger sets the logger of the Context. Without it the Context logs
// through the package logger (see SetLogger).
func WithLogger(l *slog.Logger) ContextOption {
	return func(o *contextOptions) {
		o.logger = l
	}
}

// WithSurface makes s the default framebuffer of the Context.
// It is equivalent to calling SetSurface after New.
func WithSurface(s *Surface) ContextOption {
	return func(o *contextOptions) {
		o.surface = s
	}
}

// WithTextureUnits sets the number of texture units. Values below 1 are
// ignored.
func WithTextureUnits(n int) ContextOption {
	return func(o *contextOptions) {
		if n > 0 {
			o.textureUnits = n
		}
	}
}

// WithShaderCache sets how many compiled shader modules are kept for
// reuse when identical source is compiled again. Zero disables the cache.
func WithShaderCache(n int) ContextOption {
	return func(o *contextOptions) {
		o.shaderCache = max(n, 0)
	}
}

// withCompiler replaces the shader compiler. A nil compiler is ignored.
func withCompiler(c shader.Compiler) ContextOption {
	return func(o *contextOptions) {
		if c != nil {
			o.compiler = c
		}
	}
}

// WithStrictTeardown controls what Destroy does when objects are still
// alive. Strict contexts panic, which is the default; others log a
// warning and drop the objects.
func WithStrictTeardown(strict bool) ContextOption {
	return func(o *contextOptions) {
		o.strictTeardown = strict
	}
}
