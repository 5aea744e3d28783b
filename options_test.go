package softgl

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/softgl/internal/glsl"
	"github.com/gogpu/softgl/internal/shader"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	assert.Nil(t, o.logger)
	assert.Nil(t, o.surface)
	assert.Equal(t, DefaultTextureUnits, o.textureUnits)
	assert.Equal(t, DefaultShaderCache, o.shaderCache)
	assert.NotNil(t, o.compiler)
	assert.True(t, o.strictTeardown)
}

func TestOptions(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	surface := NewSurface(2, 2, false, false)
	compiler := shader.CompilerFunc(glsl.Compile)

	tests := []struct {
		name  string
		opt   ContextOption
		check func(t *testing.T, o contextOptions)
	}{
		{"logger", WithLogger(logger), func(t *testing.T, o contextOptions) {
			assert.Same(t, logger, o.logger)
		}},
		{"surface", WithSurface(surface), func(t *testing.T, o contextOptions) {
			assert.Same(t, surface, o.surface)
		}},
		{"texture units", WithTextureUnits(4), func(t *testing.T, o contextOptions) {
			assert.Equal(t, 4, o.textureUnits)
		}},
		{"texture units below one ignored", WithTextureUnits(0), func(t *testing.T, o contextOptions) {
			assert.Equal(t, DefaultTextureUnits, o.textureUnits)
		}},
		{"shader cache", WithShaderCache(8), func(t *testing.T, o contextOptions) {
			assert.Equal(t, 8, o.shaderCache)
		}},
		{"negative shader cache disables", WithShaderCache(-3), func(t *testing.T, o contextOptions) {
			assert.Zero(t, o.shaderCache)
		}},
		{"compiler", withCompiler(compiler), func(t *testing.T, o contextOptions) {
			assert.NotNil(t, o.compiler)
		}},
		{"nil compiler ignored", withCompiler(nil), func(t *testing.T, o contextOptions) {
			assert.NotNil(t, o.compiler)
		}},
		{"lenient teardown", WithStrictTeardown(false), func(t *testing.T, o contextOptions) {
			assert.False(t, o.strictTeardown)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := defaultOptions()
			tt.opt(&o)
			tt.check(t, o)
		})
	}
}

func TestWithTextureUnitsLimitsActiveTexture(t *testing.T) {
	ctx := New(WithTextureUnits(2))
	assert.Equal(t, 2, ctx.GetInteger(MAX_COMBINED_TEXTURE_IMAGE_UNITS))
	ctx.ActiveTexture(TEXTURE0 + 1)
	assert.Equal(t, NO_ERROR, ctx.GetError())
	ctx.ActiveTexture(TEXTURE0 + 2)
	assert.Equal(t, INVALID_ENUM, ctx.GetError())
}

func TestCompilerOptionIsUsed(t *testing.T) {
	calls := 0
	compiler := shader.CompilerFunc(func(src string, opts glsl.Options) (*glsl.Module, error) {
		calls++
		return glsl.Compile(src, opts)
	})

	tests := []struct {
		name      string
		cache     int
		wantCalls int
	}{
		{"cached", DefaultShaderCache, 1},
		{"uncached", 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls = 0
			ctx := New(withCompiler(compiler), WithShaderCache(tt.cache))
			for range 2 {
				id := ctx.CreateShader(VERTEX_SHADER)
				ctx.ShaderSource(id, posVertex)
				ctx.CompileShader(id)
				require.Equal(t, int(TRUE), ctx.GetShaderi(id, COMPILE_STATUS))
			}
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}
