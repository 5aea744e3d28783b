package softgl

import (
	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/softgl/internal/blend"
	"github.com/gogpu/softgl/internal/glsl"
)

var compareFuncs = map[Enum]gputypes.CompareFunction{
	NEVER:    gputypes.CompareFunctionNever,
	LESS:     gputypes.CompareFunctionLess,
	EQUAL:    gputypes.CompareFunctionEqual,
	LEQUAL:   gputypes.CompareFunctionLessEqual,
	GREATER:  gputypes.CompareFunctionGreater,
	NOTEQUAL: gputypes.CompareFunctionNotEqual,
	GEQUAL:   gputypes.CompareFunctionGreaterEqual,
	ALWAYS:   gputypes.CompareFunctionAlways,
}

var stencilOps = map[Enum]gputypes.StencilOperation{
	KEEP:      gputypes.StencilOperationKeep,
	ZERO:      gputypes.StencilOperationZero,
	REPLACE:   gputypes.StencilOperationReplace,
	INCR:      gputypes.StencilOperationIncrementClamp,
	DECR:      gputypes.StencilOperationDecrementClamp,
	INVERT:    gputypes.StencilOperationInvert,
	INCR_WRAP: gputypes.StencilOperationIncrementWrap,
	DECR_WRAP: gputypes.StencilOperationDecrementWrap,
}

var blendFactors = map[Enum]blend.Factor{
	ZERO:                     blend.FactorZero,
	ONE:                      blend.FactorOne,
	SRC_COLOR:                blend.FactorSrcColor,
	ONE_MINUS_SRC_COLOR:      blend.FactorOneMinusSrcColor,
	DST_COLOR:                blend.FactorDstColor,
	ONE_MINUS_DST_COLOR:      blend.FactorOneMinusDstColor,
	SRC_ALPHA:                blend.FactorSrcAlpha,
	ONE_MINUS_SRC_ALPHA:      blend.FactorOneMinusSrcAlpha,
	DST_ALPHA:                blend.FactorDstAlpha,
	ONE_MINUS_DST_ALPHA:      blend.FactorOneMinusDstAlpha,
	CONSTANT_COLOR:           blend.FactorConstantColor,
	ONE_MINUS_CONSTANT_COLOR: blend.FactorOneMinusConstantColor,
	CONSTANT_ALPHA:           blend.FactorConstantAlpha,
	ONE_MINUS_CONSTANT_ALPHA: blend.FactorOneMinusConstantAlpha,
	SRC_ALPHA_SATURATE:       blend.FactorSrcAlphaSaturate,
}

var blendEquations = map[Enum]gputypes.BlendOperation{
	FUNC_ADD:              gputypes.BlendOperationAdd,
	FUNC_SUBTRACT:         gputypes.BlendOperationSubtract,
	FUNC_REVERSE_SUBTRACT: gputypes.BlendOperationReverseSubtract,
	MIN:                   gputypes.BlendOperationMin,
	MAX:                   gputypes.BlendOperationMax,
}

var renderbufferFormats = map[Enum]gputypes.TextureFormat{
	RGBA4:                 gputypes.TextureFormatRGBA8Unorm,
	RGB565:                gputypes.TextureFormatRGBA8Unorm,
	RGB5_A1:               gputypes.TextureFormatRGBA8Unorm,
	RGBA8_OES:             gputypes.TextureFormatRGBA8Unorm,
	DEPTH_COMPONENT16:     gputypes.TextureFormatDepth32Float,
	DEPTH_COMPONENT32_OES: gputypes.TextureFormatDepth32Float,
	STENCIL_INDEX8:        gputypes.TextureFormatStencil8,
}

// internalFormat is the format a renderbuffer reports for its storage.
func internalFormat(f gputypes.TextureFormat) Enum {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm:
		return RGBA8_OES
	case gputypes.TextureFormatDepth32Float:
		return DEPTH_COMPONENT32_OES
	case gputypes.TextureFormatStencil8:
		return STENCIL_INDEX8
	}
	return RGBA4
}

var glslTypes = map[glsl.Type]Enum{
	glsl.Bool:        BOOL,
	glsl.Int:         INT,
	glsl.Float:       FLOAT,
	glsl.BVec2:       BOOL_VEC2,
	glsl.BVec3:       BOOL_VEC3,
	glsl.BVec4:       BOOL_VEC4,
	glsl.IVec2:       INT_VEC2,
	glsl.IVec3:       INT_VEC3,
	glsl.IVec4:       INT_VEC4,
	glsl.Vec2:        FLOAT_VEC2,
	glsl.Vec3:        FLOAT_VEC3,
	glsl.Vec4:        FLOAT_VEC4,
	glsl.Mat2:        FLOAT_MAT2,
	glsl.Mat3:        FLOAT_MAT3,
	glsl.Mat4:        FLOAT_MAT4,
	glsl.Sampler2D:   SAMPLER_2D,
	glsl.SamplerCube: SAMPLER_CUBE,
}

// enumOf returns the enum m maps to v, or NONE.
func enumOf[V comparable](m map[Enum]V, v V) Enum {
	for e, x := range m {
		if x == v {
			return e
		}
	}
	return NONE
}

// componentSize is the byte size of one vertex attribute component.
func componentSize(typ Enum) int {
	switch typ {
	case BYTE, UNSIGNED_BYTE:
		return 1
	case SHORT, UNSIGNED_SHORT:
		return 2
	case FIXED, FLOAT:
		return 4
	}
	return 0
}

// indexSize is the byte size of one element index.
func indexSize(typ Enum) int {
	switch typ {
	case UNSIGNED_BYTE:
		return 1
	case UNSIGNED_SHORT:
		return int(gputypes.IndexFormatUint16.Size())
	case UNSIGNED_INT:
		return int(gputypes.IndexFormatUint32.Size())
	}
	return 0
}

func boolEnum(b bool) int32 {
	if b {
		return int32(TRUE)
	}
	return int32(FALSE)
}

func clamp01(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	return math32.Min(v, 1)
}

func roundHalfUp(v float32) float32 { return math32.Floor(v + 0.5) }
