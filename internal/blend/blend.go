// Package blend implements the fixed-function blend stage: the fifteen
// source and destination factors combined by a blend equation, separately
// for color and alpha.
//
// Colors are straight (non-premultiplied) RGBA in [0, 1].
package blend

import "github.com/gogpu/gputypes"

// Factor is a blend factor.
type Factor uint8

// Blend factors.
const (
	FactorZero Factor = iota
	FactorOne
	FactorSrcColor
	FactorOneMinusSrcColor
	FactorDstColor
	FactorOneMinusDstColor
	FactorSrcAlpha
	FactorOneMinusSrcAlpha
	FactorDstAlpha
	FactorOneMinusDstAlpha
	FactorConstantColor
	FactorOneMinusConstantColor
	FactorConstantAlpha
	FactorOneMinusConstantAlpha
	// FactorSrcAlphaSaturate is min(As, 1-Ad) for color and 1 for alpha.
	FactorSrcAlphaSaturate
)

// State is the blend configuration of a context.
type State struct {
	SrcRGB, DstRGB     Factor
	SrcAlpha, DstAlpha Factor
	OpRGB, OpAlpha     gputypes.BlendOperation
	Constant           [4]float32
}

// Default returns the initial state: source replaces destination.
func Default() State {
	return State{
		SrcRGB:   FactorOne,
		DstRGB:   FactorZero,
		SrcAlpha: FactorOne,
		DstAlpha: FactorZero,
		OpRGB:    gputypes.BlendOperationAdd,
		OpAlpha:  gputypes.BlendOperationAdd,
	}
}

// Blend combines a fragment color src with the stored color dst. The
// result is clamped to [0, 1].
func (s *State) Blend(src, dst [4]float32) [4]float32 {
	var out [4]float32
	for i := range 3 {
		sf := s.factor(s.SrcRGB, i, src, dst)
		df := s.factor(s.DstRGB, i, src, dst)
		out[i] = clamp01(apply(s.OpRGB, src[i], sf, dst[i], df))
	}
	sf := s.factor(s.SrcAlpha, 3, src, dst)
	df := s.factor(s.DstAlpha, 3, src, dst)
	out[3] = clamp01(apply(s.OpAlpha, src[3], sf, dst[3], df))
	return out
}

// factor evaluates f for channel c.
func (s *State) factor(f Factor, c int, src, dst [4]float32) float32 {
	switch f {
	case FactorZero:
		return 0
	case FactorOne:
		return 1
	case FactorSrcColor:
		return src[c]
	case FactorOneMinusSrcColor:
		return 1 - src[c]
	case FactorDstColor:
		return dst[c]
	case FactorOneMinusDstColor:
		return 1 - dst[c]
	case FactorSrcAlpha:
		return src[3]
	case FactorOneMinusSrcAlpha:
		return 1 - src[3]
	case FactorDstAlpha:
		return dst[3]
	case FactorOneMinusDstAlpha:
		return 1 - dst[3]
	case FactorConstantColor:
		return s.Constant[c]
	case FactorOneMinusConstantColor:
		return 1 - s.Constant[c]
	case FactorConstantAlpha:
		return s.Constant[3]
	case FactorOneMinusConstantAlpha:
		return 1 - s.Constant[3]
	case FactorSrcAlphaSaturate:
		if c == 3 {
			return 1
		}
		return min(src[3], 1-dst[3])
	}
	return 0
}

func apply(op gputypes.BlendOperation, s, sf, d, df float32) float32 {
	switch op {
	case gputypes.BlendOperationSubtract:
		return s*sf - d*df
	case gputypes.BlendOperationReverseSubtract:
		return d*df - s*sf
	case gputypes.BlendOperationMin:
		return min(s, d)
	case gputypes.BlendOperationMax:
		return max(s, d)
	}
	return s*sf + d*df
}
