package pipeline

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/softgl/internal/blend"
)

// Stencil is the stencil configuration of one face.
type Stencil struct {
	gputypes.StencilFaceState
	Ref       int
	ReadMask  uint8
	WriteMask uint8
}

// DefaultStencil returns the initial stencil face state.
func DefaultStencil() Stencil {
	return Stencil{
		StencilFaceState: gputypes.DefaultStencilFaceState(),
		ReadMask:         0xff,
		WriteMask:        0xff,
	}
}

// State is the fixed-function state applied to each fragment.
type State struct {
	DepthTest bool
	DepthFunc gputypes.CompareFunction
	DepthMask bool
	DepthNear float32
	DepthFar  float32

	StencilTest bool
	Front, Back Stencil

	Blend     bool
	BlendFunc blend.State

	ColorMask [4]bool
}

// DefaultState returns the initial state of a context.
func DefaultState() State {
	return State{
		DepthFunc: gputypes.CompareFunctionLess,
		DepthMask: true,
		DepthFar:  1,
		Front:     DefaultStencil(),
		Back:      DefaultStencil(),
		BlendFunc: blend.Default(),
		ColorMask: [4]bool{true, true, true, true},
	}
}

// WindowDepth maps a normalized device z in [-1, 1] into the depth range.
func (s *State) WindowDepth(ndcZ float32) float32 {
	return s.DepthNear + (ndcZ*0.5+0.5)*(s.DepthFar-s.DepthNear)
}

func (s *State) face(front bool) *Stencil {
	if front {
		return &s.Front
	}
	return &s.Back
}

// Occluded reports whether a fragment at (x, y) with window depth z would
// be rejected by the depth test without any other side effect. Callers use
// it to skip shading.
func (s *State) Occluded(t *Target, x, y int, z float32) bool {
	i, ok := t.index(x, y)
	if !ok {
		return true
	}
	if s.StencilTest && t.hasStencil(i) {
		return false
	}
	return s.DepthTest && t.hasDepth(i) && !Compare(s.DepthFunc, z, t.Depth[i])
}

// Fragment runs the stencil and depth tests for a shaded fragment at
// (x, y) with window depth z, then blends and writes color. It reports
// whether the fragment survived the tests.
func (s *State) Fragment(t *Target, x, y int, z float32, front bool, color [4]float32) bool {
	i, ok := t.index(x, y)
	if !ok {
		return false
	}

	stencil := s.StencilTest && t.hasStencil(i)
	var st *Stencil
	if stencil {
		st = s.face(front)
		ref := uint8(clampRef(st.Ref))
		if !Compare(st.Compare, ref&st.ReadMask, t.Stencil[i]&st.ReadMask) {
			s.stencilOp(t, i, st, st.FailOp)
			return false
		}
	}

	if s.DepthTest && t.hasDepth(i) {
		if !Compare(s.DepthFunc, z, t.Depth[i]) {
			if stencil {
				s.stencilOp(t, i, st, st.DepthFailOp)
			}
			return false
		}
		if s.DepthMask {
			t.Depth[i] = z
		}
	}
	if stencil {
		s.stencilOp(t, i, st, st.PassOp)
	}

	px := t.color(i)
	if px == nil {
		return true
	}
	if s.Blend {
		color = s.BlendFunc.Blend(color, blend.Unpack(px))
	}
	s.writeColor(px, color)
	return true
}

func (s *State) writeColor(px []byte, c [4]float32) {
	for k, on := range s.ColorMask {
		if on {
			px[k] = blend.ToByte(c[k])
		}
	}
}

func (s *State) stencilOp(t *Target, i int, st *Stencil, op gputypes.StencilOperation) {
	old := t.Stencil[i]
	var v uint8
	switch op {
	case gputypes.StencilOperationZero:
		v = 0
	case gputypes.StencilOperationReplace:
		v = uint8(clampRef(st.Ref))
	case gputypes.StencilOperationInvert:
		v = ^old
	case gputypes.StencilOperationIncrementClamp:
		v = old
		if v < 0xff {
			v++
		}
	case gputypes.StencilOperationDecrementClamp:
		v = old
		if v > 0 {
			v--
		}
	case gputypes.StencilOperationIncrementWrap:
		v = old + 1
	case gputypes.StencilOperationDecrementWrap:
		v = old - 1
	default:
		return
	}
	t.Stencil[i] = old&^st.WriteMask | v&st.WriteMask
}

// clampRef clamps a stencil reference to the 8-bit buffer range.
func clampRef(ref int) int {
	return min(max(ref, 0), 0xff)
}
