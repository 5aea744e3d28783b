package pipeline

import (
	"image"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/softgl/internal/blend"
)

func newTarget(w, h int) *Target {
	return &Target{
		Width:   w,
		Height:  h,
		Color:   make([]byte, w*h*4),
		Depth:   make([]float32, w*h),
		Stencil: make([]byte, w*h),
	}
}

var red = [4]float32{1, 0, 0, 1}

func TestCompare(t *testing.T) {
	tests := []struct {
		fn                   gputypes.CompareFunction
		less, equal, greater bool
	}{
		{gputypes.CompareFunctionNever, false, false, false},
		{gputypes.CompareFunctionLess, true, false, false},
		{gputypes.CompareFunctionEqual, false, true, false},
		{gputypes.CompareFunctionLessEqual, true, true, false},
		{gputypes.CompareFunctionGreater, false, false, true},
		{gputypes.CompareFunctionNotEqual, true, false, true},
		{gputypes.CompareFunctionGreaterEqual, false, true, true},
		{gputypes.CompareFunctionAlways, true, true, true},
		{gputypes.CompareFunctionUndefined, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.fn.String(), func(t *testing.T) {
			assert.Equal(t, tt.less, Compare(tt.fn, 0.25, float32(0.5)), "less")
			assert.Equal(t, tt.equal, Compare(tt.fn, 0.5, float32(0.5)), "equal")
			assert.Equal(t, tt.greater, Compare(tt.fn, 0.75, float32(0.5)), "greater")
		})
	}
}

func TestWindowDepth(t *testing.T) {
	s := DefaultState()
	assert.InDelta(t, 0.25, s.WindowDepth(-0.5), 1e-6)
	s.DepthNear, s.DepthFar = 0.5, 1
	assert.InDelta(t, 0.5, s.WindowDepth(-1), 1e-6)
	assert.InDelta(t, 0.75, s.WindowDepth(0), 1e-6)
}

func TestFragmentWritesColorWithoutTests(t *testing.T) {
	tg := newTarget(2, 2)
	s := DefaultState()
	require.True(t, s.Fragment(tg, 1, 0, 0.5, true, red))
	assert.Equal(t, []byte{255, 0, 0, 255}, tg.Color[4:8])
	assert.Equal(t, float32(0), tg.Depth[1], "depth untouched with the test disabled")
}

func TestFragmentDepthTest(t *testing.T) {
	tg := newTarget(1, 1)
	tg.Depth[0] = 1
	s := DefaultState()
	s.DepthTest = true

	require.True(t, s.Fragment(tg, 0, 0, 0.25, true, red))
	assert.Equal(t, float32(0.25), tg.Depth[0])

	assert.True(t, s.Occluded(tg, 0, 0, 0.75))
	assert.False(t, s.Fragment(tg, 0, 0, 0.75, true, [4]float32{0, 1, 0, 1}))
	assert.Equal(t, []byte{255, 0, 0, 255}, tg.Color)

	s.DepthMask = false
	require.True(t, s.Fragment(tg, 0, 0, 0.1, true, [4]float32{0, 0, 1, 1}))
	assert.Equal(t, float32(0.25), tg.Depth[0], "depth mask off")
	assert.Equal(t, []byte{0, 0, 255, 255}, tg.Color)
}

func TestFragmentOutOfBounds(t *testing.T) {
	tg := newTarget(2, 2)
	s := DefaultState()
	for _, p := range []image.Point{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		assert.False(t, s.Fragment(tg, p.X, p.Y, 0, true, red), "%v", p)
		assert.True(t, s.Occluded(tg, p.X, p.Y, 0), "%v", p)
	}
	short := &Target{Width: 2, Height: 2, Color: make([]byte, 4)}
	assert.True(t, s.Fragment(short, 1, 1, 0, true, red), "short buffer is skipped, not indexed")
}

func TestFragmentBlendAndColorMask(t *testing.T) {
	tg := newTarget(1, 1)
	copy(tg.Color, []byte{0, 0, 255, 255})
	s := DefaultState()
	s.Blend = true
	s.BlendFunc.SrcRGB = blend.FactorSrcAlpha
	s.BlendFunc.DstRGB = blend.FactorOneMinusSrcAlpha
	s.ColorMask = [4]bool{true, true, true, false}

	require.True(t, s.Fragment(tg, 0, 0, 0, true, [4]float32{1, 0, 0, 0.5}))
	assert.Equal(t, []byte{128, 0, 128, 255}, tg.Color)
}

func TestFragmentStencil(t *testing.T) {
	tg := newTarget(1, 1)
	tg.Depth[0] = 0.5
	s := DefaultState()
	s.StencilTest = true
	s.DepthTest = true
	s.Front.Compare = gputypes.CompareFunctionEqual
	s.Front.Ref = 0
	s.Front.FailOp = gputypes.StencilOperationKeep
	s.Front.DepthFailOp = gputypes.StencilOperationIncrementClamp
	s.Front.PassOp = gputypes.StencilOperationReplace
	s.Back.Compare = gputypes.CompareFunctionNever
	s.Back.FailOp = gputypes.StencilOperationInvert

	assert.False(t, s.Occluded(tg, 0, 0, 0.9), "stencil side effects prevent early rejection")

	assert.False(t, s.Fragment(tg, 0, 0, 0.9, true, red), "depth fails")
	assert.Equal(t, byte(1), tg.Stencil[0])

	assert.False(t, s.Fragment(tg, 0, 0, 0.1, true, red), "stencil fails: 0 != 1")
	assert.Equal(t, byte(1), tg.Stencil[0])

	s.Front.Ref = 1
	s.Front.PassOp = gputypes.StencilOperationZero
	require.True(t, s.Fragment(tg, 0, 0, 0.1, true, red))
	assert.Equal(t, byte(0), tg.Stencil[0])
	assert.Equal(t, []byte{255, 0, 0, 255}, tg.Color)

	s.Back.WriteMask = 0x0f
	assert.False(t, s.Fragment(tg, 0, 0, 0.0, false, red), "back face never passes")
	assert.Equal(t, byte(0x0f), tg.Stencil[0])
}

func TestStencilOps(t *testing.T) {
	tests := []struct {
		op       gputypes.StencilOperation
		old, out uint8
	}{
		{gputypes.StencilOperationKeep, 7, 7},
		{gputypes.StencilOperationZero, 7, 0},
		{gputypes.StencilOperationReplace, 7, 42},
		{gputypes.StencilOperationInvert, 0x0f, 0xf0},
		{gputypes.StencilOperationIncrementClamp, 0xff, 0xff},
		{gputypes.StencilOperationDecrementClamp, 0, 0},
		{gputypes.StencilOperationIncrementWrap, 0xff, 0},
		{gputypes.StencilOperationDecrementWrap, 0, 0xff},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			tg := &Target{Width: 1, Height: 1, Stencil: []byte{tt.old}}
			s := DefaultState()
			st := DefaultStencil()
			st.Ref = 42
			s.stencilOp(tg, 0, &st, tt.op)
			assert.Equal(t, tt.out, tg.Stencil[0])
		})
	}
}

func TestClear(t *testing.T) {
	tg := newTarget(3, 2)
	r := image.Rect(1, 0, 5, 1)

	ClearColor(tg, r, [4]float32{0, 1, 0, 1}, [4]bool{true, true, false, true})
	ClearDepth(tg, r, 1)
	ClearStencil(tg, r, 0xff, 0x0f)

	for x := range 3 {
		inside := x >= 1
		wantColor := []byte{0, 0, 0, 0}
		wantDepth := float32(0)
		wantStencil := byte(0)
		if inside {
			wantColor = []byte{0, 255, 0, 255}
			wantDepth = 1
			wantStencil = 0x0f
		}
		assert.Equal(t, wantColor, tg.Color[x*4:x*4+4], "x=%d", x)
		assert.Equal(t, wantDepth, tg.Depth[x], "x=%d", x)
		assert.Equal(t, wantStencil, tg.Stencil[x], "x=%d", x)
	}
	assert.Equal(t, make([]byte, 12), tg.Color[12:], "second row untouched")
}

func TestClearMissingBuffers(t *testing.T) {
	tg := &Target{Width: 4, Height: 4}
	assert.NotPanics(t, func() {
		ClearColor(tg, tg.Bounds(), red, [4]bool{true, true, true, true})
		ClearDepth(tg, tg.Bounds(), 1)
		ClearStencil(tg, tg.Bounds(), 1, 0xff)
	})
}
