package blend

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func near(a, b [4]float32) bool {
	for i := range a {
		d := a[i] - b[i]
		if d > 1e-5 || d < -1e-5 {
			return false
		}
	}
	return true
}

func TestBlendDefaultReplaces(t *testing.T) {
	s := Default()
	src := [4]float32{0.2, 0.4, 0.6, 0.8}
	got := s.Blend(src, [4]float32{1, 1, 1, 1})
	if !near(got, src) {
		t.Errorf("Blend() = %v, want %v", got, src)
	}
}

func TestBlendFactors(t *testing.T) {
	src := [4]float32{0.5, 0.25, 1, 0.5}
	dst := [4]float32{0.2, 0.4, 0.6, 0.25}
	constant := [4]float32{0.1, 0.2, 0.3, 0.4}

	tests := []struct {
		name   string
		factor Factor
		want   [4]float32
	}{
		{"zero", FactorZero, [4]float32{0, 0, 0, 0}},
		{"one", FactorOne, [4]float32{1, 1, 1, 1}},
		{"src color", FactorSrcColor, src},
		{"one minus src color", FactorOneMinusSrcColor, [4]float32{0.5, 0.75, 0, 0.5}},
		{"dst color", FactorDstColor, dst},
		{"one minus dst color", FactorOneMinusDstColor, [4]float32{0.8, 0.6, 0.4, 0.75}},
		{"src alpha", FactorSrcAlpha, [4]float32{0.5, 0.5, 0.5, 0.5}},
		{"one minus src alpha", FactorOneMinusSrcAlpha, [4]float32{0.5, 0.5, 0.5, 0.5}},
		{"dst alpha", FactorDstAlpha, [4]float32{0.25, 0.25, 0.25, 0.25}},
		{"one minus dst alpha", FactorOneMinusDstAlpha, [4]float32{0.75, 0.75, 0.75, 0.75}},
		{"constant color", FactorConstantColor, constant},
		{"one minus constant color", FactorOneMinusConstantColor, [4]float32{0.9, 0.8, 0.7, 0.6}},
		{"constant alpha", FactorConstantAlpha, [4]float32{0.4, 0.4, 0.4, 0.4}},
		{"one minus constant alpha", FactorOneMinusConstantAlpha, [4]float32{0.6, 0.6, 0.6, 0.6}},
		{"src alpha saturate", FactorSrcAlphaSaturate, [4]float32{0.5, 0.5, 0.5, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := State{Constant: constant}
			var got [4]float32
			for c := range 4 {
				got[c] = s.factor(tt.factor, c, src, dst)
			}
			if !near(got, tt.want) {
				t.Errorf("factor(%d) = %v, want %v", tt.factor, got, tt.want)
			}
		})
	}
}

func TestBlendEquations(t *testing.T) {
	src := [4]float32{0.75, 0.5, 0.25, 1}
	dst := [4]float32{0.25, 0.75, 0.5, 0.5}

	tests := []struct {
		name string
		op   gputypes.BlendOperation
		want [4]float32
	}{
		{"add saturates", gputypes.BlendOperationAdd, [4]float32{1, 1, 0.75, 1}},
		{"subtract clamps", gputypes.BlendOperationSubtract, [4]float32{0.5, 0, 0, 0.5}},
		{"reverse subtract", gputypes.BlendOperationReverseSubtract, [4]float32{0, 0.25, 0.25, 0}},
		{"min", gputypes.BlendOperationMin, [4]float32{0.25, 0.5, 0.25, 0.5}},
		{"max", gputypes.BlendOperationMax, [4]float32{0.75, 0.75, 0.5, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := State{
				SrcRGB: FactorOne, DstRGB: FactorOne,
				SrcAlpha: FactorOne, DstAlpha: FactorOne,
				OpRGB: tt.op, OpAlpha: tt.op,
			}
			if got := s.Blend(src, dst); !near(got, tt.want) {
				t.Errorf("Blend() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBlendSourceOverSeparateAlpha(t *testing.T) {
	s := State{
		SrcRGB: FactorSrcAlpha, DstRGB: FactorOneMinusSrcAlpha,
		SrcAlpha: FactorOne, DstAlpha: FactorZero,
		OpRGB: gputypes.BlendOperationAdd, OpAlpha: gputypes.BlendOperationAdd,
	}
	got := s.Blend([4]float32{1, 0, 0, 0.25}, [4]float32{0, 0, 1, 1})
	want := [4]float32{0.25, 0, 0.75, 0.25}
	if !near(got, want) {
		t.Errorf("Blend() = %v, want %v", got, want)
	}
}

func TestToByte(t *testing.T) {
	tests := []struct {
		in   float32
		want byte
	}{
		{0, 0},
		{1, 255},
		{0.5, 128},
		{-3, 0},
		{7, 255},
		{1.0 / 255, 1},
	}
	for _, tt := range tests {
		if got := ToByte(tt.in); got != tt.want {
			t.Errorf("ToByte(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPackUnpack(t *testing.T) {
	p := []byte{0, 51, 204, 255}
	c := Unpack(p)
	if !near(c, [4]float32{0, 0.2, 0.8, 1}) {
		t.Errorf("Unpack(%v) = %v", p, c)
	}
	out := make([]byte, 4)
	Pack(out, c)
	for i := range p {
		if out[i] != p[i] {
			t.Errorf("Pack(Unpack(p))[%d] = %d, want %d", i, out[i], p[i])
		}
	}
}
