package raster

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ndc converts a window coordinate in a viewport of size n to NDC.
func ndc(v, n float32) float32 { return v/n*2 - 1 }

func vert(x, y, z, w float32, varyings ...float32) Vertex {
	return Vertex{Pos: [4]float32{x * w, y * w, z * w, w}, Varyings: varyings}
}

type coverage map[image.Point]int

func (c coverage) shade(f *Fragment) { c[image.Pt(f.X, f.Y)]++ }

func fill(tris [][3]Vertex, vp Viewport, clip image.Rectangle) coverage {
	var r Rasterizer
	c := coverage{}
	for i := range tris {
		r.Triangle(&tris[i], vp, clip, c.shade)
	}
	return c
}

func TestTriangleCentroidInterpolation(t *testing.T) {
	vp := Viewport{Width: 8, Height: 8}
	// Window positions (0.5,0.5) (6.5,0.5) (0.5,6.5); the centroid is the
	// center of pixel (2,2).
	lo, hi := ndc(0.5, 8), ndc(6.5, 8)

	tests := []struct {
		name string
		w    [3]float32
		want float32
	}{
		{"affine", [3]float32{1, 1, 1}, 2},
		{"perspective", [3]float32{1, 2, 1}, 1.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tri := [3]Vertex{
				vert(lo, lo, 0, tt.w[0], 0, 1),
				vert(hi, lo, 0, tt.w[1], 6, 1),
				vert(lo, hi, 0, tt.w[2], 0, 1),
			}
			var r Rasterizer
			got := map[image.Point][]float32{}
			r.Triangle(&tri, vp, vp.Rect(), func(f *Fragment) {
				got[image.Pt(f.X, f.Y)] = append([]float32(nil), f.Varyings...)
			})
			v, ok := got[image.Pt(2, 2)]
			require.True(t, ok, "centroid pixel not covered")
			assert.InDelta(t, tt.want, v[0], 1e-4)
			assert.InDelta(t, 1, v[1], 1e-5, "constant varying stays constant")
		})
	}
}

func TestTriangleDepthAndInvW(t *testing.T) {
	vp := Viewport{Width: 4, Height: 4}
	tri := [3]Vertex{
		vert(-1, -1, -0.5, 2),
		vert(3, -1, -0.5, 2),
		vert(-1, 3, -0.5, 2),
	}
	var r Rasterizer
	n := r.Triangle(&tri, vp, vp.Rect(), func(f *Fragment) {
		assert.InDelta(t, -0.5, f.Z, 1e-6)
		assert.InDelta(t, 0.5, f.InvW, 1e-6)
	})
	assert.Equal(t, 16, n)
}

func TestQuadSharedEdgeShadedOnce(t *testing.T) {
	vp := Viewport{Width: 4, Height: 4}
	a, b, c, d := vert(-1, -1, 0, 1), vert(1, -1, 0, 1), vert(1, 1, 0, 1), vert(-1, 1, 0, 1)

	for _, order := range []string{"ccw", "cw"} {
		t.Run(order, func(t *testing.T) {
			tris := [][3]Vertex{{a, b, c}, {a, c, d}}
			if order == "cw" {
				tris = [][3]Vertex{{a, c, b}, {a, d, c}}
			}
			cov := fill(tris, vp, vp.Rect())
			for y := range 4 {
				for x := range 4 {
					assert.Equal(t, 1, cov[image.Pt(x, y)], "pixel (%d,%d)", x, y)
				}
			}
			assert.Len(t, cov, 16)
		})
	}
}

func TestFanThroughPixelCentersShadedOnce(t *testing.T) {
	const n = 8
	vp := Viewport{Width: n, Height: n}
	p := func(x, y float32) Vertex { return vert(ndc(x, n), ndc(y, n), 0, 1) }
	center := p(4.5, 4.5)
	corners := []Vertex{p(0.5, 0.5), p(7.5, 0.5), p(7.5, 7.5), p(0.5, 7.5)}

	var tris [][3]Vertex
	for i := range corners {
		tris = append(tris, [3]Vertex{center, corners[i], corners[(i+1)%len(corners)]})
	}
	cov := fill(tris, vp, vp.Rect())
	for pt, count := range cov {
		assert.Equal(t, 1, count, "pixel %v", pt)
	}
	for y := 1; y < 7; y++ {
		for x := 1; x < 7; x++ {
			assert.Equal(t, 1, cov[image.Pt(x, y)], "interior pixel (%d,%d)", x, y)
		}
	}
}

// bruteCoverage tests every pixel center in vp against the edges of tri.
func bruteCoverage(tri [3]Vertex, vp Viewport) coverage {
	var p [3]point
	for i := range tri {
		p[i] = vp.project(tri[i].Pos)
	}
	a, b, c := 0, 1, 2
	if edgeFn(p[a], p[b], p[c].x, p[c].y) < 0 {
		b, c = c, b
	}
	cov := coverage{}
	for y := range vp.Height {
		for x := range vp.Width {
			px, py := float32(x)+0.5, float32(y)+0.5
			if covers(edgeFn(p[b], p[c], px, py), p[b], p[c]) &&
				covers(edgeFn(p[c], p[a], px, py), p[c], p[a]) &&
				covers(edgeFn(p[a], p[b], px, py), p[a], p[b]) {
				cov[image.Pt(x, y)]++
			}
		}
	}
	return cov
}

func TestCoverageMatchesEdgeFunctions(t *testing.T) {
	const n = 32
	vp := Viewport{Width: n, Height: n}
	p := func(x, y float32) Vertex { return vert(ndc(x, n), ndc(y, n), 0, 1) }
	tests := []struct {
		name string
		tri  [3]Vertex
	}{
		{"shallow sliver", [3]Vertex{p(0.2, 3.1), p(31.7, 4.3), p(0.4, 3.9)}},
		{"steep sliver", [3]Vertex{p(5.1, 0.3), p(5.9, 31.6), p(5.3, 0.1)}},
		{"long diagonal", [3]Vertex{p(0.1, 0.2), p(31.9, 31.3), p(0.3, 1.7)}},
		{"fractional corners", [3]Vertex{p(2.5, 2.5), p(29.5, 7.25), p(11.75, 28.5)}},
		{"clockwise", [3]Vertex{p(3.3, 1.1), p(9.8, 30.2), p(27.4, 12.6)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := bruteCoverage(tt.tri, vp)
			require.NotEmpty(t, want)
			assert.Equal(t, want, fill([][3]Vertex{tt.tri}, vp, vp.Rect()))
		})
	}
}

func TestTriangleRejects(t *testing.T) {
	vp := Viewport{Width: 4, Height: 4}
	tests := []struct {
		name string
		tri  [3]Vertex
	}{
		{"degenerate", [3]Vertex{vert(-1, -1, 0, 1), vert(0, 0, 0, 1), vert(1, 1, 0, 1)}},
		{"point", [3]Vertex{vert(0, 0, 0, 1), vert(0, 0, 0, 1), vert(0, 0, 0, 1)}},
		{"outside", [3]Vertex{vert(2, 2, 0, 1), vert(3, 2, 0, 1), vert(2, 3, 0, 1)}},
		{"behind", [3]Vertex{vert(-1, -1, 0, 1), vert(1, -1, 0, -1), vert(-1, 1, 0, 1)}},
		{"zero w", [3]Vertex{{Pos: [4]float32{-1, -1, 0, 0}}, vert(1, -1, 0, 1), vert(-1, 1, 0, 1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Rasterizer
			n := r.Triangle(&tt.tri, vp, vp.Rect(), func(*Fragment) { t.Error("unexpected fragment") })
			assert.Zero(t, n)
		})
	}
}

func TestTriangleClip(t *testing.T) {
	vp := Viewport{Width: 8, Height: 8}
	tri := [3]Vertex{vert(-1, -1, 0, 1), vert(3, -1, 0, 1), vert(-1, 3, 0, 1)}
	clip := image.Rect(2, 3, 5, 4)
	cov := fill([][3]Vertex{tri}, vp, clip)
	assert.Len(t, cov, 3)
	for pt := range cov {
		assert.True(t, pt.In(clip), "%v outside clip", pt)
	}
}

func TestHugeTriangleIsBoundedByClip(t *testing.T) {
	vp := Viewport{Width: 16, Height: 16}
	tri := [3]Vertex{vert(-1e6, -1e6, 0, 1), vert(1e6, -1e6, 0, 1), vert(0, 1e6, 0, 1)}
	cov := fill([][3]Vertex{tri}, vp, vp.Rect())
	assert.Len(t, cov, 256)
}

func TestWinding(t *testing.T) {
	vp := Viewport{Width: 4, Height: 4}
	ccw := [3]Vertex{vert(-1, -1, 0, 1), vert(1, -1, 0, 1), vert(-1, 1, 0, 1)}
	cw := [3]Vertex{ccw[0], ccw[2], ccw[1]}
	assert.Greater(t, Winding(&ccw, vp), float32(0))
	assert.Less(t, Winding(&cw, vp), float32(0))
}

func TestViewportProject(t *testing.T) {
	vp := Viewport{X: 10, Y: 20, Width: 100, Height: 50}
	x, y, z := vp.Project([4]float32{0.5, -1, 1, 2})
	assert.InDelta(t, 10+0.625*100, x, 1e-4)
	assert.InDelta(t, 20+0.25*50, y, 1e-4)
	assert.InDelta(t, 0.5, z, 1e-6)
	assert.Equal(t, image.Rect(10, 20, 110, 70), vp.Rect())
}
