// Package raster fills triangles.
//
// A triangle arrives in clip space. Each vertex is divided by w and mapped
// through the viewport, the vertices are sorted by y and the triangle is
// split at the middle vertex. Both halves are scanned row by row: the
// edges bounding a half give a coarse span per row, and every pixel
// center in the span is confirmed with edge functions and the top-left
// fill rule. Covered pixels get perspective-correct depth and varyings.
package raster

import (
	"image"
	"slices"

	"github.com/chewxy/math32"
)

// Vertex is a vertex shader result.
type Vertex struct {
	// Pos is the clip-space position.
	Pos [4]float32
	// Varyings are the values interpolated across the triangle.
	Varyings []float32
}

// Viewport maps normalized device coordinates to window coordinates.
type Viewport struct {
	X, Y, Width, Height int
}

// Rect returns the viewport as a rectangle.
func (vp Viewport) Rect() image.Rectangle {
	return image.Rect(vp.X, vp.Y, vp.X+vp.Width, vp.Y+vp.Height)
}

// Project divides pos by w and maps it to window x and y. z stays in
// normalized device coordinates.
func (vp Viewport) Project(pos [4]float32) (x, y, z float32) {
	p := vp.project(pos)
	return p.x, p.y, p.z
}

func (vp Viewport) project(pos [4]float32) point {
	inv := 1 / pos[3]
	return point{
		x:    float32(vp.X) + (pos[0]*inv*0.5+0.5)*float32(vp.Width),
		y:    float32(vp.Y) + (pos[1]*inv*0.5+0.5)*float32(vp.Height),
		z:    pos[2] * inv,
		invW: inv,
	}
}

// Winding returns twice the signed window-space area of the triangle,
// the cross product of its first two edges. It is positive when the
// vertices are counter-clockwise on screen.
func Winding(tri *[3]Vertex, vp Viewport) float32 {
	p0, p1, p2 := vp.project(tri[0].Pos), vp.project(tri[1].Pos), vp.project(tri[2].Pos)
	return edgeFn(p0, p1, p2.x, p2.y)
}

// Fragment is a covered pixel handed to the shade callback. It is reused
// between calls.
type Fragment struct {
	X, Y int
	// Z is the interpolated normalized device depth.
	Z float32
	// InvW is the interpolated 1/w, the w of gl_FragCoord.
	InvW float32
	// Varyings holds the interpolated varyings.
	Varyings []float32
}

// Rasterizer holds scratch state for filling triangles. The zero value is
// ready to use. A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	long  edgeWalk
	short [2]edgeWalk
	frag  Fragment
}

// Triangle fills tri, calling shade for every covered pixel inside clip.
// Triangles with a vertex at w <= 0 or with zero area are dropped. It
// returns the number of fragments produced.
func (r *Rasterizer) Triangle(tri *[3]Vertex, vp Viewport, clip image.Rectangle, shade func(*Fragment)) int {
	var p [3]point
	for i := range tri {
		if !(tri[i].Pos[3] > 0) {
			return 0
		}
		p[i] = vp.project(tri[i].Pos)
	}

	// Edge test order: counter-clockwise.
	a, b, c := 0, 1, 2
	area := edgeFn(p[a], p[b], p[c].x, p[c].y)
	if area == 0 || math32.IsNaN(area) || math32.IsInf(area, 0) {
		return 0
	}
	if area < 0 {
		b, c = c, b
		area = -area
	}
	invArea := 1 / area

	// Scan order: ascending y.
	o := [3]int{0, 1, 2}
	slices.SortFunc(o[:], func(i, j int) int {
		switch {
		case p[i].y < p[j].y:
			return -1
		case p[i].y > p[j].y:
			return 1
		}
		return 0
	})
	lo, mid, hi := p[o[0]], p[o[1]], p[o[2]]

	// A row belongs to the lower half while its center is below mid.
	rowLo := max(ceilInt(lo.y-0.5, clip.Min.Y, clip.Max.Y), clip.Min.Y)
	rowHi := min(floorInt(hi.y-0.5, clip.Min.Y, clip.Max.Y)+1, clip.Max.Y)
	rowMid := min(max(ceilInt(mid.y-0.5, clip.Min.Y, clip.Max.Y), rowLo), rowHi)
	if rowLo >= rowHi || clip.Min.X >= clip.Max.X {
		return 0
	}
	r.long.walk(lo, hi, rowLo, rowHi)
	r.short[0].walk(lo, mid, rowLo, rowMid)
	r.short[1].walk(mid, hi, rowMid, rowHi)

	n := min(len(tri[0].Varyings), len(tri[1].Varyings), len(tri[2].Varyings))
	f := &r.frag
	f.Varyings = slices.Grow(f.Varyings[:0], n)[:n]

	count := 0
	for y := rowLo; y < rowHi; y++ {
		short := &r.short[1]
		if y < rowMid {
			short = &r.short[0]
		}
		l0, h0 := r.long.extent(y)
		l1, h1 := short.extent(y)
		minX, maxX := min(l0, l1), max(h0, h1)
		if minX > maxX {
			continue
		}
		x0 := max(ceilInt(minX-0.5, clip.Min.X, clip.Max.X)-1, clip.Min.X)
		x1 := min(floorInt(maxX-0.5, clip.Min.X, clip.Max.X)+2, clip.Max.X)

		py := float32(y) + 0.5
		for x := x0; x < x1; x++ {
			px := float32(x) + 0.5
			w0 := edgeFn(p[b], p[c], px, py)
			w1 := edgeFn(p[c], p[a], px, py)
			w2 := edgeFn(p[a], p[b], px, py)
			if !covers(w0, p[b], p[c]) || !covers(w1, p[c], p[a]) || !covers(w2, p[a], p[b]) {
				continue
			}
			var q [3]float32
			q[a] = w0 * invArea * p[a].invW
			q[b] = w1 * invArea * p[b].invW
			q[c] = w2 * invArea * p[c].invW
			sum := q[0] + q[1] + q[2]
			if !(sum > 0) {
				continue
			}
			inv := 1 / sum
			q[0], q[1], q[2] = q[0]*inv, q[1]*inv, q[2]*inv

			f.X, f.Y = x, y
			f.InvW = sum
			f.Z = q[0]*p[0].z + q[1]*p[1].z + q[2]*p[2].z
			for k := range f.Varyings {
				f.Varyings[k] = q[0]*tri[0].Varyings[k] + q[1]*tri[1].Varyings[k] + q[2]*tri[2].Varyings[k]
			}
			shade(f)
			count++
		}
	}
	return count
}
