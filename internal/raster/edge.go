package raster

import "github.com/chewxy/math32"

// point is a vertex after projection to window space.
type point struct {
	x, y float32 // window coordinates, y up
	z    float32 // normalized device z
	invW float32 // 1 / clip w
}

// edgeFn is twice the signed area of (u, v, p). It is positive when p is
// left of u->v, which is inside for a counter-clockwise triangle.
func edgeFn(u, v point, px, py float32) float32 {
	return (v.x-u.x)*(py-u.y) - (v.y-u.y)*(px-u.x)
}

// topLeft reports whether the edge u->v of a counter-clockwise triangle
// owns the pixel centers lying exactly on it. With y up, left edges point
// down and a top edge points left.
func topLeft(u, v point) bool {
	dy := v.y - u.y
	return dy < 0 || (dy == 0 && v.x < u.x)
}

func covers(w float32, u, v point) bool {
	return w > 0 || (w == 0 && topLeft(u, v))
}

// edgeWalk records, for every pixel row an edge crosses, the x extent of
// the edge inside that row. The edge is walked one row at a time, so the
// work is bounded by the rows being drawn and not by the edge length.
type edgeWalk struct {
	y0   int
	minX []float32
	maxX []float32
}

// walk records the rows of a->b that fall in [rowLo, rowHi).
func (e *edgeWalk) walk(a, b point, rowLo, rowHi int) {
	e.minX, e.maxX = e.minX[:0], e.maxX[:0]
	if a.y > b.y {
		a, b = b, a
	}
	first := max(floorInt(a.y, rowLo, rowHi), rowLo)
	last := min(floorInt(b.y, rowLo, rowHi), rowHi-1)
	e.y0 = first
	if first > last {
		return
	}
	dy := b.y - a.y
	var slope float32
	if dy > 0 {
		slope = (b.x - a.x) / dy
	}
	x := a.x + (max(float32(first), a.y)-a.y)*slope
	for y := first; y <= last; y++ {
		top := min(float32(y+1), b.y)
		next := a.x + (top-a.y)*slope
		if dy == 0 {
			x, next = a.x, b.x
		}
		e.minX = append(e.minX, min(x, next))
		e.maxX = append(e.maxX, max(x, next))
		x = next
	}
}

// extent returns the x extent of the edge in row y. Rows the edge does
// not cross give an empty extent.
func (e *edgeWalk) extent(y int) (lo, hi float32) {
	i := y - e.y0
	if i < 0 || i >= len(e.minX) {
		return math32.Inf(1), math32.Inf(-1)
	}
	return e.minX[i], e.maxX[i]
}

// floorInt floors v and clamps it to [lo-1, hi] before converting, so
// far off-screen coordinates cannot overflow.
func floorInt(v float32, lo, hi int) int {
	v = math32.Floor(v)
	if !(v >= float32(lo-1)) {
		return lo - 1
	}
	if v > float32(hi) {
		return hi
	}
	return int(v)
}

// ceilInt is the ceiling counterpart of floorInt.
func ceilInt(v float32, lo, hi int) int {
	v = math32.Ceil(v)
	if !(v >= float32(lo-1)) {
		return lo - 1
	}
	if v > float32(hi) {
		return hi
	}
	return int(v)
}
