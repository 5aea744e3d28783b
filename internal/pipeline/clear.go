package pipeline

import (
	"image"

	"github.com/gogpu/softgl/internal/blend"
)

// ClearColor fills r of the color buffer with c, writing only the
// channels enabled in mask.
func ClearColor(t *Target, r image.Rectangle, c [4]float32, mask [4]bool) {
	var px [4]byte
	blend.Pack(px[:], c)
	r = r.Intersect(t.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst := t.color(y*t.Width + x)
			if dst == nil {
				return
			}
			for k, on := range mask {
				if on {
					dst[k] = px[k]
				}
			}
		}
	}
}

// ClearDepth fills r of the depth buffer with v.
func ClearDepth(t *Target, r image.Rectangle, v float32) {
	r = r.Intersect(t.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := y*t.Width + x
			if !t.hasDepth(i) {
				return
			}
			t.Depth[i] = v
		}
	}
}

// ClearStencil fills r of the stencil buffer with v, changing only the
// bits set in writeMask.
func ClearStencil(t *Target, r image.Rectangle, v, writeMask uint8) {
	r = r.Intersect(t.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := y*t.Width + x
			if !t.hasStencil(i) {
				return
			}
			t.Stencil[i] = t.Stencil[i]&^writeMask | v&writeMask
		}
	}
}
