package pipeline

import "image"

// Target is the set of buffers fragments are written to. Any buffer may be
// nil; a buffer shorter than Width*Height is only written where it has
// room.
type Target struct {
	Width, Height int
	Color         []byte    // RGBA8, 4 bytes per pixel
	Depth         []float32 // one value per pixel
	Stencil       []byte    // one value per pixel
}

// Bounds returns the target rectangle.
func (t *Target) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.Width, t.Height)
}

func (t *Target) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return 0, false
	}
	return y*t.Width + x, true
}

func (t *Target) color(i int) []byte {
	if (i+1)*4 > len(t.Color) {
		return nil
	}
	return t.Color[i*4 : i*4+4 : i*4+4]
}

func (t *Target) hasDepth(i int) bool   { return i < len(t.Depth) }
func (t *Target) hasStencil(i int) bool { return i < len(t.Stencil) }
