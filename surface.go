package softgl

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
)

// Surface owns a set of default buffers: RGBA8 color plus optional
// float32 depth and uint8 stencil.
//
// Buffers are stored bottom row first, as in window coordinates. The
// image.Image methods and ToImage present the usual top-down view.
type Surface struct {
	width   int
	height  int
	color   []byte
	depth   []float32
	stencil []byte
}

// NewSurface allocates a width x height surface. Depth is initialized to
// 1, the far plane.
func NewSurface(width, height int, depth, stencil bool) *Surface {
	width, height = max(width, 0), max(height, 0)
	s := &Surface{
		width:  width,
		height: height,
		color:  make([]byte, width*height*4),
	}
	if depth {
		s.depth = make([]float32, width*height)
		for i := range s.depth {
			s.depth[i] = 1
		}
	}
	if stencil {
		s.stencil = make([]byte, width*height)
	}
	return s
}

// Width returns the width of the surface.
func (s *Surface) Width() int {
	return s.width
}

// Height returns the height of the surface.
func (s *Surface) Height() int {
	return s.height
}

// Color returns the RGBA8 color buffer, bottom row first.
func (s *Surface) Color() []byte {
	return s.color
}

// Depth returns the depth buffer, or nil.
func (s *Surface) Depth() []float32 {
	return s.depth
}

// Stencil returns the stencil buffer, or nil.
func (s *Surface) Stencil() []byte {
	return s.stencil
}

// Pixel returns the color at window coordinates (x, y), origin at the
// lower left.
func (s *Surface) Pixel(x, y int) color.NRGBA {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return color.NRGBA{}
	}
	i := (y*s.width + x) * 4
	return color.NRGBA{R: s.color[i], G: s.color[i+1], B: s.color[i+2], A: s.color[i+3]}
}

// ToImage copies the color buffer into a top-down image.
func (s *Surface) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, s.width, s.height))
	row := s.width * 4
	for y := range s.height {
		src := (s.height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], s.color[src:src+row])
	}
	return img
}

// EncodePNG writes the color buffer to w as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, s.ToImage()); err != nil {
		return fmt.Errorf("softgl: encode png: %w", err)
	}
	return nil
}

// SavePNG saves the color buffer to a PNG file.
func (s *Surface) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return s.EncodePNG(f)
}

// At implements the image.Image interface. y grows downwards.
func (s *Surface) At(x, y int) color.Color {
	return s.Pixel(x, s.height-1-y)
}

// Bounds implements the image.Image interface.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// ColorModel implements the image.Image interface.
func (s *Surface) ColorModel() color.Model {
	return color.NRGBAModel
}
