// Package image decodes encoded pictures into texel data ready for
// TexImage2D.
//
// Decoding accepts PNG, JPEG, BMP, TIFF and WebP. Every result is
// converted to non-premultiplied RGBA8, 32 bits per pixel, rows top
// first. FlipVertical reorders the rows for APIs whose first row is the
// bottom of the picture.
package image

import (
	"errors"
	"image"

	"golang.org/x/image/draw"
)

// BitsPerPixel of every decoded Image.
const BitsPerPixel = 32

// Errors returned by this package.
var (
	// ErrEmptyData is returned when there is nothing to decode.
	ErrEmptyData = errors.New("image: empty data")

	// ErrUnsupportedFormat is returned when no registered decoder
	// recognizes the data.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrInvalidSize is returned for non-positive target dimensions.
	ErrInvalidSize = errors.New("image: invalid size")
)

// Image is a decoded picture.
type Image struct {
	// Pix holds Width*Height RGBA8 texels.
	Pix []byte
	// Width and Height are the dimensions in texels.
	Width, Height int
	// BitsPerPixel is the size of one texel in Pix.
	BitsPerPixel int
	// Format names the decoder that produced the image, "png" for example.
	Format string
}

// FromImage converts any image.Image to RGBA8.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return &Image{
		Pix:          dst.Pix,
		Width:        b.Dx(),
		Height:       b.Dy(),
		BitsPerPixel: BitsPerPixel,
	}
}

// NRGBA wraps the texels in an image.NRGBA without copying.
func (m *Image) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    m.Pix,
		Stride: m.Width * 4,
		Rect:   image.Rect(0, 0, m.Width, m.Height),
	}
}

// FlipVertical reverses the row order in place.
func (m *Image) FlipVertical() {
	row := m.Width * 4
	tmp := make([]byte, row)
	for top, bottom := 0, m.Height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := m.Pix[top*row : (top+1)*row]
		b := m.Pix[bottom*row : (bottom+1)*row]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

// Scale returns a copy resampled to width x height with the
// Catmull-Rom kernel.
func (m *Image) Scale(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), m.NRGBA(), image.Rect(0, 0, m.Width, m.Height), draw.Src, nil)
	return &Image{
		Pix:          dst.Pix,
		Width:        width,
		Height:       height,
		BitsPerPixel: BitsPerPixel,
		Format:       m.Format,
	}, nil
}

// Fit returns m unchanged when both dimensions are at most limit, and a
// copy scaled down to fit inside limit x limit, keeping the aspect ratio,
// otherwise.
func (m *Image) Fit(limit int) (*Image, error) {
	if limit <= 0 {
		return nil, ErrInvalidSize
	}
	if m.Width <= limit && m.Height <= limit {
		return m, nil
	}
	w, h := limit, limit
	if m.Width > m.Height {
		h = max(m.Height*limit/m.Width, 1)
	} else {
		w = max(m.Width*limit/m.Height, 1)
	}
	return m.Scale(w, h)
}
