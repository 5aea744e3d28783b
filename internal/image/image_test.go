package image

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// checker is a 3x2 picture: a red, green, blue top row over a white,
// translucent black, transparent bottom row.
func checker() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	img.SetNRGBA(1, 0, color.NRGBA{0, 255, 0, 255})
	img.SetNRGBA(2, 0, color.NRGBA{0, 0, 255, 255})
	img.SetNRGBA(0, 1, color.NRGBA{255, 255, 255, 255})
	img.SetNRGBA(1, 1, color.NRGBA{0, 0, 0, 128})
	img.SetNRGBA(2, 1, color.NRGBA{0, 0, 0, 0})
	return img
}

func TestDecodeLossless(t *testing.T) {
	tests := []struct {
		name   string
		format string
		encode func(io.Writer, image.Image) error
		opaque bool
	}{
		{"png", "png", png.Encode, false},
		{"bmp", "bmp", bmp.Encode, true},
		{"tiff", "tiff", func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := checker()
			if tt.opaque {
				for i := 3; i < len(src.Pix); i += 4 {
					src.Pix[i] = 255
				}
			}
			var buf bytes.Buffer
			require.NoError(t, tt.encode(&buf, src))

			m, err := Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, tt.format, m.Format)
			assert.Equal(t, 3, m.Width)
			assert.Equal(t, 2, m.Height)
			assert.Equal(t, BitsPerPixel, m.BitsPerPixel)
			assert.Equal(t, src.Pix, m.Pix)
		})
	}
}

func TestDecodeJPEG(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range src.Pix {
		src.Pix[i] = 128
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, src, &jpeg.Options{Quality: 100}))

	m, err := DecodeBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "jpeg", m.Format)
	require.Len(t, m.Pix, 8*8*4)
	for i := 0; i < len(m.Pix); i += 4 {
		assert.InDelta(t, 128, m.Pix[i], 2)
		assert.Equal(t, m.Pix[i], m.Pix[i+1])
		assert.Equal(t, uint8(255), m.Pix[i+3])
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := DecodeBytes(nil)
	assert.ErrorIs(t, err, ErrEmptyData)

	_, err = DecodeBytes([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, checker()))
	_, err = DecodeBytes(buf.Bytes()[:buf.Len()/2])
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "png")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tex.png")
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, checker()))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, checker().Pix, m.Pix)

	_, err = Load(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, fs.ErrNotExist)

	junk := filepath.Join(dir, "junk.png")
	require.NoError(t, os.WriteFile(junk, []byte("junk"), 0o600))
	_, err = Load(junk)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), junk)
}

func TestFromImagePremultiplied(t *testing.T) {
	src := image.NewRGBA(image.Rect(2, 2, 3, 3))
	src.SetRGBA(2, 2, color.RGBA{64, 0, 0, 128})
	m := FromImage(src)
	assert.Equal(t, 1, m.Width)
	assert.InDelta(t, 127, m.Pix[0], 1)
	assert.Equal(t, uint8(128), m.Pix[3])
}

func TestFlipVertical(t *testing.T) {
	tests := []struct {
		name   string
		height int
	}{
		{"even", 2},
		{"odd", 3},
		{"single row", 1},
		{"empty", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Image{Pix: make([]byte, 2*tt.height*4), Width: 2, Height: tt.height}
			for y := range tt.height {
				for i := range 8 {
					m.Pix[y*8+i] = byte(y)
				}
			}
			m.FlipVertical()
			for y := range tt.height {
				assert.Equal(t, byte(tt.height-1-y), m.Pix[y*8], "row %d", y)
			}
		})
	}
}

func TestScaleAndFit(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for i := 0; i < len(src.Pix); i += 4 {
		copy(src.Pix[i:], []byte{10, 20, 30, 255})
	}
	m := FromImage(src)
	m.Format = "png"

	s, err := m.Scale(2, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Width)
	assert.Equal(t, "png", s.Format)
	want := []byte{10, 20, 30, 255}
	for i, v := range s.Pix {
		assert.InDelta(t, want[i%4], v, 1, "byte %d", i)
	}
	_, err = m.Scale(0, 2)
	assert.ErrorIs(t, err, ErrInvalidSize)

	f, err := m.Fit(8)
	require.NoError(t, err)
	assert.Same(t, m, f)
	f, err = m.Fit(4)
	require.NoError(t, err)
	assert.Equal(t, [2]int{4, 2}, [2]int{f.Width, f.Height})
	_, err = m.Fit(0)
	assert.ErrorIs(t, err, ErrInvalidSize)
}
