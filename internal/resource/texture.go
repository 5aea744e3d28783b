package resource

import (
	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/softgl/internal/object"
)

// Texture2D is RGBA8 pixel storage with nearest-neighbour sampling.
//
// Row 0 is the bottom row, matching window coordinates, so a texture can be
// used directly as a color attachment.
type Texture2D struct {
	id     uint32
	width  int
	height int
	format gputypes.TextureFormat
	pix    []byte
}

// NewTexture2D returns an empty texture named id.
func NewTexture2D(id uint32) *Texture2D {
	return &Texture2D{id: id, format: gputypes.TextureFormatUndefined}
}

// ID implements object.Object.
func (t *Texture2D) ID() uint32 { return t.id }

// Kind implements object.Object.
func (t *Texture2D) Kind() object.Kind { return object.KindTexture2D }

// Size returns the texture dimensions.
func (t *Texture2D) Size() (width, height int) { return t.width, t.height }

// Format returns the storage format, TextureFormatUndefined before the
// first upload.
func (t *Texture2D) Format() gputypes.TextureFormat { return t.format }

// Pix returns the RGBA8 texel bytes, 4 per texel, rows bottom to top.
func (t *Texture2D) Pix() []byte { return t.pix }

// Upload reallocates the texture to width x height RGBA8 texels and copies
// pixels in when non-nil. Short pixel slices fill only the leading texels.
// Non-positive dimensions release the storage.
func (t *Texture2D) Upload(width, height int, pixels []byte) {
	if width <= 0 || height <= 0 {
		t.width, t.height, t.pix = 0, 0, nil
		t.format = gputypes.TextureFormatUndefined
		return
	}
	t.width, t.height = width, height
	t.format = gputypes.TextureFormatRGBA8Unorm
	t.pix = make([]byte, width*height*4)
	if pixels != nil {
		copy(t.pix, pixels)
	}
}

// SubUpload replaces the w x h region at (x, y). It reports false and
// changes nothing if the region does not fit or pixels is too short.
func (t *Texture2D) SubUpload(x, y, w, h int, pixels []byte) bool {
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > t.width || y+h > t.height {
		return false
	}
	if len(pixels) < w*h*4 {
		return false
	}
	for row := range h {
		dst := ((y+row)*t.width + x) * 4
		src := row * w * 4
		copy(t.pix[dst:dst+w*4], pixels[src:src+w*4])
	}
	return true
}

// Sample returns the texel nearest to (u, v) as RGBA in [0, 1]. Coordinates
// are clamped to [0, 1] and mapped with floor((dim-1)*coord). A texture
// without storage samples as opaque black.
func (t *Texture2D) Sample(u, v float32) [4]float32 {
	if len(t.pix) == 0 {
		return [4]float32{0, 0, 0, 1}
	}
	x := int(math32.Floor(float32(t.width-1) * clamp01(u)))
	y := int(math32.Floor(float32(t.height-1) * clamp01(v)))
	i := (y*t.width + x) * 4
	p := t.pix[i : i+4 : i+4]
	return [4]float32{
		float32(p[0]) / 255,
		float32(p[1]) / 255,
		float32(p[2]) / 255,
		float32(p[3]) / 255,
	}
}

func clamp01(v float32) float32 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
