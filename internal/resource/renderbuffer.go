package resource

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/softgl/internal/object"
)

// Renderbuffer is off-screen attachment storage in one of three layouts:
// RGBA8 color, float32 depth or uint8 stencil.
type Renderbuffer struct {
	id      uint32
	width   int
	height  int
	format  gputypes.TextureFormat
	color   []byte
	depth   []float32
	stencil []byte
}

// NewRenderbuffer returns an empty renderbuffer named id.
func NewRenderbuffer(id uint32) *Renderbuffer { return &Renderbuffer{id: id} }

// ID implements object.Object.
func (r *Renderbuffer) ID() uint32 { return r.id }

// Kind implements object.Object.
func (r *Renderbuffer) Kind() object.Kind { return object.KindRenderbuffer }

// Size returns the storage dimensions.
func (r *Renderbuffer) Size() (width, height int) { return r.width, r.height }

// Format returns the storage format.
func (r *Renderbuffer) Format() gputypes.TextureFormat { return r.format }

// Color returns the RGBA8 storage of a color renderbuffer, or nil.
func (r *Renderbuffer) Color() []byte { return r.color }

// Depth returns the float depth storage of a depth renderbuffer, or nil.
func (r *Renderbuffer) Depth() []float32 { return r.depth }

// Stencil returns the stencil storage of a stencil renderbuffer, or nil.
func (r *Renderbuffer) Stencil() []byte { return r.stencil }

// ByteSize returns the allocation size in bytes.
func (r *Renderbuffer) ByteSize() int {
	return storageBytes(r.format, r.width, r.height)
}

func storageBytes(format gputypes.TextureFormat, width, height int) int {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatDepth32Float:
		return width * height * 4
	case gputypes.TextureFormatStencil8:
		return width * height
	default:
		return 0
	}
}

// Storage sizes the renderbuffer for format at width x height. Only
// RGBA8Unorm, Depth32Float and Stencil8 are storable; any other format
// releases the storage. Storage is reallocated, and therefore zeroed, only
// when the dimensions or the byte size change, so repeating a call keeps
// the current contents.
func (r *Renderbuffer) Storage(format gputypes.TextureFormat, width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := storageBytes(format, width, height)
	if width == r.width && height == r.height && size == r.ByteSize() && format == r.format {
		return
	}
	r.width, r.height, r.format = width, height, format
	r.color, r.depth, r.stencil = nil, nil, nil
	if size == 0 {
		return
	}
	switch format {
	case gputypes.TextureFormatRGBA8Unorm:
		r.color = make([]byte, size)
	case gputypes.TextureFormatDepth32Float:
		r.depth = make([]float32, width*height)
	case gputypes.TextureFormatStencil8:
		r.stencil = make([]byte, size)
	}
}

// Bits reports the per-component bit depths of the storage format.
func (r *Renderbuffer) Bits() (red, green, blue, alpha, depth, stencil int) {
	switch {
	case r.format == gputypes.TextureFormatRGBA8Unorm:
		return 8, 8, 8, 8, 0, 0
	case r.format.HasDepth():
		return 0, 0, 0, 0, 32, 0
	case r.format.HasStencil():
		return 0, 0, 0, 0, 0, 8
	}
	return 0, 0, 0, 0, 0, 0
}
