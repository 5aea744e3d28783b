package resource

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/softgl/internal/object"
)

func newTable() *object.Table { return object.NewTable() }

func genRenderbuffer(tbl *object.Table, format gputypes.TextureFormat, w, h int) *Renderbuffer {
	ids := tbl.Generate(1, func(id uint32) object.Object { return NewRenderbuffer(id) })
	rb, _ := object.Get[*Renderbuffer](tbl, ids[0])
	rb.Storage(format, w, h)
	return rb
}

func TestFramebufferCompleteness(t *testing.T) {
	tbl := newTable()
	fb := NewFramebuffer(100)
	assert.Equal(t, StatusMissingAttachment, fb.Status(tbl))

	depth := genRenderbuffer(tbl, gputypes.TextureFormatDepth32Float, 256, 256)
	color := genRenderbuffer(tbl, gputypes.TextureFormatRGBA8Unorm, 128, 128)
	fb.Attach(SlotDepth, depth)
	fb.Attach(SlotColor0, color)
	assert.Equal(t, StatusIncompleteDimensions, fb.Status(tbl))

	depth.Storage(gputypes.TextureFormatDepth32Float, 128, 128)
	assert.Equal(t, StatusComplete, fb.Status(tbl))
	assert.NotNil(t, fb.ColorBuffer(tbl))
	assert.NotNil(t, fb.DepthBuffer(tbl))
	assert.Nil(t, fb.StencilBuffer(tbl))
	w, h := fb.Size(tbl)
	assert.Equal(t, [2]int{128, 128}, [2]int{w, h})
}

func TestFramebufferZeroSizedAttachment(t *testing.T) {
	tbl := newTable()
	fb := NewFramebuffer(100)
	fb.Attach(SlotColor0, genRenderbuffer(tbl, gputypes.TextureFormatRGBA8Unorm, 0, 0))
	assert.Equal(t, StatusIncompleteAttachment, fb.Status(tbl))
}

func TestFramebufferDeletedAttachment(t *testing.T) {
	tbl := newTable()
	fb := NewFramebuffer(100)
	color := genRenderbuffer(tbl, gputypes.TextureFormatRGBA8Unorm, 4, 4)
	fb.Attach(SlotColor0, color)

	kind, id := fb.Query(tbl, SlotColor0)
	require.Equal(t, object.KindRenderbuffer, kind)
	assert.Equal(t, color.ID(), id)

	tbl.Delete(object.KindRenderbuffer, color.ID())
	kind, id = fb.Query(tbl, SlotColor0)
	assert.Equal(t, object.KindNone, kind)
	assert.Zero(t, id)
	assert.Equal(t, StatusMissingAttachment, fb.Status(tbl))
	assert.Nil(t, fb.ColorBuffer(tbl))
}

func TestFramebufferTextureAttachment(t *testing.T) {
	tbl := newTable()
	ids := tbl.Generate(1, func(id uint32) object.Object { return NewTexture2D(id) })
	tex, _ := object.Get[*Texture2D](tbl, ids[0])
	tex.Upload(2, 2, nil)

	fb := NewFramebuffer(100)
	fb.Attach(SlotColor0, tex)
	kind, _ := fb.Query(tbl, SlotColor0)
	assert.Equal(t, object.KindTexture2D, kind)
	assert.Len(t, fb.ColorBuffer(tbl), 16)

	fb.Attach(SlotColor0, nil)
	assert.Equal(t, StatusMissingAttachment, fb.Status(tbl))
}
