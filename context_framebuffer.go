package softgl

import (
	"github.com/gogpu/softgl/internal/object"
	"github.com/gogpu/softgl/internal/pipeline"
	"github.com/gogpu/softgl/internal/resource"
)

// target resolves the buffers draws and clears write to. An incomplete
// framebuffer records INVALID_FRAMEBUFFER_OPERATION.
func (c *Context) target() (*pipeline.Target, bool) {
	if c.framebuffer == 0 {
		return &c.defaults, true
	}
	fb, ok := object.Get[*resource.Framebuffer](c.objects, c.framebuffer)
	if !ok {
		return nil, false
	}
	if fb.Status(c.objects) != resource.StatusComplete {
		c.setError(INVALID_FRAMEBUFFER_OPERATION)
		return nil, false
	}
	w, h := fb.Size(c.objects)
	c.fbTarget = pipeline.Target{
		Width:   w,
		Height:  h,
		Color:   fb.ColorBuffer(c.objects),
		Depth:   fb.DepthBuffer(c.objects),
		Stencil: fb.StencilBuffer(c.objects),
	}
	return &c.fbTarget, true
}

func (c *Context) boundFramebuffer(target Enum) (*resource.Framebuffer, bool) {
	if target != FRAMEBUFFER {
		c.setError(INVALID_ENUM)
		return nil, false
	}
	return bound[*resource.Framebuffer](c, c.framebuffer)
}

func attachmentSlot(attachment Enum) (resource.Slot, bool) {
	switch attachment {
	case COLOR_ATTACHMENT0:
		return resource.SlotColor0, true
	case DEPTH_ATTACHMENT:
		return resource.SlotDepth, true
	case STENCIL_ATTACHMENT:
		return resource.SlotStencil, true
	}
	return 0, false
}

// RenderbufferStorage allocates storage for the bound renderbuffer. Color
// formats are stored as RGBA8, depth formats as 32-bit float. Repeating a
// call with the same size keeps the contents.
func (c *Context) RenderbufferStorage(target, internalFormat Enum, width, height int) {
	if target != RENDERBUFFER {
		c.setError(INVALID_ENUM)
		return
	}
	format, ok := renderbufferFormats[internalFormat]
	if !ok {
		c.setError(INVALID_ENUM)
		return
	}
	if width < 0 || height < 0 || width > MaxRenderbufferSize || height > MaxRenderbufferSize {
		c.setError(INVALID_VALUE)
		return
	}
	rb, ok := bound[*resource.Renderbuffer](c, c.renderbuffer)
	if !ok {
		return
	}
	rb.Storage(format, width, height)
}

// GetRenderbufferParameteri returns a property of the bound renderbuffer.
func (c *Context) GetRenderbufferParameteri(target, pname Enum) int {
	if target != RENDERBUFFER {
		c.setError(INVALID_ENUM)
		return 0
	}
	rb, ok := bound[*resource.Renderbuffer](c, c.renderbuffer)
	if !ok {
		return 0
	}
	w, h := rb.Size()
	red, green, blue, alpha, depth, stencil := rb.Bits()
	switch pname {
	case RENDERBUFFER_WIDTH:
		return w
	case RENDERBUFFER_HEIGHT:
		return h
	case RENDERBUFFER_INTERNAL_FORMAT:
		return int(internalFormat(rb.Format()))
	case RENDERBUFFER_RED_SIZE:
		return red
	case RENDERBUFFER_GREEN_SIZE:
		return green
	case RENDERBUFFER_BLUE_SIZE:
		return blue
	case RENDERBUFFER_ALPHA_SIZE:
		return alpha
	case RENDERBUFFER_DEPTH_SIZE:
		return depth
	case RENDERBUFFER_STENCIL_SIZE:
		return stencil
	}
	c.setError(INVALID_ENUM)
	return 0
}

// FramebufferRenderbuffer attaches a renderbuffer to the bound
// framebuffer. Name 0 empties the slot.
func (c *Context) FramebufferRenderbuffer(target, attachment, rbTarget Enum, rb uint32) {
	slot, ok := attachmentSlot(attachment)
	if !ok || rbTarget != RENDERBUFFER {
		c.setError(INVALID_ENUM)
		return
	}
	fb, ok := c.boundFramebuffer(target)
	if !ok {
		return
	}
	if rb == 0 {
		fb.Attach(slot, nil)
		return
	}
	r, ok := bound[*resource.Renderbuffer](c, rb)
	if !ok {
		return
	}
	fb.Attach(slot, r)
}

// FramebufferTexture2D attaches level 0 of a texture as the color
// attachment of the bound framebuffer. Name 0 empties the slot.
func (c *Context) FramebufferTexture2D(target, attachment, texTarget Enum, tex uint32, level int) {
	slot, ok := attachmentSlot(attachment)
	if !ok || texTarget != TEXTURE_2D {
		c.setError(INVALID_ENUM)
		return
	}
	fb, ok := c.boundFramebuffer(target)
	if !ok {
		return
	}
	if tex == 0 {
		fb.Attach(slot, nil)
		return
	}
	if level != 0 {
		c.setError(INVALID_VALUE)
		return
	}
	if slot != resource.SlotColor0 {
		c.setError(INVALID_OPERATION)
		return
	}
	t, ok := bound[*resource.Texture2D](c, tex)
	if !ok {
		return
	}
	fb.Attach(slot, t)
}

// CheckFramebufferStatus reports the completeness of the bound
// framebuffer. The default buffers are always complete.
func (c *Context) CheckFramebufferStatus(target Enum) Enum {
	if target != FRAMEBUFFER {
		c.setError(INVALID_ENUM)
		return NONE
	}
	if c.framebuffer == 0 {
		return FRAMEBUFFER_COMPLETE
	}
	fb, ok := object.Get[*resource.Framebuffer](c.objects, c.framebuffer)
	if !ok {
		return FRAMEBUFFER_COMPLETE
	}
	switch fb.Status(c.objects) {
	case resource.StatusComplete:
		return FRAMEBUFFER_COMPLETE
	case resource.StatusMissingAttachment:
		return FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT
	case resource.StatusIncompleteDimensions:
		return FRAMEBUFFER_INCOMPLETE_DIMENSIONS
	}
	return FRAMEBUFFER_INCOMPLETE_ATTACHMENT
}

// GetFramebufferAttachmentParameteri returns the type, name or level of
// an attachment of the bound framebuffer.
func (c *Context) GetFramebufferAttachmentParameteri(target, attachment, pname Enum) int {
	slot, ok := attachmentSlot(attachment)
	if !ok {
		c.setError(INVALID_ENUM)
		return 0
	}
	fb, ok := c.boundFramebuffer(target)
	if !ok {
		return 0
	}
	kind, id := fb.Query(c.objects, slot)
	switch pname {
	case FRAMEBUFFER_ATTACHMENT_OBJECT_TYPE:
		switch kind {
		case object.KindRenderbuffer:
			return int(RENDERBUFFER)
		case object.KindTexture2D:
			return int(TEXTURE)
		}
		return int(NONE)
	case FRAMEBUFFER_ATTACHMENT_OBJECT_NAME:
		return int(id)
	case FRAMEBUFFER_ATTACHMENT_TEXTURE_LEVEL, FRAMEBUFFER_ATTACHMENT_TEXTURE_CUBE_MAP_FACE:
		if kind == object.KindTexture2D {
			return 0
		}
	}
	c.setError(INVALID_ENUM)
	return 0
}

// ReadPixels copies a window rectangle of the color buffer into dst as
// RGBA/UNSIGNED_BYTE, bottom row first, each row padded to
// PACK_ALIGNMENT. Pixels outside the buffer are left untouched.
func (c *Context) ReadPixels(dst []byte, x, y, width, height int, format, typ Enum) {
	if format != RGBA || typ != UNSIGNED_BYTE {
		if formatComponents(format) == 0 || (typ != UNSIGNED_BYTE && componentSize(typ) == 0) {
			c.setError(INVALID_ENUM)
		} else {
			c.setError(INVALID_OPERATION)
		}
		return
	}
	if width < 0 || height < 0 {
		c.setError(INVALID_VALUE)
		return
	}
	t, ok := c.target()
	if !ok {
		return
	}
	if width == 0 || height == 0 {
		return
	}
	// Sizes are checked against dst by division so huge rectangles
	// cannot overflow.
	if width > len(dst)/4 {
		c.setError(INVALID_OPERATION)
		return
	}
	row := width * 4
	stride := (row + c.packAlignment - 1) / c.packAlignment * c.packAlignment
	if height-1 > (len(dst)-row)/stride {
		c.setError(INVALID_OPERATION)
		return
	}
	for j := range height {
		sy := y + j
		if sy < 0 || sy >= t.Height {
			continue
		}
		for i := range width {
			sx := x + i
			if sx < 0 || sx >= t.Width {
				continue
			}
			src := (sy*t.Width + sx) * 4
			if src+4 > len(t.Color) {
				continue
			}
			copy(dst[j*stride+i*4:j*stride+i*4+4], t.Color[src:src+4])
		}
	}
}
