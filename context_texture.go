package softgl

import (
	"github.com/gogpu/softgl/internal/glsl"
	"github.com/gogpu/softgl/internal/object"
	"github.com/gogpu/softgl/internal/resource"
)

// texParams are the sampler parameters of one texture. They are stored and
// reported; sampling is always nearest with clamped coordinates.
type texParams struct {
	minFilter, magFilter Enum
	wrapS, wrapT         Enum
}

func defaultTexParams() *texParams {
	return &texParams{
		minFilter: NEAREST_MIPMAP_LINEAR,
		magFilter: LINEAR,
		wrapS:     REPEAT,
		wrapT:     REPEAT,
	}
}

// ActiveTexture selects the unit BindTexture and TEXTURE_BINDING_2D refer
// to. unit is TEXTURE0 + i.
func (c *Context) ActiveTexture(unit Enum) {
	i := int(unit) - int(TEXTURE0)
	if i < 0 || i >= len(c.textures) {
		c.setError(INVALID_ENUM)
		return
	}
	c.activeTexture = i
}

func (c *Context) boundTexture(target Enum) (*resource.Texture2D, bool) {
	if target != TEXTURE_2D {
		c.setError(INVALID_ENUM)
		return nil, false
	}
	return bound[*resource.Texture2D](c, c.textures[c.activeTexture])
}

// sampler returns the texture bound to unit, or nil.
func (c *Context) sampler(unit int) glsl.Sampler {
	if unit < 0 || unit >= len(c.textures) {
		return nil
	}
	if t, ok := object.Get[*resource.Texture2D](c.objects, c.textures[unit]); ok {
		return t
	}
	return nil
}

func formatComponents(format Enum) int {
	switch format {
	case ALPHA, LUMINANCE:
		return 1
	case LUMINANCE_ALPHA:
		return 2
	case RGB:
		return 3
	case RGBA:
		return 4
	}
	return 0
}

// unpack converts width x height pixels of format, with rows padded to
// align bytes, to RGBA8. It reports false when src is too short.
func unpack(format Enum, width, height, align int, src []byte) ([]byte, bool) {
	n := formatComponents(format)
	row := width * n
	stride := (row + align - 1) / align * align
	if height > 0 && len(src) < stride*(height-1)+row {
		return nil, false
	}
	out := make([]byte, width*height*4)
	for y := range height {
		s := src[y*stride:]
		d := out[y*width*4:]
		for x := range width {
			p := s[x*n : x*n+n]
			q := d[x*4 : x*4+4]
			switch format {
			case ALPHA:
				q[3] = p[0]
			case LUMINANCE:
				q[0], q[1], q[2], q[3] = p[0], p[0], p[0], 0xff
			case LUMINANCE_ALPHA:
				q[0], q[1], q[2], q[3] = p[0], p[0], p[0], p[1]
			case RGB:
				q[0], q[1], q[2], q[3] = p[0], p[1], p[2], 0xff
			default:
				copy(q, p)
			}
		}
	}
	return out, true
}

// checkPixelFormat validates a client pixel format and type.
func (c *Context) checkPixelFormat(format, typ Enum) bool {
	if formatComponents(format) == 0 || typ != UNSIGNED_BYTE {
		c.setError(INVALID_ENUM)
		return false
	}
	return true
}

// TexImage2D specifies the image of the texture bound to TEXTURE_2D on the
// active unit. pixels hold rows bottom first, each row padded to
// UNPACK_ALIGNMENT; nil allocates a zeroed image. Storage is always RGBA8.
// Only level 0 is stored.
func (c *Context) TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, typ Enum, pixels []byte) {
	tex, ok := c.boundTexture(target)
	if !ok || !c.checkPixelFormat(format, typ) {
		return
	}
	if internalFormat != format {
		c.setError(INVALID_OPERATION)
		return
	}
	if level < 0 || width < 0 || height < 0 || width > MaxTextureSize || height > MaxTextureSize {
		c.setError(INVALID_VALUE)
		return
	}
	if level > 0 {
		c.log.Debug("softgl: mipmap level ignored", "texture", tex.ID(), "level", level)
		return
	}
	if pixels == nil {
		tex.Upload(width, height, nil)
		return
	}
	rgba, ok := unpack(format, width, height, c.unpackAlignment, pixels)
	if !ok {
		c.setError(INVALID_OPERATION)
		return
	}
	tex.Upload(width, height, rgba)
}

// TexSubImage2D replaces a region of level 0 of the bound texture.
func (c *Context) TexSubImage2D(target Enum, level, x, y, width, height int, format, typ Enum, pixels []byte) {
	tex, ok := c.boundTexture(target)
	if !ok || !c.checkPixelFormat(format, typ) {
		return
	}
	if level != 0 || width < 0 || height < 0 {
		c.setError(INVALID_VALUE)
		return
	}
	rgba, ok := unpack(format, width, height, c.unpackAlignment, pixels)
	if !ok {
		c.setError(INVALID_OPERATION)
		return
	}
	if !tex.SubUpload(x, y, width, height, rgba) {
		c.setError(INVALID_VALUE)
	}
}

func (c *Context) params(tex *resource.Texture2D) *texParams {
	p, ok := c.texParams[tex.ID()]
	if !ok {
		p = defaultTexParams()
		c.texParams[tex.ID()] = p
	}
	return p
}

// TexParameteri sets a filter or wrap parameter of the bound texture.
func (c *Context) TexParameteri(target, pname Enum, param int) {
	tex, ok := c.boundTexture(target)
	if !ok {
		return
	}
	v := Enum(param)
	p := c.params(tex)
	switch pname {
	case TEXTURE_MIN_FILTER:
		switch v {
		case NEAREST, LINEAR, NEAREST_MIPMAP_NEAREST, LINEAR_MIPMAP_NEAREST,
			NEAREST_MIPMAP_LINEAR, LINEAR_MIPMAP_LINEAR:
			p.minFilter = v
			return
		}
	case TEXTURE_MAG_FILTER:
		if v == NEAREST || v == LINEAR {
			p.magFilter = v
			return
		}
	case TEXTURE_WRAP_S, TEXTURE_WRAP_T:
		if v == REPEAT || v == CLAMP_TO_EDGE || v == MIRRORED_REPEAT {
			if pname == TEXTURE_WRAP_S {
				p.wrapS = v
			} else {
				p.wrapT = v
			}
			return
		}
	}
	c.setError(INVALID_ENUM)
}

// GetTexParameteri returns a parameter of the bound texture.
func (c *Context) GetTexParameteri(target, pname Enum) int {
	tex, ok := c.boundTexture(target)
	if !ok {
		return 0
	}
	p := c.params(tex)
	switch pname {
	case TEXTURE_MIN_FILTER:
		return int(p.minFilter)
	case TEXTURE_MAG_FILTER:
		return int(p.magFilter)
	case TEXTURE_WRAP_S:
		return int(p.wrapS)
	case TEXTURE_WRAP_T:
		return int(p.wrapT)
	}
	c.setError(INVALID_ENUM)
	return 0
}
