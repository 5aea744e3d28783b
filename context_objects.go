package softgl

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/softgl/internal/object"
	"github.com/gogpu/softgl/internal/resource"
	"github.com/gogpu/softgl/internal/shader"
)

// unbind clears every binding that names obj. It runs inside Delete.
func (c *Context) unbind(obj object.Object) {
	id := obj.ID()
	switch obj.Kind() {
	case object.KindBuffer:
		if c.arrayBuffer == id {
			c.arrayBuffer = 0
		}
		if c.elementBuffer == id {
			c.elementBuffer = 0
		}
		for i := range c.attribs {
			if c.attribs[i].buffer.ID() == id {
				c.attribs[i].buffer = object.Ref[*resource.Buffer]{}
			}
		}
	case object.KindTexture2D:
		for i, t := range c.textures {
			if t == id {
				c.textures[i] = 0
			}
		}
		delete(c.texParams, id)
	case object.KindRenderbuffer:
		if c.renderbuffer == id {
			c.renderbuffer = 0
		}
	case object.KindFramebuffer:
		if c.framebuffer == id {
			c.framebuffer = 0
		}
	case object.KindProgram:
		if c.program == id {
			c.program = 0
		}
	}
}

func (c *Context) generate(n int, ctor object.Constructor) []uint32 {
	if n < 0 {
		c.setError(INVALID_VALUE)
		return nil
	}
	return c.objects.Generate(n, ctor)
}

// GenBuffers creates n buffer objects and returns their names.
func (c *Context) GenBuffers(n int) []uint32 {
	return c.generate(n, func(id uint32) object.Object { return resource.NewBuffer(id) })
}

// GenTextures creates n texture objects and returns their names.
func (c *Context) GenTextures(n int) []uint32 {
	return c.generate(n, func(id uint32) object.Object { return resource.NewTexture2D(id) })
}

// GenRenderbuffers creates n renderbuffer objects and returns their names.
func (c *Context) GenRenderbuffers(n int) []uint32 {
	return c.generate(n, func(id uint32) object.Object { return resource.NewRenderbuffer(id) })
}

// GenFramebuffers creates n framebuffer objects and returns their names.
func (c *Context) GenFramebuffers(n int) []uint32 {
	return c.generate(n, func(id uint32) object.Object { return resource.NewFramebuffer(id) })
}

// CreateShader creates a shader of type VERTEX_SHADER or FRAGMENT_SHADER
// and returns its name, or 0.
func (c *Context) CreateShader(typ Enum) uint32 {
	var stage gputypes.ShaderStage
	switch typ {
	case VERTEX_SHADER:
		stage = gputypes.ShaderStageVertex
	case FRAGMENT_SHADER:
		stage = gputypes.ShaderStageFragment
	default:
		c.setError(INVALID_ENUM)
		return 0
	}
	ids := c.objects.Generate(1, func(id uint32) object.Object { return shader.New(id, stage) })
	return ids[0]
}

// CreateProgram creates an empty program and returns its name.
func (c *Context) CreateProgram() uint32 {
	ids := c.objects.Generate(1, func(id uint32) object.Object { return shader.NewProgram(id) })
	return ids[0]
}

// DeleteBuffers deletes buffers. Names that are 0, unknown or not
// buffers are ignored. Bindings to deleted buffers are cleared.
func (c *Context) DeleteBuffers(ids ...uint32) { c.objects.Delete(object.KindBuffer, ids...) }

// DeleteTextures deletes textures and clears their bindings on every unit.
func (c *Context) DeleteTextures(ids ...uint32) { c.objects.Delete(object.KindTexture2D, ids...) }

// DeleteRenderbuffers deletes renderbuffers. Framebuffer slots they
// occupied read as empty afterwards.
func (c *Context) DeleteRenderbuffers(ids ...uint32) {
	c.objects.Delete(object.KindRenderbuffer, ids...)
}

// DeleteFramebuffers deletes framebuffers. Deleting the bound framebuffer
// reverts to the default buffers.
func (c *Context) DeleteFramebuffers(ids ...uint32) {
	c.objects.Delete(object.KindFramebuffer, ids...)
}

// DeleteShader deletes a shader. Programs it was attached to keep their
// last link result.
func (c *Context) DeleteShader(id uint32) { c.objects.Delete(object.KindShader, id) }

// DeleteProgram deletes a program, unbinding it if current.
func (c *Context) DeleteProgram(id uint32) { c.objects.Delete(object.KindProgram, id) }

// IsBuffer reports whether id names a buffer.
func (c *Context) IsBuffer(id uint32) bool { return c.objects.Is(object.KindBuffer, id) }

// IsTexture reports whether id names a texture.
func (c *Context) IsTexture(id uint32) bool { return c.objects.Is(object.KindTexture2D, id) }

// IsRenderbuffer reports whether id names a renderbuffer.
func (c *Context) IsRenderbuffer(id uint32) bool { return c.objects.Is(object.KindRenderbuffer, id) }

// IsFramebuffer reports whether id names a framebuffer.
func (c *Context) IsFramebuffer(id uint32) bool { return c.objects.Is(object.KindFramebuffer, id) }

// IsShader reports whether id names a shader.
func (c *Context) IsShader(id uint32) bool { return c.objects.Is(object.KindShader, id) }

// IsProgram reports whether id names a program.
func (c *Context) IsProgram(id uint32) bool { return c.objects.Is(object.KindProgram, id) }

// bindable reports whether id may be bound as kind. Name 0 always may.
func (c *Context) bindable(kind object.Kind, id uint32) bool {
	return id == 0 || c.objects.Is(kind, id)
}

// BindBuffer binds a buffer to ARRAY_BUFFER or ELEMENT_ARRAY_BUFFER.
// Binding 0 unbinds; names that are not buffers are ignored.
func (c *Context) BindBuffer(target Enum, id uint32) {
	var slot *uint32
	switch target {
	case ARRAY_BUFFER:
		slot = &c.arrayBuffer
	case ELEMENT_ARRAY_BUFFER:
		slot = &c.elementBuffer
	default:
		c.setError(INVALID_ENUM)
		return
	}
	if c.bindable(object.KindBuffer, id) {
		*slot = id
	}
}

// BindTexture binds a texture to TEXTURE_2D of the active unit.
func (c *Context) BindTexture(target Enum, id uint32) {
	if target != TEXTURE_2D {
		c.setError(INVALID_ENUM)
		return
	}
	if c.bindable(object.KindTexture2D, id) {
		c.textures[c.activeTexture] = id
	}
}

// BindRenderbuffer binds the renderbuffer RenderbufferStorage works on.
func (c *Context) BindRenderbuffer(target Enum, id uint32) {
	if target != RENDERBUFFER {
		c.setError(INVALID_ENUM)
		return
	}
	if c.bindable(object.KindRenderbuffer, id) {
		c.renderbuffer = id
	}
}

// BindFramebuffer selects the draw target. 0 selects the default buffers.
func (c *Context) BindFramebuffer(target Enum, id uint32) {
	if target != FRAMEBUFFER {
		c.setError(INVALID_ENUM)
		return
	}
	if c.bindable(object.KindFramebuffer, id) {
		c.framebuffer = id
	}
}

// bound returns the object of type T bound in slot id, recording
// INVALID_OPERATION when nothing is bound.
func bound[T object.Object](c *Context, id uint32) (T, bool) {
	obj, ok := object.Get[T](c.objects, id)
	if !ok {
		c.setError(INVALID_OPERATION)
	}
	return obj, ok
}
