package softgl

import (
	"encoding/binary"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/softgl/internal/pipeline"
	"github.com/gogpu/softgl/internal/raster"
	"github.com/gogpu/softgl/internal/resource"
	"github.com/gogpu/softgl/internal/shader"
)

// Clear fills the selected buffers of the draw target with the clear
// values. The filled region is the viewport, intersected with the scissor
// box when SCISSOR_TEST is enabled. The depth mask, color mask and
// stencil write mask apply.
func (c *Context) Clear(mask Enum) {
	if mask&^(COLOR_BUFFER_BIT|DEPTH_BUFFER_BIT|STENCIL_BUFFER_BIT) != 0 {
		c.setError(INVALID_VALUE)
		return
	}
	t, ok := c.target()
	if !ok {
		return
	}
	r := c.clipRect(t)
	if mask&COLOR_BUFFER_BIT != 0 {
		cc := c.clearColor
		color := [4]float32{float32(cc.R), float32(cc.G), float32(cc.B), float32(cc.A)}
		pipeline.ClearColor(t, r, color, c.fragment.ColorMask)
	}
	if mask&DEPTH_BUFFER_BIT != 0 && c.fragment.DepthMask {
		pipeline.ClearDepth(t, r, c.clearDepth)
	}
	if mask&STENCIL_BUFFER_BIT != 0 {
		pipeline.ClearStencil(t, r, uint8(c.clearStencil), c.fragment.Front.WriteMask)
	}
}

// checkMode validates a primitive mode and reports whether it is drawn.
func (c *Context) checkMode(mode Enum) bool {
	switch mode {
	case TRIANGLES:
		return true
	case POINTS, LINES, LINE_LOOP, LINE_STRIP, TRIANGLE_STRIP, TRIANGLE_FAN:
		c.log.Debug("softgl: primitive mode not rasterized", "mode", mode)
		return false
	}
	c.setError(INVALID_ENUM)
	return false
}

// DrawArrays draws count vertices starting at first. Only TRIANGLES
// produce fragments.
func (c *Context) DrawArrays(mode Enum, first, count int) {
	if first < 0 || count < 0 {
		c.setError(INVALID_VALUE)
		return
	}
	if !c.checkMode(mode) {
		return
	}
	c.drawTriangles(count, func(i int) int { return first + i })
}

// DrawElements draws count vertices whose indices are read from the
// buffer bound to ELEMENT_ARRAY_BUFFER, starting offset bytes in. typ is
// UNSIGNED_BYTE, UNSIGNED_SHORT or UNSIGNED_INT.
func (c *Context) DrawElements(mode Enum, count int, typ Enum, offset int) {
	buf, ok := bound[*resource.Buffer](c, c.elementBuffer)
	if !ok {
		return
	}
	c.drawElements(mode, count, typ, buf.Bytes(), offset)
}

// DrawElementsData draws count vertices whose indices are read from
// client memory.
func (c *Context) DrawElementsData(mode Enum, count int, typ Enum, indices []byte) {
	c.drawElements(mode, count, typ, indices, 0)
}

func (c *Context) drawElements(mode Enum, count int, typ Enum, data []byte, offset int) {
	size := indexSize(typ)
	if size == 0 {
		c.setError(INVALID_ENUM)
		return
	}
	if count < 0 || offset < 0 {
		c.setError(INVALID_VALUE)
		return
	}
	if !c.checkMode(mode) {
		return
	}
	if offset > len(data) || count > (len(data)-offset)/size {
		c.setError(INVALID_OPERATION)
		return
	}
	data = data[offset:]
	c.drawTriangles(count, func(i int) int { return readIndex(data[i*size:], size) })
}

func readIndex(b []byte, size int) int {
	switch size {
	case 1:
		return int(b[0])
	case 2:
		return int(binary.LittleEndian.Uint16(b))
	}
	return int(binary.LittleEndian.Uint32(b))
}

// drawTriangles runs the vertex stage for groups of three vertices and
// rasterizes each triangle. Draws without a usable program do nothing;
// targets without a color buffer still receive depth and stencil writes.
func (c *Context) drawTriangles(count int, index func(i int) int) {
	p, ok := c.currentProgram()
	if !ok || !p.Use() {
		c.log.Debug("softgl: draw skipped, no usable program", "program", c.program)
		return
	}
	t, ok := c.target()
	if !ok {
		return
	}
	clip := c.clipRect(t)
	if clip.Empty() {
		return
	}
	p.BindSamplers(c.sampler)
	attribs := p.ActiveAttribs()

	var front bool
	shade := func(f *raster.Fragment) {
		z := c.fragment.WindowDepth(f.Z)
		if c.fragment.Occluded(t, f.X, f.Y, z) {
			return
		}
		p.SetFragmentVaryings(f.Varyings)
		coord := [4]float32{float32(f.X) + 0.5, float32(f.Y) + 0.5, z, f.InvW}
		color, ok := p.RunFragment(coord, front)
		if !ok {
			return
		}
		c.fragment.Fragment(t, f.X, f.Y, z, front, color)
	}

	for i := 0; i+3 <= count; i += 3 {
		for k := range c.verts {
			c.runVertex(p, attribs, index(i+k), &c.verts[k])
		}
		area := raster.Winding(&c.verts, c.viewport)
		front = (area > 0) == (c.frontFace == gputypes.FrontFaceCCW)
		if c.culled(front) {
			continue
		}
		c.raster.Triangle(&c.verts, c.viewport, clip, shade)
	}
}

// runVertex feeds the attributes of vertex to p and runs the vertex stage.
func (c *Context) runVertex(p *shader.Program, attribs []shader.Attrib, vertex int, out *raster.Vertex) {
	var v [4]float32
	for _, a := range attribs {
		for loc := a.Location; loc < a.Location+a.Slots() && loc < MaxVertexAttribs; loc++ {
			va := &c.attribs[loc]
			if !va.enabled || !va.fetch(c.objects, vertex, &v) {
				v = va.current
			}
			p.SetAttrib(loc, v[:])
		}
	}
	out.Pos, _ = p.RunVertex()
	out.Varyings = p.CollectVaryings(out.Varyings[:0])
}
