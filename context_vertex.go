package softgl

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/softgl/internal/object"
	"github.com/gogpu/softgl/internal/resource"
)

// vertexAttrib is the state of one generic vertex attribute: an optional
// array in a buffer or client memory, and the current value used when the
// array is disabled.
type vertexAttrib struct {
	enabled    bool
	size       int
	typ        Enum
	normalized bool
	stride     int
	offset     int
	buffer     object.Ref[*resource.Buffer]
	client     []byte
	current    [4]float32
}

func newVertexAttrib() vertexAttrib {
	return vertexAttrib{size: 4, typ: FLOAT, current: [4]float32{0, 0, 0, 1}}
}

// data returns the bytes the array reads from.
func (a *vertexAttrib) data(tbl *object.Table) []byte {
	if buf, ok := a.buffer.Resolve(tbl); ok {
		return buf.Bytes()
	}
	return a.client
}

// fetch reads the attribute of vertex into dst. Missing components default
// to (0, 0, 0, 1). It reports false when the vertex lies outside the data.
func (a *vertexAttrib) fetch(tbl *object.Table, vertex int, dst *[4]float32) bool {
	data := a.data(tbl)
	comp := componentSize(a.typ)
	stride := a.stride
	if stride == 0 {
		stride = comp * a.size
	}
	if vertex < 0 || a.offset > len(data) || vertex > (len(data)-a.offset)/stride {
		return false
	}
	off := a.offset + vertex*stride
	if off+comp*a.size > len(data) {
		return false
	}
	*dst = [4]float32{0, 0, 0, 1}
	for k := range a.size {
		dst[k] = convertComponent(data[off+k*comp:], a.typ, a.normalized)
	}
	return true
}

// convertComponent decodes one little-endian component. Normalized signed
// values use (2c+1)/(2^b-1).
func convertComponent(b []byte, typ Enum, normalized bool) float32 {
	le := binary.LittleEndian
	switch typ {
	case BYTE:
		v := float32(int8(b[0]))
		if normalized {
			return (2*v + 1) / math.MaxUint8
		}
		return v
	case UNSIGNED_BYTE:
		v := float32(b[0])
		if normalized {
			return v / math.MaxUint8
		}
		return v
	case SHORT:
		v := float32(int16(le.Uint16(b)))
		if normalized {
			return (2*v + 1) / math.MaxUint16
		}
		return v
	case UNSIGNED_SHORT:
		v := float32(le.Uint16(b))
		if normalized {
			return v / math.MaxUint16
		}
		return v
	case FIXED:
		return float32(int32(le.Uint32(b))) / 65536
	case FLOAT:
		return math.Float32frombits(le.Uint32(b))
	}
	return 0
}

func (c *Context) attrib(index int) (*vertexAttrib, bool) {
	if index < 0 || index >= MaxVertexAttribs {
		c.setError(INVALID_VALUE)
		return nil, false
	}
	return &c.attribs[index], true
}

func (c *Context) checkPointer(size int, typ Enum, stride int) bool {
	if componentSize(typ) == 0 {
		c.setError(INVALID_ENUM)
		return false
	}
	if size < 1 || size > 4 || stride < 0 {
		c.setError(INVALID_VALUE)
		return false
	}
	return true
}

// VertexAttribPointer sources attribute index from the buffer bound to
// ARRAY_BUFFER, starting offset bytes in. A stride of 0 means tightly
// packed. The enabled flag is kept.
func (c *Context) VertexAttribPointer(index, size int, typ Enum, normalized bool, stride, offset int) {
	a, ok := c.attrib(index)
	if !ok || !c.checkPointer(size, typ, stride) {
		return
	}
	if offset < 0 {
		c.setError(INVALID_VALUE)
		return
	}
	a.size, a.typ, a.normalized, a.stride, a.offset = size, typ, normalized, stride, offset
	a.client = nil
	a.buffer = object.Ref[*resource.Buffer]{}
	if buf, ok := object.Get[*resource.Buffer](c.objects, c.arrayBuffer); ok {
		a.buffer = object.RefTo(buf)
	}
}

// VertexAttribPointerData sources attribute index from client memory.
// data is read at draw time, not copied.
func (c *Context) VertexAttribPointerData(index, size int, typ Enum, normalized bool, stride int, data []byte) {
	a, ok := c.attrib(index)
	if !ok || !c.checkPointer(size, typ, stride) {
		return
	}
	a.size, a.typ, a.normalized, a.stride, a.offset = size, typ, normalized, stride, 0
	a.buffer = object.Ref[*resource.Buffer]{}
	a.client = data
}

// EnableVertexAttribArray makes draws read attribute index from its array.
func (c *Context) EnableVertexAttribArray(index int) {
	if a, ok := c.attrib(index); ok {
		a.enabled = true
	}
}

// DisableVertexAttribArray makes draws use the current value of attribute
// index. The array source is released; set the pointer again before
// re-enabling.
func (c *Context) DisableVertexAttribArray(index int) {
	if a, ok := c.attrib(index); ok {
		a.enabled = false
		a.buffer = object.Ref[*resource.Buffer]{}
		a.client = nil
	}
}

// VertexAttrib4fv sets the current value of attribute index. Missing
// components default to (0, 0, 0, 1).
func (c *Context) VertexAttrib4fv(index int, v []float32) {
	a, ok := c.attrib(index)
	if !ok {
		return
	}
	a.current = [4]float32{0, 0, 0, 1}
	copy(a.current[:], v[:min(len(v), 4)])
}

// VertexAttrib1f sets the current value of attribute index to (x, 0, 0, 1).
func (c *Context) VertexAttrib1f(index int, x float32) { c.VertexAttrib4fv(index, []float32{x}) }

// VertexAttrib2f sets the current value of attribute index to (x, y, 0, 1).
func (c *Context) VertexAttrib2f(index int, x, y float32) {
	c.VertexAttrib4fv(index, []float32{x, y})
}

// VertexAttrib3f sets the current value of attribute index to (x, y, z, 1).
func (c *Context) VertexAttrib3f(index int, x, y, z float32) {
	c.VertexAttrib4fv(index, []float32{x, y, z})
}

// VertexAttrib4f sets the current value of attribute index.
func (c *Context) VertexAttrib4f(index int, x, y, z, w float32) {
	c.VertexAttrib4fv(index, []float32{x, y, z, w})
}

// VertexAttrib1fv is VertexAttrib1f with the value in v[0].
func (c *Context) VertexAttrib1fv(index int, v []float32) { c.VertexAttrib4fv(index, v[:min(len(v), 1)]) }

// VertexAttrib2fv is VertexAttrib2f with the value in v[:2].
func (c *Context) VertexAttrib2fv(index int, v []float32) { c.VertexAttrib4fv(index, v[:min(len(v), 2)]) }

// VertexAttrib3fv is VertexAttrib3f with the value in v[:3].
func (c *Context) VertexAttrib3fv(index int, v []float32) { c.VertexAttrib4fv(index, v[:min(len(v), 3)]) }

// GetVertexAttribi returns an integer property of attribute index.
func (c *Context) GetVertexAttribi(index int, pname Enum) int {
	a, ok := c.attrib(index)
	if !ok {
		return 0
	}
	switch pname {
	case VERTEX_ATTRIB_ARRAY_ENABLED:
		return int(boolEnum(a.enabled))
	case VERTEX_ATTRIB_ARRAY_SIZE:
		return a.size
	case VERTEX_ATTRIB_ARRAY_STRIDE:
		return a.stride
	case VERTEX_ATTRIB_ARRAY_TYPE:
		return int(a.typ)
	case VERTEX_ATTRIB_ARRAY_NORMALIZED:
		return int(boolEnum(a.normalized))
	case VERTEX_ATTRIB_ARRAY_BUFFER_BINDING:
		if _, ok := a.buffer.Resolve(c.objects); ok {
			return int(a.buffer.ID())
		}
		return 0
	case VERTEX_ATTRIB_ARRAY_POINTER:
		return a.offset
	}
	c.setError(INVALID_ENUM)
	return 0
}

// GetVertexAttribfv returns the current value of attribute index.
func (c *Context) GetVertexAttribfv(index int, pname Enum) [4]float32 {
	a, ok := c.attrib(index)
	if !ok {
		return [4]float32{}
	}
	if pname != CURRENT_VERTEX_ATTRIB {
		c.setError(INVALID_ENUM)
		return [4]float32{}
	}
	return a.current
}
