package softgl

import "github.com/gogpu/softgl/internal/resource"

func (c *Context) boundBuffer(target Enum) (*resource.Buffer, bool) {
	switch target {
	case ARRAY_BUFFER:
		return bound[*resource.Buffer](c, c.arrayBuffer)
	case ELEMENT_ARRAY_BUFFER:
		return bound[*resource.Buffer](c, c.elementBuffer)
	}
	c.setError(INVALID_ENUM)
	return nil, false
}

func validUsage(usage Enum) bool {
	return usage == STREAM_DRAW || usage == STATIC_DRAW || usage == DYNAMIC_DRAW
}

// BufferData replaces the storage of the buffer bound to target with a
// copy of data.
func (c *Context) BufferData(target Enum, data []byte, usage Enum) {
	c.bufferData(target, len(data), data, usage)
}

// BufferInit sizes the buffer bound to target to size bytes. Bytes that
// existed before keep their value; new bytes are zero.
func (c *Context) BufferInit(target Enum, size int, usage Enum) {
	c.bufferData(target, size, nil, usage)
}

func (c *Context) bufferData(target Enum, size int, data []byte, usage Enum) {
	if !validUsage(usage) {
		c.setError(INVALID_ENUM)
		return
	}
	if size < 0 {
		c.setError(INVALID_VALUE)
		return
	}
	buf, ok := c.boundBuffer(target)
	if !ok {
		return
	}
	buf.SetData(size, data, uint32(usage))
}

// BufferSubData overwrites part of the buffer bound to target starting at
// offset. The range must lie inside the buffer.
func (c *Context) BufferSubData(target Enum, offset int, data []byte) {
	buf, ok := c.boundBuffer(target)
	if !ok {
		return
	}
	if len(data) == 0 && offset >= 0 && offset <= buf.Size() {
		return
	}
	if !buf.SetSubData(offset, data) {
		c.setError(INVALID_VALUE)
	}
}

// GetBufferParameteri returns BUFFER_SIZE or BUFFER_USAGE of the buffer
// bound to target.
func (c *Context) GetBufferParameteri(target, pname Enum) int {
	buf, ok := c.boundBuffer(target)
	if !ok {
		return 0
	}
	switch pname {
	case BUFFER_SIZE:
		return buf.Size()
	case BUFFER_USAGE:
		if buf.Usage() == 0 {
			return int(STATIC_DRAW)
		}
		return int(buf.Usage())
	}
	c.setError(INVALID_ENUM)
	return 0
}
