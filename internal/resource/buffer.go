package resource

import "github.com/gogpu/softgl/internal/object"

// Buffer is raw byte storage for vertex attributes or indices.
type Buffer struct {
	id    uint32
	data  []byte
	usage uint32
}

// NewBuffer returns an empty buffer named id.
func NewBuffer(id uint32) *Buffer { return &Buffer{id: id} }

// ID implements object.Object.
func (b *Buffer) ID() uint32 { return b.id }

// Kind implements object.Object.
func (b *Buffer) Kind() object.Kind { return object.KindBuffer }

// Size returns the logical size in bytes.
func (b *Buffer) Size() int { return len(b.data) }

// Bytes returns the backing storage. The slice is invalidated by SetData.
func (b *Buffer) Bytes() []byte { return b.data }

// Usage returns the usage hint recorded by the last SetData.
func (b *Buffer) Usage() uint32 { return b.usage }

// SetData resizes the buffer to size bytes and, if data is non-nil, copies
// up to size bytes from it. Storage is reallocated only when size changes;
// the common prefix survives a reallocation and grown bytes read as zero.
// A size of zero frees the storage. A negative size is ignored.
func (b *Buffer) SetData(size int, data []byte, usage uint32) {
	if size < 0 {
		return
	}
	b.usage = usage
	switch {
	case size == 0:
		b.data = nil
	case size != len(b.data):
		grown := make([]byte, size)
		copy(grown, b.data)
		b.data = grown
	}
	if data != nil && size > 0 {
		copy(b.data, data[:min(len(data), size)])
	}
}

// SetSubData overwrites len(data) bytes starting at offset. It reports
// false and leaves the buffer untouched when offset is negative, data is
// empty, the buffer has no storage, or the range ends past Size.
func (b *Buffer) SetSubData(offset int, data []byte) bool {
	if offset < 0 || len(data) == 0 || b.data == nil {
		return false
	}
	if offset+len(data) > len(b.data) {
		return false
	}
	copy(b.data[offset:], data)
	return true
}
