// Package resource holds the storage-backed GL objects: buffers, 2D
// textures, renderbuffers and framebuffers.
//
// Every type here implements object.Object and is created through an
// object.Table. Storage is plain Go memory; nothing is pooled or reused
// across reallocations.
package resource
