// Package softgl is a software implementation of the OpenGL ES 2.0
// rendering API in pure Go.
//
// # Overview
//
// softgl keeps GPU-style state (buffers, textures, renderbuffers,
// framebuffers, shaders and programs) in a Context and rasterizes
// triangles into CPU memory. Shaders are written in a GLSL ES 1.00 subset
// and run by an in-process interpreter; there is no driver, no cgo and no
// external toolchain.
//
// # Quick Start
//
//	import "github.com/gogpu/softgl"
//
//	surface := softgl.NewSurface(256, 256, true, false)
//	ctx := softgl.New(softgl.WithSurface(surface))
//
//	vs := ctx.CreateShader(softgl.VERTEX_SHADER)
//	ctx.ShaderSource(vs, "attribute vec4 pos; void main() { gl_Position = pos; }")
//	ctx.CompileShader(vs)
//	// ... fragment shader, CreateProgram, AttachShader, LinkProgram ...
//
//	ctx.ClearColor(0, 0, 0, 1)
//	ctx.Clear(softgl.COLOR_BUFFER_BIT | softgl.DEPTH_BUFFER_BIT)
//	ctx.DrawArrays(softgl.TRIANGLES, 0, 3)
//	surface.SavePNG("out.png")
//
// # API Mapping
//
// Entry points are methods of Context named after the C API without the
// gl prefix; enumerants are typed Enum constants without the GL_ prefix.
// Pointer arguments become slices: VertexAttribPointerData and
// DrawElementsData read client memory, VertexAttribPointer and
// DrawElements read buffer objects. Errors are reported through
// GetError; the first error sticks until it is read.
//
// Only TRIANGLES are rasterized. Other primitive modes are accepted and
// draw nothing. Textures are sampled nearest with clamped coordinates.
//
// # Coordinate System
//
// Buffers are stored bottom row first: window coordinate (0, 0) is the
// lower-left pixel, as in OpenGL. Surface.ToImage and the image.Image
// methods of Surface flip rows to the usual top-down order.
//
// # Object Lifetime
//
// Names are never reused. Deleting a bound object clears the binding
// immediately; framebuffer attachments and attribute buffers hold weak
// references that read as empty once their object is gone. Destroy
// requires every object to have been deleted.
package softgl
