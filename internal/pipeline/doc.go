// Package pipeline applies the per-fragment operations that follow the
// fragment shader: stencil test, depth test, blending, color mask and the
// final writes to a render target. It also implements buffer clears.
//
// Render targets store rows bottom-up, so (x, y) are window coordinates
// with the origin at the lower left.
package pipeline
