package softgl

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/softgl/internal/object"
	"github.com/gogpu/softgl/internal/pipeline"
	"github.com/gogpu/softgl/internal/raster"
	"github.com/gogpu/softgl/internal/resource"
	"github.com/gogpu/softgl/internal/shader"
)

// Implementation limits reported through GetInteger.
const (
	MaxTextureSize       = 4096
	MaxRenderbufferSize  = 4096
	MaxVertexAttribs     = shader.MaxVertexAttribs
	MaxVaryingVectors    = shader.MaxVaryingVectors
	MaxUniformVectors    = shader.MaxUniformVectors
	maxViewportDimension = 8192
)

// Context is a software OpenGL ES 2.0 rendering context. Every entry
// point runs to completion on the calling goroutine.
//
// A Context is not safe for concurrent use.
type Context struct {
	log      *slog.Logger
	strict   bool
	compiler shader.Compiler
	objects  *object.Table
	err      Enum

	// Bindings hold object names. Deleting a bound object zeroes them.
	framebuffer   uint32
	renderbuffer  uint32
	arrayBuffer   uint32
	elementBuffer uint32
	program       uint32
	textures      []uint32
	activeTexture int
	texParams     map[uint32]*texParams

	attribs [MaxVertexAttribs]vertexAttrib

	viewport     raster.Viewport
	scissor      raster.Viewport
	scissorTest  bool
	clearColor   gputypes.Color
	clearDepth   float32
	clearStencil int

	cullFace  bool
	cullMode  gputypes.CullMode
	cullBoth  bool
	frontFace gputypes.FrontFace
	flags     map[Enum]bool
	lineWidth float32

	fragment pipeline.State

	unpackAlignment int
	packAlignment   int

	defaults pipeline.Target
	fbTarget pipeline.Target

	raster raster.Rasterizer
	verts  [3]raster.Vertex
}

// New creates a context. Without WithSurface there are no default
// buffers until SetDefaultBuffers or SetSurface is called.
func New(opts ...ContextOption) *Context {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Context{
		log:             o.logger,
		strict:          o.strictTeardown,
		compiler:        o.compiler,
		objects:         object.NewTable(),
		textures:        make([]uint32, o.textureUnits),
		texParams:       make(map[uint32]*texParams),
		clearDepth:      1,
		cullMode:        gputypes.CullModeBack,
		frontFace:       gputypes.FrontFaceCCW,
		flags:           map[Enum]bool{DITHER: true},
		lineWidth:       1,
		fragment:        pipeline.DefaultState(),
		unpackAlignment: 4,
		packAlignment:   4,
	}
	if c.log == nil {
		c.log = Logger()
	}
	if o.shaderCache > 0 {
		c.compiler = shader.NewCachedCompiler(c.compiler, o.shaderCache)
	}
	for i := range c.attribs {
		c.attribs[i] = newVertexAttrib()
	}
	c.objects.OnDelete(c.unbind)
	if o.surface != nil {
		c.SetSurface(o.surface)
	}
	return c
}

// Destroy tears the context down. Every object must have been deleted
// first: a strict context panics otherwise, a lenient one logs a warning
// and drops them. The Context must not be used afterwards.
func (c *Context) Destroy() {
	if n := c.objects.Len(); n > 0 {
		if c.strict {
			panic(fmt.Sprintf("softgl: Destroy with %d live objects", n))
		}
		c.log.Warn("softgl: context destroyed with live objects", "count", n)
	}
	c.objects = nil
	c.defaults = pipeline.Target{}
	c.fbTarget = pipeline.Target{}
}

// SetDefaultBuffers installs the buffers drawn to while framebuffer 0 is
// bound. color holds width*height RGBA8 pixels, depth and stencil one
// value per pixel; depth and stencil may be nil. Rows are stored bottom
// first. The context never allocates or frees these buffers.
//
// The first call also sizes the viewport and scissor box to the buffers.
func (c *Context) SetDefaultBuffers(color []byte, depth []float32, stencil []byte, width, height int) {
	first := c.defaults.Width == 0 && c.defaults.Height == 0
	c.defaults = pipeline.Target{
		Width:   max(width, 0),
		Height:  max(height, 0),
		Color:   color,
		Depth:   depth,
		Stencil: stencil,
	}
	if first {
		c.viewport = raster.Viewport{Width: c.defaults.Width, Height: c.defaults.Height}
		c.scissor = c.viewport
	}
}

// SetSurface installs the buffers of s as the default buffers.
func (c *Context) SetSurface(s *Surface) {
	if s == nil {
		c.SetDefaultBuffers(nil, nil, nil, 0, 0)
		return
	}
	c.SetDefaultBuffers(s.color, s.depth, s.stencil, s.width, s.height)
}

// setError records e unless an earlier error is still pending.
func (c *Context) setError(e Enum) {
	if c.err == NO_ERROR {
		c.err = e
	}
}

// GetError returns and clears the pending error.
func (c *Context) GetError() Enum {
	e := c.err
	c.err = NO_ERROR
	return e
}

// Finish returns immediately: all commands complete synchronously.
func (c *Context) Finish() {}

// Flush returns immediately: all commands complete synchronously.
func (c *Context) Flush() {}

func (c *Context) capability(cap Enum) (*bool, bool) {
	switch cap {
	case DEPTH_TEST:
		return &c.fragment.DepthTest, true
	case STENCIL_TEST:
		return &c.fragment.StencilTest, true
	case BLEND:
		return &c.fragment.Blend, true
	case CULL_FACE:
		return &c.cullFace, true
	case SCISSOR_TEST:
		return &c.scissorTest, true
	case DITHER, POLYGON_OFFSET_FILL, SAMPLE_ALPHA_TO_COVERAGE, SAMPLE_COVERAGE:
		// Accepted and reported, without effect on rendering.
		return nil, true
	}
	return nil, false
}

func (c *Context) setCapability(cap Enum, on bool) {
	p, ok := c.capability(cap)
	switch {
	case !ok:
		c.setError(INVALID_ENUM)
	case p == nil:
		c.flags[cap] = on
	default:
		*p = on
	}
}

// Enable turns a capability on.
func (c *Context) Enable(cap Enum) { c.setCapability(cap, true) }

// Disable turns a capability off.
func (c *Context) Disable(cap Enum) { c.setCapability(cap, false) }

// IsEnabled reports whether a capability is on.
func (c *Context) IsEnabled(cap Enum) bool {
	p, ok := c.capability(cap)
	switch {
	case !ok:
		c.setError(INVALID_ENUM)
		return false
	case p == nil:
		return c.flags[cap]
	}
	return *p
}

// Viewport sets the window rectangle normalized device coordinates map
// to.
func (c *Context) Viewport(x, y, width, height int) {
	if width < 0 || height < 0 {
		c.setError(INVALID_VALUE)
		return
	}
	c.viewport = raster.Viewport{
		X:      x,
		Y:      y,
		Width:  min(width, maxViewportDimension),
		Height: min(height, maxViewportDimension),
	}
}

// Scissor sets the scissor box used while SCISSOR_TEST is enabled.
func (c *Context) Scissor(x, y, width, height int) {
	if width < 0 || height < 0 {
		c.setError(INVALID_VALUE)
		return
	}
	c.scissor = raster.Viewport{X: x, Y: y, Width: width, Height: height}
}

// clipRect is the window region draws and clears may touch.
func (c *Context) clipRect(t *pipeline.Target) image.Rectangle {
	r := c.viewport.Rect().Intersect(t.Bounds())
	if c.scissorTest {
		r = r.Intersect(c.scissor.Rect())
	}
	return r
}

// ClearColor sets the color used by Clear. Components are clamped to
// [0, 1].
func (c *Context) ClearColor(r, g, b, a float32) {
	c.clearColor = gputypes.Color{
		R: float64(clamp01(r)),
		G: float64(clamp01(g)),
		B: float64(clamp01(b)),
		A: float64(clamp01(a)),
	}
}

// ClearDepthf sets the depth used by Clear, clamped to [0, 1].
func (c *Context) ClearDepthf(d float32) { c.clearDepth = clamp01(d) }

// ClearStencil sets the stencil value used by Clear.
func (c *Context) ClearStencil(s int) { c.clearStencil = s }

// DepthFunc sets the depth comparison.
func (c *Context) DepthFunc(fn Enum) {
	f, ok := compareFuncs[fn]
	if !ok {
		c.setError(INVALID_ENUM)
		return
	}
	c.fragment.DepthFunc = f
}

// DepthMask enables or disables depth writes.
func (c *Context) DepthMask(flag bool) { c.fragment.DepthMask = flag }

// DepthRangef sets the window depth range. Both values are clamped to
// [0, 1].
func (c *Context) DepthRangef(near, far float32) {
	c.fragment.DepthNear, c.fragment.DepthFar = clamp01(near), clamp01(far)
}

// CullFace selects which faces are culled while CULL_FACE is enabled.
func (c *Context) CullFace(mode Enum) {
	switch mode {
	case FRONT:
		c.cullMode, c.cullBoth = gputypes.CullModeFront, false
	case BACK:
		c.cullMode, c.cullBoth = gputypes.CullModeBack, false
	case FRONT_AND_BACK:
		c.cullBoth = true
	default:
		c.setError(INVALID_ENUM)
	}
}

func (c *Context) cullFaceMode() Enum {
	switch {
	case c.cullBoth:
		return FRONT_AND_BACK
	case c.cullMode == gputypes.CullModeFront:
		return FRONT
	}
	return BACK
}

// culled reports whether a triangle with the given facing is discarded.
func (c *Context) culled(front bool) bool {
	if !c.cullFace {
		return false
	}
	if c.cullBoth {
		return true
	}
	if front {
		return c.cullMode == gputypes.CullModeFront
	}
	return c.cullMode == gputypes.CullModeBack
}

// FrontFace sets the winding of front-facing triangles.
func (c *Context) FrontFace(mode Enum) {
	switch mode {
	case CCW:
		c.frontFace = gputypes.FrontFaceCCW
	case CW:
		c.frontFace = gputypes.FrontFaceCW
	default:
		c.setError(INVALID_ENUM)
	}
}

// BlendFunc sets the source and destination factors for color and alpha.
func (c *Context) BlendFunc(sfactor, dfactor Enum) {
	c.BlendFuncSeparate(sfactor, dfactor, sfactor, dfactor)
}

// BlendFuncSeparate sets the color and alpha factors independently.
// SRC_ALPHA_SATURATE is only a source factor.
func (c *Context) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha Enum) {
	sr, ok1 := blendFactors[srcRGB]
	dr, ok2 := blendFactors[dstRGB]
	sa, ok3 := blendFactors[srcAlpha]
	da, ok4 := blendFactors[dstAlpha]
	if !ok1 || !ok2 || !ok3 || !ok4 || dstRGB == SRC_ALPHA_SATURATE || dstAlpha == SRC_ALPHA_SATURATE {
		c.setError(INVALID_ENUM)
		return
	}
	b := &c.fragment.BlendFunc
	b.SrcRGB, b.DstRGB, b.SrcAlpha, b.DstAlpha = sr, dr, sa, da
}

// BlendEquation sets the blend equation for color and alpha.
func (c *Context) BlendEquation(mode Enum) { c.BlendEquationSeparate(mode, mode) }

// BlendEquationSeparate sets the color and alpha equations independently.
func (c *Context) BlendEquationSeparate(modeRGB, modeAlpha Enum) {
	rgb, ok1 := blendEquations[modeRGB]
	alpha, ok2 := blendEquations[modeAlpha]
	if !ok1 || !ok2 {
		c.setError(INVALID_ENUM)
		return
	}
	c.fragment.BlendFunc.OpRGB, c.fragment.BlendFunc.OpAlpha = rgb, alpha
}

// BlendColor sets the constant color of the CONSTANT_* factors.
func (c *Context) BlendColor(r, g, b, a float32) {
	c.fragment.BlendFunc.Constant = [4]float32{clamp01(r), clamp01(g), clamp01(b), clamp01(a)}
}

// stencilFaces returns the faces a *Separate call with face applies to.
func (c *Context) stencilFaces(face Enum) []*pipeline.Stencil {
	switch face {
	case FRONT:
		return []*pipeline.Stencil{&c.fragment.Front}
	case BACK:
		return []*pipeline.Stencil{&c.fragment.Back}
	case FRONT_AND_BACK:
		return []*pipeline.Stencil{&c.fragment.Front, &c.fragment.Back}
	}
	c.setError(INVALID_ENUM)
	return nil
}

// StencilFunc sets the stencil test of both faces.
func (c *Context) StencilFunc(fn Enum, ref int, mask uint32) {
	c.StencilFuncSeparate(FRONT_AND_BACK, fn, ref, mask)
}

// StencilFuncSeparate sets the stencil test of the selected faces.
func (c *Context) StencilFuncSeparate(face, fn Enum, ref int, mask uint32) {
	f, ok := compareFuncs[fn]
	if !ok {
		c.setError(INVALID_ENUM)
		return
	}
	for _, s := range c.stencilFaces(face) {
		s.Compare, s.Ref, s.ReadMask = f, ref, uint8(mask)
	}
}

// StencilOp sets the stencil actions of both faces.
func (c *Context) StencilOp(fail, zfail, zpass Enum) {
	c.StencilOpSeparate(FRONT_AND_BACK, fail, zfail, zpass)
}

// StencilOpSeparate sets the stencil actions of the selected faces: on
// stencil failure, on depth failure and on success.
func (c *Context) StencilOpSeparate(face, fail, zfail, zpass Enum) {
	f, ok1 := stencilOps[fail]
	zf, ok2 := stencilOps[zfail]
	zp, ok3 := stencilOps[zpass]
	if !ok1 || !ok2 || !ok3 {
		c.setError(INVALID_ENUM)
		return
	}
	for _, s := range c.stencilFaces(face) {
		s.FailOp, s.DepthFailOp, s.PassOp = f, zf, zp
	}
}

// StencilMask sets the stencil write mask of both faces.
func (c *Context) StencilMask(mask uint32) { c.StencilMaskSeparate(FRONT_AND_BACK, mask) }

// StencilMaskSeparate sets the stencil write mask of the selected faces.
func (c *Context) StencilMaskSeparate(face Enum, mask uint32) {
	for _, s := range c.stencilFaces(face) {
		s.WriteMask = uint8(mask)
	}
}

// ColorMask enables or disables writes of each color channel.
func (c *Context) ColorMask(r, g, b, a bool) {
	c.fragment.ColorMask = [4]bool{r, g, b, a}
}

// LineWidth records the line width. Lines are not rasterized.
func (c *Context) LineWidth(width float32) {
	if !(width > 0) {
		c.setError(INVALID_VALUE)
		return
	}
	c.lineWidth = width
}

// PixelStorei sets the row alignment of TexImage2D sources and
// ReadPixels destinations.
func (c *Context) PixelStorei(pname Enum, param int) {
	if param != 1 && param != 2 && param != 4 && param != 8 {
		c.setError(INVALID_VALUE)
		return
	}
	switch pname {
	case UNPACK_ALIGNMENT:
		c.unpackAlignment = param
	case PACK_ALIGNMENT:
		c.packAlignment = param
	default:
		c.setError(INVALID_ENUM)
	}
}

// GetString returns an implementation string.
func (c *Context) GetString(name Enum) string {
	switch name {
	case VENDOR:
		return "gogpu"
	case RENDERER:
		return "softgl"
	case VERSION:
		return "OpenGL ES 2.0 softgl"
	case SHADING_LANGUAGE_VERSION:
		return "OpenGL ES GLSL ES 1.00"
	case EXTENSIONS:
		return "GL_OES_rgb8_rgba8 GL_OES_depth32 GL_OES_element_index_uint"
	}
	c.setError(INVALID_ENUM)
	return ""
}

// param is the value of a state query, integer or float.
type param struct {
	i []int32
	f []float32
}

func ints(v ...int32) param     { return param{i: v} }
func floats(v ...float32) param { return param{f: v} }

func (c *Context) stencilParam(s *pipeline.Stencil, pname Enum) param {
	switch pname {
	case STENCIL_FUNC, STENCIL_BACK_FUNC:
		return ints(int32(enumOf(compareFuncs, s.Compare)))
	case STENCIL_REF, STENCIL_BACK_REF:
		return ints(int32(s.Ref))
	case STENCIL_VALUE_MASK, STENCIL_BACK_VALUE_MASK:
		return ints(int32(s.ReadMask))
	case STENCIL_WRITEMASK, STENCIL_BACK_WRITEMASK:
		return ints(int32(s.WriteMask))
	case STENCIL_FAIL, STENCIL_BACK_FAIL:
		return ints(int32(enumOf(stencilOps, s.FailOp)))
	case STENCIL_PASS_DEPTH_FAIL, STENCIL_BACK_PASS_DEPTH_FAIL:
		return ints(int32(enumOf(stencilOps, s.DepthFailOp)))
	}
	return ints(int32(enumOf(stencilOps, s.PassOp)))
}

// bits reports the bit depths of the current draw target.
func (c *Context) bits() (color, depth, stencil int32) {
	var t *pipeline.Target
	if c.framebuffer == 0 {
		t = &c.defaults
	} else if fb, ok := object.Get[*resource.Framebuffer](c.objects, c.framebuffer); ok {
		t = &pipeline.Target{
			Color:   fb.ColorBuffer(c.objects),
			Depth:   fb.DepthBuffer(c.objects),
			Stencil: fb.StencilBuffer(c.objects),
		}
	} else {
		return 0, 0, 0
	}
	if t.Color != nil {
		color = 8
	}
	if t.Depth != nil {
		depth = 32
	}
	if t.Stencil != nil {
		stencil = 8
	}
	return color, depth, stencil
}

func (c *Context) query(pname Enum) (param, bool) {
	if p, ok := c.capability(pname); ok {
		if p == nil {
			return ints(boolEnum(c.flags[pname])), true
		}
		return ints(boolEnum(*p)), true
	}
	units := int32(len(c.textures))
	b := &c.fragment.BlendFunc
	switch pname {
	case ACTIVE_TEXTURE:
		return ints(int32(TEXTURE0) + int32(c.activeTexture)), true
	case ARRAY_BUFFER_BINDING:
		return ints(int32(c.arrayBuffer)), true
	case ELEMENT_ARRAY_BUFFER_BINDING:
		return ints(int32(c.elementBuffer)), true
	case FRAMEBUFFER_BINDING:
		return ints(int32(c.framebuffer)), true
	case RENDERBUFFER_BINDING:
		return ints(int32(c.renderbuffer)), true
	case CURRENT_PROGRAM:
		return ints(int32(c.program)), true
	case TEXTURE_BINDING_2D:
		return ints(int32(c.textures[c.activeTexture])), true
	case VIEWPORT:
		v := c.viewport
		return ints(int32(v.X), int32(v.Y), int32(v.Width), int32(v.Height)), true
	case SCISSOR_BOX:
		v := c.scissor
		return ints(int32(v.X), int32(v.Y), int32(v.Width), int32(v.Height)), true
	case COLOR_CLEAR_VALUE:
		cc := c.clearColor
		return floats(float32(cc.R), float32(cc.G), float32(cc.B), float32(cc.A)), true
	case DEPTH_CLEAR_VALUE:
		return floats(c.clearDepth), true
	case STENCIL_CLEAR_VALUE:
		return ints(int32(c.clearStencil)), true
	case DEPTH_FUNC:
		return ints(int32(enumOf(compareFuncs, c.fragment.DepthFunc))), true
	case DEPTH_WRITEMASK:
		return ints(boolEnum(c.fragment.DepthMask)), true
	case DEPTH_RANGE:
		return floats(c.fragment.DepthNear, c.fragment.DepthFar), true
	case CULL_FACE_MODE:
		return ints(int32(c.cullFaceMode())), true
	case FRONT_FACE:
		if c.frontFace == gputypes.FrontFaceCW {
			return ints(int32(CW)), true
		}
		return ints(int32(CCW)), true
	case BLEND_SRC_RGB:
		return ints(int32(enumOf(blendFactors, b.SrcRGB))), true
	case BLEND_DST_RGB:
		return ints(int32(enumOf(blendFactors, b.DstRGB))), true
	case BLEND_SRC_ALPHA:
		return ints(int32(enumOf(blendFactors, b.SrcAlpha))), true
	case BLEND_DST_ALPHA:
		return ints(int32(enumOf(blendFactors, b.DstAlpha))), true
	case BLEND_EQUATION_RGB:
		return ints(int32(enumOf(blendEquations, b.OpRGB))), true
	case BLEND_EQUATION_ALPHA:
		return ints(int32(enumOf(blendEquations, b.OpAlpha))), true
	case BLEND_COLOR:
		return floats(b.Constant[:]...), true
	case STENCIL_FUNC, STENCIL_REF, STENCIL_VALUE_MASK, STENCIL_WRITEMASK,
		STENCIL_FAIL, STENCIL_PASS_DEPTH_FAIL, STENCIL_PASS_DEPTH_PASS:
		return c.stencilParam(&c.fragment.Front, pname), true
	case STENCIL_BACK_FUNC, STENCIL_BACK_REF, STENCIL_BACK_VALUE_MASK, STENCIL_BACK_WRITEMASK,
		STENCIL_BACK_FAIL, STENCIL_BACK_PASS_DEPTH_FAIL, STENCIL_BACK_PASS_DEPTH_PASS:
		return c.stencilParam(&c.fragment.Back, pname), true
	case COLOR_WRITEMASK:
		m := c.fragment.ColorMask
		return ints(boolEnum(m[0]), boolEnum(m[1]), boolEnum(m[2]), boolEnum(m[3])), true
	case UNPACK_ALIGNMENT:
		return ints(int32(c.unpackAlignment)), true
	case PACK_ALIGNMENT:
		return ints(int32(c.packAlignment)), true
	case LINE_WIDTH:
		return floats(c.lineWidth), true
	case MAX_TEXTURE_SIZE:
		return ints(MaxTextureSize), true
	case MAX_RENDERBUFFER_SIZE:
		return ints(MaxRenderbufferSize), true
	case MAX_VIEWPORT_DIMS:
		return ints(maxViewportDimension, maxViewportDimension), true
	case MAX_VERTEX_ATTRIBS:
		return ints(MaxVertexAttribs), true
	case MAX_TEXTURE_IMAGE_UNITS, MAX_VERTEX_TEXTURE_IMAGE_UNITS, MAX_COMBINED_TEXTURE_IMAGE_UNITS:
		return ints(units), true
	case MAX_VARYING_VECTORS:
		return ints(MaxVaryingVectors), true
	case MAX_VERTEX_UNIFORM_VECTORS, MAX_FRAGMENT_UNIFORM_VECTORS:
		return ints(MaxUniformVectors), true
	case SUBPIXEL_BITS:
		return ints(8), true
	case RED_BITS, GREEN_BITS, BLUE_BITS, ALPHA_BITS:
		color, _, _ := c.bits()
		return ints(color), true
	case DEPTH_BITS:
		_, depth, _ := c.bits()
		return ints(depth), true
	case STENCIL_BITS:
		_, _, stencil := c.bits()
		return ints(stencil), true
	case IMPLEMENTATION_COLOR_READ_FORMAT:
		return ints(int32(RGBA)), true
	case IMPLEMENTATION_COLOR_READ_TYPE:
		return ints(int32(UNSIGNED_BYTE)), true
	}
	return param{}, false
}

// GetIntegerv writes the value of pname into dst. Float state is rounded.
func (c *Context) GetIntegerv(dst []int32, pname Enum) {
	p, ok := c.query(pname)
	if !ok {
		c.setError(INVALID_ENUM)
		return
	}
	if p.i != nil {
		copy(dst, p.i)
		return
	}
	for k := range min(len(dst), len(p.f)) {
		dst[k] = int32(roundHalfUp(p.f[k]))
	}
}

// GetInteger returns the first value of pname.
func (c *Context) GetInteger(pname Enum) int {
	var v [4]int32
	c.GetIntegerv(v[:], pname)
	return int(v[0])
}

// GetFloatv writes the value of pname into dst.
func (c *Context) GetFloatv(dst []float32, pname Enum) {
	p, ok := c.query(pname)
	if !ok {
		c.setError(INVALID_ENUM)
		return
	}
	if p.f != nil {
		copy(dst, p.f)
		return
	}
	for k := range min(len(dst), len(p.i)) {
		dst[k] = float32(p.i[k])
	}
}

// GetFloat returns the first value of pname.
func (c *Context) GetFloat(pname Enum) float32 {
	var v [4]float32
	c.GetFloatv(v[:], pname)
	return v[0]
}

// GetBooleanv writes the value of pname into dst; non-zero is true.
func (c *Context) GetBooleanv(dst []bool, pname Enum) {
	var v [4]float32
	c.GetFloatv(v[:], pname)
	for k := range min(len(dst), len(v)) {
		dst[k] = v[k] != 0
	}
}

// GetBoolean returns the first value of pname as a bool.
func (c *Context) GetBoolean(pname Enum) bool {
	return c.GetFloat(pname) != 0
}
