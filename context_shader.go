package softgl

import (
	"strings"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/softgl/internal/glsl"
	"github.com/gogpu/softgl/internal/object"
	"github.com/gogpu/softgl/internal/shader"
)

// lookupShader resolves a shader name. Unknown names record
// INVALID_VALUE, program names INVALID_OPERATION.
func (c *Context) lookupShader(id uint32) (*shader.Shader, bool) {
	if s, ok := object.Get[*shader.Shader](c.objects, id); ok {
		return s, true
	}
	if c.objects.Is(object.KindProgram, id) {
		c.setError(INVALID_OPERATION)
	} else {
		c.setError(INVALID_VALUE)
	}
	return nil, false
}

// lookupProgram resolves a program name. Unknown names record
// INVALID_VALUE, shader names INVALID_OPERATION.
func (c *Context) lookupProgram(id uint32) (*shader.Program, bool) {
	if p, ok := object.Get[*shader.Program](c.objects, id); ok {
		return p, true
	}
	if c.objects.Is(object.KindShader, id) {
		c.setError(INVALID_OPERATION)
	} else {
		c.setError(INVALID_VALUE)
	}
	return nil, false
}

// ShaderSource replaces the source of a shader with the concatenation of
// src.
func (c *Context) ShaderSource(id uint32, src ...string) {
	if s, ok := c.lookupShader(id); ok {
		s.SetSource(src...)
	}
}

// CompileShader compiles the current source. The outcome is reported by
// COMPILE_STATUS and the info log.
func (c *Context) CompileShader(id uint32) {
	s, ok := c.lookupShader(id)
	if !ok {
		return
	}
	if err := s.Compile(c.compiler); err != nil {
		c.log.Debug("softgl: shader compile failed", "shader", s.String(), "err", err)
		return
	}
	c.log.Debug("softgl: shader compiled", "shader", s.String(),
		"uniforms", len(s.Uniforms()), "attributes", len(s.Attributes()), "varyings", len(s.Varyings()))
}

func logLength(log string) int {
	if log == "" {
		return 0
	}
	return len(log) + 1
}

// GetShaderi returns a shader parameter.
func (c *Context) GetShaderi(id uint32, pname Enum) int {
	s, ok := c.lookupShader(id)
	if !ok {
		return 0
	}
	switch pname {
	case SHADER_TYPE:
		if s.Stage() == gputypes.ShaderStageVertex {
			return int(VERTEX_SHADER)
		}
		return int(FRAGMENT_SHADER)
	case DELETE_STATUS:
		return int(FALSE)
	case COMPILE_STATUS:
		return int(boolEnum(s.Compiled()))
	case INFO_LOG_LENGTH:
		return logLength(s.InfoLog())
	case SHADER_SOURCE_LENGTH:
		return logLength(s.Source())
	}
	c.setError(INVALID_ENUM)
	return 0
}

// GetShaderInfoLog returns the diagnostics of the last compile.
func (c *Context) GetShaderInfoLog(id uint32) string {
	if s, ok := c.lookupShader(id); ok {
		return s.InfoLog()
	}
	return ""
}

// GetShaderSource returns the current source of a shader.
func (c *Context) GetShaderSource(id uint32) string {
	if s, ok := c.lookupShader(id); ok {
		return s.Source()
	}
	return ""
}

// AttachShader attaches a shader to a program. A program holds one shader
// per stage.
func (c *Context) AttachShader(program, id uint32) {
	p, ok := c.lookupProgram(program)
	if !ok {
		return
	}
	s, ok := c.lookupShader(id)
	if !ok {
		return
	}
	if !p.Attach(c.objects, s) {
		c.setError(INVALID_OPERATION)
	}
}

// DetachShader detaches a shader from a program.
func (c *Context) DetachShader(program, id uint32) {
	p, ok := c.lookupProgram(program)
	if !ok {
		return
	}
	if _, ok := c.lookupShader(id); !ok {
		return
	}
	if !p.Detach(c.objects, id) {
		c.setError(INVALID_OPERATION)
	}
}

// GetAttachedShaders returns the names of the shaders attached to a
// program.
func (c *Context) GetAttachedShaders(program uint32) []uint32 {
	if p, ok := c.lookupProgram(program); ok {
		return p.AttachedShaders(c.objects)
	}
	return nil
}

// BindAttribLocation requests a location for an attribute. It takes
// effect at the next link.
func (c *Context) BindAttribLocation(program uint32, index int, name string) {
	if index < 0 || index >= MaxVertexAttribs {
		c.setError(INVALID_VALUE)
		return
	}
	if strings.HasPrefix(name, "gl_") {
		c.setError(INVALID_OPERATION)
		return
	}
	if p, ok := c.lookupProgram(program); ok {
		p.BindAttribLocation(index, name)
	}
}

// LinkProgram links the attached shaders. The outcome is reported by
// LINK_STATUS and the info log.
func (c *Context) LinkProgram(program uint32) {
	p, ok := c.lookupProgram(program)
	if !ok {
		return
	}
	if err := p.Link(c.objects); err != nil {
		c.log.Debug("softgl: program link failed", "program", program, "err", err)
		return
	}
	c.log.Debug("softgl: program linked", "program", program,
		"attributes", len(p.ActiveAttribs()), "uniforms", len(p.ActiveUniforms()))
}

// ValidateProgram records whether the program could run in the current
// state, reported by VALIDATE_STATUS.
func (c *Context) ValidateProgram(program uint32) {
	c.lookupProgram(program)
}

// UseProgram makes a linked program current. 0 unbinds.
func (c *Context) UseProgram(program uint32) {
	if program == 0 {
		c.program = 0
		return
	}
	p, ok := c.lookupProgram(program)
	if !ok {
		return
	}
	if !p.Linked() {
		c.setError(INVALID_OPERATION)
		return
	}
	c.program = program
}

// currentProgram returns the program installed by UseProgram.
func (c *Context) currentProgram() (*shader.Program, bool) {
	return object.Get[*shader.Program](c.objects, c.program)
}

func maxNameLength(names []string) int {
	n := 0
	for _, s := range names {
		n = max(n, len(s)+1)
	}
	return n
}

// GetProgrami returns a program parameter.
func (c *Context) GetProgrami(program uint32, pname Enum) int {
	p, ok := c.lookupProgram(program)
	if !ok {
		return 0
	}
	switch pname {
	case DELETE_STATUS:
		return int(FALSE)
	case LINK_STATUS, VALIDATE_STATUS:
		return int(boolEnum(p.Linked()))
	case INFO_LOG_LENGTH:
		return logLength(p.InfoLog())
	case ATTACHED_SHADERS:
		return len(p.AttachedShaders(c.objects))
	case ACTIVE_ATTRIBUTES:
		return len(p.ActiveAttribs())
	case ACTIVE_UNIFORMS:
		return len(p.ActiveUniforms())
	case ACTIVE_ATTRIBUTE_MAX_LENGTH:
		var names []string
		for _, a := range p.ActiveAttribs() {
			names = append(names, a.Name)
		}
		return maxNameLength(names)
	case ACTIVE_UNIFORM_MAX_LENGTH:
		var names []string
		for _, u := range p.ActiveUniforms() {
			names = append(names, u.Name)
		}
		return maxNameLength(names)
	}
	c.setError(INVALID_ENUM)
	return 0
}

// GetProgramInfoLog returns the diagnostics of the last link.
func (c *Context) GetProgramInfoLog(program uint32) string {
	if p, ok := c.lookupProgram(program); ok {
		return p.InfoLog()
	}
	return ""
}

// GetActiveAttrib describes the active attribute at index.
func (c *Context) GetActiveAttrib(program uint32, index int) (name string, size int, typ Enum) {
	p, ok := c.lookupProgram(program)
	if !ok {
		return "", 0, NONE
	}
	attribs := p.ActiveAttribs()
	if index < 0 || index >= len(attribs) {
		c.setError(INVALID_VALUE)
		return "", 0, NONE
	}
	a := attribs[index]
	return a.Name, 1, glslTypes[a.Type]
}

// GetActiveUniform describes the active uniform at index. Arrays report
// their element count as size.
func (c *Context) GetActiveUniform(program uint32, index int) (name string, size int, typ Enum) {
	p, ok := c.lookupProgram(program)
	if !ok {
		return "", 0, NONE
	}
	uniforms := p.ActiveUniforms()
	if index < 0 || index >= len(uniforms) {
		c.setError(INVALID_VALUE)
		return "", 0, NONE
	}
	u := uniforms[index]
	return u.Name, u.Size, glslTypes[u.Type]
}

// GetAttribLocation returns the location of an attribute of a linked
// program, or -1.
func (c *Context) GetAttribLocation(program uint32, name string) int {
	p, ok := c.lookupProgram(program)
	if !ok {
		return -1
	}
	if !p.Linked() {
		c.setError(INVALID_OPERATION)
		return -1
	}
	return p.AttribLocation(name)
}

// GetUniformLocation returns the location of a uniform of a linked
// program, or -1. Array elements are addressed as name[i].
func (c *Context) GetUniformLocation(program uint32, name string) int {
	p, ok := c.lookupProgram(program)
	if !ok {
		return -1
	}
	if !p.Linked() {
		c.setError(INVALID_OPERATION)
		return -1
	}
	return p.UniformLocation(name)
}

// GetUniformfv returns the value of the uniform element at loc.
func (c *Context) GetUniformfv(program uint32, loc int) []float32 {
	p, ok := c.lookupProgram(program)
	if !ok {
		return nil
	}
	v, ok := p.UniformValue(loc)
	if !p.Linked() || !ok {
		c.setError(INVALID_OPERATION)
		return nil
	}
	return append([]float32(nil), v...)
}

// uniform checks a Uniform* call against the declared type and stores
// data. comps is the component count of the call, isInt whether it was
// an integer variant.
func (c *Context) uniform(loc, comps int, isInt bool, data []float32) {
	p, ok := c.currentProgram()
	if !ok {
		c.setError(INVALID_OPERATION)
		return
	}
	if loc == -1 {
		return
	}
	u, elem, ok := p.UniformAt(loc)
	if !ok {
		c.setError(INVALID_OPERATION)
		return
	}
	t := u.Type
	var valid bool
	switch {
	case t.IsSampler():
		valid = isInt && comps == 1
	case t.IsMatrix():
		valid = false
	case t.Base() == glsl.Bool:
		valid = comps == t.Size()
	case t.Base() == glsl.Int:
		valid = isInt && comps == t.Size()
	default:
		valid = !isInt && comps == t.Size()
	}
	count := len(data) / comps
	if !valid || (count > 1 && u.Size == 1) {
		c.setError(INVALID_OPERATION)
		return
	}
	if count == 0 {
		return
	}
	if t.IsSampler() {
		for _, v := range data[:count] {
			if v < 0 || int(v) >= len(c.textures) {
				c.setError(INVALID_VALUE)
				return
			}
		}
	}
	count = min(count, u.Size-elem)
	p.SetUniform(loc, data[:count*comps])
}

// Uniform1f sets a float uniform of the current program.
func (c *Context) Uniform1f(loc int, v0 float32) { c.uniform(loc, 1, false, []float32{v0}) }

// Uniform2f sets a vec2 uniform of the current program.
func (c *Context) Uniform2f(loc int, v0, v1 float32) { c.uniform(loc, 2, false, []float32{v0, v1}) }

// Uniform3f sets a vec3 uniform of the current program.
func (c *Context) Uniform3f(loc int, v0, v1, v2 float32) {
	c.uniform(loc, 3, false, []float32{v0, v1, v2})
}

// Uniform4f sets a vec4 uniform of the current program.
func (c *Context) Uniform4f(loc int, v0, v1, v2, v3 float32) {
	c.uniform(loc, 4, false, []float32{v0, v1, v2, v3})
}

// Uniform1fv sets consecutive float uniform elements starting at loc.
func (c *Context) Uniform1fv(loc int, v []float32) { c.uniform(loc, 1, false, v) }

// Uniform2fv sets consecutive vec2 uniform elements starting at loc.
func (c *Context) Uniform2fv(loc int, v []float32) { c.uniform(loc, 2, false, v) }

// Uniform3fv sets consecutive vec3 uniform elements starting at loc.
func (c *Context) Uniform3fv(loc int, v []float32) { c.uniform(loc, 3, false, v) }

// Uniform4fv sets consecutive vec4 uniform elements starting at loc.
func (c *Context) Uniform4fv(loc int, v []float32) { c.uniform(loc, 4, false, v) }

func intsToFloats(v []int32) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}

// Uniform1i sets an int, bool or sampler uniform of the current program.
// Samplers take a texture unit index.
func (c *Context) Uniform1i(loc int, v0 int) { c.uniform(loc, 1, true, []float32{float32(v0)}) }

// Uniform2i sets an ivec2 or bvec2 uniform.
func (c *Context) Uniform2i(loc int, v0, v1 int) {
	c.uniform(loc, 2, true, []float32{float32(v0), float32(v1)})
}

// Uniform3i sets an ivec3 or bvec3 uniform.
func (c *Context) Uniform3i(loc int, v0, v1, v2 int) {
	c.uniform(loc, 3, true, []float32{float32(v0), float32(v1), float32(v2)})
}

// Uniform4i sets an ivec4 or bvec4 uniform.
func (c *Context) Uniform4i(loc int, v0, v1, v2, v3 int) {
	c.uniform(loc, 4, true, []float32{float32(v0), float32(v1), float32(v2), float32(v3)})
}

// Uniform1iv sets consecutive int, bool or sampler elements starting at loc.
func (c *Context) Uniform1iv(loc int, v []int32) { c.uniform(loc, 1, true, intsToFloats(v)) }

// Uniform2iv sets consecutive ivec2 elements starting at loc.
func (c *Context) Uniform2iv(loc int, v []int32) { c.uniform(loc, 2, true, intsToFloats(v)) }

// Uniform3iv sets consecutive ivec3 elements starting at loc.
func (c *Context) Uniform3iv(loc int, v []int32) { c.uniform(loc, 3, true, intsToFloats(v)) }

// Uniform4iv sets consecutive ivec4 elements starting at loc.
func (c *Context) Uniform4iv(loc int, v []int32) { c.uniform(loc, 4, true, intsToFloats(v)) }

// uniformMatrix stores dim x dim matrices, column-major unless transpose.
func (c *Context) uniformMatrix(loc, dim int, transpose bool, v []float32) {
	p, ok := c.currentProgram()
	if !ok {
		c.setError(INVALID_OPERATION)
		return
	}
	if loc == -1 {
		return
	}
	u, elem, ok := p.UniformAt(loc)
	count := len(v) / (dim * dim)
	if !ok || u.Type.Columns() != dim || (count > 1 && u.Size == 1) {
		c.setError(INVALID_OPERATION)
		return
	}
	count = min(count, u.Size-elem)
	if count == 0 {
		return
	}
	p.SetUniformMatrix(loc, dim, count, transpose, v)
}

// UniformMatrix2fv sets mat2 uniform elements starting at loc.
func (c *Context) UniformMatrix2fv(loc int, transpose bool, v []float32) {
	c.uniformMatrix(loc, 2, transpose, v)
}

// UniformMatrix3fv sets mat3 uniform elements starting at loc.
func (c *Context) UniformMatrix3fv(loc int, transpose bool, v []float32) {
	c.uniformMatrix(loc, 3, transpose, v)
}

// UniformMatrix4fv sets mat4 uniform elements starting at loc.
func (c *Context) UniformMatrix4fv(loc int, transpose bool, v []float32) {
	c.uniformMatrix(loc, 4, transpose, v)
}
