package shader

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/softgl/internal/glsl"
	"github.com/gogpu/softgl/internal/object"
)

// Entry point names the renamed main function is exported under.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
)

// ErrEmptySource is recorded when a shader without source is compiled.
var ErrEmptySource = errors.New("shader: empty source")

var mainFunc = regexp.MustCompile(`\bmain\s*\(`)

// Decl is a uniform, attribute or varying declared by a shader.
type Decl struct {
	Name string
	Type glsl.Type
	// ArrayLen is 0 for non-arrays.
	ArrayLen int
}

// Elements returns the number of array elements, 1 for non-arrays.
func (d Decl) Elements() int {
	if d.ArrayLen > 0 {
		return d.ArrayLen
	}
	return 1
}

// Size is the number of float32 slots the declaration occupies.
func (d Decl) Size() int { return d.Elements() * d.Type.Size() }

// Shader is a shader object of one stage.
type Shader struct {
	id       uint32
	stage    gputypes.ShaderStage
	source   string
	compiled bool
	infoLog  string
	module   *glsl.Module

	uniforms   []Decl
	attributes []Decl
	varyings   []Decl
}

// New returns an uncompiled shader of the given stage.
func New(id uint32, stage gputypes.ShaderStage) *Shader {
	return &Shader{id: id, stage: stage}
}

// ID implements object.Object.
func (s *Shader) ID() uint32 { return s.id }

// Kind implements object.Object.
func (s *Shader) Kind() object.Kind { return object.KindShader }

// Stage returns the shader stage.
func (s *Shader) Stage() gputypes.ShaderStage { return s.stage }

// Source returns the stored source.
func (s *Shader) Source() string { return s.source }

// SetSource replaces the source with the concatenation of fragments.
func (s *Shader) SetSource(fragments ...string) {
	s.source = strings.Join(fragments, "")
}

// Compiled reports whether the last Compile succeeded.
func (s *Shader) Compiled() bool { return s.compiled }

// InfoLog returns the diagnostics of the last Compile.
func (s *Shader) InfoLog() string { return s.infoLog }

// Module returns the compiled module, or nil.
func (s *Shader) Module() *glsl.Module { return s.module }

// Uniforms returns the declared uniforms in declaration order.
func (s *Shader) Uniforms() []Decl { return s.uniforms }

// Attributes returns the declared attributes of a vertex shader.
func (s *Shader) Attributes() []Decl { return s.attributes }

// Varyings returns the declared varyings.
func (s *Shader) Varyings() []Decl { return s.varyings }

// Entry returns the name main is exported under.
func (s *Shader) Entry() string {
	if s.stage == gputypes.ShaderStageVertex {
		return VertexEntry
	}
	return FragmentEntry
}

// Compile compiles the current source with c. On failure the shader keeps
// no module and the error is recorded in the info log.
func (s *Shader) Compile(c Compiler) error {
	s.compiled, s.module, s.infoLog = false, nil, ""
	s.uniforms, s.attributes, s.varyings = nil, nil, nil

	err := s.compile(c)
	if err != nil {
		s.infoLog = err.Error()
		s.uniforms, s.attributes, s.varyings = nil, nil, nil
		return err
	}
	s.compiled = true
	return nil
}

func (s *Shader) compile(c Compiler) error {
	if strings.TrimSpace(s.source) == "" {
		return ErrEmptySource
	}
	src := mainFunc.ReplaceAllString(s.source, s.Entry()+"(")
	file, err := glsl.Parse(src)
	if err != nil {
		return err
	}
	opts := glsl.Options{Stage: s.stage, Exports: s.exports(file)}
	mod, err := c.Compile(src, opts)
	if err != nil {
		return err
	}
	for _, v := range mod.Variables() {
		d := Decl{Name: v.Name, Type: v.Type, ArrayLen: v.ArrayLen}
		switch v.Qualifier {
		case glsl.QualUniform:
			s.uniforms = append(s.uniforms, d)
		case glsl.QualAttribute:
			s.attributes = append(s.attributes, d)
		case glsl.QualVarying:
			s.varyings = append(s.varyings, d)
		}
	}
	s.module = mod
	return nil
}

// exports builds the accessor list from the declarations of file.
func (s *Shader) exports(file *glsl.File) []glsl.Export {
	var out []glsl.Export
	add := func(prefix string, kind glsl.ExportKind, name string) {
		out = append(out, glsl.Export{Name: prefix + name, Kind: kind, Symbol: name})
	}
	vertex := s.stage == gputypes.ShaderStageVertex
	for _, d := range file.Vars {
		for _, v := range d.Vars {
			switch {
			case d.Qual == glsl.QualUniform && d.Type.IsSampler():
				add("set_", glsl.ExportSampler, v.Name)
			case d.Qual == glsl.QualUniform, d.Qual == glsl.QualAttribute:
				add("set_", glsl.ExportSetter, v.Name)
			case d.Qual == glsl.QualVarying && vertex:
				add("get_", glsl.ExportGetter, v.Name)
			case d.Qual == glsl.QualVarying:
				add("set_", glsl.ExportSetter, v.Name)
			}
		}
	}
	if vertex {
		add("get_", glsl.ExportGetter, "gl_Position")
		add("get_", glsl.ExportGetter, "gl_PointSize")
	} else {
		add("set_", glsl.ExportSetter, "gl_FragCoord")
		add("set_", glsl.ExportSetter, "gl_FrontFacing")
		add("get_", glsl.ExportGetter, "gl_FragColor")
	}
	out = append(out, glsl.Export{Name: s.Entry(), Kind: glsl.ExportEntry, Symbol: s.Entry()})
	return out
}

func (s *Shader) String() string {
	stage := "fragment"
	if s.stage == gputypes.ShaderStageVertex {
		stage = "vertex"
	}
	return fmt.Sprintf("%s shader %d", stage, s.id)
}
