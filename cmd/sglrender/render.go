package main

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"

	"github.com/gogpu/softgl"
	"github.com/gogpu/softgl/internal/image"
)

const vertexShader = `
attribute vec3 a_pos;
attribute vec4 a_color;
attribute vec2 a_uv;
uniform mat4 u_model;
varying vec4 v_color;
varying vec2 v_uv;

void main() {
	v_color = a_color;
	v_uv = a_uv;
	gl_Position = u_model * vec4(a_pos, 1.0);
}
`

const fragmentShader = `
precision mediump float;
uniform sampler2D u_tex;
uniform bool u_textured;
uniform vec4 u_tint;
varying vec4 v_color;
varying vec2 v_uv;

void main() {
	vec4 c = v_color * u_tint;
	if (u_textured) {
		c = c * texture2D(u_tex, v_uv);
	}
	gl_FragColor = c;
}
`

// renderer draws scenes with one shared program.
type renderer struct {
	gl   *softgl.Context
	dir  string
	prog uint32

	pos, color, uv        int
	model, tint, textured int
	tex                   int
}

// Render draws s into a new surface. Relative texture paths are resolved
// against dir.
func Render(s *Scene, dir string) (*softgl.Surface, error) {
	surface := softgl.NewSurface(s.Width, s.Height, s.Depth, false)
	gl := softgl.New(softgl.WithSurface(surface))
	defer gl.Destroy()

	r := &renderer{gl: gl, dir: dir}
	defer func() { gl.DeleteProgram(r.prog) }()
	if err := r.buildProgram(); err != nil {
		return nil, err
	}

	gl.ClearColor(s.Clear[0], s.Clear[1], s.Clear[2], s.Clear[3])
	mask := softgl.COLOR_BUFFER_BIT
	if s.Depth {
		gl.Enable(softgl.DEPTH_TEST)
		gl.DepthFunc(softgl.LEQUAL)
		mask |= softgl.DEPTH_BUFFER_BIT
	}
	gl.Clear(mask)

	for i := range s.Meshes {
		if err := r.draw(&s.Meshes[i]); err != nil {
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
	}
	if e := gl.GetError(); e != softgl.NO_ERROR {
		return nil, fmt.Errorf("render: gl error 0x%04X", uint32(e))
	}
	return surface, nil
}

func (r *renderer) compile(typ softgl.Enum, src string) (uint32, error) {
	gl := r.gl
	id := gl.CreateShader(typ)
	gl.ShaderSource(id, src)
	gl.CompileShader(id)
	if gl.GetShaderi(id, softgl.COMPILE_STATUS) == 0 {
		log := gl.GetShaderInfoLog(id)
		gl.DeleteShader(id)
		return 0, fmt.Errorf("compile shader: %s", log)
	}
	return id, nil
}

func (r *renderer) buildProgram() error {
	gl := r.gl
	vs, err := r.compile(softgl.VERTEX_SHADER, vertexShader)
	if err != nil {
		return err
	}
	defer gl.DeleteShader(vs)
	fs, err := r.compile(softgl.FRAGMENT_SHADER, fragmentShader)
	if err != nil {
		return err
	}
	defer gl.DeleteShader(fs)

	r.prog = gl.CreateProgram()
	gl.AttachShader(r.prog, vs)
	gl.AttachShader(r.prog, fs)
	gl.LinkProgram(r.prog)
	if gl.GetProgrami(r.prog, softgl.LINK_STATUS) == 0 {
		return fmt.Errorf("link program: %s", gl.GetProgramInfoLog(r.prog))
	}
	gl.UseProgram(r.prog)

	r.pos = gl.GetAttribLocation(r.prog, "a_pos")
	r.color = gl.GetAttribLocation(r.prog, "a_color")
	r.uv = gl.GetAttribLocation(r.prog, "a_uv")
	r.model = gl.GetUniformLocation(r.prog, "u_model")
	r.tint = gl.GetUniformLocation(r.prog, "u_tint")
	r.textured = gl.GetUniformLocation(r.prog, "u_textured")
	r.tex = gl.GetUniformLocation(r.prog, "u_tex")
	gl.Uniform1i(r.tex, 0)
	return nil
}

func floatBytes(v []float32) []byte {
	b := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(f))
	}
	return b
}

// attribute uploads v into a fresh buffer and points index at it. An
// empty v disables the array and sets the current value to def.
func (r *renderer) attribute(index, size int, v []float32, def ...float32) uint32 {
	gl := r.gl
	if len(v) == 0 {
		gl.DisableVertexAttribArray(index)
		gl.VertexAttrib4fv(index, def)
		return 0
	}
	buf := gl.GenBuffers(1)[0]
	gl.BindBuffer(softgl.ARRAY_BUFFER, buf)
	gl.BufferData(softgl.ARRAY_BUFFER, floatBytes(v), softgl.STATIC_DRAW)
	gl.VertexAttribPointer(index, size, softgl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(index)
	return buf
}

func (r *renderer) texture(path string) (uint32, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.dir, path)
	}
	img, err := image.Load(path)
	if err != nil {
		return 0, err
	}
	img, err = img.Fit(softgl.MaxTextureSize)
	if err != nil {
		return 0, err
	}
	// Texture rows start at t = 0, the bottom of the picture.
	img.FlipVertical()

	gl := r.gl
	tex := gl.GenTextures(1)[0]
	gl.ActiveTexture(softgl.TEXTURE0)
	gl.BindTexture(softgl.TEXTURE_2D, tex)
	gl.TexImage2D(softgl.TEXTURE_2D, 0, softgl.RGBA, img.Width, img.Height, softgl.RGBA, softgl.UNSIGNED_BYTE, img.Pix)
	gl.TexParameteri(softgl.TEXTURE_2D, softgl.TEXTURE_MIN_FILTER, int(softgl.NEAREST))
	gl.TexParameteri(softgl.TEXTURE_2D, softgl.TEXTURE_MAG_FILTER, int(softgl.NEAREST))
	return tex, nil
}

func (r *renderer) draw(m *Mesh) error {
	gl := r.gl

	var tex uint32
	if m.Texture != "" {
		var err error
		if tex, err = r.texture(m.Texture); err != nil {
			return err
		}
		defer gl.DeleteTextures(tex)
	}
	textured := 0
	if tex != 0 {
		textured = 1
	}
	gl.Uniform1i(r.textured, textured)

	model := m.transform()
	gl.UniformMatrix4fv(r.model, false, model[:])
	tint := m.tint()
	gl.Uniform4fv(r.tint, tint[:])

	bufs := []uint32{
		r.attribute(r.pos, 3, m.Positions),
		r.attribute(r.color, 4, m.Colors, 1, 1, 1, 1),
		r.attribute(r.uv, 2, m.UVs, 0, 0),
	}
	defer gl.DeleteBuffers(bufs...)

	if m.Blend {
		gl.Enable(softgl.BLEND)
		gl.BlendFunc(softgl.SRC_ALPHA, softgl.ONE_MINUS_SRC_ALPHA)
		defer gl.Disable(softgl.BLEND)
	}
	if m.Cull {
		gl.Enable(softgl.CULL_FACE)
		defer gl.Disable(softgl.CULL_FACE)
	}

	if len(m.Indices) == 0 {
		gl.DrawArrays(softgl.TRIANGLES, 0, len(m.Positions)/3)
		return nil
	}
	typ, data := packIndices(m.Indices)
	ibo := gl.GenBuffers(1)[0]
	defer gl.DeleteBuffers(ibo)
	gl.BindBuffer(softgl.ELEMENT_ARRAY_BUFFER, ibo)
	gl.BufferData(softgl.ELEMENT_ARRAY_BUFFER, data, softgl.STATIC_DRAW)
	gl.DrawElements(softgl.TRIANGLES, len(m.Indices), typ, 0)
	return nil
}

// packIndices picks the narrowest index type that holds every index.
func packIndices(idx []uint32) (softgl.Enum, []byte) {
	hi := uint32(0)
	for _, i := range idx {
		hi = max(hi, i)
	}
	switch {
	case hi <= math.MaxUint8:
		b := make([]byte, len(idx))
		for i, v := range idx {
			b[i] = byte(v)
		}
		return softgl.UNSIGNED_BYTE, b
	case hi <= math.MaxUint16:
		b := make([]byte, len(idx)*2)
		for i, v := range idx {
			binary.LittleEndian.PutUint16(b[i*2:], uint16(v))
		}
		return softgl.UNSIGNED_SHORT, b
	default:
		b := make([]byte, len(idx)*4)
		for i, v := range idx {
			binary.LittleEndian.PutUint32(b[i*4:], v)
		}
		return softgl.UNSIGNED_INT, b
	}
}
