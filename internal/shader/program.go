package shader

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/softgl/internal/glsl"
	"github.com/gogpu/softgl/internal/object"
)

// Link-time resource limits.
const (
	// MaxVertexAttribs is the number of generic vertex attribute locations.
	MaxVertexAttribs = 16
	// MaxUniformVectors is the number of four-component uniform rows each
	// stage may use.
	MaxUniformVectors = 256
	// MaxVaryingVectors is the number of four-component varying rows.
	MaxVaryingVectors = 16
)

// Link errors recorded in the program info log.
var (
	ErrMissingStage = errors.New("shader: program needs a compiled vertex and fragment shader")
	ErrVarying      = errors.New("shader: varying mismatch")
	ErrUniform      = errors.New("shader: uniform mismatch")
	ErrAttribs      = errors.New("shader: too many vertex attributes")
	ErrLimit        = errors.New("shader: resource limit exceeded")
)

// State is the link state of a Program.
type State uint8

// Program states.
const (
	// StateEmpty means fewer than two shaders are attached.
	StateEmpty State = iota
	// StateAttached means both stages are attached but not linked since.
	StateAttached
	// StateLinked means the last Link succeeded with the attached shaders.
	StateLinked
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateAttached:
		return "attached"
	case StateLinked:
		return "linked"
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// Attrib describes an active vertex attribute.
type Attrib struct {
	Name     string
	Type     glsl.Type
	Location int
}

// Slots is the number of consecutive locations the attribute occupies.
func (a Attrib) Slots() int { return max(a.Type.Columns(), 1) }

// Uniform describes an active uniform.
type Uniform struct {
	Name     string
	Type     glsl.Type
	Size     int
	Location int
}

type attrib struct {
	Attrib
	value []float32
	set   func([]float32)
}

type uniform struct {
	Uniform
	value  []float32
	set    func([]float32)
	sample func(glsl.Sampler)
	unit   int
}

type uniformSlot struct {
	u    *uniform
	elem int
}

type varying struct {
	Decl
	get func() []float32
	set func([]float32)
}

// Program links a vertex and a fragment shader into one callable unit.
// A Program is not safe for concurrent use.
type Program struct {
	id       uint32
	vertex   object.Ref[*Shader]
	fragment object.Ref[*Shader]
	bindings map[string]int

	state   State
	linked  bool
	infoLog string
	unit    *glsl.Unit

	attribs  []*attrib
	uniforms []*uniform
	slots    []uniformSlot
	varyings []*varying

	resolved    bool
	vsMain      func() bool
	fsMain      func() bool
	position    func() []float32
	color       func() []float32
	fragCoord   func([]float32)
	frontFacing func([]float32)
	facing      [1]float32
}

// NewProgram returns an empty program.
func NewProgram(id uint32) *Program {
	return &Program{id: id, bindings: make(map[string]int)}
}

// ID implements object.Object.
func (p *Program) ID() uint32 { return p.id }

// Kind implements object.Object.
func (p *Program) Kind() object.Kind { return object.KindProgram }

// State returns the link state.
func (p *Program) State() State { return p.state }

// Linked reports whether the last Link succeeded.
func (p *Program) Linked() bool { return p.linked }

// InfoLog returns the diagnostics of the last Link.
func (p *Program) InfoLog() string { return p.infoLog }

func (p *Program) slot(stage gputypes.ShaderStage) *object.Ref[*Shader] {
	if stage == gputypes.ShaderStageVertex {
		return &p.vertex
	}
	return &p.fragment
}

// Attach stores s in its stage slot. It reports false, changing nothing,
// when that slot already holds a live shader.
func (p *Program) Attach(tbl *object.Table, s *Shader) bool {
	ref := p.slot(s.Stage())
	if _, ok := ref.Resolve(tbl); ok {
		return false
	}
	*ref = object.RefTo(s)
	p.updateState(tbl)
	return true
}

// Detach clears the slot holding shader id and reports whether one did.
func (p *Program) Detach(tbl *object.Table, id uint32) bool {
	for _, ref := range []*object.Ref[*Shader]{&p.vertex, &p.fragment} {
		if id != 0 && ref.ID() == id {
			*ref = object.Ref[*Shader]{}
			p.updateState(tbl)
			return true
		}
	}
	return false
}

// AttachedShaders returns the ids of the live attached shaders.
func (p *Program) AttachedShaders(tbl *object.Table) []uint32 {
	var ids []uint32
	for _, ref := range []object.Ref[*Shader]{p.vertex, p.fragment} {
		if s, ok := ref.Resolve(tbl); ok {
			ids = append(ids, s.ID())
		}
	}
	return ids
}

func (p *Program) updateState(tbl *object.Table) {
	_, vok := p.vertex.Resolve(tbl)
	_, fok := p.fragment.Resolve(tbl)
	if vok && fok {
		p.state = StateAttached
	} else {
		p.state = StateEmpty
	}
}

// BindAttribLocation records a binding applied by the next Link.
func (p *Program) BindAttribLocation(index int, name string) {
	p.bindings[name] = index
}

// Link resolves locations and links the attached shaders. On failure the
// previous executable is dropped and the error is kept in the info log.
func (p *Program) Link(tbl *object.Table) error {
	p.reset()
	p.updateState(tbl)
	err := p.link(tbl)
	if err != nil {
		p.reset()
		p.infoLog = err.Error()
		return err
	}
	p.linked = true
	p.state = StateLinked
	return nil
}

func (p *Program) reset() {
	p.linked, p.infoLog, p.unit = false, "", nil
	p.attribs, p.uniforms, p.slots, p.varyings = nil, nil, nil, nil
	p.resolved = false
	p.vsMain, p.fsMain, p.position, p.color = nil, nil, nil, nil
	p.fragCoord, p.frontFacing = nil, nil
}

func (p *Program) link(tbl *object.Table) error {
	vs, vok := p.vertex.Resolve(tbl)
	fs, fok := p.fragment.Resolve(tbl)
	if !vok || !fok || !vs.Compiled() || !fs.Compiled() {
		return ErrMissingStage
	}
	if err := checkLimits(vs, fs); err != nil {
		return err
	}
	if err := p.linkAttribs(vs); err != nil {
		return err
	}
	if err := p.linkUniforms(vs, fs); err != nil {
		return err
	}
	if err := p.linkVaryings(vs, fs); err != nil {
		return err
	}
	unit, err := glsl.Link(vs.Module().Instantiate(), fs.Module().Instantiate())
	if err != nil {
		return err
	}
	p.unit = unit
	return nil
}

// vectors counts the four-component rows decls occupy. Samplers take none.
func vectors(decls []Decl) int {
	n := 0
	for _, d := range decls {
		if d.Type.IsSampler() {
			continue
		}
		n += d.Elements() * max(d.Type.Columns(), 1)
	}
	return n
}

func checkLimits(vs, fs *Shader) error {
	if n := vectors(vs.Uniforms()); n > MaxUniformVectors {
		return fmt.Errorf("%w: vertex shader uses %d uniform vectors, max %d", ErrLimit, n, MaxUniformVectors)
	}
	if n := vectors(fs.Uniforms()); n > MaxUniformVectors {
		return fmt.Errorf("%w: fragment shader uses %d uniform vectors, max %d", ErrLimit, n, MaxUniformVectors)
	}
	if n := vectors(vs.Varyings()); n > MaxVaryingVectors {
		return fmt.Errorf("%w: %d varying vectors, max %d", ErrLimit, n, MaxVaryingVectors)
	}
	return nil
}

func (p *Program) linkAttribs(vs *Shader) error {
	highest := -1
	for _, d := range vs.Attributes() {
		a := &attrib{Attrib: Attrib{Name: d.Name, Type: d.Type, Location: -1}, value: make([]float32, d.Type.Size())}
		if idx, ok := p.bindings[d.Name]; ok {
			a.Location = idx
			highest = max(highest, idx+a.Slots()-1)
		}
		if a.Type.IsVector() || a.Type.IsScalar() {
			a.value[len(a.value)-1] = defaultW(len(a.value))
		}
		p.attribs = append(p.attribs, a)
	}
	next := highest + 1
	for _, a := range p.attribs {
		if a.Location < 0 {
			a.Location = next
			next += a.Slots()
		}
		if a.Location+a.Slots() > MaxVertexAttribs {
			return fmt.Errorf("%w: %s at %d", ErrAttribs, a.Name, a.Location)
		}
	}
	return nil
}

// defaultW is the initial last component of an n-component attribute.
func defaultW(n int) float32 {
	if n == 4 {
		return 1
	}
	return 0
}

func (p *Program) linkUniforms(vs, fs *Shader) error {
	byName := make(map[string]*uniform)
	for _, d := range append(append([]Decl(nil), vs.Uniforms()...), fs.Uniforms()...) {
		if u, ok := byName[d.Name]; ok {
			if u.Type != d.Type || u.Size != d.Elements() {
				return fmt.Errorf("%w: %s declared as %s and %s", ErrUniform, d.Name, u.Type, d.Type)
			}
			continue
		}
		u := &uniform{
			Uniform: Uniform{Name: d.Name, Type: d.Type, Size: d.Elements(), Location: len(p.slots)},
			value:   make([]float32, d.Size()),
		}
		byName[d.Name] = u
		p.uniforms = append(p.uniforms, u)
		for i := range u.Size {
			p.slots = append(p.slots, uniformSlot{u: u, elem: i})
		}
	}
	return nil
}

func (p *Program) linkVaryings(vs, fs *Shader) error {
	out := make(map[string]Decl)
	for _, d := range vs.Varyings() {
		out[d.Name] = d
		p.varyings = append(p.varyings, &varying{Decl: d})
	}
	for _, d := range fs.Varyings() {
		v, ok := out[d.Name]
		if !ok {
			return fmt.Errorf("%w: %s is not written by the vertex shader", ErrVarying, d.Name)
		}
		if v.Type != d.Type || v.ArrayLen != d.ArrayLen {
			return fmt.Errorf("%w: %s declared as %s and %s", ErrVarying, d.Name, v.Type, d.Type)
		}
	}
	return nil
}

// Use binds the program's accessors to the linked unit on first use after
// a link. It reports whether the program can run.
func (p *Program) Use() bool {
	if !p.linked {
		return false
	}
	if p.resolved {
		return true
	}
	u := p.unit
	for _, a := range p.attribs {
		a.set, _ = u.Setter("set_" + a.Name)
	}
	for _, un := range p.uniforms {
		if un.Type.IsSampler() {
			un.sample, _ = u.SamplerSetter("set_" + un.Name)
			continue
		}
		un.set, _ = u.Setter("set_" + un.Name)
	}
	for _, v := range p.varyings {
		v.get, _ = u.Getter("get_" + v.Name)
		v.set, _ = u.Setter("set_" + v.Name)
	}
	p.vsMain, _ = u.Entry(VertexEntry)
	p.fsMain, _ = u.Entry(FragmentEntry)
	p.position, _ = u.Getter("get_gl_Position")
	p.color, _ = u.Getter("get_gl_FragColor")
	p.fragCoord, _ = u.Setter("set_gl_FragCoord")
	p.frontFacing, _ = u.Setter("set_gl_FrontFacing")
	if p.vsMain == nil || p.fsMain == nil || p.position == nil || p.color == nil {
		return false
	}
	p.resolved = true
	return true
}

// AttribLocation returns the location of attribute name, or -1.
func (p *Program) AttribLocation(name string) int {
	for _, a := range p.attribs {
		if a.Name == name {
			return a.Location
		}
	}
	return -1
}

// UniformLocation returns the location of uniform name, or -1. Array
// elements are addressed as name[i]; name and name[0] are the same.
func (p *Program) UniformLocation(name string) int {
	elem := 0
	if i := strings.IndexByte(name, '['); i >= 0 && strings.HasSuffix(name, "]") {
		n, err := strconv.Atoi(name[i+1 : len(name)-1])
		if err != nil || n < 0 {
			return -1
		}
		name, elem = name[:i], n
	}
	for _, u := range p.uniforms {
		if u.Name == name {
			if elem >= u.Size || (elem > 0 && u.Size == 1) {
				return -1
			}
			return u.Location + elem
		}
	}
	return -1
}

// UniformAt returns the uniform owning loc and the array element loc
// addresses.
func (p *Program) UniformAt(loc int) (Uniform, int, bool) {
	if loc < 0 || loc >= len(p.slots) {
		return Uniform{}, 0, false
	}
	s := p.slots[loc]
	return s.u.Uniform, s.elem, true
}

// IsSampler2D reports whether loc addresses a sampler2D uniform.
func (p *Program) IsSampler2D(loc int) bool {
	u, _, ok := p.UniformAt(loc)
	return ok && u.Type == glsl.Sampler2D
}

// SetUniform writes data starting at the element loc addresses. Elements
// past the end of an array are dropped. Sampler uniforms take a texture
// unit index.
func (p *Program) SetUniform(loc int, data []float32) bool {
	if !p.Use() || loc < 0 || loc >= len(p.slots) || len(data) == 0 {
		return false
	}
	s := p.slots[loc]
	u := s.u
	if u.Type.IsSampler() {
		u.unit = int(data[0])
		return true
	}
	dst := u.value[s.elem*u.Type.Size():]
	n := copy(dst, data)
	if u.Type.Base() == glsl.Bool {
		for i := range dst[:n] {
			if dst[i] != 0 {
				dst[i] = 1
			}
		}
	}
	if u.set != nil {
		u.set(u.value)
	}
	return true
}

// SetUniformMatrix writes count dim x dim matrices starting at loc,
// transposing each one first if asked.
func (p *Program) SetUniformMatrix(loc, dim, count int, transpose bool, data []float32) bool {
	u, _, ok := p.UniformAt(loc)
	if !ok || u.Type.Columns() != dim || count <= 0 || len(data) < count*dim*dim {
		return false
	}
	data = data[:count*dim*dim]
	if transpose {
		t := make([]float32, len(data))
		for m := 0; m < len(data); m += dim * dim {
			for c := range dim {
				for r := range dim {
					t[m+c*dim+r] = data[m+r*dim+c]
				}
			}
		}
		data = t
	}
	return p.SetUniform(loc, data)
}

// UniformValue returns the current value of the uniform element at loc.
func (p *Program) UniformValue(loc int) ([]float32, bool) {
	if loc < 0 || loc >= len(p.slots) {
		return nil, false
	}
	s := p.slots[loc]
	if s.u.Type.IsSampler() {
		return []float32{float32(s.u.unit)}, true
	}
	n := s.u.Type.Size()
	return s.u.value[s.elem*n : (s.elem+1)*n], true
}

// SetSampler2D binds s to the sampler2D uniform at loc.
func (p *Program) SetSampler2D(loc int, s glsl.Sampler) bool {
	if !p.Use() || !p.IsSampler2D(loc) {
		return false
	}
	if u := p.slots[loc].u; u.sample != nil {
		u.sample(s)
	}
	return true
}

// BindSamplers binds every sampler uniform to the sampler lookup returns
// for the texture unit the uniform holds.
func (p *Program) BindSamplers(lookup func(unit int) glsl.Sampler) {
	if !p.Use() {
		return
	}
	for _, u := range p.uniforms {
		if u.sample != nil {
			u.sample(lookup(u.unit))
		}
	}
}

// SetAttrib writes up to four components to the attribute occupying
// location index. Matrix attributes take one column per location.
func (p *Program) SetAttrib(index int, v []float32) bool {
	if !p.Use() {
		return false
	}
	for _, a := range p.attribs {
		if index < a.Location || index >= a.Location+a.Slots() {
			continue
		}
		rows := len(a.value) / a.Slots()
		copy(a.value[(index-a.Location)*rows:(index-a.Location+1)*rows], v)
		if a.set != nil {
			a.set(a.value)
		}
		return true
	}
	return false
}

// RunVertex runs the vertex stage and returns gl_Position.
func (p *Program) RunVertex() ([4]float32, bool) {
	var pos [4]float32
	if !p.Use() {
		return pos, false
	}
	p.vsMain()
	copy(pos[:], p.position())
	return pos, true
}

// VaryingSize is the number of float32 values CollectVaryings appends.
func (p *Program) VaryingSize() int {
	n := 0
	for _, v := range p.varyings {
		n += v.Size()
	}
	return n
}

// Varyings returns the vertex outputs in declaration order.
func (p *Program) Varyings() []Decl {
	out := make([]Decl, len(p.varyings))
	for i, v := range p.varyings {
		out[i] = v.Decl
	}
	return out
}

// CollectVaryings appends the vertex outputs of the last RunVertex to dst.
func (p *Program) CollectVaryings(dst []float32) []float32 {
	for _, v := range p.varyings {
		if v.get != nil {
			dst = append(dst, v.get()...)
		} else {
			dst = append(dst, make([]float32, v.Size())...)
		}
	}
	return dst
}

// SetFragmentVaryings feeds values laid out as by CollectVaryings to the
// fragment stage.
func (p *Program) SetFragmentVaryings(values []float32) {
	for _, v := range p.varyings {
		n := v.Size()
		if len(values) < n {
			return
		}
		if v.set != nil {
			v.set(values[:n])
		}
		values = values[n:]
	}
}

// SetFragmentVarying feeds one varying to the fragment stage.
func (p *Program) SetFragmentVarying(name string, value []float32) bool {
	for _, v := range p.varyings {
		if v.Name == name && v.set != nil {
			v.set(value)
			return true
		}
	}
	return false
}

// RunFragment runs the fragment stage and returns gl_FragColor. It
// reports false when the fragment was discarded.
func (p *Program) RunFragment(fragCoord [4]float32, frontFacing bool) ([4]float32, bool) {
	var color [4]float32
	if !p.Use() {
		return color, false
	}
	if p.fragCoord != nil {
		p.fragCoord(fragCoord[:])
	}
	if p.frontFacing != nil {
		p.facing[0] = 0
		if frontFacing {
			p.facing[0] = 1
		}
		p.frontFacing(p.facing[:])
	}
	if !p.fsMain() {
		return color, false
	}
	copy(color[:], p.color())
	return color, true
}

// ActiveAttribs lists the attributes in declaration order.
func (p *Program) ActiveAttribs() []Attrib {
	out := make([]Attrib, len(p.attribs))
	for i, a := range p.attribs {
		out[i] = a.Attrib
	}
	return out
}

// ActiveUniforms lists the uniforms in location order. Arrays are named
// after their first element.
func (p *Program) ActiveUniforms() []Uniform {
	out := make([]Uniform, len(p.uniforms))
	for i, u := range p.uniforms {
		out[i] = u.Uniform
		if u.Size > 1 {
			out[i].Name += "[0]"
		}
	}
	return out
}
