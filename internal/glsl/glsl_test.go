package glsl

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, stage gputypes.ShaderStage, src string, exports ...Export) *Unit {
	t.Helper()
	mod, err := Compile(src, Options{Stage: stage, Exports: exports})
	require.NoError(t, err)
	return mod.Instantiate()
}

func setter(name, sym string) Export { return Export{Name: name, Kind: ExportSetter, Symbol: sym} }
func getter(name, sym string) Export { return Export{Name: name, Kind: ExportGetter, Symbol: sym} }
func entry(name string) Export       { return Export{Name: name, Kind: ExportEntry, Symbol: name} }

// evalFloat runs `float result = <expression>;` in a fragment shader.
func evalVec4(t *testing.T, body string) []float32 {
	t.Helper()
	src := "precision mediump float;\nvec4 result;\nvoid fs_main() {\n" + body + "\n}\n"
	u := mustCompile(t, gputypes.ShaderStageFragment, src, getter("get", "result"), entry("fs_main"))
	run, _ := u.Entry("fs_main")
	require.True(t, run())
	get, _ := u.Getter("get")
	return append([]float32(nil), get()...)
}

func TestVertexTransform(t *testing.T) {
	src := `
attribute vec4 aPos;
uniform mat4 uMVP;
varying vec2 vUV;
void vs_main() {
	gl_Position = uMVP * aPos;
	vUV = aPos.xy * 0.5 + 0.5;
}`
	u := mustCompile(t, gputypes.ShaderStageVertex, src,
		setter("set_aPos", "aPos"),
		setter("set_uMVP", "uMVP"),
		getter("get_vUV", "vUV"),
		getter("get_gl_Position", "gl_Position"),
		entry("vs_main"),
	)
	setPos, ok := u.Setter("set_aPos")
	require.True(t, ok)
	setMVP, _ := u.Setter("set_uMVP")
	// Column-major scale by 2 with a translation of (1, 0, 0).
	setMVP([]float32{
		2, 0, 0, 0,
		0, 2, 0, 0,
		0, 0, 2, 0,
		1, 0, 0, 1,
	})
	setPos([]float32{1, -1, 0, 1})
	run, _ := u.Entry("vs_main")
	require.True(t, run())

	pos, _ := u.Getter("get_gl_Position")
	assert.Equal(t, []float32{3, -2, 0, 1}, pos())
	uv, _ := u.Getter("get_vUV")
	assert.Equal(t, []float32{1, 0}, uv())
}

func TestFragmentDiscard(t *testing.T) {
	src := `
precision mediump float;
varying float vAlpha;
void fs_main() {
	if (vAlpha < 0.5) discard;
	gl_FragColor = vec4(1.0, 0.0, 0.0, vAlpha);
}`
	u := mustCompile(t, gputypes.ShaderStageFragment, src,
		setter("set_vAlpha", "vAlpha"), getter("get_gl_FragColor", "gl_FragColor"), entry("fs_main"))
	set, _ := u.Setter("set_vAlpha")
	run, _ := u.Entry("fs_main")
	color, _ := u.Getter("get_gl_FragColor")

	set([]float32{0.25})
	assert.False(t, run())

	set([]float32{0.75})
	assert.True(t, run())
	assert.Equal(t, []float32{1, 0, 0, 0.75}, color())
}

func TestSwizzles(t *testing.T) {
	got := evalVec4(t, `
	vec4 c = vec4(0.0);
	c.rg = vec2(1.0, 0.5);
	c.w = c.x;
	vec3 v = vec3(1.0, 2.0, 3.0);
	c.b = v.zyx.x - v[1];
	result = c;`)
	assert.Equal(t, []float32{1, 0.5, 1, 1}, got)

	got = evalVec4(t, `result = vec4(1.0, 2.0, 3.0, 4.0).wzyx;`)
	assert.Equal(t, []float32{4, 3, 2, 1}, got)
}

func TestControlFlow(t *testing.T) {
	got := evalVec4(t, `
	float sum = 0.0;
	for (int i = 0; i < 10; i++) {
		if (i == 2) continue;
		if (i == 5) break;
		sum += float(i);
	}
	int n = 0;
	while (n < 3) { n++; }
	int k = 0;
	do { k += 2; } while (k < 5);
	result = vec4(sum, float(n), float(k), sum > 5.0 ? 1.0 : 0.0);`)
	// 0 + 1 + 3 + 4
	assert.Equal(t, []float32{8, 3, 6, 1}, got)
}

func TestUserFunctions(t *testing.T) {
	src := `
precision mediump float;
vec4 result;
float twice(float x);
void split(in vec2 v, out float a, inout float b) {
	a = v.x;
	b += v.y;
}
float twice(float x) { return 2.0 * x; }
float twice(int x) { return 20.0; }
void fs_main() {
	float a;
	float b = 1.0;
	split(vec2(3.0, 4.0), a, b);
	result = vec4(a, b, twice(1.5), twice(1));
}`
	u := mustCompile(t, gputypes.ShaderStageFragment, src, getter("get", "result"), entry("fs_main"))
	run, _ := u.Entry("fs_main")
	require.True(t, run())
	get, _ := u.Getter("get")
	assert.Equal(t, []float32{3, 5, 3, 20}, get())
}

func TestBuiltins(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []float32
	}{
		{"clamp", "vec4(clamp(vec3(-1.0, 0.5, 2.0), 0.0, 1.0), 1.0)", []float32{0, 0.5, 1, 1}},
		{"mix", "mix(vec4(0.0), vec4(2.0, 4.0, 6.0, 8.0), 0.5)", []float32{1, 2, 3, 4}},
		{"dot length", "vec4(dot(vec2(1.0, 2.0), vec2(3.0, 4.0)), length(vec2(3.0, 4.0)), 0.0, 0.0)", []float32{11, 5, 0, 0}},
		{"normalize", "vec4(normalize(vec3(0.0, 0.0, 5.0)), 1.0)", []float32{0, 0, 1, 1}},
		{"step", "vec4(step(0.5, vec2(0.2, 0.7)), 0.0, 0.0)", []float32{0, 1, 0, 0}},
		{"min max", "vec4(min(1.0, 2.0), max(1.0, 2.0), abs(-3.0), sign(-2.0))", []float32{1, 2, 3, -1}},
		{"floor fract mod", "vec4(floor(1.5), fract(1.25), mod(5.0, 3.0), ceil(0.2))", []float32{1, 0.25, 2, 1}},
		{"cross", "vec4(cross(vec3(1.0, 0.0, 0.0), vec3(0.0, 1.0, 0.0)), 0.0)", []float32{0, 0, 1, 0}},
		{"relational", "vec4(all(lessThan(vec2(1.0), vec2(2.0))) ? 1.0 : 0.0, any(equal(ivec2(1, 2), ivec2(3, 2))) ? 1.0 : 0.0, 0.0, 0.0)", []float32{1, 1, 0, 0}},
		{"pow sqrt", "vec4(pow(2.0, 3.0), sqrt(16.0), exp2(2.0), log2(8.0))", []float32{8, 4, 4, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evalVec4(t, "result = "+tt.expr+";")
			assert.InDeltaSlice(t, tt.want, got[:4], 1e-5)
		})
	}
}

func TestMatrices(t *testing.T) {
	got := evalVec4(t, `
	mat2 m = mat2(1.0, 2.0, 3.0, 4.0);
	vec2 a = m * vec2(1.0, 1.0);
	vec2 b = vec2(1.0, 1.0) * m;
	result = vec4(a, b);`)
	// Columns (1,2) and (3,4).
	assert.Equal(t, []float32{4, 6, 3, 7}, got)

	got = evalVec4(t, `
	mat3 m = mat3(mat4(2.0));
	mat4 id = mat4(m);
	result = vec4(m[0][0], m[2][2], id[3][3], (id * id)[1][1]);`)
	assert.Equal(t, []float32{2, 2, 1, 4}, got)
}

func TestArraysAndConsts(t *testing.T) {
	src := `
precision mediump float;
const int N = 3;
uniform vec4 uColors[N];
uniform int uPick;
vec4 result;
void fs_main() {
	float w[N];
	for (int i = 0; i < N; i++) w[i] = float(i);
	result = uColors[uPick] + vec4(w[2]);
}`
	u := mustCompile(t, gputypes.ShaderStageFragment, src,
		setter("colors", "uColors"), setter("pick", "uPick"), getter("get", "result"), entry("fs_main"))
	colors, _ := u.Setter("colors")
	pick, _ := u.Setter("pick")
	colors([]float32{0, 0, 0, 0, 1, 1, 1, 1, 5, 5, 5, 5})
	pick([]float32{1})
	run, _ := u.Entry("fs_main")
	run()
	get, _ := u.Getter("get")
	assert.Equal(t, []float32{3, 3, 3, 3}, get())
}

type solid [4]float32

func (s solid) Sample(u, v float32) [4]float32 { return s }

func TestTexture2D(t *testing.T) {
	src := `
precision mediump float;
uniform sampler2D uTex;
varying vec2 vUV;
void fs_main() { gl_FragColor = texture2D(uTex, vUV); }`
	u := mustCompile(t, gputypes.ShaderStageFragment, src,
		Export{Name: "tex", Kind: ExportSampler, Symbol: "uTex"},
		getter("color", "gl_FragColor"), entry("fs_main"))
	run, _ := u.Entry("fs_main")
	color, _ := u.Getter("color")

	run()
	assert.Equal(t, []float32{0, 0, 0, 1}, color(), "unbound sampler")

	bind, ok := u.SamplerSetter("tex")
	require.True(t, ok)
	bind(solid{0.1, 0.2, 0.3, 0.4})
	run()
	assert.Equal(t, []float32{0.1, 0.2, 0.3, 0.4}, color())
}

func TestPreprocessor(t *testing.T) {
	got := evalVec4(t, `
#ifdef GL_ES
#define SCALE 2.0
#else
#define SCALE 100.0
#endif
#if defined(SCALE) && __VERSION__ >= 100
	float s = SCALE;
#else
	float s = 0.0;
#endif
	result = vec4(s);`)
	assert.Equal(t, []float32{2, 2, 2, 2}, got)
}

func TestGlobalsResetPerInvocation(t *testing.T) {
	src := `
precision mediump float;
float counter = 1.0;
void fs_main() {
	counter += 1.0;
	gl_FragColor = vec4(counter);
}`
	u := mustCompile(t, gputypes.ShaderStageFragment, src, getter("c", "gl_FragColor"), entry("fs_main"))
	run, _ := u.Entry("fs_main")
	get, _ := u.Getter("c")
	run()
	run()
	assert.Equal(t, float32(2), get()[0])
}

func TestLinkFansOutSetters(t *testing.T) {
	vs := mustCompile(t, gputypes.ShaderStageVertex, `
uniform float uScale;
void vs_main() { gl_Position = vec4(uScale); }`,
		setter("set_uScale", "uScale"), getter("get_gl_Position", "gl_Position"), entry("vs_main"))
	fs := mustCompile(t, gputypes.ShaderStageFragment, `
precision mediump float;
uniform float uScale;
void fs_main() { gl_FragColor = vec4(uScale * 2.0); }`,
		setter("set_uScale", "uScale"), getter("get_gl_FragColor", "gl_FragColor"), entry("fs_main"))

	u, err := Link(vs, fs)
	require.NoError(t, err)
	set, _ := u.Setter("set_uScale")
	set([]float32{3})

	vsMain, _ := u.Entry("vs_main")
	fsMain, _ := u.Entry("fs_main")
	vsMain()
	fsMain()
	pos, _ := u.Getter("get_gl_Position")
	col, _ := u.Getter("get_gl_FragColor")
	assert.Equal(t, float32(3), pos()[0])
	assert.Equal(t, float32(6), col()[0])

	_, err = Link(vs, vs)
	assert.ErrorIs(t, err, ErrExport)
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name  string
		stage gputypes.ShaderStage
		src   string
		want  error
	}{
		{"empty", gputypes.ShaderStageVertex, "  // nothing\n", ErrEmptySource},
		{"syntax", gputypes.ShaderStageVertex, "void vs_main() { gl_Position = ; }", ErrSyntax},
		{"undefined", gputypes.ShaderStageVertex, "void vs_main() { gl_Position = foo; }", ErrUndefined},
		{"type", gputypes.ShaderStageVertex, "void vs_main() { float x = vec2(1.0); }", ErrType},
		{"recursion", gputypes.ShaderStageVertex, "float f(float x) { return f(x); }\nvoid vs_main() { f(1.0); }", ErrRecursion},
		{"discard in vertex", gputypes.ShaderStageVertex, "void vs_main() { discard; }", ErrType},
		{"attribute in fragment", gputypes.ShaderStageFragment, "attribute vec4 a;\nvoid fs_main() {}", ErrType},
		{"assign uniform", gputypes.ShaderStageVertex, "uniform float u;\nvoid vs_main() { u = 1.0; }", ErrType},
		{"struct", gputypes.ShaderStageVertex, "struct S { float x; };", ErrUnsupported},
		{"missing body", gputypes.ShaderStageVertex, "float g(float);\nvoid vs_main() { g(1.0); }", ErrUndefined},
		{"huge uniform array", gputypes.ShaderStageVertex, "uniform vec4 u[20000000];\nvoid vs_main() {}", ErrUnsupported},
		{"huge local array", gputypes.ShaderStageVertex, "void vs_main() { float x[4097]; }", ErrUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.src, Options{Stage: tt.stage})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestStorageLimit(t *testing.T) {
	var b strings.Builder
	for i := range MaxStorage/(16*MaxArrayLen) + 1 {
		fmt.Fprintf(&b, "uniform mat4 m%d[%d];\n", i, MaxArrayLen)
	}
	b.WriteString("void vs_main() {}\n")
	_, err := Compile(b.String(), Options{Stage: gputypes.ShaderStageVertex})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestExportErrors(t *testing.T) {
	src := "uniform sampler2D s;\nvoid vs_main() {}"
	tests := []struct {
		name string
		exp  Export
	}{
		{"missing global", setter("x", "nope")},
		{"sampler via setter", setter("x", "s")},
		{"missing entry", entry("main")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(src, Options{Stage: gputypes.ShaderStageVertex, Exports: []Export{tt.exp}})
			assert.ErrorIs(t, err, ErrExport)
		})
	}
}

func TestModuleVariables(t *testing.T) {
	mod, err := Compile(`
attribute vec3 aPos;
uniform mat4 uMVP;
varying vec4 vColor;
void vs_main() { gl_Position = uMVP * vec4(aPos, 1.0); vColor = vec4(1.0); }`,
		Options{Stage: gputypes.ShaderStageVertex})
	require.NoError(t, err)
	assert.Equal(t, []Variable{
		{Name: "aPos", Type: Vec3, Qualifier: QualAttribute},
		{Name: "uMVP", Type: Mat4, Qualifier: QualUniform},
		{Name: "vColor", Type: Vec4, Qualifier: QualVarying},
	}, mod.Variables())
	assert.Equal(t, gputypes.ShaderStageVertex, mod.Stage())
}
