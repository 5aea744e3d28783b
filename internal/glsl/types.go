package glsl

// Type is a GLSL value type.
type Type uint8

// Value types.
const (
	Void Type = iota
	Bool
	Int
	Float
	BVec2
	BVec3
	BVec4
	IVec2
	IVec3
	IVec4
	Vec2
	Vec3
	Vec4
	Mat2
	Mat3
	Mat4
	Sampler2D
	SamplerCube

	typeCount
)

type typeInfo struct {
	name  string
	base  Type
	comps int
	cols  int
}

var types = [typeCount]typeInfo{
	Void:        {"void", Void, 0, 0},
	Bool:        {"bool", Bool, 1, 0},
	Int:         {"int", Int, 1, 0},
	Float:       {"float", Float, 1, 0},
	BVec2:       {"bvec2", Bool, 2, 0},
	BVec3:       {"bvec3", Bool, 3, 0},
	BVec4:       {"bvec4", Bool, 4, 0},
	IVec2:       {"ivec2", Int, 2, 0},
	IVec3:       {"ivec3", Int, 3, 0},
	IVec4:       {"ivec4", Int, 4, 0},
	Vec2:        {"vec2", Float, 2, 0},
	Vec3:        {"vec3", Float, 3, 0},
	Vec4:        {"vec4", Float, 4, 0},
	Mat2:        {"mat2", Float, 4, 2},
	Mat3:        {"mat3", Float, 9, 3},
	Mat4:        {"mat4", Float, 16, 4},
	Sampler2D:   {"sampler2D", Sampler2D, 1, 0},
	SamplerCube: {"samplerCube", SamplerCube, 1, 0},
}

var typeByName = func() map[string]Type {
	m := make(map[string]Type, typeCount)
	for t := range typeCount {
		m[types[t].name] = t
	}
	return m
}()

// TypeByName returns the type spelled name.
func TypeByName(name string) (Type, bool) {
	t, ok := typeByName[name]
	return t, ok
}

func (t Type) String() string {
	if t < typeCount {
		return types[t].name
	}
	return "invalid"
}

// Size is the number of float32 slots a value of t occupies.
func (t Type) Size() int { return types[t].comps }

// Base is the scalar type of the components of t.
func (t Type) Base() Type { return types[t].base }

// IsScalar reports bool, int and float.
func (t Type) IsScalar() bool { return t == Bool || t == Int || t == Float }

// IsVector reports the bvec, ivec and vec types.
func (t Type) IsVector() bool { return types[t].comps > 1 && types[t].cols == 0 && !t.IsSampler() }

// IsMatrix reports the mat types.
func (t Type) IsMatrix() bool { return types[t].cols > 0 }

// IsSampler reports the opaque sampler types.
func (t Type) IsSampler() bool { return t == Sampler2D || t == SamplerCube }

// Columns returns the column count of a matrix type.
func (t Type) Columns() int { return types[t].cols }

func (t Type) isNumeric() bool {
	b := t.Base()
	return b == Int || b == Float
}

func (t Type) isGenFloat() bool { return t.Base() == Float && !t.IsMatrix() }

// vecOf returns the vector of n components of base, or base itself for n 1.
func vecOf(base Type, n int) Type {
	if n == 1 {
		return base
	}
	if n < 1 || n > 4 {
		return Void
	}
	switch base {
	case Bool:
		return BVec2 + Type(n-2)
	case Int:
		return IVec2 + Type(n-2)
	case Float:
		return Vec2 + Type(n-2)
	}
	return Void
}

// withBase returns t with its component type replaced by base.
func (t Type) withBase(base Type) Type {
	if t.IsMatrix() {
		if base == Float {
			return t
		}
		return Void
	}
	return vecOf(base, t.Size())
}

// value holds any GLSL value. Matrices are column major.
type value [16]float32

func boolf(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
