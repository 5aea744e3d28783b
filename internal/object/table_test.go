package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fake struct {
	id   uint32
	kind Kind
}

func (f *fake) ID() uint32 { return f.id }
func (f *fake) Kind() Kind { return f.kind }

type other struct{ id uint32 }

func (o *other) ID() uint32 { return o.id }
func (o *other) Kind() Kind { return KindShader }

func ctor(kind Kind) Constructor {
	return func(id uint32) Object { return &fake{id: id, kind: kind} }
}

func TestGenerateMonotonic(t *testing.T) {
	tbl := NewTable()
	first := tbl.Generate(3, ctor(KindBuffer))
	require.Equal(t, []uint32{1, 2, 3}, first)

	assert.Equal(t, 3, tbl.Delete(KindBuffer, first...))
	assert.Equal(t, 0, tbl.Len())

	next := tbl.Generate(2, ctor(KindTexture2D))
	assert.Equal(t, []uint32{4, 5}, next, "names must never be reused")
	assert.Nil(t, tbl.Generate(0, ctor(KindBuffer)))
}

func TestDeleteSilentCases(t *testing.T) {
	tbl := NewTable()
	ids := tbl.Generate(1, ctor(KindBuffer))

	tests := []struct {
		name string
		kind Kind
		ids  []uint32
	}{
		{"zero name", KindBuffer, []uint32{0}},
		{"unknown name", KindBuffer, []uint32{99}},
		{"wrong kind", KindTexture2D, ids},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0, tbl.Delete(tt.kind, tt.ids...))
			assert.Equal(t, 1, tbl.Len())
		})
	}

	assert.Equal(t, 1, tbl.Delete(KindBuffer, ids...))
	assert.Equal(t, 0, tbl.Delete(KindBuffer, ids...), "double delete")
}

func TestIsAndGet(t *testing.T) {
	tbl := NewTable()
	tbl.Generate(1, ctor(KindBuffer))
	tbl.Generate(1, func(id uint32) Object { return &other{id: id} })

	assert.True(t, tbl.Is(KindBuffer, 1))
	assert.False(t, tbl.Is(KindTexture2D, 1))
	assert.False(t, tbl.Is(KindBuffer, 0))
	assert.Equal(t, 1, tbl.Count(KindShader))

	f, ok := Get[*fake](tbl, 1)
	require.True(t, ok)
	assert.Equal(t, uint32(1), f.ID())

	_, ok = Get[*fake](tbl, 2)
	assert.False(t, ok, "type mismatch must fail")
	_, ok = Get[*other](tbl, 7)
	assert.False(t, ok)
}

func TestOnDeleteObservers(t *testing.T) {
	tbl := NewTable()
	ids := tbl.Generate(2, ctor(KindFramebuffer))

	var bound uint32 = ids[1]
	tbl.OnDelete(func(obj Object) {
		if obj.Kind() == KindFramebuffer && obj.ID() == bound {
			bound = 0
		}
	})

	tbl.Delete(KindFramebuffer, ids[0])
	assert.Equal(t, ids[1], bound)
	tbl.Delete(KindFramebuffer, ids[1])
	assert.Zero(t, bound)
}

func TestRefResolve(t *testing.T) {
	tbl := NewTable()
	ids := tbl.Generate(1, ctor(KindRenderbuffer))
	obj, _ := Get[*fake](tbl, ids[0])

	var empty Ref[*fake]
	assert.True(t, empty.IsZero())
	_, ok := empty.Resolve(tbl)
	assert.False(t, ok)

	r := RefTo(obj)
	got, ok := r.Resolve(tbl)
	require.True(t, ok)
	assert.Same(t, obj, got)

	tbl.Delete(KindRenderbuffer, ids[0])
	_, ok = r.Resolve(tbl)
	assert.False(t, ok)
	assert.Equal(t, ids[0], r.ID())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "program", KindProgram.String())
	assert.Equal(t, "unknown", Kind(200).String())
}
