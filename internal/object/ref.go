package object

// Ref is a non-owning reference to an object in a Table.
//
// The zero Ref refers to nothing. Resolving a Ref after its target was
// deleted fails, because deleted names are never handed out again.
type Ref[T Object] struct {
	id uint32
}

// RefTo returns a Ref to obj.
func RefTo[T Object](obj T) Ref[T] {
	return Ref[T]{id: obj.ID()}
}

// ID returns the referenced name, or 0 for an empty Ref.
func (r Ref[T]) ID() uint32 { return r.id }

// IsZero reports whether r refers to nothing.
func (r Ref[T]) IsZero() bool { return r.id == 0 }

// Resolve returns the referenced object if it is still alive in t.
func (r Ref[T]) Resolve(t *Table) (T, bool) {
	return Get[T](t, r.id)
}
