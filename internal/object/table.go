package object

// Constructor builds an object for a freshly generated name.
type Constructor func(id uint32) Object

// Table owns all objects of one rendering context.
//
// A Table is not safe for concurrent use.
type Table struct {
	last      uint32
	objects   map[uint32]Object
	observers []func(Object)
}

// NewTable returns an empty table. The first generated name is 1.
func NewTable() *Table {
	return &Table{objects: make(map[uint32]Object)}
}

// Generate creates n objects with ctor and returns their names in
// increasing order. n <= 0 returns nil.
func (t *Table) Generate(n int, ctor Constructor) []uint32 {
	if n <= 0 {
		return nil
	}
	ids := make([]uint32, 0, n)
	for range n {
		t.last++
		id := t.last
		t.objects[id] = ctor(id)
		ids = append(ids, id)
	}
	return ids
}

// Delete removes every live object of the given kind named in ids and
// returns how many were removed. Name 0, unknown names and names of another
// kind are skipped without error. Observers run once per removed object,
// after it has left the table.
func (t *Table) Delete(kind Kind, ids ...uint32) int {
	removed := 0
	for _, id := range ids {
		obj, ok := t.objects[id]
		if !ok || obj.Kind() != kind {
			continue
		}
		delete(t.objects, id)
		removed++
		for _, fn := range t.observers {
			fn(obj)
		}
	}
	return removed
}

// Is reports whether id names a live object of the given kind.
func (t *Table) Is(kind Kind, id uint32) bool {
	obj, ok := t.objects[id]
	return ok && obj.Kind() == kind
}

// Lookup returns the live object named id.
func (t *Table) Lookup(id uint32) (Object, bool) {
	obj, ok := t.objects[id]
	return obj, ok
}

// Len returns the number of live objects.
func (t *Table) Len() int {
	return len(t.objects)
}

// Count returns the number of live objects of one kind.
func (t *Table) Count(kind Kind) int {
	n := 0
	for _, obj := range t.objects {
		if obj.Kind() == kind {
			n++
		}
	}
	return n
}

// OnDelete registers fn to be called with every object removed by Delete.
func (t *Table) OnDelete(fn func(Object)) {
	t.observers = append(t.observers, fn)
}

// Get returns the object named id if it is alive and has type T.
func Get[T Object](t *Table, id uint32) (T, bool) {
	var zero T
	if t == nil || id == 0 {
		return zero, false
	}
	obj, ok := t.objects[id]
	if !ok {
		return zero, false
	}
	v, ok := obj.(T)
	return v, ok
}
