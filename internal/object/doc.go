// Package object implements the handle table shared by every GL object.
//
// Objects are identified by non-zero uint32 names handed out by a Table.
// Names grow monotonically and are never reused, so a name doubles as its
// own generation: a Ref that stores only the name can always tell whether
// the object it points at is still alive.
package object
