package resource

import (
	"github.com/gogpu/softgl/internal/object"
)

// Slot names a framebuffer attachment point.
type Slot uint8

const (
	// SlotColor0 is the single color attachment.
	SlotColor0 Slot = iota
	// SlotDepth is the depth attachment.
	SlotDepth
	// SlotStencil is the stencil attachment.
	SlotStencil

	slotCount
)

// Status is the result of a completeness check.
type Status uint8

const (
	// StatusComplete means the framebuffer can be rendered to.
	StatusComplete Status = iota
	// StatusMissingAttachment means no slot is occupied.
	StatusMissingAttachment
	// StatusIncompleteAttachment means an occupied slot has zero size.
	StatusIncompleteAttachment
	// StatusIncompleteDimensions means occupied slots disagree on size.
	StatusIncompleteDimensions
)

func (s Status) String() string {
	switch s {
	case StatusComplete:
		return "complete"
	case StatusMissingAttachment:
		return "missing attachment"
	case StatusIncompleteAttachment:
		return "incomplete attachment"
	case StatusIncompleteDimensions:
		return "incomplete dimensions"
	}
	return "unknown"
}

// Attachment is storage that can occupy a framebuffer slot:
// a *Renderbuffer or a *Texture2D.
type Attachment interface {
	object.Object
	Size() (width, height int)
}

// Framebuffer groups weak references to its attachments. Deleting an
// attached object empties the slot as far as every query is concerned.
type Framebuffer struct {
	id    uint32
	slots [slotCount]object.Ref[Attachment]
}

// NewFramebuffer returns a framebuffer named id with no attachments.
func NewFramebuffer(id uint32) *Framebuffer { return &Framebuffer{id: id} }

// ID implements object.Object.
func (f *Framebuffer) ID() uint32 { return f.id }

// Kind implements object.Object.
func (f *Framebuffer) Kind() object.Kind { return object.KindFramebuffer }

// Attach places a in slot, replacing the previous occupant. A nil a
// empties the slot.
func (f *Framebuffer) Attach(slot Slot, a Attachment) {
	if slot >= slotCount {
		return
	}
	if a == nil {
		f.slots[slot] = object.Ref[Attachment]{}
		return
	}
	f.slots[slot] = object.RefTo(a)
}

// Attachment resolves the live occupant of slot.
func (f *Framebuffer) Attachment(tbl *object.Table, slot Slot) (Attachment, bool) {
	if slot >= slotCount {
		return nil, false
	}
	return f.slots[slot].Resolve(tbl)
}

// Query reports the kind and name of the live occupant of slot, or
// (KindNone, 0) for an empty slot.
func (f *Framebuffer) Query(tbl *object.Table, slot Slot) (object.Kind, uint32) {
	a, ok := f.Attachment(tbl, slot)
	if !ok {
		return object.KindNone, 0
	}
	return a.Kind(), a.ID()
}

// Status checks completeness: at least one slot occupied, all occupied
// slots the same size, and that size non-zero.
func (f *Framebuffer) Status(tbl *object.Table) Status {
	var (
		found  bool
		w, h   int
		zero   bool
		differ bool
	)
	for slot := range slotCount {
		a, ok := f.Attachment(tbl, slot)
		if !ok {
			continue
		}
		aw, ah := a.Size()
		if aw == 0 || ah == 0 {
			zero = true
		}
		if !found {
			found, w, h = true, aw, ah
			continue
		}
		if aw != w || ah != h {
			differ = true
		}
	}
	switch {
	case !found:
		return StatusMissingAttachment
	case differ:
		return StatusIncompleteDimensions
	case zero:
		return StatusIncompleteAttachment
	}
	return StatusComplete
}

// Size returns the dimensions of the first live attachment.
func (f *Framebuffer) Size(tbl *object.Table) (width, height int) {
	for slot := range slotCount {
		if a, ok := f.Attachment(tbl, slot); ok {
			return a.Size()
		}
	}
	return 0, 0
}

// ColorBuffer returns the RGBA8 storage behind the color slot.
func (f *Framebuffer) ColorBuffer(tbl *object.Table) []byte {
	switch a, _ := f.Attachment(tbl, SlotColor0); a := a.(type) {
	case *Renderbuffer:
		return a.Color()
	case *Texture2D:
		return a.Pix()
	}
	return nil
}

// DepthBuffer returns the depth storage behind the depth slot.
func (f *Framebuffer) DepthBuffer(tbl *object.Table) []float32 {
	if rb, ok := f.slots[SlotDepth].Resolve(tbl); ok {
		if rb, ok := rb.(*Renderbuffer); ok {
			return rb.Depth()
		}
	}
	return nil
}

// StencilBuffer returns the stencil storage behind the stencil slot.
func (f *Framebuffer) StencilBuffer(tbl *object.Table) []byte {
	if rb, ok := f.slots[SlotStencil].Resolve(tbl); ok {
		if rb, ok := rb.(*Renderbuffer); ok {
			return rb.Stencil()
		}
	}
	return nil
}
