// Package selection tracks the single editable object shared by every canvas.
package selection

import (
	"github.com/example/gridsketch/internal/canvas"
	"github.com/example/gridsketch/internal/shape"
	"github.com/google/uuid"
)

// Tab is the side panel page currently shown.
type Tab string

const (
	TabElements   Tab = "elements"
	TabProperties Tab = "properties"
)

// Ref addresses a shape through its owning canvas.
type Ref struct {
	Canvas canvas.ID
	Shape  uuid.UUID
}

// Resolver returns the live surface for a canvas id, or nil when the slot is
// not mounted.
type Resolver func(canvas.ID) *canvas.Surface

// Coordinator mirrors canvas selection events into one process-wide
// selection. At most one object is selected across all canvases; selecting
// on one canvas discards the active object of the previous owner.
type Coordinator struct {
	resolve Resolver
	current *Ref
	text    string
	tab     Tab
}

// New creates a coordinator that resolves canvases through resolve.
func New(resolve Resolver) *Coordinator {
	return &Coordinator{resolve: resolve, tab: TabElements}
}

// Attach subscribes the coordinator to a surface's selection events.
func (c *Coordinator) Attach(s *canvas.Surface) {
	s.OnSelection(c.handle)
}

func (c *Coordinator) handle(ev canvas.Event) {
	switch ev.Type {
	case canvas.SelectionCreated, canvas.SelectionUpdated:
		if len(ev.Selected) == 0 || ev.Selected[0] == nil {
			return
		}
		sh := ev.Selected[0]
		prev := c.current
		c.current = &Ref{Canvas: ev.Surface.ID(), Shape: sh.ID}
		c.text = ""
		if t := sh.TextBody(); t != nil {
			c.text = t.Content
		}
		c.tab = TabProperties
		if prev != nil && prev.Canvas != ev.Surface.ID() && c.resolve != nil {
			if other := c.resolve(prev.Canvas); other != nil {
				other.DiscardActive()
			}
		}
	case canvas.SelectionCleared:
		if c.current == nil || c.current.Canvas != ev.Surface.ID() {
			return
		}
		c.reset()
	}
}

func (c *Coordinator) reset() {
	c.current = nil
	c.text = ""
}

// Current returns the selected reference.
func (c *Coordinator) Current() (Ref, bool) {
	if c.current == nil {
		return Ref{}, false
	}
	return *c.current, true
}

// Object resolves the selection to its surface and shape. Both are nil when
// nothing is selected or the owner has since been torn down.
func (c *Coordinator) Object() (*canvas.Surface, *shape.Shape) {
	if c.current == nil || c.resolve == nil {
		return nil, nil
	}
	s := c.resolve(c.current.Canvas)
	if s == nil || s.Disposed() {
		return nil, nil
	}
	sh := s.Find(c.current.Shape)
	if sh == nil {
		return nil, nil
	}
	return s, sh
}

// Select makes id on s the active object. The coordinator updates through
// the resulting surface event.
func (c *Coordinator) Select(s *canvas.Surface, id uuid.UUID) bool {
	if s == nil {
		return false
	}
	return s.SetActive(id)
}

// Clear drops the selection and the owner's active object.
func (c *Coordinator) Clear() {
	if c.current == nil {
		return
	}
	if c.resolve != nil {
		if s := c.resolve(c.current.Canvas); s != nil {
			s.DiscardActive()
		}
	}
	if c.current != nil {
		c.reset()
	}
}

// Forget drops the selection if it points into canvas id. Used when a
// surface is torn down without emitting events.
func (c *Coordinator) Forget(id canvas.ID) {
	if c.current != nil && c.current.Canvas == id {
		c.reset()
	}
}

// Text returns the editable text buffer mirrored from a selected text object.
func (c *Coordinator) Text() string { return c.text }

// SetText updates the text buffer.
func (c *Coordinator) SetText(s string) { c.text = s }

// Tab returns the side panel page.
func (c *Coordinator) Tab() Tab { return c.tab }

// SetTab switches the side panel page.
func (c *Coordinator) SetTab(t Tab) {
	if t == TabElements || t == TabProperties {
		c.tab = t
	}
}
