// Package canvas holds the drawable surfaces shown in the layout grid.
package canvas

import (
	"image"
	"image/color"

	"github.com/example/gridsketch/internal/render"
	"github.com/example/gridsketch/internal/shape"
	"github.com/google/uuid"
)

// ID identifies a grid slot. Slot 0 is the main canvas, 1..4 are auxiliary.
type ID int

// DefaultBackground is the canvas colour used when none is configured.
var DefaultBackground = color.RGBA{0xf8, 0xf9, 0xfa, 0xff}

// EventType enumerates selection notifications emitted by a surface.
type EventType int

const (
	SelectionCreated EventType = iota
	SelectionUpdated
	SelectionCleared
)

func (t EventType) String() string {
	switch t {
	case SelectionCreated:
		return "selection:created"
	case SelectionUpdated:
		return "selection:updated"
	case SelectionCleared:
		return "selection:cleared"
	}
	return "unknown"
}

// Event describes a change of the surface's active object.
type Event struct {
	Type     EventType
	Surface  *Surface
	Selected []*shape.Shape
}

// Listener receives selection events. Listeners run synchronously on the
// goroutine that mutated the surface.
type Listener func(Event)

// Surface is one drawable canvas with its own shape list. Shapes are drawn
// in slice order so the last shape is on top.
type Surface struct {
	id         ID
	width      int
	height     int
	background color.RGBA
	selectable bool

	shapes    []*shape.Shape
	active    uuid.UUID
	listeners []Listener

	raster   *image.RGBA
	repaints int
	disposed bool
}

// Option modifies a Surface during creation.
type Option func(*Surface)

// WithBackground sets the background colour.
func WithBackground(c color.RGBA) Option { return func(s *Surface) { s.background = c } }

// WithSelection toggles whether objects can become active.
func WithSelection(enabled bool) Option { return func(s *Surface) { s.selectable = enabled } }

// New creates a surface of the given pixel size.
func New(id ID, width, height int, opts ...Option) *Surface {
	s := &Surface{
		id:         id,
		width:      width,
		height:     height,
		background: DefaultBackground,
		selectable: true,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Surface) ID() ID                     { return s.id }
func (s *Surface) Size() (int, int)           { return s.width, s.height }
func (s *Surface) Background() color.RGBA     { return s.background }
func (s *Surface) Selectable() bool           { return s.selectable }
func (s *Surface) Disposed() bool             { return s.disposed }
func (s *Surface) Len() int                   { return len(s.shapes) }
func (s *Surface) Repaints() int              { return s.repaints }
func (s *Surface) SetBackground(c color.RGBA) { s.background = c }

// OnSelection registers a listener for selection events.
func (s *Surface) OnSelection(l Listener) {
	if l != nil {
		s.listeners = append(s.listeners, l)
	}
}

func (s *Surface) emit(t EventType, selected ...*shape.Shape) {
	ev := Event{Type: t, Surface: s, Selected: selected}
	for _, l := range s.listeners {
		l(ev)
	}
}

// Shapes returns the shapes in z-order.
func (s *Surface) Shapes() []*shape.Shape {
	out := make([]*shape.Shape, len(s.shapes))
	copy(out, s.shapes)
	return out
}

// Add appends shapes on top of the z-order.
func (s *Surface) Add(shapes ...*shape.Shape) {
	if s.disposed {
		return
	}
	for _, sh := range shapes {
		if sh != nil {
			s.shapes = append(s.shapes, sh)
		}
	}
}

// IndexOf returns the z-index of the shape with id, or -1.
func (s *Surface) IndexOf(id uuid.UUID) int {
	for i, sh := range s.shapes {
		if sh.ID == id {
			return i
		}
	}
	return -1
}

// Find resolves a shape id owned by this surface.
func (s *Surface) Find(id uuid.UUID) *shape.Shape {
	if i := s.IndexOf(id); i >= 0 {
		return s.shapes[i]
	}
	return nil
}

// Remove drops the shape with id. Removing the active object clears the
// selection first.
func (s *Surface) Remove(id uuid.UUID) bool {
	i := s.IndexOf(id)
	if i < 0 {
		return false
	}
	if s.active == id {
		s.DiscardActive()
	}
	s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
	return true
}

// BringToFront moves the shape to the top of the z-order.
func (s *Surface) BringToFront(id uuid.UUID) bool {
	i := s.IndexOf(id)
	if i < 0 {
		return false
	}
	sh := s.shapes[i]
	s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
	s.shapes = append(s.shapes, sh)
	return true
}

// SendToBack moves the shape to the bottom of the z-order.
func (s *Surface) SendToBack(id uuid.UUID) bool {
	i := s.IndexOf(id)
	if i < 0 {
		return false
	}
	sh := s.shapes[i]
	copy(s.shapes[1:i+1], s.shapes[:i])
	s.shapes[0] = sh
	return true
}

// ShapeAt returns the top-most shape containing the point, or nil.
func (s *Surface) ShapeAt(x, y float64) *shape.Shape {
	for i := len(s.shapes) - 1; i >= 0; i-- {
		if s.shapes[i].Contains(x, y) {
			return s.shapes[i]
		}
	}
	return nil
}

// Active returns the surface's active object, or nil.
func (s *Surface) Active() *shape.Shape {
	if s.active == uuid.Nil {
		return nil
	}
	return s.Find(s.active)
}

// SetActive makes the shape with id the active object and emits created or
// updated depending on whether something was already active.
func (s *Surface) SetActive(id uuid.UUID) bool {
	if !s.selectable || s.disposed {
		return false
	}
	sh := s.Find(id)
	if sh == nil {
		return false
	}
	had := s.active != uuid.Nil
	s.active = id
	if had {
		s.emit(SelectionUpdated, sh)
	} else {
		s.emit(SelectionCreated, sh)
	}
	return true
}

// DiscardActive clears the active object, emitting cleared if there was one.
func (s *Surface) DiscardActive() {
	if s.active == uuid.Nil {
		return
	}
	s.active = uuid.Nil
	s.emit(SelectionCleared)
}

// CenterObject centres a shape on the surface.
func (s *Surface) CenterObject(sh *shape.Shape) {
	sh.CenterAt(float64(s.width)/2, float64(s.height)/2)
}

// Clear removes every shape and restores the background.
func (s *Surface) Clear(bg color.RGBA) {
	s.DiscardActive()
	s.shapes = nil
	s.background = bg
}

// Repaint redraws the raster from the current shapes. Calling it again
// without intervening mutations yields an identical image.
func (s *Surface) Repaint() *image.RGBA {
	if s.disposed {
		return nil
	}
	s.raster = render.Draw(s.width, s.height, s.background, s.shapes)
	s.repaints++
	return s.raster
}

// Raster returns the last painted image, painting first if needed.
func (s *Surface) Raster() *image.RGBA {
	if s.raster == nil {
		return s.Repaint()
	}
	return s.raster
}

// Dispose releases the shapes, listeners and raster. A disposed surface
// ignores further mutations.
func (s *Surface) Dispose() {
	if s.disposed {
		return
	}
	s.active = uuid.Nil
	s.shapes = nil
	s.listeners = nil
	s.raster = nil
	s.disposed = true
}
