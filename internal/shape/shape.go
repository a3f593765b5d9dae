package shape

import (
	"image/color"
	"math"

	"github.com/google/uuid"
)

// Shape is a single placed object. Left and Top locate the unscaled bounding
// box; scaling grows the box away from that corner and rotation turns it
// about its centre.
type Shape struct {
	ID   uuid.UUID
	Body Body

	Left, Top      float64
	Opacity        float64
	Angle          float64 // degrees, 0..360
	ScaleX, ScaleY float64

	// Fill, Stroke and StrokeWidth are only meaningful when the kind's
	// Capabilities say so.
	Fill        color.RGBA
	Stroke      color.RGBA
	StrokeWidth float64
}

func newShape(body Body) *Shape {
	return &Shape{
		ID:      uuid.New(),
		Body:    body,
		Opacity: 1,
		ScaleX:  1,
		ScaleY:  1,
	}
}

// Kind returns the variant tag of the shape.
func (s *Shape) Kind() Kind {
	if s == nil || s.Body == nil {
		return ""
	}
	return s.Body.Kind()
}

// Size returns the scaled bounding box dimensions before rotation.
func (s *Shape) Size() (w, h float64) {
	bw, bh := s.Body.Size()
	return bw * s.ScaleX, bh * s.ScaleY
}

// Center returns the centre of the scaled bounding box in canvas coordinates.
func (s *Shape) Center() (x, y float64) {
	w, h := s.Size()
	return s.Left + w/2, s.Top + h/2
}

// CenterAt moves the shape so its bounding box is centred on (x, y).
func (s *Shape) CenterAt(x, y float64) {
	w, h := s.Size()
	s.Left = x - w/2
	s.Top = y - h/2
}

// MoveBy translates the shape.
func (s *Shape) MoveBy(dx, dy float64) {
	s.Left += dx
	s.Top += dy
}

// Box is an axis aligned rectangle in canvas coordinates.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// Dx returns the box width.
func (b Box) Dx() float64 { return b.MaxX - b.MinX }

// Dy returns the box height.
func (b Box) Dy() float64 { return b.MaxY - b.MinY }

// Corners returns the four corners of the rotated, scaled bounding box in
// canvas coordinates, clockwise from the top-left.
func (s *Shape) Corners() [4]Point {
	w, h := s.Size()
	cx, cy := s.Center()
	local := [4]Point{{-w / 2, -h / 2}, {w / 2, -h / 2}, {w / 2, h / 2}, {-w / 2, h / 2}}
	sin, cos := math.Sincos(s.Angle * math.Pi / 180)
	var out [4]Point
	for i, p := range local {
		out[i] = Point{X: cx + p.X*cos - p.Y*sin, Y: cy + p.X*sin + p.Y*cos}
	}
	return out
}

// Bounds returns the axis aligned box enclosing the rotated shape.
func (s *Shape) Bounds() Box {
	c := s.Corners()
	b := Box{MinX: c[0].X, MinY: c[0].Y, MaxX: c[0].X, MaxY: c[0].Y}
	for _, p := range c[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}

// hitSlop widens thin boxes so lines stay clickable.
const hitSlop = 4

// Contains reports whether the canvas point (x, y) falls inside the shape's
// transformed bounding box.
func (s *Shape) Contains(x, y float64) bool {
	w, h := s.Size()
	cx, cy := s.Center()
	sin, cos := math.Sincos(-s.Angle * math.Pi / 180)
	dx, dy := x-cx, y-cy
	lx := dx*cos - dy*sin
	ly := dx*sin + dy*cos
	hw := math.Max(w/2, hitSlop)
	hh := math.Max(h/2, hitSlop)
	return math.Abs(lx) <= hw && math.Abs(ly) <= hh
}

// TextBody returns the text variant, or nil for other kinds.
func (s *Shape) TextBody() *Text {
	if t, ok := s.Body.(*Text); ok {
		return t
	}
	return nil
}
