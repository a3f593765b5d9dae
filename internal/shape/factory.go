package shape

import (
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// Default styling for newly created shapes.
const (
	DefaultFontSize    = 24
	DefaultStrokeWidth = 2
	DefaultLineWidth   = 3
	DefaultText        = "Text"
)

var (
	strokeColor   = color.RGBA{0x33, 0x33, 0x33, 0xff}
	rectFill      = color.RGBA{0xff, 0x6b, 0x6b, 0xff}
	circleFill    = color.RGBA{0x4e, 0xcd, 0xc4, 0xff}
	ellipseFill   = color.RGBA{0x45, 0xb7, 0xd1, 0xff}
	triangleFill  = color.RGBA{0xf9, 0xca, 0x24, 0xff}
	polygonFill   = color.RGBA{0xa2, 0x9b, 0xfe, 0xff}
	textFillColor = color.RGBA{0x33, 0x33, 0x33, 0xff}
)

// New builds a shape of the given kind with default styling, centred on
// (x, y). Unknown kinds, and images which need a source bitmap, produce
// nothing.
func New(kind Kind, x, y float64) (*Shape, bool) {
	var s *Shape
	switch kind {
	case KindRectangle:
		s = newShape(&Rect{Width: 100, Height: 80})
		s.Fill = rectFill
	case KindCircle:
		s = newShape(&Circle{Radius: 50})
		s.Fill = circleFill
	case KindEllipse:
		s = newShape(&Ellipse{RX: 60, RY: 40})
		s.Fill = ellipseFill
	case KindTriangle:
		s = newShape(&Triangle{Width: 100, Height: 100})
		s.Fill = triangleFill
	case KindPolygon:
		s = newShape(&Polygon{Points: RegularPolygon(6, 50)})
		s.Fill = polygonFill
	case KindLine:
		s = newShape(&Line{From: Point{0, 0}, To: Point{120, 0}})
		s.Stroke = strokeColor
		s.StrokeWidth = DefaultLineWidth
		s.CenterAt(x, y)
		return s, true
	case KindText:
		s = NewText(DefaultText, 0, 0, DefaultFontSize)
		s.CenterAt(x, y)
		return s, true
	default:
		return nil, false
	}
	s.Stroke = strokeColor
	s.StrokeWidth = DefaultStrokeWidth
	s.CenterAt(x, y)
	return s, true
}

// NewText builds a text object whose top-left corner is at (x, y).
func NewText(content string, x, y, size float64) *Shape {
	if size <= 0 {
		size = DefaultFontSize
	}
	s := newShape(&Text{Content: content, FontSize: size})
	s.Fill = textFillColor
	s.Left = x
	s.Top = y
	return s
}

// NewRect builds a rectangle with an explicit size and fill, top-left at (x, y).
func NewRect(x, y, w, h float64, fill color.RGBA) *Shape {
	s := newShape(&Rect{Width: w, Height: h})
	s.Fill = fill
	s.Stroke = strokeColor
	s.StrokeWidth = DefaultStrokeWidth
	s.Left = x
	s.Top = y
	return s
}

// NewCircle builds a circle with an explicit radius and fill, top-left at (x, y).
func NewCircle(x, y, r float64, fill color.RGBA) *Shape {
	s := newShape(&Circle{Radius: r})
	s.Fill = fill
	s.Stroke = strokeColor
	s.StrokeWidth = DefaultStrokeWidth
	s.Left = x
	s.Top = y
	return s
}

// NewImage wraps a decoded bitmap at unit scale with its top-left at the origin.
func NewImage(src image.Image) *Shape {
	return newShape(&Image{Src: src})
}

// RandomFill returns a colour with a random hue at 70% saturation and 60%
// lightness.
func RandomFill(r *rand.Rand) color.RGBA {
	h := r.Float64() * 360
	cr, cg, cb := colorful.Hsl(h, 0.7, 0.6).Clamped().RGB255()
	return color.RGBA{cr, cg, cb, 0xff}
}
