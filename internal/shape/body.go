package shape

import (
	"image"
	"math"
	"strings"
)

// Body is the variant-specific geometry of a shape. Coordinates are local to
// the shape's unscaled bounding box whose top-left corner is (0, 0).
type Body interface {
	Kind() Kind
	// Size returns the unscaled bounding box dimensions.
	Size() (w, h float64)
}

// Point is a local coordinate inside a shape's bounding box.
type Point struct {
	X, Y float64
}

type Rect struct {
	Width, Height float64
}

func (Rect) Kind() Kind                  { return KindRectangle }
func (r *Rect) Size() (float64, float64) { return r.Width, r.Height }

type Circle struct {
	Radius float64
}

func (Circle) Kind() Kind { return KindCircle }
func (c *Circle) Size() (float64, float64) {
	return 2 * c.Radius, 2 * c.Radius
}

type Ellipse struct {
	RX, RY float64
}

func (Ellipse) Kind() Kind { return KindEllipse }
func (e *Ellipse) Size() (float64, float64) {
	return 2 * e.RX, 2 * e.RY
}

// Triangle is an isosceles triangle with its apex centred on the top edge.
type Triangle struct {
	Width, Height float64
}

func (Triangle) Kind() Kind                  { return KindTriangle }
func (t *Triangle) Size() (float64, float64) { return t.Width, t.Height }

// Vertices returns the triangle corners in local coordinates.
func (t *Triangle) Vertices() []Point {
	return []Point{{t.Width / 2, 0}, {t.Width, t.Height}, {0, t.Height}}
}

type Line struct {
	From, To Point
}

func (Line) Kind() Kind { return KindLine }
func (l *Line) Size() (float64, float64) {
	return math.Abs(l.To.X - l.From.X), math.Abs(l.To.Y - l.From.Y)
}

type Polygon struct {
	Points []Point
}

func (Polygon) Kind() Kind { return KindPolygon }
func (p *Polygon) Size() (float64, float64) {
	if len(p.Points) == 0 {
		return 0, 0
	}
	minX, minY := p.Points[0].X, p.Points[0].Y
	maxX, maxY := minX, minY
	for _, pt := range p.Points[1:] {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return maxX - minX, maxY - minY
}

// RegularPolygon returns n vertices of a regular polygon of radius r, pointed
// side up, whose bounding box starts at the origin.
func RegularPolygon(n int, r float64) []Point {
	if n < 3 {
		n = 3
	}
	pts := make([]Point, n)
	for i := range pts {
		a := 2*math.Pi*float64(i)/float64(n) - math.Pi/2
		pts[i] = Point{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}
	return normalize(pts)
}

// normalize shifts pts so their bounding box starts at the origin.
func normalize(pts []Point) []Point {
	if len(pts) == 0 {
		return pts
	}
	minX, minY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
	}
	for i := range pts {
		pts[i].X -= minX
		pts[i].Y -= minY
	}
	return pts
}

// LineHeight is the line spacing multiplier used for text objects.
const LineHeight = 1.16

type Text struct {
	Content  string
	FontSize float64
}

func (Text) Kind() Kind { return KindText }

func (t *Text) Size() (float64, float64) {
	lines := t.Lines()
	var w float64
	for _, line := range lines {
		lw, _ := MeasureText(line, t.FontSize)
		w = math.Max(w, lw)
	}
	return w, float64(len(lines)) * t.FontSize * LineHeight
}

// Lines splits the content into rendered lines. Empty content still occupies
// one line so the object keeps a clickable box.
func (t *Text) Lines() []string {
	return strings.Split(t.Content, "\n")
}

type Image struct {
	Src image.Image
}

func (Image) Kind() Kind { return KindImage }
func (i *Image) Size() (float64, float64) {
	if i.Src == nil {
		return 0, 0
	}
	b := i.Src.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}
