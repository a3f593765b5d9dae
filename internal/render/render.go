// Package render rasterizes shapes with gg.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/example/gridsketch/internal/shape"
	"github.com/fogleman/gg"
)

// Draw paints the background and then every shape in z-order into a fresh
// RGBA of size w×h.
func Draw(w, h int, bg color.Color, shapes []*shape.Shape) *image.RGBA {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	dc := gg.NewContextForRGBA(dst)
	for _, s := range shapes {
		Composite(dc, dst, s)
	}
	return dst
}

// Composite draws s onto dst honouring its opacity. Translucent shapes are
// drawn onto a scratch layer first and blended through a uniform mask, so
// overlapping fill and stroke do not double up.
func Composite(dc *gg.Context, dst *image.RGBA, s *shape.Shape) {
	if s == nil || s.Body == nil || s.Opacity <= 0 {
		return
	}
	if s.Opacity >= 1 {
		DrawShape(dc, s)
		return
	}
	b := dst.Bounds()
	layer := gg.NewContext(b.Dx(), b.Dy())
	DrawShape(layer, s)
	mask := image.NewUniform(color.Alpha{A: uint8(s.Opacity*255 + 0.5)})
	draw.DrawMask(dst, b, layer.Image(), image.Point{}, mask, image.Point{}, draw.Over)
}

// DrawShape renders a single shape at full opacity.
func DrawShape(dc *gg.Context, s *shape.Shape) {
	cx, cy := s.Center()
	caps := s.Kind().Capabilities()

	dc.Push()
	defer dc.Pop()
	dc.RotateAbout(gg.Radians(s.Angle), cx, cy)
	dc.Translate(s.Left, s.Top)
	dc.Scale(s.ScaleX, s.ScaleY)
	lineScale := (s.ScaleX + s.ScaleY) / 2

	switch b := s.Body.(type) {
	case *shape.Rect:
		dc.DrawRectangle(0, 0, b.Width, b.Height)
		paint(dc, s, caps, lineScale)
	case *shape.Circle:
		dc.DrawCircle(b.Radius, b.Radius, b.Radius)
		paint(dc, s, caps, lineScale)
	case *shape.Ellipse:
		dc.DrawEllipse(b.RX, b.RY, b.RX, b.RY)
		paint(dc, s, caps, lineScale)
	case *shape.Triangle:
		tracePolygon(dc, b.Vertices())
		paint(dc, s, caps, lineScale)
	case *shape.Polygon:
		tracePolygon(dc, b.Points)
		paint(dc, s, caps, lineScale)
	case *shape.Line:
		dc.DrawLine(b.From.X, b.From.Y, b.To.X, b.To.Y)
		paint(dc, s, caps, lineScale)
	case *shape.Text:
		dc.SetFontFace(shape.Face(b.FontSize))
		dc.SetColor(s.Fill)
		lh := b.FontSize * shape.LineHeight
		for i, line := range b.Lines() {
			dc.DrawStringAnchored(line, 0, float64(i)*lh, 0, 1)
		}
	case *shape.Image:
		if b.Src != nil {
			dc.DrawImage(b.Src, 0, 0)
		}
	}
}

func tracePolygon(dc *gg.Context, pts []shape.Point) {
	if len(pts) == 0 {
		return
	}
	dc.NewSubPath()
	dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()
}

func paint(dc *gg.Context, s *shape.Shape, caps shape.Capabilities, lineScale float64) {
	if caps.Fill {
		dc.SetColor(s.Fill)
		dc.FillPreserve()
	}
	if caps.Stroke && s.StrokeWidth > 0 {
		dc.SetColor(s.Stroke)
		dc.SetLineWidth(s.StrokeWidth * lineScale)
		dc.StrokePreserve()
	}
	dc.ClearPath()
}
