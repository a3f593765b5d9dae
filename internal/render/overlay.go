package render

import (
	"image"
	"image/color"

	"github.com/example/gridsketch/internal/shape"
	"github.com/fogleman/gg"
)

const handleSize = 8

// Selection outlines the rotated bounding box of s with a dashed border and
// square resize handles on each corner and edge midpoint.
func Selection(dst *image.RGBA, s *shape.Shape, line, handle color.Color) {
	if s == nil {
		return
	}
	c := s.Corners()
	dc := gg.NewContextForRGBA(dst)
	dc.SetLineWidth(1)
	dc.SetDash(4, 4)
	dc.SetColor(line)
	dc.MoveTo(c[0].X, c[0].Y)
	for _, p := range c[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()
	dc.Stroke()
	dc.SetDash()

	hs := float64(handleSize) / 2
	for i := range c {
		next := c[(i+1)%len(c)]
		mid := shape.Point{X: (c[i].X + next.X) / 2, Y: (c[i].Y + next.Y) / 2}
		for _, p := range []shape.Point{c[i], mid} {
			dc.DrawRectangle(p.X-hs, p.Y-hs, handleSize, handleSize)
			dc.SetColor(handle)
			dc.FillPreserve()
			dc.SetColor(line)
			dc.Stroke()
		}
	}
}

// DropTarget tints dst and draws a thick border to mark it as the current
// drag target.
func DropTarget(dst *image.RGBA, tint color.RGBA) {
	b := dst.Bounds()
	dc := gg.NewContextForRGBA(dst)
	wash := tint
	wash.A = 40
	dc.SetColor(wash)
	dc.DrawRectangle(float64(b.Min.X), float64(b.Min.Y), float64(b.Dx()), float64(b.Dy()))
	dc.Fill()
	dc.SetColor(tint)
	dc.SetLineWidth(4)
	dc.DrawRectangle(float64(b.Min.X)+2, float64(b.Min.Y)+2, float64(b.Dx())-4, float64(b.Dy())-4)
	dc.Stroke()
}
