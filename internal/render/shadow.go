package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow added behind an exported canvas.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
	Color   color.RGBA
}

// DefaultShadowOptions returns a soft shadow offset down and to the right.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  16,
		Offset:  image.Pt(12, 12),
		Opacity: 0.5,
		Color:   color.RGBA{A: 255},
	}
}

// WithShadow returns img composited over a blurred copy of its alpha channel.
// The result is grown to hold the shadow and is always zero based; the
// returned point is where img's top-left corner landed.
func WithShadow(img *image.RGBA, opts ShadowOptions) (*image.RGBA, image.Point) {
	if img == nil || img.Bounds().Empty() || opts.Opacity <= 0 {
		return img, image.Point{}
	}
	radius := max(opts.Radius, 0)
	opacity := min(opts.Opacity, 1)

	src := img.Bounds()
	shadow := src.Inset(-radius).Add(opts.Offset)
	canvas := src.Union(shadow)
	out := image.NewRGBA(image.Rect(0, 0, canvas.Dx(), canvas.Dy()))

	alpha := image.NewAlpha(image.Rect(0, 0, shadow.Dx(), shadow.Dy()))
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			if a := img.RGBAAt(x, y).A; a > 0 {
				alpha.SetAlpha(x-src.Min.X+radius, y-src.Min.Y+radius, color.Alpha{A: a})
			}
		}
	}
	blurred := boxBlur(alpha, radius)

	tint := opts.Color
	tint.A = uint8(float64(tint.A)*opacity + 0.5)
	draw.DrawMask(out, shadow.Sub(canvas.Min), image.NewUniform(tint), image.Point{}, blurred, image.Point{}, draw.Over)

	origin := src.Min.Sub(canvas.Min)
	draw.Draw(out, src.Sub(canvas.Min), img, src.Min, draw.Over)
	return out, origin
}

// boxBlur runs a horizontal then vertical running-sum box filter.
func boxBlur(src *image.Alpha, radius int) *image.Alpha {
	b := src.Bounds()
	out := image.NewAlpha(b)
	if radius == 0 {
		copy(out.Pix, src.Pix)
		return out
	}
	w, h := b.Dx(), b.Dy()
	tmp := make([]uint8, len(src.Pix))
	blur1D(src.Pix, tmp, w, h, 1, src.Stride, radius)
	blur1D(tmp, out.Pix, h, w, src.Stride, 1, radius)
	return out
}

// blur1D averages n samples spaced step apart along each of lines lines that
// start lineStride apart. Samples past either edge count as zero.
func blur1D(in, out []uint8, n, lines, step, lineStride, radius int) {
	window := 2*radius + 1
	for l := 0; l < lines; l++ {
		base := l * lineStride
		sum := 0
		for i := 0; i < radius && i < n; i++ {
			sum += int(in[base+i*step])
		}
		for i := 0; i < n; i++ {
			if j := i + radius; j < n {
				sum += int(in[base+j*step])
			}
			if j := i - radius - 1; j >= 0 {
				sum -= int(in[base+j*step])
			}
			out[base+i*step] = uint8(sum / window)
		}
	}
}
