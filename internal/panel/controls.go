package panel

import (
	"fmt"
	"math"
	"strings"

	"github.com/example/gridsketch/internal/shape"
)

// Control names one editable property.
type Control string

const (
	Opacity     Control = "opacity"
	Angle       Control = "angle"
	Scale       Control = "scale"
	Fill        Control = "fill"
	Stroke      Control = "stroke"
	StrokeWidth Control = "width"
	FontSize    Control = "fontsize"
	Content     Control = "text"
)

// Range bounds a numeric control. Values snap to Min + k*Step.
type Range struct {
	Min, Max, Step float64
}

var ranges = map[Control]Range{
	Opacity:     {0, 1, 0.1},
	Angle:       {0, 360, 1},
	Scale:       {0.1, 3, 0.1},
	StrokeWidth: {0, 20, 1},
	FontSize:    {8, 72, 1},
}

// RangeOf returns the numeric range for c.
func RangeOf(c Control) (Range, bool) {
	r, ok := ranges[c]
	return r, ok
}

// Numeric reports whether c takes a number.
func (c Control) Numeric() bool {
	_, ok := ranges[c]
	return ok
}

// ParseControl accepts control names and a few aliases.
func ParseControl(s string) (Control, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "opacity":
		return Opacity, true
	case "angle", "rotation", "rotate":
		return Angle, true
	case "scale":
		return Scale, true
	case "fill":
		return Fill, true
	case "stroke":
		return Stroke, true
	case "width", "strokewidth", "stroke-width":
		return StrokeWidth, true
	case "fontsize", "font-size", "size":
		return FontSize, true
	case "text", "content":
		return Content, true
	}
	return "", false
}

// Clamp limits v to the control's range and snaps it to the step grid.
func Clamp(c Control, v float64) float64 {
	r, ok := ranges[c]
	if !ok {
		return v
	}
	if math.IsNaN(v) {
		v = r.Min
	}
	v = math.Max(r.Min, math.Min(r.Max, v))
	steps := math.Round((v - r.Min) / r.Step)
	v = r.Min + steps*r.Step
	if v > r.Max {
		v = r.Max
	}
	return math.Round(v*1e6) / 1e6
}

// Label renders a numeric value the way the panel shows it.
func Label(c Control, v float64) string {
	switch c {
	case Opacity, Scale:
		return fmt.Sprintf("%d%%", int(math.Round(v*100)))
	case Angle:
		return fmt.Sprintf("%d°", int(math.Round(v)))
	case StrokeWidth, FontSize:
		return fmt.Sprintf("%dpx", int(math.Round(v)))
	}
	return fmt.Sprintf("%g", v)
}

// Controls lists the controls offered for a shape kind in display order.
func Controls(k shape.Kind) []Control {
	caps := k.Capabilities()
	out := []Control{Opacity, Angle, Scale}
	if caps.Fill {
		out = append(out, Fill)
	}
	if caps.Stroke {
		out = append(out, Stroke)
	}
	if caps.StrokeWidth {
		out = append(out, StrokeWidth)
	}
	if caps.Font {
		out = append(out, FontSize)
	}
	if caps.Content {
		out = append(out, Content)
	}
	return out
}

// Offers reports whether kind k exposes control c.
func Offers(k shape.Kind, c Control) bool {
	for _, have := range Controls(k) {
		if have == c {
			return true
		}
	}
	return false
}
