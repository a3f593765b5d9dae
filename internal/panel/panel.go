// Package panel implements the property editor for the selected object.
package panel

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/example/gridsketch/internal/canvas"
	"github.com/example/gridsketch/internal/selection"
	"github.com/example/gridsketch/internal/shape"
	"github.com/example/gridsketch/internal/theme"
	"github.com/google/uuid"
)

// Placeholder is shown when nothing is selected.
const Placeholder = "Select an object to edit its properties"

// Field is one rendered control.
type Field struct {
	Control Control `json:"control"`
	Value   string  `json:"value"`
	Label   string  `json:"label,omitempty"`
	Min     float64 `json:"min,omitempty"`
	Max     float64 `json:"max,omitempty"`
	Step    float64 `json:"step,omitempty"`
}

// View is the panel content for the current selection.
type View struct {
	Empty       bool       `json:"empty"`
	Placeholder string     `json:"placeholder,omitempty"`
	Canvas      canvas.ID  `json:"canvas"`
	Kind        shape.Kind `json:"kind,omitempty"`
	Title       string     `json:"title,omitempty"`
	Fields      []Field    `json:"fields,omitempty"`
}

// Panel edits whatever the selection coordinator points at.
type Panel struct {
	sel *selection.Coordinator
}

// New creates a panel bound to sel.
func New(sel *selection.Coordinator) *Panel {
	return &Panel{sel: sel}
}

// View describes the controls for the current selection.
func (p *Panel) View() View {
	s, sh := p.sel.Object()
	if sh == nil {
		return View{Empty: true, Placeholder: Placeholder}
	}
	v := View{Canvas: s.ID(), Kind: sh.Kind(), Title: sh.Kind().Label()}
	for _, c := range Controls(sh.Kind()) {
		f := Field{Control: c}
		if r, ok := ranges[c]; ok {
			val := current(sh, c)
			f.Value = strconv.FormatFloat(val, 'f', -1, 64)
			f.Label = Label(c, val)
			f.Min, f.Max, f.Step = r.Min, r.Max, r.Step
		} else {
			switch c {
			case Fill:
				f.Value = Hex(sh.Fill)
			case Stroke:
				f.Value = Hex(sh.Stroke)
			case Content:
				f.Value = p.sel.Text()
			}
		}
		v.Fields = append(v.Fields, f)
	}
	return v
}

func current(sh *shape.Shape, c Control) float64 {
	switch c {
	case Opacity:
		return sh.Opacity
	case Angle:
		return sh.Angle
	case Scale:
		return sh.ScaleX
	case StrokeWidth:
		return sh.StrokeWidth
	case FontSize:
		if t := sh.TextBody(); t != nil {
			return t.FontSize
		}
	}
	return 0
}

// edit runs fn on the selected object and repaints its surface. It reports
// false when nothing is selected or the kind does not offer c.
func (p *Panel) edit(c Control, fn func(*shape.Shape)) bool {
	s, sh := p.sel.Object()
	if sh == nil {
		return false
	}
	if c != "" && !Offers(sh.Kind(), c) {
		return false
	}
	fn(sh)
	s.Repaint()
	return true
}

// SetOpacity sets the object's opacity.
func (p *Panel) SetOpacity(v float64) bool {
	v = Clamp(Opacity, v)
	return p.edit(Opacity, func(sh *shape.Shape) { sh.Opacity = v })
}

// SetAngle sets the rotation in degrees.
func (p *Panel) SetAngle(v float64) bool {
	v = Clamp(Angle, v)
	return p.edit(Angle, func(sh *shape.Shape) { sh.Angle = v })
}

// SetScale applies a uniform scale to both axes.
func (p *Panel) SetScale(v float64) bool {
	v = Clamp(Scale, v)
	return p.edit(Scale, func(sh *shape.Shape) {
		sh.ScaleX = v
		sh.ScaleY = v
	})
}

// SetFill sets the fill colour.
func (p *Panel) SetFill(c color.RGBA) bool {
	return p.edit(Fill, func(sh *shape.Shape) { sh.Fill = c })
}

// SetStroke sets the stroke colour.
func (p *Panel) SetStroke(c color.RGBA) bool {
	return p.edit(Stroke, func(sh *shape.Shape) { sh.Stroke = c })
}

// SetStrokeWidth sets the outline width.
func (p *Panel) SetStrokeWidth(v float64) bool {
	v = Clamp(StrokeWidth, v)
	return p.edit(StrokeWidth, func(sh *shape.Shape) { sh.StrokeWidth = v })
}

// SetFontSize sets the text size.
func (p *Panel) SetFontSize(v float64) bool {
	v = Clamp(FontSize, v)
	return p.edit(FontSize, func(sh *shape.Shape) { sh.TextBody().FontSize = v })
}

// SetText replaces the text content and the mirrored buffer.
func (p *Panel) SetText(content string) bool {
	ok := p.edit(Content, func(sh *shape.Shape) { sh.TextBody().Content = content })
	if ok {
		p.sel.SetText(content)
	}
	return ok
}

// BringToFront raises the object to the top of its canvas.
func (p *Panel) BringToFront() bool {
	return p.reorder((*canvas.Surface).BringToFront)
}

// SendToBack lowers the object to the bottom of its canvas.
func (p *Panel) SendToBack() bool {
	return p.reorder((*canvas.Surface).SendToBack)
}

func (p *Panel) reorder(fn func(*canvas.Surface, uuid.UUID) bool) bool {
	s, sh := p.sel.Object()
	if sh == nil {
		return false
	}
	fn(s, sh.ID)
	s.Repaint()
	return true
}

// Delete removes the object and clears the selection.
func (p *Panel) Delete() bool {
	s, sh := p.sel.Object()
	if sh == nil {
		return false
	}
	s.Remove(sh.ID)
	p.sel.Forget(s.ID())
	s.Repaint()
	return true
}

// Apply parses raw for control c and applies it. A missing selection or a
// control the kind does not offer is a silent no-op reported as false.
func (p *Panel) Apply(c Control, raw string) (bool, error) {
	switch c {
	case Fill, Stroke:
		col, err := theme.ParseColor(raw)
		if err != nil {
			return false, err
		}
		if c == Fill {
			return p.SetFill(col), nil
		}
		return p.SetStroke(col), nil
	case Content:
		return p.SetText(raw), nil
	}
	if !c.Numeric() {
		return false, fmt.Errorf("unknown control %q", c)
	}
	v, err := parseNumber(c, raw)
	if err != nil {
		return false, err
	}
	switch c {
	case Opacity:
		return p.SetOpacity(v), nil
	case Angle:
		return p.SetAngle(v), nil
	case Scale:
		return p.SetScale(v), nil
	case StrokeWidth:
		return p.SetStrokeWidth(v), nil
	case FontSize:
		return p.SetFontSize(v), nil
	}
	return false, nil
}

// parseNumber reads plain numbers as well as labels such as "70%", "45°"
// and "12px".
func parseNumber(c Control, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	percent := strings.HasSuffix(s, "%")
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSuffix(s, "°")
	s = strings.TrimSuffix(s, "px")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid value %q", c, raw)
	}
	if percent {
		v /= 100
	}
	return v, nil
}
