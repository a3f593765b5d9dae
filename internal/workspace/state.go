package workspace

import (
	"image"
	"image/draw"

	"github.com/example/gridsketch/internal/canvas"
	"github.com/example/gridsketch/internal/layout"
	"github.com/example/gridsketch/internal/notify"
	"github.com/example/gridsketch/internal/panel"
	"github.com/example/gridsketch/internal/render"
	"github.com/example/gridsketch/internal/selection"
	"github.com/example/gridsketch/internal/shape"
	"github.com/example/gridsketch/internal/theme"
)

// ShapeState is a read-only summary of one object.
type ShapeState struct {
	ID       string     `json:"id"`
	Kind     shape.Kind `json:"kind"`
	Left     float64    `json:"left"`
	Top      float64    `json:"top"`
	Width    float64    `json:"width"`
	Height   float64    `json:"height"`
	Opacity  float64    `json:"opacity"`
	Angle    float64    `json:"angle"`
	Scale    float64    `json:"scale"`
	Text     string     `json:"text,omitempty"`
	Selected bool       `json:"selected,omitempty"`
}

// CanvasState summarizes one mounted canvas.
type CanvasState struct {
	ID          canvas.ID    `json:"id"`
	Number      int          `json:"number"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	Background  string       `json:"background"`
	Highlighted bool         `json:"highlighted,omitempty"`
	Shapes      []ShapeState `json:"shapes"`
}

// SelectionState identifies the selected object.
type SelectionState struct {
	Canvas canvas.ID  `json:"canvas"`
	Shape  string     `json:"shape"`
	Kind   shape.Kind `json:"kind"`
	Text   string     `json:"text,omitempty"`
}

// State is a snapshot of the whole workspace.
type State struct {
	Mode      layout.Mode     `json:"mode"`
	Canvases  []CanvasState   `json:"canvases"`
	Selection *SelectionState `json:"selection,omitempty"`
	Tab       selection.Tab   `json:"tab"`
	Toast     *notify.Message `json:"toast,omitempty"`
}

// State returns a snapshot for display.
func (w *Workspace) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	st := State{Mode: w.mode, Tab: w.sel.Tab()}
	ref, selected := w.sel.Current()
	for _, s := range w.slots {
		if s == nil {
			continue
		}
		width, height := s.Size()
		cs := CanvasState{
			ID:          s.ID(),
			Number:      int(s.ID()) + 1,
			Width:       width,
			Height:      height,
			Background:  panel.Hex(s.Background()),
			Highlighted: w.router.Highlighted(s.ID()),
			Shapes:      []ShapeState{},
		}
		for _, sh := range s.Shapes() {
			sw, shh := sh.Size()
			ss := ShapeState{
				ID:       sh.ID.String(),
				Kind:     sh.Kind(),
				Left:     sh.Left,
				Top:      sh.Top,
				Width:    sw,
				Height:   shh,
				Opacity:  sh.Opacity,
				Angle:    sh.Angle,
				Scale:    sh.ScaleX,
				Selected: selected && ref.Canvas == s.ID() && ref.Shape == sh.ID,
			}
			if t := sh.TextBody(); t != nil {
				ss.Text = t.Content
			}
			cs.Shapes = append(cs.Shapes, ss)
		}
		st.Canvases = append(st.Canvases, cs)
	}
	if _, sh := w.sel.Object(); sh != nil {
		st.Selection = &SelectionState{Canvas: ref.Canvas, Shape: ref.Shape.String(), Kind: sh.Kind(), Text: w.sel.Text()}
	}
	if msg, ok := w.notifier.Last(); ok {
		st.Toast = &msg
	}
	return st
}

// Visible returns the mounted canvas ids in slot order.
func (w *Workspace) Visible() []canvas.ID {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []canvas.ID
	for _, s := range w.slots {
		if s != nil {
			out = append(out, s.ID())
		}
	}
	return out
}

// Raster returns the last painted image of canvas id. The image is never
// modified after it is returned.
func (w *Workspace) Raster(id canvas.ID) (*image.RGBA, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := w.surface(id)
	if s == nil {
		return nil, false
	}
	return s.Raster(), true
}

// Frame returns the raster of canvas id with the editing overlays drawn
// on top: the drop-target tint and the selection box.
func (w *Workspace) Frame(id canvas.ID, th *theme.Theme) (*image.RGBA, bool) {
	if th == nil {
		th = theme.Default()
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	s := w.surface(id)
	if s == nil {
		return nil, false
	}
	src := s.Raster()
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	if w.router.Highlighted(id) {
		render.DropTarget(dst, th.DropTarget)
	}
	if sh := s.Active(); sh != nil {
		render.Selection(dst, sh, th.SelectionLine, th.SelectionHandle)
	}
	return dst, true
}
