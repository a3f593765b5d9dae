package workspace

import (
	"fmt"
	"math"

	"github.com/example/gridsketch/internal/canvas"
	"github.com/example/gridsketch/internal/clipboard"
	"github.com/example/gridsketch/internal/dnd"
	"github.com/example/gridsketch/internal/export"
	"github.com/example/gridsketch/internal/panel"
	"github.com/example/gridsketch/internal/selection"
	"github.com/example/gridsketch/internal/shape"
)

var readClipboard = clipboard.Read

// locked runs fn under the lock and fires change hooks when it reports a
// change.
func (w *Workspace) locked(fn func() bool) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	ok := fn()
	if ok {
		w.changed()
	}
	return ok
}

// DragEnter highlights canvas id as a drop target.
func (w *Workspace) DragEnter(id canvas.ID) bool {
	return w.locked(func() bool {
		if w.surface(id) == nil {
			return false
		}
		w.router.DragEnter(id)
		return true
	})
}

// DragOver keeps canvas id highlighted.
func (w *Workspace) DragOver(id canvas.ID) bool {
	return w.locked(func() bool {
		if w.surface(id) == nil {
			return false
		}
		w.router.DragOver(id)
		return true
	})
}

// DragLeave clears the highlight on canvas id.
func (w *Workspace) DragLeave(id canvas.ID) bool {
	return w.locked(func() bool {
		if !w.router.Highlighted(id) {
			return false
		}
		w.router.DragLeave(id)
		return true
	})
}

// DropTag drops a shape-kind tag at canvas coordinates (x, y).
func (w *Workspace) DropTag(id canvas.ID, tag string, x, y float64) bool {
	return w.locked(func() bool {
		_, ok := w.router.DropTag(id, tag, x, y)
		if !ok {
			w.router.DragLeave(id)
		}
		return ok
	})
}

// DropFiles queues external files for decoding onto canvas id.
func (w *Workspace) DropFiles(id canvas.ID, files ...dnd.File) {
	w.locked(func() bool {
		w.router.DropFiles(w.ctx, id, files...)
		return true
	})
}

// Paste inserts the clipboard image or text into canvas id.
func (w *Workspace) Paste(id canvas.ID) error {
	content, err := readClipboard()
	if err != nil {
		return err
	}
	w.locked(func() bool {
		s := w.surface(id)
		if s == nil {
			return false
		}
		if content.Image != nil {
			dnd.PlaceImage(s, content.Image)
		} else {
			dnd.PlaceText(s, content.Text, w.rng)
		}
		s.Repaint()
		return true
	})
	return nil
}

// Click selects the top-most shape under (x, y) on canvas id. Clicking
// empty space clears the selection on every canvas.
func (w *Workspace) Click(id canvas.ID, x, y float64) bool {
	return w.locked(func() bool {
		s := w.surface(id)
		if s == nil {
			return false
		}
		if sh := s.ShapeAt(x, y); sh != nil {
			return w.sel.Select(s, sh.ID)
		}
		w.sel.Clear()
		return true
	})
}

// Deselect clears the selection.
func (w *Workspace) Deselect() bool {
	return w.locked(func() bool {
		_, had := w.sel.Current()
		w.sel.Clear()
		return had
	})
}

// Selection returns the selected reference.
func (w *Workspace) Selection() (selection.Ref, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sel.Current()
}

// Move drags the selected object by (dx, dy).
func (w *Workspace) Move(dx, dy float64) bool {
	return w.locked(func() bool {
		s, sh := w.sel.Object()
		if sh == nil {
			return false
		}
		sh.MoveBy(dx, dy)
		s.Repaint()
		return true
	})
}

// Panel returns the property panel view for the selection.
func (w *Workspace) Panel() panel.View {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.panel.View()
}

// Apply sets one panel control on the selected object.
func (w *Workspace) Apply(c panel.Control, raw string) (bool, error) {
	var (
		ok  bool
		err error
	)
	w.locked(func() bool {
		ok, err = w.panel.Apply(c, raw)
		return ok
	})
	return ok, err
}

// BringToFront raises the selected object.
func (w *Workspace) BringToFront() bool { return w.locked(w.panel.BringToFront) }

// SendToBack lowers the selected object.
func (w *Workspace) SendToBack() bool { return w.locked(w.panel.SendToBack) }

// Delete removes the selected object.
func (w *Workspace) Delete() bool { return w.locked(w.panel.Delete) }

// SetTab switches the side panel page.
func (w *Workspace) SetTab(t selection.Tab) {
	w.locked(func() bool {
		w.sel.SetTab(t)
		return true
	})
}

// Clear empties canvas id and restores its background.
func (w *Workspace) Clear(id canvas.ID) bool {
	return w.locked(func() bool {
		s := w.surface(id)
		if s == nil {
			return false
		}
		s.Clear(w.background)
		s.Repaint()
		return true
	})
}

// Quick-add defaults.
const (
	QuickRectSize     = 80
	QuickCircleRadius = 40
	QuickTextSize     = 20
	QuickText         = "New Text"
)

// QuickAdd places a rectangle, circle or text at a random position with a
// random fill.
func (w *Workspace) QuickAdd(id canvas.ID, kind shape.Kind) (*shape.Shape, error) {
	var (
		sh  *shape.Shape
		err error
	)
	w.locked(func() bool {
		s := w.surface(id)
		if s == nil {
			err = fmt.Errorf("canvas %d is not visible", int(id)+1)
			return false
		}
		fill := shape.RandomFill(w.rng)
		switch kind {
		case shape.KindRectangle:
			sh = shape.NewRect(0, 0, QuickRectSize, QuickRectSize, fill)
		case shape.KindCircle:
			sh = shape.NewCircle(0, 0, QuickCircleRadius, fill)
		case shape.KindText:
			sh = shape.NewText(QuickText, 0, 0, QuickTextSize)
		default:
			err = fmt.Errorf("quick add supports rectangle, circle and text, not %q", kind)
			return false
		}
		cw, ch := s.Size()
		sw, shh := sh.Size()
		sh.Left = math.Floor(w.rng.Float64() * math.Max(0, float64(cw)-sw))
		sh.Top = math.Floor(w.rng.Float64() * math.Max(0, float64(ch)-shh))
		s.Add(sh)
		s.Repaint()
		return true
	})
	return sh, err
}

// PNG returns the exported image of canvas id and its download name.
func (w *Workspace) PNG(id canvas.ID) ([]byte, string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := w.surface(id)
	if s == nil {
		return nil, "", fmt.Errorf("canvas %d is not visible", int(id)+1)
	}
	data, err := w.exporter.PNG(s)
	if err != nil {
		return nil, "", err
	}
	return data, export.Filename(id), nil
}

// Save writes canvas id to path, or to the export directory when empty.
func (w *Workspace) Save(id canvas.ID, path string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := w.surface(id)
	if s == nil {
		return "", fmt.Errorf("canvas %d is not visible", int(id)+1)
	}
	return w.exporter.SaveFile(s, path)
}

// Copy places canvas id on the clipboard.
func (w *Workspace) Copy(id canvas.ID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := w.surface(id)
	if s == nil {
		return fmt.Errorf("canvas %d is not visible", int(id)+1)
	}
	return w.exporter.Copy(s)
}
