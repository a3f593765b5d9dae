package canvas

import (
	"image/color"
	"testing"

	"github.com/example/gridsketch/internal/shape"
)

func newRect(x float64) *shape.Shape {
	return shape.NewRect(x, 0, 10, 10, color.RGBA{255, 0, 0, 255})
}

func TestZOrderOperations(t *testing.T) {
	s := New(0, 100, 100)
	a, b, c := newRect(0), newRect(20), newRect(40)
	s.Add(a, b, c)
	if !s.BringToFront(a.ID) {
		t.Fatal("BringToFront failed")
	}
	if got := s.Shapes(); got[2] != a || got[0] != b || got[1] != c {
		t.Fatalf("after front: %v", ids(got))
	}
	if !s.SendToBack(c.ID) {
		t.Fatal("SendToBack failed")
	}
	if got := s.Shapes(); got[0] != c || got[1] != b || got[2] != a {
		t.Fatalf("after back: %v", ids(got))
	}
}

func ids(shapes []*shape.Shape) []string {
	out := make([]string, len(shapes))
	for i, s := range shapes {
		out[i] = s.ID.String()[:8]
	}
	return out
}

func TestSelectionEvents(t *testing.T) {
	s := New(1, 100, 100)
	var got []EventType
	s.OnSelection(func(ev Event) { got = append(got, ev.Type) })
	a, b := newRect(0), newRect(50)
	s.Add(a, b)
	s.SetActive(a.ID)
	s.SetActive(b.ID)
	s.DiscardActive()
	s.DiscardActive()
	want := []EventType{SelectionCreated, SelectionUpdated, SelectionCleared}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}
}

func TestSelectionDisabled(t *testing.T) {
	s := New(0, 10, 10, WithSelection(false))
	a := newRect(0)
	s.Add(a)
	if s.SetActive(a.ID) {
		t.Fatal("selection should be disabled")
	}
}

func TestRemoveActiveClearsSelection(t *testing.T) {
	s := New(0, 100, 100)
	cleared := false
	s.OnSelection(func(ev Event) {
		if ev.Type == SelectionCleared {
			cleared = true
		}
	})
	a := newRect(0)
	s.Add(a)
	s.SetActive(a.ID)
	if !s.Remove(a.ID) {
		t.Fatal("Remove failed")
	}
	if !cleared || s.Active() != nil || s.Len() != 0 {
		t.Fatalf("cleared=%v active=%v len=%d", cleared, s.Active(), s.Len())
	}
}

func TestShapeAtPicksTopMost(t *testing.T) {
	s := New(0, 100, 100)
	a, b := newRect(0), newRect(5)
	s.Add(a, b)
	if got := s.ShapeAt(7, 5); got != b {
		t.Fatalf("ShapeAt = %v", got)
	}
	if got := s.ShapeAt(90, 90); got != nil {
		t.Fatalf("expected empty area, got %v", got)
	}
}

func TestRepaintIsIdempotent(t *testing.T) {
	s := New(0, 40, 40)
	s.Add(newRect(0))
	first := s.Repaint()
	second := s.Repaint()
	if s.Repaints() != 2 {
		t.Fatalf("repaints = %d", s.Repaints())
	}
	for i := range first.Pix {
		if first.Pix[i] != second.Pix[i] {
			t.Fatalf("pixel byte %d differs", i)
		}
	}
}

func TestDisposeReleases(t *testing.T) {
	s := New(0, 40, 40)
	s.Add(newRect(0))
	s.Dispose()
	if !s.Disposed() || s.Len() != 0 || s.Repaint() != nil {
		t.Fatal("expected disposed surface to be empty and inert")
	}
	s.Add(newRect(0))
	if s.Len() != 0 {
		t.Fatal("disposed surface accepted a shape")
	}
}

func TestClearRestoresBackground(t *testing.T) {
	s := New(0, 40, 40, WithBackground(color.RGBA{1, 2, 3, 255}))
	s.Add(newRect(0))
	s.Clear(DefaultBackground)
	if s.Len() != 0 || s.Background() != DefaultBackground {
		t.Fatalf("len=%d bg=%v", s.Len(), s.Background())
	}
}
