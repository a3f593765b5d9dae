package selection

import (
	"testing"

	"github.com/example/gridsketch/internal/canvas"
	"github.com/example/gridsketch/internal/shape"
)

type fixture struct {
	surfaces map[canvas.ID]*canvas.Surface
	coord    *Coordinator
}

func newFixture(ids ...canvas.ID) *fixture {
	f := &fixture{surfaces: map[canvas.ID]*canvas.Surface{}}
	f.coord = New(func(id canvas.ID) *canvas.Surface { return f.surfaces[id] })
	for _, id := range ids {
		s := canvas.New(id, 200, 200)
		f.surfaces[id] = s
		f.coord.Attach(s)
	}
	return f
}

func (f *fixture) add(id canvas.ID, kind shape.Kind) *shape.Shape {
	sh, _ := shape.New(kind, 50, 50)
	f.surfaces[id].Add(sh)
	return sh
}

func TestSelectMirrorsText(t *testing.T) {
	f := newFixture(0)
	txt := f.add(0, shape.KindText)
	f.coord.Select(f.surfaces[0], txt.ID)
	ref, ok := f.coord.Current()
	if !ok || ref.Shape != txt.ID || ref.Canvas != 0 {
		t.Fatalf("current = %+v %v", ref, ok)
	}
	if f.coord.Text() != shape.DefaultText {
		t.Fatalf("text = %q", f.coord.Text())
	}
	if f.coord.Tab() != TabProperties {
		t.Fatalf("tab = %s", f.coord.Tab())
	}
}

func TestSelectionForcesPropertiesTab(t *testing.T) {
	f := newFixture(0)
	r := f.add(0, shape.KindRectangle)
	f.coord.SetTab(TabElements)
	f.coord.Select(f.surfaces[0], r.ID)
	if f.coord.Tab() != TabProperties {
		t.Fatalf("tab = %s", f.coord.Tab())
	}
	if f.coord.Text() != "" {
		t.Fatalf("non-text selection left text %q", f.coord.Text())
	}
}

func TestSelectingOtherCanvasDiscardsPrevious(t *testing.T) {
	f := newFixture(0, 1)
	a := f.add(0, shape.KindRectangle)
	b := f.add(1, shape.KindCircle)
	f.coord.Select(f.surfaces[0], a.ID)
	f.coord.Select(f.surfaces[1], b.ID)
	if f.surfaces[0].Active() != nil {
		t.Fatal("canvas 0 kept its active object")
	}
	ref, ok := f.coord.Current()
	if !ok || ref.Canvas != 1 || ref.Shape != b.ID {
		t.Fatalf("current = %+v %v", ref, ok)
	}
}

func TestClearedEventResets(t *testing.T) {
	f := newFixture(0)
	txt := f.add(0, shape.KindText)
	f.coord.Select(f.surfaces[0], txt.ID)
	f.surfaces[0].DiscardActive()
	if _, ok := f.coord.Current(); ok {
		t.Fatal("selection should be cleared")
	}
	if f.coord.Text() != "" {
		t.Fatalf("text buffer = %q", f.coord.Text())
	}
}

func TestObjectAfterTeardown(t *testing.T) {
	f := newFixture(0)
	r := f.add(0, shape.KindRectangle)
	f.coord.Select(f.surfaces[0], r.ID)
	f.surfaces[0].Dispose()
	delete(f.surfaces, 0)
	if s, sh := f.coord.Object(); s != nil || sh != nil {
		t.Fatalf("expected no object, got %v %v", s, sh)
	}
	f.coord.Forget(0)
	if _, ok := f.coord.Current(); ok {
		t.Fatal("Forget kept the selection")
	}
}

func TestClearDiscardsActive(t *testing.T) {
	f := newFixture(0)
	r := f.add(0, shape.KindRectangle)
	f.coord.Select(f.surfaces[0], r.ID)
	f.coord.Clear()
	if _, ok := f.coord.Current(); ok {
		t.Fatal("selection kept after Clear")
	}
	if f.surfaces[0].Active() != nil {
		t.Fatal("surface still has an active object")
	}
}
