package window

import (
	"context"
	"image"
	"sync"
	"testing"
	"time"

	"golang.org/x/mobile/event/key"

	"github.com/example/gridsketch/internal/layout"
	"github.com/example/gridsketch/internal/shape"
	"github.com/example/gridsketch/internal/theme"
	"github.com/example/gridsketch/internal/workspace"
)

type timers struct {
	mu  sync.Mutex
	fns []func()
}

func (t *timers) schedule(_ time.Duration, fn func()) {
	t.mu.Lock()
	t.fns = append(t.fns, fn)
	t.mu.Unlock()
}

func (t *timers) fire() {
	t.mu.Lock()
	fns := t.fns
	t.fns = nil
	t.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

var pulses = &timers{}

func newWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	ws := workspace.New(workspace.WithScheduler(pulses.schedule))
	t.Cleanup(ws.Close)
	return ws
}

func center(r image.Rectangle) image.Point {
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

func TestNaturalSize(t *testing.T) {
	w, h := naturalSize(layout.Mode2x2)
	if w != 1632+panelWidth || h != 624+paletteH+bottomHeight {
		t.Fatalf("natural size = %dx%d", w, h)
	}
}

func TestCellAtScaled(t *testing.T) {
	g := newGeometry(layout.Mode2x2, 816+panelWidth, 312+paletteH+bottomHeight)
	if g.zoom != 0.5 {
		t.Fatalf("zoom = %v", g.zoom)
	}
	slot, x, y, ok := g.cellAt(image.Pt(4+5, paletteH+4+5))
	if !ok || slot != 0 || x != 10 || y != 10 {
		t.Fatalf("cellAt = %d %v,%v %v", slot, x, y, ok)
	}
	if _, _, _, ok := g.cellAt(image.Pt(1, 1)); ok {
		t.Fatal("palette bar reported as a canvas")
	}
	if len(g.cells) != 5 {
		t.Fatalf("cells = %d", len(g.cells))
	}
}

func TestGeometryNeverEnlarges(t *testing.T) {
	g := newGeometry(layout.Mode1x2, 4000, 3000)
	if g.zoom != 1 {
		t.Fatalf("zoom = %v", g.zoom)
	}
	if len(g.cells) != 3 {
		t.Fatalf("cells = %d", len(g.cells))
	}
}

func TestPaletteDragAndDrop(t *testing.T) {
	ws := newWorkspace(t)
	ctl := newController(ws)
	w, h := naturalSize(ws.Mode())
	g := newGeometry(ws.Mode(), w, h)

	var circle paletteItem
	for _, it := range g.palette {
		if it.kind == shape.KindCircle {
			circle = it
		}
	}
	ctl.press(g, center(circle.rect))
	if ctl.dragTag != shape.KindCircle {
		t.Fatalf("drag tag = %q", ctl.dragTag)
	}
	target := g.cells[2].rect
	ctl.motion(g, center(target))
	if !ws.State().Canvases[2].Highlighted {
		t.Fatal("target not highlighted")
	}
	ctl.motion(g, center(g.cells[1].rect))
	st := ws.State()
	if st.Canvases[2].Highlighted || !st.Canvases[1].Highlighted {
		t.Fatal("highlight did not follow the pointer")
	}
	ctl.release(g, center(target))
	st = ws.State()
	if st.Canvases[1].Highlighted || st.Canvases[2].Highlighted {
		t.Fatal("highlight left after drop")
	}
	if len(st.Canvases[2].Shapes) != 1 || st.Selection == nil || st.Selection.Canvas != 2 {
		t.Fatalf("drop result = %+v", st)
	}
	if ctl.focus != 2 {
		t.Fatalf("focus = %d", ctl.focus)
	}
}

func TestDragOutsideCancels(t *testing.T) {
	ws := newWorkspace(t)
	ctl := newController(ws)
	g := newGeometry(ws.Mode(), 1872, 676)
	ctl.press(g, center(g.palette[0].rect))
	ctl.motion(g, center(g.cells[0].rect))
	ctl.release(g, center(g.panel))
	st := ws.State()
	if st.Canvases[0].Highlighted || len(st.Canvases[0].Shapes) != 0 {
		t.Fatalf("state = %+v", st.Canvases[0])
	}
}

func TestObjectDragMoves(t *testing.T) {
	ws := newWorkspace(t)
	ctl := newController(ws)
	g := newGeometry(ws.Mode(), 1872, 676)
	ws.DropTag(0, "rectangle", 200, 200)
	before := ws.State().Canvases[0].Shapes[0]

	c := g.cells[0].rect.Min
	ctl.press(g, c.Add(image.Pt(200, 200)))
	if !ctl.moving {
		t.Fatal("press on the object did not start a move")
	}
	ctl.motion(g, c.Add(image.Pt(230, 190)))
	ctl.release(g, c.Add(image.Pt(230, 190)))
	after := ws.State().Canvases[0].Shapes[0]
	if after.Left-before.Left != 30 || after.Top-before.Top != -10 {
		t.Fatalf("moved by %v,%v", after.Left-before.Left, after.Top-before.Top)
	}
	if ctl.moving {
		t.Fatal("still moving after release")
	}
}

func TestKeyShortcuts(t *testing.T) {
	ws := newWorkspace(t)
	ctl := newController(ws)

	if !ctl.key(KeyShortcut{Rune: 'R', Code: key.CodeR}) {
		t.Fatal("R not bound")
	}
	if n := len(ws.State().Canvases[0].Shapes); n != 1 {
		t.Fatalf("quick add shapes = %d", n)
	}

	ws.DropTag(0, "circle", 100, 100)
	pulses.fire()
	ctl.key(KeyShortcut{Rune: '-', Code: key.CodeHyphenMinus})
	if got := ws.State().Canvases[0].Shapes[1].Opacity; got != 0.9 {
		t.Fatalf("opacity = %v", got)
	}
	ctl.key(KeyShortcut{Rune: '+', Code: key.CodeEqualSign, Modifiers: key.ModShift})
	if got := ws.State().Canvases[0].Shapes[1].Opacity; got != 1 {
		t.Fatalf("opacity = %v", got)
	}
	ctl.key(KeyShortcut{Rune: -1, Code: key.CodeRightArrow, Modifiers: key.ModShift})
	ctl.key(KeyShortcut{Code: key.CodeEscape})
	if _, ok := ws.Selection(); ok {
		t.Fatal("escape did not deselect")
	}

	if !ctl.key(KeyShortcut{Rune: '2', Code: key.Code2, Modifiers: key.ModControl}) {
		t.Fatal("ctrl+2 not bound")
	}
	if ws.Mode() != layout.Mode1x2 {
		t.Fatalf("mode = %s", ws.Mode())
	}
	if ctl.key(KeyShortcut{Rune: 'z', Code: key.CodeZ}) {
		t.Fatal("z should be unbound")
	}
	ctl.key(KeyShortcut{Rune: 'q', Code: key.CodeQ})
	if !ctl.quit {
		t.Fatal("q did not quit")
	}
}

func TestComposeDrawsChrome(t *testing.T) {
	ws := newWorkspace(t)
	ws.DropTag(0, "rectangle", 100, 100)
	th := theme.Default()
	w, h := naturalSize(ws.Mode())
	ctl := newController(ws)
	st := paintState{geo: newGeometry(ws.Mode(), w, h), hints: ctl.labels()}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if !compose(context.Background(), dst, ws, th, st) {
		t.Fatal("compose reported cancellation")
	}
	if got := dst.RGBAAt(w-panelWidth+2, h-bottomHeight-2); got != th.PanelBackground {
		t.Fatalf("panel pixel = %v", got)
	}
	if got := dst.RGBAAt(w-1, 1); got != th.Gutter {
		t.Fatalf("palette bar pixel = %v", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if compose(ctx, dst, ws, th, st) {
		t.Fatal("cancelled compose reported success")
	}
}

func TestWrap(t *testing.T) {
	got := wrap("Select an object to edit its properties", 20)
	if len(got) != 2 || got[0] != "Select an object to" {
		t.Fatalf("wrap = %q", got)
	}
}
