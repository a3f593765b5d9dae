package workspace

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/example/gridsketch/internal/canvas"
	"github.com/example/gridsketch/internal/clipboard"
	"github.com/example/gridsketch/internal/dnd"
	"github.com/example/gridsketch/internal/layout"
	"github.com/example/gridsketch/internal/panel"
	"github.com/example/gridsketch/internal/selection"
	"github.com/example/gridsketch/internal/shape"
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

func newWorkspace(t *testing.T, opts ...Option) (*Workspace, *timers) {
	t.Helper()
	tm := &timers{}
	base := []Option{WithScheduler(tm.schedule), WithRand(rand.New(rand.NewPCG(3, 4)))}
	w := New(append(base, opts...)...)
	t.Cleanup(w.Close)
	return w, tm
}

func TestLayoutMountsVisibleSlots(t *testing.T) {
	w, _ := newWorkspace(t)
	st := w.State()
	if st.Mode != layout.Mode2x2 || len(st.Canvases) != 5 {
		t.Fatalf("mode %s canvases %d", st.Mode, len(st.Canvases))
	}
	if st.Canvases[0].Width != 800 || st.Canvases[1].Width != 400 {
		t.Fatalf("sizes = %+v", st.Canvases)
	}
	if err := w.SetMode(layout.Mode1x2); err != nil {
		t.Fatal(err)
	}
	st = w.State()
	if len(st.Canvases) != 3 {
		t.Fatalf("1x2 canvases = %d", len(st.Canvases))
	}
	if st.Canvases[1].Width != 600 || st.Canvases[1].Height != 450 {
		t.Fatalf("aux size = %dx%d", st.Canvases[1].Width, st.Canvases[1].Height)
	}
	if w.Mount(4) {
		t.Fatal("hidden slot mounted")
	}
	if err := w.SetMode("4x4"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestSetModeDiscardsContent(t *testing.T) {
	w, _ := newWorkspace(t)
	w.DropTag(0, "rectangle", 100, 100)
	w.SetMode(layout.Mode1x3)
	st := w.State()
	if len(st.Canvases[0].Shapes) != 0 {
		t.Fatal("content survived a layout switch")
	}
	if st.Selection != nil {
		t.Fatal("selection survived a layout switch")
	}
	if st.Canvases[0].Width != 900 {
		t.Fatalf("main width = %d", st.Canvases[0].Width)
	}
}

func TestSeedShapes(t *testing.T) {
	w, _ := newWorkspace(t, WithSeed(true))
	st := w.State()
	for _, c := range st.Canvases {
		if len(c.Shapes) != 3 {
			t.Fatalf("canvas %d has %d seed shapes", c.Number, len(c.Shapes))
		}
		if c.Shapes[2].Text != SeedText {
			t.Fatalf("seed text = %q", c.Shapes[2].Text)
		}
	}
}

func TestDropSelectsAndNotifies(t *testing.T) {
	w, tm := newWorkspace(t)
	if !w.DropTag(1, "triangle", 50, 60) {
		t.Fatal("drop failed")
	}
	st := w.State()
	if st.Selection == nil || st.Selection.Canvas != 1 || st.Selection.Kind != shape.KindTriangle {
		t.Fatalf("selection = %+v", st.Selection)
	}
	if st.Tab != selection.TabProperties {
		t.Fatalf("tab = %s", st.Tab)
	}
	if st.Toast == nil || st.Toast.Text != "Triangle added to canvas!" {
		t.Fatalf("toast = %+v", st.Toast)
	}
	if got := st.Canvases[1].Shapes[0].Opacity; got != dnd.PulseOpacity {
		t.Fatalf("opacity = %v", got)
	}
	tm.fire()
	if got := w.State().Canvases[1].Shapes[0].Opacity; got != 1 {
		t.Fatalf("opacity after pulse = %v", got)
	}
	if w.DropTag(1, "star", 1, 1) {
		t.Fatal("unknown tag accepted")
	}
}

func TestSingleSelectionAcrossCanvases(t *testing.T) {
	w, _ := newWorkspace(t)
	w.DropTag(0, "rectangle", 100, 100)
	w.DropTag(2, "circle", 100, 100)
	st := w.State()
	count := 0
	for _, c := range st.Canvases {
		for _, s := range c.Shapes {
			if s.Selected {
				count++
			}
		}
	}
	if count != 1 || st.Selection.Canvas != 2 {
		t.Fatalf("selected = %d, selection = %+v", count, st.Selection)
	}
}

func TestClickHitTest(t *testing.T) {
	w, _ := newWorkspace(t)
	w.DropTag(0, "rectangle", 100, 100)
	w.Deselect()
	if !w.Click(0, 100, 100) {
		t.Fatal("click on shape failed")
	}
	if _, ok := w.Selection(); !ok {
		t.Fatal("click did not select")
	}
	w.Click(0, 700, 500)
	if _, ok := w.Selection(); ok {
		t.Fatal("click on empty space kept the selection")
	}
}

func TestPanelMutations(t *testing.T) {
	w, _ := newWorkspace(t)
	if v := w.Panel(); !v.Empty {
		t.Fatal("panel should be empty")
	}
	w.DropTag(0, "text", 200, 200)
	if ok, err := w.Apply(panel.Content, "hello"); !ok || err != nil {
		t.Fatalf("Apply text: %v %v", ok, err)
	}
	if ok, _ := w.Apply(panel.Angle, "45"); !ok {
		t.Fatal("Apply angle failed")
	}
	st := w.State()
	sh := st.Canvases[0].Shapes[0]
	if sh.Text != "hello" || sh.Angle != 45 {
		t.Fatalf("shape = %+v", sh)
	}
	if ok, _ := w.Apply(panel.Stroke, "red"); ok {
		t.Fatal("text accepted a stroke colour")
	}
	if !w.Delete() {
		t.Fatal("delete failed")
	}
	if w.Delete() {
		t.Fatal("second delete should be a no-op")
	}
	if len(w.State().Canvases[0].Shapes) != 0 {
		t.Fatal("shape not deleted")
	}
}

func TestMoveAndReorder(t *testing.T) {
	w, _ := newWorkspace(t)
	w.DropTag(0, "rectangle", 100, 100)
	w.DropTag(0, "circle", 100, 100)
	w.SendToBack()
	st := w.State()
	if st.Canvases[0].Shapes[0].Kind != shape.KindCircle {
		t.Fatal("circle should be at the back")
	}
	before := st.Canvases[0].Shapes[0].Left
	w.Move(10, 0)
	if got := w.State().Canvases[0].Shapes[0].Left; got != before+10 {
		t.Fatalf("left = %v, want %v", got, before+10)
	}
	w.BringToFront()
	if w.State().Canvases[0].Shapes[1].Kind != shape.KindCircle {
		t.Fatal("circle should be on top")
	}
}

func TestClearCanvas(t *testing.T) {
	w, _ := newWorkspace(t)
	w.DropTag(3, "polygon", 100, 100)
	w.Clear(3)
	st := w.State()
	if len(st.Canvases[3].Shapes) != 0 || st.Selection != nil {
		t.Fatalf("after clear: %+v", st)
	}
	if w.Clear(9) {
		t.Fatal("clear on missing canvas")
	}
}

func TestQuickAdd(t *testing.T) {
	w, _ := newWorkspace(t)
	for _, k := range []shape.Kind{shape.KindRectangle, shape.KindCircle, shape.KindText} {
		sh, err := w.QuickAdd(1, k)
		if err != nil {
			t.Fatalf("QuickAdd(%s): %v", k, err)
		}
		b := sh.Bounds()
		if b.MinX < 0 || b.MinY < 0 || b.MaxX > 400 || b.MaxY > 300 {
			t.Fatalf("%s outside canvas: %+v", k, b)
		}
	}
	if _, err := w.QuickAdd(1, shape.KindLine); err == nil {
		t.Fatal("expected error for line")
	}
}

func TestDropFilesAndWait(t *testing.T) {
	w, _ := newWorkspace(t)
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	var buf bytes.Buffer
	png.Encode(&buf, img)
	w.DropFiles(1, dnd.FromBytes("a.png", "", buf.Bytes()), dnd.FromBytes("b.txt", "", []byte("note")))
	w.Wait()
	shapes := w.State().Canvases[1].Shapes
	if len(shapes) != 2 {
		t.Fatalf("shapes = %d", len(shapes))
	}
}

func TestPaste(t *testing.T) {
	w, _ := newWorkspace(t)
	old := readClipboard
	t.Cleanup(func() { readClipboard = old })

	readClipboard = func() (clipboard.Content, error) { return clipboard.Content{Text: "pasted"}, nil }
	if err := w.Paste(0); err != nil {
		t.Fatal(err)
	}
	if got := w.State().Canvases[0].Shapes[0].Text; got != "pasted" {
		t.Fatalf("text = %q", got)
	}
	readClipboard = func() (clipboard.Content, error) { return clipboard.Content{}, errors.New("empty") }
	if err := w.Paste(0); err == nil {
		t.Fatal("expected error")
	}
}

func TestFrameOverlays(t *testing.T) {
	w, _ := newWorkspace(t)
	w.DragEnter(1)
	frame, ok := w.Frame(1, nil)
	if !ok {
		t.Fatal("no frame")
	}
	raster, _ := w.Raster(1)
	if frame.RGBAAt(10, 10) == raster.RGBAAt(10, 10) {
		t.Fatal("drop highlight not drawn")
	}
	w.DragLeave(1)
	frame, _ = w.Frame(1, nil)
	if frame.RGBAAt(10, 10) != raster.RGBAAt(10, 10) {
		t.Fatal("highlight not cleared")
	}
	if _, ok := w.Frame(canvas.ID(7), nil); ok {
		t.Fatal("frame for missing canvas")
	}
}

func TestExportPNG(t *testing.T) {
	w, _ := newWorkspace(t, WithBackground(color.RGBA{1, 2, 3, 255}))
	data, name, err := w.PNG(2)
	if err != nil {
		t.Fatal(err)
	}
	if name != "canvas-3.png" {
		t.Fatalf("name = %q", name)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, _ := img.At(0, 0).RGBA()
	if r>>8 != 1 || g>>8 != 2 || b>>8 != 3 {
		t.Fatalf("background = %d,%d,%d", r>>8, g>>8, b>>8)
	}
	path, err := w.Save(0, t.TempDir()+"/out.png")
	if err != nil || path == "" {
		t.Fatalf("Save: %q %v", path, err)
	}
}

func TestChangeHooks(t *testing.T) {
	w, _ := newWorkspace(t)
	calls := 0
	w.OnChange(func() { calls++ })
	w.DropTag(0, "line", 100, 100)
	w.Deselect()
	w.Deselect()
	if calls != 2 {
		t.Fatalf("change hooks = %d", calls)
	}
}

func TestLayoutSwitchDiscardsPendingDecode(t *testing.T) {
	w, _ := newWorkspace(t)
	gate := make(chan struct{})
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	var buf bytes.Buffer
	png.Encode(&buf, img)
	held := dnd.File{Name: "held.png", Type: "image/png", Open: func() (io.ReadCloser, error) {
		<-gate
		return io.NopCloser(bytes.NewReader(buf.Bytes())), nil
	}}
	w.DropFiles(1, held)
	if err := w.SetMode(layout.Mode1x2); err != nil {
		t.Fatal(err)
	}
	close(gate)
	w.Wait()
	if n := len(w.State().Canvases[1].Shapes); n != 0 {
		t.Fatalf("rebuilt canvas 2 has %d shapes", n)
	}
}

func TestOpacityEditSurvivesPulse(t *testing.T) {
	w, tm := newWorkspace(t)
	w.DropTag(0, "rectangle", 100, 100)
	if ok, err := w.Apply(panel.Opacity, "0.3"); !ok || err != nil {
		t.Fatalf("Apply opacity: %v %v", ok, err)
	}
	tm.fire()
	if got := w.State().Canvases[0].Shapes[0].Opacity; got != 0.3 {
		t.Fatalf("opacity = %v, want 0.3", got)
	}
}

func TestConcurrentFileDropsAndWait(t *testing.T) {
	w, _ := newWorkspace(t)
	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			w.DropFiles(0, dnd.FromBytes("a.txt", "text/plain", []byte("x")))
		}()
		go func() {
			defer wg.Done()
			w.Wait()
		}()
	}
	wg.Wait()
	w.Wait()
	if got := len(w.State().Canvases[0].Shapes); got != n {
		t.Fatalf("shapes = %d, want %d", got, n)
	}
}
