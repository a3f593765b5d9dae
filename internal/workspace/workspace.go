// Package workspace owns the canvas grid and serializes every edit made by
// the window, console and HTTP hosts.
package workspace

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/example/gridsketch/internal/canvas"
	"github.com/example/gridsketch/internal/dnd"
	"github.com/example/gridsketch/internal/export"
	"github.com/example/gridsketch/internal/layout"
	"github.com/example/gridsketch/internal/notify"
	"github.com/example/gridsketch/internal/panel"
	"github.com/example/gridsketch/internal/selection"
	"github.com/example/gridsketch/internal/shape"
)

// Workspace holds up to layout.Slots surfaces. All exported methods are
// safe for concurrent use.
type Workspace struct {
	mu    sync.Mutex
	mode  layout.Mode
	slots [layout.Slots]*canvas.Surface

	background color.RGBA
	seed       bool
	rng        *rand.Rand

	sel      *selection.Coordinator
	panel    *panel.Panel
	router   *dnd.Router
	exporter *export.Exporter
	notifier *notify.Notifier

	ctx      context.Context
	cancel   context.CancelFunc
	onChange []func()

	routerOpts []dnd.Option
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithMode selects the initial layout.
func WithMode(m layout.Mode) Option { return func(w *Workspace) { w.mode = m } }

// WithBackground sets the canvas background colour.
func WithBackground(c color.RGBA) Option { return func(w *Workspace) { w.background = c } }

// WithSeed adds the sample shapes to every canvas on (re)initialization.
func WithSeed(enabled bool) Option { return func(w *Workspace) { w.seed = enabled } }

// WithRand sets the random source for quick-add and dropped text.
func WithRand(r *rand.Rand) Option {
	return func(w *Workspace) {
		if r != nil {
			w.rng = r
		}
	}
}

// WithScheduler replaces the timer used for the drop pulse.
func WithScheduler(s dnd.Scheduler) Option {
	return func(w *Workspace) { w.routerOpts = append(w.routerOpts, dnd.WithScheduler(s)) }
}

// WithNotifier reports drops, saves and copies through n.
func WithNotifier(n *notify.Notifier) Option { return func(w *Workspace) { w.notifier = n } }

// WithExporter replaces the default PNG exporter.
func WithExporter(e *export.Exporter) Option { return func(w *Workspace) { w.exporter = e } }

// New builds a workspace and mounts every visible slot.
func New(opts ...Option) *Workspace {
	w := &Workspace{
		mode:       layout.DefaultMode,
		background: canvas.DefaultBackground,
	}
	for _, o := range opts {
		o(w)
	}
	if _, ok := layout.Lookup(w.mode); !ok {
		w.mode = layout.DefaultMode
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 1))
	}
	if w.notifier == nil {
		w.notifier = notify.New(notify.DefaultPreferences())
	}
	if w.exporter == nil {
		w.exporter = export.New(export.WithNotifier(w.notifier))
	}
	w.ctx, w.cancel = context.WithCancel(context.Background())
	w.sel = selection.New(w.surface)
	w.panel = panel.New(w.sel)
	ropts := append([]dnd.Option{
		dnd.WithRand(w.rng),
		dnd.WithPlaced(func(_ canvas.ID, sh *shape.Shape) { w.notifier.Place(sh.Kind().Label()) }),
		dnd.WithChanged(func(canvas.ID) { w.changed() }),
	}, w.routerOpts...)
	w.router = dnd.NewRouter(&w.mu, w.surface, w.sel, ropts...)
	w.mountAll()
	return w
}

// OnChange registers fn to run after every mutation. fn runs with the
// workspace locked and must not call back into it.
func (w *Workspace) OnChange(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if fn != nil {
		w.onChange = append(w.onChange, fn)
	}
}

func (w *Workspace) changed() {
	for _, fn := range w.onChange {
		fn()
	}
}

// surface resolves a slot. Callers hold the lock.
func (w *Workspace) surface(id canvas.ID) *canvas.Surface {
	if id < 0 || int(id) >= layout.Slots {
		return nil
	}
	return w.slots[id]
}

// Notifier returns the workspace notifier.
func (w *Workspace) Notifier() *notify.Notifier { return w.notifier }

// Mode returns the active layout.
func (w *Workspace) Mode() layout.Mode {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mode
}

// SetMode switches layout. Every surface is torn down and rebuilt at the
// new size; contents are not carried over.
func (w *Workspace) SetMode(m layout.Mode) error {
	if _, ok := layout.Lookup(m); !ok {
		return fmt.Errorf("unknown layout mode %q", m)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for slot := range w.slots {
		w.unmount(slot)
	}
	w.router.ResetHighlights()
	w.mode = m
	w.mountAll()
	log.Printf("layout: switched to %s", m)
	w.changed()
	return nil
}

func (w *Workspace) mountAll() {
	for slot := range w.slots {
		w.mount(slot)
	}
}

// Mount creates the surface for slot. Slots outside the grid or hidden by
// the layout are skipped silently.
func (w *Workspace) Mount(slot int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	ok := w.mount(slot)
	if ok {
		w.changed()
	}
	return ok
}

func (w *Workspace) mount(slot int) bool {
	size, ok := layout.SlotSize(w.mode, slot)
	if !ok {
		return false
	}
	if w.slots[slot] != nil {
		return true
	}
	s := canvas.New(canvas.ID(slot), size.Width, size.Height,
		canvas.WithBackground(w.background), canvas.WithSelection(true))
	w.sel.Attach(s)
	if w.seed {
		seedSurface(s)
	}
	s.Repaint()
	w.slots[slot] = s
	return true
}

// Unmount disposes the surface in slot, if any.
func (w *Workspace) Unmount(slot int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.unmount(slot) {
		w.changed()
	}
}

func (w *Workspace) unmount(slot int) bool {
	if slot < 0 || slot >= layout.Slots || w.slots[slot] == nil {
		return false
	}
	s := w.slots[slot]
	w.slots[slot] = nil
	s.Dispose()
	w.sel.Forget(s.ID())
	w.router.DragLeave(s.ID())
	return true
}

var (
	seedRectFill   = color.RGBA{0xff, 0x6b, 0x6b, 0xff}
	seedCircleFill = color.RGBA{0x4e, 0xcd, 0xc4, 0xff}
)

// SeedText is the caption of the sample text object.
const SeedText = "Hello Fabric.js!"

func seedSurface(s *canvas.Surface) {
	rect := shape.NewRect(0, 0, 100, 100, seedRectFill)
	circle := shape.NewCircle(0, 0, 50, seedCircleFill)
	text := shape.NewText(SeedText, 0, 0, shape.DefaultFontSize)
	s.Add(rect, circle, text)
	for _, sh := range []*shape.Shape{rect, circle, text} {
		s.CenterObject(sh)
	}
}

// Wait blocks until pending file decodes have been applied.
func (w *Workspace) Wait() { w.router.Wait() }

// Close stops accepting background results and waits for stragglers.
func (w *Workspace) Close() {
	w.cancel()
	w.router.Wait()
}
