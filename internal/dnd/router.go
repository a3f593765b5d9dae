// Package dnd routes drag-and-drop payloads onto canvases.
package dnd

import (
	"context"
	"image"
	"log"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/example/gridsketch/internal/canvas"
	"github.com/example/gridsketch/internal/selection"
	"github.com/example/gridsketch/internal/shape"
)

// PulseOpacity is the dimmed opacity shown right after a drop.
const PulseOpacity = 0.7

// PulseDuration is how long the drop pulse lasts.
const PulseDuration = 150 * time.Millisecond

// ImageFit is the fraction of the canvas a dropped image may occupy.
const ImageFit = 0.8

// Scheduler runs fn after d. The default uses time.AfterFunc.
type Scheduler func(d time.Duration, fn func())

func afterFunc(d time.Duration, fn func()) { time.AfterFunc(d, fn) }

// Router applies drops to surfaces. Every exported method except Wait must
// be called with the router's lock held; background work takes the lock
// itself before touching a surface.
type Router struct {
	mu       sync.Locker
	resolve  selection.Resolver
	sel      *selection.Coordinator
	schedule Scheduler
	rng      *rand.Rand
	placed   func(canvas.ID, *shape.Shape)
	changed  func(canvas.ID)

	highlight map[canvas.ID]bool
	pending   int
	idle      *sync.Cond
}

// Option configures a Router.
type Option func(*Router)

// WithScheduler replaces the timer used for the drop pulse.
func WithScheduler(s Scheduler) Option {
	return func(r *Router) {
		if s != nil {
			r.schedule = s
		}
	}
}

// WithRand sets the random source used to position dropped text.
func WithRand(rng *rand.Rand) Option {
	return func(r *Router) {
		if rng != nil {
			r.rng = rng
		}
	}
}

// WithPlaced registers a callback for successful shape-kind drops.
func WithPlaced(fn func(canvas.ID, *shape.Shape)) Option {
	return func(r *Router) { r.placed = fn }
}

// WithChanged registers a callback for background repaints: decoded files
// being inserted and pulses being restored. It runs with the lock held.
func WithChanged(fn func(canvas.ID)) Option {
	return func(r *Router) { r.changed = fn }
}

// NewRouter creates a router that guards surfaces with mu.
func NewRouter(mu sync.Locker, resolve selection.Resolver, sel *selection.Coordinator, opts ...Option) *Router {
	r := &Router{
		mu:        mu,
		resolve:   resolve,
		sel:       sel,
		schedule:  afterFunc,
		rng:       rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		highlight: map[canvas.ID]bool{},
	}
	r.idle = sync.NewCond(mu)
	for _, o := range opts {
		o(r)
	}
	return r
}

// DragEnter marks id as the highlighted drop target.
func (r *Router) DragEnter(id canvas.ID) { r.highlight[id] = true }

// DragOver keeps id highlighted.
func (r *Router) DragOver(id canvas.ID) { r.highlight[id] = true }

// DragLeave clears the highlight on id.
func (r *Router) DragLeave(id canvas.ID) { delete(r.highlight, id) }

// Highlighted reports whether id is currently a drop target.
func (r *Router) Highlighted(id canvas.ID) bool { return r.highlight[id] }

// ResetHighlights clears every drop target flag.
func (r *Router) ResetHighlights() { clear(r.highlight) }

// DropTag creates a shape of the tagged kind centred on (x, y), selects it
// and pulses it. Unknown tags and unmounted canvases are ignored.
func (r *Router) DropTag(id canvas.ID, tag string, x, y float64) (*shape.Shape, bool) {
	r.DragLeave(id)
	s := r.surface(id)
	if s == nil {
		return nil, false
	}
	kind, ok := shape.ParseKind(tag)
	if !ok {
		log.Printf("dnd: ignoring unknown tag %q", tag)
		return nil, false
	}
	sh, ok := shape.New(kind, x, y)
	if !ok {
		return nil, false
	}
	s.Add(sh)
	r.sel.Select(s, sh.ID)
	r.pulse(s, sh)
	if r.placed != nil {
		r.placed(id, sh)
	}
	return sh, true
}

// pulse dims sh and restores it after PulseDuration. An opacity set in the
// meantime is left alone.
func (r *Router) pulse(s *canvas.Surface, sh *shape.Shape) {
	restore := sh.Opacity
	sh.Opacity = PulseOpacity
	s.Repaint()
	r.schedule(PulseDuration, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if s.Disposed() || s.Find(sh.ID) == nil || sh.Opacity != PulseOpacity {
			return
		}
		sh.Opacity = restore
		s.Repaint()
		r.notifyChanged(s.ID())
	})
}

// DropFiles starts decoding each file in the background. Results are
// inserted in completion order into the surface that received the drop.
// When ctx is done or that surface has been replaced before a decode
// finishes the result is discarded.
func (r *Router) DropFiles(ctx context.Context, id canvas.ID, files ...File) {
	r.DragLeave(id)
	s := r.surface(id)
	if s == nil {
		return
	}
	for _, f := range files {
		r.pending++
		go func(f File) {
			defer r.done()
			r.load(ctx, s, f)
		}(f)
	}
}

func (r *Router) done() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending--
	if r.pending == 0 {
		r.idle.Broadcast()
	}
}

func (r *Router) load(ctx context.Context, s *canvas.Surface, f File) {
	cat, data, err := read(f)
	if err != nil {
		log.Printf("dnd: %v", err)
		return
	}
	var (
		img  image.Image
		text string
	)
	switch cat {
	case Picture:
		img, err = DecodeImage(data)
	case PlainText:
		text, err = DecodeText(data)
	default:
		log.Printf("dnd: ignoring %s", f.Name)
		return
	}
	if err != nil {
		log.Printf("dnd: %s: %v", f.Name, err)
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if ctx.Err() != nil || r.surface(s.ID()) != s {
		return
	}
	if img != nil {
		PlaceImage(s, img)
	} else {
		PlaceText(s, text, r.rng)
	}
	s.Repaint()
	r.notifyChanged(s.ID())
}

func (r *Router) notifyChanged(id canvas.ID) {
	if r.changed != nil {
		r.changed(id)
	}
}

// Wait blocks until every background decode has finished. It must be
// called without the lock held.
func (r *Router) Wait() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for r.pending > 0 {
		r.idle.Wait()
	}
}

func (r *Router) surface(id canvas.ID) *canvas.Surface {
	if r.resolve == nil {
		return nil
	}
	s := r.resolve(id)
	if s == nil || s.Disposed() {
		return nil
	}
	return s
}

// FitScale returns the uniform scale that fits an iw×ih image into ImageFit
// of a w×h canvas without enlarging it.
func FitScale(w, h, iw, ih int) float64 {
	if iw <= 0 || ih <= 0 {
		return 1
	}
	return math.Min(math.Min(ImageFit*float64(w)/float64(iw), ImageFit*float64(h)/float64(ih)), 1)
}

// PlaceImage adds img to s scaled to fit and centred.
func PlaceImage(s *canvas.Surface, img image.Image) *shape.Shape {
	w, h := s.Size()
	b := img.Bounds()
	sh := shape.NewImage(img)
	k := FitScale(w, h, b.Dx(), b.Dy())
	sh.ScaleX, sh.ScaleY = k, k
	s.CenterObject(sh)
	s.Add(sh)
	return sh
}

// PlaceText adds content as a text object at a random position that keeps
// it inside the canvas where possible.
func PlaceText(s *canvas.Surface, content string, rng *rand.Rand) *shape.Shape {
	w, h := s.Size()
	sh := shape.NewText(content, 0, 0, shape.DefaultFontSize)
	tw, th := sh.Size()
	sh.Left = rng.Float64() * math.Max(0, float64(w)-tw)
	sh.Top = rng.Float64() * math.Max(0, float64(h)-th)
	s.Add(sh)
	return sh
}
