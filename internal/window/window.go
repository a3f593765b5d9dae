// Package window hosts the workspace in a native desktop window using
// shiny. The grid of canvases sits on the left, the property panel on the
// right and the element palette along the top.
package window

import (
	"context"
	"image"
	"log"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/gridsketch/internal/theme"
	"github.com/example/gridsketch/internal/workspace"
)

// frameDropThreshold is how many consecutive frames may be cancelled before
// one is allowed to complete.
const frameDropThreshold = 10

// Window shows a workspace.
type Window struct {
	ws      *workspace.Workspace
	theme   *theme.Theme
	title   string
	onClose func()

	updateCh  chan struct{}
	closeOnce sync.Once
}

// Option configures a Window.
type Option func(*Window)

// WithTheme sets the colours used for chrome and overlays.
func WithTheme(t *theme.Theme) Option {
	return func(w *Window) {
		if t != nil {
			w.theme = t
		}
	}
}

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(w *Window) { w.title = title } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(w *Window) { w.onClose = fn } }

// New creates a window for ws. It does not open anything until Run.
func New(ws *workspace.Workspace, opts ...Option) *Window {
	w := &Window{
		ws:       ws,
		theme:    theme.Default(),
		title:    "gridsketch",
		updateCh: make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(w)
	}
	ws.OnChange(w.NotifyChanged)
	return w
}

// NotifyChanged requests a repaint. It never blocks.
func (w *Window) NotifyChanged() {
	select {
	case w.updateCh <- struct{}{}:
	default:
	}
}

func (w *Window) notifyClose() {
	w.closeOnce.Do(func() {
		if w.onClose != nil {
			w.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver. It returns when the window
// is closed.
func (w *Window) Run() { driver.Main(w.Main) }

// Main is the shiny entry point.
func (w *Window) Main(s screen.Screen) {
	width, height := naturalSize(w.ws.Mode())
	win, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: w.title})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer win.Release()
	defer w.notifyClose()

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-w.updateCh:
				win.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()
	defer close(done)

	ctl := newController(w.ws)

	var (
		paintMu     sync.Mutex
		paintCancel context.CancelFunc
		dropCount   int
	)
	paintCh := make(chan paintState, 1)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			w.drawFrame(ctx, s, win, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	defer close(paintCh)

	stopPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	for {
		switch e := win.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				stopPaint()
				return
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			win.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := paintState{
				geo:     newGeometry(w.ws.Mode(), width, height),
				dragTag: ctl.dragTag,
				hints:   ctl.labels(),
			}
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			if e.Button != mouse.ButtonLeft && e.Direction != mouse.DirNone {
				continue
			}
			g := newGeometry(w.ws.Mode(), width, height)
			p := image.Point{int(e.X), int(e.Y)}
			switch e.Direction {
			case mouse.DirPress:
				ctl.press(g, p)
			case mouse.DirRelease:
				ctl.release(g, p)
			case mouse.DirNone:
				if ctl.dragTag == "" && !ctl.moving {
					continue
				}
				ctl.motion(g, p)
			}
			win.Send(paint.Event{})
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if ctl.key(KeyShortcut{Rune: e.Rune, Code: e.Code, Modifiers: e.Modifiers}) {
				if ctl.quit {
					stopPaint()
					return
				}
				win.Send(paint.Event{})
			}
		case error:
			log.Printf("window: %v", e)
		}
	}
}

func (w *Window) drawFrame(ctx context.Context, s screen.Screen, win screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.geo.width, st.geo.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	if !compose(ctx, b.RGBA(), w.ws, w.theme, st) {
		return
	}
	win.Upload(image.Point{}, b, b.Bounds())
	win.Publish()
}
