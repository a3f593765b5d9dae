package window

import (
	"image"
	"math"

	"github.com/example/gridsketch/internal/layout"
	"github.com/example/gridsketch/internal/shape"
)

const (
	gap          = 8
	panelWidth   = 240
	paletteH     = 28
	bottomHeight = 24
	paletteW     = 84
)

// cell is a canvas slot placed in window pixels.
type cell struct {
	slot int
	rect image.Rectangle
}

// geometry maps the grid of canvases onto a window of a given size. The
// grid is scaled down uniformly when the window is smaller than its
// natural size, and never enlarged.
type geometry struct {
	width, height int
	zoom          float64
	cells         []cell
	panel         image.Rectangle
	palette       []paletteItem
	bottom        image.Rectangle
}

type paletteItem struct {
	kind shape.Kind
	rect image.Rectangle
}

// naturalSize is the window size that shows mode m at full scale.
func naturalSize(m layout.Mode) (int, int) {
	gw, gh := gridSize(m)
	return gw + panelWidth, gh + paletteH + bottomHeight
}

func gridSize(m layout.Mode) (int, int) {
	w, h := 0, 0
	for _, c := range layout.Arrange(m, gap) {
		w = max(w, c.X+c.Width+gap)
		h = max(h, c.Y+c.Height+gap)
	}
	return w, h
}

func newGeometry(m layout.Mode, width, height int) geometry {
	g := geometry{width: width, height: height, zoom: 1}
	gw, gh := gridSize(m)
	availW := width - panelWidth
	availH := height - paletteH - bottomHeight
	if gw > 0 && gh > 0 && availW > 0 && availH > 0 {
		g.zoom = math.Min(1, math.Min(float64(availW)/float64(gw), float64(availH)/float64(gh)))
	}
	for _, c := range layout.Arrange(m, gap) {
		x0 := int(float64(c.X) * g.zoom)
		y0 := paletteH + int(float64(c.Y)*g.zoom)
		g.cells = append(g.cells, cell{
			slot: c.Slot,
			rect: image.Rect(x0, y0, x0+int(float64(c.Width)*g.zoom), y0+int(float64(c.Height)*g.zoom)),
		})
	}
	g.panel = image.Rect(width-panelWidth, paletteH, width, height-bottomHeight)
	x := gap
	for _, k := range shape.DropKinds() {
		g.palette = append(g.palette, paletteItem{kind: k, rect: image.Rect(x, 2, x+paletteW, paletteH-2)})
		x += paletteW + 4
	}
	g.bottom = image.Rect(0, height-bottomHeight, width, height)
	return g
}

// cellAt returns the slot under p and p in that canvas's coordinates.
func (g geometry) cellAt(p image.Point) (slot int, x, y float64, ok bool) {
	for _, c := range g.cells {
		if p.In(c.rect) {
			x = float64(p.X-c.rect.Min.X) / g.zoom
			y = float64(p.Y-c.rect.Min.Y) / g.zoom
			return c.slot, x, y, true
		}
	}
	return 0, 0, 0, false
}

// paletteAt returns the palette tag under p.
func (g geometry) paletteAt(p image.Point) (shape.Kind, bool) {
	for _, it := range g.palette {
		if p.In(it.rect) {
			return it.kind, true
		}
	}
	return "", false
}
