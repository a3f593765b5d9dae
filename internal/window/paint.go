package window

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/gridsketch/internal/canvas"
	"github.com/example/gridsketch/internal/selection"
	"github.com/example/gridsketch/internal/shape"
	"github.com/example/gridsketch/internal/theme"
	"github.com/example/gridsketch/internal/workspace"
)

// toastFor is how long the last notification stays on screen.
const toastFor = 2 * time.Second

var now = time.Now

// paintState is the input to one frame.
type paintState struct {
	geo     geometry
	dragTag shape.Kind
	hints   []string
}

func fill(dst *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, &image.Uniform{c}, image.Point{}, draw.Src)
}

func outline(dst *image.RGBA, r image.Rectangle, c color.Color) {
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	fill(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	fill(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}

func text(dst *image.RGBA, x, y int, c color.Color, s string) int {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: basicfont.Face7x13, Dot: fixed.P(x, y)}
	d.DrawString(s)
	return d.MeasureString(s).Ceil()
}

// compose renders the whole window into dst. It returns false when ctx was
// cancelled part way through.
func compose(ctx context.Context, dst *image.RGBA, ws *workspace.Workspace, th *theme.Theme, st paintState) bool {
	fill(dst, dst.Bounds(), th.Background)
	g := st.geo

	fill(dst, image.Rect(0, 0, g.width, paletteH), th.Gutter)
	for _, it := range g.palette {
		bg := th.PanelBackground
		if it.kind == st.dragTag {
			bg = th.Accent
		}
		fill(dst, it.rect, bg)
		outline(dst, it.rect, th.CanvasBorder)
		text(dst, it.rect.Min.X+6, it.rect.Max.Y-7, th.PanelText, it.kind.Label())
	}

	for _, c := range g.cells {
		if ctx.Err() != nil {
			return false
		}
		frame, ok := ws.Frame(canvas.ID(c.slot), th)
		if !ok {
			continue
		}
		xdraw.ApproxBiLinear.Scale(dst, c.rect, frame, frame.Bounds(), draw.Src, nil)
		outline(dst, c.rect.Inset(-1), th.CanvasBorder)
	}
	if ctx.Err() != nil {
		return false
	}

	snap := ws.State()
	paintPanel(dst, ws, th, g.panel, snap.Tab)

	fill(dst, g.bottom, th.Gutter)
	text(dst, g.bottom.Min.X+6, g.bottom.Max.Y-7, th.Foreground, strings.Join(st.hints, "  "))

	if snap.Toast != nil && now().Sub(snap.Toast.Time) < toastFor {
		msg := snap.Toast.Text
		w := font.MeasureString(basicfont.Face7x13, msg).Ceil() + 16
		r := image.Rect(g.panel.Min.X-w-gap, g.bottom.Min.Y-28, g.panel.Min.X-gap, g.bottom.Min.Y-gap)
		fill(dst, r, th.ToastBackground)
		text(dst, r.Min.X+8, r.Max.Y-6, th.ToastText, msg)
	}
	return ctx.Err() == nil
}

func paintPanel(dst *image.RGBA, ws *workspace.Workspace, th *theme.Theme, r image.Rectangle, tab selection.Tab) {
	fill(dst, r, th.PanelBackground)
	x, y := r.Min.X+10, r.Min.Y+18
	for _, t := range []selection.Tab{selection.TabElements, selection.TabProperties} {
		c := th.PanelMuted
		if t == tab {
			c = th.Accent
		}
		x += text(dst, x, y, c, strings.ToUpper(string(t[:1]))+string(t[1:])) + 14
	}
	x, y = r.Min.X+10, y+24
	line := func(c color.Color, s string) {
		text(dst, x, y, c, s)
		y += 18
	}
	if tab == selection.TabElements {
		line(th.PanelMuted, "Drag a shape onto a canvas")
		for _, k := range shape.DropKinds() {
			line(th.PanelText, "  "+k.Label())
		}
		return
	}
	v := ws.Panel()
	if v.Empty {
		for _, l := range wrap(v.Placeholder, (r.Dx()-20)/basicfont.Face7x13.Advance) {
			line(th.PanelMuted, l)
		}
		return
	}
	line(th.PanelText, fmt.Sprintf("%s on canvas %d", v.Title, int(v.Canvas)+1))
	for _, f := range v.Fields {
		value := f.Value
		if f.Label != "" {
			value = f.Label
		}
		line(th.PanelText, fmt.Sprintf("%-9s %s", f.Control, value))
	}
}

// wrap breaks s into lines of at most n characters at spaces.
func wrap(s string, n int) []string {
	var lines []string
	cur := ""
	for _, w := range strings.Fields(s) {
		switch {
		case cur == "":
			cur = w
		case len(cur)+1+len(w) <= n:
			cur += " " + w
		default:
			lines = append(lines, cur)
			cur = w
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
