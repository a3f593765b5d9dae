package window

import (
	"fmt"
	"image"
	"log"
	"strconv"
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/gridsketch/internal/canvas"
	"github.com/example/gridsketch/internal/layout"
	"github.com/example/gridsketch/internal/panel"
	"github.com/example/gridsketch/internal/selection"
	"github.com/example/gridsketch/internal/shape"
	"github.com/example/gridsketch/internal/workspace"
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

type shortcutList []KeyShortcut

type binding struct {
	name  string
	label string
	keys  shortcutList
	fn    func()
}

// controller turns pointer and keyboard input into workspace calls. It has
// no window of its own so the shiny loop stays thin.
type controller struct {
	ws    *workspace.Workspace
	focus canvas.ID

	// palette drag
	dragTag  shape.Kind
	dragOver int

	// object drag
	moving bool
	last   [2]float64

	bindings []binding
	keys     map[KeyShortcut]string
	actions  map[string]func()
	quit     bool
}

func newController(ws *workspace.Workspace) *controller {
	c := &controller{ws: ws, dragOver: -1}
	c.configure()
	return c
}

func (c *controller) register(name, label string, keys shortcutList, fn func()) {
	c.bindings = append(c.bindings, binding{name: name, label: label, keys: keys, fn: fn})
	c.actions[name] = fn
	for _, k := range keys {
		c.keys[k] = name
	}
}

func (c *controller) configure() {
	c.keys = map[KeyShortcut]string{}
	c.actions = map[string]func(){}
	c.bindings = nil

	c.register("copy", "^C:copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}}, func() {
		if err := c.ws.Copy(c.focus); err != nil {
			log.Printf("copy: %v", err)
		}
	})
	c.register("save", "^S:save", shortcutList{{Rune: 's', Modifiers: key.ModControl}}, func() {
		if _, err := c.ws.Save(c.focus, ""); err != nil {
			log.Printf("save: %v", err)
		}
	})
	c.register("paste", "^V:paste", shortcutList{{Rune: 'v', Modifiers: key.ModControl}}, func() {
		if err := c.ws.Paste(c.focus); err != nil {
			log.Printf("paste: %v", err)
		}
	})
	for i, m := range layout.Modes() {
		mode := m
		c.register("layout-"+string(m), fmt.Sprintf("^%d:%s", i+1, m), shortcutList{{Rune: rune('1' + i), Modifiers: key.ModControl}}, func() {
			if err := c.ws.SetMode(mode); err != nil {
				log.Printf("layout: %v", err)
			}
			c.focus = 0
		})
	}
	for _, q := range []struct {
		r    rune
		kind shape.Kind
	}{{'r', shape.KindRectangle}, {'c', shape.KindCircle}, {'t', shape.KindText}} {
		kind := q.kind
		c.register("add-"+string(kind), fmt.Sprintf("%c:%s", unicode.ToUpper(q.r), kind), shortcutList{{Rune: q.r}}, func() {
			if _, err := c.ws.QuickAdd(c.focus, kind); err != nil {
				log.Printf("add: %v", err)
			}
		})
	}
	c.register("delete", "Del:delete", shortcutList{{Code: key.CodeDeleteForward}, {Code: key.CodeDeleteBackspace}}, func() { c.ws.Delete() })
	c.register("deselect", "Esc:deselect", shortcutList{{Code: key.CodeEscape}}, func() { c.ws.Deselect() })
	c.register("front", "]:front", shortcutList{{Rune: ']'}}, func() { c.ws.BringToFront() })
	c.register("back", "[:back", shortcutList{{Rune: '['}}, func() { c.ws.SendToBack() })
	c.register("rotate-left", ",/.:rotate", shortcutList{{Rune: ','}}, func() { c.nudge(panel.Angle, -15) })
	c.register("rotate-right", "", shortcutList{{Rune: '.'}}, func() { c.nudge(panel.Angle, 15) })
	c.register("fade", "-/=:opacity", shortcutList{{Rune: '-'}}, func() { c.nudge(panel.Opacity, -0.1) })
	c.register("unfade", "", shortcutList{{Rune: '='}, {Rune: '+'}}, func() { c.nudge(panel.Opacity, 0.1) })
	c.register("tab", "Tab:panel", shortcutList{{Code: key.CodeTab}}, func() {
		if c.ws.State().Tab == selection.TabProperties {
			c.ws.SetTab(selection.TabElements)
		} else {
			c.ws.SetTab(selection.TabProperties)
		}
	})
	for _, a := range []struct {
		code   key.Code
		dx, dy float64
	}{
		{key.CodeLeftArrow, -1, 0}, {key.CodeRightArrow, 1, 0},
		{key.CodeUpArrow, 0, -1}, {key.CodeDownArrow, 0, 1},
	} {
		dx, dy := a.dx, a.dy
		c.register("nudge-"+strconv.Itoa(int(a.code)), "", shortcutList{{Code: a.code}}, func() { c.ws.Move(dx, dy) })
		c.register("shove-"+strconv.Itoa(int(a.code)), "", shortcutList{{Code: a.code, Modifiers: key.ModShift}}, func() { c.ws.Move(dx*10, dy*10) })
	}
	c.register("quit", "Q:quit", shortcutList{{Rune: 'q'}}, func() { c.quit = true })
}

// labels lists the bottom bar hints.
func (c *controller) labels() []string {
	var out []string
	for _, b := range c.bindings {
		if b.label != "" {
			out = append(out, b.label)
		}
	}
	return out
}

// nudge adds delta to a numeric control of the selected object.
func (c *controller) nudge(ctl panel.Control, delta float64) {
	for _, f := range c.ws.Panel().Fields {
		if f.Control != ctl {
			continue
		}
		v, err := strconv.ParseFloat(f.Value, 64)
		if err != nil {
			return
		}
		if _, err := c.ws.Apply(ctl, strconv.FormatFloat(v+delta, 'f', -1, 64)); err != nil {
			log.Printf("%s: %v", ctl, err)
		}
		return
	}
}

// key runs the action bound to ks and reports whether one existed. Printable
// keys match on rune, ignoring shift; other keys match on code.
func (c *controller) key(ks KeyShortcut) bool {
	var candidates []KeyShortcut
	if ks.Rune > 0 && unicode.IsPrint(ks.Rune) {
		candidates = append(candidates, KeyShortcut{Rune: unicode.ToLower(ks.Rune), Modifiers: ks.Modifiers &^ key.ModShift})
	}
	candidates = append(candidates, KeyShortcut{Code: ks.Code, Modifiers: ks.Modifiers})
	for _, cand := range candidates {
		if name, ok := c.keys[cand]; ok {
			c.actions[name]()
			return true
		}
	}
	return false
}

// press handles a left button press at p.
func (c *controller) press(g geometry, p image.Point) {
	if kind, ok := g.paletteAt(p); ok {
		c.dragTag = kind
		c.dragOver = -1
		return
	}
	slot, x, y, ok := g.cellAt(p)
	if !ok {
		return
	}
	id := canvas.ID(slot)
	c.focus = id
	c.ws.Click(id, x, y)
	if ref, sel := c.ws.Selection(); sel && ref.Canvas == id {
		c.moving = true
		c.last = [2]float64{x, y}
	}
}

// motion handles pointer movement with the button held.
func (c *controller) motion(g geometry, p image.Point) {
	slot, x, y, ok := g.cellAt(p)
	if c.dragTag != "" {
		if !ok {
			slot = -1
		}
		if slot != c.dragOver {
			if c.dragOver >= 0 {
				c.ws.DragLeave(canvas.ID(c.dragOver))
			}
			if slot >= 0 {
				c.ws.DragEnter(canvas.ID(slot))
			}
			c.dragOver = slot
		} else if slot >= 0 {
			c.ws.DragOver(canvas.ID(slot))
		}
		return
	}
	if !c.moving || !ok || canvas.ID(slot) != c.focus {
		return
	}
	c.ws.Move(x-c.last[0], y-c.last[1])
	c.last = [2]float64{x, y}
}

// release finishes a palette drag or an object drag.
func (c *controller) release(g geometry, p image.Point) {
	c.moving = false
	if c.dragTag == "" {
		return
	}
	tag := c.dragTag
	c.dragTag = ""
	prev := c.dragOver
	c.dragOver = -1
	slot, x, y, ok := g.cellAt(p)
	if !ok {
		if prev >= 0 {
			c.ws.DragLeave(canvas.ID(prev))
		}
		return
	}
	if prev >= 0 && prev != slot {
		c.ws.DragLeave(canvas.ID(prev))
	}
	c.focus = canvas.ID(slot)
	c.ws.DropTag(canvas.ID(slot), string(tag), x, y)
}
