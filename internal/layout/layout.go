// Package layout describes the grid arrangements of the main and auxiliary
// canvases.
package layout

import (
	"fmt"
	"strings"
)

// Mode names a grid arrangement.
type Mode string

const (
	Mode2x2 Mode = "2x2"
	Mode1x2 Mode = "1x2"
	Mode1x3 Mode = "1x3"
)

// DefaultMode is the arrangement used at start up.
const DefaultMode = Mode2x2

// Slots is the number of canvas slots: the main canvas plus four auxiliary.
const Slots = 5

// Dimensions is a pixel size.
type Dimensions struct {
	Width, Height int
}

// Spec is the lookup table entry for one mode.
type Spec struct {
	Main    Dimensions
	Aux     Dimensions
	Visible int // number of visible auxiliary canvases
}

var table = map[Mode]Spec{
	Mode2x2: {Main: Dimensions{800, 600}, Aux: Dimensions{400, 300}, Visible: 4},
	Mode1x2: {Main: Dimensions{800, 600}, Aux: Dimensions{600, 450}, Visible: 2},
	Mode1x3: {Main: Dimensions{900, 600}, Aux: Dimensions{400, 300}, Visible: 3},
}

// Modes lists the supported modes in menu order.
func Modes() []Mode { return []Mode{Mode2x2, Mode1x2, Mode1x3} }

// ParseMode accepts "2x2", "1x2", "1x3" and the "×" spelling.
func ParseMode(s string) (Mode, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "×", "x")
	m := Mode(norm)
	if _, ok := table[m]; !ok {
		return "", fmt.Errorf("unknown layout mode %q", s)
	}
	return m, nil
}

// Lookup returns the table entry for m.
func Lookup(m Mode) (Spec, bool) {
	spec, ok := table[m]
	return spec, ok
}

// SlotVisible reports whether slot is shown in mode m. Slot 0 is always
// visible; auxiliary slot n (1..4) is visible when n <= Visible.
func SlotVisible(m Mode, slot int) bool {
	spec, ok := table[m]
	if !ok || slot < 0 || slot >= Slots {
		return false
	}
	return slot == 0 || slot <= spec.Visible
}

// SlotSize returns the pixel size of slot in mode m.
func SlotSize(m Mode, slot int) (Dimensions, bool) {
	if !SlotVisible(m, slot) {
		return Dimensions{}, false
	}
	spec := table[m]
	if slot == 0 {
		return spec.Main, true
	}
	return spec.Aux, true
}

// Cell is the placement of a slot inside the window grid.
type Cell struct {
	Slot int
	X, Y int
	Dimensions
}

// Arrange positions the visible slots: the main canvas on the left and the
// auxiliary canvases to its right, two per column in 2x2 and stacked in a
// single column otherwise. gap separates cells.
func Arrange(m Mode, gap int) []Cell {
	spec, ok := table[m]
	if !ok {
		return nil
	}
	cells := []Cell{{Slot: 0, X: gap, Y: gap, Dimensions: spec.Main}}
	x0 := gap + spec.Main.Width + gap
	for n := 1; n <= spec.Visible; n++ {
		i := n - 1
		col, row := 0, i
		if m == Mode2x2 {
			col, row = i%2, i/2
		}
		cells = append(cells, Cell{
			Slot:       n,
			X:          x0 + col*(spec.Aux.Width+gap),
			Y:          gap + row*(spec.Aux.Height+gap),
			Dimensions: spec.Aux,
		})
	}
	return cells
}
