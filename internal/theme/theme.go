// Package theme holds the colours used by the window chrome and the canvas
// overlays.
package theme

import (
	"image/color"
	"reflect"
)

// Theme defines the palette. Every color.RGBA field can be set from a
// theme file by name.
type Theme struct {
	Name string

	// Window chrome
	Background color.RGBA
	Foreground color.RGBA
	Gutter     color.RGBA

	// Side panel
	PanelBackground color.RGBA
	PanelText       color.RGBA
	PanelMuted      color.RGBA
	Accent          color.RGBA

	// Canvases
	CanvasBackground color.RGBA
	CanvasBorder     color.RGBA
	DropTarget       color.RGBA
	SelectionLine    color.RGBA
	SelectionHandle  color.RGBA

	// Toasts
	ToastBackground color.RGBA
	ToastText       color.RGBA
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:             "Default",
		Background:       color.RGBA{0xe9, 0xec, 0xef, 0xff},
		Foreground:       color.RGBA{0x21, 0x25, 0x29, 0xff},
		Gutter:           color.RGBA{0xde, 0xe2, 0xe6, 0xff},
		PanelBackground:  color.RGBA{0xff, 0xff, 0xff, 0xff},
		PanelText:        color.RGBA{0x21, 0x25, 0x29, 0xff},
		PanelMuted:       color.RGBA{0x6c, 0x75, 0x7d, 0xff},
		Accent:           color.RGBA{0x3b, 0x82, 0xf6, 0xff},
		CanvasBackground: color.RGBA{0xf8, 0xf9, 0xfa, 0xff},
		CanvasBorder:     color.RGBA{0xce, 0xd4, 0xda, 0xff},
		DropTarget:       color.RGBA{0x3b, 0x82, 0xf6, 0x40},
		SelectionLine:    color.RGBA{0x3b, 0x82, 0xf6, 0xff},
		SelectionHandle:  color.RGBA{0xff, 0xff, 0xff, 0xff},
		ToastBackground:  color.RGBA{0x19, 0x87, 0x54, 0xff},
		ToastText:        color.RGBA{0xff, 0xff, 0xff, 0xff},
	}
}

// Field is one named colour of a theme.
type Field struct {
	Name  string
	Color color.RGBA
}

var rgbaType = reflect.TypeOf(color.RGBA{})

// Fields lists the theme colours in declaration order.
func (t *Theme) Fields() []Field {
	v := reflect.ValueOf(t).Elem()
	typ := v.Type()
	var out []Field
	for i := 0; i < typ.NumField(); i++ {
		if typ.Field(i).Type != rgbaType {
			continue
		}
		out = append(out, Field{Name: typ.Field(i).Name, Color: v.Field(i).Interface().(color.RGBA)})
	}
	return out
}
