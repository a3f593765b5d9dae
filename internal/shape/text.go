package shape

import (
	"log"
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	regularFont *truetype.Font
	faces       sync.Map // map[float64]font.Face
	measureMu   sync.Mutex
)

func init() {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	regularFont = f
}

// Face returns a cached face for the given point size at 72 DPI, so one point
// equals one canvas pixel.
func Face(size float64) font.Face {
	if size <= 0 {
		size = DefaultFontSize
	}
	size = math.Round(size*10) / 10
	if f, ok := faces.Load(size); ok {
		return f.(font.Face)
	}
	face := truetype.NewFace(regularFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	actual, _ := faces.LoadOrStore(size, face)
	return actual.(font.Face)
}

// MeasureText returns the advance width and the ascent+descent height of a
// single line rendered at size.
func MeasureText(line string, size float64) (w, h float64) {
	face := Face(size)
	measureMu.Lock()
	defer measureMu.Unlock()
	d := &font.Drawer{Face: face}
	adv := d.MeasureString(line)
	m := face.Metrics()
	return float64(adv) / 64, float64(m.Ascent+m.Descent) / 64
}
