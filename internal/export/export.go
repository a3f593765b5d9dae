// Package export turns canvas rasters into PNG files, downloads and
// clipboard images.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/example/gridsketch/internal/canvas"
	"github.com/example/gridsketch/internal/clipboard"
	"github.com/example/gridsketch/internal/notify"
	"github.com/example/gridsketch/internal/render"
	"golang.org/x/image/draw"
)

// Filename is the download name for a canvas: canvas-1.png for the main
// canvas through canvas-5.png.
func Filename(id canvas.ID) string {
	return fmt.Sprintf("canvas-%d.png", int(id)+1)
}

var copyImage = clipboard.WriteImage

// Exporter renders canvases to PNG.
type Exporter struct {
	dir        string
	multiplier float64
	shadow     *render.ShadowOptions
	notifier   *notify.Notifier
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithDir sets the directory used by SaveFile.
func WithDir(dir string) Option {
	return func(e *Exporter) {
		if dir != "" {
			e.dir = dir
		}
	}
}

// WithMultiplier scales the exported image. Values <= 0 mean 1.
func WithMultiplier(m float64) Option {
	return func(e *Exporter) {
		if m > 0 {
			e.multiplier = m
		}
	}
}

// WithShadow adds a drop shadow around exported images.
func WithShadow(opts render.ShadowOptions) Option {
	return func(e *Exporter) { e.shadow = &opts }
}

// WithNotifier reports saves and copies through n.
func WithNotifier(n *notify.Notifier) Option { return func(e *Exporter) { e.notifier = n } }

// New creates an Exporter. Without WithDir files go to the working
// directory.
func New(opts ...Option) *Exporter {
	e := &Exporter{dir: ".", multiplier: 1}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Multiplier returns the scale applied to exports.
func (e *Exporter) Multiplier() float64 { return e.multiplier }

// Image returns the export raster for s: the current paint scaled by the
// multiplier, with the optional shadow applied.
func (e *Exporter) Image(s *canvas.Surface) (*image.RGBA, error) {
	if s == nil || s.Disposed() {
		return nil, fmt.Errorf("canvas is not mounted")
	}
	img := s.Raster()
	if e.multiplier != 1 {
		img = Scale(img, e.multiplier)
	}
	if e.shadow != nil {
		img, _ = render.WithShadow(img, *e.shadow)
	}
	return img, nil
}

// Scale resizes img by factor using Catmull-Rom resampling.
func Scale(img *image.RGBA, factor float64) *image.RGBA {
	b := img.Bounds()
	w := max(1, int(float64(b.Dx())*factor+0.5))
	h := max(1, int(float64(b.Dy())*factor+0.5))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// WritePNG encodes the export of s to w.
func (e *Exporter) WritePNG(w io.Writer, s *canvas.Surface) error {
	img, err := e.Image(s)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// PNG returns the encoded export of s.
func (e *Exporter) PNG(s *canvas.Surface) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.WritePNG(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveFile writes s to path, or to the export directory under Filename
// when path is empty. It returns the written path.
func (e *Exporter) SaveFile(s *canvas.Surface, path string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("canvas is not mounted")
	}
	if path == "" {
		path = filepath.Join(e.dir, Filename(s.ID()))
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create %s: %w", dir, err)
		}
	}
	data, err := e.PNG(s)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	e.notifier.Save(path)
	return path, nil
}

// Copy places the export of s on the clipboard.
func (e *Exporter) Copy(s *canvas.Surface) error {
	img, err := e.Image(s)
	if err != nil {
		return err
	}
	if err := copyImage(img); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	if s != nil {
		e.notifier.Copy(Filename(s.ID()))
	}
	return nil
}
