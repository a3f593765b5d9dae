// Package clipboard moves canvas images and text in and out of the system
// clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"image"

	"github.com/atotto/clipboard"
)

// ErrEmpty is returned when the clipboard holds neither an image nor text.
var ErrEmpty = errors.New("clipboard is empty")

var (
	writeText  = clipboard.WriteAll
	readText   = clipboard.ReadAll
	writeImage = writeImageNative
	readImage  = readImageNative
)

// WriteImage publishes img as PNG data.
func WriteImage(img image.Image) error {
	if img == nil {
		return fmt.Errorf("no image to copy")
	}
	return writeImage(img)
}

// ReadImage returns the clipboard image.
func ReadImage() (image.Image, error) {
	return readImage()
}

// WriteText replaces the clipboard text.
func WriteText(text string) error {
	return writeText(text)
}

// ReadText returns the clipboard text.
func ReadText() (string, error) {
	return readText()
}

// Content is whatever the clipboard currently offers. Image wins over text.
type Content struct {
	Image image.Image
	Text  string
}

// Read returns the clipboard image if there is one, otherwise its text.
func Read() (Content, error) {
	if img, err := readImage(); err == nil && img != nil {
		return Content{Image: img}, nil
	}
	text, err := readText()
	if err != nil {
		return Content{}, fmt.Errorf("read clipboard: %w", err)
	}
	if text == "" {
		return Content{}, ErrEmpty
	}
	return Content{Text: text}, nil
}
