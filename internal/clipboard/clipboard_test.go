package clipboard

import (
	"errors"
	"image"
	"testing"
)

func stub(t *testing.T, img image.Image, imgErr error, text string, textErr error) {
	t.Helper()
	oldImg, oldText := readImage, readText
	readImage = func() (image.Image, error) { return img, imgErr }
	readText = func() (string, error) { return text, textErr }
	t.Cleanup(func() {
		readImage = oldImg
		readText = oldText
	})
}

func TestReadPrefersImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	stub(t, img, nil, "ignored", nil)
	c, err := Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if c.Image != img || c.Text != "" {
		t.Fatalf("content = %+v", c)
	}
}

func TestReadFallsBackToText(t *testing.T) {
	stub(t, nil, errors.New("no image"), "hello", nil)
	c, err := Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if c.Text != "hello" {
		t.Fatalf("text = %q", c.Text)
	}
}

func TestReadEmpty(t *testing.T) {
	stub(t, nil, errors.New("no image"), "", nil)
	if _, err := Read(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestWriteTextUsesBackend(t *testing.T) {
	var got string
	old := writeText
	writeText = func(s string) error { got = s; return nil }
	t.Cleanup(func() { writeText = old })
	if err := WriteText("abc"); err != nil {
		t.Fatal(err)
	}
	if got != "abc" {
		t.Fatalf("wrote %q", got)
	}
}

func TestWriteNilImage(t *testing.T) {
	if err := WriteImage(nil); err == nil {
		t.Fatal("expected error")
	}
}
