package dnd

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// File is one dropped external file. Type may be empty, in which case it is
// derived from the name and then the content.
type File struct {
	Name string
	Type string
	Open func() (io.ReadCloser, error)
}

// FromBytes wraps in-memory data as a dropped file.
func FromBytes(name, typ string, data []byte) File {
	return File{Name: name, Type: typ, Open: func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}}
}

// FromPath wraps a file on disk as a dropped file.
func FromPath(path string) File {
	return File{Name: filepath.Base(path), Open: func() (io.ReadCloser, error) {
		return os.Open(path)
	}}
}

// Category is how the router handles a file.
type Category int

const (
	Ignored Category = iota
	Picture
	PlainText
)

func (c Category) String() string {
	switch c {
	case Picture:
		return "image"
	case PlainText:
		return "text"
	}
	return "ignored"
}

var extensionTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".webp": "image/webp",
	".txt":  "text/plain",
}

// MediaType returns the bare media type of a declared or sniffed MIME
// string, without parameters.
func MediaType(typ string) string {
	if typ == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(typ)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(typ))
	}
	return mt
}

// Detect resolves the media type of a file: the declared type first, then
// the extension, then the leading bytes of head.
func Detect(name, declared string, head []byte) string {
	if mt := MediaType(declared); mt != "" {
		return mt
	}
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return MediaType(t)
	}
	if len(head) == 0 {
		return ""
	}
	return MediaType(http.DetectContentType(head))
}

// Classify maps a media type onto a handling category. Only exact
// text/plain is accepted as text.
func Classify(mediaType string) Category {
	switch {
	case strings.HasPrefix(mediaType, "image/"):
		return Picture
	case mediaType == "text/plain":
		return PlainText
	}
	return Ignored
}

// read loads the file and works out its category.
func read(f File) (Category, []byte, error) {
	if f.Open == nil {
		return Ignored, nil, fmt.Errorf("%s: no content", f.Name)
	}
	rc, err := f.Open()
	if err != nil {
		return Ignored, nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return Ignored, nil, fmt.Errorf("read %s: %w", f.Name, err)
	}
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return Classify(Detect(f.Name, f.Type, head)), data, nil
}

// DecodeImage decodes any registered raster format.
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// DecodeText returns the file content as text with \n line endings,
// rejecting invalid UTF-8.
func DecodeText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("decode text: invalid utf-8")
	}
	return strings.TrimRight(newlines.Replace(string(data)), "\n"), nil
}
