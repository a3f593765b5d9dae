package shape

import "strings"

// Kind identifies a shape variant.
type Kind string

const (
	KindRectangle Kind = "rectangle"
	KindCircle    Kind = "circle"
	KindEllipse   Kind = "ellipse"
	KindTriangle  Kind = "triangle"
	KindLine      Kind = "line"
	KindPolygon   Kind = "polygon"
	KindText      Kind = "text"
	KindImage     Kind = "image"
)

// dropKinds are the kinds offered by the elements palette, in palette order.
var dropKinds = []Kind{
	KindRectangle,
	KindCircle,
	KindEllipse,
	KindTriangle,
	KindLine,
	KindPolygon,
	KindText,
}

// DropKinds returns the kinds that can be created from a palette tag.
func DropKinds() []Kind {
	out := make([]Kind, len(dropKinds))
	copy(out, dropKinds)
	return out
}

// ParseKind maps a palette tag to its kind. Images are never created from a
// tag so "image" is rejected.
func ParseKind(tag string) (Kind, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, k := range dropKinds {
		if string(k) == tag {
			return k, true
		}
	}
	return "", false
}

// Capabilities lists the editable style attributes a kind carries.
type Capabilities struct {
	Fill        bool
	Stroke      bool
	StrokeWidth bool
	Font        bool
	Content     bool
}

var capabilities = map[Kind]Capabilities{
	KindRectangle: {Fill: true, Stroke: true, StrokeWidth: true},
	KindCircle:    {Fill: true, Stroke: true, StrokeWidth: true},
	KindEllipse:   {Fill: true, Stroke: true, StrokeWidth: true},
	KindTriangle:  {Fill: true, Stroke: true, StrokeWidth: true},
	KindPolygon:   {Fill: true, Stroke: true, StrokeWidth: true},
	KindLine:      {Stroke: true, StrokeWidth: true},
	KindText:      {Fill: true, Font: true, Content: true},
	KindImage:     {},
}

// Capabilities reports which style controls apply to k.
func (k Kind) Capabilities() Capabilities {
	return capabilities[k]
}

// Label returns a human readable name for the kind.
func (k Kind) Label() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}
