// Package notify produces the short status messages shown after a drop, an
// export or a clipboard copy, and optionally mirrors them to the desktop.
package notify

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/example/gridsketch/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventPlace fires when a shape is dropped onto a canvas.
	EventPlace Event = "place"
	// EventSave fires when a canvas is written to disk.
	EventSave Event = "save"
	// EventCopy fires when a canvas is copied to the clipboard.
	EventCopy Event = "copy"
)

// Events lists every known event.
func Events() []Event { return []Event{EventPlace, EventSave, EventCopy} }

// ParseEvent maps a config key onto an Event.
func ParseEvent(s string) (Event, bool) {
	for _, e := range Events() {
		if strings.EqualFold(strings.TrimSpace(s), string(e)) {
			return e, true
		}
	}
	return "", false
}

// Preferences holds the message templates. Each template takes one %s.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the built-in templates.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "gridsketch",
		Templates: map[Event]string{
			EventPlace: "%s added to canvas!",
			EventSave:  "Saved %s",
			EventCopy:  "Copied %s to clipboard",
		},
	}
}

// LoadPreferences applies GRIDSKETCH_NOTIFY_* environment overrides.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("GRIDSKETCH_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for _, e := range Events() {
		key := "GRIDSKETCH_NOTIFY_" + strings.ToUpper(string(e)) + "_TEXT"
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Templates[e] = v
		}
	}
	return prefs
}

// Message is one rendered notification.
type Message struct {
	Event Event     `json:"event"`
	Text  string    `json:"text"`
	Time  time.Time `json:"time"`
}

const historySize = 20

var (
	send = platform.Notify
	now  = time.Now
)

// Notifier renders messages, keeps a short history for in-app toasts and
// forwards enabled events to the desktop.
type Notifier struct {
	mu      sync.Mutex
	prefs   Preferences
	desktop map[Event]bool
	history []Message
}

// New creates a Notifier using prefs.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Templates: make(map[Event]string, len(prefs.Templates))}
	for k, v := range prefs.Templates {
		cloned.Templates[k] = v
	}
	return &Notifier{prefs: cloned, desktop: make(map[Event]bool)}
}

// Enable toggles desktop delivery for event. In-app messages are always kept.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.mu.Lock()
	n.desktop[event] = enabled
	n.mu.Unlock()
}

// Place reports a dropped shape, for example "Circle".
func (n *Notifier) Place(label string) {
	n.dispatch(EventPlace, label, platform.Options{Timeout: 2000})
}

// Save reports a written file.
func (n *Notifier) Save(path string) {
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, err := os.Stat(abs); err == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// Copy reports a clipboard copy.
func (n *Notifier) Copy(detail string) {
	if strings.TrimSpace(detail) == "" {
		detail = "image"
	}
	n.dispatch(EventCopy, detail, platform.Options{})
}

// Recent returns up to the last few messages, oldest first.
func (n *Notifier) Recent() []Message {
	if n == nil {
		return nil
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Message, len(n.history))
	copy(out, n.history)
	return out
}

// Last returns the newest message.
func (n *Notifier) Last() (Message, bool) {
	if n == nil {
		return Message{}, false
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.history) == 0 {
		return Message{}, false
	}
	return n.history[len(n.history)-1], true
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	if n == nil {
		return
	}
	n.mu.Lock()
	tmpl := strings.TrimSpace(n.prefs.Templates[event])
	desktop := n.desktop[event]
	title := n.prefs.Title
	if tmpl == "" {
		n.mu.Unlock()
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(tmpl, strings.TrimSpace(detail)))
	n.history = append(n.history, Message{Event: event, Text: body, Time: now()})
	if len(n.history) > historySize {
		n.history = n.history[len(n.history)-historySize:]
	}
	n.mu.Unlock()

	if !desktop {
		return
	}
	if err := send(title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}
