// Package config reads and writes the gridsketch rc file.
package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/example/gridsketch/internal/theme"
)

// DefaultListen is the HTTP address used when nothing else is configured.
const DefaultListen = "127.0.0.1:8080"

// Notify toggles desktop notifications per event.
type Notify struct {
	Place bool
	Save  bool
	Copy  bool
}

// Config holds the application configuration.
type Config struct {
	Theme      string
	SaveDir    string
	Layout     string
	Seed       bool
	Shadow     bool // drop shadow on exported images
	Background string
	Multiplier float64
	Listen     string
	Notify     Notify
	Themes     map[string]*theme.Theme
}

// New returns a Config with defaults. Empty strings mean "not set" so that
// environment variables and built-in defaults can fill them later.
func New() *Config {
	return &Config{
		Themes: make(map[string]*theme.Theme),
	}
}

// ScaleFactor returns the export multiplier, defaulting to 1.
func (c *Config) ScaleFactor() float64 {
	if c.Multiplier <= 0 {
		return 1
	}
	return c.Multiplier
}

// ListenAddr returns the configured listen address or DefaultListen.
func (c *Config) ListenAddr() string {
	if c.Listen == "" {
		return DefaultListen
	}
	return c.Listen
}

// ResolveTheme returns a theme defined inline in the config, falling back
// to l.
func (c *Config) ResolveTheme(l *theme.Loader, name string) (*theme.Theme, error) {
	if t, ok := c.Themes[name]; ok {
		return t, nil
	}
	return l.Load(name)
}

// String renders the configuration in rc format. Parsing the result yields
// an equivalent Config.
func (c *Config) String() string {
	var sb strings.Builder

	root := []struct{ key, value string }{
		{"theme", c.Theme},
		{"save_dir", c.SaveDir},
		{"layout", c.Layout},
		{"background", c.Background},
		{"listen", c.Listen},
	}
	for _, kv := range root {
		if kv.value != "" {
			fmt.Fprintf(&sb, "%s = %s\n", kv.key, kv.value)
		}
	}
	if c.Seed {
		sb.WriteString("seed = true\n")
	}
	if c.Shadow {
		sb.WriteString("shadow = true\n")
	}
	if c.Multiplier > 0 {
		fmt.Fprintf(&sb, "multiplier = %s\n", strconv.FormatFloat(c.Multiplier, 'f', -1, 64))
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "place = %v\n", c.Notify.Place)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)

	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "\n[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range t.Fields() {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.Hex(f.Color))
		}
	}
	return sb.String()
}
