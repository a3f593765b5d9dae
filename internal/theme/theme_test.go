package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	th, err := Parse(strings.NewReader("Name: Custom\naccent: #112233\nDropTarget: #11223344\nUnknown: #000000\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if th.Name != "Custom" {
		t.Fatalf("name = %q", th.Name)
	}
	if th.Accent != (color.RGBA{0x11, 0x22, 0x33, 0xff}) {
		t.Fatalf("accent = %v", th.Accent)
	}
	if th.DropTarget != (color.RGBA{0x11, 0x22, 0x33, 0x44}) {
		t.Fatalf("drop target = %v", th.DropTarget)
	}
	if th.PanelText != Default().PanelText {
		t.Fatal("unset keys should keep defaults")
	}
}

func TestParseBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Accent: bluish\n")); err == nil {
		t.Fatal("expected error")
	}
}

func TestEmbeddedThemes(t *testing.T) {
	l := &Loader{}
	for _, name := range []string{"default", "dark"} {
		th, err := l.Load(name)
		if err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
		if th.Name == "" {
			t.Fatalf("%s has no name", name)
		}
	}
	dark, _ := l.Load("dark")
	if dark.Background == Default().Background {
		t.Fatal("dark theme should change the background")
	}
}

func TestEmbeddedDefaultMatchesBuiltin(t *testing.T) {
	th, err := (&Loader{}).Load("default")
	if err != nil {
		t.Fatal(err)
	}
	want := Default().Fields()
	for i, f := range th.Fields() {
		if f != want[i] {
			t.Errorf("%s = %s, want %s", f.Name, Hex(f.Color), Hex(want[i].Color))
		}
	}
}

func TestLoaderSearchesConfigDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ocean.theme"), []byte("Name: Ocean\nAccent: #0077BE\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{ConfigDir: dir}
	th, err := l.Load("ocean")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if th.Name != "Ocean" {
		t.Fatalf("name = %q", th.Name)
	}
	names := l.Names()
	if strings.Join(names, ",") != "dark,default,ocean" {
		t.Fatalf("names = %v", names)
	}
	if _, err := l.Load("missing"); err == nil {
		t.Fatal("expected not found")
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, s := range []string{"#0A0B0C", "#0A0B0C80"} {
		c, err := ParseColor(s)
		if err != nil {
			t.Fatal(err)
		}
		if Hex(c) != s {
			t.Fatalf("Hex(%v) = %s, want %s", c, Hex(c), s)
		}
	}
}

func TestParseColorForms(t *testing.T) {
	cases := map[string]color.RGBA{
		"red":       {0xff, 0, 0, 0xff},
		" Teal ":    {0, 0x80, 0x80, 0xff},
		"#abc":      {0xaa, 0xbb, 0xcc, 0xff},
		"#102030":   {0x10, 0x20, 0x30, 0xff},
		"#10203040": {0x10, 0x20, 0x30, 0x40},
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		if err != nil || got != want {
			t.Errorf("ParseColor(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	for _, bad := range []string{"", "nope", "#12", "#zzzzzz", "102030"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) accepted", bad)
		}
	}
}
