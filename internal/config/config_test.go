package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/sketches
layout = 1X3
seed = true
shadow = true
background = #FFFFFF
multiplier = 2
listen = :9000

[notify]
place = true
save = false
copy = true

[theme.my_custom_theme]
Background = #111111
Accent: #FF0000
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Theme != "my_custom_theme" {
		t.Errorf("theme = %q", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/sketches" {
		t.Errorf("save_dir = %q", cfg.SaveDir)
	}
	if cfg.Layout != "1x3" {
		t.Errorf("layout = %q", cfg.Layout)
	}
	if !cfg.Seed || !cfg.Shadow || cfg.ScaleFactor() != 2 || cfg.ListenAddr() != ":9000" {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.Notify.Place || cfg.Notify.Save || !cfg.Notify.Copy {
		t.Errorf("notify = %+v", cfg.Notify)
	}
	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("theme section not loaded")
	}
	if th.Background.R != 0x11 || th.Accent.R != 0xff {
		t.Errorf("theme colours = %v %v", th.Background, th.Accent)
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{
		"layout = 3x3\n",
		"seed = maybe\n",
		"shadow = 2\n",
		"multiplier = -1\n",
		"background = red\n",
		"[notify]\nsave = sometimes\n",
		"[theme.x]\nAccent = #12\n",
	} {
		if _, err := Parse(strings.NewReader(in)); err == nil {
			t.Errorf("Parse(%q) succeeded", in)
		}
	}
}

func TestDefaults(t *testing.T) {
	cfg := New()
	if cfg.ScaleFactor() != 1 || cfg.ListenAddr() != DefaultListen {
		t.Fatalf("defaults = %v %q", cfg.ScaleFactor(), cfg.ListenAddr())
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/sketches
layout = 1x2
shadow = true
multiplier = 1.5

[notify]
place = true
save = true
copy = false

[theme.custom]
Name = custom
Background = #000000
DropTarget = #FF000080
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("initial parse failed: %v", err)
	}
	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("circular parse failed: %v\n%s", err, cfg.String())
	}
	if cfg.Theme != cfg2.Theme || cfg.SaveDir != cfg2.SaveDir || cfg.Layout != cfg2.Layout || cfg.Multiplier != cfg2.Multiplier || cfg.Shadow != cfg2.Shadow {
		t.Errorf("root mismatch: %+v vs %+v", cfg, cfg2)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	t1, t2 := cfg.Themes["custom"], cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatal("custom theme missing")
	}
	if t1.Background != t2.Background || t1.DropTarget != t2.DropTarget {
		t.Errorf("theme mismatch: %v/%v vs %v/%v", t1.Background, t1.DropTarget, t2.Background, t2.DropTarget)
	}
}

func TestLoaderOverrideAndSave(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "custom.rc")
	cfg := New()
	cfg.Theme = "dark"
	cfg.Notify.Save = true
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	l := NewLoader("1.0.0", path)
	got, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Theme != "dark" || !got.Notify.Save {
		t.Fatalf("loaded = %+v", got)
	}
	if l.SavePath() != path {
		t.Fatalf("SavePath = %q", l.SavePath())
	}
}

func TestLoaderDefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	l := NewLoader("1.0.0", "")
	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "" {
		t.Fatalf("theme = %q", cfg.Theme)
	}
	want := filepath.Join(dir, ".config", "gridsketch", "config.rc")
	if l.SavePath() != want {
		t.Fatalf("SavePath = %q, want %q", l.SavePath(), want)
	}
	if _, err := os.Stat(want); !os.IsNotExist(err) {
		t.Fatal("SavePath should not create anything")
	}
}
