package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/gridsketch/internal/config"
	"github.com/example/gridsketch/internal/export"
	"github.com/example/gridsketch/internal/layout"
	"github.com/example/gridsketch/internal/notify"
	"github.com/example/gridsketch/internal/render"
	"github.com/example/gridsketch/internal/theme"
	"github.com/example/gridsketch/internal/workspace"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	notifier    *notify.Notifier
	config      *config.Config
	placeAlerts bool
	saveAlerts  bool
	copyAlerts  bool
	themeName   string
	activeTheme *theme.Theme
	stdout      io.Writer
	stderr      io.Writer
}

func (r *root) Program() string {
	return r.program
}

func (r *root) subcommand(name string) *root {
	program := strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
	return &root{
		program:     program,
		notifier:    r.notifier,
		config:      r.config,
		placeAlerts: r.placeAlerts,
		saveAlerts:  r.saveAlerts,
		copyAlerts:  r.copyAlerts,
		themeName:   r.themeName,
		activeTheme: r.activeTheme,
		stdout:      r.stdout,
		stderr:      r.stderr,
	}
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("gridsketch", flag.ExitOnError),
		program:  "gridsketch",
		notifier: notify.New(prefs),
		config:   cfg,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	r.fs.BoolVar(&r.placeAlerts, "notify-place", cfg.Notify.Place, "show a desktop notification when a shape is dropped")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving a canvas")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")

	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (default, dark or a theme file)")
	r.fs.Usage = usageFunc(r)
	return r
}

// loadTheme resolves the theme by flag, GRIDSKETCH_THEME, then config.
func (r *root) loadTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = os.Getenv("GRIDSKETCH_THEME")
	}
	if name == "" {
		name = r.config.Theme
	}
	t, err := r.config.ResolveTheme(theme.NewLoader(), name)
	if err != nil {
		fmt.Fprintf(r.stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		return theme.Default()
	}
	return t
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventPlace, r.placeAlerts)
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}
	r.activeTheme = r.loadTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "view":
		cmd, err = parseViewCmd(subArgs, r.subcommand(cmdName))
	case "serve":
		cmd, err = parseServeCmd(subArgs, r.subcommand(cmdName))
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r.subcommand(cmdName))
	case "batch":
		cmd, err = parseBatchCmd(subArgs, r.subcommand(cmdName))
	case "themes":
		cmd, err = parseThemesCmd(subArgs, r.subcommand(cmdName))
	case "config":
		cmd, err = parseConfigCmd(subArgs, r.subcommand(cmdName))
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

// workspaceFlags are shared by the commands that build a workspace.
type workspaceFlags struct {
	layout string
	seed   bool
}

func (w *workspaceFlags) register(fs *flag.FlagSet, cfg *config.Config) {
	fs.StringVar(&w.layout, "layout", "", "grid layout: 2x2, 1x2 or 1x3")
	fs.BoolVar(&w.seed, "seed", cfg.Seed, "start every canvas with sample shapes")
}

// newWorkspace builds a workspace from flags, GRIDSKETCH_LAYOUT, the config
// file and the active theme.
func (r *root) newWorkspace(wf workspaceFlags, extra ...workspace.Option) (*workspace.Workspace, error) {
	mode := layout.DefaultMode
	name := wf.layout
	if name == "" {
		name = os.Getenv("GRIDSKETCH_LAYOUT")
	}
	if name == "" {
		name = r.config.Layout
	}
	if name != "" {
		m, err := layout.ParseMode(name)
		if err != nil {
			return nil, err
		}
		mode = m
	}
	exportOpts := []export.Option{
		export.WithDir(r.config.SaveDir),
		export.WithMultiplier(r.config.ScaleFactor()),
		export.WithNotifier(r.notifier),
	}
	if r.config.Shadow {
		exportOpts = append(exportOpts, export.WithShadow(render.DefaultShadowOptions()))
	}
	ex := export.New(exportOpts...)
	opts := []workspace.Option{
		workspace.WithMode(mode),
		workspace.WithSeed(wf.seed),
		workspace.WithNotifier(r.notifier),
		workspace.WithExporter(ex),
	}
	// Canvas background: config > theme > default.
	switch {
	case r.config.Background != "":
		bg, err := theme.ParseColor(r.config.Background)
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		opts = append(opts, workspace.WithBackground(bg))
	case r.activeTheme != nil:
		opts = append(opts, workspace.WithBackground(r.activeTheme.CanvasBackground))
	}
	return workspace.New(append(opts, extra...)...), nil
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
