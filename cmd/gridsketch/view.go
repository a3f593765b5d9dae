package main

import (
	"flag"

	"github.com/example/gridsketch/internal/window"
)

type viewCmd struct {
	*root
	fs *flag.FlagSet
	wf workspaceFlags
}

func (v *viewCmd) FlagSet() *flag.FlagSet {
	return v.fs
}

func parseViewCmd(args []string, r *root) (*viewCmd, error) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	c := &viewCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	c.wf.register(fs, r.config)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (v *viewCmd) Run() error {
	ws, err := v.newWorkspace(v.wf)
	if err != nil {
		return err
	}
	defer ws.Close()
	win := window.New(ws, window.WithTheme(v.activeTheme), window.WithTitle("gridsketch"))
	win.Run()
	return nil
}
