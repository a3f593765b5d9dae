package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/example/gridsketch/internal/console"
	"github.com/example/gridsketch/internal/export"
)

type batchCmd struct {
	*root
	fs        *flag.FlagSet
	wf        workspaceFlags
	script    string
	exportDir string
	stdin     io.Reader
}

func (b *batchCmd) FlagSet() *flag.FlagSet {
	return b.fs
}

func parseBatchCmd(args []string, r *root) (*batchCmd, error) {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	c := &batchCmd{root: r, fs: fs, stdin: os.Stdin}
	fs.Usage = usageFunc(c)
	c.wf.register(fs, r.config)
	fs.StringVar(&c.exportDir, "export", "", "directory to write every visible canvas to after the script")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch fs.NArg() {
	case 0:
		c.script = "-"
	case 1:
		c.script = fs.Arg(0)
	default:
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (b *batchCmd) Run() error {
	var src io.Reader = b.stdin
	if b.script != "-" {
		f, err := os.Open(b.script)
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}
	ws, err := b.newWorkspace(b.wf)
	if err != nil {
		return err
	}
	defer ws.Close()
	if err := console.New(ws, b.stdout).Run(src); err != nil {
		return fmt.Errorf("%s: %w", b.script, err)
	}
	ws.Wait()
	if b.exportDir == "" {
		return nil
	}
	if err := os.MkdirAll(b.exportDir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	for _, id := range ws.Visible() {
		path, err := ws.Save(id, filepath.Join(b.exportDir, export.Filename(id)))
		if err != nil {
			return err
		}
		fmt.Fprintln(b.stdout, path)
	}
	return nil
}
