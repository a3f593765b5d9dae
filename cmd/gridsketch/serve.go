package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/gridsketch/internal/server"
)

type serveCmd struct {
	*root
	fs     *flag.FlagSet
	wf     workspaceFlags
	listen string
}

func (s *serveCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func parseServeCmd(args []string, r *root) (*serveCmd, error) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	c := &serveCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	c.wf.register(fs, r.config)
	fs.StringVar(&c.listen, "listen", "", "address to listen on")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

// addr resolves the listen address by flag, GRIDSKETCH_LISTEN, then config.
func (s *serveCmd) addr() string {
	if s.listen != "" {
		return s.listen
	}
	if env := os.Getenv("GRIDSKETCH_LISTEN"); env != "" {
		return env
	}
	return s.config.ListenAddr()
}

func (s *serveCmd) Run() error {
	ws, err := s.newWorkspace(s.wf)
	if err != nil {
		return err
	}
	defer ws.Close()
	srv := server.New(ws)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Listen(s.addr()) }()
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve %s: %w", s.addr(), err)
		}
		return nil
	case <-ctx.Done():
		return srv.Shutdown()
	}
}
