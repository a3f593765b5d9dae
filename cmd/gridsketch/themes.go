package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/example/gridsketch/internal/theme"
)

type themesCmd struct {
	*root
	fs *flag.FlagSet
}

func (t *themesCmd) FlagSet() *flag.FlagSet {
	return t.fs
}

func parseThemesCmd(args []string, r *root) (*themesCmd, error) {
	fs := flag.NewFlagSet("themes", flag.ExitOnError)
	c := &themesCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (t *themesCmd) Run() error {
	seen := map[string]bool{}
	for _, n := range theme.NewLoader().Names() {
		seen[n] = true
	}
	for n := range t.config.Themes {
		seen[n] = true
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		mark := " "
		if t.activeTheme != nil && strings.EqualFold(t.activeTheme.Name, n) {
			mark = "*"
		}
		fmt.Fprintf(t.stdout, "%s %s\n", mark, n)
	}
	return nil
}
