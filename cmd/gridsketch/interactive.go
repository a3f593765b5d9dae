package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/gridsketch/internal/console"
	"github.com/example/gridsketch/internal/workspace"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

type interactiveCmd struct {
	*root
	fs    *flag.FlagSet
	wf    workspaceFlags
	execs commandList
	tui   bool
	stdin io.Reader

	ws *workspace.Workspace
	in *console.Interpreter
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	c := &interactiveCmd{root: r, fs: fs, stdin: os.Stdin}
	fs.Usage = usageFunc(c)
	c.wf.register(fs, r.config)
	fs.Var(&c.execs, "e", "execute interactive command in immediate mode (may be specified multiple times)")
	fs.BoolVar(&c.tui, "tui", false, "use the full screen terminal interface")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: c}
	}
	if c.tui && len(c.execs) > 0 {
		return nil, fmt.Errorf("-tui cannot be combined with -e")
	}
	return c, nil
}

// executeLine runs one command and reports whether the session should end.
func (i *interactiveCmd) executeLine(line string) (bool, error) {
	return i.in.Exec(line)
}

func (i *interactiveCmd) Run() error {
	ws, err := i.newWorkspace(i.wf)
	if err != nil {
		return err
	}
	defer ws.Close()
	i.ws = ws
	i.in = console.New(ws, i.stdout)

	if i.tui {
		return console.RunTUI(ws, i.activeTheme)
	}
	if len(i.execs) > 0 {
		for _, cmd := range i.execs {
			done, err := i.executeLine(cmd)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		ws.Wait()
		return nil
	}

	fmt.Fprintln(i.stdout, "Enter commands (type 'help' for a list, 'quit' to leave)")
	scanner := bufio.NewScanner(i.stdin)
	for {
		fmt.Fprint(i.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := i.executeLine(scanner.Text())
		if err != nil {
			fmt.Fprintln(i.stderr, err)
		}
		if done {
			break
		}
	}
	ws.Wait()
	return scanner.Err()
}
