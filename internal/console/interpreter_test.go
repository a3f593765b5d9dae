package console

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/example/gridsketch/internal/workspace"
)

func newConsole(t *testing.T) (*Interpreter, *workspace.Workspace, *bytes.Buffer) {
	t.Helper()
	ws := workspace.New(
		workspace.WithScheduler(func(time.Duration, func()) {}),
		workspace.WithRand(rand.New(rand.NewPCG(1, 1))),
	)
	t.Cleanup(ws.Close)
	var out bytes.Buffer
	return New(ws, &out), ws, &out
}

func TestDropAndEdit(t *testing.T) {
	in, ws, out := newConsole(t)
	script := `
# sample session
drop 1 circle 200 150
opacity 50%
angle 30
fill #00ff00
front
show
`
	if err := in.Run(strings.NewReader(script)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	st := ws.State()
	sh := st.Canvases[0].Shapes[0]
	if sh.Opacity != 0.5 || sh.Angle != 30 {
		t.Fatalf("shape = %+v", sh)
	}
	text := out.String()
	for _, want := range []string{"Circle added to canvas!", "layout 2x2", "Circle on canvas 1", "opacity  50%", "angle    30°"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	in, _, _ := newConsole(t)
	_, err := in.Exec("explode")
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("err = %v", err)
	}
}

func TestUsageErrors(t *testing.T) {
	in, _, _ := newConsole(t)
	for _, line := range []string{"drop 1 circle", "drop 9 circle 1 1", "layout 3x3", "move a b", "export", "tab sideways"} {
		if _, err := in.Exec(line); err == nil {
			t.Errorf("%q succeeded", line)
		}
	}
}

func TestQuitStopsRun(t *testing.T) {
	in, ws, _ := newConsole(t)
	if err := in.Run(strings.NewReader("drop 1 rectangle 10 10\nquit\ndrop 1 circle 10 10\n")); err != nil {
		t.Fatal(err)
	}
	if n := len(ws.State().Canvases[0].Shapes); n != 1 {
		t.Fatalf("shapes = %d", n)
	}
}

func TestRunReportsLine(t *testing.T) {
	in, _, _ := newConsole(t)
	err := in.Run(strings.NewReader("show\nbogus\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("err = %v", err)
	}
}

func TestNoSelectionIsNotAnError(t *testing.T) {
	in, _, out := newConsole(t)
	for _, line := range []string{"opacity 0.5", "delete", "front", "move 1 1"} {
		if _, err := in.Exec(line); err != nil {
			t.Fatalf("%q: %v", line, err)
		}
	}
	if !strings.Contains(out.String(), "nothing selected") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestExportAndFiles(t *testing.T) {
	in, ws, _ := newConsole(t)
	dir := t.TempDir()
	note := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(note, []byte("from disk"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.png")
	script := "layout 1x2\nfile 2 " + note + "\nexport 2 " + out + "\n"
	if err := in.Run(strings.NewReader(script)); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatal(err)
	}
	if got := ws.State().Canvases[1].Shapes[0].Text; got != "from disk" {
		t.Fatalf("text = %q", got)
	}
}

func TestQuickAddAndClear(t *testing.T) {
	in, ws, _ := newConsole(t)
	for _, line := range []string{"add 3 rect", "add 3 circle", "add 3 text"} {
		if _, err := in.Exec(line); err != nil {
			t.Fatalf("%q: %v", line, err)
		}
	}
	if n := len(ws.State().Canvases[2].Shapes); n != 3 {
		t.Fatalf("shapes = %d", n)
	}
	in.Exec("clear 3")
	if n := len(ws.State().Canvases[2].Shapes); n != 0 {
		t.Fatalf("shapes after clear = %d", n)
	}
}

func TestDescribePanelPlaceholder(t *testing.T) {
	_, ws, _ := newConsole(t)
	if got := DescribePanel(ws.Panel()); !strings.Contains(got, "Select an object") {
		t.Fatalf("panel = %q", got)
	}
}
