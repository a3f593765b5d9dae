// Package console implements the text command language shared by the
// interactive terminal, batch scripts and the HTTP console endpoint.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/example/gridsketch/internal/canvas"
	"github.com/example/gridsketch/internal/dnd"
	"github.com/example/gridsketch/internal/layout"
	"github.com/example/gridsketch/internal/panel"
	"github.com/example/gridsketch/internal/selection"
	"github.com/example/gridsketch/internal/shape"
	"github.com/example/gridsketch/internal/workspace"
)

// ErrUnknownCommand is returned for names the console does not know.
var ErrUnknownCommand = errors.New("unknown command")

type command struct {
	usage string
	help  string
	run   func(in *Interpreter, args []string, rest string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"layout":   {"layout <2x2|1x2|1x3>", "switch grid layout (clears every canvas)", (*Interpreter).layout},
		"drop":     {"drop <canvas> <kind> <x> <y>", "drop a shape kind at canvas coordinates", (*Interpreter).drop},
		"file":     {"file <canvas> <path>...", "drop files from disk (images and plain text)", (*Interpreter).file},
		"paste":    {"paste <canvas>", "insert the clipboard image or text", (*Interpreter).paste},
		"select":   {"select <canvas> <x> <y>", "select the top-most object under a point", (*Interpreter).selectAt},
		"deselect": {"deselect", "clear the selection", (*Interpreter).deselect},
		"move":     {"move <dx> <dy>", "move the selected object", (*Interpreter).move},
		"opacity":  {"opacity <0..1|n%>", "set opacity", control(panel.Opacity)},
		"angle":    {"angle <0..360>", "set rotation in degrees", control(panel.Angle)},
		"scale":    {"scale <0.1..3|n%>", "set uniform scale", control(panel.Scale)},
		"fill":     {"fill <color>", "set fill colour (name or #hex)", control(panel.Fill)},
		"stroke":   {"stroke <color>", "set stroke colour", control(panel.Stroke)},
		"width":    {"width <0..20>", "set stroke width", control(panel.StrokeWidth)},
		"fontsize": {"fontsize <8..72>", "set font size", control(panel.FontSize)},
		"text":     {"text <content>", "replace the selected text", control(panel.Content)},
		"front":    {"front", "bring the selection to front", (*Interpreter).front},
		"back":     {"back", "send the selection to back", (*Interpreter).back},
		"delete":   {"delete", "delete the selection", (*Interpreter).remove},
		"clear":    {"clear <canvas>", "remove every object from a canvas", (*Interpreter).clear},
		"add":      {"add <canvas> rect|circle|text", "quick-add a randomly placed object", (*Interpreter).add},
		"tab":      {"tab elements|properties", "switch the side panel page", (*Interpreter).tab},
		"export":   {"export <canvas> [path]", "save a canvas as PNG", (*Interpreter).export},
		"copy":     {"copy <canvas>", "copy a canvas image to the clipboard", (*Interpreter).copyCanvas},
		"wait":     {"wait", "wait for dropped files to finish loading", (*Interpreter).wait},
		"show":     {"show", "print the workspace state", (*Interpreter).show},
		"help":     {"help", "list commands", (*Interpreter).help},
		"quit":     {"quit", "leave the console", nil},
	}
}

// Interpreter executes console commands against a workspace.
type Interpreter struct {
	ws  *workspace.Workspace
	out io.Writer
}

// New creates an interpreter that writes command output to out.
func New(ws *workspace.Workspace, out io.Writer) *Interpreter {
	return &Interpreter{ws: ws, out: out}
}

// Exec runs one command line. done is true after quit or exit.
func (in *Interpreter) Exec(line string) (done bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}
	name, rest, _ := strings.Cut(line, " ")
	name = strings.ToLower(name)
	rest = strings.TrimSpace(rest)
	if name == "quit" || name == "exit" {
		return true, nil
	}
	cmd, ok := commands[name]
	if !ok {
		return false, fmt.Errorf("%w %q (try help)", ErrUnknownCommand, name)
	}
	return false, cmd.run(in, strings.Fields(rest), rest)
}

// Run executes every line of r, stopping at the first error or quit.
func (in *Interpreter) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		done, err := in.Exec(scanner.Text())
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		if done {
			return nil
		}
	}
	return scanner.Err()
}

func usage(name string) error {
	return fmt.Errorf("usage: %s", commands[name].usage)
}

// ParseCanvas reads a 1-based canvas number.
func ParseCanvas(s string) (canvas.ID, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > layout.Slots {
		return 0, fmt.Errorf("canvas must be 1..%d, got %q", layout.Slots, s)
	}
	return canvas.ID(n - 1), nil
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out[i] = v
	}
	return out, nil
}

func (in *Interpreter) say(format string, args ...any) {
	fmt.Fprintf(in.out, format+"\n", args...)
}

func (in *Interpreter) noSelection() error {
	in.say("nothing selected")
	return nil
}

func (in *Interpreter) layout(args []string, _ string) error {
	if len(args) != 1 {
		return usage("layout")
	}
	m, err := layout.ParseMode(args[0])
	if err != nil {
		return err
	}
	return in.ws.SetMode(m)
}

func (in *Interpreter) drop(args []string, _ string) error {
	if len(args) != 4 {
		return usage("drop")
	}
	id, err := ParseCanvas(args[0])
	if err != nil {
		return err
	}
	pt, err := parseFloats(args[2:])
	if err != nil {
		return err
	}
	if !in.ws.DropTag(id, args[1], pt[0], pt[1]) {
		in.say("nothing dropped")
		return nil
	}
	if msg, ok := in.ws.Notifier().Last(); ok {
		in.say("%s", msg.Text)
	}
	return nil
}

func (in *Interpreter) file(args []string, _ string) error {
	if len(args) < 2 {
		return usage("file")
	}
	id, err := ParseCanvas(args[0])
	if err != nil {
		return err
	}
	files := make([]dnd.File, 0, len(args)-1)
	for _, p := range args[1:] {
		files = append(files, dnd.FromPath(p))
	}
	in.ws.DropFiles(id, files...)
	return nil
}

func (in *Interpreter) paste(args []string, _ string) error {
	if len(args) != 1 {
		return usage("paste")
	}
	id, err := ParseCanvas(args[0])
	if err != nil {
		return err
	}
	return in.ws.Paste(id)
}

func (in *Interpreter) selectAt(args []string, _ string) error {
	if len(args) != 3 {
		return usage("select")
	}
	id, err := ParseCanvas(args[0])
	if err != nil {
		return err
	}
	pt, err := parseFloats(args[1:])
	if err != nil {
		return err
	}
	in.ws.Click(id, pt[0], pt[1])
	if _, ok := in.ws.Selection(); !ok {
		in.say("nothing selected")
	}
	return nil
}

func (in *Interpreter) deselect([]string, string) error {
	in.ws.Deselect()
	return nil
}

func (in *Interpreter) move(args []string, _ string) error {
	if len(args) != 2 {
		return usage("move")
	}
	d, err := parseFloats(args)
	if err != nil {
		return err
	}
	if !in.ws.Move(d[0], d[1]) {
		return in.noSelection()
	}
	return nil
}

func control(c panel.Control) func(*Interpreter, []string, string) error {
	return func(in *Interpreter, _ []string, rest string) error {
		if rest == "" {
			return usage(string(c))
		}
		ok, err := in.ws.Apply(c, rest)
		if err != nil {
			return err
		}
		if !ok {
			if _, selected := in.ws.Selection(); !selected {
				return in.noSelection()
			}
			in.say("%s does not apply to this object", c)
		}
		return nil
	}
}

func (in *Interpreter) front([]string, string) error {
	if !in.ws.BringToFront() {
		return in.noSelection()
	}
	return nil
}

func (in *Interpreter) back([]string, string) error {
	if !in.ws.SendToBack() {
		return in.noSelection()
	}
	return nil
}

func (in *Interpreter) remove([]string, string) error {
	if !in.ws.Delete() {
		return in.noSelection()
	}
	return nil
}

func (in *Interpreter) clear(args []string, _ string) error {
	if len(args) != 1 {
		return usage("clear")
	}
	id, err := ParseCanvas(args[0])
	if err != nil {
		return err
	}
	in.ws.Clear(id)
	return nil
}

func (in *Interpreter) add(args []string, _ string) error {
	if len(args) != 2 {
		return usage("add")
	}
	id, err := ParseCanvas(args[0])
	if err != nil {
		return err
	}
	kind := shape.Kind(strings.ToLower(args[1]))
	if kind == "rect" {
		kind = shape.KindRectangle
	}
	_, err = in.ws.QuickAdd(id, kind)
	return err
}

func (in *Interpreter) tab(args []string, _ string) error {
	if len(args) != 1 {
		return usage("tab")
	}
	t := selection.Tab(strings.ToLower(args[0]))
	if t != selection.TabElements && t != selection.TabProperties {
		return usage("tab")
	}
	in.ws.SetTab(t)
	return nil
}

func (in *Interpreter) export(args []string, _ string) error {
	if len(args) < 1 || len(args) > 2 {
		return usage("export")
	}
	id, err := ParseCanvas(args[0])
	if err != nil {
		return err
	}
	path := ""
	if len(args) == 2 {
		path = args[1]
	}
	in.ws.Wait()
	written, err := in.ws.Save(id, path)
	if err != nil {
		return err
	}
	in.say("saved %s", written)
	return nil
}

func (in *Interpreter) copyCanvas(args []string, _ string) error {
	if len(args) != 1 {
		return usage("copy")
	}
	id, err := ParseCanvas(args[0])
	if err != nil {
		return err
	}
	in.ws.Wait()
	if err := in.ws.Copy(id); err != nil {
		return err
	}
	in.say("copied canvas %d", int(id)+1)
	return nil
}

func (in *Interpreter) wait([]string, string) error {
	in.ws.Wait()
	return nil
}

func (in *Interpreter) show([]string, string) error {
	in.ws.Wait()
	io.WriteString(in.out, Describe(in.ws.State(), in.ws.Panel()))
	return nil
}

func (in *Interpreter) help([]string, string) error {
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		in.say("  %-32s %s", commands[n].usage, commands[n].help)
	}
	in.say("Canvases are numbered 1 (main) to %d. Kinds: %s.", layout.Slots, kindList())
	return nil
}

func kindList() string {
	kinds := shape.DropKinds()
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}
