package console

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/example/gridsketch/internal/theme"
	"github.com/example/gridsketch/internal/workspace"
)

const (
	logLines     = 200
	refreshEvery = 250 * time.Millisecond
)

type refreshMsg time.Time

func refresh() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

type styles struct {
	title  lipgloss.Style
	muted  lipgloss.Style
	err    lipgloss.Style
	prompt lipgloss.Style
	box    lipgloss.Style
	side   lipgloss.Style
	toast  lipgloss.Style
}

func newStyles(th *theme.Theme) styles {
	c := func(col color.RGBA) lipgloss.Color {
		col.A = 0xff
		return lipgloss.Color(theme.Hex(col))
	}
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(c(th.Accent)),
		muted:  lipgloss.NewStyle().Foreground(c(th.PanelMuted)),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		prompt: lipgloss.NewStyle().Foreground(c(th.Accent)).Bold(true),
		box:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(c(th.CanvasBorder)).Padding(0, 1),
		side:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(c(th.Accent)).Padding(0, 1),
		toast:  lipgloss.NewStyle().Foreground(c(th.ToastText)).Background(c(th.ToastBackground)).Padding(0, 1),
	}
}

// Model is the bubbletea model for the interactive console.
type Model struct {
	in     *Interpreter
	ws     *workspace.Workspace
	buf    *bytes.Buffer
	input  []rune
	log    []string
	width  int
	height int
	st     styles
}

// NewModel builds the interactive console over ws.
func NewModel(ws *workspace.Workspace, th *theme.Theme) Model {
	if th == nil {
		th = theme.Default()
	}
	buf := &bytes.Buffer{}
	return Model{
		in:  New(ws, buf),
		ws:  ws,
		buf: buf,
		log: []string{"Type help for commands, quit to leave."},
		st:  newStyles(th),
	}
}

func (m Model) Init() tea.Cmd {
	return refresh()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case refreshMsg:
		return m, refresh()
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyBackspace:
			if len(m.input) > 0 {
				m.input = m.input[:len(m.input)-1]
			}
		case tea.KeySpace:
			m.input = append(m.input, ' ')
		case tea.KeyRunes:
			m.input = append(m.input, msg.Runes...)
		}
	}
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(string(m.input))
	m.input = nil
	if line == "" {
		return m, nil
	}
	m.log = append(m.log, m.st.prompt.Render("> ")+line)
	m.buf.Reset()
	done, err := m.in.Exec(line)
	if out := strings.TrimRight(m.buf.String(), "\n"); out != "" {
		m.log = append(m.log, strings.Split(out, "\n")...)
	}
	if err != nil {
		m.log = append(m.log, m.st.err.Render(err.Error()))
	}
	if len(m.log) > logLines {
		m.log = m.log[len(m.log)-logLines:]
	}
	if done {
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	st := m.ws.State()
	side := m.st.title.Render("Canvases") + "\n"
	for _, c := range st.Canvases {
		side += m.st.muted.Render(describeCanvas(c)) + "\n"
	}
	side += "\n" + m.st.title.Render("Properties") + "\n" + strings.TrimRight(DescribePanel(m.ws.Panel()), "\n")
	if st.Toast != nil {
		side += "\n\n" + m.st.toast.Render(st.Toast.Text)
	}

	logHeight := m.height - 4
	if logHeight < 5 {
		logHeight = 20
	}
	lines := m.log
	if len(lines) > logHeight {
		lines = lines[len(lines)-logHeight:]
	}
	main := strings.Join(lines, "\n") + "\n" + m.st.prompt.Render("> ") + string(m.input) + "_"

	sideWidth := 44
	mainWidth := m.width - sideWidth - 6
	if mainWidth < 30 {
		mainWidth = 60
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.st.box.Width(mainWidth).Render(main),
		m.st.side.Width(sideWidth).Render(side),
	)
}

func describeCanvas(c workspace.CanvasState) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#%d %dx%d %s", c.Number, c.Width, c.Height, strings.Repeat("▪", min(len(c.Shapes), 10)))
	if c.Highlighted {
		sb.WriteString(" ⇣")
	}
	for _, sh := range c.Shapes {
		if sh.Selected {
			sb.WriteString(" [" + string(sh.Kind) + "]")
		}
	}
	return sb.String()
}

// RunTUI starts the full-screen console and blocks until it exits.
func RunTUI(ws *workspace.Workspace, th *theme.Theme) error {
	p := tea.NewProgram(NewModel(ws, th), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
