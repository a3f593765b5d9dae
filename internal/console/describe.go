package console

import (
	"fmt"
	"strings"

	"github.com/example/gridsketch/internal/panel"
	"github.com/example/gridsketch/internal/workspace"
)

// Describe renders a workspace snapshot and the panel as plain text.
func Describe(st workspace.State, v panel.View) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "layout %s\n", st.Mode)
	for _, c := range st.Canvases {
		mark := ""
		if c.Highlighted {
			mark = " [drop target]"
		}
		fmt.Fprintf(&sb, "canvas %d %dx%d %d object(s)%s\n", c.Number, c.Width, c.Height, len(c.Shapes), mark)
		for i, sh := range c.Shapes {
			sel := " "
			if sh.Selected {
				sel = "*"
			}
			fmt.Fprintf(&sb, "  %s %d %-9s at %.0f,%.0f size %.0fx%.0f", sel, i+1, sh.Kind, sh.Left, sh.Top, sh.Width, sh.Height)
			if sh.Text != "" {
				fmt.Fprintf(&sb, " %q", sh.Text)
			}
			sb.WriteString("\n")
		}
	}
	sb.WriteString(DescribePanel(v))
	if st.Toast != nil {
		fmt.Fprintf(&sb, "last: %s\n", st.Toast.Text)
	}
	return sb.String()
}

// DescribePanel renders the property panel as plain text.
func DescribePanel(v panel.View) string {
	if v.Empty {
		return v.Placeholder + "\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s on canvas %d\n", v.Title, int(v.Canvas)+1)
	for _, f := range v.Fields {
		value := f.Value
		if f.Label != "" {
			value = f.Label
		}
		fmt.Fprintf(&sb, "  %-8s %s\n", f.Control, value)
	}
	return sb.String()
}
