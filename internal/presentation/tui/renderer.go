package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/etchmory/pkg/unified"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// It picks a light or dark style from the terminal background.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}

// Markdown describes a unified tree as a nested bullet list followed by a
// short summary table.
func Markdown(t *unified.Tree, hideValues bool) string {
	var sb strings.Builder
	sb.WriteString("# Unified memory\n\n")

	if t.Empty() {
		sb.WriteString("_No recordings merged._\n")
		return sb.String()
	}

	t.Walk(func(n *unified.Node, depth int) bool {
		d, ok := n.Value()
		if !ok {
			return true
		}
		sb.WriteString(strings.Repeat("  ", depth-1))
		if hideValues {
			fmt.Fprintf(&sb, "- `%s`\n", d.Key)
		} else {
			fmt.Fprintf(&sb, "- `%s` = `%s`\n", d.Key, d.Value.Text())
		}
		return true
	})

	s := t.Stats()
	sb.WriteString("\n| Nodes | Histories | Longest | Branch points |\n|---|---|---|---|\n")
	fmt.Fprintf(&sb, "| %d | %d | %d | %d |\n", s.Nodes, s.Leaves, s.MaxDepth, s.Branches)
	return sb.String()
}
