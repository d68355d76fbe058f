package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/etchmory/internal/config"
	"github.com/aretw0/etchmory/internal/presentation/graph"
	"github.com/aretw0/etchmory/internal/presentation/tui"
	"github.com/aretw0/etchmory/pkg/unified"
	"golang.org/x/term"
)

// renderTree writes t to w in the requested format. Markdown goes through
// glamour only when styled is true.
func renderTree(w io.Writer, t *unified.Tree, format string, hideValues, styled bool) error {
	var out string
	switch format {
	case config.FormatJSON:
		text, err := t.ToJSON()
		if err != nil {
			return err
		}
		out = text
	case config.FormatDisplay:
		out = strings.TrimPrefix(t.Display(hideValues), "\n")
	case config.FormatMermaid:
		out = graph.GenerateMermaid(t, hideValues, nil)
	case config.FormatMarkdown:
		out = tui.Markdown(t, hideValues)
		if styled {
			render, err := tui.NewRenderer()
			if err != nil {
				return err
			}
			if out, err = render(out); err != nil {
				return fmt.Errorf("failed to render markdown: %w", err)
			}
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err := io.WriteString(w, out)
	return err
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
