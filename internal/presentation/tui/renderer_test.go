package tui_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/etchmory/internal/presentation/tui"
	"github.com/aretw0/etchmory/pkg/domain"
	"github.com/aretw0/etchmory/pkg/memory"
	"github.com/aretw0/etchmory/pkg/unified"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown(t *testing.T) {
	u := unified.New()
	for _, second := range []string{"b", "c"} {
		rec := memory.NewLinear()
		require.NoError(t, rec.Mark("a", domain.Number(1)))
		require.NoError(t, rec.Mark(second, domain.Bool(true)))
		require.NoError(t, rec.Complete())
		require.NoError(t, u.Merge(rec))
	}

	md := tui.Markdown(u, false)
	assert.Contains(t, md, "- `a` = `1`\n  - `b` = `true`\n  - `c` = `true`\n")
	assert.Contains(t, md, "| 3 | 2 | 2 | 1 |")

	assert.Contains(t, tui.Markdown(u, true), "- `a`\n  - `b`\n")
	assert.Contains(t, tui.Markdown(unified.New(), false), "No recordings merged")
}

func TestNewRenderer(t *testing.T) {
	render, err := tui.NewRenderer()
	require.NoError(t, err)

	out, err := render("# Title\n\n- item\n")
	require.NoError(t, err)
	assert.Contains(t, out, "item")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), "___")
}
