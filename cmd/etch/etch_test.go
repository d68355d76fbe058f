package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/etchmory"
	"github.com/aretw0/etchmory/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTokens(t *testing.T) {
	tokens, err := readTokens(strings.NewReader("lm:a/n1\n\n  lm:a/n2  \n"), "-")
	require.NoError(t, err)
	assert.Equal(t, []string{"lm:a/n1", "lm:a/n2"}, tokens)

	path := filepath.Join(t.TempDir(), "tokens.txt")
	require.NoError(t, os.WriteFile(path, []byte("x:y\n"), 0o644))
	tokens, err = readTokens(nil, path)
	require.NoError(t, err)
	assert.Equal(t, []string{"x:y"}, tokens)

	_, err = readTokens(nil, filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestRenderTree(t *testing.T) {
	eng, err := etchmory.New()
	require.NoError(t, err)
	tree := eng.NewUnified()
	for _, tok := range []string{"lm:a/n1:b/n2", "lm:a/n1:c/n3"} {
		rec, err := eng.ParseToken(tok)
		require.NoError(t, err)
		require.NoError(t, tree.Merge(rec))
	}

	var buf bytes.Buffer
	require.NoError(t, renderTree(&buf, tree, config.FormatDisplay, false, false))
	assert.Equal(t, "⏺\n  a = 1\n    b = 2\n    c = 3\n", buf.String())

	buf.Reset()
	require.NoError(t, renderTree(&buf, tree, config.FormatMermaid, true, false))
	assert.Contains(t, buf.String(), `n1["a"]`)

	buf.Reset()
	require.NoError(t, renderTree(&buf, tree, config.FormatMarkdown, false, false))
	assert.Contains(t, buf.String(), "- `a` = `1`")

	buf.Reset()
	require.NoError(t, renderTree(&buf, tree, config.FormatJSON, false, false))
	copied, err := eng.LoadUnified(strings.TrimSpace(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, tree.Paths(), copied.Paths())

	assert.Error(t, renderTree(&buf, tree, "svg", false, false))
}

func TestMergeCommand(t *testing.T) {
	dir := t.TempDir()
	tokens := filepath.Join(dir, "tokens.txt")
	require.NoError(t, os.WriteFile(tokens, []byte("lm:a/n1:b/n2\nlm:a/n1:c/n3\n"), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"merge", "--config", filepath.Join(dir, "none.yaml"), "--format", "display", tokens})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "⏺\n  a = 1\n    b = 2\n    c = 3\n", out.String())
}
