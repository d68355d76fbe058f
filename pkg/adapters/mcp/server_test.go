package mcp

import (
	"context"
	"testing"

	"github.com/aretw0/etchmory"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	eng, err := etchmory.New()
	require.NoError(t, err)
	return NewServer(eng)
}

func call(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func TestMergeTokenAndDisplay(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	for i, tok := range []string{"lm:a/n1:b/n2", "lm:a/n1:c/sx"} {
		args := map[string]any{"token": tok}
		res, err := s.handleMergeToken(ctx, call("merge_token", args), args)
		require.NoError(t, err)
		assert.Equal(t, i+1, res.Merges)
		assert.Equal(t, i+1, res.Stats.Leaves)
	}

	res, err := s.handleDisplayTree(ctx, call("display_tree", map[string]any{}))
	require.NoError(t, err)
	assert.Equal(t, "\n⏺\n  a = 1\n    b = 2\n    c = x", resultText(t, res))

	res, err = s.handleDisplayTree(ctx, call("display_tree", map[string]any{"values": false}))
	require.NoError(t, err)
	assert.Equal(t, "\n⏺\n  a\n    b\n    c", resultText(t, res))

	res, err = s.handleDisplayTree(ctx, call("display_tree", map[string]any{"format": "mermaid"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "graph TD")

	res, err = s.handleDisplayTree(ctx, call("display_tree", map[string]any{"format": "svg"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestMergeToken_Invalid(t *testing.T) {
	s := newTestServer(t)
	args := map[string]any{"token": "gm::{}"}
	_, err := s.handleMergeToken(context.Background(), call("merge_token", args), args)
	assert.Error(t, err)
}

func TestGetTreeImportAndResource(t *testing.T) {
	src := newTestServer(t)
	ctx := context.Background()
	args := map[string]any{"token": "lm:a/n1:b/btrue"}
	_, err := src.handleMergeToken(ctx, call("merge_token", args), args)
	require.NoError(t, err)

	res, err := src.handleGetTree(ctx, call("get_tree", nil))
	require.NoError(t, err)
	doc := resultText(t, res)

	contents, err := src.readTree(ctx, mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Equal(t, doc, contents[0].(mcp.TextResourceContents).Text)

	dst := newTestServer(t)
	res, err = dst.handleImportTree(ctx, call("import_tree", map[string]any{"document": doc}))
	require.NoError(t, err)
	assert.False(t, res.IsError, resultText(t, res))

	res, err = dst.handleGetTree(ctx, call("get_tree", nil))
	require.NoError(t, err)
	assert.Equal(t, doc, resultText(t, res))

	res, err = dst.handleImportTree(ctx, call("import_tree", map[string]any{"document": doc}))
	require.NoError(t, err)
	assert.True(t, res.IsError, "second import conflicts")

	res, err = dst.handleImportTree(ctx, call("import_tree", map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError, "document is required")
}
