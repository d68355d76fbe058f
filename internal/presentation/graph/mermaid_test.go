package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/etchmory/internal/presentation/graph"
	"github.com/aretw0/etchmory/pkg/domain"
	"github.com/aretw0/etchmory/pkg/memory"
	"github.com/aretw0/etchmory/pkg/unified"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTree(t *testing.T) *unified.Tree {
	t.Helper()
	u := unified.New()
	for _, trace := range [][]domain.Decision{
		{domain.NewDecision("a", domain.Number(1)), domain.NewDecision("b", domain.String(`say "hi"`))},
		{domain.NewDecision("a", domain.Number(1)), domain.NewDecision("c", domain.Bool(true))},
	} {
		rec := memory.NewGraph()
		for _, d := range trace {
			require.NoError(t, rec.Mark(d.Key, d.Value))
		}
		require.NoError(t, rec.Complete())
		require.NoError(t, u.Merge(rec))
	}
	return u
}

func TestGenerateMermaid(t *testing.T) {
	got := graph.GenerateMermaid(buildTree(t), false, nil)

	for _, want := range []string{
		"graph TD\n",
		`n0(("⏺"))`,
		`n1["a = 1"]`,
		`n2(["b = say #quot;hi#quot;"])`,
		`n3(["c = true"])`,
		"n0 --> n1",
		"n1 --> n2",
		"n1 --> n3",
	} {
		assert.Contains(t, got, want)
	}
	assert.NotContains(t, got, "classDef")
}

func TestGenerateMermaid_HideValues(t *testing.T) {
	got := graph.GenerateMermaid(buildTree(t), true, nil)
	assert.Contains(t, got, `n1["a"]`)
	assert.NotContains(t, got, "a = 1")
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	got := graph.GenerateMermaid(buildTree(t), true, &graph.Overlay{
		Path: []domain.Decision{
			domain.NewDecision("a", domain.Number(1)),
			domain.NewDecision("c", domain.Bool(true)),
		},
	})

	assert.Contains(t, got, "class n0 visited;")
	assert.Contains(t, got, "class n1 visited;")
	assert.Contains(t, got, "class n3 current;")
	assert.False(t, strings.Contains(got, "class n2 visited;"))
}
