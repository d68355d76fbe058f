package tree_test

import (
	"testing"

	"github.com/aretw0/etchmory/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// build returns:
//
//	root
//	├── a
//	│   ├── b
//	│   └── c
//	└── d
func build() *tree.Tree[string] {
	t := tree.New[string]()
	a := t.Root().Append(tree.NewNode("a"))
	a.Append(tree.NewNode("b"))
	a.Append(tree.NewNode("c"))
	t.Root().Append(tree.NewNode("d"))
	return t
}

func labels(t *tree.Tree[string]) []string {
	var out []string
	t.Traverse(func(n *tree.Node[string]) {
		v, ok := n.Value()
		if !ok {
			v = "<root>"
		}
		out = append(out, v)
	})
	return out
}

func TestTraverse_PreOrder(t *testing.T) {
	assert.Equal(t, []string{"<root>", "a", "b", "c", "d"}, labels(build()))
}

func TestSearch(t *testing.T) {
	tr := build()

	n, ok := tr.Search(func(n *tree.Node[string]) bool {
		v, _ := n.Value()
		return v == "c"
	})
	require.True(t, ok)
	v, _ := n.Value()
	assert.Equal(t, "c", v)

	_, ok = tr.Search(func(n *tree.Node[string]) bool {
		v, _ := n.Value()
		return v == "zzz"
	})
	assert.False(t, ok)
}

func TestSearch_ReturnsFirstInPreOrder(t *testing.T) {
	tr := tree.New[int]()
	left := tr.Root().Append(tree.NewNode(1))
	left.Append(tree.NewNode(7))
	tr.Root().Append(tree.NewNode(7))

	n, ok := tr.Search(func(n *tree.Node[int]) bool {
		v, has := n.Value()
		return has && v == 7
	})
	require.True(t, ok)
	assert.Same(t, left.Children()[0], n)
}

func TestSearch_MatchesRoot(t *testing.T) {
	tr := build()
	n, ok := tr.Search(func(n *tree.Node[string]) bool { return n.IsRoot() })
	require.True(t, ok)
	assert.Same(t, tr.Root(), n)
}

func TestWalk_DepthAndPruning(t *testing.T) {
	tr := build()
	depths := map[string]int{}
	tr.Walk(func(n *tree.Node[string], depth int) bool {
		v, _ := n.Value()
		depths[v] = depth
		return v != "a"
	})
	assert.Equal(t, map[string]int{"": 0, "a": 1, "d": 1}, depths)
}

func TestChildAndLen(t *testing.T) {
	tr := build()
	assert.Equal(t, 4, tr.Len())
	assert.False(t, tr.Empty())
	assert.True(t, tree.New[string]().Empty())

	c, ok := tr.Root().Child(func(v string) bool { return v == "d" })
	require.True(t, ok)
	assert.True(t, c.IsLeaf())

	_, ok = tr.Root().Child(func(v string) bool { return v == "b" })
	assert.False(t, ok, "Child only looks at direct children")
}

func TestWalk_DeepChainDoesNotRecurse(t *testing.T) {
	tr := tree.New[int]()
	cur := tr.Root()
	for i := 0; i < 200000; i++ {
		cur = cur.Append(tree.NewNode(i))
	}
	assert.Equal(t, 200000, tr.Len())

	n, ok := tr.Search(func(n *tree.Node[int]) bool { return n.IsLeaf() })
	require.True(t, ok)
	v, _ := n.Value()
	assert.Equal(t, 199999, v)
}
