package unified

import (
	"strings"

	"github.com/aretw0/etchmory/pkg/domain"
)

// Display renders the tree as indented text: a newline, two spaces per level
// and the node label. The root prints as ⏺; other nodes print their key,
// followed by " = value" unless hideValues is set.
func (t *Tree) Display(hideValues bool) string {
	var sb strings.Builder
	t.graph.Walk(func(n *Node, depth int) bool {
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(Label(n, hideValues))
		return true
	})
	return sb.String()
}

// Label is the display text of a single node.
func Label(n *Node, hideValues bool) string {
	d, ok := n.Value()
	if !ok {
		return "⏺"
	}
	if hideValues {
		return d.Key
	}
	return d.Key + " = " + d.Value.Text()
}

// Stats summarizes the shape of a tree.
type Stats struct {
	Nodes    int `json:"nodes"`    // Nodes below the root
	Leaves   int `json:"leaves"`   // Distinct complete histories
	MaxDepth int `json:"maxDepth"` // Longest history
	Branches int `json:"branches"` // Nodes with more than one child (divergence points)
}

// Stats walks the tree once.
func (t *Tree) Stats() Stats {
	var s Stats
	t.graph.Walk(func(n *Node, depth int) bool {
		if !n.IsRoot() {
			s.Nodes++
			if n.IsLeaf() {
				s.Leaves++
			}
		}
		if len(n.Children()) > 1 {
			s.Branches++
		}
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		return true
	})
	return s
}

// Paths returns every root-to-leaf history in pre-order.
func (t *Tree) Paths() [][]domain.Decision {
	var (
		paths  [][]domain.Decision
		prefix []domain.Decision
	)
	t.graph.Walk(func(n *Node, depth int) bool {
		if n.IsRoot() {
			return true
		}
		d, _ := n.Value()
		prefix = append(prefix[:depth-1], d)
		if n.IsLeaf() {
			paths = append(paths, append([]domain.Decision(nil), prefix...))
		}
		return true
	})
	return paths
}

// Walk visits every node in depth-first pre-order with its depth (the root is
// depth 0). Returning false skips the children of that node.
func (t *Tree) Walk(visit func(n *Node, depth int) bool) {
	t.graph.Walk(visit)
}
