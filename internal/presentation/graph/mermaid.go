package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/etchmory/pkg/domain"
	"github.com/aretw0/etchmory/pkg/unified"
)

// Overlay highlights one decision history on the graph.
type Overlay struct {
	Path []domain.Decision // Followed from the root; stops at the first decision not in the tree
}

// GenerateMermaid produces a Mermaid flowchart (graph TD) of a unified tree.
// It applies semantic styling:
// - Root: ((Circle))
// - Leaf (end of a recorded history): ([Stadium])
// - Default: [Rectangle]
// Nodes are numbered in pre-order (n0 is the root), so the output is stable
// for a given tree. An overlay, if provided, styles the nodes along its path.
func GenerateMermaid(t *unified.Tree, hideValues bool, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	ids := make(map[*unified.Node]string)
	t.Walk(func(n *unified.Node, _ int) bool {
		ids[n] = fmt.Sprintf("n%d", len(ids))
		return true
	})

	t.Walk(func(n *unified.Node, _ int) bool {
		opener, closer := "[", "]"
		switch {
		case n.IsRoot():
			opener, closer = "((", "))"
		case n.IsLeaf():
			opener, closer = "([", "])"
		}
		safeID := ids[n]
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(unified.Label(n, hideValues)), closer))

		for _, c := range n.Children() {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", safeID, ids[c]))
		}
		return true
	})

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		current := t.Root()
		sb.WriteString(fmt.Sprintf("    class %s visited;\n", ids[current]))
		for _, d := range overlay.Path {
			child, ok := current.Child(d.Same)
			if !ok {
				break
			}
			current = child
			sb.WriteString(fmt.Sprintf("    class %s visited;\n", ids[current]))
		}
		sb.WriteString(fmt.Sprintf("    class %s current;\n", ids[current]))
	}

	return sb.String()
}

func escapeLabel(s string) string {
	// Mermaid labels are double quoted; swap quotes for #quot; entities.
	return strings.ReplaceAll(s, "\"", "#quot;")
}
