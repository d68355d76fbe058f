// Package document implements the serialized form of decision trees.
//
// A document is one JSON object with a "root" node. Every node carries its
// decision under "value" (null for the root) and its ordered "children":
//
//	{"root":{"value":null,"children":[{"value":{"key":"a","value":1},"children":[]}]}}
//
// Encoding is deterministic, so Encode(Decode(Encode(t))) equals Encode(t) byte for byte.
package document

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/etchmory/pkg/domain"
	"github.com/aretw0/etchmory/pkg/tree"
)

type node struct {
	Value    *domain.Decision `json:"value"`
	Children []*node          `json:"children"`
}

type envelope struct {
	Root *node `json:"root"`
}

// Encode serializes t starting at its root.
func Encode(t *tree.Tree[domain.Decision]) ([]byte, error) {
	type pair struct {
		src *tree.Node[domain.Decision]
		dst *node
	}

	root := &node{Children: []*node{}}
	stack := []pair{{src: t.Root(), dst: root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, child := range top.src.Children() {
			d, _ := child.Value()
			out := &node{Value: &d, Children: []*node{}}
			top.dst.Children = append(top.dst.Children, out)
			stack = append(stack, pair{src: child, dst: out})
		}
	}

	data, err := json.Marshal(envelope{Root: root})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tree: %w", err)
	}
	return data, nil
}

// Decode rebuilds a tree from data. It fails with domain.ErrInvalidDocument
// when the text is not a document, when the root carries a decision, when a
// child carries none, or when two siblings hold the same key and value.
func Decode(data []byte) (*tree.Tree[domain.Decision], error) {
	var doc envelope
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, invalid("failed to unmarshal tree: %v", err)
	}
	if doc.Root == nil {
		return nil, invalid("document has no root")
	}
	if doc.Root.Value != nil {
		return nil, invalid("root must not carry a decision")
	}

	type pair struct {
		src *node
		dst *tree.Node[domain.Decision]
	}

	t := tree.New[domain.Decision]()
	stack := []pair{{src: doc.Root, dst: t.Root()}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		seen := make(map[domain.Decision]struct{}, len(top.src.Children))
		for _, child := range top.src.Children {
			if child == nil || child.Value == nil {
				return nil, invalid("non-root node without a decision")
			}
			if _, dup := seen[*child.Value]; dup {
				return nil, invalid("duplicate sibling %q = %s", child.Value.Key, child.Value.Value.Text())
			}
			seen[*child.Value] = struct{}{}

			out := top.dst.Append(tree.NewNode(*child.Value))
			stack = append(stack, pair{src: child, dst: out})
		}
	}
	return t, nil
}

func invalid(format string, args ...any) error {
	return domain.NewError(domain.KindInvalidDocument, "", fmt.Sprintf(format, args...))
}
