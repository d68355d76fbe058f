// Package tree provides a generic ordered rooted tree.
//
// Every node owns an ordered list of children. The root carries no value and
// stands for "before anything happened". Search and traversal run in
// depth-first pre-order with an explicit stack, so depth is bounded by memory
// rather than by the goroutine stack.
package tree

// Node is a tree node holding a value of type V, or nothing for the root.
type Node[V any] struct {
	value    V
	sentinel bool
	children []*Node[V]
}

// NewNode creates a detached node holding v.
func NewNode[V any](v V) *Node[V] {
	return &Node[V]{value: v}
}

// Value returns the node payload. ok is false for the root.
func (n *Node[V]) Value() (v V, ok bool) {
	return n.value, !n.sentinel
}

// IsRoot reports whether n is the valueless root.
func (n *Node[V]) IsRoot() bool { return n.sentinel }

// IsLeaf reports whether n has no children.
func (n *Node[V]) IsLeaf() bool { return len(n.children) == 0 }

// Children returns the ordered children. The slice must not be modified.
func (n *Node[V]) Children() []*Node[V] { return n.children }

// Append adds child as the last child of n and returns it.
func (n *Node[V]) Append(child *Node[V]) *Node[V] {
	n.children = append(n.children, child)
	return child
}

// Child returns the first direct child of n that satisfies pred.
func (n *Node[V]) Child(pred func(V) bool) (*Node[V], bool) {
	for _, c := range n.children {
		if pred(c.value) {
			return c, true
		}
	}
	return nil, false
}

// Tree is an ordered rooted tree.
type Tree[V any] struct {
	root *Node[V]
}

// New creates a tree holding only the root.
func New[V any]() *Tree[V] {
	return &Tree[V]{root: &Node[V]{sentinel: true}}
}

// Root returns the valueless root node.
func (t *Tree[V]) Root() *Node[V] { return t.root }

// Empty reports whether nothing hangs below the root.
func (t *Tree[V]) Empty() bool { return t.root.IsLeaf() }

// Search returns the first node, in depth-first pre-order starting at the
// root, for which pred returns true.
func (t *Tree[V]) Search(pred func(*Node[V]) bool) (*Node[V], bool) {
	var found *Node[V]
	t.Walk(func(n *Node[V], _ int) bool {
		if found != nil {
			return false
		}
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

// Traverse calls visit on every node in depth-first pre-order, root included.
func (t *Tree[V]) Traverse(visit func(*Node[V])) {
	t.Walk(func(n *Node[V], _ int) bool {
		visit(n)
		return true
	})
}

// Walk visits nodes in depth-first pre-order together with their depth (the
// root is depth 0). Returning false from visit skips the children of that node.
func (t *Tree[V]) Walk(visit func(n *Node[V], depth int) bool) {
	type frame struct {
		node  *Node[V]
		depth int
	}

	stack := []frame{{node: t.root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !visit(top.node, top.depth) {
			continue
		}

		// Push in reverse so the first child is popped first.
		for i := len(top.node.children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: top.node.children[i], depth: top.depth + 1})
		}
	}
}

// Len returns the number of nodes below the root.
func (t *Tree[V]) Len() int {
	count := -1
	t.Traverse(func(*Node[V]) { count++ })
	return count
}
