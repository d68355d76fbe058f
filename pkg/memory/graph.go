package memory

import (
	"fmt"
	"strings"

	"github.com/aretw0/etchmory/pkg/document"
	"github.com/aretw0/etchmory/pkg/domain"
	"github.com/aretw0/etchmory/pkg/ports"
	"github.com/aretw0/etchmory/pkg/tree"
)

// GraphTag prefixes tokens produced by Graph.
const GraphTag = "gm"

// Graph records decisions as a chain hung below the root of a tree.
// Every node has at most one child: the next decision in the cycle.
// Branching only appears once chains are merged into a unified tree.
type Graph struct {
	life    Lifecycle
	chain   *tree.Tree[domain.Decision]
	current *tree.Node[domain.Decision] // Last marked node; nil once complete
	size    int
	cfg     config
}

var _ ports.Recorder = (*Graph)(nil)

// NewGraph creates an Active tree-backed recorder.
func NewGraph(opts ...Option) *Graph {
	chain := tree.New[domain.Decision]()
	return &Graph{
		chain:   chain,
		current: chain.Root(),
		cfg:     newConfig(opts),
	}
}

// Backend returns GraphTag.
func (g *Graph) Backend() string { return GraphTag }

// Size is the number of marked decisions.
func (g *Graph) Size() int { return g.size }

// Active reports whether decisions may still be marked.
func (g *Graph) Active() bool { return g.life.Active() }

// Mark hangs a new node below the current one and advances to it.
func (g *Graph) Mark(key string, value domain.Value) error {
	d := domain.NewDecision(key, value)
	if err := g.life.Admit(d); err != nil {
		return err
	}
	g.current = g.current.Append(tree.NewNode(d))
	g.size++
	g.cfg.marked(GraphTag, key, g.size)
	return nil
}

// Recall searches the chain depth-first for key.
func (g *Graph) Recall(key string) (domain.Value, error) {
	if err := g.life.EnsureComplete("recall"); err != nil {
		return domain.Value{}, err
	}
	node, ok := g.chain.Search(func(n *tree.Node[domain.Decision]) bool {
		d, has := n.Value()
		return has && d.Key == key
	})
	if !ok {
		return domain.Value{}, domain.UnknownDecision(key)
	}
	d, _ := node.Value()
	return d.Value, nil
}

// Replay follows the unique child from the root until a leaf is reached.
func (g *Graph) Replay() (ports.Sequence, error) {
	if err := g.life.EnsureComplete("replay"); err != nil {
		return nil, err
	}
	return &chainSequence{at: g.chain.Root()}, nil
}

// Complete locks the recording and drops the write cursor.
func (g *Graph) Complete() error {
	done, err := g.life.Complete(g.size, func() { g.current = nil })
	if done {
		g.cfg.completed(GraphTag, g.size)
	}
	return err
}

// Token serializes the chain behind GraphTag, for example
// `gm::{"root":{"value":null,"children":[...]}}`.
func (g *Graph) Token() (string, error) {
	if err := g.life.EnsureComplete("derive a token from"); err != nil {
		return "", err
	}
	data, err := document.Encode(g.chain)
	if err != nil {
		return "", fmt.Errorf("failed to encode chain: %w", err)
	}
	return GraphTag + "::" + string(data), nil
}

// Tree exposes the underlying chain. It must be treated as read-only.
func (g *Graph) Tree() *tree.Tree[domain.Decision] { return g.chain }

// Display renders the chain top to bottom, one "key = value" line per
// decision with a ⇣ between consecutive decisions. The root prints as ⏺.
func (g *Graph) Display() string {
	var sb strings.Builder
	g.chain.Traverse(func(n *tree.Node[domain.Decision]) {
		if d, ok := n.Value(); ok {
			fmt.Fprintf(&sb, "%s = %s", d.Key, d.Value.Text())
		} else {
			sb.WriteString("⏺")
		}
		if !n.IsLeaf() {
			sb.WriteString("\n⇣")
		}
		sb.WriteString("\n")
	})
	return sb.String()
}

type chainSequence struct {
	at *tree.Node[domain.Decision]
}

func (s *chainSequence) Next() (domain.Decision, bool) {
	if s.at == nil || s.at.IsLeaf() {
		s.at = nil
		return domain.Decision{}, false
	}
	s.at = s.at.Children()[0]
	d, _ := s.at.Value()
	return d, true
}
