// Package unified folds many completed recordings into one prefix-sharing tree.
//
// Each root-to-node path of a unified tree is a decision history shared by at
// least one merged recording. Histories that agree on a prefix share its
// nodes; the first disagreement opens a branch. Sibling branches keep the
// order in which they were first seen.
//
// A Tree is not safe for concurrent use. Callers merging from several
// goroutines must serialize writers themselves.
package unified

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/etchmory/internal/logging"
	"github.com/aretw0/etchmory/pkg/document"
	"github.com/aretw0/etchmory/pkg/domain"
	"github.com/aretw0/etchmory/pkg/ports"
	"github.com/aretw0/etchmory/pkg/tree"
)

// Node is a node of a unified tree.
type Node = tree.Node[domain.Decision]

// Tree is the merge engine and the tree it builds.
type Tree struct {
	graph  *tree.Tree[domain.Decision]
	merges int
	hooks  domain.MergeHooks
	logger *slog.Logger
}

// Option configures a Tree.
type Option func(*Tree)

// WithHooks registers observability hooks.
func WithHooks(hooks domain.MergeHooks) Option {
	return func(t *Tree) {
		t.hooks = hooks
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tree) {
		t.logger = logger
	}
}

// New creates an empty unified tree.
func New(opts ...Option) *Tree {
	t := &Tree{
		graph:  tree.New[domain.Decision](),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// FromJSON creates a unified tree from its serialized form.
func FromJSON(text string, opts ...Option) (*Tree, error) {
	t := New(opts...)
	if err := t.Import(text); err != nil {
		return nil, err
	}
	return t, nil
}

// Root returns the valueless root. The tree must not be modified through it.
func (t *Tree) Root() *Node { return t.graph.Root() }

// Empty reports whether nothing has been merged or imported.
func (t *Tree) Empty() bool { return t.graph.Empty() }

// Merges returns the number of recordings merged so far.
func (t *Tree) Merges() int { return t.merges }

// Merge folds the replay of r into the tree. For every decision the walk
// moves to the child holding the identical key and value, creating it as the
// last child when no such child exists. A recording that cannot be replayed
// leaves the tree untouched.
func (t *Tree) Merge(r ports.Replayer) error {
	seq, err := r.Replay()
	if err != nil {
		return fmt.Errorf("cannot merge recording: %w", err)
	}

	event := domain.MergeEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventMerge},
	}

	current := t.graph.Root()
	for d, ok := seq.Next(); ok; d, ok = seq.Next() {
		event.Depth++
		if existing, found := current.Child(d.Same); found {
			current = existing
			event.Reused++
			continue
		}
		current = current.Append(tree.NewNode(d))
		event.Created++
	}

	t.merges++
	t.logger.Debug("recording merged",
		"depth", event.Depth,
		"created", event.Created,
		"reused", event.Reused,
		"merges", t.merges,
	)
	if t.hooks.OnMerge != nil {
		t.hooks.OnMerge(&event)
	}
	return nil
}

// MergeAll merges rs in order and stops at the first failure.
func (t *Tree) MergeAll(rs ...ports.Replayer) error {
	for i, r := range rs {
		if err := t.Merge(r); err != nil {
			return fmt.Errorf("recording %d: %w", i, err)
		}
	}
	return nil
}

// ToJSON serializes the whole tree from the root.
func (t *Tree) ToJSON() (string, error) {
	data, err := document.Encode(t.graph)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// MarshalJSON implements json.Marshaler with the same layout as ToJSON.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return document.Encode(t.graph)
}

// Import replaces the empty tree with the one serialized in text. Importing
// is construction, not merging: it fails with domain.ErrImportConflict when
// the tree already holds decisions.
func (t *Tree) Import(text string) error {
	if !t.graph.Empty() {
		return domain.NewError(domain.KindImportConflict, "",
			"cannot import into a tree that already has decisions; import before merge()")
	}
	graph, err := document.Decode([]byte(text))
	if err != nil {
		return err
	}
	t.graph = graph
	t.logger.Debug("tree imported", "nodes", graph.Len())
	return nil
}
