package memory

import (
	"strings"

	"github.com/aretw0/etchmory/pkg/domain"
	"github.com/aretw0/etchmory/pkg/list"
	"github.com/aretw0/etchmory/pkg/ports"
)

// LinearTag prefixes tokens produced by Linear.
const LinearTag = "lm"

// Linear records decisions in an append-only doubly linked list.
type Linear struct {
	life  Lifecycle
	trace list.List[domain.Decision]
	cfg   config
}

var _ ports.Recorder = (*Linear)(nil)

// NewLinear creates an Active linear recorder.
func NewLinear(opts ...Option) *Linear {
	return &Linear{cfg: newConfig(opts)}
}

// Backend returns LinearTag.
func (m *Linear) Backend() string { return LinearTag }

// Size is the number of marked decisions.
func (m *Linear) Size() int { return m.trace.Len() }

// Active reports whether decisions may still be marked.
func (m *Linear) Active() bool { return m.life.Active() }

// Mark appends a decision in O(1).
func (m *Linear) Mark(key string, value domain.Value) error {
	d := domain.NewDecision(key, value)
	if err := m.life.Admit(d); err != nil {
		return err
	}
	m.trace.PushBack(d)
	m.cfg.marked(LinearTag, key, m.trace.Len())
	return nil
}

// Recall scans the trace for key.
func (m *Linear) Recall(key string) (domain.Value, error) {
	if err := m.life.EnsureComplete("recall"); err != nil {
		return domain.Value{}, err
	}
	e, ok := m.trace.Find(func(d domain.Decision) bool { return d.Key == key })
	if !ok {
		return domain.Value{}, domain.UnknownDecision(key)
	}
	return e.Value.Value, nil
}

// Replay walks the trace head to tail.
func (m *Linear) Replay() (ports.Sequence, error) {
	if err := m.life.EnsureComplete("replay"); err != nil {
		return nil, err
	}
	return &linearSequence{next: m.trace.Front()}, nil
}

// Complete locks the recording.
func (m *Linear) Complete() error {
	done, err := m.life.Complete(m.trace.Len(), nil)
	if done {
		m.cfg.completed(LinearTag, m.trace.Len())
	}
	return err
}

// Token joins the escaped items with ':' behind LinearTag, for example
// "lm:coin/sheads:roll/n4". See FormatItem for the item layout.
func (m *Linear) Token() (string, error) {
	if err := m.life.EnsureComplete("derive a token from"); err != nil {
		return "", err
	}
	parts := make([]string, 0, m.trace.Len()+1)
	parts = append(parts, LinearTag)
	m.trace.Each(func(d domain.Decision) {
		parts = append(parts, FormatItem(d))
	})
	return strings.Join(parts, ":"), nil
}

type linearSequence struct {
	next *list.Element[domain.Decision]
}

func (s *linearSequence) Next() (domain.Decision, bool) {
	if s.next == nil {
		return domain.Decision{}, false
	}
	d := s.next.Value
	s.next = s.next.Next()
	return d, true
}
