package ports

import (
	"iter"

	"github.com/aretw0/etchmory/pkg/domain"
)

// Sequence is a lazy, forward-only cursor over decisions in mark order.
// Once exhausted it stays exhausted; call Replay again for a fresh one.
type Sequence interface {
	// Next returns the next decision, or false when the sequence is exhausted.
	Next() (domain.Decision, bool)
}

// Replayer hands out independent replay sequences.
type Replayer interface {
	// Replay returns a fresh sequence over the recorded decisions.
	// It fails with domain.ErrLifecycleViolation while the recording is still active.
	Replay() (Sequence, error)
}

// Recorder tracks the decisions made during one execution cycle.
//
// A recorder starts Active: decisions may be marked but not read back. After
// Complete it is permanently read-only and may be recalled, replayed and
// tokenized. Implementations are not safe for concurrent use while Active.
type Recorder interface {
	Replayer

	// Mark records the outcome of a decision. Keys are unique per recording.
	// Non-finite numbers and invalid UTF-8 fail with domain.ErrInvalidValue.
	Mark(key string, value domain.Value) error

	// Recall returns the outcome recorded for key.
	Recall(key string) (domain.Value, error)

	// Complete locks the recording. Calling it again is a no-op.
	Complete() error

	// Token derives a deterministic string from the full ordered trace.
	Token() (string, error)

	// Size is the number of marked decisions.
	Size() int

	// Active reports whether decisions may still be marked.
	Active() bool

	// Backend is the short tag identifying the implementation ("lm", "gm").
	Backend() string
}

// Collect drains seq into a slice.
func Collect(seq Sequence) []domain.Decision {
	var out []domain.Decision
	for d, ok := seq.Next(); ok; d, ok = seq.Next() {
		out = append(out, d)
	}
	return out
}

// All adapts seq to a range-over-func iterator. The iterator shares the
// cursor, so ranging over it twice yields nothing the second time.
func All(seq Sequence) iter.Seq[domain.Decision] {
	return func(yield func(domain.Decision) bool) {
		for d, ok := seq.Next(); ok; d, ok = seq.Next() {
			if !yield(d) {
				return
			}
		}
	}
}
