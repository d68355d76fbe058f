package ports

import (
	"fmt"
	"math"
	"testing"

	"github.com/aretw0/etchmory/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRecorderContract runs a suite of tests to verify that a Recorder
// implementation honors the lifecycle contract. newRecorder must return a
// fresh Active recorder on every call.
func RunRecorderContract(t *testing.T, newRecorder func() Recorder) {
	t.Helper()

	sample := []domain.Decision{
		domain.NewDecision("a", domain.Number(1)),
		domain.NewDecision("b", domain.String("two")),
		domain.NewDecision("c", domain.Bool(true)),
	}

	marked := func(t *testing.T, decisions []domain.Decision) Recorder {
		t.Helper()
		r := newRecorder()
		for _, d := range decisions {
			require.NoError(t, r.Mark(d.Key, d.Value))
		}
		return r
	}

	t.Run("Size and idempotent Complete", func(t *testing.T) {
		r := marked(t, sample)
		assert.True(t, r.Active())
		assert.Equal(t, len(sample), r.Size())

		require.NoError(t, r.Complete())
		require.NoError(t, r.Complete(), "second Complete must be a no-op")
		assert.False(t, r.Active())
		assert.Equal(t, len(sample), r.Size())
	})

	t.Run("Recall", func(t *testing.T) {
		r := marked(t, sample)
		require.NoError(t, r.Complete())

		for _, d := range sample {
			got, err := r.Recall(d.Key)
			require.NoError(t, err)
			assert.Equal(t, d.Value, got)
		}

		_, err := r.Recall("missing")
		assert.ErrorIs(t, err, domain.ErrUnknownDecision)
	})

	t.Run("Replay is ordered and re-replayable", func(t *testing.T) {
		r := marked(t, sample)
		require.NoError(t, r.Complete())

		first, err := r.Replay()
		require.NoError(t, err)
		second, err := r.Replay()
		require.NoError(t, err)

		assert.Equal(t, sample, Collect(first))
		_, ok := first.Next()
		assert.False(t, ok, "an exhausted sequence stays exhausted")

		assert.Equal(t, sample, Collect(second), "sequences do not share a cursor")
		assert.Len(t, Collect(mustReplay(t, r)), r.Size())
	})

	t.Run("Token determinism", func(t *testing.T) {
		one := marked(t, sample)
		two := marked(t, sample)
		require.NoError(t, one.Complete())
		require.NoError(t, two.Complete())

		t1, err := one.Token()
		require.NoError(t, err)
		t2, err := two.Token()
		require.NoError(t, err)
		assert.Equal(t, t1, t2)

		changed := append([]domain.Decision(nil), sample...)
		changed[1] = domain.NewDecision("b", domain.String("three"))
		three := marked(t, changed)
		require.NoError(t, three.Complete())
		t3, err := three.Token()
		require.NoError(t, err)
		assert.NotEqual(t, t1, t3)

		retyped := append([]domain.Decision(nil), sample...)
		retyped[0] = domain.NewDecision("a", domain.String("1"))
		four := marked(t, retyped)
		require.NoError(t, four.Complete())
		t4, err := four.Token()
		require.NoError(t, err)
		assert.NotEqual(t, t1, t4, "a number and its string form must not collide")
	})

	t.Run("Guards", func(t *testing.T) {
		r := marked(t, sample[:1])

		_, err := r.Recall("a")
		assert.ErrorIs(t, err, domain.ErrLifecycleViolation, "recall while active")
		_, err = r.Replay()
		assert.ErrorIs(t, err, domain.ErrLifecycleViolation, "replay while active")
		_, err = r.Token()
		assert.ErrorIs(t, err, domain.ErrLifecycleViolation, "token while active")

		err = r.Mark("a", domain.Number(99))
		assert.ErrorIs(t, err, domain.ErrDuplicateDecision)
		assert.Equal(t, 1, r.Size(), "failed mark must not change the trace")

		require.NoError(t, r.Complete())
		err = r.Mark("z", domain.Number(1))
		assert.ErrorIs(t, err, domain.ErrLifecycleViolation, "mark after complete")
		assert.Equal(t, 1, r.Size())

		got, err := r.Recall("a")
		require.NoError(t, err)
		assert.Equal(t, domain.Number(1), got, "duplicate mark must not overwrite")
	})

	t.Run("Unrecordable values", func(t *testing.T) {
		r := marked(t, sample[:1])

		bad := []struct {
			key   string
			value domain.Value
		}{
			{"nan", domain.Number(math.NaN())},
			{"inf", domain.Number(math.Inf(1))},
			{"neg", domain.Number(math.Inf(-1))},
			{"str", domain.String("k\xff")},
			{"k\xff", domain.Number(1)},
		}
		for _, b := range bad {
			err := r.Mark(b.key, b.value)
			assert.ErrorIs(t, err, domain.ErrInvalidValue, "mark %q", b.key)
			assert.Equal(t, 1, r.Size(), "failed mark must not change the trace")
		}

		require.NoError(t, r.Mark("nan", domain.Number(0)), "a rejected key stays available")
		require.NoError(t, r.Complete())
		_, err := r.Token()
		require.NoError(t, err)
	})

	t.Run("Empty completion", func(t *testing.T) {
		r := newRecorder()
		err := r.Complete()
		assert.ErrorIs(t, err, domain.ErrEmptyCompletion)
		assert.True(t, r.Active(), "failed completion leaves the recorder active")

		require.NoError(t, r.Mark("late", domain.Bool(false)))
		require.NoError(t, r.Complete())
	})

	t.Run("Many keys", func(t *testing.T) {
		r := newRecorder()
		for i := 0; i < 250; i++ {
			require.NoError(t, r.Mark(fmt.Sprintf("k%03d", i), domain.Number(float64(i))))
		}
		require.NoError(t, r.Complete())
		assert.Equal(t, 250, r.Size())

		v, err := r.Recall("k249")
		require.NoError(t, err)
		assert.Equal(t, domain.Number(249), v)
	})
}

func mustReplay(t *testing.T, r Replayer) Sequence {
	t.Helper()
	seq, err := r.Replay()
	require.NoError(t, err)
	return seq
}
