package session_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/aretw0/etchmory/pkg/domain"
	"github.com/aretw0/etchmory/pkg/memory"
	"github.com/aretw0/etchmory/pkg/ports"
	"github.com/aretw0/etchmory/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager() *session.Manager {
	return session.NewManager(func() ports.Recorder { return memory.NewLinear() })
}

func TestManager_Lifecycle(t *testing.T) {
	mgr := newManager()
	ctx := context.Background()

	id, err := mgr.Start(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	require.NoError(t, mgr.Mark(ctx, id, "a", domain.Number(1)))
	assert.ErrorIs(t, mgr.Mark(ctx, id, "a", domain.Number(2)), domain.ErrDuplicateDecision)

	token, err := mgr.Complete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "lm:a/n1", token)

	again, err := mgr.Complete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, token, again)

	assert.ErrorIs(t, mgr.Mark(ctx, id, "b", domain.Number(2)), domain.ErrLifecycleViolation)

	ids, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{id}, ids)

	require.NoError(t, mgr.Delete(ctx, id))
	require.NoError(t, mgr.Delete(ctx, id), "deleting twice is harmless")
	assert.ErrorIs(t, mgr.Mark(ctx, id, "c", domain.Number(3)), domain.ErrRecordingNotFound)
}

func TestManager_SerializesWriters(t *testing.T) {
	mgr := newManager()
	ctx := context.Background()
	id, err := mgr.Start(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, mgr.Mark(ctx, id, fmt.Sprintf("k%d", i), domain.Number(float64(i))))
		}(i)
	}
	wg.Wait()

	err = mgr.WithRecording(ctx, id, func(_ context.Context, rec ports.Recorder) error {
		assert.Equal(t, 50, rec.Size())
		return nil
	})
	require.NoError(t, err)
}

func TestManager_CanceledContext(t *testing.T) {
	mgr := newManager()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mgr.Start(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
