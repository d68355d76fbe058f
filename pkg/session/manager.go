package session

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/etchmory/internal/logging"
	"github.com/aretw0/etchmory/pkg/domain"
	"github.com/aretw0/etchmory/pkg/ports"
	"github.com/google/uuid"
)

// Factory creates a fresh Active recorder.
type Factory func() ports.Recorder

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates access to live recordings, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	factory Factory

	mu         sync.Mutex                // Global lock for both maps
	recordings map[string]ports.Recorder // Live and completed recordings
	locks      map[string]*lockEntry     // Map of active locks

	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager that builds recorders with factory.
func NewManager(factory Factory, opts ...Option) *Manager {
	m := &Manager{
		factory:    factory,
		recordings: make(map[string]ports.Recorder),
		locks:      make(map[string]*lockEntry),
		logger:     logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(id) after unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

func (m *Manager) lookup(id string) (ports.Recorder, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recordings[id]
	return rec, ok
}

// Start registers a new recording and returns its id.
func (m *Manager) Start(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := uuid.NewString()
	rec := m.factory()

	m.mu.Lock()
	m.recordings[id] = rec
	m.mu.Unlock()

	m.logger.Debug("recording started", "recording_id", id, "backend", rec.Backend())
	return id, nil
}

// WithRecording executes fn while holding the lock for the recording.
// It fails with domain.ErrRecordingNotFound for unknown ids.
func (m *Manager) WithRecording(ctx context.Context, id string, fn func(context.Context, ports.Recorder) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	rec, ok := m.lookup(id)
	if !ok {
		return domain.ErrRecordingNotFound
	}
	return fn(ctx, rec)
}

// Mark records a decision on a live recording.
func (m *Manager) Mark(ctx context.Context, id, key string, value domain.Value) error {
	return m.WithRecording(ctx, id, func(_ context.Context, rec ports.Recorder) error {
		return rec.Mark(key, value)
	})
}

// Complete locks the recording and returns its token.
func (m *Manager) Complete(ctx context.Context, id string) (string, error) {
	var token string
	err := m.WithRecording(ctx, id, func(_ context.Context, rec ports.Recorder) error {
		if err := rec.Complete(); err != nil {
			return err
		}
		var err error
		token, err = rec.Token()
		return err
	})
	if err == nil {
		m.logger.Debug("recording completed", "recording_id", id)
	}
	return token, err
}

// Delete forgets a recording. Unknown ids are ignored.
func (m *Manager) Delete(ctx context.Context, id string) error {
	err := m.WithRecording(ctx, id, func(context.Context, ports.Recorder) error {
		m.mu.Lock()
		delete(m.recordings, id)
		m.mu.Unlock()
		return nil
	})
	if errors.Is(err, domain.ErrRecordingNotFound) {
		return nil
	}
	return err
}

// List returns the registered ids in lexical order.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	ids := make([]string, 0, len(m.recordings))
	for id := range m.recordings {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	sort.Strings(ids)
	return ids, nil
}
