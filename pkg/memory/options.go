package memory

import (
	"log/slog"
	"time"

	"github.com/aretw0/etchmory/internal/logging"
	"github.com/aretw0/etchmory/pkg/domain"
)

type config struct {
	hooks  domain.RecorderHooks
	logger *slog.Logger
}

// Option configures a recorder.
type Option func(*config)

// WithHooks registers observability hooks.
func WithHooks(hooks domain.RecorderHooks) Option {
	return func(c *config) {
		c.hooks = hooks
	}
}

// WithLogger sets a structured logger. Recorders log at debug level only.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func newConfig(opts []Option) config {
	c := config{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c *config) marked(backend, key string, size int) {
	if c.hooks.OnMark != nil {
		c.hooks.OnMark(&domain.RecordingEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventMark},
			Backend:   backend,
			Key:       key,
			Size:      size,
		})
	}
}

func (c *config) completed(backend string, size int) {
	c.logger.Debug("recording completed", "backend", backend, "size", size)
	if c.hooks.OnComplete != nil {
		c.hooks.OnComplete(&domain.RecordingEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventComplete},
			Backend:   backend,
			Size:      size,
		})
	}
}
