package etchmory

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/etchmory/internal/logging"
	"github.com/aretw0/etchmory/pkg/memory"
	"github.com/aretw0/etchmory/pkg/observability"
	"github.com/aretw0/etchmory/pkg/ports"
	"github.com/aretw0/etchmory/pkg/token"
	"github.com/aretw0/etchmory/pkg/unified"
)

// Version is the library and CLI version.
const Version = "0.3.0"

// Engine is the high-level entry point for the library.
// It builds recorders and unified trees that share one logger and one set of hooks.
type Engine struct {
	backend string
	logger  *slog.Logger
	metrics *observability.Metrics
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithBackend selects the recorder backend: memory.LinearTag or memory.GraphTag (default).
func WithBackend(tag string) Option {
	return func(e *Engine) {
		e.backend = tag
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics feeds recorder and merge activity into Prometheus collectors.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// New initializes an Engine.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		backend: memory.GraphTag,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(eng)
	}

	switch eng.backend {
	case memory.LinearTag, memory.GraphTag:
	default:
		return nil, fmt.Errorf("unknown recorder backend %q", eng.backend)
	}
	return eng, nil
}

// Backend returns the configured recorder backend tag.
func (e *Engine) Backend() string { return e.backend }

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger { return e.logger }

func (e *Engine) recorderOptions() []memory.Option {
	opts := []memory.Option{memory.WithLogger(e.logger)}
	if e.metrics != nil {
		opts = append(opts, memory.WithHooks(e.metrics.RecorderHooks()))
	}
	return opts
}

func (e *Engine) treeOptions() []unified.Option {
	opts := []unified.Option{unified.WithLogger(e.logger)}
	if e.metrics != nil {
		opts = append(opts, unified.WithHooks(e.metrics.MergeHooks()))
	}
	return opts
}

// NewRecorder creates an Active recorder of the configured backend.
func (e *Engine) NewRecorder() ports.Recorder {
	if e.backend == memory.LinearTag {
		return memory.NewLinear(e.recorderOptions()...)
	}
	return memory.NewGraph(e.recorderOptions()...)
}

// NewUnified creates an empty unified tree.
func (e *Engine) NewUnified() *unified.Tree {
	return unified.New(e.treeOptions()...)
}

// LoadUnified creates a unified tree from its JSON form.
func (e *Engine) LoadUnified(text string) (*unified.Tree, error) {
	return unified.FromJSON(text, e.treeOptions()...)
}

// ParseToken rebuilds the completed recording behind a token. Rebuilding
// is not recording: recorder hooks do not fire, so metrics count each
// decision once.
func (e *Engine) ParseToken(tok string) (ports.Recorder, error) {
	return token.Parse(tok, memory.WithLogger(e.logger))
}
