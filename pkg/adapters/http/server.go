package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/aretw0/etchmory"
	"github.com/aretw0/etchmory/internal/presentation/graph"
	"github.com/aretw0/etchmory/pkg/domain"
	"github.com/aretw0/etchmory/pkg/ports"
	"github.com/aretw0/etchmory/pkg/session"
	"github.com/aretw0/etchmory/pkg/unified"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// TreeTopic is the stream that receives one message per merge.
const TreeTopic = "tree"

// Server exposes live recordings and one shared unified tree over HTTP.
type Server struct {
	Engine   *etchmory.Engine
	Sessions *session.Manager
	Streams  *StreamManager

	mu   sync.Mutex // guards tree
	tree *unified.Tree

	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithTree seeds the shared unified tree.
func WithTree(t *unified.Tree) Option {
	return func(s *Server) {
		s.tree = t
	}
}

// WithGatherer sets the registry served on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// NewServer creates a Server whose recordings and tree are built by eng.
func NewServer(eng *etchmory.Engine, opts ...Option) *Server {
	s := &Server{
		Engine:   eng,
		Streams:  NewStreamManager(eng.Logger()),
		gatherer: prometheus.DefaultGatherer,
		logger:   eng.Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tree == nil {
		s.tree = eng.NewUnified()
	}
	s.Sessions = session.NewManager(eng.NewRecorder, session.WithLogger(s.logger))
	return s
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(eng *etchmory.Engine, opts ...Option) http.Handler {
	return NewServer(eng, opts...).Handler()
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/events", s.SubscribeEvents)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/recordings", func(r chi.Router) {
		r.Post("/", s.StartRecording)
		r.Get("/", s.ListRecordings)
		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", s.DeleteRecording)
			r.Post("/decisions", s.MarkDecision)
			r.Get("/decisions/{key}", s.RecallDecision)
			r.Post("/complete", s.CompleteRecording)
			r.Get("/replay", s.ReplayRecording)
			r.Post("/merge", s.MergeRecording)
		})
	})

	r.Route("/tree", func(r chi.Router) {
		r.Get("/", s.GetTree)
		r.Put("/", s.ImportTree)
		r.Post("/tokens", s.MergeToken)
		r.Get("/display", s.DisplayTree)
		r.Get("/mermaid", s.MermaidTree)
		r.Get("/stats", s.TreeStats)
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// MarkRequest is the body of POST /recordings/{id}/decisions.
type MarkRequest struct {
	Key   string        `json:"key"`
	Value *domain.Value `json:"value"`
}

// TokenRequest is the body of POST /tree/tokens.
type TokenRequest struct {
	Token string `json:"token"`
}

// MergeResponse reports the tree after a merge.
type MergeResponse struct {
	Merges int           `json:"merges"`
	Stats  unified.Stats `json:"stats"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "etchmory-http",
		"version": etchmory.Version,
		"backend": s.Engine.Backend(),
	})
}

// StartRecording handles the POST /recordings request.
func (s *Server) StartRecording(w http.ResponseWriter, r *http.Request) {
	id, err := s.Sessions.Start(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"id": id, "backend": s.Engine.Backend()})
}

// ListRecordings handles the GET /recordings request.
func (s *Server) ListRecordings(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"ids": ids})
}

// DeleteRecording handles the DELETE /recordings/{id} request.
func (s *Server) DeleteRecording(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkDecision handles the POST /recordings/{id}/decisions request.
func (s *Server) MarkDecision(w http.ResponseWriter, r *http.Request) {
	var body MarkRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		s.logger.Warn("MarkDecision: invalid request body", "error", err)
		return
	}
	if body.Value == nil {
		http.Error(w, "Invalid request body: value is required", http.StatusBadRequest)
		return
	}

	var size int
	err := s.Sessions.WithRecording(r.Context(), chi.URLParam(r, "id"), func(_ context.Context, rec ports.Recorder) error {
		if err := rec.Mark(body.Key, *body.Value); err != nil {
			return err
		}
		size = rec.Size()
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int{"size": size})
}

// RecallDecision handles the GET /recordings/{id}/decisions/{key} request.
func (s *Server) RecallDecision(w http.ResponseWriter, r *http.Request) {
	key, err := url.PathUnescape(chi.URLParam(r, "key"))
	if err != nil {
		http.Error(w, "Invalid decision key", http.StatusBadRequest)
		return
	}

	var value domain.Value
	err = s.Sessions.WithRecording(r.Context(), chi.URLParam(r, "id"), func(_ context.Context, rec ports.Recorder) error {
		var err error
		value, err = rec.Recall(key)
		return err
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, domain.NewDecision(key, value))
}

// CompleteRecording handles the POST /recordings/{id}/complete request.
func (s *Server) CompleteRecording(w http.ResponseWriter, r *http.Request) {
	token, err := s.Sessions.Complete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, TokenRequest{Token: token})
}

// ReplayRecording handles the GET /recordings/{id}/replay request.
func (s *Server) ReplayRecording(w http.ResponseWriter, r *http.Request) {
	var decisions []domain.Decision
	err := s.Sessions.WithRecording(r.Context(), chi.URLParam(r, "id"), func(_ context.Context, rec ports.Recorder) error {
		seq, err := rec.Replay()
		if err != nil {
			return err
		}
		decisions = ports.Collect(seq)
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]domain.Decision{"decisions": decisions})
}

// MergeRecording handles the POST /recordings/{id}/merge request.
func (s *Server) MergeRecording(w http.ResponseWriter, r *http.Request) {
	var resp MergeResponse
	err := s.Sessions.WithRecording(r.Context(), chi.URLParam(r, "id"), func(_ context.Context, rec ports.Recorder) error {
		var err error
		resp, err = s.merge(rec)
		return err
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// MergeToken handles the POST /tree/tokens request.
func (s *Server) MergeToken(w http.ResponseWriter, r *http.Request) {
	var body TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		s.logger.Warn("MergeToken: invalid request body", "error", err)
		return
	}

	rec, err := s.Engine.ParseToken(body.Token)
	if err != nil {
		s.writeError(w, err)
		return
	}
	resp, err := s.merge(rec)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) merge(rec ports.Replayer) (MergeResponse, error) {
	s.mu.Lock()
	err := s.tree.Merge(rec)
	resp := MergeResponse{Merges: s.tree.Merges(), Stats: s.tree.Stats()}
	s.mu.Unlock()
	if err != nil {
		return MergeResponse{}, err
	}

	if payload, err := json.Marshal(resp); err == nil {
		s.Streams.Broadcast(TreeTopic, string(payload))
	}
	return resp, nil
}

// GetTree handles the GET /tree request.
func (s *Server) GetTree(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	text, err := s.tree.ToJSON()
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(text))
}

// ImportTree handles the PUT /tree request.
func (s *Server) ImportTree(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	err := s.tree.Import(string(raw))
	stats := s.tree.Stats()
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

// DisplayTree handles the GET /tree/display request.
// The optional values query parameter (default true) toggles value labels.
func (s *Server) DisplayTree(w http.ResponseWriter, r *http.Request) {
	hide, err := hideValues(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	text := s.tree.Display(hide)
	s.mu.Unlock()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(text))
}

// MermaidTree handles the GET /tree/mermaid request.
func (s *Server) MermaidTree(w http.ResponseWriter, r *http.Request) {
	hide, err := hideValues(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	text := graph.GenerateMermaid(s.tree, hide, nil)
	s.mu.Unlock()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(text))
}

// TreeStats handles the GET /tree/stats request.
func (s *Server) TreeStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := MergeResponse{Merges: s.tree.Merges(), Stats: s.tree.Stats()}
	s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, resp)
}

func hideValues(r *http.Request) (bool, error) {
	raw := r.URL.Query().Get("values")
	if raw == "" {
		return false, nil
	}
	show, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid values parameter %q", raw)
	}
	return !show, nil
}

// -- Helpers --

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Kind  domain.Kind `json:"kind,omitempty"`
	Key   string      `json:"key,omitempty"`
	Error string      `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	} else {
		s.logger.Debug("request rejected", "error", err, "status", status)
	}

	resp := ErrorResponse{Kind: domain.KindOf(err), Error: err.Error()}
	var e *domain.Error
	if errors.As(err, &e) {
		resp.Key = e.Key
	}
	s.writeJSON(w, status, resp)
}

// StatusOf maps a failure to an HTTP status code by its kind.
func StatusOf(err error) int {
	switch domain.KindOf(err) {
	case domain.KindLifecycle, domain.KindDuplicate, domain.KindEmpty, domain.KindImportConflict:
		return http.StatusConflict
	case domain.KindUnknown, domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInvalidValue, domain.KindInvalidToken, domain.KindInvalidDocument:
		return http.StatusBadRequest
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
