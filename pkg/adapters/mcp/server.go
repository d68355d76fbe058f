package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/aretw0/etchmory"
	"github.com/aretw0/etchmory/internal/presentation/graph"
	"github.com/aretw0/etchmory/pkg/unified"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// TreeURI addresses the shared unified tree resource.
const TreeURI = "etchmory://tree"

// MergeResult is the structured output of merge_token.
type MergeResult struct {
	Merges int           `json:"merges" jsonschema_description:"Recordings merged into the tree so far"`
	Stats  unified.Stats `json:"stats" jsonschema_description:"Shape of the tree after the merge"`
}

// Server wraps an Engine and one unified tree and exposes them as an MCP Server.
type Server struct {
	engine    *etchmory.Engine
	mcpServer *server.MCPServer
	logger    *slog.Logger

	mu   sync.Mutex // guards tree
	tree *unified.Tree
}

// Option configures a Server.
type Option func(*Server)

// WithTree seeds the shared unified tree.
func WithTree(t *unified.Tree) Option {
	return func(s *Server) {
		s.tree = t
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(eng *etchmory.Engine, opts ...Option) *Server {
	s := &Server{
		engine:    eng,
		logger:    eng.Logger(),
		mcpServer: server.NewMCPServer("etchmory-mcp", etchmory.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tree == nil {
		s.tree = eng.NewUnified()
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: merge_token
	mergeTool := mcp.NewTool("merge_token",
		mcp.WithDescription("Merge the recording behind a token (lm:, gm:: or plain colon-delimited) into the unified tree."),
		mcp.WithString("token", mcp.Required(), mcp.Description("Token produced by a completed recording")),
		mcp.WithOutputSchema[MergeResult](),
	)
	s.mcpServer.AddTool(mergeTool, mcp.NewStructuredToolHandler(s.handleMergeToken))

	// TOOL: import_tree
	s.mcpServer.AddTool(mcp.NewTool("import_tree",
		mcp.WithDescription("Load a serialized unified tree. Fails if the tree already holds data."),
		mcp.WithString("document", mcp.Required(), mcp.Description("JSON document produced by get_tree")),
	), s.handleImportTree)

	// TOOL: get_tree
	s.mcpServer.AddTool(mcp.NewTool("get_tree",
		mcp.WithDescription("Get the unified tree as its JSON document."),
	), s.handleGetTree)

	// TOOL: display_tree
	s.mcpServer.AddTool(mcp.NewTool("display_tree",
		mcp.WithDescription("Render the unified tree as indented text."),
		mcp.WithBoolean("values", mcp.Description("Include decision values in labels (default true)")),
		mcp.WithString("format", mcp.Description("text (default) or mermaid")),
	), s.handleDisplayTree)
}

func (s *Server) handleMergeToken(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (MergeResult, error) {
	token, _ := args["token"].(string)
	rec, err := s.engine.ParseToken(token)
	if err != nil {
		return MergeResult{}, fmt.Errorf("parse token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.tree.Merge(rec); err != nil {
		return MergeResult{}, fmt.Errorf("merge failed: %w", err)
	}
	return MergeResult{Merges: s.tree.Merges(), Stats: s.tree.Stats()}, nil
}

func (s *Server) handleImportTree(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := request.RequireString("document")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	err = s.tree.Import(doc)
	stats := s.tree.Stats()
	s.mu.Unlock()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("import failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("imported %d nodes", stats.Nodes)), nil
}

func (s *Server) handleGetTree(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := s.document()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("serialize failed: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleDisplayTree(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	hide := !request.GetBool("values", true)

	s.mu.Lock()
	defer s.mu.Unlock()
	switch format := request.GetString("format", "text"); format {
	case "text":
		return mcp.NewToolResultText(s.tree.Display(hide)), nil
	case "mermaid":
		return mcp.NewToolResultText(graph.GenerateMermaid(s.tree, hide, nil)), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q", format)), nil
	}
}

func (s *Server) document() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.ToJSON()
}

func (s *Server) registerResources() {
	// EXPOSE: etchmory://tree
	s.mcpServer.AddResource(mcp.NewResource(TreeURI, "Unified Decision Tree",
		mcp.WithMIMEType("application/json"),
	), s.readTree)
}

func (s *Server) readTree(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	text, err := s.document()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize tree: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      TreeURI,
			MIMEType: "application/json",
			Text:     text,
		},
	}, nil
}
