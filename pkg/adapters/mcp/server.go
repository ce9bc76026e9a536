package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/japanizer/internal/logging"
	"github.com/aretw0/japanizer/pkg/domain"
	"github.com/aretw0/japanizer/pkg/richtext"
	"github.com/aretw0/japanizer/pkg/romaji"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// RulesURI is the resource exposing the romaji table.
const RulesURI = "japanizer://rules"

// MessageResult is the structured output of the conversion tools.
type MessageResult struct {
	Plain    string          `json:"plain" jsonschema_description:"The converted message as plain text"`
	Markup   string          `json:"markup" jsonschema_description:"The converted message in MiniMessage-style markup, keeping colors and hover text"`
	Decision domain.Decision `json:"decision,omitempty" jsonschema_description:"Gate decision: skip, forced, conditional, pass or disabled"`
	Changed  bool            `json:"changed" jsonschema_description:"Whether conversion changed the message"`
}

// PreferenceResult is the structured output of set_preference.
type PreferenceResult struct {
	UserID  string `json:"user_id" jsonschema_description:"The user the preference belongs to"`
	Name    string `json:"name,omitempty" jsonschema_description:"Display name"`
	Enabled bool   `json:"enabled" jsonschema_description:"Whether conversion is enabled for the user"`
}

// Converter runs the full per-user pipeline.
type Converter interface {
	Japanize(ctx context.Context, userID uuid.UUID, msg richtext.Text, resolvers ...richtext.Resolver) (richtext.Text, domain.Outcome, error)
}

// Transliterator rewrites romaji into hiragana only.
type Transliterator interface {
	Transliterate(text richtext.Text) richtext.Text
	Table() *romaji.Table
}

// Preferences updates stored user preferences.
type Preferences interface {
	Update(ctx context.Context, userID uuid.UUID, fn func(*domain.Preference)) (domain.Preference, error)
}

// Server exposes the pipeline as an MCP Server.
type Server struct {
	converter      Converter
	transliterator Transliterator
	prefs          Preferences
	logger         *slog.Logger
	mcpServer      *server.MCPServer
}

type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithPreferences enables the set_preference tool.
func WithPreferences(p Preferences) Option {
	return func(s *Server) {
		s.prefs = p
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(converter Converter, transliterator Transliterator, version string, opts ...Option) *Server {
	s := &Server{
		converter:      converter,
		transliterator: transliterator,
		logger:         logging.NewNop(),
	}
	s.mcpServer = server.NewMCPServer("japanizer-mcp", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: japanize
	japanizeTool := mcp.NewTool("japanize",
		mcp.WithDescription("Run a chat message through the conversion pipeline: prefix gate, romaji to hiragana, hiragana to kanji, decoration."),
		mcp.WithString("message", mcp.Required(), mcp.Description("The chat message")),
		mcp.WithString("user_id", mcp.Description("UUID of the sender; their preference decides whether conversion applies (optional)")),
		mcp.WithBoolean("markup", mcp.Description("Parse the message as MiniMessage-style markup instead of plain text")),
		mcp.WithOutputSchema[MessageResult](),
	)
	s.mcpServer.AddTool(japanizeTool, mcp.NewStructuredToolHandler(s.handleJapanize))

	// TOOL: transliterate
	transliterateTool := mcp.NewTool("transliterate",
		mcp.WithDescription("Convert romaji to hiragana without the prefix gate or kanji conversion."),
		mcp.WithString("message", mcp.Required(), mcp.Description("Text to transliterate")),
		mcp.WithBoolean("markup", mcp.Description("Parse the message as MiniMessage-style markup instead of plain text")),
		mcp.WithOutputSchema[MessageResult](),
	)
	s.mcpServer.AddTool(transliterateTool, mcp.NewStructuredToolHandler(s.handleTransliterate))

	if s.prefs == nil {
		return
	}

	// TOOL: set_preference
	prefTool := mcp.NewTool("set_preference",
		mcp.WithDescription("Enable or disable conversion for a user."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("UUID of the user")),
		mcp.WithString("status", mcp.Required(), mcp.Description("enable or disable"), mcp.Enum("enable", "disable")),
		mcp.WithString("name", mcp.Description("Display name to store with the preference")),
		mcp.WithOutputSchema[PreferenceResult](),
	)
	s.mcpServer.AddTool(prefTool, mcp.NewStructuredToolHandler(s.handleSetPreference))
}

type messageArgs struct {
	Message string `mapstructure:"message"`
	UserID  string `mapstructure:"user_id"`
	Markup  bool   `mapstructure:"markup"`
}

func (a messageArgs) text() (richtext.Text, error) {
	msg := richtext.Plain(a.Message)
	if a.Markup {
		tmpl, err := richtext.Parse(a.Message)
		if err != nil {
			return nil, err
		}
		msg = tmpl.Render()
	}
	return msg.Sanitize(richtext.DefaultMaxInputSize)
}

type preferenceArgs struct {
	UserID string `mapstructure:"user_id"`
	Status string `mapstructure:"status"`
	Name   string `mapstructure:"name"`
}

// Handler methods for structured tools

func (s *Server) handleJapanize(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (MessageResult, error) {
	var a messageArgs
	if err := mapstructure.Decode(args, &a); err != nil {
		return MessageResult{}, fmt.Errorf("invalid arguments: %w", err)
	}

	userID := uuid.Nil
	if a.UserID != "" {
		id, err := uuid.Parse(a.UserID)
		if err != nil {
			return MessageResult{}, fmt.Errorf("invalid user_id: %w", err)
		}
		userID = id
	}

	msg, err := a.text()
	if err != nil {
		return MessageResult{}, err
	}

	out, outcome, err := s.converter.Japanize(ctx, userID, msg)
	if err != nil {
		s.logger.Error("MCP Japanize failed", "error", err)
		return MessageResult{}, fmt.Errorf("japanize failed: %w", err)
	}

	return MessageResult{
		Plain:    out.String(),
		Markup:   out.Markup(),
		Decision: outcome.Decision,
		Changed:  outcome.Changed,
	}, nil
}

func (s *Server) handleTransliterate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (MessageResult, error) {
	var a messageArgs
	if err := mapstructure.Decode(args, &a); err != nil {
		return MessageResult{}, fmt.Errorf("invalid arguments: %w", err)
	}
	msg, err := a.text()
	if err != nil {
		return MessageResult{}, err
	}

	out := s.transliterator.Transliterate(msg)
	return MessageResult{
		Plain:   out.String(),
		Markup:  out.Markup(),
		Changed: !out.Equal(msg),
	}, nil
}

func (s *Server) handleSetPreference(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (PreferenceResult, error) {
	var a preferenceArgs
	if err := mapstructure.Decode(args, &a); err != nil {
		return PreferenceResult{}, fmt.Errorf("invalid arguments: %w", err)
	}

	id, err := uuid.Parse(a.UserID)
	if err != nil {
		return PreferenceResult{}, fmt.Errorf("invalid user_id: %w", err)
	}
	status, err := domain.ParseStatus(a.Status)
	if err != nil {
		return PreferenceResult{}, err
	}

	pref, err := s.prefs.Update(ctx, id, func(p *domain.Preference) {
		p.Enabled = status.Bool()
		if a.Name != "" {
			p.Name = a.Name
		}
	})
	if err != nil {
		return PreferenceResult{}, fmt.Errorf("set preference failed: %w", err)
	}

	return PreferenceResult{
		UserID:  pref.UserID.String(),
		Name:    pref.Name,
		Enabled: pref.Enabled,
	}, nil
}

type ruleJSON struct {
	Romaji string `json:"romaji"`
	Kana   string `json:"kana"`
}

func (s *Server) registerResources() {
	// EXPOSE: japanizer://rules
	s.mcpServer.AddResource(mcp.NewResource(RulesURI, "Romaji to hiragana rule table",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		rules := s.transliterator.Table().Rules()
		out := make([]ruleJSON, len(rules))
		for i, r := range rules {
			out[i] = ruleJSON{Romaji: r.Key, Kana: r.Value}
		}
		jsonBytes, err := json.Marshal(out)
		if err != nil {
			return nil, fmt.Errorf("failed to encode rules: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      RulesURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
