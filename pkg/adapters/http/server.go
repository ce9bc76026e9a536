package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/japanizer/internal/logging"
	"github.com/aretw0/japanizer/pkg/domain"
	"github.com/aretw0/japanizer/pkg/richtext"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxBodySize bounds request bodies.
const maxBodySize = 64 << 10

// Converter runs the full per-user pipeline.
type Converter interface {
	Japanize(ctx context.Context, userID uuid.UUID, msg richtext.Text, resolvers ...richtext.Resolver) (richtext.Text, domain.Outcome, error)
}

// Transliterator rewrites romaji into hiragana only.
type Transliterator interface {
	Transliterate(text richtext.Text) richtext.Text
}

// Preferences reads and updates user preferences.
type Preferences interface {
	Load(ctx context.Context, userID uuid.UUID) (domain.Preference, error)
	Update(ctx context.Context, userID uuid.UUID, fn func(*domain.Preference)) (domain.Preference, error)
}

// Server exposes the pipeline over HTTP.
type Server struct {
	Converter      Converter
	Transliterator Transliterator
	Preferences    Preferences
	Metrics        http.Handler
	Logger         *slog.Logger
}

// MessageRequest carries one message. Exactly one of Message, Markup or Text should be set.
type MessageRequest struct {
	UserID       uuid.UUID         `json:"user_id"`
	Message      string            `json:"message,omitempty"`
	Markup       string            `json:"markup,omitempty"`
	Text         richtext.Text     `json:"text,omitempty"`
	Placeholders map[string]string `json:"placeholders,omitempty"`
}

// MessageResponse is the converted message.
type MessageResponse struct {
	Text     richtext.Text   `json:"text"`
	Plain    string          `json:"plain"`
	Decision domain.Decision `json:"decision,omitempty"`
	Changed  bool            `json:"changed"`
}

// PreferenceRequest updates a preference. Enabled wins over Status when both are set.
type PreferenceRequest struct {
	Name    string `json:"name,omitempty"`
	Enabled *bool  `json:"enabled,omitempty"`
	Status  string `json:"status,omitempty"`
}

// NewHandler creates the HTTP handler for the server.
func NewHandler(s *Server) http.Handler {
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}

	r := chi.NewRouter()
	r.Get("/health", s.Health)
	if s.Converter != nil {
		r.Post("/japanize", s.Japanize)
	}
	if s.Transliterator != nil {
		r.Post("/transliterate", s.Transliterate)
	}
	if s.Preferences != nil {
		r.Get("/users/{id}/preference", s.GetPreference)
		r.Put("/users/{id}/preference", s.PutPreference)
	}
	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Japanize handles POST /japanize.
func (s *Server) Japanize(w http.ResponseWriter, r *http.Request) {
	var body MessageRequest
	if !s.decode(w, r, &body) {
		return
	}
	msg, err := body.message()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		s.Logger.Warn("Japanize: invalid message", "error", err)
		return
	}

	var resolvers []richtext.Resolver
	if len(body.Placeholders) > 0 {
		ph := richtext.Placeholders{}
		for k, v := range body.Placeholders {
			ph[k] = richtext.Plain(v)
		}
		resolvers = append(resolvers, ph)
	}

	out, outcome, err := s.Converter.Japanize(r.Context(), body.UserID, msg, resolvers...)
	if err != nil {
		http.Error(w, fmt.Sprintf("Japanize error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("Japanize failed", "error", err)
		return
	}

	s.writeJSON(w, http.StatusOK, MessageResponse{
		Text:     out,
		Plain:    out.String(),
		Decision: outcome.Decision,
		Changed:  outcome.Changed,
	})
}

// Transliterate handles POST /transliterate.
func (s *Server) Transliterate(w http.ResponseWriter, r *http.Request) {
	var body MessageRequest
	if !s.decode(w, r, &body) {
		return
	}
	msg, err := body.message()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		s.Logger.Warn("Transliterate: invalid message", "error", err)
		return
	}

	out := s.Transliterator.Transliterate(msg).Compact()
	s.writeJSON(w, http.StatusOK, MessageResponse{
		Text:    out,
		Plain:   out.String(),
		Changed: !out.Equal(msg),
	})
}

// GetPreference handles GET /users/{id}/preference.
func (s *Server) GetPreference(w http.ResponseWriter, r *http.Request) {
	id, ok := s.userID(w, r)
	if !ok {
		return
	}

	pref, err := s.Preferences.Load(r.Context(), id)
	if err != nil {
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("GetPreference failed", "error", err, "user", id)
		return
	}
	s.writeJSON(w, http.StatusOK, pref)
}

// PutPreference handles PUT /users/{id}/preference.
func (s *Server) PutPreference(w http.ResponseWriter, r *http.Request) {
	id, ok := s.userID(w, r)
	if !ok {
		return
	}

	var body PreferenceRequest
	if !s.decode(w, r, &body) {
		return
	}

	var enabled bool
	switch {
	case body.Enabled != nil:
		enabled = *body.Enabled
	case body.Status != "":
		status, err := domain.ParseStatus(body.Status)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		enabled = status.Bool()
	default:
		http.Error(w, "enabled or status is required", http.StatusBadRequest)
		return
	}

	pref, err := s.Preferences.Update(r.Context(), id, func(p *domain.Preference) {
		p.Enabled = enabled
		if body.Name != "" {
			p.Name = body.Name
		}
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("Update error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("PutPreference failed", "error", err, "user", id)
		return
	}
	s.writeJSON(w, http.StatusOK, pref)
}

func (s *Server) userID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Invalid request body", "error", err, "path", r.URL.Path)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}

func (m MessageRequest) message() (richtext.Text, error) {
	set := 0
	for _, ok := range []bool{m.Message != "", m.Markup != "", len(m.Text) > 0} {
		if ok {
			set++
		}
	}
	if set > 1 {
		return nil, errors.New("only one of message, markup or text may be set")
	}

	msg := richtext.Plain(m.Message)
	switch {
	case m.Markup != "":
		tmpl, err := richtext.Parse(m.Markup)
		if err != nil {
			return nil, err
		}
		msg = tmpl.Render()
	case len(m.Text) > 0:
		msg = m.Text
	}
	return msg.Sanitize(richtext.DefaultMaxInputSize)
}
