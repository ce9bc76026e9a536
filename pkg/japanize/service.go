package japanize

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/japanizer/internal/logging"
	"github.com/aretw0/japanizer/pkg/domain"
	"github.com/aretw0/japanizer/pkg/richtext"
	"github.com/google/uuid"
)

// PreferenceLoader resolves whether a user wants conversion.
// It must return the configured default for unknown users.
type PreferenceLoader interface {
	Load(ctx context.Context, userID uuid.UUID) (domain.Preference, error)
}

// Service converts messages on behalf of users.
type Service struct {
	japanizer *Japanizer
	prefs     PreferenceLoader
	logger    *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger.
func WithServiceLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = l
	}
}

// NewService creates a service. A nil loader treats every user as enabled.
func NewService(j *Japanizer, prefs PreferenceLoader, opts ...ServiceOption) *Service {
	s := &Service{
		japanizer: j,
		prefs:     prefs,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Japanize converts msg for userID.
// Users with conversion disabled get msg back untouched. If the preference cannot be
// loaded, msg is returned together with the error.
func (s *Service) Japanize(ctx context.Context, userID uuid.UUID, msg richtext.Text, resolvers ...richtext.Resolver) (richtext.Text, domain.Outcome, error) {
	if s.prefs != nil {
		pref, err := s.prefs.Load(ctx, userID)
		if err != nil {
			s.logger.Error("failed to load preference", "user", userID, "error", err)
			return msg, domain.Outcome{Original: msg, Converted: msg, Decision: domain.DecisionPassThrough}, err
		}
		if !pref.Enabled {
			s.japanizer.hooks.Decision(ctx, &domain.DecisionEvent{
				Timestamp: time.Now(),
				Decision:  domain.DecisionDisabled,
			})
			return msg, domain.Outcome{Original: msg, Converted: msg, Decision: domain.DecisionDisabled}, nil
		}
	}

	out, outcome := s.japanizer.Render(ctx, msg, resolvers...)
	return out, outcome, nil
}

// Japanizer returns the underlying pipeline.
func (s *Service) Japanizer() *Japanizer {
	return s.japanizer
}
