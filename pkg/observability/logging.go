package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/japanizer/pkg/domain"
)

// LogHooks returns callbacks that log every event at debug level.
func LogHooks(logger *slog.Logger) domain.Hooks {
	return domain.Hooks{
		OnDecision: func(ctx context.Context, e *domain.DecisionEvent) {
			logger.DebugContext(ctx, "message_decision",
				"decision", e.Decision,
				"changed", e.Changed,
			)
		},
		OnKanji: func(ctx context.Context, e *domain.KanjiEvent) {
			logger.DebugContext(ctx, "kanji_request",
				"text", e.Input,
				"duration", e.Duration,
				"failed", e.Err != nil,
			)
		},
	}
}
