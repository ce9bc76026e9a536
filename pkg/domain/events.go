package domain

import (
	"context"
	"time"
)

// DecisionEvent is emitted once per message after the prefix gate ran.
type DecisionEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Decision  Decision  `json:"decision"`
	Changed   bool      `json:"changed"`
}

// KanjiEvent is emitted once per request to the kanji conversion service.
type KanjiEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Input     string        `json:"input"`
	Duration  time.Duration `json:"duration"`
	Err       error         `json:"-"`
}

// Hooks defines callbacks for pipeline observability.
// Nil callbacks are skipped.
type Hooks struct {
	OnDecision func(context.Context, *DecisionEvent)
	OnKanji    func(context.Context, *KanjiEvent)
}

// Decision fires OnDecision if set.
func (h Hooks) Decision(ctx context.Context, e *DecisionEvent) {
	if h.OnDecision != nil {
		h.OnDecision(ctx, e)
	}
}

// Kanji fires OnKanji if set.
func (h Hooks) Kanji(ctx context.Context, e *KanjiEvent) {
	if h.OnKanji != nil {
		h.OnKanji(ctx, e)
	}
}

// Join returns hooks that call every non-nil callback of all given hooks in order.
func Join(hooks ...Hooks) Hooks {
	return Hooks{
		OnDecision: func(ctx context.Context, e *DecisionEvent) {
			for _, h := range hooks {
				h.Decision(ctx, e)
			}
		},
		OnKanji: func(ctx context.Context, e *KanjiEvent) {
			for _, h := range hooks {
				h.Kanji(ctx, e)
			}
		},
	}
}
