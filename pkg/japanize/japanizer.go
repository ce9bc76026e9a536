package japanize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/aretw0/japanizer/internal/logging"
	"github.com/aretw0/japanizer/pkg/domain"
	"github.com/aretw0/japanizer/pkg/ports"
	"github.com/aretw0/japanizer/pkg/richtext"
	"github.com/aretw0/japanizer/pkg/romaji"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of kanji requests issued in parallel for one message.
const DefaultConcurrency = 4

// Japanizer runs the conversion pipeline. It holds no per-message state and is safe for
// concurrent use.
type Japanizer struct {
	gate           Gate
	transliterator *Transliterator
	formatter      *Formatter
	kanji          ports.KanjiConverter
	hooks          domain.Hooks
	logger         *slog.Logger
	concurrency    int
	table          *romaji.Table
}

// Option configures a Japanizer.
type Option func(*Japanizer)

// WithKanjiConverter sets the kanji stage. Without it conversion stops at hiragana.
func WithKanjiConverter(c ports.KanjiConverter) Option {
	return func(j *Japanizer) {
		j.kanji = c
	}
}

// WithTable replaces the default romaji table.
func WithTable(t *romaji.Table) Option {
	return func(j *Japanizer) {
		j.table = t
	}
}

// WithHooks registers observability callbacks.
func WithHooks(h domain.Hooks) Option {
	return func(j *Japanizer) {
		j.hooks = h
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(j *Japanizer) {
		j.logger = l
	}
}

// WithConcurrency bounds the parallel kanji requests per message.
func WithConcurrency(n int) Option {
	return func(j *Japanizer) {
		if n > 0 {
			j.concurrency = n
		}
	}
}

// New builds a pipeline for settings.
func New(settings domain.Settings, opts ...Option) (*Japanizer, error) {
	j := &Japanizer{
		gate:        NewGate(settings),
		formatter:   NewFormatter(settings.Template),
		kanji:       ports.Identity,
		logger:      logging.NewNop(),
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(j)
	}
	j.gate.logger = j.logger

	if j.table == nil {
		table, err := romaji.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to build romaji table: %w", err)
		}
		j.table = table
	}
	j.transliterator = NewTransliterator(j.table)

	return j, nil
}

// Convert runs the gate and, when it decides so, transliteration and kanji conversion.
// The result is not decorated.
func (j *Japanizer) Convert(ctx context.Context, msg richtext.Text) domain.Outcome {
	text, decision := j.gate.Decide(msg)

	converted := text
	if decision.Converts() {
		converted = j.Kanji(ctx, j.Transliterate(text.Compact()).Compact())
	}

	out := domain.Outcome{
		Original:  msg,
		Converted: converted,
		Decision:  decision,
		Changed:   !msg.Equal(converted),
	}

	j.logger.Debug("message processed", "decision", decision, "changed", out.Changed)
	j.hooks.Decision(ctx, &domain.DecisionEvent{
		Timestamp: time.Now(),
		Decision:  decision,
		Changed:   out.Changed,
	})

	return out
}

// Render converts msg and decorates the result with the message template.
// Skipped and untouched messages are returned without decoration: a message whose
// prevent prefix was stripped comes back bare, while Formatter.Format on the same
// Outcome would wrap it because the text changed.
func (j *Japanizer) Render(ctx context.Context, msg richtext.Text, resolvers ...richtext.Resolver) (richtext.Text, domain.Outcome) {
	out := j.Convert(ctx, msg)
	if !out.Decision.Converts() {
		return out.Converted, out
	}
	return j.formatter.Format(out.Original, out.Converted, resolvers...), out
}

// Transliterate rewrites romaji into hiragana, without the gate or the kanji stage.
func (j *Japanizer) Transliterate(text richtext.Text) richtext.Text {
	return j.transliterator.Transliterate(text)
}

// Kanji sends every run that contains hiragana to the kanji converter.
// Runs are compacted first so a word split only by identical formatting is sent whole.
// Requests for one message run in parallel, bounded by the configured concurrency.
func (j *Japanizer) Kanji(ctx context.Context, text richtext.Text) richtext.Text {
	runs := text.Compact()
	out := make(richtext.Text, len(runs))
	copy(out, runs)

	var g errgroup.Group
	g.SetLimit(j.concurrency)
	for i, run := range runs {
		if !hasHiragana(run.Content) {
			continue
		}
		g.Go(func() error {
			out[i].Content = j.kanji.Convert(ctx, run.Content)
			return nil
		})
	}
	_ = g.Wait()

	return out.Compact()
}

// Table returns the romaji table in use.
func (j *Japanizer) Table() *romaji.Table {
	return j.table
}

func hasHiragana(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.Is(unicode.Hiragana, r)
	}) >= 0
}
