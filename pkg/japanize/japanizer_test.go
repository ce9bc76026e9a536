package japanize

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/japanizer/pkg/domain"
	"github.com/aretw0/japanizer/pkg/richtext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockConverter struct {
	mock.Mock
}

func (m *mockConverter) Convert(ctx context.Context, hiragana string) string {
	args := m.Called(ctx, hiragana)
	return args.String(0)
}

func defaultSettings() domain.Settings {
	return domain.Settings{
		PreventPrefix: DefaultPreventPrefix,
		ForcePrefix:   DefaultForcePrefix,
		Condition:     MustCompileCondition(DefaultCondition),
		Template:      richtext.MustParse(DefaultMessageFormat),
	}
}

func newJapanizer(t *testing.T, settings domain.Settings, opts ...Option) *Japanizer {
	t.Helper()
	j, err := New(settings, opts...)
	require.NoError(t, err)
	return j
}

func TestJapanizer_ConditionalConversion(t *testing.T) {
	kanji := new(mockConverter)
	kanji.On("Convert", mock.Anything, "こんにちは").Return("今日は").Once()

	j := newJapanizer(t, defaultSettings(), WithKanjiConverter(kanji))
	out, outcome := j.Render(context.Background(), richtext.Plain("konnnichiha"))

	assert.Equal(t, domain.DecisionConditional, outcome.Decision)
	assert.True(t, outcome.Changed)
	assert.Equal(t, richtext.Plain("今日は"), outcome.Converted)

	require.Len(t, out, 2)
	assert.Equal(t, "今日は", out[0].Content)
	assert.Equal(t, "konnnichiha", out[1].Actions.Hover.String())
	kanji.AssertExpectations(t)
}

func TestJapanizer_Skip(t *testing.T) {
	kanji := new(mockConverter)
	j := newJapanizer(t, defaultSettings(), WithKanjiConverter(kanji))

	out, outcome := j.Render(context.Background(), richtext.Plain("?konnnichiha"))

	assert.Equal(t, domain.DecisionSkip, outcome.Decision)
	assert.Equal(t, richtext.Plain("konnnichiha"), out)
	assert.True(t, outcome.Changed)
	kanji.AssertNotCalled(t, "Convert", mock.Anything, mock.Anything)

	wrapped := NewFormatter(richtext.MustParse(DefaultMessageFormat)).Format(outcome.Original, outcome.Converted)
	assert.Equal(t, "konnnichiha🔄", wrapped.String(), "Format alone still decorates the stripped text")
}

func TestJapanizer_PassThrough(t *testing.T) {
	kanji := new(mockConverter)
	j := newJapanizer(t, defaultSettings(), WithKanjiConverter(kanji))
	msg := richtext.Text{{Content: "hello ", Style: richtext.Style{Bold: true}}, {Content: "world"}}

	out, outcome := j.Render(context.Background(), msg)

	assert.Equal(t, domain.DecisionPassThrough, outcome.Decision)
	assert.False(t, outcome.Changed)
	assert.Equal(t, msg, out)
	kanji.AssertNotCalled(t, "Convert", mock.Anything, mock.Anything)
}

func TestJapanizer_ForcedWithoutKanjiOrTemplate(t *testing.T) {
	settings := defaultSettings()
	settings.Template = nil
	j := newJapanizer(t, settings)

	out, outcome := j.Render(context.Background(), richtext.Plain("!hello"))

	assert.Equal(t, domain.DecisionForced, outcome.Decision)
	assert.Equal(t, richtext.Plain("へっぉ"), out)
}

func TestJapanizer_KanjiPerRun(t *testing.T) {
	bold := richtext.Style{Bold: true}
	red := richtext.Style{Color: "red"}

	kanji := new(mockConverter)
	kanji.On("Convert", mock.Anything, "わたし").Return("私").Once()
	kanji.On("Convert", mock.Anything, "は 123").Return("は 123").Once()

	j := newJapanizer(t, defaultSettings(), WithKanjiConverter(kanji))
	outcome := j.Convert(context.Background(), richtext.Text{
		{Content: "watashi", Style: bold},
		{Content: "ha", Style: red},
		{Content: " 123", Style: red},
	})

	assert.Equal(t, richtext.Text{
		{Content: "私", Style: bold},
		{Content: "は 123", Style: red},
	}, outcome.Converted)
	kanji.AssertExpectations(t)
}

func TestJapanizer_SkipsRunsWithoutHiragana(t *testing.T) {
	kanji := new(mockConverter)
	kanji.On("Convert", mock.Anything, "こんにちは ").Return("今日は ").Once()

	j := newJapanizer(t, defaultSettings(), WithKanjiConverter(kanji), WithConcurrency(1))
	outcome := j.Convert(context.Background(), richtext.Text{
		{Content: "konnnichiha "},
		{Content: "123", Style: richtext.Style{Bold: true}},
	})

	assert.Equal(t, "今日は 123", outcome.Converted.String())
	kanji.AssertExpectations(t)
}

func TestJapanizer_Hooks(t *testing.T) {
	var (
		mu        sync.Mutex
		decisions []domain.Decision
	)
	hooks := domain.Hooks{
		OnDecision: func(_ context.Context, e *domain.DecisionEvent) {
			mu.Lock()
			defer mu.Unlock()
			decisions = append(decisions, e.Decision)
		},
	}

	j := newJapanizer(t, defaultSettings(), WithHooks(hooks))
	ctx := context.Background()
	j.Convert(ctx, richtext.Plain("?a"))
	j.Convert(ctx, richtext.Plain("!a"))
	j.Convert(ctx, richtext.Plain("konnnichiha"))
	j.Convert(ctx, richtext.Plain("hi"))

	assert.Equal(t, []domain.Decision{
		domain.DecisionSkip,
		domain.DecisionForced,
		domain.DecisionConditional,
		domain.DecisionPassThrough,
	}, decisions)
}

func TestJapanizer_EmptyMessage(t *testing.T) {
	j := newJapanizer(t, defaultSettings())
	out, outcome := j.Render(context.Background(), nil)

	assert.Empty(t, out)
	assert.False(t, outcome.Changed)
}
