package japanizer

import (
	"bytes"
	"context"
	"encoding/base64"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/japanizer/internal/config"
	"github.com/aretw0/japanizer/pkg/adapters/memory"
	"github.com/aretw0/japanizer/pkg/adapters/redis"
	"github.com/aretw0/japanizer/pkg/domain"
	"github.com/aretw0/japanizer/pkg/persistence/middleware"
	"github.com/aretw0/japanizer/pkg/ports"
	"github.com/aretw0/japanizer/pkg/richtext"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeIME(ctx context.Context, hiragana string) string {
	if hiragana == "こんにちは" {
		return "今日は"
	}
	return hiragana
}

func TestNew_Defaults(t *testing.T) {
	app, err := New(nil, WithKanjiConverter(ports.KanjiConverterFunc(fakeIME)))
	require.NoError(t, err)
	defer app.Close(context.Background())

	assert.IsType(t, &memory.Store{}, app.Store())
	assert.Nil(t, app.Metrics(), "no registerer, no metrics")

	out, outcome, err := app.Service().Japanize(context.Background(), uuid.New(), richtext.Plain("konnnichiha"))
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionConditional, outcome.Decision)
	assert.Equal(t, "今日は🔄", out.String())
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Japanize.Condition = "(("
	_, err := New(cfg)
	assert.ErrorIs(t, err, domain.ErrInvalidCondition)

	cfg = config.Default()
	cfg.Store.Driver = "cassandra"
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestNew_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	app, err := New(nil, WithRegisterer(reg), WithKanjiConverter(ports.Identity))
	require.NoError(t, err)
	require.NotNil(t, app.Metrics())

	app.Japanizer().Convert(context.Background(), richtext.Plain("?sushi"))
	app.Japanizer().Convert(context.Background(), richtext.Plain("!sushi"))

	assert.Equal(t, 1.0, testutil.ToFloat64(app.Metrics().Messages.WithLabelValues(string(domain.DecisionSkip))))
	assert.Equal(t, 1.0, testutil.ToFloat64(app.Metrics().Messages.WithLabelValues(string(domain.DecisionForced))))

	cfg := config.Default()
	cfg.Metrics.Enabled = false
	app, err = New(cfg, WithRegisterer(prometheus.NewRegistry()))
	require.NoError(t, err)
	assert.Nil(t, app.Metrics())
}

func TestNew_DisabledKanjiUsesIdentity(t *testing.T) {
	cfg := config.Default()
	cfg.Kanji.Enabled = false
	app, err := New(cfg)
	require.NoError(t, err)

	outcome := app.Japanizer().Convert(context.Background(), richtext.Plain("konnnichiha"))
	assert.Equal(t, "こんにちは", outcome.Converted.String())
}

func TestNew_RedisStore(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.Default()
	cfg.Kanji.Enabled = false
	cfg.Store.Driver = config.DriverRedis
	cfg.Store.Redis.Addr = mr.Addr()

	app, err := New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &redis.Store{}, app.Store())

	ctx := context.Background()
	id := uuid.New()
	_, err = app.Preferences().SetEnabled(ctx, id, false)
	require.NoError(t, err)
	assert.True(t, mr.Exists(redis.DefaultPrefix+id.String()))

	out, outcome, err := app.Service().Japanize(ctx, id, richtext.Plain("sushi"))
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionDisabled, outcome.Decision)
	assert.Equal(t, "sushi", out.String())

	require.NoError(t, app.Close(ctx))
}

func TestNew_StoreMiddlewares(t *testing.T) {
	underlying := memory.NewStore()
	cfg := config.Default()
	cfg.Kanji.Enabled = false
	cfg.Store.MaskNames = []string{"@"}
	cfg.Store.Encryption.Key = base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32))

	app, err := New(cfg, WithStore(underlying))
	require.NoError(t, err)

	ctx := context.Background()
	named, masked := uuid.New(), uuid.New()
	require.NoError(t, app.Preferences().Save(ctx, domain.Preference{UserID: named, Name: "steve"}))
	require.NoError(t, app.Preferences().Save(ctx, domain.Preference{UserID: masked, Name: "steve@example.com"}))

	raw, err := underlying.Load(ctx, named)
	require.NoError(t, err)
	assert.NotContains(t, raw.Name, "steve")

	pref, err := app.Store().Load(ctx, named)
	require.NoError(t, err)
	assert.Equal(t, "steve", pref.Name)

	pref, err = app.Store().Load(ctx, masked)
	require.NoError(t, err)
	assert.Equal(t, middleware.Mask, pref.Name)
}
