package main

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/japanizer"
	httpAdapter "github.com/aretw0/japanizer/pkg/adapters/http"
	"github.com/aretw0/japanizer/pkg/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with a config path that does not exist, so defaults apply.
// Flag values survive between runs, so callers pass every flag they rely on.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cfg := filepath.Join(t.TempDir(), "missing.yaml")
	rootCmd.SetArgs(append([]string{args[0], "--config", cfg}, args[1:]...))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))

	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "japanizer version "+japanizer.Version+"\n", out)
}

func TestConvert_Args(t *testing.T) {
	out, err := execute(t, "", "convert", "--user=", "--no-kanji", "--markup=false", "--transliterate-only=false", "-o", "plain", "konnnichiha")
	require.NoError(t, err)
	assert.Equal(t, "こんにちは🔄\n", out)
}

func TestConvert_StdinJSON(t *testing.T) {
	out, err := execute(t, "?sushi\n!sushi\n", "convert", "--user=", "--no-kanji", "--markup=false", "--transliterate-only=false", "-o", "json")
	require.NoError(t, err)

	dec := json.NewDecoder(strings.NewReader(out))
	var first, second httpAdapter.MessageResponse
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))

	assert.Equal(t, domain.DecisionSkip, first.Decision)
	assert.Equal(t, "sushi", first.Plain)
	assert.Equal(t, domain.DecisionForced, second.Decision)
	assert.Equal(t, "すし🔄", second.Plain)
}

func TestConvert_MarkupOutput(t *testing.T) {
	out, err := execute(t, "", "convert", "--user=", "--no-kanji", "--markup", "--transliterate-only", "-o", "markup", "<red>ra-men</red>")
	require.NoError(t, err)
	assert.Equal(t, "<red>らーめん</red>\n", out)
}

func TestConvert_Errors(t *testing.T) {
	_, err := execute(t, "", "convert", "--user=", "--no-kanji", "--markup=false", "--transliterate-only=false", "-o", "yaml", "sushi")
	assert.Error(t, err)

	_, err = execute(t, "", "convert", "--no-kanji", "--markup=false", "-o", "plain", "--user", "nope", "sushi")
	assert.Error(t, err)
}

func TestRules(t *testing.T) {
	out, err := execute(t, "", "rules", "--raw", "ky")
	require.NoError(t, err)
	assert.Contains(t, out, "| `kya` | きゃ |")
	assert.NotContains(t, out, "| `ka` |")
}

func TestPreference(t *testing.T) {
	id := uuid.New()
	out, err := execute(t, "", "preference", id.String(), "disable", "--name", "steve")
	require.NoError(t, err)
	assert.Equal(t, "steve ("+id.String()+"): disable\n", out)

	_, err = execute(t, "", "preference", "not-a-uuid")
	assert.Error(t, err)

	_, err = execute(t, "", "preference", id.String(), "sometimes")
	assert.Error(t, err)
}
