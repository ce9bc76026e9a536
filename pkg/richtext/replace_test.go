package richtext

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = Style{Color: "red"}
var bold = Style{Bold: true}

func upper(s string) string { return strings.ToUpper(s) }

func TestReplaceAll_NoMatchReturnsInput(t *testing.T) {
	in := Text{{Content: "hello", Style: red}}
	out := in.ReplaceAll(regexp.MustCompile(`xyz`), upper)
	assert.Equal(t, in, out)
}

func TestReplaceAll_Empty(t *testing.T) {
	var in Text
	out := in.ReplaceAll(regexp.MustCompile(`a`), upper)
	assert.Empty(t, out)
	assert.Equal(t, "", out.String())
}

func TestReplaceAll_SplitsRunAndInheritsStyle(t *testing.T) {
	in := Text{{Content: "xaby", Style: red}}
	out := in.ReplaceAll(regexp.MustCompile(`ab`), upper)

	require.Len(t, out, 3)
	assert.Equal(t, "x", out[0].Content)
	assert.Equal(t, "AB", out[1].Content)
	assert.Equal(t, "y", out[2].Content)
	for _, r := range out {
		assert.Equal(t, red, r.Style)
	}
	assert.Equal(t, Text{{Content: "xABy", Style: red}}, out.Compact())
}

func TestReplaceAll_PreservesUnmatchedRuns(t *testing.T) {
	click := &Click{Action: "open_url", Value: "https://example.com"}
	in := Text{
		{Content: "ka", Style: red},
		{Content: "--", Style: bold, Actions: Actions{Click: click}},
		{Content: "ka"},
	}
	out := in.ReplaceAll(regexp.MustCompile(`ka`), func(string) string { return "か" })

	require.Len(t, out, 3)
	assert.Equal(t, Run{Content: "か", Style: red}, out[0])
	assert.Equal(t, Run{Content: "--", Style: bold, Actions: Actions{Click: click}}, out[1])
	assert.Equal(t, Run{Content: "か"}, out[2])
}

func TestReplaceAll_MatchSpanningRuns(t *testing.T) {
	in := Text{
		{Content: "ak", Style: red},
		{Content: "ya!", Style: bold},
	}
	out := in.ReplaceAll(regexp.MustCompile(`kya`), func(string) string { return "きゃ" })

	assert.Equal(t, "aきゃ!", out.String())
	assert.Equal(t, Text{
		{Content: "a", Style: red},
		{Content: "きゃ", Style: red},
		{Content: "!", Style: bold},
	}, out)
}

func TestReplaceAll_MatchAtRunBoundaryTakesNextRunStyle(t *testing.T) {
	in := Text{
		{Content: "x", Style: red},
		{Content: "ka", Style: bold},
	}
	out := in.ReplaceAll(regexp.MustCompile(`ka`), func(string) string { return "か" })
	assert.Equal(t, Text{{Content: "x", Style: red}, {Content: "か", Style: bold}}, out)
}

func TestReplaceAll_KeepsEmptyRuns(t *testing.T) {
	in := Text{{Content: "", Style: red}, {Content: "ab"}}
	out := in.ReplaceAll(regexp.MustCompile(`a`), upper)
	assert.Equal(t, Text{{Content: "", Style: red}, {Content: "A"}, {Content: "b"}}, out)
}

func TestTrimPrefix(t *testing.T) {
	t.Run("single run", func(t *testing.T) {
		out, ok := Plain("?konnnichiha").TrimPrefix("?")
		assert.True(t, ok)
		assert.Equal(t, "konnnichiha", out.String())
	})

	t.Run("only once", func(t *testing.T) {
		out, ok := Plain("!!hi").TrimPrefix("!")
		assert.True(t, ok)
		assert.Equal(t, "!hi", out.String())
	})

	t.Run("spanning runs", func(t *testing.T) {
		in := Text{{Content: "!", Style: red}, {Content: "!x", Style: bold}}
		out, ok := in.TrimPrefix("!!")
		assert.True(t, ok)
		assert.Equal(t, Text{{Content: "x", Style: bold}}, out)
	})

	t.Run("absent", func(t *testing.T) {
		in := Plain("hello")
		out, ok := in.TrimPrefix("!")
		assert.False(t, ok)
		assert.Equal(t, in, out)
	})

	t.Run("empty prefix", func(t *testing.T) {
		_, ok := Plain("hello").TrimPrefix("")
		assert.False(t, ok)
	})
}

func TestCompactAndEqual(t *testing.T) {
	a := Text{{Content: "ab", Style: red}, {Content: ""}, {Content: "c", Style: red}}
	b := Text{{Content: "abc", Style: red}}

	assert.Equal(t, b, a.Compact())
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(Text{{Content: "abc"}}))
	assert.Nil(t, Text{{Content: ""}}.Compact())
	assert.True(t, Text(nil).Equal(Text{}))
}

func TestMapRuns(t *testing.T) {
	in := Text{{Content: "a", Style: red}, {Content: "b"}}
	out := in.MapRuns(upper)

	assert.Equal(t, Text{{Content: "A", Style: red}, {Content: "B"}}, out)
	assert.Equal(t, "a", in[0].Content, "input must not be mutated")
}
