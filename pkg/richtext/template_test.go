package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultFormat = "<japanized_message><hover:show_text:'<previous_message>'><#1E88E5>🔄</#1E88E5></hover>"

func TestTemplate_DefaultFormat(t *testing.T) {
	tmpl, err := Parse(defaultFormat)
	require.NoError(t, err)

	out := tmpl.Render(Placeholders{
		"japanized_message": Plain("今日は"),
		"previous_message":  Plain("konnnichiha"),
	})

	require.Len(t, out, 2)
	assert.Equal(t, Run{Content: "今日は"}, out[0])
	assert.Equal(t, "🔄", out[1].Content)
	assert.Equal(t, "#1E88E5", out[1].Style.Color)
	assert.Equal(t, Text{{Content: "konnnichiha"}}, out[1].Actions.Hover)
}

func TestTemplate_PlaceholderInheritsOuterStyle(t *testing.T) {
	tmpl := MustParse("<gold><b><msg></b></gold>")
	out := tmpl.Render(Placeholders{
		"msg": Text{{Content: "a"}, {Content: "b", Style: Style{Color: "#FF0000"}}},
	})

	assert.Equal(t, Text{
		{Content: "a", Style: Style{Color: "gold", Bold: true}},
		{Content: "b", Style: Style{Color: "#FF0000", Bold: true}},
	}, out)
}

func TestTemplate_UnresolvedPlaceholderIsLiteral(t *testing.T) {
	out := MustParse("hi <unknown> there").Render()
	assert.Equal(t, "hi <unknown> there", out.String())
}

func TestTemplate_ResolverOrder(t *testing.T) {
	first := Placeholders{"name": Plain("first")}
	second := ResolverFunc(func(name string) (Text, bool) {
		if name == "name" || name == "other" {
			return Plain("second"), true
		}
		return nil, false
	})

	out := MustParse("<name>/<other>").Render(nil, first, second)
	assert.Equal(t, "first/second", out.String())
}

func TestTemplate_Tags(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   Text
	}{
		{
			name:   "named color with close",
			source: "<red>a</red>b",
			want:   Text{{Content: "a", Style: Style{Color: "red"}}, {Content: "b"}},
		},
		{
			name:   "color argument",
			source: "<color:gold>x",
			want:   Text{{Content: "x", Style: Style{Color: "gold"}}},
		},
		{
			name:   "decoration aliases",
			source: "<b><i><u><st><obf>x",
			want: Text{{Content: "x", Style: Style{
				Bold: true, Italic: true, Underlined: true, Strikethrough: true, Obfuscated: true,
			}}},
		},
		{
			name:   "reset closes everything",
			source: "<red><bold>a<reset>b",
			want:   Text{{Content: "a", Style: Style{Color: "red", Bold: true}}, {Content: "b"}},
		},
		{
			name:   "click and insert",
			source: "<click:run_command:'/japanize'><insert:x>go",
			want: Text{{Content: "go", Actions: Actions{
				Click:     &Click{Action: "run_command", Value: "/japanize"},
				Insertion: "x",
			}}},
		},
		{
			name:   "escape and stray bracket",
			source: `\<red> 1 < 2`,
			want:   Text{{Content: "<red> 1 < 2"}},
		},
		{
			name:   "closing unknown tag is ignored",
			source: "a</japanized_message>b",
			want:   Text{{Content: "ab"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Parse(tt.source)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tmpl.Render())
		})
	}
}

func TestTemplate_ParseErrors(t *testing.T) {
	bad := []string{
		"<hover:show_text:'unterminated>",
		"<#12345G>x",
		"<color:nocolor>x",
		"<color>x",
		"<click:explode:'x'>y",
		"<hover:show_text>x",
		"<insert>x",
		"<red:",
	}
	for _, src := range bad {
		t.Run(src, func(t *testing.T) {
			_, err := Parse(src)
			assert.ErrorIs(t, err, ErrInvalidTemplate)
		})
	}
}

func TestTemplate_String(t *testing.T) {
	assert.Equal(t, defaultFormat, MustParse(defaultFormat).String())
}
