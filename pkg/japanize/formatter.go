package japanize

import "github.com/aretw0/japanizer/pkg/richtext"

// Placeholders bound by the Formatter.
const (
	PlaceholderJapanized = "japanized_message"
	PlaceholderPrevious  = "previous_message"
	PlaceholderOriginal  = "original_message"
)

// DefaultMessageFormat shows the converted text followed by an icon that reveals the original on hover.
const DefaultMessageFormat = "<japanized_message><hover:show_text:'<previous_message>'><#1E88E5>🔄</#1E88E5></hover>"

// Formatter decorates converted messages.
type Formatter struct {
	template *richtext.Template
}

// NewFormatter creates a formatter. A nil template disables decoration.
func NewFormatter(template *richtext.Template) *Formatter {
	return &Formatter{template: template}
}

// Format returns original when nothing changed, converted when there is no template,
// and the rendered template otherwise.
// Extra resolvers are consulted after the built-in placeholders.
func (f *Formatter) Format(original, converted richtext.Text, resolvers ...richtext.Resolver) richtext.Text {
	if original.Equal(converted) {
		return original
	}
	if f.template == nil {
		return converted
	}

	builtin := richtext.Placeholders{
		PlaceholderJapanized: converted,
		PlaceholderPrevious:  original,
		PlaceholderOriginal:  original,
	}
	return f.template.Render(append([]richtext.Resolver{builtin}, resolvers...)...)
}
