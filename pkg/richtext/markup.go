package richtext

import "strings"

var contentEscaper = strings.NewReplacer(`\`, `\\`, `<`, `\<`)

// Markup serializes t into template syntax. Parsing and rendering the result without
// resolvers yields a text equal to t.
func (t Text) Markup() string {
	var b strings.Builder
	for _, run := range t.Compact() {
		var closers []string
		open := func(tag, name string) {
			b.WriteString("<" + tag + ">")
			closers = append(closers, "</"+name+">")
		}

		if c := run.Style.Color; c != "" {
			open(c, c)
		}
		for _, d := range []struct {
			on   bool
			name string
		}{
			{run.Style.Bold, "bold"},
			{run.Style.Italic, "italic"},
			{run.Style.Underlined, "underlined"},
			{run.Style.Strikethrough, "strikethrough"},
			{run.Style.Obfuscated, "obfuscated"},
		} {
			if d.on {
				open(d.name, d.name)
			}
		}
		if len(run.Actions.Hover) > 0 {
			open("hover:show_text:"+quote(run.Actions.Hover.Markup()), "hover")
		}
		if c := run.Actions.Click; c != nil {
			open("click:"+c.Action+":"+quote(c.Value), "click")
		}
		if run.Actions.Insertion != "" {
			open("insert:"+quote(run.Actions.Insertion), "insert")
		}

		b.WriteString(contentEscaper.Replace(run.Content))
		for i := len(closers) - 1; i >= 0; i-- {
			b.WriteString(closers[i])
		}
	}
	return b.String()
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}
