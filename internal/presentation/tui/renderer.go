package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/japanizer/pkg/romaji"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// RulesMarkdown lists the rules of table as a markdown table in match order.
// An empty filter keeps every rule; otherwise only keys starting with filter are listed.
func RulesMarkdown(table *romaji.Table, filter string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Romaji rules\n\n")
	b.WriteString("| Romaji | Kana |\n|---|---|\n")

	n := 0
	for _, r := range table.Rules() {
		if !strings.HasPrefix(r.Key, filter) {
			continue
		}
		fmt.Fprintf(&b, "| `%s` | %s |\n", escapeCell(r.Key), escapeCell(r.Value))
		n++
	}
	fmt.Fprintf(&b, "\n%d of %d rules\n", n, table.Len())
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
