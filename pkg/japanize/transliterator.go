package japanize

import (
	"github.com/aretw0/japanizer/pkg/richtext"
	"github.com/aretw0/japanizer/pkg/romaji"
)

// Transliterator rewrites romaji into hiragana inside styled text.
type Transliterator struct {
	table *romaji.Table
}

// NewTransliterator returns a transliterator backed by table.
func NewTransliterator(table *romaji.Table) *Transliterator {
	return &Transliterator{table: table}
}

// Transliterate replaces every longest romaji match in a single left-to-right scan.
// Unmatched spans keep their runs. Text without matches is returned unchanged.
func (t *Transliterator) Transliterate(text richtext.Text) richtext.Text {
	return text.ReplaceAll(t.table.Matcher(), t.table.Replace)
}

// Table returns the underlying rule table.
func (t *Transliterator) Table() *romaji.Table {
	return t.table
}
