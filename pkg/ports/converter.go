package ports

import "context"

// KanjiConverter turns hiragana into mixed kanji-kana text.
// Implementations never fail: on any error they return the input unchanged.
type KanjiConverter interface {
	Convert(ctx context.Context, hiragana string) string
}

// KanjiConverterFunc adapts a function to KanjiConverter.
type KanjiConverterFunc func(ctx context.Context, hiragana string) string

// Convert calls f.
func (f KanjiConverterFunc) Convert(ctx context.Context, hiragana string) string {
	return f(ctx, hiragana)
}

// Identity is a KanjiConverter that returns its input.
var Identity = KanjiConverterFunc(func(_ context.Context, s string) string { return s })
