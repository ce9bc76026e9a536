package richtext

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxInputSize bounds an incoming message, in bytes of plain text.
const DefaultMaxInputSize = 4096

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// Sanitize cleans user input by enforcing a size limit, validating UTF-8,
// and stripping control characters other than newline, tab and carriage return.
// A limit of zero or less disables the size check.
func Sanitize(input string, limit int) (string, error) {
	// Reject rather than truncate so a message is never half converted.
	if limit > 0 && len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	return stripControl(input)
}

// Sanitize applies Sanitize to every run, hover text included.
// The limit counts the plain text of t.
func (t Text) Sanitize(limit int) (Text, error) {
	if n := len(t.String()); limit > 0 && n > limit {
		return nil, fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, n, limit)
	}

	out := make(Text, 0, len(t))
	for _, run := range t {
		content, err := stripControl(run.Content)
		if err != nil {
			return nil, err
		}
		run.Content = content
		if len(run.Actions.Hover) > 0 {
			hover, err := run.Actions.Hover.Sanitize(0)
			if err != nil {
				return nil, err
			}
			run.Actions.Hover = hover
		}
		out = append(out, run)
	}
	return out, nil
}

func stripControl(input string) (string, error) {
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	// Fast path: if no control chars, return as is.
	if strings.IndexFunc(input, isUnsafeControl) < 0 {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !isUnsafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func isUnsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}
