package richtext

import (
	"reflect"
	"strings"
)

// Style holds the visual formatting of a run.
// The zero value means "unstyled"; an empty Color inherits from the surrounding context.
type Style struct {
	Color         string `json:"color,omitempty"`
	Bold          bool   `json:"bold,omitempty"`
	Italic        bool   `json:"italic,omitempty"`
	Underlined    bool   `json:"underlined,omitempty"`
	Strikethrough bool   `json:"strikethrough,omitempty"`
	Obfuscated    bool   `json:"obfuscated,omitempty"`
}

// IsZero reports whether no formatting is set.
func (s Style) IsZero() bool {
	return s == Style{}
}

// Merge returns s with unset fields taken from parent.
func (s Style) Merge(parent Style) Style {
	if s.Color == "" {
		s.Color = parent.Color
	}
	s.Bold = s.Bold || parent.Bold
	s.Italic = s.Italic || parent.Italic
	s.Underlined = s.Underlined || parent.Underlined
	s.Strikethrough = s.Strikethrough || parent.Strikethrough
	s.Obfuscated = s.Obfuscated || parent.Obfuscated
	return s
}

// Click is an interactive action triggered when the run is clicked.
type Click struct {
	Action string `json:"action"`
	Value  string `json:"value"`
}

// Actions holds the interactive attributes of a run.
type Actions struct {
	Hover     Text   `json:"hover,omitempty"`
	Click     *Click `json:"click,omitempty"`
	Insertion string `json:"insertion,omitempty"`
}

// IsZero reports whether no interactive attribute is set.
func (a Actions) IsZero() bool {
	return len(a.Hover) == 0 && a.Click == nil && a.Insertion == ""
}

// Merge returns a with unset fields taken from parent.
func (a Actions) Merge(parent Actions) Actions {
	if len(a.Hover) == 0 {
		a.Hover = parent.Hover
	}
	if a.Click == nil {
		a.Click = parent.Click
	}
	if a.Insertion == "" {
		a.Insertion = parent.Insertion
	}
	return a
}

// Run is a contiguous fragment of text with uniform formatting.
type Run struct {
	Content string  `json:"text"`
	Style   Style   `json:"style,omitempty"`
	Actions Actions `json:"actions,omitempty"`
}

// sameFormat reports whether two runs can be merged without losing metadata.
func sameFormat(a, b Run) bool {
	return a.Style == b.Style && reflect.DeepEqual(a.Actions, b.Actions)
}

// Text is an ordered sequence of runs.
// Concatenating the contents of all runs yields the plain-text form.
type Text []Run

// Plain creates an unstyled single-run text.
func Plain(s string) Text {
	return Text{{Content: s}}
}

// String returns the plain-text projection.
func (t Text) String() string {
	var b strings.Builder
	for _, r := range t {
		b.WriteString(r.Content)
	}
	return b.String()
}

// Compact merges adjacent runs with identical formatting and drops empty runs.
// An empty result is nil.
func (t Text) Compact() Text {
	var out Text
	for _, r := range t {
		if r.Content == "" {
			continue
		}
		if n := len(out); n > 0 && sameFormat(out[n-1], r) {
			out[n-1].Content += r.Content
			continue
		}
		out = append(out, r)
	}
	return out
}

// Equal reports whether t and other render identically,
// ignoring how the content is split into runs.
func (t Text) Equal(other Text) bool {
	return reflect.DeepEqual(t.Compact(), other.Compact())
}

// MapRuns returns a copy of t with fn applied to each run's content.
func (t Text) MapRuns(fn func(string) string) Text {
	out := make(Text, len(t))
	for i, r := range t {
		r.Content = fn(r.Content)
		out[i] = r
	}
	return out
}
