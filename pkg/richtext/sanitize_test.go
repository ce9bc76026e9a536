package richtext

import (
	"strings"
	"testing"
)

func TestSanitize_SizeLimit(t *testing.T) {
	limit := DefaultMaxInputSize

	tests := []struct {
		name      string
		inputSize int
		wantErr   bool
	}{
		{"Under Limit", limit - 1, false},
		{"Exact Limit", limit, false},
		{"Over Limit", limit + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := strings.Repeat("a", tt.inputSize)
			_, err := Sanitize(input, limit)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Sanitize() expected error for size %d, got nil", tt.inputSize)
				}
			} else if err != nil {
				t.Errorf("Sanitize() unexpected error: %v", err)
			}
		})
	}

	if _, err := Sanitize(strings.Repeat("a", limit+1), 0); err != nil {
		t.Errorf("a zero limit disables the check, got %v", err)
	}
}

func TestSanitize_ControlChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Normal Text", "konnnichiha", "konnnichiha"},
		{"Safe Controls", "Line1\nLine2\tTabbed", "Line1\nLine2\tTabbed"},
		{"ANSI Code", "\x1b[31mRed\x1b[0m", "[31mRed[0m"}, // ESC removed
		{"Null Byte", "Null\x00Byte", "NullByte"},         // NULL removed
		{"Bell", "Ding\x07", "Ding"},                      // BEL removed
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sanitize(tt.input, DefaultMaxInputSize)
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSanitize_InvalidUTF8(t *testing.T) {
	// Invalid UTF-8 sequence
	input := "\xbd\xb2\x3d\xbc\x20\xe2\x8c\x98"
	_, err := Sanitize(input, DefaultMaxInputSize)
	if err != ErrInvalidUTF8 {
		t.Errorf("Expected ErrInvalidUTF8, got %v", err)
	}
}

func TestText_Sanitize(t *testing.T) {
	in := Text{
		{Content: "a\x00b", Style: Style{Color: "red"}},
		{Content: "c", Actions: Actions{Hover: Plain("\x07hover")}},
	}

	got, err := in.Sanitize(DefaultMaxInputSize)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := Text{
		{Content: "ab", Style: Style{Color: "red"}},
		{Content: "c", Actions: Actions{Hover: Plain("hover")}},
	}
	if !got.Equal(want) {
		t.Errorf("Expected %#v, got %#v", want, got)
	}
	if in[0].Content != "a\x00b" {
		t.Error("Sanitize modified its receiver")
	}

	if _, err := (Text{{Content: "abc"}, {Content: "def"}}).Sanitize(5); err == nil {
		t.Error("Expected error when the runs together exceed the limit")
	}
}
