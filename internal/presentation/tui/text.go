package tui

import (
	"io"
	"os"
	"strings"

	"github.com/aretw0/japanizer/pkg/richtext"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// RenderText converts styled text into escape sequences for profile.
// Hover text has no terminal equivalent and is dropped; the Ascii profile yields plain text.
func RenderText(profile termenv.Profile, t richtext.Text) string {
	var b strings.Builder
	for _, run := range t.Compact() {
		b.WriteString(styleRun(profile, run).String())
	}
	return b.String()
}

func styleRun(profile termenv.Profile, run richtext.Run) termenv.Style {
	s := profile.String(run.Content)

	if c := run.Style.Color; c != "" {
		if hex, ok := richtext.NamedColors[c]; ok {
			c = hex
		}
		s = s.Foreground(profile.Color(c))
	}
	if run.Style.Bold {
		s = s.Bold()
	}
	if run.Style.Italic {
		s = s.Italic()
	}
	if run.Style.Underlined {
		s = s.Underline()
	}
	if run.Style.Strikethrough {
		s = s.CrossOut()
	}
	if run.Style.Obfuscated {
		s = s.Blink()
	}
	return s
}
