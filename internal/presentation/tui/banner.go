package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the japanizer banner to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	// Sunrise palette, red to gold.
	lines := []struct {
		text  string
		color string
	}{
		{"    _                         _               ", "#e11d48"},
		{"   (_) __ _ _ __   __ _ _ __ (_)_______ _ __  ", "#f43f5e"},
		{"   | |/ _` | '_ \\ / _` | '_ \\| |_  / _ \\ '__| ", "#fb7185"},
		{"   | | (_| | |_) | (_| | | | | |/ /  __/ |    ", "#fb923c"},
		{"  _/ |\\__,_| .__/ \\__,_|_| |_|_/___\\___|_|    ", "#f59e0b"},
		{" |__/      |_|                                ", "#facc15"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("   ローマ字 → かな → 漢字  "+version).Faint())
	fmt.Fprintln(w)
}
