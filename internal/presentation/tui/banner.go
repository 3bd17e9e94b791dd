package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the rotator banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{`            _        _             `, "#f59e0b"},
		{`  _ __ ___ | |_ __ _| |_ ___  _ __ `, "#f97316"},
		{` | '__/ _ \| __/ _' | __/ _ \| '__|`, "#ef4444"},
		{` | | | (_) | || (_| | || (_) | |   `, "#ec4899"},
		{` |_|  \___/ \__\__,_|\__\___/|_|   `, "#d946ef"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
