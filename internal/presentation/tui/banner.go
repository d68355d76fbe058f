package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the etch banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Using a subtle gradient-like color scheme (Indigo/Violet)
	lines := []struct {
		text  string
		color string
	}{
		{"       _       _     ", "#818cf8"},
		{"   ___| |_ ___| |__  ", "#a78bfa"},
		{"  / _ \\ __/ __| '_ \\ ", "#c084fc"},
		{" |  __/ || (__| | | |", "#e879f9"},
		{"  \\___|\\__\\___|_| |_|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
