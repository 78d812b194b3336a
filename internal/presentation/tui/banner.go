package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the conform banner to w.
func PrintBanner(w io.Writer, color bool) {
	p := termenv.Ascii
	if color {
		p = termenv.ColorProfile()
	}
	// Indigo to teal
	lines := []struct {
		text, hex string
	}{
		{"                    __                     ", "#818cf8"},
		{"  _______  ___  ___/ _/__  ______ _        ", "#6d9ef8"},
		{" / __/ _ \\/ _ \\/ _  / _ \\/ __/  ' \\   ", "#4fb3ef"},
		{" \\__/\\___/_//_/_//_/\\___/_/ /_/_/_/   ", "#2dd4bf"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.hex)))
	}
	fmt.Fprintln(w)
}
