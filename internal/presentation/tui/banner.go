package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII art banner shown by long-running commands.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{" _                      _      _               ", "#818cf8"},
		{"| |_ _  _ _ __  ___  __| |__ _| |__ _ ______", "#a78bfa"},
		{"|  _| || | '_ \\/ -_)/ _` / _| / _` (_-<_-<", "#c084fc"},
		{" \\__|\\_, | .__/\\___|\\__,_\\__|_\\__,_/__/__/", "#e879f9"},
		{"     |__/|_|                                   ", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
