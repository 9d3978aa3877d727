package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/aretw0/typedclass/internal/logging"
	"github.com/aretw0/typedclass/internal/presentation/tui"
)

// NewLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from Stdout command output).
func NewLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.New(slog.LevelWarn)
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Renderer selects glamour output on a terminal and raw markdown elsewhere.
func Renderer(w io.Writer) func(string) (string, error) {
	if IsTerminal(w) {
		return tui.NewRenderer()
	}
	return tui.PlainRenderer()
}
