package main

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// terminalSize returns the size of f in cells, or 0, 0 when f is not a
// terminal or cannot be measured.
func terminalSize(f *os.File) (cols, lines int) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0, 0
	}
	w, h, err := term.GetSize(fd)
	if err != nil {
		slog.Debug("measure terminal", "err", err)
		return 0, 0
	}
	return w, h
}
