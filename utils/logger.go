package utils

import (
	"io"
	"strings"

	"golang.org/x/exp/slog"
)

// NewLogger returns a text logger at the named level. Unknown levels fall
// back to info.
func NewLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
