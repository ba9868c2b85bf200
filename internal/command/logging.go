package command

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// newLogger returns a text logger on w at the named level. "off" discards
// everything.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	if strings.EqualFold(strings.TrimSpace(level), "off") {
		return slog.New(slog.DiscardHandler), nil
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}
