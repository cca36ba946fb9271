package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a slog.Logger that drops everything, keeping test
// output readable while components still get a real logger.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
