package fontatlas

import (
	"log/slog"

	"github.com/gogpu/fontatlas/internal/logx"
)

// SetLogger configures the logger for fontatlas and all its sub-packages.
// By default, fontatlas produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by fontatlas:
//   - [slog.LevelDebug]: font creation, atlas faces opened
//   - [slog.LevelWarn]: glyphs that do not fit in the atlas
//
// Example:
//
//	// Enable debug-level logging to stderr:
//	fontatlas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logx.Set(l)
}

// Logger returns the current logger used by fontatlas.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logx.Logger()
}
