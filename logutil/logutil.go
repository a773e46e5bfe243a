// Package logutil configures the process-wide slog logger. It is installed
// once at process entry; nothing else holds logger state.
package logutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/llamashift/llamashift/envconfig"
)

func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.SourceKey {
				source := attr.Value.Any().(*slog.Source)
				source.File = filepath.Base(source.File)
			}
			return attr
		},
	}))
}

// Init installs the default logger on stderr, honoring LLAMASHIFT_DEBUG.
func Init() {
	level := slog.LevelInfo
	if envconfig.Debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(NewLogger(os.Stderr, level))
}
