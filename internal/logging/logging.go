// internal/logging/logging.go
package logging

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/masq"
)

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// New builds a logger writing to w. Format is "json" or "text".
// Struct fields tagged `masq:"secret"` are redacted in both formats.
func New(format, level string, w io.Writer) (*slog.Logger, error) {
	lvl, ok := levels[level]
	if !ok {
		return nil, fmt.Errorf("invalid log level %q, expected debug, info, warn or error", level)
	}

	filter := masq.New(masq.WithTag("secret"))

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       lvl,
			ReplaceAttr: filter,
		})
	case "text":
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(lvl),
			clog.WithSource(true),
			clog.WithReplaceAttr(filter),
		)
	default:
		return nil, fmt.Errorf("invalid log format %q, expected json or text", format)
	}

	return slog.New(handler), nil
}
