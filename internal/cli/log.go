package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/jacoelho/jdoc/internal/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() when
// none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports document events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnParse(e observability.ParseEvent) {
	if e.Err != nil {
		h.logger.Debug("parse failed", "bytes", e.Bytes, "duration", e.Duration, "err", e.Err)
		return
	}
	h.logger.Debug("parsed", "bytes", e.Bytes, "duration", e.Duration, "blocks", e.ArenaBlocks)
}

func (h logHooks) OnSerialize(e observability.SerializeEvent) {
	h.logger.Debug("serialized", "bytes", e.Bytes, "indent", e.Indent, "duration", e.Duration)
}
