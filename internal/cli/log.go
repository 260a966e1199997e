package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger. Timestamps look like "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one enumeration of an n-gon.
type progress struct {
	logger *log.Logger
	size   int
	start  time.Time
}

func newProgress(l *log.Logger, size int) *progress {
	return &progress{logger: l, size: size, start: time.Now()}
}

// done logs "Found 39 paths (1.234s)" with the size and cache state attached.
func (p *progress) done(paths int, cached bool) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Info(fmt.Sprintf("Found %d paths (%s)", paths, elapsed), "size", p.size, "cached", cached)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// withRequestLogger attaches a child of base that tags every line with the
// request id.
func withRequestLogger(ctx context.Context, base *log.Logger, requestID string) context.Context {
	return withLogger(ctx, base.With("request_id", requestID))
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
