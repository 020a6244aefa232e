package observability

import (
	"context"
	"log/slog"
	"time"
)

// Logger receives background task events. The HTTP layer replaces it with its
// context-aware logger at startup.
var Logger = slog.Default()

// SetLogger replaces Logger. A nil logger is ignored.
func SetLogger(l *slog.Logger) {
	if l != nil {
		Logger = l
	}
}

// TaskLog records the lifecycle of one background operation.
type TaskLog struct {
	operation string
	start     time.Time
	attrs     []any
}

// StartTask logs the start of operation and returns a handle for its outcome.
func StartTask(ctx context.Context, operation string, attrs ...any) *TaskLog {
	Logger.DebugContext(ctx, "task started", append([]any{slog.String("operation", operation)}, attrs...)...)
	return &TaskLog{operation: operation, start: time.Now(), attrs: attrs}
}

// Done logs successful completion.
func (t *TaskLog) Done(ctx context.Context, attrs ...any) {
	Logger.InfoContext(ctx, "task completed", t.fields(attrs)...)
}

// Failed logs err. Callers decide whether the failure is fatal to the operation.
func (t *TaskLog) Failed(ctx context.Context, err error, attrs ...any) {
	Logger.ErrorContext(ctx, "task failed", append(t.fields(attrs), slog.String("error", err.Error()))...)
}

func (t *TaskLog) fields(extra []any) []any {
	fields := []any{
		slog.String("operation", t.operation),
		slog.Duration("duration", time.Since(t.start)),
	}
	fields = append(fields, t.attrs...)
	return append(fields, extra...)
}
