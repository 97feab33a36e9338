// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"log/slog"
	"os"
)

// LogContextKey is the type for context keys consumed by the logger.
type LogContextKey string

// Context keys injected by the HTTP middleware and attached to every record.
const (
	RequestIDKey LogContextKey = "request_id"
	UserIDKey    LogContextKey = "user_id"
	TraceIDKey   LogContextKey = "trace_id"
)

// redactedValue replaces the value of any attribute whose key is on the
// denylist.
const redactedValue = "[REDACTED]"

// redactedFields is the fixed denylist of attribute names that must never
// reach a log sink.
var redactedFields = map[string]struct{}{
	"password":      {},
	"token":         {},
	"authorization": {},
	"secret":        {},
	"cookie":        {},
}

// ctxHandler adds request-scoped context values to each record.
type ctxHandler struct {
	slog.Handler
}

func (h *ctxHandler) Handle(ctx context.Context, r slog.Record) error {
	if rid, ok := ctx.Value(RequestIDKey).(string); ok {
		r.AddAttrs(slog.String("request_id", rid))
	}
	if uid, ok := ctx.Value(UserIDKey).(uint); ok {
		r.AddAttrs(slog.Uint64("user_id", uint64(uid)))
	}
	if tid, ok := ctx.Value(TraceIDKey).(string); ok {
		r.AddAttrs(slog.String("trace_id", tid))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ctxHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ctxHandler{h.Handler.WithAttrs(attrs)}
}

func (h *ctxHandler) WithGroup(name string) slog.Handler {
	return &ctxHandler{h.Handler.WithGroup(name)}
}

// redactAttr is the slog ReplaceAttr hook applying the denylist.
func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if _, denied := redactedFields[a.Key]; denied {
		a.Value = slog.StringValue(redactedValue)
	}
	return a
}

// NewLogger builds the application logger: JSON output in production, text
// elsewhere, with denylist redaction and context-aware request attributes.
func NewLogger(env string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       slog.LevelInfo,
		ReplaceAttr: redactAttr,
	}

	var handler slog.Handler
	if env == "production" || env == "prod" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(&ctxHandler{handler})
}

// InitLogger builds the application logger and installs it as the slog
// default so deep layers can log without threading a logger through.
func InitLogger(env string) *slog.Logger {
	logger := NewLogger(env)
	slog.SetDefault(logger)
	return logger
}
