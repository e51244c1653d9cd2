// Package logger provides a global, Sugared Zap logger for operational logs.
//
// Log entries are JSON encoded and written to stderr so they never mix with the
// human-readable report stream on stdout. Loggers can be scoped to a context with
// Derive, and the active OpenTelemetry span (if any) is attached to every entry
// as trace_id and span_id fields.
package logger

import (
	"context"
	"os"
	"sync"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ctxKeyType is the unexported type used to store a logger inside a context.
type ctxKeyType struct{}

var (
	// ctxKey is the context key under which Derive stores a scoped logger.
	ctxKey = ctxKeyType{}

	// baseLogger is the process-wide logger created by Init.
	baseLogger *zap.SugaredLogger

	// initBaseLoggerOnce guarantees Init configures baseLogger only once.
	initBaseLoggerOnce sync.Once
)

// Init configures the global logger at the given level ("debug", "info", "warn",
// "error", "panic", "fatal"). Calling Init more than once has no effect after the
// first successful call.
func Init(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}

	initBaseLoggerOnce.Do(func() {
		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.Lock(os.Stderr),
			lvl,
		)

		baseLogger = zap.New(core).Sugar()
	})

	return nil
}

// Sync flushes any buffered log entries.
func Sync() error {
	return baseLogger.Sync()
}

// deriveFromCtx returns the logger stored in ctx (or the base logger), enriched
// with the active span identifiers and the given key/value pairs.
func deriveFromCtx(ctx context.Context, keysAndValues ...any) *zap.SugaredLogger {
	l, ok := ctx.Value(ctxKey).(*zap.SugaredLogger)
	if !ok || l == nil {
		l = baseLogger
	}

	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.HasTraceID() {
		l = l.With("trace_id", spanCtx.TraceID().String())
	}
	if spanCtx.HasSpanID() {
		l = l.With("span_id", spanCtx.SpanID().String())
	}

	if len(keysAndValues) > 0 {
		l = l.With(keysAndValues...)
	}

	return l
}

// Derive returns a child context carrying a logger scoped with the given
// key/value pairs. Every log call made with the returned context includes them.
func Derive(ctx context.Context, keysAndValues ...any) context.Context {
	return context.WithValue(ctx, ctxKey, deriveFromCtx(ctx, keysAndValues...))
}

func log(ctx context.Context, level zapcore.Level, msg string, keysAndValues ...any) {
	deriveFromCtx(ctx).Logw(level, msg, keysAndValues...)
}

// Debug logs a debug-level message with optional key/value context.
func Debug(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.DebugLevel, msg, keysAndValues...)
}

// Info logs an info-level message with optional key/value context.
func Info(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.InfoLevel, msg, keysAndValues...)
}

// Warn logs a warn-level message with optional key/value context.
func Warn(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.WarnLevel, msg, keysAndValues...)
}

// Error logs an error-level message with optional key/value context.
func Error(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.ErrorLevel, msg, keysAndValues...)
}

// Panic logs a panic-level message and then panics.
func Panic(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.PanicLevel, msg, keysAndValues...)
}

// Fatal logs a fatal-level message and then exits with status 1.
func Fatal(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.FatalLevel, msg, keysAndValues...)
}
