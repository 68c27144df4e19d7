// Package logger wraps log/slog. Handlers pick a request-scoped
// logger out of the context so every line carries the request_id:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("escrow released", "order_id", id)
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/careerloft/careerloft/config"
)

// L is the base logger. Production emits JSON for the log aggregator;
// everything else gets the readable text handler at debug level.
var L *slog.Logger

func init() {
	L = slog.New(baseHandler())
	slog.SetDefault(L)
}

func baseHandler() slog.Handler {
	switch config.AppEnv() {
	case "production", "prod":
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
}

// EnableMongoSink tees records into MongoDB on top of the console
// handler. Called at boot when LOG_MONGO_URI is set; the returned
// closer flushes the sink on shutdown.
func EnableMongoSink(uri, db, collection string) (func(), error) {
	sink, err := NewMongoHandler(uri, db, collection)
	if err != nil {
		return nil, err
	}
	L = slog.New(NewMultiHandler(L.Handler(), sink))
	slog.SetDefault(L)
	return sink.Close, nil
}

type ctxKey struct{}

// InjectLogger stores a request-tagged logger in ctx. The access-log
// middleware is the only expected caller.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// WithCtx returns the request-tagged logger from ctx, or the base
// logger when there is none (jobs, CLI, tests).
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
