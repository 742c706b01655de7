package logging

import (
	"context"
	"eventual/internal/core/domain/logging"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger builds a JSON production logger. With debug set it also
// emits debug records.
func NewZapLogger(debug bool) *ZapLogger {
	config := zap.NewProductionConfig()
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic("Could not create Zap logger.")
	}
	return &ZapLogger{logger: logger}
}

func NewZapLoggerFrom(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{logger: logger.WithOptions(zap.AddCallerSkip(1))}
}

func (l *ZapLogger) Sync() {
	_ = l.logger.Sync()
}

func (l *ZapLogger) Debug(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.logger.Debug(msg, fields(ctx, entries)...)
}

func (l *ZapLogger) Info(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.logger.Info(msg, fields(ctx, entries)...)
}

func (l *ZapLogger) Warning(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.logger.Warn(msg, fields(ctx, entries)...)
}

func (l *ZapLogger) Error(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.logger.Error(msg, fields(ctx, entries)...)
}

func fields(ctx context.Context, entries []logging.LogEntry) []zap.Field {
	result := make([]zap.Field, 0, len(entries)+1)
	if ctx != nil {
		if id := middleware.GetReqID(ctx); id != "" {
			result = append(result, zap.String("requestId", id))
		}
	}
	for _, e := range entries {
		if err, ok := e.Value.(error); ok {
			result = append(result, zap.NamedError(e.Key, err))
			continue
		}
		result = append(result, zap.Any(e.Key, e.Value))
	}
	return result
}
