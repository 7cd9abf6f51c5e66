// Package logger provides the shared zap logger and its context plumbing.
package logger

import (
	"context"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var (
	once   sync.Once
	logger *zap.SugaredLogger
)

// Get initializes the process-wide sugared logger on first call and returns
// the same instance afterwards. LOG_LEVEL selects the level (default info);
// a non-empty JSON_LOG switches to JSON output.
func Get() *zap.SugaredLogger {
	once.Do(func() {
		logger = zap.New(zapcore.NewCore(encoder(), zapcore.AddSync(os.Stdout), level())).Sugar()
	})
	return logger
}

func level() zap.AtomicLevel {
	lvl := zap.InfoLevel
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		if parsed, err := zapcore.ParseLevel(env); err == nil {
			lvl = parsed
		}
	}
	return zap.NewAtomicLevelAt(lvl)
}

func encoder() zapcore.Encoder {
	if os.Getenv("JSON_LOG") != "" {
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "timestamp"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(cfg)
	}

	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

// FromCtx returns the logger attached to ctx, or the shared logger when none
// is attached.
func FromCtx(ctx context.Context, with ...any) *zap.SugaredLogger {
	l, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger)
	if !ok {
		l = Get()
	}
	if len(with) == 0 {
		return l
	}
	return l.With(with...)
}

// WithCtx returns a copy of ctx carrying the logger.
func WithCtx(ctx context.Context, l *zap.SugaredLogger) context.Context {
	if existing, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok && existing == l {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, l)
}
