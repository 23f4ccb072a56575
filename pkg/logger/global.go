package logger

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	globalMu sync.RWMutex
	global   *Logger
	fallback = newFallback()
)

// newFallback пишет только warn и выше, пока main не установил глобальный логгер.
func newFallback() *Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	zapLogger, err := cfg.Build()
	if err != nil {
		return &Logger{l: zap.NewNop()}
	}
	return &Logger{l: zapLogger.With(zap.String("logger", "fallback"))}
}

// SetGlobalLogger заменяет глобальный логгер. nil возвращает резервный.
func SetGlobalLogger(l *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = l
}

// Log возвращает логгер из контекста, затем глобальный, затем резервный.
func Log(ctx context.Context) *Logger {
	if l, ok := fromContext(ctx); ok {
		return l
	}

	globalMu.RLock()
	defer globalMu.RUnlock()
	if global != nil {
		return global
	}
	return fallback
}
