package logger

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey int

const (
	loggerCtxKey ctxKey = iota
	requestIDCtxKey
)

// NewContext кладет логгер в контекст запроса. Log(ctx) вернет именно его.
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, l)
}

// NewRequestIDContext кладет в контекст идентификатор запроса.
// Пустой requestID заменяется сгенерированным.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = GenerateRequestID()
	}
	return context.WithValue(ctx, requestIDCtxKey, requestID)
}

// RequestIDFromContext возвращает идентификатор запроса, если он есть в контексте.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDCtxKey).(string)
	return id, ok && id != ""
}

// GenerateRequestID возвращает новый UUID для запроса.
func GenerateRequestID() string {
	return uuid.NewString()
}

func fromContext(ctx context.Context) (*Logger, bool) {
	if ctx == nil {
		return nil, false
	}
	l, ok := ctx.Value(loggerCtxKey).(*Logger)
	return l, ok && l != nil
}
