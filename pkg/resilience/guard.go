package resilience

import (
	"context"

	"go.uber.org/zap"

	"yanote/pkg/logger"
)

// Guard объединяет выключатель и повторы для одной зависимости.
type Guard struct {
	name    string
	breaker *Breaker
	retry   *Retry
}

// NewGuard создает защиту зависимости name.
func NewGuard(name string, breaker BreakerConfig, retry RetryConfig) *Guard {
	return &Guard{
		name:    name,
		breaker: NewBreaker(name, breaker),
		retry:   NewRetry(name, retry),
	}
}

// Execute выполняет operation через выключатель с повторами внутри.
func (g *Guard) Execute(ctx context.Context, operation string, fn func() error) error {
	logger.Log(ctx).Debug(ctx, "executing guarded operation",
		zap.String("dependency", g.name),
		zap.String("operation", operation))

	return g.breaker.Execute(ctx, func() error {
		return g.retry.Execute(ctx, fn)
	})
}

// State возвращает состояние выключателя.
func (g *Guard) State() State {
	return g.breaker.State()
}

// Do выполняет fn через guard и возвращает его результат.
func Do[T any](ctx context.Context, g *Guard, operation string, fn func() (T, error)) (T, error) {
	var result T
	err := g.Execute(ctx, operation, func() error {
		var err error
		result, err = fn()
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
