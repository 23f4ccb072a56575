// Package shutdown реализует корректное завершение приложения
// по сигналам SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"errors"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"yanote/pkg/logger"
)

// Hook освобождает ресурс при остановке приложения.
type Hook func(context.Context) error

// Phase - группа хуков, которые выполняются параллельно.
// Следующая фаза начинается только после завершения предыдущей.
type Phase []Hook

// ErrTimeout возвращается, если хуки не уложились в отведенное время.
var ErrTimeout = errors.New("shutdown timeout exceeded")

// Wait блокирует выполнение до SIGINT, SIGTERM или отмены ctx,
// затем выполняет фазы в рамках timeout. Причина отмены ctx,
// кроме context.Canceled, возвращается вместе с ошибками хуков.
func Wait(ctx context.Context, timeout time.Duration, phases ...Phase) error {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-sigCtx.Done()

	var cause error
	if ctx.Err() != nil {
		if cause = context.Cause(ctx); errors.Is(cause, context.Canceled) {
			cause = nil
		}
	}

	return errors.Join(cause, Run(context.WithoutCancel(ctx), timeout, phases...))
}

// Run выполняет фазы по порядку, не дольше timeout на все фазы вместе.
// Ошибки хуков объединяются. После истечения timeout оставшиеся фазы не запускаются.
func Run(ctx context.Context, timeout time.Duration, phases ...Phase) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var errs []error
	for i, phase := range phases {
		if err := runPhase(ctx, phase); err != nil {
			if errors.Is(err, ErrTimeout) {
				logger.Log(ctx).Warn(ctx, "shutdown timeout exceeded",
					zap.Duration("timeout", timeout),
					zap.Int("phase", i))
				return errors.Join(append(errs, ErrTimeout)...)
			}
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		logger.Log(ctx).Error(ctx, "shutdown hooks failed", zap.Int("failed_phases", len(errs)))
	}
	return errors.Join(errs...)
}

func runPhase(ctx context.Context, hooks Phase) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, hook := range hooks {
		wg.Add(1)
		go func(fn Hook) {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		mu.Lock()
		defer mu.Unlock()
		return errors.Join(errs...)
	case <-ctx.Done():
		return ErrTimeout
	}
}
