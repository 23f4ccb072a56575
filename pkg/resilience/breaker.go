// Package resilience защищает вызовы внешних зависимостей
// автоматическим выключателем и повторными попытками.
package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"yanote/pkg/logger"
)

// State - состояние выключателя.
type State int

const (
	// StateClosed - вызовы проходят.
	StateClosed State = iota
	// StateOpen - вызовы отклоняются.
	StateOpen
	// StateHalfOpen - пропускаются пробные вызовы.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

const (
	LogBreakerStateChange = "circuit breaker state changed"
	LogBreakerTrip        = "circuit breaker tripped"
	LogBreakerReject      = "circuit breaker rejected request"
)

// ErrCircuitOpen возвращается, пока выключатель открыт.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// BreakerConfig содержит пороги выключателя.
type BreakerConfig struct {
	// ErrorThreshold - число ошибок подряд до размыкания.
	ErrorThreshold int
	// Timeout - время в открытом состоянии до пробного вызова.
	Timeout time.Duration
	// SuccessThreshold - число успешных пробных вызовов до замыкания.
	SuccessThreshold int
}

// DefaultBreakerConfig возвращает пороги по умолчанию.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		ErrorThreshold:   5,
		Timeout:          10 * time.Second,
		SuccessThreshold: 2,
	}
}

// Breaker реализует автоматический выключатель.
type Breaker struct {
	name   string
	config BreakerConfig

	mu        sync.Mutex
	state     State
	failures  int
	successes int
	changedAt time.Time
}

// NewBreaker создает замкнутый выключатель.
func NewBreaker(name string, config BreakerConfig) *Breaker {
	return &Breaker{
		name:      name,
		config:    config,
		state:     StateClosed,
		changedAt: time.Now(),
	}
}

// Execute вызывает fn, если выключатель пропускает вызов, и учитывает результат.
func (b *Breaker) Execute(ctx context.Context, fn func() error) error {
	if !b.Allow(ctx) {
		return ErrCircuitOpen
	}

	err := fn()
	b.Record(ctx, err)
	return err
}

// Allow сообщает, можно ли выполнить вызов. По истечении Timeout
// открытый выключатель переводится в полуоткрытое состояние.
func (b *Breaker) Allow(ctx context.Context) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed, StateHalfOpen:
		return true
	case StateOpen:
		if time.Since(b.changedAt) >= b.config.Timeout {
			b.setState(ctx, StateHalfOpen)
			return true
		}
		logger.Log(ctx).Debug(ctx, LogBreakerReject, zap.String("breaker", b.name))
		return false
	default:
		return false
	}
}

// Record учитывает результат вызова.
func (b *Breaker) Record(ctx context.Context, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		switch b.state {
		case StateClosed:
			b.failures++
			if b.failures >= b.config.ErrorThreshold {
				logger.Log(ctx).Warn(ctx, LogBreakerTrip,
					zap.String("breaker", b.name),
					zap.Int("failures", b.failures),
					zap.Error(err))
				b.setState(ctx, StateOpen)
			}
		case StateHalfOpen:
			b.setState(ctx, StateOpen)
		}
		return
	}

	switch b.state {
	case StateClosed:
		b.failures = 0
	case StateHalfOpen:
		b.successes++
		if b.successes >= b.config.SuccessThreshold {
			b.setState(ctx, StateClosed)
		}
	}
}

// State возвращает текущее состояние.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) setState(ctx context.Context, state State) {
	logger.Log(ctx).Info(ctx, LogBreakerStateChange,
		zap.String("breaker", b.name),
		zap.Stringer("from", b.state),
		zap.Stringer("to", state))

	b.state = state
	b.changedAt = time.Now()
	b.failures = 0
	b.successes = 0
}
