package genai

import (
	"context"
	"sync"
	"time"

	errs "github.com/cindyylim/LanguageLearningApp-sub000/internal/errors"
)

// BreakerState is the state of the circuit breaker.
type BreakerState string

const (
	// BreakerClosed is the normal state, calls pass through.
	BreakerClosed BreakerState = "CLOSED"
	// BreakerOpen blocks calls until the reset timeout elapses.
	BreakerOpen BreakerState = "OPEN"
	// BreakerHalfOpen lets a single probe call through.
	BreakerHalfOpen BreakerState = "HALF_OPEN"
)

// CircuitBreaker tracks consecutive failures of the external backend and
// short-circuits calls while it appears unhealthy. State is in-memory only
// and resets on process restart. Safe for concurrent use.
type CircuitBreaker struct {
	mu sync.Mutex

	failureThreshold int
	resetTimeout     time.Duration

	state         BreakerState
	failureCount  int
	nextAttemptAt time.Time

	now func() time.Time
}

// NewCircuitBreaker creates a closed circuit breaker.
func NewCircuitBreaker(failureThreshold int, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		failureThreshold: failureThreshold,
		resetTimeout:     resetTimeout,
		state:            BreakerClosed,
		now:              time.Now,
	}
}

// State returns the current breaker state.
func (cb *CircuitBreaker) State() BreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Execute runs action through the breaker. When the breaker is open and the
// reset timeout has not elapsed, it fails immediately with a
// CIRCUIT_BREAKER_OPEN error without invoking action. A single failure while
// half-open reopens the circuit.
func (cb *CircuitBreaker) Execute(ctx context.Context, action func(ctx context.Context) (string, error)) (string, error) {
	if err := cb.beforeCall(); err != nil {
		return "", err
	}

	result, err := action(ctx)
	if err != nil {
		cb.onFailure()
		return "", err
	}

	cb.onSuccess()
	return result, nil
}

func (cb *CircuitBreaker) beforeCall() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == BreakerOpen {
		if cb.now().Before(cb.nextAttemptAt) {
			return errs.New(errs.ErrCodeCircuitOpen, "circuit breaker is open")
		}
		cb.state = BreakerHalfOpen
	}
	return nil
}

func (cb *CircuitBreaker) onSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount = 0
	cb.state = BreakerClosed
}

func (cb *CircuitBreaker) onFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount++
	if cb.failureCount >= cb.failureThreshold {
		cb.state = BreakerOpen
		cb.nextAttemptAt = cb.now().Add(cb.resetTimeout)
	}
}
