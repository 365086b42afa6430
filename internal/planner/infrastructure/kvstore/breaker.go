package kvstore

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerConfig tunes the circuit breaker around a Store.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that opens the circuit.
	FailureThreshold uint32
	// Timeout is how long the circuit stays open before a trial request.
	Timeout time.Duration
	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32
}

// DefaultBreakerConfig returns settings suited to a local Redis.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		Timeout:          30 * time.Second,
		MaxRequests:      1,
	}
}

// BreakerStore stops calling a failing backend for a while instead of
// letting every request wait on it. Missing keys and rejected input do not
// count as failures.
type BreakerStore struct {
	next    Store
	breaker *gobreaker.CircuitBreaker[string]
}

// NewBreakerStore wraps next. A nil logger uses slog.Default.
func NewBreakerStore(name string, next Store, cfg BreakerConfig, logger *slog.Logger) *BreakerStore {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = DefaultBreakerConfig().FailureThreshold
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrKeyNotFound) ||
				errors.Is(err, ErrKeyTooLong) ||
				errors.Is(err, ErrValueTooBig)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("kv store circuit breaker state changed",
				"store", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &BreakerStore{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[string](settings),
	}
}

// State reports the current breaker state.
func (s *BreakerStore) State() gobreaker.State {
	return s.breaker.State()
}

func (s *BreakerStore) execute(fn func() (string, error)) (string, error) {
	val, err := s.breaker.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", errors.Join(ErrUnavailable, err)
	}
	return val, err
}

func (s *BreakerStore) Get(ctx context.Context, key string) (string, error) {
	return s.execute(func() (string, error) {
		return s.next.Get(ctx, key)
	})
}

func (s *BreakerStore) Set(ctx context.Context, key, value string) error {
	_, err := s.execute(func() (string, error) {
		return "", s.next.Set(ctx, key, value)
	})
	return err
}

func (s *BreakerStore) Delete(ctx context.Context, key string) error {
	_, err := s.execute(func() (string, error) {
		return "", s.next.Delete(ctx, key)
	})
	return err
}

// Clear bypasses the breaker. A reset must always reach the backend, even
// one the breaker has given up on.
func (s *BreakerStore) Clear(ctx context.Context) error {
	return s.next.Clear(ctx)
}

var _ Store = (*BreakerStore)(nil)
