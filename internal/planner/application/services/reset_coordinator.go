package services

import (
	"context"
	"fmt"
	"time"

	sharedApplication "github.com/felixgeelhaar/dayline/internal/shared/application"
)

// DefaultResetTimeout bounds each backend's clear when none is configured.
const DefaultResetTimeout = 10 * time.Second

// ResetBackend is one store the coordinator wipes.
type ResetBackend interface {
	Name() string
	Clear(ctx context.Context) error
}

// ResetFunc adapts a function to ResetBackend.
type ResetFunc struct {
	BackendName string
	Fn          func(ctx context.Context) error
}

func (f ResetFunc) Name() string                    { return f.BackendName }
func (f ResetFunc) Clear(ctx context.Context) error { return f.Fn(ctx) }

// ResetResult reports what a reset managed to clear.
type ResetResult struct {
	// Success is true only when every backend cleared.
	Success bool `json:"success"`
	// Cleared maps backend name to whether it cleared.
	Cleared map[string]bool `json:"cleared"`
	// Backends lists backend names in registration order.
	Backends []string `json:"backends"`
	// Errors has one entry per failed backend, in registration order.
	Errors []string `json:"errors"`
}

// ResetCoordinator clears every registered backend concurrently. It does not
// serialize concurrent ResetAll calls; callers must.
type ResetCoordinator struct {
	backends []ResetBackend
	timeout  time.Duration
}

// NewResetCoordinator creates a coordinator. A non-positive timeout uses
// DefaultResetTimeout. Nil backends are ignored.
func NewResetCoordinator(timeout time.Duration, backends ...ResetBackend) *ResetCoordinator {
	if timeout <= 0 {
		timeout = DefaultResetTimeout
	}
	kept := make([]ResetBackend, 0, len(backends))
	for _, b := range backends {
		if b != nil {
			kept = append(kept, b)
		}
	}
	return &ResetCoordinator{backends: kept, timeout: timeout}
}

// ResetAll attempts every backend regardless of the others. Each backend
// gets its own timeout under a parent that ignores ctx's cancellation, so
// the caller cannot cut a clear short. A backend still running when its
// timeout fires is reported as failed and left to finish on its own. It
// never returns an error; failures are reported in the result.
func (c *ResetCoordinator) ResetAll(ctx context.Context) ResetResult {
	base := context.WithoutCancel(ctx)

	outcomes := sharedApplication.MapConcurrentCollectingFailures(c.backends, func(_ int, b ResetBackend) (struct{}, error) {
		return struct{}{}, c.clear(base, b)
	})

	result := ResetResult{
		Success:  true,
		Cleared:  make(map[string]bool, len(c.backends)),
		Backends: make([]string, 0, len(c.backends)),
		Errors:   []string{},
	}
	for _, o := range outcomes {
		name := backendName(o.Index, c.backends[o.Index])
		result.Backends = append(result.Backends, name)
		result.Cleared[name] = o.OK()
		if !o.OK() {
			result.Success = false
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", name, o.Err))
		}
	}
	return result
}

// clear waits for b at most c.timeout, even when b ignores its context.
func (c *ResetCoordinator) clear(base context.Context, b ResetBackend) error {
	ctx, cancel := context.WithTimeout(base, c.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- &sharedApplication.PanicError{Value: r}
			}
		}()
		done <- b.Clear(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("gave up after %s: %w", c.timeout, ctx.Err())
	}
}

func backendName(i int, b ResetBackend) (name string) {
	defer func() {
		if recover() != nil || name == "" {
			name = fmt.Sprintf("backend-%d", i+1)
		}
	}()
	return b.Name()
}
