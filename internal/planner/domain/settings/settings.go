// Package settings holds the user preferences that sit next to the task
// list, currently just the schedule start time.
package settings

import (
	"context"
	"errors"
)

var ErrInvalidStartTime = errors.New("invalid start time")

// Repository stores preferences in the key-value backend.
type Repository interface {
	// LoadStartTime returns the saved start time, or the configured default
	// when none has been saved.
	LoadStartTime(ctx context.Context) (string, error)
	// SaveStartTime stores a canonical start time. Malformed or out-of-range
	// values are rejected with ErrInvalidStartTime.
	SaveStartTime(ctx context.Context, start string) error
	Clear(ctx context.Context) error
}
