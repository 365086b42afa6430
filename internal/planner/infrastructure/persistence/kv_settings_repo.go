package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/dayline/internal/planner/domain/clock"
	"github.com/felixgeelhaar/dayline/internal/planner/domain/settings"
	"github.com/felixgeelhaar/dayline/internal/planner/infrastructure/kvstore"
)

const (
	// KVStoreName identifies the key-value backend in reset results.
	KVStoreName = "kv-store"

	keyStartTime = "settings:start_time"
)

// KVSettingsRepository keeps preferences in a kvstore.Store.
type KVSettingsRepository struct {
	store            kvstore.Store
	defaultStartTime string
}

// NewKVSettingsRepository creates a repository that falls back to
// defaultStartTime when nothing is stored.
func NewKVSettingsRepository(store kvstore.Store, defaultStartTime string) *KVSettingsRepository {
	return &KVSettingsRepository{store: store, defaultStartTime: defaultStartTime}
}

// LoadStartTime returns the stored start time or the default. A stored value
// that no longer parses is treated as missing.
func (r *KVSettingsRepository) LoadStartTime(ctx context.Context) (string, error) {
	val, err := r.store.Get(ctx, keyStartTime)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return r.defaultStartTime, nil
	}
	if err != nil {
		return "", fmt.Errorf("load start time: %w", err)
	}
	if !clock.IsValid(val) {
		return r.defaultStartTime, nil
	}
	return val, nil
}

// SaveStartTime stores start in canonical form.
func (r *KVSettingsRepository) SaveStartTime(ctx context.Context, start string) error {
	minutes, err := clock.ParseWithin(start, clock.MaxHour)
	if err != nil {
		return fmt.Errorf("%w: %w", settings.ErrInvalidStartTime, err)
	}
	if err := r.store.Set(ctx, keyStartTime, clock.Format(minutes)); err != nil {
		return fmt.Errorf("save start time: %w", err)
	}
	return nil
}

// Name implements services.ResetBackend.
func (r *KVSettingsRepository) Name() string { return KVStoreName }

// Clear wipes the whole key-value namespace.
func (r *KVSettingsRepository) Clear(ctx context.Context) error {
	if err := r.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear key-value store: %w", err)
	}
	return nil
}

var _ settings.Repository = (*KVSettingsRepository)(nil)
