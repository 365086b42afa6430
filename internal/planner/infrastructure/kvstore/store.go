// Package kvstore is the flat key-value backend that holds preferences next
// to the structured task store.
package kvstore

import (
	"context"
	"errors"
)

const (
	// KeyMaxLength is the maximum length of a key before namespacing.
	KeyMaxLength = 256
	// ValueMaxSize is the maximum size of a value in bytes.
	ValueMaxSize = 64 * 1024
)

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrKeyTooLong  = errors.New("key too long")
	ErrValueTooBig = errors.New("value too big")
	ErrUnavailable = errors.New("key-value store unavailable")
)

// Store is a namespaced string key-value store.
type Store interface {
	// Get returns ErrKeyNotFound for a missing key.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Clear removes every key in the store's namespace and nothing else.
	Clear(ctx context.Context) error
}

func checkKey(key string) error {
	if key == "" || len(key) > KeyMaxLength {
		return ErrKeyTooLong
	}
	return nil
}

func checkValue(value string) error {
	if len(value) > ValueMaxSize {
		return ErrValueTooBig
	}
	return nil
}
