// Package store defines the key-value contract the session layer persists
// through, plus the in-process backends. The sqlite backend lives in
// internal/database/repository and the redis one in internal/store/redis.
package store

import (
	"context"
	"errors"
)

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("store: closed")

// KV is a string key-value store. Every call may fail independently.
type KV interface {
	// Get returns ok=false when key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes every listed key; absent keys are not an error.
	Remove(ctx context.Context, keys ...string) error
}
