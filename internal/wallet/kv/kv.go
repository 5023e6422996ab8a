// Package kv defines the key-value contract the mapping layer is built on,
// with in-memory, Redis, and Postgres implementations.
//
// The contract is deliberately small: a single-key read, a single-key
// conditional write, and a single-key unconditional write. There is no
// delete; mappings are append-only once written. All multi-key coordination
// lives above this package and relies only on SetNX totally ordering
// concurrent writers of one key.
package kv

import "context"

// Store is the minimal key-value surface consumed by the mapping repository.
//
// Get returns sentinel.ErrNotFound for an absent key. SetNX returns
// sentinel.ErrConflict when the key is already occupied; the existing value is
// left untouched. Set overwrites unconditionally.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	SetNX(ctx context.Context, key, value string) error
	Set(ctx context.Context, key, value string) error
}

// HealthChecker is implemented by backends that can report liveness.
type HealthChecker interface {
	Health(ctx context.Context) error
}
