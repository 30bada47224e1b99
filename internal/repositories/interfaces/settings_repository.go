package interfaces

import "context"

type SettingsRepository interface {
	// Get unmarshals the stored JSON value into out. Returns
	// ErrNotFound when the key has never been written.
	Get(ctx context.Context, key string, out interface{}) error

	// Put marshals value to JSON and writes it under key, replacing any
	// previous value.
	Put(ctx context.Context, key string, value interface{}) error

	Delete(ctx context.Context, key string) error
}
