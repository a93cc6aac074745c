package metadata

import (
	"context"
	"time"
)

// Repository is a small key/value table in the local database.
type Repository interface {
	// Get returns common.ErrorNotFound when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// UpdatedAt returns when key was last written, or common.ErrorNotFound.
	UpdatedAt(ctx context.Context, key string) (time.Time, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete is a no-op for an absent key.
	Delete(ctx context.Context, key string) error
}
