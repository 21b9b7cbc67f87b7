// Package dao defines keyed entity storage shared by repositories.
package dao

import (
	"context"
)

// Service is a generic keyed entity store.
type Service[K comparable, T any] interface {
	// Save stores t, replacing an entity with the same key.
	Save(ctx context.Context, t *T) error

	// Load returns the entity of id or ErrNotFound.
	Load(ctx context.Context, id K) (*T, error)

	// Delete removes the entity of id or returns ErrNotFound.
	Delete(ctx context.Context, id K) error

	// List returns entities narrowed by parameters.
	List(ctx context.Context, parameters ...*Parameter) ([]*T, error)
}
