// Package storage persists uploaded recipe images and hands back the
// reference that is stored on the recipe.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrForeignReference is returned when asked to delete a reference the store did not produce
var ErrForeignReference = errors.New("reference does not belong to this store")

// ImageStore saves and removes uploaded images
type ImageStore interface {
	// Save writes body under key and returns the public reference for it
	Save(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	// Delete removes the object behind a reference previously returned by Save
	Delete(ctx context.Context, ref string) error
}
