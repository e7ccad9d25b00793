// Package storage persists uploaded files for the catalog service.
// It defines a System interface for upload sink operations and includes a
// filesystem implementation storing files under a configurable directory.
package storage

import (
	"context"
	"errors"
)

// Storage errors returned by System implementations.
var (
	// ErrNotFound indicates the requested file does not exist in storage.
	ErrNotFound = errors.New("storage: file not found")

	// ErrInvalidName indicates the file name is malformed.
	// This includes empty names and path traversal attempts.
	ErrInvalidName = errors.New("storage: invalid file name")
)

// System defines the upload sink operations.
// Implementations persist one uploaded file per call and hand back the
// name under which it was stored.
type System interface {
	// Store saves an uploaded file under a unique name derived from the
	// original filename and returns that name. The write is atomic.
	Store(ctx context.Context, filename string, data []byte) (string, error)

	// Delete removes the file with the given stored name.
	// Deleting a missing file is not an error.
	Delete(ctx context.Context, name string) error

	// Exists reports whether a stored name is present and readable.
	Exists(ctx context.Context, name string) (bool, error)

	// BasePath returns the directory files are stored under, for
	// read-only exposure through a static file server.
	BasePath() string
}
