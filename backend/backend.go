package backend

import (
	"context"
	"io"

	"github.com/mwantia/fileio/data"
)

const (
	// FilePerm is the permission applied to objects created by backends
	// that map onto real filesystem entries.
	FilePerm = 0644
)

// StorageBackend provides the native storage primitives an accessor is built on.
// A backend resolves a key to a single object and opens it under a validated
// access mode; it never interprets the object's content.
type StorageBackend interface {
	// Name returns the identifier name defined for this backend.
	Name() string

	// OpenObject opens the object at key under the given mode and returns a handle.
	// Read mode fails with data.ErrNotExist if the object is absent.
	// Write mode creates or truncates; Append creates if absent and positions at end.
	OpenObject(ctx context.Context, key string, mode data.AccessMode) (ObjectHandle, error)

	// StatObject returns size and timestamps for the object at key.
	StatObject(ctx context.Context, key string) (*data.FileStat, error)

	// LookupObject checks if an object exists at the given key.
	LookupObject(ctx context.Context, key string) (bool, error)

	// RemoveObject deletes the object at key.
	RemoveObject(ctx context.Context, key string) error
}

// ObjectHandle is an exclusively owned handle to one open object.
// Reads and writes are sequential; Seek repositions the read side.
// The handle must be closed exactly once by its owning accessor.
type ObjectHandle interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer

	// Size returns the current length of the underlying object in bytes.
	Size() (int64, error)

	// Sync forces buffered output to the backing store.
	Sync() error
}
