package fileio

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mwantia/fileio/backend"
	"github.com/mwantia/fileio/backend/local"
	"github.com/mwantia/fileio/data"
	"github.com/mwantia/fileio/log"
)

// File is a buffered accessor over a single open object.
// It owns its handle and staging buffer exclusively; all mutable state
// (handle, buffer, cursor) must be externally serialized if shared.
type File struct {
	id   string
	path string
	mode data.AccessMode

	handle backend.ObjectHandle
	log    *log.Logger

	buffer    []byte
	cursor    int
	bufferEnd int

	closed bool
	ctx    context.Context
}

// Open opens the file at path under the given access mode.
// Exactly one of AccessModeRead, AccessModeWrite or AccessModeAppend must be
// set, optionally combined with AccessModeBinary; anything else fails with
// ErrInvalidMode before any handle is acquired. Without WithBackend the path
// is opened on the local filesystem.
func Open(ctx context.Context, path string, mode data.AccessMode, opts ...FileOption) (*File, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}

	options := newDefaultFileOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	if options.Backend == nil {
		lb, err := local.NewLocalBackend("")
		if err != nil {
			return nil, err
		}
		options.Backend = lb
	}

	handle, err := options.Backend.OpenObject(ctx, path, mode)
	if err != nil {
		return nil, err
	}

	f := &File{
		id:     uuid.Must(uuid.NewV7()).String(),
		path:   path,
		mode:   mode,
		handle: handle,
		log:    options.Logger,
		buffer: make([]byte, options.BufferSize),
		ctx:    ctx,
	}

	f.log.Debug("opened '%s' (%s) via %s backend [%s]",
		path, mode, options.Backend.Name(), f.id)

	return f, nil
}

// Path returns the path the accessor was opened with.
func (f *File) Path() string {
	return f.path
}

// Mode returns the resolved access mode.
func (f *File) Mode() data.AccessMode {
	return f.mode
}

// IsOpen reports whether the accessor still owns its handle.
func (f *File) IsOpen() bool {
	return !f.closed
}

// Flush forces buffered output to the backing store.
// It is a no-op for read-only accessors.
func (f *File) Flush() error {
	if err := f.ensureOpen(); err != nil {
		return err
	}

	if !f.mode.IsWritable() {
		return nil
	}

	if err := f.handle.Sync(); err != nil {
		return errors.Join(data.ErrWrite, err)
	}

	return nil
}

// Close flushes pending output for writable accessors and releases the
// handle. Closing an already closed accessor is a no-op.
func (f *File) Close() error {
	if f.closed {
		return nil
	}

	f.closed = true

	var flushErr error
	if f.mode.IsWritable() {
		if err := f.handle.Sync(); err != nil {
			flushErr = errors.Join(data.ErrWrite, err)
		}
	}

	if err := f.handle.Close(); err != nil {
		return errors.Join(data.ErrWrite, err)
	}

	f.log.Debug("closed '%s' [%s]", f.path, f.id)

	return flushErr
}

// ensureOpen verifies the accessor is usable and its context still live.
func (f *File) ensureOpen() error {
	if f.closed {
		return data.ErrClosed
	}

	select {
	case <-f.ctx.Done():
		return f.ctx.Err()
	default:
	}

	return nil
}

// requireRead gates read operations; textOriented additionally rejects
// binary-qualified accessors. The gate runs on every call because the same
// accessor persists across many operations.
func (f *File) requireRead(textOriented bool) error {
	if err := f.ensureOpen(); err != nil {
		return err
	}

	if !f.mode.HasRead() {
		return data.ErrInvalidOperation
	}

	if textOriented && f.mode.IsBinary() {
		return data.ErrInvalidOperation
	}

	return nil
}

// requireWrite gates write operations; binary selects whether the operation
// demands or forbids the binary qualifier.
func (f *File) requireWrite(binary bool) error {
	if err := f.ensureOpen(); err != nil {
		return err
	}

	if !f.mode.IsWritable() {
		return data.ErrInvalidOperation
	}

	if binary != f.mode.IsBinary() {
		return data.ErrInvalidOperation
	}

	return nil
}
