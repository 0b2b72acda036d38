package fileio

import (
	"github.com/mwantia/fileio/backend"
	"github.com/mwantia/fileio/data"
	"github.com/mwantia/fileio/log"
)

// DefaultBufferSize is the staging buffer capacity used when no
// WithBufferSize option is given.
const DefaultBufferSize = 1 << 20

type FileOptions struct {
	BufferSize int
	Backend    backend.StorageBackend
	Logger     *log.Logger
}

type FileOption func(*FileOptions) error

func newDefaultFileOptions() *FileOptions {
	return &FileOptions{
		BufferSize: DefaultBufferSize,
		Logger:     log.Nop(),
	}
}

// WithBufferSize overrides the staging buffer capacity.
// Sizes below one byte are rejected.
func WithBufferSize(size int) FileOption {
	return func(opts *FileOptions) error {
		if size < 1 {
			return data.ErrInvalid
		}

		opts.BufferSize = size
		return nil
	}
}

// WithBackend routes the accessor through the given storage backend
// instead of the local filesystem.
func WithBackend(b backend.StorageBackend) FileOption {
	return func(opts *FileOptions) error {
		if b == nil {
			return data.ErrInvalid
		}

		opts.Backend = b
		return nil
	}
}

// WithLogger attaches a logger; accessors log lifecycle events at Debug.
func WithLogger(logger *log.Logger) FileOption {
	return func(opts *FileOptions) error {
		if logger == nil {
			return data.ErrInvalid
		}

		opts.Logger = logger
		return nil
	}
}

// WithLogLevel attaches a terminal logger at the given level.
func WithLogLevel(level log.LogLevel) FileOption {
	return func(opts *FileOptions) error {
		opts.Logger = log.NewLogger("fileio", level, "", false)
		return nil
	}
}
