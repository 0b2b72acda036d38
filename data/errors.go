package data

import "errors"

// Standard fileio errors that accessors and backend implementations should use.
var (
	// Configuration errors
	ErrInvalidMode = errors.New("fileio: invalid access mode combination")

	// Open errors
	ErrNotExist   = errors.New("fileio: file does not exist")
	ErrPermission = errors.New("fileio: permission denied")
	ErrOpenFailed = errors.New("fileio: open failed")

	// Operation gate errors
	ErrInvalidOperation = errors.New("fileio: operation not permitted by access mode")

	// I/O errors
	ErrRead           = errors.New("fileio: read failed")
	ErrWrite          = errors.New("fileio: write failed")
	ErrClosed         = errors.New("fileio: file already closed")
	ErrInvalid        = errors.New("fileio: invalid argument")
	ErrObjectTooLarge = errors.New("fileio: object exceeds backend size limit")

	// ErrEndOfStream signals that no further lines can be read.
	// It is control flow rather than a fault; line-read loops terminate on it.
	ErrEndOfStream = errors.New("fileio: end of stream")
)
