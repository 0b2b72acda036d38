// Package fileio provides a thin convenience layer over native file-handle
// primitives: it opens a file under an access-mode policy, wraps the handle
// with an application-managed buffer, and offers line, string and byte
// oriented read and write operations.
//
// Storage is pluggable: the default backend maps keys to local files, and
// alternative backends (memory, sqlite, postgres, s3, consul) implement the
// same contract. An accessor instance is not safe for concurrent use.
package fileio

import (
	"os"

	"github.com/mwantia/fileio/data"
)

// Access mode flags, re-exported for convenience.
const (
	AccessModeRead   = data.AccessModeRead
	AccessModeWrite  = data.AccessModeWrite
	AccessModeAppend = data.AccessModeAppend
	AccessModeBinary = data.AccessModeBinary
)

// AccessMode represents the access policy a file is opened under.
type AccessMode = data.AccessMode

// Standard errors, re-exported so callers can match without importing data.
var (
	ErrInvalidMode      = data.ErrInvalidMode
	ErrNotExist         = data.ErrNotExist
	ErrPermission       = data.ErrPermission
	ErrOpenFailed       = data.ErrOpenFailed
	ErrInvalidOperation = data.ErrInvalidOperation
	ErrRead             = data.ErrRead
	ErrWrite            = data.ErrWrite
	ErrEndOfStream      = data.ErrEndOfStream
	ErrClosed           = data.ErrClosed
)

// Exists checks whether a local file exists at path.
// It never fails; any inaccessibility reports false.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
