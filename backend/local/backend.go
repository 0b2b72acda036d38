package local

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/mwantia/fileio/backend"
	"github.com/mwantia/fileio/data"
)

// LocalBackend stores objects as regular files on the local filesystem.
// Keys are resolved relative to an optional root directory; an empty root
// uses keys as plain paths. This is the default backend for accessors.
type LocalBackend struct {
	mu   sync.RWMutex
	root string
}

// NewLocalBackend creates a local filesystem backend.
// If root is empty, keys are used as paths without translation.
func NewLocalBackend(root string) (*LocalBackend, error) {
	if root != "" {
		info, err := os.Stat(root)
		if err != nil {
			return nil, mapOpenError(err)
		}
		if !info.IsDir() {
			return nil, data.ErrInvalid
		}
	}

	return &LocalBackend{root: root}, nil
}

// Name returns the identifier name defined for this backend.
func (*LocalBackend) Name() string {
	return "local"
}

// OpenObject opens the file at key with flags derived from the access mode.
// Append relies on O_APPEND so positioning stays correct under concurrent
// writers from other processes.
func (lb *LocalBackend) OpenObject(ctx context.Context, key string, mode data.AccessMode) (backend.ObjectHandle, error) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	var flag int
	switch {
	case mode.HasRead():
		flag = os.O_RDONLY
	case mode.HasWrite():
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case mode.HasAppend():
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	default:
		return nil, data.ErrInvalidMode
	}

	file, err := os.OpenFile(lb.resolvePath(key), flag, backend.FilePerm)
	if err != nil {
		return nil, mapOpenError(err)
	}

	return &localHandle{file: file}, nil
}

// StatObject returns size and timestamps for the file at key.
func (lb *LocalBackend) StatObject(ctx context.Context, key string) (*data.FileStat, error) {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	info, err := os.Stat(lb.resolvePath(key))
	if err != nil {
		return nil, mapOpenError(err)
	}

	return &data.FileStat{
		Key:        key,
		Size:       info.Size(),
		ModifyTime: info.ModTime(),
		CreateTime: info.ModTime(),
	}, nil
}

// LookupObject checks if a file exists at the given key.
func (lb *LocalBackend) LookupObject(ctx context.Context, key string) (bool, error) {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	if _, err := os.Stat(lb.resolvePath(key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// RemoveObject deletes the file at key.
func (lb *LocalBackend) RemoveObject(ctx context.Context, key string) error {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	if err := os.Remove(lb.resolvePath(key)); err != nil {
		return mapOpenError(err)
	}

	return nil
}

func (lb *LocalBackend) resolvePath(key string) string {
	if lb.root == "" {
		return key
	}

	return filepath.Join(lb.root, key)
}

func mapOpenError(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return data.ErrNotExist
	}
	if errors.Is(err, fs.ErrPermission) {
		return data.ErrPermission
	}

	return errors.Join(data.ErrOpenFailed, err)
}

// localHandle owns one open *os.File for the lifetime of an accessor.
type localHandle struct {
	file *os.File
}

func (lh *localHandle) Read(p []byte) (int, error) {
	return lh.file.Read(p)
}

func (lh *localHandle) Write(p []byte) (int, error) {
	return lh.file.Write(p)
}

func (lh *localHandle) Seek(offset int64, whence int) (int64, error) {
	return lh.file.Seek(offset, whence)
}

func (lh *localHandle) Size() (int64, error) {
	info, err := lh.file.Stat()
	if err != nil {
		return 0, err
	}

	return info.Size(), nil
}

func (lh *localHandle) Sync() error {
	return lh.file.Sync()
}

func (lh *localHandle) Close() error {
	return lh.file.Close()
}
