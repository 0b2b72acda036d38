package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mwantia/fileio/backend"
	"github.com/mwantia/fileio/data"
	"github.com/tidwall/btree"
)

// MemoryBackend keeps objects entirely in memory, ordered by key in a B-tree.
// It is intended for tests and scratch use; contents vanish with the process.
type MemoryBackend struct {
	mu      sync.RWMutex
	objects *btree.Map[string, *memoryObject]
}

type memoryObject struct {
	content    []byte
	createTime time.Time
	modifyTime time.Time
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		objects: btree.NewMap[string, *memoryObject](0),
	}
}

// Name returns the identifier name defined for this backend.
func (*MemoryBackend) Name() string {
	return "memory"
}

// OpenObject opens the object at key under the given mode.
func (mb *MemoryBackend) OpenObject(ctx context.Context, key string, mode data.AccessMode) (backend.ObjectHandle, error) {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	obj, exists := mb.objects.Get(key)

	switch {
	case mode.HasRead():
		if !exists {
			return nil, data.ErrNotExist
		}
		// Snapshot so later writers cannot mutate the open handle
		content := make([]byte, len(obj.content))
		copy(content, obj.content)

		return backend.NewReaderHandle(content), nil

	case mode.HasWrite():
		return backend.NewWriterHandle(ctx, nil, true, mb.commitFunc(key)), nil

	case mode.HasAppend():
		var initial []byte
		if exists {
			initial = make([]byte, len(obj.content))
			copy(initial, obj.content)
		}

		return backend.NewWriterHandle(ctx, initial, !exists, mb.commitFunc(key)), nil
	}

	return nil, data.ErrInvalidMode
}

func (mb *MemoryBackend) commitFunc(key string) backend.CommitFunc {
	return func(ctx context.Context, content []byte) error {
		mb.mu.Lock()
		defer mb.mu.Unlock()

		now := time.Now()
		stored := make([]byte, len(content))
		copy(stored, content)

		if obj, exists := mb.objects.Get(key); exists {
			obj.content = stored
			obj.modifyTime = now
			return nil
		}

		mb.objects.Set(key, &memoryObject{
			content:    stored,
			createTime: now,
			modifyTime: now,
		})

		return nil
	}
}

// StatObject returns size and timestamps for the object at key.
func (mb *MemoryBackend) StatObject(ctx context.Context, key string) (*data.FileStat, error) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	obj, exists := mb.objects.Get(key)
	if !exists {
		return nil, data.ErrNotExist
	}

	return &data.FileStat{
		Key:        key,
		Size:       int64(len(obj.content)),
		CreateTime: obj.createTime,
		ModifyTime: obj.modifyTime,
	}, nil
}

// LookupObject checks if an object exists at the given key.
func (mb *MemoryBackend) LookupObject(ctx context.Context, key string) (bool, error) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	_, exists := mb.objects.Get(key)
	return exists, nil
}

// RemoveObject deletes the object at key.
func (mb *MemoryBackend) RemoveObject(ctx context.Context, key string) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	if _, exists := mb.objects.Delete(key); !exists {
		return data.ErrNotExist
	}

	return nil
}
