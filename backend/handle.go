package backend

import (
	"context"
	"io"

	"github.com/mwantia/fileio/data"
)

// ReaderHandle serves whole-object content that was loaded from a backing
// store in one transfer. Backends without native streaming (sqlite, postgres,
// consul) wrap their content in it when opening for read.
type ReaderHandle struct {
	content []byte
	offset  int64
}

// NewReaderHandle creates a read-only handle over the given content.
func NewReaderHandle(content []byte) *ReaderHandle {
	return &ReaderHandle{content: content}
}

// Read reads up to len(p) bytes from the staged content at the current offset.
func (rh *ReaderHandle) Read(p []byte) (int, error) {
	if rh.offset >= int64(len(rh.content)) {
		return 0, io.EOF
	}

	n := copy(p, rh.content[rh.offset:])
	rh.offset += int64(n)

	return n, nil
}

// Write always fails; the handle is read-only.
func (rh *ReaderHandle) Write(p []byte) (int, error) {
	return 0, data.ErrInvalidOperation
}

// Seek sets the offset for the next Read and returns the new offset.
func (rh *ReaderHandle) Seek(offset int64, whence int) (int64, error) {
	var newOffset int64
	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = rh.offset + offset
	case io.SeekEnd:
		newOffset = int64(len(rh.content)) + offset
	default:
		return 0, data.ErrInvalid
	}

	if newOffset < 0 {
		return 0, data.ErrInvalid
	}

	rh.offset = newOffset
	return newOffset, nil
}

// Size returns the length of the staged content.
func (rh *ReaderHandle) Size() (int64, error) {
	return int64(len(rh.content)), nil
}

// Sync is a no-op for read-only handles.
func (rh *ReaderHandle) Sync() error {
	return nil
}

// Close releases the staged content.
func (rh *ReaderHandle) Close() error {
	rh.content = nil
	return nil
}

// CommitFunc persists staged content to the backing store.
type CommitFunc func(ctx context.Context, content []byte) error

// WriterHandle stages writes in memory and commits the full object content
// on Sync or Close. Backends that can only replace objects wholesale
// (sqlite, postgres, consul, s3) build their write side on it.
type WriterHandle struct {
	ctx     context.Context
	content []byte
	dirty   bool
	closed  bool
	commit  CommitFunc
}

// NewWriterHandle creates a write handle preloaded with initial content.
// Append mode passes the existing object bytes; Write mode passes nil with
// dirty set, so that truncation is committed even without further writes.
func NewWriterHandle(ctx context.Context, initial []byte, dirty bool, commit CommitFunc) *WriterHandle {
	return &WriterHandle{
		ctx:     ctx,
		content: initial,
		dirty:   dirty,
		commit:  commit,
	}
}

// Read always fails; the handle is write-only.
func (wh *WriterHandle) Read(p []byte) (int, error) {
	return 0, data.ErrInvalidOperation
}

// Write appends p to the staged content.
func (wh *WriterHandle) Write(p []byte) (int, error) {
	if wh.closed {
		return 0, data.ErrClosed
	}

	wh.content = append(wh.content, p...)
	wh.dirty = true

	return len(p), nil
}

// Seek always fails; staged writes are append-only.
func (wh *WriterHandle) Seek(offset int64, whence int) (int64, error) {
	return 0, data.ErrInvalidOperation
}

// Size returns the length of the staged content.
func (wh *WriterHandle) Size() (int64, error) {
	return int64(len(wh.content)), nil
}

// Sync commits the staged content if it changed since the last commit.
func (wh *WriterHandle) Sync() error {
	if wh.closed {
		return data.ErrClosed
	}

	if !wh.dirty {
		return nil
	}

	if err := wh.commit(wh.ctx, wh.content); err != nil {
		return err
	}

	wh.dirty = false
	return nil
}

// Close commits any pending content and marks the handle closed.
// Closing twice is a no-op.
func (wh *WriterHandle) Close() error {
	if wh.closed {
		return nil
	}

	if err := wh.Sync(); err != nil {
		return err
	}

	wh.closed = true
	return nil
}
