package sqlite

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/mwantia/fileio/backend"
	"github.com/mwantia/fileio/data"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteBackend stores each object as a single BLOB row in SQLite.
// Reads load the full content on open; writes are staged in memory and
// upserted on sync or close. The dbPath can be ":memory:" for an in-memory
// database or a file path for persistence.
type SQLiteBackend struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteBackend creates a new SQLite-backed object storage backend.
func NewSQLiteBackend(dbPath string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, err
	}

	sb := &SQLiteBackend{db: db}

	if err := sb.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return sb, nil
}

func (sb *SQLiteBackend) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS fileio_objects (
		key TEXT PRIMARY KEY,
		content BLOB NOT NULL,
		size INTEGER NOT NULL CHECK(size >= 0),
		create_time INTEGER NOT NULL,
		modify_time INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_fileio_objects_modify_time ON fileio_objects(modify_time);
	`

	_, err := sb.db.Exec(schema)
	return err
}

// Name returns the identifier name defined for this backend.
func (*SQLiteBackend) Name() string {
	return "sqlite"
}

// Shutdown closes the underlying database.
func (sb *SQLiteBackend) Shutdown() error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	return sb.db.Close()
}

// OpenObject opens the object at key under the given mode.
func (sb *SQLiteBackend) OpenObject(ctx context.Context, key string, mode data.AccessMode) (backend.ObjectHandle, error) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	// Write mode replaces the object wholesale; no need to load it first
	if mode.HasWrite() {
		return backend.NewWriterHandle(ctx, nil, true, sb.commitFunc(key)), nil
	}

	content, exists, err := sb.loadContent(ctx, key)
	if err != nil {
		return nil, err
	}

	switch {
	case mode.HasRead():
		if !exists {
			return nil, data.ErrNotExist
		}
		return backend.NewReaderHandle(content), nil

	case mode.HasAppend():
		return backend.NewWriterHandle(ctx, content, !exists, sb.commitFunc(key)), nil
	}

	return nil, data.ErrInvalidMode
}

func (sb *SQLiteBackend) loadContent(ctx context.Context, key string) ([]byte, bool, error) {
	var content []byte
	err := sb.db.QueryRowContext(ctx,
		"SELECT content FROM fileio_objects WHERE key = ?", key).Scan(&content)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return content, true, nil
}

func (sb *SQLiteBackend) commitFunc(key string) backend.CommitFunc {
	return func(ctx context.Context, content []byte) error {
		sb.mu.Lock()
		defer sb.mu.Unlock()

		now := time.Now().Unix()
		_, err := sb.db.ExecContext(ctx, `
			INSERT INTO fileio_objects (key, content, size, create_time, modify_time)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET
				content = excluded.content,
				size = excluded.size,
				modify_time = excluded.modify_time`,
			key, content, len(content), now, now)

		return err
	}
}

// StatObject returns size and timestamps for the object at key.
func (sb *SQLiteBackend) StatObject(ctx context.Context, key string) (*data.FileStat, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	var size, createTime, modifyTime int64
	err := sb.db.QueryRowContext(ctx,
		"SELECT size, create_time, modify_time FROM fileio_objects WHERE key = ?",
		key).Scan(&size, &createTime, &modifyTime)

	if err == sql.ErrNoRows {
		return nil, data.ErrNotExist
	}
	if err != nil {
		return nil, err
	}

	return &data.FileStat{
		Key:        key,
		Size:       size,
		CreateTime: time.Unix(createTime, 0),
		ModifyTime: time.Unix(modifyTime, 0),
	}, nil
}

// LookupObject checks if an object exists at the given key.
func (sb *SQLiteBackend) LookupObject(ctx context.Context, key string) (bool, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	var exists int
	err := sb.db.QueryRowContext(ctx,
		"SELECT 1 FROM fileio_objects WHERE key = ?", key).Scan(&exists)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// RemoveObject deletes the object at key.
func (sb *SQLiteBackend) RemoveObject(ctx context.Context, key string) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	result, err := sb.db.ExecContext(ctx,
		"DELETE FROM fileio_objects WHERE key = ?", key)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return data.ErrNotExist
	}

	return nil
}
