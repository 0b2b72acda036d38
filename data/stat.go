package data

import "time"

// FileStat describes a stored object as reported by a storage backend.
type FileStat struct {
	Key  string // Backend key of the object
	Size int64  // Length in bytes

	CreateTime time.Time
	ModifyTime time.Time
}
