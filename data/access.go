package data

import "strings"

// AccessMode represents the access policy a file is opened under.
// Exactly one of the Read, Write or Append flags must be set;
// Binary is an orthogonal qualifier that disables line-oriented operations.
type AccessMode int

// File access mode constants.
// These can be combined using bitwise OR.
const (
	AccessModeRead   AccessMode = 1 << iota // open existing for reading
	AccessModeWrite                         // create or truncate for writing
	AccessModeAppend                        // create if absent, position at end
	AccessModeBinary                        // byte-oriented operations only
)

// HasRead checks if the mode includes read access.
func (m AccessMode) HasRead() bool {
	return m&AccessModeRead != 0
}

// HasWrite checks if the mode includes write access.
func (m AccessMode) HasWrite() bool {
	return m&AccessModeWrite != 0
}

// HasAppend checks if the mode includes append access.
func (m AccessMode) HasAppend() bool {
	return m&AccessModeAppend != 0
}

// IsBinary checks if the mode carries the binary qualifier.
func (m AccessMode) IsBinary() bool {
	return m&AccessModeBinary != 0
}

// IsWritable checks if the mode allows writing in any form.
func (m AccessMode) IsWritable() bool {
	return m.HasWrite() || m.HasAppend()
}

// Validate checks that exactly one of Read, Write or Append is set.
// Returns ErrInvalidMode otherwise.
func (m AccessMode) Validate() error {
	count := 0
	for _, flag := range []AccessMode{AccessModeRead, AccessModeWrite, AccessModeAppend} {
		if m&flag != 0 {
			count++
		}
	}

	if count != 1 {
		return ErrInvalidMode
	}

	return nil
}

// String returns a textual representation of the mode.
// Example: "read+binary" for AccessModeRead|AccessModeBinary.
func (m AccessMode) String() string {
	var parts []string

	if m.HasRead() {
		parts = append(parts, "read")
	}
	if m.HasWrite() {
		parts = append(parts, "write")
	}
	if m.HasAppend() {
		parts = append(parts, "append")
	}
	if m.IsBinary() {
		parts = append(parts, "binary")
	}

	if len(parts) == 0 {
		return "none"
	}

	return strings.Join(parts, "+")
}
