package fileio

import (
	"errors"
	"io"

	"github.com/mwantia/fileio/data"
)

// ReadAll reads the entire file into a string.
// The read position is reset to the start first; the transfer is one bulk
// read sized to the object's length, bypassing the staging buffer.
func (f *File) ReadAll() (string, error) {
	content, err := f.readFull(true)
	if err != nil {
		return "", err
	}

	return string(content), nil
}

// ReadBytes reads the entire file into a byte slice.
// Permitted for both text and binary accessors with read access.
func (f *File) ReadBytes() ([]byte, error) {
	return f.readFull(false)
}

func (f *File) readFull(textOriented bool) ([]byte, error) {
	if err := f.requireRead(textOriented); err != nil {
		return nil, err
	}

	size, err := f.handle.Size()
	if err != nil {
		return nil, errors.Join(data.ErrRead, err)
	}

	if _, err := f.handle.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Join(data.ErrRead, err)
	}

	// The line cursor no longer matches the handle position
	f.cursor, f.bufferEnd = 0, 0

	content := make([]byte, size)
	if size > 0 {
		if _, err := io.ReadFull(f.handle, content); err != nil {
			return nil, errors.Join(data.ErrRead, err)
		}
	}

	return content, nil
}

// ReadLine reads a single line from the file, without the trailing newline.
// Lines spanning buffer refills are reassembled. At true end of data the
// call fails with ErrEndOfStream; a final line lacking a trailing newline is
// returned once without error before that.
func (f *File) ReadLine() (string, error) {
	if err := f.requireRead(true); err != nil {
		return "", err
	}

	var line []byte
	accumulated := false

	for {
		if f.cursor >= f.bufferEnd {
			n, err := f.handle.Read(f.buffer)
			f.cursor, f.bufferEnd = 0, n

			if err != nil && err != io.EOF {
				return "", errors.Join(data.ErrRead, err)
			}
			if n == 0 {
				break // true end of data
			}
		}

		start := f.cursor
		for f.cursor < f.bufferEnd && f.buffer[f.cursor] != '\n' {
			f.cursor++
		}

		if f.cursor > start {
			line = append(line, f.buffer[start:f.cursor]...)
			accumulated = true
		}

		if f.cursor < f.bufferEnd {
			f.cursor++ // skip the newline
			return string(line), nil
		}
	}

	if !accumulated {
		return "", data.ErrEndOfStream
	}

	return string(line), nil
}

// ReadLines reads up to limit lines from the file; limit 0 reads until
// exhaustion. End of stream terminates the loop silently, returning
// whatever was collected so far.
func (f *File) ReadLines(limit int) ([]string, error) {
	if err := f.requireRead(true); err != nil {
		return nil, err
	}

	var lines []string
	if limit > 0 {
		lines = make([]string, 0, limit)
	}

	for limit == 0 || len(lines) < limit {
		line, err := f.ReadLine()
		if err != nil {
			if errors.Is(err, data.ErrEndOfStream) {
				break
			}
			return nil, err
		}

		lines = append(lines, line)
	}

	return lines, nil
}
