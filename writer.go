package fileio

import (
	"errors"

	"github.com/mwantia/fileio/data"
)

// writeChunkSize bounds single write calls for large payloads.
const writeChunkSize = 1 << 20

// WriteAll writes the full string to the file in bounded chunks.
// Fails with ErrWrite on any short write.
func (f *File) WriteAll(content string) error {
	if err := f.requireWrite(false); err != nil {
		return err
	}

	return f.writeChunked([]byte(content))
}

// WriteBytes writes a raw byte payload in bounded chunks.
// Requires a binary-qualified writable accessor.
func (f *File) WriteBytes(content []byte) error {
	if err := f.requireWrite(true); err != nil {
		return err
	}

	return f.writeChunked(content)
}

func (f *File) writeChunked(content []byte) error {
	for offset := 0; offset < len(content); {
		chunk := content[offset:min(offset+writeChunkSize, len(content))]

		n, err := f.handle.Write(chunk)
		if err != nil {
			return errors.Join(data.ErrWrite, err)
		}
		if n < len(chunk) {
			return data.ErrWrite
		}

		offset += n
	}

	return nil
}

// WriteLine writes line followed by exactly one newline byte.
// The payload is assembled in the owned buffer and issued as a single
// write call instead of two small ones.
func (f *File) WriteLine(line string) error {
	if err := f.requireWrite(false); err != nil {
		return err
	}

	payload := f.stagingFor(len(line) + 1)
	payload = append(payload, line...)
	payload = append(payload, '\n')

	return f.writePayload(payload)
}

// WriteLines batches all entries into one assembled payload and issues a
// single write call. A newline is appended only to entries that do not
// already end with one.
func (f *File) WriteLines(lines []string) error {
	if err := f.requireWrite(false); err != nil {
		return err
	}

	if len(lines) == 0 {
		return nil
	}

	total := 0
	for _, line := range lines {
		total += len(line)
		if len(line) == 0 || line[len(line)-1] != '\n' {
			total++
		}
	}

	payload := f.stagingFor(total)
	for _, line := range lines {
		payload = append(payload, line...)
		if len(line) == 0 || line[len(line)-1] != '\n' {
			payload = append(payload, '\n')
		}
	}

	return f.writePayload(payload)
}

func (f *File) writePayload(payload []byte) error {
	n, err := f.handle.Write(payload)
	if err != nil {
		return errors.Join(data.ErrWrite, err)
	}
	if n < len(payload) {
		return data.ErrWrite
	}

	return nil
}

// stagingFor reuses the owned buffer as assembly space when the payload
// fits, avoiding a fresh allocation per call.
func (f *File) stagingFor(size int) []byte {
	if size <= cap(f.buffer) {
		return f.buffer[:0]
	}

	return make([]byte, 0, size)
}
