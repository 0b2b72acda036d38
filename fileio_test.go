package fileio_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mwantia/fileio"
	"github.com/mwantia/fileio/backend"
	"github.com/mwantia/fileio/backend/local"
	"github.com/mwantia/fileio/backend/memory"
	"github.com/mwantia/fileio/backend/sqlite"
)

type TestBackendFactory func(tst *testing.T) backend.StorageBackend

func GetTestBackendFactories() map[string]TestBackendFactory {
	return map[string]TestBackendFactory{
		"memory": func(tst *testing.T) backend.StorageBackend {
			return memory.NewMemoryBackend()
		},
		"local": func(tst *testing.T) backend.StorageBackend {
			storage, err := local.NewLocalBackend(tst.TempDir())
			if err != nil {
				tst.Fatalf("NewLocalBackend failed: %v", err)
			}

			return storage
		},
		"sqlite": func(tst *testing.T) backend.StorageBackend {
			storage, err := sqlite.NewSQLiteBackend(filepath.Join(tst.TempDir(), "objects.db"))
			if err != nil {
				tst.Fatalf("NewSQLiteBackend failed: %v", err)
			}
			tst.Cleanup(func() {
				storage.Shutdown()
			})

			return storage
		},
	}
}

// TestAllBackends_WriteReadRoundTrip verifies that content written through
// WriteAll is returned unchanged by ReadAll across all backend implementations.
func TestAllBackends_WriteReadRoundTrip(t *testing.T) {
	for name, factory := range GetTestBackendFactories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			storage := factory(t)

			content := "hello\nworld\nround trip"

			f, err := fileio.Open(ctx, "roundtrip.txt", fileio.AccessModeWrite, fileio.WithBackend(storage))
			if err != nil {
				t.Fatalf("Open for write failed: %v", err)
			}
			if err := f.WriteAll(content); err != nil {
				t.Fatalf("WriteAll failed: %v", err)
			}
			if err := f.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}

			f, err = fileio.Open(ctx, "roundtrip.txt", fileio.AccessModeRead, fileio.WithBackend(storage))
			if err != nil {
				t.Fatalf("Open for read failed: %v", err)
			}
			defer f.Close()

			got, err := f.ReadAll()
			if err != nil {
				t.Fatalf("ReadAll failed: %v", err)
			}

			if got != content {
				t.Errorf("Expected %q, got %q", content, got)
			}
		})
	}
}

// TestAllBackends_WriteLinesReadLines verifies the line batch round trip,
// independent of whether entries already carry a trailing newline.
func TestAllBackends_WriteLinesReadLines(t *testing.T) {
	cases := map[string][]struct {
		write []string
		want  []string
	}{
		"plain": {
			{write: []string{"line1", "line2", "line3"}, want: []string{"line1", "line2", "line3"}},
		},
		"mixed-newlines": {
			{write: []string{"alpha\n", "beta", "gamma\n"}, want: []string{"alpha", "beta", "gamma"}},
		},
	}

	for name, factory := range GetTestBackendFactories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			for caseName, entries := range cases {
				for _, entry := range entries {
					storage := factory(t)

					f, err := fileio.Open(ctx, "lines.txt", fileio.AccessModeWrite, fileio.WithBackend(storage))
					if err != nil {
						t.Fatalf("%s: Open for write failed: %v", caseName, err)
					}
					if err := f.WriteLines(entry.write); err != nil {
						t.Fatalf("%s: WriteLines failed: %v", caseName, err)
					}
					if err := f.Close(); err != nil {
						t.Fatalf("%s: Close failed: %v", caseName, err)
					}

					f, err = fileio.Open(ctx, "lines.txt", fileio.AccessModeRead, fileio.WithBackend(storage))
					if err != nil {
						t.Fatalf("%s: Open for read failed: %v", caseName, err)
					}

					got, err := f.ReadLines(0)
					if err != nil {
						t.Fatalf("%s: ReadLines failed: %v", caseName, err)
					}
					f.Close()

					if len(got) != len(entry.want) {
						t.Fatalf("%s: Expected %d lines, got %d (%q)", caseName, len(entry.want), len(got), got)
					}
					for i := range entry.want {
						if got[i] != entry.want[i] {
							t.Errorf("%s: Line %d: expected %q, got %q", caseName, i, entry.want[i], got[i])
						}
					}
				}
			}
		})
	}
}

// TestAllBackends_ReadLineSequence verifies that ReadLine returns each line
// in order and that the call after the last line signals end of stream.
func TestAllBackends_ReadLineSequence(t *testing.T) {
	lines := []string{"first", "second", "third"}

	for name, factory := range GetTestBackendFactories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			storage := factory(t)

			f, err := fileio.Open(ctx, "sequence.txt", fileio.AccessModeWrite, fileio.WithBackend(storage))
			if err != nil {
				t.Fatalf("Open for write failed: %v", err)
			}
			if err := f.WriteLines(lines); err != nil {
				t.Fatalf("WriteLines failed: %v", err)
			}
			if err := f.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}

			f, err = fileio.Open(ctx, "sequence.txt", fileio.AccessModeRead, fileio.WithBackend(storage))
			if err != nil {
				t.Fatalf("Open for read failed: %v", err)
			}
			defer f.Close()

			for i, want := range lines {
				got, err := f.ReadLine()
				if err != nil {
					t.Fatalf("ReadLine %d failed: %v", i, err)
				}
				if got != want {
					t.Errorf("Line %d: expected %q, got %q", i, want, got)
				}
			}

			if _, err := f.ReadLine(); !errors.Is(err, fileio.ErrEndOfStream) {
				t.Errorf("Expected ErrEndOfStream after last line, got %v", err)
			}
		})
	}
}

// TestAllBackends_AppendMode verifies that append positions at the end of
// existing content instead of truncating it.
func TestAllBackends_AppendMode(t *testing.T) {
	for name, factory := range GetTestBackendFactories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			storage := factory(t)

			f, err := fileio.Open(ctx, "append.txt", fileio.AccessModeWrite, fileio.WithBackend(storage))
			if err != nil {
				t.Fatalf("Open for write failed: %v", err)
			}
			if err := f.WriteAll("first\n"); err != nil {
				t.Fatalf("WriteAll failed: %v", err)
			}
			if err := f.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}

			f, err = fileio.Open(ctx, "append.txt", fileio.AccessModeAppend, fileio.WithBackend(storage))
			if err != nil {
				t.Fatalf("Open for append failed: %v", err)
			}
			if err := f.WriteAll("second\n"); err != nil {
				t.Fatalf("WriteAll in append failed: %v", err)
			}
			if err := f.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}

			f, err = fileio.Open(ctx, "append.txt", fileio.AccessModeRead, fileio.WithBackend(storage))
			if err != nil {
				t.Fatalf("Open for read failed: %v", err)
			}
			defer f.Close()

			got, err := f.ReadLines(0)
			if err != nil {
				t.Fatalf("ReadLines failed: %v", err)
			}

			want := []string{"first", "second"}
			if len(got) != len(want) {
				t.Fatalf("Expected %q, got %q", want, got)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("Line %d: expected %q, got %q", i, want[i], got[i])
				}
			}
		})
	}
}

// TestAllBackends_BinaryRoundTrip verifies raw byte persistence under the
// binary qualifier, including bytes that are not valid text.
func TestAllBackends_BinaryRoundTrip(t *testing.T) {
	payload := []byte{0x00, 0x01, 0x02, 0xFF}

	for name, factory := range GetTestBackendFactories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			storage := factory(t)

			f, err := fileio.Open(ctx, "raw.bin", fileio.AccessModeWrite|fileio.AccessModeBinary, fileio.WithBackend(storage))
			if err != nil {
				t.Fatalf("Open for binary write failed: %v", err)
			}
			if err := f.WriteBytes(payload); err != nil {
				t.Fatalf("WriteBytes failed: %v", err)
			}
			if err := f.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}

			f, err = fileio.Open(ctx, "raw.bin", fileio.AccessModeRead|fileio.AccessModeBinary, fileio.WithBackend(storage))
			if err != nil {
				t.Fatalf("Open for binary read failed: %v", err)
			}
			defer f.Close()

			got, err := f.ReadBytes()
			if err != nil {
				t.Fatalf("ReadBytes failed: %v", err)
			}

			if !bytes.Equal(got, payload) {
				t.Errorf("Expected %v, got %v", payload, got)
			}
		})
	}
}

// TestAllBackends_ReadLinesLimit verifies the bounded multi-line read and
// that subsequent reads continue from where the limit stopped.
func TestAllBackends_ReadLinesLimit(t *testing.T) {
	lines := []string{"one", "two", "three", "four", "five"}

	for name, factory := range GetTestBackendFactories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			storage := factory(t)

			f, err := fileio.Open(ctx, "limit.txt", fileio.AccessModeWrite, fileio.WithBackend(storage))
			if err != nil {
				t.Fatalf("Open for write failed: %v", err)
			}
			if err := f.WriteLines(lines); err != nil {
				t.Fatalf("WriteLines failed: %v", err)
			}
			if err := f.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}

			f, err = fileio.Open(ctx, "limit.txt", fileio.AccessModeRead, fileio.WithBackend(storage))
			if err != nil {
				t.Fatalf("Open for read failed: %v", err)
			}
			defer f.Close()

			head, err := f.ReadLines(2)
			if err != nil {
				t.Fatalf("ReadLines(2) failed: %v", err)
			}
			if len(head) != 2 || head[0] != "one" || head[1] != "two" {
				t.Fatalf("Expected first two lines, got %q", head)
			}

			rest, err := f.ReadLines(0)
			if err != nil {
				t.Fatalf("ReadLines(0) failed: %v", err)
			}
			if len(rest) != 3 || rest[0] != "three" || rest[2] != "five" {
				t.Errorf("Expected remaining three lines, got %q", rest)
			}
		})
	}
}
