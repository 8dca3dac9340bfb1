//nolint:errcheck // Test cleanup error handling is intentionally ignored
package csvtable

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// TestCompressionHandler tests reader and writer creation for every compression type
func TestCompressionHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		compressionType CompressionType
		extension       string
		canWrite        bool
	}{
		{
			name:            "No compression",
			compressionType: CompressionNone,
			extension:       "",
			canWrite:        true,
		},
		{
			name:            "Gzip compression",
			compressionType: CompressionGZ,
			extension:       ".gz",
			canWrite:        true,
		},
		{
			name:            "Bzip2 compression",
			compressionType: CompressionBZ2,
			extension:       ".bz2",
			canWrite:        false, // bzip2 doesn't support writing
		},
		{
			name:            "XZ compression",
			compressionType: CompressionXZ,
			extension:       ".xz",
			canWrite:        true,
		},
		{
			name:            "ZSTD compression",
			compressionType: CompressionZSTD,
			extension:       ".zst",
			canWrite:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.compressionType.Extension(); got != tt.extension {
				t.Errorf("Extension() = %q, want %q", got, tt.extension)
			}

			handler := newCompressionHandler(tt.compressionType)
			var buf bytes.Buffer
			writer, cleanup, err := handler.createWriter(&buf)
			if !tt.canWrite {
				if err == nil {
					t.Error("createWriter() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("createWriter() error = %v", err)
			}

			want := "id,name\n1,Alice\n2,Bob\n"
			if _, err := io.WriteString(writer, want); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if err := cleanup(); err != nil {
				t.Fatalf("cleanup() error = %v", err)
			}

			reader, cleanup, err := handler.createReader(&buf)
			if err != nil {
				t.Fatalf("createReader() error = %v", err)
			}
			defer cleanup()

			got, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if string(got) != want {
				t.Errorf("round trip = %q, want %q", got, want)
			}
		})
	}
}

func TestCompressionFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		expected CompressionType
		stripped string
	}{
		{"data.csv", CompressionNone, "data.csv"},
		{"data.csv.gz", CompressionGZ, "data.csv"},
		{"data.csv.bz2", CompressionBZ2, "data.csv"},
		{"data.csv.xz", CompressionXZ, "data.csv"},
		{"data.csv.zst", CompressionZSTD, "data.csv"},
		{"DATA.CSV.GZ", CompressionGZ, "DATA.CSV"},
		{"/path/to/file.tsv.xz", CompressionXZ, "/path/to/file.tsv"},
		{"archive.gzip", CompressionNone, "archive.gzip"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := CompressionFromPath(tt.path); got != tt.expected {
				t.Errorf("CompressionFromPath(%q) = %v, want %v", tt.path, got, tt.expected)
			}
			if got := removeCompressionExtension(tt.path); got != tt.stripped {
				t.Errorf("removeCompressionExtension(%q) = %q, want %q", tt.path, got, tt.stripped)
			}
		})
	}
}

func TestOutputFormatFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		expected OutputFormat
		ok       bool
	}{
		{"out.csv", OutputFormatCSV, true},
		{"out.tsv.gz", OutputFormatTSV, true},
		{"out.XLSX", OutputFormatXLSX, true},
		{"dir/out.parquet", OutputFormatParquet, true},
		{"out.parquet.zst", OutputFormatParquet, true},
		{"out.json", OutputFormatCSV, false},
		{"out", OutputFormatCSV, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, ok := OutputFormatFromPath(tt.path)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("OutputFormatFromPath(%q) = (%v, %v), want (%v, %v)", tt.path, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

// TestCompressedFileReaders writes files with the compression libraries
// directly and reads them back through openFileReader
func TestCompressedFileReaders(t *testing.T) {
	t.Parallel()

	content := []byte("name,age\nAlice,30\n")
	tests := []struct {
		name     string
		fileName string
		compress func(t *testing.T, w io.Writer)
	}{
		{
			name:     "plain",
			fileName: "data.csv",
			compress: func(t *testing.T, w io.Writer) {
				t.Helper()
				if _, err := w.Write(content); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name:     "gzip",
			fileName: "data.csv.gz",
			compress: func(t *testing.T, w io.Writer) {
				t.Helper()
				gw := gzip.NewWriter(w)
				if _, err := gw.Write(content); err != nil {
					t.Fatal(err)
				}
				if err := gw.Close(); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name:     "xz",
			fileName: "data.csv.xz",
			compress: func(t *testing.T, w io.Writer) {
				t.Helper()
				xw, err := xz.NewWriter(w)
				if err != nil {
					t.Fatal(err)
				}
				if _, err := xw.Write(content); err != nil {
					t.Fatal(err)
				}
				if err := xw.Close(); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name:     "zstd",
			fileName: "data.csv.zst",
			compress: func(t *testing.T, w io.Writer) {
				t.Helper()
				zw, err := zstd.NewWriter(w)
				if err != nil {
					t.Fatal(err)
				}
				if _, err := zw.Write(content); err != nil {
					t.Fatal(err)
				}
				if err := zw.Close(); err != nil {
					t.Fatal(err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), tt.fileName)
			f, err := os.Create(path)
			if err != nil {
				t.Fatal(err)
			}
			tt.compress(t, f)
			if err := f.Close(); err != nil {
				t.Fatal(err)
			}

			reader, cleanup, err := openFileReader(path)
			if err != nil {
				t.Fatalf("openFileReader() error = %v", err)
			}
			defer cleanup()

			got, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if !bytes.Equal(got, content) {
				t.Errorf("read %q, want %q", got, content)
			}
		})
	}
}

func TestInvalidCompressionReader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		compressionType CompressionType
		data            []byte
	}{
		{
			name:            "Invalid gzip data",
			compressionType: CompressionGZ,
			data:            []byte("not gzip data"),
		},
		{
			name:            "Invalid xz data",
			compressionType: CompressionXZ,
			data:            []byte("not xz data"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := newCompressionHandler(tt.compressionType)
			_, _, err := handler.createReader(bytes.NewReader(tt.data))
			if err == nil {
				t.Error("Expected error for invalid compressed data, got nil")
			}
		})
	}

	t.Run("Unknown compression type", func(t *testing.T) {
		t.Parallel()

		handler := newCompressionHandler(CompressionType(42))
		if _, _, err := handler.createReader(bytes.NewReader(nil)); err == nil {
			t.Error("createReader() expected error, got nil")
		}
		if _, _, err := handler.createWriter(io.Discard); err == nil {
			t.Error("createWriter() expected error, got nil")
		}
	})
}

func TestOpenFileReader_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := openFileReader(filepath.Join(t.TempDir(), "missing.csv"))
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !errors.Is(err, ErrFileNotFound) {
			t.Errorf("error = %v, want ErrFileNotFound", err)
		}
	})

	t.Run("invalid gzip file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "broken.csv.gz")
		if err := os.WriteFile(path, []byte("plain text"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, _, err := openFileReader(path); err == nil {
			t.Error("expected error for invalid gzip file, got nil")
		}
	})

	t.Run("writer in missing directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := createFileWriter(filepath.Join(t.TempDir(), "no", "such", "dir", "out.csv"), CompressionNone)
		if err == nil {
			t.Error("expected error, got nil")
		}
	})
}
