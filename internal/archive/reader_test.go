package archive

import (
	"bytes"
	"compress/gzip"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/ulikunitz/xz"

	berrors "github.com/FocuswithJustin/bibleodt/core/errors"
)

const testTree = `{"name": "Test Bible", "books": [{"abbr": "Gen", "osis_id": "Gen", "short_name": "Genesis", "long_name": "Genesis",
  "chapters": [{"verses": [{"number": "1", "content": [{"type": "text", "value": "In the beginning"}]}]}]}]}`

func createTestGz(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	defer f.Close()

	gw := gzip.NewWriter(f)
	if _, err := gw.Write([]byte(testTree)); err != nil {
		t.Fatalf("write content: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	return path
}

func createTestXz(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	defer f.Close()

	xw, err := xz.NewWriter(f)
	if err != nil {
		t.Fatalf("xz writer: %v", err)
	}
	if _, err := xw.Write([]byte(testTree)); err != nil {
		t.Fatalf("write content: %v", err)
	}
	if err := xw.Close(); err != nil {
		t.Fatalf("close xz: %v", err)
	}
	return path
}

func createTestPlain(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(testTree), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		want    Compression
		wantErr bool
	}{
		{
			name:  "plain json",
			setup: func(t *testing.T) string { return createTestPlain(t, dir, "tree.json") },
			want:  CompressionNone,
		},
		{
			name:  "gzip by extension",
			setup: func(t *testing.T) string { return createTestGz(t, dir, "tree.json.gz") },
			want:  CompressionGzip,
		},
		{
			name:  "xz by extension",
			setup: func(t *testing.T) string { return createTestXz(t, dir, "tree.json.xz") },
			want:  CompressionXZ,
		},
		{
			name:  "xz without extension",
			setup: func(t *testing.T) string { return createTestXz(t, dir, "tree-xz.json") },
			want:  CompressionXZ,
		},
		{
			name:  "gzip without extension",
			setup: func(t *testing.T) string { return createTestGz(t, dir, "tree-gz.json") },
			want:  CompressionGzip,
		},
		{
			name: "corrupted xz",
			setup: func(t *testing.T) string {
				path := filepath.Join(dir, "corrupt.json.xz")
				os.WriteFile(path, []byte("not xz data"), 0644)
				return path
			},
			wantErr: true,
		},
		{
			name: "corrupted gzip",
			setup: func(t *testing.T) string {
				path := filepath.Join(dir, "corrupt.json.gz")
				os.WriteFile(path, []byte("not gzip data"), 0644)
				return path
			},
			wantErr: true,
		},
		{
			name:    "nonexistent file",
			setup:   func(t *testing.T) string { return filepath.Join(dir, "nonexistent.json") },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t)
			r, err := Open(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer r.Close()

			if r.Compression != tt.want {
				t.Errorf("Compression = %q, want %q", r.Compression, tt.want)
			}
			data, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if !bytes.Equal(data, []byte(testTree)) {
				t.Errorf("content mismatch: got %q", data)
			}
		})
	}
}

func TestOpen_NotExistIsIOError(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.json"))
	var ioErr *berrors.IOError
	if !berrors.As(err, &ioErr) {
		t.Fatalf("expected *IOError, got %T", err)
	}
	if !berrors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist in chain, got %v", err)
	}
}

func TestReadBible(t *testing.T) {
	dir := t.TempDir()
	for _, path := range []string{
		createTestPlain(t, dir, "a.json"),
		createTestGz(t, dir, "b.json.gz"),
		createTestXz(t, dir, "c.json.xz"),
	} {
		b, err := ReadBible(path)
		if err != nil {
			t.Fatalf("ReadBible(%s): %v", path, err)
		}
		if b.Name != "Test Bible" || len(b.Books) != 1 || b.Books[0].Abbr != "Gen" {
			t.Errorf("ReadBible(%s) = %+v", path, b)
		}
		if b.VerseCount() != 1 {
			t.Errorf("VerseCount = %d, want 1", b.VerseCount())
		}
	}
}

func TestReadBible_NameFromFile(t *testing.T) {
	const unnamed = `{"books": [{"abbr": "Gen", "chapters": [{"verses": [{"number": "1", "content": []}]}]}]}`
	dir := t.TempDir()

	var buf bytes.Buffer
	xw, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	xw.Write([]byte(unnamed))
	if err := xw.Close(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"kjv.json.xz", buf.Bytes(), "kjv"},
		{"web.json", []byte(unnamed), "web"},
		{"asv", []byte(unnamed), "asv"},
		{"named.json", []byte(testTree), "Test Bible"},
	}
	for _, tt := range tests {
		path := filepath.Join(dir, tt.name)
		if err := os.WriteFile(path, tt.data, 0644); err != nil {
			t.Fatal(err)
		}
		b, err := ReadBible(path)
		if err != nil {
			t.Fatalf("ReadBible(%s): %v", tt.name, err)
		}
		if b.Name != tt.want {
			t.Errorf("ReadBible(%s).Name = %q, want %q", tt.name, b.Name, tt.want)
		}
	}
}

func TestReadBible_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("{not json"), 0644)

	_, err := ReadBible(path)
	var pe *berrors.ParseError
	if !berrors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if pe.Path != path {
		t.Errorf("ParseError.Path = %q, want %q", pe.Path, path)
	}
}

func TestDetectCompression(t *testing.T) {
	tests := []struct {
		path string
		want Compression
	}{
		{"kjv.json", CompressionNone},
		{"kjv.json.xz", CompressionXZ},
		{"KJV.JSON.XZ", CompressionXZ},
		{"kjv.json.gz", CompressionGzip},
		{"kjv", CompressionNone},
	}
	for _, tt := range tests {
		if got := DetectCompression(tt.path); got != tt.want {
			t.Errorf("DetectCompression(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestTrimCompressionExt(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"kjv.json.xz", "kjv.json"},
		{"kjv.json.gz", "kjv.json"},
		{"kjv.json", "kjv.json"},
	}
	for _, tt := range tests {
		if got := TrimCompressionExt(tt.in); got != tt.want {
			t.Errorf("TrimCompressionExt(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
