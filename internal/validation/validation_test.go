package validation

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		wantError error
	}{
		{
			name:      "valid simple filename",
			filename:  "file.txt",
			wantError: nil,
		},
		{
			name:      "valid filename with spaces",
			filename:  "my file.txt",
			wantError: nil,
		},
		{
			name:      "valid filename with special chars",
			filename:  "file_name-2024.tar.gz",
			wantError: nil,
		},
		{
			name:      "empty filename",
			filename:  "",
			wantError: ErrInvalidFilename,
		},
		{
			name:      "dot filename",
			filename:  ".",
			wantError: ErrInvalidFilename,
		},
		{
			name:      "dotdot filename",
			filename:  "..",
			wantError: ErrInvalidFilename,
		},
		{
			name:      "filename with slash",
			filename:  "dir/file.txt",
			wantError: ErrInvalidFilename,
		},
		{
			name:      "filename with backslash",
			filename:  "dir\\file.txt",
			wantError: ErrInvalidFilename,
		},
		{
			name:      "filename with null byte",
			filename:  "file\x00.txt",
			wantError: ErrInvalidFilename,
		},
		{
			name:      "filename with control character",
			filename:  "file\n.txt",
			wantError: ErrInvalidFilename,
		},
		{
			name:      "filename starting with hyphen",
			filename:  "-file.txt",
			wantError: ErrInvalidFilename,
		},
		{
			name:      "too long filename",
			filename:  strings.Repeat("a", 256),
			wantError: ErrFilenameTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.filename)

			if tt.wantError != nil {
				if err == nil {
					t.Errorf("ValidateFilename() expected error %v, got nil", tt.wantError)
					return
				}
				if !errors.Is(err, tt.wantError) && !strings.Contains(err.Error(), tt.wantError.Error()) {
					t.Errorf("ValidateFilename() error = %v, want %v", err, tt.wantError)
				}
				return
			}

			if err != nil {
				t.Errorf("ValidateFilename() unexpected error: %v", err)
			}
		})
	}
}


func TestValidatePath(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantError error
	}{
		{
			name:      "valid relative path",
			path:      "file.txt",
			wantError: nil,
		},
		{
			name:      "valid absolute path",
			path:      "/tmp/file.txt",
			wantError: nil,
		},
		{
			name:      "valid nested path",
			path:      "dir/subdir/file.txt",
			wantError: nil,
		},
		{
			name:      "empty path",
			path:      "",
			wantError: ErrEmptyPath,
		},
		{
			name:      "path with null byte",
			path:      "file\x00.txt",
			wantError: ErrInvalidCharacter,
		},
		{
			name:      "path with control character",
			path:      "dir/file\n.txt",
			wantError: ErrInvalidCharacter,
		},
		{
			name:      "very long path",
			path:      strings.Repeat("a/", 2048) + "file.txt",
			wantError: ErrPathTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)

			if tt.wantError != nil {
				if err == nil {
					t.Errorf("ValidatePath() expected error %v, got nil", tt.wantError)
					return
				}
				if !errors.Is(err, tt.wantError) && !strings.Contains(err.Error(), tt.wantError.Error()) {
					t.Errorf("ValidatePath() error = %v, want %v", err, tt.wantError)
				}
				return
			}

			if err != nil {
				t.Errorf("ValidatePath() unexpected error: %v", err)
			}
		})
	}
}


func TestValidateOutputPath(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		path      string
		wantError error
	}{
		{"new file", filepath.Join(dir, "bible.odt"), nil},
		{"relative file", "bible.odt", nil},
		{"empty", "", ErrEmptyPath},
		{"existing directory", dir, ErrIsDirectory},
		{"trailing separator", dir + "/", ErrIsDirectory},
		{"hyphen name", filepath.Join(dir, "-bible.odt"), ErrInvalidFilename},
		{"control character", filepath.Join(dir, "bi\x01ble.odt"), ErrInvalidCharacter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.path)
			if tt.wantError == nil {
				if err != nil {
					t.Errorf("ValidateOutputPath() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantError) {
				t.Errorf("ValidateOutputPath() error = %v, want %v", err, tt.wantError)
			}
		})
	}
}

// odtHeader returns the start of an ODT package as written by the exporter.
func odtHeader() []byte {
	buf := make([]byte, 30)
	copy(buf, []byte{0x50, 0x4b, 0x03, 0x04})
	buf = append(buf, "mimetype"...)
	buf = append(buf, odtMimeType...)
	return append(buf, make([]byte, 64)...)
}

func TestValidateFileType(t *testing.T) {
	zipHeader := []byte{0x50, 0x4b, 0x03, 0x04, 0x14, 0x00}
	xzHeader := []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
	gzHeader := []byte{0x1f, 0x8b, 0x08, 0x00}

	tests := []struct {
		name         string
		filename     string
		content      []byte
		wantFileType FileType
		wantError    bool
	}{
		{"odt package", "bible.odt", odtHeader(), FileTypeODT, false},
		{"odt package named zip", "bible.zip", odtHeader(), FileTypeODT, false},
		{"plain zip", "archive.zip", zipHeader, FileTypeZip, false},
		{"zip named odt", "bible.odt", zipHeader, FileTypeUnknown, true},
		{"xz file", "bible.xz", xzHeader, FileTypeXZ, false},
		{"gzip file", "bible.gz", gzHeader, FileTypeGzip, false},
		{"xz without extension", "bible", xzHeader, FileTypeXZ, false},
		{"json tree", "bible.json", []byte(`{"name":"Test","books":[]}`), FileTypeJSON, false},
		{"xml file", "styles.xml", []byte(`<?xml version="1.0"?><root/>`), FileTypeXML, false},
		{"text file", "notes.txt", []byte("In the beginning"), FileTypeText, false},
		{"binary json", "bible.json", []byte{0x00, 0x01, 0x02, 0x03}, FileTypeUnknown, true},
		{"json that is xz", "bible.json", xzHeader, FileTypeUnknown, true},
		{"odt that is gzip", "bible.odt", gzHeader, FileTypeUnknown, true},
		{"unknown everything", "data.bin", []byte{0x00, 0x01}, FileTypeUnknown, false},
		{"empty json", "bible.json", nil, FileTypeUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateFileType(bytes.NewReader(tt.content), tt.filename)
			if (err != nil) != tt.wantError {
				t.Fatalf("ValidateFileType() error = %v, wantError %v", err, tt.wantError)
			}
			if got != tt.wantFileType {
				t.Errorf("ValidateFileType() = %v, want %v", got, tt.wantFileType)
			}
		})
	}
}

type errorReader struct{}

func (errorReader) Read(p []byte) (int, error) { return 0, os.ErrClosed }

func TestValidateFileTypeReadError(t *testing.T) {
	_, err := ValidateFileType(errorReader{}, "bible.odt")
	if !errors.Is(err, os.ErrClosed) {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestDetectFileTypeFromExtension(t *testing.T) {
	tests := map[string]FileType{
		"bible.odt":      FileTypeODT,
		"BIBLE.ODT":      FileTypeODT,
		"archive.zip":    FileTypeZip,
		"bible.json.xz":  FileTypeXZ,
		"bible.json.gz":  FileTypeGzip,
		"bible.json":     FileTypeJSON,
		"styles.xml":     FileTypeXML,
		"readme.txt":     FileTypeText,
		"Makefile":       FileTypeUnknown,
		"archive.tar.xz": FileTypeXZ,
	}
	for name, want := range tests {
		if got := detectFileTypeFromExtension(name); got != want {
			t.Errorf("detectFileTypeFromExtension(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestIsLikelyText(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want bool
	}{
		{"ascii", []byte("hello world\n"), true},
		{"utf-8", []byte("Im Anfang schuf Gott – Genesis"), true},
		{"empty", nil, false},
		{"null byte", []byte("a\x00b"), false},
		{"mostly control", []byte{0x01, 0x02, 0x03, 'a'}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isLikelyText(tt.buf); got != tt.want {
				t.Errorf("isLikelyText() = %v, want %v", got, tt.want)
			}
		})
	}
}

func BenchmarkValidateFilename(b *testing.B) {
	filename := "valid_filename.txt"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ValidateFilename(filename)
	}
}
