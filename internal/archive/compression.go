package archive

import "strings"

// Compression identifies how an input file is compressed.
type Compression string

// Supported compressions.
const (
	CompressionNone Compression = "none"
	CompressionXZ   Compression = "xz"
	CompressionGzip Compression = "gzip"
)

// DetectCompression detects the compression from the file extension.
func DetectCompression(path string) Compression {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".xz"):
		return CompressionXZ
	case strings.HasSuffix(lower, ".gz"):
		return CompressionGzip
	default:
		return CompressionNone
	}
}

// TrimCompressionExt removes a compression extension from a filename.
// "kjv.json.xz" becomes "kjv.json".
func TrimCompressionExt(filename string) string {
	for _, ext := range []string{".xz", ".gz"} {
		if strings.HasSuffix(strings.ToLower(filename), ext) {
			return filename[:len(filename)-len(ext)]
		}
	}
	return filename
}
