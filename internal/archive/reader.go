// Package archive opens the files bibleodt reads: document trees that may be
// xz or gzip compressed, and the zip packages it writes.
package archive

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/bibleodt/core/errors"
	"github.com/FocuswithJustin/bibleodt/core/ir"
)

// Reader is an input file with automatic decompression handling.
type Reader struct {
	io.Reader
	Compression  Compression
	file         *os.File
	decompressor io.Closer
}

// Open opens path for reading. Compression is detected from the file
// content first and from the extension when the content is ambiguous.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}

	br := bufio.NewReader(f)
	head, _ := br.Peek(len(xzMagic))
	comp := sniffCompression(head)
	if comp == CompressionNone {
		comp = DetectCompression(path)
	}

	var reader io.Reader = br
	var decompressor io.Closer

	switch comp {
	case CompressionXZ:
		xzr, err := xz.NewReader(br)
		if err != nil {
			f.Close()
			return nil, errors.NewIO("xz reader", path, err)
		}
		reader = xzr
		decompressor = nil // xz reader doesn't need closing
	case CompressionGzip:
		gzr, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, errors.NewIO("gzip reader", path, err)
		}
		reader = gzr
		decompressor = gzr
	}

	return &Reader{
		Reader:       reader,
		Compression:  comp,
		file:         f,
		decompressor: decompressor,
	}, nil
}

// Close closes the reader and any underlying decompressors.
func (r *Reader) Close() error {
	var errs []error
	if r.decompressor != nil {
		if err := r.decompressor.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := r.file.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// ReadBible opens path and decodes the JSON document tree it holds.
// A tree without a name is named after the file: "kjv.json.xz" gives "kjv".
func ReadBible(path string) (*ir.Bible, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	b, err := ir.Decode(r)
	if err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) && pe.Path == "" {
			pe.Path = path
		}
		return nil, err
	}
	if b.Name == "" {
		base := TrimCompressionExt(filepath.Base(path))
		b.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return b, nil
}

var (
	xzMagic   = []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}
	gzipMagic = []byte{0x1F, 0x8B}
)

func sniffCompression(head []byte) Compression {
	switch {
	case bytes.HasPrefix(head, xzMagic):
		return CompressionXZ
	case bytes.HasPrefix(head, gzipMagic):
		return CompressionGzip
	default:
		return CompressionNone
	}
}
