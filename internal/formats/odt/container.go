package odt

import (
	"archive/zip"
	"bytes"
	"io"
	"strconv"

	"github.com/FocuswithJustin/bibleodt/core/errors"
)

// MimeType is the media type of an OpenDocument text package.
const MimeType = "application/vnd.oasis.opendocument.text"

// mimeTypeCRC is the CRC-32 of MimeType.
const mimeTypeCRC = 204654174

// paragraphPlaceholder is replaced in meta.xml by the paragraph count.
const paragraphPlaceholder = "#PARA#"

// Package member names, in the order they are written.
const (
	MemberMimeType = "mimetype"
	MemberContent  = "content.xml"
	MemberStyles   = "styles.xml"
	MemberMeta     = "meta.xml"
	MemberManifest = "META-INF/manifest.xml"
)

// WritePackage writes a complete ODT package to w. The mimetype member is
// first and stored uncompressed so it can be sniffed at a fixed offset.
func WritePackage(w io.Writer, content []byte, styles io.Reader, paragraphs int) error {
	meta, err := readResource("meta.xml")
	if err != nil {
		return err
	}
	manifest, err := readResource("manifest.xml")
	if err != nil {
		return err
	}
	meta = bytes.ReplaceAll(meta, []byte(paragraphPlaceholder), []byte(strconv.Itoa(paragraphs)))

	zw := zip.NewWriter(w)

	mw, err := zw.CreateRaw(&zip.FileHeader{
		Name:               MemberMimeType,
		Method:             zip.Store,
		CRC32:              mimeTypeCRC,
		CompressedSize64:   uint64(len(MimeType)),
		UncompressedSize64: uint64(len(MimeType)),
	})
	if err != nil {
		return errors.NewIO("write", MemberMimeType, err)
	}
	if _, err := io.WriteString(mw, MimeType); err != nil {
		return errors.NewIO("write", MemberMimeType, err)
	}

	members := []struct {
		name string
		r    io.Reader
	}{
		{MemberContent, bytes.NewReader(content)},
		{MemberStyles, styles},
		{MemberMeta, bytes.NewReader(meta)},
		{MemberManifest, bytes.NewReader(manifest)},
	}
	for _, m := range members {
		fw, err := zw.Create(m.name)
		if err != nil {
			return errors.NewIO("write", m.name, err)
		}
		if _, err := io.Copy(fw, m.r); err != nil {
			return errors.NewIO("write", m.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return errors.NewIO("close", "package", err)
	}
	return nil
}
