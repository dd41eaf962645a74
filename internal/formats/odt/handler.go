// Package odt exports a Bible document tree as an OpenDocument text package
// laid out for lossless round-tripping.
//
// Every verse becomes one paragraph carrying a bookmark for the verse and for
// each cross-reference range starting at it. Formatting that a word processor
// cannot express is kept as literal tags in dedicated character styles, so a
// document can be restyled freely and still be read back.
package odt

import (
	"context"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/bibleodt/core/errors"
	"github.com/FocuswithJustin/bibleodt/core/ir"
	"github.com/FocuswithJustin/bibleodt/internal/logging"
	"github.com/FocuswithJustin/bibleodt/internal/validation"
)

// Options configure an export.
type Options struct {
	// OutputPath is the package file to create or replace.
	OutputPath string

	// Style is a preset name or a path to a styles.xml file.
	// Empty selects DefaultStyle.
	Style string
}

// Result describes a written package.
type Result struct {
	OutputPath string `json:"output_path"`
	Paragraphs int    `json:"paragraphs"`
	Bookmarks  int    `json:"bookmarks"`
	SizeBytes  int64  `json:"size_bytes"`
	BLAKE3     string `json:"blake3"`
}

// Export writes b to opts.OutputPath. The package is written to a temporary
// file next to the destination and renamed into place, so a failed export
// never leaves a partial file behind.
func Export(ctx context.Context, b *ir.Bible, opts Options) (*Result, error) {
	if b == nil {
		return nil, errors.NewValidation("bible", "document tree is required")
	}
	if err := validation.ValidateOutputPath(opts.OutputPath); err != nil {
		return nil, &errors.ValidationError{Field: "output", Value: opts.OutputPath, Message: err.Error(), Err: err}
	}
	if errs := ir.Validate(b); len(errs) > 0 {
		return nil, errors.Wrapf(errs[0], "invalid document (%d problems)", len(errs))
	}

	style := opts.Style
	if style == "" {
		style = DefaultStyle
	}

	ctx = logging.WithRunID(ctx, uuid.NewString())
	chapters := 0
	for _, bk := range b.Books {
		chapters += bk.ChapterCount()
	}
	verses := b.VerseCount()
	logging.ExportStarted(ctx, opts.OutputPath, style,
		"books", len(b.Books),
		"chapters", chapters,
		"verses", verses)

	styles, err := ResolveStyles(style)
	if err != nil {
		return nil, err
	}
	defer styles.Close()
	logging.StyleResolved(ctx, style)

	targets := CollectCrossReferences(b)
	doc, stats := Serialize(b, targets)
	if stats.Verses != verses {
		panic(errors.NewInvariant("serializer", "wrote %d verses, tree has %d", stats.Verses, verses))
	}
	content, err := doc.WriteToBytes()
	if err != nil {
		return nil, errors.NewIO("encode", MemberContent, err)
	}
	logging.DebugContext(ctx, "content serialized",
		"paragraphs", stats.Paragraphs,
		"verses", stats.Verses,
		"xref_targets", targets.Len(),
		"bytes", len(content))

	size, digest, err := writeAtomic(opts.OutputPath, func(w io.Writer) error {
		return WritePackage(w, content, styles, stats.Paragraphs)
	})
	if err != nil {
		return nil, err
	}

	res := &Result{
		OutputPath: opts.OutputPath,
		Paragraphs: stats.Paragraphs,
		Bookmarks:  stats.Bookmarks,
		SizeBytes:  size,
		BLAKE3:     digest,
	}
	logging.ExportFinished(ctx, res.OutputPath, res.Paragraphs, res.SizeBytes, res.BLAKE3)
	return res, nil
}

// writeAtomic streams write into a temporary file in the destination
// directory and renames it to dest. It returns the size and BLAKE3 digest
// of what was written.
func writeAtomic(dest string, write func(io.Writer) error) (int64, string, error) {
	f, err := os.CreateTemp(filepath.Dir(dest), ".bibleodt-*.odt")
	if err != nil {
		return 0, "", errors.NewIO("create", dest, err)
	}
	tmp := f.Name()
	ok := false
	defer func() {
		if !ok {
			f.Close()
			os.Remove(tmp)
		}
	}()

	if err := f.Chmod(0644); err != nil {
		return 0, "", errors.NewIO("chmod", tmp, err)
	}

	h := blake3.New()
	if err := write(io.MultiWriter(f, h)); err != nil {
		return 0, "", err
	}
	info, err := f.Stat()
	if err != nil {
		return 0, "", errors.NewIO("stat", tmp, err)
	}
	if err := f.Close(); err != nil {
		return 0, "", errors.NewIO("close", tmp, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		return 0, "", errors.NewIO("rename", dest, err)
	}
	ok = true

	return info.Size(), hex.EncodeToString(h.Sum(nil)), nil
}

// Import reads a package written by Export back into a document tree.
// It is not implemented and always fails without touching path.
func Import(path string) (*ir.Bible, error) {
	return nil, &errors.UnsupportedError{
		Feature: "ODT import",
		Reason:  "import not yet implemented",
		Err:     errors.ErrNotImplemented,
	}
}
