package archive

import (
	"archive/zip"
	"io"

	"github.com/FocuswithJustin/bibleodt/core/errors"
)

// Package is an opened zip package such as an ODT file.
type Package struct {
	*zip.ReadCloser
	path string
}

// OpenPackage opens the zip package at path.
func OpenPackage(path string) (*Package, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.NewIO("open package", path, err)
	}
	return &Package{ReadCloser: zr, path: path}, nil
}

// Visitor is a callback function for iterating package members.
// Return true to stop iteration, false to continue.
type Visitor func(member *zip.File, content io.Reader) (stop bool, err error)

// Iterate walks through all members in stored order, calling the visitor for each.
func (p *Package) Iterate(visitor Visitor) error {
	for _, f := range p.File {
		rc, err := f.Open()
		if err != nil {
			return errors.NewIO("open member", f.Name, err)
		}
		stop, err := visitor(f, rc)
		rc.Close()
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
	return nil
}

// Members returns the member names in stored order.
func (p *Package) Members() []string {
	names := make([]string, len(p.File))
	for i, f := range p.File {
		names[i] = f.Name
	}
	return names
}

// ReadMember reads the member called name.
func (p *Package) ReadMember(name string) ([]byte, error) {
	var data []byte
	found := false
	err := p.Iterate(func(member *zip.File, content io.Reader) (bool, error) {
		if member.Name != name {
			return false, nil
		}
		found = true
		var err error
		data, err = io.ReadAll(content)
		return true, err
	})
	if err != nil {
		return nil, errors.NewIO("read member", name, err)
	}
	if !found {
		return nil, errors.NewNotFound("package member", name)
	}
	return data, nil
}
