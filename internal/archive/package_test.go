package archive

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	berrors "github.com/FocuswithJustin/bibleodt/core/errors"
)

func createTestZip(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "test.odt")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, m := range []struct{ name, body string }{
		{"mimetype", "application/vnd.oasis.opendocument.text"},
		{"content.xml", "<content/>"},
		{"META-INF/manifest.xml", "<manifest/>"},
	} {
		w, err := zw.Create(m.name)
		if err != nil {
			t.Fatalf("create member: %v", err)
		}
		if _, err := io.WriteString(w, m.body); err != nil {
			t.Fatalf("write member: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return path
}

func TestPackageMembers(t *testing.T) {
	p, err := OpenPackage(createTestZip(t, t.TempDir()))
	if err != nil {
		t.Fatalf("OpenPackage: %v", err)
	}
	defer p.Close()

	want := []string{"mimetype", "content.xml", "META-INF/manifest.xml"}
	if diff := cmp.Diff(want, p.Members()); diff != "" {
		t.Errorf("Members() mismatch (-want +got):\n%s", diff)
	}
}

func TestPackageIterate_StopEarly(t *testing.T) {
	p, err := OpenPackage(createTestZip(t, t.TempDir()))
	if err != nil {
		t.Fatalf("OpenPackage: %v", err)
	}
	defer p.Close()

	count := 0
	err = p.Iterate(func(_ *zip.File, _ io.Reader) (bool, error) {
		count++
		return count == 2, nil
	})
	if err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	if count != 2 {
		t.Errorf("visited %d members, want 2", count)
	}
}

func TestPackageIterate_ErrorInVisitor(t *testing.T) {
	p, err := OpenPackage(createTestZip(t, t.TempDir()))
	if err != nil {
		t.Fatalf("OpenPackage: %v", err)
	}
	defer p.Close()

	boom := errors.New("boom")
	err = p.Iterate(func(_ *zip.File, _ io.Reader) (bool, error) {
		return false, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("Iterate error = %v, want %v", err, boom)
	}
}

func TestReadMember(t *testing.T) {
	p, err := OpenPackage(createTestZip(t, t.TempDir()))
	if err != nil {
		t.Fatalf("OpenPackage: %v", err)
	}
	defer p.Close()

	data, err := p.ReadMember("content.xml")
	if err != nil {
		t.Fatalf("ReadMember: %v", err)
	}
	if string(data) != "<content/>" {
		t.Errorf("ReadMember = %q", data)
	}

	_, err = p.ReadMember("styles.xml")
	if !berrors.Is(err, berrors.ErrNotFound) {
		t.Errorf("missing member error = %v, want ErrNotFound", err)
	}
}

func TestOpenPackage_NotZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.odt")
	os.WriteFile(path, []byte("not a zip"), 0644)

	if _, err := OpenPackage(path); err == nil {
		t.Error("expected error for non-zip file")
	}
}
