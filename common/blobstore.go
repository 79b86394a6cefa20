package common

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// BlobStore defines the named-blob storage the catalog cache is kept in.
// Missing blobs are reported with an error satisfying errors.Is(err, os.ErrNotExist).
//
// The default implementation is a plain directory, but you could back this with
// any store that can report a last-write time.
type BlobStore interface {
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
	ModTime(name string) (time.Time, error)
}

var _ BlobStore = (*dirStore)(nil)

type dirStore struct {
	base string
}

// NewDirStore returns a BlobStore rooted at dir, creating the directory if absent.
func NewDirStore(dir string) (BlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &dirStore{base: dir}, nil
}

func (d *dirStore) file(name string) string {
	return filepath.Join(d.base, name)
}

func (d *dirStore) Read(name string) ([]byte, error) {
	return os.ReadFile(d.file(name))
}

func (d *dirStore) ModTime(name string) (time.Time, error) {
	info, err := os.Stat(d.file(name))
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// Write replaces name in one step: data goes to a temp file in the same
// directory which is then renamed over the target.
func (d *dirStore) Write(name string, data []byte) error {
	tmp, err := os.CreateTemp(d.base, "."+name+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, d.file(name)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
