package filesystem

import (
	"io/fs"

	"github.com/arthur-debert/akabei/pkg/types"
	"github.com/spf13/afero"
)

// aferoFS implements types.FS using afero
type aferoFS struct {
	fs afero.Fs
}

// NewAferoFS creates a new afero filesystem implementation
func NewAferoFS(fs afero.Fs) types.FS {
	return &aferoFS{fs: fs}
}

// NewMemory returns an empty in-memory filesystem.
func NewMemory() types.FS {
	return NewAferoFS(afero.NewMemMapFs())
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a *aferoFS) Chmod(name string, mode fs.FileMode) error {
	return a.fs.Chmod(name, mode)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *aferoFS) Remove(name string) error {
	return a.fs.Remove(name)
}

func (a *aferoFS) Rename(oldpath, newpath string) error {
	return a.fs.Rename(oldpath, newpath)
}
