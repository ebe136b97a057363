package types

import (
	"io/fs"
)

// FS is the filesystem interface required for akabei operations.
// Every read and mutation performed by the drift checker, the applier and
// the state store goes through an FS, so tests can run against memory.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Chmod(name string, mode fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Other operations
	Remove(name string) error
	Rename(oldpath, newpath string) error
}

// Provider resolves a package name to a fully built Package: content
// loaded, digests computed and hooks attached.
type Provider interface {
	Resolve(name string) (Package, error)
	Names() []string
}
