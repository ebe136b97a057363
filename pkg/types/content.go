package types

import "fmt"

// ContentRef describes where the bytes of a desired file come from. It is
// either InlineBytes or SourcePath, and is resolved to bytes exactly once,
// before digesting, so nothing downstream branches on the form.
type ContentRef interface {
	// Resolve returns the bytes the reference points at.
	Resolve(fs FS) ([]byte, error)
	fmt.Stringer

	contentRef()
}

// InlineBytes is content carried directly by the manifest.
type InlineBytes []byte

// Resolve returns the bytes unchanged.
func (b InlineBytes) Resolve(FS) ([]byte, error) {
	return []byte(b), nil
}

func (b InlineBytes) String() string {
	return fmt.Sprintf("inline(%d bytes)", len(b))
}

func (InlineBytes) contentRef() {}

// SourcePath is content read from an absolute path on disk.
type SourcePath string

// Resolve reads the file through fs.
func (p SourcePath) Resolve(fs FS) ([]byte, error) {
	return fs.ReadFile(string(p))
}

func (p SourcePath) String() string {
	return string(p)
}

func (SourcePath) contentRef() {}
