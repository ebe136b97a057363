package types

import "github.com/arthur-debert/akabei/pkg/digest"

// FileRecord is one managed file. Digest and Mode identify it for diffing;
// Content is only populated in a desired state and is never persisted.
type FileRecord struct {
	Digest  digest.Digest `json:"sha1"`
	Mode    Mode          `json:"mode"`
	Content []byte        `json:"-"`
}

// NewFileRecord builds a desired-state record, computing the digest from
// the content it will write.
func NewFileRecord(content []byte, mode Mode) FileRecord {
	return FileRecord{
		Digest:  digest.Of(content),
		Mode:    mode,
		Content: content,
	}
}

// Same reports whether r and other describe identical file state.
func (r FileRecord) Same(other FileRecord) bool {
	return r.Digest == other.Digest && r.Mode == other.Mode
}

// FileEntry is a (path, digest, mode) triple, the unit of comparison when
// deciding whether a package changed.
type FileEntry struct {
	Path   string
	Digest digest.Digest
	Mode   Mode
}
