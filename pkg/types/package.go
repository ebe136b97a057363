package types

import "sort"

// Package is a named, versionless bundle of managed files and hooks.
// Files is keyed by absolute target path.
type Package struct {
	Name  string                `json:"name"`
	Files map[string]FileRecord `json:"files"`
	Hooks Hooks                 `json:"hooks"`
}

// NewPackage returns an empty package named name.
func NewPackage(name string) Package {
	return Package{Name: name, Files: make(map[string]FileRecord)}
}

// Paths returns the package's target paths in sorted order.
func (p Package) Paths() []string {
	paths := make([]string, 0, len(p.Files))
	for path := range p.Files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Entries returns the sorted (path, digest, mode) sequence of the package.
func (p Package) Entries() []FileEntry {
	entries := make([]FileEntry, 0, len(p.Files))
	for _, path := range p.Paths() {
		record := p.Files[path]
		entries = append(entries, FileEntry{Path: path, Digest: record.Digest, Mode: record.Mode})
	}
	return entries
}

// Clone deep copies the package. Content slices are shared; they are
// never mutated after construction.
func (p Package) Clone() Package {
	files := make(map[string]FileRecord, len(p.Files))
	for path, record := range p.Files {
		files[path] = record
	}
	return Package{Name: p.Name, Files: files, Hooks: p.Hooks.Clone()}
}

// WithoutContent returns a copy suitable for persisting.
func (p Package) WithoutContent() Package {
	out := p.Clone()
	for path, record := range out.Files {
		record.Content = nil
		out.Files[path] = record
	}
	return out
}
