// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: In-memory environment with home, manifests and state

package testutil

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/akabei/pkg/digest"
	"github.com/arthur-debert/akabei/pkg/filesystem"
	"github.com/arthur-debert/akabei/pkg/paths"
	"github.com/arthur-debert/akabei/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixed locations of a memory environment
const (
	HomeDir      = "/home/test"
	ManifestRoot = "/manifests"
	StatePath    = "/data/akabei.json"
)

// Env is a complete in-memory environment
type Env struct {
	Afero afero.Fs
	FS    types.FS
	Paths paths.Paths

	t *testing.T
}

// NewMemoryEnv creates an empty environment with the home directory and
// manifest root in place
func NewMemoryEnv(t *testing.T) *Env {
	t.Helper()

	afs := afero.NewMemMapFs()
	require.NoError(t, afs.MkdirAll(HomeDir, 0755))
	require.NoError(t, afs.MkdirAll(ManifestRoot, 0755))

	p, err := paths.New(paths.Options{
		Home:         HomeDir,
		ManifestRoot: ManifestRoot,
		StatePath:    StatePath,
	})
	require.NoError(t, err)

	return &Env{
		Afero: afs,
		FS:    filesystem.NewAferoFS(afs),
		Paths: p,
		t:     t,
	}
}

// Home joins rel onto the home directory
func (e *Env) Home(rel string) string {
	return filepath.Join(HomeDir, rel)
}

// WriteFile creates path with content and mode, making parents
func (e *Env) WriteFile(path, content string, mode fs.FileMode) {
	e.t.Helper()
	require.NoError(e.t, e.FS.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(e.t, e.FS.WriteFile(path, []byte(content), mode))
	require.NoError(e.t, e.FS.Chmod(path, mode))
}

// WriteManifest writes files below the manifest directory dir. The map
// is keyed by file name relative to dir.
func (e *Env) WriteManifest(dir string, files map[string]string) {
	e.t.Helper()
	for name, content := range files {
		e.WriteFile(filepath.Join(ManifestRoot, dir, name), content, 0644)
	}
}

// Exists reports whether path exists
func (e *Env) Exists(path string) bool {
	_, err := e.FS.Stat(path)
	return err == nil
}

// AssertFile checks path has exactly content and mode
func (e *Env) AssertFile(path, content string, mode fs.FileMode) {
	e.t.Helper()
	got, err := e.FS.ReadFile(path)
	if !assert.NoError(e.t, err, "file %s should exist", path) {
		return
	}
	assert.Equal(e.t, content, string(got), "content of %s", path)

	info, err := e.FS.Stat(path)
	require.NoError(e.t, err)
	assert.Equal(e.t, mode, info.Mode().Perm(), "mode of %s", path)
}

// AssertMissing checks path does not exist
func (e *Env) AssertMissing(path string) {
	e.t.Helper()
	assert.False(e.t, e.Exists(path), "%s should not exist", path)
}

// Snapshot returns the digest and mode of every regular file below root,
// keyed by path. Used to prove a run left the disk untouched.
func (e *Env) Snapshot(root string) map[string]types.FileEntry {
	e.t.Helper()
	out := make(map[string]types.FileEntry)
	err := afero.Walk(e.Afero, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		content, err := afero.ReadFile(e.Afero, path)
		if err != nil {
			return err
		}
		out[path] = types.FileEntry{Path: path, Digest: digest.Of(content), Mode: types.ModeOf(info.Mode())}
		return nil
	})
	require.NoError(e.t, err)
	return out
}
