// pkg/manifest/loader_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Memory filesystem (afero)
// PURPOSE: Test manifest discovery, decoding, resolution and validation

package manifest_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/akabei/pkg/digest"
	"github.com/arthur-debert/akabei/pkg/errors"
	"github.com/arthur-debert/akabei/pkg/manifest"
	"github.com/arthur-debert/akabei/pkg/paths"
	"github.com/arthur-debert/akabei/pkg/template"
	"github.com/arthur-debert/akabei/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	home = "/home/u"
	root = "/m"
)

func setup(t *testing.T, files map[string]string) (*manifest.Loader, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(root, 0755))
	for path, content := range files {
		full := filepath.Join(root, path)
		require.NoError(t, fs.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, afero.WriteFile(fs, full, []byte(content), 0644))
	}

	p, err := paths.New(paths.Options{Home: home, ManifestRoot: root, StatePath: "/data/akabei.json"})
	require.NoError(t, err)

	data := template.Data{Env: map[string]string{"EDITOR": "vim"}, UID: 1000, Home: home, User: "u"}
	return manifest.NewLoader(fs, p, manifest.WithTemplateData(data)), fs
}

func loadErr(t *testing.T, files map[string]string) error {
	t.Helper()
	loader, _ := setup(t, files)
	_, err := loader.LoadAll()
	require.Error(t, err)
	return err
}

func TestDiscover(t *testing.T) {
	loader, _ := setup(t, map[string]string{
		"tmux/akabei.toml":      `name = "tmux"`,
		"git/akabei.yaml":       "name: git\n",
		"deep/a/b/akabei.yml":   "name: deep\n",
		"tmux/README.md":        "not a manifest",
		".git/akabei.toml":      `name = "ignored"`,
		"other/akabei.toml.bak": `name = "nope"`,
	})

	found, err := loader.Discover()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/m/deep/a/b/akabei.yml",
		"/m/git/akabei.yaml",
		"/m/tmux/akabei.toml",
	}, found)
}

func TestDiscover_CustomNames(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/m/a", 0755))
	require.NoError(t, fs.MkdirAll("/m/b", 0755))
	require.NoError(t, afero.WriteFile(fs, "/m/a/pkg.toml", []byte(`name = "a"`), 0644))
	require.NoError(t, afero.WriteFile(fs, "/m/b/akabei.toml", []byte(`name = "b"`), 0644))
	p, err := paths.New(paths.Options{Home: home, ManifestRoot: root})
	require.NoError(t, err)

	found, err := manifest.NewLoader(fs, p, manifest.WithNames("pkg.toml")).Discover()
	require.NoError(t, err)
	assert.Equal(t, []string{"/m/a/pkg.toml"}, found)
}

func TestDiscover_MissingRoot(t *testing.T) {
	p, err := paths.New(paths.Options{Home: home, ManifestRoot: "/nowhere"})
	require.NoError(t, err)

	_, err = manifest.NewLoader(afero.NewMemMapFs(), p).Discover()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestUnreadable))
}

func TestLoadAll_TOML(t *testing.T) {
	loader, _ := setup(t, map[string]string{
		"tmux/akabei.toml": `
name = "tmux"

[[files]]
source = "tmux.conf"
target = ".config/tmux/tmux.conf"

[[files]]
source = "bin/tmux-session"
target = "/home/u/.local/bin/tmux-session"
mode = "755"

[[files]]
content = "set -g mouse on"
target = ".tmux.local"
mode = "600"

[[hooks.post_install]]
command = ["tmux", "source-file", "~/.config/tmux/tmux.conf"]

[[hooks.pre_remove]]
command = "tmux kill-server || true"
`,
		"tmux/tmux.conf":        "set -g prefix C-a\n",
		"tmux/bin/tmux-session": "#!/bin/sh\n",
	})

	catalog, err := loader.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"tmux"}, catalog.Names())

	src, ok := catalog.Source("tmux")
	require.True(t, ok)
	assert.Equal(t, "/m/tmux/akabei.toml", src)

	pkg, err := catalog.Resolve("tmux")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/home/u/.config/tmux/tmux.conf",
		"/home/u/.local/bin/tmux-session",
		"/home/u/.tmux.local",
	}, pkg.Paths())

	conf := pkg.Files["/home/u/.config/tmux/tmux.conf"]
	assert.Equal(t, types.DefaultMode, conf.Mode)
	assert.Equal(t, digest.Of([]byte("set -g prefix C-a\n")), conf.Digest)
	assert.Equal(t, []byte("set -g prefix C-a\n"), conf.Content)

	assert.Equal(t, types.Mode(0o755), pkg.Files["/home/u/.local/bin/tmux-session"].Mode)
	assert.Equal(t, types.Mode(0o600), pkg.Files["/home/u/.tmux.local"].Mode)
	assert.Equal(t, []byte("set -g mouse on"), pkg.Files["/home/u/.tmux.local"].Content)

	require.Len(t, pkg.Hooks.PostInstall, 1)
	assert.Equal(t, []string{"tmux", "source-file", "~/.config/tmux/tmux.conf"}, pkg.Hooks.PostInstall[0].Command)
	require.Len(t, pkg.Hooks.PreRemove, 1)
	assert.Equal(t, []string{"sh", "-c", "tmux kill-server || true"}, pkg.Hooks.PreRemove[0].Command)
}

func TestLoadAll_YAML(t *testing.T) {
	loader, _ := setup(t, map[string]string{
		"git/akabei.yaml": `
name: git
files:
  - source: gitconfig
    target: .gitconfig
    mode: "100644"
hooks:
  post_install:
    - command: git config --global --get user.name
`,
		"git/gitconfig": "[user]\n",
	})

	catalog, err := loader.LoadAll()
	require.NoError(t, err)

	pkg, err := catalog.Resolve("git")
	require.NoError(t, err)
	assert.Equal(t, types.Mode(0o644), pkg.Files["/home/u/.gitconfig"].Mode)
	assert.Equal(t, []string{"sh", "-c", "git config --global --get user.name"}, pkg.Hooks.PostInstall[0].Command)
}

func TestLoadAll_Template(t *testing.T) {
	loader, _ := setup(t, map[string]string{
		"env/akabei.toml": `
name = "env"

[[files]]
source = "profile"
target = ".profile"
template = true
`,
		"env/profile": "export EDITOR={{ .Env.EDITOR }}\nexport XDG_RUNTIME_DIR=/run/user/{{ .UID }}",
	})

	catalog, err := loader.LoadAll()
	require.NoError(t, err)

	pkg, err := catalog.Resolve("env")
	require.NoError(t, err)

	want := "export EDITOR=vim\nexport XDG_RUNTIME_DIR=/run/user/1000\n"
	record := pkg.Files["/home/u/.profile"]
	assert.Equal(t, want, string(record.Content))
	assert.Equal(t, digest.Of([]byte(want)), record.Digest, "digest covers rendered bytes")
}

func TestResolve_Unknown(t *testing.T) {
	loader, _ := setup(t, map[string]string{"a/akabei.toml": `name = "a"`})
	catalog, err := loader.LoadAll()
	require.NoError(t, err)

	_, err = catalog.Resolve("tmux")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownPackage))
	assert.Contains(t, err.Error(), "missing package `tmux`")
}

func TestResolve_ReturnsCopy(t *testing.T) {
	loader, _ := setup(t, map[string]string{
		"a/akabei.toml": "name = \"a\"\n[[files]]\ncontent = \"x\"\ntarget = \".a\"\n",
	})
	catalog, err := loader.LoadAll()
	require.NoError(t, err)

	first, err := catalog.Resolve("a")
	require.NoError(t, err)
	delete(first.Files, "/home/u/.a")

	second, err := catalog.Resolve("a")
	require.NoError(t, err)
	assert.Len(t, second.Files, 1)
}

func TestLoadAll_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{
			name:  "parse_error",
			files: map[string]string{"a/akabei.toml": `name = `},
		},
		{
			name:  "unknown_key",
			files: map[string]string{"a/akabei.toml": "name = \"a\"\nversion = \"1\""},
		},
		{
			name:  "missing_name",
			files: map[string]string{"a/akabei.toml": "[[files]]\ncontent = \"x\"\ntarget = \".a\""},
		},
		{
			name:  "missing_target",
			files: map[string]string{"a/akabei.toml": "name = \"a\"\n[[files]]\ncontent = \"x\""},
		},
		{
			name:  "missing_source",
			files: map[string]string{"a/akabei.toml": "name = \"a\"\n[[files]]\ntarget = \".a\""},
		},
		{
			name:  "source_and_content",
			files: map[string]string{"a/akabei.toml": "name = \"a\"\n[[files]]\nsource = \"s\"\ncontent = \"x\"\ntarget = \".a\"", "a/s": "s"},
		},
		{
			name:  "bad_mode",
			files: map[string]string{"a/akabei.toml": "name = \"a\"\n[[files]]\ncontent = \"x\"\ntarget = \".a\"\nmode = \"rwx\""},
		},
		{
			name:  "integer_mode",
			files: map[string]string{"a/akabei.toml": "name = \"a\"\n[[files]]\ncontent = \"x\"\ntarget = \".a\"\nmode = 400"},
		},
		{
			name:  "octal_literal_mode",
			files: map[string]string{"a/akabei.toml": "name = \"a\"\n[[files]]\ncontent = \"x\"\ntarget = \".a\"\nmode = 0o600"},
		},
		{
			name:  "yaml_integer_mode",
			files: map[string]string{"a/akabei.yaml": "name: a\nfiles:\n  - content: x\n    target: .a\n    mode: 0644\n"},
		},
		{
			name:  "setuid_mode",
			files: map[string]string{"a/akabei.toml": "name = \"a\"\n[[files]]\ncontent = \"x\"\ntarget = \".a\"\nmode = \"4755\""},
		},
		{
			name:  "duplicate_target",
			files: map[string]string{"a/akabei.toml": "name = \"a\"\n[[files]]\ncontent = \"x\"\ntarget = \".a\"\n[[files]]\ncontent = \"y\"\ntarget = \"/home/u/.a\""},
		},
		{
			name:  "empty_command_list",
			files: map[string]string{"a/akabei.toml": "name = \"a\"\n[[hooks.post_install]]\ncommand = []"},
		},
		{
			name:  "blank_command_string",
			files: map[string]string{"a/akabei.toml": "name = \"a\"\n[[hooks.post_install]]\ncommand = \"  \""},
		},
		{
			name:  "shell_syntax_error",
			files: map[string]string{"a/akabei.toml": "name = \"a\"\n[[hooks.post_install]]\ncommand = \"if then fi (\""},
		},
		{
			name:  "non_string_argument",
			files: map[string]string{"a/akabei.toml": "name = \"a\"\n[[hooks.post_install]]\ncommand = [\"echo\", 1]"},
		},
		{
			name: "duplicate_package_name",
			files: map[string]string{
				"a/akabei.toml": `name = "same"`,
				"b/akabei.toml": `name = "same"`,
			},
		},
		{
			name:  "bad_template",
			files: map[string]string{"a/akabei.toml": "name = \"a\"\n[[files]]\nsource = \"t\"\ntarget = \".a\"\ntemplate = true", "a/t": "{{ .Env.MISSING }}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := loadErr(t, tt.files)
			assert.True(t, errors.IsErrorCode(err, errors.ErrManifestInvalid), "got %v", err)
		})
	}
}

func TestLoadAll_IntegerModeMessage(t *testing.T) {
	err := loadErr(t, map[string]string{
		"a/akabei.toml": "name = \"a\"\n[[files]]\ncontent = \"x\"\ntarget = \".a\"\nmode = 400",
	})
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestInvalid))
	assert.Contains(t, err.Error(), "mode must be an octal string")
}

func TestLoadAll_UnreadableSource(t *testing.T) {
	err := loadErr(t, map[string]string{
		"a/akabei.toml": "name = \"a\"\n[[files]]\nsource = \"missing.conf\"\ntarget = \".a\"",
	})
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestUnreadable), "got %v", err)
	assert.Equal(t, "/m/a/akabei.toml", errors.GetErrorDetails(err)["manifest"])
}
