// pkg/reconcile/desired_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Static provider
// PURPOSE: Test desired state construction from installed, install and remove sets

package reconcile_test

import (
	"testing"

	"github.com/arthur-debert/akabei/pkg/errors"
	"github.com/arthur-debert/akabei/pkg/reconcile"
	"github.com/arthur-debert/akabei/pkg/testutil"
	"github.com/arthur-debert/akabei/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func provider() *testutil.StaticProvider {
	return testutil.NewStaticProvider(
		testutil.NewPackage("git").File("/h/.gitconfig", "[user]", 0o644).Build(),
		testutil.NewPackage("tmux").File("/h/.tmux.conf", "set", 0o644).Build(),
		testutil.NewPackage("zsh").File("/h/.zshrc", "bindkey", 0o644).Build(),
	)
}

func TestBuildDesired(t *testing.T) {
	installed := types.NewState(
		testutil.NewPackage("git").File("/h/.gitconfig", "[old]", 0o644).Recorded(),
		testutil.NewPackage("tmux").File("/h/.tmux.conf", "set", 0o644).Recorded(),
	)

	tests := []struct {
		name    string
		install []string
		remove  []string
		want    []string
	}{
		{name: "keep_installed", want: []string{"git", "tmux"}},
		{name: "install_new", install: []string{"zsh"}, want: []string{"git", "tmux", "zsh"}},
		{name: "install_existing_is_noop", install: []string{"git"}, want: []string{"git", "tmux"}},
		{name: "remove_installed", remove: []string{"tmux"}, want: []string{"git"}},
		{name: "remove_known_uninstalled", remove: []string{"zsh"}, want: []string{"git", "tmux"}},
		{name: "remove_wins_over_install", install: []string{"zsh"}, remove: []string{"zsh"}, want: []string{"git", "tmux"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desired, err := reconcile.BuildDesired(installed, tt.install, tt.remove, provider())
			require.NoError(t, err)
			assert.Equal(t, tt.want, desired.Names())
		})
	}
}

func TestBuildDesired_ResolvesFreshDefinitions(t *testing.T) {
	installed := types.NewState(testutil.NewPackage("git").File("/h/.gitconfig", "[old]", 0o644).Recorded())

	desired, err := reconcile.BuildDesired(installed, nil, nil, provider())
	require.NoError(t, err)

	pkg, ok := desired.Find("git")
	require.True(t, ok)
	assert.Equal(t, []byte("[user]"), pkg.Files["/h/.gitconfig"].Content)
}

func TestBuildDesired_Errors(t *testing.T) {
	t.Run("installed_package_without_manifest", func(t *testing.T) {
		installed := types.NewState(testutil.NewPackage("vanished").Recorded())
		_, err := reconcile.BuildDesired(installed, nil, nil, provider())
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownPackage))
		assert.Contains(t, err.Error(), "missing package `vanished`")
	})

	t.Run("install_unknown", func(t *testing.T) {
		_, err := reconcile.BuildDesired(types.NewState(), []string{"nope"}, nil, provider())
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownPackage))
	})

	t.Run("remove_unknown", func(t *testing.T) {
		_, err := reconcile.BuildDesired(types.NewState(), nil, []string{"nope"}, provider())
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownPackage))
	})

	t.Run("removing_vanished_package_is_allowed", func(t *testing.T) {
		installed := types.NewState(testutil.NewPackage("vanished").Recorded())
		desired, err := reconcile.BuildDesired(installed, nil, []string{"vanished"}, provider())
		require.NoError(t, err)
		assert.Empty(t, desired.Packages)
	})

	t.Run("conflicting_target", func(t *testing.T) {
		p := provider()
		p.Set(testutil.NewPackage("tmux2").File("/h/.tmux.conf", "other", 0o644).Build())

		_, err := reconcile.BuildDesired(types.NewState(), []string{"tmux", "tmux2"}, nil, p)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConflictingTarget))
		assert.Equal(t, "/h/.tmux.conf", errors.GetErrorDetails(err)["path"])
	})
}
