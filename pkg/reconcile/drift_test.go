// pkg/reconcile/drift_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Memory filesystem
// PURPOSE: Test drift detection, tolerance and unmanaged file detection

package reconcile_test

import (
	"testing"

	"github.com/arthur-debert/akabei/pkg/digest"
	"github.com/arthur-debert/akabei/pkg/reconcile"
	"github.com/arthur-debert/akabei/pkg/testutil"
	"github.com/arthur-debert/akabei/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_NoDrift(t *testing.T) {
	env := testutil.NewMemoryEnv(t)
	path := env.Home(".bashrc")
	env.WriteFile(path, "alias ll='ls -l'\n", 0o644)

	prev := types.NewState(testutil.NewPackage("bash").File(path, "alias ll='ls -l'\n", 0o644).Recorded())

	got, drifts, err := reconcile.NewDriftChecker(env.FS).Check(prev)
	require.NoError(t, err)
	assert.Empty(t, drifts)
	assert.Equal(t, prev.Packages[0].Entries(), got.Packages[0].Entries())
}

func TestCheck_Missing(t *testing.T) {
	env := testutil.NewMemoryEnv(t)
	present := env.Home(".present")
	missing := env.Home(".missing")
	env.WriteFile(present, "x", 0o644)

	prev := types.NewState(testutil.NewPackage("p").File(present, "x", 0o644).File(missing, "y", 0o644).Recorded())

	got, drifts, err := reconcile.NewDriftChecker(env.FS).Check(prev)
	require.NoError(t, err)

	assert.Equal(t, []string{present}, got.Packages[0].Paths())
	assert.Equal(t, []reconcile.Drift{{Package: "p", Path: missing, Kind: reconcile.DriftMissing}}, drifts)
	assert.Len(t, prev.Packages[0].Files, 2, "input state is not modified")
}

func TestCheck_ContentAndModeDrift(t *testing.T) {
	env := testutil.NewMemoryEnv(t)
	path := env.Home(".vimrc")
	env.WriteFile(path, "edited by hand\n", 0o600)

	recorded := testutil.NewPackage("vim").File(path, "set nu\n", 0o644).Recorded()
	prev := types.NewState(recorded)

	got, drifts, err := reconcile.NewDriftChecker(env.FS).Check(prev)
	require.NoError(t, err)

	require.Len(t, drifts, 2)
	assert.Equal(t, reconcile.DriftDigest, drifts[0].Kind)
	assert.Equal(t, digest.Of([]byte("set nu\n")).String(), drifts[0].Expected)
	assert.Equal(t, digest.Of([]byte("edited by hand\n")).String(), drifts[0].Actual)
	assert.Equal(t, reconcile.DriftMode, drifts[1].Kind)
	assert.Equal(t, "644", drifts[1].Expected)
	assert.Equal(t, "600", drifts[1].Actual)

	record := got.Packages[0].Files[path]
	assert.Equal(t, digest.Of([]byte("edited by hand\n")), record.Digest, "live digest replaces the recorded one")
	assert.Equal(t, types.Mode(0o600), record.Mode)

	assert.Equal(t, recorded.Files[path].Digest, prev.Packages[0].Files[path].Digest, "input state is not modified")
}

func TestCheck_DriftTolerance(t *testing.T) {
	// A drifted file of an unchanged package is rewritten on the next run
	// because the reconciled previous state no longer matches the desired.
	env := testutil.NewMemoryEnv(t)
	path := env.Home(".vimrc")
	env.WriteFile(path, "edited\n", 0o644)

	pkg := testutil.NewPackage("vim").File(path, "set nu\n", 0o644)
	reconciled, _, err := reconcile.NewDriftChecker(env.FS).Check(types.NewState(pkg.Recorded()))
	require.NoError(t, err)

	plan := reconcile.Diff(reconciled, types.NewState(pkg.Build()))
	require.Len(t, plan.Entries, 1)
	assert.Equal(t, reconcile.Upgrade, plan.Entries[0].Disposition)
}

func TestCheck_DoesNotWrite(t *testing.T) {
	env := testutil.NewMemoryEnv(t)
	path := env.Home(".vimrc")
	env.WriteFile(path, "edited\n", 0o600)
	before := env.Snapshot(testutil.HomeDir)

	prev := types.NewState(testutil.NewPackage("vim").File(path, "set nu\n", 0o644).File(env.Home(".gone"), "", 0o644).Recorded())
	_, _, err := reconcile.NewDriftChecker(env.FS).Check(prev)
	require.NoError(t, err)

	assert.Equal(t, before, env.Snapshot(testutil.HomeDir))
}

func TestUnmanaged(t *testing.T) {
	env := testutil.NewMemoryEnv(t)
	tracked := env.Home(".tracked")
	stray := env.Home(".stray")
	absent := env.Home(".absent")
	env.WriteFile(tracked, "t", 0o644)
	env.WriteFile(stray, "s", 0o644)

	prev := types.NewState(testutil.NewPackage("a").File(tracked, "t", 0o644).Recorded())
	desired := types.NewState(
		testutil.NewPackage("a").File(tracked, "t", 0o644).Build(),
		testutil.NewPackage("b").File(stray, "new", 0o644).File(absent, "new", 0o644).Build(),
	)

	unmanaged, err := reconcile.NewDriftChecker(env.FS).Unmanaged(prev, desired)
	require.NoError(t, err)
	assert.Equal(t, []string{stray}, unmanaged)
}
