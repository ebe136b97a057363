package core

import (
	"context"

	"github.com/arthur-debert/akabei/pkg/executor"
	"github.com/arthur-debert/akabei/pkg/filesystem"
	"github.com/arthur-debert/akabei/pkg/logging"
	"github.com/arthur-debert/akabei/pkg/manifest"
	"github.com/arthur-debert/akabei/pkg/paths"
	"github.com/arthur-debert/akabei/pkg/reconcile"
	"github.com/arthur-debert/akabei/pkg/statestore"
	"github.com/arthur-debert/akabei/pkg/types"
	"github.com/spf13/afero"
)

// Options contains options for a reconciliation run
type Options struct {
	Paths paths.Paths

	// Install and Remove adjust the installed package set
	Install []string
	Remove  []string

	// DryRun plans and logs without mutating anything
	DryRun bool

	// Afero backs manifest discovery and FS. Defaults to the OS.
	Afero afero.Fs
	// FS overrides the filesystem port built from Afero
	FS types.FS
	// Provider overrides manifest loading
	Provider types.Provider
	// ManifestNames overrides the manifest file names searched for
	ManifestNames []string
	// Runner spawns hooks. Defaults to inherited stdio processes.
	Runner executor.HookRunner
	// Lock guards an applying run with the state lock file. Dry runs
	// never take it and leave the data directory untouched.
	Lock bool
}

// Result describes a finished run
type Result struct {
	DryRun bool

	// Previous is the recorded state after drift reconciliation
	Previous types.State
	Desired  types.State

	Drifts    []reconcile.Drift
	Unmanaged []string
	Plan      reconcile.Plan
	Report    *executor.Report

	// Saved reports whether the state snapshot was written
	Saved bool
}

func (o *Options) defaults() {
	if o.Afero == nil {
		o.Afero = afero.NewOsFs()
	}
	if o.FS == nil {
		o.FS = filesystem.NewAferoFS(o.Afero)
	}
}

func (o Options) provider() (types.Provider, error) {
	if o.Provider != nil {
		return o.Provider, nil
	}
	var opts []manifest.Option
	if len(o.ManifestNames) > 0 {
		opts = append(opts, manifest.WithNames(o.ManifestNames...))
	}
	catalog, err := manifest.NewLoader(o.Afero, o.Paths, opts...).LoadAll()
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// Reconcile runs the full pipeline. On error the returned Result holds
// whatever was computed before the failure and may be nil.
func Reconcile(ctx context.Context, opts Options) (*Result, error) {
	opts.defaults()
	logger := logging.GetLogger("core.reconcile")
	done := logging.LogOperationStart(logger, "reconcile")
	defer done()

	logger.Info().
		Str("manifests", opts.Paths.ManifestRoot()).
		Str("state", opts.Paths.StatePath()).
		Strs("install", opts.Install).
		Strs("remove", opts.Remove).
		Bool("dry_run", opts.DryRun).
		Msg("Starting reconciliation")

	if opts.Lock && !opts.DryRun {
		lock, err := statestore.AcquireLock(opts.Paths.LockPath())
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn().Err(err).Msg("Failed to release state lock")
			}
		}()
	}

	store := statestore.New(opts.FS, opts.Paths.StatePath())
	recorded, err := store.Load()
	if err != nil {
		return nil, err
	}

	result := &Result{DryRun: opts.DryRun}
	checker := reconcile.NewDriftChecker(opts.FS)
	result.Previous, result.Drifts, err = checker.Check(recorded)
	if err != nil {
		return result, err
	}

	provider, err := opts.provider()
	if err != nil {
		return result, err
	}

	result.Desired, err = reconcile.BuildDesired(result.Previous, opts.Install, opts.Remove, provider)
	if err != nil {
		return result, err
	}

	result.Unmanaged, err = checker.Unmanaged(result.Previous, result.Desired)
	if err != nil {
		return result, err
	}

	result.Plan = reconcile.Diff(result.Previous, result.Desired)
	logger.Info().
		Int("install", result.Plan.Count(reconcile.Install)).
		Int("upgrade", result.Plan.Count(reconcile.Upgrade)).
		Int("remove", result.Plan.Count(reconcile.Remove)).
		Int("orphans", len(result.Plan.Orphans)).
		Msg("Plan computed")

	applier := executor.New(executor.Options{
		FS:      opts.FS,
		Runner:  opts.Runner,
		HomeDir: opts.Paths.HomeDir(),
		DryRun:  opts.DryRun,
	})
	result.Report, err = applier.Apply(ctx, result.Plan)
	if err != nil {
		return result, err
	}

	if opts.DryRun {
		logger.Info().Msg("Dry run, state not saved")
		return result, nil
	}

	if err := store.Save(result.Desired); err != nil {
		return result, err
	}
	result.Saved = true
	return result, nil
}
