package executor

import (
	"context"
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/akabei/pkg/errors"
	"github.com/arthur-debert/akabei/pkg/filesystem"
	"github.com/arthur-debert/akabei/pkg/logging"
	"github.com/arthur-debert/akabei/pkg/reconcile"
	"github.com/arthur-debert/akabei/pkg/types"
	"github.com/rs/zerolog"
)

const dirPerm = 0755

// Options contains configuration for the executor
type Options struct {
	// FS receives every filesystem operation. Defaults to the OS.
	FS types.FS
	// Runner spawns hooks. Defaults to an ExecRunner with inherited stdio.
	Runner HookRunner
	// HomeDir is the working directory of every hook
	HomeDir string
	DryRun  bool
	// Logger defaults to the "executor" component logger
	Logger *zerolog.Logger
}

// Executor applies plans
type Executor struct {
	fs      types.FS
	runner  HookRunner
	homeDir string
	dryRun  bool
	logger  zerolog.Logger
}

// New creates a new executor instance
func New(opts Options) *Executor {
	logger := logging.GetLogger("executor")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	runner := opts.Runner
	if runner == nil {
		runner = NewExecRunner()
	}

	return &Executor{
		fs:      fs,
		runner:  runner,
		homeDir: opts.HomeDir,
		dryRun:  opts.DryRun,
		logger:  logger.With().Bool("dry_run", opts.DryRun).Logger(),
	}
}

// Apply runs the seven phases over plan. The report holds every step up
// to and including a failing one.
func (e *Executor) Apply(ctx context.Context, plan reconcile.Plan) (*Report, error) {
	report := &Report{DryRun: e.dryRun}
	removed := make(map[string]bool)

	// 1. pre_remove
	for _, entry := range plan.Entries {
		if entry.Before == nil {
			continue
		}
		if err := e.runHooks(ctx, report, PhasePreRemove, entry.Name, entry.Before.Hooks.PreRemove); err != nil {
			return report, err
		}
	}

	// 2. remove the old definition
	for _, entry := range plan.Entries {
		if entry.Before == nil {
			continue
		}
		for _, path := range entry.Before.Paths() {
			removed[path] = true
			if err := e.remove(report, PhaseRemove, entry.Name, path); err != nil {
				return report, err
			}
		}
	}

	// 3. orphans
	for _, path := range plan.Orphans {
		e.logger.Warn().Str("phase", string(PhaseOrphan)).Str("path", path).Bool("removed", removed[path]).Msg("orphan")
		if removed[path] {
			report.add(Step{Phase: PhaseOrphan, Path: path, Status: StatusSkipped})
			continue
		}
		if err := e.remove(report, PhaseOrphan, "", path); err != nil {
			return report, err
		}
	}

	// 4. post_remove
	for _, entry := range plan.Entries {
		if entry.Before == nil {
			continue
		}
		if err := e.runHooks(ctx, report, PhasePostRemove, entry.Name, entry.Before.Hooks.PostRemove); err != nil {
			return report, err
		}
	}

	// 5. pre_install
	for _, entry := range plan.Entries {
		if entry.After == nil {
			continue
		}
		if err := e.runHooks(ctx, report, PhasePreInstall, entry.Name, entry.After.Hooks.PreInstall); err != nil {
			return report, err
		}
	}

	// 6. install the new definition
	for _, entry := range plan.Entries {
		if entry.After == nil {
			continue
		}
		for _, path := range entry.After.Paths() {
			if err := e.install(report, entry.Name, path, entry.After.Files[path]); err != nil {
				return report, err
			}
		}
	}

	// 7. post_install
	for _, entry := range plan.Entries {
		if entry.After == nil {
			continue
		}
		if err := e.runHooks(ctx, report, PhasePostInstall, entry.Name, entry.After.Hooks.PostInstall); err != nil {
			return report, err
		}
	}

	e.logger.Info().
		Int("steps", len(report.Steps)).
		Int("done", report.Count(StatusDone)).
		Int("planned", report.Count(StatusPlanned)).
		Msg("Apply complete")
	return report, nil
}

func (e *Executor) runHooks(ctx context.Context, report *Report, phase Phase, pkg string, hooks []types.Hook) error {
	for _, hook := range hooks {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, errors.ErrHookFailed, "run cancelled")
		}

		e.logger.Info().
			Str("package", pkg).
			Str("phase", string(phase)).
			Strs("command", hook.Command).
			Msg("hook")

		step := Step{Phase: phase, Package: pkg, Command: hook.Command, Status: StatusPlanned}
		if e.dryRun {
			report.add(step)
			continue
		}

		if err := e.runner.Run(ctx, e.homeDir, hook.Command); err != nil {
			step.Status = StatusFailed
			report.add(step)
			e.logger.Error().Err(err).Str("package", pkg).Str("phase", string(phase)).Msg("hook failed")
			if !errors.IsErrorCode(err, errors.ErrHookFailed) {
				return errors.Wrapf(err, errors.ErrHookFailed, "%s hook of %q failed", phase, pkg).
					WithDetail("package", pkg).
					WithDetail("phase", string(phase))
			}
			return err
		}
		step.Status = StatusDone
		report.add(step)
	}
	return nil
}

func (e *Executor) remove(report *Report, phase Phase, pkg, path string) error {
	log := e.logger.Info().Str("phase", string(phase)).Str("path", path)
	if pkg != "" {
		log = log.Str("package", pkg)
	}

	step := Step{Phase: phase, Package: pkg, Path: path}

	if _, err := e.fs.Stat(path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			log.Msg("remove (already gone)")
			step.Status = StatusNoop
			report.add(step)
			return nil
		}
		return ioFailure(err, "cannot stat", path)
	}

	log.Msg("remove")
	if e.dryRun {
		step.Status = StatusPlanned
		report.add(step)
		return nil
	}

	if err := e.fs.Remove(path); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return ioFailure(err, "cannot remove", path)
	}
	step.Status = StatusDone
	report.add(step)
	return nil
}

func (e *Executor) install(report *Report, pkg, path string, record types.FileRecord) error {
	e.logger.Info().
		Str("package", pkg).
		Str("phase", string(PhaseInstall)).
		Str("path", path).
		Str("mode", record.Mode.String()).
		Str("sha1", record.Digest.Short()).
		Msg("install")

	step := Step{Phase: PhaseInstall, Package: pkg, Path: path, Mode: record.Mode, Status: StatusPlanned}
	if e.dryRun {
		report.add(step)
		return nil
	}

	if err := e.fs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return ioFailure(err, "cannot create parent directory of", path)
	}
	if err := e.fs.WriteFile(path, record.Content, record.Mode.Perm()); err != nil {
		return ioFailure(err, "cannot write", path)
	}
	// WriteFile leaves the mode of an existing file alone and is subject
	// to the umask, so the mode is always set explicitly.
	if err := e.fs.Chmod(path, record.Mode.Perm()); err != nil {
		return ioFailure(err, "cannot chmod", path)
	}

	step.Status = StatusDone
	report.add(step)
	return nil
}

func ioFailure(err error, action, path string) error {
	return errors.Wrapf(err, errors.ErrIoFailure, "%s %s", action, path).
		WithDetail("path", path)
}
