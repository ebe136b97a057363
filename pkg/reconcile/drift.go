package reconcile

import (
	stderrors "errors"
	"io/fs"
	"sort"

	"github.com/arthur-debert/akabei/pkg/digest"
	"github.com/arthur-debert/akabei/pkg/errors"
	"github.com/arthur-debert/akabei/pkg/logging"
	"github.com/arthur-debert/akabei/pkg/types"
)

// DriftKind classifies a difference between a record and the disk
type DriftKind string

const (
	DriftMissing DriftKind = "missing"
	DriftDigest  DriftKind = "digest"
	DriftMode    DriftKind = "mode"
)

// Drift is one observed difference. Expected and Actual are empty for
// missing files.
type Drift struct {
	Package  string    `json:"package"`
	Path     string    `json:"path"`
	Kind     DriftKind `json:"kind"`
	Expected string    `json:"expected,omitempty"`
	Actual   string    `json:"actual,omitempty"`
}

// DriftChecker reconciles recorded state with the filesystem
type DriftChecker struct {
	fs types.FS
}

// NewDriftChecker returns a checker reading through fs
func NewDriftChecker(fs types.FS) *DriftChecker {
	return &DriftChecker{fs: fs}
}

// Check returns a copy of prev in which every record matches the disk:
// missing files are dropped and changed files carry their live digest
// and mode. prev itself is not modified. Drift is reported, never an error.
func (c *DriftChecker) Check(prev types.State) (types.State, []Drift, error) {
	logger := logging.GetLogger("reconcile.drift")
	state := prev.Clone()
	var drifts []Drift

	for i := range state.Packages {
		pkg := &state.Packages[i]
		for _, path := range pkg.Paths() {
			record := pkg.Files[path]
			fileLog := logger.With().Str("package", pkg.Name).Str("path", path).Logger()

			info, err := c.fs.Stat(path)
			if err != nil {
				if stderrors.Is(err, fs.ErrNotExist) {
					fileLog.Warn().Msg("missing")
					drifts = append(drifts, Drift{Package: pkg.Name, Path: path, Kind: DriftMissing})
					delete(pkg.Files, path)
					continue
				}
				return types.State{}, nil, errors.Wrapf(err, errors.ErrIoFailure, "cannot stat %s", path).
					WithDetail("path", path)
			}

			content, err := c.fs.ReadFile(path)
			if err != nil {
				return types.State{}, nil, errors.Wrapf(err, errors.ErrIoFailure, "cannot read %s", path).
					WithDetail("path", path)
			}
			actualDigest := digest.Of(content)
			actualMode := types.ModeOf(info.Mode())

			if actualDigest != record.Digest {
				fileLog.Warn().
					Str("expected.sha1", record.Digest.String()).
					Str("actual.sha1", actualDigest.String()).
					Msg("digest drift")
				drifts = append(drifts, Drift{
					Package:  pkg.Name,
					Path:     path,
					Kind:     DriftDigest,
					Expected: record.Digest.String(),
					Actual:   actualDigest.String(),
				})
			}
			if actualMode != record.Mode {
				fileLog.Warn().
					Str("expected.mode", record.Mode.String()).
					Str("actual.mode", actualMode.String()).
					Msg("mode drift")
				drifts = append(drifts, Drift{
					Package:  pkg.Name,
					Path:     path,
					Kind:     DriftMode,
					Expected: record.Mode.String(),
					Actual:   actualMode.String(),
				})
			}

			record.Digest = actualDigest
			record.Mode = actualMode
			pkg.Files[path] = record
		}
	}

	logger.Debug().Int("drifts", len(drifts)).Msg("Drift check complete")
	return state, drifts, nil
}

// Unmanaged lists desired targets that exist on disk but are not recorded
// in prev. Installing will overwrite them.
func (c *DriftChecker) Unmanaged(prev, desired types.State) ([]string, error) {
	recorded := prev.Targets()
	var unmanaged []string
	for path, owner := range desired.Targets() {
		if _, ok := recorded[path]; ok {
			continue
		}
		_, err := c.fs.Stat(path)
		if err == nil {
			logger := logging.GetLogger("reconcile.drift")
			logger.Warn().
				Str("package", owner).
				Str("path", path).
				Msg("unmanaged file will be overwritten")
			unmanaged = append(unmanaged, path)
			continue
		}
		if !stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, errors.ErrIoFailure, "cannot stat %s", path).
				WithDetail("path", path)
		}
	}
	sort.Strings(unmanaged)
	return unmanaged, nil
}
