package reconcile

import (
	"sort"

	"github.com/arthur-debert/akabei/pkg/errors"
	"github.com/arthur-debert/akabei/pkg/logging"
	"github.com/arthur-debert/akabei/pkg/types"
)

// BuildDesired computes the state the run should end in: every installed
// package, plus install, minus remove, each freshly resolved through
// provider. A name in both install and remove is removed.
func BuildDesired(prev types.State, install, remove []string, provider types.Provider) (types.State, error) {
	logger := logging.GetLogger("reconcile.desired")

	names := make(map[string]bool)
	for _, name := range prev.Names() {
		names[name] = true
	}
	for _, name := range install {
		names[name] = true
	}

	known := make(map[string]bool)
	for _, name := range provider.Names() {
		known[name] = true
	}
	for _, name := range remove {
		if !names[name] && !known[name] {
			return types.State{}, errors.Newf(errors.ErrUnknownPackage, "missing package `%s`", name).
				WithDetail("package", name)
		}
		delete(names, name)
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)
	logger.Info().Strs("packages", sorted).Msg("Desired packages")

	packages := make([]types.Package, 0, len(sorted))
	for _, name := range sorted {
		pkg, err := provider.Resolve(name)
		if err != nil {
			if errors.IsErrorCode(err, errors.ErrUnknownPackage) {
				return types.State{}, err
			}
			return types.State{}, errors.Wrapf(err, errors.GetErrorCode(err), "cannot resolve package %q", name).
				WithDetail("package", name)
		}
		packages = append(packages, pkg)
	}

	desired := types.NewState(packages...)
	if err := desired.Validate(); err != nil {
		return types.State{}, err
	}
	return desired, nil
}
