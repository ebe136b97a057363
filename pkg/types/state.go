package types

import (
	"sort"

	"github.com/arthur-debert/akabei/pkg/errors"
)

// State is the full set of installed packages, persisted between runs.
type State struct {
	Packages []Package `json:"packages"`
}

// NewState builds a state from packages, sorted by name.
func NewState(packages ...Package) State {
	s := State{Packages: append([]Package(nil), packages...)}
	s.Sort()
	return s
}

// Sort orders packages by name.
func (s *State) Sort() {
	sort.SliceStable(s.Packages, func(i, j int) bool {
		return s.Packages[i].Name < s.Packages[j].Name
	})
}

// Names returns installed package names in state order.
func (s State) Names() []string {
	names := make([]string, 0, len(s.Packages))
	for _, pkg := range s.Packages {
		names = append(names, pkg.Name)
	}
	return names
}

// Find looks a package up by name.
func (s State) Find(name string) (Package, bool) {
	for _, pkg := range s.Packages {
		if pkg.Name == name {
			return pkg, true
		}
	}
	return Package{}, false
}

// Targets maps every target path to the name of the package claiming it.
// When two packages claim one path the later one wins; call Validate first
// where that matters.
func (s State) Targets() map[string]string {
	targets := make(map[string]string)
	for _, pkg := range s.Packages {
		for path := range pkg.Files {
			targets[path] = pkg.Name
		}
	}
	return targets
}

// FileCount counts records across all packages.
func (s State) FileCount() int {
	n := 0
	for _, pkg := range s.Packages {
		n += len(pkg.Files)
	}
	return n
}

// Clone deep copies the state.
func (s State) Clone() State {
	out := State{Packages: make([]Package, len(s.Packages))}
	for i, pkg := range s.Packages {
		out.Packages[i] = pkg.Clone()
	}
	return out
}

// WithoutContent returns a copy with all content bytes dropped.
func (s State) WithoutContent() State {
	out := State{Packages: make([]Package, len(s.Packages))}
	for i, pkg := range s.Packages {
		out.Packages[i] = pkg.WithoutContent()
	}
	return out
}

// Validate rejects duplicate package names and targets claimed by more
// than one package.
func (s State) Validate() error {
	seenNames := make(map[string]bool, len(s.Packages))
	owners := make(map[string]string)
	for _, pkg := range s.Packages {
		if seenNames[pkg.Name] {
			return errors.Newf(errors.ErrInvalidInput, "package %q appears twice", pkg.Name).
				WithDetail("package", pkg.Name)
		}
		seenNames[pkg.Name] = true

		for _, path := range pkg.Paths() {
			if owner, ok := owners[path]; ok {
				return errors.Newf(errors.ErrConflictingTarget,
					"target %s is claimed by both %q and %q", path, owner, pkg.Name).
					WithDetail("path", path).
					WithDetail("packages", []string{owner, pkg.Name})
			}
			owners[path] = pkg.Name
		}
	}
	return nil
}
