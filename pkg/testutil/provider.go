// pkg/testutil/provider.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Fixed package provider

package testutil

import (
	"sort"

	"github.com/arthur-debert/akabei/pkg/errors"
	"github.com/arthur-debert/akabei/pkg/types"
)

// StaticProvider resolves names from a fixed set of packages
type StaticProvider struct {
	packages map[string]types.Package
}

var _ types.Provider = (*StaticProvider)(nil)

// NewStaticProvider returns a provider for packages
func NewStaticProvider(packages ...types.Package) *StaticProvider {
	p := &StaticProvider{packages: make(map[string]types.Package)}
	for _, pkg := range packages {
		p.Set(pkg)
	}
	return p
}

// Set adds or replaces a package
func (p *StaticProvider) Set(pkg types.Package) {
	p.packages[pkg.Name] = pkg
}

// Delete forgets a package
func (p *StaticProvider) Delete(name string) {
	delete(p.packages, name)
}

// Resolve implements types.Provider
func (p *StaticProvider) Resolve(name string) (types.Package, error) {
	pkg, ok := p.packages[name]
	if !ok {
		return types.Package{}, errors.Newf(errors.ErrUnknownPackage, "missing package `%s`", name).
			WithDetail("package", name)
	}
	return pkg.Clone(), nil
}

// Names implements types.Provider
func (p *StaticProvider) Names() []string {
	names := make([]string, 0, len(p.packages))
	for name := range p.packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
