package manifest

import (
	"sort"

	"github.com/arthur-debert/akabei/pkg/errors"
	"github.com/arthur-debert/akabei/pkg/types"
)

// Catalog is the set of loaded packages. It implements types.Provider.
type Catalog struct {
	packages map[string]types.Package
	sources  map[string]string
}

var _ types.Provider = (*Catalog)(nil)

func newCatalog() *Catalog {
	return &Catalog{
		packages: make(map[string]types.Package),
		sources:  make(map[string]string),
	}
}

func (c *Catalog) add(pkg types.Package, manifestPath string) {
	c.packages[pkg.Name] = pkg
	c.sources[pkg.Name] = manifestPath
}

// Resolve returns a copy of the named package.
func (c *Catalog) Resolve(name string) (types.Package, error) {
	pkg, ok := c.packages[name]
	if !ok {
		return types.Package{}, errors.Newf(errors.ErrUnknownPackage, "missing package `%s`", name).
			WithDetail("package", name)
	}
	return pkg.Clone(), nil
}

// Names returns every known package name, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.packages))
	for name := range c.packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Source returns the manifest a package was loaded from.
func (c *Catalog) Source(name string) (string, bool) {
	path, ok := c.sources[name]
	return path, ok
}
