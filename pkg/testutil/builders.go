// pkg/testutil/builders.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Declarative builders for packages and states

package testutil

import (
	"github.com/arthur-debert/akabei/pkg/types"
)

// PackageBuilder builds types.Package values for tests
type PackageBuilder struct {
	pkg types.Package
}

// NewPackage starts a package named name
func NewPackage(name string) *PackageBuilder {
	return &PackageBuilder{pkg: types.NewPackage(name)}
}

// File adds a desired file with content and mode
func (b *PackageBuilder) File(path, content string, mode types.Mode) *PackageBuilder {
	b.pkg.Files[path] = types.NewFileRecord([]byte(content), mode)
	return b
}

// PreInstall appends a pre_install hook
func (b *PackageBuilder) PreInstall(argv ...string) *PackageBuilder {
	b.pkg.Hooks.PreInstall = append(b.pkg.Hooks.PreInstall, types.Hook{Command: argv})
	return b
}

// PostInstall appends a post_install hook
func (b *PackageBuilder) PostInstall(argv ...string) *PackageBuilder {
	b.pkg.Hooks.PostInstall = append(b.pkg.Hooks.PostInstall, types.Hook{Command: argv})
	return b
}

// PreRemove appends a pre_remove hook
func (b *PackageBuilder) PreRemove(argv ...string) *PackageBuilder {
	b.pkg.Hooks.PreRemove = append(b.pkg.Hooks.PreRemove, types.Hook{Command: argv})
	return b
}

// PostRemove appends a post_remove hook
func (b *PackageBuilder) PostRemove(argv ...string) *PackageBuilder {
	b.pkg.Hooks.PostRemove = append(b.pkg.Hooks.PostRemove, types.Hook{Command: argv})
	return b
}

// Build returns a copy of the package
func (b *PackageBuilder) Build() types.Package {
	return b.pkg.Clone()
}

// Recorded returns the package as a state snapshot would hold it
func (b *PackageBuilder) Recorded() types.Package {
	return b.pkg.WithoutContent()
}
