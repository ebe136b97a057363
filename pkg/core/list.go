package core

import (
	"sort"

	"github.com/arthur-debert/akabei/pkg/statestore"
)

// PackageInfo summarizes one package for listing
type PackageInfo struct {
	Name      string `json:"name"`
	Installed bool   `json:"installed"`
	Available bool   `json:"available"`
	Files     int    `json:"files"`
	Hooks     int    `json:"hooks"`
	Manifest  string `json:"manifest,omitempty"`
}

// sourcer is implemented by providers that know where a package came from
type sourcer interface {
	Source(name string) (string, bool)
}

// List reports installed packages from the state snapshot together with
// every package the manifests provide. It never writes.
func List(opts Options) ([]PackageInfo, error) {
	opts.defaults()

	state, err := statestore.New(opts.FS, opts.Paths.StatePath()).Load()
	if err != nil {
		return nil, err
	}
	provider, err := opts.provider()
	if err != nil {
		return nil, err
	}

	infos := make(map[string]*PackageInfo)
	for _, pkg := range state.Packages {
		infos[pkg.Name] = &PackageInfo{
			Name:      pkg.Name,
			Installed: true,
			Files:     len(pkg.Files),
			Hooks:     pkg.Hooks.Len(),
		}
	}
	for _, name := range provider.Names() {
		info, ok := infos[name]
		if !ok {
			info = &PackageInfo{Name: name}
			infos[name] = info
		}
		info.Available = true
		if pkg, err := provider.Resolve(name); err == nil && !info.Installed {
			info.Files = len(pkg.Files)
			info.Hooks = pkg.Hooks.Len()
		}
		if src, ok := provider.(sourcer); ok {
			info.Manifest, _ = src.Source(name)
		}
	}

	out := make([]PackageInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, *info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
