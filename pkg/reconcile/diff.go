package reconcile

import (
	"sort"

	"github.com/arthur-debert/akabei/pkg/types"
)

// Disposition is what happens to a package in a run
type Disposition string

const (
	Install Disposition = "install"
	Upgrade Disposition = "upgrade"
	Remove  Disposition = "remove"
)

// Entry is one package that changes. Before is nil for Install, After is
// nil for Remove.
type Entry struct {
	Name        string
	Disposition Disposition
	Before      *types.Package
	After       *types.Package
}

// Plan is the ordered work of a run. Entries are sorted by name and
// unchanged packages are absent.
type Plan struct {
	Entries []Entry
	Orphans []string
}

// Empty reports whether applying the plan would do nothing
func (p Plan) Empty() bool {
	return len(p.Entries) == 0 && len(p.Orphans) == 0
}

// Count returns how many entries have disposition d
func (p Plan) Count(d Disposition) int {
	n := 0
	for _, e := range p.Entries {
		if e.Disposition == d {
			n++
		}
	}
	return n
}

// Diff classifies every package of prev and desired. Orphans are previous
// targets no desired package claims.
func Diff(prev, desired types.State) Plan {
	type pair struct {
		before, after *types.Package
	}
	pairs := make(map[string]*pair)
	get := func(name string) *pair {
		p, ok := pairs[name]
		if !ok {
			p = &pair{}
			pairs[name] = p
		}
		return p
	}
	for i := range prev.Packages {
		get(prev.Packages[i].Name).before = &prev.Packages[i]
	}
	for i := range desired.Packages {
		get(desired.Packages[i].Name).after = &desired.Packages[i]
	}

	names := make([]string, 0, len(pairs))
	for name := range pairs {
		names = append(names, name)
	}
	sort.Strings(names)

	var plan Plan
	for _, name := range names {
		p := pairs[name]
		switch {
		case p.before != nil && p.after != nil:
			if sameEntries(p.before.Entries(), p.after.Entries()) {
				continue
			}
			plan.Entries = append(plan.Entries, Entry{Name: name, Disposition: Upgrade, Before: p.before, After: p.after})
		case p.before != nil:
			plan.Entries = append(plan.Entries, Entry{Name: name, Disposition: Remove, Before: p.before})
		case p.after != nil:
			plan.Entries = append(plan.Entries, Entry{Name: name, Disposition: Install, After: p.after})
		}
	}

	claimed := desired.Targets()
	for path := range prev.Targets() {
		if _, ok := claimed[path]; !ok {
			plan.Orphans = append(plan.Orphans, path)
		}
	}
	sort.Strings(plan.Orphans)

	return plan
}

func sameEntries(a, b []types.FileEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
