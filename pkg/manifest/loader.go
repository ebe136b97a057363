package manifest

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/akabei/pkg/errors"
	"github.com/arthur-debert/akabei/pkg/filesystem"
	"github.com/arthur-debert/akabei/pkg/logging"
	"github.com/arthur-debert/akabei/pkg/paths"
	"github.com/arthur-debert/akabei/pkg/template"
	"github.com/arthur-debert/akabei/pkg/types"
	"github.com/spf13/afero"
)

// DefaultNames are the manifest file names searched for
var DefaultNames = []string{"akabei.toml", "akabei.yaml", "akabei.yml"}

// skipDirs are never descended into while walking
var skipDirs = map[string]bool{
	".git": true,
	".hg":  true,
	".svn": true,
}

// Loader discovers and loads manifests below the manifest root.
type Loader struct {
	fs    afero.Fs
	paths paths.Paths
	names map[string]bool
	data  *template.Data
}

// Option configures a Loader
type Option func(*Loader)

// WithNames replaces the manifest file names searched for
func WithNames(names ...string) Option {
	return func(l *Loader) {
		if len(names) == 0 {
			return
		}
		l.names = make(map[string]bool, len(names))
		for _, n := range names {
			l.names[n] = true
		}
	}
}

// WithTemplateData fixes the data templated sources render with
func WithTemplateData(data template.Data) Option {
	return func(l *Loader) {
		l.data = &data
	}
}

// NewLoader returns a loader reading through fs
func NewLoader(fs afero.Fs, p paths.Paths, opts ...Option) *Loader {
	l := &Loader{fs: fs, paths: p}
	WithNames(DefaultNames...)(l)
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Discover returns the manifest files below the root, sorted.
func (l *Loader) Discover() ([]string, error) {
	root := l.paths.ManifestRoot()
	logger := logging.GetLogger("manifest")
	logger.Trace().Str("root", root).Msg("Discovering manifests")

	info, err := l.fs.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestUnreadable, "cannot access manifest root %s", root).
			WithDetail("path", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrManifestUnreadable, "manifest root %s is not a directory", root).
			WithDetail("path", root)
	}

	var found []string
	err = afero.Walk(l.fs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && skipDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if l.names[info.Name()] {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestUnreadable, "cannot walk manifest root %s", root).
			WithDetail("path", root)
	}

	sort.Strings(found)
	logger.Debug().Str("root", root).Int("count", len(found)).Msg("Discovered manifests")
	return found, nil
}

// LoadAll discovers and loads every manifest. Two manifests declaring the
// same package name is an error.
func (l *Loader) LoadAll() (*Catalog, error) {
	files, err := l.Discover()
	if err != nil {
		return nil, err
	}

	catalog := newCatalog()
	for _, path := range files {
		pkg, err := l.LoadFile(path)
		if err != nil {
			return nil, err
		}
		if prev, ok := catalog.sources[pkg.Name]; ok {
			return nil, errors.Newf(errors.ErrManifestInvalid,
				"package %q is declared by both %s and %s", pkg.Name, prev, path).
				WithDetail("package", pkg.Name).
				WithDetail("manifests", []string{prev, path})
		}
		catalog.add(pkg, path)
	}
	return catalog, nil
}

// LoadFile loads a single manifest into a fully resolved package.
func (l *Loader) LoadFile(path string) (types.Package, error) {
	logger := logging.GetLogger("manifest").With().Str("manifest", path).Logger()

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return types.Package{}, errors.Wrapf(err, errors.ErrManifestUnreadable, "cannot read manifest %s", path).
			WithDetail("manifest", path)
	}

	raw, err := decode(path, data)
	if err != nil {
		return types.Package{}, invalid(path, err)
	}
	if raw.Name == "" {
		return types.Package{}, invalid(path, fmt.Errorf("missing name"))
	}

	pkg := types.NewPackage(raw.Name)
	for i, rf := range raw.Files {
		target, record, err := l.loadFile(path, rf)
		if err != nil {
			var akabeiErr *errors.AkabeiError
			if stderrors.As(err, &akabeiErr) {
				return types.Package{}, akabeiErr.WithDetail("manifest", path)
			}
			return types.Package{}, invalid(path, fmt.Errorf("files[%d]: %w", i, err))
		}
		if _, dup := pkg.Files[target]; dup {
			return types.Package{}, invalid(path, fmt.Errorf("target %s listed twice", target))
		}
		pkg.Files[target] = record
	}

	pkg.Hooks, err = parseHooks(path, raw.Hooks)
	if err != nil {
		return types.Package{}, invalid(path, err)
	}

	logger.Debug().
		Str("package", pkg.Name).
		Int("files", len(pkg.Files)).
		Int("hooks", pkg.Hooks.Len()).
		Msg("Loaded manifest")
	return pkg, nil
}

func (l *Loader) loadFile(manifestPath string, rf rawFile) (string, types.FileRecord, error) {
	if rf.Target == "" {
		return "", types.FileRecord{}, fmt.Errorf("missing target")
	}

	var ref types.ContentRef
	switch {
	case rf.Source != "" && rf.Content != nil:
		return "", types.FileRecord{}, fmt.Errorf("source and content are mutually exclusive")
	case rf.Source != "":
		ref = types.SourcePath(l.paths.ResolveSource(manifestPath, rf.Source))
	case rf.Content != nil:
		ref = types.InlineBytes(*rf.Content)
	default:
		return "", types.FileRecord{}, fmt.Errorf("missing source")
	}

	mode, err := parseMode(rf.Mode)
	if err != nil {
		return "", types.FileRecord{}, err
	}

	content, err := ref.Resolve(filesystem.NewAferoFS(l.fs))
	if err != nil {
		return "", types.FileRecord{}, errors.Wrapf(err, errors.ErrManifestUnreadable, "cannot read source %s", ref).
			WithDetail("source", ref.String())
	}

	if rf.Template {
		content, err = template.Render(ref.String(), content, l.templateData())
		if err != nil {
			return "", types.FileRecord{}, err
		}
	}

	return l.paths.ResolveTarget(rf.Target), types.NewFileRecord(content, mode), nil
}

func (l *Loader) templateData() template.Data {
	if l.data == nil {
		data := template.NewData(l.paths.HomeDir())
		l.data = &data
	}
	return *l.data
}

func invalid(path string, err error) error {
	return errors.Wrapf(err, errors.ErrManifestInvalid, "invalid manifest %s", path).
		WithDetail("manifest", path)
}
