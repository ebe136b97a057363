package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/akabei/pkg/errors"
)

// Environment variable names
const (
	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppName names the application directories under the XDG roots
	AppName = "akabei"

	// StateFileName is the state snapshot stored directly in $XDG_DATA_HOME
	StateFileName = AppName + ".json"

	// ConfigFileName is the optional user configuration file
	ConfigFileName = "config.toml"

	// LockSuffix is appended to the state path to form the lock file path
	LockSuffix = ".lock"
)

// Paths provides centralized path management for akabei
type Paths interface {
	HomeDir() string
	ManifestRoot() string
	StatePath() string
	LockPath() string
	ConfigDir() string
	ConfigFilePath() string
	ResolveTarget(target string) string
	ResolveSource(manifestPath, source string) string
}

// Options overrides the default locations. Empty fields use defaults.
type Options struct {
	Home         string
	ManifestRoot string
	StatePath    string
}

type paths struct {
	home         string
	manifestRoot string
	statePath    string
	configDir    string
}

// New resolves every location, failing with ErrHomeDirUnresolvable when no
// home directory can be determined.
func New(opts Options) (Paths, error) {
	p := &paths{}

	home := opts.Home
	if home == "" {
		var err error
		home, err = userHome()
		if err != nil {
			return nil, err
		}
	}
	absHome, err := filepath.Abs(home)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrHomeDirUnresolvable, "failed to get absolute path for home %s", home)
	}
	p.home = absHome

	root := opts.ManifestRoot
	if root == "" {
		root, err = os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrIoFailure, "failed to get current directory")
		}
	}
	root, err = filepath.Abs(p.expandHome(root))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIoFailure, "failed to get absolute path for manifest root")
	}
	p.manifestRoot = root

	statePath := opts.StatePath
	if statePath == "" {
		statePath = filepath.Join(xdg.DataHome, StateFileName)
	}
	statePath, err = filepath.Abs(p.expandHome(statePath))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIoFailure, "failed to get absolute path for state file")
	}
	p.statePath = statePath

	p.configDir = defaultConfigDir()

	return p, nil
}

func defaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultConfigFile returns $XDG_CONFIG_HOME/akabei/config.toml. It needs no
// home directory so configuration can load before paths resolve.
func DefaultConfigFile() string {
	return filepath.Join(defaultConfigDir(), ConfigFileName)
}

func userHome() (string, error) {
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return home, nil
	}
	if home = os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	if err == nil {
		return "", errors.New(errors.ErrHomeDirUnresolvable, "home directory is empty")
	}
	return "", errors.Wrap(err, errors.ErrHomeDirUnresolvable, "cannot determine home directory")
}

// expandHome expands ~ to the home directory
func (p *paths) expandHome(path string) string {
	if path == "~" {
		return p.home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(p.home, path[2:])
	}
	return path
}

// HomeDir returns the base directory for relative targets and hooks
func (p *paths) HomeDir() string {
	return p.home
}

// ManifestRoot returns the directory searched for manifests
func (p *paths) ManifestRoot() string {
	return p.manifestRoot
}

// StatePath returns the state snapshot location
func (p *paths) StatePath() string {
	return p.statePath
}

// LockPath returns the advisory lock file guarding the state snapshot
func (p *paths) LockPath() string {
	return p.statePath + LockSuffix
}

// ConfigDir returns the XDG config directory for akabei
func (p *paths) ConfigDir() string {
	return p.configDir
}

// ConfigFilePath returns the optional user configuration file
func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

// ResolveTarget makes a manifest target absolute. Relative targets and
// ~/ prefixes resolve against the home directory.
func (p *paths) ResolveTarget(target string) string {
	target = p.expandHome(target)
	if !filepath.IsAbs(target) {
		target = filepath.Join(p.home, target)
	}
	return filepath.Clean(target)
}

// ResolveSource makes a manifest source absolute. Relative sources resolve
// against the directory holding the manifest.
func (p *paths) ResolveSource(manifestPath, source string) string {
	source = p.expandHome(source)
	if !filepath.IsAbs(source) {
		source = filepath.Join(filepath.Dir(manifestPath), source)
	}
	return filepath.Clean(source)
}
