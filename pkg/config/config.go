package config

import (
	"fmt"
	"strings"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "AKABEI_"

// Output formats
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatAuto     = "auto"
	FormatPlain    = "plain"
	FormatTerm     = "term"
	FormatTerminal = "terminal"
)

// Formats lists every accepted output.format value
var Formats = []string{FormatText, FormatAuto, FormatPlain, FormatTerm, FormatTerminal, FormatJSON}

// Config is the fully merged configuration for a run
type Config struct {
	Manifests Manifests `koanf:"manifests"`
	State     State     `koanf:"state"`
	Packages  Packages  `koanf:"packages"`
	Logging   Logging   `koanf:"logging"`
	Output    Output    `koanf:"output"`
}

// Manifests controls manifest discovery
type Manifests struct {
	Root  string   `koanf:"root"`
	Names []string `koanf:"names"`
}

// State controls where the state snapshot lives
type State struct {
	Path string `koanf:"path"`
}

// Packages holds default package selections merged with the CLI flags
type Packages struct {
	Install []string `koanf:"install"`
	Remove  []string `koanf:"remove"`
}

// Logging controls the log file and default verbosity
type Logging struct {
	File      string `koanf:"file"`
	Verbosity int    `koanf:"verbosity"`
}

// Output controls plan rendering
type Output struct {
	Format string `koanf:"format"`
}

// Validate checks values no decoder can reject on its own
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatText, FormatJSON, FormatAuto, FormatPlain, FormatTerm, FormatTerminal:
	default:
		return fmt.Errorf("output.format must be one of %s, got %q", strings.Join(Formats, ", "), c.Output.Format)
	}
	if len(c.Manifests.Names) == 0 {
		return fmt.Errorf("manifests.names must not be empty")
	}
	for _, name := range c.Manifests.Names {
		if name == "" || strings.ContainsRune(name, '/') {
			return fmt.Errorf("manifests.names entry %q must be a bare file name", name)
		}
	}
	if c.Logging.Verbosity < 0 {
		return fmt.Errorf("logging.verbosity must not be negative")
	}
	return nil
}
