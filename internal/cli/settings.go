package cli

import (
	"fmt"

	"github.com/arthur-debert/akabei/pkg/config"
	"github.com/arthur-debert/akabei/pkg/display"
	"github.com/arthur-debert/akabei/pkg/logging"
	"github.com/arthur-debert/akabei/pkg/paths"
	"github.com/rs/zerolog/log"
)

// globalFlags are the persistent flags shared by every command
type globalFlags struct {
	verbosity  int
	configFile string
	manifests  string
	state      string
	output     string
}

// settings is the resolved configuration of one invocation
type settings struct {
	config *config.Config
	paths  paths.Paths
	format display.Format
}

// prepare loads the layered configuration, sets up logging and resolves
// every path. Flags win over the config file and the environment.
func (g *globalFlags) prepare() (*settings, error) {
	configFile := g.configFile
	if configFile == "" {
		configFile = paths.DefaultConfigFile()
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: configFile,
		Overrides: map[string]interface{}{
			"manifests.root":    g.manifests,
			"state.path":        g.state,
			"output.format":     g.output,
			"logging.verbosity": g.verbosity,
		},
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}

	logging.SetupLoggerWithFile(cfg.Logging.Verbosity, cfg.Logging.File)
	log.Debug().Str("config", configFile).Msg("Configuration loaded")

	format, err := display.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, fmt.Errorf(MsgErrFormat, err)
	}

	p, err := paths.New(paths.Options{
		ManifestRoot: cfg.Manifests.Root,
		StatePath:    cfg.State.Path,
	})
	if err != nil {
		return nil, err
	}

	return &settings{config: cfg, paths: p, format: format}, nil
}

// union appends extra to base, dropping duplicates and keeping order
func union(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	var out []string
	for _, list := range [][]string{base, extra} {
		for _, name := range list {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
