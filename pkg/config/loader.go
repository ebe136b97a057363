package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/akabei/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
)

// LoadOptions selects the layers Load merges on top of the defaults
type LoadOptions struct {
	// ConfigFile is the user config file. A missing file is skipped.
	ConfigFile string

	// Overrides are dotted keys set from command-line flags.
	// Zero values are ignored so unset flags never mask lower layers.
	Overrides map[string]interface{}
}

// Load merges defaults, the user config file, the environment and
// overrides, in that order, and decodes the result.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User config file if it exists
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err == nil {
			if err := k.Load(file.Provider(opts.ConfigFile), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", opts.ConfigFile)
			}
			log.Debug().Str("path", opts.ConfigFile).Msg("Loaded user config")
		}
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Flag overrides
	if overrides := nonZero(opts.Overrides); len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	cfg.Packages.Install = splitList(cfg.Packages.Install)
	cfg.Packages.Remove = splitList(cfg.Packages.Remove)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "invalid configuration")
	}

	return &cfg, nil
}

func nonZero(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			if val == "" {
				continue
			}
		case []string:
			if len(val) == 0 {
				continue
			}
		case int:
			if val == 0 {
				continue
			}
		}
		out[k] = v
	}
	return out
}

// splitList flattens comma lists and drops blanks
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
