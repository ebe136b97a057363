package manifest

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/akabei/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
	"mvdan.cc/sh/v3/syntax"
)

// rawManifest is the on-disk shape shared by the TOML and YAML formats.
type rawManifest struct {
	Name  string    `toml:"name" yaml:"name"`
	Files []rawFile `toml:"files" yaml:"files"`
	Hooks rawHooks  `toml:"hooks" yaml:"hooks"`
}

type rawFile struct {
	Source   string      `toml:"source" yaml:"source"`
	Content  *string     `toml:"content" yaml:"content"`
	Target   string      `toml:"target" yaml:"target"`
	Mode     interface{} `toml:"mode" yaml:"mode"`
	Template bool        `toml:"template" yaml:"template"`
}

type rawHooks struct {
	PreInstall  []rawHook `toml:"pre_install" yaml:"pre_install"`
	PostInstall []rawHook `toml:"post_install" yaml:"post_install"`
	PreRemove   []rawHook `toml:"pre_remove" yaml:"pre_remove"`
	PostRemove  []rawHook `toml:"post_remove" yaml:"post_remove"`
}

// rawHook's command is either a string or a list of strings.
type rawHook struct {
	Command interface{} `toml:"command" yaml:"command"`
}

// decode parses data according to the manifest file extension.
// Unknown keys are rejected in both formats.
func decode(path string, data []byte) (rawManifest, error) {
	var m rawManifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&m); err != nil {
			return rawManifest{}, err
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil {
			return rawManifest{}, err
		}
	default:
		return rawManifest{}, fmt.Errorf("unsupported manifest format %q", filepath.Ext(path))
	}
	return m, nil
}

// parseMode accepts an octal string such as "644". Absent means the
// default. Bare integers are rejected because TOML 644 and YAML 0644
// decode to different bit patterns.
func parseMode(v interface{}) (types.Mode, error) {
	switch m := v.(type) {
	case nil:
		return types.DefaultMode, nil
	case string:
		return types.ParseMode(m)
	case int, int64, uint64:
		return 0, fmt.Errorf("mode must be an octal string, got %v", m)
	default:
		return 0, fmt.Errorf("mode must be an octal string, got %T", v)
	}
}

// parseHooks converts the raw hook lists, expanding string commands.
func parseHooks(path string, raw rawHooks) (types.Hooks, error) {
	var hooks types.Hooks
	lists := []struct {
		phase types.HookPhase
		raw   []rawHook
		dst   *[]types.Hook
	}{
		{types.PhasePreInstall, raw.PreInstall, &hooks.PreInstall},
		{types.PhasePostInstall, raw.PostInstall, &hooks.PostInstall},
		{types.PhasePreRemove, raw.PreRemove, &hooks.PreRemove},
		{types.PhasePostRemove, raw.PostRemove, &hooks.PostRemove},
	}
	for _, list := range lists {
		for i, rh := range list.raw {
			hook, err := parseHook(path, rh)
			if err != nil {
				return types.Hooks{}, fmt.Errorf("hooks.%s[%d]: %w", list.phase, i, err)
			}
			*list.dst = append(*list.dst, hook)
		}
	}
	return hooks, nil
}

func parseHook(path string, rh rawHook) (types.Hook, error) {
	switch c := rh.Command.(type) {
	case string:
		if strings.TrimSpace(c) == "" {
			return types.Hook{}, fmt.Errorf("empty command")
		}
		if err := validateScript(path, c); err != nil {
			return types.Hook{}, err
		}
		return types.ShellHook(c), nil
	case []interface{}:
		if len(c) == 0 {
			return types.Hook{}, fmt.Errorf("empty command")
		}
		argv := make([]string, 0, len(c))
		for _, arg := range c {
			s, ok := arg.(string)
			if !ok {
				return types.Hook{}, fmt.Errorf("command arguments must be strings, got %T", arg)
			}
			argv = append(argv, s)
		}
		if argv[0] == "" {
			return types.Hook{}, fmt.Errorf("empty program name")
		}
		return types.Hook{Command: argv}, nil
	case nil:
		return types.Hook{}, fmt.Errorf("missing command")
	default:
		return types.Hook{}, fmt.Errorf("command must be a string or a list of strings, got %T", c)
	}
}

// validateScript parses a string hook as POSIX shell.
func validateScript(path, script string) error {
	parser := syntax.NewParser(syntax.Variant(syntax.LangPOSIX))
	if _, err := parser.Parse(strings.NewReader(script), path); err != nil {
		return fmt.Errorf("invalid shell syntax: %w", err)
	}
	return nil
}
