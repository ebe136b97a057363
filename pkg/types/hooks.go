package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ShellProgram runs string-form hook commands.
const ShellProgram = "sh"

// HookPhase names one of the four lifecycle hook lists.
type HookPhase string

const (
	PhasePreInstall  HookPhase = "pre_install"
	PhasePostInstall HookPhase = "post_install"
	PhasePreRemove   HookPhase = "pre_remove"
	PhasePostRemove  HookPhase = "post_remove"
)

// Hook is a single lifecycle command as an argv list.
type Hook struct {
	Command []string `json:"command" yaml:"command" toml:"command"`
}

// ShellHook expands the string form of a hook to sh -c <script>.
func ShellHook(script string) Hook {
	return Hook{Command: []string{ShellProgram, "-c", script}}
}

// String renders the argv for logs.
func (h Hook) String() string {
	return strings.Join(h.Command, " ")
}

// hookJSON accepts both {"command": [...]} and {"command": "..."}.
type hookJSON struct {
	Command json.RawMessage `json:"command"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (h *Hook) UnmarshalJSON(data []byte) error {
	var raw hookJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var argv []string
	if err := json.Unmarshal(raw.Command, &argv); err == nil {
		h.Command = argv
		return nil
	}
	var script string
	if err := json.Unmarshal(raw.Command, &script); err != nil {
		return fmt.Errorf("hook command must be a string or a list of strings")
	}
	*h = ShellHook(script)
	return nil
}

// Hooks holds the four ordered hook lists of a package.
type Hooks struct {
	PreInstall  []Hook `json:"pre_install,omitempty"`
	PostInstall []Hook `json:"post_install,omitempty"`
	PreRemove   []Hook `json:"pre_remove,omitempty"`
	PostRemove  []Hook `json:"post_remove,omitempty"`
}

// For returns the hook list for phase.
func (h Hooks) For(phase HookPhase) []Hook {
	switch phase {
	case PhasePreInstall:
		return h.PreInstall
	case PhasePostInstall:
		return h.PostInstall
	case PhasePreRemove:
		return h.PreRemove
	case PhasePostRemove:
		return h.PostRemove
	}
	return nil
}

// Len counts every hook across all phases.
func (h Hooks) Len() int {
	return len(h.PreInstall) + len(h.PostInstall) + len(h.PreRemove) + len(h.PostRemove)
}

// Clone deep copies the hook lists.
func (h Hooks) Clone() Hooks {
	return Hooks{
		PreInstall:  cloneHooks(h.PreInstall),
		PostInstall: cloneHooks(h.PostInstall),
		PreRemove:   cloneHooks(h.PreRemove),
		PostRemove:  cloneHooks(h.PostRemove),
	}
}

func cloneHooks(hooks []Hook) []Hook {
	if hooks == nil {
		return nil
	}
	out := make([]Hook, len(hooks))
	for i, hook := range hooks {
		out[i] = Hook{Command: append([]string(nil), hook.Command...)}
	}
	return out
}
