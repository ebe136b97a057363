// pkg/types/hooks_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test hook argv representation and string sugar

package types_test

import (
	"encoding/json"
	"testing"

	"github.com/arthur-debert/akabei/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellHook(t *testing.T) {
	hook := types.ShellHook("systemctl --user daemon-reload")
	assert.Equal(t, []string{"sh", "-c", "systemctl --user daemon-reload"}, hook.Command)
	assert.Equal(t, "sh -c systemctl --user daemon-reload", hook.String())
}

func TestHook_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{
			name:  "argv list",
			input: `{"command":["mkdir","-p","downloads"]}`,
			want:  []string{"mkdir", "-p", "downloads"},
		},
		{
			name:  "string sugar",
			input: `{"command":"echo hi"}`,
			want:  []string{"sh", "-c", "echo hi"},
		},
		{
			name:    "number",
			input:   `{"command":42}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hook types.Hook
			err := json.Unmarshal([]byte(tt.input), &hook)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, hook.Command)
		})
	}
}

func TestHooks_ForAndLen(t *testing.T) {
	hooks := types.Hooks{
		PreInstall:  []types.Hook{{Command: []string{"a"}}},
		PostInstall: []types.Hook{{Command: []string{"b"}}, {Command: []string{"c"}}},
		PreRemove:   []types.Hook{{Command: []string{"d"}}},
	}

	assert.Len(t, hooks.For(types.PhasePreInstall), 1)
	assert.Len(t, hooks.For(types.PhasePostInstall), 2)
	assert.Len(t, hooks.For(types.PhasePreRemove), 1)
	assert.Empty(t, hooks.For(types.PhasePostRemove))
	assert.Empty(t, hooks.For(types.HookPhase("bogus")))
	assert.Equal(t, 4, hooks.Len())
}

func TestHooks_JSONOmitsEmpty(t *testing.T) {
	data, err := json.Marshal(types.Hooks{
		PostInstall: []types.Hook{{Command: []string{"true"}}},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"post_install":[{"command":["true"]}]}`, string(data))
}

func TestHooks_CloneIsDeep(t *testing.T) {
	hooks := types.Hooks{PreRemove: []types.Hook{{Command: []string{"a", "b"}}}}
	clone := hooks.Clone()
	clone.PreRemove[0].Command[0] = "changed"

	assert.Equal(t, "a", hooks.PreRemove[0].Command[0])
}
