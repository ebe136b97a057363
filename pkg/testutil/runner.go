// pkg/testutil/runner.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Hook runner that records calls instead of spawning processes

package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/arthur-debert/akabei/pkg/errors"
)

// HookCall is one recorded hook invocation
type HookCall struct {
	Dir  string
	Argv []string
}

// RecordingRunner records every hook it is asked to run
type RecordingRunner struct {
	mu    sync.Mutex
	calls []HookCall

	// Fail makes the runner return HOOK_FAILED for any command whose
	// joined argv equals a key.
	Fail map[string]bool

	// OnRun is called after recording, before returning
	OnRun func(call HookCall)
}

// NewRecordingRunner returns an empty runner
func NewRecordingRunner() *RecordingRunner {
	return &RecordingRunner{Fail: make(map[string]bool)}
}

// Run implements executor.HookRunner
func (r *RecordingRunner) Run(_ context.Context, dir string, argv []string) error {
	call := HookCall{Dir: dir, Argv: append([]string(nil), argv...)}

	r.mu.Lock()
	r.calls = append(r.calls, call)
	r.mu.Unlock()

	if r.OnRun != nil {
		r.OnRun(call)
	}

	command := strings.Join(argv, " ")
	if r.Fail[command] {
		return errors.Newf(errors.ErrHookFailed, "hook `%s` exited with status 1", command).
			WithDetail("command", argv).
			WithDetail("exit_code", 1)
	}
	return nil
}

// Calls returns the recorded invocations
func (r *RecordingRunner) Calls() []HookCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]HookCall(nil), r.calls...)
}

// Commands returns each recorded argv joined by spaces
func (r *RecordingRunner) Commands() []string {
	calls := r.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = strings.Join(c.Argv, " ")
	}
	return out
}
