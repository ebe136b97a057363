// Package testutil provides utilities for testing akabei components.
//
// Key components:
//   - Env: in-memory home, manifest root and state file wired together
//   - PackageBuilder: declarative package setup
//   - StaticProvider: a types.Provider over fixed packages
//   - RecordingRunner: a HookRunner that records instead of spawning
//
// Usage guidelines:
//   - Core tests run against memory; only pkg/filesystem and
//     pkg/statestore locking touch the real filesystem
//   - All test data should be defined inline, not in external files
package testutil
