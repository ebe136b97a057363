// Package statestore persists the installed state between runs.
//
// The snapshot is a pretty printed JSON document. A missing file loads as
// the empty state; anything unparsable is a STATE_CORRUPT error raised
// before the run touches the filesystem. Saves write a temporary sibling
// and rename it over the snapshot, so a crash never leaves half a file.
//
// Lock takes an advisory lock file next to the snapshot for the duration
// of a run, so two concurrent invocations cannot interleave.
package statestore
