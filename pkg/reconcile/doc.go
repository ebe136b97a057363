// Package reconcile computes what a run has to do.
//
// The pipeline is:
//
//	prev := store.Load()
//	prev, drifts := NewDriftChecker(fs).Check(prev)     // reality wins
//	desired := BuildDesired(prev, install, remove, provider)
//	plan := Diff(prev, desired)
//
// Nothing in this package mutates the filesystem. The resulting Plan is
// handed to the executor.
package reconcile
