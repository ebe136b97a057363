// Package core wires the reconciliation pipeline together.
//
// Reconcile is the single entry point used by the CLI:
//
//  1. take the state lock
//  2. load the state snapshot
//  3. drift check it against the disk
//  4. build the desired state from manifests and the install/remove sets
//  5. diff, then apply (or dry-run) the plan
//  6. save the desired state, only after a successful real apply
package core
