// Package executor applies a reconcile.Plan to the filesystem.
//
// Work happens in seven global phases. Each phase runs over every plan
// entry, in name order, before the next phase starts:
//
//  1. pre_remove hooks of every Remove/Upgrade entry (old definition)
//  2. removal of every file in the old definition of Remove/Upgrade entries
//  3. removal of orphans, previous targets no package claims any more
//  4. post_remove hooks (old definition)
//  5. pre_install hooks of every Install/Upgrade entry (new definition)
//  6. installation of every file of the new definition
//  7. post_install hooks (new definition)
//
// The first failure aborts the run. Nothing is rolled back; the state
// snapshot is only written by the caller after a fully successful apply,
// so the next run reconciles whatever was left behind.
//
// In dry-run mode every read-only step still happens and every step is
// logged and reported, but no hook is spawned and nothing is written,
// removed or chmodded.
package executor
