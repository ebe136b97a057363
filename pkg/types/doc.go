// Package types defines the core data model shared by every akabei package:
// the Package and State shapes that are diffed and persisted, the FileRecord
// that identifies a managed file by digest and mode, lifecycle Hooks, and
// the FS port through which all filesystem access flows.
package types
