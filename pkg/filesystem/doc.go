// Package filesystem provides filesystem implementations for akabei.
//
// This package contains implementations of the types.FS interface: the
// real OS filesystem and an in-memory filesystem for tests, both backed by
// afero.
package filesystem
