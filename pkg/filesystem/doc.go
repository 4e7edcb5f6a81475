// Package filesystem provides filesystem implementations for modbisect.
//
// This package contains implementations of the types.FS interface,
// including the standard OS filesystem and an afero-backed filesystem
// used by in-memory tests.
package filesystem
