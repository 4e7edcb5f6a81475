// Package state persists the disabled-by-program record.
//
// The record is stored as a JSON array of absolute paths, each the on-disk
// (disabled) form of a folder the current run renamed. Writes go to a
// temporary file in the target's directory which then replaces the target,
// so a reader never observes a partially written file. An empty record is
// represented by the absence of the file.
package state
