// Package recovery restores folders that a bisection run left disabled.
//
// A Recoverer reads the list of disabled-form paths persisted by the state
// store, renames every entry that still exists back to its original name and
// finally deletes the state file. It backs both the end-of-run cleanup and
// the standalone recover command.
package recovery
