// Package folders toggles a single mod folder between its enabled and
// disabled on-disk names.
//
// A folder named X under parent P is disabled by renaming it to
// P/<DisabledPrefix>X and enabled by renaming it back. The same prefix rule
// is used to detect and to construct names, so the two forms always
// round-trip. Both operations are idempotent: disabling an already disabled
// folder, or enabling an enabled one, returns the path unchanged without
// touching the disk.
package folders
