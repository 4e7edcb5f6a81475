// Package testutil provides utilities for testing modbisect components.
//
// Key components:
//   - TestEnvironment: a mods root plus a state file location, either in
//     memory (afero) or isolated in a real temporary directory
//   - Builders for mod folders (directories holding a marker file) and
//     plain directories
//   - Assertions over what exists on disk
//
// Usage guidelines:
//   - Use EnvMemoryOnly for pure logic that renames empty or leaf folders
//   - Use EnvIsolated whenever a test renames folders that have contents,
//     or exercises the OS-specific rename and sync behaviour
package testutil
