package folders

import (
	"path/filepath"
	"strings"
)

// DisabledPrefix marks a folder as inactive.
const DisabledPrefix = "DISABLED "

// IsDisabledName reports whether a base name carries the disabled prefix.
func IsDisabledName(name string) bool {
	return strings.HasPrefix(name, DisabledPrefix)
}

// IsDisabledPath reports whether the base name of path carries the prefix.
func IsDisabledPath(path string) bool {
	return IsDisabledName(filepath.Base(path))
}

// DisabledPath returns the disabled form of path, or path itself when it is
// already disabled.
func DisabledPath(path string) string {
	name := filepath.Base(path)
	if IsDisabledName(name) {
		return path
	}
	return filepath.Join(filepath.Dir(path), DisabledPrefix+name)
}

// EnabledPath returns the enabled form of path, or path itself when it does
// not carry the prefix.
func EnabledPath(path string) string {
	name := filepath.Base(path)
	if !IsDisabledName(name) {
		return path
	}
	return filepath.Join(filepath.Dir(path), strings.TrimPrefix(name, DisabledPrefix))
}
