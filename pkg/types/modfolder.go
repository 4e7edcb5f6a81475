package types

import (
	"path/filepath"
)

// ModFolder is a directory that qualifies as a mod. Path is absolute and is
// the folder's identity at discovery time; the folder's enabled state is only
// observable from its current on-disk name.
type ModFolder struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// NewModFolder builds a ModFolder from an absolute path.
func NewModFolder(path string) ModFolder {
	return ModFolder{
		Name: filepath.Base(path),
		Path: path,
	}
}

// Paths returns the paths of the given folders, in order.
func Paths(mods []ModFolder) []string {
	out := make([]string, 0, len(mods))
	for _, m := range mods {
		out = append(out, m.Path)
	}
	return out
}
