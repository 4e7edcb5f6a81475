package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/arthur-debert/modbisect/pkg/filesystem"
	"github.com/arthur-debert/modbisect/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// MarkerFile is the file builders drop into a mod folder.
const MarkerFile = "d3dx.ini"

// TestEnvironment provides a mods root and a state file location
type TestEnvironment struct {
	Root      string
	StateFile string
	FS        types.FS
	Type      EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.FS = filesystem.NewMemory()
		env.Root = filepath.FromSlash("/mods")
		env.StateFile = filepath.FromSlash("/state/state.json")
	case EnvIsolated:
		base := t.TempDir()
		env.FS = filesystem.NewOS()
		env.Root = filepath.Join(base, "mods")
		env.StateFile = filepath.Join(base, "state", "state.json")
		t.Setenv("MODBISECT_STATE_DIR", filepath.Join(base, "state"))
		t.Setenv("MODBISECT_CONFIG_DIR", filepath.Join(base, "config"))
	}

	if err := env.FS.MkdirAll(env.Root, 0755); err != nil {
		t.Fatalf("failed to create mods root: %v", err)
	}
	return env
}

// Path joins rel onto the mods root
func (e *TestEnvironment) Path(rel string) string {
	return filepath.Join(e.Root, filepath.FromSlash(rel))
}

// Dir creates a plain directory under the mods root
func (e *TestEnvironment) Dir(rel string) string {
	e.t.Helper()
	path := e.Path(rel)
	if err := e.FS.MkdirAll(path, 0755); err != nil {
		e.t.Fatalf("failed to create dir %s: %v", path, err)
	}
	return path
}

// File creates a file (and its parents) under the mods root
func (e *TestEnvironment) File(rel, content string) string {
	e.t.Helper()
	path := e.Path(rel)
	if err := e.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.t.Fatalf("failed to create parent of %s: %v", path, err)
	}
	if err := e.FS.WriteFile(path, []byte(content), 0644); err != nil {
		e.t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// Mod creates a mod folder: a directory holding a marker file
func (e *TestEnvironment) Mod(rel string) string {
	e.t.Helper()
	e.File(filepath.ToSlash(filepath.Join(rel, MarkerFile)), "[Constants]\n")
	return e.Path(rel)
}

// Mods creates several mod folders directly under the root
func (e *TestEnvironment) Mods(names ...string) []string {
	e.t.Helper()
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, e.Mod(name))
	}
	return out
}

// Exists reports whether path exists
func (e *TestEnvironment) Exists(path string) bool {
	_, err := e.FS.Lstat(path)
	return err == nil
}

// AssertExists fails the test when path is missing
func (e *TestEnvironment) AssertExists(path string) {
	e.t.Helper()
	if !e.Exists(path) {
		e.t.Errorf("expected %s to exist", path)
	}
}

// AssertNotExists fails the test when path is present
func (e *TestEnvironment) AssertNotExists(path string) {
	e.t.Helper()
	if e.Exists(path) {
		e.t.Errorf("expected %s not to exist", path)
	}
}

// Names returns the sorted entry names of a directory under the root
func (e *TestEnvironment) Names(rel string) []string {
	e.t.Helper()
	entries, err := e.FS.ReadDir(e.Path(rel))
	if err != nil && !os.IsNotExist(err) {
		e.t.Fatalf("failed to read %s: %v", rel, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}
