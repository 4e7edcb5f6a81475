package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for modbisect
	EnvConfigDir = "MODBISECT_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for modbisect
	EnvStateDir = "MODBISECT_STATE_DIR"
)

// Default directories and files
const (
	// AppDirName is the directory name for modbisect-specific files
	AppDirName = "modbisect"

	// ConfigFileName is the base name of the user configuration file.
	// Both .toml and .yaml variants are recognised.
	ConfigFileName = "config"

	// StateFileName is the name of the default state file
	StateFileName = "state.json"

	// LogFileName is the name of the log file
	LogFileName = "modbisect.log"
)

// Paths provides the locations of modbisect's own files
type Paths struct {
	configDir string
	stateDir  string
}

// New resolves the configuration and state directories from the
// environment, falling back to the XDG defaults.
func New() *Paths {
	p := &Paths{}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = dir
	} else {
		p.configDir = filepath.Join(configHome(), AppDirName)
	}

	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.stateDir = dir
	} else {
		p.stateDir = filepath.Join(stateHome(), AppDirName)
	}

	return p
}

// The xdg package reads its variables once at init; tests and wrappers that
// set them later still need to win.
func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	return xdg.ConfigHome
}

func stateHome() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return dir
	}
	return xdg.StateHome
}

// ConfigDir returns the directory holding the user configuration
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// StateDir returns the directory holding state and log files
func (p *Paths) StateDir() string {
	return p.stateDir
}

// ConfigFileCandidates returns the user configuration files to try, in order
func (p *Paths) ConfigFileCandidates() []string {
	return []string{
		filepath.Join(p.configDir, ConfigFileName+".toml"),
		filepath.Join(p.configDir, ConfigFileName+".yaml"),
		filepath.Join(p.configDir, ConfigFileName+".yml"),
	}
}

// DefaultStateFile returns the state file used when none is configured
func (p *Paths) DefaultStateFile() string {
	return filepath.Join(p.stateDir, StateFileName)
}

// LogFilePath returns the path of the log file
func (p *Paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// Absolute returns an absolute, cleaned form of path. An empty path stays empty.
func Absolute(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}
