package config

import (
	"github.com/arthur-debert/modbisect/pkg/ui"
)

// Config is the effective configuration of one invocation.
type Config struct {
	Discovery Discovery `koanf:"discovery" toml:"discovery" yaml:"discovery"`
	State     State     `koanf:"state" toml:"state" yaml:"state"`
	Prompt    Prompt    `koanf:"prompt" toml:"prompt" yaml:"prompt"`
	Output    Output    `koanf:"output" toml:"output" yaml:"output"`
}

// Discovery controls how mod folders are recognised.
type Discovery struct {
	MarkerExtension string `koanf:"marker_extension" toml:"marker_extension" yaml:"marker_extension"`
}

// State locates the state file.
type State struct {
	File string `koanf:"file" toml:"file" yaml:"file"`
}

// Prompt controls how questions are rendered.
type Prompt struct {
	Mode string `koanf:"mode" toml:"mode" yaml:"mode"`
}

// Output controls what happens with the result.
type Output struct {
	CopyResult bool `koanf:"copy_result" toml:"copy_result" yaml:"copy_result"`
}

// PromptFormat returns the parsed prompt mode. Load has already validated it.
func (c *Config) PromptFormat() ui.Format {
	f, _ := ui.ParseFormat(c.Prompt.Mode)
	return f
}
