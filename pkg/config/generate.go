package config

import (
	"bytes"
	"strings"

	"github.com/arthur-debert/modbisect/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Formats supported by Generate.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

const generatedHeader = "# modbisect configuration\n# Save as $XDG_CONFIG_HOME/modbisect/config.%s and edit as needed.\n\n"

// Generate serialises cfg in the given format.
func Generate(cfg *Config, format string) ([]byte, error) {
	var buf bytes.Buffer

	switch strings.ToLower(format) {
	case FormatTOML, "":
		buf.WriteString(strings.Replace(generatedHeader, "%s", "toml", 1))
		enc := toml.NewEncoder(&buf)
		if err := enc.Encode(cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode toml")
		}
	case FormatYAML, "yml":
		buf.WriteString(strings.Replace(generatedHeader, "%s", "yaml", 1))
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode yaml")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode yaml")
		}
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown config format %q (want toml or yaml)", format)
	}

	return buf.Bytes(), nil
}
