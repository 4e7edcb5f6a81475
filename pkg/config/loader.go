package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/modbisect/pkg/errors"
	"github.com/arthur-debert/modbisect/pkg/logging"
	"github.com/arthur-debert/modbisect/pkg/paths"
	"github.com/arthur-debert/modbisect/pkg/ui"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read into the config.
const EnvPrefix = "MODBISECT_"

// Options tune a Load call.
type Options struct {
	// File replaces the user config lookup when set.
	File string
	// Overrides are flat dotted keys applied last, e.g. "state.file".
	Overrides map[string]interface{}
}

// Load builds the effective configuration.
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User config
	userFile := opts.File
	if userFile == "" {
		userFile = findUserConfig(paths.New().ConfigFileCandidates())
	}
	if userFile != "" {
		parser, err := parserFor(userFile)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(userFile), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", userFile).
				WithDetail("path", userFile)
		}
		logger.Debug().Str("path", userFile).Msg("Loaded user config")
	}

	// 3. Env vars
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Command-line overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	if err := postProcess(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults returns the embedded defaults with derived values filled in.
func Defaults() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}
	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	if err := postProcess(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps MODBISECT_STATE_FILE to state.file. Only the first underscore
// separates section from key, so MODBISECT_OUTPUT_COPY_RESULT becomes
// output.copy_result.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

func postProcess(cfg *Config) error {
	ext := strings.ToLower(strings.TrimSpace(cfg.Discovery.MarkerExtension))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	cfg.Discovery.MarkerExtension = ext

	if _, err := ui.ParseFormat(cfg.Prompt.Mode); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "invalid prompt.mode %q", cfg.Prompt.Mode)
	}

	if cfg.State.File == "" {
		cfg.State.File = paths.New().DefaultStateFile()
	}
	abs, err := paths.Absolute(cfg.State.File)
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "invalid state.file %q", cfg.State.File)
	}
	cfg.State.File = abs
	return nil
}

func findUserConfig(candidates []string) string {
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigParse, "unsupported config format %q", path).
			WithDetail("path", path)
	}
}
