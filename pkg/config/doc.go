// Package config loads modbisect's settings.
//
// Sources are layered with koanf, later ones winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file, $XDG_CONFIG_HOME/modbisect/config.{toml,yaml,yml}
//  3. MODBISECT_* environment variables (MODBISECT_STATE_FILE -> state.file)
//  4. command-line overrides
package config
