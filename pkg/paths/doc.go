// Package paths provides centralized path handling for modbisect.
// It follows the XDG Base Directory specification for the tool's own files
// (configuration, default state file, log file).
package paths
