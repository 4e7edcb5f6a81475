// Package types defines the core types and interfaces shared by modbisect's
// packages: the ModFolder record produced by discovery and the FS interface
// every filesystem-touching component depends on.
package types
