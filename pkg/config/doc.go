// Package config handles configuration management for akabei.
// It layers embedded TOML defaults, the optional user config file,
// AKABEI_ environment variables and command-line flag overrides.
package config
