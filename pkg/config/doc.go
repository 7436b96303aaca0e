// Package config handles configuration management for dotlink.
// It layers embedded defaults, the user config file, the dotfiles root
// config file, DOTLINK_* environment variables and command line overrides
// into one immutable RunConfig built once per invocation.
package config
