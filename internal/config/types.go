// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

const (
	// AppName is the application name.
	AppName = "hostinv"
	// SettingsFileName is the settings file looked up in the root directory.
	SettingsFileName = "dynamic_inventory.cfg"
	// EnvFileName is the optional dotenv file looked up in the root directory.
	EnvFileName = "dynamic_inventory.env"
	// EnvPrefix prefixes environment variables that override settings.
	EnvPrefix = "HOSTINV"
	// HostVarsDir is appended to the inventory path to find host descriptors.
	HostVarsDir = "host_vars"
)

var (
	// ErrSettingsNotFound is returned when an explicitly requested settings
	// file does not exist.
	ErrSettingsNotFound = errors.New("settings file not found")
	// ErrInvalidGroupPath is the sentinel error wrapped by InvalidGroupPathError.
	ErrInvalidGroupPath = errors.New("invalid group_path")
)

type (
	// Settings holds the options as written in the settings file, before any
	// path is resolved.
	Settings struct {
		InventoryBase string   `json:"inventory_base" mapstructure:"inventory_base"`
		InventoryPath string   `json:"inventory_path" mapstructure:"inventory_path"`
		GroupPrefix   string   `json:"group_prefix"   mapstructure:"group_prefix"`
		Fields        []string `json:"fields"         mapstructure:"fields"`
		SkipInvalid   bool     `json:"skip_invalid"   mapstructure:"skip_invalid"`
		LogFile       string   `json:"log_file"       mapstructure:"log_file"`

		// GroupPath and GroupVars are keyed by user-chosen names, so they are
		// read from the decoded document directly: Viper folds key case.
		GroupPath map[string][]string       `json:"group_path" mapstructure:"-"`
		GroupVars map[string]map[string]any `json:"group_vars" mapstructure:"-"`
	}

	// Config is the resolved configuration for one run.
	Config struct {
		Settings

		// RootDir is the directory relative paths resolve against.
		RootDir string
		// SettingsFile is the settings file that was loaded, empty when
		// defaults are in effect.
		SettingsFile string
		// BaseDir is the resolved inventory base directory.
		BaseDir string
		// HostsDir is the resolved host descriptor directory.
		HostsDir string
		// LogPath is the resolved log destination, empty for stderr.
		LogPath string
	}

	// InvalidGroupPathError is returned when a group_path entry has a shape the
	// schema accepts but the expander cannot use.
	// It wraps ErrInvalidGroupPath for errors.Is() compatibility.
	InvalidGroupPathError struct {
		Prefix string
		Reason string
	}
)

// Error implements the error interface.
func (e *InvalidGroupPathError) Error() string {
	return fmt.Sprintf("group_path %q: %s", e.Prefix, e.Reason)
}

// Unwrap returns ErrInvalidGroupPath.
func (e *InvalidGroupPathError) Unwrap() error { return ErrInvalidGroupPath }

// DefaultSettings returns the settings in effect when no file is present.
func DefaultSettings() *Settings {
	return &Settings{
		Fields:    []string{},
		GroupPath: map[string][]string{},
		GroupVars: map[string]map[string]any{},
	}
}
