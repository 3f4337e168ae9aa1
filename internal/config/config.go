// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hostinv/hostinv/internal/cueutil"
	"github.com/hostinv/hostinv/internal/issue"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// groupPathSeparator mirrors inventory.PathSeparator; config does not import
// the inventory package.
const groupPathSeparator = "::"

//go:embed settings_schema.cue
var settingsSchema []byte

// RootDir returns the directory holding the running executable, with
// symlinks resolved. Relative settings paths resolve against it.
//
//nolint:revive // RootDir reads better than Dir for external callers
func RootDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	return filepath.Dir(realpath(exe)), nil
}

// loadWithOptions resolves the root directory, reads the optional dotenv and
// settings files and returns the resolved configuration.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	root := opts.RootDir
	if root == "" {
		dir, err := RootDir()
		if err != nil {
			return nil, err
		}
		root = dir
	}
	root = realpath(root)

	if err := loadEnvFile(filepath.Join(root, EnvFileName)); err != nil {
		return nil, err
	}

	v := viper.New()

	defaults := DefaultSettings()
	v.SetDefault("inventory_base", defaults.InventoryBase)
	v.SetDefault("inventory_path", defaults.InventoryPath)
	v.SetDefault("group_prefix", defaults.GroupPrefix)
	v.SetDefault("fields", defaults.Fields)
	v.SetDefault("skip_invalid", defaults.SkipInvalid)
	v.SetDefault("log_file", defaults.LogFile)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	settingsPath := opts.ConfigFilePath
	explicit := settingsPath != ""
	if !explicit {
		settingsPath = filepath.Join(root, SettingsFileName)
	}

	var raw map[string]any
	resolvedPath := ""

	switch {
	case fileExists(settingsPath):
		m, err := loadSettingsIntoViper(v, settingsPath)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load settings").
				WithResource(settingsPath).
				WithSuggestion("Check that the file contains a valid JSON object").
				WithSuggestion("Verify the option types: group_path values are strings or lists of strings, fields is a list").
				Wrap(err).
				BuildError()
		}
		raw = m
		resolvedPath = settingsPath
	case explicit:
		return nil, issue.NewErrorContext().
			WithOperation("load settings").
			WithResource(settingsPath).
			WithSuggestion("Verify the file path passed to --config is correct").
			WithSuggestion("Omit --config to use " + SettingsFileName + " next to the executable").
			Wrap(fmt.Errorf("%w: %s", ErrSettingsNotFound, settingsPath)).
			BuildError()
	}
	// Without a settings file the defaults apply.

	settings := DefaultSettings()
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	groupPath, err := groupPathFrom(raw["group_path"])
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("validate settings").
			WithResource(settingsPath).
			WithSuggestion(`Write each expression as field names joined by "::", for example "env::region"`).
			Wrap(err).
			BuildError()
	}
	settings.GroupPath = groupPath
	settings.GroupVars = groupVarsFrom(raw["group_vars"])

	cfg := &Config{
		Settings:     *settings,
		RootDir:      root,
		SettingsFile: resolvedPath,
	}
	cfg.resolvePaths()

	return cfg, nil
}

// loadEnvFile loads a dotenv file into the process environment. Variables
// already set are left alone. A missing file is not an error.
func loadEnvFile(path string) error {
	if !fileExists(path) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return issue.NewErrorContext().
			WithOperation("load environment file").
			WithResource(path).
			WithSuggestion("Use KEY=value lines, for example HOSTINV_GROUP_PREFIX=site").
			Wrap(err).
			BuildError()
	}
	return nil
}

// loadSettingsIntoViper compiles the JSON settings as CUE, validates them
// against #Settings and merges the result into v. The decoded document is
// returned with its key case intact.
func loadSettingsIntoViper(v *viper.Viper, path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	settingsMap, err := cueutil.ValidateToMap(settingsSchema, data, "#Settings",
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return nil, err
	}

	if err := v.MergeConfigMap(settingsMap); err != nil {
		return nil, fmt.Errorf("failed to merge settings: %w", err)
	}

	return settingsMap, nil
}

// groupPathFrom normalizes the decoded group_path option. A string becomes a
// one-element list and null an empty one, which the expander reads as the
// field named like the prefix.
func groupPathFrom(raw any) (map[string][]string, error) {
	out := map[string][]string{}

	entries, ok := raw.(map[string]any)
	if !ok {
		return out, nil
	}

	for prefix, value := range entries {
		if prefix == "" {
			return nil, &InvalidGroupPathError{Prefix: prefix, Reason: "empty group prefix"}
		}

		var exprs []string
		switch t := value.(type) {
		case nil:
		case string:
			exprs = []string{t}
		case []any:
			for _, item := range t {
				s, ok := item.(string)
				if !ok {
					return nil, &InvalidGroupPathError{Prefix: prefix, Reason: fmt.Sprintf("expression %v is not a string", item)}
				}
				exprs = append(exprs, s)
			}
		default:
			return nil, &InvalidGroupPathError{Prefix: prefix, Reason: fmt.Sprintf("unsupported value %T", value)}
		}

		for _, expr := range exprs {
			if expr == "" {
				continue
			}
			for _, segment := range strings.Split(expr, groupPathSeparator) {
				if strings.TrimSpace(segment) == "" {
					return nil, &InvalidGroupPathError{Prefix: prefix, Reason: fmt.Sprintf("expression %q has an empty field", expr)}
				}
			}
		}

		out[prefix] = exprs
	}

	return out, nil
}

// groupVarsFrom keeps the group_vars entries that are objects.
func groupVarsFrom(raw any) map[string]map[string]any {
	out := map[string]map[string]any{}

	entries, ok := raw.(map[string]any)
	if !ok {
		return out
	}
	for group, value := range entries {
		if vars, ok := value.(map[string]any); ok {
			out[group] = vars
		}
	}
	return out
}

// resolvePaths fills BaseDir, HostsDir and LogPath from the settings.
func (c *Config) resolvePaths() {
	switch base := c.InventoryBase; {
	case base == "":
		c.BaseDir = realpath(filepath.Join(c.RootDir, "..", ".."))
	case filepath.IsAbs(base):
		c.BaseDir = realpath(base)
	default:
		c.BaseDir = realpath(filepath.Join(c.RootDir, base))
	}

	switch p := c.InventoryPath; {
	case p == "":
		c.HostsDir = filepath.Join(c.RootDir, HostVarsDir)
	case filepath.IsAbs(p):
		c.HostsDir = filepath.Join(p, HostVarsDir)
	default:
		c.HostsDir = filepath.Join(c.RootDir, p, HostVarsDir)
	}

	switch l := c.LogFile; {
	case l == "":
		c.LogPath = ""
	case filepath.IsAbs(l):
		c.LogPath = l
	default:
		c.LogPath = filepath.Join(c.RootDir, l)
	}
}

// realpath returns the absolute, symlink-free form of path. Paths that do
// not exist are returned absolute and cleaned.
func realpath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs
	}
	return resolved
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false
	}
	return err == nil && !info.IsDir()
}
