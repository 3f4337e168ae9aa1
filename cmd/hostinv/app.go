// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hostinv/hostinv/internal/config"
	"github.com/hostinv/hostinv/internal/descriptor"
	"github.com/hostinv/hostinv/internal/inventory"

	"github.com/charmbracelet/log"
)

const (
	// ModeNone means no output flag was given.
	ModeNone Mode = iota
	// ModeList writes the grouped inventory document.
	ModeList
	// ModeHost writes the variables of one host.
	ModeHost
	// ModeListText writes the flat list of host and group names.
	ModeListText
)

type (
	// Mode selects what the root command writes.
	Mode int

	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer; the root command delegates to Run.
	App struct {
		Config ConfigProvider
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Stdout io.Writer
		Stderr io.Writer
	}

	// Request captures one invocation's inputs.
	Request struct {
		Mode Mode
		// Host is the --host argument. It does not influence the output.
		Host string
		// ConfigPath is the explicit --config flag value.
		ConfigPath string
		// RootDir is the --root flag value.
		RootDir string
		// Verbose switches logging to debug level.
		Verbose bool
		// Pretty indents JSON output.
		Pretty bool
		// NoRootGroup leaves hosts out of the inv_<base> group.
		NoRootGroup bool
		// SkipInvalid skips malformed fragments regardless of the settings.
		SkipInvalid bool
		// Args are logged at debug level.
		Args []string
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}
)

// String returns the flag that selects m.
func (m Mode) String() string {
	switch m {
	case ModeList:
		return "--list"
	case ModeHost:
		return "--host"
	case ModeListText:
		return "--list-text"
	default:
		return "none"
	}
}

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}, nil
}

// Run loads the settings and writes the output selected by req.Mode. A
// missing host_vars directory yields no output and no error.
func (a *App) Run(ctx context.Context, req Request) error {
	if req.Mode == ModeNone {
		return errors.New("no output mode selected")
	}

	cfg, err := a.Config.Load(ctx, config.LoadOptions{
		ConfigFilePath: req.ConfigPath,
		RootDir:        req.RootDir,
	})
	if err != nil {
		return err
	}

	logger, closeLog := a.newLogger(cfg.LogPath, req.Verbose)
	defer closeLog()

	logger.Debug("invoked", "args", req.Args, "mode", req.Mode, "settings", cfg.SettingsFile)

	if info, err := os.Stat(cfg.HostsDir); err != nil || !info.IsDir() {
		logger.Debug("host_vars directory not found, nothing to do", "path", cfg.HostsDir)
		return nil
	}

	switch req.Mode {
	case ModeHost:
		logger.Debug("host variables requested", "host", req.Host)
		return writeJSON(a.stdout, hostVarsStub(), req.Pretty)
	case ModeList, ModeListText:
	default:
		return fmt.Errorf("unknown mode %d", req.Mode)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	inv, err := buildInventory(cfg, req, logger)
	if err != nil {
		return err
	}

	if req.Mode == ModeListText {
		names := inv.FlatList()
		logger.Debug("writing flat list", "names", len(names))
		return writeJSON(a.stdout, names, req.Pretty)
	}

	doc := inv.Document()
	logger.Debug("writing inventory", "groups", len(doc.Groups), "hostvars", len(doc.Meta.HostVars))
	return writeJSON(a.stdout, doc, req.Pretty)
}

// buildInventory collects the host_vars directory into a fresh Inventory.
func buildInventory(cfg *config.Config, req Request, logger *log.Logger) (*inventory.Inventory, error) {
	inv := inventory.New(inventory.WithGroupPrefix(cfg.GroupPrefix))
	for group, vars := range cfg.GroupVars {
		inv.AddGroupVars(group, vars)
	}

	loader := descriptor.NewLoader(
		descriptor.WithLogger(logger),
		descriptor.WithSkipInvalid(cfg.SkipInvalid || req.SkipInvalid),
	)

	opts := []inventory.CollectorOption{
		inventory.WithRules(inventory.ParsePathRules(cfg.GroupPath)...),
		inventory.WithFields(cfg.Fields...),
		inventory.WithCollectorLogger(logger),
	}
	if !req.NoRootGroup {
		opts = append(opts, inventory.WithRootGroup(inventory.RootGroupName(cfg.BaseDir)))
	}

	if err := inventory.NewCollector(inv, loader, opts...).Collect(cfg.HostsDir); err != nil {
		return nil, err
	}
	return inv, nil
}

// newLogger returns a logger writing to logPath, or to stderr when logPath
// is empty or cannot be opened. The returned func closes the log file.
func (a *App) newLogger(logPath string, verbose bool) (*log.Logger, func()) {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}

	newWith := func(w io.Writer) *log.Logger {
		return log.NewWithOptions(w, log.Options{
			Prefix:          config.AppName,
			Level:           level,
			ReportTimestamp: true,
		})
	}

	if logPath == "" {
		return newWith(a.stderr), func() {}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger := newWith(a.stderr)
		logger.Warn("cannot open log file, logging to stderr", "path", logPath, "err", err)
		return logger, func() {}
	}
	return newWith(f), func() { _ = f.Close() }
}
