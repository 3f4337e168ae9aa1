// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hostinv/hostinv/internal/config"
	"github.com/hostinv/hostinv/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlags holds the values bound to the root command's flags.
type rootFlags struct {
	list        bool
	host        string
	listText    bool
	configPath  string
	rootDir     string
	vaultIDs    []string
	verbose     bool
	pretty      bool
	noRootGroup bool
	skipInvalid bool
}

// mode picks the output mode. --list wins over --host, which wins over
// --list-text.
func (f *rootFlags) mode(cmd *cobra.Command) Mode {
	switch {
	case f.list:
		return ModeList
	case cmd.Flags().Changed("host"):
		return ModeHost
	case f.listText:
		return ModeListText
	default:
		return ModeNone
	}
}

func (f *rootFlags) request(mode Mode, args []string) Request {
	return Request{
		Mode:        mode,
		Host:        f.host,
		ConfigPath:  f.configPath,
		RootDir:     f.rootDir,
		Verbose:     f.verbose,
		Pretty:      f.pretty,
		NoRootGroup: f.noRootGroup,
		SkipInvalid: f.skipInvalid,
		Args:        args,
	}
}

// NewRootCommand builds the hostinv command around app.
func NewRootCommand(app *App) *cobra.Command {
	return newRootCommand(app, &rootFlags{})
}

func newRootCommand(app *App, flags *rootFlags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Ansible dynamic inventory built from host_vars descriptors",
		Long: TitleStyle.Render(config.AppName) + SubtitleStyle.Render(" - Ansible dynamic inventory built from host_vars descriptors") + `

hostinv reads one YAML/JSON descriptor (or a directory of fragments) per host
from host_vars and derives group memberships from descriptor fields, as
configured in ` + config.SettingsFileName + ` next to the executable.

` + SubtitleStyle.Render("Examples:") + `
  ` + CmdStyle.Render("hostinv --list") + `            Full inventory for ansible-inventory
  ` + CmdStyle.Render("hostinv --host web01") + `      Per-host variables (always {})
  ` + CmdStyle.Render("hostinv --list-text") + `       Every host and group name
  ` + CmdStyle.Render("ansible -i hostinv all -m ping"),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode := flags.mode(cmd)
			if mode == ModeNone {
				fmt.Fprint(app.stderr, cmd.UsageString())
				return &ExitError{Code: ExitUsage}
			}
			return app.Run(cmd.Context(), flags.request(mode, os.Args[1:]))
		},
	}

	fs := rootCmd.Flags()
	fs.BoolVar(&flags.list, "list", false, "list all groups and hosts")
	fs.StringVar(&flags.host, "host", "", "print the variables of a host")
	fs.BoolVar(&flags.listText, "list-text", false, "print every host and group name")
	fs.StringArrayVar(&flags.vaultIDs, "vault-id", nil, "vault identity (accepted for compatibility, ignored)")
	fs.StringVar(&flags.configPath, "config", "", "settings file (default is "+config.SettingsFileName+" in the root directory)")
	fs.StringVar(&flags.rootDir, "root", "", "directory relative settings paths resolve against (default is the executable's directory)")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "log at debug level")
	fs.BoolVar(&flags.pretty, "pretty", false, "indent JSON output")
	fs.BoolVar(&flags.noRootGroup, "no-root-group", false, "do not add hosts to the inv_<inventory base> group")
	fs.BoolVar(&flags.skipInvalid, "skip-invalid", false, "skip malformed descriptor fragments instead of failing")

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the root command and runs it. This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	flags := &rootFlags{}
	if err := fang.Execute(
		context.Background(),
		newRootCommand(app, flags),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			renderError(w, err, flags.verbose)
		}),
	); err != nil {
		os.Exit(exitCode(err))
	}
}

// renderError writes err to w. Bare exit codes print nothing: the usage text
// has already been written.
func renderError(w io.Writer, err error, verbose bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fmt.Fprintln(w, ErrorStyle.Render("Error:")+" "+formatErrorForDisplay(err, verbose))
}

// exitCode maps an error returned by the root command to a process status.
func exitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
