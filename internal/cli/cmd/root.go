// Package cmd provides Cobra CLI commands for nativeview.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/nativeview/internal/cli"
	"github.com/bnema/nativeview/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info
	configDir string
	rootCmd   = &cobra.Command{
		Use:   "nativeview",
		Short: "Native webview handles with a uniform state bridge",
		Long: `nativeview embeds platform web engines behind numeric handles and keeps
a uniform view state in sync with them.

Engines:
  - native     flat C ABI shared library loaded at runtime
  - webkitgtk  GTK4 WebKit (build with -tags webkit_cgo)
  - headless   in-process engine for tests and simulation

Use 'nativeview doctor' to see which engines are usable on this machine,
and 'nativeview simulate' to drive a view through the bridge without a
window system.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "gen-docs":
				return nil
			}

			var err error
			if configDir != "" {
				app, err = cli.NewAppAt(configDir)
			} else {
				app, err = cli.NewApp()
			}
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "read config.toml from this directory instead of the XDG config home")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

func requireApp() (*cli.App, error) {
	a := GetApp()
	if a == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return a, nil
}
