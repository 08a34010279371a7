package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bnema/nativeview/internal/cli/styles"
	"github.com/bnema/nativeview/internal/infrastructure/config"
)

var (
	configForce      bool
	configSchemaPath string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Write the default configuration, show where it lives and export its JSON schema.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Long: `Write config.toml with every default setting.

An existing file is left untouched unless --force is given.`,
	RunE: runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE:  runConfigPath,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print or write the config JSON schema",
	Long: `Print the JSON schema of config.toml, or write it with --output so editors
with TOML schema support can validate the file.`,
	RunE: runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSchemaCmd)
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing config file")
	configSchemaCmd.Flags().StringVarP(&configSchemaPath, "output", "o", "", "write the schema to this file")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewConfigRenderer(a.Theme)
	path := a.Manager.File()

	// Loading the app writes defaults when no file exists, so only an
	// explicit overwrite has work left to do.
	if _, statErr := os.Stat(path); statErr == nil && !configForce {
		fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderExists(path))
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := config.WriteConfigOrdered(config.DefaultConfig(), path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderWritten("Wrote", path))
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	path := a.Manager.File()
	_, statErr := os.Stat(path)
	fmt.Fprintln(cmd.OutOrStdout(), styles.NewConfigRenderer(a.Theme).RenderPath(path, statErr == nil))
	return nil
}

func runConfigSchema(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	if configSchemaPath == "" {
		data, err := config.Schema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	if err := config.WriteSchemaFile(configSchemaPath); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), styles.NewConfigRenderer(a.Theme).RenderWritten("Wrote schema", configSchemaPath))
	return nil
}
