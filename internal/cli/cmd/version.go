package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/nativeview/internal/bootstrap"
	"github.com/bnema/nativeview/internal/cli/styles"
	"github.com/bnema/nativeview/internal/domain/entity"
	"github.com/bnema/nativeview/internal/infrastructure/config"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"about"},
	Short:   "Show version, build and engine information",
	RunE:    runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	engineVersion := ""
	if engines, err := bootstrap.ProbeAll(a.Ctx(), a.Config.Engine); err == nil {
		if name := selectedEngine(a.Config.Engine.Kind, engines); name != "" {
			for _, e := range engines {
				if e.Engine == name && e.Version != "" {
					engineVersion = name + " " + e.Version
				}
			}
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), styles.NewAboutRenderer(a.Theme).Render(a.BuildInfo, engineVersion))
	return nil
}

// selectedEngine returns the engine auto selection would pick, or the
// configured one when a kind is forced.
func selectedEngine(kind config.EngineKind, engines []entity.Availability) string {
	if kind != config.EngineAuto && kind != "" {
		return string(kind)
	}
	for _, e := range engines {
		if e.Available {
			return e.Engine
		}
	}
	return ""
}
