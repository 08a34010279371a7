package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/nativeview/internal/bootstrap"
	"github.com/bnema/nativeview/internal/cli/styles"
	"github.com/bnema/nativeview/internal/infrastructure/config"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check which web engines are available",
	Long: `Probe every engine nativeview can drive and report whether it can create
views on this machine, with the engine version or the reason it is missing.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	engines, err := bootstrap.ProbeAll(a.Ctx(), a.Config.Engine)
	if err != nil {
		return fmt.Errorf("probe engines: %w", err)
	}

	report := styles.DoctorReport{
		Selected:   selectedEngine(a.Config.Engine.Kind, engines),
		Engines:    engines,
		ConfigFile: a.Manager.File(),
	}
	if a.Config.Journal.Enabled {
		report.JournalPath = a.Config.Journal.Path
		if report.JournalPath == "" {
			report.JournalPath, _ = config.GetDatabaseFile()
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), styles.NewDoctorRenderer(a.Theme).Render(report))
	if !report.OK() {
		return fmt.Errorf("no engine available")
	}
	return nil
}
