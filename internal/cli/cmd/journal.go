package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/nativeview/internal/bootstrap"
	"github.com/bnema/nativeview/internal/cli/styles"
	"github.com/bnema/nativeview/internal/domain/entity"
)

var (
	journalSession string
	journalLimit   int
	journalStats   bool
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show the navigation journal",
	Long: `Show recorded view events: committed URLs, rejected navigations, native
failures, renderer crashes and recreations.

Examples:
  nativeview journal                       # 50 newest entries
  nativeview journal --session 20260101_1  # one process session
  nativeview journal --stats               # counts per kind`,
	RunE: runJournal,
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.Flags().StringVarP(&journalSession, "session", "s", "", "only entries of this session")
	journalCmd.Flags().IntVarP(&journalLimit, "limit", "n", 50, "maximum number of entries")
	journalCmd.Flags().BoolVar(&journalStats, "stats", false, "show counts per kind instead of entries")
}

func runJournal(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	j, err := bootstrap.OpenJournal(a.Config.Journal)
	if err != nil {
		return err
	}
	if j == nil {
		return fmt.Errorf("journal is disabled (set journal.enabled = true)")
	}
	defer func() { _ = j.Close(a.Ctx()) }()

	renderer := styles.NewJournalRenderer(a.Theme)
	repo := j.Repository()
	ctx := a.Ctx()

	if journalStats {
		counts, err := repo.CountByKind(ctx)
		if err != nil {
			return fmt.Errorf("count journal entries: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderStats(counts))
		return nil
	}

	var entries []*entity.JournalEntry
	if journalSession != "" {
		entries, err = repo.BySession(ctx, journalSession, journalLimit)
	} else {
		entries, err = repo.Recent(ctx, journalLimit)
	}
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderEntries(entries))
	return nil
}
