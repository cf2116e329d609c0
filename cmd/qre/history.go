package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/careweave/qre-analyzer/internal/config"
	"github.com/careweave/qre-analyzer/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recent analysis runs",
		Long: `List recent analysis runs recorded in the local history database,
newest first.`,
		RunE: runHistory,
	}

	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to show")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	cfg := config.FromViper(viper.GetViper())
	store, err := storage.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open analysis history: %w", err)
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No analysis runs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ANALYZED\tFILE\tVALID\tERRORS\tWARNINGS\tINFO\tQUERY METHOD")
	for _, run := range runs {
		valid := "yes"
		if !run.IsValid {
			valid = "no"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			run.AnalyzedAt.Format("2006-01-02 15:04:05"),
			run.FilePath,
			valid,
			run.ErrorCount,
			run.WarningCount,
			run.InfoCount,
			run.QueryMethod,
		)
	}
	return w.Flush()
}
