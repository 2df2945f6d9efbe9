package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"keyword-radar/pkg/storage"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded analysis runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.PersistentFlags().BoolVar(&historyJSON, "json", false, "Output as JSON")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to list")
	historyCmd.AddCommand(historyShowCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyLimit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", historyLimit)
	}

	_, rt, err := buildRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	runs, err := rt.History.ListRuns(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if historyJSON {
		return writeJSON(w, runs)
	}
	_, err = io.WriteString(w, formatRuns(runs))
	return err
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	_, rt, err := buildRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	report, err := rt.History.LoadRun(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("run %s not found", args[0])
		}
		return err
	}
	return printReport(cmd.OutOrStdout(), report, historyJSON)
}
