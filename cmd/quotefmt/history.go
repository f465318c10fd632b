package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/quotefmt/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent normalization runs",
	Long: `History lists runs recorded in the history ledger, newest first,
with the per-file quote counts of each run. Recording is enabled with
the --history flag or the history.enabled config key.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 10, "maximum number of runs to show")
	historyCmd.Flags().String("format", "table", "output format: table, yaml, or json")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	store, err := history.NewStore(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}

	switch format {
	case "table":
		printRuns(os.Stdout, runs)
		return nil
	case "yaml":
		data, err := yaml.Marshal(runs)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	case "json":
		data, err := json.MarshalIndent(runs, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	default:
		return fmt.Errorf("unknown format %q (expected table, yaml, or json)", format)
	}
}

func printRuns(w io.Writer, runs []history.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No recorded runs.")
		return
	}

	for _, run := range runs {
		fmt.Fprintf(w, "run %d  %s  %d/%d files succeeded\n",
			run.ID, run.StartedAt.Local().Format(time.RFC3339), run.Succeeded, run.Total())
		for _, f := range run.Files {
			if f.Succeeded {
				fmt.Fprintf(w, "  ok     %s (quotes: %d, left: %d, right: %d)\n",
					f.Path, f.Quotes, f.Left, f.Right)
			} else {
				fmt.Fprintf(w, "  failed %s (%s)\n", f.Path, f.Message)
			}
		}
	}
}
