package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"vaultsweep/internal/history"
	"vaultsweep/internal/review"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed review sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := OpenVault()
		if err != nil {
			return err
		}
		store, err := history.Open(v.StateFile(history.FileName))
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.List(historyLimit)
		if err != nil {
			return err
		}

		if historyJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		}

		if len(records) == 0 {
			fmt.Println("No completed sessions recorded.")
			return nil
		}
		for _, rec := range records {
			printRecord(rec)
		}
		return nil
	},
}

func printRecord(rec review.SessionRecord) {
	shortID := rec.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	duration := rec.FinishedAt.Sub(rec.StartedAt)
	fmt.Printf("%s  %s  kept=%d deleted=%d enhanced=%d skipped=%d (%s)\n",
		shortID,
		rec.FinishedAt.Format(time.RFC3339),
		rec.Counts.Kept, rec.Counts.Deleted, rec.Counts.Enhanced, rec.Counts.Skipped,
		review.FormatDurationShort(duration.Milliseconds()))
	for _, p := range rec.DeletedPaths {
		fmt.Printf("    deleted: %s\n", p)
	}
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Maximum sessions to list (0 = all)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(historyCmd)
}
