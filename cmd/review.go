package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"vaultsweep/internal/history"
	"vaultsweep/internal/oracle"
	"vaultsweep/internal/review"
	"vaultsweep/internal/settings"
)

var (
	reviewFresh           bool
	reviewRecursive       bool
	reviewQuiet           bool
	reviewModel           string
	reviewAutoKeep        bool
	reviewNoAutoKeep      bool
	reviewAutoDelete      bool
	reviewKeepThreshold   int
	reviewDeleteThreshold int
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Interactively review every note in the vault",
	Long: `Scores each note through the AI oracle and walks through them one at a
time. Scores above the auto-keep threshold (or below the auto-delete
threshold, when enabled) are decided without prompting; everything else asks
for a single-keystroke decision: keep, delete, view, enhance, skip, or quit.

Progress is saved after every decision. An interrupted or quit session can
be resumed on the next run; the progress record is removed only when every
note has been decided.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := OpenVault()
		if err != nil {
			return err
		}

		cfg, err := settings.Load(v.StateFile(settings.FileName))
		if err != nil {
			return err
		}
		applyReviewFlags(cmd, &cfg)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid auto-decision settings: %w", err)
		}

		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is not set (export it or put it in .env)")
		}

		display := review.NewDisplay(reviewQuiet)
		input := review.NewTerminalReader()

		display.Status("Scanning vault: %s", v.Root())
		notes, err := v.Notes(reviewRecursive)
		if err != nil {
			return err
		}
		if len(notes) == 0 {
			display.Status("No markdown notes found")
			return nil
		}
		display.Status("Found %d notes", len(notes))

		state, err := review.LoadOrCreate(v.StateFile(review.StateFileName), cfg, input, display, reviewFresh)
		if err != nil {
			return err
		}

		hist, err := history.Open(v.StateFile(history.FileName))
		if err != nil {
			return err
		}
		defer hist.Close()

		retrier := oracle.NewRetrier()
		retrier.OnRetry = display.RetryCountdown

		engine := &review.Engine{
			Vault:   v,
			Oracle:  oracle.NewClient(apiKey, reviewModel),
			Retrier: retrier,
			Config:  cfg,
			Input:   input,
			Display: display,
			History: hist,
		}

		// A clean interrupt exits successfully with progress saved; the
		// engine honors it only at note boundaries.
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		start := time.Now()
		completed, err := engine.Run(ctx, notes, state)
		if err != nil {
			return err
		}
		if completed {
			if err := engine.Finalize(state); err != nil {
				return err
			}
		}
		display.Summary(state, time.Since(start))
		return nil
	},
}

// applyReviewFlags layers explicit command-line overrides on top of the
// persisted configuration. Overrides are session-only; `config set`
// persists them.
func applyReviewFlags(cmd *cobra.Command, cfg *settings.AutoDecision) {
	if cmd.Flags().Changed("auto-keep") {
		cfg.AutoKeepEnabled = reviewAutoKeep
	}
	if reviewNoAutoKeep {
		cfg.AutoKeepEnabled = false
	}
	if cmd.Flags().Changed("auto-delete") {
		cfg.AutoDeleteEnabled = reviewAutoDelete
	}
	if cmd.Flags().Changed("keep-threshold") {
		cfg.AutoKeepThreshold = reviewKeepThreshold
	}
	if cmd.Flags().Changed("delete-threshold") {
		cfg.AutoDeleteThreshold = reviewDeleteThreshold
	}
}

func init() {
	reviewCmd.Flags().BoolVar(&reviewFresh, "fresh", false, "Ignore any saved session and start over")
	reviewCmd.Flags().BoolVar(&reviewRecursive, "recursive", true, "Descend into subdirectories")
	reviewCmd.Flags().BoolVar(&reviewQuiet, "quiet", false, "Suppress non-essential output")
	reviewCmd.Flags().StringVar(&reviewModel, "model", "", "Override the scoring model")
	reviewCmd.Flags().BoolVar(&reviewAutoKeep, "auto-keep", true, "Keep high-scoring notes without prompting")
	reviewCmd.Flags().BoolVar(&reviewNoAutoKeep, "no-auto-keep", false, "Prompt for every note regardless of score")
	reviewCmd.Flags().BoolVar(&reviewAutoDelete, "auto-delete", false, "Delete low-scoring notes without prompting")
	reviewCmd.Flags().IntVar(&reviewKeepThreshold, "keep-threshold", 8, "Auto-keep at or above this score (7-10)")
	reviewCmd.Flags().IntVar(&reviewDeleteThreshold, "delete-threshold", 2, "Auto-delete at or below this score (0-3)")
	rootCmd.AddCommand(reviewCmd)
}
