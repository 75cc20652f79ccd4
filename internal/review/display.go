package review

import (
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/fatih/color"

	"vaultsweep/internal/oracle"
)

const previewLimit = 800

// Display renders operator-facing output for the review loop. Status
// lines go to stderr with a [review] prefix; decision panels and summaries
// go to stdout.
type Display struct {
	Out   io.Writer
	Err   io.Writer
	Quiet bool
}

// NewDisplay returns a Display wired to the process streams.
func NewDisplay(quiet bool) *Display {
	return &Display{Out: os.Stdout, Err: os.Stderr, Quiet: quiet}
}

// Status prints a non-essential progress line, suppressed by --quiet.
func (d *Display) Status(format string, args ...any) {
	if d.Quiet {
		return
	}
	fmt.Fprintf(d.Err, "[review] "+format+"\n", args...)
}

// Warn prints a warning line regardless of --quiet.
func (d *Display) Warn(format string, args ...any) {
	fmt.Fprintf(d.Err, "[review] Warning: "+format+"\n", args...)
}

// RetryCountdown is the Retrier's OnRetry hook: rate limits are shown as a
// countdown, never as a failure.
func (d *Display) RetryCountdown(attempt, max int, wait time.Duration) {
	d.Status("Rate limited, retrying in %s (attempt %d/%d)", wait.Round(time.Second), attempt+1, max)
}

// Panel shows the scored note to the operator ahead of a manual decision.
func (d *Display) Panel(notePath string, result oracle.ScoreResult, content string, index, total int) {
	fmt.Fprintf(d.Out, "\n%s\n", divider(80))
	fmt.Fprintf(d.Out, "File: %s  (%d/%d)\n", path.Base(notePath), index, total)
	fmt.Fprintf(d.Out, "Path: %s\n", notePath)
	fmt.Fprintf(d.Out, "Size: %d characters\n", len(content))
	fmt.Fprintf(d.Out, "Relevance Score: %s\n", scoreColor(result.Score).Sprintf("%d/10", result.Score))
	fmt.Fprintf(d.Out, "Preview: %s\n", FlattenPreview(content, previewLimit))
	fmt.Fprintf(d.Out, "AI Reasoning: %s\n", result.Rationale)
	fmt.Fprintf(d.Out, "AI Recommendation: %s\n", recommendationColor(result.Recommendation).Sprint(string(result.Recommendation)))
	fmt.Fprintln(d.Out, divider(80))
}

// FullContent re-displays the whole note (the "view" action).
func (d *Display) FullContent(notePath, content string) {
	fmt.Fprintf(d.Out, "\n--- %s ---\n%s\n--- end ---\n", notePath, content)
}

// PromptHelp lists the decision vocabulary before each keystroke read.
func (d *Display) PromptHelp() {
	fmt.Fprint(d.Out, "\n[k]eep (default)  [d]elete  [v]iew  [e]nhance  [s]kip  [q]uit: ")
}

// Decision echoes a terminal decision for a note.
func (d *Display) Decision(notePath string, kind DecisionKind, auto bool) {
	label := string(kind)
	if auto {
		label = "auto-" + label
	}
	var c *color.Color
	switch kind {
	case DecisionDeleted:
		c = color.New(color.FgRed)
	case DecisionKept:
		c = color.New(color.FgGreen)
	default:
		c = color.New(color.FgYellow)
	}
	fmt.Fprintf(d.Out, "%s: %s\n", c.Sprint(label), notePath)
}

// Rejection surfaces an enhancement validation rejection with its reason.
func (d *Display) Rejection(reason string) {
	fmt.Fprintf(d.Out, "%s %s\n", color.New(color.FgYellow).Sprint("Enhancement rejected:"), reason)
}

// Summary prints the end-of-session report.
func (d *Display) Summary(state *State, duration time.Duration) {
	fmt.Fprintf(d.Out, "\n%s\n", divider(60))
	fmt.Fprintln(d.Out, "REVIEW SESSION SUMMARY")
	fmt.Fprintln(d.Out, divider(60))
	fmt.Fprintf(d.Out, "%s\n", color.New(color.FgRed).Sprintf("Files deleted:  %d", state.Counts.Deleted))
	fmt.Fprintf(d.Out, "%s\n", color.New(color.FgGreen).Sprintf("Files kept:     %d", state.Counts.Kept))
	fmt.Fprintf(d.Out, "Files enhanced: %d\n", state.Counts.Enhanced)
	fmt.Fprintf(d.Out, "Files skipped:  %d", state.Counts.Skipped)
	if state.Counts.Unreadable > 0 {
		fmt.Fprintf(d.Out, " (+%d unreadable)", state.Counts.Unreadable)
	}
	fmt.Fprintln(d.Out)
	fmt.Fprintf(d.Out, "%s\n", color.New(color.FgCyan).Sprintf("Total processed: %d", len(state.Processed)))
	fmt.Fprintf(d.Out, "Duration: %s\n", FormatDurationShort(duration.Milliseconds()))

	if len(state.DeletedPaths) > 0 {
		fmt.Fprintf(d.Out, "\n%s\n", color.New(color.FgRed).Sprint("Deleted files:"))
		for _, p := range state.DeletedPaths {
			fmt.Fprintf(d.Out, "   - %s\n", p)
		}
	}
}

// scoreColor maps a score band to its display color.
func scoreColor(score int) *color.Color {
	switch {
	case score <= 2:
		return color.New(color.FgRed)
	case score <= 4:
		return color.New(color.FgYellow)
	case score <= 6:
		return color.New(color.FgCyan)
	case score <= 8:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgHiGreen)
	}
}

func recommendationColor(rec oracle.Recommendation) *color.Color {
	if rec == oracle.RecommendDelete {
		return color.New(color.FgRed)
	}
	return color.New(color.FgGreen)
}

func divider(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '='
	}
	return string(b)
}
