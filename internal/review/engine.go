package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vaultsweep/internal/oracle"
	"vaultsweep/internal/settings"
	"vaultsweep/internal/vault"
)

// Engine drives the per-note review loop: score, auto-decide or prompt,
// optionally enhance and re-score, then record and persist the terminal
// decision. Strictly sequential; the session state on disk always reflects
// a clean note boundary.
type Engine struct {
	Vault   *vault.Vault
	Oracle  oracle.Oracle
	Retrier *oracle.Retrier
	Config  settings.AutoDecision
	Input   DecisionReader
	Display *Display
	History HistorySink
}

// LoadOrCreate returns the session state to run under. If a progress
// record exists its summary is shown and the operator is asked to resume;
// the default answer is a fresh start, an explicit affirmative is required
// to resume. Corrupt records fail soft to a fresh session. The fresh flag
// forces a new session without asking.
func LoadOrCreate(statePath string, cfg settings.AutoDecision, in DecisionReader, d *Display, fresh bool) (*State, error) {
	prior, ok := LoadState(statePath)
	if !ok || fresh {
		return NewState(statePath, cfg), nil
	}

	d.Status("Found a previous session from %s: %d processed (%d kept, %d deleted, %d skipped)",
		prior.StartedAt, len(prior.Processed), prior.Counts.Kept, prior.Counts.Deleted, prior.Counts.Skipped)
	resume, err := in.Confirm("Resume this session?", false)
	if err != nil {
		return nil, fmt.Errorf("reading resume answer: %w", err)
	}
	if !resume {
		return NewState(statePath, cfg), nil
	}
	// The active config wins on resume; the snapshot stays informational.
	return prior, nil
}

// Run processes every note that has no terminal decision yet. It returns
// completed=true only on exhaustive completion; quit and interruption
// leave the progress record in place for a later resume. The only error
// it returns is a persistence failure, which halts further processing.
func (e *Engine) Run(ctx context.Context, notes []string, state *State) (completed bool, err error) {
	total := len(notes)
	for i, note := range notes {
		// Interrupts are honored only here, at the note boundary, so the
		// persisted state never reflects a note mid-decision.
		select {
		case <-ctx.Done():
			e.Display.Status("Interrupted; progress saved, resume with the next run")
			return false, nil
		default:
		}

		if state.IsProcessed(note) {
			e.Display.Status("Skipping %s (already processed)", note)
			continue
		}

		e.Display.Status("Progress: %d/%d -- %s", i+1, total, note)

		content, err := e.Vault.Read(note)
		if err != nil {
			if errors.Is(err, vault.ErrNotUTF8) {
				e.Display.Warn("skipping %s: not valid UTF-8", note)
			} else {
				e.Display.Warn("skipping %s: %v", note, err)
			}
			state.RecordUnreadable(note)
			if err := e.persist(state); err != nil {
				return false, err
			}
			continue
		}

		quit, err := e.processNote(ctx, note, content, state, i+1, total)
		if err != nil {
			return false, err
		}
		if quit {
			e.Display.Status("Review stopped; progress saved")
			return false, nil
		}
	}
	return true, nil
}

// processNote runs one note through the decision state machine until a
// terminal decision is recorded or the operator quits the session.
func (e *Engine) processNote(ctx context.Context, note, content string, state *State, index, total int) (quit bool, err error) {
rescore:
	for {
		result := e.scoreNote(ctx, note, content)

		switch Decide(result.Score, e.Config) {
		case AutoKeep:
			if e.Config.Notify {
				e.Display.Decision(note, DecisionKept, true)
			}
			state.RecordKeep(note)
			return false, e.persist(state)

		case AutoDelete:
			return false, e.deleteNote(note, state, true)

		case Manual:
			e.Display.Panel(note, result, content, index, total)
			for {
				e.Display.PromptHelp()
				action, err := e.Input.ReadDecision()
				if err != nil {
					// Input gone (EOF, closed terminal): treat as quit.
					return true, e.persist(state)
				}
				switch action {
				case ActionView:
					e.Display.FullContent(note, content)
					continue

				case ActionEnhance:
					enhanced, accepted, err := e.enhanceNote(ctx, note, content, state)
					if err != nil {
						return false, err
					}
					if !accepted {
						continue
					}
					content = enhanced
					continue rescore

				case ActionKeep:
					e.Display.Decision(note, DecisionKept, false)
					state.RecordKeep(note)
					return false, e.persist(state)

				case ActionDelete:
					return false, e.deleteNote(note, state, false)

				case ActionSkip:
					e.Display.Decision(note, DecisionSkipped, false)
					state.RecordSkip(note)
					return false, e.persist(state)

				case ActionQuit:
					return true, e.persist(state)
				}
			}
		}
	}
}

// scoreNote produces a ScoreResult for the content, degrading to the
// neutral fallback on upstream failures so one bad note never stops the
// review. Empty notes short-circuit without an oracle call.
func (e *Engine) scoreNote(ctx context.Context, note, content string) oracle.ScoreResult {
	if strings.TrimSpace(content) == "" {
		return oracle.ScoreResult{
			Score:          0,
			Rationale:      "Empty file with no content",
			Recommendation: oracle.RecommendDelete,
		}
	}

	e.Display.Status("Analyzing: %s", note)
	result, err := e.Retrier.InvokeScore(ctx, func() (oracle.ScoreResult, error) {
		return e.Oracle.Score(ctx, note, content)
	})
	if err != nil {
		e.Display.Warn("scoring %s degraded to neutral: %v", note, err)
		return oracle.NeutralResult("upstream error")
	}
	return result
}

// deleteNote removes the note from storage and records the decision.
// Removal is the single irreversible operation in the system and happens
// as the last step before bookkeeping; a failed removal records a skip so
// the note is revisited in a later session.
func (e *Engine) deleteNote(note string, state *State, auto bool) error {
	if err := e.Vault.Delete(note); err != nil {
		e.Display.Warn("failed to delete %s: %v", note, err)
		state.RecordSkip(note)
		return e.persist(state)
	}
	if !auto || e.Config.Notify {
		e.Display.Decision(note, DecisionDeleted, auto)
	}
	state.RecordDelete(note)
	return e.persist(state)
}

// enhanceNote asks the oracle for enhanced content and applies it only if
// the safety validator accepts. On acceptance the new content is written,
// re-read, and returned for re-scoring. A rejection leaves the stored note
// untouched and is surfaced, not raised. The only error returned is a
// failed write of accepted content.
func (e *Engine) enhanceNote(ctx context.Context, note, content string, state *State) (string, bool, error) {
	e.Display.Status("Requesting enhancement for %s", note)
	candidate, err := e.Retrier.InvokeEnhance(ctx, func() (string, error) {
		return e.Oracle.Enhance(ctx, note, content)
	})
	if err != nil {
		e.Display.Rejection(fmt.Sprintf("enhancement unavailable: %v", err))
		return "", false, nil
	}

	verdict := ValidateEnhancement(content, candidate)
	if !verdict.Accepted {
		e.Display.Rejection(verdict.Reason)
		return "", false, nil
	}

	if err := e.Vault.Write(note, candidate); err != nil {
		return "", false, fmt.Errorf("persisting enhanced content: %w", err)
	}
	// Re-read so the re-score sees exactly what is on disk.
	stored, err := e.Vault.Read(note)
	if err != nil {
		return "", false, fmt.Errorf("re-reading enhanced note: %w", err)
	}

	state.RecordEnhanced(note)
	e.Display.Status("Enhancement accepted (%d -> %d chars); re-scoring", len(content), len(candidate))
	return stored, true, nil
}

// Finalize removes the progress record after exhaustive completion and
// appends the session summary to the history log.
func (e *Engine) Finalize(state *State) error {
	if err := state.Remove(); err != nil {
		return err
	}
	if e.History == nil {
		return nil
	}
	rec := SessionRecord{
		StartedAt:     state.StartedTime(),
		FinishedAt:    time.Now().UTC(),
		Counts:        state.Counts,
		EnhancedPaths: state.EnhancedPaths,
		DeletedPaths:  state.DeletedPaths,
	}
	if err := e.History.Append(rec); err != nil {
		return fmt.Errorf("appending session history: %w", err)
	}
	return nil
}

// persist saves the session state; a failure is fatal for further
// processing since continuing would risk losing resumability.
func (e *Engine) persist(state *State) error {
	if err := state.Save(); err != nil {
		return fmt.Errorf("session state not durable, stopping: %w", err)
	}
	return nil
}
