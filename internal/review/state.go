package review

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"vaultsweep/internal/settings"
)

// StateFileName is the progress record's name inside the vault root.
const StateFileName = ".vaultsweep-progress.json"

// State is the durable, resumable record of one review run. It is saved
// after every terminal decision and removed only when the session
// completes exhaustively.
type State struct {
	StartedAt     string                  `json:"started_at"`
	Processed     map[string]DecisionKind `json:"processed"`
	Counts        Counts                  `json:"counts"`
	EnhancedPaths []string                `json:"enhanced_paths"`
	DeletedPaths  []string                `json:"deleted_paths"`
	// Config is the auto-decision snapshot in effect when the session was
	// created. Informational only: a resumed session runs under the
	// currently active config.
	Config settings.AutoDecision `json:"config"`

	path string // filesystem location (not serialized)
}

// NewState creates a fresh session record.
func NewState(path string, cfg settings.AutoDecision) *State {
	return &State{
		StartedAt: time.Now().UTC().Format(time.RFC3339),
		Processed: make(map[string]DecisionKind),
		Config:    cfg,
		path:      path,
	}
}

// LoadState reads a persisted session record. A missing, unreadable, or
// corrupt file fails soft: ok is false and the caller starts fresh.
func LoadState(path string) (state *State, ok bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, false
	}
	if s.Processed == nil {
		s.Processed = make(map[string]DecisionKind)
	}
	s.path = path
	return &s, true
}

// Save serializes the state. Idempotent overwrite; called after every
// terminal decision.
func (s *State) Save() error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing session state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing session state to %s: %w", s.path, err)
	}
	return nil
}

// Remove deletes the progress record after exhaustive completion.
func (s *State) Remove() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session state: %w", err)
	}
	return nil
}

// IsProcessed reports whether a note already has a terminal decision.
func (s *State) IsProcessed(path string) bool {
	_, ok := s.Processed[path]
	return ok
}

// RecordKeep marks a note kept.
func (s *State) RecordKeep(path string) {
	if s.Processed[path] != DecisionKept {
		s.Counts.Kept++
	}
	s.Processed[path] = DecisionKept
}

// RecordDelete marks a note deleted.
func (s *State) RecordDelete(path string) {
	if s.Processed[path] != DecisionDeleted {
		s.Counts.Deleted++
		s.DeletedPaths = append(s.DeletedPaths, path)
	}
	s.Processed[path] = DecisionDeleted
}

// RecordSkip marks a note skipped by the operator.
func (s *State) RecordSkip(path string) {
	if s.Processed[path] != DecisionSkipped {
		s.Counts.Skipped++
	}
	s.Processed[path] = DecisionSkipped
}

// RecordUnreadable marks a note skipped for an encoding failure.
func (s *State) RecordUnreadable(path string) {
	if s.Processed[path] != DecisionUnreadable {
		s.Counts.Unreadable++
	}
	s.Processed[path] = DecisionUnreadable
}

// RecordEnhanced notes an accepted enhancement. Not terminal: the note is
// re-scored afterwards and its keep/delete decision recorded separately.
func (s *State) RecordEnhanced(path string) {
	s.Counts.Enhanced++
	s.EnhancedPaths = append(s.EnhancedPaths, path)
}

// StartedTime parses StartedAt; falls back to now for hand-edited files.
func (s *State) StartedTime() time.Time {
	t, err := time.Parse(time.RFC3339, s.StartedAt)
	if err != nil {
		return time.Now().UTC()
	}
	return t
}
