package review

import "time"

// DecisionKind is the terminal decision recorded for a processed note.
type DecisionKind string

const (
	DecisionKept       DecisionKind = "kept"
	DecisionDeleted    DecisionKind = "deleted"
	DecisionSkipped    DecisionKind = "skipped"
	DecisionUnreadable DecisionKind = "unreadable"
)

// Action is one operator keystroke at the manual decision prompt.
type Action int

const (
	ActionKeep Action = iota // default on bare Enter
	ActionDelete
	ActionView
	ActionEnhance
	ActionSkip
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionKeep:
		return "keep"
	case ActionDelete:
		return "delete"
	case ActionView:
		return "view"
	case ActionEnhance:
		return "enhance"
	case ActionSkip:
		return "skip"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Counts tracks per-session decision totals. Monotone within a session.
// Unreadable covers notes skipped for encoding failures, counted apart
// from operator skips.
type Counts struct {
	Kept       int `json:"kept"`
	Deleted    int `json:"deleted"`
	Enhanced   int `json:"enhanced"`
	Skipped    int `json:"skipped"`
	Unreadable int `json:"unreadable"`
}

// SessionRecord is the durable summary of one completed session, appended
// to the history store when a session finishes exhaustively.
type SessionRecord struct {
	ID            string
	StartedAt     time.Time
	FinishedAt    time.Time
	Counts        Counts
	EnhancedPaths []string
	DeletedPaths  []string
}

// HistorySink receives completed-session records.
type HistorySink interface {
	Append(rec SessionRecord) error
}
