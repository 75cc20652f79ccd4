// Package oracle is the boundary to the external AI service that scores
// notes and proposes enhanced content. The engine never talks to the
// service directly: every call goes through the retry controller, and
// enhancement output is never trusted until the review validator accepts it.
package oracle

import (
	"context"
	"errors"
	"fmt"
)

// Recommendation is the oracle's keep/delete advice for a note.
type Recommendation string

const (
	RecommendKeep   Recommendation = "keep"
	RecommendDelete Recommendation = "delete"
)

// ScoreResult is the outcome of one scoring invocation. Score is always
// clamped into [0,10].
type ScoreResult struct {
	Score          int            `json:"score"`
	Rationale      string         `json:"rationale"`
	Recommendation Recommendation `json:"recommendation"`
}

// ErrRateLimited marks a transient upstream rate-limit failure. The retry
// controller recovers these; nothing else should.
var ErrRateLimited = errors.New("upstream rate limited")

// UpstreamError is any non-rate-limit oracle failure (malformed response,
// auth failure, network error). It is never retried: the engine contains
// it to the current note by falling back to a neutral score.
type UpstreamError struct {
	Op  string // "score" or "enhance"
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("oracle %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Oracle scores note content and proposes enhancements.
type Oracle interface {
	Score(ctx context.Context, path, content string) (ScoreResult, error)
	Enhance(ctx context.Context, path, content string) (string, error)
}

// ClampScore forces a raw score into [0,10].
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

// NeutralResult is the designated fallback when scoring degrades: after
// exhausted rate-limit retries or a non-transient upstream failure the
// session continues with this instead of aborting.
func NeutralResult(reason string) ScoreResult {
	return ScoreResult{
		Score:          5,
		Rationale:      "Scoring unavailable (" + reason + "); defaulting to a neutral score",
		Recommendation: RecommendKeep,
	}
}
