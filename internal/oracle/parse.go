package oracle

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ParseScorePayload extracts a ScoreResult from raw model output.
// Three layers, in priority order:
//  1. Strict JSON after stripping markdown code fences.
//  2. Tolerant field extraction (gjson) from the first {...} block, which
//     survives trailing prose and minor JSON sloppiness.
//  3. Keyword scan for a bare keep/delete recommendation; without a
//     parseable score this layer still fails.
//
// The returned score is always clamped into [0,10].
func ParseScorePayload(text string) (ScoreResult, error) {
	candidate := StripCodeFences(text)

	// Layer 1: strict JSON. A payload that parses but carries no score
	// falls through to the tolerant layers.
	var parsed struct {
		Score          *float64 `json:"score"`
		Reasoning      string   `json:"reasoning"`
		Rationale      string   `json:"rationale"`
		Recommendation string   `json:"recommendation"`
	}
	if err := json.Unmarshal([]byte(candidate), &parsed); err == nil && parsed.Score != nil {
		rationale := parsed.Reasoning
		if rationale == "" {
			rationale = parsed.Rationale
		}
		return buildResult(int(*parsed.Score), rationale, parsed.Recommendation), nil
	}

	// Layer 2: tolerant extraction from the first brace block
	if block := firstBraceBlock(candidate); block != "" {
		score := gjson.Get(block, "score")
		if score.Exists() {
			rationale := gjson.Get(block, "reasoning").String()
			if rationale == "" {
				rationale = gjson.Get(block, "rationale").String()
			}
			rec := gjson.Get(block, "recommendation").String()
			return buildResult(int(score.Int()), rationale, rec), nil
		}
	}

	// Layer 3: keyword scan needs at least a recommendation to be useful,
	// and even then there is no score to act on.
	return ScoreResult{}, fmt.Errorf("no score found in oracle response (%d bytes)", len(text))
}

// buildResult normalizes the recommendation and clamps the score. A missing
// or unrecognized recommendation is derived from the score band.
func buildResult(score int, rationale, recommendation string) ScoreResult {
	score = ClampScore(score)
	rec := mapRecommendation(recommendation)
	if rec == "" {
		if score >= 5 {
			rec = RecommendKeep
		} else {
			rec = RecommendDelete
		}
	}
	return ScoreResult{Score: score, Rationale: strings.TrimSpace(rationale), Recommendation: rec}
}

func mapRecommendation(s string) Recommendation {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "keep":
		return RecommendKeep
	case "delete":
		return RecommendDelete
	default:
		return ""
	}
}

// StripCodeFences removes a surrounding markdown code fence (```json ... ```
// or plain ``` ... ```) if present, returning the inner content trimmed.
func StripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	inner := strings.TrimPrefix(trimmed, "```")
	// Drop an optional language tag on the fence line
	if idx := strings.IndexByte(inner, '\n'); idx >= 0 {
		firstLine := strings.TrimSpace(inner[:idx])
		if firstLine == "" || isFenceTag(firstLine) {
			inner = inner[idx+1:]
		}
	}
	if idx := strings.LastIndex(inner, "```"); idx >= 0 {
		inner = inner[:idx]
	}
	return strings.TrimSpace(inner)
}

func isFenceTag(s string) bool {
	for _, c := range s {
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
			return false
		}
	}
	return true
}

// firstBraceBlock returns the first balanced top-level {...} block in s,
// or "" if none exists.
func firstBraceBlock(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
