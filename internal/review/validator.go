package review

import (
	"fmt"
	"strings"
)

// Verdict is the enhancement validator's accept/reject decision. A
// rejection is a designed outcome, not an error: the stored note stays
// untouched and the reason is surfaced to the operator.
type Verdict struct {
	Accepted bool
	Reason   string
}

// ValidateEnhancement decides whether AI-generated candidate content may
// replace a note's stored content. The guarantee is no-loss: every unit of
// the original must be recoverable, verbatim, inside the candidate.
//
// Three gates, all required:
//  1. Length: the candidate must be strictly longer. A safe enhancement is
//     additive, so anything not longer cannot contain the original plus
//     additions.
//  2. Line coverage: every non-blank original line (compared after
//     trimming) must occur verbatim among the candidate's lines, in the
//     same relative order. Subsequence match; contiguity not required.
//  3. Substring fallback, consulted only when gate 2 fails: if the entire
//     original, with whitespace runs collapsed to single spaces, is a
//     contiguous substring of the candidate under the same normalization,
//     the failure was pure rewrapping and the candidate is accepted.
func ValidateEnhancement(original, candidate string) Verdict {
	if len(candidate) <= len(original) {
		return Verdict{Reason: "not longer than original"}
	}

	missing, ok := coverageGap(original, candidate)
	if ok {
		return Verdict{Accepted: true}
	}
	if normalizedSubstring(original, candidate) {
		return Verdict{Accepted: true}
	}
	return Verdict{Reason: fmt.Sprintf("original line missing or reordered: %q", missing)}
}

// coverageGap reports whether every non-blank trimmed original line occurs
// in order among the candidate's trimmed lines. On failure it returns the
// first original line that could not be matched.
func coverageGap(original, candidate string) (missing string, ok bool) {
	candidateLines := strings.Split(candidate, "\n")
	for i := range candidateLines {
		candidateLines[i] = strings.TrimSpace(candidateLines[i])
	}

	next := 0
	for _, raw := range strings.Split(original, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		found := false
		for next < len(candidateLines) {
			if candidateLines[next] == line {
				found = true
				next++
				break
			}
			next++
		}
		if !found {
			return line, false
		}
	}
	return "", true
}

// normalizedSubstring checks gate 3: whole-original containment after
// collapsing every whitespace run to a single space.
func normalizedSubstring(original, candidate string) bool {
	normOriginal := collapseWhitespace(original)
	if normOriginal == "" {
		return true
	}
	return strings.Contains(collapseWhitespace(candidate), normOriginal)
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
