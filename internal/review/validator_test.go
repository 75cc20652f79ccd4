package review

import (
	"strings"
	"testing"
)

func TestValidateEnhancement_AppendOnly(t *testing.T) {
	original := "# Topic\n\nLine A\nLine B"
	candidate := original + "\n\n## More\n\nNew line 1\nNew line 2\nNew line 3"

	v := ValidateEnhancement(original, candidate)
	if !v.Accepted {
		t.Errorf("append-only candidate rejected: %s", v.Reason)
	}
}

func TestValidateEnhancement_NotLonger(t *testing.T) {
	tests := []struct {
		name      string
		original  string
		candidate string
	}{
		{"identical", "Line A\nLine B", "Line A\nLine B"},
		{"shorter", "Line A\nLine B", "Line A"},
		{"same length different content", "Line A\nLine B", "Line X\nLine Y"},
		{"empty candidate", "content", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValidateEnhancement(tt.original, tt.candidate)
			if v.Accepted {
				t.Error("expected rejection")
			}
			if v.Reason != "not longer than original" {
				t.Errorf("Reason = %q", v.Reason)
			}
		})
	}
}

func TestValidateEnhancement_DroppedMiddleLine(t *testing.T) {
	original := "Line A\nLine B"
	candidate := "Line A\nLine C\nLine D"

	v := ValidateEnhancement(original, candidate)
	if v.Accepted {
		t.Fatal("candidate silently dropping a line must be rejected")
	}
	if !strings.Contains(v.Reason, "Line B") {
		t.Errorf("rejection should name the missing line, got %q", v.Reason)
	}
}

func TestValidateEnhancement_Reordered(t *testing.T) {
	original := "First paragraph here.\nSecond paragraph here.\nThird paragraph here."
	candidate := "Third paragraph here.\nFirst paragraph here.\nSecond paragraph here.\nA brand new fourth paragraph."

	v := ValidateEnhancement(original, candidate)
	if v.Accepted {
		t.Error("reordered paragraphs must be rejected")
	}
}

func TestValidateEnhancement_SameLengthSwap(t *testing.T) {
	// Longer, but deletes content and re-adds different content elsewhere.
	original := "Alpha content\nBeta content\nGamma content"
	candidate := "Alpha content\nGamma content\nDelta content\nEpsilon padding data"

	v := ValidateEnhancement(original, candidate)
	if v.Accepted {
		t.Error("candidate dropping Beta must be rejected despite being longer")
	}
	if !strings.Contains(v.Reason, "Beta content") {
		t.Errorf("rejection should name the dropped line, got %q", v.Reason)
	}
}

func TestValidateEnhancement_InterleavedAdditions(t *testing.T) {
	original := "One\nTwo\nThree"
	candidate := "# Heading\nOne\nnote about one\nTwo\nnote about two\nThree\ntrailer"

	v := ValidateEnhancement(original, candidate)
	if !v.Accepted {
		t.Errorf("interleaved additions preserving order rejected: %s", v.Reason)
	}
}

func TestValidateEnhancement_WhitespaceRewrap(t *testing.T) {
	// Original wrapped at a narrow width; candidate re-wraps the same words
	// on different line boundaries and appends new material. Gate 2 fails,
	// the normalized-substring fallback must accept.
	original := "The quick brown fox\njumps over the lazy dog"
	candidate := "The quick brown fox jumps over the lazy dog\n\nAdded commentary about foxes and dogs."

	v := ValidateEnhancement(original, candidate)
	if !v.Accepted {
		t.Errorf("pure rewrap rejected: %s", v.Reason)
	}
}

func TestValidateEnhancement_RewrapWithLoss(t *testing.T) {
	original := "The quick brown fox\njumps over the lazy dog"
	candidate := "The quick brown fox jumps over a sleeping dog\n\nPlus plenty of additional padding text here."

	v := ValidateEnhancement(original, candidate)
	if v.Accepted {
		t.Error("rewrap that alters words must be rejected")
	}
}

func TestValidateEnhancement_TrimmedLinesMatch(t *testing.T) {
	original := "  indented line\ntrailing spaces   "
	candidate := "indented line\ntrailing spaces\nplenty of new additional content"

	v := ValidateEnhancement(original, candidate)
	if !v.Accepted {
		t.Errorf("trim-insensitive comparison should accept: %s", v.Reason)
	}
}

func TestValidateEnhancement_DropAnyLine(t *testing.T) {
	original := "Line one content\nLine two content\nLine three content\nLine four content"
	lines := strings.Split(original, "\n")
	for i := range lines {
		dropped := append(append([]string{}, lines[:i]...), lines[i+1:]...)
		candidate := strings.Join(dropped, "\n") + "\nreplacement filler so the candidate stays longer than the original text"
		v := ValidateEnhancement(original, candidate)
		if v.Accepted {
			t.Errorf("dropping line %d must be rejected", i)
		}
	}
}

func TestValidateEnhancement_NeverPanics(t *testing.T) {
	inputs := []struct{ o, c string }{
		{"", ""},
		{"", "something added"},
		{"\n\n\n", "\n\n\n\n\n"},
		{"x", strings.Repeat("y", 1000)},
	}
	for _, in := range inputs {
		_ = ValidateEnhancement(in.o, in.c) // must not panic
	}
}

func TestValidateEnhancement_EmptyOriginalAccepts(t *testing.T) {
	v := ValidateEnhancement("", "any new content at all")
	if !v.Accepted {
		t.Errorf("empty original with longer candidate should accept: %s", v.Reason)
	}
}
