package oracle

import (
	"strings"
	"testing"
)

func TestParseScorePayload_StrictJSON(t *testing.T) {
	text := `{"score": 8, "reasoning": "hub note with many links", "recommendation": "keep"}`
	result, err := ParseScorePayload(text)
	if err != nil {
		t.Fatalf("ParseScorePayload: %v", err)
	}
	if result.Score != 8 {
		t.Errorf("Score = %d, want 8", result.Score)
	}
	if result.Rationale != "hub note with many links" {
		t.Errorf("Rationale = %q", result.Rationale)
	}
	if result.Recommendation != RecommendKeep {
		t.Errorf("Recommendation = %q, want keep", result.Recommendation)
	}
}

func TestParseScorePayload_CodeFences(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"json fence", "```json\n{\"score\": 3, \"reasoning\": \"low value\", \"recommendation\": \"delete\"}\n```"},
		{"bare fence", "```\n{\"score\": 3, \"reasoning\": \"low value\", \"recommendation\": \"delete\"}\n```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseScorePayload(tt.text)
			if err != nil {
				t.Fatalf("ParseScorePayload: %v", err)
			}
			if result.Score != 3 || result.Recommendation != RecommendDelete {
				t.Errorf("got %+v, want score 3 delete", result)
			}
		})
	}
}

func TestParseScorePayload_EmbeddedJSON(t *testing.T) {
	text := "Here is my assessment:\n\n{\"score\": 6, \"reasoning\": \"moderate\", \"recommendation\": \"keep\"}\n\nLet me know if you need more."
	result, err := ParseScorePayload(text)
	if err != nil {
		t.Fatalf("ParseScorePayload: %v", err)
	}
	if result.Score != 6 || result.Recommendation != RecommendKeep {
		t.Errorf("got %+v, want score 6 keep", result)
	}
}

func TestParseScorePayload_ClampsScore(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{`{"score": 15, "recommendation": "keep"}`, 10},
		{`{"score": -3, "recommendation": "delete"}`, 0},
		{`{"score": 0, "recommendation": "delete"}`, 0},
	}
	for _, tt := range tests {
		result, err := ParseScorePayload(tt.raw)
		if err != nil {
			t.Fatalf("ParseScorePayload(%q): %v", tt.raw, err)
		}
		if result.Score != tt.want {
			t.Errorf("Score = %d, want %d for %q", result.Score, tt.want, tt.raw)
		}
	}
}

func TestParseScorePayload_DerivesRecommendation(t *testing.T) {
	result, err := ParseScorePayload(`{"score": 7, "reasoning": "good"}`)
	if err != nil {
		t.Fatalf("ParseScorePayload: %v", err)
	}
	if result.Recommendation != RecommendKeep {
		t.Errorf("score 7 without recommendation should derive keep, got %q", result.Recommendation)
	}

	result, err = ParseScorePayload(`{"score": 2, "reasoning": "stale"}`)
	if err != nil {
		t.Fatalf("ParseScorePayload: %v", err)
	}
	if result.Recommendation != RecommendDelete {
		t.Errorf("score 2 without recommendation should derive delete, got %q", result.Recommendation)
	}
}

func TestParseScorePayload_Malformed(t *testing.T) {
	for _, text := range []string{"", "I cannot score this note.", "{\"reasoning\": \"no score here\"}"} {
		if _, err := ParseScorePayload(text); err == nil {
			t.Errorf("expected error for %q", text)
		}
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", "plain text", "plain text"},
		{"json fence", "```json\ncontent\n```", "content"},
		{"fence with trailing prose kept out", "```\nabc\n```", "abc"},
		{"whitespace around", "  \n```json\n{\"a\":1}\n```\n ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFences(tt.in); got != tt.want {
				t.Errorf("StripCodeFences = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFirstBraceBlock_IgnoresBracesInStrings(t *testing.T) {
	in := `prefix {"reasoning": "uses {curly} braces", "score": 4} suffix`
	block := firstBraceBlock(in)
	if !strings.HasPrefix(block, "{") || !strings.HasSuffix(block, "}") {
		t.Fatalf("firstBraceBlock = %q", block)
	}
	result, err := ParseScorePayload(in)
	if err != nil {
		t.Fatalf("ParseScorePayload: %v", err)
	}
	if result.Score != 4 {
		t.Errorf("Score = %d, want 4", result.Score)
	}
}
