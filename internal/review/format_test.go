package review

import "testing"

func TestFormatDurationShort(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{500, "0.5s"},
		{1500, "1.5s"},
		{65000, "1m5s"},
		{3700000, "1h1m"},
	}
	for _, tt := range tests {
		if got := FormatDurationShort(tt.ms); got != tt.want {
			t.Errorf("FormatDurationShort(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	tests := []struct {
		s      string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"abcdefghijklmnop", 10, "abcd...nop"},
		{"abc", 2, "ab"},
	}
	for _, tt := range tests {
		if got := TruncateMiddle(tt.s, tt.maxLen); got != tt.want {
			t.Errorf("TruncateMiddle(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
		}
	}
}

func TestFlattenPreview(t *testing.T) {
	got := FlattenPreview("line one\nline two\nline three", 17)
	if got != "line one line two..." {
		t.Errorf("FlattenPreview = %q", got)
	}
	got = FlattenPreview("short note", 800)
	if got != "short note" {
		t.Errorf("FlattenPreview = %q", got)
	}
}
