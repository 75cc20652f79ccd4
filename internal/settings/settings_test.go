package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate_Thresholds(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AutoDecision)
		wantErr bool
	}{
		{"defaults", func(c *AutoDecision) {}, false},
		{"keep threshold at floor", func(c *AutoDecision) { c.AutoKeepThreshold = 7 }, false},
		{"keep threshold at ceiling", func(c *AutoDecision) { c.AutoKeepThreshold = 10 }, false},
		{"keep threshold too low", func(c *AutoDecision) { c.AutoKeepThreshold = 6 }, true},
		{"keep threshold too high", func(c *AutoDecision) { c.AutoKeepThreshold = 11 }, true},
		{"delete threshold at ceiling", func(c *AutoDecision) { c.AutoDeleteThreshold = 3 }, false},
		{"delete threshold too high", func(c *AutoDecision) { c.AutoDeleteThreshold = 4 }, true},
		{"delete threshold negative", func(c *AutoDecision) { c.AutoDeleteThreshold = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr && err == nil {
				t.Errorf("expected validation error for %+v", c)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c != Default() {
		t.Errorf("expected defaults, got %+v", c)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("writing: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c != Default() {
		t.Errorf("expected defaults for corrupt file, got %+v", c)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	c := AutoDecision{
		AutoKeepEnabled:     true,
		AutoKeepThreshold:   9,
		AutoDeleteEnabled:   true,
		AutoDeleteThreshold: 1,
		Notify:              false,
	}
	if err := Save(path, c); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != c {
		t.Errorf("round trip = %+v, want %+v", got, c)
	}
}

func TestSave_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	c := Default()
	c.AutoKeepThreshold = 3
	if err := Save(path, c); err == nil {
		t.Error("expected error saving invalid config")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("invalid config must not be written")
	}
}
