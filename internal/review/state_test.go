package review

import (
	"os"
	"path/filepath"
	"testing"

	"vaultsweep/internal/settings"
)

func TestState_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), StateFileName)
	s := NewState(path, settings.Default())
	s.RecordKeep("a.md")
	s.RecordDelete("b.md")
	s.RecordEnhanced("c.md")
	s.RecordKeep("c.md")
	s.RecordSkip("d.md")

	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, ok := LoadState(path)
	if !ok {
		t.Fatal("LoadState failed on a file Save just wrote")
	}
	if loaded.StartedAt != s.StartedAt {
		t.Errorf("StartedAt = %q, want %q", loaded.StartedAt, s.StartedAt)
	}
	if len(loaded.Processed) != 4 {
		t.Errorf("|processed| = %d, want 4", len(loaded.Processed))
	}
	if loaded.Processed["b.md"] != DecisionDeleted {
		t.Errorf("b.md = %q, want deleted", loaded.Processed["b.md"])
	}
	want := Counts{Kept: 2, Deleted: 1, Enhanced: 1, Skipped: 1}
	if loaded.Counts != want {
		t.Errorf("Counts = %+v, want %+v", loaded.Counts, want)
	}
	if len(loaded.DeletedPaths) != 1 || loaded.DeletedPaths[0] != "b.md" {
		t.Errorf("DeletedPaths = %v", loaded.DeletedPaths)
	}
	if len(loaded.EnhancedPaths) != 1 || loaded.EnhancedPaths[0] != "c.md" {
		t.Errorf("EnhancedPaths = %v", loaded.EnhancedPaths)
	}
}

func TestLoadState_MissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()

	if _, ok := LoadState(filepath.Join(dir, "absent.json")); ok {
		t.Error("LoadState must fail soft on a missing file")
	}

	corrupt := filepath.Join(dir, StateFileName)
	if err := os.WriteFile(corrupt, []byte("{{{"), 0644); err != nil {
		t.Fatalf("writing: %v", err)
	}
	if _, ok := LoadState(corrupt); ok {
		t.Error("LoadState must fail soft on a corrupt file")
	}
}

func TestState_RecordIdempotent(t *testing.T) {
	s := NewState(filepath.Join(t.TempDir(), StateFileName), settings.Default())
	s.RecordKeep("a.md")
	s.RecordKeep("a.md")
	if s.Counts.Kept != 1 {
		t.Errorf("Kept = %d, want 1 after duplicate record", s.Counts.Kept)
	}
	s.RecordDelete("b.md")
	s.RecordDelete("b.md")
	if s.Counts.Deleted != 1 || len(s.DeletedPaths) != 1 {
		t.Errorf("Deleted = %d, DeletedPaths = %v", s.Counts.Deleted, s.DeletedPaths)
	}
}

func TestState_Remove(t *testing.T) {
	path := filepath.Join(t.TempDir(), StateFileName)
	s := NewState(path, settings.Default())
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("progress record still exists after Remove")
	}
	// Removing twice is fine
	if err := s.Remove(); err != nil {
		t.Errorf("second Remove: %v", err)
	}
}
