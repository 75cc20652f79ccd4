// Package settings holds the auto-decision configuration, persisted in the
// vault root independently of any single review session.
package settings

import (
	"encoding/json"
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FileName is the config record's name inside the vault root.
const FileName = ".vaultsweep-config.json"

// AutoDecision configures score-threshold gating for unattended decisions.
// Keep and delete threshold ranges are disjoint, so a score can never match
// both rules.
type AutoDecision struct {
	AutoKeepEnabled     bool `json:"auto_keep_enabled"`
	AutoKeepThreshold   int  `json:"auto_keep_threshold"`
	AutoDeleteEnabled   bool `json:"auto_delete_enabled"`
	AutoDeleteThreshold int  `json:"auto_delete_threshold"`
	Notify              bool `json:"notify"`
}

// Default returns the out-of-the-box configuration: auto-keep high scorers,
// never auto-delete.
func Default() AutoDecision {
	return AutoDecision{
		AutoKeepEnabled:     true,
		AutoKeepThreshold:   8,
		AutoDeleteEnabled:   false,
		AutoDeleteThreshold: 2,
		Notify:              true,
	}
}

// Validate enforces the threshold invariants.
func (c AutoDecision) Validate() error {
	if err := validation.ValidateStruct(&c,
		validation.Field(&c.AutoKeepThreshold, validation.Required, validation.Min(7), validation.Max(10)),
		validation.Field(&c.AutoDeleteThreshold, validation.Min(0), validation.Max(3)),
	); err != nil {
		return err
	}
	if c.AutoKeepThreshold <= c.AutoDeleteThreshold {
		return fmt.Errorf("auto_keep_threshold (%d) must be greater than auto_delete_threshold (%d)",
			c.AutoKeepThreshold, c.AutoDeleteThreshold)
	}
	return nil
}

// Load reads the config record at path. A missing or unparseable file
// yields the defaults; an invalid but parseable file is an error so bad
// thresholds never silently take effect.
func Load(path string) (AutoDecision, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	var c AutoDecision
	if err := json.Unmarshal(data, &c); err != nil {
		return Default(), nil
	}
	if err := c.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Save validates and writes the config record. Overwrite is idempotent.
func Save(path string, c AutoDecision) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}
