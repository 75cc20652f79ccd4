package review

import "vaultsweep/internal/settings"

// Outcome is the auto-decision policy's verdict for a score.
type Outcome int

const (
	Manual Outcome = iota
	AutoKeep
	AutoDelete
)

func (o Outcome) String() string {
	switch o {
	case AutoKeep:
		return "auto-keep"
	case AutoDelete:
		return "auto-delete"
	default:
		return "manual"
	}
}

// Decide maps a score to an unattended decision, or Manual when the
// operator must be asked. Pure function. Auto-keep is evaluated before
// auto-delete; the config invariant keeps the thresholds disjoint, so the
// ordering never matters on a given score, but it is fixed here for
// determinism.
func Decide(score int, cfg settings.AutoDecision) Outcome {
	if cfg.AutoKeepEnabled && score >= cfg.AutoKeepThreshold {
		return AutoKeep
	}
	if cfg.AutoDeleteEnabled && score <= cfg.AutoDeleteThreshold {
		return AutoDelete
	}
	return Manual
}
