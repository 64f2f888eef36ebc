package core

import "fmt"

type RiskLabel string

const (
	RiskLow    RiskLabel = "LOW"
	RiskMedium RiskLabel = "MEDIUM"
	RiskHigh   RiskLabel = "HIGH"
)

// ReconciliationPolicy decides how the primary and secondary
// probabilities combine once the secondary model has been consulted.
type ReconciliationPolicy string

const (
	// ReconcileAgreement uses max(primary, secondary) only when the
	// secondary is confident the risk is elevated; otherwise the
	// primary probability stands.
	ReconcileAgreement ReconciliationPolicy = "agreement"

	// ReconcileSecondary always prefers the secondary probability once
	// it has been computed.
	ReconcileSecondary ReconciliationPolicy = "secondary"
)

// EscalationConfig holds the two label thresholds and the confidence
// bar used by the agreement policy. The thresholds come from offline
// model evaluation (cost-based and F1-based respectively).
type EscalationConfig struct {
	EscalateThreshold float64 // at/above -> MEDIUM, consult secondary
	HighThreshold     float64 // at/above -> HIGH
	HighConfidenceBar float64 // secondary probability required for override
	Policy            ReconciliationPolicy
}

// DefaultEscalationConfig mirrors the thresholds the models were
// signed off with.
func DefaultEscalationConfig() EscalationConfig {
	return EscalationConfig{
		EscalateThreshold: 0.155,
		HighThreshold:     0.20,
		HighConfidenceBar: 0.80,
		Policy:            ReconcileAgreement,
	}
}

func (c EscalationConfig) Validate() error {
	if c.EscalateThreshold >= c.HighThreshold {
		return fmt.Errorf("%w: escalate threshold %v must be below high threshold %v",
			ErrValidation, c.EscalateThreshold, c.HighThreshold)
	}
	if c.HighConfidenceBar <= 0 || c.HighConfidenceBar > 1 {
		return fmt.Errorf("%w: high confidence bar %v must be in (0, 1]",
			ErrValidation, c.HighConfidenceBar)
	}
	switch c.Policy {
	case ReconcileAgreement, ReconcileSecondary:
	default:
		return fmt.Errorf("%w: unknown reconciliation policy %q", ErrValidation, c.Policy)
	}
	return nil
}

// Label maps a probability to its risk label. Labels are monotonic in
// the probability.
func (c EscalationConfig) Label(p float64) RiskLabel {
	switch {
	case p >= c.HighThreshold:
		return RiskHigh
	case p >= c.EscalateThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// ShouldEscalate reports whether the primary probability warrants a
// secondary opinion.
func (c EscalationConfig) ShouldEscalate(primary float64) bool {
	return primary >= c.EscalateThreshold
}

// Reconcile combines the primary probability with the secondary one
// under the configured policy. Called only after escalation.
func (c EscalationConfig) Reconcile(primary, secondary float64) float64 {
	switch c.Policy {
	case ReconcileSecondary:
		return secondary
	default: // agreement
		if secondary >= c.HighConfidenceBar && primary >= c.EscalateThreshold {
			return max(primary, secondary)
		}
		return primary
	}
}
