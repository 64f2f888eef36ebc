package core

import (
	"context"
	"time"
)

// RiskAssessment is the immutable output of one pipeline run. The
// band fields are carried for audit and debug display.
type RiskAssessment struct {
	ID         string `json:"id,omitempty"`
	CustomerID string `json:"customer_id,omitempty"`

	RiskProbability    float64   `json:"risk_probability"`
	RiskLabel          RiskLabel `json:"risk_label"`
	EBMProbability     float64   `json:"ebm_probability"`
	NGBoostProbability *float64  `json:"ngboost_probability"` // nil unless escalated
	NGBoostUncertainty *float64  `json:"ngboost_uncertainty"` // nil unless escalated
	EscalateToNGBoost  bool      `json:"escalate_to_ngboost"`

	DriverAgeBand  string `json:"driver_age_band"`
	VehicleAgeBand string `json:"vehicle_age_band"`

	CreatedAt time.Time `json:"created_at,omitempty"`
}

// AssessmentRepo persists assessments for the audit trail.
type AssessmentRepo interface {
	Create(ctx context.Context, a RiskAssessment) error
	Get(ctx context.Context, id string) (RiskAssessment, error)
}

// SecondaryScore is the secondary model's opinion: the positive-class
// probability plus a closed-form uncertainty proxy.
type SecondaryScore struct {
	Probability float64
	Uncertainty float64
}

// PrimaryScorer wraps the pretrained binary classifier.
type PrimaryScorer interface {
	Score(ctx context.Context, features PolicyRecord) (float64, error)
}

// SecondaryScorer wraps the pretrained distributional regressor. It is
// consulted only when the escalation engine asks for it.
type SecondaryScorer interface {
	Score(ctx context.Context, features PolicyRecord) (SecondaryScore, error)

	// ExpectedClaim returns the distribution mean, read as an expected
	// claim amount by the renewal path.
	ExpectedClaim(ctx context.Context, features PolicyRecord) (float64, error)
}
