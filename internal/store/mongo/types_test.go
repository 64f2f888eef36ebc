package mongo

import (
	"testing"
	"time"

	"github.com/ceylonsure/motor-risk/internal/core"
)

func TestAssessmentDocRoundTrip(t *testing.T) {
	prob := 0.85
	unc := 0.357
	a := core.RiskAssessment{
		ID:                 "A1",
		CustomerID:         "CUST100",
		RiskProbability:    0.85,
		RiskLabel:          core.RiskHigh,
		EBMProbability:     0.18,
		NGBoostProbability: &prob,
		NGBoostUncertainty: &unc,
		EscalateToNGBoost:  true,
		DriverAgeBand:      "25_34",
		VehicleAgeBand:     "4_7",
		CreatedAt:          time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
	}

	got := fromAssessmentDoc(toAssessmentDoc(a))
	if got.ID != a.ID || got.RiskLabel != a.RiskLabel || got.RiskProbability != a.RiskProbability {
		t.Errorf("round trip changed the record: %+v", got)
	}
	if got.NGBoostProbability == nil || *got.NGBoostProbability != prob {
		t.Errorf("secondary probability = %v, want %v", got.NGBoostProbability, prob)
	}
	if !got.CreatedAt.Equal(a.CreatedAt) {
		t.Errorf("created at = %v, want %v", got.CreatedAt, a.CreatedAt)
	}
}

func TestAssessmentDocNilSecondary(t *testing.T) {
	a := core.RiskAssessment{ID: "A2", RiskLabel: core.RiskLow, RiskProbability: 0.05}

	got := fromAssessmentDoc(toAssessmentDoc(a))
	if got.NGBoostProbability != nil || got.NGBoostUncertainty != nil {
		t.Errorf("nil secondary fields did not survive: %+v", got)
	}
}
