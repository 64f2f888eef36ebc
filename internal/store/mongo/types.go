package mongo

import (
	"time"

	"github.com/ceylonsure/motor-risk/internal/core"
)

const (
	ColAssessments = "risk_assessments"
	ColBlacklist   = "blacklist"
)

// AssessmentDoc is the persisted audit-trail form of a RiskAssessment.
type AssessmentDoc struct {
	ID         string `bson:"_id"`
	CustomerID string `bson:"customer_id,omitempty"`

	RiskProbability    float64  `bson:"risk_probability"`
	RiskLabel          string   `bson:"risk_label"`
	EBMProbability     float64  `bson:"ebm_probability"`
	NGBoostProbability *float64 `bson:"ngboost_probability,omitempty"`
	NGBoostUncertainty *float64 `bson:"ngboost_uncertainty,omitempty"`
	EscalateToNGBoost  bool     `bson:"escalate_to_ngboost"`

	DriverAgeBand  string `bson:"driver_age_band"`
	VehicleAgeBand string `bson:"vehicle_age_band"`

	CreatedAt time.Time `bson:"created_at"`
}

func toAssessmentDoc(a core.RiskAssessment) AssessmentDoc {
	return AssessmentDoc{
		ID:                 a.ID,
		CustomerID:         a.CustomerID,
		RiskProbability:    a.RiskProbability,
		RiskLabel:          string(a.RiskLabel),
		EBMProbability:     a.EBMProbability,
		NGBoostProbability: a.NGBoostProbability,
		NGBoostUncertainty: a.NGBoostUncertainty,
		EscalateToNGBoost:  a.EscalateToNGBoost,
		DriverAgeBand:      a.DriverAgeBand,
		VehicleAgeBand:     a.VehicleAgeBand,
		CreatedAt:          a.CreatedAt,
	}
}

func fromAssessmentDoc(d AssessmentDoc) core.RiskAssessment {
	return core.RiskAssessment{
		ID:                 d.ID,
		CustomerID:         d.CustomerID,
		RiskProbability:    d.RiskProbability,
		RiskLabel:          core.RiskLabel(d.RiskLabel),
		EBMProbability:     d.EBMProbability,
		NGBoostProbability: d.NGBoostProbability,
		NGBoostUncertainty: d.NGBoostUncertainty,
		EscalateToNGBoost:  d.EscalateToNGBoost,
		DriverAgeBand:      d.DriverAgeBand,
		VehicleAgeBand:     d.VehicleAgeBand,
		CreatedAt:          d.CreatedAt,
	}
}

// BlacklistDoc stores one barred customer. The _id is the normalized
// identifier, so membership is a point read.
type BlacklistDoc struct {
	ID      string    `bson:"_id"`
	Reason  string    `bson:"reason,omitempty"`
	AddedAt time.Time `bson:"added_at,omitempty"`
}
