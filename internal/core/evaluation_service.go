package core

import (
	"context"
	"fmt"
	"time"

	"github.com/ceylonsure/motor-risk/internal/platform/ids"
)

// EvaluationService is the single entry point for risk evaluation.
type EvaluationService interface {
	Evaluate(ctx context.Context, policy PolicyRecord) (RiskAssessment, error)
}

type evaluationService struct {
	primary     PrimaryScorer
	secondary   SecondaryScorer
	blacklist   Blacklist
	cfg         EscalationConfig
	assessments AssessmentRepo // optional audit trail; nil skips persistence
	clock       func() time.Time
}

func NewEvaluationService(
	primary PrimaryScorer,
	secondary SecondaryScorer,
	blacklist Blacklist,
	cfg EscalationConfig,
	assessments AssessmentRepo,
) EvaluationService {
	return &evaluationService{
		primary:     primary,
		secondary:   secondary,
		blacklist:   blacklist,
		cfg:         cfg,
		assessments: assessments,
		clock:       time.Now,
	}
}

// Evaluate runs the pipeline: blacklist gate, feature derivation,
// primary scoring, escalation decision, optional secondary scoring,
// reconciliation. All-or-nothing: any failure surfaces to the caller
// and no partial result is returned.
func (s *evaluationService) Evaluate(ctx context.Context, policy PolicyRecord) (RiskAssessment, error) {
	// 1) blacklist gate, before any model work
	customerID := policy.CustomerID()
	if s.blacklist != nil && customerID != "" {
		listed, err := s.blacklist.Contains(ctx, customerID)
		if err != nil {
			return RiskAssessment{}, fmt.Errorf("blacklist check: %w", err)
		}
		if listed {
			return RiskAssessment{}, fmt.Errorf("%w: %s", ErrBlacklisted, customerID)
		}
	}

	// 2) feature derivation (augmented copy; caller's record untouched)
	features, err := DeriveFeatures(policy)
	if err != nil {
		return RiskAssessment{}, err
	}

	// 3) primary model
	primaryProb, err := s.primary.Score(ctx, features)
	if err != nil {
		return RiskAssessment{}, fmt.Errorf("%w: primary: %v", ErrModelInference, err)
	}

	driverBand, _ := features.String(FieldDriverAgeBand)
	vehicleBand, _ := features.String(FieldVehicleAgeBand)

	a := RiskAssessment{
		ID:                s.newID(),
		CustomerID:        customerID,
		EBMProbability:    primaryProb,
		RiskProbability:   primaryProb,
		EscalateToNGBoost: s.cfg.ShouldEscalate(primaryProb),
		DriverAgeBand:     driverBand,
		VehicleAgeBand:    vehicleBand,
		CreatedAt:         s.clock(),
	}

	// 4) secondary opinion, only when the primary signal is ambiguous
	// or high
	if a.EscalateToNGBoost {
		sec, err := s.secondary.Score(ctx, features)
		if err != nil {
			return RiskAssessment{}, fmt.Errorf("%w: secondary: %v", ErrModelInference, err)
		}
		prob := sec.Probability
		unc := sec.Uncertainty
		a.NGBoostProbability = &prob
		a.NGBoostUncertainty = &unc

		// 5) reconciliation
		a.RiskProbability = s.cfg.Reconcile(primaryProb, prob)
	}

	// display label always derives from the final probability
	a.RiskLabel = s.cfg.Label(a.RiskProbability)

	if s.assessments != nil {
		if err := s.assessments.Create(ctx, a); err != nil {
			return RiskAssessment{}, fmt.Errorf("persist assessment: %w", err)
		}
	}

	return a, nil
}

func (s *evaluationService) newID() string {
	return ids.New()
}
