package core

import (
	"context"
	"fmt"
)

// maxReasonableClaim normalizes an expected claim amount into a 0-100
// risk score for renewal pricing.
const maxReasonableClaim = 1_500_000.0

// RenewalResult bundles the renewal evaluation outputs.
type RenewalResult struct {
	ExpectedClaimAmount float64          `json:"expected_claim_amount"`
	RiskScore           float64          `json:"risk_score"`
	PremiumBreakdown    PremiumBreakdown `json:"premium_breakdown"`
}

// RenewalService prices a renewal from the secondary model's expected
// claim amount rather than the classification pipeline.
type RenewalService interface {
	Evaluate(ctx context.Context, policy PolicyRecord, sumInsured, ncbPercent, otherDiscount float64) (RenewalResult, error)
}

type renewalService struct {
	secondary SecondaryScorer
	profile   PremiumProfile
}

func NewRenewalService(secondary SecondaryScorer, profile PremiumProfile) RenewalService {
	return &renewalService{secondary: secondary, profile: profile}
}

func (s *renewalService) Evaluate(ctx context.Context, policy PolicyRecord, sumInsured, ncbPercent, otherDiscount float64) (RenewalResult, error) {
	features, err := DeriveFeatures(policy)
	if err != nil {
		return RenewalResult{}, err
	}

	expected, err := s.secondary.ExpectedClaim(ctx, features)
	if err != nil {
		return RenewalResult{}, fmt.Errorf("%w: secondary: %v", ErrModelInference, err)
	}

	riskScore := RiskScoreFromClaim(expected)

	vehicleType, _ := features.String(FieldVehicleType)
	usageType, _ := features.String(FieldVehicleUsage)

	breakdown := s.profile.PriceRenewal(riskScore, sumInsured, ncbPercent, otherDiscount, vehicleType, usageType)

	return RenewalResult{
		ExpectedClaimAmount: round2(expected),
		RiskScore:           riskScore,
		PremiumBreakdown:    breakdown,
	}, nil
}

// RiskScoreFromClaim maps an expected claim amount onto 0-100, capped
// at the maximum reasonable claim.
func RiskScoreFromClaim(expectedClaim float64) float64 {
	score := min(expectedClaim/maxReasonableClaim, 1.0)
	if score < 0 {
		score = 0
	}
	return round2(score * 100)
}
