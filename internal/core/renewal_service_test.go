package core

import (
	"context"
	"errors"
	"testing"
)

type fakeClaimModel struct {
	claim float64
	err   error
	calls int
}

func (f *fakeClaimModel) Score(_ context.Context, _ PolicyRecord) (SecondaryScore, error) {
	return SecondaryScore{}, errors.New("renewal path must not classify")
}

func (f *fakeClaimModel) ExpectedClaim(_ context.Context, _ PolicyRecord) (float64, error) {
	f.calls++
	return f.claim, f.err
}

func TestRiskScoreFromClaim(t *testing.T) {
	cases := []struct {
		claim float64
		want  float64
	}{
		{0, 0},
		{-50_000, 0},     // regression head can dip negative
		{750_000, 50},    // half of the cap
		{1_500_000, 100}, // at the cap
		{4_000_000, 100}, // capped
		{150_000, 10},
	}
	for _, tc := range cases {
		if got := RiskScoreFromClaim(tc.claim); got != tc.want {
			t.Errorf("RiskScoreFromClaim(%v) = %v, want %v", tc.claim, got, tc.want)
		}
	}
}

func TestRenewalEvaluate(t *testing.T) {
	model := &fakeClaimModel{claim: 750_000}
	svc := NewRenewalService(model, DefaultPremiumProfile())

	policy := PolicyRecord{
		FieldDriverAge:       float64(40),
		FieldVehicleAgeYears: float64(6),
		FieldVehicleType:     "Car",
		FieldVehicleUsage:    "Private",
	}

	res, err := svc.Evaluate(context.Background(), policy, 5_000_000, 0, 0)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if model.calls != 1 {
		t.Errorf("ExpectedClaim called %d times, want 1", model.calls)
	}
	if res.ExpectedClaimAmount != 750_000 {
		t.Errorf("ExpectedClaimAmount = %v, want 750000", res.ExpectedClaimAmount)
	}
	if res.RiskScore != 50 {
		t.Errorf("RiskScore = %v, want 50", res.RiskScore)
	}

	b := res.PremiumBreakdown
	if b.BasePremium != 140000 {
		t.Errorf("BasePremium = %v, want 140000", b.BasePremium)
	}
	if b.RiskLoadingPercent != 50 || b.RiskLoadingAmount != 70000 {
		t.Errorf("loading = %v%% / %v, want 50%% / 70000", b.RiskLoadingPercent, b.RiskLoadingAmount)
	}
	if b.RebatePercent != 12.5 || b.RebateAmount != 17500 {
		t.Errorf("rebate = %v%% / %v, want 12.5%% / 17500", b.RebatePercent, b.RebateAmount)
	}
	if b.NetPremiumBeforeFees != 192500 {
		t.Errorf("NetPremiumBeforeFees = %v, want 192500", b.NetPremiumBeforeFees)
	}
	// rounded components, so allow a cent either way
	if diff := b.TotalPayable - b.PremiumBeforeVAT*1.18; diff > 0.02 || diff < -0.02 {
		t.Errorf("TotalPayable = %v, want before-VAT %v plus 18%%", b.TotalPayable, b.PremiumBeforeVAT)
	}
}

func TestRenewalEvaluateMissingBand(t *testing.T) {
	svc := NewRenewalService(&fakeClaimModel{claim: 100_000}, DefaultPremiumProfile())

	_, err := svc.Evaluate(context.Background(), PolicyRecord{FieldDriverAge: 30.0}, 4_000_000, 0, 0)
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("err = %v, want ErrMissingField", err)
	}
}

func TestRenewalEvaluateModelFailure(t *testing.T) {
	svc := NewRenewalService(&fakeClaimModel{err: errors.New("feature drift")}, DefaultPremiumProfile())

	policy := PolicyRecord{
		FieldDriverAge:       float64(40),
		FieldVehicleAgeYears: float64(6),
	}
	_, err := svc.Evaluate(context.Background(), policy, 4_000_000, 0, 0)
	if !errors.Is(err, ErrModelInference) {
		t.Fatalf("err = %v, want ErrModelInference", err)
	}
}
