package model

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/ceylonsure/motor-risk/internal/core"
)

func TestOneHotEncode(t *testing.T) {
	encoded := oneHotEncode(core.PolicyRecord{
		"driver_age":       34.0,
		"fuel_type":        "petrol",
		"vehicle_age_band": "4_7",
	})

	if encoded["driver_age"] != 34.0 {
		t.Errorf("numeric column = %v, want 34", encoded["driver_age"])
	}
	if encoded["fuel_type_petrol"] != 1 {
		t.Errorf("fuel_type_petrol = %v, want 1", encoded["fuel_type_petrol"])
	}
	if encoded["vehicle_age_band_4_7"] != 1 {
		t.Errorf("vehicle_age_band_4_7 = %v, want 1", encoded["vehicle_age_band_4_7"])
	}
	if _, ok := encoded["fuel_type"]; ok {
		t.Error("categorical kept its raw column after expansion")
	}
}

func TestReindex(t *testing.T) {
	columns := []string{"driver_age", "fuel_type_petrol", "fuel_type_diesel"}
	row := reindex(map[string]float64{
		"driver_age":       34,
		"fuel_type_petrol": 1,
		"fuel_type_lpg":    1, // unknown at training time, dropped
	}, columns)

	want := []float64{34, 1, 0}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("row[%d] = %v, want %v", i, row[i], want[i])
		}
	}
}

func testBernoulliBundle() *NGBoostBundle {
	return &NGBoostBundle{
		Dist:           "bernoulli",
		FeatureColumns: []string{"driver_age", "fuel_type_diesel"},
		Intercept:      0,
		Coefficients:   map[string]float64{"driver_age": 0, "fuel_type_diesel": 2},
		ClaimScale:     1,
	}
}

func TestNGBoostScoreBernoulli(t *testing.T) {
	a := NewNGBoostAdapter(testBernoulliBundle())
	ctx := context.Background()

	// zero logit: all active coefficients cancel
	s, err := a.Score(ctx, core.PolicyRecord{"driver_age": 40.0, "fuel_type": "petrol"})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if s.Probability != 0.5 {
		t.Errorf("Probability = %v, want 0.5", s.Probability)
	}
	if s.Uncertainty != 0.5 {
		t.Errorf("Uncertainty = %v, want sqrt(0.25)", s.Uncertainty)
	}

	// the diesel indicator shifts the logit by its coefficient
	s2, err := a.Score(ctx, core.PolicyRecord{"driver_age": 40.0, "fuel_type": "diesel"})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if s2.Probability != sigmoid(2) {
		t.Errorf("Probability = %v, want %v", s2.Probability, sigmoid(2))
	}
	wantUnc := math.Sqrt(s2.Probability * (1 - s2.Probability))
	if s2.Uncertainty != wantUnc {
		t.Errorf("Uncertainty = %v, want %v", s2.Uncertainty, wantUnc)
	}
}

func TestNGBoostScoreUnseenCategoryIsNeutral(t *testing.T) {
	a := NewNGBoostAdapter(testBernoulliBundle())
	ctx := context.Background()

	base, _ := a.Score(ctx, core.PolicyRecord{"driver_age": 40.0})
	unseen, _ := a.Score(ctx, core.PolicyRecord{"driver_age": 40.0, "fuel_type": "hydrogen"})
	if base.Probability != unseen.Probability {
		t.Errorf("unseen category changed the score: %v vs %v", base.Probability, unseen.Probability)
	}
}

func TestNGBoostScoreRegressionHeadRejected(t *testing.T) {
	a := NewNGBoostAdapter(&NGBoostBundle{
		Dist:           "normal",
		FeatureColumns: []string{"driver_age"},
		Coefficients:   map[string]float64{"driver_age": 1},
		ClaimScale:     1,
	})

	_, err := a.Score(context.Background(), core.PolicyRecord{"driver_age": 40.0})
	if !errors.Is(err, core.ErrModelInference) {
		t.Fatalf("err = %v, want ErrModelInference for a regression head", err)
	}
}

func TestNGBoostExpectedClaim(t *testing.T) {
	a := NewNGBoostAdapter(&NGBoostBundle{
		Dist:           "normal",
		FeatureColumns: []string{"driver_age"},
		Intercept:      1,
		Coefficients:   map[string]float64{"driver_age": 0.25},
		ClaimScale:     100_000,
		Scale:          0.5,
	})

	// loc = 1 + 0.25*40 = 11; scaled to LKR
	got, err := a.ExpectedClaim(context.Background(), core.PolicyRecord{"driver_age": 40.0})
	if err != nil {
		t.Fatalf("ExpectedClaim: %v", err)
	}
	if got != 1_100_000 {
		t.Errorf("ExpectedClaim = %v, want 1100000", got)
	}
}

func TestNGBoostExpectedClaimBernoulliMean(t *testing.T) {
	b := testBernoulliBundle()
	b.ClaimScale = 1_500_000
	a := NewNGBoostAdapter(b)

	got, err := a.ExpectedClaim(context.Background(), core.PolicyRecord{"driver_age": 40.0})
	if err != nil {
		t.Fatalf("ExpectedClaim: %v", err)
	}
	if got != 750_000 {
		t.Errorf("ExpectedClaim = %v, want mean 0.5 x scale", got)
	}
}
