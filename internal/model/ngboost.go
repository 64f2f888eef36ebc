package model

import (
	"context"
	"fmt"
	"math"

	"github.com/ceylonsure/motor-risk/internal/core"
)

// Distribution is a scored distribution from the secondary model.
type Distribution interface {
	Params() map[string]float64
	Mean() float64
}

// PositiveClassExtractor reads the positive-class probability out of a
// distribution. One implementation per model family; callers never
// branch on the family themselves.
type PositiveClassExtractor interface {
	PositiveProbability(d Distribution) (float64, error)
}

type bernoulliDist struct{ p1 float64 }

func (d bernoulliDist) Params() map[string]float64 {
	return map[string]float64{"p0": 1 - d.p1, "p1": d.p1}
}
func (d bernoulliDist) Mean() float64 { return d.p1 }

type normalDist struct{ loc, scale float64 }

func (d normalDist) Params() map[string]float64 {
	return map[string]float64{"loc": d.loc, "scale": d.scale}
}
func (d normalDist) Mean() float64 { return d.loc }

type bernoulliExtractor struct{}

func (bernoulliExtractor) PositiveProbability(d Distribution) (float64, error) {
	p1, ok := d.Params()["p1"]
	if !ok {
		return 0, fmt.Errorf("distribution has no p1 parameter")
	}
	return p1, nil
}

type regressionExtractor struct{}

func (regressionExtractor) PositiveProbability(Distribution) (float64, error) {
	return 0, fmt.Errorf("regression head has no positive-class parameter")
}

// NGBoostAdapter wraps the pretrained distributional regressor. It
// one-hot expands categoricals, reindexes against the pinned training
// columns, scores the head, and reads the claim probability through
// the family's extractor. Consulted only when the escalation engine
// asks for a second opinion.
type NGBoostAdapter struct {
	bundle    *NGBoostBundle
	extractor PositiveClassExtractor
}

func NewNGBoostAdapter(bundle *NGBoostBundle) *NGBoostAdapter {
	var ex PositiveClassExtractor
	switch bundle.Dist {
	case "bernoulli":
		ex = bernoulliExtractor{}
	default:
		ex = regressionExtractor{}
	}
	return &NGBoostAdapter{bundle: bundle, extractor: ex}
}

// Score returns the claim probability plus its Bernoulli standard
// deviation sqrt(p*(1-p)) as the uncertainty proxy.
func (a *NGBoostAdapter) Score(_ context.Context, features core.PolicyRecord) (core.SecondaryScore, error) {
	dist := a.predict(features)

	p, err := a.extractor.PositiveProbability(dist)
	if err != nil {
		return core.SecondaryScore{}, fmt.Errorf("%w: %v", core.ErrModelInference, err)
	}

	return core.SecondaryScore{
		Probability: p,
		Uncertainty: math.Sqrt(p * (1 - p)),
	}, nil
}

// ExpectedClaim reads the distribution mean as an expected claim
// amount, scaled per the bundle.
func (a *NGBoostAdapter) ExpectedClaim(_ context.Context, features core.PolicyRecord) (float64, error) {
	dist := a.predict(features)
	return dist.Mean() * a.bundle.ClaimScale, nil
}

func (a *NGBoostAdapter) predict(features core.PolicyRecord) Distribution {
	row := reindex(oneHotEncode(features), a.bundle.FeatureColumns)

	score := a.bundle.Intercept
	for i, col := range a.bundle.FeatureColumns {
		score += a.bundle.Coefficients[col] * row[i]
	}

	switch a.bundle.Dist {
	case "normal":
		return normalDist{loc: score, scale: a.bundle.Scale}
	default:
		return bernoulliDist{p1: sigmoid(score)}
	}
}
