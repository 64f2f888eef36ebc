package model

import (
	"context"
	"fmt"

	"github.com/ceylonsure/motor-risk/internal/core"
)

// EBMAdapter wraps the pretrained interpretable classifier. Its only
// responsibilities are column selection in training order, type
// coercion for categorical columns, and invoking the additive scorer.
// Scoring is pure against the immutable loaded bundle.
type EBMAdapter struct {
	bundle *EBMBundle
}

func NewEBMAdapter(bundle *EBMBundle) *EBMAdapter {
	return &EBMAdapter{bundle: bundle}
}

// Features exposes the trained feature list for diagnostics.
func (a *EBMAdapter) Features() []string {
	out := make([]string, len(a.bundle.Features))
	copy(out, a.bundle.Features)
	return out
}

// Score returns the positive-class probability for the augmented
// feature record. A record missing any trained column fails with
// ErrMissingModelFeature: imputing a value the model never saw would
// be meaningless.
func (a *EBMAdapter) Score(_ context.Context, features core.PolicyRecord) (float64, error) {
	logit := a.bundle.Intercept

	for _, name := range a.bundle.Features {
		if _, present := features[name]; !present {
			return 0, fmt.Errorf("%w: %s", core.ErrMissingModelFeature, name)
		}

		term := a.bundle.Terms[name]
		switch term.Type {
		case TermCategorical:
			// categorical dtypes are coerced to string; encoding is
			// the model's own concern
			label, _ := features.String(name)
			if score, ok := term.Labels[label]; ok {
				logit += score
			} else {
				logit += term.Default
			}
		case TermNumeric:
			v, ok := features.Number(name)
			if !ok {
				return 0, fmt.Errorf("%w: feature %s is not numeric", core.ErrModelInference, name)
			}
			logit += term.Scores[bucket(v, term.Edges)]
		default:
			return 0, fmt.Errorf("%w: feature %s has unknown term type %q",
				core.ErrModelInference, name, term.Type)
		}
	}

	return sigmoid(logit), nil
}

// bucket finds the bin index for v against ascending edges; values at
// an edge fall into the higher bin.
func bucket(v float64, edges []float64) int {
	for i, edge := range edges {
		if v < edge {
			return i
		}
	}
	return len(edges)
}
