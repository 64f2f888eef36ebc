// Package model wraps the two pretrained risk model artifacts behind
// the scorer interfaces the core pipeline consumes. Artifacts are JSON
// bundles produced by the offline training process, loaded once at
// startup and never mutated.
package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// TermType distinguishes how a primary-model term scores its input.
type TermType string

const (
	TermNumeric     TermType = "numeric"
	TermCategorical TermType = "categorical"
)

// Term is one additive contribution of the primary (EBM-style) model.
// Numeric terms bucket the value against Edges and read Scores
// (len(Scores) == len(Edges)+1). Categorical terms look the value up
// in Scores by label, falling back to Default for unseen categories.
type Term struct {
	Type    TermType           `json:"type"`
	Edges   []float64          `json:"edges,omitempty"`
	Scores  []float64          `json:"scores,omitempty"`
	Labels  map[string]float64 `json:"labels,omitempty"`
	Default float64            `json:"default,omitempty"`
}

// EBMBundle is the primary model artifact: the trained feature list in
// scoring order plus per-feature additive terms and an intercept. The
// probability comes through the logistic link.
type EBMBundle struct {
	Features  []string        `json:"features"`
	Intercept float64         `json:"intercept"`
	Terms     map[string]Term `json:"terms"`
}

// NGBoostBundle is the secondary model artifact: the pinned training
// column list (post one-hot), linear coefficients, and the
// distribution family the head parameterizes.
type NGBoostBundle struct {
	Dist           string             `json:"dist"` // "bernoulli" or "normal"
	FeatureColumns []string           `json:"feature_columns"`
	Intercept      float64            `json:"intercept"`
	Coefficients   map[string]float64 `json:"coefficients"`

	// Scale applied to the distribution mean when read as an expected
	// claim amount (LKR per unit of mean). 1 when the head already
	// predicts amounts.
	ClaimScale float64 `json:"claim_scale,omitempty"`

	// Scale parameter of the normal head. Ignored by bernoulli.
	Scale float64 `json:"scale,omitempty"`
}

// LoadEBMBundle reads and validates the primary model artifact.
func LoadEBMBundle(path string) (*EBMBundle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ebm bundle: %w", err)
	}
	var b EBMBundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("parse ebm bundle %s: %w", path, err)
	}
	if len(b.Features) == 0 {
		return nil, fmt.Errorf("ebm bundle %s: empty trained feature list", path)
	}
	for _, f := range b.Features {
		t, ok := b.Terms[f]
		if !ok {
			return nil, fmt.Errorf("ebm bundle %s: feature %q has no term", path, f)
		}
		if t.Type == TermNumeric && len(t.Scores) != len(t.Edges)+1 {
			return nil, fmt.Errorf("ebm bundle %s: feature %q needs len(scores)=len(edges)+1", path, f)
		}
	}
	return &b, nil
}

// LoadNGBoostBundle reads and validates the secondary model artifact.
func LoadNGBoostBundle(path string) (*NGBoostBundle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ngboost bundle: %w", err)
	}
	var b NGBoostBundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("parse ngboost bundle %s: %w", path, err)
	}
	if len(b.FeatureColumns) == 0 {
		return nil, fmt.Errorf("ngboost bundle %s: empty feature column list", path)
	}
	switch b.Dist {
	case "bernoulli", "normal":
	default:
		return nil, fmt.Errorf("ngboost bundle %s: unknown distribution family %q", path, b.Dist)
	}
	if b.ClaimScale == 0 {
		b.ClaimScale = 1
	}
	return &b, nil
}
