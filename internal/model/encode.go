package model

import (
	"math"

	"github.com/ceylonsure/motor-risk/internal/core"
)

// oneHotEncode expands a feature record the way the secondary model
// was trained: numeric attributes keep their own column, categorical
// attributes become indicator columns named "<feature>_<value>".
func oneHotEncode(features core.PolicyRecord) map[string]float64 {
	encoded := make(map[string]float64, len(features))
	for key := range features {
		if n, ok := features.Number(key); ok {
			encoded[key] = n
			continue
		}
		if s, ok := features.String(key); ok {
			encoded[key+"_"+s] = 1
		}
	}
	return encoded
}

// reindex aligns an encoded row to the pinned training-time column
// list, filling any column absent after expansion with zero. Skipping
// this step lets encoding drift between inference-time and
// training-time categories silently corrupt results, so every
// secondary scoring call goes through it.
func reindex(encoded map[string]float64, columns []string) []float64 {
	row := make([]float64, len(columns))
	for i, col := range columns {
		row[i] = encoded[col]
	}
	return row
}

// sigmoid is the logistic link shared by both model heads.
func sigmoid(logit float64) float64 {
	return 1.0 / (1.0 + math.Exp(-logit))
}
