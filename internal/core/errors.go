package core

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrMissingField means a field needed to compute a derived feature
	// is absent from the policy record. No default exists for such
	// fields, so evaluation cannot proceed.
	ErrMissingField = errors.New("missing required field")

	// ErrMissingModelFeature means the augmented feature vector lacks a
	// column the model was trained on. This is a training/inference
	// schema mismatch and is never silently patched.
	ErrMissingModelFeature = errors.New("missing model feature")

	// ErrModelInference means the underlying model call failed. There is
	// no fallback probability: an invented number is worse than a
	// visible failure in an underwriting context.
	ErrModelInference = errors.New("model inference failed")

	// ErrBlacklisted short-circuits evaluation before any model call.
	ErrBlacklisted = errors.New("customer is blacklisted")
)
