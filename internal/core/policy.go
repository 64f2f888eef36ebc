package core

import (
	"fmt"
	"strings"
)

// Policy record field names. The scoring models were trained against
// these exact column names, so they are pinned contracts.
const (
	FieldDriverAge        = "driver_age"
	FieldDriverGender     = "driver_gender"
	FieldDriverOccupation = "driver_occupation"
	FieldDrivingYears     = "years_of_driving_experience"
	FieldAACMember        = "member_automobile_assoc_ceylon"

	FieldPreviousPolicy = "has_previous_motor_policy"
	FieldAccidents3Y    = "accidents_last_3_years"
	FieldNCBPercent     = "ncb_percentage"
	FieldClaims1Y       = "num_claims_within_1_year"

	FieldVehicleType      = "vehicle_type"
	FieldVehicleSegment   = "vehicle_segment"
	FieldEngineCapacityCC = "engine_capacity_cc"
	FieldFuelType         = "fuel_type"
	FieldVehicleAgeYears  = "vehicle_age_years"
	FieldVehicleUsage     = "vehicle_usage_type"
	FieldRegDistrict      = "registration_district"
	FieldParkingType      = "parking_type"
	FieldLPGConversion    = "has_lpg_conversion"

	FieldCustomerID = "customer_id"

	// Derived by the feature deriver, never supplied by callers.
	FieldDriverAgeBand  = "driver_age_band"
	FieldVehicleAgeBand = "vehicle_age_band"
)

// PolicyRecord maps named policy attributes to scalar values, either
// numeric or categorical string. Records are created per evaluation
// request and treated as immutable once handed to the pipeline; the
// deriver returns an augmented copy rather than mutating its input.
type PolicyRecord map[string]any

// Clone returns a shallow copy. Values are scalars, so a shallow copy
// is a full copy.
func (p PolicyRecord) Clone() PolicyRecord {
	out := make(PolicyRecord, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Number reads a numeric attribute, accepting the numeric types a JSON
// decode or a caller-built record can produce.
func (p PolicyRecord) Number(key string) (float64, bool) {
	v, ok := p[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// String reads an attribute as its categorical string form. Numeric
// values are formatted, matching how the model adapters coerce
// categorical columns.
func (p PolicyRecord) String(key string) (string, bool) {
	v, ok := p[key]
	if !ok || v == nil {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	default:
		return fmt.Sprintf("%v", v), true
	}
}

// CustomerID returns the trimmed customer identifier, empty if absent.
func (p PolicyRecord) CustomerID() string {
	s, _ := p.String(FieldCustomerID)
	return strings.TrimSpace(s)
}
