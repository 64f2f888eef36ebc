package core

import "fmt"

// Age band labels are pinned to the partitions the primary model was
// trained on. Changing them silently breaks scoring, so they are
// constants rather than configuration.

// DriverAgeBand buckets a driver age into the trained partition.
// Boundary ages fall into the higher bin (25 -> "25_34").
func DriverAgeBand(age float64) string {
	switch {
	case age < 25:
		return "18_24"
	case age < 35:
		return "25_34"
	case age < 45:
		return "35_44"
	case age < 60:
		return "45_59"
	default:
		return "60+"
	}
}

// VehicleAgeBand buckets a vehicle age in years. The last bin is
// open-ended.
func VehicleAgeBand(years float64) string {
	switch {
	case years <= 3:
		return "0_3"
	case years <= 7:
		return "4_7"
	case years <= 12:
		return "8_12"
	default:
		return "13+"
	}
}

// featureDefaults fills optional fields absent from the raw input so
// the models always receive a complete feature vector. Fields that
// feed a derived band have no default and are required.
var featureDefaults = PolicyRecord{
	FieldDriverGender:     "Male",
	FieldDriverOccupation: "Private",
	FieldDrivingYears:     0.0,
	FieldAACMember:        0.0,
	FieldPreviousPolicy:   0.0,
	FieldAccidents3Y:      0.0,
	FieldNCBPercent:       0.0,
	FieldClaims1Y:         0.0,
	FieldVehicleType:      "Car",
	FieldVehicleSegment:   "Sedan",
	FieldEngineCapacityCC: 1500.0,
	FieldFuelType:         "Petrol",
	FieldVehicleUsage:     "Private",
	FieldRegDistrict:      "Colombo",
	FieldParkingType:      "Garage",
	FieldLPGConversion:    0.0,
}

// DeriveFeatures returns an augmented copy of raw with the age bands
// computed and defaults applied. The caller's record is never mutated.
// Caller-supplied band values are overwritten: the models expect
// deriver-produced labels, not free text.
func DeriveFeatures(raw PolicyRecord) (PolicyRecord, error) {
	rec := raw.Clone()

	age, ok := rec.Number(FieldDriverAge)
	if !ok {
		return nil, fmt.Errorf("%w: %s (needed to compute %s)",
			ErrMissingField, FieldDriverAge, FieldDriverAgeBand)
	}
	rec[FieldDriverAgeBand] = DriverAgeBand(age)

	vehicleAge, ok := rec.Number(FieldVehicleAgeYears)
	if !ok {
		return nil, fmt.Errorf("%w: %s (needed to compute %s)",
			ErrMissingField, FieldVehicleAgeYears, FieldVehicleAgeBand)
	}
	rec[FieldVehicleAgeBand] = VehicleAgeBand(vehicleAge)

	for k, v := range featureDefaults {
		if _, present := rec[k]; !present {
			rec[k] = v
		}
	}

	return rec, nil
}
