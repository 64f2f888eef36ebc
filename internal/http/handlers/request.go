package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/ceylonsure/motor-risk/internal/core"
	"github.com/ceylonsure/motor-risk/pkg/problem"
)

// The validation collaborator: request structs carry range tags
// mirroring the declared field domains, so the core receives
// structurally valid input and never re-validates business rules.
var validate = newValidator()

var (
	nicOld = regexp.MustCompile(`^\d{9}[vVxX]$`)
	nicNew = regexp.MustCompile(`^\d{12}$`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Sri Lankan NIC: 12 digits, or 9 digits followed by V/X.
	_ = v.RegisterValidation("nic", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return nicOld.MatchString(s) || nicNew.MatchString(s)
	})
	return v
}

// decodeAndValidate decodes the JSON body into dst and runs the
// validator. On failure it writes the problem response and returns
// false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		problem.Write(w, http.StatusBadRequest, "Malformed Request", err.Error())
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = "failed " + fe.Tag() + " constraint"
			}
			problem.WriteFields(w, http.StatusBadRequest, "Validation Error", fields)
			return false
		}
		problem.Write(w, http.StatusBadRequest, "Validation Error", err.Error())
		return false
	}

	return true
}

// PolicyRequest is the wire form of a policy record. Optional fields
// are pointers so absence is distinguishable from zero; absent fields
// pick up the feature deriver's defaults.
type PolicyRequest struct {
	DriverAge                   *int   `json:"driver_age" validate:"required,gte=18,lte=90"`
	DriverGender                string `json:"driver_gender" validate:"omitempty,oneof=Male Female"`
	DriverOccupation            string `json:"driver_occupation"`
	YearsOfDrivingExperience    *int   `json:"years_of_driving_experience" validate:"omitempty,gte=0,lte=70"`
	MemberAutomobileAssocCeylon *int   `json:"member_automobile_assoc_ceylon" validate:"omitempty,oneof=0 1"`

	HasPreviousMotorPolicy *int `json:"has_previous_motor_policy" validate:"omitempty,oneof=0 1"`
	AccidentsLast3Years    *int `json:"accidents_last_3_years" validate:"omitempty,gte=0,lte=10"`
	NCBPercentage          *int `json:"ncb_percentage" validate:"omitempty,oneof=0 10 20 30 40 50 60 70"`
	NumClaimsWithin1Year   *int `json:"num_claims_within_1_year" validate:"omitempty,gte=0,lte=10"`

	VehicleType          string `json:"vehicle_type"`
	VehicleSegment       string `json:"vehicle_segment"`
	EngineCapacityCC     *int   `json:"engine_capacity_cc" validate:"omitempty,gte=50,lte=8000"`
	FuelType             string `json:"fuel_type"`
	VehicleAgeYears      *int   `json:"vehicle_age_years" validate:"required,gte=0,lte=60"`
	VehicleUsageType     string `json:"vehicle_usage_type"`
	RegistrationDistrict string `json:"registration_district"`
	ParkingType          string `json:"parking_type"`
	HasLPGConversion     *int   `json:"has_lpg_conversion" validate:"omitempty,oneof=0 1"`

	CustomerID string `json:"customer_id"`
	FullName   string `json:"full_name" validate:"omitempty,min=3"`
	NIC        string `json:"nic" validate:"omitempty,nic"`
}

// ToRecord converts the request into the core policy record, skipping
// absent optional fields so deriver defaults apply.
func (pr PolicyRequest) ToRecord() core.PolicyRecord {
	rec := core.PolicyRecord{}

	putInt := func(key string, v *int) {
		if v != nil {
			rec[key] = float64(*v)
		}
	}
	putStr := func(key, v string) {
		if v != "" {
			rec[key] = v
		}
	}

	putInt(core.FieldDriverAge, pr.DriverAge)
	putStr(core.FieldDriverGender, pr.DriverGender)
	putStr(core.FieldDriverOccupation, pr.DriverOccupation)
	putInt(core.FieldDrivingYears, pr.YearsOfDrivingExperience)
	putInt(core.FieldAACMember, pr.MemberAutomobileAssocCeylon)

	putInt(core.FieldPreviousPolicy, pr.HasPreviousMotorPolicy)
	putInt(core.FieldAccidents3Y, pr.AccidentsLast3Years)
	putInt(core.FieldNCBPercent, pr.NCBPercentage)
	putInt(core.FieldClaims1Y, pr.NumClaimsWithin1Year)

	putStr(core.FieldVehicleType, pr.VehicleType)
	putStr(core.FieldVehicleSegment, pr.VehicleSegment)
	putInt(core.FieldEngineCapacityCC, pr.EngineCapacityCC)
	putStr(core.FieldFuelType, pr.FuelType)
	putInt(core.FieldVehicleAgeYears, pr.VehicleAgeYears)
	putStr(core.FieldVehicleUsage, pr.VehicleUsageType)
	putStr(core.FieldRegDistrict, pr.RegistrationDistrict)
	putStr(core.FieldParkingType, pr.ParkingType)
	putInt(core.FieldLPGConversion, pr.HasLPGConversion)

	putStr(core.FieldCustomerID, pr.CustomerID)

	return rec
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
