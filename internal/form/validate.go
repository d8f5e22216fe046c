package form

import (
	"errors"
	"fmt"

	"patientor/internal/domain/entity"
)

var ErrIncomplete = errors.New("entry form is incomplete")

// Validator checks struct tags of the required-field projections below
type Validator interface {
	Validate(i interface{}) error
}

type healthCheckFields struct {
	Description       string `validate:"required"`
	Date              string `validate:"required,isodate"`
	Specialist        string `validate:"required"`
	HealthCheckRating string `validate:"required,oneof=0 1 2 3"`
}

type occupationalHealthcareFields struct {
	Description    string `validate:"required"`
	Date           string `validate:"required,isodate"`
	Specialist     string `validate:"required"`
	EmployerName   string `validate:"required"`
	SickLeaveStart string `validate:"required_with=SickLeaveEnd,omitempty,isodate"`
	SickLeaveEnd   string `validate:"required_with=SickLeaveStart,omitempty,isodate"`
}

type hospitalFields struct {
	Description       string `validate:"required"`
	Date              string `validate:"required,isodate"`
	Specialist        string `validate:"required"`
	DischargeDate     string `validate:"required,isodate"`
	DischargeCriteria string `validate:"required"`
}

// RequiredFields projects s onto the inputs required by its active variant
func RequiredFields(s State) interface{} {
	switch s.Kind {
	case entity.EntryTypeHealthCheck:
		return &healthCheckFields{
			Description:       s.Description,
			Date:              s.Date,
			Specialist:        s.Specialist,
			HealthCheckRating: s.HealthCheckRating,
		}
	case entity.EntryTypeOccupationalHealthcare:
		return &occupationalHealthcareFields{
			Description:    s.Description,
			Date:           s.Date,
			Specialist:     s.Specialist,
			EmployerName:   s.EmployerName,
			SickLeaveStart: s.SickLeave.StartDate,
			SickLeaveEnd:   s.SickLeave.EndDate,
		}
	case entity.EntryTypeHospital:
		return &hospitalFields{
			Description:       s.Description,
			Date:              s.Date,
			Specialist:        s.Specialist,
			DischargeDate:     s.Discharge.Date,
			DischargeCriteria: s.Discharge.Criteria,
		}
	default:
		entity.UnhandledVariant(s.Kind)
		return nil
	}
}

// Validate reports ErrIncomplete, wrapping the validator's error, when a
// required input of the active variant is missing or malformed.
func Validate(v Validator, s State) error {
	if err := v.Validate(RequiredFields(s)); err != nil {
		return fmt.Errorf("%w: %w", ErrIncomplete, err)
	}
	return nil
}
