package entity

import (
	"encoding/json"
	"fmt"
)

// EntryType is the discriminator of the Entry union
type EntryType string

const (
	EntryTypeHealthCheck            EntryType = "HealthCheck"
	EntryTypeOccupationalHealthcare EntryType = "OccupationalHealthcare"
	EntryTypeHospital               EntryType = "Hospital"
)

// EntryTypes lists every entry variant in display order.
var EntryTypes = []EntryType{
	EntryTypeHealthCheck,
	EntryTypeOccupationalHealthcare,
	EntryTypeHospital,
}

// Valid reports whether t is one of the three known variants
func (t EntryType) Valid() bool {
	switch t {
	case EntryTypeHealthCheck, EntryTypeOccupationalHealthcare, EntryTypeHospital:
		return true
	}
	return false
}

// HealthCheckRating is the ordinal severity of a health check, 0 is best
type HealthCheckRating int

const (
	HealthCheckRatingHealthy HealthCheckRating = iota
	HealthCheckRatingLowRisk
	HealthCheckRatingHighRisk
	HealthCheckRatingCriticalRisk
)

// HealthCheckRatings lists the four defined ordinals in ascending severity.
var HealthCheckRatings = []HealthCheckRating{
	HealthCheckRatingHealthy,
	HealthCheckRatingLowRisk,
	HealthCheckRatingHighRisk,
	HealthCheckRatingCriticalRisk,
}

func (r HealthCheckRating) Valid() bool {
	return r >= HealthCheckRatingHealthy && r <= HealthCheckRatingCriticalRisk
}

func (r HealthCheckRating) String() string {
	switch r {
	case HealthCheckRatingHealthy:
		return "Healthy"
	case HealthCheckRatingLowRisk:
		return "LowRisk"
	case HealthCheckRatingHighRisk:
		return "HighRisk"
	case HealthCheckRatingCriticalRisk:
		return "CriticalRisk"
	}
	return fmt.Sprintf("HealthCheckRating(%d)", int(r))
}

// SickLeave is the optional leave period of an occupational healthcare entry
type SickLeave struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Complete reports whether both dates are set
func (s SickLeave) Complete() bool {
	return s.StartDate != "" && s.EndDate != ""
}

// Empty reports whether neither date is set
func (s SickLeave) Empty() bool {
	return s.StartDate == "" && s.EndDate == ""
}

// Discharge is the mandatory discharge record of a hospital entry
type Discharge struct {
	Date     string `json:"date"`
	Criteria string `json:"criteria"`
}

// BaseEntry holds the fields shared by every entry variant
type BaseEntry struct {
	ID             string          `json:"id"`
	Description    string          `json:"description"`
	Date           string          `json:"date"`
	Specialist     string          `json:"specialist"`
	DiagnosisCodes []DiagnosisCode `json:"diagnosisCodes,omitempty"`
}

// Entry is one dated medical record of a patient.
//
// The set of implementations is closed: HealthCheckEntry, OccupationalHealthcareEntry
// and HospitalEntry. Consumers type-switch over those three and call UnhandledVariant
// in the default branch.
type Entry interface {
	Type() EntryType
	Base() BaseEntry
	isEntry()
}

type HealthCheckEntry struct {
	BaseEntry
	HealthCheckRating HealthCheckRating `json:"healthCheckRating"`
}

type OccupationalHealthcareEntry struct {
	BaseEntry
	EmployerName string     `json:"employerName"`
	SickLeave    *SickLeave `json:"sickLeave,omitempty"`
}

type HospitalEntry struct {
	BaseEntry
	Discharge Discharge `json:"discharge"`
}

func (e *HealthCheckEntry) Type() EntryType            { return EntryTypeHealthCheck }
func (e *OccupationalHealthcareEntry) Type() EntryType { return EntryTypeOccupationalHealthcare }
func (e *HospitalEntry) Type() EntryType               { return EntryTypeHospital }

func (e *HealthCheckEntry) Base() BaseEntry            { return e.BaseEntry }
func (e *OccupationalHealthcareEntry) Base() BaseEntry { return e.BaseEntry }
func (e *HospitalEntry) Base() BaseEntry               { return e.BaseEntry }

func (*HealthCheckEntry) isEntry()            {}
func (*OccupationalHealthcareEntry) isEntry() {}
func (*HospitalEntry) isEntry()               {}

// UnhandledVariantError is raised when a value outside the closed Entry or
// EntryDraft unions reaches a switch over them.
type UnhandledVariantError struct {
	Value interface{}
}

func (e *UnhandledVariantError) Error() string {
	raw, err := json.Marshal(e.Value)
	if err != nil {
		return fmt.Sprintf("Unhandled discriminated union member: %#v", e.Value)
	}
	return fmt.Sprintf("Unhandled discriminated union member: %s", raw)
}

// UnhandledVariant panics with an UnhandledVariantError carrying v.
func UnhandledVariant(v interface{}) {
	panic(&UnhandledVariantError{Value: v})
}

// UnknownEntryTypeError is returned when wire data carries a type tag that is
// not one of the three entry variants.
type UnknownEntryTypeError struct {
	Type string
	Raw  json.RawMessage
}

func (e *UnknownEntryTypeError) Error() string {
	return fmt.Sprintf("Unhandled discriminated union member: unknown entry type %q in %s", e.Type, string(e.Raw))
}
