package form

import (
	"strconv"

	"patientor/internal/domain/entity"
)

type FieldType string

const (
	FieldText        FieldType = "text"
	FieldDate        FieldType = "date"
	FieldSelect      FieldType = "select"
	FieldMultiSelect FieldType = "multiselect"
)

// Field names double as HTML form keys.
const (
	FieldNameDescription       = "description"
	FieldNameDate              = "date"
	FieldNameSpecialist        = "specialist"
	FieldNameDiagnosisCodes    = "diagnosisCodes"
	FieldNameHealthCheckRating = "healthCheckRating"
	FieldNameEmployerName      = "employerName"
	FieldNameSickLeaveStart    = "sickLeaveStart"
	FieldNameSickLeaveEnd      = "sickLeaveEnd"
	FieldNameDischargeDate     = "dischargeDate"
	FieldNameDischargeCriteria = "dischargeCriteria"
)

// Field describes one input control of the form
type Field struct {
	Name     string     `json:"name"`
	Label    string     `json:"label"`
	Type     FieldType  `json:"type"`
	Group    string     `json:"group,omitempty"`
	Required bool       `json:"required"`
	Value    string     `json:"value"`
	Values   []string   `json:"values,omitempty"`
	Options  []string   `json:"options,omitempty"`
	Action   ActionType `json:"action"`
}

// Inputs returns the shared inputs followed by exactly the inputs of the
// active variant. codeOptions feeds the diagnosis code multi-select.
func Inputs(s State, codeOptions []entity.DiagnosisCode) []Field {
	fields := []Field{
		{Name: FieldNameDescription, Label: "Description", Type: FieldText, Required: true, Value: s.Description, Action: ActionSetDescription},
		{Name: FieldNameDate, Label: "Date", Type: FieldDate, Required: true, Value: s.Date, Action: ActionSetDate},
		{Name: FieldNameSpecialist, Label: "Specialist", Type: FieldText, Required: true, Value: s.Specialist, Action: ActionSetSpecialist},
		{
			Name:    FieldNameDiagnosisCodes,
			Label:   "Diagnosis codes",
			Type:    FieldMultiSelect,
			Values:  append([]string(nil), s.DiagnosisCodes...),
			Options: append([]string(nil), codeOptions...),
			Action:  ActionSetDiagnosisCodes,
		},
	}

	switch s.Kind {
	case entity.EntryTypeHealthCheck:
		options := make([]string, 0, len(entity.HealthCheckRatings))
		for _, r := range entity.HealthCheckRatings {
			options = append(options, strconv.Itoa(int(r)))
		}
		fields = append(fields, Field{
			Name: FieldNameHealthCheckRating, Label: "Healthcheck rating", Type: FieldSelect, Required: true,
			Value: s.HealthCheckRating, Options: options, Action: ActionSetHealthCheckRating,
		})
	case entity.EntryTypeOccupationalHealthcare:
		fields = append(fields,
			Field{Name: FieldNameEmployerName, Label: "Employer name", Type: FieldText, Required: true, Value: s.EmployerName, Action: ActionSetEmployerName},
			Field{Name: FieldNameSickLeaveStart, Label: "start", Group: "Sickleave", Type: FieldDate, Value: s.SickLeave.StartDate, Action: ActionSetSickLeaveStart},
			Field{Name: FieldNameSickLeaveEnd, Label: "end", Group: "Sickleave", Type: FieldDate, Value: s.SickLeave.EndDate, Action: ActionSetSickLeaveEnd},
		)
	case entity.EntryTypeHospital:
		fields = append(fields,
			Field{Name: FieldNameDischargeDate, Label: "date", Group: "Discharge", Type: FieldDate, Required: true, Value: s.Discharge.Date, Action: ActionSetDischargeDate},
			Field{Name: FieldNameDischargeCriteria, Label: "criteria", Group: "Discharge", Type: FieldText, Required: true, Value: s.Discharge.Criteria, Action: ActionSetDischargeCriteria},
		)
	default:
		entity.UnhandledVariant(s.Kind)
	}

	return fields
}
