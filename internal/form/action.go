package form

import (
	"errors"
	"fmt"
	"strings"

	"patientor/internal/domain/entity"
)

var (
	ErrUnknownAction = errors.New("unknown form action")
	ErrUnknownKind   = errors.New("unknown entry kind")
)

type ActionType string

const (
	ActionSetDescription       ActionType = "setDescription"
	ActionSetDate              ActionType = "setDate"
	ActionSetSpecialist        ActionType = "setSpecialist"
	ActionSetDiagnosisCodes    ActionType = "setDiagnosisCodes"
	ActionSelectKind           ActionType = "selectKind"
	ActionSetHealthCheckRating ActionType = "setHealthCheckRating"
	ActionSetEmployerName      ActionType = "setEmployerName"
	ActionSetSickLeaveStart    ActionType = "setSickLeaveStart"
	ActionSetSickLeaveEnd      ActionType = "setSickLeaveEnd"
	ActionSetDischargeDate     ActionType = "setDischargeDate"
	ActionSetDischargeCriteria ActionType = "setDischargeCriteria"
	ActionCancel               ActionType = "cancel"
)

// Action is one user interaction with the form.
// Value carries text input; Values carries multi-select input.
type Action struct {
	Type   ActionType `json:"type"`
	Value  string     `json:"value,omitempty"`
	Values []string   `json:"values,omitempty"`
}

// Reduce applies a to s and returns the next state. s is not modified.
func Reduce(s State, a Action) (State, error) {
	next := s.Clone()

	switch a.Type {
	case ActionSetDescription:
		next.Description = a.Value
	case ActionSetDate:
		next.Date = a.Value
	case ActionSetSpecialist:
		next.Specialist = a.Value
	case ActionSetDiagnosisCodes:
		next.DiagnosisCodes = parseCodes(a)
	case ActionSetHealthCheckRating:
		next.HealthCheckRating = a.Value
	case ActionSetEmployerName:
		next.EmployerName = a.Value
	case ActionSetSickLeaveStart:
		next.SickLeave.StartDate = a.Value
	case ActionSetSickLeaveEnd:
		next.SickLeave.EndDate = a.Value
	case ActionSetDischargeDate:
		next.Discharge.Date = a.Value
	case ActionSetDischargeCriteria:
		next.Discharge.Criteria = a.Value
	case ActionSelectKind:
		kind := entity.EntryType(a.Value)
		if !kind.Valid() {
			return s, fmt.Errorf("%w: %q", ErrUnknownKind, a.Value)
		}
		next.Kind = kind
	case ActionCancel:
		next = Clear(next, next.Kind)
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}

	return edited(next), nil
}

// Clear empties the shared fields and the fields of kind. Fields of the
// other variants are kept.
func Clear(s State, kind entity.EntryType) State {
	s = s.Clone()
	s.Description = ""
	s.Date = ""
	s.Specialist = ""
	s.DiagnosisCodes = nil

	switch kind {
	case entity.EntryTypeHealthCheck:
		s.HealthCheckRating = ""
	case entity.EntryTypeOccupationalHealthcare:
		s.EmployerName = ""
		s.SickLeave = entity.SickLeave{}
	case entity.EntryTypeHospital:
		s.Discharge = entity.Discharge{}
	default:
		entity.UnhandledVariant(kind)
	}
	return s
}

// edited moves the form into Editing and drops any notification. An
// outstanding submission keeps the form in Submitting.
func edited(s State) State {
	s.Notification = nil
	if s.Phase != PhaseSubmitting {
		s.Phase = PhaseEditing
	}
	return s
}

func submitting(s State) State {
	s = s.Clone()
	s.Phase = PhaseSubmitting
	s.Notification = nil
	return s
}

func succeeded(s State, kind entity.EntryType) State {
	s = Clear(s, kind)
	s.Phase = PhaseNotifying
	s.Notification = &Notification{Message: SuccessMessage, Severity: SeveritySuccess}
	return s
}

// storedUnreadable clears the submitted variant like a success; the entry
// exists on the backend and only a reload can show it.
func storedUnreadable(s State, kind entity.EntryType) State {
	s = Clear(s, kind)
	s.Phase = PhaseNotifying
	s.Notification = &Notification{Message: UnreadableMessage, Severity: SeverityError}
	return s
}

func failed(s State, message string) State {
	s = s.Clone()
	s.Phase = PhaseNotifying
	s.Notification = &Notification{Message: message, Severity: SeverityError}
	return s
}

func notificationExpired(s State) State {
	s = s.Clone()
	s.Notification = nil
	if s.Phase == PhaseNotifying {
		s.Phase = PhaseIdle
	}
	return s
}

// parseCodes accepts either a list of codes or a comma separated string,
// drops blanks and duplicates and keeps selection order.
func parseCodes(a Action) []entity.DiagnosisCode {
	raw := a.Values
	if raw == nil && a.Value != "" {
		raw = strings.Split(a.Value, ",")
	}

	var codes []entity.DiagnosisCode
	seen := make(map[string]bool, len(raw))
	for _, c := range raw {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		codes = append(codes, c)
	}
	return codes
}
