// Package form implements the new-entry form of the patient page: its
// serializable state, the pure transitions over that state, the input set for
// the active entry variant, and the construction of the entry draft.
package form

import (
	"patientor/internal/domain/entity"
)

// Phase of a form instance.
//
//	Idle -> Editing       on any field change
//	Editing -> Submitting on submit
//	Submitting -> Notifying when the transport answers
//	Notifying -> Idle     after the notification delay or the next field change
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseEditing    Phase = "editing"
	PhaseSubmitting Phase = "submitting"
	PhaseNotifying  Phase = "notifying"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a transient message shown above the form
type Notification struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

const (
	SuccessMessage    = "New entry is successfully created!"
	UnreadableMessage = "New entry was saved but could not be displayed, reload the page to see it"
)

// State is everything the entry form tracks between keystrokes.
//
// Fields of inactive variants stay in memory when the user switches variant
// but are never read by BuildDraft.
type State struct {
	Description    string                 `json:"description"`
	Date           string                 `json:"date"`
	Specialist     string                 `json:"specialist"`
	DiagnosisCodes []entity.DiagnosisCode `json:"diagnosisCodes"`

	// HealthCheckRating is kept as the selector transmits it.
	HealthCheckRating string           `json:"healthCheckRating"`
	EmployerName      string           `json:"employerName"`
	SickLeave         entity.SickLeave `json:"sickLeave"`
	Discharge         entity.Discharge `json:"discharge"`

	Kind         entity.EntryType `json:"kind"`
	Phase        Phase            `json:"phase"`
	Notification *Notification    `json:"notification,omitempty"`
}

// NewState returns an empty form with the health check variant selected
func NewState() State {
	return State{
		Kind:  entity.EntryTypeHealthCheck,
		Phase: PhaseIdle,
	}
}

// Clone returns a deep copy of s
func (s State) Clone() State {
	if s.DiagnosisCodes != nil {
		s.DiagnosisCodes = append([]entity.DiagnosisCode(nil), s.DiagnosisCodes...)
	}
	if s.Notification != nil {
		n := *s.Notification
		s.Notification = &n
	}
	return s
}

// Restored drops the transient parts of a persisted snapshot.
func (s State) Restored() State {
	s = s.Clone()
	s.Notification = nil
	if !s.Kind.Valid() {
		s.Kind = entity.EntryTypeHealthCheck
	}
	if s.Phase != PhaseEditing {
		s.Phase = PhaseIdle
	}
	return s
}

type ButtonStyle string

const (
	ButtonContained ButtonStyle = "contained"
	ButtonOutlined  ButtonStyle = "outlined"
)

// Button is one variant selector of the form
type Button struct {
	Kind  entity.EntryType `json:"kind"`
	Label string           `json:"label"`
	Style ButtonStyle      `json:"style"`
}

// Buttons returns the variant selectors with the active one emphasized
func Buttons(active entity.EntryType) []Button {
	buttons := make([]Button, 0, len(entity.EntryTypes))
	for _, kind := range entity.EntryTypes {
		style := ButtonOutlined
		if kind == active {
			style = ButtonContained
		}
		buttons = append(buttons, Button{Kind: kind, Label: string(kind), Style: style})
	}
	return buttons
}
