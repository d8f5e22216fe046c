package dto

import (
	"patientor/internal/form"
	"patientor/internal/view"
)

// EntryFormRequest is the HTML entry form as posted by the browser.
// A nil field was not rendered and leaves the form state untouched.
type EntryFormRequest struct {
	Description       *string  `schema:"description"`
	Date              *string  `schema:"date"`
	Specialist        *string  `schema:"specialist"`
	DiagnosisCodes    []string `schema:"diagnosisCodes"`
	HealthCheckRating *string  `schema:"healthCheckRating"`
	EmployerName      *string  `schema:"employerName"`
	SickLeaveStart    *string  `schema:"sickLeaveStart"`
	SickLeaveEnd      *string  `schema:"sickLeaveEnd"`
	DischargeDate     *string  `schema:"dischargeDate"`
	DischargeCriteria *string  `schema:"dischargeCriteria"`
	Kind              string   `schema:"kind"`
}

type FormActionRequest struct {
	Type   string   `json:"type" validate:"required"`
	Value  string   `json:"value"`
	Values []string `json:"values"`
}

type FormActionsRequest struct {
	Actions []FormActionRequest `json:"actions" validate:"required,min=1,dive"`
}

// PatientPageResponse is the JSON rendition of the patient page
type PatientPageResponse struct {
	SessionID string     `json:"session_id"`
	Page      *view.Page `json:"page"`
}

type FormStateResponse struct {
	State   form.State    `json:"state"`
	Inputs  []form.Field  `json:"inputs"`
	Buttons []form.Button `json:"buttons"`
}

type SubmitEntryResponse struct {
	Entry *view.EntryFragment `json:"entry,omitempty"`
	Form  FormStateResponse   `json:"form"`
}
