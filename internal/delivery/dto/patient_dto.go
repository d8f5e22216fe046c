package dto

import "encoding/json"

type DiagnosisDTO struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Latin string `json:"latin,omitempty"`
}

// PatientDTO keeps entries raw so that a bad entry can be reported verbatim
type PatientDTO struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	DateOfBirth string            `json:"dateOfBirth,omitempty"`
	SSN         string            `json:"ssn"`
	Gender      string            `json:"gender"`
	Occupation  string            `json:"occupation"`
	Entries     []json.RawMessage `json:"entries"`
}
