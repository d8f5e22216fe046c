package view

import (
	"patientor/internal/domain/entity"
	"patientor/internal/form"
)

// PatientHeader is the top of the patient page
type PatientHeader struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Gender      entity.Gender `json:"gender"`
	GenderIcon  string        `json:"genderIcon"`
	SSN         string        `json:"ssn"`
	Occupation  string        `json:"occupation"`
	DateOfBirth string        `json:"dateOfBirth,omitempty"`
}

// FormModel is what the page needs to draw the entry form
type FormModel struct {
	State   form.State        `json:"state"`
	Inputs  []form.Field      `json:"inputs"`
	Buttons []form.Button     `json:"buttons"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Page is the full patient page
type Page struct {
	Patient PatientHeader   `json:"patient"`
	Form    FormModel       `json:"form"`
	Entries []EntryFragment `json:"entries"`
}

// NewPage assembles the page from a patient snapshot and the form state
func NewPage(p *entity.Patient, catalog entity.DiagnosisCatalog, state form.State, inputs []form.Field) *Page {
	return &Page{
		Patient: PatientHeader{
			ID:          p.ID,
			Name:        p.Name,
			Gender:      p.Gender,
			GenderIcon:  GenderIcon(p.Gender),
			SSN:         p.SSN,
			Occupation:  p.Occupation,
			DateOfBirth: p.DateOfBirth,
		},
		Form: FormModel{
			State:   state,
			Inputs:  inputs,
			Buttons: form.Buttons(state.Kind),
		},
		Entries: RenderEntries(p.Entries, catalog),
	}
}
