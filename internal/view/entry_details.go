// Package view renders the patient page: one display fragment per entry,
// the patient header and the entry form.
package view

import (
	"patientor/internal/domain/entity"
)

// Variant markers
const (
	IconHealthCheck            = "🩺"
	IconOccupationalHealthcare = "💼"
	IconHospital               = "🏥"
	IconDischarge              = "🩹"
)

// RatingMarker is the visual signal of a health check rating
type RatingMarker struct {
	Rating entity.HealthCheckRating `json:"rating"`
	Symbol string                   `json:"symbol"`
	Label  string                   `json:"label"`
}

// DiagnosisRef is a diagnosis code cited by an entry, with its catalog name when known
type DiagnosisRef struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
}

// EntryFragment is the display form of one entry
type EntryFragment struct {
	ID             string           `json:"id"`
	Type           entity.EntryType `json:"type"`
	Date           string           `json:"date"`
	Icon           string           `json:"icon"`
	Description    string           `json:"description"`
	Specialist     string           `json:"specialist"`
	DiagnosisCodes []DiagnosisRef   `json:"diagnosisCodes,omitempty"`

	Rating            *RatingMarker     `json:"rating,omitempty"`
	EmployerName      string            `json:"employerName,omitempty"`
	SickLeave         *entity.SickLeave `json:"sickLeave,omitempty"`
	DischargeDate     string            `json:"dischargeDate,omitempty"`
	DischargeCriteria string            `json:"dischargeCriteria,omitempty"`
}

var ratingSymbols = map[entity.HealthCheckRating]string{
	entity.HealthCheckRatingHealthy:      "💚",
	entity.HealthCheckRatingLowRisk:      "💛",
	entity.HealthCheckRatingHighRisk:     "❤️",
	entity.HealthCheckRatingCriticalRisk: "🖤",
}

// Rating returns the marker of r. Ratings outside 0..3 cannot be displayed
// correctly and panic with the offending value.
func Rating(r entity.HealthCheckRating) RatingMarker {
	symbol, ok := ratingSymbols[r]
	if !ok {
		entity.UnhandledVariant(r)
	}
	return RatingMarker{Rating: r, Symbol: symbol, Label: r.String()}
}

// RenderEntry maps e to its fragment. It never modifies e.
func RenderEntry(e entity.Entry, catalog entity.DiagnosisCatalog) EntryFragment {
	switch e := e.(type) {
	case *entity.HealthCheckEntry:
		f := baseFragment(e.BaseEntry, e.Type(), IconHealthCheck, catalog)
		marker := Rating(e.HealthCheckRating)
		f.Rating = &marker
		return f
	case *entity.OccupationalHealthcareEntry:
		f := baseFragment(e.BaseEntry, e.Type(), IconOccupationalHealthcare, catalog)
		f.EmployerName = e.EmployerName
		if e.SickLeave != nil {
			sl := *e.SickLeave
			f.SickLeave = &sl
		}
		return f
	case *entity.HospitalEntry:
		f := baseFragment(e.BaseEntry, e.Type(), IconHospital, catalog)
		f.DischargeDate = e.Discharge.Date
		f.DischargeCriteria = e.Discharge.Criteria
		return f
	default:
		entity.UnhandledVariant(e)
		return EntryFragment{}
	}
}

// RenderEntries renders entries in their stored order
func RenderEntries(entries []entity.Entry, catalog entity.DiagnosisCatalog) []EntryFragment {
	fragments := make([]EntryFragment, 0, len(entries))
	for _, e := range entries {
		fragments = append(fragments, RenderEntry(e, catalog))
	}
	return fragments
}

func baseFragment(b entity.BaseEntry, typ entity.EntryType, icon string, catalog entity.DiagnosisCatalog) EntryFragment {
	f := EntryFragment{
		ID:          b.ID,
		Type:        typ,
		Date:        b.Date,
		Icon:        icon,
		Description: b.Description,
		Specialist:  b.Specialist,
	}
	for _, code := range b.DiagnosisCodes {
		f.DiagnosisCodes = append(f.DiagnosisCodes, DiagnosisRef{Code: code, Name: catalog[code].Name})
	}
	return f
}
