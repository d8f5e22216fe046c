package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"patientor/internal/domain/entity"
)

var ErrInvalidRating = errors.New("invalid health check rating")

// BuildDraft shapes the form state into a draft of the active variant.
//
// Diagnosis codes are attached only when at least one is selected. Sick leave
// is attached only when at least one of its dates is set. Discharge is always
// attached for hospital entries.
func BuildDraft(s State) (entity.EntryDraft, error) {
	base := entity.NewBaseEntry{
		Description: s.Description,
		Date:        s.Date,
		Specialist:  s.Specialist,
	}
	if len(s.DiagnosisCodes) > 0 {
		base.DiagnosisCodes = append([]entity.DiagnosisCode(nil), s.DiagnosisCodes...)
	}

	switch s.Kind {
	case entity.EntryTypeHealthCheck:
		rating, err := ParseRating(s.HealthCheckRating)
		if err != nil {
			return nil, err
		}
		return &entity.HealthCheckDraft{
			NewBaseEntry:      base,
			HealthCheckRating: rating,
		}, nil
	case entity.EntryTypeOccupationalHealthcare:
		draft := &entity.OccupationalHealthcareDraft{
			NewBaseEntry: base,
			EmployerName: s.EmployerName,
		}
		if !s.SickLeave.Empty() {
			sickLeave := s.SickLeave
			draft.SickLeave = &sickLeave
		}
		return draft, nil
	case entity.EntryTypeHospital:
		return &entity.HospitalDraft{
			NewBaseEntry: base,
			Discharge:    s.Discharge,
		}, nil
	default:
		entity.UnhandledVariant(s.Kind)
		return nil, nil
	}
}

// ParseRating converts the selector value into a health check rating
func ParseRating(v string) (entity.HealthCheckRating, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRating, v)
	}
	rating := entity.HealthCheckRating(n)
	if !rating.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidRating, n)
	}
	return rating, nil
}
