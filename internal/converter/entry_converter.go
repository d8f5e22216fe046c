package converter

import (
	"encoding/json"
	"errors"
	"fmt"

	"patientor/internal/delivery/dto"
	"patientor/internal/domain/entity"
)

var ErrInvalidEntry = errors.New("invalid entry")

// EntryFromJSON decodes one wire entry, dispatching on its type tag
func EntryFromJSON(raw json.RawMessage) (entity.Entry, error) {
	var d dto.EntryDTO
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}

	base := entity.BaseEntry{
		ID:             d.ID,
		Description:    d.Description,
		Date:           d.Date,
		Specialist:     d.Specialist,
		DiagnosisCodes: d.DiagnosisCodes,
	}

	switch entity.EntryType(d.Type) {
	case entity.EntryTypeHealthCheck:
		if d.HealthCheckRating == nil {
			return nil, fmt.Errorf("%w: health check %q has no rating", ErrInvalidEntry, d.ID)
		}
		rating := entity.HealthCheckRating(*d.HealthCheckRating)
		if !rating.Valid() {
			return nil, fmt.Errorf("%w: health check %q has rating %d", ErrInvalidEntry, d.ID, *d.HealthCheckRating)
		}
		return &entity.HealthCheckEntry{BaseEntry: base, HealthCheckRating: rating}, nil
	case entity.EntryTypeOccupationalHealthcare:
		e := &entity.OccupationalHealthcareEntry{BaseEntry: base, EmployerName: d.EmployerName}
		if d.SickLeave != nil {
			e.SickLeave = &entity.SickLeave{StartDate: d.SickLeave.StartDate, EndDate: d.SickLeave.EndDate}
		}
		return e, nil
	case entity.EntryTypeHospital:
		if d.Discharge == nil {
			return nil, fmt.Errorf("%w: hospital entry %q has no discharge", ErrInvalidEntry, d.ID)
		}
		return &entity.HospitalEntry{
			BaseEntry: base,
			Discharge: entity.Discharge{Date: d.Discharge.Date, Criteria: d.Discharge.Criteria},
		}, nil
	default:
		return nil, &entity.UnknownEntryTypeError{Type: d.Type, Raw: raw}
	}
}

// DraftToDTO converts a draft to the body of a create-entry request
func DraftToDTO(draft entity.EntryDraft) dto.EntryDTO {
	nb := draft.NewBase()
	out := dto.EntryDTO{
		Description:    nb.Description,
		Date:           nb.Date,
		Specialist:     nb.Specialist,
		DiagnosisCodes: nb.DiagnosisCodes,
		Type:           string(draft.Type()),
	}

	switch d := draft.(type) {
	case *entity.HealthCheckDraft:
		rating := int(d.HealthCheckRating)
		out.HealthCheckRating = &rating
	case *entity.OccupationalHealthcareDraft:
		out.EmployerName = d.EmployerName
		if d.SickLeave != nil {
			out.SickLeave = &dto.SickLeaveDTO{StartDate: d.SickLeave.StartDate, EndDate: d.SickLeave.EndDate}
		}
	case *entity.HospitalDraft:
		out.Discharge = &dto.DischargeDTO{Date: d.Discharge.Date, Criteria: d.Discharge.Criteria}
	default:
		entity.UnhandledVariant(draft)
	}
	return out
}

// EntryToDTO converts a stored entry to its wire form
func EntryToDTO(e entity.Entry) dto.EntryDTO {
	b := e.Base()
	out := dto.EntryDTO{
		ID:             b.ID,
		Description:    b.Description,
		Date:           b.Date,
		Specialist:     b.Specialist,
		DiagnosisCodes: b.DiagnosisCodes,
		Type:           string(e.Type()),
	}

	switch v := e.(type) {
	case *entity.HealthCheckEntry:
		rating := int(v.HealthCheckRating)
		out.HealthCheckRating = &rating
	case *entity.OccupationalHealthcareEntry:
		out.EmployerName = v.EmployerName
		if v.SickLeave != nil {
			out.SickLeave = &dto.SickLeaveDTO{StartDate: v.SickLeave.StartDate, EndDate: v.SickLeave.EndDate}
		}
	case *entity.HospitalEntry:
		out.Discharge = &dto.DischargeDTO{Date: v.Discharge.Date, Criteria: v.Discharge.Criteria}
	default:
		entity.UnhandledVariant(e)
	}
	return out
}
