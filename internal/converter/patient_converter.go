package converter

import (
	"fmt"

	"patientor/internal/delivery/dto"
	"patientor/internal/domain/entity"
)

// PatientFromDTO decodes a patient and all of its entries.
// A single bad entry fails the whole patient.
func PatientFromDTO(d *dto.PatientDTO) (*entity.Patient, error) {
	p := &entity.Patient{
		ID:          d.ID,
		Name:        d.Name,
		DateOfBirth: d.DateOfBirth,
		Gender:      entity.Gender(d.Gender),
		SSN:         d.SSN,
		Occupation:  d.Occupation,
		Entries:     make([]entity.Entry, 0, len(d.Entries)),
	}
	for i, raw := range d.Entries {
		e, err := EntryFromJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("patient %s entry %d: %w", d.ID, i, err)
		}
		p.Entries = append(p.Entries, e)
	}
	return p, nil
}

func DiagnosesFromDTO(ds []dto.DiagnosisDTO) []entity.Diagnosis {
	out := make([]entity.Diagnosis, len(ds))
	for i, d := range ds {
		out[i] = entity.Diagnosis{Code: d.Code, Name: d.Name, Latin: d.Latin}
	}
	return out
}
