package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"patientor/internal/converter"
	"patientor/internal/delivery/dto"
	"patientor/internal/domain/entity"
	domainRepo "patientor/internal/domain/repository"
	"patientor/internal/form"
	"patientor/internal/infrastructure/patientapi"
)

// PatientAPI is the part of the backend client the repositories use
type PatientAPI interface {
	GetPatient(ctx context.Context, id string) (*dto.PatientDTO, error)
	GetDiagnoses(ctx context.Context) ([]dto.DiagnosisDTO, error)
	CreateEntry(ctx context.Context, patientID string, entry dto.EntryDTO) (json.RawMessage, error)
}

var _ PatientAPI = (*patientapi.Client)(nil)

type patientRepository struct {
	api PatientAPI
}

func NewPatientRepository(api PatientAPI) domainRepo.PatientRepository {
	return &patientRepository{api: api}
}

func (r *patientRepository) FindByID(ctx context.Context, id string) (*entity.Patient, error) {
	d, err := r.api.GetPatient(ctx, id)
	if err != nil {
		var apiErr *patientapi.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", domainRepo.ErrPatientNotFound, id)
		}
		return nil, err
	}
	return converter.PatientFromDTO(d)
}

// CreateEntry stores draft and returns the entry the backend created.
// Backend rejections come back as *patientapi.APIError; a stored entry the
// backend answers with in an unknown shape wraps form.ErrEntryUnreadable.
func (r *patientRepository) CreateEntry(ctx context.Context, patientID string, draft entity.EntryDraft) (entity.Entry, error) {
	raw, err := r.api.CreateEntry(ctx, patientID, converter.DraftToDTO(draft))
	if err != nil {
		return nil, err
	}
	entry, err := converter.EntryFromJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", form.ErrEntryUnreadable, err)
	}
	return entry, nil
}
