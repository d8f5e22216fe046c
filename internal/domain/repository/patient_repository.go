package repository

import (
	"context"

	"patientor/internal/domain/entity"
)

// PatientRepository is the storage collaborator for patients and their entries
type PatientRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Patient, error)
	CreateEntry(ctx context.Context, patientID string, draft entity.EntryDraft) (entity.Entry, error)
}
