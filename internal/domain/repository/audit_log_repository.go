package repository

import (
	"context"

	"patientor/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(ctx context.Context, db *gorm.DB, log *entity.EntryAuditLog) error
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID string) ([]entity.EntryAuditLog, error)
}
