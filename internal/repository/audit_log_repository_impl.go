package repository

import (
	"context"

	"patientor/internal/domain/entity"
	domainRepo "patientor/internal/domain/repository"

	"gorm.io/gorm"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(ctx context.Context, db *gorm.DB, log *entity.EntryAuditLog) error {
	return db.WithContext(ctx).Create(log).Error
}

func (r *auditLogRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID string) ([]entity.EntryAuditLog, error) {
	var logs []entity.EntryAuditLog
	err := db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC, id DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
