package service

import (
	"context"

	"patientor/internal/converter"
	"patientor/internal/domain/entity"
	"patientor/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService records the outcome of every entry submission
type AuditService interface {
	LogEntryCreated(ctx context.Context, sessionID uuid.UUID, patientID string, entry entity.Entry) error
	LogEntryRejected(ctx context.Context, sessionID uuid.UUID, patientID string, kind entity.EntryType, reason string) error
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogEntryCreated logs an entry stored by the backend
func (s *auditService) LogEntryCreated(ctx context.Context, sessionID uuid.UUID, patientID string, entry entity.Entry) error {
	auditLog := &entity.EntryAuditLog{
		SessionID: sessionID,
		PatientID: patientID,
		EntryID:   entry.Base().ID,
		EntryType: entry.Type(),
		Action:    entity.AuditActionEntryCreate,
		Metadata: entity.JSON{
			"entry": converter.EntryToDTO(entry),
		},
	}
	return s.create(ctx, auditLog)
}

// LogEntryRejected logs a submission the backend refused
func (s *auditService) LogEntryRejected(ctx context.Context, sessionID uuid.UUID, patientID string, kind entity.EntryType, reason string) error {
	auditLog := &entity.EntryAuditLog{
		SessionID: sessionID,
		PatientID: patientID,
		EntryType: kind,
		Action:    entity.AuditActionEntryRejected,
		Metadata: entity.JSON{
			"reason": reason,
		},
	}
	return s.create(ctx, auditLog)
}

func (s *auditService) create(ctx context.Context, auditLog *entity.EntryAuditLog) error {
	if err := s.auditRepo.Create(ctx, s.db, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}
	return nil
}
