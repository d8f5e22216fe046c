package converter

import (
	"patientor/internal/delivery/dto"
	"patientor/internal/domain/entity"
)

// AuditLogToResponse converts an EntryAuditLog entity to AuditLogResponse DTO
func AuditLogToResponse(log *entity.EntryAuditLog) *dto.AuditLogResponse {
	if log == nil {
		return nil
	}

	return &dto.AuditLogResponse{
		ID:        log.ID,
		SessionID: log.SessionID,
		PatientID: log.PatientID,
		EntryID:   log.EntryID,
		EntryType: string(log.EntryType),
		Action:    log.Action,
		Metadata:  log.Metadata,
		CreatedAt: log.CreatedAt,
	}
}

// AuditLogsToResponses converts a slice of EntryAuditLog entities to slice of AuditLogResponse DTOs
func AuditLogsToResponses(logs []entity.EntryAuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, len(logs))
	for i := range logs {
		responses[i] = *AuditLogToResponse(&logs[i])
	}
	return responses
}
