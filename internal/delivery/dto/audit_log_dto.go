package dto

import (
	"time"

	"github.com/google/uuid"
)

type AuditLogResponse struct {
	ID        int64                  `json:"id"`
	SessionID uuid.UUID              `json:"session_id"`
	PatientID string                 `json:"patient_id"`
	EntryID   string                 `json:"entry_id,omitempty"`
	EntryType string                 `json:"entry_type"`
	Action    string                 `json:"action"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}
