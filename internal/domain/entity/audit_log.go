package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EntryAuditLog records the outcome of one entry submission
type EntryAuditLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`
	PatientID string    `gorm:"type:varchar(64);not null;index" json:"patient_id"`
	EntryID   string    `gorm:"type:varchar(64)" json:"entry_id,omitempty"`
	EntryType EntryType `gorm:"type:varchar(32);not null" json:"entry_type"`
	Action    string    `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (EntryAuditLog) TableName() string {
	return "entry_audit_logs"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value implements driver.Valuer
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal JSONB value: %v", value)
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

// Entry audit actions
const (
	AuditActionEntryCreate   = "entry.create"
	AuditActionEntryRejected = "entry.rejected"
)
