package repository

import (
	"context"
	"fmt"

	"patientor/internal/form"

	"github.com/google/uuid"
)

const formStateKeyPrefix = "form:state:"

// FormStateKey identifies the form of one patient in one browser session
func FormStateKey(sessionID uuid.UUID, patientID string) string {
	return fmt.Sprintf("%s%s:%s", formStateKeyPrefix, sessionID, patientID)
}

// FormStateRepository keeps snapshots of in-progress entry forms.
// Load returns nil, nil when no snapshot exists.
type FormStateRepository interface {
	Save(ctx context.Context, key string, state form.State) error
	Load(ctx context.Context, key string) (*form.State, error)
}
