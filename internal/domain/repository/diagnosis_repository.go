package repository

import (
	"context"

	"patientor/internal/domain/entity"
)

type DiagnosisRepository interface {
	FindAll(ctx context.Context) ([]entity.Diagnosis, error)
}
