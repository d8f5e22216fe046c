package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"patientor/internal/converter"
	"patientor/internal/domain/entity"
	domainRepo "patientor/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const DiagnosisCatalogKey = "diagnoses:catalog"

// diagnosisRepository reads the catalog from the backend with Redis in front.
// Cache failures are logged and fall through to the backend.
type diagnosisRepository struct {
	api   PatientAPI
	cache redis.Cmdable
	ttl   time.Duration
	log   *logrus.Logger
}

// NewDiagnosisRepository creates the repository; a nil cache disables caching
func NewDiagnosisRepository(api PatientAPI, cache redis.Cmdable, ttl time.Duration, log *logrus.Logger) domainRepo.DiagnosisRepository {
	return &diagnosisRepository{api: api, cache: cache, ttl: ttl, log: log}
}

func (r *diagnosisRepository) FindAll(ctx context.Context) ([]entity.Diagnosis, error) {
	if cached, ok := r.cached(ctx); ok {
		return cached, nil
	}

	ds, err := r.api.GetDiagnoses(ctx)
	if err != nil {
		return nil, err
	}
	diagnoses := converter.DiagnosesFromDTO(ds)

	if r.cache != nil {
		data, err := json.Marshal(diagnoses)
		if err == nil {
			err = r.cache.Set(ctx, DiagnosisCatalogKey, data, r.ttl).Err()
		}
		if err != nil {
			r.log.Warnf("Failed to cache diagnosis catalog: %+v", err)
		}
	}
	return diagnoses, nil
}

func (r *diagnosisRepository) cached(ctx context.Context) ([]entity.Diagnosis, bool) {
	if r.cache == nil {
		return nil, false
	}
	data, err := r.cache.Get(ctx, DiagnosisCatalogKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warnf("Failed to read diagnosis catalog from cache: %+v", err)
		}
		return nil, false
	}

	var diagnoses []entity.Diagnosis
	if err := json.Unmarshal(data, &diagnoses); err != nil {
		r.log.Warnf("Failed to decode cached diagnosis catalog: %+v", err)
		return nil, false
	}
	return diagnoses, true
}
