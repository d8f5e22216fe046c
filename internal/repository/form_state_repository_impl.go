package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domainRepo "patientor/internal/domain/repository"
	"patientor/internal/form"

	"github.com/redis/go-redis/v9"
)

type formStateRepository struct {
	redisClient redis.Cmdable
	ttl         time.Duration
}

func NewFormStateRepository(redisClient redis.Cmdable, ttl time.Duration) domainRepo.FormStateRepository {
	return &formStateRepository{redisClient: redisClient, ttl: ttl}
}

func (r *formStateRepository) Save(ctx context.Context, key string, state form.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return r.redisClient.Set(ctx, key, data, r.ttl).Err()
}

func (r *formStateRepository) Load(ctx context.Context, key string) (*form.State, error) {
	data, err := r.redisClient.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var state form.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode form state %s: %w", key, err)
	}
	return &state, nil
}
