// Package cache connects the Redis instance that holds the diagnosis catalog
// cache and the entry form snapshots.
package cache

import (
	"context"
	"errors"
	"fmt"
	"net"

	"patientor/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var ErrRedisUnavailable = errors.New("form state store unavailable")

// Addr is the host:port of the configured Redis instance
func Addr(cfg config.RedisConfig) string {
	return net.JoinHostPort(cfg.Host, cfg.Port)
}

// NewRedisClient connects and pings Redis. Without it form snapshots cannot
// be kept, so a failed ping is fatal for the caller.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	addr := Addr(cfg)
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping %s db %d: %w", ErrRedisUnavailable, addr, cfg.DB, err)
	}

	logrus.WithFields(logrus.Fields{"addr": addr, "db": cfg.DB}).Info("Connected to form state store")
	return client, nil
}
