// Package redis implementa el bloqueo distribuido de costos en destino con redislock.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/landed-cost-api/internal/application/landedcost"
	"github.com/jhoicas/landed-cost-api/internal/domain"
	"github.com/jhoicas/landed-cost-api/pkg/config"
)

var _ landedcost.Locker = (*Locker)(nil)

// NewClient crea el cliente y verifica la conexión con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// Ping chequeo de salud para /health.
func Ping(client goredis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		return nil
	}
}

// Locker bloqueo exclusivo por clave. No reintenta: si la clave está tomada responde ErrConflict.
type Locker struct {
	client *redislock.Client
	ttl    time.Duration
}

// NewLocker construye el locker; ttl acota cuánto vive un bloqueo si el proceso muere sin liberarlo.
func NewLocker(client goredis.UniversalClient, ttl time.Duration) *Locker {
	return &Locker{client: redislock.New(client), ttl: ttl}
}

// Lock toma la clave y devuelve la función que la libera.
func (l *Locker) Lock(ctx context.Context, key string) (func(context.Context) error, error) {
	lock, err := l.client.Obtain(ctx, key, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s en proceso", domain.ErrConflict, key)
	}
	if err != nil {
		return nil, fmt.Errorf("redis lock %s: %w", key, err)
	}
	return func(ctx context.Context) error {
		err := lock.Release(ctx)
		if errors.Is(err, redislock.ErrLockNotHeld) {
			// expiró por TTL
			return nil
		}
		return err
	}, nil
}
