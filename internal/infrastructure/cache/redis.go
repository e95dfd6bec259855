// Package cache implementa la caché de reportes y el contador del
// rate-limit sobre Redis.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/tu-usuario/erp-pro/internal/application/reports"
)

var _ reports.Cache = (*RedisCache)(nil)

// RedisCache adaptador de caché sobre un cliente Redis.
type RedisCache struct {
	rdb *redis.Client
}

// NewRedisCache conecta con Redis y verifica con un PING. addr con
// formato host:puerto; password puede ir vacío.
func NewRedisCache(addr, password string, db int) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("conectar redis: %w", err)
	}
	return &RedisCache{rdb: rdb}, nil
}

// Get devuelve el valor de la clave, o (nil, nil) si no existe.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	return val, nil
}

// Set guarda la clave con expiración.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete elimina la clave. No es error que no exista.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// Allow implementa una ventana fija de rate-limit por clave: incrementa
// el contador y fija la expiración al abrir la ventana. Devuelve false
// cuando el contador supera el límite. Si Redis falla, deja pasar: el
// rate-limit es protección, no disponibilidad.
func (c *RedisCache) Allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true
	}
	return incr.Val() <= int64(limit)
}

// Close cierra la conexión con Redis.
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
