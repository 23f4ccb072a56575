// Package cache содержит реализации кэша заметок.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"yanote/internal/notes/domain/entities"
	"yanote/internal/notes/ports/cache"
	pkgredis "yanote/pkg/db/redis"
	"yanote/pkg/logger"
	"yanote/pkg/resilience"
)

// Константы для логирования.
const (
	LogMethodGet    = "get"
	LogMethodSet    = "set"
	LogMethodDelete = "delete"

	ErrorFailedToGet    = "failed to get note from redis"
	ErrorFailedToSet    = "failed to set note in redis"
	ErrorFailedToDelete = "failed to delete note from redis"
	ErrorFailedToDecode = "failed to decode cached note"
)

const keyPrefix = "notes:note:"

// KeyValueStore - операции Redis, нужные кэшу. Реализуется pkg/db/redis.Client.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// RedisCache хранит заметки в Redis в виде JSON.
type RedisCache struct {
	store KeyValueStore
	guard *resilience.Guard
	ttl   time.Duration
}

// NewRedisCache создает кэш поверх store. Вызовы Redis идут через guard.
func NewRedisCache(store KeyValueStore, guard *resilience.Guard, ttl time.Duration) cache.NoteCache {
	return &RedisCache{store: store, guard: guard, ttl: ttl}
}

// Get возвращает заметку по slug или nil при промахе.
func (c *RedisCache) Get(ctx context.Context, slug string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet), zap.String("slug", slug))

	raw, err := resilience.Do(ctx, c.guard, "cache.get", func() (string, error) {
		value, err := c.store.Get(ctx, keyPrefix+slug)
		if errors.Is(err, pkgredis.ErrKeyNotFound) {
			return "", nil
		}
		return value, err
	})
	if err != nil {
		log.Warn(ctx, ErrorFailedToGet, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}
	if raw == "" {
		return nil, nil
	}

	var note entities.Note
	if err := json.Unmarshal([]byte(raw), &note); err != nil {
		log.Warn(ctx, ErrorFailedToDecode, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToDecode, err)
	}
	return &note, nil
}

// Set сохраняет заметку на время ttl.
func (c *RedisCache) Set(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSet), zap.String("slug", note.Slug))

	data, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}

	err = c.guard.Execute(ctx, "cache.set", func() error {
		return c.store.Set(ctx, keyPrefix+note.Slug, data, c.ttl)
	})
	if err != nil {
		log.Warn(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}
	return nil
}

// Delete удаляет заметку из кэша.
func (c *RedisCache) Delete(ctx context.Context, slug string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodDelete), zap.String("slug", slug))

	err := c.guard.Execute(ctx, "cache.delete", func() error {
		return c.store.Delete(ctx, keyPrefix+slug)
	})
	if err != nil {
		log.Warn(ctx, ErrorFailedToDelete, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDelete, err)
	}
	return nil
}
