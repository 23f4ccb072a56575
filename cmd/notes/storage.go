package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	authmemory "yanote/internal/auth/adapters/memory"
	authpostgres "yanote/internal/auth/adapters/postgres"
	authredis "yanote/internal/auth/adapters/redis"
	authrepos "yanote/internal/auth/ports/repositories"
	notescache "yanote/internal/notes/adapters/cache"
	notesmemory "yanote/internal/notes/adapters/memory"
	notespostgres "yanote/internal/notes/adapters/postgres"
	"yanote/internal/notes/config"
	"yanote/internal/notes/db"
	portcache "yanote/internal/notes/ports/cache"
	notesrepos "yanote/internal/notes/ports/repositories"
	pkgredis "yanote/pkg/db/redis"
	"yanote/pkg/logger"
	"yanote/pkg/resilience"
	"yanote/pkg/shutdown"
)

const revokedSweepInterval = time.Hour

// Константы для сообщений хранилища.
const (
	LogClosingDB       = "closing database connections"
	LogRevokedSwept    = "expired revoked tokens removed"
	LogCacheDisabled   = "redis disabled, note cache is off"
	LogStoppingSweeper = "stopping revoked tokens sweeper"
	LogMemoryStorage   = "using in-memory storage, data will be lost on restart"
	ErrSweepRevoked    = "failed to remove expired revoked tokens"
)

// storage - хранилища заметок и пользователей с хуками их закрытия.
type storage struct {
	notes       notesrepos.NoteRepository
	users       authrepos.UserRepository
	revocations authrepos.RevocationRepository
	redis       *pkgredis.Client
	// workers останавливаются раньше closers: они пользуются соединениями.
	workers shutdown.Phase
	closers shutdown.Phase
}

// phases возвращает порядок остановки хранилищ.
func (s *storage) phases() []shutdown.Phase {
	return []shutdown.Phase{s.workers, s.closers}
}

type expiredSweeper interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

func newStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	s := &storage{}

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		logger.Log(ctx).Warn(ctx, LogMemoryStorage)
		s.notes = notesmemory.NewNoteRepository()
		s.users = authmemory.NewUserRepository()
		s.revocations = authmemory.NewRevocationRepository()
	default:
		database, err := db.New(ctx, &cfg.Postgres)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func(ctx context.Context) error {
			logger.Log(ctx).Info(ctx, LogClosingDB)
			return database.Close(ctx)
		})

		s.notes = notespostgres.NewRepositoryFactory(database.Pool()).NoteRepository()
		authRepos := authpostgres.NewRepositoryFactory(database.Pool())
		s.users = authRepos.UserRepository()
		s.revocations = authRepos.RevocationRepository()
	}

	if cfg.Redis.Enabled {
		client, err := pkgredis.NewClient(ctx, cfg.Redis.ClientConfig())
		if err != nil {
			_ = shutdown.Run(ctx, cfg.Shutdown.GetTimeout(), s.phases()...)
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		s.redis = client
		s.closers = append(s.closers, client.Close)
		s.revocations = authredis.NewRevocationRepository(client)
	}

	if sweeper, ok := s.revocations.(expiredSweeper); ok {
		s.workers = append(s.workers, startSweeper(ctx, sweeper))
	}

	return s, nil
}

// startSweeper периодически удаляет истекшие отозванные токены.
func startSweeper(ctx context.Context, sweeper expiredSweeper) shutdown.Hook {
	sweepCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(revokedSweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				removed, err := sweeper.DeleteExpired(sweepCtx)
				if err != nil {
					logger.Log(sweepCtx).Warn(sweepCtx, ErrSweepRevoked, zap.Error(err))
					continue
				}
				logger.Log(sweepCtx).Debug(sweepCtx, LogRevokedSwept, zap.Int64("count", removed))
			}
		}
	}()

	return func(ctx context.Context) error {
		logger.Log(ctx).Info(ctx, LogStoppingSweeper)
		cancel()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func newCache(ctx context.Context, cfg *config.Config, s *storage) portcache.NoteCache {
	if s.redis == nil {
		logger.Log(ctx).Info(ctx, LogCacheDisabled)
		return notescache.NewNoopCache()
	}

	guard := resilience.NewGuard("redis", resilience.DefaultBreakerConfig(), resilience.DefaultRetryConfig())
	return notescache.NewRedisCache(s.redis, guard, cfg.Redis.CacheTTL)
}
