// Package main реализует точку входа сервиса заметок.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	authservices "yanote/internal/auth/adapters/services"
	authapp "yanote/internal/auth/app"
	noteshttp "yanote/internal/notes/adapters/http"
	"yanote/internal/notes/app"
	"yanote/internal/notes/config"
	"yanote/pkg/logger"
	"yanote/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NOTES_LOGGER_MODE"
	EnvLoggerLevel = "NOTES_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitStorage          = "failed to initialize storage"
	ErrInitHTTP             = "failed to initialize HTTP server"
	ErrServeHTTP            = "HTTP server stopped with error"
	ErrShutdown             = "service stopped with errors"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "notes service started"
	LogServiceShutdownDone = "notes service shutdown complete"
	LogInitStorage         = "initializing storage"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == string(logger.Production) {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level, cfg.Logging.Options()...)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogInitStorage, zap.String("driver", cfg.Storage.Driver), zap.Bool("redis", cfg.Redis.Enabled))
		store, err := newStorage(ctx, cfg)
		if err != nil {
			log.Error(ctx, ErrInitStorage, zap.Error(err))
			exitCode = 1
			return
		}

		noteCache := newCache(ctx, cfg, store)

		log.Info(ctx, LogInitServices)
		serviceFactory := authservices.NewServiceFactory(cfg.JWT.Secret, cfg.JWT.GetAccessTokenTTL(), cfg.JWT.BcryptCost)

		log.Info(ctx, LogInitUseCases)
		authUseCase := authapp.NewAuthUseCase(
			store.users,
			store.revocations,
			serviceFactory.PasswordService(),
			serviceFactory.TokenService(),
		)
		noteUseCase := app.NewNoteUseCase(store.notes, noteCache)

		log.Info(ctx, LogInitHTTPServer)
		httpApp, err := noteshttp.NewApp(noteshttp.Options{
			AppName:        "notes",
			CookieName:     cfg.HTTP.CookieName,
			CookieSecure:   cfg.HTTP.CookieSecure,
			ReadTimeout:    cfg.HTTP.ReadTimeout,
			WriteTimeout:   cfg.HTTP.WriteTimeout,
			MetricsEnabled: cfg.Metrics.Enabled,
			MetricsPath:    cfg.Metrics.Path,
			Logger:         log,
		}, noteUseCase, authUseCase)
		if err != nil {
			log.Error(ctx, ErrInitHTTP, zap.Error(err))
			_ = shutdown.Run(ctx, cfg.Shutdown.GetTimeout(), store.phases()...)
			exitCode = 1
			return
		}

		serveCtx, stopServing := context.WithCancelCause(ctx)
		defer stopServing(nil)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := httpApp.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
				log.Error(ctx, ErrServeHTTP, zap.Error(err))
				stopServing(fmt.Errorf("%s: %w", ErrServeHTTP, err))
			}
		}()

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		phases := append([]shutdown.Phase{{
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return httpApp.ShutdownWithContext(ctx)
			},
		}}, store.phases()...)

		if err := shutdown.Wait(serveCtx, cfg.Shutdown.GetTimeout(), phases...); err != nil {
			log.Error(ctx, ErrShutdown, zap.Error(err))
			exitCode = 1
		}

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
