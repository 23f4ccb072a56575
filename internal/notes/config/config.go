// Package config описывает конфигурацию сервиса заметок.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	pkgconfig "yanote/pkg/config"
)

const (
	serviceName = "notes"
	// FileEnv - переменная окружения с путем к необязательному файлу конфигурации.
	FileEnv = "NOTES_CONFIG_FILE"
)

// Ошибки проверки конфигурации.
var (
	ErrUnknownStorageDriver = errors.New("unknown storage driver")
	ErrEmptyJWTSecret       = errors.New("jwt secret must not be empty")
	ErrInvalidTokenTTL      = errors.New("access token ttl must be positive")
)

// Config содержит все настройки сервиса.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
	Storage  StorageConfig  `yaml:"storage"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// Load читает конфигурацию из окружения и файла NOTES_CONFIG_FILE.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, serviceName, os.Getenv(FileEnv))
	if err != nil {
		return nil, fmt.Errorf("loading %s config: %w", serviceName, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorageDriver, c.Storage.Driver)
	}
	if c.JWT.Secret == "" {
		return ErrEmptyJWTSecret
	}
	if c.JWT.AccessTokenTTL <= 0 {
		return ErrInvalidTokenTTL
	}
	return nil
}
