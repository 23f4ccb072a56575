package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yanote/pkg/config"
)

type sampleConfig struct {
	Host string `yaml:"host" env:"SAMPLE_HOST" env-default:"localhost"`
	Port int    `yaml:"port" env:"SAMPLE_PORT" env-default:"8080"`
	Name string `yaml:"name" env:"SAMPLE_NAME" env-required:"true"`
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SAMPLE_NAME", "notes")
	t.Setenv("SAMPLE_PORT", "9000")

	cfg, err := config.Load[sampleConfig](context.Background(), "sample", "")
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "notes", cfg.Name)
}

func TestLoadRequiredMissing(t *testing.T) {
	t.Setenv("SAMPLE_NAME", "")
	require.NoError(t, os.Unsetenv("SAMPLE_NAME"))

	cfg, err := config.Load[sampleConfig](context.Background(), "sample", "")
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: db.local\nport: 5433\nname: from-file\n"), 0o600))
	t.Setenv("SAMPLE_PORT", "6000")

	cfg, err := config.Load[sampleConfig](context.Background(), "sample", path)
	require.NoError(t, err)
	assert.Equal(t, "db.local", cfg.Host)
	assert.Equal(t, 6000, cfg.Port)
	assert.Equal(t, "from-file", cfg.Name)
}

func TestLoadMissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("SAMPLE_NAME", "env-only")

	cfg, err := config.Load[sampleConfig](context.Background(), "sample", filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env-only", cfg.Name)
}
