package config

// Драйверы хранилища.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// StorageConfig выбирает хранилище заметок и пользователей.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"NOTES_STORAGE_DRIVER" env-default:"postgres"`
}

// MetricsConfig управляет экспортом метрик Prometheus.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"NOTES_METRICS_ENABLED" env-default:"false"`
	Path    string `yaml:"path" env:"NOTES_METRICS_PATH" env-default:"/metrics"`
}
