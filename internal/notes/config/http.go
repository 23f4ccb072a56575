package config

import (
	"fmt"
	"time"
)

// HTTPConfig содержит настройки HTTP-сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"NOTES_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"NOTES_HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"NOTES_HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"NOTES_HTTP_WRITE_TIMEOUT" env-default:"10s"`
	CookieName   string        `yaml:"cookie_name" env:"NOTES_HTTP_COOKIE_NAME" env-default:"notes_token"`
	CookieSecure bool          `yaml:"cookie_secure" env:"NOTES_HTTP_COOKIE_SECURE" env-default:"false"`
}

// GetAddress возвращает адрес для прослушивания.
func (h *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}
