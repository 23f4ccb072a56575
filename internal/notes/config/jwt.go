package config

import "time"

// JWTConfig содержит настройки токенов доступа.
type JWTConfig struct {
	Secret         string        `yaml:"secret" env:"NOTES_JWT_SECRET" env-default:"dev-secret-change-me"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"NOTES_JWT_ACCESS_TOKEN_TTL" env-default:"24h"`
	BcryptCost     int           `yaml:"bcrypt_cost" env:"NOTES_JWT_BCRYPT_COST" env-default:"10"`
}

// GetAccessTokenTTL возвращает время жизни токена доступа.
func (j *JWTConfig) GetAccessTokenTTL() time.Duration {
	return j.AccessTokenTTL
}
