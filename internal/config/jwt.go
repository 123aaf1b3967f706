package config

import "time"

const defaultTokenTTL = 7 * 24 * time.Hour

// JWTConfig - настройки выпуска токенов и хеширования паролей.
type JWTConfig struct {
	Secret     string `yaml:"secret" env:"NOTES_JWT_SECRET"`
	TokenTTL   string `yaml:"token_ttl" env:"NOTES_JWT_TOKEN_TTL" env-default:"168h"`
	BCryptCost int    `yaml:"bcrypt_cost" env:"NOTES_JWT_BCRYPT_COST" env-default:"10"`
}

// GetTokenTTL возвращает время жизни токена; при ошибке разбора - 7 дней.
func (c *JWTConfig) GetTokenTTL() time.Duration {
	duration, err := time.ParseDuration(c.TokenTTL)
	if err != nil || duration <= 0 {
		return defaultTokenTTL
	}
	return duration
}
