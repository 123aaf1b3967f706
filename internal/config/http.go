package config

import (
	"fmt"
	"time"
)

// HTTPConfig - настройки HTTP сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"NOTES_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"NOTES_HTTP_PORT" env-default:"5050"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"NOTES_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"NOTES_HTTP_WRITE_TIMEOUT" env-default:"10s"`
	CORSOrigins  []string      `yaml:"cors_origins" env:"NOTES_HTTP_CORS_ORIGINS" env-separator:"," env-default:"*"`
}

// GetAddress возвращает адрес в формате host:port.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
