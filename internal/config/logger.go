package config

import (
	"strings"

	"gonotes/pkg/logger"
)

// LoggingConfig - настройки логирования.
type LoggingConfig struct {
	Level string `yaml:"level" env:"NOTES_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"NOTES_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment возвращает режим логгера.
func (c *LoggingConfig) GetEnvironment() logger.Environment {
	if strings.EqualFold(c.Mode, string(logger.Production)) {
		return logger.Production
	}
	return logger.Development
}
