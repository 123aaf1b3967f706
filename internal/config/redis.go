package config

import (
	"time"

	"gonotes/pkg/db/redis"
)

// RedisConfig - настройки кэша списков заметок.
type RedisConfig struct {
	Enabled      bool          `yaml:"enabled" env:"NOTES_REDIS_ENABLED" env-default:"false"`
	Addr         string        `yaml:"addr" env:"NOTES_REDIS_ADDR" env-default:"localhost:6379"`
	Password     string        `yaml:"password" env:"NOTES_REDIS_PASSWORD"`
	DB           int           `yaml:"db" env:"NOTES_REDIS_DB" env-default:"0"`
	PoolSize     int           `yaml:"pool_size" env:"NOTES_REDIS_POOL_SIZE" env-default:"10"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"NOTES_REDIS_DIAL_TIMEOUT" env-default:"5s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"NOTES_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"NOTES_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	ListTTL      time.Duration `yaml:"list_ttl" env:"NOTES_REDIS_LIST_TTL" env-default:"5m"`
}

// ClientConfig преобразует настройки в конфигурацию клиента Redis.
func (c *RedisConfig) ClientConfig() redis.Config {
	return redis.Config{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     c.PoolSize,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	}
}
