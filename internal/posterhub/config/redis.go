package config

import (
	"fmt"
	"time"
)

// RedisConfig содержит настройки подключения к Redis.
type RedisConfig struct {
	Host            string        `yaml:"host" env:"POSTERHUB_REDIS_HOST" env-default:"0.0.0.0"`
	Port            int           `yaml:"port" env:"POSTERHUB_REDIS_PORT" env-default:"6379"`
	Password        string        `yaml:"password" env:"POSTERHUB_REDIS_PASSWORD" env-default:""`
	DB              int           `yaml:"db" env:"POSTERHUB_REDIS_DB" env-default:"0"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env:"POSTERHUB_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"POSTERHUB_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"POSTERHUB_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize        int           `yaml:"pool_size" env:"POSTERHUB_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle         int           `yaml:"min_idle" env:"POSTERHUB_REDIS_MIN_IDLE" env-default:"2"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"POSTERHUB_REDIS_IDLE_TIMEOUT" env-default:"5m"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"POSTERHUB_REDIS_MAX_CONN_LIFETIME" env-default:"1h"`
	DefaultTTL      time.Duration `yaml:"default_ttl" env:"POSTERHUB_REDIS_DEFAULT_TTL" env-default:"10m"`
}

// GetAddressString возвращает адрес Redis в виде host:port.
func (r *RedisConfig) GetAddressString() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
