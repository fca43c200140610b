// Package cache определяет порт кэша.
package cache

import (
	"context"
	"time"
)

// Cache - порт кэширования строковых значений по ключу.
type Cache interface {
	// Get возвращает значение по ключу или пустую строку, если ключа нет.
	Get(ctx context.Context, key string) (string, error)
	// Set устанавливает значение по ключу. Нулевой ttl означает TTL по умолчанию.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Delete удаляет значение по ключу.
	Delete(ctx context.Context, key string) error
	// Close закрывает соединение с кэшем.
	Close() error
}
