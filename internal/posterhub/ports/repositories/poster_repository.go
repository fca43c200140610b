// Package repositories определяет порты хранилища сущностей.
package repositories

import (
	"context"

	"posterhub/internal/posterhub/domain/entities"
)

// PosterRepository - порт хранилища афиш. Хранилище гарантирует атомарность
// одиночных операций по ключу, но не транзакции между вызовами.
type PosterRepository interface {
	// Get возвращает афишу по ID или nil, если афиша отсутствует.
	Get(ctx context.Context, id string) (*entities.Poster, error)
	// GetAll возвращает все афиши.
	GetAll(ctx context.Context) ([]*entities.Poster, error)
	// ExistsByID проверяет наличие афиши.
	ExistsByID(ctx context.Context, id string) (bool, error)
	// Put сохраняет афишу (upsert по ID) и возвращает сохраненную запись.
	Put(ctx context.Context, poster *entities.Poster) (*entities.Poster, error)
	// Delete удаляет афишу по ID. Удаление отсутствующей афиши не является ошибкой.
	Delete(ctx context.Context, id string) error
	// DeleteAll удаляет все афиши.
	DeleteAll(ctx context.Context) error
}
