package repositories

import (
	"context"

	"posterhub/internal/posterhub/domain/entities"
)

// UserRepository - порт хранилища пользователей. Поиск по имени пользователя
// и почте нужен реестру для проверок уникальности перед записью.
type UserRepository interface {
	// Get возвращает пользователя по ID или nil, если пользователь отсутствует.
	Get(ctx context.Context, id string) (*entities.User, error)
	// GetAll возвращает всех пользователей.
	GetAll(ctx context.Context) ([]*entities.User, error)
	// ExistsByID проверяет наличие пользователя.
	ExistsByID(ctx context.Context, id string) (bool, error)
	// FindByUsername возвращает пользователя по имени или nil.
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	// FindByEmail возвращает пользователя по почте или nil.
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	// Put сохраняет пользователя вместе с его коллекцией афиш (upsert по ID).
	Put(ctx context.Context, user *entities.User) (*entities.User, error)
	// Delete удаляет пользователя по ID.
	Delete(ctx context.Context, id string) error
	// DeleteAll удаляет всех пользователей.
	DeleteAll(ctx context.Context) error
}
