package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"posterhub/internal/posterhub/domain/entities"
	"posterhub/internal/posterhub/ports/repositories"
	"posterhub/pkg/logger"
)

const userColumns = `id, username, email, name`

// UserRepository реализует интерфейс repositories.UserRepository.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый репозиторий пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// Get возвращает пользователя по ID вместе с его афишами или nil.
func (r *UserRepository) Get(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id, "id")
}

// FindByUsername возвращает пользователя по имени или nil.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1 LIMIT 1`, username, "username")
}

// FindByEmail возвращает пользователя по почте или nil.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 LIMIT 1`, email, "email")
}

// GetAll возвращает всех пользователей с их афишами. Результат никогда не nil.
func (r *UserRepository) GetAll(ctx context.Context) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "GetAll"))

	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		log.Error(ctx, "error listing users", zap.Error(err))
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := make([]*entities.User, 0)
	for rows.Next() {
		var user entities.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.Name); err != nil {
			log.Error(ctx, "error scanning user", zap.Error(err))
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		user.Posters = make([]*entities.Poster, 0)
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating users", zap.Error(err))
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	for _, user := range users {
		posters, err := r.loadPosters(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		user.Posters = posters
	}

	return users, nil
}

// ExistsByID проверяет наличие пользователя.
func (r *UserRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "ExistsByID"))

	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		log.Error(ctx, "error checking user existence", zap.Error(err))
		return false, fmt.Errorf("error checking user existence: %w", err)
	}

	return exists, nil
}

// Put сохраняет пользователя (upsert по ID) вместе с его коллекцией афиш:
// каждая афиша коллекции записывается с user_id владельца.
func (r *UserRepository) Put(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Put"))

	var saved entities.User
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (id, username, email, name)
         VALUES ($1, $2, $3, $4)
         ON CONFLICT (id) DO UPDATE SET
             username = EXCLUDED.username,
             email = EXCLUDED.email,
             name = EXCLUDED.name
         RETURNING `+userColumns,
		user.ID, user.Username, user.Email, user.Name).
		Scan(&saved.ID, &saved.Username, &saved.Email, &saved.Name)
	if err != nil {
		log.Error(ctx, "error saving user", zap.Error(err))
		return nil, fmt.Errorf("error saving user: %w", err)
	}

	saved.Posters = make([]*entities.Poster, 0, len(user.Posters))
	for _, poster := range user.Posters {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO posters (id, title, content, description, tags, organization,
                                  created_at, start_date, end_date, is_recurring, user_id)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
             ON CONFLICT (id) DO UPDATE SET user_id = EXCLUDED.user_id`,
			poster.ID, poster.Title, poster.Content, poster.Description, poster.Tags,
			poster.Organization, poster.CreatedAt, poster.StartDate, poster.EndDate,
			poster.IsRecurring, saved.ID)
		if err != nil {
			log.Error(ctx, "error saving user poster", zap.Error(err), zap.String("posterID", poster.ID))
			return nil, fmt.Errorf("error saving user poster: %w", err)
		}
		saved.Posters = append(saved.Posters, poster)
	}

	log.Debug(ctx, "user saved", zap.String("userID", saved.ID))
	return &saved, nil
}

// Delete удаляет пользователя по ID. Его афиши остаются без владельца.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Delete"))

	if _, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		log.Error(ctx, "error deleting user", zap.Error(err))
		return fmt.Errorf("error deleting user: %w", err)
	}

	return nil
}

// DeleteAll удаляет всех пользователей.
func (r *UserRepository) DeleteAll(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "DeleteAll"))

	if _, err := r.pool.Exec(ctx, `DELETE FROM users`); err != nil {
		log.Error(ctx, "error deleting all users", zap.Error(err))
		return fmt.Errorf("error deleting all users: %w", err)
	}

	return nil
}

// findOne возвращает одного пользователя по условию или nil, если его нет.
func (r *UserRepository) findOne(ctx context.Context, query, arg, field string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "findOne"))

	var user entities.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(&user.ID, &user.Username, &user.Email, &user.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String(field, arg))
			return nil, nil
		}
		log.Error(ctx, "error querying user", zap.String("field", field), zap.Error(err))
		return nil, fmt.Errorf("error querying user by %s: %w", field, err)
	}

	posters, err := r.loadPosters(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Posters = posters

	return &user, nil
}

// loadPosters возвращает афиши, принадлежащие пользователю.
func (r *UserRepository) loadPosters(ctx context.Context, userID string) ([]*entities.Poster, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "loadPosters"))

	rows, err := r.pool.Query(ctx,
		`SELECT `+posterColumns+` FROM posters WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		log.Error(ctx, "error loading user posters", zap.Error(err))
		return nil, fmt.Errorf("error loading user posters: %w", err)
	}
	defer rows.Close()

	posters := make([]*entities.Poster, 0)
	for rows.Next() {
		poster, err := scanPoster(rows)
		if err != nil {
			log.Error(ctx, "error scanning user poster", zap.Error(err))
			return nil, fmt.Errorf("error scanning user poster: %w", err)
		}
		posters = append(posters, poster)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating user posters", zap.Error(err))
		return nil, fmt.Errorf("error iterating user posters: %w", err)
	}

	return posters, nil
}
