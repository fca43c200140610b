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

const posterColumns = `id, title, content, description, tags, organization,
       created_at, start_date, end_date, is_recurring, COALESCE(user_id::text, '')`

// PosterRepository реализует интерфейс repositories.PosterRepository.
type PosterRepository struct {
	pool PgxPoolInterface
}

// NewPosterRepository создает новый репозиторий афиш.
func NewPosterRepository(pool PgxPoolInterface) repositories.PosterRepository {
	return &PosterRepository{pool: pool}
}

// Get возвращает афишу по ID или nil, если афиша отсутствует.
func (r *PosterRepository) Get(ctx context.Context, id string) (*entities.Poster, error) {
	log := logger.Log(ctx).With(zap.String("repository", "poster"), zap.String("method", "Get"))

	row := r.pool.QueryRow(ctx,
		`SELECT `+posterColumns+` FROM posters WHERE id = $1`, id)

	poster, err := scanPoster(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "poster not found", zap.String("posterID", id))
			return nil, nil
		}
		log.Error(ctx, "error querying poster by id", zap.Error(err))
		return nil, fmt.Errorf("error querying poster by id: %w", err)
	}

	return poster, nil
}

// GetAll возвращает все афиши. Результат никогда не nil.
func (r *PosterRepository) GetAll(ctx context.Context) ([]*entities.Poster, error) {
	log := logger.Log(ctx).With(zap.String("repository", "poster"), zap.String("method", "GetAll"))

	rows, err := r.pool.Query(ctx,
		`SELECT `+posterColumns+` FROM posters ORDER BY created_at`)
	if err != nil {
		log.Error(ctx, "error listing posters", zap.Error(err))
		return nil, fmt.Errorf("error listing posters: %w", err)
	}
	defer rows.Close()

	posters := make([]*entities.Poster, 0)
	for rows.Next() {
		poster, err := scanPoster(rows)
		if err != nil {
			log.Error(ctx, "error scanning poster", zap.Error(err))
			return nil, fmt.Errorf("error scanning poster: %w", err)
		}
		posters = append(posters, poster)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating posters", zap.Error(err))
		return nil, fmt.Errorf("error iterating posters: %w", err)
	}

	return posters, nil
}

// ExistsByID проверяет наличие афиши.
func (r *PosterRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("repository", "poster"), zap.String("method", "ExistsByID"))

	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM posters WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		log.Error(ctx, "error checking poster existence", zap.Error(err))
		return false, fmt.Errorf("error checking poster existence: %w", err)
	}

	return exists, nil
}

// Put сохраняет афишу (upsert по ID). created_at существующей записи
// не перезаписывается.
func (r *PosterRepository) Put(ctx context.Context, poster *entities.Poster) (*entities.Poster, error) {
	log := logger.Log(ctx).With(zap.String("repository", "poster"), zap.String("method", "Put"))

	row := r.pool.QueryRow(ctx,
		`INSERT INTO posters (id, title, content, description, tags, organization,
                              created_at, start_date, end_date, is_recurring, user_id)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, '')::uuid)
         ON CONFLICT (id) DO UPDATE SET
             title = EXCLUDED.title,
             content = EXCLUDED.content,
             description = EXCLUDED.description,
             tags = EXCLUDED.tags,
             organization = EXCLUDED.organization,
             start_date = EXCLUDED.start_date,
             end_date = EXCLUDED.end_date,
             is_recurring = EXCLUDED.is_recurring,
             user_id = EXCLUDED.user_id
         RETURNING `+posterColumns,
		poster.ID, poster.Title, poster.Content, poster.Description, poster.Tags,
		poster.Organization, poster.CreatedAt, poster.StartDate, poster.EndDate,
		poster.IsRecurring, poster.UserID)

	saved, err := scanPoster(row)
	if err != nil {
		log.Error(ctx, "error saving poster", zap.Error(err))
		return nil, fmt.Errorf("error saving poster: %w", err)
	}

	log.Debug(ctx, "poster saved", zap.String("posterID", saved.ID))
	return saved, nil
}

// Delete удаляет афишу по ID. Отсутствие записи не является ошибкой.
func (r *PosterRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "poster"), zap.String("method", "Delete"))

	if _, err := r.pool.Exec(ctx, `DELETE FROM posters WHERE id = $1`, id); err != nil {
		log.Error(ctx, "error deleting poster", zap.Error(err))
		return fmt.Errorf("error deleting poster: %w", err)
	}

	return nil
}

// DeleteAll удаляет все афиши.
func (r *PosterRepository) DeleteAll(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("repository", "poster"), zap.String("method", "DeleteAll"))

	if _, err := r.pool.Exec(ctx, `DELETE FROM posters`); err != nil {
		log.Error(ctx, "error deleting all posters", zap.Error(err))
		return fmt.Errorf("error deleting all posters: %w", err)
	}

	return nil
}

// scanPoster читает афишу из строки результата в порядке posterColumns.
func scanPoster(row pgx.Row) (*entities.Poster, error) {
	var poster entities.Poster
	err := row.Scan(
		&poster.ID,
		&poster.Title,
		&poster.Content,
		&poster.Description,
		&poster.Tags,
		&poster.Organization,
		&poster.CreatedAt,
		&poster.StartDate,
		&poster.EndDate,
		&poster.IsRecurring,
		&poster.UserID,
	)
	if err != nil {
		return nil, err
	}
	return &poster, nil
}
