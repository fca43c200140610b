// Package app implements application business logic for the posterhub service.
package app

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"posterhub/internal/posterhub/domain/entities"
	"posterhub/internal/posterhub/domain/responses"
	"posterhub/internal/posterhub/domain/search"
	"posterhub/internal/posterhub/ports/cache"
	"posterhub/internal/posterhub/ports/repositories"
	"posterhub/pkg/keylock"
	"posterhub/pkg/logger"
)

// Сообщения конвертов workflow афиш.
const (
	MsgPosterCreated     = "created"
	MsgInvalidPoster     = "invalid poster"
	MsgPosterFound       = "found"
	MsgPosterNotFound    = "not found"
	MsgPosterUpdated     = "updated"
	MsgPosterDeleted     = "deleted"
	MsgAllPostersDeleted = "all posters deleted"
	MsgInternalError     = "internal error"
)

// Ключи кэша и блокировок.
const (
	allPostersCacheKey   = "posters:all"
	idempotencyKeyPrefix = "posters:idem:"
	posterLockPrefix     = "poster:"
)

// TTL токена идемпотентности создания афиши.
const idempotencyTTL = 24 * time.Hour

// PosterUseCase оркестрирует операции чтения и изменения афиш.
// Check-then-act последовательности сериализуются мьютексом по ID афиши:
// хранилище атомарно только в пределах одного вызова.
type PosterUseCase struct {
	posterRepo repositories.PosterRepository
	cache      cache.Cache
	locks      *keylock.KeyLock
}

// NewPosterUseCase создает новый экземпляр PosterUseCase.
func NewPosterUseCase(posterRepo repositories.PosterRepository, posterCache cache.Cache) *PosterUseCase {
	return &PosterUseCase{
		posterRepo: posterRepo,
		cache:      posterCache,
		locks:      keylock.New(),
	}
}

// CreatePoster валидирует и сохраняет новую афишу. Непустой idempotencyKey
// делает повтор запроса безопасным: повторный вызов с тем же токеном вернет
// ранее созданную афишу вместо дубликата.
func (uc *PosterUseCase) CreatePoster(ctx context.Context, poster *entities.Poster, idempotencyKey string) responses.Envelope[*entities.Poster] {
	log := logger.Log(ctx).With(zap.String("method", "PosterUseCase.CreatePoster"))

	if poster == nil || poster.Title == "" {
		return responses.Fail[*entities.Poster](responses.KindValidation, MsgInvalidPoster)
	}

	if idempotencyKey != "" {
		unlock := uc.locks.Lock(idempotencyKeyPrefix + idempotencyKey)
		defer unlock()

		if existing := uc.lookupIdempotent(ctx, idempotencyKey); existing != nil {
			log.Debug(ctx, "idempotency token hit", zap.String("posterID", existing.ID))
			return responses.OK(existing, MsgPosterCreated)
		}
	}

	if poster.ID == "" {
		poster.ID = uuid.New().String()
	}
	if poster.CreatedAt.IsZero() {
		poster.CreatedAt = time.Now()
	}
	poster.Tags = entities.DedupTags(poster.Tags)

	saved, err := uc.posterRepo.Put(ctx, poster)
	if err != nil {
		log.Error(ctx, "failed to create poster", zap.Error(err))
		return responses.Fail[*entities.Poster](responses.KindInternal, MsgInternalError)
	}

	if idempotencyKey != "" {
		if err := uc.cache.Set(ctx, idempotencyKeyPrefix+idempotencyKey, saved.ID, idempotencyTTL); err != nil {
			log.Warn(ctx, "failed to record idempotency token", zap.Error(err))
		}
	}
	uc.invalidateListCache(ctx)

	return responses.OK(saved, MsgPosterCreated)
}

// GetPosterByID возвращает афишу по ID. Отсутствие афиши - штатный исход.
func (uc *PosterUseCase) GetPosterByID(ctx context.Context, id string) responses.Envelope[*entities.Poster] {
	log := logger.Log(ctx).With(zap.String("method", "PosterUseCase.GetPosterByID"))

	poster, err := uc.posterRepo.Get(ctx, id)
	if err != nil {
		log.Error(ctx, "failed to get poster", zap.Error(err))
		return responses.Fail[*entities.Poster](responses.KindInternal, MsgInternalError)
	}
	if poster == nil {
		return responses.Fail[*entities.Poster](responses.KindNotFound, MsgPosterNotFound)
	}

	return responses.OK(poster, MsgPosterFound)
}

// GetAllPosters возвращает все афиши, опционально отсортированные по
// createdAt или startDate.
func (uc *PosterUseCase) GetAllPosters(ctx context.Context, sortField string) responses.Envelope[[]*entities.Poster] {
	posters, env := uc.loadAll(ctx)
	if posters == nil {
		return env
	}
	if sortField != "" {
		posters = search.SortBy(posters, sortField)
	}
	return responses.OK(posters, MsgPosterFound)
}

// SearchByTag возвращает афиши, содержащие тег.
func (uc *PosterUseCase) SearchByTag(ctx context.Context, tag string) responses.Envelope[[]*entities.Poster] {
	posters, env := uc.loadAll(ctx)
	if posters == nil {
		return env
	}
	return responses.OK(search.ByTag(posters, tag), MsgPosterFound)
}

// SearchByMultipleTags возвращает афиши, содержащие каждый из запрошенных
// тегов (семантика AND).
func (uc *PosterUseCase) SearchByMultipleTags(ctx context.Context, tags []string) responses.Envelope[[]*entities.Poster] {
	posters, env := uc.loadAll(ctx)
	if posters == nil {
		return env
	}
	return responses.OK(search.ByTags(posters, tags), MsgPosterFound)
}

// SearchByOrganization возвращает афиши запрошенной организации.
func (uc *PosterUseCase) SearchByOrganization(ctx context.Context, organization string) responses.Envelope[[]*entities.Poster] {
	posters, env := uc.loadAll(ctx)
	if posters == nil {
		return env
	}
	return responses.OK(search.ByOrganization(posters, organization), MsgPosterFound)
}

// SearchByTerm выполняет поиск по подстроке с опциональным сужением по тегам
// и опциональной сортировкой результата.
func (uc *PosterUseCase) SearchByTerm(ctx context.Context, term string, tags []string, sortField string) responses.Envelope[[]*entities.Poster] {
	posters, env := uc.loadAll(ctx)
	if posters == nil {
		return env
	}
	result := search.ByTerm(posters, term, tags)
	if sortField != "" {
		result = search.SortBy(result, sortField)
	}
	return responses.OK(result, MsgPosterFound)
}

// DistinctValues возвращает уникальные значения поля по всем афишам.
func (uc *PosterUseCase) DistinctValues(ctx context.Context, field string) responses.Envelope[[]string] {
	posters, listEnv := uc.loadAll(ctx)
	if posters == nil {
		return responses.Fail[[]string](listEnv.Kind, listEnv.Message)
	}
	return responses.OK(search.DistinctValues(posters, field), MsgPosterFound)
}

// UpdatePoster обновляет существующую афишу по схеме check-then-act,
// сериализованной по ID: параллельное удаление не может проскользнуть между
// проверкой и записью и воскресить запись. ID и createdAt сохраняются от
// существующей записи, userId меняет только операция ассоциации.
func (uc *PosterUseCase) UpdatePoster(ctx context.Context, id string, updated *entities.Poster) responses.Envelope[*entities.Poster] {
	log := logger.Log(ctx).With(zap.String("method", "PosterUseCase.UpdatePoster"))

	if updated == nil || updated.Title == "" {
		return responses.Fail[*entities.Poster](responses.KindValidation, MsgInvalidPoster)
	}

	unlock := uc.locks.Lock(posterLockPrefix + id)
	defer unlock()

	existing, err := uc.posterRepo.Get(ctx, id)
	if err != nil {
		log.Error(ctx, "failed to get poster", zap.Error(err))
		return responses.Fail[*entities.Poster](responses.KindInternal, MsgInternalError)
	}
	if existing == nil {
		return responses.Fail[*entities.Poster](responses.KindNotFound, MsgPosterNotFound)
	}

	updated.ID = id
	updated.CreatedAt = existing.CreatedAt
	updated.UserID = existing.UserID
	updated.Tags = entities.DedupTags(updated.Tags)

	saved, err := uc.posterRepo.Put(ctx, updated)
	if err != nil {
		log.Error(ctx, "failed to update poster", zap.Error(err))
		return responses.Fail[*entities.Poster](responses.KindInternal, MsgInternalError)
	}

	uc.invalidateListCache(ctx)

	return responses.OK(saved, MsgPosterUpdated)
}

// DeletePosterByID удаляет афишу по ID. Удаление уже отсутствующей афиши
// возвращает not-found без ошибки и без записи в хранилище.
func (uc *PosterUseCase) DeletePosterByID(ctx context.Context, id string) responses.Envelope[*entities.Poster] {
	log := logger.Log(ctx).With(zap.String("method", "PosterUseCase.DeletePosterByID"))

	unlock := uc.locks.Lock(posterLockPrefix + id)
	defer unlock()

	existing, err := uc.posterRepo.Get(ctx, id)
	if err != nil {
		log.Error(ctx, "failed to get poster", zap.Error(err))
		return responses.Fail[*entities.Poster](responses.KindInternal, MsgInternalError)
	}
	if existing == nil {
		return responses.Fail[*entities.Poster](responses.KindNotFound, MsgPosterNotFound)
	}

	if err := uc.posterRepo.Delete(ctx, id); err != nil {
		log.Error(ctx, "failed to delete poster", zap.Error(err))
		return responses.Fail[*entities.Poster](responses.KindInternal, MsgInternalError)
	}

	uc.invalidateListCache(ctx)

	return responses.OK(existing, MsgPosterDeleted)
}

// DeleteAllPosters безусловно очищает коллекцию афиш. Административная
// операция: не выводится на публичную поверхность транспорта.
func (uc *PosterUseCase) DeleteAllPosters(ctx context.Context) responses.Envelope[bool] {
	log := logger.Log(ctx).With(zap.String("method", "PosterUseCase.DeleteAllPosters"))

	if err := uc.posterRepo.DeleteAll(ctx); err != nil {
		log.Error(ctx, "failed to delete all posters", zap.Error(err))
		return responses.Fail[bool](responses.KindInternal, MsgInternalError)
	}

	uc.invalidateListCache(ctx)

	return responses.OK(true, MsgAllPostersDeleted)
}

// lookupIdempotent возвращает ранее созданную по токену афишу или nil.
func (uc *PosterUseCase) lookupIdempotent(ctx context.Context, idempotencyKey string) *entities.Poster {
	log := logger.Log(ctx).With(zap.String("method", "PosterUseCase.lookupIdempotent"))

	posterID, err := uc.cache.Get(ctx, idempotencyKeyPrefix+idempotencyKey)
	if err != nil {
		log.Warn(ctx, "failed to look up idempotency token", zap.Error(err))
		return nil
	}
	if posterID == "" {
		return nil
	}

	existing, err := uc.posterRepo.Get(ctx, posterID)
	if err != nil {
		log.Warn(ctx, "failed to load poster for idempotency token", zap.Error(err))
		return nil
	}
	return existing
}

// loadAll возвращает все афиши, используя кэш списка. При успехе второй
// результат пуст; при отказе хранилища первый результат nil, а второй
// содержит internal-конверт для проброса вызывающему.
func (uc *PosterUseCase) loadAll(ctx context.Context) ([]*entities.Poster, responses.Envelope[[]*entities.Poster]) {
	log := logger.Log(ctx).With(zap.String("method", "PosterUseCase.loadAll"))

	if cached, err := uc.cache.Get(ctx, allPostersCacheKey); err == nil && cached != "" {
		var posters []*entities.Poster
		if err := json.Unmarshal([]byte(cached), &posters); err == nil {
			return posters, responses.Envelope[[]*entities.Poster]{}
		}
		log.Warn(ctx, "failed to decode cached poster list, falling back to store")
	}

	posters, err := uc.posterRepo.GetAll(ctx)
	if err != nil {
		log.Error(ctx, "failed to list posters", zap.Error(err))
		return nil, responses.Fail[[]*entities.Poster](responses.KindInternal, MsgInternalError)
	}

	if encoded, err := json.Marshal(posters); err == nil {
		if err := uc.cache.Set(ctx, allPostersCacheKey, string(encoded), 0); err != nil {
			log.Warn(ctx, "failed to cache poster list", zap.Error(err))
		}
	}

	return posters, responses.Envelope[[]*entities.Poster]{}
}

// invalidateListCache сбрасывает кэш списка афиш после мутации.
func (uc *PosterUseCase) invalidateListCache(ctx context.Context) {
	if err := uc.cache.Delete(ctx, allPostersCacheKey); err != nil {
		logger.Log(ctx).Warn(ctx, "failed to invalidate poster list cache", zap.Error(err))
	}
}
