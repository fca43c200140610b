package app

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"posterhub/internal/posterhub/domain/entities"
	"posterhub/internal/posterhub/domain/responses"
	"posterhub/internal/posterhub/ports/cache"
	"posterhub/internal/posterhub/ports/repositories"
	"posterhub/pkg/keylock"
	"posterhub/pkg/logger"
)

// Сообщения конвертов реестра пользователей.
const (
	MsgUserCreated      = "created"
	MsgInvalidUserData  = "invalid user data"
	MsgUsernameTaken    = "username is already taken"
	MsgEmailTaken       = "email is already taken"
	MsgUserFound        = "found"
	MsgUserNotFound     = "not found"
	MsgUserUpdated      = "updated"
	MsgUserDeleted      = "deleted"
	MsgPosterAssociated = "poster associated with user"
)

// Префиксы ключей блокировок реестра.
const (
	userLockPrefix     = "user:"
	usernameLockPrefix = "user:username:"
	emailLockPrefix    = "user:email:"
)

// UserUseCase реализует реестр пользователей. Проверки уникальности перед
// записью сериализуются мьютексами по ключам username и email (всегда в этом
// порядке), поэтому параллельные создания с одинаковыми данными не могут
// обойти проверку.
type UserUseCase struct {
	userRepo repositories.UserRepository
	cache    cache.Cache
	locks    *keylock.KeyLock
}

// NewUserUseCase создает новый экземпляр UserUseCase.
func NewUserUseCase(userRepo repositories.UserRepository, userCache cache.Cache) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		cache:    userCache,
		locks:    keylock.New(),
	}
}

// CreateUser валидирует данные, проверяет уникальность имени пользователя,
// затем почты (проверки короткозамкнуты: сообщается первое нарушенное
// правило) и сохраняет пользователя. При отказе в хранилище ничего не
// записывается.
func (uc *UserUseCase) CreateUser(ctx context.Context, user *entities.User) responses.Envelope[*entities.User] {
	log := logger.Log(ctx).With(zap.String("method", "UserUseCase.CreateUser"))

	if !user.IsValid() {
		return responses.Fail[*entities.User](responses.KindValidation, MsgInvalidUserData)
	}

	unlockUsername := uc.locks.Lock(usernameLockPrefix + user.Username)
	defer unlockUsername()
	unlockEmail := uc.locks.Lock(emailLockPrefix + user.Email)
	defer unlockEmail()

	byUsername, err := uc.userRepo.FindByUsername(ctx, user.Username)
	if err != nil {
		log.Error(ctx, "failed to check username uniqueness", zap.Error(err))
		return responses.Fail[*entities.User](responses.KindInternal, MsgInternalError)
	}
	if byUsername != nil {
		return responses.Fail[*entities.User](responses.KindConflict, MsgUsernameTaken)
	}

	byEmail, err := uc.userRepo.FindByEmail(ctx, user.Email)
	if err != nil {
		log.Error(ctx, "failed to check email uniqueness", zap.Error(err))
		return responses.Fail[*entities.User](responses.KindInternal, MsgInternalError)
	}
	if byEmail != nil {
		return responses.Fail[*entities.User](responses.KindConflict, MsgEmailTaken)
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Posters == nil {
		user.Posters = make([]*entities.Poster, 0)
	}

	saved, err := uc.userRepo.Put(ctx, user)
	if err != nil {
		log.Error(ctx, "failed to create user", zap.Error(err))
		return responses.Fail[*entities.User](responses.KindInternal, MsgInternalError)
	}

	return responses.OK(saved, MsgUserCreated)
}

// GetUserByID возвращает пользователя по ID. Отсутствие - штатный исход.
func (uc *UserUseCase) GetUserByID(ctx context.Context, id string) responses.Envelope[*entities.User] {
	log := logger.Log(ctx).With(zap.String("method", "UserUseCase.GetUserByID"))

	user, err := uc.userRepo.Get(ctx, id)
	if err != nil {
		log.Error(ctx, "failed to get user", zap.Error(err))
		return responses.Fail[*entities.User](responses.KindInternal, MsgInternalError)
	}
	if user == nil {
		return responses.Fail[*entities.User](responses.KindNotFound, MsgUserNotFound)
	}

	return responses.OK(user, MsgUserFound)
}

// GetAllUsers возвращает всех пользователей.
func (uc *UserUseCase) GetAllUsers(ctx context.Context) responses.Envelope[[]*entities.User] {
	log := logger.Log(ctx).With(zap.String("method", "UserUseCase.GetAllUsers"))

	users, err := uc.userRepo.GetAll(ctx)
	if err != nil {
		log.Error(ctx, "failed to list users", zap.Error(err))
		return responses.Fail[[]*entities.User](responses.KindInternal, MsgInternalError)
	}

	return responses.OK(users, MsgUserFound)
}

// UpdateUser обновляет существующего пользователя по схеме check-then-act,
// сериализованной по ID. Коллекция афиш сохраняется от существующей записи:
// ею управляет только операция ассоциации. Уникальность username/email при
// обновлении не перепроверяется - известное ограничение, унаследованное от
// исходной системы.
func (uc *UserUseCase) UpdateUser(ctx context.Context, id string, updated *entities.User) responses.Envelope[*entities.User] {
	log := logger.Log(ctx).With(zap.String("method", "UserUseCase.UpdateUser"))

	if !updated.IsValid() {
		return responses.Fail[*entities.User](responses.KindValidation, MsgInvalidUserData)
	}

	unlock := uc.locks.Lock(userLockPrefix + id)
	defer unlock()

	existing, err := uc.userRepo.Get(ctx, id)
	if err != nil {
		log.Error(ctx, "failed to get user", zap.Error(err))
		return responses.Fail[*entities.User](responses.KindInternal, MsgInternalError)
	}
	if existing == nil {
		return responses.Fail[*entities.User](responses.KindNotFound, MsgUserNotFound)
	}

	updated.ID = id
	updated.Posters = existing.Posters

	saved, err := uc.userRepo.Put(ctx, updated)
	if err != nil {
		log.Error(ctx, "failed to update user", zap.Error(err))
		return responses.Fail[*entities.User](responses.KindInternal, MsgInternalError)
	}

	return responses.OK(saved, MsgUserUpdated)
}

// DeleteUserByID удаляет пользователя по ID. Удаление отсутствующего
// пользователя возвращает not-found без ошибки.
func (uc *UserUseCase) DeleteUserByID(ctx context.Context, id string) responses.Envelope[*entities.User] {
	log := logger.Log(ctx).With(zap.String("method", "UserUseCase.DeleteUserByID"))

	unlock := uc.locks.Lock(userLockPrefix + id)
	defer unlock()

	existing, err := uc.userRepo.Get(ctx, id)
	if err != nil {
		log.Error(ctx, "failed to get user", zap.Error(err))
		return responses.Fail[*entities.User](responses.KindInternal, MsgInternalError)
	}
	if existing == nil {
		return responses.Fail[*entities.User](responses.KindNotFound, MsgUserNotFound)
	}

	if err := uc.userRepo.Delete(ctx, id); err != nil {
		log.Error(ctx, "failed to delete user", zap.Error(err))
		return responses.Fail[*entities.User](responses.KindInternal, MsgInternalError)
	}

	return responses.OK(existing, MsgUserDeleted)
}

// AssociatePosterWithUser привязывает афишу к пользователю: проставляет
// userId афиши и кладет ее в коллекцию пользователя. Коллекция ведет себя
// как множество по ID афиши, поэтому повтор вызова с той же афишей не
// создает дубликата.
func (uc *UserUseCase) AssociatePosterWithUser(ctx context.Context, userID string, poster *entities.Poster) responses.Envelope[*entities.User] {
	log := logger.Log(ctx).With(zap.String("method", "UserUseCase.AssociatePosterWithUser"))

	if !poster.IsValid() {
		return responses.Fail[*entities.User](responses.KindValidation, MsgInvalidPoster)
	}

	unlock := uc.locks.Lock(userLockPrefix + userID)
	defer unlock()

	user, err := uc.userRepo.Get(ctx, userID)
	if err != nil {
		log.Error(ctx, "failed to get user", zap.Error(err))
		return responses.Fail[*entities.User](responses.KindInternal, MsgInternalError)
	}
	if user == nil {
		return responses.Fail[*entities.User](responses.KindNotFound, MsgUserNotFound)
	}

	poster.UserID = userID
	user.AddPoster(poster)

	saved, err := uc.userRepo.Put(ctx, user)
	if err != nil {
		log.Error(ctx, "failed to associate poster with user", zap.Error(err))
		return responses.Fail[*entities.User](responses.KindInternal, MsgInternalError)
	}

	// Принадлежность афиш изменилась, кэшированный список устарел.
	if err := uc.cache.Delete(ctx, allPostersCacheKey); err != nil {
		log.Warn(ctx, "failed to invalidate poster list cache", zap.Error(err))
	}

	return responses.OK(saved, MsgPosterAssociated)
}
