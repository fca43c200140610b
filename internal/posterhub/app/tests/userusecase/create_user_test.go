package userusecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"posterhub/internal/posterhub/app"
	"posterhub/internal/posterhub/domain/entities"
	"posterhub/internal/posterhub/domain/responses"
)

func newUser() *entities.User {
	return &entities.User{Username: "jdoe", Email: "jdoe@example.com", Name: "J. Doe"}
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - user saved with generated ID", func(t *testing.T) {
		repoMock := new(mockUserRepository)
		repoMock.On("FindByUsername", mock.Anything, "jdoe").Return(nil, nil).Once()
		repoMock.On("FindByEmail", mock.Anything, "jdoe@example.com").Return(nil, nil).Once()
		repoMock.On("Put", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return u.ID != "" && u.Posters != nil
		})).Return(&entities.User{ID: "u1", Username: "jdoe", Email: "jdoe@example.com", Name: "J. Doe"}, nil).Once()

		uc := app.NewUserUseCase(repoMock, emptyCache())
		env := uc.CreateUser(ctx, newUser())

		assert.True(t, env.Success())
		assert.Equal(t, app.MsgUserCreated, env.Message)
		require.NotNil(t, env.Data)
		assert.Equal(t, "u1", env.Data.ID)
		repoMock.AssertExpectations(t)
	})

	t.Run("Validation - incomplete user rejected before any lookup", func(t *testing.T) {
		repoMock := new(mockUserRepository)

		uc := app.NewUserUseCase(repoMock, emptyCache())
		env := uc.CreateUser(ctx, &entities.User{Username: "jdoe"})

		assert.Equal(t, responses.KindValidation, env.Kind)
		assert.Equal(t, app.MsgInvalidUserData, env.Message)
		repoMock.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
		repoMock.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	})

	t.Run("Conflict - taken username short-circuits before email check", func(t *testing.T) {
		repoMock := new(mockUserRepository)
		repoMock.On("FindByUsername", mock.Anything, "jdoe").Return(&entities.User{ID: "u9", Username: "jdoe"}, nil).Once()

		uc := app.NewUserUseCase(repoMock, emptyCache())
		env := uc.CreateUser(ctx, newUser())

		assert.Equal(t, responses.KindConflict, env.Kind)
		assert.Equal(t, app.MsgUsernameTaken, env.Message)
		repoMock.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
		repoMock.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	})

	t.Run("Conflict - taken email leaves the store untouched", func(t *testing.T) {
		repoMock := new(mockUserRepository)
		repoMock.On("FindByUsername", mock.Anything, "jdoe").Return(nil, nil).Once()
		repoMock.On("FindByEmail", mock.Anything, "jdoe@example.com").Return(&entities.User{ID: "u9", Email: "jdoe@example.com"}, nil).Once()

		uc := app.NewUserUseCase(repoMock, emptyCache())
		env := uc.CreateUser(ctx, newUser())

		assert.Equal(t, responses.KindConflict, env.Kind)
		assert.Equal(t, app.MsgEmailTaken, env.Message)
		repoMock.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	})

	t.Run("Error - uniqueness lookup failure collapses to internal envelope", func(t *testing.T) {
		repoMock := new(mockUserRepository)
		repoMock.On("FindByUsername", mock.Anything, "jdoe").Return(nil, errors.New("connection refused")).Once()

		uc := app.NewUserUseCase(repoMock, emptyCache())
		env := uc.CreateUser(ctx, newUser())

		assert.Equal(t, responses.KindInternal, env.Kind)
		assert.Equal(t, app.MsgInternalError, env.Message)
		repoMock.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	})
}

func TestCreateUserSerializesSameUsername(t *testing.T) {
	// Параллельные создания с одинаковым именем пользователя сериализуются,
	// поэтому вторая попытка всегда видит результат первой.
	ctx := context.Background()

	repoMock := new(mockUserRepository)
	repoMock.On("FindByUsername", mock.Anything, "jdoe").Return(nil, nil).Once()
	repoMock.On("FindByEmail", mock.Anything, "jdoe@example.com").Return(nil, nil).Once()
	repoMock.On("Put", mock.Anything, mock.Anything).Return(&entities.User{ID: "u1", Username: "jdoe"}, nil).Once()
	// Последующие проверки имени видят уже созданного пользователя.
	repoMock.On("FindByUsername", mock.Anything, "jdoe").Return(&entities.User{ID: "u1", Username: "jdoe"}, nil)

	uc := app.NewUserUseCase(repoMock, emptyCache())

	first := uc.CreateUser(ctx, newUser())
	assert.True(t, first.Success())

	second := uc.CreateUser(ctx, newUser())
	assert.Equal(t, responses.KindConflict, second.Kind)
	assert.Equal(t, app.MsgUsernameTaken, second.Message)

	repoMock.AssertNumberOfCalls(t, "Put", 1)
}
