package userusecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"posterhub/internal/posterhub/app"
	"posterhub/internal/posterhub/domain/entities"
	"posterhub/internal/posterhub/domain/responses"
)

func TestAssociatePosterWithUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - poster gains owner and joins the collection", func(t *testing.T) {
		user := &entities.User{ID: "u1", Username: "jdoe", Email: "jdoe@example.com", Name: "J. Doe", Posters: make([]*entities.Poster, 0)}
		poster := &entities.Poster{ID: "p1", Title: "Jazz Night"}

		repoMock := new(mockUserRepository)
		repoMock.On("Get", mock.Anything, "u1").Return(user, nil).Once()
		repoMock.On("Put", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return len(u.Posters) == 1 && u.Posters[0].UserID == "u1"
		})).Return(user, nil).Once()

		cacheMock := new(mockCache)
		cacheMock.On("Delete", mock.Anything, "posters:all").Return(nil).Once()

		uc := app.NewUserUseCase(repoMock, cacheMock)
		env := uc.AssociatePosterWithUser(ctx, "u1", poster)

		assert.True(t, env.Success())
		assert.Equal(t, app.MsgPosterAssociated, env.Message)
		assert.Equal(t, "u1", poster.UserID)
		repoMock.AssertExpectations(t)
		cacheMock.AssertExpectations(t)
	})

	t.Run("Repeated association does not duplicate the poster", func(t *testing.T) {
		user := &entities.User{ID: "u1", Username: "jdoe", Email: "jdoe@example.com", Name: "J. Doe", Posters: make([]*entities.Poster, 0)}

		repoMock := new(mockUserRepository)
		repoMock.On("Get", mock.Anything, "u1").Return(user, nil).Twice()
		repoMock.On("Put", mock.Anything, mock.Anything).Return(user, nil).Twice()

		uc := app.NewUserUseCase(repoMock, emptyCache())

		first := uc.AssociatePosterWithUser(ctx, "u1", &entities.Poster{ID: "p1", Title: "Jazz Night"})
		require.True(t, first.Success())

		second := uc.AssociatePosterWithUser(ctx, "u1", &entities.Poster{ID: "p1", Title: "Jazz Night (updated)"})
		require.True(t, second.Success())

		require.Len(t, user.Posters, 1)
		assert.Equal(t, "Jazz Night (updated)", user.Posters[0].Title)
	})

	t.Run("Validation - invalid poster rejected before lookup", func(t *testing.T) {
		repoMock := new(mockUserRepository)

		uc := app.NewUserUseCase(repoMock, emptyCache())
		env := uc.AssociatePosterWithUser(ctx, "u1", &entities.Poster{Title: "no id"})

		assert.Equal(t, responses.KindValidation, env.Kind)
		assert.Equal(t, app.MsgInvalidPoster, env.Message)
		repoMock.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("Not found - unknown user", func(t *testing.T) {
		repoMock := new(mockUserRepository)
		repoMock.On("Get", mock.Anything, "missing").Return(nil, nil).Once()

		uc := app.NewUserUseCase(repoMock, emptyCache())
		env := uc.AssociatePosterWithUser(ctx, "missing", &entities.Poster{ID: "p1", Title: "Jazz Night"})

		assert.Equal(t, responses.KindNotFound, env.Kind)
		assert.Equal(t, app.MsgUserNotFound, env.Message)
		repoMock.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	})
}
