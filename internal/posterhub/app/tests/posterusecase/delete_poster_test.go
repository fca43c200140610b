package posterusecase_test

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

func TestDeletePosterByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - deleted poster returned as payload", func(t *testing.T) {
		poster := &entities.Poster{ID: "p1", Title: "Jazz Night"}

		repoMock := new(mockPosterRepository)
		repoMock.On("Get", mock.Anything, "p1").Return(poster, nil).Once()
		repoMock.On("Delete", mock.Anything, "p1").Return(nil).Once()

		cacheMock := new(mockCache)
		cacheMock.On("Delete", mock.Anything, "posters:all").Return(nil).Once()

		uc := app.NewPosterUseCase(repoMock, cacheMock)
		env := uc.DeletePosterByID(ctx, "p1")

		assert.True(t, env.Success())
		assert.Equal(t, app.MsgPosterDeleted, env.Message)
		require.NotNil(t, env.Data)
		assert.Equal(t, "p1", env.Data.ID)
		repoMock.AssertExpectations(t)
		cacheMock.AssertExpectations(t)
	})

	t.Run("Second delete of the same poster reports not found", func(t *testing.T) {
		poster := &entities.Poster{ID: "p1", Title: "Jazz Night"}

		repoMock := new(mockPosterRepository)
		repoMock.On("Get", mock.Anything, "p1").Return(poster, nil).Once()
		repoMock.On("Delete", mock.Anything, "p1").Return(nil).Once()
		repoMock.On("Get", mock.Anything, "p1").Return(nil, nil).Once()

		uc := app.NewPosterUseCase(repoMock, emptyCache())

		first := uc.DeletePosterByID(ctx, "p1")
		assert.True(t, first.Success())

		second := uc.DeletePosterByID(ctx, "p1")
		assert.Equal(t, responses.KindNotFound, second.Kind)
		assert.Equal(t, app.MsgPosterNotFound, second.Message)
		repoMock.AssertNumberOfCalls(t, "Delete", 1)
	})
}

func TestDeleteAllPosters(t *testing.T) {
	ctx := context.Background()

	repoMock := new(mockPosterRepository)
	repoMock.On("DeleteAll", mock.Anything).Return(nil).Once()

	cacheMock := new(mockCache)
	cacheMock.On("Delete", mock.Anything, "posters:all").Return(nil).Once()

	uc := app.NewPosterUseCase(repoMock, cacheMock)
	env := uc.DeleteAllPosters(ctx)

	assert.True(t, env.Success())
	assert.Equal(t, app.MsgAllPostersDeleted, env.Message)
	assert.True(t, env.Data)
	repoMock.AssertExpectations(t)
	cacheMock.AssertExpectations(t)
}
