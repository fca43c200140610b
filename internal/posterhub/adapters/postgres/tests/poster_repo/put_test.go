package posterrepo_test

import (
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posterhub/internal/posterhub/adapters/postgres"
)

func TestPosterRepository_Put(t *testing.T) {
	ctx := testContext(t)
	poster := testPoster()

	t.Run("successful upsert returns the saved row", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		rows := addPosterRow(pgxmock.NewRows(posterRows), poster)
		mock.ExpectQuery("INSERT INTO posters").
			WithArgs(poster.ID, poster.Title, poster.Content, poster.Description, poster.Tags,
				poster.Organization, poster.CreatedAt, poster.StartDate, poster.EndDate,
				poster.IsRecurring, poster.UserID).
			WillReturnRows(rows)

		repo := postgres.NewPosterRepository(mock)

		saved, err := repo.Put(ctx, &poster)

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, poster.ID, saved.ID)
		assert.Equal(t, poster.Title, saved.Title)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO posters").
			WithArgs(poster.ID, poster.Title, poster.Content, poster.Description, poster.Tags,
				poster.Organization, poster.CreatedAt, poster.StartDate, poster.EndDate,
				poster.IsRecurring, poster.UserID).
			WillReturnError(errDatabaseConnection)

		repo := postgres.NewPosterRepository(mock)

		saved, err := repo.Put(ctx, &poster)

		assert.Nil(t, saved)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error saving poster")

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPosterRepository_Delete(t *testing.T) {
	ctx := testContext(t)

	t.Run("successful delete", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM posters WHERE id").
			WithArgs("poster-id-1").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		repo := postgres.NewPosterRepository(mock)

		require.NoError(t, repo.Delete(ctx, "poster-id-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deleting an absent poster is not an error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM posters WHERE id").
			WithArgs("missing").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := postgres.NewPosterRepository(mock)

		require.NoError(t, repo.Delete(ctx, "missing"))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPosterRepository_DeleteAll(t *testing.T) {
	ctx := testContext(t)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM posters").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	repo := postgres.NewPosterRepository(mock)

	require.NoError(t, repo.DeleteAll(ctx))
	require.NoError(t, mock.ExpectationsWereMet())
}
