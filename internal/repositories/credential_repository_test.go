package repository_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/grocery-storefront/internal/repositories"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession() *models.Session {
	return &models.Session{
		User: models.User{
			ID:      "42",
			Name:    "Jane Doe",
			Email:   "jane@example.com",
			IsAdmin: true,
		},
		Token:     "token-abc",
		CreatedAt: time.Unix(1_700_000_000, 0),
	}
}

func TestSQLiteCredentialRepository(t *testing.T) {
	ctx := t.Context()

	db, err := repository.OpenSQLite(ctx, filepath.Join(t.TempDir(), "storefront.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := repository.NewSQLiteCredentialRepo(db, "default")

	t.Run("Load when empty", func(t *testing.T) {
		// Act
		session, err := repo.Load(ctx)

		// Assert
		require.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("Save then Load", func(t *testing.T) {
		// Arrange
		want := testSession()

		// Act
		require.NoError(t, repo.Save(ctx, want))
		got, err := repo.Load(ctx)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, want.User, got.User)
		assert.Equal(t, want.Token, got.Token)
		assert.Equal(t, want.CreatedAt.Unix(), got.CreatedAt.Unix())
	})

	t.Run("Save overwrites the profile", func(t *testing.T) {
		// Arrange
		next := testSession()
		next.Token = "token-def"
		next.User.IsAdmin = false

		// Act
		require.NoError(t, repo.Save(ctx, next))
		got, err := repo.Load(ctx)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "token-def", got.Token)
		assert.False(t, got.User.IsAdmin)
	})

	t.Run("Profiles are isolated", func(t *testing.T) {
		// Arrange
		other := repository.NewSQLiteCredentialRepo(db, "kiosk")

		// Act
		got, err := other.Load(ctx)

		// Assert
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Delete", func(t *testing.T) {
		// Act
		require.NoError(t, repo.Delete(ctx))
		got, err := repo.Load(ctx)

		// Assert
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestSQLiteCredentialRepositoryErrors(t *testing.T) {
	ctx := t.Context()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewSQLiteCredentialRepo(sqlx.NewDb(db, "sqlmock"), "default")
	dbError := errors.New("disk I/O error")

	t.Run("Save", func(t *testing.T) {
		// Arrange
		mock.ExpectExec(`INSERT INTO credentials`).WillReturnError(dbError)

		// Act
		err := repo.Save(ctx, testSession())

		// Assert
		require.Error(t, err)
		require.ErrorIs(t, err, dbError)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Load", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(`SELECT (.+) FROM credentials`).WithArgs("default").WillReturnError(dbError)

		// Act
		session, err := repo.Load(ctx)

		// Assert
		require.ErrorIs(t, err, dbError)
		assert.Nil(t, session)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Delete", func(t *testing.T) {
		// Arrange
		mock.ExpectExec(`DELETE FROM credentials`).WithArgs("default").WillReturnError(dbError)

		// Act
		err := repo.Delete(ctx)

		// Assert
		require.ErrorIs(t, err, dbError)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
