package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotodo/internal/account/adapters/postgres"
	"gotodo/internal/account/domain/entities"
	"gotodo/internal/account/ports/repositories"
	"gotodo/pkg/logger"
)

var (
	userColumns     = []string{"id", "username", "email", "password_hash", "created_at", "updated_at"}
	errDatabaseDown = errors.New("database is down")
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func TestRepositoryFactory_UserRepository(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repoFactory := postgres.NewRepositoryFactory(mock)
	require.NotNil(t, repoFactory)

	userRepo := repoFactory.UserRepository()
	require.NotNil(t, userRepo)
	assert.Same(t, userRepo, repoFactory.UserRepository(), "multiple calls should return the same repository instance")
	assert.Implements(t, (*repositories.UserRepository)(nil), userRepo)
}

func TestUserRepository_FindByUsername(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC()

	tests := []struct {
		name      string
		setup     func(mock pgxmock.PgxPoolIface)
		wantErrIs error
	}{
		{
			name: "user found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT id, username, email, password_hash, created_at, updated_at").
					WithArgs("alice").
					WillReturnRows(pgxmock.NewRows(userColumns).
						AddRow("user-1", "alice", "alice@example.com", "hash", now, now))
			},
		},
		{
			name: "user not found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT id, username, email, password_hash, created_at, updated_at").
					WithArgs("alice").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErrIs: entities.ErrUserNotFound,
		},
		{
			name: "database error",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT id, username, email, password_hash, created_at, updated_at").
					WithArgs("alice").
					WillReturnError(errDatabaseDown)
			},
			wantErrIs: errDatabaseDown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setup(mock)

			user, err := postgres.NewUserRepository(mock).FindByUsername(ctx, "alice")

			if tt.wantErrIs != nil {
				require.ErrorIs(t, err, tt.wantErrIs)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, "user-1", user.ID)
				assert.Equal(t, "alice", user.Username)
				assert.Equal(t, "alice@example.com", user.Email)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_FindByID(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT id, username, email, password_hash, created_at, updated_at").
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow("user-1", "alice", "", "hash", now, now))
	mock.ExpectQuery("SELECT id, username, email, password_hash, created_at, updated_at").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	repo := postgres.NewUserRepository(mock)

	user, err := repo.FindByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.Email)

	_, err = repo.FindByID(ctx, "missing")
	require.ErrorIs(t, err, entities.ErrUserNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC()
	newUser := &entities.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash"}

	t.Run("success", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO users").
			WithArgs("alice", "alice@example.com", "hash").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow("user-1", "alice", "alice@example.com", "hash", now, now))

		created, err := postgres.NewUserRepository(mock).Create(ctx, newUser)

		require.NoError(t, err)
		assert.Equal(t, "user-1", created.ID)
		assert.Equal(t, now, created.CreatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to username taken", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO users").
			WithArgs("alice", "alice@example.com", "hash").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

		created, err := postgres.NewUserRepository(mock).Create(ctx, newUser)

		require.ErrorIs(t, err, entities.ErrUsernameTaken)
		assert.Nil(t, created)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("other database error is wrapped", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO users").
			WithArgs("alice", "alice@example.com", "hash").
			WillReturnError(errDatabaseDown)

		_, err = postgres.NewUserRepository(mock).Create(ctx, newUser)

		require.ErrorIs(t, err, errDatabaseDown)
		assert.NotErrorIs(t, err, entities.ErrUsernameTaken)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Update(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC()
	user := &entities.User{ID: "user-1", Username: "alice2", Email: "", PasswordHash: "new-hash"}

	tests := []struct {
		name      string
		setup     func(mock pgxmock.PgxPoolIface)
		wantErrIs error
	}{
		{
			name: "success",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("UPDATE users").
					WithArgs("user-1", "alice2", "", "new-hash", pgxmock.AnyArg()).
					WillReturnRows(pgxmock.NewRows(userColumns).
						AddRow("user-1", "alice2", "", "new-hash", now, now))
			},
		},
		{
			name: "not found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("UPDATE users").
					WithArgs("user-1", "alice2", "", "new-hash", pgxmock.AnyArg()).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErrIs: entities.ErrUserNotFound,
		},
		{
			name: "username taken",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("UPDATE users").
					WithArgs("user-1", "alice2", "", "new-hash", pgxmock.AnyArg()).
					WillReturnError(&pgconn.PgError{Code: "23505"})
			},
			wantErrIs: entities.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setup(mock)

			updated, err := postgres.NewUserRepository(mock).Update(ctx, user)

			if tt.wantErrIs != nil {
				require.ErrorIs(t, err, tt.wantErrIs)
				assert.Nil(t, updated)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "alice2", updated.Username)
				assert.Equal(t, "new-hash", updated.PasswordHash)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
