package repopostgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-login-service/users"
	"github.com/jrsteele09/go-login-service/users/repopostgres"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping postgres integration test")
	}

	pool, err := pgxpool.New(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestInsertAndFindBySubject(t *testing.T) {
	repo := repopostgres.NewUserRepo(testPool(t))
	ctx := context.Background()

	subject := uuid.NewString()
	id, err := repo.Insert(ctx, users.User{
		Subject:   subject,
		Email:     "jane.doe@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	user, err := repo.FindBySubject(ctx, subject)
	require.NoError(t, err)
	require.Equal(t, id, user.ID)
	require.Equal(t, "jane.doe@example.com", user.Email)
}

func TestInsertDuplicateSubject(t *testing.T) {
	repo := repopostgres.NewUserRepo(testPool(t))
	ctx := context.Background()

	subject := uuid.NewString()
	_, err := repo.Insert(ctx, users.User{Subject: subject, Email: "a@example.com"})
	require.NoError(t, err)

	_, err = repo.Insert(ctx, users.User{Subject: subject, Email: "b@example.com"})
	require.ErrorIs(t, err, users.ErrDuplicateUser)
}

func TestFindUnknownSubject(t *testing.T) {
	repo := repopostgres.NewUserRepo(testPool(t))

	_, err := repo.FindBySubject(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, users.ErrNotFound)
}
