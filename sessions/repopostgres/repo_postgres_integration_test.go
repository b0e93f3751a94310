package repopostgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-login-service/sessions"
	"github.com/jrsteele09/go-login-service/sessions/repopostgres"
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

func TestSessionRoundTrip(t *testing.T) {
	repo := repopostgres.NewSessionRepo(testPool(t))
	ctx := context.Background()

	sessionID := uuid.NewString()
	require.NoError(t, repo.Create(ctx, sessionID, "csrf-token"))

	token, err := repo.ConsumeCSRFToken(ctx, sessionID)
	require.NoError(t, err)
	require.Equal(t, "csrf-token", token)

	// Consumed sessions stay expired.
	_, err = repo.ConsumeCSRFToken(ctx, sessionID)
	require.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestDuplicateSessionID(t *testing.T) {
	repo := repopostgres.NewSessionRepo(testPool(t))
	ctx := context.Background()

	sessionID := uuid.NewString()
	require.NoError(t, repo.Create(ctx, sessionID, "csrf-token"))
	require.ErrorIs(t, repo.Create(ctx, sessionID, "other-token"), sessions.ErrDuplicateSession)
}

func TestExpireThenConsume(t *testing.T) {
	repo := repopostgres.NewSessionRepo(testPool(t))
	ctx := context.Background()

	sessionID := uuid.NewString()
	require.NoError(t, repo.Create(ctx, sessionID, "csrf-token"))
	require.NoError(t, repo.Expire(ctx, sessionID))

	_, err := repo.ConsumeCSRFToken(ctx, sessionID)
	require.ErrorIs(t, err, sessions.ErrNotFound)
}
