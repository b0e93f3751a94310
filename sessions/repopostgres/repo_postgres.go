package repopostgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jrsteele09/go-login-service/sessions"
)

const uniqueViolationCode = "23505"

var _ sessions.Repo = (*SessionRepo)(nil)

// SessionRepo stores login sessions in the sessions table.
type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepo(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

func (sr *SessionRepo) Create(ctx context.Context, sessionID, csrfToken string) error {
	expiresAt := time.Now().Add(sessions.TTL)
	_, err := sr.pool.Exec(ctx,
		`INSERT INTO sessions (session_id, csrf_token, expires_at) VALUES ($1, $2, $3)`,
		sessionID, csrfToken, expiresAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return sessions.ErrDuplicateSession
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// ConsumeCSRFToken reads and expires the session in a single conditional
// update, so two concurrent callbacks with the same cookie cannot both get
// the token back.
func (sr *SessionRepo) ConsumeCSRFToken(ctx context.Context, sessionID string) (string, error) {
	var csrfToken string
	err := sr.pool.QueryRow(ctx,
		`UPDATE sessions SET expires_at = now() WHERE session_id = $1 AND expires_at > now() RETURNING csrf_token`,
		sessionID).Scan(&csrfToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", sessions.ErrNotFound
		}
		return "", fmt.Errorf("consume csrf token: %w", err)
	}
	return csrfToken, nil
}

func (sr *SessionRepo) Expire(ctx context.Context, sessionID string) error {
	_, err := sr.pool.Exec(ctx,
		`UPDATE sessions SET expires_at = now() WHERE session_id = $1`,
		sessionID)
	if err != nil {
		return fmt.Errorf("expire session: %w", err)
	}
	return nil
}
