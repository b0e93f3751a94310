package sessions

import (
	"context"
	"errors"
)

var (
	// ErrNotFound covers both a session that never existed and one whose
	// expiry has passed; callers cannot tell the two apart.
	ErrNotFound = errors.New("session not found")

	// ErrDuplicateSession signals a session id collision on insert.
	ErrDuplicateSession = errors.New("session already exists")
)

// Repo defines durable storage for login sessions. Storage is the single
// source of truth; implementations must not cache, otherwise concurrent
// callbacks against the same session could both succeed.
type Repo interface {
	// Create inserts a session with expiry = now + TTL.
	Create(ctx context.Context, sessionID, csrfToken string) error

	// ConsumeCSRFToken returns the CSRF token of a live session and expires
	// the session in the same step. A second consume of the same id, or a
	// consume at or past the TTL, returns ErrNotFound.
	ConsumeCSRFToken(ctx context.Context, sessionID string) (string, error)

	// Expire sets the session expiry to now. Idempotent; a missing session
	// id is a no-op. Rows are never deleted here, cleanup is left to an
	// external housekeeping job.
	Expire(ctx context.Context, sessionID string) error
}
