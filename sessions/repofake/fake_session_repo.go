package fakesessionrepo

import (
	"context"
	"sync"
	"time"

	"github.com/jrsteele09/go-login-service/sessions"
)

var _ sessions.Repo = (*FakeSessionRepo)(nil)

// FakeSessionRepo is an in-memory stand-in for the postgres session repo.
// Now may be swapped out by tests that need to move the clock.
type FakeSessionRepo struct {
	lock     sync.Mutex
	sessions map[string]*sessions.Session

	Now func() time.Time
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{
		sessions: make(map[string]*sessions.Session),
		Now:      time.Now,
	}
}

func (sr *FakeSessionRepo) Create(_ context.Context, sessionID, csrfToken string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if _, ok := sr.sessions[sessionID]; ok {
		return sessions.ErrDuplicateSession
	}

	sr.sessions[sessionID] = &sessions.Session{
		ID:        sessionID,
		CSRFToken: csrfToken,
		ExpiresAt: sr.Now().Add(sessions.TTL),
	}
	return nil
}

func (sr *FakeSessionRepo) ConsumeCSRFToken(_ context.Context, sessionID string) (string, error) {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	now := sr.Now()
	session, ok := sr.sessions[sessionID]
	if !ok || !now.Before(session.ExpiresAt) {
		return "", sessions.ErrNotFound
	}

	session.ExpiresAt = now
	return session.CSRFToken, nil
}

func (sr *FakeSessionRepo) Expire(_ context.Context, sessionID string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	session, ok := sr.sessions[sessionID]
	if !ok {
		return nil
	}
	session.ExpiresAt = sr.Now()
	return nil
}

// ExpiresAt exposes the stored expiry so tests can assert a session was
// expired by a consume.
func (sr *FakeSessionRepo) ExpiresAt(sessionID string) (time.Time, bool) {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	session, ok := sr.sessions[sessionID]
	if !ok {
		return time.Time{}, false
	}
	return session.ExpiresAt, true
}
