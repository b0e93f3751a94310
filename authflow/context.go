package authflow

import (
	"sync"

	"github.com/jrsteele09/go-login-service/users"
)

// ContextRegistry tracks which user is authenticated for each browser
// session. Entries are keyed by session id so concurrent users never share a
// slot. Readers take the shared lock, login completion and logout take the
// exclusive one; the lock is never held across network I/O.
type ContextRegistry struct {
	lock     sync.RWMutex
	contexts map[string]users.Context
}

func NewContextRegistry() *ContextRegistry {
	return &ContextRegistry{
		contexts: make(map[string]users.Context),
	}
}

func (cr *ContextRegistry) Set(sessionID string, userCtx users.Context) {
	cr.lock.Lock()
	defer cr.lock.Unlock()
	cr.contexts[sessionID] = userCtx
}

func (cr *ContextRegistry) Get(sessionID string) (users.Context, bool) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()
	userCtx, ok := cr.contexts[sessionID]
	return userCtx, ok
}

func (cr *ContextRegistry) Clear(sessionID string) {
	cr.lock.Lock()
	defer cr.lock.Unlock()
	delete(cr.contexts, sessionID)
}
