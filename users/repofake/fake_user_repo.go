package fakeuserrepo

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-login-service/users"
)

var _ users.Repo = (*FakeUserRepo)(nil)

// FakeUserRepo is an in-memory stand-in for the postgres user repo.
type FakeUserRepo struct {
	lock      sync.Mutex
	bySubject map[string]*users.User
	nextID    int64
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		bySubject: make(map[string]*users.User),
		nextID:    1,
	}
}

func (ur *FakeUserRepo) Insert(_ context.Context, user users.User) (int64, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if _, ok := ur.bySubject[user.Subject]; ok {
		return 0, users.ErrDuplicateUser
	}

	user.ID = ur.nextID
	ur.nextID++
	ur.bySubject[user.Subject] = &user
	return user.ID, nil
}

func (ur *FakeUserRepo) FindBySubject(_ context.Context, subject string) (*users.User, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	user, ok := ur.bySubject[subject]
	if !ok {
		return nil, users.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

// Count reports how many users have been inserted.
func (ur *FakeUserRepo) Count() int {
	ur.lock.Lock()
	defer ur.lock.Unlock()
	return len(ur.bySubject)
}
