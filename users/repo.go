package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("user not found")

	// ErrDuplicateUser signals an insert for a subject that already has a
	// row. Kept distinct from ErrNotFound so racing first logins can be told
	// apart from missing records.
	ErrDuplicateUser = errors.New("user already exists")
)

type Repo interface {
	// Insert stores a new user and returns its generated id. Inserting a
	// subject that already exists returns ErrDuplicateUser.
	Insert(ctx context.Context, user User) (int64, error)

	// FindBySubject returns the user owning the provider subject id, or
	// ErrNotFound.
	FindBySubject(ctx context.Context, subject string) (*User, error)
}
