package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrsteele09/go-login-service/idp"
)

// Resolver maps provider userinfo payloads onto local user records.
type Resolver struct {
	repo Repo
}

func NewResolver(repo Repo) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve returns the context of the user identified by info.Subject,
// creating the record on first login. When two first logins race, the loser
// of the insert retries as a lookup rather than failing the whole callback.
func (r *Resolver) Resolve(ctx context.Context, info idp.UserInfo) (Context, error) {
	existing, err := r.repo.FindBySubject(ctx, info.Subject)
	switch {
	case err == nil:
		return existing.Context(), nil
	case !errors.Is(err, ErrNotFound):
		return Context{}, fmt.Errorf("find user: %w", err)
	}

	user := User{
		Subject:   info.Subject,
		Email:     info.Email,
		FirstName: info.GivenName,
		LastName:  info.FamilyName,
	}

	id, err := r.repo.Insert(ctx, user)
	if err == nil {
		user.ID = id
		return user.Context(), nil
	}
	if !errors.Is(err, ErrDuplicateUser) {
		return Context{}, fmt.Errorf("insert user: %w", err)
	}

	// Lost the race against a concurrent first login; the row exists now.
	existing, err = r.repo.FindBySubject(ctx, info.Subject)
	if err != nil {
		return Context{}, fmt.Errorf("find user after duplicate insert: %w", err)
	}
	return existing.Context(), nil
}
