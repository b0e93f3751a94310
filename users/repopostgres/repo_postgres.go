package repopostgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jrsteele09/go-login-service/users"
)

const uniqueViolationCode = "23505"

var _ users.Repo = (*UserRepo)(nil)

// UserRepo stores user records in the users table.
type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (ur *UserRepo) Insert(ctx context.Context, user users.User) (int64, error) {
	var id int64
	err := ur.pool.QueryRow(ctx,
		`INSERT INTO users (subject, email, first_name, last_name) VALUES ($1, $2, $3, $4) RETURNING id`,
		user.Subject, user.Email, user.FirstName, user.LastName).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return 0, users.ErrDuplicateUser
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

func (ur *UserRepo) FindBySubject(ctx context.Context, subject string) (*users.User, error) {
	var user users.User
	err := ur.pool.QueryRow(ctx,
		`SELECT id, subject, email, first_name, last_name FROM users WHERE subject = $1`,
		subject).Scan(&user.ID, &user.Subject, &user.Email, &user.FirstName, &user.LastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, users.ErrNotFound
		}
		return nil, fmt.Errorf("find user by subject: %w", err)
	}
	return &user, nil
}
