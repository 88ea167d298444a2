package postgres

import (
	"context"
	"errors"
	"strconv"

	"github.com/eventlyhq/evently/internal/domain/user"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UsersRepo struct {
	pool *pgxpool.Pool
}

func NewUsersRepo(pool *pgxpool.Pool) *UsersRepo {
	return &UsersRepo{pool: pool}
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := r.pool.QueryRow(
		ctx,
		`SELECT id, name, email, password, role
         FROM users
         WHERE email = $1`,
		email,
	).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Password,
		&u.Role,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

// Create assigns id = current count + 1 inside a transaction so the id scheme
// matches the in-memory table. The unique index on email backs the taken check.
func (r *UsersRepo) Create(ctx context.Context, name, email, password, role string) (u user.User, err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})

	if err != nil {
		return
	}

	defer func() { _ = tx.Rollback(ctx) }()

	var count int

	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)

	if err != nil {
		return
	}

	u = user.User{
		ID:       strconv.Itoa(count + 1),
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO users (id, name, email, password, role)
		 VALUES ($1,$2,$3,$4,$5)`,
		u.ID, u.Name, u.Email, u.Password, u.Role,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			err = user.ErrEmailTaken
			return
		}
		return
	}

	err = tx.Commit(ctx)

	if err != nil {
		return
	}

	return u, nil
}

func (r *UsersRepo) Count(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total)
	return total, err
}
