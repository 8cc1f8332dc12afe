package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adpilot/admanager/internal/domain/user"
)

type UsersRepo struct {
	pool *pgxpool.Pool
	obs  dbObserver
}

func NewUsersRepo(pool *pgxpool.Pool, obs dbObserver) *UsersRepo {
	return &UsersRepo{pool: pool, obs: obs}
}

const userColumns = `id, email, password_hash, first_name, last_name, company,
	role, bio, timezone, language, avatar, created_at, updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Company,
		&u.Role,
		&u.Bio,
		&u.Timezone,
		&u.Language,
		&u.Avatar,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func (r *UsersRepo) Create(ctx context.Context, u user.User) error {
	return observe(r.obs, "users.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO users (id, email, password_hash, first_name, last_name,
				company, role, bio, timezone, language, avatar, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName,
			u.Company, u.Role, u.Bio, u.Timezone, u.Language, u.Avatar,
			u.CreatedAt, u.UpdatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return user.ErrEmailTaken
			}
			return err
		}
		return nil
	})
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User
	err := observe(r.obs, "users.get_by_email", func() error {
		var err error
		u, err = scanUser(r.pool.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrNotFound
		}
		return err
	})
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	var u user.User
	err := observe(r.obs, "users.get_by_id", func() error {
		var err error
		u, err = scanUser(r.pool.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrNotFound
		}
		return err
	})
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

// Update writes the full merged profile back. Callers load the user, apply
// the patch and pass the result here; concurrent edits are last-write-wins.
func (r *UsersRepo) Update(ctx context.Context, u user.User) (user.User, error) {
	var out user.User
	err := observe(r.obs, "users.update", func() error {
		var err error
		out, err = scanUser(r.pool.QueryRow(ctx,
			`UPDATE users
				SET email = $2,
					first_name = $3,
					last_name = $4,
					company = $5,
					role = $6,
					bio = $7,
					timezone = $8,
					language = $9,
					avatar = $10,
					updated_at = now()
			 WHERE id = $1
			 RETURNING `+userColumns,
			u.ID, u.Email, u.FirstName, u.LastName, u.Company,
			u.Role, u.Bio, u.Timezone, u.Language, u.Avatar,
		))
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrNotFound
		}
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return user.ErrEmailTaken
			}
		}
		return err
	})
	if err != nil {
		return user.User{}, err
	}
	return out, nil
}
