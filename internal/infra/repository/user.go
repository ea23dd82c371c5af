package repository

import (
	"context"
	"errors"
	"time"

	"parkspot/internal/domain/user"
	"parkspot/internal/infra"
	"parkspot/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, email, name, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID(), u.Email(), u.Name(), u.PasswordHash(), string(u.Role()), u.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, email, name, password_hash, role, created_at
		FROM users
		WHERE email = $1`,
		email,
	)

	var (
		id                      uuid.UUID
		em, name, hash, roleStr string
		createdAt               time.Time
	)
	if err := row.Scan(&id, &em, &name, &hash, &roleStr, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}

	return user.Reconstruct(id, em, name, hash, user.Role(roleStr), createdAt), nil
}
