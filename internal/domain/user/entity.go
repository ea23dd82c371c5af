package user

import (
	"strings"
	"time"

	"parkspot/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidEmail = errs.New("invalid email")
	ErrEmptyName    = errs.New("name cannot be empty")
)

type User struct {
	id           uuid.UUID
	email        string
	name         string
	passwordHash string
	role         Role
	createdAt    time.Time
}

func NewUser(email, name, passwordHash string, role Role, now time.Time) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	return &User{
		id:           uuid.New(),
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    now,
	}, nil
}

func Reconstruct(id uuid.UUID, email, name, passwordHash string, role Role, createdAt time.Time) *User {
	return &User{
		id:           id,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    createdAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() string        { return u.email }
func (u *User) Name() string         { return u.name }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }
