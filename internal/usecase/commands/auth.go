package commands

import (
	"context"

	"parkspot/internal/domain/user"
	"parkspot/internal/infra"
	"parkspot/internal/pkg/clock"
	"parkspot/internal/pkg/errs"
	"parkspot/internal/pkg/jwt"
	"parkspot/internal/pkg/password"
	"parkspot/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrEmailTaken         = errs.New("email already registered")
	ErrInvalidCredentials = errs.New("invalid email or password")
)

type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	UserID uuid.UUID
	Email  string
	Name   string
	Role   user.Role
	Token  string
}

type AuthCommands interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
}

type authCommandsImpl struct {
	uow   shared.UnitOfWork
	jwt   *jwt.Service
	clock clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{uow: uow, jwt: jwtService, clock: clk}
}

func (c *authCommandsImpl) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	hash, err := password.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u, err := user.NewUser(in.Email, in.Name, hash, user.RoleUser, c.clock.Now())
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, u)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return c.result(u)
}

func (c *authCommandsImpl) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	u, err := c.uow.Reads().UserByEmail(ctx, in.Email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := password.ComparePassword(u.PasswordHash(), in.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return c.result(u)
}

func (c *authCommandsImpl) result(u *user.User) (*AuthResult, error) {
	token, err := c.jwt.GenerateToken(u.ID(), u.Role())
	if err != nil {
		return nil, errs.Wrap(err, "failed to sign token")
	}
	return &AuthResult{
		UserID: u.ID(),
		Email:  u.Email(),
		Name:   u.Name(),
		Role:   u.Role(),
		Token:  token,
	}, nil
}
