package response

import (
	"parkspot/internal/usecase/commands"

	"github.com/google/uuid"
)

type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	Role   string    `json:"role"`
	Token  string    `json:"token"`
}

func FromAuthResult(r *commands.AuthResult) *AuthResponse {
	return &AuthResponse{
		UserID: r.UserID,
		Email:  r.Email,
		Name:   r.Name,
		Role:   r.Role.String(),
		Token:  r.Token,
	}
}
