package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/polltech/smarttutors/internal/domain/user"
)

// RegisterRequest for POST /auth/register
type RegisterRequest struct {
	Username       string `json:"username" validate:"required,min=3,max=80"`
	Email          string `json:"email" validate:"required,email,max=120"`
	Password       string `json:"password" validate:"required,min=8,max=128"`
	EducationLevel string `json:"education_level" validate:"omitempty,education_level"`
	Curriculum     string `json:"curriculum" validate:"omitempty,curriculum"`
}

// LoginRequest for POST /auth/login. Identity accepts username or email.
type LoginRequest struct {
	Identity string `json:"identity" validate:"required,max=120"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest for POST /auth/refresh and /auth/logout
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse returned after login/register
type AuthResponse struct {
	User   UserResponse   `json:"user"`
	Tokens TokensResponse `json:"tokens"`
}

// UserResponse represents user in API response
type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	TokenBalance   int       `json:"token_balance"`
	EducationLevel string    `json:"education_level,omitempty"`
	Curriculum     string    `json:"curriculum,omitempty"`
	CreatedAt      string    `json:"created_at"`
}

// TokensResponse represents tokens in API response
type TokensResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"` // seconds until access token expires
	TokenType    string `json:"token_type"`
}

// NewUserResponse creates UserResponse from a user entity
func NewUserResponse(u *user.User) UserResponse {
	resp := UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Role:         string(u.Role),
		TokenBalance: u.TokenBalance,
		CreatedAt:    u.CreatedAt.Format(time.RFC3339),
	}
	if u.EducationLevel.Valid {
		resp.EducationLevel = u.EducationLevel.String
	}
	if u.Curriculum.Valid {
		resp.Curriculum = u.Curriculum.String
	}
	return resp
}
