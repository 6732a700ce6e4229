package admin

import (
	"time"

	"github.com/google/uuid"

	"github.com/polltech/smarttutors/internal/domain/user"
)

// UserResponse represents a user row in the admin console
type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	TokenBalance   int       `json:"token_balance"`
	EducationLevel string    `json:"education_level,omitempty"`
	Curriculum     string    `json:"curriculum,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewUserResponse maps a user entity to its admin API shape
func NewUserResponse(u *user.User) UserResponse {
	resp := UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Role:         string(u.Role),
		TokenBalance: u.TokenBalance,
		CreatedAt:    u.CreatedAt,
	}
	if u.EducationLevel.Valid {
		resp.EducationLevel = u.EducationLevel.String
	}
	if u.Curriculum.Valid {
		resp.Curriculum = u.Curriculum.String
	}
	return resp
}

// ListUsersQuery filters GET /admin/users
type ListUsersQuery struct {
	Role string `json:"role" validate:"omitempty,role"`
}

// UserListResponse for GET /admin/users
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}

// ApproveRequest for POST /admin/payments/{id}/approve
type ApproveRequest struct {
	Tokens int `json:"tokens" validate:"required,min=1,max=100000"`
}

// DashboardResponse for GET /admin/dashboard
type DashboardResponse struct {
	TotalUsers  int `json:"total_users"`
	TotalChats  int `json:"total_chats"`
	TotalImages int `json:"total_images"`
}
