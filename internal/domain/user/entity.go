package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Role represents user role in the system
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// User represents a tutoring platform account.
// TokenBalance is a cache of SUM(ledger_entries.delta) for this user and is
// only ever written together with a ledger entry in the same transaction.
type User struct {
	ID             uuid.UUID      `db:"id"`
	Username       string         `db:"username"`
	Email          string         `db:"email"`
	PasswordHash   string         `db:"password_hash"`
	Role           Role           `db:"role"`
	TokenBalance   int            `db:"token_balance"`
	EducationLevel sql.NullString `db:"education_level"`
	Curriculum     sql.NullString `db:"curriculum"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// IsAdmin returns true if user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsStudent returns true if user is a student
func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

// IsValidRole checks if role is valid
func IsValidRole(role string) bool {
	return role == string(RoleStudent) || role == string(RoleAdmin)
}
