package image

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Log records one generated educational image and which provider served it.
type Log struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	UserID      uuid.UUID      `db:"user_id" json:"user_id"`
	Description string         `db:"description" json:"description"`
	Subject     sql.NullString `db:"subject" json:"-"`
	ImageURL    sql.NullString `db:"image_url" json:"-"`
	APISource   sql.NullString `db:"api_source" json:"-"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}
