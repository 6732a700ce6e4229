package chat

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Chat is one tutor exchange persisted for history. Exam and combined
// requests store the topic in Question.
type Chat struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	UserID      uuid.UUID      `db:"user_id" json:"user_id"`
	Subject     sql.NullString `db:"subject" json:"-"`
	Question    string         `db:"question" json:"question"`
	Answer      string         `db:"answer" json:"answer"`
	RequestKind string         `db:"request_kind" json:"request_kind"`
	TokensUsed  int            `db:"tokens_used" json:"tokens_used"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// Request kinds
const (
	KindQuestion = "question"
	KindExam     = "exam"
	KindCombined = "combined"
)
