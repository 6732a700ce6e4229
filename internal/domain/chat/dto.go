package chat

import (
	"time"

	"github.com/google/uuid"

	"github.com/polltech/smarttutors/internal/pkg/gemini"
)

// AskRequest for POST /chat/ask
type AskRequest struct {
	Question     string `json:"question" validate:"required,min=1,max=4000"`
	Subject      string `json:"subject" validate:"omitempty,max=50"`
	Kind         string `json:"kind" validate:"omitempty,request_kind"`
	NumQuestions int    `json:"num_questions" validate:"omitempty,min=1,max=50"`
	QuestionType string `json:"question_type" validate:"omitempty,oneof=mcq short essay mixed"`
}

// Normalize fills request defaults.
func (r *AskRequest) Normalize() {
	if r.Kind == "" {
		r.Kind = KindQuestion
	}
}

// AskResponse for POST /chat/ask
type AskResponse struct {
	ID         uuid.UUID          `json:"id"`
	Answer     string             `json:"answer"`
	Structured *gemini.Structured `json:"structured,omitempty"`
	Kind       string             `json:"kind"`
	TokensUsed int                `json:"tokens_used"`
	Balance    int                `json:"balance"`
	CreatedAt  time.Time          `json:"created_at"`
}

// NewAskResponse maps a tutor result to its API shape
func NewAskResponse(res *Result) AskResponse {
	return AskResponse{
		ID:         res.Chat.ID,
		Answer:     res.Chat.Answer,
		Structured: res.Structured,
		Kind:       res.Chat.RequestKind,
		TokensUsed: res.Chat.TokensUsed,
		Balance:    res.Balance,
		CreatedAt:  res.Chat.CreatedAt,
	}
}

// ChatResponse represents a history entry in API responses
type ChatResponse struct {
	ID         uuid.UUID `json:"id"`
	Subject    string    `json:"subject,omitempty"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Kind       string    `json:"kind"`
	TokensUsed int       `json:"tokens_used"`
	CreatedAt  time.Time `json:"created_at"`
}

// HistoryResponse for GET /chat/history
type HistoryResponse struct {
	Chats []ChatResponse `json:"chats"`
	Total int            `json:"total"`
}

// NewHistoryResponse maps history entries
func NewHistoryResponse(chats []Chat, total int) HistoryResponse {
	out := make([]ChatResponse, 0, len(chats))
	for i := range chats {
		c := &chats[i]
		resp := ChatResponse{
			ID:         c.ID,
			Question:   c.Question,
			Answer:     c.Answer,
			Kind:       c.RequestKind,
			TokensUsed: c.TokensUsed,
			CreatedAt:  c.CreatedAt,
		}
		if c.Subject.Valid {
			resp.Subject = c.Subject.String
		}
		out = append(out, resp)
	}
	return HistoryResponse{Chats: out, Total: total}
}
