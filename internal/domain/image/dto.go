package image

import (
	"time"

	"github.com/google/uuid"
)

// GenerateRequest for POST /images/generate
type GenerateRequest struct {
	Description string `json:"description" validate:"required,min=3,max=500"`
	Subject     string `json:"subject" validate:"omitempty,max=50"`
}

// GenerateResponse for POST /images/generate
type GenerateResponse struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	Source    string    `json:"source"`
	Balance   int       `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

// NewGenerateResponse maps a generated image to its API shape
func NewGenerateResponse(g *Generated) GenerateResponse {
	return GenerateResponse{
		ID:        g.Log.ID,
		URL:       g.URL,
		Source:    g.Source,
		Balance:   g.Balance,
		CreatedAt: g.Log.CreatedAt,
	}
}

// LogResponse represents a history entry
type LogResponse struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Subject     string    `json:"subject,omitempty"`
	URL         string    `json:"url,omitempty"`
	Source      string    `json:"source,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewLogListResponse maps history entries
func NewLogListResponse(logs []Log) []LogResponse {
	out := make([]LogResponse, 0, len(logs))
	for i := range logs {
		l := &logs[i]
		resp := LogResponse{
			ID:          l.ID,
			Description: l.Description,
			CreatedAt:   l.CreatedAt,
		}
		if l.Subject.Valid {
			resp.Subject = l.Subject.String
		}
		if l.ImageURL.Valid {
			resp.URL = l.ImageURL.String
		}
		if l.APISource.Valid {
			resp.Source = l.APISource.String
		}
		out = append(out, resp)
	}
	return out
}
