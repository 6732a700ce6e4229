package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrNotConfigured means no API key is stored; the caller should tell the
	// admin to configure one rather than report an outage.
	ErrNotConfigured = errors.New("gemini api key not configured")

	// ErrUnavailable covers transport failures, non-2xx statuses and empty
	// candidates from the upstream API.
	ErrUnavailable = errors.New("gemini api unavailable")
)

// Config holds Gemini API configuration
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client is a REST client for the Gemini generateContent endpoint. The API
// key is passed per call so admin key rotation applies on the next request.
type Client struct {
	httpClient *http.Client
	config     Config
}

// NewClient creates new Gemini API client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		config:     cfg,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// AnswerRequest asks the tutor a single question.
type AnswerRequest struct {
	Question       string
	Subject        string
	EducationLevel string
	Curriculum     string
}

// ExamRequest asks for a generated exam on a topic.
type ExamRequest struct {
	Topic          string
	Subject        string
	EducationLevel string
	Curriculum     string
	NumQuestions   int
	QuestionType   string
}

// CombinedRequest asks for an explanation plus practice material in one pass.
type CombinedRequest struct {
	Topic          string
	Subject        string
	EducationLevel string
	Curriculum     string
}

// Answer returns a tutor-style structured answer to a student question.
func (c *Client) Answer(ctx context.Context, apiKey string, req AnswerRequest) (string, error) {
	if strings.TrimSpace(req.Question) == "" {
		return "", fmt.Errorf("validation error: question must be non-empty")
	}
	prompt := answerPrompt(req)
	return c.generate(ctx, apiKey, prompt)
}

// GenerateExam returns a formatted exam with an answer key.
func (c *Client) GenerateExam(ctx context.Context, apiKey string, req ExamRequest) (string, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return "", fmt.Errorf("validation error: topic must be non-empty")
	}
	if req.NumQuestions <= 0 {
		req.NumQuestions = 10
	}
	prompt := examPrompt(req)
	return c.generate(ctx, apiKey, prompt)
}

// GenerateCombined returns an explanation with examples and practice questions.
func (c *Client) GenerateCombined(ctx context.Context, apiKey string, req CombinedRequest) (string, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return "", fmt.Errorf("validation error: topic must be non-empty")
	}
	prompt := combinedPrompt(req)
	return c.generate(ctx, apiKey, prompt)
}

func (c *Client) generate(ctx context.Context, apiKey, prompt string) (string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return "", ErrNotConfigured
	}

	body := generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: prompt}},
		}},
	}
	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode gemini request: %w", err)
	}

	base := strings.TrimRight(c.config.BaseURL, "/")
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", base, c.config.Model)

	timeout := c.config.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, truncate(string(raw), 200))
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: failed to parse response: %v", ErrUnavailable, err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty candidates", ErrUnavailable)
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty response text", ErrUnavailable)
	}
	return text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
