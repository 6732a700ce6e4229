package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateContentStub(t *testing.T, status int, text string, gotKey *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, ":generateContent")
		if gotKey != nil {
			*gotKey = r.Header.Get("x-goog-api-key")
		}
		w.WriteHeader(status)
		if status == http.StatusOK {
			json.NewEncoder(w).Encode(map[string]any{
				"candidates": []map[string]any{{
					"content": map[string]any{
						"parts": []map[string]string{{"text": text}},
					},
				}},
			})
		}
	}))
}

func TestAnswerRequiresAPIKey(t *testing.T) {
	client := NewClient(Config{})

	_, err := client.Answer(context.Background(), "", AnswerRequest{Question: "What is photosynthesis?"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestAnswerSendsKeyHeaderAndReturnsText(t *testing.T) {
	var gotKey string
	srv := generateContentStub(t, http.StatusOK, "Photosynthesis is how plants make food.", &gotKey)
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Model: "gemini-2.5-flash"})

	text, err := client.Answer(context.Background(), "test-key", AnswerRequest{
		Question:       "What is photosynthesis?",
		EducationLevel: "Grade 6",
		Curriculum:     "CBC",
	})
	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis is how plants make food.", text)
	assert.Equal(t, "test-key", gotKey)
}

func TestAnswerMapsUpstreamErrorToUnavailable(t *testing.T) {
	srv := generateContentStub(t, http.StatusInternalServerError, "", nil)
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})

	_, err := client.Answer(context.Background(), "test-key", AnswerRequest{Question: "hi"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestAnswerMapsEmptyCandidatesToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})

	_, err := client.Answer(context.Background(), "test-key", AnswerRequest{Question: "hi"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestAnswerRejectsEmptyQuestion(t *testing.T) {
	client := NewClient(Config{})

	_, err := client.Answer(context.Background(), "test-key", AnswerRequest{Question: "   "})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotConfigured)
}

func TestGenerateExamDefaultsQuestionCount(t *testing.T) {
	srv := generateContentStub(t, http.StatusOK, "Exam content", nil)
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})

	text, err := client.GenerateExam(context.Background(), "test-key", ExamRequest{Topic: "Algebra"})
	require.NoError(t, err)
	assert.Equal(t, "Exam content", text)
}
