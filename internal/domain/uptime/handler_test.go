package uptime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeUptimeRepo struct {
	recorded int
}

func (f *fakeUptimeRepo) Record(ctx context.Context) error {
	f.recorded++
	return nil
}

func (f *fakeUptimeRepo) Stats(ctx context.Context) (*Stats, error) {
	now := time.Now()
	return &Stats{Count: f.recorded, FirstPing: &now, LastPing: &now}, nil
}

func TestPingRecordsWithValidKey(t *testing.T) {
	repo := &fakeUptimeRepo{}
	h := NewHandler(repo, "topsecret")

	req := httptest.NewRequest(http.MethodGet, "/ping?key=topsecret", nil)
	w := httptest.NewRecorder()
	h.Ping(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, repo.recorded)
	assert.Contains(t, w.Body.String(), "pong")
}

func TestPingRejectsWrongKey(t *testing.T) {
	repo := &fakeUptimeRepo{}
	h := NewHandler(repo, "topsecret")

	req := httptest.NewRequest(http.MethodGet, "/ping?key=guess", nil)
	w := httptest.NewRecorder()
	h.Ping(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, repo.recorded)
}

func TestPingAlwaysRejectsWhenSecretUnset(t *testing.T) {
	repo := &fakeUptimeRepo{}
	h := NewHandler(repo, "")

	req := httptest.NewRequest(http.MethodGet, "/ping?key=", nil)
	w := httptest.NewRecorder()
	h.Ping(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
