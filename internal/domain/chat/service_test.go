package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polltech/smarttutors/internal/domain/ledger"
	"github.com/polltech/smarttutors/internal/domain/settings"
	"github.com/polltech/smarttutors/internal/pkg/gemini"
)

type fakeChatRepo struct {
	created   []*Chat
	createErr error
}

func (f *fakeChatRepo) Create(ctx context.Context, c *Chat) error {
	if f.createErr != nil {
		return f.createErr
	}
	c.ID = uuid.New()
	f.created = append(f.created, c)
	return nil
}

func (f *fakeChatRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Chat, error) {
	out := make([]Chat, 0, len(f.created))
	for _, c := range f.created {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeChatRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	n := 0
	for _, c := range f.created {
		if c.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeChatRepo) Count(ctx context.Context) (int, error) {
	return len(f.created), nil
}

type fakeLedger struct {
	balance int
	charges []string
}

func (f *fakeLedger) Charge(ctx context.Context, userID uuid.UUID, kind string, reference string) (*ledger.Receipt, error) {
	cost := ledger.CostFor(kind)
	if f.balance < cost {
		return nil, ledger.ErrInsufficientTokens
	}
	f.balance -= cost
	f.charges = append(f.charges, reference)
	return &ledger.Receipt{UserID: userID, Delta: -cost, Cause: ledger.CauseUsage, Balance: f.balance}, nil
}

func (f *fakeLedger) CanAfford(ctx context.Context, userID uuid.UUID, kind string) (bool, int, error) {
	cost := ledger.CostFor(kind)
	return f.balance >= cost, cost, nil
}

func (f *fakeLedger) Grant(ctx context.Context, userID uuid.UUID, amount int, reference string) (*ledger.Receipt, error) {
	f.balance += amount
	return &ledger.Receipt{UserID: userID, Delta: amount, Cause: ledger.CauseManualGrant, Balance: f.balance}, nil
}

func (f *fakeLedger) BulkGrant(ctx context.Context, amount int) (*ledger.BulkGrantReport, error) {
	return &ledger.BulkGrantReport{}, nil
}

func (f *fakeLedger) CreditTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount int, cause ledger.Cause, reference string) (int, error) {
	f.balance += amount
	return f.balance, nil
}

func (f *fakeLedger) GetBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	return f.balance, nil
}

func (f *fakeLedger) ListEntries(ctx context.Context, userID uuid.UUID, limit, offset int) ([]ledger.Entry, error) {
	return []ledger.Entry{}, nil
}

type fakeSettings struct {
	geminiKey string
	err       error
}

func (f *fakeSettings) Get(ctx context.Context) (*settings.Settings, error) {
	if f.err != nil {
		return nil, f.err
	}
	s := settings.Defaults()
	if f.geminiKey != "" {
		s.GeminiAPIKey.String = f.geminiKey
		s.GeminiAPIKey.Valid = true
	}
	return s, nil
}

func (f *fakeSettings) Update(ctx context.Context, req *settings.UpdateRequest) (*settings.Settings, error) {
	return nil, errors.New("not implemented")
}

type fakeProfiles struct{}

func (fakeProfiles) Profile(ctx context.Context, userID uuid.UUID) (string, string, error) {
	return "Form 2", "8-4-4", nil
}

func tutorStub(t *testing.T, status int, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
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

func newTestService(repo *fakeChatRepo, led *fakeLedger, cfg *fakeSettings, baseURL string) Service {
	client := gemini.NewClient(gemini.Config{BaseURL: baseURL})
	return NewService(repo, led, cfg, fakeProfiles{}, client)
}

func TestAskChargesAfterAnswer(t *testing.T) {
	srv := tutorStub(t, http.StatusOK, "✅ **Answer:** x = 3")
	defer srv.Close()

	repo := &fakeChatRepo{}
	led := &fakeLedger{balance: 5}
	svc := newTestService(repo, led, &fakeSettings{geminiKey: "key"}, srv.URL)

	req := &AskRequest{Question: "Solve 2x + 4 = 10", Kind: KindQuestion}
	res, err := svc.Ask(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	assert.Equal(t, 4, res.Balance)
	assert.Equal(t, 1, res.Chat.TokensUsed)
	require.NotNil(t, res.Structured)
	assert.Equal(t, "x = 3", res.Structured.Answer)
	assert.Equal(t, []string{"chat:question"}, led.charges)
	require.Len(t, repo.created, 1)
}

func TestAskExamCostsTwoAndSkipsStructured(t *testing.T) {
	srv := tutorStub(t, http.StatusOK, "Exam content")
	defer srv.Close()

	led := &fakeLedger{balance: 5}
	svc := newTestService(&fakeChatRepo{}, led, &fakeSettings{geminiKey: "key"}, srv.URL)

	req := &AskRequest{Question: "Photosynthesis", Kind: KindExam}
	res, err := svc.Ask(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Balance)
	assert.Equal(t, 2, res.Chat.TokensUsed)
	assert.Nil(t, res.Structured)
}

func TestAskRejectsUnaffordableBeforeCallingTutor(t *testing.T) {
	srv := tutorStub(t, http.StatusOK, "should never be reached")
	defer srv.Close()

	led := &fakeLedger{balance: 1}
	svc := newTestService(&fakeChatRepo{}, led, &fakeSettings{geminiKey: "key"}, srv.URL)

	req := &AskRequest{Question: "Topic", Kind: KindExam}
	_, err := svc.Ask(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, ledger.ErrInsufficientTokens)
	assert.Empty(t, led.charges)
}

func TestAskNotConfiguredCostsNothing(t *testing.T) {
	led := &fakeLedger{balance: 5}
	svc := newTestService(&fakeChatRepo{}, led, &fakeSettings{}, "http://unused.invalid")

	req := &AskRequest{Question: "What is gravity?", Kind: KindQuestion}
	_, err := svc.Ask(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, 5, led.balance)
}

func TestAskAdapterFailureCostsNothing(t *testing.T) {
	srv := tutorStub(t, http.StatusInternalServerError, "")
	defer srv.Close()

	led := &fakeLedger{balance: 5}
	svc := newTestService(&fakeChatRepo{}, led, &fakeSettings{geminiKey: "key"}, srv.URL)

	req := &AskRequest{Question: "What is gravity?", Kind: KindQuestion}
	_, err := svc.Ask(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, ErrAdapterFailure)
	assert.Equal(t, 5, led.balance)
}

func TestAskChargeStandsWhenHistoryInsertFails(t *testing.T) {
	srv := tutorStub(t, http.StatusOK, "Answer text")
	defer srv.Close()

	repo := &fakeChatRepo{createErr: errors.New("disk full")}
	led := &fakeLedger{balance: 5}
	svc := newTestService(repo, led, &fakeSettings{geminiKey: "key"}, srv.URL)

	req := &AskRequest{Question: "What is gravity?", Kind: KindQuestion}
	res, err := svc.Ask(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Balance)
	assert.Empty(t, repo.created)
}

func TestNormalizeDefaultsKind(t *testing.T) {
	req := &AskRequest{Question: "hi"}
	req.Normalize()
	assert.Equal(t, KindQuestion, req.Kind)

	req = &AskRequest{Question: "hi", Kind: KindCombined}
	req.Normalize()
	assert.Equal(t, KindCombined, req.Kind)
}
