package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polltech/smarttutors/internal/domain/ledger"
	"github.com/polltech/smarttutors/internal/domain/settings"
	"github.com/polltech/smarttutors/internal/domain/user"
	"github.com/polltech/smarttutors/internal/pkg/jwt"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return user.ErrEmailAlreadyExists
		}
		if existing.Username == u.Username {
			return user.ErrUsernameAlreadyExists
		}
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) List(ctx context.Context, role user.Role, limit, offset int) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) ListIDsByRole(ctx context.Context, role user.Role) ([]uuid.UUID, error) {
	return nil, nil
}

func (f *fakeUserRepo) Count(ctx context.Context, role user.Role) (int, error) {
	return len(f.users), nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

type fakeLedger struct {
	grants  []string
	failAll bool
}

func (f *fakeLedger) Charge(ctx context.Context, userID uuid.UUID, kind string, reference string) (*ledger.Receipt, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeLedger) CanAfford(ctx context.Context, userID uuid.UUID, kind string) (bool, int, error) {
	return false, 0, errors.New("not implemented")
}

func (f *fakeLedger) Grant(ctx context.Context, userID uuid.UUID, amount int, reference string) (*ledger.Receipt, error) {
	if f.failAll {
		return nil, ledger.ErrInternal
	}
	f.grants = append(f.grants, reference)
	return &ledger.Receipt{UserID: userID, Delta: amount, Cause: ledger.CauseManualGrant, Balance: amount}, nil
}

func (f *fakeLedger) BulkGrant(ctx context.Context, amount int) (*ledger.BulkGrantReport, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeLedger) CreditTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount int, cause ledger.Cause, reference string) (int, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeLedger) GetBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	return 0, nil
}

func (f *fakeLedger) ListEntries(ctx context.Context, userID uuid.UUID, limit, offset int) ([]ledger.Entry, error) {
	return []ledger.Entry{}, nil
}

type fakeSettings struct {
	freeTokens int
}

func (f *fakeSettings) Get(ctx context.Context) (*settings.Settings, error) {
	s := settings.Defaults()
	s.FreeTokensPerUser = f.freeTokens
	return s, nil
}

func (f *fakeSettings) Update(ctx context.Context, req *settings.UpdateRequest) (*settings.Settings, error) {
	return nil, errors.New("not implemented")
}

func newTestAuth(repo *fakeUserRepo, led *fakeLedger, freeTokens int) *Service {
	jwtSvc := jwt.NewService("secret", 15*time.Minute, 7*24*time.Hour)
	return NewService(repo, led, &fakeSettings{freeTokens: freeTokens}, jwtSvc, nil)
}

func TestRegisterGrantsSignupBonus(t *testing.T) {
	repo := newFakeUserRepo()
	led := &fakeLedger{}
	svc := newTestAuth(repo, led, 5)

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Username:       "jane",
		Email:          "Jane@Example.com",
		Password:       "strongpassword",
		EducationLevel: "Junior Secondary",
		Curriculum:     "CBC",
	})
	require.NoError(t, err)

	assert.Equal(t, "jane", resp.User.Username)
	assert.Equal(t, "jane@example.com", resp.User.Email)
	assert.Equal(t, "student", resp.User.Role)
	assert.Equal(t, 5, resp.User.TokenBalance)
	assert.Equal(t, []string{"signup-bonus"}, led.grants)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.Equal(t, "Bearer", resp.Tokens.TokenType)
}

func TestRegisterSucceedsWhenBonusGrantFails(t *testing.T) {
	repo := newFakeUserRepo()
	led := &fakeLedger{failAll: true}
	svc := newTestAuth(repo, led, 5)

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "jane",
		Email:    "jane@example.com",
		Password: "strongpassword",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.User.TokenBalance)
}

func TestRegisterNoBonusWhenConfiguredZero(t *testing.T) {
	repo := newFakeUserRepo()
	led := &fakeLedger{}
	svc := newTestAuth(repo, led, 0)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "jane",
		Email:    "jane@example.com",
		Password: "strongpassword",
	})
	require.NoError(t, err)
	assert.Empty(t, led.grants)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuth(repo, &fakeLedger{}, 5)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "jane", Email: "jane@example.com", Password: "strongpassword",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &RegisterRequest{
		Username: "otherjane", Email: "jane@example.com", Password: "strongpassword",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestLoginByEmailAndUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuth(repo, &fakeLedger{}, 0)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "jane", Email: "jane@example.com", Password: "strongpassword",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &LoginRequest{Identity: "jane@example.com", Password: "strongpassword"})
	require.NoError(t, err)
	assert.Equal(t, "jane", resp.User.Username)

	resp, err = svc.Login(context.Background(), &LoginRequest{Identity: "jane", Password: "strongpassword"})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", resp.User.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuth(repo, &fakeLedger{}, 0)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "jane", Email: "jane@example.com", Password: "strongpassword",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginRequest{Identity: "jane", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownIdentity(t *testing.T) {
	svc := newTestAuth(newFakeUserRepo(), &fakeLedger{}, 0)

	_, err := svc.Login(context.Background(), &LoginRequest{Identity: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
