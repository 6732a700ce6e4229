package ledger

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*LedgerRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestAdjustCreditsAndAppendsEntry(t *testing.T) {
	repo, mock := newMockRepo(t)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE users").
		WithArgs(userID, 10).
		WillReturnRows(sqlmock.NewRows([]string{"token_balance"}).AddRow(15))
	mock.ExpectExec("INSERT INTO ledger_entries").
		WithArgs(userID, 10, CauseManualGrant, sql.NullString{String: "signup-bonus", Valid: true}).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	balance, err := repo.Adjust(context.Background(), userID, 10, CauseManualGrant, "signup-bonus")
	require.NoError(t, err)
	assert.Equal(t, 15, balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustRejectsOverdraft(t *testing.T) {
	repo, mock := newMockRepo(t)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE users").
		WithArgs(userID, -5).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := repo.Adjust(context.Background(), userID, -5, CauseUsage, "chat:question")
	assert.ErrorIs(t, err, ErrInsufficientTokens)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustRejectsUnknownAccount(t *testing.T) {
	repo, mock := newMockRepo(t)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE users").
		WithArgs(userID, -1).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	_, err := repo.Adjust(context.Background(), userID, -1, CauseUsage, "")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustValidatesInput(t *testing.T) {
	repo, _ := newMockRepo(t)
	userID := uuid.New()

	_, err := repo.Adjust(context.Background(), userID, 0, CauseUsage, "")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = repo.Adjust(context.Background(), userID, 5, Cause("refund"), "")
	assert.ErrorIs(t, err, ErrInvalidCause)
}

func TestAdjustTxLocksRowAndChecksBalance(t *testing.T) {
	repo, mock := newMockRepo(t)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT token_balance FROM users").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"token_balance"}).AddRow(3))
	mock.ExpectQuery("UPDATE users").
		WithArgs(userID, 50).
		WillReturnRows(sqlmock.NewRows([]string{"token_balance"}).AddRow(53))
	mock.ExpectExec("INSERT INTO ledger_entries").
		WithArgs(userID, 50, CauseMpesaApproved, sql.NullString{String: "mpesa:ABC123", Valid: true}).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := repo.db.BeginTxx(context.Background(), nil)
	require.NoError(t, err)

	balance, err := repo.AdjustTx(context.Background(), tx, userID, 50, CauseMpesaApproved, "mpesa:ABC123")
	require.NoError(t, err)
	assert.Equal(t, 53, balance)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustTxRejectsOverdraft(t *testing.T) {
	repo, mock := newMockRepo(t)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT token_balance FROM users").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"token_balance"}).AddRow(1))
	mock.ExpectRollback()

	tx, err := repo.db.BeginTxx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	_, err = repo.AdjustTx(context.Background(), tx, userID, -2, CauseUsage, "")
	assert.ErrorIs(t, err, ErrInsufficientTokens)
}

func TestSumDeltas(t *testing.T) {
	repo, mock := newMockRepo(t)
	userID := uuid.New()

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(7))

	sum, err := repo.SumDeltas(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 7, sum)
}
