package user

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
	"github.com/m04kA/ParkEase-Backend/pkg/ptr"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

var userRows = []string{
	"id", "name", "email", "password_hash", "phone", "role", "status",
	"profile_image", "wallet_balance", "created_at", "updated_at",
}

func TestGetByID(t *testing.T) {
	repo, mock := newMock(t)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT id, name, email, password_hash, phone, role, status, profile_image, wallet_balance, created_at, updated_at FROM users WHERE id = $1").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(userRows).
			AddRow(int64(42), "Asha", "asha@example.com", "hash", "+911234567890", "driver", "active", nil, 150.0, now, now))

	u, err := repo.GetByID(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, int64(42), u.ID)
	assert.Equal(t, "Asha", u.Name)
	assert.Equal(t, domain.RoleDriver, u.Role)
	assert.Equal(t, 150.0, u.WalletBalance)
	require.NotNil(t, u.Phone)
	assert.Equal(t, "+911234567890", *u.Phone)
	assert.Nil(t, u.ProfileImage)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT id, name, email, password_hash, phone, role, status, profile_image, wallet_balance, created_at, updated_at FROM users WHERE id = $1").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(userRows))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate(t *testing.T) {
	repo, mock := newMock(t)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO users (name,email,password_hash,phone,role,status,wallet_balance) VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id, created_at, updated_at").
		WithArgs("Asha", "asha@example.com", "hash", nil, domain.RoleDriver, domain.UserStatusActive, 0.0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))

	u, err := repo.Create(context.Background(), &domain.User{
		Name:         "Asha",
		Email:        "asha@example.com",
		PasswordHash: "hash",
		Role:         domain.RoleDriver,
		Status:       domain.UserStatusActive,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, now, u.CreatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("INSERT INTO users (name,email,password_hash,phone,role,status,wallet_balance) VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id, created_at, updated_at").
		WithArgs("Asha", "asha@example.com", "hash", nil, domain.RoleDriver, domain.UserStatusActive, 0.0).
		WillReturnError(&pq.Error{Code: pqUniqueViolation})

	_, err := repo.Create(context.Background(), &domain.User{
		Name:         "Asha",
		Email:        "asha@example.com",
		PasswordHash: "hash",
		Role:         domain.RoleDriver,
		Status:       domain.UserStatusActive,
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateWalletBalance(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("UPDATE users SET wallet_balance = $1, updated_at = NOW() WHERE id = $2").
		WithArgs(175.5, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateWalletBalance(context.Background(), 42, 175.5)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("UPDATE users SET status = $1, updated_at = NOW() WHERE id = $2").
		WithArgs(domain.UserStatusSuspended, int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 99, domain.UserStatusSuspended)
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertWalletTransaction(t *testing.T) {
	repo, mock := newMock(t)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO wallet_transactions (user_id,kind,amount,description) VALUES ($1,$2,$3,$4) RETURNING id, created_at").
		WithArgs(int64(42), domain.TransactionCredit, 100.0, "Funds added to wallet").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))

	txn := &domain.WalletTransaction{
		Kind:        domain.TransactionCredit,
		Amount:      100,
		Description: "Funds added to wallet",
	}
	err := repo.InsertWalletTransaction(context.Background(), 42, txn)
	require.NoError(t, err)

	assert.Equal(t, int64(7), txn.ID)
	assert.Equal(t, int64(42), txn.UserID)
	assert.Equal(t, now, txn.CreatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("DELETE FROM users WHERE id = $1").
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), 42)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_Filters(t *testing.T) {
	repo, mock := newMock(t)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT id, name, email, password_hash, phone, role, status, profile_image, wallet_balance, created_at, updated_at FROM users WHERE role = $1 AND status = $2 ORDER BY created_at DESC").
		WithArgs("provider", "active").
		WillReturnRows(sqlmock.NewRows(userRows).
			AddRow(int64(2), "Lot Owner", "owner@example.com", "hash", nil, "provider", "active", nil, 0.0, now, now))

	users, err := repo.List(context.Background(), domain.UserListFilter{
		Role:   ptr.Ptr(domain.RoleProvider),
		Status: ptr.Ptr(domain.UserStatusActive),
	})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, domain.RoleProvider, users[0].Role)

	assert.NoError(t, mock.ExpectationsWereMet())
}
