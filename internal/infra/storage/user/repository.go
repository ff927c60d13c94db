package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
	"github.com/m04kA/ParkEase-Backend/pkg/dbmetrics"
	"github.com/m04kA/ParkEase-Backend/pkg/psqlbuilder"
)

// pqUniqueViolation код ошибки PostgreSQL для нарушения уникальности
const pqUniqueViolation = "23505"

var userColumns = []string{
	"id",
	"name",
	"email",
	"password_hash",
	"phone",
	"role",
	"status",
	"profile_image",
	"wallet_balance",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с пользователями и их кошельками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового пользователя
func (r *Repository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("users").
		Columns("name", "email", "password_hash", "phone", "role", "status", "wallet_balance").
		Values(u.Name, u.Email, u.PasswordHash, u.Phone, u.Role, u.Status, u.WalletBalance).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&u.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	u.CreatedAt = createdAt.Time
	u.UpdatedAt = updatedAt.Time

	return u, nil
}

// GetByID получает пользователя по ID.
// Внутри транзакции строка блокируется (FOR UPDATE): баланс кошелька меняется
// только под блокировкой.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	selectBuilder := psqlbuilder.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.getOne(ctx, selectBuilder, "GetByID")
}

// GetByEmail получает пользователя по email (логин)
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	selectBuilder := psqlbuilder.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"email": email})

	return r.getOne(ctx, selectBuilder, "GetByEmail")
}

// List получает пользователей с опциональными фильтрами по роли и статусу
func (r *Repository) List(ctx context.Context, filter domain.UserListFilter) ([]*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(userColumns...).
		From("users").
		OrderBy("created_at DESC")

	if filter.Role != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"role": *filter.Role})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// UpdateProfile обновляет изменяемые поля профиля (переданные не-nil значения)
func (r *Repository) UpdateProfile(ctx context.Context, id int64, name *string, phone *string, profileImage *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("users").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if name != nil {
		updateBuilder = updateBuilder.Set("name", *name)
	}
	if phone != nil {
		updateBuilder = updateBuilder.Set("phone", *phone)
	}
	if profileImage != nil {
		updateBuilder = updateBuilder.Set("profile_image", *profileImage)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateProfile - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "UpdateProfile", query, args)
}

// UpdateStatus обновляет статус аккаунта (suspend/activate)
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.UserStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "UpdateStatus", query, args)
}

// UpdateWalletBalance сохраняет новый баланс кошелька
func (r *Repository) UpdateWalletBalance(ctx context.Context, id int64, balance float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("wallet_balance", balance).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateWalletBalance - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "UpdateWalletBalance", query, args)
}

// InsertWalletTransaction добавляет запись в журнал операций кошелька.
// Журнал append-only: записи никогда не обновляются и не удаляются.
func (r *Repository) InsertWalletTransaction(ctx context.Context, userID int64, txn *domain.WalletTransaction) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("wallet_transactions").
		Columns("user_id", "kind", "amount", "description").
		Values(userID, txn.Kind, txn.Amount, txn.Description).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: InsertWalletTransaction - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&txn.ID, &createdAt); err != nil {
		return fmt.Errorf("%w: InsertWalletTransaction - execute insert: %v", ErrExecQuery, err)
	}

	txn.UserID = userID
	txn.CreatedAt = createdAt.Time

	return nil
}

// GetWalletTransactions получает журнал операций кошелька, сначала новые
func (r *Repository) GetWalletTransactions(ctx context.Context, userID int64) ([]domain.WalletTransaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "user_id", "kind", "amount", "description", "created_at").
		From("wallet_transactions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC, id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWalletTransactions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWalletTransactions - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	transactions := make([]domain.WalletTransaction, 0)
	for rows.Next() {
		var txn domain.WalletTransaction
		var createdAt sql.NullTime
		if err := rows.Scan(&txn.ID, &txn.UserID, &txn.Kind, &txn.Amount, &txn.Description, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: GetWalletTransactions - scan row: %v", ErrScanRow, err)
		}
		txn.CreatedAt = createdAt.Time
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWalletTransactions - rows error: %v", ErrScanRow, err)
	}

	return transactions, nil
}

// Delete удаляет пользователя
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Delete", query, args)
}

// CountAll возвращает общее число пользователей
func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, nil)
}

// CountByRole возвращает число пользователей в указанной роли
func (r *Repository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	return r.count(ctx, squirrel.Eq{"role": role})
}

func (r *Repository) count(ctx context.Context, where interface{}) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").From("users")
	if where != nil {
		selectBuilder = selectBuilder.Where(where)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: count - build select query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: count - scan total: %v", ErrScanRow, err)
	}

	return total, nil
}

func (r *Repository) getOne(ctx context.Context, selectBuilder squirrel.SelectBuilder, op string) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	u, err := scanUser(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan user: %v", ErrScanRow, op, err)
	}

	return u, nil
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Phone,
		&u.Role,
		&u.Status,
		&u.ProfileImage,
		&u.WalletBalance,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.CreatedAt = createdAt.Time
	u.UpdatedAt = updatedAt.Time

	return &u, nil
}

func scanUsers(rows *sql.Rows) ([]*domain.User, error) {
	users := make([]*domain.User, 0)

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanUsers - scan row: %v", ErrScanRow, err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanUsers - rows error: %v", ErrScanRow, err)
	}

	return users, nil
}
