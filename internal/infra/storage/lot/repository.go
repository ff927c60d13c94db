package lot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
	"github.com/m04kA/ParkEase-Backend/pkg/dbmetrics"
	"github.com/m04kA/ParkEase-Backend/pkg/psqlbuilder"
)

var lotColumns = []string{
	"id",
	"provider_id",
	"name",
	"address",
	"latitude",
	"longitude",
	"hourly_rate",
	"currency",
	"total_slots",
	"available_slots",
	"occupied_slots",
	"status",
	"vehicle_types",
	"amenities",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с парковками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория парковок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую парковку
func (r *Repository) Create(ctx context.Context, l *domain.ParkingLot) (*domain.ParkingLot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("parking_lots").
		Columns(
			"provider_id",
			"name",
			"address",
			"latitude",
			"longitude",
			"hourly_rate",
			"currency",
			"total_slots",
			"available_slots",
			"occupied_slots",
			"status",
			"vehicle_types",
			"amenities",
		).
		Values(
			l.ProviderID,
			l.Name,
			l.Address,
			l.Location.Latitude,
			l.Location.Longitude,
			l.HourlyRate,
			l.Currency,
			l.Slots.Total,
			l.Slots.Available,
			l.Slots.Occupied,
			l.Status,
			pq.Array(l.VehicleTypes),
			pq.Array(l.Amenities),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&l.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	l.CreatedAt = createdAt.Time
	l.UpdatedAt = updatedAt.Time

	return l, nil
}

// GetByID получает парковку по ID.
// Внутри транзакции строка блокируется (FOR UPDATE): счетчики слотов меняются
// только под блокировкой, чтобы исключить lost update.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ParkingLot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(lotColumns...).
		From("parking_lots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	l, err := scanLot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrLotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan lot: %v", ErrScanRow, err)
	}

	return l, nil
}

// List получает парковки с опциональным фильтром по статусу.
// Гео-фильтрация выполняется на уровне сервиса (haversine по загруженным строкам).
func (r *Repository) List(ctx context.Context, status *domain.LotStatus) ([]*domain.ParkingLot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(lotColumns...).
		From("parking_lots").
		OrderBy("created_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
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

	return scanLots(rows)
}

// GetByProviderID получает парковки провайдера
func (r *Repository) GetByProviderID(ctx context.Context, providerID int64) ([]*domain.ParkingLot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(lotColumns...).
		From("parking_lots").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanLots(rows)
}

// Update обновляет атрибуты парковки (кроме владельца)
func (r *Repository) Update(ctx context.Context, l *domain.ParkingLot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parking_lots").
		Set("name", l.Name).
		Set("address", l.Address).
		Set("latitude", l.Location.Latitude).
		Set("longitude", l.Location.Longitude).
		Set("hourly_rate", l.HourlyRate).
		Set("currency", l.Currency).
		Set("total_slots", l.Slots.Total).
		Set("available_slots", l.Slots.Available).
		Set("occupied_slots", l.Slots.Occupied).
		Set("status", l.Status).
		Set("vehicle_types", pq.Array(l.VehicleTypes)).
		Set("amenities", pq.Array(l.Amenities)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": l.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Update", query, args)
}

// UpdateSlots сохраняет счетчики слотов и производный статус парковки
func (r *Repository) UpdateSlots(ctx context.Context, id int64, slots domain.SlotCounters, status domain.LotStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parking_lots").
		Set("total_slots", slots.Total).
		Set("available_slots", slots.Available).
		Set("occupied_slots", slots.Occupied).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSlots - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "UpdateSlots", query, args)
}

// Delete удаляет парковку; станции зарядки удаляются каскадно на уровне БД
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("parking_lots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Delete", query, args)
}

// DeleteByProviderID удаляет все парковки провайдера (каскад при удалении аккаунта)
func (r *Repository) DeleteByProviderID(ctx context.Context, providerID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("parking_lots").
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByProviderID - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByProviderID - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// CountAll возвращает общее число парковок
func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").From("parking_lots").ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountAll - build select query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: CountAll - scan total: %v", ErrScanRow, err)
	}

	return total, nil
}

// CountByProviderID возвращает число парковок провайдера
func (r *Repository) CountByProviderID(ctx context.Context, providerID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("parking_lots").
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByProviderID - build select query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: CountByProviderID - scan total: %v", ErrScanRow, err)
	}

	return total, nil
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
		return ErrLotNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLot(row rowScanner) (*domain.ParkingLot, error) {
	var l domain.ParkingLot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&l.ID,
		&l.ProviderID,
		&l.Name,
		&l.Address,
		&l.Location.Latitude,
		&l.Location.Longitude,
		&l.HourlyRate,
		&l.Currency,
		&l.Slots.Total,
		&l.Slots.Available,
		&l.Slots.Occupied,
		&l.Status,
		pq.Array(&l.VehicleTypes),
		pq.Array(&l.Amenities),
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.CreatedAt = createdAt.Time
	l.UpdatedAt = updatedAt.Time

	return &l, nil
}

func scanLots(rows *sql.Rows) ([]*domain.ParkingLot, error) {
	lots := make([]*domain.ParkingLot, 0)

	for rows.Next() {
		l, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanLots - scan row: %v", ErrScanRow, err)
		}
		lots = append(lots, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanLots - rows error: %v", ErrScanRow, err)
	}

	return lots, nil
}
