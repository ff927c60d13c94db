package evstation

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

const pqUniqueViolation = "23505"

var stationColumns = []string{
	"station_id",
	"lot_id",
	"status",
	"vehicle_type",
	"current_vehicle_plate",
	"time_remaining_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со станциями зарядки электромобилей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория станций зарядки
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Insert добавляет станцию зарядки к парковке
func (r *Repository) Insert(ctx context.Context, s *domain.EVStation) (*domain.EVStation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("ev_stations").
		Columns("station_id", "lot_id", "status", "vehicle_type").
		Values(s.StationID, s.LotID, s.Status, s.VehicleType).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrStationExists
		}
		return nil, fmt.Errorf("%w: Insert - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// Get получает станцию по ID парковки и ID станции
func (r *Repository) Get(ctx context.Context, lotID int64, stationID string) (*domain.EVStation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(stationColumns...).
		From("ev_stations").
		Where(squirrel.Eq{"lot_id": lotID, "station_id": stationID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanStation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrStationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan station: %v", ErrScanRow, err)
	}

	return s, nil
}

// ListByLotID получает станции парковки
func (r *Repository) ListByLotID(ctx context.Context, lotID int64) ([]*domain.EVStation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(stationColumns...).
		From("ev_stations").
		Where(squirrel.Eq{"lot_id": lotID}).
		OrderBy("station_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByLotID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByLotID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanStations(rows)
}

// ListAll получает все станции зарядки, сгруппированные по парковкам на уровне сервиса
func (r *Repository) ListAll(ctx context.Context) ([]*domain.EVStation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(stationColumns...).
		From("ev_stations").
		OrderBy("lot_id ASC, station_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanStations(rows)
}

// Update обновляет переданные (не-nil) поля станции
func (r *Repository) Update(ctx context.Context, lotID int64, stationID string, status *domain.EVStationStatus, currentVehiclePlate *string, timeRemainingMinutes *int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("ev_stations").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"lot_id": lotID, "station_id": stationID})

	if status != nil {
		updateBuilder = updateBuilder.Set("status", *status)
	}
	if currentVehiclePlate != nil {
		updateBuilder = updateBuilder.Set("current_vehicle_plate", *currentVehiclePlate)
	}
	if timeRemainingMinutes != nil {
		updateBuilder = updateBuilder.Set("time_remaining_minutes", *timeRemainingMinutes)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Update", query, args)
}

// Delete удаляет станцию зарядки
func (r *Repository) Delete(ctx context.Context, lotID int64, stationID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("ev_stations").
		Where(squirrel.Eq{"lot_id": lotID, "station_id": stationID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Delete", query, args)
}

// CountByProviderID возвращает число станций на всех парковках провайдера
func (r *Repository) CountByProviderID(ctx context.Context, providerID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("ev_stations s").
		Join("parking_lots l ON l.id = s.lot_id").
		Where(squirrel.Eq{"l.provider_id": providerID}).
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
		return ErrStationNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStation(row rowScanner) (*domain.EVStation, error) {
	var s domain.EVStation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.StationID,
		&s.LotID,
		&s.Status,
		&s.VehicleType,
		&s.CurrentVehiclePlate,
		&s.TimeRemainingMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

func scanStations(rows *sql.Rows) ([]*domain.EVStation, error) {
	stations := make([]*domain.EVStation, 0)

	for rows.Next() {
		s, err := scanStation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanStations - scan row: %v", ErrScanRow, err)
		}
		stations = append(stations, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanStations - rows error: %v", ErrScanRow, err)
	}

	return stations, nil
}
