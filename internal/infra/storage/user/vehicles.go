package user

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
	"github.com/m04kA/ParkEase-Backend/pkg/dbmetrics"
	"github.com/m04kA/ParkEase-Backend/pkg/psqlbuilder"
)

// InsertVehicle добавляет транспорт пользователя
func (r *Repository) InsertVehicle(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("vehicles").
		Columns("user_id", "vehicle_type", "plate_number", "model", "is_ev").
		Values(v.UserID, v.VehicleType, v.PlateNumber, v.Model, v.IsEV).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: InsertVehicle - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&v.ID); err != nil {
		return nil, fmt.Errorf("%w: InsertVehicle - execute insert: %v", ErrExecQuery, err)
	}

	return v, nil
}

// ListVehicles получает транспорт пользователя
func (r *Repository) ListVehicles(ctx context.Context, userID int64) ([]domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "user_id", "vehicle_type", "plate_number", "model", "is_ev").
		From("vehicles").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListVehicles - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListVehicles - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	vehicles := make([]domain.Vehicle, 0)
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.UserID, &v.VehicleType, &v.PlateNumber, &v.Model, &v.IsEV); err != nil {
			return nil, fmt.Errorf("%w: ListVehicles - scan row: %v", ErrScanRow, err)
		}
		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListVehicles - rows error: %v", ErrScanRow, err)
	}

	return vehicles, nil
}

// DeleteVehicle удаляет транспорт пользователя
func (r *Repository) DeleteVehicle(ctx context.Context, userID, vehicleID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("vehicles").
		Where(squirrel.Eq{"id": vehicleID, "user_id": userID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteVehicle - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteVehicle - execute query: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteVehicle - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrVehicleNotFound
	}

	return nil
}
