package user

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
	"github.com/m04kA/ParkEase-Backend/pkg/dbmetrics"
	"github.com/m04kA/ParkEase-Backend/pkg/psqlbuilder"
)

// InsertSavedPlace добавляет сохранённое место пользователя
func (r *Repository) InsertSavedPlace(ctx context.Context, p *domain.SavedPlace) (*domain.SavedPlace, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("saved_places").
		Columns("user_id", "name", "address", "latitude", "longitude").
		Values(p.UserID, p.Name, p.Address, p.Latitude, p.Longitude).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: InsertSavedPlace - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID); err != nil {
		return nil, fmt.Errorf("%w: InsertSavedPlace - execute insert: %v", ErrExecQuery, err)
	}

	return p, nil
}

// ListSavedPlaces получает сохранённые места пользователя
func (r *Repository) ListSavedPlaces(ctx context.Context, userID int64) ([]domain.SavedPlace, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "user_id", "name", "address", "latitude", "longitude").
		From("saved_places").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListSavedPlaces - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSavedPlaces - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	places := make([]domain.SavedPlace, 0)
	for rows.Next() {
		var p domain.SavedPlace
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Address, &p.Latitude, &p.Longitude); err != nil {
			return nil, fmt.Errorf("%w: ListSavedPlaces - scan row: %v", ErrScanRow, err)
		}
		places = append(places, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSavedPlaces - rows error: %v", ErrScanRow, err)
	}

	return places, nil
}

// DeleteSavedPlace удаляет сохранённое место пользователя
func (r *Repository) DeleteSavedPlace(ctx context.Context, userID, placeID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("saved_places").
		Where(squirrel.Eq{"id": placeID, "user_id": userID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteSavedPlace - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteSavedPlace - execute query: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteSavedPlace - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPlaceNotFound
	}

	return nil
}
