package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/flr45/Pakkeliste-SBR/internal/domain"
)

// PlaceRepo implements domain.PlaceRepository backed by SQLite.
type PlaceRepo struct {
	db *sql.DB
}

// NewPlaceRepo creates a PlaceRepo from the shared DB connection.
func NewPlaceRepo(db *DB) *PlaceRepo {
	return &PlaceRepo{db: db.DB}
}

func (r *PlaceRepo) Get(ctx context.Context, placeID int64) (*domain.Place, error) {
	var p domain.Place
	err := r.db.QueryRowContext(ctx,
		`SELECT id, vehicle_id, name, sort FROM places WHERE id = ?`, placeID,
	).Scan(&p.ID, &p.VehicleID, &p.Name, &p.Sort)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPlaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get place: %w", err)
	}
	return &p, nil
}

func (r *PlaceRepo) Add(ctx context.Context, vehicleID int64, name string) (*domain.Place, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO places (name, vehicle_id, sort)
		VALUES (?, ?, COALESCE((SELECT MAX(sort) FROM places WHERE vehicle_id = ?), 0) + 1)
	`, name, vehicleID, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to add place: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read place id: %w", err)
	}
	return &domain.Place{ID: id, VehicleID: vehicleID, Name: name}, nil
}

func (r *PlaceRepo) Rename(ctx context.Context, placeID int64, name string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE places SET name = ? WHERE id = ?`, name, placeID)
	if err != nil {
		return fmt.Errorf("failed to rename place: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrPlaceNotFound
	}
	return nil
}

func (r *PlaceRepo) Move(ctx context.Context, placeID int64, dir domain.Direction) error {
	return moveRow(ctx, r.db, "places", "vehicle_id", placeID, dir, domain.ErrPlaceNotFound)
}

func (r *PlaceRepo) DeleteByVehicle(ctx context.Context, vehicleID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM places WHERE vehicle_id = ?`, vehicleID)
	if err != nil {
		return fmt.Errorf("failed to delete places: %w", err)
	}
	return nil
}
