package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/flr45/Pakkeliste-SBR/internal/domain"
)

// VehicleRepo implements domain.VehicleRepository backed by SQLite.
type VehicleRepo struct {
	db *sql.DB
}

// NewVehicleRepo creates a VehicleRepo from the shared DB connection.
func NewVehicleRepo(db *DB) *VehicleRepo {
	return &VehicleRepo{db: db.DB}
}

func (r *VehicleRepo) List(ctx context.Context) ([]*domain.VehicleSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT v.id, v.name, v.sort, v.description,
			(SELECT COUNT(*) FROM places p WHERE p.vehicle_id = v.id),
			(SELECT COUNT(*) FROM items i JOIN places p ON i.place_id = p.id WHERE p.vehicle_id = v.id)
		FROM vehicles v
		ORDER BY v.sort, v.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*domain.VehicleSummary
	for rows.Next() {
		var v domain.VehicleSummary
		if err := rows.Scan(&v.ID, &v.Name, &v.Sort, &v.Description, &v.PlaceCount, &v.ItemCount); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, &v)
	}
	return vehicles, rows.Err()
}

func (r *VehicleRepo) ListWithPlaces(ctx context.Context) ([]*domain.VehicleSummary, error) {
	vehicles, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*domain.VehicleSummary, len(vehicles))
	for _, v := range vehicles {
		byID[v.ID] = v
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.vehicle_id, p.name, p.sort,
			(SELECT COUNT(*) FROM items i WHERE i.place_id = p.id)
		FROM places p
		ORDER BY p.sort, p.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Place
		if err := rows.Scan(&p.ID, &p.VehicleID, &p.Name, &p.Sort, &p.ItemCount); err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		if v, ok := byID[p.VehicleID]; ok {
			v.Places = append(v.Places, &p)
		}
	}
	return vehicles, rows.Err()
}

func (r *VehicleRepo) GetDetail(ctx context.Context, vehicleID int64) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, sort, description FROM vehicles WHERE id = ?`, vehicleID,
	).Scan(&v.ID, &v.Name, &v.Sort, &v.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	places, err := r.loadPlaces(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	v.Places = places
	return &v, nil
}

func (r *VehicleRepo) loadPlaces(ctx context.Context, vehicleID int64) ([]*domain.Place, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, vehicle_id, name, sort FROM places WHERE vehicle_id = ? ORDER BY sort, id`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load places: %w", err)
	}
	defer rows.Close()

	var places []*domain.Place
	byID := make(map[int64]*domain.Place)
	for rows.Next() {
		var p domain.Place
		if err := rows.Scan(&p.ID, &p.VehicleID, &p.Name, &p.Sort); err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		p.Items = []*domain.Item{}
		places = append(places, &p)
		byID[p.ID] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := r.db.QueryContext(ctx, `
		SELECT i.id, i.place_id, i.name, i.quantity, i.note, i.sort, i.photo_path
		FROM items i JOIN places p ON i.place_id = p.id
		WHERE p.vehicle_id = ?
		ORDER BY i.sort, i.id
	`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it domain.Item
		if err := itemRows.Scan(&it.ID, &it.PlaceID, &it.Name, &it.Quantity, &it.Note, &it.Sort, &it.PhotoPath); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		if p, ok := byID[it.PlaceID]; ok {
			p.Items = append(p.Items, &it)
		}
	}
	return places, itemRows.Err()
}

func (r *VehicleRepo) Create(ctx context.Context, name string) (*domain.Vehicle, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO vehicles (name, sort)
		VALUES (?, COALESCE((SELECT MAX(sort) FROM vehicles), 0) + 1)
	`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read vehicle id: %w", err)
	}
	return &domain.Vehicle{ID: id, Name: name}, nil
}

func (r *VehicleRepo) GetByName(ctx context.Context, name string) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, sort, description FROM vehicles WHERE LOWER(name) = LOWER(?)`, name,
	).Scan(&v.ID, &v.Name, &v.Sort, &v.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle by name: %w", err)
	}
	return &v, nil
}

func (r *VehicleRepo) Delete(ctx context.Context, vehicleID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = ?`, vehicleID)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	return nil
}
