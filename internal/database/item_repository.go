package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/flr45/Pakkeliste-SBR/internal/domain"
)

// itemColumns must match the Scan order in scanItem.
const itemColumns = `id, place_id, name, quantity, note, sort, photo_path`

// ItemRepo implements domain.ItemRepository backed by SQLite.
type ItemRepo struct {
	db *sql.DB
}

// NewItemRepo creates an ItemRepo from the shared DB connection.
func NewItemRepo(db *DB) *ItemRepo {
	return &ItemRepo{db: db.DB}
}

func scanItem(row *sql.Row) (*domain.Item, error) {
	var it domain.Item
	err := row.Scan(&it.ID, &it.PlaceID, &it.Name, &it.Quantity, &it.Note, &it.Sort, &it.PhotoPath)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan item: %w", err)
	}
	return &it, nil
}

func (r *ItemRepo) Get(ctx context.Context, itemID int64) (*domain.Item, error) {
	return scanItem(r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, itemID))
}

func (r *ItemRepo) Add(ctx context.Context, placeID int64, name string, quantity int, note string) (*domain.Item, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO items (place_id, name, quantity, note, sort)
		VALUES (?, ?, ?, ?, COALESCE((SELECT MAX(sort) FROM items WHERE place_id = ?), 0) + 1)
	`, placeID, name, quantity, note, placeID)
	if err != nil {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read item id: %w", err)
	}
	return &domain.Item{ID: id, PlaceID: placeID, Name: name, Quantity: quantity, Note: note}, nil
}

func (r *ItemRepo) Update(ctx context.Context, itemID int64, name string, quantity int, note string, placeID int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE items SET name = ?, quantity = ?, note = ?, place_id = ? WHERE id = ?
	`, name, quantity, note, placeID, itemID)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepo) Move(ctx context.Context, itemID int64, dir domain.Direction) error {
	return moveRow(ctx, r.db, "items", "place_id", itemID, dir, domain.ErrItemNotFound)
}

func (r *ItemRepo) Delete(ctx context.Context, itemID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepo) SetPhotoPath(ctx context.Context, itemID int64, photoPath string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE items SET photo_path = ? WHERE id = ?`, photoPath, itemID)
	if err != nil {
		return fmt.Errorf("failed to set photo path: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepo) ListEntries(ctx context.Context) ([]*domain.SearchEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT i.id, i.place_id, i.name, i.quantity, i.note, i.sort, i.photo_path,
			p.id, p.name, v.id, v.name
		FROM items i
		JOIN places p ON i.place_id = p.id
		JOIN vehicles v ON p.vehicle_id = v.id
		ORDER BY v.name, p.name, i.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.SearchEntry
	for rows.Next() {
		var e domain.SearchEntry
		err := rows.Scan(
			&e.Item.ID, &e.Item.PlaceID, &e.Item.Name, &e.Item.Quantity, &e.Item.Note,
			&e.Item.Sort, &e.Item.PhotoPath,
			&e.PlaceID, &e.PlaceName, &e.VehicleID, &e.VehicleName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
