package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flr45/Pakkeliste-SBR/internal/domain"
)

// newTestDB opens a fresh in-memory database with the schema applied.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Connect(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.RunMigrations())
	return db
}

// seedVehicle creates a vehicle with one place holding the named items, in order.
func seedVehicle(t *testing.T, db *DB, vehicleName, placeName string, itemNames ...string) (*domain.Vehicle, *domain.Place, []*domain.Item) {
	t.Helper()
	ctx := context.Background()

	vehicles := NewVehicleRepo(db)
	places := NewPlaceRepo(db)
	items := NewItemRepo(db)

	v, err := vehicles.Create(ctx, vehicleName)
	require.NoError(t, err)

	p, err := places.Add(ctx, v.ID, placeName)
	require.NoError(t, err)

	var created []*domain.Item
	for _, name := range itemNames {
		it, err := items.Add(ctx, p.ID, name, 1, "")
		require.NoError(t, err)
		created = append(created, it)
	}
	return v, p, created
}

// itemOrder returns the item names of a place in current sort order.
func itemOrder(t *testing.T, db *DB, placeID int64) []string {
	t.Helper()

	rows, err := db.Query(`SELECT name FROM items WHERE place_id = ? ORDER BY sort, id`, placeID)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	return names
}
