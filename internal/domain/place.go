package domain

import "context"

type Place struct {
	ID        int64
	VehicleID int64
	Name      string
	Sort      int

	// ItemCount is populated by list queries that don't load the items.
	ItemCount int

	// Items is populated only by detail queries; nil elsewhere.
	Items []*Item
}

type PlaceRepository interface {
	Get(ctx context.Context, placeID int64) (*Place, error)
	// Add appends a place to the end of the vehicle's sort order.
	Add(ctx context.Context, vehicleID int64, name string) (*Place, error)
	Rename(ctx context.Context, placeID int64, name string) error
	// Move swaps the place with its neighbor in sort order within the same
	// vehicle. Moving past either end is a no-op, not an error.
	Move(ctx context.Context, placeID int64, dir Direction) error
	// DeleteByVehicle removes all places (and their items) of a vehicle,
	// used when a CSV import replaces a vehicle's contents.
	DeleteByVehicle(ctx context.Context, vehicleID int64) error
}
