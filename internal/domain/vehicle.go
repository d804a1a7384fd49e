package domain

import "context"

type Vehicle struct {
	ID          int64
	Name        string
	Sort        int
	Description string

	// Places is populated only by GetDetail; list queries leave it nil.
	Places []*Place
}

// VehicleSummary is a list-page row: a vehicle plus aggregate counts.
type VehicleSummary struct {
	Vehicle
	PlaceCount int
	ItemCount  int
}

type VehicleRepository interface {
	List(ctx context.Context) ([]*VehicleSummary, error)
	// ListWithPlaces loads every vehicle with its places and per-place item
	// counts for the front page. The items themselves are not loaded.
	ListWithPlaces(ctx context.Context) ([]*VehicleSummary, error)
	// GetDetail loads a vehicle with its places and their items, both in sort order.
	GetDetail(ctx context.Context, vehicleID int64) (*Vehicle, error)
	Create(ctx context.Context, name string) (*Vehicle, error)
	// GetByName does a case-insensitive lookup, used by the CSV importer.
	GetByName(ctx context.Context, name string) (*Vehicle, error)
	Delete(ctx context.Context, vehicleID int64) error
}
