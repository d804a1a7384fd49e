package domain

import "context"

type Item struct {
	ID        int64
	PlaceID   int64
	Name      string
	Quantity  int
	Note      string
	Sort      int
	PhotoPath string // relative URL of the stored photo, empty if none
}

// SearchEntry is one search-result row with its full location context.
type SearchEntry struct {
	Item        Item
	PlaceID     int64
	PlaceName   string
	VehicleID   int64
	VehicleName string
}

type ItemRepository interface {
	Get(ctx context.Context, itemID int64) (*Item, error)
	// Add appends an item to the end of the place's sort order.
	Add(ctx context.Context, placeID int64, name string, quantity int, note string) (*Item, error)
	// Update edits name/quantity/note and may re-home the item to another place.
	Update(ctx context.Context, itemID int64, name string, quantity int, note string, placeID int64) error
	// Move swaps the item with its neighbor in sort order within the same
	// place. Moving past either end is a no-op, not an error.
	Move(ctx context.Context, itemID int64, dir Direction) error
	Delete(ctx context.Context, itemID int64) error
	SetPhotoPath(ctx context.Context, itemID int64, photoPath string) error
	// ListEntries returns every item joined with its place and vehicle,
	// ordered by vehicle, place, item name. Backs the search page.
	ListEntries(ctx context.Context) ([]*SearchEntry, error)
}
