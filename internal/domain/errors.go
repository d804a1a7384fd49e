package domain

import "errors"

var (
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrPlaceNotFound   = errors.New("place not found")
	ErrItemNotFound    = errors.New("item not found")
)

// Direction is the reorder direction accepted by the move endpoints.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// ParseDirection validates a raw direction value from a request body.
func ParseDirection(raw string) (Direction, error) {
	switch Direction(raw) {
	case DirectionUp, DirectionDown:
		return Direction(raw), nil
	default:
		return "", errors.New("direction must be 'up' or 'down'")
	}
}
