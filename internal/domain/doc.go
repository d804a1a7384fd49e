// Package domain defines the core inventory types and repository contracts.
//
// Concept-oriented files (vehicle.go, place.go, item.go, errors.go) with shared
// types and cross-cutting interfaces. No implementation code - just contracts.
// Keeping interfaces here prevents circular imports between server and database.
package domain
