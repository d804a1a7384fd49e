// Package metrics defines the Prometheus collectors for the inventory
// service. All collectors register themselves on the default registry and
// are exported via the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Mutation Metrics
var (
	// MutationsTotal tracks inventory mutations by entity and operation
	MutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_mutations_total",
			Help: "Total inventory mutations by entity (vehicle/place/item) and operation",
		},
		[]string{"entity", "operation"},
	)

	// MovesTotal tracks reorder requests by entity and whether a swap happened
	MovesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_moves_total",
			Help: "Total reorder requests by entity and direction",
		},
		[]string{"entity", "direction"},
	)
)

// Photo Metrics
var (
	// PhotoUploadsTotal tracks photo uploads by result (ok/rejected/error)
	PhotoUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_uploads_total",
			Help: "Total photo uploads by result (ok/rejected/error)",
		},
		[]string{"result"},
	)
)

// Import Metrics
var (
	// ImportsTotal tracks CSV imports by result (ok/bad_header/unreadable)
	ImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "csv_imports_total",
			Help: "Total CSV imports by result (ok/bad_header/unreadable)",
		},
		[]string{"result"},
	)

	// ImportedItemsTotal tracks the number of items created by imports
	ImportedItemsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "csv_imported_items_total",
			Help: "Total items created by CSV imports",
		},
	)
)

// Search Metrics
var (
	// SearchQueriesTotal tracks search page queries
	SearchQueriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "search_queries_total",
			Help: "Total non-empty search queries",
		},
	)
)

// Auth Metrics
var (
	// LoginAttemptsTotal tracks login attempts by result (ok/rejected)
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Total login attempts by result (ok/rejected)",
		},
		[]string{"result"},
	)
)

// HTTP Error Metrics
// Note: http_errors_total{type} is provided by internal/errors package
