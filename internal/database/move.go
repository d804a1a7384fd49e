package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/flr45/Pakkeliste-SBR/internal/domain"
)

// moveRow swaps the sort value of one row with its neighbor in sort order,
// scoped to rows sharing the same parent. Neighbors are found by ordering,
// not by sort±1, so the swap still works when deletions have left gaps.
// A move past either end of the list is a silent no-op.
func moveRow(ctx context.Context, db *sql.DB, table, parentColumn string, id int64, dir domain.Direction, notFound error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var parentID int64
	var sort int
	query := fmt.Sprintf(`SELECT %s, sort FROM %s WHERE id = ?`, parentColumn, table)
	err = tx.QueryRowContext(ctx, query, id).Scan(&parentID, &sort)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	if err != nil {
		return fmt.Errorf("failed to load row: %w", err)
	}

	var neighborQuery string
	if dir == domain.DirectionUp {
		neighborQuery = fmt.Sprintf(
			`SELECT id, sort FROM %s WHERE %s = ? AND (sort < ? OR (sort = ? AND id < ?)) ORDER BY sort DESC, id DESC LIMIT 1`,
			table, parentColumn)
	} else {
		neighborQuery = fmt.Sprintf(
			`SELECT id, sort FROM %s WHERE %s = ? AND (sort > ? OR (sort = ? AND id > ?)) ORDER BY sort ASC, id ASC LIMIT 1`,
			table, parentColumn)
	}

	var neighborID int64
	var neighborSort int
	err = tx.QueryRowContext(ctx, neighborQuery, parentID, sort, sort, id).Scan(&neighborID, &neighborSort)
	if errors.Is(err, sql.ErrNoRows) {
		// Already first or last.
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to find neighbor: %w", err)
	}

	// Swap sort values. Ties (equal sorts) cannot be swapped, so the moved
	// row is nudged past its neighbor instead.
	newSelf, newNeighbor := neighborSort, sort
	if neighborSort == sort {
		if dir == domain.DirectionUp {
			newSelf = sort - 1
		} else {
			newSelf = sort + 1
		}
		newNeighbor = neighborSort
	}

	update := fmt.Sprintf(`UPDATE %s SET sort = ? WHERE id = ?`, table)
	if _, err := tx.ExecContext(ctx, update, newSelf, id); err != nil {
		return fmt.Errorf("failed to update row sort: %w", err)
	}
	if _, err := tx.ExecContext(ctx, update, newNeighbor, neighborID); err != nil {
		return fmt.Errorf("failed to update neighbor sort: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit move: %w", err)
	}
	return nil
}
