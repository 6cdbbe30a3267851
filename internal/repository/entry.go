package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DenisMurerwa/EBU/internal/model"
)

// EntryRepository handles the append-only audit trail of submitted sales
// deltas. The ledger total for a (user, month) equals the sum of its
// entries.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository instance.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// Create appends one submission entry.
func (r *EntryRepository) Create(ctx context.Context, userID, adminID uuid.UUID, monthYear string, delta int64) (*model.SalesEntry, error) {
	const query = `
		INSERT INTO sales_entries (user_id, admin_id, month_year, delta, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, user_id, admin_id, month_year, delta, created_at
	`

	var entry model.SalesEntry
	err := r.pool.QueryRow(ctx, query, userID, adminID, monthYear, delta).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.AdminID,
		&entry.MonthYear,
		&entry.Delta,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sales entry: %w", err)
	}

	return &entry, nil
}

// ListByMonth retrieves submission entries for a month, newest first.
func (r *EntryRepository) ListByMonth(ctx context.Context, monthYear string, limit int) ([]*model.SalesEntry, error) {
	const query = `
		SELECT id, user_id, admin_id, month_year, delta, created_at
		FROM sales_entries
		WHERE month_year = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, monthYear, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales entries: %w", err)
	}
	defer rows.Close()

	var entries []*model.SalesEntry
	for rows.Next() {
		var entry model.SalesEntry
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.AdminID,
			&entry.MonthYear,
			&entry.Delta,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sales entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales entries: %w", err)
	}

	return entries, nil
}

// ListByUser retrieves submission entries targeting a user, newest first.
func (r *EntryRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*model.SalesEntry, error) {
	const query = `
		SELECT id, user_id, admin_id, month_year, delta, created_at
		FROM sales_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales entries: %w", err)
	}
	defer rows.Close()

	var entries []*model.SalesEntry
	for rows.Next() {
		var entry model.SalesEntry
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.AdminID,
			&entry.MonthYear,
			&entry.Delta,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sales entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales entries: %w", err)
	}

	return entries, nil
}
