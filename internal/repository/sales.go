package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DenisMurerwa/EBU/internal/model"
)

// ErrSalesRecordNotFound is returned when no ledger row exists for a
// (user, month) key.
var ErrSalesRecordNotFound = errors.New("sales record not found")

// SalesRepository handles monthly sales ledger persistence.
type SalesRepository struct {
	pool *pgxpool.Pool
}

// NewSalesRepository creates a new SalesRepository instance.
func NewSalesRepository(pool *pgxpool.Pool) *SalesRepository {
	return &SalesRepository{pool: pool}
}

// Accumulate adds a delta to the connections total for a (user, month) key,
// inserting the row if it does not exist yet. The accumulation happens
// server-side in a single statement, so concurrent submissions for the same
// key cannot lose updates.
func (r *SalesRepository) Accumulate(ctx context.Context, userID uuid.UUID, monthYear string, delta int64) (*model.SalesRecord, error) {
	const query = `
		INSERT INTO sales (user_id, month_year, connections, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, month_year)
		DO UPDATE SET connections = sales.connections + EXCLUDED.connections, updated_at = NOW()
		RETURNING user_id, month_year, connections, updated_at
	`

	var rec model.SalesRecord
	err := r.pool.QueryRow(ctx, query, userID, monthYear, delta).Scan(
		&rec.UserID,
		&rec.MonthYear,
		&rec.Connections,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to accumulate sales: %w", err)
	}

	return &rec, nil
}

// Get retrieves the ledger row for a (user, month) key.
// Returns ErrSalesRecordNotFound if no deltas were ever recorded for it.
func (r *SalesRepository) Get(ctx context.Context, userID uuid.UUID, monthYear string) (*model.SalesRecord, error) {
	const query = `
		SELECT user_id, month_year, connections, updated_at
		FROM sales
		WHERE user_id = $1 AND month_year = $2
	`

	var rec model.SalesRecord
	err := r.pool.QueryRow(ctx, query, userID, monthYear).Scan(
		&rec.UserID,
		&rec.MonthYear,
		&rec.Connections,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSalesRecordNotFound
		}
		return nil, fmt.Errorf("failed to get sales record: %w", err)
	}

	return &rec, nil
}

// MonthStandings retrieves all ledger rows for a month joined to their
// users, ordered by connections descending with user id as the tie-break.
// The inner join drops rows whose user no longer resolves. An empty month
// yields an empty result, not an error.
func (r *SalesRepository) MonthStandings(ctx context.Context, monthYear string) ([]*model.Standing, error) {
	const query = `
		SELECT s.user_id, u.name, s.connections
		FROM sales s
		JOIN users u ON s.user_id = u.id
		WHERE s.month_year = $1
		ORDER BY s.connections DESC, s.user_id ASC
	`

	rows, err := r.pool.Query(ctx, query, monthYear)
	if err != nil {
		return nil, fmt.Errorf("failed to get month standings: %w", err)
	}
	defer rows.Close()

	var standings []*model.Standing
	for rows.Next() {
		var st model.Standing
		err := rows.Scan(
			&st.UserID,
			&st.Name,
			&st.Connections,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan standing: %w", err)
		}
		standings = append(standings, &st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating standings: %w", err)
	}

	return standings, nil
}
