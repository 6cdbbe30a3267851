package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DenisMurerwa/EBU/internal/model"
)

// ErrSessionNotFound is returned when a session token does not resolve.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository handles server-side login sessions. The token is an
// opaque uuid string; the mobile client stores it locally and presents it
// on every request.
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository instance.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Create opens a new session for a user with the given time-to-live.
func (r *SessionRepository) Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (*model.Session, error) {
	const query = `
		INSERT INTO sessions (token, user_id, created_at, expires_at)
		VALUES ($1, $2, NOW(), $3)
		RETURNING token, user_id, created_at, expires_at
	`

	token := uuid.NewString()
	expiresAt := time.Now().Add(ttl)

	var session model.Session
	err := r.pool.QueryRow(ctx, query, token, userID, expiresAt).Scan(
		&session.Token,
		&session.UserID,
		&session.CreatedAt,
		&session.ExpiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &session, nil
}

// Get retrieves a session by token.
// Returns ErrSessionNotFound if the token does not resolve.
func (r *SessionRepository) Get(ctx context.Context, token string) (*model.Session, error) {
	const query = `
		SELECT token, user_id, created_at, expires_at
		FROM sessions
		WHERE token = $1
	`

	var session model.Session
	err := r.pool.QueryRow(ctx, query, token).Scan(
		&session.Token,
		&session.UserID,
		&session.CreatedAt,
		&session.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &session, nil
}

// Delete removes a session by token. Deleting an unknown token is not an
// error; logout is idempotent.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	const query = `DELETE FROM sessions WHERE token = $1`

	if _, err := r.pool.Exec(ctx, query, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// DeleteExpired removes all sessions past their expiry. Returns the number
// of sessions removed.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM sessions WHERE expires_at < NOW()`

	tag, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	return tag.RowsAffected(), nil
}
