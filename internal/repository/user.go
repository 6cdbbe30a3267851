// Package repository provides data access layer implementations.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DenisMurerwa/EBU/internal/model"
)

// Common errors for repository operations.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrDuplicatePhone      = errors.New("phone number already registered")
	ErrDuplicateNationalID = errors.New("national id already registered")
)

const uniqueViolation = "23505"

// UserRepository handles user data persistence.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts a new user. Phone number and national id uniqueness is
// enforced by database constraints; violations surface as ErrDuplicatePhone
// or ErrDuplicateNationalID so registration never needs a racy pre-check.
func (r *UserRepository) Create(ctx context.Context, name, phone, nationalID, passwordHash string, isAdmin bool) (*model.User, error) {
	const query = `
		INSERT INTO users (id, name, phone_number, national_id, password_hash, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, name, phone_number, national_id, password_hash, is_admin, created_at, updated_at
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, uuid.New(), name, phone, nationalID, passwordHash, isAdmin).Scan(
		&user.ID,
		&user.Name,
		&user.PhoneNumber,
		&user.NationalID,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			switch pgErr.ConstraintName {
			case "users_phone_number_key":
				return nil, ErrDuplicatePhone
			case "users_national_id_key":
				return nil, ErrDuplicateNationalID
			}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// GetByID retrieves a user by id.
// Returns ErrUserNotFound if the user does not exist.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	const query = `
		SELECT id, name, phone_number, national_id, password_hash, is_admin, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.PhoneNumber,
		&user.NationalID,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetByPhone retrieves a user by normalized phone number.
// Returns ErrUserNotFound if the user does not exist.
func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	const query = `
		SELECT id, name, phone_number, national_id, password_hash, is_admin, created_at, updated_at
		FROM users
		WHERE phone_number = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, phone).Scan(
		&user.ID,
		&user.Name,
		&user.PhoneNumber,
		&user.NationalID,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by phone: %w", err)
	}

	return &user, nil
}

// Exists checks if a user with the given id exists.
func (r *UserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}

// List retrieves all users ordered by creation time (newest first).
func (r *UserRepository) List(ctx context.Context, limit int) ([]*model.User, error) {
	const query = `
		SELECT id, name, phone_number, national_id, password_hash, is_admin, created_at, updated_at
		FROM users
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var user model.User
		err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.PhoneNumber,
			&user.NationalID,
			&user.PasswordHash,
			&user.IsAdmin,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}
