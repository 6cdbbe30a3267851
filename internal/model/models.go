// Package model defines the data models for the sales leaderboard service.
package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered sales agent account.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	PhoneNumber  string    `db:"phone_number" json:"phone_number"`
	NationalID   string    `db:"national_id" json:"national_id"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsAdmin      bool      `db:"is_admin" json:"is_admin"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// SalesRecord is the accumulated connections total for one agent in one
// calendar month. MonthYear is a YYYY-MM bucket key; the row is unique per
// (user_id, month_year).
type SalesRecord struct {
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	MonthYear   string    `db:"month_year" json:"month_year"`
	Connections int64     `db:"connections" json:"connections"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// SalesEntry is one submitted delta, kept as an append-only audit trail of
// admin submissions. The ledger total for a (user, month) equals the sum of
// its entries.
type SalesEntry struct {
	ID        int64     `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	AdminID   uuid.UUID `db:"admin_id" json:"admin_id"`
	MonthYear string    `db:"month_year" json:"month_year"`
	Delta     int64     `db:"delta" json:"delta"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Standing is one row of a month's sales totals joined to its user, as read
// from storage in ranking order. Rank and zone are assigned afterwards.
type Standing struct {
	UserID      uuid.UUID `db:"user_id"`
	Name        string    `db:"name"`
	Connections int64     `db:"connections"`
}

// LeaderboardEntry is one ranked, zone-classified row of a month's
// leaderboard. Derived per request, never persisted.
type LeaderboardEntry struct {
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Connections int64     `json:"connections"`
	Rank        int       `json:"rank"`
	Zone        Zone      `json:"zone"`
}

// Session is a server-side login session. The token is the opaque value the
// mobile client stores locally.
type Session struct {
	Token     string    `db:"token"`
	UserID    uuid.UUID `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
