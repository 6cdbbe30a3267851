package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/DenisMurerwa/EBU/internal/model"
	"github.com/DenisMurerwa/EBU/internal/pkg/lock"
	"github.com/DenisMurerwa/EBU/internal/repository"
)

// LedgerService applies admin-submitted sales deltas to monthly buckets
// with accumulate semantics.
type LedgerService struct {
	userRepo  *repository.UserRepository
	salesRepo *repository.SalesRepository
	entryRepo *repository.EntryRepository
	keyLock   *lock.KeyLock
}

// NewLedgerService creates a new LedgerService instance.
func NewLedgerService(
	userRepo *repository.UserRepository,
	salesRepo *repository.SalesRepository,
	entryRepo *repository.EntryRepository,
	keyLock *lock.KeyLock,
) *LedgerService {
	return &LedgerService{
		userRepo:  userRepo,
		salesRepo: salesRepo,
		entryRepo: entryRepo,
		keyLock:   keyLock,
	}
}

// MonthKey resolves a date to its YYYY-MM bucket key.
func MonthKey(date time.Time) string {
	return date.Format("2006-01")
}

// ledgerKey is the lock key serializing submissions for one monthly bucket.
func ledgerKey(userID uuid.UUID, monthYear string) string {
	return userID.String() + "/" + monthYear
}

// RecordSale adds delta connections to the target user's bucket for the
// month the date falls in, creating the bucket on first submission. The
// stored total always equals the sum of all accepted deltas for that key:
// the write is a single server-side accumulate, and same-key submissions
// are additionally serialized in-process. Returns the updated record.
// Fails with repository.ErrUserNotFound if the target does not exist; the
// prior total is retained unchanged on any failure.
func (s *LedgerService) RecordSale(ctx context.Context, adminID, userID uuid.UUID, date time.Time, delta int64) (*model.SalesRecord, error) {
	if delta < 0 {
		return nil, ErrInvalidDelta
	}

	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check target user: %w", err)
	}
	if !exists {
		return nil, repository.ErrUserNotFound
	}

	monthYear := MonthKey(date)
	key := ledgerKey(userID, monthYear)

	s.keyLock.Lock(key)
	defer s.keyLock.Unlock(key)

	record, err := s.salesRepo.Accumulate(ctx, userID, monthYear, delta)
	if err != nil {
		return nil, err
	}

	if _, err := s.entryRepo.Create(ctx, userID, adminID, monthYear, delta); err != nil {
		// The total is already committed; a lost audit row must not fail
		// the submission.
		log.Warn().
			Err(err).
			Str("user_id", userID.String()).
			Str("month_year", monthYear).
			Int64("delta", delta).
			Msg("Failed to record sales audit entry")
	}

	log.Info().
		Str("admin_id", adminID.String()).
		Str("user_id", userID.String()).
		Str("month_year", monthYear).
		Int64("delta", delta).
		Int64("total", record.Connections).
		Msg("Sales delta recorded")

	return record, nil
}

// GetRecord retrieves the current total for a (user, month) key.
func (s *LedgerService) GetRecord(ctx context.Context, userID uuid.UUID, monthYear string) (*model.SalesRecord, error) {
	if err := ValidateMonthKey(monthYear); err != nil {
		return nil, err
	}
	return s.salesRepo.Get(ctx, userID, monthYear)
}

// MonthEntries retrieves the audit trail for a month, newest first.
func (s *LedgerService) MonthEntries(ctx context.Context, monthYear string, limit int) ([]*model.SalesEntry, error) {
	if err := ValidateMonthKey(monthYear); err != nil {
		return nil, err
	}
	return s.entryRepo.ListByMonth(ctx, monthYear, limit)
}

// UserEntries retrieves the audit trail targeting one user, newest first.
func (s *LedgerService) UserEntries(ctx context.Context, userID uuid.UUID, limit int) ([]*model.SalesEntry, error) {
	entries, err := s.entryRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		// Distinguish "no submissions" for an unknown user.
		exists, existsErr := s.userRepo.Exists(ctx, userID)
		if existsErr != nil {
			return nil, fmt.Errorf("failed to check target user: %w", existsErr)
		}
		if !exists {
			return nil, repository.ErrUserNotFound
		}
	}
	return entries, nil
}
