package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/DenisMurerwa/EBU/internal/model"
	"github.com/DenisMurerwa/EBU/internal/repository"
)

// LeaderboardService produces ranked, zone-classified monthly standings.
// Each call recomputes from storage; nothing is cached or updated
// incrementally.
type LeaderboardService struct {
	salesRepo *repository.SalesRepository
	timezone  *time.Location
}

// NewLeaderboardService creates a new LeaderboardService instance.
func NewLeaderboardService(salesRepo *repository.SalesRepository, timezone *time.Location) *LeaderboardService {
	if timezone == nil {
		timezone = time.UTC
	}
	return &LeaderboardService{
		salesRepo: salesRepo,
		timezone:  timezone,
	}
}

// CurrentMonth returns the bucket key for the current calendar month.
func (s *LeaderboardService) CurrentMonth() string {
	return MonthKey(time.Now().In(s.timezone))
}

// Standings computes the leaderboard for a month: all ledger rows joined to
// their users, ordered by connections descending (user id ascending on
// ties), with dense 1-based ranks and a zone per entry. An empty month is
// an empty leaderboard, not an error.
func (s *LeaderboardService) Standings(ctx context.Context, monthYear string) ([]*model.LeaderboardEntry, error) {
	if err := ValidateMonthKey(monthYear); err != nil {
		return nil, err
	}

	standings, err := s.salesRepo.MonthStandings(ctx, monthYear)
	if err != nil {
		return nil, err
	}

	return rankStandings(standings), nil
}

// CurrentStandings computes the leaderboard for the current month.
func (s *LeaderboardService) CurrentStandings(ctx context.Context) ([]*model.LeaderboardEntry, error) {
	return s.Standings(ctx, s.CurrentMonth())
}

// UserStanding returns one user's entry in a month's leaderboard.
// Returns repository.ErrSalesRecordNotFound if the user has no ledger row
// for that month.
func (s *LeaderboardService) UserStanding(ctx context.Context, userID uuid.UUID, monthYear string) (*model.LeaderboardEntry, error) {
	entries, err := s.Standings(ctx, monthYear)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.UserID == userID {
			return entry, nil
		}
	}

	return nil, repository.ErrSalesRecordNotFound
}

// rankStandings assigns dense 1-based ranks in input order and classifies
// each row's zone. Ties keep distinct sequential ranks; the input order
// (connections descending, user id ascending) is the ranking order.
func rankStandings(standings []*model.Standing) []*model.LeaderboardEntry {
	entries := make([]*model.LeaderboardEntry, 0, len(standings))
	for i, st := range standings {
		entries = append(entries, &model.LeaderboardEntry{
			UserID:      st.UserID,
			Name:        st.Name,
			Connections: st.Connections,
			Rank:        i + 1,
			Zone:        model.ZoneFor(st.Connections),
		})
	}
	return entries
}
