package handler

import (
	"net/http"
	"strconv"

	"github.com/DenisMurerwa/EBU/internal/model"
	"github.com/DenisMurerwa/EBU/internal/service"
)

// LeaderboardHandler handles leaderboard read endpoints.
type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(leaderboardService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

type leaderboardResponse struct {
	MonthYear string                    `json:"month_year"`
	Entries   []*model.LeaderboardEntry `json:"entries"`
}

// GetLeaderboard handles GET /leaderboard?month=YYYY-MM.
// The month defaults to the current calendar month. An empty month is a
// valid empty leaderboard.
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	monthYear := r.URL.Query().Get("month")
	if monthYear == "" {
		monthYear = h.leaderboardService.CurrentMonth()
	}

	entries, err := h.leaderboardService.Standings(r.Context(), monthYear)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, leaderboardResponse{
		MonthYear: monthYear,
		Entries:   entries,
	})
}

// GetMyStanding handles GET /leaderboard/me?month=YYYY-MM.
// Returns 404 if the caller has no ledger row for the month.
func (h *LeaderboardHandler) GetMyStanding(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	monthYear := r.URL.Query().Get("month")
	if monthYear == "" {
		monthYear = h.leaderboardService.CurrentMonth()
	}

	entry, err := h.leaderboardService.UserStanding(r.Context(), user.ID, monthYear)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, entry)
}

// queryLimit parses a ?limit= query parameter with a default cap.
func queryLimit(r *http.Request, def int) int {
	limit := def
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if l, err := strconv.Atoi(raw); err == nil && l > 0 && l <= 1000 {
			limit = l
		}
	}
	return limit
}
