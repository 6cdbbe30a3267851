package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/DenisMurerwa/EBU/internal/model"
	"github.com/DenisMurerwa/EBU/internal/service"
)

// SalesHandler handles sales submission endpoints. All routes here sit
// behind the admin middleware.
type SalesHandler struct {
	ledgerService      *service.LedgerService
	leaderboardService *service.LeaderboardService
}

// NewSalesHandler creates a new SalesHandler.
func NewSalesHandler(ledgerService *service.LedgerService, leaderboardService *service.LeaderboardService) *SalesHandler {
	return &SalesHandler{
		ledgerService:      ledgerService,
		leaderboardService: leaderboardService,
	}
}

type recordSaleRequest struct {
	UserID      uuid.UUID `json:"user_id"`
	Date        string    `json:"date"` // YYYY-MM-DD, defaults to today
	Connections int64     `json:"connections"`
}

// RecordSale handles POST /sales. The delta is truncated to the month the
// date falls in and accumulated onto the target's monthly total. Either the
// new total is fully applied or the prior state is retained.
func (h *SalesHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	admin, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	var req recordSaleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be in YYYY-MM-DD form")
			return
		}
		date = parsed
	}

	record, err := h.ledgerService.RecordSale(r.Context(), admin.ID, req.UserID, date, req.Connections)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, record)
}

// ListMonthEntries handles GET /sales/entries?month=YYYY-MM.
// Returns the submission audit trail for a month, newest first.
func (h *SalesHandler) ListMonthEntries(w http.ResponseWriter, r *http.Request) {
	monthYear := r.URL.Query().Get("month")
	if monthYear == "" {
		monthYear = h.leaderboardService.CurrentMonth()
	}
	limit := queryLimit(r, 100)

	entries, err := h.ledgerService.MonthEntries(r.Context(), monthYear, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if entries == nil {
		entries = []*model.SalesEntry{}
	}
	writeData(w, http.StatusOK, entries)
}

// ListUserEntries handles GET /sales/users/{id}/entries.
func (h *SalesHandler) ListUserEntries(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	limit := queryLimit(r, 100)

	entries, err := h.ledgerService.UserEntries(r.Context(), userID, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if entries == nil {
		entries = []*model.SalesEntry{}
	}
	writeData(w, http.StatusOK, entries)
}
