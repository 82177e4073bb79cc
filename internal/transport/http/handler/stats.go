package handler

import (
	"net/http"

	"github.com/ceptevar-api/internal/application/stats"
	"github.com/ceptevar-api/internal/transport/http/middleware"
)

// StatsHandler serves the seller dashboard numbers.
type StatsHandler struct {
	svc stats.Service
}

func NewStatsHandler(svc stats.Service) *StatsHandler { return &StatsHandler{svc: svc} }

// SellerStatistics reports the calling seller's own store statistics.
func (h *StatsHandler) SellerStatistics(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	st, err := h.svc.SellerStatistics(r.Context(), claims.AccountID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
