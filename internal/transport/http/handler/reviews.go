package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ceptevar-api/internal/application/review"
	"github.com/ceptevar-api/internal/domain"
	"github.com/ceptevar-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// ReviewHandler handles seller review endpoints.
type ReviewHandler struct {
	svc review.Service
}

func NewReviewHandler(svc review.Service) *ReviewHandler { return &ReviewHandler{svc: svc} }

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rev, err := h.svc.Create(r.Context(), claims.AccountID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rev)
}

// List filters by seller_id or product_id query parameter.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	if productID := r.URL.Query().Get("product_id"); productID != "" {
		reviews, err := h.svc.ListByProduct(r.Context(), productID)
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reviews)
		return
	}
	sellerID := r.URL.Query().Get("seller_id")
	if sellerID == "" {
		writeError(w, http.StatusBadRequest, "seller_id or product_id query parameter required")
		return
	}
	reviews, err := h.svc.ListBySeller(r.Context(), sellerID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rev, err := h.svc.Update(r.Context(), claims.AccountID, chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rev)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.Delete(r.Context(), claims.AccountID, chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "review deleted"})
}
