package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ceptevar-api/internal/application/order"
	"github.com/ceptevar-api/internal/domain"
	"github.com/ceptevar-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// OrderHandler handles order endpoints for buyers and sellers.
type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler { return &OrderHandler{svc: svc} }

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = claims.AccountID
	o, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	o, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	if o.UserID != claims.AccountID && o.SellerID != claims.AccountID {
		writeError(w, http.StatusForbidden, "not your order")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// ListMine returns the caller's orders: purchases for users, sales for
// sellers.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var (
		orders []domain.Order
		err    error
	)
	if claims.AccountType == "seller" {
		orders, err = h.svc.ListBySeller(r.Context(), claims.AccountID)
	} else {
		orders, err = h.svc.ListByUser(r.Context(), claims.AccountID)
	}
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	o, err := h.svc.UpdateStatus(r.Context(), claims.AccountID, chi.URLParam(r, "id"), domain.OrderStatus(req.Status))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	o, err := h.svc.Cancel(r.Context(), claims.AccountID, chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}
