package handler

import (
	"net/http"

	"github.com/ceptevar-api/internal/application/follow"
	"github.com/ceptevar-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// FollowHandler handles the follow-a-store endpoints.
type FollowHandler struct {
	svc follow.Service
}

func NewFollowHandler(svc follow.Service) *FollowHandler { return &FollowHandler{svc: svc} }

func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.Follow(r.Context(), claims.AccountID, chi.URLParam(r, "sellerID")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, MessageEnvelope{Message: "seller followed"})
}

func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.Unfollow(r.Context(), claims.AccountID, chi.URLParam(r, "sellerID")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "seller unfollowed"})
}

func (h *FollowHandler) FollowedSellers(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	sellers, err := h.svc.FollowedSellers(r.Context(), claims.AccountID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, FollowedSellersEnvelope{Sellers: sellers, Count: len(sellers)})
}

func (h *FollowHandler) FollowersCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.FollowersCount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, FollowersCountEnvelope{FollowersCount: count})
}
