package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ceptevar-api/internal/domain"
)

type userLister interface {
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error)
}

type promoSender interface {
	SendPromo(ctx context.Context, phoneNumbers []string, message string) int
}

// PromotionHandler fans promotional SMS out to every enabled user.
type PromotionHandler struct {
	users  userLister
	promos promoSender
}

func NewPromotionHandler(users userLister, promos promoSender) *PromotionHandler {
	return &PromotionHandler{users: users, promos: promos}
}

type promoRequest struct {
	Message string `json:"message"`
}

type promoResponse struct {
	Recipients int `json:"recipients"`
	Sent       int `json:"sent"`
}

func (h *PromotionHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req promoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var phones []string
	cursor := ""
	for {
		users, next, err := h.users.ScanPage(r.Context(), 100, cursor)
		if err != nil {
			httpError(w, err)
			return
		}
		for _, u := range users {
			if u.Enable == 1 && u.Phone != "" {
				phones = append(phones, u.Phone)
			}
		}
		if next == "" {
			break
		}
		cursor = next
	}

	sent := h.promos.SendPromo(r.Context(), phones, req.Message)
	writeJSON(w, http.StatusOK, promoResponse{Recipients: len(phones), Sent: sent})
}
