package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ceptevar-api/internal/application/verification"
	"github.com/ceptevar-api/internal/domain"
	"github.com/go-chi/chi/v5"
)

// VerificationHandler exposes the code request and verify endpoints for all
// four channels.
type VerificationHandler struct {
	svc verification.Service
}

func NewVerificationHandler(svc verification.Service) *VerificationHandler {
	return &VerificationHandler{svc: svc}
}

type requestCodeRequest struct {
	Identifier string `json:"identifier"`
	Language   string `json:"language"`
}

type verifyCodeRequest struct {
	Identifier string `json:"identifier"`
	Code       string `json:"code"`
}

// Request handles POST /verifications/{channel}/request.
func (h *VerificationHandler) Request(w http.ResponseWriter, r *http.Request) {
	ch, ok := domain.ParseChannel(chi.URLParam(r, "channel"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown verification channel")
		return
	}
	var req requestCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Identifier == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	expiresIn, err := h.svc.RequestCode(r.Context(), ch, req.Identifier, req.Language)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "verification code sent", ExpiresIn: expiresIn})
}

// Verify handles POST /verifications/{channel}/verify.
func (h *VerificationHandler) Verify(w http.ResponseWriter, r *http.Request) {
	ch, ok := domain.ParseChannel(chi.URLParam(r, "channel"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown verification channel")
		return
	}
	var req verifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Identifier == "" || req.Code == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.VerifyCode(r.Context(), ch, req.Identifier, req.Code); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "identifier verified"})
}
