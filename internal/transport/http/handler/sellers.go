package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ceptevar-api/internal/application/seller"
	"github.com/ceptevar-api/internal/domain"
	"github.com/go-chi/chi/v5"
)

// SellerHandler handles seller account endpoints.
type SellerHandler struct {
	svc seller.Service
}

func NewSellerHandler(svc seller.Service) *SellerHandler { return &SellerHandler{svc: svc} }

type uploadLogoRequest struct {
	Filename string `json:"filename"`
	Data     string `json:"data"` // base64
}

func (h *SellerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSellerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s, err := h.svc.Register(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, AuthEnvelope{Seller: s, Message: "seller registered"})
}

func (h *SellerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Identifier == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	bearer, s, err := h.svc.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{Bearer: bearer, Seller: s})
}

func (h *SellerHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *SellerHandler) Update(w http.ResponseWriter, r *http.Request) {
	targetID, ok := ownID(w, r)
	if !ok {
		return
	}
	var req domain.UpdateSellerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s, err := h.svc.Update(r.Context(), targetID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *SellerHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	targetID, ok := ownID(w, r)
	if !ok {
		return
	}
	var req uploadLogoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Filename == "" || req.Data == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	url, err := h.svc.UploadLogo(r.Context(), targetID, req.Filename, req.Data)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UploadEnvelope{URL: url})
}

func (h *SellerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	targetID, ok := ownID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), targetID); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "seller deleted"})
}
